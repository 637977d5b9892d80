// Package app wires configuration, storage, clients and services together
package app

import (
	"fmt"
	"os"
	"time"

	"github.com/dvillanueva/cartera/internal/clients/yahoo"
	"github.com/dvillanueva/cartera/internal/common"
	"github.com/dvillanueva/cartera/internal/interfaces"
	"github.com/dvillanueva/cartera/internal/services/portfolio"
	storage "github.com/dvillanueva/cartera/internal/storage/surrealdb"
)

// App holds all initialized services and clients. It is constructed once at
// process start and torn down at shutdown; nothing here is global state.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Storage          interfaces.StorageManager
	MarketClient     interfaces.MarketDataClient
	PortfolioService interfaces.PortfolioService
	StartupTime      time.Time
}

// NewApp initializes configuration, logging, storage, the market data
// client and the portfolio service. configPath may be empty, in which case
// CARTERA_CONFIG and the default location are tried.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	if configPath == "" {
		configPath = os.Getenv("CARTERA_CONFIG")
	}
	if configPath == "" {
		configPath = "config/cartera.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	session := portfolio.NewSessionClassifier(config.Session.AmericanTickers)
	portfolioService := portfolio.NewService(marketClient, session, logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Storage:          storageManager,
		MarketClient:     marketClient,
		PortfolioService: portfolioService,
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
