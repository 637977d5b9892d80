package portfolio

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dvillanueva/cartera/internal/common"
	"github.com/dvillanueva/cartera/internal/interfaces"
	"github.com/dvillanueva/cartera/internal/models"
)

// resolveConcurrency bounds the per-asset price lookups run in parallel
// within one snapshot.
const resolveConcurrency = 4

// Service implements the portfolio valuation engine. It reads prices
// through the market data client and never mutates assets.
type Service struct {
	client  interfaces.MarketDataClient
	session *SessionClassifier
	logger  *common.Logger
	now     func() time.Time // injectable clock for testing
}

// NewService creates a new portfolio service.
func NewService(client interfaces.MarketDataClient, session *SessionClassifier, logger *common.Logger) *Service {
	return &Service{
		client:  client,
		session: session,
		logger:  logger,
		now:     time.Now,
	}
}

// Snapshot computes per-asset valuations and the aggregate summary.
// Price resolution runs with bounded concurrency, but the output rows
// always match the input asset order. A failed resolution substitutes the
// asset's purchase price, so a single bad ticker never aborts the snapshot.
func (s *Service) Snapshot(ctx context.Context, assets []*models.Asset) *models.PortfolioSnapshot {
	resolved := make([]resolvedPrice, len(assets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, asset := range assets {
		g.Go(func() error {
			current, open := s.ResolvePrices(gctx, asset.Ticker, asset.Type, asset.PurchaseCurrency)
			resolved[i] = resolvedPrice{current: current, open: open}
			return nil
		})
	}
	g.Wait() // resolution never returns an error

	rows := make([]models.AssetValuation, 0, len(assets))
	var totalInvested, totalValue, totalDailyProfit float64

	for i, asset := range assets {
		currentPrice := asset.PurchasePrice
		if resolved[i].current != nil {
			currentPrice = *resolved[i].current
		}
		openPrice := asset.PurchasePrice
		if resolved[i].open != nil {
			openPrice = *resolved[i].open
		}

		purchaseValue := asset.PurchaseValue()
		currentValue := currentPrice * asset.Quantity
		dailyProfit := models.Round2((currentPrice - openPrice) * asset.Quantity)
		gainLoss := currentValue - purchaseValue

		percentChange := 0.0
		if purchaseValue != 0 {
			percentChange = gainLoss / purchaseValue * 100
		}

		totalInvested += purchaseValue
		totalValue += currentValue
		totalDailyProfit += dailyProfit

		rows = append(rows, models.AssetValuation{
			ID:            asset.ID,
			Name:          asset.Name,
			Ticker:        asset.Ticker,
			Type:          asset.Type,
			Quantity:      asset.Quantity,
			PurchasePrice: asset.PurchasePrice,
			CurrentPrice:  models.Round4(currentPrice),
			OpenPrice:     models.Round4(openPrice),
			CurrentValue:  models.Round2(currentValue),
			GainLoss:      models.Round2(gainLoss),
			PercentChange: models.Round2(percentChange),
			DailyProfit:   dailyProfit,
			PurchaseDate:  asset.PurchaseDate,
			ISIN:          asset.ISIN,
		})
	}

	totalGainLoss := totalValue - totalInvested
	percentReturn := 0.0
	if totalInvested != 0 {
		percentReturn = totalGainLoss / totalInvested * 100
	}

	return &models.PortfolioSnapshot{
		Assets: rows,
		Summary: models.PortfolioSummary{
			DailyProfit:   models.Round2(totalDailyProfit),
			TotalValue:    models.Round2(totalValue),
			TotalInvested: models.Round2(totalInvested),
			TotalGainLoss: models.Round2(totalGainLoss),
			PercentReturn: models.Round2(percentReturn),
			AssetCount:    len(assets),
		},
	}
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
