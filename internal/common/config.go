// Package common provides shared utilities for Cartera
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Cartera
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Session     SessionConfig `toml:"session"`
	CORS        CORSConfig    `toml:"cors"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds SurrealDB connection configuration.
type StorageConfig struct {
	Address   string `toml:"address"`
	Namespace string `toml:"namespace"`
	Database  string `toml:"database"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionConfig holds market-session classification configuration.
// AmericanTickers lists symbols treated as trading on American-style
// sessions even when their purchase currency is not USD.
type SessionConfig struct {
	AmericanTickers []string `toml:"american_tickers"`
}

// CORSConfig holds the allow-listed frontend origins.
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Address:   "ws://localhost:8000",
			Namespace: "cartera",
			Database:  "cartera",
			Username:  "root",
			Password:  "root",
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Session: SessionConfig{
			AmericanTickers: []string{"TARA"},
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"https://portfolio-q1f4.vercel.app",
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CARTERA_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CARTERA_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CARTERA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CARTERA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("CARTERA_DB_URL"); url != "" {
		config.Storage.Address = url
	}
	if ns := os.Getenv("CARTERA_DB_NAMESPACE"); ns != "" {
		config.Storage.Namespace = ns
	}
	if name := os.Getenv("CARTERA_DB_NAME"); name != "" {
		config.Storage.Database = name
	}
	if user := os.Getenv("CARTERA_DB_USER"); user != "" {
		config.Storage.Username = user
	}
	if pass := os.Getenv("CARTERA_DB_PASS"); pass != "" {
		config.Storage.Password = pass
	}

	if origins := os.Getenv("CARTERA_CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		config.CORS.AllowedOrigins = parts
	}

	if tickers := os.Getenv("CARTERA_AMERICAN_TICKERS"); tickers != "" {
		parts := strings.Split(tickers, ",")
		for i := range parts {
			parts[i] = strings.ToUpper(strings.TrimSpace(parts[i]))
		}
		config.Session.AmericanTickers = parts
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
