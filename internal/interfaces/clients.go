// Package interfaces defines contracts between Cartera components
package interfaces

import (
	"context"
	"time"

	"github.com/dvillanueva/cartera/internal/models"
)

// MarketDataClient retrieves price data for a symbol. Implementations may
// fail or return nil results; callers are expected to degrade gracefully.
type MarketDataClient interface {
	// GetDailyBar returns the most recent one-day trading bar for the
	// symbol, or nil when the provider has no usable bar.
	GetDailyBar(ctx context.Context, symbol string) (*models.Bar, error)

	// GetBarForDate returns the bar for the given calendar day, or nil
	// when the market produced no bar that day.
	GetBarForDate(ctx context.Context, symbol string, date time.Time) (*models.Bar, error)

	// GetQuoteInfo returns the summary quote fields for the symbol.
	GetQuoteInfo(ctx context.Context, symbol string) (*models.QuoteInfo, error)
}
