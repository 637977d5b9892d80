package interfaces

import (
	"context"

	"github.com/dvillanueva/cartera/internal/models"
)

// PortfolioService values the current holdings and derives history series.
// Both operations are read-only and absorb per-asset pricing failures.
type PortfolioService interface {
	// Snapshot computes per-asset valuations and the aggregate summary for
	// the given assets. Output order matches input order.
	Snapshot(ctx context.Context, assets []*models.Asset) *models.PortfolioSnapshot

	// History computes the business-day series of portfolio gain/loss over
	// the lookback window named by period (dia, semana, año, mes).
	History(ctx context.Context, period string, assets []*models.Asset) []models.HistoryPoint
}
