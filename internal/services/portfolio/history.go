package portfolio

import (
	"context"
	"time"

	"github.com/dvillanueva/cartera/internal/models"
)

// Lookback periods accepted by History. An unknown period falls back to
// PeriodMonth.
const (
	PeriodDay   = "dia"
	PeriodWeek  = "semana"
	PeriodYear  = "año"
	PeriodMonth = "mes"
)

// lookbackDays maps a period selector to its window in calendar days.
func lookbackDays(period string) int {
	switch period {
	case PeriodDay:
		return 1
	case PeriodWeek:
		return 7
	case PeriodYear:
		return 365
	default:
		return 30
	}
}

// businessDays returns the Monday–Friday dates from start to end inclusive,
// ascending. No holiday calendar.
func businessDays(start, end time.Time) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			days = append(days, d)
		}
	}
	return days
}

// History computes the business-day series of portfolio gain/loss over the
// period's lookback window. Each day's value sums close*quantity across
// assets, substituting the purchase price when the provider has no bar for
// that day; gain/loss is measured against the current holdings' cost basis,
// not the historical one.
func (s *Service) History(ctx context.Context, period string, assets []*models.Asset) []models.HistoryPoint {
	if len(assets) == 0 {
		return []models.HistoryPoint{}
	}

	today := s.now()
	start := today.AddDate(0, 0, -lookbackDays(period))
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, today.Location())
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	var costBasis float64
	for _, asset := range assets {
		costBasis += asset.PurchaseValue()
	}

	days := businessDays(start, end)
	history := make([]models.HistoryPoint, 0, len(days))

	for _, day := range days {
		var totalValue float64
		for _, asset := range assets {
			closePrice := asset.PurchasePrice
			symbol := NormalizeTicker(asset.Ticker, asset.Type)
			bar, err := s.client.GetBarForDate(ctx, symbol, day)
			if err != nil {
				s.logger.Debug().Err(err).Str("symbol", symbol).
					Str("date", day.Format("2006-01-02")).Msg("Historical bar lookup failed")
			} else if bar != nil {
				closePrice = bar.Close
			}
			totalValue += closePrice * asset.Quantity
		}

		history = append(history, models.HistoryPoint{
			Date:          day.Format("2006-01-02"),
			TotalGainLoss: models.Round2(totalValue - costBasis),
		})
	}

	return history
}
