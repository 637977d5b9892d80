package portfolio

import (
	"context"

	"github.com/dvillanueva/cartera/internal/models"
)

// resolvedPrice is the outcome of one asset's price lookup. A nil field
// means the value could not be determined from any source.
type resolvedPrice struct {
	current *float64
	open    *float64
}

// ResolvePrices obtains the current and opening price for one asset. It
// never fails: any provider error is absorbed and the affected value comes
// back nil for the caller to substitute. An empty ticker short-circuits to
// (nil, nil).
//
// The forced-zero-open decision uses the raw ticker and currency; provider
// queries use the normalized ticker.
func (s *Service) ResolvePrices(ctx context.Context, ticker, assetType, currency string) (current, open *float64) {
	if ticker == "" {
		return nil, nil
	}

	symbol := NormalizeTicker(ticker, assetType)

	bar, err := s.client.GetDailyBar(ctx, symbol)
	if err != nil {
		s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Daily bar lookup failed")
		bar = nil
	}

	// Quote info is fetched lazily, at most once, and only when a fallback
	// is actually needed.
	var info *models.QuoteInfo
	infoFetched := false
	quoteInfo := func() *models.QuoteInfo {
		if !infoFetched {
			infoFetched = true
			var err error
			info, err = s.client.GetQuoteInfo(ctx, symbol)
			if err != nil {
				s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Quote info lookup failed")
				info = nil
			}
		}
		return info
	}

	switch {
	case s.session.ShouldForceZeroOpen(ticker, currency, s.now()):
		zero := 0.0
		open = &zero
	case bar != nil:
		v := bar.Open
		open = &v
	default:
		if q := quoteInfo(); q != nil {
			open = firstNonZero(q.Open, q.PreviousClose)
		}
	}

	if bar != nil {
		v := bar.Close
		current = &v
	} else if q := quoteInfo(); q != nil {
		current = firstNonZero(q.CurrentPrice, q.RegularMarketPrice)
	}

	return current, open
}

// firstNonZero returns a pointer to the first nonzero value, or nil when
// every candidate is zero or missing.
func firstNonZero(values ...float64) *float64 {
	for _, v := range values {
		if v != 0 {
			v := v
			return &v
		}
	}
	return nil
}
