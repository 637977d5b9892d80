// Package portfolio implements the valuation engine for the current holdings
package portfolio

import (
	"strings"

	"github.com/dvillanueva/cartera/internal/models"
)

// usdSuffix is appended to crypto tickers so the provider resolves the
// USD-quoted pair (e.g. BTC -> BTC-USD).
const usdSuffix = "-USD"

// NormalizeTicker maps a raw ticker to the symbol queried against the
// market data provider. Crypto tickers get the -USD suffix unless already
// present; everything else passes through unchanged.
func NormalizeTicker(ticker, assetType string) string {
	if models.IsCryptoType(assetType) && !strings.HasSuffix(ticker, usdSuffix) {
		return ticker + usdSuffix
	}
	return ticker
}
