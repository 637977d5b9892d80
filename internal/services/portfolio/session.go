package portfolio

import (
	"strings"
	"time"
)

// The trading-session window for American-style assets, expressed in the
// Madrid reference timezone: 15:31 local open, 23:30 local close.
const (
	sessionOpenHour    = 15
	sessionOpenMinute  = 31
	sessionCloseHour   = 23
	sessionCloseMinute = 30
)

// madridLocation is the single reference timezone for session windows.
// Every asset is classified against Madrid civil time, not its own market's
// timezone.
var madridLocation = mustLoadLocation("Europe/Madrid")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback to CET fixed zone if tzdata is unavailable (e.g., minimal container)
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
}

// SessionClassifier decides whether an asset trades on an American-style
// session and whether that session is currently open.
type SessionClassifier struct {
	americanTickers map[string]bool
}

// NewSessionClassifier builds a classifier from the configured allowlist of
// tickers that trade American-style sessions despite a non-USD currency.
func NewSessionClassifier(americanTickers []string) *SessionClassifier {
	set := make(map[string]bool, len(americanTickers))
	for _, t := range americanTickers {
		set[strings.ToUpper(strings.TrimSpace(t))] = true
	}
	return &SessionClassifier{americanTickers: set}
}

// IsAmericanMarket reports whether the asset trades on an American-style
// session: USD purchase currency, or the ticker is on the allowlist.
func (sc *SessionClassifier) IsAmericanMarket(ticker, currency string) bool {
	return currency == "USD" || sc.americanTickers[strings.ToUpper(ticker)]
}

// IsMarketOpen reports whether the given moment falls inside the effective
// session window [open, close). When the moment is before today's open, the
// window shifts back one calendar day so yesterday's session counts as
// current until today's open arrives.
func (sc *SessionClassifier) IsMarketOpen(now time.Time) bool {
	local := now.In(madridLocation)

	open := time.Date(local.Year(), local.Month(), local.Day(),
		sessionOpenHour, sessionOpenMinute, 0, 0, madridLocation)
	close := time.Date(local.Year(), local.Month(), local.Day(),
		sessionCloseHour, sessionCloseMinute, 0, 0, madridLocation)

	if local.Before(open) {
		open = open.AddDate(0, 0, -1)
		close = close.AddDate(0, 0, -1)
	}

	return !local.Before(open) && local.Before(close)
}

// ShouldForceZeroOpen reports whether the opening price must be reported as
// exactly 0 instead of fetched: American-classified assets outside their
// session have no meaningful reference open yet. Non-American assets always
// use the real fetched or fallback open.
func (sc *SessionClassifier) ShouldForceZeroOpen(ticker, currency string, now time.Time) bool {
	return sc.IsAmericanMarket(ticker, currency) && !sc.IsMarketOpen(now)
}
