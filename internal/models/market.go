package models

import "time"

// Bar is a single trading day's OHLCV record for a symbol.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// QuoteInfo carries the summary quote fields used as fallbacks when no
// daily bar is available. Fields may be zero when the provider omits them.
type QuoteInfo struct {
	Open               float64 `json:"open"`
	PreviousClose      float64 `json:"previous_close"`
	CurrentPrice       float64 `json:"current_price"`
	RegularMarketPrice float64 `json:"regular_market_price"`
}
