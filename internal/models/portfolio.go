package models

import "github.com/shopspring/decimal"

// AssetValuation is one asset's row in a portfolio snapshot. Prices carry
// 4 decimal places, monetary values and percentages 2.
type AssetValuation struct {
	ID            string  `json:"id"`
	Name          string  `json:"nombre"`
	Ticker        string  `json:"ticker"`
	Type          string  `json:"tipo"`
	Quantity      float64 `json:"cantidad"`
	PurchasePrice float64 `json:"precio_compra"`
	CurrentPrice  float64 `json:"precio_actual_eur"`
	OpenPrice     float64 `json:"precio_apertura_eur"`
	CurrentValue  float64 `json:"valor_actual"`
	GainLoss      float64 `json:"ganancia_perdida"`
	PercentChange float64 `json:"porcentaje_cambio"`
	DailyProfit   float64 `json:"beneficio_diario"`
	PurchaseDate  string  `json:"fecha_compra"`
	ISIN          string  `json:"isin"`
}

// PortfolioSummary aggregates the per-asset rows of a snapshot.
type PortfolioSummary struct {
	DailyProfit   float64 `json:"beneficio_diario"`
	TotalValue    float64 `json:"valor_total_eur"`
	TotalInvested float64 `json:"inversion_total_eur"`
	TotalGainLoss float64 `json:"ganancia_perdida_total"`
	PercentReturn float64 `json:"rendimiento_porcentaje"`
	AssetCount    int     `json:"cantidad_activos"`
}

// PortfolioSnapshot is the full valuation of the portfolio at a moment in
// time. Computed per request, never persisted.
type PortfolioSnapshot struct {
	Assets  []AssetValuation `json:"assets"`
	Summary PortfolioSummary `json:"resumen"`
}

// HistoryPoint is one business day's portfolio gain/loss versus the current
// cost basis.
type HistoryPoint struct {
	Date          string  `json:"fecha"`
	TotalGainLoss float64 `json:"ganancia_perdida_total"`
}

// Round2 rounds to 2 decimal places, half up. decimal.Round is
// half-away-from-zero, which matches half-up on the non-negative magnitudes
// used here and keeps per-asset and aggregate figures reproducible.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Round4 rounds to 4 decimal places, half up. Used for displayed prices.
func Round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
