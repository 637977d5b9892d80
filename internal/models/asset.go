// Package models defines the domain types for Cartera
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrAssetNotFound is returned when an asset id does not exist in the store.
var ErrAssetNotFound = errors.New("asset not found")

// Asset type classifications that drive ticker normalization.
// The frontend sends Spanish labels; the English spelling is accepted too.
var cryptoAssetTypes = map[string]bool{
	"cripto": true,
	"crypto": true,
}

// IsCryptoType reports whether the asset type classifies as crypto.
func IsCryptoType(assetType string) bool {
	return cryptoAssetTypes[strings.ToLower(assetType)]
}

// Asset is a held position in the portfolio. JSON field names match the
// wire format the frontend expects.
type Asset struct {
	ID               string    `json:"id"`
	Name             string    `json:"nombre"`
	Ticker           string    `json:"ticker"`
	Type             string    `json:"tipo"`
	Quantity         float64   `json:"cantidad"`
	PurchasePrice    float64   `json:"precio_compra"`
	PurchaseCurrency string    `json:"moneda_compra"`
	PurchaseDate     string    `json:"fecha_compra"`
	ISIN             string    `json:"isin"`
	CreatedAt        time.Time `json:"created_at"`
}

// AssetInput carries the user-supplied fields for creating or replacing an
// asset. ID and CreatedAt are owned by the store and never accepted as input.
type AssetInput struct {
	Name             string  `json:"nombre"`
	Ticker           string  `json:"ticker"`
	Type             string  `json:"tipo"`
	Quantity         float64 `json:"cantidad"`
	PurchasePrice    float64 `json:"precio_compra"`
	PurchaseCurrency string  `json:"moneda_compra"`
	PurchaseDate     string  `json:"fecha_compra"`
	ISIN             string  `json:"isin"`
}

// Validate checks the presence of required fields. Quantity and purchase
// price are inherited as entered; downstream computations assume quantity >= 0.
func (in *AssetInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("nombre is required")
	}
	if strings.TrimSpace(in.Ticker) == "" {
		return fmt.Errorf("ticker is required")
	}
	if strings.TrimSpace(in.Type) == "" {
		return fmt.Errorf("tipo is required")
	}
	if strings.TrimSpace(in.PurchaseCurrency) == "" {
		return fmt.Errorf("moneda_compra is required")
	}
	return nil
}

// NewAsset builds a persistent Asset from user input, assigning the id and
// creation timestamp.
func NewAsset(in AssetInput) *Asset {
	return &Asset{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Ticker:           in.Ticker,
		Type:             in.Type,
		Quantity:         in.Quantity,
		PurchasePrice:    in.PurchasePrice,
		PurchaseCurrency: in.PurchaseCurrency,
		PurchaseDate:     in.PurchaseDate,
		ISIN:             in.ISIN,
		CreatedAt:        time.Now().UTC(),
	}
}

// Apply replaces every user-owned field of the asset with the input,
// preserving ID and CreatedAt.
func (a *Asset) Apply(in AssetInput) {
	a.Name = in.Name
	a.Ticker = in.Ticker
	a.Type = in.Type
	a.Quantity = in.Quantity
	a.PurchasePrice = in.PurchasePrice
	a.PurchaseCurrency = in.PurchaseCurrency
	a.PurchaseDate = in.PurchaseDate
	a.ISIN = in.ISIN
}

// PurchaseValue returns the cost basis of the position.
func (a *Asset) PurchaseValue() float64 {
	return a.PurchasePrice * a.Quantity
}
