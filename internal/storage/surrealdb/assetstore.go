package surrealdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/dvillanueva/cartera/internal/common"
	"github.com/dvillanueva/cartera/internal/interfaces"
	"github.com/dvillanueva/cartera/internal/models"
)

// assetTable is the single collection of asset records, keyed by asset id.
const assetTable = "asset"

// assetRecord is the persisted shape of an asset. The record id belongs to
// SurrealDB, so the asset's own id is stored as a plain field.
type assetRecord struct {
	AssetID          string    `json:"asset_id"`
	Name             string    `json:"name"`
	Ticker           string    `json:"ticker"`
	Type             string    `json:"type"`
	Quantity         float64   `json:"quantity"`
	PurchasePrice    float64   `json:"purchase_price"`
	PurchaseCurrency string    `json:"purchase_currency"`
	PurchaseDate     string    `json:"purchase_date"`
	ISIN             string    `json:"isin"`
	CreatedAt        time.Time `json:"created_at"`
}

func toRecord(a *models.Asset) *assetRecord {
	return &assetRecord{
		AssetID:          a.ID,
		Name:             a.Name,
		Ticker:           a.Ticker,
		Type:             a.Type,
		Quantity:         a.Quantity,
		PurchasePrice:    a.PurchasePrice,
		PurchaseCurrency: a.PurchaseCurrency,
		PurchaseDate:     a.PurchaseDate,
		ISIN:             a.ISIN,
		CreatedAt:        a.CreatedAt,
	}
}

func fromRecord(r *assetRecord) *models.Asset {
	return &models.Asset{
		ID:               r.AssetID,
		Name:             r.Name,
		Ticker:           r.Ticker,
		Type:             r.Type,
		Quantity:         r.Quantity,
		PurchasePrice:    r.PurchasePrice,
		PurchaseCurrency: r.PurchaseCurrency,
		PurchaseDate:     r.PurchaseDate,
		ISIN:             r.ISIN,
		CreatedAt:        r.CreatedAt,
	}
}

// AssetStore implements interfaces.AssetStore using SurrealDB.
type AssetStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewAssetStore creates a new AssetStore.
func NewAssetStore(db *surrealdb.DB, logger *common.Logger) *AssetStore {
	return &AssetStore{db: db, logger: logger}
}

func (s *AssetStore) Insert(ctx context.Context, asset *models.Asset) error {
	sql := "UPSERT $rid CONTENT $asset"
	vars := map[string]any{
		"rid":   surrealmodels.NewRecordID(assetTable, asset.ID),
		"asset": toRecord(asset),
	}

	if _, err := surrealdb.Query[[]assetRecord](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	s.logger.Debug().Str("id", asset.ID).Str("ticker", asset.Ticker).Msg("Asset inserted")
	return nil
}

func (s *AssetStore) List(ctx context.Context) ([]*models.Asset, error) {
	sql := "SELECT * FROM asset ORDER BY created_at ASC, asset_id ASC"

	results, err := surrealdb.Query[[]assetRecord](ctx, s.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	assets := make([]*models.Asset, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			assets = append(assets, fromRecord(&(*results)[0].Result[i]))
		}
	}
	return assets, nil
}

func (s *AssetStore) Get(ctx context.Context, id string) (*models.Asset, error) {
	record, err := surrealdb.Select[assetRecord](ctx, s.db, surrealmodels.NewRecordID(assetTable, id))
	if err != nil {
		if isNotFoundError(err) {
			return nil, models.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to select asset: %w", err)
	}
	if record == nil || record.AssetID == "" {
		return nil, models.ErrAssetNotFound
	}
	return fromRecord(record), nil
}

func (s *AssetStore) Update(ctx context.Context, id string, in models.AssetInput) (*models.Asset, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Apply(in)

	sql := "UPSERT $rid CONTENT $asset"
	vars := map[string]any{
		"rid":   surrealmodels.NewRecordID(assetTable, id),
		"asset": toRecord(existing),
	}
	if _, err := surrealdb.Query[[]assetRecord](ctx, s.db, sql, vars); err != nil {
		return nil, fmt.Errorf("failed to update asset: %w", err)
	}

	s.logger.Debug().Str("id", id).Msg("Asset updated")
	return existing, nil
}

func (s *AssetStore) Delete(ctx context.Context, id string) error {
	// Existence check first: deleting a missing id must report NotFound
	// without touching the store.
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if _, err := surrealdb.Delete[assetRecord](ctx, s.db, surrealmodels.NewRecordID(assetTable, id)); err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	s.logger.Debug().Str("id", id).Msg("Asset deleted")
	return nil
}

// isNotFoundError reports whether a SurrealDB error means the record does
// not exist, as opposed to a connectivity or query failure.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}

// Compile-time check
var _ interfaces.AssetStore = (*AssetStore)(nil)
