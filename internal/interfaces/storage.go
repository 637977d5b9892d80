package interfaces

import (
	"context"

	"github.com/dvillanueva/cartera/internal/models"
)

// AssetStore is the persistent keyed collection of asset records.
// Consistency is last-write-wins; no transactions.
type AssetStore interface {
	// Insert persists a new asset.
	Insert(ctx context.Context, asset *models.Asset) error

	// List returns all assets ordered by creation time ascending.
	List(ctx context.Context) ([]*models.Asset, error)

	// Get returns the asset with the given id, or models.ErrAssetNotFound.
	Get(ctx context.Context, id string) (*models.Asset, error)

	// Update replaces the user-owned fields of the asset with the given id
	// and returns the updated record, or models.ErrAssetNotFound.
	Update(ctx context.Context, id string, in models.AssetInput) (*models.Asset, error)

	// Delete removes the asset with the given id, or returns
	// models.ErrAssetNotFound without mutating the store.
	Delete(ctx context.Context, id string) error
}

// StorageManager owns the database connection and hands out stores.
type StorageManager interface {
	AssetStore() AssetStore
	Close() error
}
