package surrealdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surreal "github.com/surrealdb/surrealdb.go"

	"github.com/dvillanueva/cartera/internal/common"
	"github.com/dvillanueva/cartera/internal/models"
)

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, isNotFoundError(nil))
	assert.True(t, isNotFoundError(errors.New("record not found")))
	assert.True(t, isNotFoundError(errors.New("Not Found")))
	assert.True(t, isNotFoundError(errors.New("no record exists")))
	assert.False(t, isNotFoundError(errors.New("connection refused")))
}

func TestAssetRecordRoundTrip(t *testing.T) {
	asset := &models.Asset{
		ID:               "a1",
		Name:             "Banco Santander",
		Ticker:           "SAN.MC",
		Type:             "accion",
		Quantity:         100,
		PurchasePrice:    4.2,
		PurchaseCurrency: "EUR",
		PurchaseDate:     "2024-06-01",
		ISIN:             "ES0113900J37",
		CreatedAt:        time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	got := fromRecord(toRecord(asset))
	assert.Equal(t, asset, got)
}

// testDB connects to the SurrealDB instance named by CARTERA_TEST_DB_URL,
// using a unique database per test for isolation. Tests are skipped when no
// instance is available.
func testDB(t *testing.T) *surreal.DB {
	t.Helper()

	addr := os.Getenv("CARTERA_TEST_DB_URL")
	if addr == "" {
		t.Skip("CARTERA_TEST_DB_URL not set")
	}

	ctx := context.Background()
	db, err := surreal.New(addr)
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}

	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbName := fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000)
	if err := db.Use(ctx, "cartera_test", dbName); err != nil {
		t.Fatalf("select namespace/database: %v", err)
	}

	if _, err := surreal.Query[any](ctx, db, "DEFINE TABLE IF NOT EXISTS asset SCHEMALESS", nil); err != nil {
		t.Fatalf("define asset table: %v", err)
	}

	t.Cleanup(func() {
		db.Close(context.Background())
	})

	return db
}

func testLogger() *common.Logger {
	return common.NewSilentLogger()
}

func testAsset(id, ticker string) *models.Asset {
	return &models.Asset{
		ID:               id,
		Name:             "Asset " + id,
		Ticker:           ticker,
		Type:             "accion",
		Quantity:         10,
		PurchasePrice:    5,
		PurchaseCurrency: "EUR",
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
	}
}

func TestAssetStoreCRUD(t *testing.T) {
	store := NewAssetStore(testDB(t), testLogger())
	ctx := context.Background()

	asset := testAsset("a1", "SAN.MC")
	require.NoError(t, store.Insert(ctx, asset))

	got, err := store.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "SAN.MC", got.Ticker)
	assert.Equal(t, 10.0, got.Quantity)

	updated, err := store.Update(ctx, "a1", models.AssetInput{
		Name: "Asset a1", Ticker: "SAN.MC", Type: "accion",
		Quantity: 25, PurchasePrice: 5, PurchaseCurrency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, updated.Quantity)
	assert.Equal(t, asset.CreatedAt.Unix(), updated.CreatedAt.Unix())

	require.NoError(t, store.Delete(ctx, "a1"))

	_, err = store.Get(ctx, "a1")
	assert.ErrorIs(t, err, models.ErrAssetNotFound)
}

func TestAssetStoreList_Ordering(t *testing.T) {
	store := NewAssetStore(testDB(t), testLogger())
	ctx := context.Background()

	first := testAsset("a1", "AAA")
	second := testAsset("a2", "BBB")
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, store.Insert(ctx, second))
	require.NoError(t, store.Insert(ctx, first))

	assets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "a1", assets[0].ID)
	assert.Equal(t, "a2", assets[1].ID)
}

func TestAssetStoreUpdate_NotFound(t *testing.T) {
	store := NewAssetStore(testDB(t), testLogger())

	_, err := store.Update(context.Background(), "missing", models.AssetInput{
		Name: "x", Ticker: "X", Type: "accion", PurchaseCurrency: "EUR",
	})
	assert.ErrorIs(t, err, models.ErrAssetNotFound)
}

func TestAssetStoreDelete_NotFound(t *testing.T) {
	store := NewAssetStore(testDB(t), testLogger())

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrAssetNotFound)
}
