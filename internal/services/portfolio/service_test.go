package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dvillanueva/cartera/internal/common"
	"github.com/dvillanueva/cartera/internal/models"
)

// --- Mock market data client ---

type mockMarketClient struct {
	mu       sync.Mutex
	bars     map[string]*models.Bar
	barErr   error
	quotes   map[string]*models.QuoteInfo
	quoteErr error
	dateBars map[string]*models.Bar // key: symbol|2006-01-02

	dailyBarCalls int
	quoteCalls    int
}

func (m *mockMarketClient) GetDailyBar(_ context.Context, symbol string) (*models.Bar, error) {
	m.mu.Lock()
	m.dailyBarCalls++
	m.mu.Unlock()
	if m.barErr != nil {
		return nil, m.barErr
	}
	return m.bars[symbol], nil
}

func (m *mockMarketClient) GetBarForDate(_ context.Context, symbol string, date time.Time) (*models.Bar, error) {
	if m.barErr != nil {
		return nil, m.barErr
	}
	return m.dateBars[symbol+"|"+date.Format("2006-01-02")], nil
}

func (m *mockMarketClient) GetQuoteInfo(_ context.Context, symbol string) (*models.QuoteInfo, error) {
	m.mu.Lock()
	m.quoteCalls++
	m.mu.Unlock()
	if m.quoteErr != nil {
		return nil, m.quoteErr
	}
	q, ok := m.quotes[symbol]
	if !ok {
		return nil, errors.New("no quote result")
	}
	return q, nil
}

// sessionTime is a Monday afternoon inside the 15:31-23:30 Madrid window.
var sessionTime = time.Date(2025, 3, 3, 16, 0, 0, 0, madridLocation)

func newTestService(client *mockMarketClient) *Service {
	svc := NewService(client, NewSessionClassifier([]string{"TARA"}), common.NewSilentLogger())
	svc.now = func() time.Time { return sessionTime }
	return svc
}

func testAsset(ticker string, qty, price float64) *models.Asset {
	return &models.Asset{
		ID:               "id-" + ticker,
		Name:             ticker,
		Ticker:           ticker,
		Type:             "accion",
		Quantity:         qty,
		PurchasePrice:    price,
		PurchaseCurrency: "EUR",
	}
}

func TestSnapshot_SingleAsset(t *testing.T) {
	client := &mockMarketClient{
		bars: map[string]*models.Bar{
			"AAA": {Open: 5.5, Close: 6.0},
		},
	}
	svc := newTestService(client)

	snap := svc.Snapshot(context.Background(), []*models.Asset{testAsset("AAA", 10, 5)})

	if len(snap.Assets) != 1 {
		t.Fatalf("expected 1 row, got %d", len(snap.Assets))
	}
	row := snap.Assets[0]
	if row.CurrentPrice != 6.0 {
		t.Errorf("CurrentPrice = %v, want 6.0", row.CurrentPrice)
	}
	if row.OpenPrice != 5.5 {
		t.Errorf("OpenPrice = %v, want 5.5", row.OpenPrice)
	}
	if row.CurrentValue != 60.0 {
		t.Errorf("CurrentValue = %v, want 60.0", row.CurrentValue)
	}
	if row.GainLoss != 10.0 {
		t.Errorf("GainLoss = %v, want 10.0", row.GainLoss)
	}
	if row.PercentChange != 20.0 {
		t.Errorf("PercentChange = %v, want 20.0", row.PercentChange)
	}
	if row.DailyProfit != 5.0 {
		t.Errorf("DailyProfit = %v, want 5.0", row.DailyProfit)
	}

	sum := snap.Summary
	if sum.TotalValue != 60.0 || sum.TotalInvested != 50.0 || sum.TotalGainLoss != 10.0 {
		t.Errorf("summary totals = %+v", sum)
	}
	if sum.PercentReturn != 20.0 {
		t.Errorf("PercentReturn = %v, want 20.0", sum.PercentReturn)
	}
	if sum.DailyProfit != 5.0 {
		t.Errorf("summary DailyProfit = %v, want 5.0", sum.DailyProfit)
	}
	if sum.AssetCount != 1 {
		t.Errorf("AssetCount = %d, want 1", sum.AssetCount)
	}
}

func TestSnapshot_UnresolvedPricesFallBackToPurchase(t *testing.T) {
	// Every lookup fails, so both prices substitute the purchase price and
	// the asset shows neither gain nor daily movement.
	client := &mockMarketClient{barErr: errors.New("down"), quoteErr: errors.New("down")}
	svc := newTestService(client)

	snap := svc.Snapshot(context.Background(), []*models.Asset{testAsset("BBB", 2, 100)})

	row := snap.Assets[0]
	if row.CurrentPrice != 100.0 || row.OpenPrice != 100.0 {
		t.Errorf("prices = %v/%v, want 100/100", row.CurrentPrice, row.OpenPrice)
	}
	if row.GainLoss != 0 || row.DailyProfit != 0 || row.PercentChange != 0 {
		t.Errorf("expected flat valuation, got %+v", row)
	}
	if snap.Summary.TotalValue != 200.0 || snap.Summary.TotalInvested != 200.0 {
		t.Errorf("summary = %+v", snap.Summary)
	}
}

func TestSnapshot_ZeroCostBasisYieldsZeroPercent(t *testing.T) {
	client := &mockMarketClient{
		bars: map[string]*models.Bar{"CCC": {Open: 1, Close: 2}},
	}
	svc := newTestService(client)

	asset := testAsset("CCC", 0, 0)
	snap := svc.Snapshot(context.Background(), []*models.Asset{asset})

	if snap.Assets[0].PercentChange != 0 {
		t.Errorf("PercentChange = %v, want 0", snap.Assets[0].PercentChange)
	}
	if snap.Summary.PercentReturn != 0 {
		t.Errorf("PercentReturn = %v, want 0", snap.Summary.PercentReturn)
	}
}

func TestSnapshot_EmptyPortfolio(t *testing.T) {
	svc := newTestService(&mockMarketClient{})

	snap := svc.Snapshot(context.Background(), nil)

	if len(snap.Assets) != 0 {
		t.Fatalf("expected no rows, got %d", len(snap.Assets))
	}
	if snap.Summary.AssetCount != 0 || snap.Summary.TotalValue != 0 {
		t.Errorf("summary = %+v", snap.Summary)
	}
}

func TestSnapshot_PreservesInputOrder(t *testing.T) {
	// More assets than the concurrency limit so rows would interleave if
	// ordering were ever tied to completion order.
	client := &mockMarketClient{bars: map[string]*models.Bar{}}
	var assets []*models.Asset
	for i := 0; i < 12; i++ {
		ticker := fmt.Sprintf("T%02d", i)
		client.bars[ticker] = &models.Bar{Open: float64(i), Close: float64(i) + 1}
		assets = append(assets, testAsset(ticker, 1, 1))
	}
	svc := newTestService(client)

	snap := svc.Snapshot(context.Background(), assets)

	if len(snap.Assets) != len(assets) {
		t.Fatalf("expected %d rows, got %d", len(assets), len(snap.Assets))
	}
	for i, row := range snap.Assets {
		if row.Ticker != assets[i].Ticker {
			t.Errorf("row %d ticker = %s, want %s", i, row.Ticker, assets[i].Ticker)
		}
		if row.CurrentPrice != float64(i)+1 {
			t.Errorf("row %d price = %v, want %v", i, row.CurrentPrice, float64(i)+1)
		}
	}
}

func TestSnapshot_TotalInvestedMatchesCostBasisSum(t *testing.T) {
	client := &mockMarketClient{
		bars: map[string]*models.Bar{
			"AAA": {Open: 10, Close: 12},
			"BBB": {Open: 3, Close: 2.5},
		},
	}
	svc := newTestService(client)
	assets := []*models.Asset{
		testAsset("AAA", 4, 9.5),
		testAsset("BBB", 100, 3.1),
	}

	snap := svc.Snapshot(context.Background(), assets)

	var want float64
	for _, a := range assets {
		want += a.PurchaseValue()
	}
	if snap.Summary.TotalInvested != models.Round2(want) {
		t.Errorf("TotalInvested = %v, want %v", snap.Summary.TotalInvested, models.Round2(want))
	}
}

func TestSnapshot_AmericanAssetOutsideSessionForcesZeroOpen(t *testing.T) {
	client := &mockMarketClient{
		bars: map[string]*models.Bar{"MSFT": {Open: 400, Close: 410}},
	}
	svc := newTestService(client)
	// Monday 10:00 Madrid is before the 15:31 open, and the previous
	// window closed Sunday night.
	svc.now = func() time.Time {
		return time.Date(2025, 3, 3, 10, 0, 0, 0, madridLocation)
	}

	asset := testAsset("MSFT", 2, 300)
	asset.PurchaseCurrency = "USD"
	snap := svc.Snapshot(context.Background(), []*models.Asset{asset})

	row := snap.Assets[0]
	if row.OpenPrice != 0 {
		t.Errorf("OpenPrice = %v, want forced 0", row.OpenPrice)
	}
	if row.CurrentPrice != 410 {
		t.Errorf("CurrentPrice = %v, want 410", row.CurrentPrice)
	}
	// Daily profit against a zero open is the full current value.
	if row.DailyProfit != 820.0 {
		t.Errorf("DailyProfit = %v, want 820.0", row.DailyProfit)
	}
}
