package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/metrics"
	"github.com/Avishah123/hb-dashboard/internal/storage/memory"
)

func keys(groups []metrics.GroupValue) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func TestDetails_DefaultSelection(t *testing.T) {
	svc := fixtureService(t)

	d, err := svc.Details(context.Background(), domain.DatasetStocks, Request{})
	require.NoError(t, err)

	want := memory.FixtureStocks[:DefaultSelection]
	assert.Equal(t, want, d.Selected)
	assert.Equal(t, memory.FixtureStocks, d.Available)
	assert.Equal(t, 86*DefaultSelection, d.Rows)
	assert.Equal(t, want, keys(d.NetValueSum))
	assert.Equal(t, want, keys(d.MarketCapPercent))
	assert.Equal(t, want, keys(d.NetQtyAvgAll))
	assert.Equal(t, want, keys(d.NetQtyAvgRecent))
	require.Len(t, d.BuySell, DefaultSelection)

	for _, bs := range d.BuySell {
		assert.InDelta(t, 100, bs.BuyPercent+bs.SellPercent, 0.01, bs.Symbol)
	}
	for _, g := range d.MarketCapPercent {
		// stored as a fraction around 0.05, shown as a percentage
		assert.Greater(t, g.Value, 1.0, g.Key)
		assert.Less(t, g.Value, 10.0, g.Key)
	}
	for _, g := range d.NetQtyAvgRecent {
		assert.LessOrEqual(t, g.Count, 86)
	}
}

func TestDetails_SelectedSymbolsAndRange(t *testing.T) {
	svc := fixtureService(t)
	ctx := context.Background()

	open, err := svc.Details(ctx, domain.DatasetStocks, Request{Symbols: []string{"TCS", "INFY"}})
	require.NoError(t, err)

	r := date.Range{From: fixtureEnd.Add(-6), To: fixtureEnd}
	narrow, err := svc.Details(ctx, domain.DatasetStocks, Request{Range: r, Symbols: []string{"TCS", "INFY"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"INFY", "TCS"}, keys(narrow.NetValueSum))
	assert.Equal(t, 10, narrow.Rows)
	// the all-data average ignores the date filter
	assert.Equal(t, open.NetQtyAvgAll, narrow.NetQtyAvgAll)
	for _, g := range narrow.NetQtyAvgRecent {
		assert.Equal(t, 5, g.Count, g.Key)
	}
	for _, g := range narrow.NetValueSum {
		assert.Equal(t, 5, g.Count, g.Key)
	}
}

func TestDetails_IndexHasNoNetQtyAverages(t *testing.T) {
	svc := fixtureService(t)

	d, err := svc.Details(context.Background(), domain.DatasetIndex, Request{})
	require.NoError(t, err)
	assert.Equal(t, memory.FixtureIndices[:DefaultSelection], d.Selected)
	assert.Nil(t, d.NetQtyAvgAll)
	assert.Nil(t, d.NetQtyAvgRecent)
}

func TestDetails_FewerSymbolsThanDefault(t *testing.T) {
	store := memory.NewStore()
	start := date.MustParse("2025-01-01")
	require.NoError(t, store.Insert(context.Background(), domain.DatasetIndex,
		entityTable(t, domain.DatasetIndex, start, "NIFTY", 0, 1.0, "NIFTY", 1, 2.0)))
	svc := newService(t, store)

	d, err := svc.Details(context.Background(), domain.DatasetIndex, Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"NIFTY"}, d.Selected)
	require.Len(t, d.NetValueSum, 1)
	assert.Equal(t, 3.0, d.NetValueSum[0].Value)
	assert.Nil(t, d.BuySell, "no buy/sell columns")
	assert.Nil(t, d.MarketCapPercent, "no market cap column")
}

func TestDetails_Unsupported(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.Details(context.Background(), domain.DatasetSummary, Request{})
	assert.ErrorIs(t, err, ErrUnsupported)
}
