package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/schema"
	"github.com/Avishah123/hb-dashboard/internal/storage"
	"github.com/Avishah123/hb-dashboard/internal/storage/memory"
)

func TestMarketStore_InsertLoadRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewMarketStore(pool)
	ctx := context.Background()

	end := date.MustParse("2025-03-07")
	require.NoError(t, memory.LoadFixtures(ctx, store, end, 14))

	for _, kind := range domain.AllDatasets() {
		raw, err := store.Load(ctx, kind)
		require.NoError(t, err, "load %s", kind)

		canonical, err := schema.Mappings[kind].Apply(raw)
		require.NoError(t, err, "apply mapping %s", kind)

		_, max, ok, err := canonical.DateBounds(domain.ColDate)
		require.NoError(t, err)
		require.True(t, ok, "%s has dates", kind)
		assert.Equal(t, end, max, "%s latest date", kind)
	}

	stocks, err := store.Load(ctx, domain.DatasetStocks)
	require.NoError(t, err)
	f, ok := stocks.Field("id")
	require.True(t, ok, "serial id column is loaded")
	assert.Equal(t, dataset.KindFloat, f.Kind)
	f, ok = stocks.Field("date")
	require.True(t, ok)
	assert.Equal(t, dataset.KindDate, f.Kind)
	assert.Equal(t, 10*len(memory.FixtureStocks), stocks.Len())
}

func TestMarketStore_NumericColumnsAreFloats(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewMarketStore(pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO market_summary (date, instrument, net_qty_carry_fwd, net_value_in_cr)
		VALUES ('2025-03-03', 'FUTIDX', 1200, 345.67)`)
	require.NoError(t, err)

	raw, err := store.Load(ctx, domain.DatasetSummary)
	require.NoError(t, err)
	values, err := raw.Floats("net_value_in_cr")
	require.NoError(t, err)
	v, ok := values.At(0)
	require.True(t, ok)
	assert.InDelta(t, 345.67, v, 1e-9)
}

func TestMarketStore_CountAndLastUpdated(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewMarketStore(pool)
	ctx := context.Background()

	_, err := store.LastUpdated(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	n, err := store.Count(ctx, domain.DatasetIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	require.NoError(t, memory.LoadFixtures(ctx, store, date.MustParse("2025-03-07"), 7))

	n, err = store.Count(ctx, domain.DatasetIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(5*len(memory.FixtureIndices)), n)

	last, err := store.LastUpdated(ctx)
	require.NoError(t, err)
	assert.True(t, last.Equal(time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC)), "got %s", last)
}

func TestMarketStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewMarketStore(pool)
	ctx := context.Background()

	tbl, err := dataset.NewBuilder("market_index",
		dataset.Field{Name: "date", Kind: dataset.KindDate},
		dataset.Field{Name: "symbol", Kind: dataset.KindString},
		dataset.Field{Name: "net_value_in_cr", Kind: dataset.KindFloat},
	).Append(date.MustParse("2025-03-03"), "NIFTY", 10.5).Build()
	require.NoError(t, err)

	require.NoError(t, store.Insert(ctx, domain.DatasetIndex, tbl))
	assert.ErrorIs(t, store.Insert(ctx, domain.DatasetIndex, tbl), storage.ErrDuplicateKey)
}

func TestMarketStore_MissingTable(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewMarketStore(pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `DROP TABLE total_stocks`)
	require.NoError(t, err)

	_, err = store.Load(ctx, domain.DatasetTotalStocks)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.Load(ctx, domain.DatasetKind("bogus"))
	assert.ErrorIs(t, err, storage.ErrUnknownDataset)
}
