package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/observability"
	"github.com/Avishah123/hb-dashboard/internal/storage"
	"github.com/Avishah123/hb-dashboard/internal/storage/memory"
)

var fixtureEnd = date.MustParse("2025-03-07")

func newService(t *testing.T, store storage.MarketDataStore) *Service {
	t.Helper()
	return NewService(store, zerolog.Nop()).
		WithMetrics(observability.NewMetricsWith("test", prometheus.NewRegistry()))
}

func fixtureService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, memory.LoadFixtures(context.Background(), store, fixtureEnd, 120))
	return newService(t, store)
}

// entityTable builds a raw entity table from (symbol, day offset, net value) triples.
func entityTable(t *testing.T, kind domain.DatasetKind, start date.Date, rows ...any) *dataset.Table {
	t.Helper()
	b := dataset.NewBuilder(kind.Table(),
		dataset.Field{Name: "date", Kind: dataset.KindDate},
		dataset.Field{Name: "symbol", Kind: dataset.KindString},
		dataset.Field{Name: "net_value_in_cr", Kind: dataset.KindFloat},
		dataset.Field{Name: "net_qty_carry_fwd", Kind: dataset.KindFloat},
	)
	for i := 0; i+2 < len(rows); i += 3 {
		v := rows[i+2].(float64)
		b.Append(start.Add(rows[i+1].(int)), rows[i].(string), v, v*10)
	}
	tbl, err := b.Build()
	require.NoError(t, err)
	return tbl
}

func TestService_DateRange(t *testing.T) {
	svc := fixtureService(t)

	r, err := svc.DateRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, date.MustParse("2024-11-08"), r.From)
	assert.Equal(t, fixtureEnd, r.To)
}

func TestService_DateRange_Empty(t *testing.T) {
	svc := newService(t, memory.NewStore())

	r, err := svc.DateRange(context.Background())
	require.NoError(t, err)
	assert.True(t, r.IsOpen())
}

func TestService_Symbols(t *testing.T) {
	svc := fixtureService(t)
	ctx := context.Background()

	got, err := svc.Symbols(ctx, domain.DatasetStocks, date.Range{})
	require.NoError(t, err)
	assert.Equal(t, memory.FixtureStocks, got)

	_, err = svc.Symbols(ctx, domain.DatasetTotalIndex, date.Range{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = svc.Symbols(ctx, domain.DatasetKind("bogus"), date.Range{})
	assert.ErrorIs(t, err, storage.ErrUnknownDataset)
}

func TestService_InvalidRange(t *testing.T) {
	svc := fixtureService(t)

	_, err := svc.Symbols(context.Background(), domain.DatasetIndex, date.Range{From: fixtureEnd, To: fixtureEnd.Add(-1)})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_MissingTable(t *testing.T) {
	svc := newService(t, memory.NewStore())

	_, err := svc.Load(context.Background(), domain.DatasetStocks)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestService_SchemaError(t *testing.T) {
	store := memory.NewStore()
	tbl, err := dataset.NewBuilder("market_stocks",
		dataset.Field{Name: "date", Kind: dataset.KindDate},
		dataset.Field{Name: "net_value_in_cr", Kind: dataset.KindFloat},
	).Append(fixtureEnd, 1.0).Build()
	require.NoError(t, err)
	require.NoError(t, store.Insert(context.Background(), domain.DatasetStocks, tbl))

	svc := newService(t, store)
	_, err = svc.Changes(context.Background(), domain.DatasetStocks, date.Range{}, change.Params{})

	var se *dataset.SchemaError
	require.True(t, errors.As(err, &se), "got %v", err)
	assert.Equal(t, "symbol", se.Column)
	assert.ErrorIs(t, err, dataset.ErrSchema)
}

func TestService_Status(t *testing.T) {
	svc := fixtureService(t).WithClock(func() time.Time {
		return time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC)
	})

	st, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Connected)
	assert.Equal(t, "memory", st.Driver)
	assert.Empty(t, st.Error)
	assert.Equal(t, int64(86*len(memory.FixtureIndices)), st.Counts[domain.DatasetIndex])
	assert.Equal(t, int64(86), st.Counts[domain.DatasetTotalStocks])
	require.NotNil(t, st.LastUpdated)
	assert.True(t, st.LastUpdated.Equal(time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC), st.CheckedAt)
}

type downStore struct{ *memory.Store }

func (downStore) Ping(context.Context) error { return errors.New("connection refused") }

func TestService_StatusDisconnected(t *testing.T) {
	svc := newService(t, downStore{memory.NewStore()})

	st, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Connected)
	assert.Equal(t, "connection refused", st.Error)
	assert.Empty(t, st.Counts)
	assert.Nil(t, st.LastUpdated)
}

func TestService_Raw(t *testing.T) {
	svc := fixtureService(t)
	ctx := context.Background()
	r := date.Range{From: fixtureEnd, To: fixtureEnd}

	visible, err := svc.Raw(ctx, domain.DatasetStocks, r, false)
	require.NoError(t, err)
	assert.Equal(t, len(memory.FixtureStocks), visible.Len())
	assert.False(t, visible.Has(domain.ColUpdatedAt))
	assert.False(t, visible.Has(domain.ColBtFrwdLongQty))
	assert.True(t, visible.Has(domain.ColMarketCapPercentage))

	all, err := svc.Raw(ctx, domain.DatasetStocks, r, true)
	require.NoError(t, err)
	assert.True(t, all.Has(domain.ColUpdatedAt))
}
