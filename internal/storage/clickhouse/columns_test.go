package clickhouse

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

func TestKindForType(t *testing.T) {
	tests := []struct {
		typ  string
		want dataset.Kind
	}{
		{"Float64", dataset.KindFloat},
		{"Nullable(Float64)", dataset.KindFloat},
		{"Nullable(Decimal(20, 2))", dataset.KindFloat},
		{"UInt32", dataset.KindFloat},
		{"Date", dataset.KindDate},
		{"Nullable(DateTime('UTC'))", dataset.KindTimestamp},
		{"DateTime64(3)", dataset.KindTimestamp},
		{"LowCardinality(Nullable(String))", dataset.KindString},
		{"UUID", dataset.KindString},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.want, kindForType(tt.typ))
		})
	}
}

func TestFromCH(t *testing.T) {
	v, err := fromCH(decimal.RequireFromString("12.34"), dataset.KindFloat)
	require.NoError(t, err)
	assert.InDelta(t, 12.34, v, 1e-9)

	v, err = fromCH(uint64(7), dataset.KindFloat)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)

	v, err = fromCH(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), dataset.KindDate)
	require.NoError(t, err)
	assert.Equal(t, date.MustParse("2025-03-03"), v)

	v, err = fromCH(nil, dataset.KindFloat)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = fromCH("x", dataset.KindFloat)
	assert.Error(t, err)
}

func TestDeref(t *testing.T) {
	var null *float64
	assert.Nil(t, deref(&null))

	f := 2.5
	p := &f
	assert.Equal(t, 2.5, deref(&p))

	s := "NIFTY"
	assert.Equal(t, "NIFTY", deref(&s))
}

func TestToCH(t *testing.T) {
	d := date.MustParse("2025-03-03")
	assert.Equal(t, d.Time(), toCH(d, "Date"))

	dec, ok := toCH(1.5, "Nullable(Decimal(20, 2))").(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, dec.Equal(decimal.NewFromFloat(1.5)))

	assert.Equal(t, 1.5, toCH(1.5, "Nullable(Float64)"))
	assert.Nil(t, toCH(nil, "Nullable(Float64)"))
}

func TestParseDSN(t *testing.T) {
	opts, err := parseDSN("clickhouse://user:pw@db.local:9440/market?secure=true&dial_timeout=5s")
	require.NoError(t, err)
	assert.Equal(t, []string{"db.local:9440"}, opts.Addr)
	assert.Equal(t, "user", opts.Auth.Username)
	assert.Equal(t, "pw", opts.Auth.Password)
	assert.Equal(t, "market", opts.Auth.Database)
	assert.NotNil(t, opts.TLS)
	assert.Equal(t, 5*time.Second, opts.DialTimeout)

	opts, err = parseDSN("clickhouse://localhost")
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9000"}, opts.Addr)
	assert.Nil(t, opts.TLS)

	_, err = parseDSN("clickhouse://localhost/db?dial_timeout=soon")
	assert.Error(t, err)
}
