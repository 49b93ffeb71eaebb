package memory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// Fixture symbols.
var (
	FixtureIndices     = []string{"BANKNIFTY", "FINNIFTY", "MIDCPNIFTY", "NIFTY"}
	FixtureStocks      = []string{"HDFCBANK", "ICICIBANK", "INFY", "RELIANCE", "SBIN", "TCS"}
	FixtureInstruments = []string{"FUTIDX", "FUTSTK", "OPTIDX", "OPTSTK"}
)

var (
	entityFields = []dataset.Field{
		{Name: "date", Kind: dataset.KindDate},
		{Name: "symbol", Kind: dataset.KindString},
		{Name: "bt_frwd_long_qty", Kind: dataset.KindFloat},
		{Name: "bt_frwd_short_qty", Kind: dataset.KindFloat},
		{Name: "net_qty_carry_fwd", Kind: dataset.KindFloat},
		{Name: "net_value_in_cr", Kind: dataset.KindFloat},
		{Name: "new_total", Kind: dataset.KindFloat},
		{Name: "total_buy_clients", Kind: dataset.KindFloat},
		{Name: "total_sell_clients", Kind: dataset.KindFloat},
		{Name: "buy_percent", Kind: dataset.KindFloat},
		{Name: "sell_percent", Kind: dataset.KindFloat},
		{Name: "market_cap", Kind: dataset.KindFloat},
		{Name: "market_cap_percentage", Kind: dataset.KindFloat},
		{Name: "created_at", Kind: dataset.KindTimestamp},
		{Name: "updated_at", Kind: dataset.KindTimestamp},
	}
	summaryFields = []dataset.Field{
		{Name: "date", Kind: dataset.KindDate},
		{Name: "instrument", Kind: dataset.KindString},
		{Name: "net_qty_carry_fwd", Kind: dataset.KindFloat},
		{Name: "net_value_in_cr", Kind: dataset.KindFloat},
	}
	totalFields = []dataset.Field{
		{Name: "date", Kind: dataset.KindDate},
		{Name: "day", Kind: dataset.KindString},
		{Name: "instrument", Kind: dataset.KindString},
		{Name: "net_qty_carry_fwd", Kind: dataset.KindFloat},
		{Name: "net_value_in_cr", Kind: dataset.KindFloat},
		{Name: "nsei_close", Kind: dataset.KindFloat},
	}
)

// FixtureTables builds deterministic raw tables covering the trading days
// (Monday to Friday) among the days calendar days ending at end.
func FixtureTables(end date.Date, days int) map[domain.DatasetKind]*dataset.Table {
	var sessions []date.Date
	for d := end.Add(-days + 1); !d.After(end); d = d.Add(1) {
		if wd := d.Time().Weekday(); wd != time.Saturday && wd != time.Sunday {
			sessions = append(sessions, d)
		}
	}

	index := dataset.NewBuilder(domain.DatasetIndex.Table(), entityFields...)
	stocks := dataset.NewBuilder(domain.DatasetStocks.Table(), entityFields...)
	summary := dataset.NewBuilder(domain.DatasetSummary.Table(), summaryFields...)
	totalIndex := dataset.NewBuilder(domain.DatasetTotalIndex.Table(), totalFields...)
	totalStocks := dataset.NewBuilder(domain.DatasetTotalStocks.Table(), totalFields...)

	for i, d := range sessions {
		stamp := d.Time().Add(18*time.Hour + 30*time.Minute)
		var idxValue, stkValue, idxQty, stkQty float64

		for s, sym := range FixtureIndices {
			row := entityRow(d, sym, i, s, 1.0, stamp)
			index.Append(row...)
			idxValue += row[5].(float64)
			idxQty += row[4].(float64)
		}
		for s, sym := range FixtureStocks {
			row := entityRow(d, sym, i, s, 0.25, stamp)
			stocks.Append(row...)
			stkValue += row[5].(float64)
			stkQty += row[4].(float64)
		}
		for s, inst := range FixtureInstruments {
			summary.Append(d, inst,
				round(wave(i, s, 50000, 0.8)),
				round(wave(i, s, 2500, 1.1)))
		}

		nsei := round(22000 + 35*float64(i) + 180*math.Sin(float64(i)/3))
		day := d.Time().Weekday().String()
		totalIndex.Append(d, day, "INDEX", round(idxQty), round(idxValue), nsei)
		totalStocks.Append(d, day, "STOCKS", round(stkQty), round(stkValue), nsei)
	}

	out := make(map[domain.DatasetKind]*dataset.Table, 5)
	for kind, b := range map[domain.DatasetKind]*dataset.Builder{
		domain.DatasetIndex:       index,
		domain.DatasetStocks:      stocks,
		domain.DatasetSummary:     summary,
		domain.DatasetTotalIndex:  totalIndex,
		domain.DatasetTotalStocks: totalStocks,
	} {
		t, err := b.Build()
		if err != nil {
			panic(fmt.Sprintf("fixture %s: %v", kind, err))
		}
		out[kind] = t
	}
	return out
}

// LoadFixtures writes FixtureTables into w.
func LoadFixtures(ctx context.Context, w storage.MarketDataWriter, end date.Date, days int) error {
	tables := FixtureTables(end, days)
	for _, kind := range domain.AllDatasets() {
		if err := w.Insert(ctx, kind, tables[kind]); err != nil {
			return fmt.Errorf("load %s fixtures: %w", kind, err)
		}
	}
	return nil
}

func entityRow(d date.Date, symbol string, i, s int, scale float64, stamp time.Time) []any {
	long := round(wave(i, s, 120000*scale, 0.9))
	short := round(wave(i, s+3, 90000*scale, 1.3))
	buyers := math.Round(wave(i, s, 4000*scale, 0.7))
	sellers := math.Round(wave(i, s+1, 3600*scale, 0.6))
	buyPct := round(100 * buyers / (buyers + sellers))
	return []any{
		d,
		symbol,
		long,
		short,
		round(long - short),
		round(wave(i, s, 1500*scale, 1.7) - 1200*scale),
		buyers + sellers,
		buyers,
		sellers,
		buyPct,
		round(100 - buyPct),
		round(wave(i, s, 900000*scale, 0.2)),
		math.Round(wave(i, s, 0.05, 0.4)*10000) / 10000, // stored as a fraction
		stamp,
		stamp,
	}
}

// wave is a deterministic positive series with a trend and a per-symbol phase.
func wave(i, s int, base, amp float64) float64 {
	x := float64(i)
	phase := float64(s) * 0.7
	return base * (1 + 0.01*x*float64(s%3-1) + 0.15*amp*math.Sin(x/2+phase))
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
