package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

func rawStocks(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewBuilder("market_stocks",
		dataset.Field{Name: "id", Kind: dataset.KindFloat},
		dataset.Field{Name: "date", Kind: dataset.KindTimestamp},
		dataset.Field{Name: "symbol", Kind: dataset.KindString},
		dataset.Field{Name: "net_value_in_cr", Kind: dataset.KindString},
		dataset.Field{Name: "market_cap_percentage", Kind: dataset.KindFloat},
	).
		Append(1.0, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), "TCS", "1,250.50", 0.0425).
		Append(2.0, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), "TCS", nil, nil).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tbl
}

func TestApply_RenamesConvertsAndScales(t *testing.T) {
	m, ok := For(domain.DatasetStocks)
	if !ok {
		t.Fatal("missing stocks mapping")
	}
	out, err := m.Apply(rawStocks(t))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !out.Has("id") {
		t.Error("unmapped columns must be carried over")
	}
	dates, err := out.Dates(domain.ColDate)
	if err != nil {
		t.Fatalf("Dates failed: %v", err)
	}
	if d, _ := dates.At(0); d != date.MustParse("2025-03-03") {
		t.Errorf("expected 2025-03-03, got %s", d)
	}

	values, err := out.Floats(domain.ColNetValue)
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}
	if v, ok := values.At(0); !ok || v != 1250.5 {
		t.Errorf("expected 1250.5, got %v", v)
	}
	if _, ok := values.At(1); ok {
		t.Error("NULL must stay NULL")
	}

	pct, err := out.Floats(domain.ColMarketCapPercentage)
	if err != nil {
		t.Fatalf("Floats failed: %v", err)
	}
	if v, _ := pct.At(0); v < 4.2499 || v > 4.2501 {
		t.Errorf("expected market cap percentage scaled to 4.25, got %v", v)
	}
}

func TestApply_MissingRequiredColumn(t *testing.T) {
	raw := dataset.Empty("market_index", dataset.Field{Name: "date", Kind: dataset.KindDate})
	_, err := Mappings[domain.DatasetIndex].Apply(raw)

	var se *dataset.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Column != "symbol" {
		t.Errorf("expected missing symbol, got %q", se.Column)
	}
}

func TestApply_BadNumericValue(t *testing.T) {
	raw, err := dataset.NewBuilder("market_summary",
		dataset.Field{Name: "date", Kind: dataset.KindString},
		dataset.Field{Name: "net_value_in_cr", Kind: dataset.KindString},
	).Append("2025-03-03", "n/a").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	_, err = Mappings[domain.DatasetSummary].Apply(raw)
	if !errors.Is(err, dataset.ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestVisibleColumns(t *testing.T) {
	m := Mappings[domain.DatasetStocks]
	out, err := m.Apply(rawStocks(t))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	for _, c := range m.VisibleColumns(out) {
		if c == "id" {
			t.Error("id must be hidden by default")
		}
	}
}

func TestMappings_CoverAllDatasets(t *testing.T) {
	for _, k := range domain.AllDatasets() {
		m, ok := For(k)
		if !ok {
			t.Errorf("no mapping for %s", k)
			continue
		}
		if m.Table != k.Table() {
			t.Errorf("%s: table %q, want %q", k, m.Table, k.Table())
		}
	}
}
