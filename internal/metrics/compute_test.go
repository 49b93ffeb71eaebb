package metrics

import (
	"math"
	"testing"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

func TestComputeStddev_Sample(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	mean := computeMean(values)
	if mean != 5 {
		t.Fatalf("expected mean 5, got %f", mean)
	}
	// Population stddev is 2; sample stddev is sqrt(32/7).
	want := math.Sqrt(32.0 / 7.0)
	if got := computeStddev(values, mean); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected sample stddev %f, got %f", want, got)
	}
}

func TestComputePercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	if got := computePercentile(sorted, 0.5); got != 2.5 {
		t.Errorf("expected median 2.5, got %f", got)
	}
	if got := computePercentile(sorted, 1.0); got != 4 {
		t.Errorf("expected p100 4, got %f", got)
	}
	if got := computePercentile(nil, 0.5); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{3, 1, math.NaN(), 2})
	if s.Count != 3 {
		t.Fatalf("expected count 3, got %d", s.Count)
	}
	if s.Min != 1 || s.Max != 3 || s.Mean != 2 || s.Median != 2 || s.Sum != 6 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Stddev == nil || *s.Stddev != 1 {
		t.Errorf("expected stddev 1, got %v", s.Stddev)
	}
}

func TestDescribe_SingleValueHasNoStddev(t *testing.T) {
	s := Describe([]float64{42})
	if s.Stddev != nil {
		t.Errorf("expected nil stddev, got %f", *s.Stddev)
	}
	if s.Mean != 42 || s.Min != 42 || s.Max != 42 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func groupTable(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewBuilder("market_stocks",
		dataset.Field{Name: "Date", Kind: dataset.KindDate},
		dataset.Field{Name: "Symbol", Kind: dataset.KindString},
		dataset.Field{Name: "V", Kind: dataset.KindFloat},
	).
		Append(date.MustParse("2025-01-02"), "B", 4.0).
		Append(date.MustParse("2025-01-01"), "A", 1.0).
		Append(date.MustParse("2025-01-02"), "A", 3.0).
		Append(date.MustParse("2025-01-03"), "A", nil).
		Append(date.MustParse("2025-01-03"), nil, 9.0).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tbl
}

func TestGroupBy(t *testing.T) {
	tbl := groupTable(t)

	sums, err := GroupBy(tbl, "Symbol", "V", AggSum)
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	if len(sums) != 2 || sums[0].Key != "A" || sums[0].Value != 4 || sums[1].Value != 4 {
		t.Errorf("unexpected sums %+v", sums)
	}

	means, err := GroupBy(tbl, "Symbol", "V", AggMean)
	if err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}
	if means[0].Value != 2 || means[0].Count != 2 {
		t.Errorf("unexpected mean for A: %+v", means[0])
	}
}

func TestSeriesBy(t *testing.T) {
	tbl := groupTable(t)
	series, err := SeriesBy(tbl, "Date", "Symbol", "V")
	if err != nil {
		t.Fatalf("SeriesBy failed: %v", err)
	}
	a := series["A"]
	if len(a) != 2 {
		t.Fatalf("expected 2 points for A, got %d", len(a))
	}
	if !a[0].Date.Before(a[1].Date) {
		t.Errorf("series must be date ordered: %+v", a)
	}
}
