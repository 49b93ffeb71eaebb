package metrics

import (
	"sort"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

// Agg selects how values sharing a key are combined.
type Agg int

// Aggregations.
const (
	AggSum Agg = iota
	AggMean
)

// GroupValue is the aggregate of one key.
type GroupValue struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// GroupBy aggregates valueCol per distinct keyCol value.
// Rows with a NULL key or value are skipped. Results are sorted by key.
func GroupBy(t *dataset.Table, keyCol, valueCol string, agg Agg) ([]GroupValue, error) {
	keys, err := t.Strings(keyCol)
	if err != nil {
		return nil, err
	}
	values, err := t.Floats(valueCol)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64)
	for i := 0; i < t.Len(); i++ {
		k, okK := keys.At(i)
		v, okV := values.At(i)
		if !okK || !okV {
			continue
		}
		groups[k] = append(groups[k], v)
	}

	out := make([]GroupValue, 0, len(groups))
	for k, vals := range groups {
		g := GroupValue{Key: k, Count: len(vals)}
		switch agg {
		case AggMean:
			g.Value = computeMean(vals)
		default:
			g.Value = computeSum(vals)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Point is one dated value.
type Point struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// Series returns (date, value) pairs of t ordered by date.
// Rows with a NULL date or value are skipped; rows sharing a date keep input order.
func Series(t *dataset.Table, dateCol, valueCol string) ([]Point, error) {
	dates, err := t.Dates(dateCol)
	if err != nil {
		return nil, err
	}
	values, err := t.Floats(valueCol)
	if err != nil {
		return nil, err
	}
	var out []Point
	for i := 0; i < t.Len(); i++ {
		d, okD := dates.At(i)
		v, okV := values.At(i)
		if okD && okV {
			out = append(out, Point{Date: d, Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// SeriesBy splits Series per distinct keyCol value.
func SeriesBy(t *dataset.Table, dateCol, keyCol, valueCol string) (map[string][]Point, error) {
	keys, err := t.Strings(keyCol)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]Point)
	for _, k := range keys.Valid() {
		if _, done := out[k]; done {
			continue
		}
		sub, err := t.FilterIn(keyCol, []string{k})
		if err != nil {
			return nil, err
		}
		pts, err := Series(sub, dateCol, valueCol)
		if err != nil {
			return nil, err
		}
		out[k] = pts
	}
	return out, nil
}
