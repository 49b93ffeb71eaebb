package dataset

import (
	"sort"

	"github.com/Avishah123/hb-dashboard/internal/date"
)

// FilterDates keeps the rows whose date column falls inside r (inclusive).
// Rows with a NULL date are dropped unless r is open.
func (t *Table) FilterDates(column string, r date.Range) (*Table, error) {
	dates, err := t.Dates(column)
	if err != nil {
		return nil, err
	}
	if r.IsOpen() {
		return t, nil
	}
	return t.Filter(func(i int) bool {
		d, ok := dates.At(i)
		return ok && r.Contains(d)
	}), nil
}

// FilterIn keeps the rows whose string column equals one of values.
func (t *Table) FilterIn(column string, values []string) (*Table, error) {
	col, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return t.Filter(func(i int) bool {
		s, ok := col.At(i)
		if !ok {
			return false
		}
		_, in := set[s]
		return in
	}), nil
}

// DateBounds returns the earliest and latest non-NULL date in column.
// ok is false when the column has no dates.
func (t *Table) DateBounds(column string) (min, max date.Date, ok bool, err error) {
	dates, err := t.Dates(column)
	if err != nil {
		return date.Date{}, date.Date{}, false, err
	}
	for _, d := range dates.Valid() {
		if !ok || d.Before(min) {
			min = d
		}
		if !ok || d.After(max) {
			max = d
		}
		ok = true
	}
	return min, max, ok, nil
}

// Unique returns the distinct non-NULL values of a string column, sorted.
func (t *Table) Unique(column string) ([]string, error) {
	col, err := t.Strings(column)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, s := range col.Valid() {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out, nil
}
