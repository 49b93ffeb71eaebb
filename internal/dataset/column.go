package dataset

import (
	"time"

	"github.com/Avishah123/hb-dashboard/internal/date"
)

// Column is a typed, read-only view of one table column.
type Column[T any] struct {
	vals  []T
	valid []bool
}

// Len returns the number of cells.
func (c Column[T]) Len() int { return len(c.vals) }

// At returns the cell value and false when the cell is NULL.
func (c Column[T]) At(i int) (T, bool) { return c.vals[i], c.valid[i] }

// Valid returns the non-NULL values in row order.
func (c Column[T]) Valid() []T {
	out := make([]T, 0, len(c.vals))
	for i, v := range c.vals {
		if c.valid[i] {
			out = append(out, v)
		}
	}
	return out
}

func typed[T any](t *Table, name string, kind Kind) (Column[T], error) {
	if err := t.Require(name, kind); err != nil {
		return Column[T]{}, err
	}
	i := t.index[name]
	col := Column[T]{vals: make([]T, len(t.rows)), valid: make([]bool, len(t.rows))}
	for r, row := range t.rows {
		if v, ok := row[i].(T); ok {
			col.vals[r] = v
			col.valid[r] = true
		}
	}
	return col, nil
}

// Floats returns a float column.
func (t *Table) Floats(name string) (Column[float64], error) {
	return typed[float64](t, name, KindFloat)
}

// Strings returns a string column.
func (t *Table) Strings(name string) (Column[string], error) {
	return typed[string](t, name, KindString)
}

// Dates returns a date column.
func (t *Table) Dates(name string) (Column[date.Date], error) {
	return typed[date.Date](t, name, KindDate)
}

// Timestamps returns a timestamp column.
func (t *Table) Timestamps(name string) (Column[time.Time], error) {
	return typed[time.Time](t, name, KindTimestamp)
}
