// Package dataset implements an immutable in-memory table of typed, nullable columns.
package dataset

import (
	"fmt"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/date"
)

// Kind is the value type of a column.
type Kind uint8

// Column kinds. Cells hold nil (NULL) or the Go type named in the comment.
const (
	KindString    Kind = iota + 1 // string
	KindFloat                     // float64
	KindDate                      // date.Date
	KindTimestamp                 // time.Time
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindTimestamp:
		return "timestamp"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Field describes one column.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Table is a named set of rows sharing the same fields.
// A Table is never modified after construction; filters return new tables
// sharing row storage with the receiver.
type Table struct {
	name   string
	fields []Field
	index  map[string]int
	rows   [][]any
}

// New builds a table. Every row must have one cell per field and every
// non-nil cell must match the field kind.
func New(name string, fields []Field, rows [][]any) (*Table, error) {
	t := &Table{
		name:   name,
		fields: append([]Field(nil), fields...),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := t.index[f.Name]; dup {
			return nil, &SchemaError{Table: name, Column: f.Name, Reason: "duplicate column"}
		}
		t.index[f.Name] = i
	}
	t.rows = make([][]any, 0, len(rows))
	for r, row := range rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("table %s: row %d has %d cells, want %d", name, r, len(row), len(fields))
		}
		for c, cell := range row {
			if !cellMatches(cell, fields[c].Kind) {
				return nil, fmt.Errorf("table %s: row %d column %s: %T is not a %s", name, r, fields[c].Name, cell, fields[c].Kind)
			}
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// Empty returns a table with the given fields and no rows.
func Empty(name string, fields ...Field) *Table {
	t, _ := New(name, fields, nil)
	return t
}

func cellMatches(cell any, k Kind) bool {
	if cell == nil {
		return true
	}
	switch k {
	case KindString:
		_, ok := cell.(string)
		return ok
	case KindFloat:
		_, ok := cell.(float64)
		return ok
	case KindDate:
		_, ok := cell.(date.Date)
		return ok
	case KindTimestamp:
		_, ok := cell.(time.Time)
		return ok
	}
	return false
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Fields returns a copy of the column descriptors.
func (t *Table) Fields() []Field { return append([]Field(nil), t.fields...) }

// Field looks up a column descriptor.
func (t *Table) Field(name string) (Field, bool) {
	i, ok := t.index[name]
	if !ok {
		return Field{}, false
	}
	return t.fields[i], true
}

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Require checks that the column exists with the given kind.
func (t *Table) Require(name string, kind Kind) error {
	f, ok := t.Field(name)
	if !ok {
		return missingColumn(t.name, name)
	}
	if f.Kind != kind {
		return wrongKind(t.name, name, f.Kind, kind)
	}
	return nil
}

// Cell returns the raw cell at (row, column), nil for NULL or unknown column.
func (t *Table) Cell(row int, name string) any {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.rows[row][i]
}

// Row returns a copy of the cells of a row keyed by column name.
func (t *Table) Row(row int) map[string]any {
	out := make(map[string]any, len(t.fields))
	for i, f := range t.fields {
		out[f.Name] = t.rows[row][i]
	}
	return out
}

// Filter returns the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := &Table{name: t.name, fields: t.fields, index: t.index}
	for r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, t.rows[r])
		}
	}
	return out
}

// Select returns a table restricted to the named columns, skipping unknown ones.
func (t *Table) Select(names ...string) *Table {
	var fields []Field
	var idx []int
	for _, n := range names {
		if i, ok := t.index[n]; ok {
			fields = append(fields, t.fields[i])
			idx = append(idx, i)
		}
	}
	rows := make([][]any, len(t.rows))
	for r, row := range t.rows {
		cells := make([]any, len(idx))
		for c, i := range idx {
			cells[c] = row[i]
		}
		rows[r] = cells
	}
	out, _ := New(t.name, fields, rows)
	return out
}

// Drop returns a table without the named columns.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []string
	for _, f := range t.fields {
		if !drop[f.Name] {
			keep = append(keep, f.Name)
		}
	}
	return t.Select(keep...)
}
