package dataset

// Builder accumulates rows for a new Table.
type Builder struct {
	name   string
	fields []Field
	rows   [][]any
}

// NewBuilder starts a table with the given fields.
func NewBuilder(name string, fields ...Field) *Builder {
	return &Builder{name: name, fields: fields}
}

// Append adds one row. Cells are positional; use nil for NULL.
func (b *Builder) Append(cells ...any) *Builder {
	b.rows = append(b.rows, cells)
	return b
}

// Len returns the number of rows appended so far.
func (b *Builder) Len() int { return len(b.rows) }

// Build validates the rows and returns the table.
func (b *Builder) Build() (*Table, error) {
	return New(b.name, b.fields, b.rows)
}

// Concat stacks tables with identical fields into one table named name.
func Concat(name string, tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return Empty(name), nil
	}
	fields := tables[0].fields
	var rows [][]any
	for _, t := range tables {
		if !sameFields(fields, t.fields) {
			return nil, &SchemaError{Table: name, Column: "*", Reason: "cannot concat tables with different columns"}
		}
		rows = append(rows, t.rows...)
	}
	return New(name, fields, rows)
}

func sameFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
