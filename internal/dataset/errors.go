package dataset

import (
	"errors"
	"fmt"
)

// ErrSchema matches every *SchemaError via errors.Is.
var ErrSchema = errors.New("schema error")

// SchemaError reports a required column that is absent or has the wrong type.
type SchemaError struct {
	Table  string
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema error: %s.%s: %s", e.Table, e.Column, e.Reason)
}

// Is reports whether target is ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

func missingColumn(table, column string) error {
	return &SchemaError{Table: table, Column: column, Reason: "column not found"}
}

func wrongKind(table, column string, got, want Kind) error {
	return &SchemaError{
		Table:  table,
		Column: column,
		Reason: fmt.Sprintf("expected %s column, got %s", want, got),
	}
}
