package dashboard

import "errors"

// Dashboard errors.
var (
	// ErrUnsupported is returned when an operation does not apply to a dataset,
	// such as listing symbols of a totals table.
	ErrUnsupported = errors.New("operation not supported for dataset")

	// ErrUnknownSymbol is returned when a drill-down names a symbol with no rows.
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrInvalidRange is returned when a request range starts after it ends.
	ErrInvalidRange = errors.New("invalid date range")
)
