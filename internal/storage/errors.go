package storage

import "errors"

// Storage errors.
var (
	// ErrNotFound is returned when a requested table or value does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnknownDataset is returned for a dataset kind with no backing table.
	ErrUnknownDataset = errors.New("unknown dataset")

	// ErrDuplicateKey is returned when inserted rows collide with a unique key.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
