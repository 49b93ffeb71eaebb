package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// MarketDataStore provides read access to the market-activity tables.
// Tables are returned with their stored column names; the schema package
// maps them onto canonical columns.
type MarketDataStore interface {
	// Load returns every row of the table backing kind.
	// Returns ErrUnknownDataset if kind has no table.
	Load(ctx context.Context, kind domain.DatasetKind) (*dataset.Table, error)

	// Count returns the number of rows of the table backing kind.
	Count(ctx context.Context, kind domain.DatasetKind) (int64, error)

	// LastUpdated returns MAX(updated_at) of market_index.
	// Returns ErrNotFound if no row carries a timestamp.
	LastUpdated(ctx context.Context) (time.Time, error)

	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// Driver names the backing implementation.
	Driver() string
}

// MarketDataWriter appends rows to the market-activity tables.
type MarketDataWriter interface {
	// Insert appends the rows of t, whose columns use stored names, to the
	// table backing kind. Returns ErrDuplicateKey on a unique key collision.
	Insert(ctx context.Context, kind domain.DatasetKind, t *dataset.Table) error
}

// Store is a readable and writable market data store.
type Store interface {
	MarketDataStore
	MarketDataWriter
}

// TableFor returns the table name of kind or ErrUnknownDataset.
func TableFor(kind domain.DatasetKind) (string, error) {
	name := kind.Table()
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, kind)
	}
	return name, nil
}
