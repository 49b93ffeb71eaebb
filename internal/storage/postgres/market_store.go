package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// MarketStore implements storage.Store using PostgreSQL.
type MarketStore struct {
	pool *Pool
}

// NewMarketStore creates a new MarketStore.
func NewMarketStore(pool *Pool) *MarketStore {
	return &MarketStore{pool: pool}
}

// Compile-time interface check.
var _ storage.Store = (*MarketStore)(nil)

// Driver returns "postgres".
func (s *MarketStore) Driver() string { return "postgres" }

// Ping verifies the pool can reach the server.
func (s *MarketStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Load reads every row of the table backing kind.
func (s *MarketStore) Load(ctx context.Context, kind domain.DatasetKind) (*dataset.Table, error) {
	name, err := storage.TableFor(kind)
	if err != nil {
		return nil, err
	}

	query := "SELECT * FROM " + pgx.Identifier{name}.Sanitize()
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, s.wrap(name, err)
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	fields := make([]dataset.Field, len(descs))
	for i, fd := range descs {
		fields[i] = dataset.Field{Name: fd.Name, Kind: kindForOID(fd.DataTypeOID)}
	}

	b := dataset.NewBuilder(name, fields...)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s row: %w", name, err)
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i], err = fromPg(v, fields[i].Kind)
			if err != nil {
				return nil, fmt.Errorf("read %s.%s: %w", name, fields[i].Name, err)
			}
		}
		b.Append(cells...)
	}
	if err := rows.Err(); err != nil {
		return nil, s.wrap(name, err)
	}

	return b.Build()
}

// Count returns the row count of the table backing kind.
func (s *MarketStore) Count(ctx context.Context, kind domain.DatasetKind) (int64, error) {
	name, err := storage.TableFor(kind)
	if err != nil {
		return 0, err
	}

	var n int64
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{name}.Sanitize()
	if err := s.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, s.wrap(name, err)
	}
	return n, nil
}

// LastUpdated returns MAX(updated_at) of market_index.
func (s *MarketStore) LastUpdated(ctx context.Context) (time.Time, error) {
	const query = `SELECT MAX(updated_at) FROM market_index`

	var last *time.Time
	err := s.pool.QueryRow(ctx, query).Scan(&last)
	if err != nil {
		if isNotFoundError(err) || isUndefinedError(err) {
			return time.Time{}, storage.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("query last update: %w", err)
	}
	if last == nil {
		return time.Time{}, storage.ErrNotFound
	}
	return *last, nil
}

// Insert copies the rows of t into the table backing kind.
// Returns ErrDuplicateKey if any row violates a unique constraint.
func (s *MarketStore) Insert(ctx context.Context, kind domain.DatasetKind, t *dataset.Table) error {
	name, err := storage.TableFor(kind)
	if err != nil {
		return err
	}
	if t == nil {
		return storage.ErrInvalidInput
	}
	if t.Len() == 0 {
		return nil
	}

	fields := t.Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	rows := make([][]any, t.Len())
	for r := range rows {
		cells := make([]any, len(fields))
		for i, f := range fields {
			cells[i] = toPg(t.Cell(r, f.Name))
		}
		rows[r] = cells
	}

	_, err = s.pool.CopyFrom(ctx, pgx.Identifier{name}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("copy into %s: %w", name, err)
	}
	return nil
}

func (s *MarketStore) wrap(table string, err error) error {
	if hasCode(err, pgErrUndefinedTable) {
		return fmt.Errorf("table %s: %w", table, storage.ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", table, err)
}
