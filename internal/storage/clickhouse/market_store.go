package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// Server error codes.
const (
	errUnknownTable    = 60
	errUnknownDatabase = 81
)

// MarketStore implements storage.Store using ClickHouse.
// Tables use ReplacingMergeTree, so reads go through FINAL and a repeated
// insert of the same key replaces the row instead of failing.
type MarketStore struct {
	conn *Conn
}

// NewMarketStore creates a new MarketStore.
func NewMarketStore(conn *Conn) *MarketStore {
	return &MarketStore{conn: conn}
}

// Compile-time interface check.
var _ storage.Store = (*MarketStore)(nil)

// Driver returns "clickhouse".
func (s *MarketStore) Driver() string { return "clickhouse" }

// Ping verifies the connection.
func (s *MarketStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

// Load reads every row of the table backing kind.
func (s *MarketStore) Load(ctx context.Context, kind domain.DatasetKind) (*dataset.Table, error) {
	name, err := storage.TableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.conn.Query(ctx, "SELECT * FROM "+quote(name)+" FINAL")
	if err != nil {
		return nil, s.wrap(name, err)
	}
	defer rows.Close()

	types := rows.ColumnTypes()
	fields := make([]dataset.Field, len(types))
	for i, ct := range types {
		fields[i] = dataset.Field{Name: ct.Name(), Kind: kindForType(ct.DatabaseTypeName())}
	}

	b := dataset.NewBuilder(name, fields...)
	for rows.Next() {
		dest := make([]any, len(types))
		for i, ct := range types {
			dest[i] = reflect.New(ct.ScanType()).Interface()
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("read %s row: %w", name, err)
		}
		cells := make([]any, len(dest))
		for i, ptr := range dest {
			cells[i], err = fromCH(deref(ptr), fields[i].Kind)
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

	var n uint64
	if err := s.conn.QueryRow(ctx, "SELECT count() FROM "+quote(name)+" FINAL").Scan(&n); err != nil {
		return 0, s.wrap(name, err)
	}
	return int64(n), nil
}

// LastUpdated returns the latest updated_at of market_index.
func (s *MarketStore) LastUpdated(ctx context.Context) (time.Time, error) {
	const query = `SELECT maxOrNull(updated_at) FROM market_index FINAL`

	var last *time.Time
	if err := s.conn.QueryRow(ctx, query).Scan(&last); err != nil {
		if isUnknownTable(err) {
			return time.Time{}, storage.ErrNotFound
		}
		return time.Time{}, fmt.Errorf("query last update: %w", err)
	}
	if last == nil || last.IsZero() {
		return time.Time{}, storage.ErrNotFound
	}
	return last.UTC(), nil
}

// Insert appends the rows of t to the table backing kind in one batch.
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

	types, err := s.columnTypes(ctx, name)
	if err != nil {
		return err
	}

	fields := t.Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		if _, ok := types[f.Name]; !ok {
			return fmt.Errorf("%w: column %s not in %s", storage.ErrInvalidInput, f.Name, name)
		}
		columns[i] = quote(f.Name)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s)", quote(name), strings.Join(columns, ", "))
	batch, err := s.conn.PrepareBatch(ctx, query)
	if err != nil {
		return s.wrap(name, err)
	}
	defer batch.Abort()

	for r := 0; r < t.Len(); r++ {
		values := make([]any, len(fields))
		for i, f := range fields {
			values[i] = toCH(t.Cell(r, f.Name), types[f.Name])
		}
		if err := batch.Append(values...); err != nil {
			return fmt.Errorf("append %s row %d: %w", name, r, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send %s batch: %w", name, err)
	}
	return nil
}

// columnTypes returns the declared type of every column of table.
func (s *MarketStore) columnTypes(ctx context.Context, table string) (map[string]string, error) {
	const query = `SELECT name, type FROM system.columns WHERE database = currentDatabase() AND table = ?`

	rows, err := s.conn.Query(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	types := make(map[string]string)
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("describe %s: %w", table, err)
		}
		types[name] = typ
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("describe %s: %w", table, err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("table %s: %w", table, storage.ErrNotFound)
	}
	return types, nil
}

func (s *MarketStore) wrap(table string, err error) error {
	if isUnknownTable(err) {
		return fmt.Errorf("table %s: %w", table, storage.ErrNotFound)
	}
	return fmt.Errorf("query %s: %w", table, err)
}

func isUnknownTable(err error) bool {
	var ex *clickhouse.Exception
	if errors.As(err, &ex) {
		return ex.Code == errUnknownTable || ex.Code == errUnknownDatabase
	}
	return false
}

func quote(ident string) string {
	return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
}
