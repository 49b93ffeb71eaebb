package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// Store is an in-memory implementation of storage.Store.
type Store struct {
	mu     sync.RWMutex
	tables map[domain.DatasetKind]*dataset.Table // keyed by dataset kind
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{
		tables: make(map[domain.DatasetKind]*dataset.Table),
	}
}

// Compile-time interface check.
var _ storage.Store = (*Store)(nil)

// Driver returns "memory".
func (s *Store) Driver() string { return "memory" }

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Insert appends rows. The columns of t must match the stored columns once the
// first table for kind has been inserted.
func (s *Store) Insert(_ context.Context, kind domain.DatasetKind, t *dataset.Table) error {
	name, err := storage.TableFor(kind)
	if err != nil {
		return err
	}
	if t == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tables[kind]
	if !ok {
		existing = dataset.Empty(name, t.Fields()...)
	}
	merged, err := dataset.Concat(name, existing, t)
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrInvalidInput, err)
	}
	s.tables[kind] = merged
	return nil
}

// Load returns the stored table. Tables are immutable, so the stored value is shared.
func (s *Store) Load(_ context.Context, kind domain.DatasetKind) (*dataset.Table, error) {
	name, err := storage.TableFor(kind)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[kind]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", name, storage.ErrNotFound)
	}
	return t, nil
}

// Count returns the number of stored rows of kind.
func (s *Store) Count(ctx context.Context, kind domain.DatasetKind) (int64, error) {
	t, err := s.Load(ctx, kind)
	if err != nil {
		return 0, err
	}
	return int64(t.Len()), nil
}

// LastUpdated returns the latest updated_at of the index table.
func (s *Store) LastUpdated(ctx context.Context) (time.Time, error) {
	t, err := s.Load(ctx, domain.DatasetIndex)
	if err != nil {
		return time.Time{}, err
	}
	col, err := t.Timestamps(domain.ColUpdatedAt)
	if err != nil {
		return time.Time{}, storage.ErrNotFound
	}
	var last time.Time
	for _, ts := range col.Valid() {
		if ts.After(last) {
			last = ts
		}
	}
	if last.IsZero() {
		return time.Time{}, storage.ErrNotFound
	}
	return last, nil
}
