// Package dashboard assembles the dashboard views from the market data store.
//
// Every call is request scoped: the caller passes the date range and symbol
// selection, tables are loaded and mapped onto canonical columns per call, and
// each view returns its own value or error.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Avishah123/hb-dashboard/internal/config"
	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/observability"
	"github.com/Avishah123/hb-dashboard/internal/schema"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// DefaultSelection is the number of symbols selected when a request names none.
const DefaultSelection = 3

// Request carries the caller's filter state.
type Request struct {
	Range   date.Range
	Symbols []string
}

// Service builds dashboard views on top of a MarketDataStore.
type Service struct {
	store    storage.MarketDataStore
	log      zerolog.Logger
	metrics  *observability.Metrics
	defaults config.AnalysisConfig
	now      func() time.Time
}

// NewService creates a Service with the default analysis settings.
func NewService(store storage.MarketDataStore, log zerolog.Logger) *Service {
	return &Service{
		store:    store,
		log:      log.With().Str("component", "dashboard").Logger(),
		metrics:  observability.DefaultMetrics,
		defaults: config.Default().Analysis,
		now:      time.Now,
	}
}

// WithMetrics replaces the metrics sink.
func (s *Service) WithMetrics(m *observability.Metrics) *Service {
	s.metrics = m
	return s
}

// WithDefaults sets the lookback and threshold used when a request omits them.
func (s *Service) WithDefaults(a config.AnalysisConfig) *Service {
	s.defaults = a
	return s
}

// WithClock sets the clock used for status timestamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Defaults returns the analysis defaults in use.
func (s *Service) Defaults() config.AnalysisConfig { return s.defaults }

// Load reads the table backing kind and maps it onto canonical columns.
func (s *Service) Load(ctx context.Context, kind domain.DatasetKind) (*dataset.Table, error) {
	mapping, ok := schema.For(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDataset, kind)
	}

	start := time.Now()
	t, err := s.load(ctx, kind, mapping)
	rows := 0
	if t != nil {
		rows = t.Len()
	}
	s.metrics.RecordDatasetLoad(string(kind), rows, time.Since(start).Seconds(), err)
	if err != nil {
		s.log.Warn().Err(err).Str("dataset", string(kind)).Msg("dataset load failed")
		return nil, err
	}

	s.log.Debug().
		Str("dataset", string(kind)).
		Int("rows", rows).
		Dur("took", time.Since(start)).
		Msg("dataset loaded")
	return t, nil
}

func (s *Service) load(ctx context.Context, kind domain.DatasetKind, m schema.Mapping) (*dataset.Table, error) {
	raw, err := s.store.Load(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kind, err)
	}
	t, err := m.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", kind, err)
	}
	return t, nil
}

// loadFiltered loads kind and keeps the rows inside r.
func (s *Service) loadFiltered(ctx context.Context, kind domain.DatasetKind, r date.Range) (*dataset.Table, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	t, err := s.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	return t.FilterDates(domain.ColDate, r)
}

// loadOptional is loadFiltered with a missing table read as nil.
func (s *Service) loadOptional(ctx context.Context, kind domain.DatasetKind, r date.Range) (*dataset.Table, error) {
	t, err := s.loadFiltered(ctx, kind, r)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return t, err
}

// DateRange returns the earliest and latest date across every stored dataset.
// The range is open when no dataset has rows.
func (s *Service) DateRange(ctx context.Context) (date.Range, error) {
	var out date.Range
	for _, kind := range domain.AllDatasets() {
		t, err := s.loadOptional(ctx, kind, date.Range{})
		if err != nil {
			return date.Range{}, err
		}
		if t == nil {
			continue
		}
		min, max, ok, err := t.DateBounds(domain.ColDate)
		if err != nil {
			return date.Range{}, err
		}
		if !ok {
			continue
		}
		if out.From.IsZero() || min.Before(out.From) {
			out.From = min
		}
		if out.To.IsZero() || max.After(out.To) {
			out.To = max
		}
	}
	return out, nil
}

// Status reports store connectivity, per-table row counts and the last update.
// Store failures are reported in the status, not returned.
func (s *Service) Status(ctx context.Context) (*domain.StoreStatus, error) {
	st := &domain.StoreStatus{
		Driver:    s.store.Driver(),
		Counts:    make(map[domain.DatasetKind]int64),
		CheckedAt: s.now().UTC(),
	}

	if err := s.store.Ping(ctx); err != nil {
		st.Error = err.Error()
		s.metrics.RecordStoreStatus(false, nil)
		s.log.Warn().Err(err).Msg("store ping failed")
		return st, nil
	}
	st.Connected = true

	for _, kind := range domain.AllDatasets() {
		n, err := s.store.Count(ctx, kind)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", kind, err)
		}
		st.Counts[kind] = n
	}

	last, err := s.store.LastUpdated(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("last update: %w", err)
	default:
		last = last.UTC()
		st.LastUpdated = &last
	}

	s.metrics.RecordStoreStatus(true, st.LastUpdated)
	return st, nil
}

func requireEntities(kind domain.DatasetKind) error {
	if _, ok := schema.For(kind); !ok {
		return fmt.Errorf("%w: %q", storage.ErrUnknownDataset, kind)
	}
	if !kind.HasEntities() {
		return fmt.Errorf("%w: %s has no symbols", ErrUnsupported, kind)
	}
	return nil
}
