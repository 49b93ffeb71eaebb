package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// withDefaults fills the zero fields of p from the dataset defaults.
func (s *Service) withDefaults(kind domain.DatasetKind, p change.Params) change.Params {
	d := s.defaults.For(kind)
	if p.Measure == "" {
		p.Measure = domain.MeasureNetValue
	}
	if p.LookbackDays == 0 {
		p.LookbackDays = d.LookbackDays
	}
	if p.ThresholdPercent == 0 {
		p.ThresholdPercent = d.ThresholdPercent
	}
	return p
}

// Changes runs change detection over kind restricted to r.
// Zero parameters take the dataset defaults.
func (s *Service) Changes(ctx context.Context, kind domain.DatasetKind, r date.Range, p change.Params) (*change.Result, error) {
	if err := requireEntities(kind); err != nil {
		return nil, err
	}
	p = s.withDefaults(kind, p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	t, err := s.loadFiltered(ctx, kind, r)
	if err != nil {
		return nil, err
	}
	res, err := change.DetectTable(t, p)
	if err != nil {
		return nil, fmt.Errorf("detect %s changes: %w", kind, err)
	}

	s.metrics.RecordDetection(string(kind), string(p.Measure), string(res.Status), len(res.Rising), len(res.Falling))
	s.log.Info().
		Str("dataset", string(kind)).
		Str("measure", string(p.Measure)).
		Int("lookback_days", p.LookbackDays).
		Float64("threshold", p.ThresholdPercent).
		Str("status", string(res.Status)).
		Int("rising", len(res.Rising)).
		Int("falling", len(res.Falling)).
		Msg("change detection")
	return res, nil
}

// Trend returns the drill-down series and statistics of symbol in kind.
// A zero lookback takes the dataset default. Symbols are matched case-insensitively.
func (s *Service) Trend(ctx context.Context, kind domain.DatasetKind, r date.Range, m domain.Measure, symbol string, lookbackDays int) (*domain.Trend, error) {
	if err := requireEntities(kind); err != nil {
		return nil, err
	}
	p := s.withDefaults(kind, change.Params{Measure: m, LookbackDays: lookbackDays})

	t, err := s.loadFiltered(ctx, kind, r)
	if err != nil {
		return nil, err
	}
	symbols, err := t.Unique(domain.ColSymbol)
	if err != nil {
		return nil, err
	}
	match := ""
	for _, sym := range symbols {
		if strings.EqualFold(sym, symbol) {
			match = sym
			break
		}
	}
	if match == "" {
		return nil, fmt.Errorf("%w: %q in %s", ErrUnknownSymbol, symbol, kind)
	}

	return change.TrendTable(t, p.Measure, match, p.LookbackDays)
}
