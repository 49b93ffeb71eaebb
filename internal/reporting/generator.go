package reporting

import (
	"context"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// Source provides the computed dashboard data reports are built from.
type Source interface {
	Changes(ctx context.Context, kind domain.DatasetKind, r date.Range, p change.Params) (*change.Result, error)
	Trend(ctx context.Context, kind domain.DatasetKind, r date.Range, m domain.Measure, symbol string, lookbackDays int) (*domain.Trend, error)
	Status(ctx context.Context) (*domain.StoreStatus, error)
}

// Generator produces reports from a Source.
type Generator struct {
	source Source
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(source Source) *Generator {
	return &Generator{
		source: source,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Changes builds a significant-change report.
func (g *Generator) Changes(ctx context.Context, kind domain.DatasetKind, r date.Range, p change.Params) (*ChangeReport, error) {
	res, err := g.source.Changes(ctx, kind, r, p)
	if err != nil {
		return nil, err
	}
	return &ChangeReport{
		GeneratedAt: g.now(),
		Dataset:     kind,
		Range:       r,
		Result:      res,
		Rising:      FormatChanges(res.Rising, res.Params.Measure),
		Falling:     FormatChanges(res.Falling, res.Params.Measure),
	}, nil
}

// Trend builds a drill-down report for one symbol.
func (g *Generator) Trend(ctx context.Context, kind domain.DatasetKind, r date.Range, m domain.Measure, symbol string, lookbackDays int) (*TrendReport, error) {
	tr, err := g.source.Trend(ctx, kind, r, m, symbol, lookbackDays)
	if err != nil {
		return nil, err
	}
	return &TrendReport{GeneratedAt: g.now(), Dataset: kind, Range: r, Trend: tr}, nil
}

// Status builds a store status report.
func (g *Generator) Status(ctx context.Context) (*StatusReport, error) {
	st, err := g.source.Status(ctx)
	if err != nil {
		return nil, err
	}
	return &StatusReport{GeneratedAt: g.now(), Status: st}, nil
}
