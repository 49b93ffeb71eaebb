package change

import (
	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/metrics"
)

// Trend returns the in-window series of one symbol with its statistics.
// The window ends at the latest date across all of obs, not just the symbol's.
// PctChange is nil unless the symbol has two distinct dates and a non-zero start.
func Trend(obs []domain.Observation, symbol string, lookbackDays int) (*domain.Trend, error) {
	if err := validateLookback(lookbackDays); err != nil {
		return nil, err
	}
	tr := &domain.Trend{Symbol: symbol, Points: []domain.TrendPoint{}}
	if len(obs) == 0 {
		tr.Stats = &domain.EntityStats{Symbol: symbol}
		return tr, nil
	}

	tr.WindowEnd = referenceDate(obs)
	tr.WindowStart = tr.WindowEnd.Add(-lookbackDays)

	series := partition(obs, tr.WindowStart)[symbol]
	tr.Stats = entityStats(symbol, series)
	if len(series) == 0 {
		return tr, nil
	}

	for _, o := range series {
		tr.Points = append(tr.Points, domain.TrendPoint{Date: o.Date, Value: o.Value})
	}
	first, last := tr.Points[0], tr.Points[len(tr.Points)-1]
	tr.Start, tr.End = &first, &last
	tr.DaysBetween = last.Date.DaysSince(first.Date)
	if tr.DaysBetween > 0 {
		if pct, ok := pctChange(first.Value, last.Value); ok {
			tr.PctChange = &pct
		}
	}
	return tr, nil
}

// Stats summarizes one symbol's measure over the lookback window.
func Stats(obs []domain.Observation, symbol string, lookbackDays int) (*domain.EntityStats, error) {
	tr, err := Trend(obs, symbol, lookbackDays)
	if err != nil {
		return nil, err
	}
	return tr.Stats, nil
}

// TrendTable runs Trend over the Symbol, Date and measure columns of t.
func TrendTable(t *dataset.Table, m domain.Measure, symbol string, lookbackDays int) (*domain.Trend, error) {
	if err := validateMeasure(m); err != nil {
		return nil, err
	}
	obs, err := Observations(t, m)
	if err != nil {
		return nil, err
	}
	tr, err := Trend(obs, symbol, lookbackDays)
	if err != nil {
		return nil, err
	}
	tr.Measure = m
	return tr, nil
}

func entityStats(symbol string, series []domain.Observation) *domain.EntityStats {
	values := make([]float64, len(series))
	dates := make(map[date.Date]struct{}, len(series))
	for i, o := range series {
		values[i] = o.Value
		dates[o.Date] = struct{}{}
	}
	s := metrics.Describe(values)
	return &domain.EntityStats{
		Symbol:        symbol,
		Count:         len(series),
		DistinctDates: len(dates),
		Mean:          s.Mean,
		Max:           s.Max,
		Min:           s.Min,
		Stddev:        s.Stddev,
	}
}
