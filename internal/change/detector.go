// Package change detects significant period-over-period changes per entity.
package change

import (
	"math"
	"sort"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// Detect computes, per symbol, the change between the first and last
// observation of the lookback window ending at the latest date in obs, and
// returns the symbols whose absolute change meets the threshold.
// obs is not modified.
func Detect(obs []domain.Observation, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		Params:  p,
		Status:  StatusNoData,
		Records: []domain.ChangeRecord{},
		Rising:  []domain.ChangeRecord{},
		Falling: []domain.ChangeRecord{},
	}
	if len(obs) == 0 {
		return res, nil
	}

	res.ReferenceDate = referenceDate(obs)
	res.WindowStart = res.ReferenceDate.Add(-p.LookbackDays)

	groups := partition(obs, res.WindowStart)
	for _, series := range groups {
		res.WindowSize += len(series)
	}
	res.Entities = len(groups)
	if res.WindowSize == 0 {
		res.Status = StatusNoWindowData
		return res, nil
	}

	minDays := MinCoverageDays(p.LookbackDays)
	for symbol, series := range groups {
		first, last := series[0], series[len(series)-1]
		days := last.Date.DaysSince(first.Date)
		if float64(days) < minDays {
			continue
		}
		res.Covered++

		pct, ok := pctChange(first.Value, last.Value)
		if !ok || math.Abs(pct) < p.ThresholdPercent {
			continue
		}
		res.Records = append(res.Records, domain.ChangeRecord{
			Symbol:       symbol,
			StartDate:    first.Date,
			StartValue:   first.Value,
			EndDate:      last.Date,
			EndValue:     last.Value,
			DaysBetween:  days,
			PctChange:    pct,
			AbsPctChange: math.Abs(pct),
		})
	}

	sortRecords(res.Records)
	for _, rec := range res.Records {
		switch {
		case rec.PctChange > 0:
			res.Rising = append(res.Rising, rec)
		case rec.PctChange < 0:
			res.Falling = append(res.Falling, rec)
		}
	}

	switch {
	case res.Covered == 0:
		res.Status = StatusNoCoverage
	case len(res.Records) == 0:
		res.Status = StatusNoSignificant
	default:
		res.Status = StatusOK
	}
	return res, nil
}

// DetectTable runs Detect over the Symbol, Date and measure columns of t.
func DetectTable(t *dataset.Table, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	obs, err := Observations(t, p.Measure)
	if err != nil {
		return nil, err
	}
	return Detect(obs, p)
}

// Observations extracts (symbol, date, measure) triples from t.
// Rows where any of the three cells is NULL are skipped.
func Observations(t *dataset.Table, m domain.Measure) ([]domain.Observation, error) {
	symbols, err := t.Strings(domain.ColSymbol)
	if err != nil {
		return nil, err
	}
	dates, err := t.Dates(domain.ColDate)
	if err != nil {
		return nil, err
	}
	values, err := t.Floats(m.Column())
	if err != nil {
		return nil, err
	}

	obs := make([]domain.Observation, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		s, okS := symbols.At(i)
		d, okD := dates.At(i)
		v, okV := values.At(i)
		if !okS || !okD || !okV {
			continue
		}
		obs = append(obs, domain.Observation{Symbol: s, Date: d, Value: v})
	}
	return obs, nil
}

func referenceDate(obs []domain.Observation) date.Date {
	ref := obs[0].Date
	for _, o := range obs[1:] {
		if o.Date.After(ref) {
			ref = o.Date
		}
	}
	return ref
}

// partition groups the observations dated on or after start by symbol.
// Each series is sorted by date; equal dates keep input order.
func partition(obs []domain.Observation, start date.Date) map[string][]domain.Observation {
	groups := make(map[string][]domain.Observation)
	for _, o := range obs {
		if o.Date.Before(start) {
			continue
		}
		groups[o.Symbol] = append(groups[o.Symbol], o)
	}
	for _, series := range groups {
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Date.Before(series[j].Date)
		})
	}
	return groups
}

// pctChange returns the percentage change from start to end.
// ok is false when start is zero or the result is not finite.
func pctChange(start, end float64) (float64, bool) {
	if start == 0 {
		return 0, false
	}
	pct := (end - start) / start * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// sortRecords orders by |pct| descending, then symbol ascending.
func sortRecords(recs []domain.ChangeRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].AbsPctChange != recs[j].AbsPctChange {
			return recs[i].AbsPctChange > recs[j].AbsPctChange
		}
		return recs[i].Symbol < recs[j].Symbol
	})
}
