package dashboard

import (
	"context"
	"fmt"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/metrics"
	"github.com/Avishah123/hb-dashboard/internal/schema"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// Overview is the landing view: latest totals, their trends and the summary comparison.
type Overview struct {
	Range      date.Range `json:"range"`
	LatestDate *date.Date `json:"latest_date"`

	// Net value of the totals tables on LatestDate, nil when missing.
	LatestIndexNetValue  *float64 `json:"latest_index_net_value"`
	LatestStocksNetValue *float64 `json:"latest_stocks_net_value"`

	IndexTrend  []metrics.Point            `json:"index_trend"`
	StocksTrend []metrics.Point            `json:"stocks_trend"`
	Summary     map[string][]metrics.Point `json:"summary"` // net value by instrument
}

// Totals is the series view of a totals dataset.
type Totals struct {
	Dataset   domain.DatasetKind `json:"dataset"`
	Range     date.Range         `json:"range"`
	Rows      int                `json:"rows"`
	NetValue  []metrics.Point    `json:"net_value"`
	NSEIClose []metrics.Point    `json:"nsei_close,omitempty"`
}

// Overview builds the landing view for r. Missing tables leave their section empty.
// The stocks total is read on the latest index date.
func (s *Service) Overview(ctx context.Context, r date.Range) (*Overview, error) {
	ov := &Overview{Range: r, Summary: map[string][]metrics.Point{}}

	index, err := s.loadOptional(ctx, domain.DatasetTotalIndex, r)
	if err != nil {
		return nil, err
	}
	if index != nil {
		if _, latest, ok, err := index.DateBounds(domain.ColDate); err != nil {
			return nil, err
		} else if ok {
			ov.LatestDate = &latest
			if ov.LatestIndexNetValue, err = valueOn(index, latest, domain.ColNetValue); err != nil {
				return nil, err
			}
		}
		if ov.IndexTrend, err = metrics.Series(index, domain.ColDate, domain.ColNetValue); err != nil {
			return nil, err
		}
	}

	stocks, err := s.loadOptional(ctx, domain.DatasetTotalStocks, r)
	if err != nil {
		return nil, err
	}
	if stocks != nil {
		if ov.LatestDate != nil {
			if ov.LatestStocksNetValue, err = valueOn(stocks, *ov.LatestDate, domain.ColNetValue); err != nil {
				return nil, err
			}
		}
		if ov.StocksTrend, err = metrics.Series(stocks, domain.ColDate, domain.ColNetValue); err != nil {
			return nil, err
		}
	}

	summary, err := s.loadOptional(ctx, domain.DatasetSummary, r)
	if err != nil {
		return nil, err
	}
	if summary != nil {
		if ov.Summary, err = metrics.SeriesBy(summary, domain.ColDate, domain.ColInstrument, domain.ColNetValue); err != nil {
			return nil, err
		}
	}
	return ov, nil
}

// Totals returns the net value and NSEI close series of a totals dataset.
func (s *Service) Totals(ctx context.Context, kind domain.DatasetKind, r date.Range) (*Totals, error) {
	switch kind {
	case domain.DatasetTotalIndex, domain.DatasetTotalStocks:
	default:
		if _, ok := schema.For(kind); !ok {
			return nil, fmt.Errorf("%w: %q", storage.ErrUnknownDataset, kind)
		}
		return nil, fmt.Errorf("%w: %s is not a totals dataset", ErrUnsupported, kind)
	}

	t, err := s.loadFiltered(ctx, kind, r)
	if err != nil {
		return nil, err
	}
	out := &Totals{Dataset: kind, Range: r, Rows: t.Len()}
	if out.NetValue, err = metrics.Series(t, domain.ColDate, domain.ColNetValue); err != nil {
		return nil, err
	}
	if t.Has(domain.ColNSEIClose) {
		if out.NSEIClose, err = metrics.Series(t, domain.ColDate, domain.ColNSEIClose); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// valueOn returns column of the first row dated d, nil when there is none.
func valueOn(t *dataset.Table, d date.Date, column string) (*float64, error) {
	dates, err := t.Dates(domain.ColDate)
	if err != nil {
		return nil, err
	}
	values, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	for i := 0; i < t.Len(); i++ {
		if rd, ok := dates.At(i); ok && rd == d {
			if v, ok := values.At(i); ok {
				return &v, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}
