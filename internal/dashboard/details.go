package dashboard

import (
	"context"
	"fmt"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/metrics"
)

// RecentWindowDays is the trailing window of the recent net quantity average.
const RecentWindowDays = 90

// BuySell is the mean buy and sell client percentage of one symbol.
type BuySell struct {
	Symbol      string  `json:"symbol"`
	BuyPercent  float64 `json:"buy_percent"`
	SellPercent float64 `json:"sell_percent"`
}

// Details is the per-symbol breakdown of an entity dataset.
type Details struct {
	Dataset   domain.DatasetKind `json:"dataset"`
	Range     date.Range         `json:"range"`
	Available []string           `json:"available"`
	Selected  []string           `json:"selected"`
	Rows      int                `json:"rows"`

	NetValueSum      []metrics.GroupValue `json:"net_value_sum"`
	BuySell          []BuySell            `json:"buy_sell,omitempty"`
	MarketCapPercent []metrics.GroupValue `json:"market_cap_percent,omitempty"`

	// Stocks only. NetQtyAvgAll ignores the date filter; NetQtyAvgRecent covers
	// the RecentWindowDays ending at the latest filtered date.
	NetQtyAvgAll    []metrics.GroupValue `json:"net_qty_avg_all,omitempty"`
	NetQtyAvgRecent []metrics.GroupValue `json:"net_qty_avg_recent,omitempty"`
}

// Symbols returns the sorted distinct symbols of kind inside r.
func (s *Service) Symbols(ctx context.Context, kind domain.DatasetKind, r date.Range) ([]string, error) {
	if err := requireEntities(kind); err != nil {
		return nil, err
	}
	t, err := s.loadFiltered(ctx, kind, r)
	if err != nil {
		return nil, err
	}
	return t.Unique(domain.ColSymbol)
}

// Details computes the symbol breakdown of kind for the request.
// With no symbols in the request the first DefaultSelection symbols are used.
func (s *Service) Details(ctx context.Context, kind domain.DatasetKind, req Request) (*Details, error) {
	if err := requireEntities(kind); err != nil {
		return nil, err
	}
	if err := req.Range.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	all, err := s.Load(ctx, kind)
	if err != nil {
		return nil, err
	}
	filtered, err := all.FilterDates(domain.ColDate, req.Range)
	if err != nil {
		return nil, err
	}

	available, err := filtered.Unique(domain.ColSymbol)
	if err != nil {
		return nil, err
	}
	selected := req.Symbols
	if len(selected) == 0 {
		selected = available[:min(DefaultSelection, len(available))]
	}

	sel, err := filtered.FilterIn(domain.ColSymbol, selected)
	if err != nil {
		return nil, err
	}

	d := &Details{
		Dataset:   kind,
		Range:     req.Range,
		Available: available,
		Selected:  selected,
		Rows:      sel.Len(),
	}

	if d.NetValueSum, err = metrics.GroupBy(sel, domain.ColSymbol, domain.ColNetValue, metrics.AggSum); err != nil {
		return nil, err
	}
	if sel.Has(domain.ColBuyPercent) && sel.Has(domain.ColSellPercent) {
		if d.BuySell, err = buySell(sel); err != nil {
			return nil, err
		}
	}
	if sel.Has(domain.ColMarketCapPercentage) {
		if d.MarketCapPercent, err = metrics.GroupBy(sel, domain.ColSymbol, domain.ColMarketCapPercentage, metrics.AggMean); err != nil {
			return nil, err
		}
	}

	if kind == domain.DatasetStocks && sel.Has(domain.ColNetQtyCarryFwd) {
		if err := netQtyAverages(d, all, filtered, selected); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func buySell(t *dataset.Table) ([]BuySell, error) {
	buy, err := metrics.GroupBy(t, domain.ColSymbol, domain.ColBuyPercent, metrics.AggMean)
	if err != nil {
		return nil, err
	}
	sell, err := metrics.GroupBy(t, domain.ColSymbol, domain.ColSellPercent, metrics.AggMean)
	if err != nil {
		return nil, err
	}
	sellBy := make(map[string]float64, len(sell))
	for _, g := range sell {
		sellBy[g.Key] = g.Value
	}
	out := make([]BuySell, 0, len(buy))
	for _, g := range buy {
		sp, ok := sellBy[g.Key]
		if !ok {
			continue
		}
		out = append(out, BuySell{Symbol: g.Key, BuyPercent: g.Value, SellPercent: sp})
	}
	return out, nil
}

func netQtyAverages(d *Details, all, filtered *dataset.Table, selected []string) error {
	allSel, err := all.FilterIn(domain.ColSymbol, selected)
	if err != nil {
		return err
	}
	if d.NetQtyAvgAll, err = metrics.GroupBy(allSel, domain.ColSymbol, domain.ColNetQtyCarryFwd, metrics.AggMean); err != nil {
		return err
	}

	_, latest, ok, err := filtered.DateBounds(domain.ColDate)
	if err != nil || !ok {
		return err
	}
	recent, err := filtered.FilterDates(domain.ColDate, date.Range{From: latest.Add(-RecentWindowDays), To: latest})
	if err != nil {
		return err
	}
	if recent, err = recent.FilterIn(domain.ColSymbol, selected); err != nil {
		return err
	}
	d.NetQtyAvgRecent, err = metrics.GroupBy(recent, domain.ColSymbol, domain.ColNetQtyCarryFwd, metrics.AggMean)
	return err
}
