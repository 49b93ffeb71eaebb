// Package schema maps stored market tables onto the canonical dataset columns.
package schema

import (
	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// Column maps one stored column to its canonical name and kind.
type Column struct {
	Source   string
	Target   string
	Kind     dataset.Kind
	Required bool
	Scale    float64 // multiplier applied to float values, 0 means none
}

// Mapping describes how one stored table becomes a canonical dataset.
type Mapping struct {
	Kind    domain.DatasetKind
	Table   string
	Columns []Column
	Hidden  []string // canonical columns left out of default raw views
}

func col(source, target string, kind dataset.Kind) Column {
	return Column{Source: source, Target: target, Kind: kind}
}

func required(c Column) Column {
	c.Required = true
	return c
}

func scaled(c Column, by float64) Column {
	c.Scale = by
	return c
}

var (
	dateCol   = required(col("date", domain.ColDate, dataset.KindDate))
	symbolCol = required(col("symbol", domain.ColSymbol, dataset.KindString))
	netQty    = col("net_qty_carry_fwd", domain.ColNetQtyCarryFwd, dataset.KindFloat)
	netValue  = col("net_value_in_cr", domain.ColNetValue, dataset.KindFloat)
	updated   = col("updated_at", domain.ColUpdatedAt, dataset.KindTimestamp)
	created   = col("created_at", domain.ColCreatedAt, dataset.KindTimestamp)
)

var entityColumns = []Column{
	dateCol,
	symbolCol,
	col("bt_frwd_long_qty", domain.ColBtFrwdLongQty, dataset.KindFloat),
	col("bt_frwd_short_qty", domain.ColBtFrwdShortQty, dataset.KindFloat),
	netQty,
	netValue,
	col("new_total", domain.ColNewTotal, dataset.KindFloat),
	col("total_buy_clients", domain.ColTotalBuyClients, dataset.KindFloat),
	col("total_sell_clients", domain.ColTotalSellClients, dataset.KindFloat),
	col("buy_percent", domain.ColBuyPercent, dataset.KindFloat),
	col("sell_percent", domain.ColSellPercent, dataset.KindFloat),
	col("market_cap", domain.ColMarketCap, dataset.KindFloat),
	scaled(col("market_cap_percentage", domain.ColMarketCapPercentage, dataset.KindFloat), 100),
	created,
	updated,
}

var totalColumns = []Column{
	dateCol,
	col("day", domain.ColDay, dataset.KindString),
	col("instrument", domain.ColInstrument, dataset.KindString),
	netQty,
	netValue,
	col("nsei_close", domain.ColNSEIClose, dataset.KindFloat),
	created,
	updated,
}

var (
	entityHidden = []string{domain.ColID, domain.ColCreatedAt, domain.ColUpdatedAt, domain.ColBtFrwdLongQty, domain.ColBtFrwdShortQty}
	plainHidden  = []string{domain.ColID, domain.ColCreatedAt, domain.ColUpdatedAt}
)

// Mappings holds the mapping of every dataset kind.
var Mappings = map[domain.DatasetKind]Mapping{
	domain.DatasetIndex: {
		Kind:    domain.DatasetIndex,
		Table:   domain.DatasetIndex.Table(),
		Columns: entityColumns,
		Hidden:  entityHidden,
	},
	domain.DatasetStocks: {
		Kind:    domain.DatasetStocks,
		Table:   domain.DatasetStocks.Table(),
		Columns: entityColumns,
		Hidden:  entityHidden,
	},
	domain.DatasetSummary: {
		Kind:  domain.DatasetSummary,
		Table: domain.DatasetSummary.Table(),
		Columns: []Column{
			dateCol,
			col("instrument", domain.ColInstrument, dataset.KindString),
			netQty,
			netValue,
			created,
			updated,
		},
		Hidden: plainHidden,
	},
	domain.DatasetTotalIndex: {
		Kind:    domain.DatasetTotalIndex,
		Table:   domain.DatasetTotalIndex.Table(),
		Columns: totalColumns,
		Hidden:  plainHidden,
	},
	domain.DatasetTotalStocks: {
		Kind:    domain.DatasetTotalStocks,
		Table:   domain.DatasetTotalStocks.Table(),
		Columns: totalColumns,
		Hidden:  plainHidden,
	},
}

// For returns the mapping of a dataset kind.
func For(kind domain.DatasetKind) (Mapping, bool) {
	m, ok := Mappings[kind]
	return m, ok
}
