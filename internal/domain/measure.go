package domain

import "strings"

// Measure is a numeric column tracked per entity per date.
type Measure string

// Supported measures.
const (
	MeasureNetValue Measure = ColNetValue
	MeasureNetQty   Measure = ColNetQtyCarryFwd
)

// Measures returns the supported measures.
func Measures() []Measure {
	return []Measure{MeasureNetValue, MeasureNetQty}
}

// ParseMeasure accepts a canonical column name or a short alias
// ("net_value", "net_qty").
func ParseMeasure(s string) (Measure, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case strings.ToLower(ColNetValue), "net_value", "netvalue", "value":
		return MeasureNetValue, true
	case strings.ToLower(ColNetQtyCarryFwd), "net_qty", "netqty", "quantity", "qty":
		return MeasureNetQty, true
	}
	return "", false
}

// Column returns the canonical column holding the measure.
func (m Measure) Column() string { return string(m) }

// Label returns the display label of the measure.
func (m Measure) Label() string {
	switch m {
	case MeasureNetValue:
		return "Net Value"
	case MeasureNetQty:
		return "Net Quantity"
	}
	return string(m)
}
