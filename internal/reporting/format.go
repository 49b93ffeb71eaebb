package reporting

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// NA is rendered for missing or undefined values.
const NA = "N/A"

const currencyCode = "INR"

var quantityFormatter = money.NewFormatter(0, ".", ",", "", "1")

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FormatCurrency renders crores of rupees as "₹1,234.56 Cr".
func FormatCurrency(v float64) string {
	if !finite(v) {
		return NA
	}
	cur := money.New(0, currencyCode).Currency()
	minor := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart()) + " Cr"
}

// FormatQuantity renders a quantity with thousands separators and no decimals.
func FormatQuantity(v float64) string {
	if !finite(v) {
		return NA
	}
	return quantityFormatter.Format(decimal.NewFromFloat(v).Round(0).IntPart())
}

// FormatPercent renders a signed percentage with two decimals, e.g. "+12.00%".
// The sign follows v, so small falls still read as "-0.00%".
func FormatPercent(v float64) string {
	if !finite(v) {
		return NA
	}
	d := decimal.NewFromFloat(v).Abs().Round(2)
	if v < 0 {
		return "-" + d.StringFixed(2) + "%"
	}
	return "+" + d.StringFixed(2) + "%"
}

// FormatMeasure formats v the way the measure is displayed.
func FormatMeasure(m domain.Measure, v float64) string {
	if m == domain.MeasureNetQty {
		return FormatQuantity(v)
	}
	return FormatCurrency(v)
}

// FormatOptional formats a nullable value, NA when nil.
func FormatOptional(m domain.Measure, v *float64) string {
	if v == nil {
		return NA
	}
	return FormatMeasure(m, *v)
}

// FormatOptionalPercent formats a nullable percentage, NA when nil.
func FormatOptionalPercent(v *float64) string {
	if v == nil {
		return NA
	}
	return FormatPercent(*v)
}
