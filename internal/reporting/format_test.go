package reporting

import (
	"math"
	"testing"

	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.56, "₹1,234.56 Cr"},
		{0, "₹0.00 Cr"},
		{1234567.891, "₹1,234,567.89 Cr"},
		{-45.5, "-₹45.50 Cr"},
		{math.NaN(), NA},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1234.6, "1,235"},
		{12, "12"},
		{-9876543, "-9,876,543"},
		{math.Inf(1), NA},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.in); got != tt.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "+12.00%"},
		{-2, "-2.00%"},
		{0.999, "+1.00%"},
		{-0.001, "-0.00%"},
		{0.001, "+0.00%"},
		{-0.005, "-0.01%"},
		{math.NaN(), NA},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.in); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatOptional(t *testing.T) {
	if got := FormatOptional(domain.MeasureNetValue, nil); got != NA {
		t.Errorf("expected %q, got %q", NA, got)
	}
	v := 1500.0
	if got := FormatOptional(domain.MeasureNetQty, &v); got != "1,500" {
		t.Errorf("expected 1,500, got %q", got)
	}
}

func TestFormatChanges(t *testing.T) {
	recs := []domain.ChangeRecord{{
		Symbol:      "NIFTY",
		StartDate:   date.MustParse("2025-03-01"),
		StartValue:  100,
		EndDate:     date.MustParse("2025-03-08"),
		EndValue:    112,
		DaysBetween: 7,
		PctChange:   12,
	}}
	rows := FormatChanges(recs, domain.MeasureNetValue)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.StartValue != "₹100.00 Cr" || r.EndValue != "₹112.00 Cr" || r.PctChange != "+12.00%" || r.DaysBetween != "7" {
		t.Errorf("unexpected row %+v", r)
	}

	rows = FormatChanges(recs, domain.MeasureNetQty)
	if rows[0].StartValue != "100" {
		t.Errorf("expected quantity formatting, got %q", rows[0].StartValue)
	}
}
