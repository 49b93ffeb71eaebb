package reporting

import (
	"strconv"

	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// ChangeRow is a presentation-ready ChangeRecord.
type ChangeRow struct {
	Symbol      string `json:"symbol"`
	StartDate   string `json:"start_date"`
	StartValue  string `json:"start_value"`
	EndDate     string `json:"end_date"`
	EndValue    string `json:"end_value"`
	DaysBetween string `json:"days_between"`
	PctChange   string `json:"pct_change"`
}

// FormatChanges renders records for display, values formatted per measure.
func FormatChanges(recs []domain.ChangeRecord, m domain.Measure) []ChangeRow {
	rows := make([]ChangeRow, len(recs))
	for i, r := range recs {
		rows[i] = ChangeRow{
			Symbol:      r.Symbol,
			StartDate:   r.StartDate.String(),
			StartValue:  FormatMeasure(m, r.StartValue),
			EndDate:     r.EndDate.String(),
			EndValue:    FormatMeasure(m, r.EndValue),
			DaysBetween: strconv.Itoa(r.DaysBetween),
			PctChange:   FormatPercent(r.PctChange),
		}
	}
	return rows
}
