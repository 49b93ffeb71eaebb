package change

import (
	"fmt"

	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// Status describes the outcome of a detection run.
type Status string

// Statuses.
const (
	StatusOK            Status = "ok"
	StatusNoData        Status = "no_data"
	StatusNoWindowData  Status = "no_window_data"
	StatusNoCoverage    Status = "no_coverage"
	StatusNoSignificant Status = "no_significant"
)

// Result is the output of Detect. Records hold the significant changes
// ordered by |pct| descending then symbol; Rising and Falling partition them.
type Result struct {
	Params        Params                `json:"params"`
	ReferenceDate date.Date             `json:"reference_date"`
	WindowStart   date.Date             `json:"window_start"`
	Status        Status                `json:"status"`
	Records       []domain.ChangeRecord `json:"records"`
	Rising        []domain.ChangeRecord `json:"rising"`
	Falling       []domain.ChangeRecord `json:"falling"`
	WindowSize    int                   `json:"window_size"` // observations inside the window
	Entities      int                   `json:"entities"`    // distinct symbols inside the window
	Covered       int                   `json:"covered"`     // entities meeting coverage
}

// Insufficient reports whether the window had too little data to evaluate.
func (r *Result) Insufficient() bool {
	switch r.Status {
	case StatusNoData, StatusNoWindowData, StatusNoCoverage:
		return true
	}
	return false
}

// Message returns a short human readable description of the status.
func (r *Result) Message() string {
	switch r.Status {
	case StatusNoData:
		return "No data available."
	case StatusNoWindowData, StatusNoCoverage:
		return fmt.Sprintf("Insufficient data for the selected lookback period of %d days.", r.Params.LookbackDays)
	case StatusNoSignificant:
		return fmt.Sprintf("No entities found with changes ≥%g%% in the last ~%d days.", r.Params.ThresholdPercent, r.Params.LookbackDays)
	}
	return fmt.Sprintf("%d entities with changes ≥%g%% (%d rising, %d falling).",
		len(r.Records), r.Params.ThresholdPercent, len(r.Rising), len(r.Falling))
}
