package domain

import "github.com/Avishah123/hb-dashboard/internal/date"

// Observation is one measure value of an entity on a date.
type Observation struct {
	Symbol string
	Date   date.Date
	Value  float64
}

// ChangeRecord is the first-to-last change of an entity inside a lookback window.
type ChangeRecord struct {
	Symbol       string    `json:"symbol"`
	StartDate    date.Date `json:"start_date"`
	StartValue   float64   `json:"start_value"`
	EndDate      date.Date `json:"end_date"`
	EndValue     float64   `json:"end_value"`
	DaysBetween  int       `json:"days_between"` // EndDate - StartDate in days
	PctChange    float64   `json:"pct_change"`
	AbsPctChange float64   `json:"abs_pct_change"` // ordering key
}

// EntityStats summarizes one entity's measure over a window.
// Stddev is the sample standard deviation, nil with fewer than two values.
type EntityStats struct {
	Symbol        string   `json:"symbol"`
	Count         int      `json:"count"`
	DistinctDates int      `json:"distinct_dates"`
	Mean          float64  `json:"mean"`
	Max           float64  `json:"max"`
	Min           float64  `json:"min"`
	Stddev        *float64 `json:"stddev"`
}

// TrendPoint is one point of a per-entity series.
type TrendPoint struct {
	Date  date.Date `json:"date"`
	Value float64   `json:"value"`
}

// Trend is the in-window series of a single entity with its summary.
// PctChange is nil when the change is undefined (zero baseline or a single date).
type Trend struct {
	Symbol      string       `json:"symbol"`
	Measure     Measure      `json:"measure"`
	WindowStart date.Date    `json:"window_start"`
	WindowEnd   date.Date    `json:"window_end"`
	Points      []TrendPoint `json:"points"`
	Start       *TrendPoint  `json:"start,omitempty"`
	End         *TrendPoint  `json:"end,omitempty"`
	DaysBetween int          `json:"days_between"`
	PctChange   *float64     `json:"pct_change"`
	Stats       *EntityStats `json:"stats,omitempty"`
}
