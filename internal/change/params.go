package change

import (
	"errors"
	"fmt"

	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// Parameter bounds.
const (
	MinLookbackDays = 1
	MaxLookbackDays = 365
	MinThreshold    = 1.0
	MaxThreshold    = 100.0
)

// ErrInvalidParams is returned when detection parameters are out of range.
var ErrInvalidParams = errors.New("invalid change parameters")

// Params configures one detection run.
type Params struct {
	Measure          domain.Measure `json:"measure"`
	LookbackDays     int            `json:"lookback_days"`
	ThresholdPercent float64        `json:"threshold_percent"`
}

// Validate checks the measure and the parameter ranges.
func (p Params) Validate() error {
	if err := validateMeasure(p.Measure); err != nil {
		return err
	}
	if err := validateLookback(p.LookbackDays); err != nil {
		return err
	}
	if !(p.ThresholdPercent >= MinThreshold && p.ThresholdPercent <= MaxThreshold) {
		return fmt.Errorf("%w: threshold %v outside [%v, %v]", ErrInvalidParams, p.ThresholdPercent, MinThreshold, MaxThreshold)
	}
	return nil
}

func validateMeasure(m domain.Measure) error {
	for _, known := range domain.Measures() {
		if m == known {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown measure %q", ErrInvalidParams, m)
}

func validateLookback(days int) error {
	if days < MinLookbackDays || days > MaxLookbackDays {
		return fmt.Errorf("%w: lookback %d days outside [%d, %d]", ErrInvalidParams, days, MinLookbackDays, MaxLookbackDays)
	}
	return nil
}

// MinCoverageDays returns the minimum elapsed days an entity needs inside a
// window of the given length: max(1, lookback/2), not rounded.
func MinCoverageDays(lookbackDays int) float64 {
	return max(1, float64(lookbackDays)*0.5)
}
