package date

import (
	"encoding/json"
	"fmt"
)

// Range is an inclusive range of dates. A zero bound is open.
type Range struct{ From, To Date }

// Contains reports whether d is inside the range, boundaries included.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether both bounds are unset.
func (r Range) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

// Validate checks that From is not after To.
func (r Range) Validate() error {
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return fmt.Errorf("invalid range: %s is after %s", r.From, r.To)
	}
	return nil
}

// String formats the range as "from..to".
func (r Range) String() string {
	from, to := "", ""
	if !r.From.IsZero() {
		from = r.From.String()
	}
	if !r.To.IsZero() {
		to = r.To.String()
	}
	return from + ".." + to
}

// MarshalJSON writes the range as {"from": ..., "to": ...}, open bounds as null.
func (r Range) MarshalJSON() ([]byte, error) {
	var out struct {
		From *Date `json:"from"`
		To   *Date `json:"to"`
	}
	if !r.From.IsZero() {
		out.From = &r.From
	}
	if !r.To.IsZero() {
		out.To = &r.To
	}
	return json.Marshal(out)
}
