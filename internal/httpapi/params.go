package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// datasetKind reads the {kind} path variable.
func datasetKind(r *http.Request) (domain.DatasetKind, error) {
	kind, err := domain.ParseDatasetKind(mux.Vars(r)["kind"])
	if err != nil {
		return "", fmt.Errorf("%w: %v", storage.ErrUnknownDataset, err)
	}
	return kind, nil
}

// dateRange reads the start and end query parameters, both optional.
func dateRange(r *http.Request) (date.Range, error) {
	var rng date.Range
	q := r.URL.Query()
	if v := q.Get("start"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return rng, badRequest("start", err)
		}
		rng.From = d
	}
	if v := q.Get("end"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return rng, badRequest("end", err)
		}
		rng.To = d
	}
	return rng, nil
}

// symbols reads a comma separated symbols parameter. Repeated keys are merged.
func symbols(r *http.Request) []string {
	var out []string
	for _, v := range r.URL.Query()["symbols"] {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// measure reads the measure parameter. Empty means the dataset default.
func measure(r *http.Request) (domain.Measure, error) {
	v := r.URL.Query().Get("measure")
	if v == "" {
		return "", nil
	}
	m, ok := domain.ParseMeasure(v)
	if !ok {
		return "", fmt.Errorf("%w: unknown measure %q", errBadRequest, v)
	}
	return m, nil
}

// changeParams reads measure, lookback and threshold. Zero values are left
// for the service to default.
func changeParams(r *http.Request) (change.Params, error) {
	var p change.Params
	m, err := measure(r)
	if err != nil {
		return p, err
	}
	p.Measure = m

	q := r.URL.Query()
	if v := q.Get("lookback"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, badRequest("lookback", err)
		}
		if n == 0 {
			return p, fmt.Errorf("%w: lookback must be at least %d", change.ErrInvalidParams, change.MinLookbackDays)
		}
		p.LookbackDays = n
	}
	if v := q.Get("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, badRequest("threshold", err)
		}
		if f == 0 {
			return p, fmt.Errorf("%w: threshold must be at least %v", change.ErrInvalidParams, change.MinThreshold)
		}
		p.ThresholdPercent = f
	}
	return p, nil
}

// boolParam reads an optional boolean parameter.
func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest(name, err)
	}
	return b, nil
}

func badRequest(param string, err error) error {
	return fmt.Errorf("%w: %s: %v", errBadRequest, param, err)
}
