package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/dashboard"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/reporting"
)

// DatasetInfo describes one dataset in the /api/datasets listing.
type DatasetInfo struct {
	Kind        domain.DatasetKind `json:"kind"`
	Label       string             `json:"label"`
	Table       string             `json:"table"`
	HasEntities bool               `json:"has_entities"`
}

// SymbolsResponse lists the symbols of a dataset.
type SymbolsResponse struct {
	Dataset domain.DatasetKind `json:"dataset"`
	Range   date.Range         `json:"range"`
	Symbols []string           `json:"symbols"`
}

// RowsResponse holds raw dataset rows.
type RowsResponse struct {
	Dataset domain.DatasetKind `json:"dataset"`
	Range   date.Range         `json:"range"`
	Columns []string           `json:"columns"`
	Rows    []map[string]any   `json:"rows"`
}

// ChangesResponse holds a detection result with its display rows.
type ChangesResponse struct {
	*change.Result
	Message          string                `json:"message"`
	Insufficient     bool                  `json:"insufficient"`
	FormattedRising  []reporting.ChangeRow `json:"formatted_rising"`
	FormattedFalling []reporting.ChangeRow `json:"formatted_falling"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.dash.Status(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, st)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	rng, err := s.dash.DateRange(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, rng)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	rng, err := dateRange(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ov, err := s.dash.Overview(r.Context(), rng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, ov)
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	kinds := domain.AllDatasets()
	out := make([]DatasetInfo, len(kinds))
	for i, k := range kinds {
		out[i] = DatasetInfo{Kind: k, Label: k.Label(), Table: k.Table(), HasEntities: k.HasEntities()}
	}
	s.respond(w, r, http.StatusOK, out)
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	kind, rng, ok := s.datasetRequest(w, r)
	if !ok {
		return
	}
	syms, err := s.dash.Symbols(r.Context(), kind, rng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if syms == nil {
		syms = []string{}
	}
	s.respond(w, r, http.StatusOK, SymbolsResponse{Dataset: kind, Range: rng, Symbols: syms})
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	kind, rng, ok := s.datasetRequest(w, r)
	if !ok {
		return
	}
	d, err := s.dash.Details(r.Context(), kind, dashboard.Request{Range: rng, Symbols: symbols(r)})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, d)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	kind, rng, ok := s.datasetRequest(w, r)
	if !ok {
		return
	}
	t, err := s.dash.Totals(r.Context(), kind, rng)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, t)
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	kind, rng, ok := s.datasetRequest(w, r)
	if !ok {
		return
	}
	all, err := boolParam(r, "all")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.dash.Raw(r.Context(), kind, rng, all)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := RowsResponse{Dataset: kind, Range: rng, Rows: make([]map[string]any, t.Len())}
	for _, f := range t.Fields() {
		resp.Columns = append(resp.Columns, f.Name)
	}
	for i := range resp.Rows {
		resp.Rows[i] = t.Row(i)
	}
	s.respond(w, r, http.StatusOK, resp)
}

func (s *Server) handleChanges(w http.ResponseWriter, r *http.Request) {
	kind, rng, ok := s.datasetRequest(w, r)
	if !ok {
		return
	}
	p, err := changeParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.dash.Changes(r.Context(), kind, rng, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, ChangesResponse{
		Result:           res,
		Message:          res.Message(),
		Insufficient:     res.Insufficient(),
		FormattedRising:  reporting.FormatChanges(res.Rising, res.Params.Measure),
		FormattedFalling: reporting.FormatChanges(res.Falling, res.Params.Measure),
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	kind, rng, ok := s.datasetRequest(w, r)
	if !ok {
		return
	}
	m, err := measure(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	lookback := 0
	if v := r.URL.Query().Get("lookback"); v != "" {
		if lookback, err = strconv.Atoi(v); err != nil {
			s.writeError(w, r, badRequest("lookback", err))
			return
		}
	}
	tr, err := s.dash.Trend(r.Context(), kind, rng, m, mux.Vars(r)["symbol"], lookback)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, tr)
}

// datasetRequest reads the dataset kind and date range shared by every
// dataset route, writing the error response on failure.
func (s *Server) datasetRequest(w http.ResponseWriter, r *http.Request) (domain.DatasetKind, date.Range, bool) {
	kind, err := datasetKind(r)
	if err != nil {
		s.writeError(w, r, err)
		return "", date.Range{}, false
	}
	rng, err := dateRange(r)
	if err != nil {
		s.writeError(w, r, err)
		return "", date.Range{}, false
	}
	return kind, rng, true
}
