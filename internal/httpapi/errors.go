package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/dashboard"
	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/storage"
)

// errBadRequest marks malformed query parameters.
var errBadRequest = errors.New("bad request")

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error onto an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, change.ErrInvalidParams),
		errors.Is(err, dashboard.ErrInvalidRange),
		errors.Is(err, dashboard.ErrUnsupported),
		errors.Is(err, storage.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrUnknownDataset),
		errors.Is(err, dashboard.ErrUnknownSymbol),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError writes err as JSON. Internal errors are logged and not echoed.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.log.Error().Err(err).
			Str("request_id", RequestID(r.Context())).
			Str("path", r.URL.Path).
			Msg("request failed")
		msg = http.StatusText(code)
	}
	s.respond(w, r, code, errorResponse{Error: msg, RequestID: RequestID(r.Context())})
}

// writeJSON encodes v and writes it with the given status code. Nothing is
// written when encoding fails.
func writeJSON(w http.ResponseWriter, code int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(append(b, '\n'))
	return nil
}

// respond writes v, falling back to a 500 when v cannot be encoded.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, code int, v any) {
	err := writeJSON(w, code, v)
	if err == nil {
		return
	}
	s.log.Error().Err(err).
		Str("request_id", RequestID(r.Context())).
		Str("path", r.URL.Path).
		Msg("write response")
	_ = writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:     http.StatusText(http.StatusInternalServerError),
		RequestID: RequestID(r.Context()),
	})
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
