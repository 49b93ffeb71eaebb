// Package httpapi serves the dashboard views as a read-only JSON API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/dashboard"
	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/observability"
)

// Dashboard is the view layer served by the API. *dashboard.Service implements it.
type Dashboard interface {
	DateRange(ctx context.Context) (date.Range, error)
	Status(ctx context.Context) (*domain.StoreStatus, error)
	Overview(ctx context.Context, r date.Range) (*dashboard.Overview, error)
	Symbols(ctx context.Context, kind domain.DatasetKind, r date.Range) ([]string, error)
	Details(ctx context.Context, kind domain.DatasetKind, req dashboard.Request) (*dashboard.Details, error)
	Totals(ctx context.Context, kind domain.DatasetKind, r date.Range) (*dashboard.Totals, error)
	Raw(ctx context.Context, kind domain.DatasetKind, r date.Range, all bool) (*dataset.Table, error)
	Changes(ctx context.Context, kind domain.DatasetKind, r date.Range, p change.Params) (*change.Result, error)
	Trend(ctx context.Context, kind domain.DatasetKind, r date.Range, m domain.Measure, symbol string, lookbackDays int) (*domain.Trend, error)
}

var _ Dashboard = (*dashboard.Service)(nil)

// Config holds server configuration.
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MetricsPath    string // empty disables /metrics
}

// Server is the API HTTP server.
type Server struct {
	router  *mux.Router
	server  *http.Server
	dash    Dashboard
	log     zerolog.Logger
	metrics *observability.Metrics
	cfg     Config
}

// NewServer creates a server and registers all routes.
func NewServer(dash Dashboard, cfg Config, log zerolog.Logger) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		dash:    dash,
		log:     log.With().Str("component", "httpapi").Logger(),
		metrics: observability.DefaultMetrics,
		cfg:     cfg,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// WithMetrics replaces the metrics sink. Must be called before serving.
func (s *Server) WithMetrics(m *observability.Metrics) *Server {
	s.metrics = m
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Middleware for all routes
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.accessLogMiddleware)
	s.router.Use(s.timeoutMiddleware)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.cfg.MetricsPath != "" {
		s.router.Handle(s.cfg.MetricsPath, observability.Handler()).Methods(http.MethodGet)
	}

	// API routes (JSON only)
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/range", s.handleRange).Methods(http.MethodGet)
	api.HandleFunc("/overview", s.handleOverview).Methods(http.MethodGet)
	api.HandleFunc("/datasets", s.handleDatasets).Methods(http.MethodGet)

	ds := api.PathPrefix("/datasets/{kind}").Subrouter()
	ds.HandleFunc("/symbols", s.handleSymbols).Methods(http.MethodGet)
	ds.HandleFunc("/details", s.handleDetails).Methods(http.MethodGet)
	ds.HandleFunc("/totals", s.handleTotals).Methods(http.MethodGet)
	ds.HandleFunc("/rows", s.handleRows).Methods(http.MethodGet)
	ds.HandleFunc("/changes", s.handleChanges).Methods(http.MethodGet)
	ds.HandleFunc("/changes/{symbol}", s.handleTrend).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start serves until Shutdown. Returns http.ErrServerClosed after a shutdown.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.cfg.Addr).Msg("starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
