// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Dataset metrics
	DatasetLoads        *prometheus.CounterVec
	DatasetLoadDuration *prometheus.HistogramVec
	DatasetRows         *prometheus.GaugeVec

	// Change analysis metrics
	DetectionsTotal *prometheus.CounterVec
	FlaggedEntities *prometheus.GaugeVec

	// HTTP metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Health metrics
	StoreUp        prometheus.Gauge
	LastDataUpdate prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered with the default registry.
func NewMetrics(namespace string) *Metrics {
	return NewMetricsWith(namespace, prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a new Metrics instance registered with reg.
func NewMetricsWith(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "hb_dashboard"
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Dataset metrics
		DatasetLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "loads_total",
			Help:      "Total number of dataset loads by status",
		}, []string{"dataset", "status"}),
		DatasetLoadDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "load_duration_seconds",
			Help:      "Dataset load and mapping duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"dataset"}),
		DatasetRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Number of rows in the last successful load",
		}, []string{"dataset"}),

		// Change analysis metrics
		DetectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "change",
			Name:      "detections_total",
			Help:      "Total number of change detections by result status",
		}, []string{"dataset", "measure", "status"}),
		FlaggedEntities: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "change",
			Name:      "flagged_entities",
			Help:      "Entities flagged by the last detection",
		}, []string{"dataset", "measure", "direction"}),

		// HTTP metrics
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),

		// Database metrics
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Health metrics
		StoreUp: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "store_up",
			Help:      "1 if the last store ping succeeded",
		}),
		LastDataUpdate: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_data_update_timestamp",
			Help:      "Unix timestamp of the latest updated_at in market_index",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordDatasetLoad records one dataset load.
func (m *Metrics) RecordDatasetLoad(dataset string, rows int, seconds float64, err error) {
	m.DatasetLoadDuration.WithLabelValues(dataset).Observe(seconds)
	if err != nil {
		m.DatasetLoads.WithLabelValues(dataset, "error").Inc()
		return
	}
	m.DatasetLoads.WithLabelValues(dataset, "ok").Inc()
	m.DatasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordDetection records the outcome of a change detection.
func (m *Metrics) RecordDetection(dataset, measure, status string, rising, falling int) {
	m.DetectionsTotal.WithLabelValues(dataset, measure, status).Inc()
	m.FlaggedEntities.WithLabelValues(dataset, measure, "rising").Set(float64(rising))
	m.FlaggedEntities.WithLabelValues(dataset, measure, "falling").Set(float64(falling))
}

// RecordHTTPRequest records a served request.
func (m *Metrics) RecordHTTPRequest(route, method string, code int, seconds float64) {
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

// RecordDBQuery records database query metrics.
func (m *Metrics) RecordDBQuery(database, operation string, seconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// RecordStoreStatus records store connectivity and the latest data update.
func (m *Metrics) RecordStoreStatus(connected bool, lastUpdated *time.Time) {
	if connected {
		m.StoreUp.Set(1)
	} else {
		m.StoreUp.Set(0)
	}
	if lastUpdated != nil {
		m.LastDataUpdate.Set(float64(lastUpdated.Unix()))
	}
}

// RecordDatasetLoad records a dataset load on DefaultMetrics.
func RecordDatasetLoad(dataset string, rows int, seconds float64, err error) {
	DefaultMetrics.RecordDatasetLoad(dataset, rows, seconds, err)
}

// RecordDetection records a change detection on DefaultMetrics.
func RecordDetection(dataset, measure, status string, rising, falling int) {
	DefaultMetrics.RecordDetection(dataset, measure, status, rising, falling)
}

// RecordHTTPRequest records a served request on DefaultMetrics.
func RecordHTTPRequest(route, method string, code int, seconds float64) {
	DefaultMetrics.RecordHTTPRequest(route, method, code, seconds)
}

// RecordDBQuery records database query metrics on DefaultMetrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.RecordDBQuery(database, operation, seconds, err)
}
