package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDatasetLoad(t *testing.T) {
	m := NewMetricsWith("test", prometheus.NewRegistry())

	m.RecordDatasetLoad("stocks", 42, 0.01, nil)
	m.RecordDatasetLoad("stocks", 0, 0.02, errors.New("boom"))

	if got := testutil.ToFloat64(m.DatasetLoads.WithLabelValues("stocks", "ok")); got != 1 {
		t.Errorf("ok loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DatasetLoads.WithLabelValues("stocks", "error")); got != 1 {
		t.Errorf("error loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DatasetRows.WithLabelValues("stocks")); got != 42 {
		t.Errorf("rows = %v, want 42 (failed load must not reset)", got)
	}
}

func TestRecordDetection(t *testing.T) {
	m := NewMetricsWith("test", prometheus.NewRegistry())

	m.RecordDetection("index", "NetValue_in_Cr", "ok", 3, 1)

	if got := testutil.ToFloat64(m.DetectionsTotal.WithLabelValues("index", "NetValue_in_Cr", "ok")); got != 1 {
		t.Errorf("detections = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.FlaggedEntities.WithLabelValues("index", "NetValue_in_Cr", "rising")); got != 3 {
		t.Errorf("rising = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.FlaggedEntities.WithLabelValues("index", "NetValue_in_Cr", "falling")); got != 1 {
		t.Errorf("falling = %v, want 1", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m := NewMetricsWith("test", prometheus.NewRegistry())

	m.RecordHTTPRequest("/api/status", "GET", 200, 0.003)
	m.RecordHTTPRequest("/api/status", "GET", 200, 0.004)

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/status", "GET", "200")); got != 2 {
		t.Errorf("requests = %v, want 2", got)
	}
}

func TestRecordStoreStatus(t *testing.T) {
	m := NewMetricsWith("test", prometheus.NewRegistry())

	last := time.Date(2025, 3, 7, 18, 30, 0, 0, time.UTC)
	m.RecordStoreStatus(true, &last)
	if got := testutil.ToFloat64(m.StoreUp); got != 1 {
		t.Errorf("store up = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LastDataUpdate); got != float64(last.Unix()) {
		t.Errorf("last update = %v, want %d", got, last.Unix())
	}

	m.RecordStoreStatus(false, nil)
	if got := testutil.ToFloat64(m.StoreUp); got != 0 {
		t.Errorf("store up = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.LastDataUpdate); got != float64(last.Unix()) {
		t.Errorf("last update reset to %v", got)
	}
}
