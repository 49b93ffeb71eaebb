package domain

import "time"

// StoreStatus reports connectivity and freshness of the backing store.
type StoreStatus struct {
	Driver      string                `json:"driver"`
	Connected   bool                  `json:"connected"`
	Error       string                `json:"error,omitempty"`
	Counts      map[DatasetKind]int64 `json:"counts"`
	LastUpdated *time.Time            `json:"last_updated"` // MAX(updated_at) of market_index
	CheckedAt   time.Time             `json:"checked_at"`
}
