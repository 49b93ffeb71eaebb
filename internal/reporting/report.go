package reporting

import (
	"time"

	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
)

// ChangeReport is a significant-change report over one dataset.
type ChangeReport struct {
	GeneratedAt time.Time
	Dataset     domain.DatasetKind
	Range       date.Range
	Result      *change.Result

	// Formatted views of Result.Rising and Result.Falling
	Rising  []ChangeRow
	Falling []ChangeRow
}

// TrendReport is the drill-down of a single symbol.
type TrendReport struct {
	GeneratedAt time.Time
	Dataset     domain.DatasetKind
	Range       date.Range
	Trend       *domain.Trend
}

// StatusReport describes the backing store.
type StatusReport struct {
	GeneratedAt time.Time
	Status      *domain.StoreStatus
}
