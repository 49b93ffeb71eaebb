package dashboard

import (
	"context"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/schema"
)

// Raw returns the canonical rows of kind inside r. Bookkeeping columns such as
// id and timestamps are dropped unless all is set.
func (s *Service) Raw(ctx context.Context, kind domain.DatasetKind, r date.Range, all bool) (*dataset.Table, error) {
	t, err := s.loadFiltered(ctx, kind, r)
	if err != nil {
		return nil, err
	}
	if all {
		return t, nil
	}
	mapping, _ := schema.For(kind)
	return t.Select(mapping.VisibleColumns(t)...), nil
}
