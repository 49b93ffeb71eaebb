package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

// Validate checks that every required source column is present in raw.
func (m Mapping) Validate(raw *dataset.Table) error {
	for _, c := range m.Columns {
		if c.Required && !raw.Has(c.Source) {
			return &dataset.SchemaError{Table: m.Table, Column: c.Source, Reason: "required column not found"}
		}
	}
	return nil
}

// Apply renames, converts and scales the columns of a stored table.
// Columns without a mapping are carried over unchanged.
func (m Mapping) Apply(raw *dataset.Table) (*dataset.Table, error) {
	if err := m.Validate(raw); err != nil {
		return nil, err
	}

	bySource := make(map[string]Column, len(m.Columns))
	for _, c := range m.Columns {
		bySource[c.Source] = c
	}

	src := raw.Fields()
	fields := make([]dataset.Field, len(src))
	plan := make([]*Column, len(src))
	for i, f := range src {
		c, ok := bySource[f.Name]
		if !ok {
			fields[i] = f
			continue
		}
		plan[i] = &c
		fields[i] = dataset.Field{Name: c.Target, Kind: c.Kind}
	}

	rows := make([][]any, raw.Len())
	for r := range rows {
		cells := make([]any, len(src))
		for i, f := range src {
			cell := raw.Cell(r, f.Name)
			if plan[i] == nil {
				cells[i] = cell
				continue
			}
			v, err := convert(cell, plan[i].Kind)
			if err != nil {
				return nil, &dataset.SchemaError{
					Table:  m.Table,
					Column: f.Name,
					Reason: fmt.Sprintf("row %d: %v", r, err),
				}
			}
			if fv, ok := v.(float64); ok && plan[i].Scale != 0 {
				v = fv * plan[i].Scale
			}
			cells[i] = v
		}
		rows[r] = cells
	}
	return dataset.New(m.Table, fields, rows)
}

// VisibleColumns returns the canonical columns of t not marked hidden.
func (m Mapping) VisibleColumns(t *dataset.Table) []string {
	hidden := make(map[string]bool, len(m.Hidden))
	for _, h := range m.Hidden {
		hidden[h] = true
	}
	var out []string
	for _, f := range t.Fields() {
		if !hidden[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}

func convert(cell any, to dataset.Kind) (any, error) {
	if cell == nil {
		return nil, nil
	}
	switch to {
	case dataset.KindString:
		switch v := cell.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case date.Date:
			return v.String(), nil
		case time.Time:
			return v.Format(time.RFC3339), nil
		}
	case dataset.KindFloat:
		switch v := cell.(type) {
		case float64:
			return v, nil
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return nil, nil
			}
			f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("not numeric: %q", v)
			}
			return f, nil
		}
	case dataset.KindDate:
		switch v := cell.(type) {
		case date.Date:
			return v, nil
		case time.Time:
			return date.FromTime(v), nil
		case string:
			s := strings.TrimSpace(v)
			if len(s) > 10 {
				s = s[:10]
			}
			return date.Parse(s)
		}
	case dataset.KindTimestamp:
		switch v := cell.(type) {
		case time.Time:
			return v, nil
		case date.Date:
			return v.Time(), nil
		case string:
			return time.Parse(time.RFC3339, strings.TrimSpace(v))
		}
	}
	return nil, fmt.Errorf("cannot convert %T to %s", cell, to)
}
