package postgres

import (
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

// kindForOID maps a column type to a dataset kind. Unknown types are read as strings.
func kindForOID(oid uint32) dataset.Kind {
	switch oid {
	case pgtype.Float4OID, pgtype.Float8OID, pgtype.NumericOID,
		pgtype.Int2OID, pgtype.Int4OID, pgtype.Int8OID:
		return dataset.KindFloat
	case pgtype.DateOID:
		return dataset.KindDate
	case pgtype.TimestampOID, pgtype.TimestamptzOID:
		return dataset.KindTimestamp
	}
	return dataset.KindString
}

// fromPg converts a decoded value into the cell type of kind.
func fromPg(v any, kind dataset.Kind) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch kind {
	case dataset.KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int16:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case pgtype.Numeric:
			f, err := n.Float64Value()
			if err != nil {
				return nil, err
			}
			if !f.Valid {
				return nil, nil
			}
			return f.Float64, nil
		}
	case dataset.KindDate:
		if t, ok := v.(time.Time); ok {
			return date.FromTime(t), nil
		}
	case dataset.KindTimestamp:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
	case dataset.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("unexpected %T for %s column", v, kind)
}

// toPg converts a cell into a value pgx can encode.
func toPg(cell any) any {
	if d, ok := cell.(date.Date); ok {
		return d.Time()
	}
	return cell
}
