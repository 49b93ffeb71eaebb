package clickhouse

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Avishah123/hb-dashboard/internal/dataset"
	"github.com/Avishah123/hb-dashboard/internal/date"
)

// baseType strips Nullable(...) and LowCardinality(...) wrappers.
func baseType(typ string) string {
	for {
		switch {
		case strings.HasPrefix(typ, "Nullable(") && strings.HasSuffix(typ, ")"):
			typ = typ[len("Nullable(") : len(typ)-1]
		case strings.HasPrefix(typ, "LowCardinality(") && strings.HasSuffix(typ, ")"):
			typ = typ[len("LowCardinality(") : len(typ)-1]
		default:
			return typ
		}
	}
}

// kindForType maps a ClickHouse column type to a dataset kind.
// Unknown types are read as strings.
func kindForType(typ string) dataset.Kind {
	base := baseType(typ)
	switch {
	case strings.HasPrefix(base, "Float"), strings.HasPrefix(base, "Int"),
		strings.HasPrefix(base, "UInt"), strings.HasPrefix(base, "Decimal"):
		return dataset.KindFloat
	case strings.HasPrefix(base, "DateTime"):
		return dataset.KindTimestamp
	case base == "Date", base == "Date32":
		return dataset.KindDate
	}
	return dataset.KindString
}

func isDecimal(typ string) bool {
	return strings.HasPrefix(baseType(typ), "Decimal")
}

// deref unwraps the pointer created for scanning. A nil inner pointer is NULL.
func deref(ptr any) any {
	v := reflect.ValueOf(ptr).Elem()
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

// fromCH converts a scanned value into the cell type of kind.
func fromCH(v any, kind dataset.Kind) (any, error) {
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
		case int8:
			return float64(n), nil
		case int16:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case uint8:
			return float64(n), nil
		case uint16:
			return float64(n), nil
		case uint32:
			return float64(n), nil
		case uint64:
			return float64(n), nil
		case decimal.Decimal:
			return n.InexactFloat64(), nil
		}
	case dataset.KindDate:
		if t, ok := v.(time.Time); ok {
			return date.FromTime(t), nil
		}
	case dataset.KindTimestamp:
		if t, ok := v.(time.Time); ok {
			return t.UTC(), nil
		}
	case dataset.KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return fmt.Sprint(v), nil
	}
	return nil, fmt.Errorf("unexpected %T for %s column", v, kind)
}

// toCH converts a cell into a value the batch can append to a column of typ.
func toCH(cell any, typ string) any {
	switch c := cell.(type) {
	case date.Date:
		return c.Time()
	case float64:
		if isDecimal(typ) {
			return decimal.NewFromFloat(c)
		}
	}
	return cell
}
