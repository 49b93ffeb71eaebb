package domain

import "fmt"

// DatasetKind identifies one of the stored market-activity tables.
type DatasetKind string

// Dataset kinds.
const (
	DatasetIndex       DatasetKind = "index"
	DatasetStocks      DatasetKind = "stocks"
	DatasetSummary     DatasetKind = "summary"
	DatasetTotalIndex  DatasetKind = "total_index"
	DatasetTotalStocks DatasetKind = "total_stocks"
)

// AllDatasets returns every dataset kind in display order.
func AllDatasets() []DatasetKind {
	return []DatasetKind{
		DatasetIndex,
		DatasetStocks,
		DatasetSummary,
		DatasetTotalIndex,
		DatasetTotalStocks,
	}
}

// ParseDatasetKind validates a dataset kind name.
func ParseDatasetKind(s string) (DatasetKind, error) {
	for _, k := range AllDatasets() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown dataset %q", s)
}

// Table returns the name of the relational table backing the dataset.
func (k DatasetKind) Table() string {
	switch k {
	case DatasetIndex:
		return "market_index"
	case DatasetStocks:
		return "market_stocks"
	case DatasetSummary:
		return "market_summary"
	case DatasetTotalIndex:
		return "total_index"
	case DatasetTotalStocks:
		return "total_stocks"
	}
	return ""
}

// Label returns a human readable dataset name.
func (k DatasetKind) Label() string {
	switch k {
	case DatasetIndex:
		return "Index"
	case DatasetStocks:
		return "Stocks"
	case DatasetSummary:
		return "Summary"
	case DatasetTotalIndex:
		return "Total Index"
	case DatasetTotalStocks:
		return "Total Stocks"
	}
	return string(k)
}

// HasEntities reports whether rows of the dataset are keyed by a symbol.
func (k DatasetKind) HasEntities() bool {
	return k == DatasetIndex || k == DatasetStocks
}
