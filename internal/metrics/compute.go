// Package metrics computes descriptive statistics and grouped aggregates.
package metrics

import (
	"math"
	"sort"
)

// Summary holds descriptive statistics of a series.
type Summary struct {
	Count  int      `json:"count"`
	Sum    float64  `json:"sum"`
	Mean   float64  `json:"mean"`
	Median float64  `json:"median"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
	Stddev *float64 `json:"stddev"` // sample stddev, nil when Count < 2
}

// Describe computes summary statistics. NaN values are ignored.
func Describe(values []float64) Summary {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	n := len(clean)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, clean)
	sort.Float64s(sorted)

	mean := computeMean(clean)
	s := Summary{
		Count:  n,
		Sum:    computeSum(clean),
		Mean:   mean,
		Median: computePercentile(sorted, 0.50),
		Min:    sorted[0],
		Max:    sorted[n-1],
	}
	if n >= 2 {
		sd := computeStddev(clean, mean)
		s.Stddev = &sd
	}
	return s
}

func computeSum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// computeMean calculates arithmetic mean.
func computeMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return computeSum(values) / float64(len(values))
}

// computeStddev calculates sample standard deviation (n-1 denominator).
func computeStddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// computePercentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.10 = 10th percentile).
func computePercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
