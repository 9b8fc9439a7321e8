package core

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one column, computed
// over its present values, plus the number of missing cells.
type ColumnSummary struct {
	Count      int  `json:"count"`
	Mean       Stat `json:"mean"`
	Std        Stat `json:"std"`
	Min        Stat `json:"min"`
	P25        Stat `json:"25%"`
	P50        Stat `json:"50%"`
	P75        Stat `json:"75%"`
	Max        Stat `json:"max"`
	EmptyCells int  `json:"empty_cells"`
}

// Describe summarizes a column. Std is the sample standard deviation and
// is undefined for fewer than two values; every statistic is undefined
// for an all-missing column.
func Describe(values []Value) ColumnSummary {
	data := presentFloats(values)
	nan := Stat(math.NaN())
	sum := ColumnSummary{
		Count:      len(data),
		Mean:       nan,
		Std:        nan,
		Min:        nan,
		P25:        nan,
		P50:        nan,
		P75:        nan,
		Max:        nan,
		EmptyCells: len(values) - len(data),
	}
	if len(data) == 0 {
		return sum
	}

	// montanaflynn/stats only errors on empty input, which is handled above.
	mean, _ := stats.Mean(data)
	minV, _ := stats.Min(data)
	maxV, _ := stats.Max(data)
	sum.Mean = Stat(mean)
	sum.Min = Stat(minV)
	sum.Max = Stat(maxV)

	if len(data) > 1 {
		sum.Std = Stat(stat.StdDev(data, nil))
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	sum.P25 = Stat(quantile(sorted, 0.25))
	sum.P50 = Stat(quantile(sorted, 0.50))
	sum.P75 = Stat(quantile(sorted, 0.75))

	return sum
}

// quantile returns the p-quantile of sorted data using linear interpolation
// between the closest ranks at position p*(n-1).
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}
