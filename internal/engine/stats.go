package engine

import (
	"math"
	"sort"
)

// SummarizeKPI computes descriptive statistics over the coerced measure
// column of a KPI's filtered row set. The standard deviation is the
// sample deviation; with fewer than two values it is NaN, and an empty
// set yields NaN for every statistic except Total and Count.
func (e *Engine) SummarizeKPI(kpiID string, sel Selection) (*Stats, error) {
	view, def, err := e.filteredView(kpiID, sel, nil, make(map[string]bool))
	if err != nil {
		return nil, err
	}

	values := measureValues(view, def)
	n := len(values)
	stats := &Stats{
		KPIID:  def.ID,
		Mean:   JSONFloat(math.NaN()),
		Median: JSONFloat(math.NaN()),
		Std:    JSONFloat(math.NaN()),
		Min:    JSONFloat(math.NaN()),
		Max:    JSONFloat(math.NaN()),
		Total:  JSONFloat(sum(values)),
		Count:  n,
	}
	if n == 0 {
		return stats, nil
	}

	mean := sum(values) / float64(n)
	stats.Mean = JSONFloat(mean)
	stats.Min = JSONFloat(reduce(values, math.Min))
	stats.Max = JSONFloat(reduce(values, math.Max))
	stats.Median = JSONFloat(median(values))
	if n > 1 {
		var ss float64
		for _, v := range values {
			ss += (v - mean) * (v - mean)
		}
		stats.Std = JSONFloat(math.Sqrt(ss / float64(n-1)))
	}
	return stats, nil
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
