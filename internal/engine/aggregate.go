package engine

import (
	"log"
	"math"

	"github.com/ignite/fieldops-monitor/internal/catalog"
	"github.com/ignite/fieldops-monitor/internal/table"
)

// aggregate reduces a filtered view per the definition's aggregation
// kind. Empty-set identities match the dashboard's historical behavior:
// sum of nothing is 0, mean/min/max of nothing is NaN. Cells that do not
// coerce to a number are excluded from the statistic but still counted in
// the row set.
func aggregate(view table.View, def *catalog.Definition) float64 {
	if def.Aggregation == catalog.AggCount {
		return float64(view.Len())
	}

	values := measureValues(view, def)
	switch def.Aggregation {
	case catalog.AggSum:
		return sum(values)
	case catalog.AggAverage:
		if len(values) == 0 {
			return math.NaN()
		}
		return sum(values) / float64(len(values))
	case catalog.AggMin:
		return reduce(values, math.Min)
	case catalog.AggMax:
		return reduce(values, math.Max)
	}
	return math.NaN()
}

// measureValues coerces the measure column of every row in the view,
// dropping cells that are not numbers.
func measureValues(view table.View, def *catalog.Definition) []float64 {
	if def.MeasureField == "" {
		return nil
	}
	col, ok := view.Table().Column(def.MeasureField)
	if !ok {
		log.Printf("[aggregate] measure field %q not found in table %s", def.MeasureField, view.Table().Name)
		return nil
	}

	values := make([]float64, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		f, err := view.Value(i, col).Float()
		if err != nil {
			continue
		}
		values = append(values, f)
	}
	return values
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func reduce(values []float64, pick func(a, b float64) float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	out := values[0]
	for _, v := range values[1:] {
		out = pick(out, v)
	}
	return out
}
