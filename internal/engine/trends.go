package engine

import "math"

// trendThresholdPct is the minimum absolute week-over-week change, in
// percent, before a trend counts as moving rather than stable.
const trendThresholdPct = 5.0

// CompareWeeks calculates one KPI for two weeks and classifies the
// change. A zero previous value yields a 0% change when the current
// value is also zero, and +Inf otherwise; +Inf marshals as null.
func (e *Engine) CompareWeeks(kpiID, country, client, previousWeek, currentWeek string) (*Trend, error) {
	prev, err := e.CalculateKPI(kpiID, Selection{Country: country, Week: previousWeek, Client: client})
	if err != nil {
		return nil, err
	}
	cur, err := e.CalculateKPI(kpiID, Selection{Country: country, Week: currentWeek, Client: client})
	if err != nil {
		return nil, err
	}

	pv := float64(prev.Value)
	cv := float64(cur.Value)
	change := cv - pv

	var pct float64
	switch {
	case pv != 0:
		pct = change / pv * 100
	case cv != 0:
		pct = math.Inf(1)
	}

	direction := TrendStable
	if !math.IsNaN(pct) && math.Abs(pct) >= trendThresholdPct {
		if change > 0 {
			direction = TrendIncreasing
		} else {
			direction = TrendDecreasing
		}
	}

	return &Trend{
		KPIID:          prev.KPIID,
		KPIName:        prev.KPIName,
		PreviousWeek:   previousWeek,
		CurrentWeek:    currentWeek,
		PreviousValue:  prev.Value,
		CurrentValue:   cur.Value,
		ChangeAbsolute: JSONFloat(change),
		ChangePercent:  JSONFloat(pct),
		Direction:      direction,
	}, nil
}
