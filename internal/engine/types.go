package engine

import (
	"encoding/json"
	"math"

	"github.com/ignite/fieldops-monitor/internal/catalog"
)

// Selection carries the caller-supplied context used to resolve dynamic
// filter values. An empty string means "not supplied": any clause that
// needs the missing value is skipped.
type Selection struct {
	Country string `json:"country,omitempty"`
	Week    string `json:"week,omitempty"`
	Client  string `json:"client,omitempty"`
}

// JSONFloat marshals NaN and ±Inf as null so undefined aggregates
// (mean/min/max of an empty set) survive the trip to the UI.
type JSONFloat float64

// MarshalJSON implements json.Marshaler.
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// RatioComponent records one side of a RATIO calculation.
type RatioComponent struct {
	KPI   string    `json:"kpi"`
	Value JSONFloat `json:"value"`
	Name  string    `json:"name"`
}

// Result is one KPI calculation. For RATIO KPIs, Numerator and
// Denominator are populated; for calculate-all sweeps, a per-KPI failure
// is tagged in Error instead of aborting the sweep.
type Result struct {
	KPIID          string                  `json:"kpi_id"`
	KPIName        string                  `json:"kpi_name,omitempty"`
	Value          JSONFloat               `json:"value"`
	Aggregation    catalog.AggregationKind `json:"aggregation_type,omitempty"`
	SourceTable    string                  `json:"source_table,omitempty"`
	RecordCount    int                     `json:"record_count"`
	FiltersApplied Selection               `json:"filters_applied"`

	Numerator   *RatioComponent `json:"numerator,omitempty"`
	Denominator *RatioComponent `json:"denominator,omitempty"`

	Error string `json:"error,omitempty"`
}

// Breakdown holds per-dimension value-frequency tables over a KPI's
// filtered row set.
type Breakdown struct {
	KPIID        string                    `json:"kpi_id"`
	KPIName      string                    `json:"kpi_name"`
	Breakdowns   map[string]map[string]int `json:"breakdowns"`
	TotalRecords int                       `json:"total_records"`
}

// CancellationContext is one (technician, day-with-cancellation) record:
// the nearest prior completed job and how far away it was.
type CancellationContext struct {
	Technician      string   `json:"technician"`
	Date            string   `json:"date"`
	CancelledCount  int      `json:"cancelled_count"`
	PrevJobDoneDate string   `json:"prev_job_done_date,omitempty"`
	PrevJobDoneTime string   `json:"prev_job_done_time,omitempty"`
	DistanceKM      *float64 `json:"distance_km"`
}

// TrendDirection labels a week-over-week change.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// Trend compares one KPI across two weeks.
type Trend struct {
	KPIID          string         `json:"kpi_id"`
	KPIName        string         `json:"kpi_name"`
	PreviousWeek   string         `json:"previous_week"`
	CurrentWeek    string         `json:"current_week"`
	PreviousValue  JSONFloat      `json:"previous_value"`
	CurrentValue   JSONFloat      `json:"current_value"`
	ChangeAbsolute JSONFloat      `json:"change_absolute"`
	ChangePercent  JSONFloat      `json:"change_percent"`
	Direction      TrendDirection `json:"direction"`
}

// Stats summarizes the coerced measure column of a KPI's filtered set.
type Stats struct {
	KPIID  string    `json:"kpi_id"`
	Mean   JSONFloat `json:"mean"`
	Median JSONFloat `json:"median"`
	Std    JSONFloat `json:"std"`
	Min    JSONFloat `json:"min"`
	Max    JSONFloat `json:"max"`
	Total  JSONFloat `json:"total"`
	Count  int       `json:"count"`
}
