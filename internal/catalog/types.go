// Package catalog models the KPI Catalogue: declarative KPI definitions
// with up to five filter clauses and root-cause dimensions each, parsed
// from a catalogue table supplied by a data source.
package catalog

// ==========================================
// AGGREGATIONS
// ==========================================

// AggregationKind is the closed set of supported aggregations.
type AggregationKind string

const (
	AggCount   AggregationKind = "COUNT"
	AggSum     AggregationKind = "SUM"
	AggAverage AggregationKind = "AVERAGE"
	AggMin     AggregationKind = "MIN"
	AggMax     AggregationKind = "MAX"
	AggRatio   AggregationKind = "RATIO"
)

// Valid reports whether the kind is one of the known aggregations.
func (k AggregationKind) Valid() bool {
	switch k {
	case AggCount, AggSum, AggAverage, AggMin, AggMax, AggRatio:
		return true
	}
	return false
}

// ==========================================
// FILTER OPERATORS
// ==========================================

// OperatorKind is the closed set of filter clause operators.
type OperatorKind string

const (
	OpEqual       OperatorKind = "equal"
	OpNotEqual    OperatorKind = "not_equal"
	OpGreaterThan OperatorKind = "greater_than"
	OpLessThan    OperatorKind = "less_than"
	OpContains    OperatorKind = "contains"
)

// Valid reports whether the kind is one of the known operators.
func (k OperatorKind) Valid() bool {
	switch k {
	case OpEqual, OpNotEqual, OpGreaterThan, OpLessThan, OpContains:
		return true
	}
	return false
}

// ==========================================
// FILTER VALUES
// ==========================================

// ValueType distinguishes literal filter values from placeholders
// resolved at call time from the caller's selection.
type ValueType string

const (
	ValueStatic  ValueType = "static"
	ValueDynamic ValueType = "dynamic"
)

// Dynamic placeholder tokens.
const (
	TokenSelectedCountry = "selected_country"
	TokenSelectedWeek    = "selected_week"
	TokenSelectedClient  = "selected_client"
)

// FilterClause is one declarative filter slot of a KPI definition.
// A clause with an empty Field is an unused slot.
type FilterClause struct {
	Field     string       `json:"field"`
	Operator  OperatorKind `json:"operator"`
	ValueType ValueType    `json:"value_type"`
	Value     string       `json:"value"`
}

// Empty reports whether the slot is unused.
func (c FilterClause) Empty() bool { return c.Field == "" }

// ==========================================
// DEFINITIONS
// ==========================================

// MaxFilters and MaxRootCauseDims are the catalogue's slot counts.
const (
	MaxFilters       = 5
	MaxRootCauseDims = 5
)

// Definition is one row of the KPI Catalogue.
// For RATIO KPIs, MeasureField holds a formula "<num_id> / <denom_id>"
// instead of a column name.
type Definition struct {
	ID           string          `json:"kpi_id"`
	Name         string          `json:"kpi_name"`
	Description  string          `json:"kpi_description,omitempty"`
	Aggregation  AggregationKind `json:"aggregation_type"`
	SourceTable  string          `json:"source_table"`
	MeasureField string          `json:"measure_field,omitempty"`

	Filters       [MaxFilters]FilterClause `json:"filters"`
	RootCauseDims [MaxRootCauseDims]string `json:"root_cause_dims"`
}
