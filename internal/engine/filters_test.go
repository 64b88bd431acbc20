package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/fieldops-monitor/internal/catalog"
	"github.com/ignite/fieldops-monitor/internal/table"
)

func filterFixture() (*table.Table, *catalog.Definition) {
	tbl := buildTable("t",
		[]string{"Country", "Intervention Status", "Duration Minutes"},
		[][]string{
			{"France", "Done", "120"},
			{"France", "Cancelled", ""},
			{"Spain", "Done", "60"},
			{"France", "Done", "oops"},
			{"", "Done", "30"},
		})

	def := &catalog.Definition{ID: "x", Aggregation: catalog.AggCount}
	def.Filters[0] = catalog.FilterClause{
		Field: "Country", Operator: catalog.OpEqual,
		ValueType: catalog.ValueDynamic, Value: catalog.TokenSelectedCountry,
	}
	def.Filters[1] = catalog.FilterClause{
		Field: "Intervention Status", Operator: catalog.OpEqual,
		ValueType: catalog.ValueStatic, Value: "Done",
	}
	return tbl, def
}

func TestApplyFiltersEqualSubset(t *testing.T) {
	tbl, def := filterFixture()
	sel := Selection{Country: "France"}

	view := applyFilters(tbl.All(), def, sel, nil)
	require.Equal(t, 2, view.Len())

	countryCol, _ := tbl.Column("Country")
	statusCol, _ := tbl.Column("Intervention Status")
	for i := 0; i < view.Len(); i++ {
		assert.Equal(t, "France", view.Value(i, countryCol).String())
		assert.Equal(t, "Done", view.Value(i, statusCol).String())
	}
}

func TestApplyFiltersIdempotent(t *testing.T) {
	tbl, def := filterFixture()
	sel := Selection{Country: "France"}

	once := applyFilters(tbl.All(), def, sel, nil)
	twice := applyFilters(once, def, sel, nil)

	require.Equal(t, once.Len(), twice.Len())
	for i := 0; i < once.Len(); i++ {
		assert.Equal(t, once.RowIndex(i), twice.RowIndex(i))
	}
}

func TestApplyFiltersNullNeverMatches(t *testing.T) {
	tbl, def := filterFixture()

	// not_equal is also a positive match: null cells drop out.
	def.Filters[0] = catalog.FilterClause{
		Field: "Country", Operator: catalog.OpNotEqual,
		ValueType: catalog.ValueStatic, Value: "Spain",
	}
	def.Filters[1] = catalog.FilterClause{}

	view := applyFilters(tbl.All(), def, Selection{}, nil)
	assert.Equal(t, 3, view.Len())
}

func TestApplyFiltersMissingFieldSkipsClause(t *testing.T) {
	tbl, def := filterFixture()
	def.Filters[1].Field = "No Such Column"

	view := applyFilters(tbl.All(), def, Selection{Country: "France"}, nil)
	assert.Equal(t, 3, view.Len())
}

func TestApplyFiltersBadThresholdSkipsClause(t *testing.T) {
	tbl, def := filterFixture()
	def.Filters[0] = catalog.FilterClause{
		Field: "Duration Minutes", Operator: catalog.OpGreaterThan,
		ValueType: catalog.ValueStatic, Value: "not a number",
	}
	def.Filters[1] = catalog.FilterClause{}

	view := applyFilters(tbl.All(), def, Selection{}, nil)
	assert.Equal(t, tbl.Len(), view.Len())
}

func TestApplyFiltersExclusion(t *testing.T) {
	tbl, def := filterFixture()
	def.Filters[1] = catalog.FilterClause{
		Field: "Intervention Status", Operator: catalog.OpContains,
		ValueType: catalog.ValueStatic, Value: "Cancelled",
	}

	// The cancelled-status clause is dropped, the country clause is kept.
	view := applyFilters(tbl.All(), def, Selection{Country: "France"}, []string{"cancelled"})
	assert.Equal(t, 3, view.Len())
}

func TestResolveValue(t *testing.T) {
	sel := Selection{Country: "FR🇫🇷", Week: "2025_W48"}

	v, ok := resolveValue(catalog.FilterClause{
		ValueType: catalog.ValueDynamic, Value: catalog.TokenSelectedCountry,
	}, sel)
	require.True(t, ok)
	assert.Equal(t, "France", v)

	v, ok = resolveValue(catalog.FilterClause{
		ValueType: catalog.ValueDynamic, Value: catalog.TokenSelectedWeek,
	}, sel)
	require.True(t, ok)
	assert.Equal(t, "2025_W48", v)

	// Missing selection value makes the clause skippable.
	_, ok = resolveValue(catalog.FilterClause{
		ValueType: catalog.ValueDynamic, Value: catalog.TokenSelectedClient,
	}, sel)
	assert.False(t, ok)

	// Unknown token likewise.
	_, ok = resolveValue(catalog.FilterClause{
		ValueType: catalog.ValueDynamic, Value: "selected_galaxy",
	}, sel)
	assert.False(t, ok)

	// Static values pass through untouched.
	v, ok = resolveValue(catalog.FilterClause{
		ValueType: catalog.ValueStatic, Value: "Done",
	}, sel)
	require.True(t, ok)
	assert.Equal(t, "Done", v)
}
