package catalog

import (
	"fmt"

	"github.com/ignite/fieldops-monitor/internal/table"
)

// Catalog is the loaded set of KPI definitions, keyed by kpi_id.
type Catalog struct {
	defs []*Definition
	byID map[string]*Definition
}

// Parse builds a catalog from the catalogue table. Rows without a kpi_id
// are skipped; a duplicate kpi_id is an error because every resolution
// path keys on it.
func Parse(tbl *table.Table) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Definition)}

	for r := 0; r < tbl.Len(); r++ {
		def := &Definition{
			ID:           cell(tbl, r, "kpi_id"),
			Name:         cell(tbl, r, "kpi_name"),
			Description:  cell(tbl, r, "kpi_description"),
			Aggregation:  AggregationKind(cell(tbl, r, "aggregation_type")),
			SourceTable:  cell(tbl, r, "source_table"),
			MeasureField: cell(tbl, r, "measure_field"),
		}
		if def.ID == "" {
			continue
		}
		if _, dup := c.byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate kpi_id %q in catalogue", def.ID)
		}

		for i := 0; i < MaxFilters; i++ {
			def.Filters[i] = FilterClause{
				Field:     cell(tbl, r, fmt.Sprintf("filter_%d_field", i+1)),
				Operator:  OperatorKind(cell(tbl, r, fmt.Sprintf("filter_%d_operator", i+1))),
				ValueType: ValueType(cell(tbl, r, fmt.Sprintf("filter_%d_value_type", i+1))),
				Value:     cell(tbl, r, fmt.Sprintf("filter_%d_value", i+1)),
			}
		}
		for i := 0; i < MaxRootCauseDims; i++ {
			def.RootCauseDims[i] = cell(tbl, r, fmt.Sprintf("root_cause_dim_%d", i+1))
		}

		c.defs = append(c.defs, def)
		c.byID[def.ID] = def
	}

	return c, nil
}

func cell(tbl *table.Table, row int, column string) string {
	col, ok := tbl.Column(column)
	if !ok {
		return ""
	}
	return tbl.Value(row, col).String()
}

// Get returns the definition for a kpi_id, or nil.
func (c *Catalog) Get(id string) *Definition {
	return c.byID[id]
}

// Definitions returns all definitions in catalogue order.
func (c *Catalog) Definitions() []*Definition {
	return c.defs
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }
