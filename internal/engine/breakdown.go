package engine

// RootCauseBreakdown computes value-frequency tables for each configured
// root-cause dimension over a KPI's filtered row set. The client
// restriction is intentionally not applied here: breakdowns diagnose the
// full filtered population. Configured dimensions absent from the table
// are skipped.
func (e *Engine) RootCauseBreakdown(kpiID string, sel Selection) (*Breakdown, error) {
	def := e.cat.Get(kpiID)
	if def == nil {
		return nil, notFoundErr(kpiID)
	}

	tbl, err := e.rawTable(def.SourceTable)
	if err != nil {
		return nil, sourceErr(kpiID, def.SourceTable, err)
	}

	view := applyFilters(tbl.All(), def, Selection{Country: sel.Country, Week: sel.Week}, nil)

	breakdowns := make(map[string]map[string]int)
	for _, dim := range def.RootCauseDims {
		if dim == "" {
			continue
		}
		col, ok := tbl.Column(dim)
		if !ok {
			continue
		}
		counts := make(map[string]int)
		for i := 0; i < view.Len(); i++ {
			v := view.Value(i, col)
			if v.IsNull() {
				continue
			}
			counts[v.String()]++
		}
		breakdowns[dim] = counts
	}

	return &Breakdown{
		KPIID:        def.ID,
		KPIName:      def.Name,
		Breakdowns:   breakdowns,
		TotalRecords: view.Len(),
	}, nil
}
