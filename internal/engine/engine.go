// Package engine implements the KPI calculation engine: it interprets
// catalogue-driven filter definitions against raw maintenance tables,
// computes aggregate and ratio KPIs, breaks filtered sets down by
// root-cause dimensions, and analyzes cancellation context per
// technician-day.
package engine

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/ignite/fieldops-monitor/internal/catalog"
	"github.com/ignite/fieldops-monitor/internal/source"
	"github.com/ignite/fieldops-monitor/internal/table"
)

// DefaultSourceTable is the table consulted when no explicit source is
// given (week enumeration).
const DefaultSourceTable = "MNT Stages RAW"

// countryTablePrefix is the naming convention for per-country sheets.
const countryTablePrefix = "Weekly Template-"

// clientColumn is the literal column used for the post-filter client
// restriction on calculations.
const clientColumn = "Client"

// Engine calculates KPIs from a data source and its catalogue. The
// catalogue is loaded once at construction; raw tables are cached by name
// for the engine's lifetime. The engine is not safe for concurrent use —
// callers run one request at a time or hold one engine per session.
type Engine struct {
	src   source.DataSource
	cat   *catalog.Catalog
	cache map[string]*table.Table
}

// New creates an engine and loads the KPI catalogue.
func New(src source.DataSource) (*Engine, error) {
	catTbl, err := src.Catalogue()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Parse(catTbl)
	if err != nil {
		return nil, err
	}
	log.Printf("[engine] loaded %d KPI definitions", cat.Len())
	return &Engine{
		src:   src,
		cat:   cat,
		cache: make(map[string]*table.Table),
	}, nil
}

// Catalog exposes the loaded definitions (for listing endpoints).
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// rawTable loads a raw table through the per-engine cache.
func (e *Engine) rawTable(name string) (*table.Table, error) {
	if tbl, ok := e.cache[name]; ok {
		return tbl, nil
	}
	tbl, err := e.src.RawTable(name)
	if err != nil {
		return nil, err
	}
	e.cache[name] = tbl
	return tbl, nil
}

// ==========================================
// CALCULATION
// ==========================================

// CalculateKPI calculates one KPI for the given selection.
func (e *Engine) CalculateKPI(kpiID string, sel Selection) (*Result, error) {
	return e.calculate(kpiID, sel, make(map[string]bool))
}

func (e *Engine) calculate(kpiID string, sel Selection, visited map[string]bool) (*Result, error) {
	def := e.cat.Get(kpiID)
	if def == nil {
		return nil, notFoundErr(kpiID)
	}

	if def.Aggregation == catalog.AggRatio {
		return e.calculateRatio(def, sel, visited)
	}

	tbl, err := e.rawTable(def.SourceTable)
	if err != nil {
		return nil, sourceErr(kpiID, def.SourceTable, err)
	}

	view := applyFilters(tbl.All(), def, sel, nil)
	view = restrictToClient(view, sel.Client)

	return &Result{
		KPIID:          def.ID,
		KPIName:        def.Name,
		Value:          JSONFloat(aggregate(view, def)),
		Aggregation:    def.Aggregation,
		SourceTable:    def.SourceTable,
		RecordCount:    view.Len(),
		FiltersApplied: sel,
	}, nil
}

// restrictToClient applies the literal Client column restriction used by
// client-scoped calculations. Absent column: no restriction.
func restrictToClient(view table.View, client string) table.View {
	if client == "" {
		return view
	}
	col, ok := view.Table().Column(clientColumn)
	if !ok {
		return view
	}
	return view.Select(func(i int) bool {
		c := view.Value(i, col)
		return !c.IsNull() && c.String() == client
	})
}

// ratioFormula matches "<numerator_id> / <denominator_id>".
var ratioFormula = regexp.MustCompile(`^\s*(\w+)\s*/\s*(\w+)`)

// calculateRatio resolves both sides of a RATIO definition through the
// normal calculation path and divides them, as a percentage. A zero or
// undefined denominator yields 0, never an error or infinity. The visited
// set guards against cyclic catalogue definitions.
func (e *Engine) calculateRatio(def *catalog.Definition, sel Selection, visited map[string]bool) (*Result, error) {
	if visited[def.ID] {
		return nil, cycleErr(def.ID)
	}
	visited[def.ID] = true

	m := ratioFormula.FindStringSubmatch(def.MeasureField)
	if m == nil {
		return nil, formulaErr(def.ID)
	}

	num, err := e.calculate(m[1], sel, visited)
	if err != nil {
		return nil, err
	}
	denom, err := e.calculate(m[2], sel, visited)
	if err != nil {
		return nil, err
	}

	ratio := 0.0
	dv := float64(denom.Value)
	if dv != 0 && !math.IsNaN(dv) {
		ratio = float64(num.Value) / dv * 100
	}

	return &Result{
		KPIID:          def.ID,
		KPIName:        def.Name,
		Value:          JSONFloat(ratio),
		Aggregation:    catalog.AggRatio,
		SourceTable:    def.SourceTable,
		FiltersApplied: sel,
		Numerator:      &RatioComponent{KPI: m[1], Value: num.Value, Name: num.KPIName},
		Denominator:    &RatioComponent{KPI: m[2], Value: denom.Value, Name: denom.KPIName},
	}, nil
}

// CalculateAll calculates every KPI in catalogue order. Per-KPI failures
// are tagged on the result instead of aborting the sweep.
func (e *Engine) CalculateAll(sel Selection) []*Result {
	results := make([]*Result, 0, e.cat.Len())
	for _, def := range e.cat.Definitions() {
		res, err := e.CalculateKPI(def.ID, sel)
		if err != nil {
			res = &Result{KPIID: def.ID, KPIName: def.Name, Error: err.Error(), FiltersApplied: sel}
		}
		results = append(results, res)
	}
	return results
}

// ==========================================
// FILTERED DATA
// ==========================================

// FilteredData returns the filtered raw rows behind a KPI. RATIO KPIs
// resolve to their numerator's data.
func (e *Engine) FilteredData(kpiID string, sel Selection) (*table.Table, error) {
	view, def, err := e.filteredView(kpiID, sel, nil, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	return view.Materialize(def.SourceTable), nil
}

// filteredView resolves a KPI to its filtered row set, following RATIO
// definitions into their numerator. exclude is passed through to the
// filter interpreter.
func (e *Engine) filteredView(kpiID string, sel Selection, exclude []string, visited map[string]bool) (table.View, *catalog.Definition, error) {
	def := e.cat.Get(kpiID)
	if def == nil {
		return table.View{}, nil, notFoundErr(kpiID)
	}

	if def.Aggregation == catalog.AggRatio {
		if visited[def.ID] {
			return table.View{}, nil, cycleErr(def.ID)
		}
		visited[def.ID] = true
		m := ratioFormula.FindStringSubmatch(def.MeasureField)
		if m == nil {
			return table.View{}, nil, formulaErr(def.ID)
		}
		return e.filteredView(m[1], sel, exclude, visited)
	}

	tbl, err := e.rawTable(def.SourceTable)
	if err != nil {
		return table.View{}, nil, sourceErr(kpiID, def.SourceTable, err)
	}

	view := applyFilters(tbl.All(), def, sel, exclude)
	view = restrictToClient(view, sel.Client)
	return view, def, nil
}

// ==========================================
// ENUMERATION
// ==========================================

// AvailableCountries enumerates countries from convention-named
// per-country tables ("Weekly Template-<code>").
func (e *Engine) AvailableCountries() ([]string, error) {
	names, err := e.src.TableNames()
	if err != nil {
		return nil, err
	}
	var countries []string
	for _, n := range names {
		if strings.HasPrefix(n, countryTablePrefix) {
			countries = append(countries, strings.TrimSpace(strings.TrimPrefix(n, countryTablePrefix)))
		}
	}
	sort.Strings(countries)
	return countries, nil
}

// AvailableWeeks lists the distinct week labels in a source table,
// sorted. An empty sourceTable falls back to DefaultSourceTable.
func (e *Engine) AvailableWeeks(sourceTable string) ([]string, error) {
	if sourceTable == "" {
		sourceTable = DefaultSourceTable
	}
	tbl, err := e.rawTable(sourceTable)
	if err != nil {
		return nil, sourceErr("", sourceTable, err)
	}

	col, ok := tbl.ColumnContaining("week")
	if !ok {
		return nil, nil
	}

	seen := make(map[string]bool)
	var weeks []string
	for r := 0; r < tbl.Len(); r++ {
		v := tbl.Value(r, col)
		if v.IsNull() {
			continue
		}
		s := v.String()
		if !seen[s] {
			seen[s] = true
			weeks = append(weeks, s)
		}
	}
	sort.Strings(weeks)
	return weeks, nil
}
