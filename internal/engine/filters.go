package engine

import (
	"log"
	"strconv"
	"strings"

	"github.com/ignite/fieldops-monitor/internal/catalog"
	"github.com/ignite/fieldops-monitor/internal/table"
)

// applyFilters interprets a definition's filter slots against a view.
// Slots compose with AND semantics; each problem slot (missing field,
// unresolvable dynamic value, bad numeric literal) is skipped with a
// diagnostic rather than failing the calculation.
//
// exclude lists lowercase substrings: a slot whose literal value contains
// any of them is skipped entirely. The cancellation analyzer uses this to
// widen a "cancelled only" KPI back out to the full job sequence.
func applyFilters(view table.View, def *catalog.Definition, sel Selection, exclude []string) table.View {
	for _, clause := range def.Filters {
		if clause.Empty() {
			continue
		}
		if excludedClause(clause.Value, exclude) {
			continue
		}

		value, ok := resolveValue(clause, sel)
		if !ok || value == "" {
			continue
		}

		col, ok := view.Table().Column(clause.Field)
		if !ok {
			log.Printf("[filters] field %q not found in table %s, skipping clause", clause.Field, view.Table().Name)
			continue
		}

		next, err := applyClause(view, col, clause.Operator, value)
		if err != nil {
			log.Printf("[filters] could not apply %s %s %q: %v", clause.Field, clause.Operator, value, err)
			continue
		}
		view = next
	}
	return view
}

// excludedClause reports whether the clause's literal value contains any
// exclusion substring, case-insensitively.
func excludedClause(value string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	lower := strings.ToLower(value)
	for _, sub := range exclude {
		if sub != "" && strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// resolveValue produces the effective comparison value for a clause.
// Dynamic tokens map to the caller's selection; a token whose selection
// value is missing (or an unknown token) makes the clause skippable.
func resolveValue(clause catalog.FilterClause, sel Selection) (string, bool) {
	if clause.ValueType != catalog.ValueDynamic {
		return clause.Value, true
	}
	switch clause.Value {
	case catalog.TokenSelectedCountry:
		if sel.Country == "" {
			return "", false
		}
		return catalog.CountryDataValue(sel.Country), true
	case catalog.TokenSelectedWeek:
		if sel.Week == "" {
			return "", false
		}
		return sel.Week, true
	case catalog.TokenSelectedClient:
		if sel.Client == "" {
			return "", false
		}
		return sel.Client, true
	}
	return "", false
}

// applyClause narrows the view by one operator. Rows with missing values
// never satisfy a positive match; rows that fail numeric coercion are
// excluded from numeric comparisons.
func applyClause(view table.View, col int, op catalog.OperatorKind, value string) (table.View, error) {
	switch op {
	case catalog.OpEqual:
		return view.Select(func(i int) bool {
			c := view.Value(i, col)
			return !c.IsNull() && c.String() == value
		}), nil

	case catalog.OpNotEqual:
		return view.Select(func(i int) bool {
			c := view.Value(i, col)
			return !c.IsNull() && c.String() != value
		}), nil

	case catalog.OpGreaterThan, catalog.OpLessThan:
		threshold, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return view, err
		}
		return view.Select(func(i int) bool {
			f, err := view.Value(i, col).Float()
			if err != nil {
				return false
			}
			if op == catalog.OpGreaterThan {
				return f > threshold
			}
			return f < threshold
		}), nil

	case catalog.OpContains:
		return view.Select(func(i int) bool {
			c := view.Value(i, col)
			return !c.IsNull() && strings.Contains(c.String(), value)
		}), nil
	}

	return view, &unknownOperatorError{op}
}

type unknownOperatorError struct {
	op catalog.OperatorKind
}

func (e *unknownOperatorError) Error() string {
	return "unknown operator " + string(e.op)
}
