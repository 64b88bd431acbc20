// Package table holds the in-memory tabular model the KPI engine operates
// on: named string columns, dynamically typed cells, and zero-copy filtered
// views over the rows.
package table

import "strings"

// Table is one raw data table (a sheet or warehouse table) loaded into
// memory. Column lookup is O(1); rows are never mutated after load.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]Value

	index   map[string]int
	dateCol []bool
}

// New creates an empty table with the given header.
func New(name string, columns []string) *Table {
	t := &Table{
		Name:    name,
		Columns: columns,
		index:   make(map[string]int, len(columns)),
		dateCol: make([]bool, len(columns)),
	}
	for i, c := range columns {
		t.index[c] = i
		t.dateCol[i] = IsDateColumn(c)
	}
	return t
}

// IsDateColumn reports whether a column is coerced to timestamps at load.
// Week-label columns (e.g. "Planned Week" holding "2025_W48") are not dates.
func IsDateColumn(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "date") && !strings.Contains(lower, "week")
}

// AppendRow adds a row of raw cells, padding or truncating to the header
// width. Cells in date columns get a parsed timestamp when they parse.
func (t *Table) AppendRow(cells []string) {
	row := make([]Value, len(t.Columns))
	for i := range t.Columns {
		raw := ""
		if i < len(cells) {
			raw = cells[i]
		}
		v := Value{Raw: raw}
		if t.dateCol[i] {
			if ts, ok := ParseTimestamp(raw); ok {
				v.Parsed = &ts
			}
		}
		row[i] = v
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Column returns the index of an exactly named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ColumnFold returns the index of a column matched case-insensitively.
func (t *Table) ColumnFold(name string) (int, bool) {
	if i, ok := t.index[name]; ok {
		return i, true
	}
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i, true
		}
	}
	return 0, false
}

// ColumnContaining returns the first column whose header contains the
// given substring, case-insensitively. Used by the cancellation analyzer
// to probe for status/planned columns.
func (t *Table) ColumnContaining(sub string) (int, bool) {
	sub = strings.ToLower(sub)
	for i, c := range t.Columns {
		if strings.Contains(strings.ToLower(c), sub) {
			return i, true
		}
	}
	return 0, false
}

// Value returns the cell at (row, col). Bounds are the caller's problem;
// column indices come from the Column* lookups.
func (t *Table) Value(row, col int) Value {
	return t.Rows[row][col]
}
