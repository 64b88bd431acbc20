package table

// View is a zero-copy subset of a table's rows: an index list into the
// parent table. Filtering produces narrower views without duplicating data.
type View struct {
	table *Table
	rows  []int
}

// All returns a view over every row of the table.
func (t *Table) All() View {
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	return View{table: t, rows: rows}
}

// Table returns the underlying table (for column lookups).
func (v View) Table() *Table { return v.table }

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.rows) }

// RowIndex maps a view position to the underlying table row.
func (v View) RowIndex(i int) int { return v.rows[i] }

// Value returns the cell at view position i, column col.
func (v View) Value(i, col int) Value {
	return v.table.Rows[v.rows[i]][col]
}

// Select returns the sub-view of rows for which keep returns true.
func (v View) Select(keep func(i int) bool) View {
	out := make([]int, 0, len(v.rows))
	for i := range v.rows {
		if keep(i) {
			out = append(out, v.rows[i])
		}
	}
	return View{table: v.table, rows: out}
}

// Materialize copies the view into a standalone table, preserving the
// parent's header and any load-time timestamp coercion.
func (v View) Materialize(name string) *Table {
	out := New(name, v.table.Columns)
	out.Rows = make([][]Value, 0, len(v.rows))
	for _, r := range v.rows {
		out.Rows = append(out.Rows, v.table.Rows[r])
	}
	return out
}
