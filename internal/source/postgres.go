package source

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/ignite/fieldops-monitor/internal/table"
)

// Postgres reads tables from a warehouse schema. Every column is read
// back as text — the engine's tabular model coerces lazily, the same way
// it does for workbook cells.
type Postgres struct {
	db             *sql.DB
	schema         string
	catalogueTable string
}

// NewPostgres creates a Postgres source. catalogueTable is the table
// holding KPI definitions; schema defaults to public when empty.
func NewPostgres(db *sql.DB, schema, catalogueTable string) *Postgres {
	if schema == "" {
		schema = "public"
	}
	return &Postgres{db: db, schema: schema, catalogueTable: catalogueTable}
}

// Catalogue returns the KPI definitions table.
func (p *Postgres) Catalogue() (*table.Table, error) {
	return p.RawTable(p.catalogueTable)
}

// RawTable loads one warehouse table by name.
func (p *Postgres) RawTable(name string) (*table.Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s.%s",
		pq.QuoteIdentifier(p.schema), pq.QuoteIdentifier(name))

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query table %q: %w", name, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns of %q: %w", name, err)
	}

	tbl := table.New(name, cols)
	raw := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range raw {
		ptrs[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", name, err)
		}
		cells := make([]string, len(cols))
		for i, v := range raw {
			cells[i] = stringifyDBValue(v)
		}
		tbl.AppendRow(cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read table %q: %w", name, err)
	}
	return tbl, nil
}

// TableNames lists the tables in the source schema.
func (p *Postgres) TableNames() ([]string, error) {
	rows, err := p.db.Query(
		`SELECT table_name FROM information_schema.tables WHERE table_schema = $1 ORDER BY table_name`,
		p.schema)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// stringifyDBValue renders a scanned column value the way the workbook
// source would have read it. NULL becomes the empty cell.
func stringifyDBValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case bool:
		if x {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", x)
	}
}
