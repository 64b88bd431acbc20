// Package source provides the data-access collaborators the engine reads
// from: an .xlsx workbook export and a Postgres warehouse. Both expose the
// same contract; the engine does not know which one it is talking to.
package source

import "github.com/ignite/fieldops-monitor/internal/table"

// DataSource supplies the KPI catalogue and raw data tables.
type DataSource interface {
	// Catalogue returns the KPI Catalogue table.
	Catalogue() (*table.Table, error)
	// RawTable loads one raw data table by name.
	RawTable(name string) (*table.Table, error)
	// TableNames lists every table the source knows about. Used to
	// enumerate countries from convention-named tables.
	TableNames() ([]string, error)
}
