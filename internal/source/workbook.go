package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ignite/fieldops-monitor/internal/table"
)

// DefaultCatalogueSheet is the sheet name holding KPI definitions.
const DefaultCatalogueSheet = "KPI Catalogue"

// Workbook reads tables from a local .xlsx export of the operations
// spreadsheet. Each sheet is one table; the first row is the header.
// The file is reopened per read — the engine caches loaded tables, so
// each sheet is read at most once per engine lifetime.
type Workbook struct {
	path           string
	catalogueSheet string
}

// NewWorkbook creates a workbook source for the given .xlsx path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path, catalogueSheet: DefaultCatalogueSheet}
}

// NewWorkbookWithCatalogue overrides the catalogue sheet name.
func NewWorkbookWithCatalogue(path, catalogueSheet string) *Workbook {
	return &Workbook{path: path, catalogueSheet: catalogueSheet}
}

// Catalogue returns the KPI Catalogue sheet as a table.
func (w *Workbook) Catalogue() (*table.Table, error) {
	return w.RawTable(w.catalogueSheet)
}

// RawTable loads one sheet as a table.
func (w *Workbook) RawTable(name string) (*table.Table, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", name)
	}

	tbl := table.New(name, rows[0])
	for _, row := range rows[1:] {
		tbl.AppendRow(row)
	}
	return tbl, nil
}

// TableNames lists all sheet names in the workbook.
func (w *Workbook) TableNames() ([]string, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.path, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
