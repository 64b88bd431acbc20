package source_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/fieldops-monitor/internal/catalog"
	"github.com/ignite/fieldops-monitor/internal/engine"
	"github.com/ignite/fieldops-monitor/internal/mockdata"
	"github.com/ignite/fieldops-monitor/internal/source"
)

func generateWorkbook(t *testing.T, rows int) *source.Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maintenance.xlsx")
	require.NoError(t, mockdata.Generate(path, rows, 1))
	return source.NewWorkbook(path)
}

func TestWorkbookTableNames(t *testing.T) {
	wb := generateWorkbook(t, 40)

	names, err := wb.TableNames()
	require.NoError(t, err)
	assert.Contains(t, names, mockdata.CatalogueSheet)
	assert.Contains(t, names, mockdata.RawSheet)
	assert.Contains(t, names, mockdata.CountrySheet("FR🇫🇷"))
}

func TestWorkbookCatalogue(t *testing.T) {
	wb := generateWorkbook(t, 40)

	tbl, err := wb.Catalogue()
	require.NoError(t, err)

	cat, err := catalog.Parse(tbl)
	require.NoError(t, err)
	require.NotNil(t, cat.Get("total_jobs"))
	require.NotNil(t, cat.Get("completion_rate"))
	assert.Equal(t, catalog.AggRatio, cat.Get("completion_rate").Aggregation)
}

func TestWorkbookRawTable(t *testing.T) {
	wb := generateWorkbook(t, 40)

	tbl, err := wb.RawTable(mockdata.RawSheet)
	require.NoError(t, err)
	assert.Equal(t, 40, tbl.Len())

	for _, col := range []string{"Country", "Planned Week", "Client", "Intervention Status"} {
		_, ok := tbl.Column(col)
		assert.True(t, ok, col)
	}
}

func TestWorkbookMissingSheet(t *testing.T) {
	wb := generateWorkbook(t, 10)

	_, err := wb.RawTable("No Such Sheet")
	assert.Error(t, err)
}

func TestWorkbookMissingFile(t *testing.T) {
	wb := source.NewWorkbook("/nonexistent/maintenance.xlsx")

	_, err := wb.Catalogue()
	assert.Error(t, err)
}

// TestWorkbookEndToEnd runs the full path: generated workbook, catalogue
// parse, engine calculation. The engine's count must agree with a manual
// scan of the same sheet.
func TestWorkbookEndToEnd(t *testing.T) {
	wb := generateWorkbook(t, 120)

	eng, err := engine.New(wb)
	require.NoError(t, err)

	sel := engine.Selection{Country: "France", Week: "2025_W48"}
	res, err := eng.CalculateKPI("total_jobs", sel)
	require.NoError(t, err)

	raw, err := wb.RawTable(mockdata.RawSheet)
	require.NoError(t, err)
	countryCol, ok := raw.Column("Country")
	require.True(t, ok)
	weekCol, ok := raw.Column("Planned Week")
	require.True(t, ok)

	want := 0
	for i := 0; i < raw.Len(); i++ {
		if raw.Value(i, countryCol).String() == "France" && raw.Value(i, weekCol).String() == "2025_W48" {
			want++
		}
	}
	assert.Equal(t, float64(want), float64(res.Value))
	assert.Equal(t, want, res.RecordCount)

	ratio, err := eng.CalculateKPI("completion_rate", sel)
	require.NoError(t, err)
	require.NotNil(t, ratio.Numerator)
	require.NotNil(t, ratio.Denominator)
	if float64(ratio.Denominator.Value) > 0 {
		assert.InDelta(t,
			float64(ratio.Numerator.Value)/float64(ratio.Denominator.Value)*100,
			float64(ratio.Value), 1e-9)
	}
}
