package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/fieldops-monitor/internal/table"
)

func cancellationEngine(t *testing.T) *Engine {
	t.Helper()

	cat := buildTable("KPI Catalogue", catalogueColumns, [][]string{
		defRow("cancelled", "COUNT", "", [][4]string{{"Intervention Status", "contains", "static", "Cancelled"}}, nil),
	})

	raw := buildTable("MNT Stages RAW",
		[]string{
			"Country", "Planned Week", "Chosen Team / Technician", "Intervention Status",
			"Planned Date", "Intervention Done Date", "Latitude", "Longitude",
		},
		[][]string{
			// Alice: one completed job, then two cancellations the same day.
			{"France", "2025_W48", "Alice", "Done", "2025-11-10 09:00:00", "2025-11-10 10:15:00", "48.85", "2.35"},
			{"France", "2025_W48", "Alice", "Cancelled", "2025-11-10 11:00:00", "", "48.86", "2.36"},
			{"France", "2025_W48", "Alice", "Cancelled", "2025-11-10 13:00:00", "", "48.90", "2.40"},
			// Alice again the next day, no cancellation.
			{"France", "2025_W48", "Alice", "Done", "2025-11-11 09:00:00", "2025-11-11 09:45:00", "48.85", "2.35"},
			// Bob: a cancellation with no prior completed job.
			{"France", "2025_W48", "Bob", "Cancelled", "2025-11-11 10:00:00", "", "48.80", "2.30"},
			// Bob: a row that cannot be positioned in the sequence.
			{"France", "2025_W48", "Bob", "Cancelled", "not a date", "", "48.80", "2.30"},
		})

	src := &fakeSource{tables: map[string]*table.Table{
		"KPI Catalogue":  cat,
		"MNT Stages RAW": raw,
	}}
	eng, err := New(src)
	require.NoError(t, err)
	return eng
}

func TestAnalyzeCancellations(t *testing.T) {
	eng := cancellationEngine(t)

	records, err := eng.AnalyzeCancellations("cancelled", Selection{Country: "France", Week: "2025_W48"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	alice := records[0]
	assert.Equal(t, "Alice", alice.Technician)
	assert.Equal(t, "2025-11-10", alice.Date)
	assert.Equal(t, 2, alice.CancelledCount)
	assert.Equal(t, "2025-11-10", alice.PrevJobDoneDate)
	assert.Equal(t, "10:15", alice.PrevJobDoneTime)
	require.NotNil(t, alice.DistanceKM)
	// 48.85,2.35 to 48.86,2.36 is about 1.3 km, rounded to one decimal.
	assert.Equal(t, 1.3, *alice.DistanceKM)

	bob := records[1]
	assert.Equal(t, "Bob", bob.Technician)
	assert.Equal(t, "2025-11-11", bob.Date)
	assert.Equal(t, 1, bob.CancelledCount)
	assert.Empty(t, bob.PrevJobDoneDate)
	assert.Nil(t, bob.DistanceKM)
}

func TestAnalyzeCancellationsMissingColumns(t *testing.T) {
	cat := buildTable("KPI Catalogue", catalogueColumns, [][]string{
		defRow("cancelled", "COUNT", "", [][4]string{{"Intervention Status", "contains", "static", "Cancelled"}}, nil),
	})
	raw := buildTable("MNT Stages RAW",
		[]string{"Country", "Planned Week", "Intervention Status"},
		[][]string{{"France", "2025_W48", "Cancelled"}})

	src := &fakeSource{tables: map[string]*table.Table{
		"KPI Catalogue":  cat,
		"MNT Stages RAW": raw,
	}}
	eng, err := New(src)
	require.NoError(t, err)

	records, err := eng.AnalyzeCancellations("cancelled", Selection{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAnalyzeCancellationsUnknownKPI(t *testing.T) {
	eng := cancellationEngine(t)

	_, err := eng.AnalyzeCancellations("nope", Selection{})
	require.Error(t, err)
}
