package engine

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/ignite/fieldops-monitor/internal/table"
)

// cancellationExclusions widens the KPI's filter set past its literal
// cancelled-status clause so both completed and cancelled jobs remain in
// the analyzed sequence.
var cancellationExclusions = []string{"cancelled", "anulled", "canceled"}

// Column probes used by the analyzer. The technician header is matched
// exactly (case-insensitive); status and coordinates tolerate naming
// drift across country sheets.
const (
	technicianHeader = "Chosen Team / Technician"
	startDateHeader  = "Intervention Start Date"
	doneDateHeader   = "Intervention Done Date"
)

// AnalyzeCancellations locates, for every technician-day containing at
// least one cancelled job, the immediately preceding completed job in
// the technician's chronological sequence, and reports the completed
// job's done time plus the great-circle distance between the two sites.
//
// Rows whose ordering timestamp does not parse cannot be positioned in
// the sequence and are left out of the per-day analysis; a missing
// technician or status column degrades to an empty result, not an error.
func (e *Engine) AnalyzeCancellations(kpiID string, sel Selection) ([]CancellationContext, error) {
	view, _, err := e.filteredView(kpiID, sel, cancellationExclusions, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	tbl := view.Table()

	techCol, haveTech := tbl.ColumnFold(technicianHeader)
	statusCol, haveStatus := tbl.ColumnContaining("status")
	if !haveTech || !haveStatus {
		log.Printf("[cancellations] missing columns for analysis (technician=%v status=%v)", haveTech, haveStatus)
		return nil, nil
	}

	orderCol, ok := orderingColumn(tbl)
	if !ok {
		log.Printf("[cancellations] no ordering column in table %s", tbl.Name)
		return nil, nil
	}

	doneCol, haveDone := tbl.ColumnFold(doneDateHeader)
	if !haveDone {
		doneCol, haveDone = tbl.ColumnContaining("done")
	}
	latCol, haveLat := tbl.ColumnFold("Latitude")
	if !haveLat {
		latCol, haveLat = tbl.ColumnContaining("latitude")
	}
	lonCol, haveLon := tbl.ColumnFold("Longitude")
	if !haveLon {
		lonCol, haveLon = tbl.ColumnContaining("longitude")
	}
	haveCoords := haveLat && haveLon

	type job struct {
		row       int
		when      time.Time
		cancelled bool
	}

	// Group positionable rows by technician.
	byTech := make(map[string][]job)
	for i := 0; i < view.Len(); i++ {
		tech := view.Value(i, techCol).String()
		if tech == "" {
			continue
		}
		when, ok := view.Value(i, orderCol).Time()
		if !ok {
			continue
		}
		byTech[tech] = append(byTech[tech], job{
			row:       view.RowIndex(i),
			when:      when,
			cancelled: isCancelledStatus(view.Value(i, statusCol).String()),
		})
	}

	techs := make([]string, 0, len(byTech))
	for t := range byTech {
		techs = append(techs, t)
	}
	sort.Strings(techs)

	var out []CancellationContext
	for _, tech := range techs {
		jobs := byTech[tech]
		sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].when.Before(jobs[j].when) })

		// Distinct cancellation days, in chronological order.
		seen := make(map[string]bool)
		for idx, j := range jobs {
			if !j.cancelled {
				continue
			}
			day := j.when.Format("2006-01-02")
			if seen[day] {
				continue
			}
			seen[day] = true

			count := 0
			for _, other := range jobs {
				if other.cancelled && other.when.Format("2006-01-02") == day {
					count++
				}
			}

			rec := CancellationContext{
				Technician:     tech,
				Date:           day,
				CancelledCount: count,
			}

			// Nearest preceding completed job with a done timestamp,
			// anywhere in the technician's sequence (not just same day).
			for p := idx - 1; p >= 0; p-- {
				if jobs[p].cancelled {
					continue
				}
				if !haveDone {
					break
				}
				doneAt, ok := tbl.Value(jobs[p].row, doneCol).Time()
				if !ok {
					continue
				}
				rec.PrevJobDoneDate = doneAt.Format("2006-01-02")
				rec.PrevJobDoneTime = doneAt.Format("15:04")
				if haveCoords {
					rec.DistanceKM = haversineCells(
						tbl.Value(jobs[p].row, latCol), tbl.Value(jobs[p].row, lonCol),
						tbl.Value(j.row, latCol), tbl.Value(j.row, lonCol),
					)
				}
				break
			}

			out = append(out, rec)
		}
	}
	return out, nil
}

// orderingColumn picks the sequence key for a technician's jobs: a
// planned timestamp column when one exists, otherwise the intervention
// start timestamp. Week-label columns ("Planned Week") are not
// timestamps and never qualify.
func orderingColumn(tbl *table.Table) (int, bool) {
	for i, c := range tbl.Columns {
		if strings.Contains(strings.ToLower(c), "planned") && table.IsDateColumn(c) {
			return i, true
		}
	}
	if i, ok := tbl.ColumnFold(startDateHeader); ok {
		return i, true
	}
	return tbl.ColumnContaining("start date")
}

// isCancelledStatus classifies a status cell. Matches the historical
// data's mixed vocabulary ("Cancelled", "Canceled", "Anulled", "Anulado").
func isCancelledStatus(status string) bool {
	lower := strings.ToLower(status)
	return strings.Contains(lower, "cancel") || strings.Contains(lower, "anul")
}
