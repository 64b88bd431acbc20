package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ignite/fieldops-monitor/internal/engine"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine    *engine.Engine
	startTime time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(eng *engine.Engine) *Handlers {
	return &Handlers{
		engine:    eng,
		startTime: time.Now(),
	}
}

// HealthCheck reports process liveness and catalogue size.
//
//	GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"kpis":   h.engine.Catalog().Len(),
	})
}

// ListKPIs lists every definition in the catalogue.
//
//	GET /api/kpis
func (h *Handlers) ListKPIs(w http.ResponseWriter, r *http.Request) {
	defs := h.engine.Catalog().Definitions()
	out := make([]map[string]interface{}, 0, len(defs))
	for _, d := range defs {
		out = append(out, map[string]interface{}{
			"kpi_id":           d.ID,
			"kpi_name":         d.Name,
			"description":      d.Description,
			"aggregation_type": d.Aggregation,
			"source_table":     d.SourceTable,
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"kpis":  out,
		"total": len(out),
	})
}

// GetKPI calculates one KPI for the selection in the query string.
//
//	GET /api/kpis/{id}?country=France&week=2025_W48&client=Acme
func (h *Handlers) GetKPI(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.CalculateKPI(chi.URLParam(r, "id"), selection(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetKPIData returns the filtered raw rows behind a KPI.
//
//	GET /api/kpis/{id}/data
func (h *Handlers) GetKPIData(w http.ResponseWriter, r *http.Request) {
	tbl, err := h.engine.FilteredData(chi.URLParam(r, "id"), selection(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	rows := make([][]string, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		row := make([]string, len(tbl.Columns))
		for j := range tbl.Columns {
			row[j] = tbl.Value(i, j).String()
		}
		rows = append(rows, row)
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"source_table": tbl.Name,
		"columns":      tbl.Columns,
		"rows":         rows,
		"total":        len(rows),
	})
}

// GetKPIBreakdown returns root-cause frequency tables for a KPI.
//
//	GET /api/kpis/{id}/breakdown
func (h *Handlers) GetKPIBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.engine.RootCauseBreakdown(chi.URLParam(r, "id"), selection(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, breakdown)
}

// GetKPICancellations returns per-technician-day cancellation context.
//
//	GET /api/kpis/{id}/cancellations
func (h *Handlers) GetKPICancellations(w http.ResponseWriter, r *http.Request) {
	records, err := h.engine.AnalyzeCancellations(chi.URLParam(r, "id"), selection(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cancellations": records,
		"total":         len(records),
	})
}

// GetKPITrend compares a KPI across two weeks.
//
//	GET /api/kpis/{id}/trend?previous_week=2025_W47&current_week=2025_W48
func (h *Handlers) GetKPITrend(w http.ResponseWriter, r *http.Request) {
	prevWeek := r.URL.Query().Get("previous_week")
	curWeek := r.URL.Query().Get("current_week")
	if prevWeek == "" || curWeek == "" {
		respondError(w, http.StatusBadRequest, "previous_week and current_week are required")
		return
	}

	q := r.URL.Query()
	trend, err := h.engine.CompareWeeks(chi.URLParam(r, "id"), q.Get("country"), q.Get("client"), prevWeek, curWeek)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, trend)
}

// GetKPIStats returns descriptive statistics over a KPI's measure column.
//
//	GET /api/kpis/{id}/stats
func (h *Handlers) GetKPIStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.engine.SummarizeKPI(chi.URLParam(r, "id"), selection(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetReport calculates every KPI in the catalogue for one selection.
//
//	GET /api/report?country=France&week=2025_W48
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	sel := selection(r)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"report_id":    uuid.New().String(),
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"selection":    sel,
		"results":      h.engine.CalculateAll(sel),
	})
}

// GetCountries lists the countries with a per-country data table.
//
//	GET /api/countries
func (h *Handlers) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.engine.AvailableCountries()
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"countries": countries,
		"total":     len(countries),
	})
}

// GetWeeks lists the distinct week labels in a source table.
//
//	GET /api/weeks?table=MNT%20Stages%20RAW
func (h *Handlers) GetWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.engine.AvailableWeeks(r.URL.Query().Get("table"))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"weeks": weeks,
		"total": len(weeks),
	})
}

// selection reads the dynamic filter context from the query string.
func selection(r *http.Request) engine.Selection {
	q := r.URL.Query()
	return engine.Selection{
		Country: q.Get("country"),
		Week:    q.Get("week"),
		Client:  q.Get("client"),
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps calculation errors onto HTTP statuses: unknown
// KPIs are 404, unreachable sources are 502, malformed or cyclic
// catalogue entries are 422.
func respondEngineError(w http.ResponseWriter, err error) {
	var engErr *engine.Error
	if errors.As(err, &engErr) {
		switch engErr.Kind {
		case engine.KindNotFound:
			respondError(w, http.StatusNotFound, err.Error())
			return
		case engine.KindSourceUnavailable:
			respondError(w, http.StatusBadGateway, err.Error())
			return
		case engine.KindInvalidFormula, engine.KindCyclicDefinition:
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
