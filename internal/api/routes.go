package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS for the dashboard frontend
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		// Catalogue
		r.Get("/kpis", h.ListKPIs)
		r.Get("/kpis/{id}", h.GetKPI)

		// Per-KPI analysis
		r.Get("/kpis/{id}/data", h.GetKPIData)
		r.Get("/kpis/{id}/breakdown", h.GetKPIBreakdown)
		r.Get("/kpis/{id}/cancellations", h.GetKPICancellations)
		r.Get("/kpis/{id}/trend", h.GetKPITrend)
		r.Get("/kpis/{id}/stats", h.GetKPIStats)

		// Full report across the catalogue
		r.Get("/report", h.GetReport)

		// Selection enumeration
		r.Get("/countries", h.GetCountries)
		r.Get("/weeks", h.GetWeeks)
	})

	return r
}
