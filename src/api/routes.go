// routes.go
package api

import "github.com/go-chi/chi/v5"

// Routes returns the router for the analytics API.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.Health)
	r.Get("/ingestion", h.Ingestion)
	r.Get("/summary", h.Summary)
	r.Get("/patterns/hourly", h.HourlyPattern)
	r.Get("/patterns/weekly", h.WeeklyPattern)
	r.Get("/trend/monthly", h.MonthlyTrend)
	r.Get("/timeseries", h.TimeSeries)
	r.Get("/distribution", h.Distribution)
	r.Get("/peaks", h.Peaks)
	r.Get("/quality", h.Quality)
	r.Get("/comparison", h.Comparison)

	return r
}
