// handler.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/chater-marzougui/two-block-comparaison/src/processor"
	"github.com/chater-marzougui/two-block-comparaison/src/storage"
)

// Handler serves the analytical query surface over the cached dataset.
type Handler struct {
	Cache *storage.Cache
	Log   *zap.Logger
}

// NewHandler creates the query handler.
func NewHandler(cache *storage.Cache, logger *zap.Logger) *Handler {
	return &Handler{Cache: cache, Log: logger}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Cache.Dataset()
	if err != nil {
		h.respond(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	h.respond(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Rows:      ds.Report.Rows,
		FromCache: ds.Report.FromCache,
	})
}

// Ingestion handles GET /ingestion.
func (h *Handler) Ingestion(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, ds.Report)
}

// Summary handles GET /summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}

	resp := SummaryResponse{
		TourA: processor.Summarize(ds.PowerA, f),
		TourB: processor.Summarize(ds.PowerB, f),
	}
	if cmp, err := processor.Compare(ds.PowerA, ds.PowerB, f); err == nil {
		resp.Comparison = &cmp
	}
	h.respond(w, http.StatusOK, resp)
}

// HourlyPattern handles GET /patterns/hourly.
func (h *Handler) HourlyPattern(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}

	a := processor.HourlyPattern(ds.PowerA, f)
	b := processor.HourlyPattern(ds.PowerB, f)
	points := make([]HourlyPoint, 24)
	for hour := range points {
		points[hour] = HourlyPoint{Hour: hour, TourA: a[hour], TourB: b[hour]}
	}
	h.respond(w, http.StatusOK, points)
}

// WeeklyPattern handles GET /patterns/weekly.
func (h *Handler) WeeklyPattern(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}

	a := processor.WeeklyPattern(ds.PowerA, f)
	b := processor.WeeklyPattern(ds.PowerB, f)
	points := make([]WeeklyPoint, 7)
	for day := range points {
		points[day] = WeeklyPoint{Day: day, Name: processor.DayNames[day], TourA: a[day], TourB: b[day]}
	}
	h.respond(w, http.StatusOK, points)
}

// MonthlyTrend handles GET /trend/monthly.
func (h *Handler) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, processor.MonthlyTrend(ds.PowerA, ds.PowerB, f))
}

// TimeSeries handles GET /timeseries.
func (h *Handler) TimeSeries(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}
	g, err := processor.ParseGranularity(r.URL.Query().Get("aggregation"))
	if err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, http.StatusOK, TimeSeriesResponse{
		Aggregation: string(g),
		Points:      processor.TimeSeries(ds.PowerA, ds.PowerB, f, g),
	})
}

// Distribution handles GET /distribution.
func (h *Handler) Distribution(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}
	bins, err := parseCount(r, "bins", processor.DefaultBins)
	if err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, http.StatusOK, DistributionResponse{
		TourA: processor.Distribute(ds.PowerA, f, bins),
		TourB: processor.Distribute(ds.PowerB, f, bins),
	})
}

// Peaks handles GET /peaks.
func (h *Handler) Peaks(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}
	topN, err := parseCount(r, "top_n", processor.DefaultTopN)
	if err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respond(w, http.StatusOK, PeaksResponse{
		TourA: processor.AnalyzePeaks(ds.PowerA, f, topN),
		TourB: processor.AnalyzePeaks(ds.PowerB, f, topN),
	})
}

// Quality handles GET /quality.
func (h *Handler) Quality(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, QualityResponse{
		TourA: processor.AssessQuality(ds.PowerA, f),
		TourB: processor.AssessQuality(ds.PowerB, f),
	})
}

// Comparison handles GET /comparison. An empty intersection is a client
// visible condition, distinct from the dataset being unavailable.
func (h *Handler) Comparison(w http.ResponseWriter, r *http.Request) {
	ds, f, ok := h.load(w, r)
	if !ok {
		return
	}
	cmp, err := processor.Compare(ds.PowerA, ds.PowerB, f)
	if errors.Is(err, processor.ErrInsufficientData) {
		h.error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("comparison failed", zap.Error(err))
		h.error(w, http.StatusInternalServerError, "comparison failed")
		return
	}
	h.respond(w, http.StatusOK, cmp)
}

// load parses the shared filter parameters and fetches the dataset, writing
// the error response itself when either fails.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*storage.Dataset, processor.Filter, bool) {
	f, err := parseFilter(r)
	if err != nil {
		h.error(w, http.StatusBadRequest, err.Error())
		return nil, f, false
	}
	ds, ok := h.dataset(w)
	return ds, f, ok
}

func (h *Handler) dataset(w http.ResponseWriter) (*storage.Dataset, bool) {
	ds, err := h.Cache.Dataset()
	if err != nil {
		if !errors.Is(err, processor.ErrNoData) {
			h.Log.Error("dataset build failed", zap.Error(err))
		}
		h.error(w, http.StatusServiceUnavailable, "no data available")
		return nil, false
	}
	return ds, true
}

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Warn("write response", zap.Error(err))
	}
}

func (h *Handler) error(w http.ResponseWriter, status int, msg string) {
	h.respond(w, status, errorResponse{Error: msg})
}
