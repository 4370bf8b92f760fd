// types.go
package api

import "github.com/chater-marzougui/two-block-comparaison/src/processor"

// errorResponse is the envelope for every non-2xx answer.
type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports whether the dataset is queryable.
type HealthResponse struct {
	Status    string `json:"status"`
	Rows      int    `json:"rows"`
	FromCache bool   `json:"fromCache"`
}

// SummaryResponse pairs both buildings' headline metrics. Comparison is
// omitted when the filtered window leaves nothing to align.
type SummaryResponse struct {
	TourA      processor.Summary     `json:"tourA"`
	TourB      processor.Summary     `json:"tourB"`
	Comparison *processor.Comparison `json:"comparison,omitempty"`
}

// HourlyPoint is one hour-of-day bucket for both buildings.
type HourlyPoint struct {
	Hour  int     `json:"hour"`
	TourA float64 `json:"tourA"`
	TourB float64 `json:"tourB"`
}

// WeeklyPoint is one day-of-week bucket for both buildings, Monday first.
type WeeklyPoint struct {
	Day   int     `json:"day"`
	Name  string  `json:"name"`
	TourA float64 `json:"tourA"`
	TourB float64 `json:"tourB"`
}

// TimeSeriesResponse is a resampled series over the union of both
// buildings' occupied buckets.
type TimeSeriesResponse struct {
	Aggregation string                 `json:"aggregation"`
	Points      []processor.TrendPoint `json:"points"`
}

// DistributionResponse pairs both buildings' value distributions.
type DistributionResponse struct {
	TourA processor.Distribution `json:"tourA"`
	TourB processor.Distribution `json:"tourB"`
}

// PeaksResponse pairs both buildings' peak analyses.
type PeaksResponse struct {
	TourA processor.PeakAnalysis `json:"tourA"`
	TourB processor.PeakAnalysis `json:"tourB"`
}

// QualityResponse pairs both buildings' data-quality assessments.
type QualityResponse struct {
	TourA processor.Quality `json:"tourA"`
	TourB processor.Quality `json:"tourB"`
}
