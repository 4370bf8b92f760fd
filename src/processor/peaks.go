// peaks.go
package processor

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DefaultTopN is the peak/off-peak rank depth when the caller does not pick
// one.
const DefaultTopN = 5

// dailyPeakBins is fixed: the daily-maxima histogram is a presentation
// profile, not a parameter.
const dailyPeakBins = 20

// HourRank is one hour's mean power within a ranking.
type HourRank struct {
	Hour     int     `json:"hour"`
	AvgPower float64 `json:"avgPower"`
}

// DailyPeakStats profiles the distribution of per-calendar-day maxima.
type DailyPeakStats struct {
	Histogram Histogram `json:"histogram"`
	Mean      float64   `json:"mean"`
	Median    float64   `json:"median"`
	Max       float64   `json:"max"`
	Min       float64   `json:"min"`
	Days      int       `json:"days"`
}

// PeakAnalysis ranks the hours of day by mean power and profiles daily
// peaks.
type PeakAnalysis struct {
	PeakHours    []HourRank     `json:"peakHours"`
	OffPeakHours []HourRank     `json:"offPeakHours"`
	DailyPeaks   DailyPeakStats `json:"dailyPeaks"`
}

// AnalyzePeaks ranks the 24 hourly means descending for the top-N peak hours
// and ascending for the top-N off-peak hours, and computes the distribution
// of each calendar day's maximum reading.
func AnalyzePeaks(ps *PowerSeries, f Filter, topN int) PeakAnalysis {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > 24 {
		topN = 24
	}

	hourly := HourlyPattern(ps, f)
	ranks := make([]HourRank, 24)
	for h, avg := range hourly {
		ranks[h] = HourRank{Hour: h, AvgPower: avg}
	}

	peak := make([]HourRank, 24)
	copy(peak, ranks)
	sort.SliceStable(peak, func(i, j int) bool { return peak[i].AvgPower > peak[j].AvgPower })

	offPeak := make([]HourRank, 24)
	copy(offPeak, ranks)
	sort.SliceStable(offPeak, func(i, j int) bool { return offPeak[i].AvgPower < offPeak[j].AvgPower })

	return PeakAnalysis{
		PeakHours:    peak[:topN],
		OffPeakHours: offPeak[:topN],
		DailyPeaks:   dailyPeaks(f.Apply(ps)),
	}
}

func dailyPeaks(s *PowerSeries) DailyPeakStats {
	maxima := map[time.Time]float64{}
	if s != nil {
		for i, t := range s.Times {
			v := s.Values[i]
			if math.IsNaN(v) {
				continue
			}
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
			if cur, ok := maxima[day]; !ok || v > cur {
				maxima[day] = v
			}
		}
	}
	if len(maxima) == 0 {
		return DailyPeakStats{Histogram: Histogram{BinEdges: []float64{}, Counts: make([]int, dailyPeakBins)}}
	}

	values := make([]float64, 0, len(maxima))
	for _, v := range maxima {
		values = append(values, v)
	}
	sort.Float64s(values)
	min, max := values[0], values[len(values)-1]

	return DailyPeakStats{
		Histogram: histogram(values, min, max, dailyPeakBins),
		Mean:      roundKW(stat.Mean(values, nil)),
		Median:    roundKW(stat.Quantile(0.5, stat.LinInterp, values, nil)),
		Max:       roundKW(max),
		Min:       roundKW(min),
		Days:      len(values),
	}
}
