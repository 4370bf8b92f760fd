// summary.go
package processor

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/chater-marzougui/two-block-comparaison/src/config"
)

// Summary is the headline metric block for one building over a filtered
// window.
type Summary struct {
	AvgPower      float64 `json:"avgPower"`
	MaxPower      float64 `json:"maxPower"`
	MinPower      float64 `json:"minPower"` // smallest positive reading, 0 if none
	WeekdayAvg    float64 `json:"weekdayAvg"`
	WeekendAvg    float64 `json:"weekendAvg"`
	LoadFactor    float64 `json:"loadFactor"`     // mean / max, the utilization of peak capacity
	PeakToAverage float64 `json:"peakToAverage"`  // max / mean
	TotalEnergy   float64 `json:"totalEnergyKWh"` // integrated at the 15-minute cadence
	DataCoverage  float64 `json:"dataCoverage"`   // % of filtered rows with a reading
}

// Summarize computes the summary metrics over the filtered series. An absent
// or fully masked series yields an all-zero summary, never an error.
func Summarize(ps *PowerSeries, f Filter) Summary {
	s := f.Apply(ps)
	valid := s.Valid()

	var mean, max float64
	if len(valid) > 0 {
		mean = stat.Mean(valid, nil)
		max = maxOf(valid)
	}

	minPos := 0.0
	for _, v := range valid {
		if v > 0 && (minPos == 0 || v < minPos) {
			minPos = v
		}
	}

	var energy float64
	var wdSum, weSum float64
	var wdCount, weCount int
	if s != nil {
		for i, t := range s.Times {
			v := s.Values[i]
			if math.IsNaN(v) {
				continue
			}
			energy += v * config.IntervalHours
			if WeekdayIndex(t) <= 4 {
				wdSum += v
				wdCount++
			} else {
				weSum += v
				weCount++
			}
		}
	}

	return Summary{
		AvgPower:      roundKW(mean),
		MaxPower:      roundKW(max),
		MinPower:      roundKW(minPos),
		WeekdayAvg:    roundKW(ratio(wdSum, float64(wdCount))),
		WeekendAvg:    roundKW(ratio(weSum, float64(weCount))),
		LoadFactor:    roundRatio(ratio(mean, max)),
		PeakToAverage: roundRatio(ratio(max, mean)),
		TotalEnergy:   roundKW(energy),
		DataCoverage:  roundPct(ratio(float64(len(valid)), float64(s.Len())) * 100),
	}
}

func maxOf(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
