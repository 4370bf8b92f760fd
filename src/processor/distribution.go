// distribution.go
package processor

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the histogram bin count when the caller does not pick one.
const DefaultBins = 30

var percentileLevels = []int{5, 10, 25, 50, 75, 90, 95}

// Histogram is a binned value count. Edges has one more entry than Counts.
type Histogram struct {
	BinEdges []float64 `json:"binEdges"`
	Counts   []int     `json:"counts"`
}

// BoxPlot carries quartiles and Tukey whiskers clipped to the data range.
type BoxPlot struct {
	Q1           float64 `json:"q1"`
	Median       float64 `json:"median"`
	Q3           float64 `json:"q3"`
	IQR          float64 `json:"iqr"`
	LowerWhisker float64 `json:"lowerWhisker"`
	UpperWhisker float64 `json:"upperWhisker"`
}

// DescriptiveStats summarizes the filtered value distribution.
type DescriptiveStats struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Mode     float64 `json:"mode"` // first modal value; the median when no value repeats
	StdDev   float64 `json:"stdDev"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	Count    int     `json:"count"`
}

// Distribution is the full histogram/percentile/box-plot answer for one
// building.
type Distribution struct {
	Histogram   Histogram          `json:"histogram"`
	Percentiles map[string]float64 `json:"percentiles"`
	BoxPlot     BoxPlot            `json:"boxPlot"`
	Stats       DescriptiveStats   `json:"stats"`
}

// Distribute computes the value distribution of the filtered series with the
// requested number of histogram bins. An absent or fully masked series
// yields an empty histogram and zeroed statistics.
func Distribute(ps *PowerSeries, f Filter, bins int) Distribution {
	if bins <= 0 {
		bins = DefaultBins
	}

	values := f.Apply(ps).Valid()
	sort.Float64s(values)
	if len(values) == 0 {
		return Distribution{
			Histogram:   Histogram{BinEdges: []float64{}, Counts: make([]int, bins)},
			Percentiles: zeroPercentiles(),
		}
	}

	min, max := values[0], values[len(values)-1]

	percentiles := make(map[string]float64, len(percentileLevels))
	quantile := func(p float64) float64 {
		return stat.Quantile(p, stat.LinInterp, values, nil)
	}
	for _, level := range percentileLevels {
		percentiles[percentileKey(level)] = roundKW(quantile(float64(level) / 100))
	}

	q1, q2, q3 := quantile(0.25), quantile(0.5), quantile(0.75)
	iqr := q3 - q1

	mean := stat.Mean(values, nil)
	variance := stat.Variance(values, nil)
	if math.IsNaN(variance) {
		variance = 0
	}

	mode, modeCount := stat.Mode(values, nil)
	if modeCount <= 1 {
		mode = q2
	}

	return Distribution{
		Histogram: histogram(values, min, max, bins),
		Percentiles: percentiles,
		BoxPlot: BoxPlot{
			Q1:           roundKW(q1),
			Median:       roundKW(q2),
			Q3:           roundKW(q3),
			IQR:          roundKW(iqr),
			LowerWhisker: roundKW(math.Max(min, q1-1.5*iqr)),
			UpperWhisker: roundKW(math.Min(max, q3+1.5*iqr)),
		},
		Stats: DescriptiveStats{
			Mean:     roundKW(mean),
			Median:   roundKW(q2),
			Mode:     roundKW(mode),
			StdDev:   roundKW(math.Sqrt(variance)),
			Variance: roundKW(variance),
			Skewness: roundRatio(stat.Skew(values, nil)),
			Kurtosis: roundRatio(stat.ExKurtosis(values, nil)),
			Min:      roundKW(min),
			Max:      roundKW(max),
			Range:    roundKW(max - min),
			Count:    len(values),
		},
	}
}

// histogram bins values over [min, max] with equal-width bins. The final
// edge is inclusive so the maximum lands in the last bin.
func histogram(values []float64, min, max float64, bins int) Histogram {
	// A constant series has no width; center a unit range on it.
	if max == min {
		min, max = min-0.5, max+0.5
	}
	width := (max - min) / float64(bins)

	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max

	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return Histogram{BinEdges: edges, Counts: counts}
}

func percentileKey(level int) string {
	return "p" + strconv.Itoa(level)
}

func zeroPercentiles() map[string]float64 {
	out := make(map[string]float64, len(percentileLevels))
	for _, level := range percentileLevels {
		out[percentileKey(level)] = 0
	}
	return out
}
