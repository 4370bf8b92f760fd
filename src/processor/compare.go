// compare.go
package processor

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// AverageComparison contrasts the two buildings' mean power over the aligned
// window. MoreEfficient names the building drawing less on average.
type AverageComparison struct {
	TourA             float64 `json:"tourA"`
	TourB             float64 `json:"tourB"`
	Difference        float64 `json:"difference"`
	PercentDifference float64 `json:"percentDifference"`
	MoreEfficient     string  `json:"moreEfficient"`
}

// Correlation is the Pearson correlation of the aligned readings with a
// coarse strength bucket.
type Correlation struct {
	Value    float64 `json:"value"`
	Strength string  `json:"strength"` // strong |r|>0.7, moderate |r|>0.4, weak otherwise
}

// HourlyDifference is the per-hour mean difference (Tour A minus Tour B)
// and the hour where the buildings diverge the most.
type HourlyDifference struct {
	ByHour        [24]float64 `json:"byHour"`
	MaxHour       int         `json:"maxHour"`
	MaxDifference float64     `json:"maxDifference"`
}

// PeakComparison contrasts the aligned peak readings.
type PeakComparison struct {
	TourA      float64 `json:"tourA"`
	TourB      float64 `json:"tourB"`
	Difference float64 `json:"difference"`
}

// LoadFactorComparison names the building using its peak capacity better.
type LoadFactorComparison struct {
	TourA  float64 `json:"tourA"`
	TourB  float64 `json:"tourB"`
	Winner string  `json:"winner"`
}

// Dominance counts the aligned timestamps where each building strictly
// out-draws the other.
type Dominance struct {
	TourAHigher  int     `json:"tourAHigher"`
	TourBHigher  int     `json:"tourBHigher"`
	TourAPercent float64 `json:"tourAPercent"`
	TourBPercent float64 `json:"tourBPercent"`
}

// Comparison is the full cross-building answer over the aligned window.
type Comparison struct {
	AlignedReadings int                  `json:"alignedReadings"`
	Averages        AverageComparison    `json:"averages"`
	Correlation     Correlation          `json:"correlation"`
	Hourly          HourlyDifference     `json:"hourlyDifference"`
	Peaks           PeakComparison       `json:"peaks"`
	LoadFactor      LoadFactorComparison `json:"loadFactor"`
	Dominance       Dominance            `json:"dominance"`
}

// Compare intersects the two buildings' non-missing timestamps after
// filtering and contrasts them pointwise. It returns ErrInsufficientData
// when no aligned reading survives; a constant pair (zero variance) is fine
// and reports correlation 0.
func Compare(a, b *PowerSeries, f Filter) (Comparison, error) {
	times, va, vb := align(f.Apply(a), f.Apply(b))
	if len(va) == 0 {
		return Comparison{}, ErrInsufficientData
	}

	meanA := stat.Mean(va, nil)
	meanB := stat.Mean(vb, nil)
	diff := math.Abs(meanA - meanB)

	moreEfficient := TourA.Building
	if meanB < meanA {
		moreEfficient = TourB.Building
	}

	r := 0.0
	if len(va) >= 2 {
		r = finite(stat.Correlation(va, vb, nil))
	}

	maxA, maxB := maxOf(va), maxOf(vb)
	lfA := ratio(meanA, maxA)
	lfB := ratio(meanB, maxB)
	winner := TourA.Building
	if lfB > lfA {
		winner = TourB.Building
	}

	var dom Dominance
	for i := range va {
		switch {
		case va[i] > vb[i]:
			dom.TourAHigher++
		case vb[i] > va[i]:
			dom.TourBHigher++
		}
	}
	aligned := len(va)
	dom.TourAPercent = roundPct(ratio(float64(dom.TourAHigher), float64(aligned)) * 100)
	dom.TourBPercent = roundPct(ratio(float64(dom.TourBHigher), float64(aligned)) * 100)

	return Comparison{
		AlignedReadings: aligned,
		Averages: AverageComparison{
			TourA:             roundKW(meanA),
			TourB:             roundKW(meanB),
			Difference:        roundKW(diff),
			PercentDifference: roundPct(ratio(diff, (meanA+meanB)/2) * 100),
			MoreEfficient:     moreEfficient,
		},
		Correlation: Correlation{
			Value:    roundRatio(r),
			Strength: correlationStrength(r),
		},
		Hourly: hourlyDifference(times, va, vb),
		Peaks: PeakComparison{
			TourA:      roundKW(maxA),
			TourB:      roundKW(maxB),
			Difference: roundKW(math.Abs(maxA - maxB)),
		},
		LoadFactor: LoadFactorComparison{
			TourA:  roundRatio(lfA),
			TourB:  roundRatio(lfB),
			Winner: winner,
		},
		Dominance: dom,
	}, nil
}

// align walks both chronological series and pairs up equal timestamps where
// both readings are present. Duplicate timestamps pair off one-to-one in
// order, so overlapping files contribute once per retained row.
func align(a, b *PowerSeries) ([]time.Time, []float64, []float64) {
	var (
		times  []time.Time
		va, vb []float64
	)
	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		ta, tb := a.Times[i], b.Times[j]
		switch {
		case ta.Before(tb):
			i++
		case tb.Before(ta):
			j++
		default:
			if !math.IsNaN(a.Values[i]) && !math.IsNaN(b.Values[j]) {
				times = append(times, ta)
				va = append(va, a.Values[i])
				vb = append(vb, b.Values[j])
			}
			i++
			j++
		}
	}
	return times, va, vb
}

func correlationStrength(r float64) string {
	switch abs := math.Abs(r); {
	case abs > 0.7:
		return "strong"
	case abs > 0.4:
		return "moderate"
	default:
		return "weak"
	}
}

func hourlyDifference(times []time.Time, va, vb []float64) HourlyDifference {
	var sumsA, sumsB [24]float64
	var counts [24]int
	for i, t := range times {
		h := t.Hour()
		sumsA[h] += va[i]
		sumsB[h] += vb[i]
		counts[h]++
	}

	out := HourlyDifference{}
	maxAbs := -1.0
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		d := (sumsA[h] - sumsB[h]) / float64(counts[h])
		out.ByHour[h] = roundKW(d)
		if math.Abs(d) > maxAbs {
			maxAbs = math.Abs(d)
			out.MaxHour = h
			out.MaxDifference = roundKW(d)
		}
	}
	return out
}
