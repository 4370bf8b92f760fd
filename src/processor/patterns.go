// patterns.go
package processor

import (
	"math"
	"time"
)

// HourlyPattern averages the filtered readings by hour of day. All 24 hours
// are always reported; an hour with no underlying data reads 0.
func HourlyPattern(ps *PowerSeries, f Filter) [24]float64 {
	var sums [24]float64
	var counts [24]int

	s := f.Apply(ps)
	if s != nil {
		for i, t := range s.Times {
			v := s.Values[i]
			if math.IsNaN(v) {
				continue
			}
			sums[t.Hour()] += v
			counts[t.Hour()]++
		}
	}

	var means [24]float64
	for h := range sums {
		means[h] = roundKW(ratio(sums[h], float64(counts[h])))
	}
	return means
}

// WeeklyPattern averages the filtered readings by day of week, Monday=0
// through Sunday=6. All 7 days are always reported.
func WeeklyPattern(ps *PowerSeries, f Filter) [7]float64 {
	var sums [7]float64
	var counts [7]int

	s := f.Apply(ps)
	if s != nil {
		for i, t := range s.Times {
			v := s.Values[i]
			if math.IsNaN(v) {
				continue
			}
			d := WeekdayIndex(t)
			sums[d] += v
			counts[d]++
		}
	}

	var means [7]float64
	for d := range sums {
		means[d] = roundKW(ratio(sums[d], float64(counts[d])))
	}
	return means
}

// TrendPoint is one calendar bucket of the two buildings' mean power.
type TrendPoint struct {
	Date  string  `json:"date"`
	TourA float64 `json:"tourA"`
	TourB float64 `json:"tourB"`
}

// MonthlyTrend resamples both buildings to calendar months. The bucket set
// is the union of both buildings' occupied months; a building without data
// in a bucket reports 0 there.
func MonthlyTrend(a, b *PowerSeries, f Filter) []TrendPoint {
	return TimeSeries(a, b, f, GranularityMonthly)
}

// TimeSeries resamples both buildings to the requested granularity, bucket
// means over the union of occupied buckets.
func TimeSeries(a, b *PowerSeries, f Filter, g Granularity) []TrendPoint {
	bucket := func(t time.Time) time.Time { return g.Bucket(t) }
	meansA := bucketMeans(f.Apply(a), bucket)
	meansB := bucketMeans(f.Apply(b), bucket)

	keys := unionKeys(meansA, meansB)
	points := make([]TrendPoint, 0, len(keys))
	for _, key := range keys {
		points = append(points, TrendPoint{
			Date:  g.Label(key),
			TourA: roundKW(meansA[key]),
			TourB: roundKW(meansB[key]),
		})
	}
	return points
}
