// resample.go
package processor

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Granularity selects the calendar bucket size for resampled series.
type Granularity string

const (
	GranularityHourly  Granularity = "hourly"
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity validates a caller-supplied aggregation name, defaulting
// to daily for an empty string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case "":
		return GranularityDaily, nil
	case GranularityHourly, GranularityDaily, GranularityWeekly, GranularityMonthly:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("unknown aggregation %q", s)
}

// Bucket truncates a timestamp to the start of its calendar bucket. Weeks
// start on Monday, matching the day-of-week convention used everywhere else.
func (g Granularity) Bucket(t time.Time) time.Time {
	switch g {
	case GranularityHourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	case GranularityWeekly:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return day.AddDate(0, 0, -WeekdayIndex(t))
	case GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
}

// Label renders a bucket start for presentation.
func (g Granularity) Label(t time.Time) string {
	switch g {
	case GranularityHourly:
		return t.Format("2006-01-02 15:04")
	case GranularityMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// bucketMeans averages the valid readings of each occupied bucket.
func bucketMeans(ps *PowerSeries, bucket func(time.Time) time.Time) map[time.Time]float64 {
	sums := map[time.Time]float64{}
	counts := map[time.Time]int{}
	if ps != nil {
		for i, t := range ps.Times {
			v := ps.Values[i]
			if math.IsNaN(v) {
				continue
			}
			key := bucket(t)
			sums[key] += v
			counts[key]++
		}
	}
	means := make(map[time.Time]float64, len(sums))
	for key, sum := range sums {
		means[key] = sum / float64(counts[key])
	}
	return means
}

// unionKeys merges and sorts the occupied bucket sets of two mean maps. The
// bucket set is the union of both buildings' observed buckets: a bucket where
// only one building has data still appears, reporting 0 for the other.
func unionKeys(a, b map[time.Time]float64) []time.Time {
	seen := make(map[time.Time]struct{}, len(a)+len(b))
	for key := range a {
		seen[key] = struct{}{}
	}
	for key := range b {
		seen[key] = struct{}{}
	}
	keys := make([]time.Time, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
