// series.go
package processor

import (
	"errors"
	"math"
	"time"
)

// ErrNoData means ingestion produced nothing to query: no usable file was
// discovered and the cache was never populated.
var ErrNoData = errors.New("no power data available")

// ErrInsufficientData means a comparison had no aligned readings left after
// filtering and timestamp intersection.
var ErrInsufficientData = errors.New("insufficient aligned data for comparison")

// PowerSeries is one building's chronological power readings in kW. Values
// hold NaN where a reading is missing; zero is a real "device off"
// observation, not a gap. A nil series stands for a building whose channel
// never appeared in any export; every operation tolerates it.
type PowerSeries struct {
	Times  []time.Time
	Values []float64
}

// Len returns the number of readings, missing ones included.
func (ps *PowerSeries) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.Times)
}

// Empty reports whether the series has no readings at all.
func (ps *PowerSeries) Empty() bool {
	return ps.Len() == 0
}

// Valid returns the non-missing values in chronological order.
func (ps *PowerSeries) Valid() []float64 {
	if ps == nil {
		return nil
	}
	out := make([]float64, 0, len(ps.Values))
	for _, v := range ps.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// WeekdayIndex maps a timestamp onto the Monday=0..Sunday=6 convention used
// by the day-of-week filter and the weekly pattern.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayNames indexes Monday=0..Sunday=6.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
