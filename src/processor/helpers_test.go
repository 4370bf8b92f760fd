package processor

import (
	"math"
	"time"
)

// makeSeries builds a series of readings at a fixed cadence starting at
// start. NaN values mark missing readings.
func makeSeries(start time.Time, step time.Duration, values ...float64) *PowerSeries {
	ps := &PowerSeries{
		Times:  make([]time.Time, len(values)),
		Values: make([]float64, len(values)),
	}
	for i, v := range values {
		ps.Times[i] = start.Add(time.Duration(i) * step)
		ps.Values[i] = v
	}
	return ps
}

// constantDay builds one full day of 15-minute readings at a constant level.
func constantDay(day time.Time, level float64) *PowerSeries {
	values := make([]float64, 96)
	for i := range values {
		values[i] = level
	}
	return makeSeries(day, 15*time.Minute, values...)
}

// seriesAt pairs explicit timestamps with readings.
func seriesAt(times []time.Time, values []float64) *PowerSeries {
	return &PowerSeries{Times: times, Values: values}
}

// concat chains series without sorting; callers keep them chronological.
func concat(parts ...*PowerSeries) *PowerSeries {
	out := &PowerSeries{}
	for _, p := range parts {
		out.Times = append(out.Times, p.Times...)
		out.Values = append(out.Values, p.Values...)
	}
	return out
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func nan() float64 { return math.NaN() }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

var monday = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) // a Monday
