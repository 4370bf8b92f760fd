// round.go
package processor

import "math"

// The engine's numeric policy: no NaN or Inf ever reaches an output, and a
// ratio with a zero or undefined denominator is 0. Rounding is fixed per
// field semantics so results are deterministic for comparison: 2 decimals
// for kW values, 1 for percentages, 3 for dimensionless ratios.

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return finite(num / den)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(finite(v)*p) / p
}

func roundKW(v float64) float64    { return roundTo(v, 2) }
func roundPct(v float64) float64   { return roundTo(v, 1) }
func roundRatio(v float64) float64 { return roundTo(v, 3) }
