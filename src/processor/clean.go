// clean.go
package processor

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/chater-marzougui/two-block-comparaison/src/config"
)

// CleanOutliers bounds a series at min(mean+3*stddev, MaxPowerCap), computed
// over the available readings, and marks everything strictly above the
// ceiling as missing. The bound is applied once, not re-derived after
// removal, and values are never floored: negative and zero readings pass
// through. Returns the cleaned series and the number of readings removed.
func CleanOutliers(ps *PowerSeries) (*PowerSeries, int) {
	valid := ps.Valid()
	if len(valid) == 0 {
		return ps, 0
	}

	mean := stat.Mean(valid, nil)
	sd := stat.StdDev(valid, nil)
	if math.IsNaN(sd) {
		sd = 0
	}
	ceiling := math.Min(mean+3*sd, config.MaxPowerCap)

	out := &PowerSeries{
		Times:  ps.Times,
		Values: make([]float64, len(ps.Values)),
	}
	removed := 0
	for i, v := range ps.Values {
		if !math.IsNaN(v) && v > ceiling {
			out.Values[i] = math.NaN()
			removed++
			continue
		}
		out.Values[i] = v
	}
	return out, removed
}
