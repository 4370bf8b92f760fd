// quality.go
package processor

import "math"

// Quality reports how usable a building's filtered window is.
type Quality struct {
	TotalReadings   int      `json:"totalReadings"`
	ValidReadings   int      `json:"validReadings"`
	MissingReadings int      `json:"missingReadings"`
	ZeroReadings    int      `json:"zeroReadings"`
	NonZeroReadings int      `json:"nonZeroReadings"`
	Completeness    float64  `json:"completeness"` // % of rows with a reading
	Validity        float64  `json:"validity"`     // % of rows with a non-zero reading
	Issues          []string `json:"issues"`
}

// AssessQuality counts reading availability over the filtered window and
// flags windows where more than half the rows are unusable.
func AssessQuality(ps *PowerSeries, f Filter) Quality {
	s := f.Apply(ps)

	q := Quality{Issues: []string{}}
	if s != nil {
		q.TotalReadings = s.Len()
		for _, v := range s.Values {
			switch {
			case math.IsNaN(v):
				q.MissingReadings++
			case v == 0:
				q.ZeroReadings++
				q.ValidReadings++
			default:
				q.NonZeroReadings++
				q.ValidReadings++
			}
		}
	}

	q.Completeness = roundPct(ratio(float64(q.ValidReadings), float64(q.TotalReadings)) * 100)
	q.Validity = roundPct(ratio(float64(q.NonZeroReadings), float64(q.TotalReadings)) * 100)

	if q.Completeness < 50 {
		q.Issues = append(q.Issues, "low completeness: more than half of the readings are missing")
	}
	if q.Validity < 50 {
		q.Issues = append(q.Issues, "low validity: more than half of the readings are zero or missing")
	}
	return q
}
