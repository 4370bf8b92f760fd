// filter.go
package processor

import "time"

// Filter is a request-scoped mask over a series' timestamp index. Unset
// predicates match everything; set predicates combine with logical AND.
type Filter struct {
	Month     time.Time // zero = any; only its year and month are significant
	Start     time.Time // zero = unbounded; inclusive
	End       time.Time // zero = unbounded; a calendar date, inclusive through end of day
	DayOfWeek int       // Monday=0..Sunday=6; -1 = any
	Year      int       // 0 = any
}

// NewFilter returns a filter that matches every reading.
func NewFilter() Filter {
	return Filter{DayOfWeek: -1}
}

// Match reports whether a timestamp passes every set predicate.
func (f Filter) Match(t time.Time) bool {
	if !f.Month.IsZero() && (t.Year() != f.Month.Year() || t.Month() != f.Month.Month()) {
		return false
	}
	if !f.Start.IsZero() && t.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && !t.Before(f.End.AddDate(0, 0, 1)) {
		return false
	}
	if f.DayOfWeek >= 0 && WeekdayIndex(t) != f.DayOfWeek {
		return false
	}
	if f.Year > 0 && t.Year() != f.Year {
		return false
	}
	return true
}

// Apply returns the masked readings as a new series. The cached series is
// never mutated; a nil input stays nil.
func (f Filter) Apply(ps *PowerSeries) *PowerSeries {
	if ps == nil {
		return nil
	}
	out := &PowerSeries{
		Times:  make([]time.Time, 0, len(ps.Times)),
		Values: make([]float64, 0, len(ps.Values)),
	}
	for i, t := range ps.Times {
		if f.Match(t) {
			out.Times = append(out.Times, t)
			out.Values = append(out.Values, ps.Values[i])
		}
	}
	return out
}
