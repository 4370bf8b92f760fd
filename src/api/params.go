// params.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chater-marzougui/two-block-comparaison/src/processor"
)

// parseFilter builds the engine filter from the shared query parameters:
// month (YYYY-MM), start_date/end_date (YYYY-MM-DD, inclusive), day_of_week
// (Monday=0..Sunday=6), year (YYYY).
func parseFilter(r *http.Request) (processor.Filter, error) {
	f := processor.NewFilter()
	q := r.URL.Query()

	if s := q.Get("month"); s != "" {
		t, err := time.Parse("2006-01", s)
		if err != nil {
			return f, fmt.Errorf("month: want YYYY-MM, got %q", s)
		}
		f.Month = t
	}
	if s := q.Get("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fmt.Errorf("start_date: want YYYY-MM-DD, got %q", s)
		}
		f.Start = t
	}
	if s := q.Get("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return f, fmt.Errorf("end_date: want YYYY-MM-DD, got %q", s)
		}
		f.End = t
	}
	if s := q.Get("day_of_week"); s != "" {
		d, err := strconv.Atoi(s)
		if err != nil || d < 0 || d > 6 {
			return f, fmt.Errorf("day_of_week: want 0-6, got %q", s)
		}
		f.DayOfWeek = d
	}
	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y <= 0 {
			return f, fmt.Errorf("year: want YYYY, got %q", s)
		}
		f.Year = y
	}
	return f, nil
}

// parseCount reads a positive integer parameter, falling back to def when
// absent.
func parseCount(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", name, s)
	}
	return n, nil
}
