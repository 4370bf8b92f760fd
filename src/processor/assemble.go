// assemble.go
package processor

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/chater-marzougui/two-block-comparaison/src/utils"
)

// ChannelRule declares how one building's authoritative power channel is
// recognized among the export columns: every required token must appear in
// the normalized name and no forbidden one may. Matching is case-insensitive
// and evaluated once during ingestion, never per query.
type ChannelRule struct {
	Building  string
	Required  []string
	Forbidden []string
}

// The two buildings' main-meter channels: the averaged real power of the
// whole system ("kw sys" + "avg"), excluding reactive-power ("kvar") columns.
var (
	TourA = ChannelRule{
		Building:  "Tour A",
		Required:  []string{"tour_a_(tgbt_d14)", "kw sys", "avg"},
		Forbidden: []string{"kvar"},
	}
	TourB = ChannelRule{
		Building:  "Tour B",
		Required:  []string{"tour_b_(tgbt_d5)", "kw sys", "avg"},
		Forbidden: []string{"kvar"},
	}
)

// Match reports whether a column name denotes this rule's channel.
func (r ChannelRule) Match(name string) bool {
	lower := strings.ToLower(name)
	for _, tok := range r.Required {
		if !strings.Contains(lower, tok) {
			return false
		}
	}
	for _, tok := range r.Forbidden {
		if strings.Contains(lower, tok) {
			return false
		}
	}
	return true
}

// Assemble concatenates the per-file frames in discovery order and sorts the
// result ascending by the Datetime index. Files contributing the same
// timestamp keep their rows side by side: overlap in append-only sensor logs
// should surface as data, and mean-based aggregation absorbs it anyway.
func Assemble(frames []dataframe.DataFrame) dataframe.DataFrame {
	combined := frames[0]
	for _, f := range frames[1:] {
		combined = combined.Concat(f)
	}
	return combined.Arrange(dataframe.Sort("Datetime"))
}

// ExtractPower pulls one building's channel out of the combined frame as a
// PowerSeries. The first matching column in frame order wins when several
// match. Returns nil when no column matches; that building then degrades to
// zero-valued query results rather than failing.
func ExtractPower(df dataframe.DataFrame, rule ChannelRule) *PowerSeries {
	if df.Err != nil || df.Nrow() == 0 || !utils.HasColumn(df, "Datetime") {
		return nil
	}

	col := ""
	for _, name := range df.Names() {
		if name != "Datetime" && rule.Match(name) {
			col = name
			break
		}
	}
	if col == "" {
		return nil
	}

	index := df.Col("Datetime").Records()
	raw := df.Col(col).Records()

	ps := &PowerSeries{
		Times:  make([]time.Time, 0, len(index)),
		Values: make([]float64, 0, len(raw)),
	}
	for i, s := range index {
		t, err := utils.ParseTime(s)
		if err != nil {
			continue
		}
		ps.Times = append(ps.Times, t)
		ps.Values = append(ps.Values, coerceFloat(raw[i]))
	}
	return ps
}

// coerceFloat turns an export cell into a reading, NaN when it is not
// numeric (empty cells, text placeholders, rows merged in from files that
// lack this channel).
func coerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
