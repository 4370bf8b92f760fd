package processor

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

func frame(t *testing.T, index []string, channel string, values []string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.New(
		series.New(index, series.String, "Datetime"),
		series.New(values, series.String, channel),
	)
	if df.Err != nil {
		t.Fatal(df.Err)
	}
	return df
}

const (
	chanA = "TOUR_A_(TGBT_D14) - kW sys Avg "
	chanB = "Tour_B_(TGBT_D5) - kW sys Avg "
)

func TestAssembleSortsAcrossFrames(t *testing.T) {
	f1 := frame(t,
		[]string{"2024-01-15 00:30:00", "2024-01-15 00:00:00"},
		chanA, []string{"2", "1"})
	f2 := frame(t,
		[]string{"2024-01-14 23:45:00", "2024-01-15 00:15:00"},
		chanA, []string{"0", "1.5"})

	combined := Assemble([]dataframe.DataFrame{f1, f2})
	if combined.Err != nil {
		t.Fatal(combined.Err)
	}

	index := combined.Col("Datetime").Records()
	for i := 1; i < len(index); i++ {
		if index[i] < index[i-1] {
			t.Fatalf("index not sorted: %v", index)
		}
	}
	if combined.Nrow() != 4 {
		t.Errorf("Nrow = %d, want 4", combined.Nrow())
	}
}

func TestAssembleKeepsDuplicateTimestamps(t *testing.T) {
	// Two files contributing the same timestamp both keep their rows:
	// overlap surfaces as data and mean-based aggregation absorbs it.
	f1 := frame(t, []string{"2024-01-15 00:00:00"}, chanA, []string{"1"})
	f2 := frame(t, []string{"2024-01-15 00:00:00"}, chanA, []string{"2"})

	combined := Assemble([]dataframe.DataFrame{f1, f2})
	if combined.Nrow() != 2 {
		t.Errorf("Nrow = %d, want 2 (no dedup)", combined.Nrow())
	}
}

func TestChannelRuleMatch(t *testing.T) {
	tests := []struct {
		rule ChannelRule
		name string
		want bool
	}{
		{TourA, chanA, true},
		{TourA, chanB, false},
		{TourB, chanB, true},
		{TourA, "TOUR_A_(TGBT_D14) - kVAr sys Avg ", false}, // reactive power
		{TourA, "TOUR_A_(TGBT_D14) - kW sys Max ", false},   // not the average
		{TourA, "tour_a_(tgbt_d14) - KW SYS AVG", true},     // case-insensitive
	}
	for _, tt := range tests {
		if got := tt.rule.Match(tt.name); got != tt.want {
			t.Errorf("%s.Match(%q) = %v, want %v", tt.rule.Building, tt.name, got, tt.want)
		}
	}
}

func TestExtractPower(t *testing.T) {
	df := frame(t,
		[]string{"2024-01-15 00:00:00", "2024-01-15 00:15:00", "2024-01-15 00:30:00"},
		chanA, []string{"10.5", "n/a", "12"})

	ps := ExtractPower(df, TourA)
	if ps.Len() != 3 {
		t.Fatalf("Len = %d, want 3", ps.Len())
	}
	if ps.Values[0] != 10.5 || ps.Values[2] != 12 {
		t.Errorf("values = %v", ps.Values)
	}
	if !math.IsNaN(ps.Values[1]) {
		t.Errorf("non-numeric cell should be missing, got %v", ps.Values[1])
	}
	if ps.Times[1].Minute() != 15 {
		t.Errorf("times = %v", ps.Times)
	}
}

func TestExtractPowerNoMatch(t *testing.T) {
	df := frame(t, []string{"2024-01-15 00:00:00"}, chanB, []string{"1"})
	if ps := ExtractPower(df, TourA); ps != nil {
		t.Errorf("want nil series for a building without a channel, got %v", ps)
	}
}

func TestExtractPowerFirstMatchWins(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"2024-01-15 00:00:00"}, series.String, "Datetime"),
		series.New([]string{"1"}, series.String, chanA),
		series.New([]string{"2"}, series.String, chanA+"bis"),
	)
	if df.Err != nil {
		t.Fatal(df.Err)
	}
	ps := ExtractPower(df, TourA)
	if ps == nil || ps.Values[0] != 1 {
		t.Errorf("first matching column should win, got %v", ps)
	}
}
