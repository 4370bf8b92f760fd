package processor

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestCompareConstantPair(t *testing.T) {
	a := constantDay(monday, 10)
	b := constantDay(monday, 20)

	c, err := Compare(a, b, NewFilter())
	if err != nil {
		t.Fatal(err)
	}

	if c.AlignedReadings != 96 {
		t.Errorf("AlignedReadings = %d, want 96", c.AlignedReadings)
	}
	if c.Averages.TourA != 10 || c.Averages.TourB != 20 {
		t.Errorf("averages = %v/%v, want 10/20", c.Averages.TourA, c.Averages.TourB)
	}
	if c.Averages.Difference != 10 {
		t.Errorf("Difference = %v, want 10", c.Averages.Difference)
	}
	// |10-20| over the midpoint 15: 66.7%.
	if c.Averages.PercentDifference != 66.7 {
		t.Errorf("PercentDifference = %v, want 66.7", c.Averages.PercentDifference)
	}
	if c.Averages.MoreEfficient != "Tour A" {
		t.Errorf("MoreEfficient = %q, want Tour A", c.Averages.MoreEfficient)
	}
	// Zero variance on both sides: correlation degrades to 0, never NaN.
	if c.Correlation.Value != 0 || c.Correlation.Strength != "weak" {
		t.Errorf("Correlation = %+v, want 0/weak", c.Correlation)
	}
	if c.Peaks.TourA != 10 || c.Peaks.TourB != 20 || c.Peaks.Difference != 10 {
		t.Errorf("Peaks = %+v", c.Peaks)
	}
	// Flat profiles both load at 1.0; ties go to Tour A.
	if c.LoadFactor.TourA != 1 || c.LoadFactor.TourB != 1 || c.LoadFactor.Winner != "Tour A" {
		t.Errorf("LoadFactor = %+v", c.LoadFactor)
	}
	if c.Dominance.TourBHigher != 96 || c.Dominance.TourBPercent != 100 {
		t.Errorf("Dominance = %+v", c.Dominance)
	}
	if c.Hourly.ByHour[0] != -10 || c.Hourly.MaxDifference != -10 {
		t.Errorf("Hourly = %+v", c.Hourly)
	}
}

func TestCompareIdenticalSeries(t *testing.T) {
	ps := rampDay(monday)
	c, err := Compare(ps, ps, NewFilter())
	if err != nil {
		t.Fatal(err)
	}

	if c.Correlation.Value != 1 || c.Correlation.Strength != "strong" {
		t.Errorf("Correlation = %+v, want 1/strong", c.Correlation)
	}
	if c.Averages.Difference != 0 || c.Averages.PercentDifference != 0 {
		t.Errorf("averages differ: %+v", c.Averages)
	}
	if c.Dominance.TourAHigher != 0 || c.Dominance.TourBHigher != 0 {
		t.Errorf("Dominance = %+v, want no strict winner", c.Dominance)
	}
	for h, d := range c.Hourly.ByHour {
		if d != 0 {
			t.Errorf("hour %d difference = %v, want 0", h, d)
		}
	}
}

func TestCompareNoOverlap(t *testing.T) {
	a := constantDay(monday, 10)
	b := constantDay(monday.AddDate(0, 0, 1), 20)

	if _, err := Compare(a, b, NewFilter()); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

func TestCompareSkipsMissingPairs(t *testing.T) {
	a := constantDay(monday, 10)
	b := constantDay(monday, 20)
	a.Values[0] = nan()
	b.Values[1] = nan()

	c, err := Compare(a, b, NewFilter())
	if err != nil {
		t.Fatal(err)
	}
	if c.AlignedReadings != 94 {
		t.Errorf("AlignedReadings = %d, want 94", c.AlignedReadings)
	}
}

func TestCompareAntiCorrelated(t *testing.T) {
	up := make([]float64, 24)
	down := make([]float64, 24)
	for i := range up {
		up[i] = float64(i)
		down[i] = float64(23 - i)
	}
	a := makeSeries(monday, 15*time.Minute, up...)
	b := makeSeries(monday, 15*time.Minute, down...)

	c, err := Compare(a, b, NewFilter())
	if err != nil {
		t.Fatal(err)
	}
	if c.Correlation.Value != -1 || c.Correlation.Strength != "strong" {
		t.Errorf("Correlation = %+v, want -1/strong", c.Correlation)
	}
}

func TestCompareHourlyMaxDivergence(t *testing.T) {
	a := constantDay(monday, 10)
	b := constantDay(monday, 10)
	// Tour A spikes across hour 14.
	for i := 14 * 4; i < 15*4; i++ {
		a.Values[i] = 50
	}

	c, err := Compare(a, b, NewFilter())
	if err != nil {
		t.Fatal(err)
	}
	if c.Hourly.MaxHour != 14 {
		t.Errorf("MaxHour = %d, want 14", c.Hourly.MaxHour)
	}
	if c.Hourly.MaxDifference != 40 {
		t.Errorf("MaxDifference = %v, want 40", c.Hourly.MaxDifference)
	}
	if math.Abs(c.Hourly.ByHour[0]) > 1e-9 {
		t.Errorf("quiet hour difference = %v, want 0", c.Hourly.ByHour[0])
	}
}
