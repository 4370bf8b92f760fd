package processor

import (
	"testing"
)

func TestSummarizeConstantDay(t *testing.T) {
	s := Summarize(constantDay(monday, 10), NewFilter())

	if s.AvgPower != 10 {
		t.Errorf("AvgPower = %v, want 10", s.AvgPower)
	}
	if s.MaxPower != 10 || s.MinPower != 10 {
		t.Errorf("Max/Min = %v/%v, want 10/10", s.MaxPower, s.MinPower)
	}
	if s.LoadFactor != 1 {
		t.Errorf("LoadFactor = %v, want 1", s.LoadFactor)
	}
	if s.PeakToAverage != 1 {
		t.Errorf("PeakToAverage = %v, want 1", s.PeakToAverage)
	}
	// 96 readings of 10 kW at 15 minutes each: 240 kWh.
	if s.TotalEnergy != 240 {
		t.Errorf("TotalEnergy = %v, want 240", s.TotalEnergy)
	}
	if s.DataCoverage != 100 {
		t.Errorf("DataCoverage = %v, want 100", s.DataCoverage)
	}
	// monday is a weekday; the weekend bucket stays empty and reads 0.
	if s.WeekdayAvg != 10 || s.WeekendAvg != 0 {
		t.Errorf("Weekday/Weekend = %v/%v, want 10/0", s.WeekdayAvg, s.WeekendAvg)
	}
}

func TestSummarizeWeekdayWeekendSplit(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	ps := concat(constantDay(monday, 10), constantDay(saturday, 20))

	s := Summarize(ps, NewFilter())
	if s.WeekdayAvg != 10 {
		t.Errorf("WeekdayAvg = %v, want 10", s.WeekdayAvg)
	}
	if s.WeekendAvg != 20 {
		t.Errorf("WeekendAvg = %v, want 20", s.WeekendAvg)
	}
	if s.AvgPower != 15 {
		t.Errorf("AvgPower = %v, want 15", s.AvgPower)
	}
}

func TestSummarizeMinPowerSkipsZeros(t *testing.T) {
	ps := constantDay(monday, 5)
	ps.Values[0] = 0
	ps.Values[1] = 2

	s := Summarize(ps, NewFilter())
	if s.MinPower != 2 {
		t.Errorf("MinPower = %v, want 2 (smallest positive)", s.MinPower)
	}
}

func TestSummarizeMissingReadingsReduceCoverage(t *testing.T) {
	ps := constantDay(monday, 10)
	for i := 0; i < 24; i++ {
		ps.Values[i] = nan()
	}

	s := Summarize(ps, NewFilter())
	if s.DataCoverage != 75 {
		t.Errorf("DataCoverage = %v, want 75", s.DataCoverage)
	}
	if s.AvgPower != 10 {
		t.Errorf("AvgPower ignores missing readings, got %v", s.AvgPower)
	}
	// 72 valid readings of 10 kW: 180 kWh.
	if s.TotalEnergy != 180 {
		t.Errorf("TotalEnergy = %v, want 180", s.TotalEnergy)
	}
}

func TestSummarizeEmptyAndAllZero(t *testing.T) {
	if s := Summarize(nil, NewFilter()); s != (Summary{}) {
		t.Errorf("nil series summary = %+v, want zero value", s)
	}

	// All-zero readings must not divide by zero anywhere.
	s := Summarize(constantDay(monday, 0), NewFilter())
	if s.LoadFactor != 0 || s.PeakToAverage != 0 || s.MinPower != 0 {
		t.Errorf("all-zero summary = %+v, want zero ratios", s)
	}
	if s.DataCoverage != 100 {
		t.Errorf("DataCoverage = %v, want 100 (zeros are readings)", s.DataCoverage)
	}
}

func TestSummarizeHonorsFilter(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	ps := concat(constantDay(monday, 10), constantDay(tuesday, 30))

	f := NewFilter()
	f.DayOfWeek = 1 // Tuesday
	s := Summarize(ps, f)
	if s.AvgPower != 30 {
		t.Errorf("filtered AvgPower = %v, want 30", s.AvgPower)
	}
}
