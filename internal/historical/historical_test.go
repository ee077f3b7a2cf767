package historical

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Date,Year,Month,Mean Temperature (C),Max Temperature (C)
2019-12-01,2019,12,0.5,4.0
2020-01-01,2020,1,1.2,5.1
2024-09-01,2024,9,-4.0,1.0
2024-10-01,2024,10,-2.1,2.0
2024-11-01,2024,11,-1.0,3.0
2025-10-01,2025,10,-1.5,2.2
2025-11-01,2025,11,-0.5,3.1
2026-01-01,2026,1,1.0,4.4
2026-09-01,2026,9,-3.2,0.9
`

func mustLoad(t *testing.T, data string) []Record {
	t.Helper()
	records, err := Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return records
}

func years(records []Record) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.Year*100 + r.Month
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLoad(t *testing.T) {
	records := mustLoad(t, sampleCSV)
	if len(records) != 9 {
		t.Fatalf("expected 9 records, got %d", len(records))
	}

	first := records[0]
	if !first.Date.Equal(time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", first.Date)
	}
	if first.Year != 2019 || first.Month != 12 || first.MeanTemperature != 0.5 {
		t.Errorf("unexpected first record %+v", first)
	}
}

func TestLoadMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"missing column": "Date,Year,Month\n2020-01-01,2020,1\n",
		"bad date":       "Date,Year,Month,Mean Temperature (C)\nyesterday,2020,1,1.0\n",
		"bad year":       "Date,Year,Month,Mean Temperature (C)\n2020-01-01,twenty,1,1.0\n",
		"bad month":      "Date,Year,Month,Mean Temperature (C)\n2020-01-01,2020,13,1.0\n",
		"bad mean":       "Date,Year,Month,Mean Temperature (C)\n2020-01-01,2020,1,\n",
		"ragged row":     "Date,Year,Month,Mean Temperature (C)\n2020-01-01,2020,1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(data)); !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(t.TempDir() + "/missing.csv"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFilter(t *testing.T) {
	records := mustLoad(t, sampleCSV)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		interval Interval
		want     []int
	}{
		{OneYear, []int{202510, 202511, 202601, 202609}},
		{FiveYears, []int{202409, 202410, 202411, 202510, 202511, 202601, 202609}},
		{TwentyFiveYears, years(records)},
		{FiftyYears, years(records)},
	}
	for _, tc := range cases {
		got := years(Filter(records, tc.interval, now))
		if !equalInts(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.interval, got, tc.want)
		}
	}
}

func TestFilterFiveYearsBoundary(t *testing.T) {
	records := mustLoad(t, sampleCSV)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, r := range Filter(records, FiveYears, now) {
		if r.Year < 2020 {
			t.Fatalf("record %+v older than cutoff", r)
		}
	}
	if got := len(Filter(records, FiveYears, now)); got != 8 {
		t.Fatalf("expected 8 records from 2020 on, got %d", got)
	}
}

func TestFilterEmpty(t *testing.T) {
	records := mustLoad(t, sampleCSV)
	now := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Filter(records, OneYear, now); len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
	if got := WithRunningAverage(nil); len(got) != 0 {
		t.Fatalf("expected no points, got %d", len(got))
	}
}

func TestWithRunningAverage(t *testing.T) {
	records := make([]Record, 24)
	for i := range records {
		records[i] = Record{Year: 2000 + i/12, Month: i%12 + 1, MeanTemperature: -2}
	}

	points := WithRunningAverage(records)
	for i, p := range points {
		full := i >= 6 && i <= 18
		if (p.RunningAvg != nil) != full {
			t.Fatalf("point %d: has average %v, want %v", i, p.RunningAvg != nil, full)
		}
		if full && math.Abs(*p.RunningAvg-(-2)) > 1e-9 {
			t.Fatalf("point %d: average %v, want -2", i, *p.RunningAvg)
		}
	}
}

func TestParseInterval(t *testing.T) {
	cases := map[string]Interval{
		"":         FiveYears,
		"1yr":      OneYear,
		"1 Year":   OneYear,
		"5 years":  FiveYears,
		"5 Years":  FiveYears,
		"25 Years": TwentyFiveYears,
		"50YR":     FiftyYears,
	}
	for in, want := range cases {
		got, err := ParseInterval(in)
		if err != nil || got != want {
			t.Errorf("ParseInterval(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseInterval("10 years"); !errors.Is(err, ErrUnknownInterval) {
		t.Errorf("expected ErrUnknownInterval, got %v", err)
	}
}

func TestIntervalNames(t *testing.T) {
	if OneYear.String() != "1yr" || FiftyYears.String() != "50yr" {
		t.Error("unexpected String values")
	}
	if OneYear.Label() != "1 Year" || TwentyFiveYears.Label() != "25 Years" {
		t.Error("unexpected Label values")
	}
}
