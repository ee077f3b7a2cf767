package historical

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/analysis"
)

// RunningAverageWindow is the width, in months, of the centered running mean.
const RunningAverageWindow = 12

// Point is a filtered record with its centered running average. RunningAvg
// is nil where the window does not fit.
type Point struct {
	Record
	RunningAvg *float64 `json:"runningAvg"`
}

// Filter returns the records inside interval as seen from now, in input order.
//
// OneYear keeps the prior calendar year from the current month onwards plus
// the whole current year; the others keep every record with
// year >= current year - k.
func Filter(records []Record, interval Interval, now time.Time) []Record {
	year, month := now.Year(), int(now.Month())

	var keep func(Record) bool
	if interval == OneYear {
		keep = func(r Record) bool {
			return (r.Year == year-1 && r.Month >= month) || r.Year == year
		}
	} else {
		cutoff := year - interval.Years()
		keep = func(r Record) bool { return r.Year >= cutoff }
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// WithRunningAverage attaches the 12-month centered running mean of
// MeanTemperature to each record.
func WithRunningAverage(records []Record) []Point {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.MeanTemperature
	}
	means, ok := analysis.CenteredRollingMean(values, RunningAverageWindow)

	points := make([]Point, len(records))
	for i, r := range records {
		points[i].Record = r
		if ok[i] {
			avg := means[i]
			points[i].RunningAvg = &avg
		}
	}
	return points
}
