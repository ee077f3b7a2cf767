package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-dashboard/internal/analysis"
	"github.com/i474232898/weather-dashboard/internal/historical"
	"github.com/i474232898/weather-dashboard/internal/reading"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrUnknownTableSource is returned by ParseTableSource.
var ErrUnknownTableSource = errors.New("unknown table source")

// CurrentView is the value box content: latest temperature, status and
// station time.
type CurrentView struct {
	Available    bool       `json:"available"`
	Temperature  string     `json:"temperature"`
	TemperatureC *float64   `json:"temperatureC,omitempty"`
	Status       string     `json:"status"`
	StationTime  string     `json:"stationTime"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Source       string     `json:"source"`
	Version      uint64     `json:"version"`
}

// TableSource selects the rows of the data table.
type TableSource int

const (
	TableLive TableSource = iota
	TableFeed
)

func (t TableSource) String() string {
	switch t {
	case TableLive:
		return "live"
	case TableFeed:
		return "feed"
	default:
		return fmt.Sprintf("table(%d)", int(t))
	}
}

// ParseTableSource maps a selector value to a TableSource; empty means live.
func ParseTableSource(s string) (TableSource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "live", "buffer":
		return TableLive, nil
	case "feed", "api", "external":
		return TableFeed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTableSource, s)
	}
}

// TableRow is one row of the data table.
type TableRow struct {
	Timestamp   time.Time `json:"timestamp"`
	StationTime string    `json:"stationTime"`
	Temperature float64   `json:"temp"`
}

// Table is a tabular snapshot. Rows is empty, never nil, when there is no data.
type Table struct {
	Source  string     `json:"source"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

var tableColumns = []string{"timestamp", "stationTime", "temp"}

// ChartPoint is one (x, y) pair of a chart series.
type ChartPoint struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Trend is the least-squares line over the live readings, with one fitted
// value per reading.
type Trend struct {
	analysis.Line
	Fitted []ChartPoint `json:"fitted"`
}

// LiveChart holds the live readings and, with at least two of them, the
// regression line.
type LiveChart struct {
	Points []ChartPoint `json:"points"`
	Trend  *Trend       `json:"trend,omitempty"`
}

// HistoricalChart holds the filtered monthly means and their running average.
// RunningAvg only contains the months where a full window exists.
type HistoricalChart struct {
	Interval   string       `json:"interval"`
	Label      string       `json:"label"`
	Points     []ChartPoint `json:"points"`
	RunningAvg []ChartPoint `json:"runningAvg"`
}

func formatTemperature(t float64) string {
	return fmt.Sprintf("%.1f C", t)
}

func buildCurrent(latest reading.Reading, ok bool, o Options) *CurrentView {
	if !ok {
		return &CurrentView{
			Temperature: PlaceholderNotAvailable,
			Status:      StatusNoValue,
			StationTime: PlaceholderNotAvailable,
		}
	}

	temp := latest.Temperature
	ts := latest.Timestamp
	return &CurrentView{
		Available:    true,
		Temperature:  formatTemperature(temp),
		TemperatureC: &temp,
		Status:       StatusLabel(temp, o.WarmThreshold, o.ColdThreshold),
		StationTime:  StationTime(ts, o.StationOffset),
		Timestamp:    &ts,
	}
}

func buildLiveTable(readings []reading.Reading, offset time.Duration) *Table {
	rows := make([]TableRow, len(readings))
	for i, r := range readings {
		rows[i] = TableRow{
			Timestamp:   r.Timestamp,
			StationTime: StationTime(r.Timestamp, offset),
			Temperature: r.Temperature,
		}
	}
	return &Table{Source: TableLive.String(), Columns: tableColumns, Rows: rows}
}

func buildFeedTable(samples []weather.Sample, offset time.Duration) *Table {
	rows := make([]TableRow, len(samples))
	for i, s := range samples {
		rows[i] = TableRow{
			Timestamp:   s.Timestamp,
			StationTime: StationTime(s.Timestamp, offset),
			Temperature: s.Temperature,
		}
	}
	return &Table{Source: TableFeed.String(), Columns: tableColumns, Rows: rows}
}

func buildLiveChart(readings []reading.Reading) *LiveChart {
	chart := &LiveChart{Points: make([]ChartPoint, len(readings))}
	temps := make([]float64, len(readings))
	for i, r := range readings {
		chart.Points[i] = ChartPoint{X: r.Timestamp, Y: r.Temperature}
		temps[i] = r.Temperature
	}

	line, ok := analysis.LinearFit(temps)
	if !ok {
		return chart
	}

	fitted := line.Fitted(len(temps))
	trend := &Trend{Line: line, Fitted: make([]ChartPoint, len(fitted))}
	for i, y := range fitted {
		trend.Fitted[i] = ChartPoint{X: readings[i].Timestamp, Y: y}
	}
	chart.Trend = trend
	return chart
}

func buildHistoricalChart(records []historical.Record, interval historical.Interval, now time.Time) *HistoricalChart {
	points := historical.WithRunningAverage(historical.Filter(records, interval, now))

	chart := &HistoricalChart{
		Interval:   interval.String(),
		Label:      interval.Label(),
		Points:     make([]ChartPoint, len(points)),
		RunningAvg: make([]ChartPoint, 0, len(points)),
	}
	for i, p := range points {
		chart.Points[i] = ChartPoint{X: p.Date, Y: p.MeanTemperature}
		if p.RunningAvg != nil {
			chart.RunningAvg = append(chart.RunningAvg, ChartPoint{X: p.Date, Y: *p.RunningAvg})
		}
	}
	return chart
}
