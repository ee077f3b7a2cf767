package dashboard

import "time"

// TimeLayout is the display format of every timestamp string on the dashboard.
const TimeLayout = "2006-01-02 15:04:05"

// PlaceholderNotAvailable replaces values the dashboard cannot show yet.
const PlaceholderNotAvailable = "not yet available"

// Status labels.
const (
	StatusWarmer  = "warmer than usual"
	StatusColder  = "colder than usual"
	StatusUsual   = "about usual"
	StatusNoValue = "no reading yet"
)

// StationTime shifts a UTC timestamp by the station's fixed offset and
// formats it. The whole instant moves, so the date rolls over with the hour.
func StationTime(ts time.Time, offset time.Duration) string {
	return ts.UTC().Add(offset).Format(TimeLayout)
}

// StatusLabel classifies a temperature against the warm and cold thresholds.
// The thresholds are static placeholders, not derived from the historical data.
func StatusLabel(tempC, warm, cold float64) string {
	switch {
	case tempC > warm:
		return StatusWarmer
	case tempC < cold:
		return StatusColder
	default:
		return StatusUsual
	}
}
