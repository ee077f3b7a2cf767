package weather

import (
	"strconv"
	"time"
)

// Location is the station the external feed is queried for.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for logging and labelling.
func (l Location) Key() string {
	if l.Name != "" {
		return l.Name
	}
	return formatCoord(l.Lat) + "," + formatCoord(l.Lon)
}

// Sample is one (timestamp, temperature) point from the external feed.
type Sample struct {
	Timestamp   time.Time `json:"timestamp"` // always UTC
	Temperature float64   `json:"temperatureC"`
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
