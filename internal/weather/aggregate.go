package weather

import "time"

// AggregateReadings combines provider readings into one current sample.
// Temperatures are averaged; the newest provider timestamp wins.
func AggregateReadings(readings []ProviderReading) (Sample, bool) {
	if len(readings) == 0 {
		return Sample{}, false
	}

	var (
		sumTemp  float64
		newestTS time.Time
	)
	for _, r := range readings {
		sumTemp += r.TemperatureC
		if r.Timestamp.After(newestTS) {
			newestTS = r.Timestamp
		}
	}

	if newestTS.IsZero() {
		newestTS = time.Now().UTC()
	}

	return Sample{
		Timestamp:   newestTS.UTC(),
		Temperature: sumTemp / float64(len(readings)),
	}, true
}
