package weather

import (
	"context"
	"time"
)

// ProviderReading is a single provider's current-temperature observation.
type ProviderReading struct {
	ProviderName string
	Timestamp    time.Time
	TemperatureC float64
}

// Provider abstracts a weather data source (e.g. Open-Meteo, OpenWeatherMap).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (ProviderReading, error)
}

// SeriesProvider is implemented by providers that also return a recent
// temperature series, ordered by timestamp ascending.
type SeriesProvider interface {
	Provider
	FetchSeries(ctx context.Context, loc Location) ([]Sample, error)
}
