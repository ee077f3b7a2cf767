package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *jsonClient
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return newOpenWeatherProvider(client, apiKey, openWeatherBaseURL, defaultBackoff)
}

func newOpenWeatherProvider(client *http.Client, apiKey, baseURL string, backoff BackoffConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  newJSONClient("openweather", client, backoff),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	if p.apiKey == "" {
		return weather.ProviderReading{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("lat", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
	values.Set("lon", strconv.FormatFloat(loc.Lon, 'f', 4, 64))

	var payload struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	}

	if err := p.client.getJSON(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &payload); err != nil {
		return weather.ProviderReading{}, err
	}
	if payload.Main.Temp == nil {
		return weather.ProviderReading{}, fmt.Errorf("openweather: response has no temperature")
	}

	ts := time.Now().UTC()
	if payload.Dt > 0 {
		ts = time.Unix(payload.Dt, 0).UTC()
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts,
		TemperatureC: *payload.Main.Temp,
	}, nil
}
