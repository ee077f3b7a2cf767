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

const (
	openMeteoBaseURL    = "https://api.open-meteo.com/v1/forecast"
	openMeteoTimeLayout = "2006-01-02T15:04"
)

// OpenMeteoProvider implements weather.SeriesProvider for Open-Meteo.
// No API key is needed; timestamps are requested in UTC.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *jsonClient
	now     func() time.Time
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return newOpenMeteoProvider(client, openMeteoBaseURL, defaultBackoff)
}

func newOpenMeteoProvider(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  newJSONClient("openmeteo", client, backoff),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) query(loc weather.Location, extra url.Values) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', 4, 64))
	values.Set("timezone", "UTC")
	for k, vs := range extra {
		for _, v := range vs {
			values.Add(k, v)
		}
	}
	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.ProviderReading, error) {
	var payload struct {
		Current struct {
			Time        string   `json:"time"`
			Temperature *float64 `json:"temperature_2m"`
		} `json:"current"`
	}

	u := p.query(loc, url.Values{"current": {"temperature_2m"}})
	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return weather.ProviderReading{}, err
	}
	if payload.Current.Temperature == nil {
		return weather.ProviderReading{}, fmt.Errorf("openmeteo: response has no current temperature")
	}

	ts, err := time.Parse(openMeteoTimeLayout, payload.Current.Time)
	if err != nil {
		ts = p.now()
	}

	return weather.ProviderReading{
		ProviderName: p.name,
		Timestamp:    ts.UTC(),
		TemperatureC: *payload.Current.Temperature,
	}, nil
}

// FetchSeries returns the hourly temperatures of the past day up to now.
func (p *OpenMeteoProvider) FetchSeries(ctx context.Context, loc weather.Location) ([]weather.Sample, error) {
	var payload struct {
		Hourly struct {
			Time        []string   `json:"time"`
			Temperature []*float64 `json:"temperature_2m"`
		} `json:"hourly"`
	}

	u := p.query(loc, url.Values{
		"hourly":        {"temperature_2m"},
		"past_days":     {"1"},
		"forecast_days": {"1"},
	})
	if err := p.client.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Hourly.Time) != len(payload.Hourly.Temperature) {
		return nil, fmt.Errorf("openmeteo: hourly arrays differ in length (%d vs %d)",
			len(payload.Hourly.Time), len(payload.Hourly.Temperature))
	}

	now := p.now()
	samples := make([]weather.Sample, 0, len(payload.Hourly.Time))
	for i, raw := range payload.Hourly.Time {
		temp := payload.Hourly.Temperature[i]
		if temp == nil {
			continue
		}
		ts, err := time.Parse(openMeteoTimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("openmeteo: hourly time %q: %w", raw, err)
		}
		if ts.After(now) {
			break
		}
		samples = append(samples, weather.Sample{Timestamp: ts.UTC(), Temperature: *temp})
	}
	return samples, nil
}
