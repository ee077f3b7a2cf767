package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	palmer      = weather.Location{Name: "Palmer Station", Lat: -64.77, Lon: -64.05}
	fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond}
)

func openMeteoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("timezone") != "UTC" || q.Get("latitude") != "-64.7700" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("current") != "":
			_, _ = w.Write([]byte(`{"current":{"time":"2026-10-15T12:00","temperature_2m":-2.5}}`))
		case q.Get("hourly") != "":
			_, _ = w.Write([]byte(`{"hourly":{
				"time":["2026-10-15T10:00","2026-10-15T11:00","2026-10-15T12:00","2026-10-15T13:00"],
				"temperature_2m":[-3.0,null,-2.5,-2.0]}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenMeteoFetch(t *testing.T) {
	srv := openMeteoServer(t)
	p := newOpenMeteoProvider(srv.Client(), srv.URL, fastBackoff)

	r, err := p.Fetch(context.Background(), palmer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TemperatureC != -2.5 {
		t.Errorf("TemperatureC = %v, want -2.5", r.TemperatureC)
	}
	want := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, want)
	}
}

func TestOpenMeteoFetchSeriesStopsAtNow(t *testing.T) {
	srv := openMeteoServer(t)
	p := newOpenMeteoProvider(srv.Client(), srv.URL, fastBackoff)
	p.now = func() time.Time { return time.Date(2026, 10, 15, 12, 30, 0, 0, time.UTC) }

	samples, err := p.FetchSeries(context.Background(), palmer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The null at 11:00 is skipped and 13:00 lies in the future.
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d: %+v", len(samples), samples)
	}
	if samples[0].Temperature != -3.0 || samples[1].Temperature != -2.5 {
		t.Errorf("unexpected samples: %+v", samples)
	}
}

func TestOpenWeatherRequiresKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	if _, err := p.Fetch(context.Background(), palmer); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestOpenWeatherFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("appid") != "secret" || r.URL.Query().Get("units") != "metric" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"dt":1760529600,"main":{"temp":-4.25}}`))
	}))
	defer srv.Close()

	p := newOpenWeatherProvider(srv.Client(), "secret", srv.URL, fastBackoff)
	r, err := p.Fetch(context.Background(), palmer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TemperatureC != -4.25 {
		t.Errorf("TemperatureC = %v, want -4.25", r.TemperatureC)
	}
	if !r.Timestamp.Equal(time.Unix(1760529600, 0).UTC()) {
		t.Errorf("unexpected timestamp %v", r.Timestamp)
	}
}

func TestRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"current":{"time":"2026-10-15T12:00","temperature_2m":1.0}}`))
	}))
	defer srv.Close()

	p := newOpenMeteoProvider(srv.Client(), srv.URL, fastBackoff)
	r, err := p.Fetch(context.Background(), palmer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TemperatureC != 1.0 {
		t.Errorf("TemperatureC = %v, want 1.0", r.TemperatureC)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 calls, got %d", got)
	}
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := newOpenMeteoProvider(srv.Client(), srv.URL, fastBackoff)
	if _, err := p.Fetch(context.Background(), palmer); err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected a single call, got %d", got)
	}
}
