package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"oneof=debug info warn error"`

	// HistoricalDataPath points at the monthly station CSV loaded once at startup.
	HistoricalDataPath string `validate:"required"`

	// BufferCapacity is the number of live readings kept in memory.
	BufferCapacity int `validate:"gt=0"`

	// LiveInterval drives the synthetic/feed reading tick, FeedInterval the
	// out-of-band refresh of the external weather feed.
	LiveInterval time.Duration `validate:"gt=0"`
	FeedInterval time.Duration `validate:"gt=0"`
	HTTPTimeout  time.Duration `validate:"gt=0"`

	// Synthetic reading range, inclusive.
	SyntheticMin float64
	SyntheticMax float64 `validate:"gtefield=SyntheticMin"`

	// StationOffset is the fixed offset applied to UTC timestamps for display.
	StationOffset time.Duration

	WarmThreshold float64
	ColdThreshold float64 `validate:"ltfield=WarmThreshold"`

	DefaultSource string `validate:"oneof=synthetic feed"`

	Station weather.Location

	OpenWeatherAPIKey string
}

// Load reads configuration from .env and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:               getenvDefault("PORT", "8080"),
		LogLevel:           getenvDefault("LOG_LEVEL", "info"),
		HistoricalDataPath: getenvDefault("HISTORICAL_DATA_PATH", "data/PalmerStation_Monthly_Weather_Clean.csv"),
		DefaultSource:      getenvDefault("DEFAULT_SOURCE", "synthetic"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
	}

	var err error
	if cfg.BufferCapacity, err = getenvInt("BUFFER_CAPACITY", 50); err != nil {
		return nil, err
	}
	if cfg.LiveInterval, err = getenvDuration("LIVE_INTERVAL", "3s"); err != nil {
		return nil, err
	}
	// The feed is refreshed every 15 minutes by default.
	if cfg.FeedInterval, err = getenvDuration("FEED_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.StationOffset, err = getenvDuration("STATION_UTC_OFFSET", "-3h"); err != nil {
		return nil, err
	}
	if cfg.SyntheticMin, err = getenvFloat("SYNTHETIC_MIN", -18); err != nil {
		return nil, err
	}
	if cfg.SyntheticMax, err = getenvFloat("SYNTHETIC_MAX", 1); err != nil {
		return nil, err
	}
	if cfg.WarmThreshold, err = getenvFloat("WARM_THRESHOLD", 0); err != nil {
		return nil, err
	}
	if cfg.ColdThreshold, err = getenvFloat("COLD_THRESHOLD", -15); err != nil {
		return nil, err
	}

	cfg.Station.Name = getenvDefault("STATION_NAME", "Palmer Station")
	if cfg.Station.Lat, err = getenvFloat("STATION_LAT", -64.77); err != nil {
		return nil, err
	}
	if cfg.Station.Lon, err = getenvFloat("STATION_LON", -64.05); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
