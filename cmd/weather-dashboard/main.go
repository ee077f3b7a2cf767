package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-dashboard/internal/api/http"
	"github.com/i474232898/weather-dashboard/internal/config"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/historical"
	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/reading"
	"github.com/i474232898/weather-dashboard/internal/scheduler"
	"github.com/i474232898/weather-dashboard/internal/weather"
	"github.com/i474232898/weather-dashboard/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("failed to load config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	// The historical dataset backs most views; refuse to start without it.
	records, err := historical.LoadFile(cfg.HistoricalDataPath)
	if err != nil {
		log.Fatalw("failed to load historical data", "path", cfg.HistoricalDataPath, "err", err)
	}
	log.Infow("historical data loaded", "records", len(records))

	source, err := reading.ParseKind(cfg.DefaultSource)
	if err != nil {
		log.Fatalw("invalid default source", "err", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provs := []weather.Provider{providers.NewOpenMeteoProvider(httpClient)}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}

	feedService := weather.NewService(weather.NewFeed(), provs, cfg.Station, log)

	session := dashboard.NewSession(dashboard.Options{
		Capacity:      cfg.BufferCapacity,
		SyntheticMin:  cfg.SyntheticMin,
		SyntheticMax:  cfg.SyntheticMax,
		StationOffset: cfg.StationOffset,
		WarmThreshold: cfg.WarmThreshold,
		ColdThreshold: cfg.ColdThreshold,
		Source:        source,
	}, records, feedService.Feed(), log)
	defer session.Close()

	sched := scheduler.New(scheduler.Config{
		LiveInterval: cfg.LiveInterval,
		FeedInterval: cfg.FeedInterval,
		FeedTimeout:  3 * cfg.HTTPTimeout,
	}, session, feedService, log)
	if err := sched.Start(); err != nil {
		log.Fatalw("failed to start scheduler", "err", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(httpapi.RequestMetrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-dashboard",
			"session":  session.ID(),
			"source":   session.Source().String(),
			"feedAsOf": feedService.Feed().UpdatedAt(),
			"version":  session.Version(),
		})
	})

	httpapi.RegisterRoutes(app, session, cfg.LiveInterval)
	httpapi.RegisterMetrics(app)

	go func() {
		log.Infow("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorw("fiber server stopped", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("error during shutdown", "err", err)
	}
}
