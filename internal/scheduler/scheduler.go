package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/reading"
)

// Ticker absorbs one live reading per call. *dashboard.Session satisfies it.
type Ticker interface {
	Tick(now time.Time) error
}

// FeedRefresher refreshes the external feed cache. *weather.Service satisfies it.
type FeedRefresher interface {
	Refresh(ctx context.Context) error
}

// Config holds the job periods.
type Config struct {
	LiveInterval time.Duration
	FeedInterval time.Duration
	// FeedTimeout bounds a single feed refresh; defaults to 30s.
	FeedTimeout time.Duration
}

// Scheduler runs the live tick and the feed refresh on fixed periods.
// Start and Stop form its cancel handle; both jobs run in singleton mode so
// a slow run is never overlapped by the next one.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cfg       Config
	ticker    Ticker
	refresher FeedRefresher
	log       *logger.Logger
}

// New creates a new Scheduler. Either job may be disabled by passing nil.
func New(cfg Config, ticker Ticker, refresher FeedRefresher, log *logger.Logger) *Scheduler {
	if cfg.FeedTimeout <= 0 {
		cfg.FeedTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		cfg:       cfg,
		ticker:    ticker,
		refresher: refresher,
		log:       log,
	}
}

// Start schedules the jobs and starts the underlying scheduler. Each job
// also runs once immediately.
func (s *Scheduler) Start() error {
	if s.ticker == nil && s.refresher == nil {
		s.log.Warnw("scheduler: nothing to schedule")
		return nil
	}

	if s.refresher != nil {
		if s.cfg.FeedInterval <= 0 {
			return errors.New("scheduler: feed interval must be positive")
		}
		if _, err := s.scheduler.Every(s.cfg.FeedInterval).Tag("feed").SingletonMode().Do(s.refreshFeed); err != nil {
			return err
		}
	}

	if s.ticker != nil {
		if s.cfg.LiveInterval <= 0 {
			return errors.New("scheduler: live interval must be positive")
		}
		if _, err := s.scheduler.Every(s.cfg.LiveInterval).Tag("live").SingletonMode().Do(s.tick); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	s.log.Infow("scheduler started", "liveInterval", s.cfg.LiveInterval, "feedInterval", s.cfg.FeedInterval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) tick() {
	err := s.ticker.Tick(time.Now().UTC())
	switch {
	case err == nil:
	case errors.Is(err, reading.ErrNotAvailable):
		s.log.Debugw("scheduler: live reading not yet available")
	default:
		s.log.Errorw("scheduler: live tick failed", "err", err)
	}
}

func (s *Scheduler) refreshFeed() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.FeedTimeout)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		metrics.FeedRefreshTotal.WithLabelValues("error").Inc()
		s.log.Warnw("scheduler: feed refresh failed", "err", err)
		return
	}
	metrics.FeedRefreshTotal.WithLabelValues("ok").Inc()
}
