package weather

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/metrics"
)

var (
	// ErrNoProviders is returned when the service has nothing to query.
	ErrNoProviders = errors.New("no weather providers configured")

	// ErrNoProviderData is returned when every provider failed; the feed keeps
	// its last good values.
	ErrNoProviderData = errors.New("no successful provider readings")
)

// Service refreshes the Feed cache from the configured providers.
type Service struct {
	feed      *Feed
	providers []Provider
	loc       Location
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates a new Service writing into feed.
func NewService(feed *Feed, providers []Provider, loc Location, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		feed:      feed,
		providers: providers,
		loc:       loc,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Feed returns the cache this service writes to; readers share it.
func (s *Service) Feed() *Feed {
	return s.feed
}

// Refresh fetches the current temperature from all providers concurrently,
// averages the successful readings, and stores the result. Series-capable
// providers also replace the cached series; the first success wins, in
// provider order.
func (s *Service) Refresh(ctx context.Context) error {
	if len(s.providers) == 0 {
		return ErrNoProviders
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []ProviderReading
		series   = make([][]Sample, len(s.providers))
	)

	for i, p := range s.providers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := p.Fetch(ctx, s.loc)
			if err != nil {
				metrics.ProviderFailuresTotal.WithLabelValues(p.Name()).Inc()
				s.log.Warnw("provider fetch failed", "provider", p.Name(), "location", s.loc.Key(), "err", err)
			} else {
				mu.Lock()
				readings = append(readings, r)
				mu.Unlock()
			}

			sp, ok := p.(SeriesProvider)
			if !ok {
				return
			}
			samples, err := sp.FetchSeries(ctx, s.loc)
			if err != nil {
				s.log.Warnw("provider series fetch failed", "provider", p.Name(), "location", s.loc.Key(), "err", err)
				return
			}
			series[i] = samples
		}()
	}

	wg.Wait()

	now := s.now()
	for _, samples := range series {
		if samples != nil {
			s.feed.SetSeries(samples, now)
			break
		}
	}

	current, ok := AggregateReadings(readings)
	if !ok {
		s.log.Warnw("no successful provider readings; keeping last good value", "location", s.loc.Key())
		return ErrNoProviderData
	}

	s.feed.SetCurrent(current, now)
	s.log.Debugw("feed refreshed", "location", s.loc.Key(), "temperatureC", current.Temperature, "providers", len(readings))
	return nil
}
