// Package dashboard owns the live refresh pipeline state and the views
// derived from it.
//
// A Session is created once at startup with NewSession, driven by the
// scheduler through Tick, read by the HTTP layer, and torn down with Close.
// Views are computed lazily and memoized; every Tick or source change
// invalidates them so the next read recomputes from a fresh snapshot.
package dashboard

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/historical"
	"github.com/i474232898/weather-dashboard/internal/logger"
	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/reading"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrClosed is returned by Tick after Close.
var ErrClosed = errors.New("dashboard session closed")

// Options configures a Session. An unset Capacity or Now falls back to the
// defaults; start from DefaultOptions for everything else.
type Options struct {
	Capacity      int
	SyntheticMin  float64
	SyntheticMax  float64
	StationOffset time.Duration
	WarmThreshold float64
	ColdThreshold float64
	Source        reading.Kind

	// Rand seeds the synthetic source; nil picks a random seed.
	Rand *rand.Rand
	// Now is the clock used for historical filtering; nil means time.Now.
	Now func() time.Time
}

// DefaultOptions mirrors the station defaults.
func DefaultOptions() Options {
	return Options{
		Capacity:      50,
		SyntheticMin:  -18,
		SyntheticMax:  1,
		StationOffset: -3 * time.Hour,
		WarmThreshold: 0,
		ColdThreshold: -15,
		Source:        reading.KindSynthetic,
	}
}

type viewCache struct {
	current *CurrentView
	table   *Table
	live    *LiveChart
}

type monthKey struct {
	year  int
	month time.Month
}

// Session is the single owner of the live buffer, the loaded history and the
// external feed cache.
type Session struct {
	id      string
	opts    Options
	log     *logger.Logger
	history *store.History
	records []historical.Record
	feed    *weather.Feed

	synthetic *reading.SyntheticSource
	feedSrc   *reading.FeedSource

	mu        sync.Mutex
	kind      reading.Kind
	available bool
	closed    bool
	version   uint64
	views     viewCache
	histMonth monthKey
	histViews map[historical.Interval]*HistoricalChart
}

// NewSession wires a session around already-loaded historical records and the
// feed cache maintained by the weather service.
func NewSession(opts Options, records []historical.Record, feed *weather.Feed, log *logger.Logger) *Session {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultOptions().Capacity
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if feed == nil {
		feed = weather.NewFeed()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Session{
		id:        uuid.NewString(),
		opts:      opts,
		log:       log,
		history:   store.NewHistory(opts.Capacity),
		records:   records,
		feed:      feed,
		synthetic: reading.NewSyntheticSource(opts.SyntheticMin, opts.SyntheticMax, opts.Rand),
		feedSrc:   reading.NewFeedSource(feed),
		kind:      opts.Source,
		histViews: make(map[historical.Interval]*HistoricalChart),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Version increases on every invalidation.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *Session) source(kind reading.Kind) reading.Source {
	switch kind {
	case reading.KindFeed:
		return s.feedSrc
	default:
		return s.synthetic
	}
}

// Tick produces one reading from the active source, pushes it into the
// buffer and invalidates the derived views. When the source has nothing to
// offer the current view switches to its placeholder and the error is
// returned for the caller to log; the buffer is left untouched.
func (s *Session) Tick(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	r, err := s.source(s.kind).Next(now)
	if err != nil {
		metrics.TicksTotal.WithLabelValues(s.kind.String(), "unavailable").Inc()
		s.available = false
		s.invalidate()
		return err
	}

	s.history.Push(r)
	s.available = true
	s.invalidate()

	metrics.TicksTotal.WithLabelValues(s.kind.String(), "ok").Inc()
	metrics.BufferLength.Set(float64(s.history.Len()))
	return nil
}

// Source reports the active reading source.
func (s *Session) Source() reading.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kind
}

// SetSource switches the reading source. Readings from different sources are
// not mixed: the buffer restarts empty on a change.
func (s *Session) SetSource(kind reading.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if kind == s.kind {
		return
	}
	s.log.Infow("reading source changed", "from", s.kind.String(), "to", kind.String())
	s.kind = kind
	s.history.Reset()
	s.available = false
	s.invalidate()
	metrics.BufferLength.Set(0)
}

// Close ends the session; further ticks fail with ErrClosed. Views remain
// readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// invalidate marks every buffer-derived view stale. Callers hold s.mu.
func (s *Session) invalidate() {
	s.version++
	s.views = viewCache{}
}

// Current returns the value box view.
func (s *Session) Current() *CurrentView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views.current == nil {
		latest, ok := s.history.Latest()
		v := buildCurrent(latest, ok && s.available, s.opts)
		v.Source = s.kind.String()
		v.Version = s.version
		s.views.current = v
	}
	return s.views.current
}

// Table returns the data table for the selected source.
func (s *Session) Table(src TableSource) *Table {
	if src == TableFeed {
		return buildFeedTable(s.feed.Series(), s.opts.StationOffset)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views.table == nil {
		s.views.table = buildLiveTable(s.history.Snapshot(), s.opts.StationOffset)
	}
	return s.views.table
}

// LiveChart returns the live readings with their regression line.
func (s *Session) LiveChart() *LiveChart {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.views.live == nil {
		s.views.live = buildLiveChart(s.history.Snapshot())
	}
	return s.views.live
}

// HistoricalChart returns the filtered history for interval. Results are
// memoized per interval until the calendar month changes.
func (s *Session) HistoricalChart(interval historical.Interval) *HistoricalChart {
	now := s.opts.Now()
	key := monthKey{year: now.Year(), month: now.Month()}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key != s.histMonth {
		s.histMonth = key
		clear(s.histViews)
	}
	if v, ok := s.histViews[interval]; ok {
		return v
	}

	v := buildHistoricalChart(s.records, interval, now)
	s.histViews[interval] = v
	return v
}
