package weather

import (
	"sync"
	"time"
)

// Feed caches the last good external current temperature and series.
// Readers never wait on the network; they see whatever the last refresh stored.
type Feed struct {
	mu        sync.RWMutex
	current   *Sample
	series    []Sample
	updatedAt time.Time
}

func NewFeed() *Feed {
	return &Feed{}
}

// SetCurrent replaces the cached current temperature.
func (f *Feed) SetCurrent(s Sample, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = &s
	f.updatedAt = at
}

// SetSeries replaces the cached series with a copy of samples.
func (f *Feed) SetSeries(samples []Sample, at time.Time) {
	cp := make([]Sample, len(samples))
	copy(cp, samples)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.series = cp
	f.updatedAt = at
}

// Current returns the cached current temperature, if any refresh succeeded.
func (f *Feed) Current() (Sample, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == nil {
		return Sample{}, false
	}
	return *f.current, true
}

// Series returns a copy of the cached series.
func (f *Feed) Series() []Sample {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Sample, len(f.series))
	copy(out, f.series)
	return out
}

// UpdatedAt is the time of the last successful store; zero before the first.
func (f *Feed) UpdatedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.updatedAt
}
