package reading

import (
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// CurrentValue exposes the last current-temperature sample cached by the
// external feed. *weather.Feed satisfies it.
type CurrentValue interface {
	Current() (weather.Sample, bool)
}

// FeedSource turns the cached external current temperature into readings.
// The cache is refreshed out-of-band; FeedSource never blocks on the network.
type FeedSource struct {
	feed CurrentValue
}

func NewFeedSource(feed CurrentValue) *FeedSource {
	return &FeedSource{feed: feed}
}

// Next stamps the cached value with now so buffer order follows tick order.
// It returns ErrNotAvailable until the first successful feed refresh.
func (s *FeedSource) Next(now time.Time) (Reading, error) {
	if s.feed == nil {
		return Reading{}, ErrNotAvailable
	}
	sample, ok := s.feed.Current()
	if !ok {
		return Reading{}, ErrNotAvailable
	}
	return Reading{Temperature: sample.Temperature, Timestamp: now.UTC()}, nil
}
