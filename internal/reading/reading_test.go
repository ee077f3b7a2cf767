package reading

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestSyntheticStaysInRangeAndRounds(t *testing.T) {
	src := NewSyntheticSource(-18, 1, rand.New(rand.NewPCG(1, 2)))
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.FixedZone("X", 3600))

	for i := 0; i < 1000; i++ {
		r, err := src.Next(now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Temperature < -18 || r.Temperature > 1 {
			t.Fatalf("temperature %v outside [-18, 1]", r.Temperature)
		}
		if scaled := r.Temperature * 10; math.Abs(scaled-math.Round(scaled)) > 1e-9 {
			t.Fatalf("temperature %v not rounded to one decimal", r.Temperature)
		}
		if r.Timestamp.Location() != time.UTC || !r.Timestamp.Equal(now) {
			t.Fatalf("timestamp %v should be now in UTC", r.Timestamp)
		}
	}
}

type fixedFeed struct {
	sample weather.Sample
	ok     bool
}

func (f fixedFeed) Current() (weather.Sample, bool) { return f.sample, f.ok }

func TestFeedSourceNotAvailable(t *testing.T) {
	src := NewFeedSource(fixedFeed{})
	if _, err := src.Next(time.Now()); !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}

	if _, err := NewFeedSource(nil).Next(time.Now()); !errors.Is(err, ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable for nil feed, got %v", err)
	}
}

func TestFeedSourceUsesCachedValue(t *testing.T) {
	fetched := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	now := fetched.Add(7 * time.Minute)

	src := NewFeedSource(fixedFeed{sample: weather.Sample{Timestamp: fetched, Temperature: -6.4}, ok: true})
	r, err := src.Next(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Temperature != -6.4 || !r.Timestamp.Equal(now) {
		t.Fatalf("unexpected reading %+v", r)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"synthetic": KindSynthetic,
		"Random":    KindSynthetic,
		" feed ":    KindFeed,
		"API":       KindFeed,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	if _, err := ParseKind("satellite"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}
	if KindFeed.String() != "feed" || KindSynthetic.String() != "synthetic" {
		t.Error("unexpected Kind strings")
	}
}
