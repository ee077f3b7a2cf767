// Package reading produces the timestamped temperature samples that feed the
// live history buffer.
package reading

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotAvailable is returned by a Source that has no value to offer yet.
	ErrNotAvailable = errors.New("reading not yet available")

	// ErrUnknownKind is returned by ParseKind for unrecognised source names.
	ErrUnknownKind = errors.New("unknown reading source")
)

// Reading is one timestamped temperature sample in degrees Celsius.
type Reading struct {
	Temperature float64   `json:"temp"`
	Timestamp   time.Time `json:"timestamp"` // always UTC
}

// Source produces the next reading for a refresh tick.
type Source interface {
	Next(now time.Time) (Reading, error)
}

// Kind selects which Source drives the live buffer.
type Kind int

const (
	KindSynthetic Kind = iota
	KindFeed
)

func (k Kind) String() string {
	switch k {
	case KindSynthetic:
		return "synthetic"
	case KindFeed:
		return "feed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a selector value to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "synthetic", "random":
		return KindSynthetic, nil
	case "feed", "api", "external":
		return KindFeed, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
