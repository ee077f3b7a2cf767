package reading

import (
	"math"
	"math/rand/v2"
	"time"
)

// SyntheticSource draws temperatures uniformly from [Min, Max], rounded to
// one decimal place.
type SyntheticSource struct {
	Min float64
	Max float64
	rnd *rand.Rand
}

// NewSyntheticSource returns a source over [min, max]. A nil rnd uses a
// randomly seeded generator.
func NewSyntheticSource(min, max float64, rnd *rand.Rand) *SyntheticSource {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SyntheticSource{Min: min, Max: max, rnd: rnd}
}

// Next never fails.
func (s *SyntheticSource) Next(now time.Time) (Reading, error) {
	v := s.Min + s.rnd.Float64()*(s.Max-s.Min)
	v = math.Round(v*10) / 10
	if v > s.Max {
		v = s.Max
	}
	if v < s.Min {
		v = s.Min
	}
	return Reading{Temperature: v, Timestamp: now.UTC()}, nil
}
