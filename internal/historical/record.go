// Package historical loads the static monthly station dataset and slices it
// by the interval selected in the UI.
package historical

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMalformed wraps every load failure caused by bad file content.
	ErrMalformed = errors.New("malformed historical data")

	// ErrUnknownInterval is returned by ParseInterval.
	ErrUnknownInterval = errors.New("unknown historical interval")
)

// Record is one month of station history. Records are never mutated after load.
type Record struct {
	Date            time.Time `json:"date"`
	MeanTemperature float64   `json:"meanTemperatureC"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
}

// Interval is the look-back window of the historical chart.
type Interval int

const (
	OneYear Interval = iota
	FiveYears
	TwentyFiveYears
	FiftyYears
)

// DefaultInterval is used when the selector is empty.
const DefaultInterval = FiveYears

// Intervals lists every interval in selector order.
var Intervals = []Interval{OneYear, FiveYears, TwentyFiveYears, FiftyYears}

// Years returns the number of years the interval reaches back.
func (i Interval) Years() int {
	switch i {
	case OneYear:
		return 1
	case FiveYears:
		return 5
	case TwentyFiveYears:
		return 25
	case FiftyYears:
		return 50
	default:
		return 0
	}
}

func (i Interval) String() string {
	if y := i.Years(); y > 0 {
		return fmt.Sprintf("%dyr", y)
	}
	return fmt.Sprintf("interval(%d)", int(i))
}

// Label is the human-readable selector text.
func (i Interval) Label() string {
	if i == OneYear {
		return "1 Year"
	}
	return fmt.Sprintf("%d Years", i.Years())
}

// ParseInterval accepts "5yr" style keys and the selector labels
// ("1 Year", "5 years", ...), case-insensitively. Empty input yields
// DefaultInterval.
func ParseInterval(s string) (Interval, error) {
	key := strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch key {
	case "":
		return DefaultInterval, nil
	case "1yr", "1y", "1year", "1years":
		return OneYear, nil
	case "5yr", "5y", "5year", "5years":
		return FiveYears, nil
	case "25yr", "25y", "25year", "25years":
		return TwentyFiveYears, nil
	case "50yr", "50y", "50year", "50years":
		return FiftyYears, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownInterval, s)
	}
}
