package store

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/i474232898/weather-dashboard/internal/reading"
)

// History is a concurrency-safe, fixed-capacity buffer of the most recent
// readings. Insertion order is chronological; once full, each Push evicts
// the oldest reading.
type History struct {
	mu       sync.RWMutex
	readings deque.Deque[reading.Reading]
	capacity int
}

// NewHistory creates a History holding at most capacity readings.
// A capacity below 1 is treated as 1.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	h := &History{capacity: capacity}
	h.readings.SetBaseCap(capacity)
	return h
}

// Push appends r, evicting the oldest reading when the buffer is full.
func (h *History) Push(r reading.Reading) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.readings.PushBack(r)
	for h.readings.Len() > h.capacity {
		h.readings.PopFront()
	}
}

// Snapshot returns a copy of the buffered readings, oldest first. The copy
// is unaffected by later pushes.
func (h *History) Snapshot() []reading.Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]reading.Reading, h.readings.Len())
	for i := range out {
		out[i] = h.readings.At(i)
	}
	return out
}

// Reset drops every buffered reading.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readings.Clear()
}

// Latest returns the most recent reading.
func (h *History) Latest() (reading.Reading, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.readings.Len() == 0 {
		return reading.Reading{}, false
	}
	return h.readings.Back(), true
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.readings.Len()
}

func (h *History) Cap() int {
	return h.capacity
}
