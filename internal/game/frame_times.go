package game

import (
	"sync"
	"time"
)

// frameTimes records how long the last N redraw cycles took so the debug
// overlay can show the cost of a tick.
type frameTimes struct {
	buffer    []time.Duration
	nextIndex int
	filled    int
	mu        sync.RWMutex
}

func newFrameTimes(ringSize int) *frameTimes {
	return &frameTimes{
		buffer: make([]time.Duration, ringSize),
	}
}

// measure runs fn and records its duration.
func (f *frameTimes) measure(fn func()) {
	start := time.Now()
	fn()
	f.record(time.Since(start))
}

func (f *frameTimes) record(d time.Duration) {
	f.mu.Lock()
	f.buffer[f.nextIndex] = d
	f.nextIndex++
	if f.nextIndex >= len(f.buffer) {
		f.nextIndex = 0
	}
	if f.filled < len(f.buffer) {
		f.filled++
	}
	f.mu.Unlock()
}

// snapshot returns up to the last n durations, oldest first.
func (f *frameTimes) snapshot(n int) []time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if n > f.filled {
		n = f.filled
	}
	out := make([]time.Duration, 0, n)
	// Walk backwards from nextIndex - 1
	idx := f.nextIndex - 1
	for i := 0; i < n; i++ {
		if idx < 0 {
			idx = len(f.buffer) - 1
		}
		out = append(out, f.buffer[idx])
		idx--
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// average is the mean of the recorded durations, zero when empty.
func (f *frameTimes) average() time.Duration {
	samples := f.snapshot(len(f.buffer))
	if len(samples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range samples {
		sum += d
	}
	return sum / time.Duration(len(samples))
}
