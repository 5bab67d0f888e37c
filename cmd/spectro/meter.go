package main

import (
	"fmt"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// meter keeps a moving window of the intervals between captures.
type meter struct {
	mu sync.Mutex

	last      time.Time
	intervals []float64 // seconds, ring
	next      int
	full      bool
	count     uint64
}

func newMeter(size int) *meter {
	return &meter{intervals: make([]float64, size)}
}

// mark records a capture at now.
func (m *meter) mark(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count++

	if !m.last.IsZero() {
		m.intervals[m.next] = now.Sub(m.last).Seconds()
		if m.next++; m.next == len(m.intervals) {
			m.next = 0
			m.full = true
		}
	}

	m.last = now
}

// stats returns the mean and standard deviation of the window in seconds.
// ok is false until two captures have been seen.
func (m *meter) stats() (mean, std float64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.next
	if m.full {
		n = len(m.intervals)
	}

	switch n {
	case 0:
		return 0, 0, false
	case 1:
		return m.intervals[0], 0, true
	}

	mean, std = stat.MeanStdDev(m.intervals[:n], nil)
	return mean, std, true
}

func (m *meter) String() string {
	m.mu.Lock()
	count := m.count
	m.mu.Unlock()

	mean, std, ok := m.stats()
	if !ok || mean == 0 {
		return fmt.Sprintf("#%d", count)
	}

	return fmt.Sprintf("#%d %.1f/s ±%.0fms", count, 1/mean, std*1000)
}
