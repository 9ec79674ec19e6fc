// Package bench is the optional benchmarking collaborator: streaming,
// constant-memory statistics over timed samples, kept for parity with
// the Carcara checker's benchmarking module (spec.md §4.6). Nothing in
// pkg/checker or pkg/parser depends on it; a caller opts in by calling
// Add after each parse/check it wants measured.
package bench

import (
	"fmt"
	"math"
	"time"
)

// sample pairs a key with the duration recorded for it, used to track
// the first-seen min/max in Metrics.
type sample[K any] struct {
	key   K
	value time.Duration
}

// Metrics is a running mean/standard-deviation/min/max over samples
// keyed by K, updated one at a time via Welford's online algorithm so
// that memory stays constant regardless of how many samples are added
// (spec.md §4.6). The zero value is an empty Metrics ready to use;
// NewMetrics returns a pointer to one.
type Metrics[K any] struct {
	Total             time.Duration
	Count             int
	Mean              time.Duration
	StandardDeviation time.Duration

	min, max *sample[K]

	// sumSquaredDistances is the running sum of (x-mean)(x-oldMean)
	// across every sample added so far; Welford's recurrence keeps this
	// numerically stable without ever revisiting past samples.
	sumSquaredDistances float64
}

// NewMetrics returns an empty Metrics ready to accumulate samples.
func NewMetrics[K any]() *Metrics[K] {
	return &Metrics[K]{}
}

// Add records one more timed sample under key. Metrics stays valid
// after every call, so a caller can stop adding samples at any point.
func (m *Metrics[K]) Add(key K, value time.Duration) {
	oldMean := m.Mean.Seconds()

	m.Total += value
	m.Count++
	m.Mean = m.Total / time.Duration(m.Count)

	newMean := m.Mean.Seconds()

	delta := (value.Seconds() - newMean) * (value.Seconds() - oldMean)
	m.sumSquaredDistances += delta

	divisor := m.Count - 1
	if divisor < 1 {
		divisor = 1
	}
	m.StandardDeviation = time.Duration(math.Sqrt(m.sumSquaredDistances)*float64(time.Second)) / time.Duration(divisor)

	switch {
	case m.max == nil:
		m.min = &sample[K]{key: key, value: value}
		m.max = &sample[K]{key: key, value: value}
	default:
		if value > m.max.value {
			m.max = &sample[K]{key: key, value: value}
		}
		if value < m.min.value {
			m.min = &sample[K]{key: key, value: value}
		}
	}
}

// Max returns the key and duration of the largest sample seen so far,
// and false if no sample has been added yet. Ties keep the first key
// seen at that value.
func (m *Metrics[K]) Max() (K, time.Duration, bool) {
	if m.max == nil {
		var zero K
		return zero, 0, false
	}
	return m.max.key, m.max.value, true
}

// Min is Max's counterpart for the smallest sample seen so far.
func (m *Metrics[K]) Min() (K, time.Duration, bool) {
	if m.min == nil {
		var zero K
		return zero, 0, false
	}
	return m.min.key, m.min.value, true
}

// String renders "{mean} ± {stddev}", matching the reference checker's
// Display impl.
func (m *Metrics[K]) String() string {
	return fmt.Sprintf("%s ± %s", m.Mean, m.StandardDeviation)
}
