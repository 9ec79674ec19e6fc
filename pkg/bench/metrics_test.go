package bench

import (
	"math"
	"testing"
	"time"
)

// TestMetricsAgainstBatchFormula checks Welford's running computation
// against the textbook batch formula for mean/stddev over a small fixed
// sample set, and checks that min/max track the right keys.
func TestMetricsAgainstBatchFormula(t *testing.T) {
	samples := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		15 * time.Millisecond,
		5 * time.Millisecond,
		30 * time.Millisecond,
	}

	m := NewMetrics[int]()
	for i, s := range samples {
		m.Add(i, s)
	}

	var total time.Duration
	for _, s := range samples {
		total += s
	}

	if m.Total != total {
		t.Fatalf("total = %v, want %v", m.Total, total)
	}

	wantMean := total / time.Duration(len(samples))
	if m.Mean != wantMean {
		t.Fatalf("mean = %v, want %v", m.Mean, wantMean)
	}

	meanSecs := wantMean.Seconds()
	var sumSq float64
	for _, s := range samples {
		d := s.Seconds() - meanSecs
		sumSq += d * d
	}
	wantStd := time.Duration(math.Sqrt(sumSq) * float64(time.Second) / float64(len(samples)-1))

	delta := m.StandardDeviation - wantStd
	if delta < 0 {
		delta = -delta
	}
	if delta > time.Microsecond {
		t.Fatalf("stddev = %v, want ~%v", m.StandardDeviation, wantStd)
	}

	maxKey, maxVal, ok := m.Max()
	if !ok || maxKey != 4 || maxVal != 30*time.Millisecond {
		t.Fatalf("max = (%v, %v, %v), want (4, 30ms, true)", maxKey, maxVal, ok)
	}

	minKey, minVal, ok := m.Min()
	if !ok || minKey != 3 || minVal != 5*time.Millisecond {
		t.Fatalf("min = (%v, %v, %v), want (3, 5ms, true)", minKey, minVal, ok)
	}
}

// TestMetricsTiesKeepFirst checks that a repeated extreme value does
// not displace the first key that reached it.
func TestMetricsTiesKeepFirst(t *testing.T) {
	m := NewMetrics[string]()
	m.Add("a", 10*time.Millisecond)
	m.Add("b", 10*time.Millisecond)
	m.Add("c", 10*time.Millisecond)

	maxKey, _, _ := m.Max()
	if maxKey != "a" {
		t.Fatalf("max key = %q, want %q", maxKey, "a")
	}

	minKey, _, _ := m.Min()
	if minKey != "a" {
		t.Fatalf("min key = %q, want %q", minKey, "a")
	}
}

// TestMetricsEmpty checks that an untouched Metrics reports no
// min/max rather than panicking.
func TestMetricsEmpty(t *testing.T) {
	m := NewMetrics[int]()

	if _, _, ok := m.Max(); ok {
		t.Fatal("Max on empty Metrics reported ok")
	}
	if _, _, ok := m.Min(); ok {
		t.Fatal("Min on empty Metrics reported ok")
	}
	if m.Count != 0 {
		t.Fatalf("Count = %d, want 0", m.Count)
	}
}

func TestResultsRecordStepBreakdown(t *testing.T) {
	r := NewResults()

	r.RecordStep(StepID{File: "a.smt2", Index: "t1", Rule: "la_generic"}, 5*time.Millisecond)
	r.RecordStep(StepID{File: "a.smt2", Index: "t2", Rule: "la_rw_eq"}, 1*time.Millisecond)
	r.RecordStep(StepID{File: "b.smt2", Index: "t1", Rule: "la_generic"}, 9*time.Millisecond)

	if r.StepTime.Count != 3 {
		t.Fatalf("overall step count = %d, want 3", r.StepTime.Count)
	}

	byFile, ok := r.StepTimeByFile["a.smt2"]
	if !ok || byFile.Count != 2 {
		t.Fatalf("step count for a.smt2 = %v, want 2", byFile)
	}

	byRule, ok := r.StepTimeByRule["la_generic"]
	if !ok || byRule.Count != 2 {
		t.Fatalf("step count for la_generic = %v, want 2", byRule)
	}
}

func TestResultsRecordRun(t *testing.T) {
	r := NewResults()
	id := RunID{File: "a.smt2", Run: 0}

	r.RecordRun(id, 3*time.Millisecond, 7*time.Millisecond)

	if r.Total.Count != 1 {
		t.Fatalf("total count = %d, want 1", r.Total.Count)
	}

	_, dur, ok := r.Total.Max()
	if !ok || dur != 10*time.Millisecond {
		t.Fatalf("total max = (%v, %v), want 10ms", dur, ok)
	}
}
