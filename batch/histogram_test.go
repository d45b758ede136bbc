package batch

import (
	"testing"
	"time"
)

func TestHistogramEmpty(t *testing.T) {
	h := newHistogram(0)
	p50, p90, p99 := h.percentiles()
	if p50 != 0 || p90 != 0 || p99 != 0 {
		t.Fatalf("expected zero percentiles for an empty histogram, got %v %v %v", p50, p90, p99)
	}
}

func TestHistogramPercentilesMonotonic(t *testing.T) {
	h := newHistogram(100)
	for i := 1; i <= 100; i++ {
		h.observe(time.Duration(i) * time.Millisecond)
	}
	p50, p90, p99 := h.percentiles()
	if !(p50 <= p90 && p90 <= p99) {
		t.Fatalf("expected p50 <= p90 <= p99, got %v %v %v", p50, p90, p99)
	}
	if p99 < 90*time.Millisecond {
		t.Fatalf("expected p99 to reflect the upper tail, got %v", p99)
	}
}
