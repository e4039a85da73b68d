package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestRelativeError(t *testing.T) {
	got, err := RelativeError([]float64{3, 4.5}, []float64{3, 4})
	if err != nil {
		t.Fatalf("RelativeError error: %v", err)
	}
	if math.Abs(got-0.1) > 1e-15 {
		t.Fatalf("RelativeError = %v, want 0.1", got)
	}

	got, err = RelativeError([]float64{3, 4}, []float64{0, 0})
	if err != nil {
		t.Fatalf("RelativeError error: %v", err)
	}
	if got != 5 {
		t.Fatalf("RelativeError = %v, want 5 for zero reference", got)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-12}, 1e-9)
	RequireFinite(t, []float64{0, -1, 1e300})
	RequireNonIncreasing(t, []float64{3, 2, 2, 1}, 0)
}
