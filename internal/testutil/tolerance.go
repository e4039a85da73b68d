package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireNonIncreasing fails t if any entry of trace exceeds its
// predecessor by more than eps.
func RequireNonIncreasing(t *testing.T, trace []float64, eps float64) {
	t.Helper()
	for i := 1; i < len(trace); i++ {
		if trace[i] > trace[i-1]+eps {
			t.Fatalf("trace increases at %d: %v > %v", i, trace[i], trace[i-1])
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}

// RelativeError returns ‖got-want‖₂ / ‖want‖₂, or ‖got‖₂ when want is zero.
func RelativeError(got, want []float64) (float64, error) {
	if len(got) != len(want) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(got), len(want))
	}
	norm := floats.Norm(want, 2)
	diff := floats.Distance(got, want, 2)
	if norm == 0 {
		return diff, nil
	}
	return diff / norm, nil
}
