// Package core holds slice helpers shared by the solvers.
package core

import "math"

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Clone returns a copy of src that does not share memory with it.
func Clone(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}

// MaxAbsIndex returns the index of the largest |x[i]|, the first one on ties.
// It returns -1 for an empty slice.
func MaxAbsIndex(x []float64) int {
	idx, best := -1, -1.0
	for i, v := range x {
		if a := math.Abs(v); a > best {
			idx, best = i, a
		}
	}
	return idx
}
