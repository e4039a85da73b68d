// Package check holds the input validation shared by the gravmag packages.
//
// Every failure wraps [ErrInvalidArgument] so callers can match it with
// errors.Is regardless of which package reported it.
package check

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInvalidArgument reports malformed shapes, lengths, enumerated values
	// or numeric parameters.
	ErrInvalidArgument = errors.New("gravmag: invalid argument")

	// ErrLayerAboveData is the geometric advisory emitted when the surface
	// containing the data may cross the equivalent layer. It is reported,
	// never returned.
	ErrLayerAboveData = errors.New("gravmag: surface containing data may cross the equivalent layer")
)

// Invalidf returns an error wrapping ErrInvalidArgument with a formatted detail.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Finite fails if x is NaN or ±Inf.
func Finite(name string, x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Invalidf("%s must be a finite scalar, got %v", name, x)
	}
	return nil
}

// PositiveScalar fails unless x is finite and strictly positive.
func PositiveScalar(name string, x float64) error {
	if err := Finite(name, x); err != nil {
		return err
	}
	if x <= 0 {
		return Invalidf("%s must be positive, got %v", name, x)
	}
	return nil
}

// PositiveInt fails unless n > 0.
func PositiveInt(name string, n int) error {
	if n <= 0 {
		return Invalidf("%s must be a positive integer, got %d", name, n)
	}
	return nil
}

// FiniteSlice fails on an empty slice or on any non-finite element.
func FiniteSlice(name string, x []float64) error {
	if len(x) == 0 {
		return Invalidf("%s must not be empty", name)
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Invalidf("%s[%d] is not finite (%v)", name, i, v)
		}
	}
	return nil
}

// VectorLen fails unless len(v) == n.
func VectorLen(name string, v []float64, n int) error {
	if len(v) != n {
		return Invalidf("%s must have %d elements, got %d", name, n, len(v))
	}
	return nil
}

// SensitivityAndData fails unless g is a non-empty matrix whose row count
// matches the number of data.
func SensitivityAndData(g mat.Matrix, data []float64) error {
	if g == nil {
		return Invalidf("sensitivity matrix is nil")
	}
	r, c := g.Dims()
	if r == 0 || c == 0 {
		return Invalidf("sensitivity matrix is empty (%d×%d)", r, c)
	}
	if err := FiniteSlice("data", data); err != nil {
		return err
	}
	if r != len(data) {
		return Invalidf("sensitivity matrix has %d rows but data has %d elements", r, len(data))
	}
	return nil
}

// Square fails unless g has as many rows as columns.
func Square(g mat.Matrix) error {
	r, c := g.Dims()
	if r != c {
		return Invalidf("sensitivity matrix must be square, got %d×%d", r, c)
	}
	return nil
}
