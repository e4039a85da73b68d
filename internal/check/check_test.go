package check

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestScalars(t *testing.T) {
	tests := []struct {
		name string
		err  error
		ok   bool
	}{
		{"finite", Finite("x", 1.5), true},
		{"nan", Finite("x", math.NaN()), false},
		{"inf", Finite("x", math.Inf(-1)), false},
		{"positive", PositiveScalar("eps", 1e-9), true},
		{"zero", PositiveScalar("eps", 0), false},
		{"negative", PositiveScalar("eps", -1), false},
		{"int", PositiveInt("itmax", 3), true},
		{"int zero", PositiveInt("itmax", 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ok && tt.err != nil {
				t.Fatalf("unexpected error: %v", tt.err)
			}
			if !tt.ok && !errors.Is(tt.err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", tt.err)
			}
		})
	}
}

func TestSensitivityAndData(t *testing.T) {
	g := mat.NewDense(3, 2, nil)

	if err := SensitivityAndData(g, []float64{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SensitivityAndData(g, []float64{1, 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("row mismatch: got %v", err)
	}
	if err := SensitivityAndData(nil, []float64{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil matrix: got %v", err)
	}
	if err := SensitivityAndData(g, []float64{1, math.NaN(), 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nan data: got %v", err)
	}
	if err := Square(g); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("non-square: got %v", err)
	}
}
