package convolve

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-gravmag/gravmag/bttb"
	"github.com/cwbudde/algo-gravmag/internal/check"
)

// ErrInvalidArgument is returned for malformed shapes, orderings or factors.
var ErrInvalidArgument = check.ErrInvalidArgument

// Ordering selects how a Q·P vector is laid out on the transform grid.
type Ordering int

const (
	RowOrdering Ordering = iota
	ColumnOrdering
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case RowOrdering:
		return "row"
	case ColumnOrdering:
		return "column"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// ParseOrdering converts "row" or "column" into an Ordering.
func ParseOrdering(s string) (Ordering, error) {
	switch s {
	case "row":
		return RowOrdering, nil
	case "column":
		return ColumnOrdering, nil
	default:
		return 0, check.Invalidf("invalid ordering %q", s)
	}
}

// GridShape returns the transform grid shape for a Q×P problem.
func (o Ordering) GridShape(q, p int) (rows, cols int, err error) {
	switch o {
	case RowOrdering:
		return 2 * q, 2 * p, nil
	case ColumnOrdering:
		return 2 * p, 2 * q, nil
	default:
		return 0, 0, check.Invalidf("invalid ordering %v", o)
	}
}

// Eigenvalues is the spectral representation of a BCCB matrix: the 2-D DFT
// of its first column laid out on the transform grid. Values are kept as
// split real and imaginary planes, row-major.
type Eigenvalues struct {
	rows, cols int
	re, im     []float64
}

// NewEigenvalues wraps externally computed eigenvalues, given row-major.
func NewEigenvalues(rows, cols int, values []complex128) (*Eigenvalues, error) {
	if err := check.PositiveInt("rows", rows); err != nil {
		return nil, err
	}
	if err := check.PositiveInt("cols", cols); err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, check.Invalidf("eigenvalue matrix %d×%d needs %d values, got %d",
			rows, cols, rows*cols, len(values))
	}

	e := &Eigenvalues{
		rows: rows,
		cols: cols,
		re:   make([]float64, len(values)),
		im:   make([]float64, len(values)),
	}
	for i, v := range values {
		e.re[i], e.im[i] = real(v), imag(v)
	}
	return e, nil
}

// EigenvaluesBCCB computes the eigenvalues of the BCCB embedding of the BTTB
// matrix described by meta, laid out for the given ordering.
func EigenvaluesBCCB(meta bttb.Metadata, ordering Ordering) (*Eigenvalues, error) {
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	q, p := meta.NBlocks, meta.BlockSize()
	rows, cols, err := ordering.GridShape(q, p)
	if err != nil {
		return nil, err
	}

	// The first column is naturally a 2Q×2P row-major grid
	c := meta.BCCBFirstColumn()
	grid := make([]complex128, len(c))
	for b := range 2 * q {
		for a := range 2 * p {
			v := complex(c[b*2*p+a], 0)
			if ordering == RowOrdering {
				grid[b*2*p+a] = v
			} else {
				grid[a*2*q+b] = v
			}
		}
	}

	plan, err := algofft.NewPlan2D64(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("convolve: failed to create %d×%d FFT plan: %w", rows, cols, err)
	}
	if err := plan.ForwardInPlace(grid); err != nil {
		return nil, fmt.Errorf("convolve: eigenvalue transform failed: %w", err)
	}
	return NewEigenvalues(rows, cols, grid)
}

// Dims returns the shape of the eigenvalue matrix.
func (e *Eigenvalues) Dims() (rows, cols int) { return e.rows, e.cols }

// At returns the eigenvalue at row i and column j.
func (e *Eigenvalues) At(i, j int) complex128 {
	k := i*e.cols + j
	return complex(e.re[k], e.im[k])
}

// Scaled returns a copy with every eigenvalue multiplied by f.
func (e *Eigenvalues) Scaled(f float64) *Eigenvalues {
	out := &Eigenvalues{
		rows: e.rows,
		cols: e.cols,
		re:   make([]float64, len(e.re)),
		im:   make([]float64, len(e.im)),
	}
	floats.ScaleTo(out.re, f, e.re)
	floats.ScaleTo(out.im, f, e.im)
	return out
}

// SpectralRadius returns max |λ|, the 2-norm of the BCCB matrix and an upper
// bound on the 2-norm of the embedded BTTB matrix.
func (e *Eigenvalues) SpectralRadius() float64 {
	mag := make([]float64, len(e.re))
	vecmath.Magnitude(mag, e.re, e.im)
	return floats.Max(mag)
}

// checkShape fails unless the matrix fits a Q×P problem under ordering.
func (e *Eigenvalues) checkShape(q, p int, ordering Ordering) error {
	rows, cols, err := ordering.GridShape(q, p)
	if err != nil {
		return err
	}
	if e.rows != rows || e.cols != cols {
		return check.Invalidf("%s ordering needs a %d×%d eigenvalue matrix, got %d×%d",
			ordering, rows, cols, e.rows, e.cols)
	}
	return nil
}
