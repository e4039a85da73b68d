package convolve

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-gravmag/internal/check"
)

// ProductBCCBVector returns the product of the BTTB matrix embedded in the
// BCCB matrix with eigenvalues L and the Q·P vector v.
func ProductBCCBVector(L *Eigenvalues, q, p int, v []float64, ordering Ordering) ([]float64, error) {
	if L == nil {
		return nil, check.Invalidf("eigenvalue matrix is nil")
	}
	if err := validateProblem(q, p, ordering); err != nil {
		return nil, err
	}
	if err := L.checkShape(q, p, ordering); err != nil {
		return nil, err
	}
	if err := check.VectorLen("v", v, q*p); err != nil {
		return nil, err
	}

	conv, err := newConvolver(q, p, ordering)
	if err != nil {
		return nil, err
	}
	w := make([]float64, q*p)
	if err := conv.product(w, v, L); err != nil {
		return nil, err
	}
	return w, nil
}

func validateProblem(q, p int, ordering Ordering) error {
	if err := check.PositiveInt("Q", q); err != nil {
		return err
	}
	if err := check.PositiveInt("P", p); err != nil {
		return err
	}
	_, _, err := ordering.GridShape(q, p)
	return err
}

// convolver holds the FFT plan and scratch planes for one grid shape.
type convolver struct {
	q, p       int
	ordering   Ordering
	rows, cols int
	plan       *algofft.Plan2D[complex128]
	grid       []complex128

	// split spectrum and the four partial products of the Hadamard step
	xr, xi []float64
	rr, ii []float64
	ri, ir []float64
}

func newConvolver(q, p int, ordering Ordering) (*convolver, error) {
	rows, cols, err := ordering.GridShape(q, p)
	if err != nil {
		return nil, err
	}
	plan, err := algofft.NewPlan2D64(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("convolve: failed to create %d×%d FFT plan: %w", rows, cols, err)
	}

	n := rows * cols
	return &convolver{
		q:        q,
		p:        p,
		ordering: ordering,
		rows:     rows,
		cols:     cols,
		plan:     plan,
		grid:     make([]complex128, n),
		xr:       make([]float64, n),
		xi:       make([]float64, n),
		rr:       make([]float64, n),
		ii:       make([]float64, n),
		ri:       make([]float64, n),
		ir:       make([]float64, n),
	}, nil
}

// index returns the grid position of vector entry q*P+p.
func (c *convolver) index(q, p int) int {
	if c.ordering == RowOrdering {
		return q*c.cols + p
	}
	return p*c.cols + q
}

// product computes dst = BTTB·v through the eigenvalues L.
func (c *convolver) product(dst, v []float64, L *Eigenvalues) error {
	for i := range c.grid {
		c.grid[i] = 0
	}

	// Zero-padded embedding of v in the first quadrant
	for q := range c.q {
		for p := range c.p {
			c.grid[c.index(q, p)] = complex(v[q*c.p+p], 0)
		}
	}

	if err := c.plan.ForwardInPlace(c.grid); err != nil {
		return fmt.Errorf("convolve: forward transform failed: %w", err)
	}

	// Hadamard product L∘X on split planes
	for i, x := range c.grid {
		c.xr[i], c.xi[i] = real(x), imag(x)
	}
	vecmath.MulBlock(c.rr, L.re, c.xr)
	vecmath.MulBlock(c.ii, L.im, c.xi)
	vecmath.MulBlock(c.ri, L.re, c.xi)
	vecmath.MulBlock(c.ir, L.im, c.xr)
	for i := range c.grid {
		c.grid[i] = complex(c.rr[i]-c.ii[i], c.ri[i]+c.ir[i])
	}

	if err := c.plan.InverseInPlace(c.grid); err != nil {
		return fmt.Errorf("convolve: inverse transform failed: %w", err)
	}

	// The BTTB product sits in the first quadrant
	for q := range c.q {
		for p := range c.p {
			dst[q*c.p+p] = real(c.grid[c.index(q, p)])
		}
	}
	return nil
}
