package convolve

import (
	"github.com/cwbudde/algo-gravmag/internal/check"
)

// Operator applies a BTTB matrix and its transpose through BCCB eigenvalues,
// reusing one FFT plan and its scratch memory. An Operator must not be used
// concurrently.
//
// The transpose is obtained by multiplying the eigenvalues by the
// transposition factor: +1 for a symmetric BTTB matrix and -1 for a
// skew-symmetric one.
type Operator struct {
	forward    *Eigenvalues
	transposed *Eigenvalues
	factor     int
	conv       *convolver
}

// NewOperator validates L against the Q×P problem and builds an operator.
func NewOperator(L *Eigenvalues, q, p int, ordering Ordering, factor int) (*Operator, error) {
	if L == nil {
		return nil, check.Invalidf("eigenvalue matrix is nil")
	}
	if err := validateProblem(q, p, ordering); err != nil {
		return nil, err
	}
	if err := L.checkShape(q, p, ordering); err != nil {
		return nil, err
	}
	if factor != 1 && factor != -1 {
		return nil, check.Invalidf("transposition factor must be 1 or -1, got %d", factor)
	}

	conv, err := newConvolver(q, p, ordering)
	if err != nil {
		return nil, err
	}

	op := &Operator{forward: L, transposed: L, factor: factor, conv: conv}
	if factor != 1 {
		op.transposed = L.Scaled(float64(factor))
	}
	return op, nil
}

// Dims returns (Q·P, Q·P).
func (o *Operator) Dims() (r, c int) {
	n := o.conv.q * o.conv.p
	return n, n
}

// Factor returns the transposition factor.
func (o *Operator) Factor() int { return o.factor }

// MulVecTo stores A·v into dst. Both slices must hold Q·P values.
func (o *Operator) MulVecTo(dst, v []float64) {
	o.mul(dst, v, o.forward)
}

// MulTransVecTo stores Aᵀ·v into dst. Both slices must hold Q·P values.
func (o *Operator) MulTransVecTo(dst, v []float64) {
	o.mul(dst, v, o.transposed)
}

func (o *Operator) mul(dst, v []float64, L *Eigenvalues) {
	n := o.conv.q * o.conv.p
	if len(dst) != n || len(v) != n {
		panic("convolve: operator vector length mismatch")
	}
	if err := o.conv.product(dst, v, L); err != nil {
		panic(err)
	}
}
