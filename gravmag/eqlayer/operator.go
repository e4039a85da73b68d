package eqlayer

import "gonum.org/v1/gonum/mat"

// Operator is a linear map applied by the CGLS recurrence. Both
// *convolve.Operator and DenseOperator implement it.
type Operator interface {
	// Dims returns the number of data (rows) and parameters (columns).
	Dims() (r, c int)
	// MulVecTo stores A·v into dst.
	MulVecTo(dst, v []float64)
	// MulTransVecTo stores Aᵀ·v into dst.
	MulTransVecTo(dst, v []float64)
}

// DenseOperator adapts a kernel matrix to Operator.
type DenseOperator struct {
	m mat.Matrix
}

// NewDenseOperator wraps m. The matrix is read, never modified.
func NewDenseOperator(m mat.Matrix) DenseOperator {
	return DenseOperator{m: m}
}

// Dims returns the dimensions of the wrapped matrix.
func (d DenseOperator) Dims() (r, c int) { return d.m.Dims() }

// MulVecTo stores A·v into dst.
func (d DenseOperator) MulVecTo(dst, v []float64) {
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(d.m, mat.NewVecDense(len(v), v))
}

// MulTransVecTo stores Aᵀ·v into dst.
func (d DenseOperator) MulTransVecTo(dst, v []float64) {
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(d.m.T(), mat.NewVecDense(len(v), v))
}
