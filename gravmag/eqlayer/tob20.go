package eqlayer

import (
	"github.com/cwbudde/algo-gravmag/gravmag/convolve"
	"github.com/cwbudde/algo-gravmag/internal/check"
)

// SpectralDataset pairs the BCCB eigenvalues of a BTTB kernel with the
// gridded data it predicts. Factor is the transposition factor of the
// kernel: 1 if it is symmetric, -1 if it is skew-symmetric.
type SpectralDataset struct {
	Eigenvalues *convolve.Eigenvalues
	Factor      int
	Data        []float64
}

// DeconvolutionTOB20 estimates the layer parameters on a Q×P regular grid
// with the convolutional equivalent-layer method of Takahashi, Oliveira and
// Barbosa (2020). It runs the CGLS recurrence with every kernel product
// evaluated through the BCCB embedding of the kernel, so the kernel is never
// materialised.
//
// Every eigenvalue matrix must be 2Q×2P for RowOrdering and 2P×2Q for
// ColumnOrdering, and every data vector must hold Q·P values.
func DeconvolutionTOB20(datasets []SpectralDataset, q, p int, ordering convolve.Ordering, epsilon float64, maxIter int, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)
	if err := checkStopping(epsilon, maxIter); err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, check.Invalidf("at least one dataset is required")
	}
	if cfg.Validate {
		for i, ds := range datasets {
			if err := check.FiniteSlice("data", ds.Data); err != nil {
				return nil, err
			}
			if len(ds.Data) != q*p {
				return nil, check.Invalidf("data vector %d has %d elements, want Q·P = %d", i, len(ds.Data), q*p)
			}
		}
	}

	// NewOperator checks the grid, the eigenvalue shapes and the factors.
	ops := make([]Operator, len(datasets))
	data := make([][]float64, len(datasets))
	for i, ds := range datasets {
		op, err := convolve.NewOperator(ds.Eigenvalues, q, p, ordering, ds.Factor)
		if err != nil {
			return nil, err
		}
		ops[i] = op
		data[i] = ds.Data
	}
	return cgls(cfg, "tob20", ops, data, epsilon, maxIter), nil
}
