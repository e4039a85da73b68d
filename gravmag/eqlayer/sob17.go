package eqlayer

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// IterativeSOB17 estimates the layer parameters with the iterative method of
// Siqueira, Oliveira and Barbosa (2017). The kernel must be square, with one
// source under every data point.
//
// Parameters start at scale·data and every iteration adds scale·r, with the
// scale fixed before the first iteration. The trace holds ‖r‖/N.
func IterativeSOB17(kernel mat.Matrix, data []float64, epsilon float64, maxIter int, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)
	if err := checkStopping(epsilon, maxIter); err != nil {
		return nil, err
	}
	if cfg.Validate {
		if err := checkSquareProblem(kernel, data); err != nil {
			return nil, err
		}
	}

	n := len(data)
	scale, ok := layerScale(kernel, data)
	if !ok {
		return stalled(n, floats.Norm(data, 2)/float64(n)), nil
	}

	op := NewDenseOperator(kernel)
	params := make([]float64, n)
	floats.ScaleTo(params, scale, data)
	residuals := make([]float64, n)
	op.MulVecTo(residuals, params)
	floats.SubTo(residuals, data, residuals)

	delta := floats.Norm(residuals, 2) / float64(n)
	trace := []float64{delta}

	dp := make([]float64, n)
	gdp := make([]float64, n)
	status := StatusMaxIterations
	for it := 1; ; it++ {
		if delta <= epsilon {
			status = StatusConverged
			break
		}
		if it >= maxIter {
			break
		}

		floats.ScaleTo(dp, scale, residuals)
		floats.Add(params, dp)
		op.MulVecTo(gdp, dp)
		floats.Sub(residuals, gdp)

		delta = floats.Norm(residuals, 2) / float64(n)
		trace = append(trace, delta)
		cfg.progress("sob17", it, delta)
	}

	return &Result{Parameters: params, Trace: trace, Status: status}, nil
}
