package eqlayer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/geom"
	"github.com/cwbudde/algo-gravmag/internal/check"
	"github.com/cwbudde/algo-gravmag/internal/core"
)

// ColumnActionC92 estimates the layer parameters with the column-action
// method of Cordell (1992). The kernel must be square, with one source
// under every data point, and the layer at depth zLayer must lie below all
// dataPoints.
//
// Parameters start at scale·data. Every iteration corrects only the
// parameter under the largest absolute residual and removes that column's
// contribution from the residuals. The trace holds the largest absolute
// residual, which is not guaranteed to decrease at every step.
func ColumnActionC92(kernel mat.Matrix, data []float64, dataPoints geom.Points, zLayer, epsilon float64, maxIter int, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)
	if err := checkStopping(epsilon, maxIter); err != nil {
		return nil, err
	}
	if cfg.Validate {
		if err := checkSquareProblem(kernel, data); err != nil {
			return nil, err
		}
		if dataPoints.Len() != len(data) {
			return nil, check.Invalidf("%d data points for %d data", dataPoints.Len(), len(data))
		}
		if err := check.Finite("zLayer", zLayer); err != nil {
			return nil, err
		}
		if _, zmax := dataPoints.ZRange(); zLayer <= zmax {
			return nil, check.Invalidf("zLayer %g must be deeper than every data point (max z %g)", zLayer, zmax)
		}
	}

	n := len(data)
	scale, ok := layerScale(kernel, data)
	if !ok {
		return stalled(n, math.Abs(data[core.MaxAbsIndex(data)])), nil
	}

	params := make([]float64, n)
	floats.ScaleTo(params, scale, data)
	residuals := make([]float64, n)
	NewDenseOperator(kernel).MulVecTo(residuals, params)
	floats.SubTo(residuals, data, residuals)

	imax := core.MaxAbsIndex(residuals)
	rmax := residuals[imax]
	trace := []float64{math.Abs(rmax)}

	column := make([]float64, n)
	status := StatusMaxIterations
	for it := 1; ; it++ {
		if math.Abs(rmax) <= epsilon {
			status = StatusConverged
			break
		}
		if it >= maxIter {
			break
		}

		dp := rmax * scale
		params[imax] += dp
		mat.Col(column, imax, kernel)
		floats.AddScaled(residuals, -dp, column)

		imax = core.MaxAbsIndex(residuals)
		rmax = residuals[imax]
		trace = append(trace, math.Abs(rmax))
		cfg.progress("c92", it, math.Abs(rmax))
	}

	return &Result{Parameters: params, Trace: trace, Status: status}, nil
}

// checkSquareProblem validates a kernel with one source per datum.
func checkSquareProblem(kernel mat.Matrix, data []float64) error {
	if err := check.SensitivityAndData(kernel, data); err != nil {
		return err
	}
	return check.Square(kernel)
}

// layerScale returns (d·Gd)/‖Gd‖², the single step size of the column-action
// and SOB17 methods. It reports false when Gd vanishes.
func layerScale(kernel mat.Matrix, data []float64) (float64, bool) {
	gd := make([]float64, len(data))
	NewDenseOperator(kernel).MulVecTo(gd, data)
	den := floats.Dot(gd, gd)
	if den == 0 {
		return 0, false
	}
	return floats.Dot(data, gd) / den, true
}

// stalled is the result of a run that could not take its first step.
func stalled(m int, delta float64) *Result {
	return &Result{
		Parameters: make([]float64, m),
		Trace:      []float64{delta},
		Status:     StatusStalled,
	}
}
