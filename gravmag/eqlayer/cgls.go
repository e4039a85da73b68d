package eqlayer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/internal/check"
	"github.com/cwbudde/algo-gravmag/internal/core"
)

// Dataset pairs a kernel matrix with the data it predicts.
type Dataset struct {
	Kernel mat.Matrix
	Data   []float64
}

// CGLS estimates the layer parameters fitting every dataset at once with the
// conjugate gradient method applied to the normal equations. All kernels
// must have the same number of columns.
//
// The trace holds sqrt(Σ‖rᵢ‖²)/ΣNᵢ, so one epsilon serves datasets of
// different sizes. The loop runs while the trace is above epsilon and fewer
// than maxIter trace entries exist.
func CGLS(datasets []Dataset, epsilon float64, maxIter int, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)
	if err := checkStopping(epsilon, maxIter); err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return nil, check.Invalidf("at least one dataset is required")
	}
	if cfg.Validate {
		m := 0
		for i, ds := range datasets {
			if err := check.SensitivityAndData(ds.Kernel, ds.Data); err != nil {
				return nil, err
			}
			_, c := ds.Kernel.Dims()
			if i == 0 {
				m = c
			} else if c != m {
				return nil, check.Invalidf("kernel %d has %d columns, kernel 0 has %d", i, c, m)
			}
		}
	}

	ops := make([]Operator, len(datasets))
	data := make([][]float64, len(datasets))
	for i, ds := range datasets {
		ops[i] = NewDenseOperator(ds.Kernel)
		data[i] = ds.Data
	}
	return cgls(cfg, "cgls", ops, data, epsilon, maxIter), nil
}

// cgls runs the recurrence on validated operators. The data slices are
// copied, never modified.
func cgls(cfg Config, name string, ops []Operator, data [][]float64, epsilon float64, maxIter int) *Result {
	_, m := ops[0].Dims()

	ndata := 0
	residuals := make([][]float64, len(data))
	nus := make([][]float64, len(data))
	for i, d := range data {
		residuals[i] = core.Clone(d)
		nus[i] = make([]float64, len(d))
		ndata += len(d)
	}

	params := make([]float64, m)
	eta := make([]float64, m)
	theta := make([]float64, m)
	scratch := make([]float64, m)

	delta := normalizedNorm(residuals, ndata)
	trace := []float64{delta}

	gradient(theta, scratch, ops, residuals)
	rho0 := floats.Dot(theta, theta)
	tau := 0.0

	status := StatusMaxIterations
	for it := 1; ; it++ {
		if delta <= epsilon {
			status = StatusConverged
			break
		}
		if it >= maxIter {
			break
		}
		if rho0 == 0 {
			status = StatusStalled
			break
		}

		// η = ϑ + τη
		floats.Scale(tau, eta)
		floats.Add(eta, theta)

		var aux float64
		for i, op := range ops {
			op.MulVecTo(nus[i], eta)
			aux += floats.Dot(nus[i], nus[i])
		}
		if aux == 0 {
			status = StatusStalled
			break
		}
		upsilon := rho0 / aux

		floats.AddScaled(params, upsilon, eta)
		for i := range residuals {
			floats.AddScaled(residuals[i], -upsilon, nus[i])
		}
		delta = normalizedNorm(residuals, ndata)
		trace = append(trace, delta)
		cfg.progress(name, it, delta)

		gradient(theta, scratch, ops, residuals)
		rho := floats.Dot(theta, theta)
		tau = rho / rho0
		rho0 = rho
	}

	return &Result{Parameters: params, Trace: trace, Status: status}
}

// gradient stores Σ Aᵢᵀrᵢ into theta.
func gradient(theta, scratch []float64, ops []Operator, residuals [][]float64) {
	core.Zero(theta)
	for i, op := range ops {
		op.MulTransVecTo(scratch, residuals[i])
		floats.Add(theta, scratch)
	}
}

func normalizedNorm(residuals [][]float64, ndata int) float64 {
	var sum float64
	for _, r := range residuals {
		sum += floats.Dot(r, r)
	}
	return math.Sqrt(sum) / float64(ndata)
}

// checkStopping validates the stopping parameters shared by every solver.
// It runs even with validation disabled.
func checkStopping(epsilon float64, maxIter int) error {
	if err := check.PositiveScalar("epsilon", epsilon); err != nil {
		return err
	}
	return check.PositiveInt("maxIter", maxIter)
}
