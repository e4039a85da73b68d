package eqlayer

import "fmt"

// Status reports why a solver stopped.
type Status int

const (
	// StatusConverged means the last trace entry is at or below epsilon.
	StatusConverged Status = iota
	// StatusMaxIterations means the iteration cap was reached first. It is a
	// normal outcome, not an error.
	StatusMaxIterations
	// StatusStalled means the recurrence could not take another step: the
	// search direction or the residual image vanished before convergence.
	StatusStalled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusMaxIterations:
		return "max-iterations"
	case StatusStalled:
		return "stalled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of a solver run.
type Result struct {
	// Parameters holds the estimated physical property of every source.
	Parameters []float64

	// Trace holds the convergence metric before the first update and after
	// every update.
	Trace []float64

	Status Status
}

// Iterations returns the number of updates performed.
func (r *Result) Iterations() int { return len(r.Trace) - 1 }

// Final returns the last trace entry.
func (r *Result) Final() float64 { return r.Trace[len(r.Trace)-1] }
