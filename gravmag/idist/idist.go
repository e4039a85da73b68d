// Package idist computes the inverse-distance primitives from which the
// equivalent-layer kernels are assembled: the squared Euclidean distance
// matrix between data and source points, and the first and second
// derivatives of 1/R with respect to the data coordinates.
//
// All matrices are N×M, with N data points along rows and M sources along
// columns. Inputs are assumed to be validated by the caller; mismatched
// shapes panic.
package idist

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/geom"
)

// Axis selects a first-derivative component.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String implements fmt.Stringer.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Pair selects a component of the symmetric gradient tensor.
type Pair int

const (
	PairXX Pair = iota
	PairXY
	PairXZ
	PairYY
	PairYZ
	PairZZ
)

// String implements fmt.Stringer.
func (p Pair) String() string {
	switch p {
	case PairXX:
		return "xx"
	case PairXY:
		return "xy"
	case PairXZ:
		return "xz"
	case PairYY:
		return "yy"
	case PairYZ:
		return "yz"
	case PairZZ:
		return "zz"
	default:
		return fmt.Sprintf("Pair(%d)", int(p))
	}
}

func (p Pair) axes() (Axis, Axis) {
	switch p {
	case PairXX:
		return AxisX, AxisX
	case PairXY:
		return AxisX, AxisY
	case PairXZ:
		return AxisX, AxisZ
	case PairYY:
		return AxisY, AxisY
	case PairYZ:
		return AxisY, AxisZ
	case PairZZ:
		return AxisZ, AxisZ
	default:
		panic("idist: invalid tensor component " + p.String())
	}
}

func coords(pts geom.Points, a Axis) []float64 {
	switch a {
	case AxisX:
		return pts.X()
	case AxisY:
		return pts.Y()
	case AxisZ:
		return pts.Z()
	default:
		panic("idist: invalid axis " + a.String())
	}
}

// SEDM returns the squared Euclidean distance matrix R², with
// R²[i][j] = |data_i - source_j|².
func SEDM(data, sources geom.Points) *mat.Dense {
	n, m := data.Len(), sources.Len()
	r2 := mat.NewDense(n, m, nil)
	raw := r2.RawMatrix()

	dx, dy, dz := data.X(), data.Y(), data.Z()
	sx, sy, sz := sources.X(), sources.Y(), sources.Z()
	for i := range n {
		row := raw.Data[i*raw.Stride : i*raw.Stride+m]
		for j := range row {
			ex := dx[i] - sx[j]
			ey := dy[i] - sy[j]
			ez := dz[i] - sz[j]
			row[j] = ex*ex + ey*ey + ez*ez
		}
	}
	return r2
}

// InverseDistance returns 1/R computed from the squared distances r2.
func InverseDistance(r2 *mat.Dense) *mat.Dense {
	n, m := r2.Dims()
	out := mat.NewDense(n, m, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		return 1 / math.Sqrt(v)
	}, r2)
	return out
}

// Grad returns, for every requested axis a, the matrix ∂(1/R)/∂a evaluated
// at the data points: -(a_data - a_source)/R³.
func Grad(data, sources geom.Points, r2 *mat.Dense, axes ...Axis) []*mat.Dense {
	n, m := r2.Dims()
	out := make([]*mat.Dense, len(axes))

	// 1/R³ is shared by all components
	invR3 := make([]float64, n*m)
	raw := r2.RawMatrix()
	for i := range n {
		for j := range m {
			v := raw.Data[i*raw.Stride+j]
			invR3[i*m+j] = 1 / (v * math.Sqrt(v))
		}
	}

	for k, a := range axes {
		cd, cs := coords(data, a), coords(sources, a)
		g := mat.NewDense(n, m, nil)
		gd := g.RawMatrix()
		for i := range n {
			row := gd.Data[i*gd.Stride : i*gd.Stride+m]
			for j := range row {
				row[j] = -(cd[i] - cs[j]) * invR3[i*m+j]
			}
		}
		out[k] = g
	}
	return out
}

// GradTensor returns, for every requested pair (a, b), the matrix
// ∂²(1/R)/∂a∂b evaluated at the data points:
// (3·Δa·Δb - δab·R²)/R⁵ with Δ = data - source.
func GradTensor(data, sources geom.Points, r2 *mat.Dense, pairs ...Pair) []*mat.Dense {
	n, m := r2.Dims()
	out := make([]*mat.Dense, len(pairs))

	invR5 := make([]float64, n*m)
	raw := r2.RawMatrix()
	for i := range n {
		for j := range m {
			v := raw.Data[i*raw.Stride+j]
			invR5[i*m+j] = 1 / (v * v * math.Sqrt(v))
		}
	}

	for k, pair := range pairs {
		a, b := pair.axes()
		ad, as := coords(data, a), coords(sources, a)
		bd, bs := coords(data, b), coords(sources, b)
		diagonal := a == b

		g := mat.NewDense(n, m, nil)
		gd := g.RawMatrix()
		for i := range n {
			row := gd.Data[i*gd.Stride : i*gd.Stride+m]
			for j := range row {
				v := 3 * (ad[i] - as[j]) * (bd[i] - bs[j])
				if diagonal {
					v -= raw.Data[i*raw.Stride+j]
				}
				row[j] = v * invR5[i*m+j]
			}
		}
		out[k] = g
	}
	return out
}
