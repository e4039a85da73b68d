// Package geom holds the coordinate sets and directions consumed by the
// equivalent-layer kernels.
//
// Coordinates follow the right-handed geophysical convention: x points north,
// y points east and z points down, so deeper points have larger z.
package geom

import (
	"math"

	"github.com/cwbudde/algo-gravmag/internal/check"
)

// Points is an immutable set of 3-D points stored as three equal-length
// coordinate slices. It is validated once, at construction.
type Points struct {
	x, y, z []float64
}

// NewPoints copies x, y and z into a new coordinate set. The slices must be
// non-empty, have equal lengths and contain only finite values.
func NewPoints(x, y, z []float64) (Points, error) {
	if err := check.FiniteSlice("x", x); err != nil {
		return Points{}, err
	}
	if err := check.FiniteSlice("y", y); err != nil {
		return Points{}, err
	}
	if err := check.FiniteSlice("z", z); err != nil {
		return Points{}, err
	}
	if len(x) != len(y) || len(x) != len(z) {
		return Points{}, check.Invalidf("coordinates must have equal lengths, got x=%d y=%d z=%d",
			len(x), len(y), len(z))
	}

	return Points{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
		z: append([]float64(nil), z...),
	}, nil
}

// Len returns the number of points.
func (p Points) Len() int { return len(p.x) }

// X returns the x coordinates. The slice must not be modified.
func (p Points) X() []float64 { return p.x }

// Y returns the y coordinates. The slice must not be modified.
func (p Points) Y() []float64 { return p.y }

// Z returns the z coordinates. The slice must not be modified.
func (p Points) Z() []float64 { return p.z }

// At returns the coordinates of point i.
func (p Points) At(i int) (x, y, z float64) {
	return p.x[i], p.y[i], p.z[i]
}

// ZRange returns the shallowest and deepest z.
func (p Points) ZRange() (zmin, zmax float64) {
	zmin, zmax = math.Inf(1), math.Inf(-1)
	for _, v := range p.z {
		zmin = math.Min(zmin, v)
		zmax = math.Max(zmax, v)
	}
	return zmin, zmax
}

// Subset returns a new set holding the points at the given indices, in order.
func (p Points) Subset(indices ...int) Points {
	out := Points{
		x: make([]float64, len(indices)),
		y: make([]float64, len(indices)),
		z: make([]float64, len(indices)),
	}
	for k, i := range indices {
		out.x[k], out.y[k], out.z[k] = p.x[i], p.y[i], p.z[i]
	}
	return out
}

// Shifted returns a copy with every z moved by dz.
func (p Points) Shifted(dz float64) Points {
	out := Points{
		x: append([]float64(nil), p.x...),
		y: append([]float64(nil), p.y...),
		z: make([]float64, len(p.z)),
	}
	for i, v := range p.z {
		out.z[i] = v + dz
	}
	return out
}

// Direction is a unit vector in the x-north, y-east, z-down frame.
type Direction [3]float64

// UnitVector returns the unit vector with inclination inc and declination dec,
// both in degrees. Inclination is positive below the horizontal plane and
// declination is measured clockwise from north.
func UnitVector(inc, dec float64) Direction {
	incRad := inc * math.Pi / 180
	decRad := dec * math.Pi / 180
	cosInc := math.Cos(incRad)

	return Direction{
		cosInc * math.Cos(decRad),
		cosInc * math.Sin(decRad),
		math.Sin(incRad),
	}
}
