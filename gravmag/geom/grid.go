package geom

import (
	"github.com/cwbudde/algo-gravmag/internal/check"
)

// Grid is a regular horizontal grid of Q×P points at constant depth Z.
//
// Q counts the grid lines along x and P the lines along y. Point k = q*P + p
// sits at (X0 + q*DX, Y0 + p*DY, Z): y varies fastest. This is the ordering
// under which the kernel of a layer placed under the grid is a BTTB matrix
// with Q blocks of size P.
type Grid struct {
	X0, DX float64
	Y0, DY float64
	Z      float64
	Q, P   int
}

// NewGrid builds the grid spanning area = [xmin, xmax, ymin, ymax] with
// shape = [Q, P] lines at depth z. A single line along an axis sits at the
// lower bound of that axis.
func NewGrid(area [4]float64, shape [2]int, z float64) (Grid, error) {
	for i, v := range area {
		if err := check.Finite("area", v); err != nil {
			return Grid{}, check.Invalidf("area[%d] is not finite", i)
		}
	}
	if area[0] > area[1] || area[2] > area[3] {
		return Grid{}, check.Invalidf("area must be [xmin, xmax, ymin, ymax], got %v", area)
	}
	if err := check.PositiveInt("Q", shape[0]); err != nil {
		return Grid{}, err
	}
	if err := check.PositiveInt("P", shape[1]); err != nil {
		return Grid{}, err
	}
	if err := check.Finite("z", z); err != nil {
		return Grid{}, err
	}

	g := Grid{X0: area[0], Y0: area[2], Z: z, Q: shape[0], P: shape[1]}
	if g.Q > 1 {
		g.DX = (area[1] - area[0]) / float64(g.Q-1)
	}
	if g.P > 1 {
		g.DY = (area[3] - area[2]) / float64(g.P-1)
	}
	return g, nil
}

// Len returns Q*P.
func (g Grid) Len() int { return g.Q * g.P }

// Points materialises the grid in its q*P + p ordering.
func (g Grid) Points() Points {
	n := g.Len()
	pts := Points{
		x: make([]float64, n),
		y: make([]float64, n),
		z: make([]float64, n),
	}
	for q := range g.Q {
		for p := range g.P {
			k := q*g.P + p
			pts.x[k] = g.X0 + float64(q)*g.DX
			pts.y[k] = g.Y0 + float64(p)*g.DY
			pts.z[k] = g.Z
		}
	}
	return pts
}

// AtDepth returns the same grid moved to depth z.
func (g Grid) AtDepth(z float64) Grid {
	g.Z = z
	return g
}
