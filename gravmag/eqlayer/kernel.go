package eqlayer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/geom"
	"github.com/cwbudde/algo-gravmag/gravmag/idist"
	"github.com/cwbudde/algo-gravmag/internal/check"
)

// tensorRows lists the gradient-tensor row of each vector component.
var tensorRows = map[Field][3]idist.Pair{
	FieldX: {idist.PairXX, idist.PairXY, idist.PairXZ},
	FieldY: {idist.PairXY, idist.PairYY, idist.PairYZ},
	FieldZ: {idist.PairXZ, idist.PairYZ, idist.PairZZ},
}

// KernelDipoles returns the N×M sensitivity matrix of a layer of M dipoles
// magnetized along (inc, dec) for the given field component at N data
// points. Supported fields are potential, x, y, z and t; t needs the main
// field set with WithMainField.
func KernelDipoles(data, sources geom.Points, inc, dec float64, field Field, opts ...Option) (*mat.Dense, error) {
	cfg := ApplyOptions(opts...)

	if field == FieldT && cfg.MainField == nil {
		return nil, check.Invalidf("field t needs the main-field inclination and declination")
	}
	if cfg.Validate {
		if err := validateLayer(cfg, data, sources); err != nil {
			return nil, err
		}
		if err := check.Finite("inc", inc); err != nil {
			return nil, err
		}
		if err := check.Finite("dec", dec); err != nil {
			return nil, err
		}
		if field == FieldT {
			if err := check.Finite("inct", cfg.MainField.Inc); err != nil {
				return nil, err
			}
			if err := check.Finite("dect", cfg.MainField.Dec); err != nil {
				return nil, err
			}
		}
	}

	u := geom.UnitVector(inc, dec)
	r2 := idist.SEDM(data, sources)

	switch field {
	case FieldPotential:
		g := idist.Grad(data, sources, r2, idist.AxisX, idist.AxisY, idist.AxisZ)
		return combine(g, -u[0], -u[1], -u[2]), nil

	case FieldX, FieldY, FieldZ:
		pairs := tensorRows[field]
		g := idist.GradTensor(data, sources, r2, pairs[:]...)
		return combine(g, u[0], u[1], u[2]), nil

	case FieldT:
		t := geom.UnitVector(cfg.MainField.Inc, cfg.MainField.Dec)
		// Gzz = -(Gxx+Gyy) folds the zz term into the xx and yy coefficients
		axx := u[0]*t[0] - u[2]*t[2]
		axy := u[0]*t[1] + u[1]*t[0]
		axz := u[0]*t[2] + u[2]*t[0]
		ayy := u[1]*t[1] - u[2]*t[2]
		ayz := u[1]*t[2] + u[2]*t[1]
		g := idist.GradTensor(data, sources, r2,
			idist.PairXX, idist.PairXY, idist.PairXZ, idist.PairYY, idist.PairYZ)
		return combine(g, axx, axy, axz, ayy, ayz), nil

	default:
		return nil, check.Invalidf("field %v is not a dipole field", field)
	}
}

// KernelMonopoles returns one N×M sensitivity matrix per requested field for
// a layer of M point masses: 1/R for the potential, its gradient for x, y
// and z, and its gradient tensor for xx through zz.
func KernelMonopoles(data, sources geom.Points, fields []Field, opts ...Option) ([]*mat.Dense, error) {
	cfg := ApplyOptions(opts...)

	if len(fields) == 0 {
		return nil, check.Invalidf("at least one field is required")
	}
	for _, f := range fields {
		if f == FieldT || f < FieldPotential || f > FieldZZ {
			return nil, check.Invalidf("field %v is not a monopole field", f)
		}
	}
	if cfg.Validate {
		if err := validateLayer(cfg, data, sources); err != nil {
			return nil, err
		}
	}

	r2 := idist.SEDM(data, sources)
	out := make([]*mat.Dense, len(fields))
	for i, f := range fields {
		switch f {
		case FieldPotential:
			out[i] = idist.InverseDistance(r2)
		case FieldX:
			out[i] = idist.Grad(data, sources, r2, idist.AxisX)[0]
		case FieldY:
			out[i] = idist.Grad(data, sources, r2, idist.AxisY)[0]
		case FieldZ:
			out[i] = idist.Grad(data, sources, r2, idist.AxisZ)[0]
		default:
			out[i] = idist.GradTensor(data, sources, r2, tensorPair(f))[0]
		}
	}
	return out, nil
}

func tensorPair(f Field) idist.Pair {
	return idist.Pair(f - FieldXX)
}

// validateLayer checks both point sets and logs ErrLayerAboveData when the
// deepest data point is not above the shallowest source.
func validateLayer(cfg Config, data, sources geom.Points) error {
	if data.Len() == 0 {
		return check.Invalidf("data points must not be empty")
	}
	if sources.Len() == 0 {
		return check.Invalidf("source points must not be empty")
	}

	_, zmaxData := data.ZRange()
	zminSources, _ := sources.ZRange()
	if zmaxData >= zminSources {
		cfg.warn(fmt.Errorf("%w: max data z %g, min source z %g", ErrLayerAboveData, zmaxData, zminSources))
	}
	return nil
}

// combine returns Σ coef[i]·g[i]. All matrices share one shape.
func combine(g []*mat.Dense, coef ...float64) *mat.Dense {
	n, m := g[0].Dims()
	out := mat.NewDense(n, m, nil)
	dst := out.RawMatrix().Data
	for i, c := range coef {
		floats.AddScaled(dst, c, g[i].RawMatrix().Data)
	}
	return out
}
