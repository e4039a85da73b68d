package idist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/geom"
)

func testPoints(t *testing.T) (data, sources geom.Points) {
	t.Helper()

	data, err := geom.NewPoints(
		[]float64{0, 1.5, -2, 0.3},
		[]float64{0, -0.5, 1, 2.2},
		[]float64{-1, -1.2, -0.8, -1},
	)
	require.NoError(t, err)

	sources, err = geom.NewPoints(
		[]float64{0.2, -1, 3},
		[]float64{0.1, 0.7, -2},
		[]float64{4, 5, 3.5},
	)
	require.NoError(t, err)
	return data, sources
}

func shift(t *testing.T, p geom.Points, a Axis, h float64) geom.Points {
	t.Helper()

	x := append([]float64(nil), p.X()...)
	y := append([]float64(nil), p.Y()...)
	z := append([]float64(nil), p.Z()...)
	for i := range x {
		switch a {
		case AxisX:
			x[i] += h
		case AxisY:
			y[i] += h
		case AxisZ:
			z[i] += h
		}
	}
	out, err := geom.NewPoints(x, y, z)
	require.NoError(t, err)
	return out
}

func centralDifference(t *testing.T, f func(geom.Points) *mat.Dense, data geom.Points, a Axis) *mat.Dense {
	t.Helper()

	const h = 1e-5
	plus := f(shift(t, data, a, h))
	minus := f(shift(t, data, a, -h))

	var out mat.Dense
	out.Sub(plus, minus)
	out.Scale(1/(2*h), &out)
	return &out
}

func TestSEDM(t *testing.T) {
	data, sources := testPoints(t)
	r2 := SEDM(data, sources)

	n, m := r2.Dims()
	require.Equal(t, 4, n)
	require.Equal(t, 3, m)

	// (0,0,-1) to (0.2,0.1,4)
	assert.InDelta(t, 0.04+0.01+25, r2.At(0, 0), 1e-12)
}

func TestGradMatchesFiniteDifference(t *testing.T) {
	data, sources := testPoints(t)
	r2 := SEDM(data, sources)
	inv := func(d geom.Points) *mat.Dense { return InverseDistance(SEDM(d, sources)) }

	grads := Grad(data, sources, r2, AxisX, AxisY, AxisZ)
	for k, a := range []Axis{AxisX, AxisY, AxisZ} {
		t.Run(a.String(), func(t *testing.T) {
			want := centralDifference(t, inv, data, a)
			assert.InDeltaSlice(t, want.RawMatrix().Data, grads[k].RawMatrix().Data, 1e-9)
		})
	}
}

func TestGradTensorMatchesFiniteDifference(t *testing.T) {
	data, sources := testPoints(t)
	r2 := SEDM(data, sources)

	pairs := []Pair{PairXX, PairXY, PairXZ, PairYY, PairYZ, PairZZ}
	tensor := GradTensor(data, sources, r2, pairs...)

	for k, pair := range pairs {
		t.Run(pair.String(), func(t *testing.T) {
			a, b := pair.axes()
			gradB := func(d geom.Points) *mat.Dense { return Grad(d, sources, SEDM(d, sources), b)[0] }
			want := centralDifference(t, gradB, data, a)
			assert.InDeltaSlice(t, want.RawMatrix().Data, tensor[k].RawMatrix().Data, 1e-8)
		})
	}
}

func TestGradTensorIsTraceless(t *testing.T) {
	data, sources := testPoints(t)
	r2 := SEDM(data, sources)
	d := GradTensor(data, sources, r2, PairXX, PairYY, PairZZ)

	var trace mat.Dense
	trace.Add(d[0], d[1])
	trace.Add(&trace, d[2])
	for _, v := range trace.RawMatrix().Data {
		assert.InDelta(t, 0, v, 1e-15)
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "z", AxisZ.String())
	assert.Equal(t, "yz", PairYZ.String())
	assert.Equal(t, "Axis(7)", Axis(7).String())
}
