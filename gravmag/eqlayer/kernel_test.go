package eqlayer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/geom"
)

var (
	testData = [3][]float64{
		{0.1, -1.3, 2.2},
		{0.4, 1.1, -0.7},
		{-0.5, -0.2, 0},
	}
	testSources = [3][]float64{
		{0, 1.5, -1, 2},
		{0.3, -0.8, 1.2, 0},
		{1.2, 1.5, 2.1, 1.8},
	}
)

func testGeometry(t *testing.T) (data, sources geom.Points) {
	return mustPoints(t, testData[0], testData[1], testData[2]),
		mustPoints(t, testSources[0], testSources[1], testSources[2])
}

// shiftedData moves every data point by h along dir.
func shiftedData(t *testing.T, dir geom.Direction, h float64) geom.Points {
	x := make([]float64, len(testData[0]))
	y := make([]float64, len(x))
	z := make([]float64, len(x))
	for i := range x {
		x[i] = testData[0][i] + h*dir[0]
		y[i] = testData[1][i] + h*dir[1]
		z[i] = testData[2][i] + h*dir[2]
	}
	return mustPoints(t, x, y, z)
}

func TestKernelPotentialIsNegativeDirectionalDerivative(t *testing.T) {
	const h = 1e-5
	data, sources := testGeometry(t)

	for _, dir := range [][2]float64{{90, 0}, {-35, 12}, {20, -120}} {
		inc, dec := dir[0], dir[1]
		g, err := KernelDipoles(data, sources, inc, dec, FieldPotential)
		require.NoError(t, err)

		u := geom.UnitVector(inc, dec)
		plus, err := KernelMonopoles(shiftedData(t, u, h), sources, []Field{FieldPotential})
		require.NoError(t, err)
		minus, err := KernelMonopoles(shiftedData(t, u, -h), sources, []Field{FieldPotential})
		require.NoError(t, err)

		var want mat.Dense
		want.Sub(plus[0], minus[0])
		want.Scale(-1/(2*h), &want)
		assert.True(t, mat.EqualApprox(g, &want, 1e-7), "inc=%v dec=%v", inc, dec)
	}
}

func TestKernelVectorComponentsAreNegativePotentialGradient(t *testing.T) {
	const h = 1e-5
	const inc, dec = 37, -18
	data, sources := testGeometry(t)

	axes := map[Field]geom.Direction{
		FieldX: {1, 0, 0},
		FieldY: {0, 1, 0},
		FieldZ: {0, 0, 1},
	}
	for field, axis := range axes {
		t.Run(field.String(), func(t *testing.T) {
			g, err := KernelDipoles(data, sources, inc, dec, field)
			require.NoError(t, err)

			plus, err := KernelDipoles(shiftedData(t, axis, h), sources, inc, dec, FieldPotential)
			require.NoError(t, err)
			minus, err := KernelDipoles(shiftedData(t, axis, -h), sources, inc, dec, FieldPotential)
			require.NoError(t, err)

			var want mat.Dense
			want.Sub(plus, minus)
			want.Scale(-1/(2*h), &want)
			assert.True(t, mat.EqualApprox(g, &want, 1e-6))
		})
	}
}

func TestKernelTotalFieldProjectsVectorComponents(t *testing.T) {
	const inc, dec = 52, 14
	const inct, dect = -21, 63
	data, sources := testGeometry(t)

	g, err := KernelDipoles(data, sources, inc, dec, FieldT, WithMainField(inct, dect))
	require.NoError(t, err)

	tdir := geom.UnitVector(inct, dect)
	n, m := g.Dims()
	want := mat.NewDense(n, m, nil)
	for i, f := range []Field{FieldX, FieldY, FieldZ} {
		gi, err := KernelDipoles(data, sources, inc, dec, f)
		require.NoError(t, err)
		var scaled mat.Dense
		scaled.Scale(tdir[i], gi)
		want.Add(want, &scaled)
	}
	assert.True(t, mat.EqualApprox(g, want, 1e-10))
}

func TestKernelMonopoles(t *testing.T) {
	data, sources := testGeometry(t)
	fields := []Field{FieldPotential, FieldZ, FieldXX, FieldYY, FieldZZ, FieldXY}

	gs, err := KernelMonopoles(data, sources, fields)
	require.NoError(t, err)
	require.Len(t, gs, len(fields))

	x, y, z := data.At(1)
	sx, sy, sz := sources.At(2)
	r := math.Sqrt((x-sx)*(x-sx) + (y-sy)*(y-sy) + (z-sz)*(z-sz))
	assert.InDelta(t, 1/r, gs[0].At(1, 2), 1e-14)
	assert.InDelta(t, -(z-sz)/(r*r*r), gs[1].At(1, 2), 1e-14)

	// 1/R is harmonic
	var trace mat.Dense
	trace.Add(gs[2], gs[3])
	trace.Add(&trace, gs[4])
	assert.True(t, mat.EqualApprox(&trace, mat.NewDense(3, 4, nil), 1e-12))
}

func TestKernelInvalidArguments(t *testing.T) {
	data, sources := testGeometry(t)

	tests := []struct {
		name string
		run  func() error
	}{
		{"t without main field", func() error {
			_, err := KernelDipoles(data, sources, 10, 10, FieldT)
			return err
		}},
		{"tensor field for dipoles", func() error {
			_, err := KernelDipoles(data, sources, 10, 10, FieldXY)
			return err
		}},
		{"unknown field", func() error {
			_, err := KernelDipoles(data, sources, 10, 10, Field(42))
			return err
		}},
		{"NaN inclination", func() error {
			_, err := KernelDipoles(data, sources, math.NaN(), 10, FieldZ)
			return err
		}},
		{"infinite main field", func() error {
			_, err := KernelDipoles(data, sources, 10, 10, FieldT, WithMainField(math.Inf(1), 0))
			return err
		}},
		{"empty data", func() error {
			_, err := KernelDipoles(geom.Points{}, sources, 10, 10, FieldZ)
			return err
		}},
		{"t for monopoles", func() error {
			_, err := KernelMonopoles(data, sources, []Field{FieldT})
			return err
		}},
		{"no monopole fields", func() error {
			_, err := KernelMonopoles(data, sources, nil)
			return err
		}},
		{"parse field", func() error {
			_, err := ParseField("gz")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.run(), ErrInvalidArgument)
		})
	}
}

func TestKernelWarnsWhenLayerIsAboveData(t *testing.T) {
	data, sources := testGeometry(t)

	logger, buf := bufferLogger()
	_, err := KernelDipoles(data, sources, 90, 0, FieldZ, WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	// swapping the roles puts the layer above the data
	_, err = KernelDipoles(sources, data, 90, 0, FieldZ, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), ErrLayerAboveData.Error())

	buf.Reset()
	_, err = KernelMonopoles(sources, data, []Field{FieldZ}, WithLogger(logger), WithValidation(false))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestFieldStrings(t *testing.T) {
	for f := FieldPotential; f <= FieldZZ; f++ {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	assert.Equal(t, "Field(11)", Field(11).String())
}
