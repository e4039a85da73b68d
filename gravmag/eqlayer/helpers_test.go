package eqlayer

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/gravmag/geom"
	"github.com/cwbudde/algo-gravmag/internal/testutil"
)

const layerDepth = 0.5

// layerProblem is a Q×P unit-spaced grid at z = 0 over a layer at
// layerDepth, with data generated from known parameters. With vertical
// magnetization the z kernel is symmetric and diagonally dominant.
type layerProblem struct {
	grid   geom.Grid
	kernel *mat.Dense
	params []float64
	data   []float64
}

func newLayerProblem(t testing.TB, q, p int, field Field) layerProblem {
	t.Helper()

	grid, err := geom.NewGrid([4]float64{0, float64(q - 1), 0, float64(p - 1)}, [2]int{q, p}, 0)
	require.NoError(t, err)

	g, err := KernelDipoles(grid.Points(), grid.AtDepth(layerDepth).Points(), 90, 0, field, WithLogger(nil))
	require.NoError(t, err)

	params := testutil.DeterministicNoise(int64(q*p), 1, q*p)
	for i := range params {
		params[i]++
	}
	data := make([]float64, q*p)
	NewDenseOperator(g).MulVecTo(data, params)

	return layerProblem{grid: grid, kernel: g, params: params, data: data}
}

func mustPoints(t testing.TB, x, y, z []float64) geom.Points {
	t.Helper()
	pts, err := geom.NewPoints(x, y, z)
	require.NoError(t, err)
	return pts
}

func bufferLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.New(&buf, "", 0), &buf
}
