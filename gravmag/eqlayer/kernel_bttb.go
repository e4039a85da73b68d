package eqlayer

import (
	"github.com/cwbudde/algo-gravmag/gravmag/bttb"
	"github.com/cwbudde/algo-gravmag/gravmag/geom"
	"github.com/cwbudde/algo-gravmag/internal/check"
)

// KernelDipolesBTTB describes the dipole kernel of a layer at depth zLayer
// with one source under every point of grid as general BTTB metadata.
//
// The kernel of a regular grid depends only on the horizontal offset between
// data and source, so four of its columns generate it: the sources at the
// corners of the grid. The result feeds convolve.EigenvaluesBCCB without ever
// materialising the Q·P×Q·P matrix.
func KernelDipolesBTTB(grid geom.Grid, zLayer, inc, dec float64, field Field, opts ...Option) (bttb.Metadata, error) {
	cfg := ApplyOptions(opts...)
	if cfg.Validate {
		if err := check.PositiveInt("Q", grid.Q); err != nil {
			return bttb.Metadata{}, err
		}
		if err := check.PositiveInt("P", grid.P); err != nil {
			return bttb.Metadata{}, err
		}
		if err := check.Finite("zLayer", zLayer); err != nil {
			return bttb.Metadata{}, err
		}
	}

	q, p := grid.Q, grid.P
	a, b := 0, p-1
	c, d := (q-1)*p, q*p-1

	data := grid.Points()
	corners := grid.AtDepth(zLayer).Points().Subset(a, b, c, d)
	g, err := KernelDipoles(data, corners, inc, dec, field, opts...)
	if err != nil {
		return bttb.Metadata{}, err
	}

	meta := bttb.Metadata{
		Structure: bttb.General,
		Blocks:    bttb.General,
		NBlocks:   q,
		Columns:   make([][]float64, 2*q-1),
		Rows:      make([][]float64, 2*q-1),
	}

	// T(k) is the block at block-row k of block-column 0, and T(-k) the block
	// at block-row Q-1-k of block-column Q-1.
	for k := range q {
		meta.Columns[k], meta.Rows[k] = generators(g.At, k*p, p, 0, 1)
		if k > 0 {
			meta.Columns[q-1+k], meta.Rows[q-1+k] = generators(g.At, (q-1-k)*p, p, 2, 3)
		}
	}
	return meta, nil
}

// generators reads the first column of a Toeplitz block starting at row off
// from kernel column first, and its first row, diagonal excluded, from
// kernel column last, whose source sits at the last position of its block.
func generators(at func(i, j int) float64, off, p, first, last int) (col, row []float64) {
	col = make([]float64, p)
	row = make([]float64, p-1)
	for j := range p {
		col[j] = at(off+j, first)
	}
	for l := 1; l < p; l++ {
		row[l-1] = at(off+p-1-l, last)
	}
	return col, row
}
