// Package bttb describes Block-Toeplitz-Toeplitz-Block (BTTB) matrices by
// their generating columns and rows, without materialising them.
//
// A BTTB matrix with Q blocks per block-row and P×P Toeplitz blocks is
// defined by the blocks T(k), k = -(Q-1)..Q-1, where block (i, j) equals
// T(i-j). Each block is itself defined by its entries t(l), l = -(P-1)..P-1,
// with entry (a, b) equal to t(a-b).
//
// The Structure symmetry describes how T(-k) relates to T(k) and the Blocks
// symmetry describes how t(-l) relates to t(l):
//
//   - Symmetric: T(-k) = T(k), t(-l) = t(l)
//   - SkewSymmetric: T(-k) = -T(k), t(-l) = -t(l) for k, l > 0
//   - General: both sides are stored explicitly
//
// Columns holds the first column of every generating block: Q of them for a
// symmetric or skew-symmetric structure, and 2Q-1 for a general structure,
// ordered T(0), T(1), ..., T(Q-1), T(-1), ..., T(-(Q-1)). Rows is only used
// for General blocks and holds, for every generating block, its first row
// without the diagonal element (P-1 values).
package bttb

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-gravmag/internal/check"
)

// ErrInvalidArgument is returned for malformed metadata.
var ErrInvalidArgument = check.ErrInvalidArgument

// Symmetry classifies how the negative-offset half of a Toeplitz structure
// relates to the positive-offset half.
type Symmetry int

const (
	Symmetric Symmetry = iota
	SkewSymmetric
	General
)

// String returns the short names used across the gravmag tooling.
func (s Symmetry) String() string {
	switch s {
	case Symmetric:
		return "symm"
	case SkewSymmetric:
		return "skew"
	case General:
		return "gene"
	default:
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}
}

// ParseSymmetry converts "symm", "skew" or "gene" into a Symmetry.
func ParseSymmetry(s string) (Symmetry, error) {
	switch s {
	case "symm":
		return Symmetric, nil
	case "skew":
		return SkewSymmetric, nil
	case "gene":
		return General, nil
	default:
		return 0, check.Invalidf("unknown symmetry %q", s)
	}
}

func (s Symmetry) valid() bool {
	return s == Symmetric || s == SkewSymmetric || s == General
}

// Metadata is the generating description of a BTTB matrix.
type Metadata struct {
	Structure Symmetry
	Blocks    Symmetry
	NBlocks   int
	Columns   [][]float64
	Rows      [][]float64
}

// BlockSize returns P, the order of every Toeplitz block.
func (m Metadata) BlockSize() int {
	if len(m.Columns) == 0 {
		return 0
	}
	return len(m.Columns[0])
}

// Validate reports whether the metadata is consistent with its symmetry classes.
func (m Metadata) Validate() error {
	if !m.Structure.valid() {
		return check.Invalidf("invalid structure symmetry %v", m.Structure)
	}
	if !m.Blocks.valid() {
		return check.Invalidf("invalid block symmetry %v", m.Blocks)
	}
	if err := check.PositiveInt("nblocks", m.NBlocks); err != nil {
		return err
	}

	ncols := m.NBlocks
	if m.Structure == General {
		ncols = 2*m.NBlocks - 1
	}
	if len(m.Columns) != ncols {
		return check.Invalidf("%s structure with %d blocks needs %d columns, got %d",
			m.Structure, m.NBlocks, ncols, len(m.Columns))
	}

	p := m.BlockSize()
	if p == 0 {
		return check.Invalidf("columns must not be empty")
	}
	for i, c := range m.Columns {
		if len(c) != p {
			return check.Invalidf("column %d has %d elements, want %d", i, len(c), p)
		}
	}

	if m.Blocks != General {
		if m.Rows != nil {
			return check.Invalidf("rows must be nil for %s blocks", m.Blocks)
		}
		return nil
	}
	if len(m.Rows) != ncols {
		return check.Invalidf("gene blocks need %d rows, got %d", ncols, len(m.Rows))
	}
	for i, r := range m.Rows {
		if len(r) != p-1 {
			return check.Invalidf("row %d has %d elements, want %d", i, len(r), p-1)
		}
	}
	return nil
}

// Transposed returns the metadata of the transposed matrix. It never
// materialises the matrix and transposing twice yields the original
// metadata.
//
// The transpose satisfies T'(k) = T(-k)ᵀ, so symmetric structures keep their
// blocks, skew-symmetric structures negate every off-diagonal block and
// general structures swap T(k) with T(-k). Each block is then transposed:
// symmetric blocks are unchanged, skew-symmetric blocks negate their
// off-diagonal entries and general blocks swap their column and row.
func (m Metadata) Transposed() Metadata {
	out := Metadata{
		Structure: m.Structure,
		Blocks:    m.Blocks,
		NBlocks:   m.NBlocks,
		Columns:   make([][]float64, len(m.Columns)),
	}
	if m.Blocks == General {
		out.Rows = make([][]float64, len(m.Rows))
	}

	for k := range m.Columns {
		src := k
		sign := 1.0
		switch m.Structure {
		case SkewSymmetric:
			if k > 0 {
				sign = -1
			}
		case General:
			if k > 0 {
				// T(k) at index k swaps with T(-k) at index NBlocks-1+k
				if k < m.NBlocks {
					src = m.NBlocks - 1 + k
				} else {
					src = k - (m.NBlocks - 1)
				}
			}
		}

		var row []float64
		if m.Rows != nil {
			row = m.Rows[src]
		}
		col, newRow := transposeBlock(m.Blocks, m.Columns[src], row)
		if sign < 0 {
			negate(col)
			negate(newRow)
		}
		out.Columns[k] = col
		if out.Rows != nil {
			out.Rows[k] = newRow
		}
	}
	return out
}

func transposeBlock(s Symmetry, col, row []float64) (newCol, newRow []float64) {
	p := len(col)
	switch s {
	case Symmetric:
		return append([]float64(nil), col...), nil
	case SkewSymmetric:
		newCol = make([]float64, p)
		newCol[0] = col[0]
		for i := 1; i < p; i++ {
			newCol[i] = -col[i]
		}
		return newCol, nil
	default:
		newCol = make([]float64, p)
		newCol[0] = col[0]
		copy(newCol[1:], row)
		return newCol, append([]float64(nil), col[1:]...)
	}
}

func negate(x []float64) {
	for i := range x {
		x[i] = -x[i]
	}
}

// block returns the generating column and row of T(k) and the sign applied
// to the block, for k in -(Q-1)..Q-1.
func (m Metadata) block(k int) (col, row []float64, sign float64) {
	idx, sign := k, 1.0
	if k < 0 {
		switch m.Structure {
		case Symmetric:
			idx = -k
		case SkewSymmetric:
			idx, sign = -k, -1
		default:
			idx = m.NBlocks - 1 - k
		}
	}
	if m.Rows != nil {
		row = m.Rows[idx]
	}
	return m.Columns[idx], row, sign
}

// entry returns t(l) of the Toeplitz block generated by col and row.
func (m Metadata) entry(col, row []float64, l int) float64 {
	if l >= 0 {
		return col[l]
	}
	switch m.Blocks {
	case Symmetric:
		return col[-l]
	case SkewSymmetric:
		return -col[-l]
	default:
		return row[-l-1]
	}
}

// Dims returns the dimensions of the described matrix, (Q·P, Q·P).
func (m Metadata) Dims() (r, c int) {
	n := m.NBlocks * m.BlockSize()
	return n, n
}

// At returns the element at row i and column j. The metadata must be valid.
func (m Metadata) At(i, j int) float64 {
	p := m.BlockSize()
	col, row, sign := m.block(i/p - j/p)
	return sign * m.entry(col, row, i%p-j%p)
}

// Dense materialises the matrix.
func (m Metadata) Dense() *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for i := range r {
		for j := range c {
			out.Set(i, j, m.At(i, j))
		}
	}
	return out
}

// BCCBFirstColumn returns the first column, of length 4·Q·P, of the
// Block-Circulant-with-Circulant-Blocks matrix that embeds the BTTB matrix
// in its upper-left quadrant. The column holds 2Q circulant blocks of
// order 2P, block b being the embedding of T(b) for b < Q, zero for b = Q and
// T(b-2Q) otherwise.
func (m Metadata) BCCBFirstColumn() []float64 {
	q, p := m.NBlocks, m.BlockSize()
	c := make([]float64, 4*q*p)

	for b := range 2 * q {
		if b == q {
			continue
		}
		k := b
		if b > q {
			k = b - 2*q
		}
		col, row, sign := m.block(k)

		dst := c[b*2*p : (b+1)*2*p]
		for a := range 2 * p {
			if a == p {
				continue
			}
			l := a
			if a > p {
				l = a - 2*p
			}
			dst[a] = sign * m.entry(col, row, l)
		}
	}
	return c
}

// TranspositionFactor reports whether the matrix equals its transpose
// (factor +1) or its negated transpose (factor -1) within tol. Any other
// matrix fails with ErrInvalidArgument.
func (m Metadata) TranspositionFactor(tol float64) (int, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	t := m.Transposed()

	same, opposite := true, true
	for k := range m.Columns {
		for i := range m.Columns[k] {
			a, b := m.Columns[k][i], t.Columns[k][i]
			same = same && math.Abs(a-b) <= tol
			opposite = opposite && math.Abs(a+b) <= tol
		}
	}
	for k := range m.Rows {
		for i := range m.Rows[k] {
			a, b := m.Rows[k][i], t.Rows[k][i]
			same = same && math.Abs(a-b) <= tol
			opposite = opposite && math.Abs(a+b) <= tol
		}
	}

	switch {
	case same:
		return 1, nil
	case opposite:
		return -1, nil
	default:
		return 0, check.Invalidf("matrix is neither symmetric nor skew-symmetric")
	}
}
