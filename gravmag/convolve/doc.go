// Package convolve computes BTTB matrix-vector products through the
// eigenvalues of their Block-Circulant-with-Circulant-Blocks (BCCB)
// embedding.
//
// A Q×P grid of layer sources under a Q×P grid of data produces a BTTB
// kernel of order Q·P. Embedding it in a BCCB matrix of order 4·Q·P turns the
// product into a 2-D circular convolution, evaluated with two 2-D FFTs of a
// 2Q×2P grid instead of a dense Q·P×Q·P product.
//
// # Usage
//
// Compute the eigenvalues once from the BTTB metadata:
//
//	L, err := convolve.EigenvaluesBCCB(meta, convolve.RowOrdering)
//
// then either run one-shot products:
//
//	w, err := convolve.ProductBCCBVector(L, Q, P, v, convolve.RowOrdering)
//
// or build an [Operator] that reuses its FFT plan and scratch memory across
// products, as the iterative solvers do:
//
//	op, err := convolve.NewOperator(L, Q, P, convolve.RowOrdering, 1)
//	op.MulVecTo(w, v)
//
// # Ordering
//
// RowOrdering lays the Q·P vector entries along the rows of a 2Q×2P grid
// (entry q*P+p at row q, column p) and expects a 2Q×2P eigenvalue matrix.
// ColumnOrdering lays them along the columns of a 2P×2Q grid and expects a
// 2P×2Q eigenvalue matrix. Both give the same product.
package convolve
