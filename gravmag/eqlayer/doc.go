// Package eqlayer estimates the physical property of an equivalent layer: a
// plane of point sources below the survey whose combined field reproduces
// the observed potential-field data.
//
// # Kernels
//
// [KernelDipoles] builds the N×M sensitivity matrix of a layer of dipoles
// for the potential, the x, y and z components, or the total-field anomaly.
// [KernelMonopoles] does the same for point masses. On a regular grid with a
// source under every datum, [KernelDipolesBTTB] describes the kernel as BTTB
// metadata computed from four kernel columns.
//
// # Solvers
//
// All solvers return a [Result] holding the parameters, the convergence
// trace and why the run stopped. Reaching the iteration cap is a normal
// outcome reported as [StatusMaxIterations].
//
//   - [CGLS] solves one or more datasets jointly with the conjugate gradient
//     method on the normal equations.
//   - [ColumnActionC92] corrects one parameter per iteration, the one under
//     the largest residual (Cordell, 1992).
//   - [IterativeSOB17] adds a fixed multiple of the residuals to every
//     parameter (Siqueira, Oliveira and Barbosa, 2017).
//   - [DeconvolutionTOB20] runs CGLS with kernel products evaluated by 2-D
//     FFT convolution (Takahashi, Oliveira and Barbosa, 2020), for grids too
//     large for a dense kernel.
//
// # Validation
//
// Inputs are validated on entry and failures wrap [ErrInvalidArgument].
// [WithValidation](false) skips shape checks for inputs already validated by
// the caller; the stopping parameters are always checked. A data surface
// reaching the layer is not an error: [ErrLayerAboveData] is logged through
// the configured logger instead.
package eqlayer
