// Package filter provides the numeric kernels behind displaylist color and
// blur filters:
//   - 4x5 color matrices (identity, inversion, saturation, opacity), their
//     composition and evaluation
//   - Gaussian blur extents derived from sigma
//
// Everything here operates on plain float64 arrays so the root package can
// wrap it without import cycles.
package filter
