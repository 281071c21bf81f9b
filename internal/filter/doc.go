// Package filter implements convolution filtering of plain pixel formats.
//
// A [Mask] is a small odd-sized matrix of float weights. Filtering runs the
// mask over every depth slice, clamping sample coordinates at the edges, and
// leaves the alpha channel of every pixel untouched. Kernels are dispatched
// by format only; the mask is data.
package filter
