// Package bitmap is a software raster engine.
//
// A [Bitmap] owns a pixel buffer laid out by its [format.Format] and, for
// indexed formats, a shared [Palette]. Bitmaps are never converted
// implicitly: every transform is an explicit call that returns a new Bitmap
// and leaves its input untouched.
//
// # Engines
//
// The package exposes four engines, each backed by a dispatch table that is
// built once on first use:
//
//   - [Reformat] re-encodes pixels between formats, including palette
//     quantization, chroma subsampling and ETC1 block coding.
//   - [Resize] resamples with nearest, bilinear, bicubic or Lanczos kernels.
//   - [Filter] convolves with a [Mask]; alpha is never filtered.
//   - [BinaryOperation] and [UnaryOperation] run per-pixel arithmetic.
//
// Histograms ([GenerateHistogram], [Histogram.Equalize], [ApplyHistogram])
// and a few structural helpers ([Crop], [FlipHorizontal], [SplitRGB],
// [DetermineProperties]) complete the set.
//
// # Lifetime
//
// Bitmaps and palettes are reference counted. [New] returns a bitmap with one
// reference; [Bitmap.Release] drops it and returns the pixel buffer to an
// internal pool once the last reference is gone. Reformatting to the same
// format returns the source with an extra reference instead of a copy.
//
// # Access
//
// Direct access to the pixel buffer is scoped by [Bitmap.Lock]:
//
//	px, err := b.Lock()
//	if err != nil {
//		return err
//	}
//	defer px.Unlock()
//	plane := px.Plane(0)
//
// Only one lock may be outstanding; a second Lock fails with [ErrLocked].
//
// # Logging
//
// The package is silent by default. Route diagnostics to any [log/slog]
// handler with [SetLogger].
//
// Decoding and encoding of container formats lives in the codec sub-package.
package bitmap
