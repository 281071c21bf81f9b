// Package codec connects bitmaps to container formats.
//
// A [Registry] holds an ordered list of decoder probes and a set of encoders
// keyed by [Kind]. [Registry.Detect] rewinds the stream before every probe
// and returns the result of the first one that succeeds. [Default] returns a
// registry preloaded with the native BMPZ container and the PNG, JPEG, GIF,
// BMP, TIFF and WebP codecs.
//
// Encoder options form a tagged union: every options struct starts with an
// [OptionsHeader] whose Size must equal the size of the concrete struct.
// Always obtain options from their constructor:
//
//	opts := codec.NewPNGOptions()
//	opts.Compression = png.BestCompression
//	err := codec.Default().Encode(w, arr, opts)
package codec
