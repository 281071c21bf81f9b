package bitmap

import "maps"

// Option configures a Bitmap during creation.
//
// Example:
//
//	pal, _ := bitmap.NewPalette(32, entries)
//	b, err := bitmap.New(bitmap.Type2D, format.Size2D(16, 16), format.Index8,
//		bitmap.WithPalette(pal), bitmap.WithPixels(indices))
type Option func(*options)

type options struct {
	palette *Palette
	pixels  []byte
	attrs   map[string]any
}

// WithPalette attaches a palette. Required for indexed formats and rejected
// for all others. The bitmap takes its own reference.
func WithPalette(p *Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// WithPixels sets the initial pixel contents. The data is copied and must be
// at least format.TotalSize bytes long.
func WithPixels(data []byte) Option {
	return func(o *options) {
		o.pixels = data
	}
}

// WithAttributes seeds the attribute bag.
func WithAttributes(attrs map[string]any) Option {
	return func(o *options) {
		if o.attrs == nil {
			o.attrs = make(map[string]any, len(attrs))
		}
		maps.Copy(o.attrs, attrs)
	}
}

// ReformatOption configures Reformat.
type ReformatOption func(*reformatOptions)

type reformatOptions struct {
	palette    *Palette
	paletteBPP int
}

func defaultReformatOptions() reformatOptions {
	return reformatOptions{paletteBPP: 32}
}

// WithTargetPalette maps pixels onto a fixed palette instead of quantizing a
// new one. Only meaningful when the target format is indexed; the result
// shares p.
func WithTargetPalette(p *Palette) ReformatOption {
	return func(o *reformatOptions) {
		o.palette = p
	}
}

// WithPaletteBPP selects the entry size (24 or 32) of a generated palette.
// The default is 32.
func WithPaletteBPP(bpp int) ReformatOption {
	return func(o *reformatOptions) {
		o.paletteBPP = bpp
	}
}
