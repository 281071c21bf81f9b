package bitmap

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"github.com/gogpu/bitmap/internal/convert"
)

// MaxPaletteEntries is the capacity of a palette.
const MaxPaletteEntries = 256

// Palette is a reference-counted color table of up to 256 entries, each
// packed as B, G, R for 24-bit palettes or B, G, R, A for 32-bit ones.
//
// A Palette is immutable once created, which lets one table be shared by
// every level of an indexed mip chain.
type Palette struct {
	raw  convert.Palette
	refs atomic.Int32
}

// NewPalette creates a palette from packed entries. bpp must be 24 or 32 and
// len(entries) a multiple of bpp/8 describing at most 256 entries. The
// entries are copied.
func NewPalette(bpp int, entries []byte) (*Palette, error) {
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("bitmap: palette bpp %d: %w", bpp, ErrInvalidArgs)
	}
	n := bpp / 8
	if len(entries)%n != 0 || len(entries)/n > MaxPaletteEntries {
		return nil, fmt.Errorf("bitmap: palette of %d bytes at %d bpp: %w", len(entries), bpp, ErrInvalidArgs)
	}
	return newPalette(bpp, append([]byte(nil), entries...)), nil
}

// NewPaletteFromColors creates a 32-bit palette from a color.Palette.
func NewPaletteFromColors(colors color.Palette) (*Palette, error) {
	if len(colors) > MaxPaletteEntries {
		return nil, fmt.Errorf("bitmap: palette of %d colors: %w", len(colors), ErrInvalidArgs)
	}
	entries := make([]byte, 0, len(colors)*4)
	for _, c := range colors {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		entries = append(entries, nc.B, nc.G, nc.R, nc.A)
	}
	return newPalette(32, entries), nil
}

func newPalette(bpp int, entries []byte) *Palette {
	p := &Palette{raw: convert.Palette{BPP: bpp, Entries: entries}}
	p.refs.Store(1)
	return p
}

// Retain adds a reference and returns p.
func (p *Palette) Retain() *Palette {
	p.refs.Add(1)
	return p
}

// Release drops a reference. Extra releases are ignored.
func (p *Palette) Release() {
	for {
		n := p.refs.Load()
		if n <= 0 || p.refs.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// Refs returns the current reference count.
func (p *Palette) Refs() int {
	return int(p.refs.Load())
}

// BitsPerPixel returns 24 or 32.
func (p *Palette) BitsPerPixel() int {
	return p.raw.BPP
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return p.raw.Len()
}

// Entries returns a copy of the packed entries.
func (p *Palette) Entries() []byte {
	return append([]byte(nil), p.raw.Entries...)
}

// At returns entry i. Indexes past the end read as transparent black.
func (p *Palette) At(i int) color.NRGBA {
	return p.raw.Color(i)
}

// Colors returns the palette as a color.Palette.
func (p *Palette) Colors() color.Palette {
	return p.raw.Colors()
}

// convert returns a private copy of the raw table for the conversion engine,
// which may replace Entries.
func (p *Palette) convert() *convert.Palette {
	if p == nil {
		return nil
	}
	raw := p.raw
	return &raw
}
