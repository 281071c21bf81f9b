package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/format"
)

// ArrayKind tells how the bitmaps of an Array relate.
type ArrayKind uint8

const (
	// ArrayFrames is an ordered frame sequence, such as an animation.
	ArrayFrames ArrayKind = iota
	// ArrayMipChain is a mip chain: index 0 is the base level and level i
	// has size format.MipSize(i, base).
	ArrayMipChain
)

func (k ArrayKind) String() string {
	switch k {
	case ArrayFrames:
		return "Frames"
	case ArrayMipChain:
		return "MipChain"
	}
	return "Unknown"
}

// Array is an ordered sequence of bitmaps.
type Array struct {
	kind  ArrayKind
	items []*Bitmap
}

// NewArray creates an array holding a new reference to each bitmap.
//
// It fails with ErrInvalidArgs for an empty list, a nil or released bitmap,
// an unknown kind, or a mip chain whose levels differ in type or format or
// do not follow format.MipSize.
func NewArray(kind ArrayKind, bitmaps ...*Bitmap) (*Array, error) {
	if err := validateArray(kind, bitmaps); err != nil {
		return nil, err
	}
	items := make([]*Bitmap, len(bitmaps))
	for i, b := range bitmaps {
		items[i] = b.Retain()
	}
	return &Array{kind: kind, items: items}, nil
}

// adoptArray builds an array that takes over the callers' references.
func adoptArray(kind ArrayKind, bitmaps []*Bitmap) (*Array, error) {
	if err := validateArray(kind, bitmaps); err != nil {
		return nil, err
	}
	return &Array{kind: kind, items: bitmaps}, nil
}

func validateArray(kind ArrayKind, bitmaps []*Bitmap) error {
	if kind != ArrayFrames && kind != ArrayMipChain {
		return fmt.Errorf("bitmap: array kind %d: %w", kind, ErrInvalidArgs)
	}
	if len(bitmaps) == 0 {
		return fmt.Errorf("bitmap: empty array: %w", ErrInvalidArgs)
	}
	for i, b := range bitmaps {
		if b == nil || b.released() {
			return fmt.Errorf("bitmap: array element %d missing: %w", i, ErrInvalidArgs)
		}
	}
	if kind != ArrayMipChain {
		return nil
	}

	base := bitmaps[0]
	cube := base.typ == TypeCube
	if len(bitmaps) > format.MaxMipLevels(base.size, cube) {
		return fmt.Errorf("bitmap: %d mip levels for %v: %w", len(bitmaps), base.size, ErrInvalidArgs)
	}
	for i, b := range bitmaps[1:] {
		level := i + 1
		if b.typ != base.typ || b.format != base.format {
			return fmt.Errorf("bitmap: mip level %d is %v %v, base is %v %v: %w",
				level, b.typ, b.format, base.typ, base.format, ErrInvalidArgs)
		}
		if want := format.MipSize(level, base.size, cube); b.size != want {
			return fmt.Errorf("bitmap: mip level %d is %v, want %v: %w", level, b.size, want, ErrInvalidArgs)
		}
	}
	return nil
}

// Kind returns the array kind.
func (a *Array) Kind() ArrayKind { return a.kind }

// Len returns the number of bitmaps.
func (a *Array) Len() int { return len(a.items) }

// At returns bitmap i without adding a reference.
func (a *Array) At(i int) *Bitmap { return a.items[i] }

// Bitmaps returns the bitmaps without adding references.
func (a *Array) Bitmaps() []*Bitmap {
	return append([]*Bitmap(nil), a.items...)
}

// Release drops the array's reference to every bitmap.
func (a *Array) Release() {
	for _, b := range a.items {
		b.Release()
	}
	a.items = nil
}

// GenerateMipChain builds a complete mip chain with b as level 0.
//
// Each level is resampled from the previous one with m. Formats without a
// kernel for m (indexed, subsampled and ETC1) are resampled through BGRA8
// and re-encoded; indexed levels are mapped back onto b's palette, so the
// whole chain shares one palette.
func GenerateMipChain(b *Bitmap, m Method) (*Array, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	cube := b.typ == TypeCube
	n := format.MaxMipLevels(b.size, cube)
	levels := make([]*Bitmap, 1, n)
	levels[0] = b.Retain()
	release := func() {
		for _, l := range levels {
			l.Release()
		}
	}
	for i := 1; i < n; i++ {
		next, err := mipLevel(levels[i-1], m, format.MipSize(i, b.size, cube), b.palette)
		if err != nil {
			release()
			return nil, fmt.Errorf("bitmap: mip level %d: %w", i, err)
		}
		levels = append(levels, next)
	}
	Logger().Debug("bitmap: mip chain", "levels", n, "method", m, "format", b.format)
	return adoptArray(ArrayMipChain, levels)
}

func mipLevel(prev *Bitmap, m Method, size format.Size3D, pal *Palette) (*Bitmap, error) {
	if CanResize(m, prev.format) {
		return Resize(prev, m, size)
	}
	hub, err := Reformat(prev, format.BGRA8)
	if err != nil {
		return nil, err
	}
	defer hub.Release()
	small, err := Resize(hub, m, size)
	if err != nil {
		return nil, err
	}
	defer small.Release()
	return Reformat(small, prev.format, WithTargetPalette(pal))
}
