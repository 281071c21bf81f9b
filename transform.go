package bitmap

import (
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/bitmap/format"
)

// Crop returns the pixels inside area, taken from every depth slice. The
// format must be byte aligned and area must lie within the bitmap.
func Crop(b *Bitmap, area image.Rectangle) (*Bitmap, error) {
	if _, err := b.checkArea(area, 0, false); err != nil {
		return nil, err
	}
	size := format.Size3D{Width: area.Dx(), Height: area.Dy(), Depth: b.size.Depth}
	out, err := b.derive(size, b.format, b.sharedPalette())
	if err != nil {
		return nil, err
	}
	for z := range b.size.Depth {
		region, _ := b.ReadPixels(area, z)
		copy(out.plane(z), region)
	}
	return out, nil
}

// FlipHorizontal returns b mirrored left to right.
func FlipHorizontal(b *Bitmap) (*Bitmap, error) {
	return flip(b, func(dst, src []byte, bpp, stride, height int) {
		for y := range height {
			row := src[y*stride : (y+1)*stride]
			out := dst[y*stride : (y+1)*stride]
			for x, w := 0, stride/bpp; x < w; x++ {
				copy(out[(w-1-x)*bpp:(w-x)*bpp], row[x*bpp:(x+1)*bpp])
			}
		}
	})
}

// FlipVertical returns b mirrored top to bottom.
func FlipVertical(b *Bitmap) (*Bitmap, error) {
	return flip(b, func(dst, src []byte, _, stride, height int) {
		for y := range height {
			copy(dst[(height-1-y)*stride:(height-y)*stride], src[y*stride:(y+1)*stride])
		}
	})
}

func flip(b *Bitmap, fn func(dst, src []byte, bpp, stride, height int)) (*Bitmap, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	bpp := b.format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("bitmap: flip %v: %w", b.format, ErrNotSupported)
	}
	out, err := b.derive(b.size, b.format, b.sharedPalette())
	if err != nil {
		return nil, err
	}
	for z := range b.size.Depth {
		fn(out.plane(z), b.plane(z), bpp, b.Stride(), b.size.Height)
	}
	return out, nil
}

// sharedPalette returns a new palette reference for a derived bitmap.
func (b *Bitmap) sharedPalette() *Palette {
	if b.palette == nil {
		return nil
	}
	return b.palette.Retain()
}

// Clone returns a deep copy of b that shares its palette.
func Clone(b *Bitmap) (*Bitmap, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	out, err := b.derive(b.size, b.format, b.sharedPalette())
	if err != nil {
		return nil, err
	}
	copy(out.pix, b.data())
	return out, nil
}

// Equal reports whether a and b have the same type, size, format, palette
// entries and pixel bytes.
func Equal(a, b *Bitmap) bool {
	if a.typ != b.typ || a.size != b.size || a.format != b.format {
		return false
	}
	if (a.palette == nil) != (b.palette == nil) {
		return false
	}
	if a.palette != nil && (a.palette.raw.BPP != b.palette.raw.BPP ||
		!slices.Equal(a.palette.raw.Entries, b.palette.raw.Entries)) {
		return false
	}
	return slices.Equal(a.data(), b.data())
}
