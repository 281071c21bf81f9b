package codec

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/format"
)

// FromImage copies m into a new 2D bitmap. Gray, Gray16, NRGBA, NRGBA64
// and Paletted images keep their precision in Gray8, Gray16, RGBA8, RGBA16
// and Index8. Other 16-bit models become RGBA16 and everything else RGBA8,
// with alpha un-premultiplied.
func FromImage(m image.Image) (*bitmap.Bitmap, error) {
	r := m.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("codec: empty image: %w", bitmap.ErrInvalidArgs)
	}
	w, h := r.Dx(), r.Dy()
	size := format.Size2D(w, h)

	switch src := m.(type) {
	case *image.Gray:
		return bitmap.New(bitmap.Type2D, size, format.Gray8, bitmap.WithPixels(rows(src.Pix, src.Stride, src.PixOffset(r.Min.X, r.Min.Y), w, h)))
	case *image.NRGBA:
		return bitmap.New(bitmap.Type2D, size, format.RGBA8, bitmap.WithPixels(rows(src.Pix, src.Stride, src.PixOffset(r.Min.X, r.Min.Y), w*4, h)))
	case *image.Gray16:
		pix := rows(src.Pix, src.Stride, src.PixOffset(r.Min.X, r.Min.Y), w*2, h)
		swap16(pix)
		return bitmap.New(bitmap.Type2D, size, format.Gray16, bitmap.WithPixels(pix))
	case *image.NRGBA64:
		pix := rows(src.Pix, src.Stride, src.PixOffset(r.Min.X, r.Min.Y), w*8, h)
		swap16(pix)
		return bitmap.New(bitmap.Type2D, size, format.RGBA16, bitmap.WithPixels(pix))
	case *image.Paletted:
		pal, err := bitmap.NewPaletteFromColors(src.Palette)
		if err != nil {
			return nil, err
		}
		defer pal.Release()
		return bitmap.New(bitmap.Type2D, size, format.Index8,
			bitmap.WithPalette(pal), bitmap.WithPixels(rows(src.Pix, src.Stride, src.PixOffset(r.Min.X, r.Min.Y), w, h)))
	}

	if is16(m.ColorModel()) {
		pix := make([]byte, 0, w*h*8)
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.NRGBA64Model.Convert(m.At(x, y)).(color.NRGBA64)
				pix = binary.LittleEndian.AppendUint16(pix, c.R)
				pix = binary.LittleEndian.AppendUint16(pix, c.G)
				pix = binary.LittleEndian.AppendUint16(pix, c.B)
				pix = binary.LittleEndian.AppendUint16(pix, c.A)
			}
		}
		return bitmap.New(bitmap.Type2D, size, format.RGBA16, bitmap.WithPixels(pix))
	}
	pix := make([]byte, 0, w*h*4)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			pix = append(pix, c.R, c.G, c.B, c.A)
		}
	}
	return bitmap.New(bitmap.Type2D, size, format.RGBA8, bitmap.WithPixels(pix))
}

func is16(m color.Model) bool {
	return m == color.RGBA64Model || m == color.NRGBA64Model || m == color.Gray16Model || m == color.Alpha16Model
}

// rows copies h rows of n bytes starting at off.
func rows(pix []byte, stride, off, n, h int) []byte {
	out := make([]byte, n*h)
	for y := range h {
		copy(out[y*n:(y+1)*n], pix[off+y*stride:])
	}
	return out
}

// swap16 converts between the big-endian samples of image and the
// little-endian samples of bitmap in place.
func swap16(pix []byte) {
	for i := 0; i+1 < len(pix); i += 2 {
		pix[i], pix[i+1] = pix[i+1], pix[i]
	}
}

// ToImage converts depth slice 0 of b to a standard image.
func ToImage(b *bitmap.Bitmap) (image.Image, error) {
	return SliceImage(b, 0)
}

// SliceImage converts depth slice depth of b to a standard image. Gray8,
// Gray16, RGBA8, RGBA16 and Index8 map directly; formats wider than 8 bits
// per channel go through RGBA16 and everything else through RGBA8.
func SliceImage(b *bitmap.Bitmap, depth int) (image.Image, error) {
	if depth < 0 || depth >= b.Depth() {
		return nil, fmt.Errorf("codec: depth %d of %d: %w", depth, b.Depth(), bitmap.ErrInvalidArgs)
	}
	target := imageFormat(b.Format())
	if target != b.Format() {
		conv, err := bitmap.Reformat(b, target)
		if err != nil {
			return nil, err
		}
		defer conv.Release()
		b = conv
	}

	r := b.Bounds()
	pix := make([]byte, b.PlaneSize())
	if _, err := b.CopyPixels(pix, depth); err != nil {
		return nil, err
	}
	switch target {
	case format.Gray8:
		return &image.Gray{Pix: pix, Stride: b.Stride(), Rect: r}, nil
	case format.Gray16:
		swap16(pix)
		return &image.Gray16{Pix: pix, Stride: b.Stride(), Rect: r}, nil
	case format.RGBA16:
		swap16(pix)
		return &image.NRGBA64{Pix: pix, Stride: b.Stride(), Rect: r}, nil
	case format.Index8:
		pal, err := b.Palette()
		if err != nil {
			return nil, err
		}
		defer pal.Release()
		return &image.Paletted{Pix: pix, Stride: b.Stride(), Rect: r, Palette: pal.Colors()}, nil
	}
	return &image.NRGBA{Pix: pix, Stride: b.Stride(), Rect: r}, nil
}

func imageFormat(f format.Format) format.Format {
	switch f {
	case format.Gray8, format.Gray16, format.RGBA8, format.RGBA16, format.Index8:
		return f
	}
	if f.Info().BitsPerChannel > 8 && !f.IsCompressed() {
		return format.RGBA16
	}
	return format.RGBA8
}
