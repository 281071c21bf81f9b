package convert

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/errs"
	"github.com/gogpu/bitmap/internal/pixel"
)

// Len returns the number of entries in the palette.
func (p *Palette) Len() int {
	if p == nil || (p.BPP != 24 && p.BPP != 32) {
		return 0
	}
	return len(p.Entries) / (p.BPP / 8)
}

// Color returns entry i. Entries of 24-bit palettes are opaque; indexes past
// the end of the palette read as transparent black.
func (p *Palette) Color(i int) color.NRGBA {
	if i < 0 || i >= p.Len() {
		return color.NRGBA{}
	}
	n := p.BPP / 8
	e := p.Entries[i*n : i*n+n]
	c := color.NRGBA{B: e[0], G: e[1], R: e[2], A: 0xff}
	if n == 4 {
		c.A = e[3]
	}
	return c
}

// Colors returns the palette as a [color.Palette].
func (p *Palette) Colors() color.Palette {
	out := make(color.Palette, p.Len())
	for i := range out {
		out[i] = p.Color(i)
	}
	return out
}

// setColors replaces the entries, dropping alpha for 24-bit palettes.
func (p *Palette) setColors(pal color.Palette) {
	n := p.BPP / 8
	p.Entries = make([]byte, len(pal)*n)
	for i, c := range pal {
		nc := color.NRGBAModel.Convert(c).(color.NRGBA)
		e := p.Entries[i*n:]
		e[0], e[1], e[2] = nc.B, nc.G, nc.R
		if n == 4 {
			e[3] = nc.A
		}
	}
}

func checkPalette(p *Palette) error {
	if p == nil || (p.BPP != 24 && p.BPP != 32) {
		return fmt.Errorf("convert: indexed format needs a 24 or 32 bit palette: %w", errs.ErrInvalidArgs)
	}
	return nil
}

func copyPalette(dst, src *Palette) (int, error) {
	if err := checkPalette(dst); err != nil {
		return 0, err
	}
	if err := checkPalette(src); err != nil {
		return 0, err
	}
	dst.setColors(src.Colors())
	return dst.Len(), nil
}

// index reads the palette index of pixel x in row. Sub-byte indexes are
// packed most significant bits first.
func index(row []byte, x, bits int) int {
	switch bits {
	case 1:
		return int(row[x>>3]>>(7-uint(x&7))) & 1
	case 4:
		return int(row[x>>1]>>(4-4*uint(x&1))) & 0xf
	}
	return int(row[x])
}

func setIndex(row []byte, x, bits, v int) {
	switch bits {
	case 1:
		shift := 7 - uint(x&7)
		row[x>>3] = row[x>>3]&^(1<<shift) | byte(v&1)<<shift
	case 4:
		shift := 4 - 4*uint(x&1)
		row[x>>1] = row[x>>1]&^(0xf<<shift) | byte(v&0xf)<<shift
	default:
		row[x] = byte(v)
	}
}

// fromIndexed expands palette indexes of x into the plain format d.
func fromIndexed(d, x format.Format) Routine {
	dc, _ := pixel.CodecFor(d)
	dn := dc.Layout().Size
	bits := x.BitsPerPixel()

	return func(dst, src []byte, size format.Size3D, _, srcPal *Palette) (int, error) {
		if err := checkPalette(srcPal); err != nil {
			return 0, err
		}
		colors := make([]color.NRGBA64, 1<<bits)
		for i := range colors {
			c := srcPal.Color(i)
			colors[i] = color.NRGBA64{
				R: uint16(c.R) * 0x101, G: uint16(c.G) * 0x101,
				B: uint16(c.B) * 0x101, A: uint16(c.A) * 0x101,
			}
		}
		stride := format.Stride(x, size.Width)
		o := 0
		for y := range size.Height * size.Depth {
			row := src[y*stride:]
			for px := range size.Width {
				dc.Store(dst[o:], colors[index(row, px, bits)])
				o += dn
			}
		}
		return 0, nil
	}
}

// toIndexed quantizes the plain format s into the indexed format x. When
// dstPal already holds entries they are used as a fixed palette; otherwise a
// median-cut palette of at most 2^bits colors is generated over all slices.
// Pixels are mapped with Floyd-Steinberg error diffusion, one slice at a time.
func toIndexed(x, s format.Format) Routine {
	sc, _ := pixel.CodecFor(s)
	sn := sc.Layout().Size
	bits := x.BitsPerPixel()

	return func(dst, src []byte, size format.Size3D, dstPal, _ *Palette) (int, error) {
		if err := checkPalette(dstPal); err != nil {
			return 0, err
		}
		rows := size.Height * size.Depth
		img := image.NewNRGBA(image.Rect(0, 0, size.Width, rows))
		for i := range size.Pixels() * size.Depth {
			c := sc.Load(src[i*sn:])
			p := img.Pix[i*4 : i*4+4]
			p[0], p[1], p[2], p[3] = uint8(c.R>>8), uint8(c.G>>8), uint8(c.B>>8), uint8(c.A>>8)
		}

		pal := dstPal.Colors()
		if len(pal) == 0 {
			var err error
			if pal, err = quantize(img.Pix, x.PaletteEntries()); err != nil {
				return 0, err
			}
		} else if len(pal) > x.PaletteEntries() {
			return 0, fmt.Errorf("convert: palette of %d entries for %v: %w", len(pal), x, errs.ErrInvalidArgs)
		}

		out := image.NewPaletted(img.Rect, pal)
		for z := range size.Depth {
			r := image.Rect(0, z*size.Height, size.Width, (z+1)*size.Height)
			draw.FloydSteinberg.Draw(out, r, img, r.Min)
		}

		stride := format.Stride(x, size.Width)
		for y := range rows {
			row := dst[y*stride : (y+1)*stride]
			clear(row)
			for px := range size.Width {
				setIndex(row, px, bits, int(out.Pix[y*out.Stride+px]))
			}
		}
		dstPal.setColors(pal)
		return len(pal), nil
	}
}
