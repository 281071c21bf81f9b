package pixel

import (
	"encoding/binary"
	"image/color"
)

// Gray8 is an 8-bit luminance value.
type Gray8 struct {
	Y uint8
}

func (Gray8) Layout() Layout {
	return Layout{Size: 1, Channels: 1, Max: Vec{0xff}, Alpha: -1}
}

func (Gray8) Decode(b []byte) Gray8 { return Gray8{b[0]} }
func (c Gray8) Encode(b []byte)     { b[0] = c.Y }
func (c Gray8) Channels() Vec       { return Vec{float32(c.Y)} }

func (Gray8) FromChannels(v Vec) Gray8 { return Gray8{sat8(v[0])} }

func (c Gray8) NRGBA64() color.NRGBA64 {
	y := uint16(c.Y) * 0x101
	return color.NRGBA64{R: y, G: y, B: y, A: 0xffff}
}

func (Gray8) FromNRGBA64(c color.NRGBA64) Gray8 {
	return Gray8{uint8(Luma16(c) >> 8)}
}

func (c Gray8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// Gray16 is a 16-bit luminance value, stored little-endian.
type Gray16 struct {
	Y uint16
}

func (Gray16) Layout() Layout {
	return Layout{Size: 2, Channels: 1, Max: Vec{0xffff}, Alpha: -1}
}

func (Gray16) Decode(b []byte) Gray16 { return Gray16{binary.LittleEndian.Uint16(b)} }
func (c Gray16) Encode(b []byte)      { binary.LittleEndian.PutUint16(b, c.Y) }
func (c Gray16) Channels() Vec        { return Vec{float32(c.Y)} }

func (Gray16) FromChannels(v Vec) Gray16 { return Gray16{sat16(v[0])} }

func (c Gray16) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: c.Y, G: c.Y, B: c.Y, A: 0xffff}
}

func (Gray16) FromNRGBA64(c color.NRGBA64) Gray16 { return Gray16{Luma16(c)} }

func (c Gray16) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// GrayF32 is a float luminance value in [0, 1].
type GrayF32 struct {
	Y float32
}

func (GrayF32) Layout() Layout {
	return Layout{Size: 4, Channels: 1, Max: Vec{1}, Float: true, Alpha: -1}
}

func (GrayF32) Decode(b []byte) GrayF32 { return GrayF32{getF32(b)} }
func (c GrayF32) Encode(b []byte)       { putF32(b, c.Y) }
func (c GrayF32) Channels() Vec         { return Vec{c.Y} }

func (GrayF32) FromChannels(v Vec) GrayF32 { return GrayF32{v[0]} }

func (c GrayF32) NRGBA64() color.NRGBA64 {
	y := unitToU16(c.Y)
	return color.NRGBA64{R: y, G: y, B: y, A: 0xffff}
}

func (GrayF32) FromNRGBA64(c color.NRGBA64) GrayF32 { return GrayF32{u16ToUnit(Luma16(c))} }

func (c GrayF32) RGBAF() RGBAF              { return RGBAF{c.Y, c.Y, c.Y, 1} }
func (GrayF32) FromRGBAF(c RGBAF) GrayF32   { return GrayF32{lumaF(c)} }
func (c GrayF32) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// GrayAlpha8 is 8-bit luminance with 8-bit alpha.
type GrayAlpha8 struct {
	Y, A uint8
}

func (GrayAlpha8) Layout() Layout {
	return Layout{Size: 2, Channels: 2, Max: Vec{0xff, 0xff}, Alpha: 1}
}

func (GrayAlpha8) Decode(b []byte) GrayAlpha8 { return GrayAlpha8{b[0], b[1]} }
func (c GrayAlpha8) Encode(b []byte)          { b[0], b[1] = c.Y, c.A }
func (c GrayAlpha8) Channels() Vec            { return Vec{float32(c.Y), float32(c.A)} }

func (GrayAlpha8) FromChannels(v Vec) GrayAlpha8 { return GrayAlpha8{sat8(v[0]), sat8(v[1])} }

func (c GrayAlpha8) NRGBA64() color.NRGBA64 {
	y := uint16(c.Y) * 0x101
	return color.NRGBA64{R: y, G: y, B: y, A: uint16(c.A) * 0x101}
}

func (GrayAlpha8) FromNRGBA64(c color.NRGBA64) GrayAlpha8 {
	return GrayAlpha8{uint8(Luma16(c) >> 8), uint8(c.A >> 8)}
}

func (c GrayAlpha8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }
