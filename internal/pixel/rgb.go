package pixel

import (
	"encoding/binary"
	"image/color"
)

var (
	max8x3  = Vec{0xff, 0xff, 0xff}
	max8x4  = Vec{0xff, 0xff, 0xff, 0xff}
	max16x3 = Vec{0xffff, 0xffff, 0xffff}
	max16x4 = Vec{0xffff, 0xffff, 0xffff, 0xffff}
)

func hub8(r, g, b, a uint8) color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(r) * 0x101,
		G: uint16(g) * 0x101,
		B: uint16(b) * 0x101,
		A: uint16(a) * 0x101,
	}
}

// RGB8 is 24-bit R, G, B.
type RGB8 struct {
	R, G, B uint8
}

func (RGB8) Layout() Layout {
	return Layout{Size: 3, Channels: 3, Max: max8x3, Alpha: -1}
}

func (RGB8) Decode(b []byte) RGB8 { return RGB8{b[0], b[1], b[2]} }
func (c RGB8) Encode(b []byte)    { b[0], b[1], b[2] = c.R, c.G, c.B }
func (c RGB8) Channels() Vec      { return Vec{float32(c.R), float32(c.G), float32(c.B)} }

func (RGB8) FromChannels(v Vec) RGB8 { return RGB8{sat8(v[0]), sat8(v[1]), sat8(v[2])} }

func (c RGB8) NRGBA64() color.NRGBA64 { return hub8(c.R, c.G, c.B, 0xff) }

func (RGB8) FromNRGBA64(c color.NRGBA64) RGB8 {
	return RGB8{uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8)}
}

func (c RGB8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// BGR8 is 24-bit B, G, R.
type BGR8 struct {
	B, G, R uint8
}

func (BGR8) Layout() Layout {
	return Layout{Size: 3, Channels: 3, Max: max8x3, Alpha: -1}
}

func (BGR8) Decode(b []byte) BGR8 { return BGR8{b[0], b[1], b[2]} }
func (c BGR8) Encode(b []byte)    { b[0], b[1], b[2] = c.B, c.G, c.R }
func (c BGR8) Channels() Vec      { return Vec{float32(c.B), float32(c.G), float32(c.R)} }

func (BGR8) FromChannels(v Vec) BGR8 { return BGR8{sat8(v[0]), sat8(v[1]), sat8(v[2])} }

func (c BGR8) NRGBA64() color.NRGBA64 { return hub8(c.R, c.G, c.B, 0xff) }

func (BGR8) FromNRGBA64(c color.NRGBA64) BGR8 {
	return BGR8{uint8(c.B >> 8), uint8(c.G >> 8), uint8(c.R >> 8)}
}

func (c BGR8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// RGBA8 is 32-bit non-premultiplied R, G, B, A.
type RGBA8 struct {
	R, G, B, A uint8
}

func (RGBA8) Layout() Layout {
	return Layout{Size: 4, Channels: 4, Max: max8x4, Alpha: 3}
}

func (RGBA8) Decode(b []byte) RGBA8 { return RGBA8{b[0], b[1], b[2], b[3]} }
func (c RGBA8) Encode(b []byte)     { b[0], b[1], b[2], b[3] = c.R, c.G, c.B, c.A }

func (c RGBA8) Channels() Vec {
	return Vec{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func (RGBA8) FromChannels(v Vec) RGBA8 {
	return RGBA8{sat8(v[0]), sat8(v[1]), sat8(v[2]), sat8(v[3])}
}

func (c RGBA8) NRGBA64() color.NRGBA64 { return hub8(c.R, c.G, c.B, c.A) }

func (RGBA8) FromNRGBA64(c color.NRGBA64) RGBA8 {
	return RGBA8{uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8), uint8(c.A >> 8)}
}

func (c RGBA8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// BGRA8 is 32-bit non-premultiplied B, G, R, A.
type BGRA8 struct {
	B, G, R, A uint8
}

func (BGRA8) Layout() Layout {
	return Layout{Size: 4, Channels: 4, Max: max8x4, Alpha: 3}
}

func (BGRA8) Decode(b []byte) BGRA8 { return BGRA8{b[0], b[1], b[2], b[3]} }
func (c BGRA8) Encode(b []byte)     { b[0], b[1], b[2], b[3] = c.B, c.G, c.R, c.A }

func (c BGRA8) Channels() Vec {
	return Vec{float32(c.B), float32(c.G), float32(c.R), float32(c.A)}
}

func (BGRA8) FromChannels(v Vec) BGRA8 {
	return BGRA8{sat8(v[0]), sat8(v[1]), sat8(v[2]), sat8(v[3])}
}

func (c BGRA8) NRGBA64() color.NRGBA64 { return hub8(c.R, c.G, c.B, c.A) }

func (BGRA8) FromNRGBA64(c color.NRGBA64) BGRA8 {
	return BGRA8{uint8(c.B >> 8), uint8(c.G >> 8), uint8(c.R >> 8), uint8(c.A >> 8)}
}

func (c BGRA8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// ARGB8 is 32-bit non-premultiplied A, R, G, B.
type ARGB8 struct {
	A, R, G, B uint8
}

func (ARGB8) Layout() Layout {
	return Layout{Size: 4, Channels: 4, Max: max8x4, Alpha: 0}
}

func (ARGB8) Decode(b []byte) ARGB8 { return ARGB8{b[0], b[1], b[2], b[3]} }
func (c ARGB8) Encode(b []byte)     { b[0], b[1], b[2], b[3] = c.A, c.R, c.G, c.B }

func (c ARGB8) Channels() Vec {
	return Vec{float32(c.A), float32(c.R), float32(c.G), float32(c.B)}
}

func (ARGB8) FromChannels(v Vec) ARGB8 {
	return ARGB8{sat8(v[0]), sat8(v[1]), sat8(v[2]), sat8(v[3])}
}

func (c ARGB8) NRGBA64() color.NRGBA64 { return hub8(c.R, c.G, c.B, c.A) }

func (ARGB8) FromNRGBA64(c color.NRGBA64) ARGB8 {
	return ARGB8{uint8(c.A >> 8), uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8)}
}

func (c ARGB8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// RGB16 is R, G, B with little-endian 16-bit channels.
type RGB16 struct {
	R, G, B uint16
}

func (RGB16) Layout() Layout {
	return Layout{Size: 6, Channels: 3, Max: max16x3, Alpha: -1}
}

func (RGB16) Decode(b []byte) RGB16 {
	le := binary.LittleEndian
	return RGB16{le.Uint16(b), le.Uint16(b[2:]), le.Uint16(b[4:])}
}

func (c RGB16) Encode(b []byte) {
	le := binary.LittleEndian
	le.PutUint16(b, c.R)
	le.PutUint16(b[2:], c.G)
	le.PutUint16(b[4:], c.B)
}

func (c RGB16) Channels() Vec { return Vec{float32(c.R), float32(c.G), float32(c.B)} }

func (RGB16) FromChannels(v Vec) RGB16 { return RGB16{sat16(v[0]), sat16(v[1]), sat16(v[2])} }

func (c RGB16) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: c.R, G: c.G, B: c.B, A: 0xffff}
}

func (RGB16) FromNRGBA64(c color.NRGBA64) RGB16 { return RGB16{c.R, c.G, c.B} }

func (c RGB16) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// RGBA16 is R, G, B, A with little-endian 16-bit channels.
type RGBA16 struct {
	R, G, B, A uint16
}

func (RGBA16) Layout() Layout {
	return Layout{Size: 8, Channels: 4, Max: max16x4, Alpha: 3}
}

func (RGBA16) Decode(b []byte) RGBA16 {
	le := binary.LittleEndian
	return RGBA16{le.Uint16(b), le.Uint16(b[2:]), le.Uint16(b[4:]), le.Uint16(b[6:])}
}

func (c RGBA16) Encode(b []byte) {
	le := binary.LittleEndian
	le.PutUint16(b, c.R)
	le.PutUint16(b[2:], c.G)
	le.PutUint16(b[4:], c.B)
	le.PutUint16(b[6:], c.A)
}

func (c RGBA16) Channels() Vec {
	return Vec{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func (RGBA16) FromChannels(v Vec) RGBA16 {
	return RGBA16{sat16(v[0]), sat16(v[1]), sat16(v[2]), sat16(v[3])}
}

func (c RGBA16) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (RGBA16) FromNRGBA64(c color.NRGBA64) RGBA16 { return RGBA16{c.R, c.G, c.B, c.A} }

func (c RGBA16) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// RGBF32 is three float channels, nominally in [0, 1].
type RGBF32 struct {
	R, G, B float32
}

func (RGBF32) Layout() Layout {
	return Layout{Size: 12, Channels: 3, Max: Vec{1, 1, 1}, Float: true, Alpha: -1}
}

func (RGBF32) Decode(b []byte) RGBF32 { return RGBF32{getF32(b), getF32(b[4:]), getF32(b[8:])} }

func (c RGBF32) Encode(b []byte) {
	putF32(b, c.R)
	putF32(b[4:], c.G)
	putF32(b[8:], c.B)
}

func (c RGBF32) Channels() Vec { return Vec{c.R, c.G, c.B} }

func (RGBF32) FromChannels(v Vec) RGBF32 { return RGBF32{v[0], v[1], v[2]} }

func (c RGBF32) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: unitToU16(c.R), G: unitToU16(c.G), B: unitToU16(c.B), A: 0xffff}
}

func (RGBF32) FromNRGBA64(c color.NRGBA64) RGBF32 {
	return RGBF32{u16ToUnit(c.R), u16ToUnit(c.G), u16ToUnit(c.B)}
}

func (c RGBF32) RGBAF() RGBAF              { return RGBAF{c.R, c.G, c.B, 1} }
func (RGBF32) FromRGBAF(c RGBAF) RGBF32    { return RGBF32{c.R, c.G, c.B} }
func (c RGBF32) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// RGBAF32 is four float channels, nominally in [0, 1].
type RGBAF32 struct {
	R, G, B, A float32
}

func (RGBAF32) Layout() Layout {
	return Layout{Size: 16, Channels: 4, Max: Vec{1, 1, 1, 1}, Float: true, Alpha: 3}
}

func (RGBAF32) Decode(b []byte) RGBAF32 {
	return RGBAF32{getF32(b), getF32(b[4:]), getF32(b[8:]), getF32(b[12:])}
}

func (c RGBAF32) Encode(b []byte) {
	putF32(b, c.R)
	putF32(b[4:], c.G)
	putF32(b[8:], c.B)
	putF32(b[12:], c.A)
}

func (c RGBAF32) Channels() Vec { return Vec{c.R, c.G, c.B, c.A} }

func (RGBAF32) FromChannels(v Vec) RGBAF32 { return RGBAF32{v[0], v[1], v[2], v[3]} }

func (c RGBAF32) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{R: unitToU16(c.R), G: unitToU16(c.G), B: unitToU16(c.B), A: unitToU16(c.A)}
}

func (RGBAF32) FromNRGBA64(c color.NRGBA64) RGBAF32 {
	return RGBAF32{u16ToUnit(c.R), u16ToUnit(c.G), u16ToUnit(c.B), u16ToUnit(c.A)}
}

func (c RGBAF32) RGBAF() RGBAF              { return RGBAF(c) }
func (RGBAF32) FromRGBAF(c RGBAF) RGBAF32   { return RGBAF32(c) }
func (c RGBAF32) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }
