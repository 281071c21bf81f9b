package pixel

import (
	"encoding/binary"
	"image/color"
)

// BGR565 is a packed 16-bit word: B in bits 0-4, G in 5-10, R in 11-15.
type BGR565 struct {
	V uint16
}

func (BGR565) Layout() Layout {
	return Layout{Size: 2, Channels: 3, Max: Vec{31, 63, 31}, Alpha: -1}
}

func (BGR565) Decode(b []byte) BGR565 { return BGR565{binary.LittleEndian.Uint16(b)} }
func (c BGR565) Encode(b []byte)      { binary.LittleEndian.PutUint16(b, c.V) }

func (c BGR565) Channels() Vec {
	return Vec{float32(c.V & 0x1f), float32(c.V >> 5 & 0x3f), float32(c.V >> 11)}
}

func (BGR565) FromChannels(v Vec) BGR565 {
	b := uint16(clampf(v[0], 0, 31))
	g := uint16(clampf(v[1], 0, 63))
	r := uint16(clampf(v[2], 0, 31))
	return BGR565{r<<11 | g<<5 | b}
}

func (c BGR565) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: expand(uint32(c.V>>11), 31),
		G: expand(uint32(c.V>>5&0x3f), 63),
		B: expand(uint32(c.V&0x1f), 31),
		A: 0xffff,
	}
}

func (BGR565) FromNRGBA64(c color.NRGBA64) BGR565 {
	r := narrow(c.R, 31)
	g := narrow(c.G, 63)
	b := narrow(c.B, 31)
	return BGR565{uint16(r<<11 | g<<5 | b)}
}

func (c BGR565) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// BGRA4444 is a packed 16-bit word: B in bits 0-3, G 4-7, R 8-11, A 12-15.
type BGRA4444 struct {
	V uint16
}

func (BGRA4444) Layout() Layout {
	return Layout{Size: 2, Channels: 4, Max: Vec{15, 15, 15, 15}, Alpha: 3}
}

func (BGRA4444) Decode(b []byte) BGRA4444 { return BGRA4444{binary.LittleEndian.Uint16(b)} }
func (c BGRA4444) Encode(b []byte)        { binary.LittleEndian.PutUint16(b, c.V) }

func (c BGRA4444) Channels() Vec {
	return Vec{float32(c.V & 0xf), float32(c.V >> 4 & 0xf), float32(c.V >> 8 & 0xf), float32(c.V >> 12)}
}

func (BGRA4444) FromChannels(v Vec) BGRA4444 {
	var out uint16
	for i := range 4 {
		out |= uint16(clampf(v[i], 0, 15)) << (4 * i)
	}
	return BGRA4444{out}
}

func (c BGRA4444) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: expand(uint32(c.V>>8&0xf), 15),
		G: expand(uint32(c.V>>4&0xf), 15),
		B: expand(uint32(c.V&0xf), 15),
		A: expand(uint32(c.V>>12), 15),
	}
}

func (BGRA4444) FromNRGBA64(c color.NRGBA64) BGRA4444 {
	v := narrow(c.B, 15) | narrow(c.G, 15)<<4 | narrow(c.R, 15)<<8 | narrow(c.A, 15)<<12
	return BGRA4444{uint16(v)}
}

func (c BGRA4444) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// BGRA5551 is a packed 16-bit word: B in bits 0-4, G 5-9, R 10-14, A bit 15.
type BGRA5551 struct {
	V uint16
}

func (BGRA5551) Layout() Layout {
	return Layout{Size: 2, Channels: 4, Max: Vec{31, 31, 31, 1}, Alpha: 3}
}

func (BGRA5551) Decode(b []byte) BGRA5551 { return BGRA5551{binary.LittleEndian.Uint16(b)} }
func (c BGRA5551) Encode(b []byte)        { binary.LittleEndian.PutUint16(b, c.V) }

func (c BGRA5551) Channels() Vec {
	return Vec{float32(c.V & 0x1f), float32(c.V >> 5 & 0x1f), float32(c.V >> 10 & 0x1f), float32(c.V >> 15)}
}

func (BGRA5551) FromChannels(v Vec) BGRA5551 {
	b := uint16(clampf(v[0], 0, 31))
	g := uint16(clampf(v[1], 0, 31))
	r := uint16(clampf(v[2], 0, 31))
	a := uint16(clampf(v[3], 0, 1))
	return BGRA5551{a<<15 | r<<10 | g<<5 | b}
}

func (c BGRA5551) NRGBA64() color.NRGBA64 {
	return color.NRGBA64{
		R: expand(uint32(c.V>>10&0x1f), 31),
		G: expand(uint32(c.V>>5&0x1f), 31),
		B: expand(uint32(c.V&0x1f), 31),
		A: expand(uint32(c.V>>15), 1),
	}
}

func (BGRA5551) FromNRGBA64(c color.NRGBA64) BGRA5551 {
	v := narrow(c.B, 31) | narrow(c.G, 31)<<5 | narrow(c.R, 31)<<10 | narrow(c.A, 1)<<15
	return BGRA5551{uint16(v)}
}

func (c BGRA5551) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }
