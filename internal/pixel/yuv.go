package pixel

import (
	"image/color"
	"math"
)

// YUV8 is a full-resolution 8-bit Y, U (Cb), V (Cr) triple using the BT.601
// full-range coefficients of JFIF.
type YUV8 struct {
	Y, U, V uint8
}

func (YUV8) Layout() Layout {
	return Layout{Size: 3, Channels: 3, Max: max8x3, Alpha: -1}
}

func (YUV8) Decode(b []byte) YUV8 { return YUV8{b[0], b[1], b[2]} }
func (c YUV8) Encode(b []byte)    { b[0], b[1], b[2] = c.Y, c.U, c.V }
func (c YUV8) Channels() Vec      { return Vec{float32(c.Y), float32(c.U), float32(c.V)} }

func (YUV8) FromChannels(v Vec) YUV8 { return YUV8{sat8(v[0]), sat8(v[1]), sat8(v[2])} }

func (c YUV8) NRGBA64() color.NRGBA64 {
	r, g, b := color.YCbCrToRGB(c.Y, c.U, c.V)
	return hub8(r, g, b, 0xff)
}

func (YUV8) FromNRGBA64(c color.NRGBA64) YUV8 {
	y, u, v := color.RGBToYCbCr(uint8(c.R>>8), uint8(c.G>>8), uint8(c.B>>8))
	return YUV8{y, u, v}
}

func (c YUV8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

// HSV8 is 8-bit hue, saturation and value. Hue maps 0..255 onto 0..360 degrees.
type HSV8 struct {
	H, S, V uint8
}

func (HSV8) Layout() Layout {
	return Layout{Size: 3, Channels: 3, Max: max8x3, Alpha: -1}
}

func (HSV8) Decode(b []byte) HSV8 { return HSV8{b[0], b[1], b[2]} }
func (c HSV8) Encode(b []byte)    { b[0], b[1], b[2] = c.H, c.S, c.V }
func (c HSV8) Channels() Vec      { return Vec{float32(c.H), float32(c.S), float32(c.V)} }

func (HSV8) FromChannels(v Vec) HSV8 { return HSV8{sat8(v[0]), sat8(v[1]), sat8(v[2])} }

func (c HSV8) NRGBA64() color.NRGBA64 {
	v := float64(c.V) / 255
	if c.S == 0 {
		return hub8(c.V, c.V, c.V, 0xff)
	}
	s := float64(c.S) / 255
	h := float64(c.H) * 6 / 256
	sector := math.Floor(h)
	f := h - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sector) % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return color.NRGBA64{R: unit64(r), G: unit64(g), B: unit64(b), A: 0xffff}
}

func (HSV8) FromNRGBA64(c color.NRGBA64) HSV8 {
	r := float64(c.R>>8) / 255
	g := float64(c.G>>8) / 255
	b := float64(c.B>>8) / 255
	hi := max(r, g, b)
	lo := min(r, g, b)
	delta := hi - lo

	var h float64
	switch {
	case delta == 0:
		h = 0
	case hi == r:
		h = math.Mod((g-b)/delta, 6)
	case hi == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	if h < 0 {
		h += 6
	}

	var s float64
	if hi > 0 {
		s = delta / hi
	}
	return HSV8{
		H: uint8(min(h*256/6, 255)),
		S: uint8(s * 255),
		V: uint8(max(c.R, c.G, c.B) >> 8),
	}
}

func (c HSV8) RGBA() (r, g, b, a uint32) { return c.NRGBA64().RGBA() }

func unit64(v float64) uint16 {
	return uint16(math.Max(0, math.Min(1, v)) * 0xffff)
}
