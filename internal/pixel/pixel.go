// Package pixel implements the closed set of in-memory color value types.
//
// Each plain pixel format has one fixed-layout value type. Value types satisfy
// [image/color.Color] and the [Pixel] constraint, which is the capability set
// the generic engines (resampling, filtering, arithmetic) are written against:
// byte decode/encode, native-range channel access and conversion through a
// non-premultiplied 16-bit hub.
package pixel

import (
	"encoding/binary"
	"image/color"
	"math"
)

// Vec holds up to four channel values in a type's native range and storage order.
type Vec [4]float32

// Layout describes the channels of a value type.
type Layout struct {
	// Size is the number of bytes one pixel occupies.
	Size int

	// Channels is the number of channels in use.
	Channels int

	// Max is the per-channel maximum (1 for float channels).
	Max Vec

	// Float indicates IEEE-754 channels.
	Float bool

	// Alpha is the channel index of alpha, or -1.
	Alpha int
}

// Pixel is the constraint satisfied by every color value type.
type Pixel[P any] interface {
	comparable
	color.Color

	// Layout returns the static channel description of the type.
	Layout() Layout

	// Decode reads one pixel from the first Layout().Size bytes of b.
	Decode(b []byte) P

	// Encode writes the pixel to the first Layout().Size bytes of b.
	Encode(b []byte)

	// Channels returns the channel values in native range and storage order.
	Channels() Vec

	// FromChannels builds a value, clamping integer channels to [0, Max]
	// and truncating fractions.
	FromChannels(v Vec) P

	// NRGBA64 converts to the non-premultiplied 16-bit hub.
	NRGBA64() color.NRGBA64

	// FromNRGBA64 converts from the hub. Narrowing truncates.
	FromNRGBA64(c color.NRGBA64) P
}

// RGBAF is a normalized float color used as the hub between float types.
type RGBAF struct {
	R, G, B, A float32
}

// floatPixel is implemented by float value types so that float to float
// conversion does not pass through 16 bits.
type floatPixel[P any] interface {
	RGBAF() RGBAF
	FromRGBAF(c RGBAF) P
}

// Convert converts a value of one type to another.
func Convert[D Pixel[D], S Pixel[S]](s S) D {
	var d D
	if sf, ok := any(s).(floatPixel[S]); ok {
		if df, ok := any(d).(floatPixel[D]); ok {
			return df.FromRGBAF(sf.RGBAF())
		}
	}
	return d.FromNRGBA64(s.NRGBA64())
}

// MaxColor returns the value with every channel at its maximum.
func MaxColor[P Pixel[P]]() P {
	var zero P
	return zero.FromChannels(zero.Layout().Max)
}

// Saturate clamps channels to their legal range: [0, Max] for integer
// channels and [0, 1] for float channels.
func Saturate(l Layout, v Vec) Vec {
	for i := 0; i < l.Channels; i++ {
		v[i] = clampf(v[i], 0, l.Max[i])
	}
	return v
}

// Quantize rounds integer channels to the nearest whole value and saturates.
// Float channels are saturated only.
func Quantize(l Layout, v Vec) Vec {
	if !l.Float {
		for i := 0; i < l.Channels; i++ {
			v[i] = float32(math.Floor(float64(v[i]) + 0.5))
		}
	}
	return Saturate(l, v)
}

// Luma16 returns the BT.601 luminance of a hub color.
func Luma16(c color.NRGBA64) uint16 {
	r, g, b := uint32(c.R), uint32(c.G), uint32(c.B)
	return uint16((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
}

func lumaF(c RGBAF) float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// expand widens an n-bit channel value with maximum mx to 16 bits.
func expand(v, mx uint32) uint16 {
	return uint16(v * 0xffff / mx)
}

// narrow truncates a 16-bit channel value to a channel with maximum mx.
func narrow(v uint16, mx uint32) uint32 {
	return uint32(v) * (mx + 1) >> 16
}

func unitToU16(f float32) uint16 {
	return uint16(clampf(f, 0, 1) * 0xffff)
}

func u16ToUnit(v uint16) float32 {
	return float32(v) / 0xffff
}

func clampf(v, lo, hi float32) float32 {
	if v < lo || v != v {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sat8(v float32) uint8 {
	return uint8(clampf(v, 0, 0xff))
}

func sat16(v float32) uint16 {
	return uint16(clampf(v, 0, 0xffff))
}

func getF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
