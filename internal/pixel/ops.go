package pixel

import "math"

// Component-wise arithmetic. Integer channels saturate to [0, Max];
// Multiply and Divide are normalized so that Max behaves as one.

func Add[P Pixel[P]](a, b P) P {
	return combine(a, b, func(x, y, _ float32, _ bool) float32 { return x + y })
}

func Sub[P Pixel[P]](a, b P) P {
	return combine(a, b, func(x, y, _ float32, _ bool) float32 { return x - y })
}

func Mul[P Pixel[P]](a, b P) P {
	return combine(a, b, func(x, y, m float32, fl bool) float32 {
		if fl {
			return x * y
		}
		return x * y / m
	})
}

// Div divides a by b. An integer channel divided by zero yields Max.
func Div[P Pixel[P]](a, b P) P {
	return combine(a, b, func(x, y, m float32, fl bool) float32 {
		if fl {
			return x / y
		}
		if y == 0 {
			return m
		}
		return x * m / y
	})
}

func And[P Pixel[P]](a, b P) P {
	return bitwise(a, b, func(x, y uint32) uint32 { return x & y })
}

func Or[P Pixel[P]](a, b P) P {
	return bitwise(a, b, func(x, y uint32) uint32 { return x | y })
}

func Xor[P Pixel[P]](a, b P) P {
	return bitwise(a, b, func(x, y uint32) uint32 { return x ^ y })
}

// Not complements every channel bit.
func Not[P Pixel[P]](a P) P {
	return bitwise(a, a, func(x, _ uint32) uint32 { return ^x })
}

// Negate flips the sign of float channels and wraps integer channels the way
// two's-complement negation of an n-bit unsigned value does.
func Negate[P Pixel[P]](a P) P {
	l := a.Layout()
	v := a.Channels()
	for i := 0; i < l.Channels; i++ {
		if l.Float {
			v[i] = -v[i]
			continue
		}
		m := uint32(l.Max[i])
		v[i] = float32((m + 1 - uint32(v[i])) & m)
	}
	return a.FromChannels(v)
}

// Invert returns MaxColor - a.
func Invert[P Pixel[P]](a P) P {
	l := a.Layout()
	v := a.Channels()
	for i := 0; i < l.Channels; i++ {
		v[i] = l.Max[i] - v[i]
	}
	return a.FromChannels(v)
}

// Scale multiplies every channel by s without saturating; the result is meant
// for accumulation and must be passed through Quantize before storing.
func Scale(v Vec, s float32) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Accumulate returns acc + v*w.
func Accumulate(acc, v Vec, w float32) Vec {
	return Vec{acc[0] + v[0]*w, acc[1] + v[1]*w, acc[2] + v[2]*w, acc[3] + v[3]*w}
}

func combine[P Pixel[P]](a, b P, f func(x, y, m float32, fl bool) float32) P {
	l := a.Layout()
	va, vb := a.Channels(), b.Channels()
	var out Vec
	for i := 0; i < l.Channels; i++ {
		out[i] = f(va[i], vb[i], l.Max[i], l.Float)
	}
	if !l.Float {
		out = Saturate(l, out)
	}
	return a.FromChannels(out)
}

func bitwise[P Pixel[P]](a, b P, f func(x, y uint32) uint32) P {
	l := a.Layout()
	va, vb := a.Channels(), b.Channels()
	var out Vec
	for i := 0; i < l.Channels; i++ {
		if l.Float {
			out[i] = math.Float32frombits(f(math.Float32bits(va[i]), math.Float32bits(vb[i])))
			continue
		}
		m := uint32(l.Max[i])
		out[i] = float32(f(uint32(va[i]), uint32(vb[i])) & m)
	}
	return a.FromChannels(out)
}
