package resample

import (
	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/parallel"
	"github.com/gogpu/bitmap/internal/pixel"
)

// wide is a channel accumulator. Resampling runs in float64 so that weights
// summing to one reproduce a constant float32 channel exactly.
type wide [4]float64

func widen(v pixel.Vec) wide {
	return wide{float64(v[0]), float64(v[1]), float64(v[2]), float64(v[3])}
}

func (s wide) narrow() pixel.Vec {
	return pixel.Vec{float32(s[0]), float32(s[1]), float32(s[2]), float32(s[3])}
}

// separable filters rows, then columns, in float64 channel space. Integer
// channels are rounded and every channel is saturated only on store.
func separable[P pixel.Pixel[P]](m Method) Kernel {
	var zero P
	layout := zero.Layout()
	n := layout.Size

	return func(dst, src []byte, from, to format.Size3D) {
		xt := taps(m, from.Width, to.Width)
		yt := taps(m, from.Height, to.Height)

		plane := make([]wide, from.Width*from.Height)
		rows := make([]wide, to.Width*from.Height)
		slice := to.Width * to.Height * n

		for z := range to.Depth {
			sz := z * from.Depth / to.Depth
			in := src[sz*from.Width*from.Height*n:]
			for i := range plane {
				plane[i] = widen(zero.Decode(in[i*n:]).Channels())
			}

			parallel.Rows(from.Height, to.Width, func(y0, y1 int) {
				for y := y0; y < y1; y++ {
					line := plane[y*from.Width : (y+1)*from.Width]
					for x, ts := range xt {
						rows[y*to.Width+x] = apply(line, 1, ts)
					}
				}
			})

			out := dst[z*slice:]
			parallel.Rows(to.Height, to.Width, func(y0, y1 int) {
				for y := y0; y < y1; y++ {
					o := y * to.Width * n
					for x := range to.Width {
						v := apply(rows[x:], to.Width, yt[y])
						zero.FromChannels(pixel.Quantize(layout, v.narrow())).Encode(out[o:])
						o += n
					}
				}
			})
		}
	}
}

// apply sums the taps over samples spaced step apart in line.
func apply(line []wide, step int, ts []tap) wide {
	var acc wide
	for _, t := range ts {
		v := line[t.index*step]
		for c := range acc {
			acc[c] += v[c] * t.weight
		}
	}
	return acc
}
