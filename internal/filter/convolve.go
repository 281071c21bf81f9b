package filter

import (
	"fmt"
	"sync"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/errs"
	"github.com/gogpu/bitmap/internal/parallel"
	"github.com/gogpu/bitmap/internal/pixel"
)

// Kernel convolves one pixel volume with a validated mask.
type Kernel func(dst, src []byte, size format.Size3D, m Mask)

var (
	tableOnce sync.Once
	table     map[format.Format]Kernel
)

func build() {
	table = map[format.Format]Kernel{
		format.Gray8:      convolve[pixel.Gray8],
		format.Gray16:     convolve[pixel.Gray16],
		format.GrayF32:    convolve[pixel.GrayF32],
		format.GrayAlpha8: convolve[pixel.GrayAlpha8],
		format.RGB8:       convolve[pixel.RGB8],
		format.BGR8:       convolve[pixel.BGR8],
		format.RGBA8:      convolve[pixel.RGBA8],
		format.BGRA8:      convolve[pixel.BGRA8],
		format.ARGB8:      convolve[pixel.ARGB8],
		format.RGB16:      convolve[pixel.RGB16],
		format.RGBA16:     convolve[pixel.RGBA16],
		format.RGBF32:     convolve[pixel.RGBF32],
		format.RGBAF32:    convolve[pixel.RGBAF32],
		format.BGR565:     convolve[pixel.BGR565],
		format.BGRA4444:   convolve[pixel.BGRA4444],
		format.BGRA5551:   convolve[pixel.BGRA5551],
		format.YUV8:       convolve[pixel.YUV8],
		format.HSV8:       convolve[pixel.HSV8],
	}
}

// Lookup returns the convolution kernel of f.
func Lookup(f format.Format) (Kernel, bool) {
	tableOnce.Do(build)
	k, ok := table[f]
	return k, ok
}

// Apply validates the mask and the buffers and convolves src into dst.
func Apply(f format.Format, dst, src []byte, size format.Size3D, m Mask) error {
	if err := m.Validate(); err != nil {
		return err
	}
	k, ok := Lookup(f)
	if !ok {
		return fmt.Errorf("filter: %v: %w", f, errs.ErrNotSupported)
	}
	if !size.Valid() || len(src) < format.TotalSize(f, size) || len(dst) < format.TotalSize(f, size) {
		return fmt.Errorf("filter: buffer too small: %w", errs.ErrInvalidArgs)
	}
	k(dst, src, size, m)
	return nil
}

func convolve[P pixel.Pixel[P]](dst, src []byte, size format.Size3D, m Mask) {
	var zero P
	layout := zero.Layout()
	n := layout.Size
	w, h := size.Width, size.Height

	plane := make([]pixel.Vec, w*h)
	for z := range size.Depth {
		base := z * w * h * n
		for i := range plane {
			plane[i] = zero.Decode(src[base+i*n:]).Channels()
		}
		parallel.Rows(h, w, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				convolveRow(zero, layout, dst[base:], plane, y, w, h, m)
			}
		})
	}
}

func convolveRow[P pixel.Pixel[P]](zero P, layout pixel.Layout, dst []byte, plane []pixel.Vec, y, w, h int, m Mask) {
	n := layout.Size
	hx, hy := m.Width/2, m.Height/2
	for x := range w {
		var acc pixel.Vec
		for my := range m.Height {
			sy := clamp(y+my-hy, 0, h-1)
			for mx := range m.Width {
				wgt := m.Values[my*m.Width+mx]
				if wgt == 0 {
					continue
				}
				sx := clamp(x+mx-hx, 0, w-1)
				acc = pixel.Accumulate(acc, plane[sy*w+sx], wgt)
			}
		}
		if layout.Alpha >= 0 {
			acc[layout.Alpha] = plane[y*w+x][layout.Alpha]
		}
		zero.FromChannels(pixel.Quantize(layout, acc)).Encode(dst[(y*w+x)*n:])
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
