// Package resample implements the resampling engine.
//
// Kernels are looked up by (method, format). Every plain format gets all
// methods through one generic kernel per value type; Index8 only supports
// Nearest, which copies indexes and never blends them. Width and height are
// filtered; depth slices are picked by proportional index mapping.
package resample

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/errs"
	"github.com/gogpu/bitmap/internal/pixel"
)

// Method selects the resampling filter.
type Method uint8

const (
	// Nearest picks the source pixel floor(i*src/dst) on each axis.
	Nearest Method = iota

	// Bilinear blends the two nearest samples per axis.
	Bilinear

	// Bicubic uses Catmull-Rom weights on a 4×4 neighborhood.
	Bicubic

	// Lanczos1 to Lanczos5 use a sinc-windowed sinc with that many lobes.
	Lanczos1
	Lanczos2
	Lanczos3
	Lanczos4
	Lanczos5

	methodCount
)

var methodNames = [methodCount]string{
	"Nearest", "Bilinear", "Bicubic",
	"Lanczos1", "Lanczos2", "Lanczos3", "Lanczos4", "Lanczos5",
}

// String returns the method name.
func (m Method) String() string {
	if m >= methodCount {
		return "Unknown"
	}
	return methodNames[m]
}

// IsValid reports whether m is a known method.
func (m Method) IsValid() bool {
	return m < methodCount
}

// ParseMethod returns the method with the given case-insensitive name.
func ParseMethod(name string) (Method, bool) {
	for m, n := range methodNames {
		if strings.EqualFold(n, name) {
			return Method(m), true
		}
	}
	return 0, false
}

// window returns the Lanczos lobe count, or 0 for other methods.
func (m Method) window() int {
	if m >= Lanczos1 && m <= Lanczos5 {
		return int(m-Lanczos1) + 1
	}
	return 0
}

// Kernel resamples a pixel volume of size from into a volume of size to.
type Kernel func(dst, src []byte, from, to format.Size3D)

type key struct {
	method Method
	format format.Format
}

var (
	tableOnce sync.Once
	table     map[key]Kernel
)

func build() {
	table = make(map[key]Kernel)
	for m := range methodCount {
		registerPlain[pixel.Gray8](m, format.Gray8)
		registerPlain[pixel.Gray16](m, format.Gray16)
		registerPlain[pixel.GrayF32](m, format.GrayF32)
		registerPlain[pixel.GrayAlpha8](m, format.GrayAlpha8)
		registerPlain[pixel.RGB8](m, format.RGB8)
		registerPlain[pixel.BGR8](m, format.BGR8)
		registerPlain[pixel.RGBA8](m, format.RGBA8)
		registerPlain[pixel.BGRA8](m, format.BGRA8)
		registerPlain[pixel.ARGB8](m, format.ARGB8)
		registerPlain[pixel.RGB16](m, format.RGB16)
		registerPlain[pixel.RGBA16](m, format.RGBA16)
		registerPlain[pixel.RGBF32](m, format.RGBF32)
		registerPlain[pixel.RGBAF32](m, format.RGBAF32)
		registerPlain[pixel.BGR565](m, format.BGR565)
		registerPlain[pixel.BGRA4444](m, format.BGRA4444)
		registerPlain[pixel.BGRA5551](m, format.BGRA5551)
		registerPlain[pixel.YUV8](m, format.YUV8)
		registerPlain[pixel.HSV8](m, format.HSV8)
	}
	table[key{Nearest, format.Index8}] = nearest(1)
}

func registerPlain[P pixel.Pixel[P]](m Method, f format.Format) {
	if m == Nearest {
		table[key{m, f}] = nearest(f.BytesPerPixel())
		return
	}
	table[key{m, f}] = separable[P](m)
}

// Lookup returns the kernel for (m, f).
func Lookup(m Method, f format.Format) (Kernel, bool) {
	tableOnce.Do(build)
	k, ok := table[key{m, f}]
	return k, ok
}

// Supported reports whether (m, f) has a kernel.
func Supported(m Method, f format.Format) bool {
	_, ok := Lookup(m, f)
	return ok
}

// Resize validates the request and runs the kernel for (m, f).
func Resize(m Method, f format.Format, dst, src []byte, from, to format.Size3D) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("resample: %dx%dx%d to %dx%dx%d: %w",
			from.Width, from.Height, from.Depth, to.Width, to.Height, to.Depth, errs.ErrInvalidArgs)
	}
	k, ok := Lookup(m, f)
	if !ok {
		return fmt.Errorf("resample: %v for %v: %w", m, f, errs.ErrNotSupported)
	}
	if len(src) < format.TotalSize(f, from) || len(dst) < format.TotalSize(f, to) {
		return fmt.Errorf("resample: buffer too small: %w", errs.ErrInvalidArgs)
	}
	k(dst, src, from, to)
	return nil
}

// nearest copies whole pixels of n bytes.
func nearest(n int) Kernel {
	return func(dst, src []byte, from, to format.Size3D) {
		xs := make([]int, to.Width)
		for x := range xs {
			xs[x] = x * from.Width / to.Width * n
		}
		o := 0
		for z := range to.Depth {
			sz := z * from.Depth / to.Depth
			for y := range to.Height {
				sy := y * from.Height / to.Height
				row := src[((sz*from.Height)+sy)*from.Width*n:]
				for _, sx := range xs {
					copy(dst[o:o+n], row[sx:sx+n])
					o += n
				}
			}
		}
	}
}
