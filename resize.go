package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/resample"
)

// Method selects a resampling kernel.
type Method = resample.Method

// Resampling methods.
const (
	Nearest  = resample.Nearest
	Bilinear = resample.Bilinear
	Bicubic  = resample.Bicubic
	Lanczos1 = resample.Lanczos1
	Lanczos2 = resample.Lanczos2
	Lanczos3 = resample.Lanczos3
	Lanczos4 = resample.Lanczos4
	Lanczos5 = resample.Lanczos5
)

// ParseMethod returns the method with the given case-insensitive name.
func ParseMethod(name string) (Method, bool) {
	return resample.ParseMethod(name)
}

// Resize returns b resampled to size with method m. The format is kept.
//
// Every plain format supports every method; Index8 supports Nearest and
// shares its palette with the result. Depth is mapped proportionally without
// filtering. A Type2D result must keep a depth of 1 and a cube map must keep
// its six faces; violating that, or any zero dimension, is ErrInvalidArgs.
func Resize(b *Bitmap, m Method, size format.Size3D) (*Bitmap, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	if !size.Valid() {
		return nil, fmt.Errorf("bitmap: resize to %dx%dx%d: %w", size.Width, size.Height, size.Depth, ErrInvalidArgs)
	}
	if !m.IsValid() {
		return nil, fmt.Errorf("bitmap: resize method %d: %w", m, ErrInvalidArgs)
	}
	switch {
	case b.typ == Type2D && size.Depth != 1:
		return nil, fmt.Errorf("bitmap: resize 2D bitmap to depth %d: %w", size.Depth, ErrInvalidArgs)
	case b.typ == TypeCube && size.Depth != CubeFaces:
		return nil, fmt.Errorf("bitmap: resize cube map to depth %d: %w", size.Depth, ErrInvalidArgs)
	}
	if !resample.Supported(m, b.format) {
		Logger().Warn("bitmap: no resampling kernel", "method", m, "format", b.format)
		return nil, fmt.Errorf("bitmap: resize %v with %v: %w", b.format, m, ErrNotSupported)
	}

	var pal *Palette
	if b.palette != nil {
		pal = b.palette.Retain()
	}
	out, err := b.derive(size, b.format, pal)
	if err != nil {
		return nil, err
	}
	if err := resample.Resize(m, b.format, out.pix, b.data(), b.size, size); err != nil {
		out.Release()
		return nil, fmt.Errorf("bitmap: resize: %w", err)
	}
	Logger().Debug("bitmap: resize", "method", m, "format", b.format,
		"from", fmt.Sprintf("%dx%dx%d", b.size.Width, b.size.Height, b.size.Depth),
		"to", fmt.Sprintf("%dx%dx%d", size.Width, size.Height, size.Depth))
	return out, nil
}

// CanResize reports whether m has a kernel for f.
func CanResize(m Method, f format.Format) bool {
	return resample.Supported(m, f)
}
