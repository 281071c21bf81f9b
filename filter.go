package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/internal/filter"
)

// Mask is a convolution kernel with odd width and height and at most
// MaxMaskElements values, stored row-major.
type Mask = filter.Mask

// MaxMaskElements is the largest number of values a Mask can hold.
const MaxMaskElements = filter.MaxElements

// NewMask creates a mask from row-major values.
func NewMask(width, height int, values []float32) (Mask, error) {
	return filter.NewMask(width, height, values)
}

// IdentityMask returns an n×n mask that reproduces its input.
func IdentityMask(n int) (Mask, error) { return filter.Identity(n) }

// EdgeDetectMask returns a 3×3 Laplacian edge detector.
func EdgeDetectMask() Mask { return filter.EdgeDetect() }

// SharpenMask returns a 3×3 sharpening mask.
func SharpenMask() Mask { return filter.Sharpen() }

// GaussianBlur3x3Mask returns a normalized 3×3 Gaussian blur.
func GaussianBlur3x3Mask() Mask { return filter.GaussianBlur3x3() }

// GaussianBlur5x5Mask returns a normalized 5×5 Gaussian blur.
func GaussianBlur5x5Mask() Mask { return filter.GaussianBlur5x5() }

// UnsharpMask returns a 5×5 unsharp mask.
func UnsharpMask() Mask { return filter.UnsharpMask() }

// GaussianMask returns a normalized square Gaussian of the given sigma.
func GaussianMask(sigma float64) (Mask, error) { return filter.Gaussian(sigma) }

// Filter returns b convolved with m. Samples outside the bitmap clamp to the
// nearest edge pixel and alpha is copied from the source unchanged. Each
// depth slice is filtered on its own.
//
// A mask with an even dimension or too many values is ErrInvalidArgs;
// formats other than the plain ones are ErrNotSupported.
func Filter(b *Bitmap, m Mask) (*Bitmap, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("bitmap: filter: %w", err)
	}
	if _, ok := filter.Lookup(b.format); !ok {
		Logger().Warn("bitmap: no filter kernel", "format", b.format)
		return nil, fmt.Errorf("bitmap: filter %v: %w", b.format, ErrNotSupported)
	}
	out, err := b.derive(b.size, b.format, nil)
	if err != nil {
		return nil, err
	}
	if err := filter.Apply(b.format, out.pix, b.data(), b.size, m); err != nil {
		out.Release()
		return nil, fmt.Errorf("bitmap: filter: %w", err)
	}
	Logger().Debug("bitmap: filter", "format", b.format, "mask", fmt.Sprintf("%dx%d", m.Width, m.Height))
	return out, nil
}
