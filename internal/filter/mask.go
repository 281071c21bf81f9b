package filter

import (
	"fmt"
	"math"

	"github.com/gogpu/bitmap/internal/errs"
)

// MaxElements is the largest number of weights a mask may hold.
const MaxElements = 192

// Mask is a convolution matrix stored row-major.
type Mask struct {
	Width, Height int
	Values        []float32
}

// NewMask validates and copies values into a Mask.
func NewMask(width, height int, values []float32) (Mask, error) {
	m := Mask{Width: width, Height: height, Values: append([]float32(nil), values...)}
	if err := m.Validate(); err != nil {
		return Mask{}, err
	}
	return m, nil
}

// Validate reports whether the mask has odd positive extents, at most
// MaxElements weights and exactly Width*Height values.
func (m Mask) Validate() error {
	switch {
	case m.Width <= 0 || m.Height <= 0 || m.Width%2 == 0 || m.Height%2 == 0:
		return fmt.Errorf("filter: mask %dx%d must have odd extents: %w", m.Width, m.Height, errs.ErrInvalidArgs)
	case m.Width*m.Height > MaxElements:
		return fmt.Errorf("filter: mask %dx%d exceeds %d elements: %w", m.Width, m.Height, MaxElements, errs.ErrInvalidArgs)
	case len(m.Values) != m.Width*m.Height:
		return fmt.Errorf("filter: mask %dx%d has %d values: %w", m.Width, m.Height, len(m.Values), errs.ErrInvalidArgs)
	}
	return nil
}

// At returns the weight at column x, row y.
func (m Mask) At(x, y int) float32 {
	return m.Values[y*m.Width+x]
}

// Sum returns the sum of all weights.
func (m Mask) Sum() float32 {
	var s float32
	for _, v := range m.Values {
		s += v
	}
	return s
}

// Scale returns a copy of the mask with every weight multiplied by s.
func (m Mask) Scale(s float32) Mask {
	out := Mask{Width: m.Width, Height: m.Height, Values: make([]float32, len(m.Values))}
	for i, v := range m.Values {
		out.Values[i] = v * s
	}
	return out
}

// Divide returns a copy of the mask with every weight divided by d.
func (m Mask) Divide(d float32) (Mask, error) {
	if d == 0 {
		return Mask{}, fmt.Errorf("filter: divide mask by zero: %w", errs.ErrInvalidArgs)
	}
	return m.Scale(1 / d), nil
}

// Identity returns an n×n mask that leaves pixels unchanged.
func Identity(n int) (Mask, error) {
	if n <= 0 || n%2 == 0 || n*n > MaxElements {
		return Mask{}, fmt.Errorf("filter: identity size %d: %w", n, errs.ErrInvalidArgs)
	}
	m := Mask{Width: n, Height: n, Values: make([]float32, n*n)}
	m.Values[n*n/2] = 1
	return m, nil
}

// EdgeDetect returns the 3×3 Laplacian edge detector.
func EdgeDetect() Mask {
	return Mask{Width: 3, Height: 3, Values: []float32{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}}
}

// Sharpen returns the 3×3 sharpening mask.
func Sharpen() Mask {
	return Mask{Width: 3, Height: 3, Values: []float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}}
}

// GaussianBlur3x3 returns the 3×3 binomial blur.
func GaussianBlur3x3() Mask {
	m := Mask{Width: 3, Height: 3, Values: []float32{
		1, 2, 1,
		2, 4, 2,
		1, 2, 1,
	}}
	return m.Scale(1.0 / 16)
}

// GaussianBlur5x5 returns the 5×5 binomial blur.
func GaussianBlur5x5() Mask {
	return binomial5().Scale(1.0 / 256)
}

// UnsharpMask returns the 5×5 unsharp mask: twice the pixel minus its
// binomial blur.
func UnsharpMask() Mask {
	m := binomial5()
	m.Values[12] = -476
	return m.Scale(-1.0 / 256)
}

func binomial5() Mask {
	row := [5]float32{1, 4, 6, 4, 1}
	m := Mask{Width: 5, Height: 5, Values: make([]float32, 25)}
	for y := range 5 {
		for x := range 5 {
			m.Values[y*5+x] = row[y] * row[x]
		}
	}
	return m
}

// Gaussian returns a normalized square Gaussian mask with the given standard
// deviation. The mask covers three deviations on each side and must fit in
// MaxElements weights, which limits sigma to 2.
func Gaussian(sigma float64) (Mask, error) {
	k := GaussianKernel(sigma)
	n := len(k)
	if n*n > MaxElements {
		return Mask{}, fmt.Errorf("filter: gaussian sigma %v needs %d elements: %w", sigma, n*n, errs.ErrInvalidArgs)
	}
	m := Mask{Width: n, Height: n, Values: make([]float32, n*n)}
	for y := range n {
		for x := range n {
			m.Values[y*n+x] = k[y] * k[x]
		}
	}
	return m, nil
}

// GaussianKernel generates a normalized 1D Gaussian kernel of size
// 2*ceil(3*sigma)+1. For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float32, 2*half+1)

	twoSigmaSq := 2 * sigma * sigma
	var sum float64
	vals := make([]float64, len(kernel))
	for i := range kernel {
		x := float64(i - half)
		vals[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += vals[i]
	}
	for i, v := range vals {
		kernel[i] = float32(v / sum)
	}
	return kernel
}
