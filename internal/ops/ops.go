// Package ops implements per-pixel binary and unary operators.
//
// Kernels are dispatched by (format, operator) and run over every pixel of
// a volume. The destination may alias the first operand, which is how the
// in-place variants of the root package are implemented.
package ops

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/errs"
	"github.com/gogpu/bitmap/internal/pixel"
)

// Binary is a two-operand operator.
type Binary uint8

const (
	Add Binary = iota
	Subtract
	Multiply
	Divide
	And
	Or
	Xor

	binaryCount
)

var binaryNames = [binaryCount]string{"Add", "Subtract", "Multiply", "Divide", "And", "Or", "Xor"}

func (op Binary) String() string {
	if op >= binaryCount {
		return "Unknown"
	}
	return binaryNames[op]
}

// Unary is a one-operand operator.
type Unary uint8

const (
	Negate Unary = iota
	Not
	Invert

	unaryCount
)

var unaryNames = [unaryCount]string{"Negate", "Not", "Invert"}

func (op Unary) String() string {
	if op >= unaryCount {
		return "Unknown"
	}
	return unaryNames[op]
}

// ParseBinary returns the binary operator with the given case-insensitive name.
func ParseBinary(name string) (Binary, bool) {
	for i, n := range binaryNames {
		if strings.EqualFold(n, name) {
			return Binary(i), true
		}
	}
	return 0, false
}

// ParseUnary returns the unary operator with the given case-insensitive name.
func ParseUnary(name string) (Unary, bool) {
	for i, n := range unaryNames {
		if strings.EqualFold(n, name) {
			return Unary(i), true
		}
	}
	return 0, false
}

// BinaryKernel computes dst = a op b over n pixels.
type BinaryKernel func(dst, a, b []byte, n int)

// UnaryKernel computes dst = op a over n pixels.
type UnaryKernel func(dst, a []byte, n int)

type binaryKey struct {
	format format.Format
	op     Binary
}

type unaryKey struct {
	format format.Format
	op     Unary
}

var (
	tableOnce   sync.Once
	binaryTable map[binaryKey]BinaryKernel
	unaryTable  map[unaryKey]UnaryKernel
)

func build() {
	binaryTable = make(map[binaryKey]BinaryKernel)
	unaryTable = make(map[unaryKey]UnaryKernel)

	register[pixel.Gray8](format.Gray8)
	register[pixel.Gray16](format.Gray16)
	register[pixel.GrayF32](format.GrayF32)
	register[pixel.GrayAlpha8](format.GrayAlpha8)
	register[pixel.RGB8](format.RGB8)
	register[pixel.BGR8](format.BGR8)
	register[pixel.RGBA8](format.RGBA8)
	register[pixel.BGRA8](format.BGRA8)
	register[pixel.ARGB8](format.ARGB8)
	register[pixel.RGB16](format.RGB16)
	register[pixel.RGBA16](format.RGBA16)
	register[pixel.RGBF32](format.RGBF32)
	register[pixel.RGBAF32](format.RGBAF32)
	register[pixel.BGR565](format.BGR565)
	register[pixel.BGRA4444](format.BGRA4444)
	register[pixel.BGRA5551](format.BGRA5551)
	register[pixel.YUV8](format.YUV8)
	register[pixel.HSV8](format.HSV8)
}

func register[P pixel.Pixel[P]](f format.Format) {
	binaries := [binaryCount]func(a, b P) P{
		Add:      pixel.Add[P],
		Subtract: pixel.Sub[P],
		Multiply: pixel.Mul[P],
		Divide:   pixel.Div[P],
		And:      pixel.And[P],
		Or:       pixel.Or[P],
		Xor:      pixel.Xor[P],
	}
	for op, fn := range binaries {
		binaryTable[binaryKey{f, Binary(op)}] = binaryKernel(fn)
	}

	unaries := [unaryCount]func(a P) P{
		Negate: pixel.Negate[P],
		Not:    pixel.Not[P],
		Invert: pixel.Invert[P],
	}
	for op, fn := range unaries {
		unaryTable[unaryKey{f, Unary(op)}] = unaryKernel(fn)
	}
}

func binaryKernel[P pixel.Pixel[P]](fn func(a, b P) P) BinaryKernel {
	var zero P
	size := zero.Layout().Size
	return func(dst, a, b []byte, n int) {
		for i := range n {
			o := i * size
			fn(zero.Decode(a[o:]), zero.Decode(b[o:])).Encode(dst[o:])
		}
	}
}

func unaryKernel[P pixel.Pixel[P]](fn func(a P) P) UnaryKernel {
	var zero P
	size := zero.Layout().Size
	return func(dst, a []byte, n int) {
		for i := range n {
			o := i * size
			fn(zero.Decode(a[o:])).Encode(dst[o:])
		}
	}
}

// LookupBinary returns the kernel of op for f.
func LookupBinary(f format.Format, op Binary) (BinaryKernel, bool) {
	tableOnce.Do(build)
	k, ok := binaryTable[binaryKey{f, op}]
	return k, ok
}

// LookupUnary returns the kernel of op for f.
func LookupUnary(f format.Format, op Unary) (UnaryKernel, bool) {
	tableOnce.Do(build)
	k, ok := unaryTable[unaryKey{f, op}]
	return k, ok
}

// ApplyBinary runs op over a volume of size in format f.
func ApplyBinary(f format.Format, op Binary, dst, a, b []byte, size format.Size3D) error {
	k, ok := LookupBinary(f, op)
	if !ok {
		return fmt.Errorf("ops: %v on %v: %w", op, f, errs.ErrNotSupported)
	}
	total := format.TotalSize(f, size)
	if !size.Valid() || len(dst) < total || len(a) < total || len(b) < total {
		return fmt.Errorf("ops: buffer too small: %w", errs.ErrInvalidArgs)
	}
	k(dst, a, b, size.Pixels()*size.Depth)
	return nil
}

// ApplyUnary runs op over a volume of size in format f.
func ApplyUnary(f format.Format, op Unary, dst, a []byte, size format.Size3D) error {
	k, ok := LookupUnary(f, op)
	if !ok {
		return fmt.Errorf("ops: %v on %v: %w", op, f, errs.ErrNotSupported)
	}
	total := format.TotalSize(f, size)
	if !size.Valid() || len(dst) < total || len(a) < total {
		return fmt.Errorf("ops: buffer too small: %w", errs.ErrInvalidArgs)
	}
	k(dst, a, size.Pixels()*size.Depth)
	return nil
}
