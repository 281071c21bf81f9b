package format

import (
	"math"
	"math/bits"
)

// MaxExtent is the largest width, height or depth the layout functions
// accept.
const MaxExtent = 1 << 30

// Size3D is a bitmap extent. Depth is the slice count of a volume or the face
// count of a cube map; plain 2D bitmaps use a depth of 1.
type Size3D struct {
	Width, Height, Depth int
}

// Size2D returns a Size3D with a depth of 1.
func Size2D(width, height int) Size3D {
	return Size3D{Width: width, Height: height, Depth: 1}
}

// Valid reports whether every extent is positive.
func (s Size3D) Valid() bool {
	return s.Width > 0 && s.Height > 0 && s.Depth > 0
}

// Pixels returns the number of pixels in one depth slice.
func (s Size3D) Pixels() int {
	return s.Width * s.Height
}

// Stride returns the number of bytes in one scanline of the given width.
//
// For 4:2:0 formats this is the stride of the luma plane. For block-compressed
// formats it is the size of one row of blocks. It returns 0 for an unknown
// format or a width outside 1..MaxExtent.
func Stride(f Format, width int) int {
	if !f.IsValid() || width <= 0 || width > MaxExtent {
		return 0
	}
	switch f {
	case Index1:
		return (width + 7) / 8
	case Index4:
		return (width + 1) / 2
	case YUYV, UYVY:
		// Two luma samples share one chroma pair: 4 bytes per 2 pixels.
		return ((width + 1) / 2) * 4
	case NV12, NV21:
		return width
	case PVRTC4:
		return max(width, 8) / 2
	case PVRTC2:
		return max(width, 16) / 4
	}
	info := infoTable[f]
	if info.Compressed {
		return max(mul(blocks(width, info.BlockWidth), info.BlockBytes), 0)
	}
	return max(mul(info.BitsPerPixel/8, width), 0)
}

// PlaneSize returns the number of bytes in one depth slice. It returns 0 for
// an unknown format, an extent outside 1..MaxExtent or a size that does not
// fit in an int.
func PlaneSize(f Format, width, height int) int {
	if !f.IsValid() || width <= 0 || height <= 0 || width > MaxExtent || height > MaxExtent {
		return 0
	}
	var n int
	switch f {
	case NV12, NV21:
		// Full luma plane, then an interleaved chroma plane at half resolution
		// with both extents rounded up to even.
		n = add(mul(width, height), div(mul(evenUp(width), evenUp(height)), 2))
	case PVRTC4:
		n = div(mul(max(width, 8), max(height, 8)), 2)
	case PVRTC2:
		n = div(mul(max(width, 16), max(height, 8)), 4)
	default:
		if info := infoTable[f]; info.Compressed {
			n = mul(mul(blocks(width, info.BlockWidth), blocks(height, info.BlockHeight)), info.BlockBytes)
		} else {
			n = mul(Stride(f, width), height)
		}
	}
	return max(n, 0)
}

// TotalSize returns the number of bytes for all depth slices, or 0 when
// PlaneSize is 0, the depth is outside 1..MaxExtent or the product does not
// fit in an int.
func TotalSize(f Format, size Size3D) int {
	if size.Depth <= 0 || size.Depth > MaxExtent {
		return 0
	}
	return max(mul(PlaneSize(f, size.Width, size.Height), size.Depth), 0)
}

// mul returns a*b, or -1 when an operand is negative or the product
// overflows.
func mul(a, b int) int {
	if a < 0 || b < 0 {
		return -1
	}
	hi, lo := bits.Mul(uint(a), uint(b))
	if hi != 0 || lo > math.MaxInt {
		return -1
	}
	return int(lo)
}

func div(a, d int) int {
	if a < 0 {
		return -1
	}
	return a / d
}

// add returns a+b, or -1 under the same conditions as mul.
func add(a, b int) int {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return -1
	}
	return a + b
}

// MipSize returns the extent of mip level n of a chain whose base is size.
// Every extent halves per level and never drops below 1. The face count of a
// cube map stays constant.
func MipSize(level int, size Size3D, isCube bool) Size3D {
	if level < 0 {
		level = 0
	}
	out := Size3D{
		Width:  max(1, size.Width>>level),
		Height: max(1, size.Height>>level),
		Depth:  max(1, size.Depth>>level),
	}
	if isCube {
		out.Depth = size.Depth
	}
	return out
}

// MaxMipLevels returns the length of a full mip chain for size.
func MaxMipLevels(size Size3D, isCube bool) int {
	extent := max(size.Width, size.Height)
	if !isCube {
		extent = max(extent, size.Depth)
	}
	if extent <= 0 {
		return 0
	}
	return bits.Len(uint(extent))
}

func blocks(extent, block int) int {
	return (extent + block - 1) / block
}

func evenUp(v int) int {
	return (v + 1) &^ 1
}
