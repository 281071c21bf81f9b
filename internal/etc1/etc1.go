// Package etc1 encodes and decodes ETC1 (Ericsson Texture Compression)
// blocks.
//
// Each 4×4 pixel block is stored as a big-endian 64-bit word holding two
// half-block base colors, two intensity modifier tables and a 2-bit modifier
// index per pixel. The pixel side of this package is always tightly packed
// RGB8; edge blocks of images whose extent is not a multiple of 4 replicate
// the last row and column on encode and drop them on decode.
package etc1

import (
	"encoding/binary"
	"errors"
)

// BlockBytes is the encoded size of one 4×4 block.
const BlockBytes = 8

// ErrShortBuffer is returned when a source or destination slice is too small
// for the given extent.
var ErrShortBuffer = errors.New("etc1: short buffer")

// Block holds the 16 RGB pixels of one block in row-major order.
type Block [16][3]uint8

// modifiers is indexed by table, then by the 2-bit pixel index.
var modifiers = [8][4]int32{
	{2, 8, -2, -8},
	{5, 17, -5, -17},
	{9, 29, -9, -29},
	{13, 42, -13, -42},
	{18, 60, -18, -60},
	{24, 80, -24, -80},
	{33, 106, -33, -106},
	{47, 183, -47, -183},
}

// Luma weights used for the encoder's error metric.
var weights = [3]int32{299, 587, 114}

// EncodedSize returns the number of bytes needed to encode a width×height image.
func EncodedSize(width, height int) int {
	return blocks(width) * blocks(height) * BlockBytes
}

// Encode compresses the RGB8 pixels in src into dst.
func Encode(dst, src []byte, width, height int) error {
	if len(src) < width*height*3 || len(dst) < EncodedSize(width, height) {
		return ErrShortBuffer
	}
	var blk Block
	out := dst
	for by := 0; by < height; by += 4 {
		for bx := 0; bx < width; bx += 4 {
			for y := range 4 {
				sy := min(by+y, height-1)
				for x := range 4 {
					sx := min(bx+x, width-1)
					i := (sy*width + sx) * 3
					blk[y*4+x] = [3]uint8{src[i], src[i+1], src[i+2]}
				}
			}
			binary.BigEndian.PutUint64(out, EncodeBlock(&blk))
			out = out[BlockBytes:]
		}
	}
	return nil
}

// Decode expands the ETC1 blocks in src into RGB8 pixels in dst.
func Decode(dst, src []byte, width, height int) error {
	if len(dst) < width*height*3 || len(src) < EncodedSize(width, height) {
		return ErrShortBuffer
	}
	var blk Block
	in := src
	for by := 0; by < height; by += 4 {
		for bx := 0; bx < width; bx += 4 {
			DecodeBlock(binary.BigEndian.Uint64(in), &blk)
			in = in[BlockBytes:]
			for y := range min(4, height-by) {
				for x := range min(4, width-bx) {
					i := ((by+y)*width + bx + x) * 3
					copy(dst[i:i+3], blk[y*4+x][:])
				}
			}
		}
	}
	return nil
}

// DecodeBlock expands one encoded block.
func DecodeBlock(code uint64, out *Block) {
	var base [2][3]int32
	if code&(1<<33) != 0 {
		for c := range 3 {
			shift := 59 - 8*uint(c)
			b5 := int32(code>>shift) & 0x1f
			d := int32(code>>(shift-3)) & 7
			if d >= 4 {
				d -= 8
			}
			base[0][c] = expand5(b5)
			base[1][c] = expand5((b5 + d) & 0x1f)
		}
	} else {
		for c := range 3 {
			shift := 60 - 8*uint(c)
			base[0][c] = expand4(int32(code>>shift) & 0xf)
			base[1][c] = expand4(int32(code>>(shift-4)) & 0xf)
		}
	}
	tables := [2]int{int(code>>37) & 7, int(code>>34) & 7}
	flip := code&(1<<32) != 0

	for y := range 4 {
		for x := range 4 {
			half := 0
			if (flip && y >= 2) || (!flip && x >= 2) {
				half = 1
			}
			bit := uint(x*4 + y)
			idx := (code>>(bit+16))&1<<1 | (code>>bit)&1
			mod := modifiers[tables[half]][idx]
			for c := range 3 {
				out[y*4+x][c] = clamp8(base[half][c] + mod)
			}
		}
	}
}

// EncodeBlock compresses one block, trying both split orientations and both
// base color modes and keeping the code with the smallest weighted error.
func EncodeBlock(blk *Block) uint64 {
	var best uint64
	bestLoss := int64(-1)
	for flip := range 2 {
		avg0 := average(blk, flip, 0)
		avg1 := average(blk, flip, 1)

		// Differential mode first: 5-bit bases with a 3-bit signed delta.
		b0, b1 := reduce5(avg0), reduce5(avg1)
		var diff [3]int32
		ok := true
		for c := range 3 {
			diff[c] = b1[c] - b0[c]
			if diff[c] < -4 || diff[c] > 3 {
				ok = false
			}
		}
		if ok {
			e0, e1 := expand5x3(b0), expand5x3(b1)
			t0, i0, l0 := encodeHalf(blk, flip, 0, e0)
			t1, i1, l1 := encodeHalf(blk, flip, 1, e1)
			if loss := l0 + l1; bestLoss < 0 || loss < bestLoss {
				bestLoss = loss
				best = uint64(b0[0])<<59 | uint64(diff[0]&7)<<56 |
					uint64(b0[1])<<51 | uint64(diff[1]&7)<<48 |
					uint64(b0[2])<<43 | uint64(diff[2]&7)<<40 |
					uint64(t0)<<37 | uint64(t1)<<34 |
					1<<33 | uint64(flip)<<32 | uint64(i0|i1)
			}
		}

		// Individual mode: two independent 4-bit bases.
		a0, a1 := reduce4(avg0), reduce4(avg1)
		e0, e1 := expand4x3(a0), expand4x3(a1)
		t0, i0, l0 := encodeHalf(blk, flip, 0, e0)
		t1, i1, l1 := encodeHalf(blk, flip, 1, e1)
		if loss := l0 + l1; bestLoss < 0 || loss < bestLoss {
			bestLoss = loss
			best = uint64(a0[0])<<60 | uint64(a1[0])<<56 |
				uint64(a0[1])<<52 | uint64(a1[1])<<48 |
				uint64(a0[2])<<44 | uint64(a1[2])<<40 |
				uint64(t0)<<37 | uint64(t1)<<34 |
				uint64(flip)<<32 | uint64(i0|i1)
		}
	}
	return best
}

// halfPixels yields the (x, y) coordinates of one half-block.
func halfPixels(flip, half int, yield func(x, y int)) {
	for y := range 4 {
		for x := range 4 {
			h := x >> 1
			if flip == 1 {
				h = y >> 1
			}
			if h == half {
				yield(x, y)
			}
		}
	}
}

func average(blk *Block, flip, half int) [3]float64 {
	var sum [3]int32
	halfPixels(flip, half, func(x, y int) {
		for c := range 3 {
			sum[c] += int32(blk[y*4+x][c])
		}
	})
	return [3]float64{float64(sum[0]) / 8, float64(sum[1]) / 8, float64(sum[2]) / 8}
}

// encodeHalf picks the modifier table and per-pixel indexes with the least
// error for one half-block around base.
func encodeHalf(blk *Block, flip, half int, base [3]int32) (table uint32, indexes uint32, loss int64) {
	loss = -1
	for t := range uint32(8) {
		var idx uint32
		var l int64
		halfPixels(flip, half, func(x, y int) {
			px := blk[y*4+x]
			bestJ, bestL := uint32(0), int64(-1)
			for j := range uint32(4) {
				mod := modifiers[t][j]
				var e int64
				for c := range 3 {
					d := int64(clamp8(base[c]+mod)) - int64(px[c])
					e += int64(weights[c]) * d * d
				}
				if bestL < 0 || e < bestL {
					bestJ, bestL = j, e
				}
			}
			bit := uint(x*4 + y)
			idx |= (bestJ>>1)<<(bit+16) | (bestJ&1)<<bit
			l += bestL
		})
		if loss < 0 || l < loss {
			table, indexes, loss = t, idx, l
		}
	}
	return table, indexes, loss
}

func reduce5(avg [3]float64) [3]int32 {
	var out [3]int32
	for c := range 3 {
		out[c] = int32(avg[c]*31/255 + 0.5)
	}
	return out
}

func reduce4(avg [3]float64) [3]int32 {
	var out [3]int32
	for c := range 3 {
		out[c] = int32(avg[c]*15/255 + 0.5)
	}
	return out
}

func expand5x3(v [3]int32) [3]int32 {
	return [3]int32{expand5(v[0]), expand5(v[1]), expand5(v[2])}
}

func expand4x3(v [3]int32) [3]int32 {
	return [3]int32{expand4(v[0]), expand4(v[1]), expand4(v[2])}
}

func expand5(v int32) int32 { return v<<3 | v>>2 }
func expand4(v int32) int32 { return v<<4 | v }

func clamp8(v int32) uint8 {
	return uint8(min(max(v, 0), 255))
}

func blocks(extent int) int {
	return (extent + 3) / 4
}
