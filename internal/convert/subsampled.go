package convert

import (
	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/etc1"
)

// Byte offsets of Y0, U, Y1 and V inside one 4:2:2 pixel pair.
var packedOrder = map[format.Format][4]int{
	format.YUYV: {0, 1, 2, 3},
	format.UYVY: {1, 0, 3, 2},
}

// subsampledRoutines returns the pack (from YUV8) and unpack (to YUV8)
// routines of a chroma-subsampled format.
func subsampledRoutines(f format.Format) (pack, unpack Routine) {
	switch f {
	case format.NV12:
		return packNV(0, 1), unpackNV(0, 1)
	case format.NV21:
		return packNV(1, 0), unpackNV(1, 0)
	}
	o := packedOrder[f]
	return pack422(o), unpack422(o)
}

// pack422 stores full-resolution luma and one chroma pair, averaged over the
// two horizontal neighbors, per pixel pair. An odd trailing pixel fills both
// luma slots of its pair.
func pack422(o [4]int) Routine {
	return func(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
		w := size.Width
		stride := format.Stride(format.YUYV, w)
		for y := range size.Height * size.Depth {
			in := src[y*w*3:]
			out := dst[y*stride:]
			for x := 0; x < w; x += 2 {
				a := in[x*3 : x*3+3]
				b := a
				if x+1 < w {
					b = in[x*3+3 : x*3+6]
				}
				pair := out[x*2 : x*2+4]
				pair[o[0]] = a[0]
				pair[o[2]] = b[0]
				pair[o[1]] = avg2(a[1], b[1])
				pair[o[3]] = avg2(a[2], b[2])
			}
		}
		return 0, nil
	}
}

func unpack422(o [4]int) Routine {
	return func(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
		w := size.Width
		stride := format.Stride(format.YUYV, w)
		for y := range size.Height * size.Depth {
			in := src[y*stride:]
			out := dst[y*w*3:]
			for x := range w {
				pair := in[(x/2)*4 : (x/2)*4+4]
				luma := pair[o[0]]
				if x&1 == 1 {
					luma = pair[o[2]]
				}
				p := out[x*3 : x*3+3]
				p[0], p[1], p[2] = luma, pair[o[1]], pair[o[3]]
			}
		}
		return 0, nil
	}
}

// packNV writes the luma plane followed by an interleaved chroma plane at half
// resolution, both extents rounded up to even, sampling chroma at even (x, y).
// u and v are the byte offsets of the two chroma samples within a pair.
func packNV(u, v int) Routine {
	return func(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
		w, h := size.Width, size.Height
		plane := format.PlaneSize(format.NV12, w, h)
		cw := (w + 1) &^ 1
		for z := range size.Depth {
			in := src[z*w*h*3:]
			out := dst[z*plane:]
			for i := range w * h {
				out[i] = in[i*3]
			}
			chroma := out[w*h:]
			for cy := 0; cy < h; cy += 2 {
				row := chroma[(cy/2)*cw:]
				for cx := 0; cx < w; cx += 2 {
					p := in[(min(cy, h-1)*w+min(cx, w-1))*3:]
					row[cx+u] = p[1]
					row[cx+v] = p[2]
				}
			}
		}
		return 0, nil
	}
}

func unpackNV(u, v int) Routine {
	return func(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
		w, h := size.Width, size.Height
		plane := format.PlaneSize(format.NV12, w, h)
		cw := (w + 1) &^ 1
		for z := range size.Depth {
			in := src[z*plane:]
			out := dst[z*w*h*3:]
			chroma := in[w*h:]
			for y := range h {
				row := chroma[(y/2)*cw:]
				for x := range w {
					c := row[x&^1:]
					p := out[(y*w+x)*3:]
					p[0], p[1], p[2] = in[y*w+x], c[u], c[v]
				}
			}
		}
		return 0, nil
	}
}

func avg2(a, b uint8) uint8 {
	return uint8((uint16(a) + uint16(b) + 1) >> 1)
}

// encodeETC1 compresses RGB8 slices into ETC1 blocks.
func encodeETC1(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
	w, h := size.Width, size.Height
	plane := format.PlaneSize(format.ETC1, w, h)
	for z := range size.Depth {
		if err := etc1.Encode(dst[z*plane:], src[z*w*h*3:], w, h); err != nil {
			return 0, err
		}
	}
	return 0, nil
}

// decodeETC1 expands ETC1 blocks into RGB8 slices.
func decodeETC1(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
	w, h := size.Width, size.Height
	plane := format.PlaneSize(format.ETC1, w, h)
	for z := range size.Depth {
		if err := etc1.Decode(dst[z*w*h*3:], src[z*plane:], w, h); err != nil {
			return 0, err
		}
	}
	return 0, nil
}
