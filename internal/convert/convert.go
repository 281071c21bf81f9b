// Package convert implements the conversion dispatch engine.
//
// A table keyed by (destination, source) format maps to a [Routine] that
// re-encodes a whole pixel volume. The table is built once, on first use,
// from four routine families: plain value-type casts, palette quantization
// and lookup, chroma subsampling and ETC1 block coding. Pairs without a
// direct routine are composed through an intermediate plain format.
package convert

import (
	"fmt"
	"sync"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/errs"
	"github.com/gogpu/bitmap/internal/pool"
)

// Palette is the raw form of a color table: BPP is 24 or 32 and Entries holds
// packed B,G,R[,A] tuples.
type Palette struct {
	BPP     int
	Entries []byte
}

// Routine converts the pixels of src into dst for a volume of the given size.
// dstPal receives the generated color table when the destination is indexed;
// srcPal is read when the source is indexed. The returned count is the number
// of palette entries written, or 0 for non-indexed destinations.
type Routine func(dst, src []byte, size format.Size3D, dstPal, srcPal *Palette) (int, error)

type key struct {
	dst, src format.Format
}

var (
	tableOnce sync.Once
	table     map[key]Routine
)

// Lookup returns the routine converting src to dst.
func Lookup(dst, src format.Format) (Routine, bool) {
	tableOnce.Do(build)
	r, ok := table[key{dst, src}]
	return r, ok
}

// Supported reports whether a routine converts src to dst.
func Supported(dst, src format.Format) bool {
	_, ok := Lookup(dst, src)
	return ok
}

// Convert validates the buffers and runs the routine for (dstFmt, srcFmt).
func Convert(dstFmt, srcFmt format.Format, dst, src []byte, size format.Size3D, dstPal, srcPal *Palette) (int, error) {
	r, ok := Lookup(dstFmt, srcFmt)
	if !ok {
		return 0, fmt.Errorf("convert: %v to %v: %w", srcFmt, dstFmt, errs.ErrNotSupported)
	}
	if !size.Valid() {
		return 0, fmt.Errorf("convert: size %dx%dx%d: %w", size.Width, size.Height, size.Depth, errs.ErrInvalidArgs)
	}
	if len(src) < format.TotalSize(srcFmt, size) || len(dst) < format.TotalSize(dstFmt, size) {
		return 0, fmt.Errorf("convert: buffer too small: %w", errs.ErrInvalidArgs)
	}
	return r(dst, src, size, dstPal, srcPal)
}

func build() {
	table = make(map[key]Routine)

	var plain, indexed, subsampled []format.Format
	for _, f := range format.All() {
		switch {
		case f.IsPlain():
			plain = append(plain, f)
		case f.IsIndexed():
			indexed = append(indexed, f)
		case f.IsSubsampled():
			subsampled = append(subsampled, f)
		}
	}

	for _, d := range plain {
		for _, s := range plain {
			table[key{d, s}] = plainRoutine(d, s)
		}
	}

	for _, x := range indexed {
		table[key{x, x}] = copyRoutine(x)
		for _, s := range plain {
			table[key{x, s}] = toIndexed(x, s)
			table[key{s, x}] = fromIndexed(s, x)
		}
	}

	for _, x := range subsampled {
		pack, unpack := subsampledRoutines(x)
		register(x, format.YUV8, pack, unpack, plain)
		table[key{x, x}] = copyRoutine(x)
	}

	register(format.ETC1, format.RGB8, encodeETC1, decodeETC1, plain)
	table[key{format.ETC1, format.ETC1}] = copyRoutine(format.ETC1)

	// Everything else is composed through a plain hub. Subsampled pairs go
	// through YUV8 to avoid an RGB round trip; all others keep alpha via BGRA8.
	domain := append(append(append([]format.Format{}, indexed...), subsampled...), format.ETC1)
	for _, d := range append(domain, plain...) {
		for _, s := range domain {
			composeMissing(d, s)
			composeMissing(s, d)
		}
	}
}

// register wires a coded format f whose routines read and write hub.
func register(f, hub format.Format, encode, decode Routine, plain []format.Format) {
	table[key{f, hub}] = encode
	table[key{hub, f}] = decode
	for _, s := range plain {
		if s == hub {
			continue
		}
		table[key{f, s}] = chain(encode, hub, table[key{hub, s}])
		table[key{s, f}] = chain(table[key{s, hub}], hub, decode)
	}
}

func composeMissing(d, s format.Format) {
	if _, ok := table[key{d, s}]; ok {
		return
	}
	hub := format.BGRA8
	if d.IsSubsampled() && s.IsSubsampled() {
		hub = format.YUV8
	}
	second, ok1 := table[key{d, hub}]
	first, ok2 := table[key{hub, s}]
	if ok1 && ok2 {
		table[key{d, s}] = chain(second, hub, first)
	}
}

// chain runs first into a pooled hub buffer and second from it.
func chain(second Routine, hub format.Format, first Routine) Routine {
	return func(dst, src []byte, size format.Size3D, dstPal, srcPal *Palette) (int, error) {
		tmp := pool.Get(format.TotalSize(hub, size))
		defer pool.Put(tmp)
		if _, err := first(tmp, src, size, nil, srcPal); err != nil {
			return 0, err
		}
		return second(dst, tmp, size, dstPal, nil)
	}
}

func copyRoutine(f format.Format) Routine {
	return func(dst, src []byte, size format.Size3D, dstPal, srcPal *Palette) (int, error) {
		n := format.TotalSize(f, size)
		copy(dst[:n], src[:n])
		if f.IsIndexed() {
			return copyPalette(dstPal, srcPal)
		}
		return 0, nil
	}
}
