package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/valyala/bytebufferpool"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/format"
)

// BMPZ layout, all integers big endian:
//
//	header: "BMPZ" version:u8 kind:u8 count:u16 compression:u8
//	record: type:u8 format:u8 width:u32 height:u32 depth:u32
//	        paletteBPP:u8 paletteLen:u16 entries
//	        durationMs:u32 payloadLen:u32 payload
//
// payload is the compressed pixel buffer, every depth slice in order.
const (
	bmpzMagic   = "BMPZ"
	bmpzVersion = 1

	bmpzHeaderLen = 9
	recordHeadLen = 1 + 1 + 4 + 4 + 4 + 1 + 2
	recordTailLen = 4 + 4
)

var zstdEncoders [zstd.SpeedBestCompression + 1]sync.Pool

// zstdMaxMemory bounds the window a bmpz stream may ask the decoder for.
const zstdMaxMemory = 1 << 30

var zstdDecoders = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1), zstd.WithDecoderMaxMemory(zstdMaxMemory))
		if err != nil {
			return nil
		}
		return dec
	},
}

func init() {
	for level := zstd.SpeedFastest; level <= zstd.SpeedBestCompression; level++ {
		zstdEncoders[level].New = func() any {
			enc, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderConcurrency(1))
			if err != nil {
				return nil
			}
			return enc
		}
	}
}

func checkLevel(c Compression, level int) error {
	switch c {
	case CompressZstd:
		if level < int(zstd.SpeedFastest) || level > int(zstd.SpeedBestCompression) {
			return fmt.Errorf("codec: zstd level %d: %w", level, bitmap.ErrInvalidArgs)
		}
	case CompressBrotli:
		if level < brotli.BestSpeed || level > brotli.BestCompression {
			return fmt.Errorf("codec: brotli level %d: %w", level, bitmap.ErrInvalidArgs)
		}
	default:
		return fmt.Errorf("codec: compression %d: %w", c, bitmap.ErrInvalidArgs)
	}
	return nil
}

func compress(dst, src []byte, c Compression, level int) ([]byte, error) {
	if c == CompressBrotli {
		buf := bytes.NewBuffer(dst)
		w := brotli.NewWriterLevel(buf, level)
		if _, err := w.Write(src); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	pool := &zstdEncoders[level]
	enc, _ := pool.Get().(*zstd.Encoder)
	if enc == nil {
		return nil, fmt.Errorf("codec: zstd encoder: %w", bitmap.ErrFailed)
	}
	defer pool.Put(enc)
	return enc.EncodeAll(src, dst), nil
}

// decompress inflates src and fails unless it yields exactly want bytes.
// No more than want+1 bytes are ever produced.
func decompress(src []byte, c Compression, want int) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch c {
	case CompressZstd:
		dec, _ := zstdDecoders.Get().(*zstd.Decoder)
		if dec == nil {
			return nil, fmt.Errorf("codec: zstd decoder: %w", bitmap.ErrFailed)
		}
		if err = dec.Reset(bytes.NewReader(src)); err == nil {
			out, err = io.ReadAll(io.LimitReader(dec, int64(want)+1))
		}
		zstdDecoders.Put(dec)
	case CompressBrotli:
		out, err = io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(src)), int64(want)+1))
	default:
		return nil, fmt.Errorf("codec: compression %d: %w", c, ErrCorrupt)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if len(out) != want {
		return nil, fmt.Errorf("codec: payload of %d bytes, want %d: %w", len(out), want, ErrCorrupt)
	}
	return out, nil
}

func encodeBMPZ(w io.Writer, a *bitmap.Array, opts Options) error {
	o, err := optionsAs[*RawOptions](opts)
	if err != nil {
		return err
	}
	if err := checkLevel(o.Compression, o.Level); err != nil {
		return err
	}
	if a.Len() > 0xffff {
		return fmt.Errorf("codec: %d bitmaps: %w", a.Len(), bitmap.ErrInvalidArgs)
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	bb.B = append(bb.B, bmpzMagic...)
	bb.B = append(bb.B, bmpzVersion, byte(a.Kind()))
	bb.B = binary.BigEndian.AppendUint16(bb.B, uint16(a.Len()))
	bb.B = append(bb.B, byte(o.Compression))

	for _, b := range a.Bitmaps() {
		if bb.B, err = appendRecord(bb.B, b, o); err != nil {
			return err
		}
	}
	_, err = bb.WriteTo(w)
	return err
}

func appendRecord(dst []byte, b *bitmap.Bitmap, o *RawOptions) ([]byte, error) {
	pix := make([]byte, b.Len())
	plane := b.PlaneSize()
	for z := range b.Depth() {
		if _, err := b.CopyPixels(pix[z*plane:(z+1)*plane], z); err != nil {
			return nil, err
		}
	}

	size := b.Size()
	dst = append(dst, byte(b.Type()), byte(b.Format()))
	dst = binary.BigEndian.AppendUint32(dst, uint32(size.Width))
	dst = binary.BigEndian.AppendUint32(dst, uint32(size.Height))
	dst = binary.BigEndian.AppendUint32(dst, uint32(size.Depth))
	if p, err := b.Palette(); err == nil {
		dst = append(dst, byte(p.BitsPerPixel()))
		dst = binary.BigEndian.AppendUint16(dst, uint16(p.Len()))
		dst = append(dst, p.Entries()...)
		p.Release()
	} else {
		dst = append(dst, 0, 0, 0)
	}

	d, _ := bitmap.AttributeAs[time.Duration](b, bitmap.AttrFrameDuration)
	dst = binary.BigEndian.AppendUint32(dst, uint32(d/time.Millisecond))

	lenAt := len(dst)
	dst = binary.BigEndian.AppendUint32(dst, 0)
	dst, err := compress(dst, pix, o.Compression, o.Level)
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint32(dst[lenAt:], uint32(len(dst)-lenAt-4))
	return dst, nil
}

func decodeBMPZ(s Stream) (*bitmap.Array, error) {
	var hdr [bmpzHeaderLen]byte
	if _, err := io.ReadFull(s, hdr[:]); err != nil || string(hdr[:4]) != bmpzMagic {
		return nil, fmt.Errorf("codec: not a bmpz stream: %w", bitmap.ErrNotSupported)
	}
	if hdr[4] != bmpzVersion {
		return nil, fmt.Errorf("codec: bmpz version %d: %w", hdr[4], bitmap.ErrNotSupported)
	}
	kind := bitmap.ArrayKind(hdr[5])
	count := int(binary.BigEndian.Uint16(hdr[6:]))
	c := Compression(hdr[8])
	if count == 0 {
		return nil, fmt.Errorf("codec: empty bmpz: %w", ErrCorrupt)
	}

	items := make([]*bitmap.Bitmap, 0, count)
	defer func() {
		for _, b := range items {
			b.Release()
		}
	}()
	for range count {
		b, err := readRecord(s, c)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	a, err := bitmap.NewArray(kind, items...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return a, nil
}

func readRecord(r io.Reader, c Compression) (*bitmap.Bitmap, error) {
	var head [recordHeadLen]byte
	if err := readFull(r, head[:]); err != nil {
		return nil, err
	}
	typ := bitmap.Type(head[0])
	f := format.Format(head[1])
	size := format.Size3D{
		Width:  int(binary.BigEndian.Uint32(head[2:])),
		Height: int(binary.BigEndian.Uint32(head[6:])),
		Depth:  int(binary.BigEndian.Uint32(head[10:])),
	}
	palBPP := int(head[14])
	palLen := int(binary.BigEndian.Uint16(head[15:]))
	if !f.IsValid() || !size.Valid() {
		return nil, fmt.Errorf("codec: record %v %v: %w", f, size, ErrCorrupt)
	}

	var opts []bitmap.Option
	if palBPP != 0 {
		entries := make([]byte, palLen*palBPP/8)
		if err := readFull(r, entries); err != nil {
			return nil, err
		}
		pal, err := bitmap.NewPalette(palBPP, entries)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		defer pal.Release()
		opts = append(opts, bitmap.WithPalette(pal))
	}

	var tail [recordTailLen]byte
	if err := readFull(r, tail[:]); err != nil {
		return nil, err
	}
	duration := time.Duration(binary.BigEndian.Uint32(tail[:])) * time.Millisecond
	payloadLen := int64(binary.BigEndian.Uint32(tail[4:]))
	want := format.TotalSize(f, size)
	if want <= 0 {
		return nil, fmt.Errorf("codec: record %v %v: %w", f, size, ErrCorrupt)
	}
	if int64(want) > bitmap.AllocationLimit() || payloadLen > bitmap.AllocationLimit() {
		return nil, fmt.Errorf("codec: record of %d bytes: %w", want, bitmap.ErrOutOfMemory)
	}

	// The buffer grows with the bytes actually present, not the declared length.
	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, r, payloadLen); err != nil {
		return nil, fmt.Errorf("codec: truncated bmpz payload: %w", ErrCorrupt)
	}
	pix, err := decompress(payload.Bytes(), c, want)
	if err != nil {
		return nil, err
	}
	opts = append(opts, bitmap.WithPixels(pix))

	b, err := bitmap.New(typ, size, f, opts...)
	if err != nil {
		if errors.Is(err, bitmap.ErrOutOfMemory) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if duration > 0 {
		b.SetAttribute(bitmap.AttrFrameDuration, duration)
	}
	return b, nil
}

func readFull(r io.Reader, p []byte) error {
	if _, err := io.ReadFull(r, p); err != nil {
		return fmt.Errorf("codec: truncated bmpz: %w", ErrCorrupt)
	}
	return nil
}
