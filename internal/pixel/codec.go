package pixel

import (
	"image/color"

	"github.com/gogpu/bitmap/format"
)

// Codec reads and writes one plain format without knowing its value type.
// It is the non-generic face of a value type, used by the conversion engine.
type Codec interface {
	Layout() Layout
	Load(b []byte) color.NRGBA64
	Store(b []byte, c color.NRGBA64)
}

// FloatCodec is implemented by codecs of float formats.
type FloatCodec interface {
	Codec
	LoadFloat(b []byte) RGBAF
	StoreFloat(b []byte, c RGBAF)
}

type codec[P Pixel[P]] struct{}

func (codec[P]) Layout() Layout {
	var zero P
	return zero.Layout()
}

func (codec[P]) Load(b []byte) color.NRGBA64 {
	var zero P
	return zero.Decode(b).NRGBA64()
}

func (codec[P]) Store(b []byte, c color.NRGBA64) {
	var zero P
	zero.FromNRGBA64(c).Encode(b)
}

type floatCodec[P Pixel[P]] struct {
	codec[P]
}

func (floatCodec[P]) LoadFloat(b []byte) RGBAF {
	var zero P
	return any(zero.Decode(b)).(floatPixel[P]).RGBAF()
}

func (floatCodec[P]) StoreFloat(b []byte, c RGBAF) {
	var zero P
	any(zero).(floatPixel[P]).FromRGBAF(c).Encode(b)
}

// CodecOf returns the codec of a value type.
func CodecOf[P Pixel[P]]() Codec {
	var zero P
	if _, ok := any(zero).(floatPixel[P]); ok {
		return floatCodec[P]{}
	}
	return codec[P]{}
}

var codecs = map[format.Format]Codec{
	format.Gray8:      CodecOf[Gray8](),
	format.Gray16:     CodecOf[Gray16](),
	format.GrayF32:    CodecOf[GrayF32](),
	format.GrayAlpha8: CodecOf[GrayAlpha8](),
	format.RGB8:       CodecOf[RGB8](),
	format.BGR8:       CodecOf[BGR8](),
	format.RGBA8:      CodecOf[RGBA8](),
	format.BGRA8:      CodecOf[BGRA8](),
	format.ARGB8:      CodecOf[ARGB8](),
	format.RGB16:      CodecOf[RGB16](),
	format.RGBA16:     CodecOf[RGBA16](),
	format.RGBF32:     CodecOf[RGBF32](),
	format.RGBAF32:    CodecOf[RGBAF32](),
	format.BGR565:     CodecOf[BGR565](),
	format.BGRA4444:   CodecOf[BGRA4444](),
	format.BGRA5551:   CodecOf[BGRA5551](),
	format.YUV8:       CodecOf[YUV8](),
	format.HSV8:       CodecOf[HSV8](),
}

// CodecFor returns the codec of a plain format.
func CodecFor(f format.Format) (Codec, bool) {
	c, ok := codecs[f]
	return c, ok
}

// Transfer returns a function that re-encodes one pixel from src to dst.
// Float to float transfers keep full float precision.
func Transfer(dst, src Codec) func(d, s []byte) {
	if df, ok := dst.(FloatCodec); ok {
		if sf, ok := src.(FloatCodec); ok {
			return func(d, s []byte) { df.StoreFloat(d, sf.LoadFloat(s)) }
		}
	}
	return func(d, s []byte) { dst.Store(d, src.Load(s)) }
}
