package codec

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"time"
	"unsafe"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/format"
)

func registerBuiltins(r *Registry) {
	r.AddDecoder("bmpz", decodeBMPZ)
	r.AddDecoder("png", single(png.Decode))
	r.AddDecoder("jpeg", single(jpeg.Decode))
	r.AddDecoder("gif", decodeGIF)
	r.AddDecoder("bmp", single(bmp.Decode))
	r.AddDecoder("tiff", single(tiff.Decode))
	r.AddDecoder("webp", single(webp.Decode))

	r.AddEncoder(KindRaw, unsafe.Sizeof(RawOptions{}), encodeBMPZ)
	r.AddEncoder(KindPNG, unsafe.Sizeof(PNGOptions{}), encodePNG)
	r.AddEncoder(KindJPEG, unsafe.Sizeof(JPEGOptions{}), encodeJPEG)
	r.AddEncoder(KindGIF, unsafe.Sizeof(GIFOptions{}), encodeGIF)
	r.AddEncoder(KindBMP, unsafe.Sizeof(BMPOptions{}), encodeBMP)
	r.AddEncoder(KindTIFF, unsafe.Sizeof(TIFFOptions{}), encodeTIFF)
}

// single adapts a standard still-image decoder.
func single(decode func(io.Reader) (image.Image, error)) Decoder {
	return func(s Stream) (*bitmap.Array, error) {
		m, err := decode(s)
		if err != nil {
			return nil, err
		}
		b, err := FromImage(m)
		if err != nil {
			return nil, err
		}
		defer b.Release()
		return bitmap.NewArray(bitmap.ArrayFrames, b)
	}
}

// decodeGIF composes every frame onto the logical screen and returns one
// RGBA8 bitmap per frame, each carrying AttrFrameDuration.
func decodeGIF(s Stream) (*bitmap.Array, error) {
	g, err := gif.DecodeAll(s)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("codec: gif without frames: %w", ErrCorrupt)
	}
	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, fr := range g.Image {
			screen = screen.Union(fr.Bounds())
		}
	}
	canvas := image.NewNRGBA(screen)

	frames := make([]*bitmap.Bitmap, 0, len(g.Image))
	defer func() {
		for _, b := range frames {
			b.Release()
		}
	}()
	for i, fr := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var saved []byte
		if disposal == gif.DisposalPrevious {
			saved = append(saved, canvas.Pix...)
		}

		draw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)
		b, err := FromImage(canvas)
		if err != nil {
			return nil, err
		}
		frames = append(frames, b)
		if i < len(g.Delay) {
			b.SetAttribute(bitmap.AttrFrameDuration, time.Duration(g.Delay[i])*10*time.Millisecond)
		}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, fr.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, saved)
		}
	}
	return bitmap.NewArray(bitmap.ArrayFrames, frames...)
}

func optionsAs[T Options](opts Options) (T, error) {
	o, ok := opts.(T)
	if !ok {
		return o, fmt.Errorf("codec: options %T for %v: %w", opts, opts.Header().Kind, bitmap.ErrInvalidArgs)
	}
	return o, nil
}

func encodePNG(w io.Writer, a *bitmap.Array, opts Options) error {
	o, err := optionsAs[*PNGOptions](opts)
	if err != nil {
		return err
	}
	m, err := ToImage(a.At(0))
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: o.Compression}
	return enc.Encode(w, m)
}

func encodeJPEG(w io.Writer, a *bitmap.Array, opts Options) error {
	o, err := optionsAs[*JPEGOptions](opts)
	if err != nil {
		return err
	}
	if o.Quality < 1 || o.Quality > 100 {
		return fmt.Errorf("codec: jpeg quality %d: %w", o.Quality, bitmap.ErrInvalidArgs)
	}
	m, err := ToImage(a.At(0))
	if err != nil {
		return err
	}
	return jpeg.Encode(w, m, &jpeg.Options{Quality: o.Quality})
}

func encodeBMP(w io.Writer, a *bitmap.Array, opts Options) error {
	if _, err := optionsAs[*BMPOptions](opts); err != nil {
		return err
	}
	m, err := ToImage(a.At(0))
	if err != nil {
		return err
	}
	return bmp.Encode(w, m)
}

func encodeTIFF(w io.Writer, a *bitmap.Array, opts Options) error {
	o, err := optionsAs[*TIFFOptions](opts)
	if err != nil {
		return err
	}
	m, err := ToImage(a.At(0))
	if err != nil {
		return err
	}
	return tiff.Encode(w, m, &tiff.Options{Compression: o.Compression, Predictor: o.Predictor})
}

// encodeGIF writes every bitmap as a frame. Frames that are not Index8 are
// quantized to a palette of their own.
func encodeGIF(w io.Writer, a *bitmap.Array, opts Options) error {
	o, err := optionsAs[*GIFOptions](opts)
	if err != nil {
		return err
	}
	g := &gif.GIF{LoopCount: o.LoopCount}
	for _, b := range a.Bitmaps() {
		idx, err := bitmap.Reformat(b, format.Index8)
		if err != nil {
			return err
		}
		m, err := ToImage(idx)
		idx.Release()
		if err != nil {
			return err
		}
		g.Image = append(g.Image, m.(*image.Paletted))
		d, _ := bitmap.AttributeAs[time.Duration](b, bitmap.AttrFrameDuration)
		g.Delay = append(g.Delay, int(d/(10*time.Millisecond)))
	}
	return gif.EncodeAll(w, g)
}
