package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/convert"
)

// Reformat returns b re-encoded in format f.
//
// When f equals b's format the result is b itself with an extra reference.
// Conversions to an indexed format quantize a new palette with median cut
// and map pixels with Floyd-Steinberg dithering, unless WithTargetPalette
// supplies a fixed one. Lossy pairs (anything to an indexed, subsampled or
// ETC1 format) do not round trip exactly.
//
// Pairs without a routine, including every BC6H, BC7, ASTC and PVRTC
// conversion, fail with ErrNotSupported.
func Reformat(b *Bitmap, f format.Format, opts ...ReformatOption) (*Bitmap, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	if f == b.format {
		return b.Retain(), nil
	}
	if !f.IsValid() {
		return nil, fmt.Errorf("bitmap: reformat to format %d: %w", f, ErrInvalidArgs)
	}
	o := defaultReformatOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !convert.Supported(f, b.format) {
		Logger().Warn("bitmap: no conversion route", "from", b.format, "to", f)
		return nil, fmt.Errorf("bitmap: reformat %v to %v: %w", b.format, f, ErrNotSupported)
	}

	var dstPal *convert.Palette
	if f.IsIndexed() {
		switch {
		case o.palette != nil:
			if n := o.palette.Len(); n == 0 || n > f.PaletteEntries() {
				return nil, fmt.Errorf("bitmap: %d palette entries for %v: %w", n, f, ErrInvalidArgs)
			}
			dstPal = o.palette.convert()
		case o.paletteBPP == 24 || o.paletteBPP == 32:
			dstPal = &convert.Palette{BPP: o.paletteBPP}
		default:
			return nil, fmt.Errorf("bitmap: palette bpp %d: %w", o.paletteBPP, ErrInvalidArgs)
		}
	}

	out, err := b.derive(b.size, f, nil)
	if err != nil {
		return nil, err
	}
	n, err := convert.Convert(f, b.format, out.pix, b.data(), b.size, dstPal, b.palette.convert())
	if err != nil {
		out.Release()
		return nil, fmt.Errorf("bitmap: reformat %v to %v: %w", b.format, f, err)
	}
	if dstPal != nil {
		if o.palette != nil {
			out.palette = o.palette.Retain()
		} else {
			out.palette = newPalette(dstPal.BPP, dstPal.Entries[:n*dstPal.BPP/8])
		}
	}

	Logger().Debug("bitmap: reformat", "from", b.format, "to", f,
		"width", b.size.Width, "height", b.size.Height, "depth", b.size.Depth, "palette", n)
	return out, nil
}

// CanReformat reports whether a conversion from src to dst is registered.
func CanReformat(dst, src format.Format) bool {
	return dst == src || convert.Supported(dst, src)
}
