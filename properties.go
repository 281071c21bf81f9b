package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/format"
)

// Properties describes the content of a bitmap.
type Properties struct {
	// Transparent is set when some pixel has alpha below 255-threshold.
	Transparent bool
	// Grayscale is set when every pixel has red, green and blue within
	// threshold of each other.
	Grayscale bool
	// Palettable is set when the pixels use at most 256 distinct colors.
	Palettable bool
	// Colors is the number of distinct RGBA colors, counted up to 257.
	Colors int
}

// DetermineProperties inspects every pixel of b after conversion to RGBA8.
// threshold is the per-channel tolerance in 0..255 used for the Transparent
// and Grayscale tests.
func DetermineProperties(b *Bitmap, threshold int) (Properties, error) {
	if threshold < 0 || threshold > 255 {
		return Properties{}, fmt.Errorf("bitmap: threshold %d: %w", threshold, ErrInvalidArgs)
	}
	rgba, err := Reformat(b, format.RGBA8)
	if err != nil {
		return Properties{}, err
	}
	defer rgba.Release()

	props := Properties{Grayscale: true}
	seen := make(map[uint32]struct{}, MaxPaletteEntries+1)
	t := int32(threshold)
	pix := rgba.data()
	for i := 0; i < len(pix); i += 4 {
		r, g, bl, a := int32(pix[i]), int32(pix[i+1]), int32(pix[i+2]), int32(pix[i+3])
		if 255-a > t {
			props.Transparent = true
		}
		if props.Grayscale && (abs32(r-g) > t || abs32(g-bl) > t || abs32(r-bl) > t) {
			props.Grayscale = false
		}
		if len(seen) <= MaxPaletteEntries {
			seen[uint32(r)<<24|uint32(g)<<16|uint32(bl)<<8|uint32(a)] = struct{}{}
		}
	}
	props.Colors = len(seen)
	props.Palettable = props.Colors <= MaxPaletteEntries
	return props, nil
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
