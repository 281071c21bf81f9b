package bitmap

import (
	"fmt"
	"math"

	"github.com/gogpu/bitmap/format"
)

// Channel selects one of the four logical channel slots of a pixel, in
// storage order: for BGRA8 ChannelFirst is blue, for ARGB8 it is alpha.
type Channel uint8

const (
	ChannelFirst Channel = iota
	ChannelSecond
	ChannelThird
	ChannelFourth
)

// HistogramBins is the number of bins of a Histogram.
const HistogramBins = 256

// Histogram counts the values of one channel over one depth slice and can
// derive an equalization table from those counts.
type Histogram struct {
	channel    Channel
	bins       [HistogramBins]int
	total      int
	remap      [HistogramBins]uint8
	calculated bool
}

// GenerateHistogram counts channel ch of depth slice depth.
//
// Formats whose channels are whole bytes are supported (Gray8, GrayAlpha8,
// the 8-bit RGB and BGR orders, YUV8, HSV8 and Index8). Selecting a channel
// the format does not have is ErrInvalidArgs.
func GenerateHistogram(b *Bitmap, ch Channel, depth int) (*Histogram, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	bpp, err := histogramLayout(b.format, ch)
	if err != nil {
		return nil, err
	}
	if err := b.checkDepth(depth); err != nil {
		return nil, err
	}
	h := &Histogram{channel: ch}
	plane := b.plane(depth)
	for i := int(ch); i < len(plane); i += bpp {
		h.bins[plane[i]]++
	}
	h.total = b.size.Pixels()
	return h, nil
}

func histogramLayout(f format.Format, ch Channel) (int, error) {
	if int(ch) >= f.Channels() {
		return 0, fmt.Errorf("bitmap: channel %d of %d-channel %v: %w", ch, f.Channels(), f, ErrInvalidArgs)
	}
	bpp := f.BytesPerPixel()
	if bpp == 0 || bpp != f.Channels() {
		return 0, fmt.Errorf("bitmap: histogram of %v: %w", f, ErrNotSupported)
	}
	return bpp, nil
}

// Channel returns the channel the histogram was built from.
func (h *Histogram) Channel() Channel { return h.channel }

// Bin returns the count of value v.
func (h *Histogram) Bin(v uint8) int { return h.bins[v] }

// Bins returns all counts.
func (h *Histogram) Bins() [HistogramBins]int { return h.bins }

// Total returns the number of pixels counted.
func (h *Histogram) Total() int { return h.total }

// Equalize computes the remap table round(cdf(v) / total * 255).
func (h *Histogram) Equalize() {
	running := 0
	for v, n := range h.bins {
		running += n
		h.remap[v] = uint8(math.Round(float64(running) / float64(h.total) * 255))
	}
	h.calculated = true
}

// Calculated reports whether Equalize has run.
func (h *Histogram) Calculated() bool { return h.calculated }

// Remap returns the equalization table and whether it has been calculated.
func (h *Histogram) Remap() ([HistogramBins]uint8, bool) {
	return h.remap, h.calculated
}

// ApplyHistogram returns a copy of b with the histogram's channel remapped
// through its equalization table in every depth slice. Other channels are
// copied unchanged. The histogram must have been equalized.
func ApplyHistogram(b *Bitmap, h *Histogram) (*Bitmap, error) {
	if err := b.checkAccess(false); err != nil {
		return nil, err
	}
	if !h.calculated {
		return nil, fmt.Errorf("bitmap: histogram not equalized: %w", ErrInvalidArgs)
	}
	bpp, err := histogramLayout(b.format, h.channel)
	if err != nil {
		return nil, err
	}
	out, err := Clone(b)
	if err != nil {
		return nil, err
	}
	pix := out.data()
	for i := int(h.channel); i < len(pix); i += bpp {
		pix[i] = h.remap[pix[i]]
	}
	return out, nil
}

// AutoEqualize builds the histogram of channel ch in depth slice depth,
// equalizes it and applies it to b.
func AutoEqualize(b *Bitmap, ch Channel, depth int) (*Bitmap, error) {
	h, err := GenerateHistogram(b, ch, depth)
	if err != nil {
		return nil, err
	}
	h.Equalize()
	return ApplyHistogram(b, h)
}
