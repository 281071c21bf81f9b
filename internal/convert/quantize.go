package convert

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"github.com/gogpu/bitmap/internal/errs"
)

// colorCount is one distinct color of the input and its frequency.
type colorCount struct {
	c     [4]uint8
	count int
}

// box is a run of colorCounts handled as one palette entry.
type box []colorCount

// quantize builds a palette of at most n colors from NRGBA pixel data using
// median cut. Inputs with no more than n distinct colors get an exact palette.
func quantize(pix []uint8, n int) (color.Palette, error) {
	if len(pix) < 4 || n < 1 {
		return nil, fmt.Errorf("convert: quantize %d colors from %d bytes: %w", n, len(pix), errs.ErrFailed)
	}

	hist := make(map[[4]uint8]int)
	for i := 0; i+3 < len(pix); i += 4 {
		hist[[4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}]++
	}
	colors := make([]colorCount, 0, len(hist))
	for c, k := range hist {
		colors = append(colors, colorCount{c: c, count: k})
	}
	slices.SortFunc(colors, func(a, b colorCount) int {
		return cmp.Compare(pack(a.c), pack(b.c))
	})

	if len(colors) <= n {
		pal := make(color.Palette, len(colors))
		for i, cc := range colors {
			pal[i] = color.NRGBA{R: cc.c[0], G: cc.c[1], B: cc.c[2], A: cc.c[3]}
		}
		return pal, nil
	}

	boxes := []box{colors}
	for len(boxes) < n {
		i, ch := widestBox(boxes)
		if i < 0 {
			break
		}
		lo, hi := boxes[i].split(ch)
		boxes[i] = lo
		boxes = append(boxes, hi)
	}

	pal := make(color.Palette, len(boxes))
	for i, b := range boxes {
		pal[i] = b.mean()
	}
	return pal, nil
}

// widestBox returns the splittable box with the largest channel range and
// that channel, or -1 when every box holds a single color.
func widestBox(boxes []box) (int, int) {
	best, bestCh, bestRange := -1, 0, -1
	for i, b := range boxes {
		if len(b) < 2 {
			continue
		}
		for ch := range 4 {
			lo, hi := uint8(255), uint8(0)
			for _, cc := range b {
				lo, hi = min(lo, cc.c[ch]), max(hi, cc.c[ch])
			}
			if r := int(hi) - int(lo); r > bestRange {
				best, bestCh, bestRange = i, ch, r
			}
		}
	}
	return best, bestCh
}

// split sorts the box along ch and cuts it at the pixel-weighted median.
// Both halves are non-empty.
func (b box) split(ch int) (box, box) {
	slices.SortStableFunc(b, func(x, y colorCount) int {
		return cmp.Compare(x.c[ch], y.c[ch])
	})
	total := 0
	for _, cc := range b {
		total += cc.count
	}
	acc, cut := 0, 1
	for i, cc := range b[:len(b)-1] {
		acc += cc.count
		cut = i + 1
		if 2*acc >= total {
			break
		}
	}
	return b[:cut:cut], b[cut:]
}

// mean is the pixel-weighted average color of the box.
func (b box) mean() color.NRGBA {
	var sum [4]int
	total := 0
	for _, cc := range b {
		for ch := range 4 {
			sum[ch] += int(cc.c[ch]) * cc.count
		}
		total += cc.count
	}
	var out [4]uint8
	for ch := range 4 {
		out[ch] = uint8((sum[ch] + total/2) / total)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

func pack(c [4]uint8) uint32 {
	return uint32(c[0])<<24 | uint32(c[1])<<16 | uint32(c[2])<<8 | uint32(c[3])
}
