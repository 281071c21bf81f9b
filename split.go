package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/format"
)

// SplitRGB separates b into Gray8 planes of its red, green, blue and alpha
// channels. alpha is nil when the format has no alpha channel. Any format
// that converts to RGBA8 is accepted.
func SplitRGB(b *Bitmap) (r, g, bl, alpha *Bitmap, err error) {
	rgba, err := Reformat(b, format.RGBA8)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	defer rgba.Release()

	n := 3
	if b.format.HasAlpha() {
		n = 4
	}
	planes := make([]*Bitmap, 4)
	for c := range n {
		p, err := rgba.derive(rgba.size, format.Gray8, nil)
		if err != nil {
			for _, done := range planes[:c] {
				done.Release()
			}
			return nil, nil, nil, nil, err
		}
		src, dst := rgba.data(), p.data()
		for i := range dst {
			dst[i] = src[i*4+c]
		}
		planes[c] = p
	}
	return planes[0], planes[1], planes[2], planes[3], nil
}

// JoinRGB combines Gray8 planes into an RGB8 bitmap, or RGBA8 when alpha is
// not nil. The planes must share type and size.
func JoinRGB(r, g, bl, alpha *Bitmap) (*Bitmap, error) {
	planes := []*Bitmap{r, g, bl}
	f := format.RGB8
	if alpha != nil {
		planes = append(planes, alpha)
		f = format.RGBA8
	}
	for i, p := range planes {
		if p == nil {
			return nil, fmt.Errorf("bitmap: join plane %d missing: %w", i, ErrInvalidArgs)
		}
		if err := p.checkAccess(false); err != nil {
			return nil, err
		}
		if p.format != format.Gray8 || p.typ != r.typ || p.size != r.size {
			return nil, fmt.Errorf("bitmap: join plane %d is %v %v, want Gray8 %v: %w", i, p.format, p.size, r.size, ErrInvalidArgs)
		}
	}
	out, err := r.derive(r.size, f, nil)
	if err != nil {
		return nil, err
	}
	n := len(planes)
	dst := out.data()
	for c, p := range planes {
		for i, v := range p.data() {
			dst[i*n+c] = v
		}
	}
	return out, nil
}
