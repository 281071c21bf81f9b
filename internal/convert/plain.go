package convert

import (
	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/pixel"
)

// plainRoutine casts every pixel from s to d. Plain formats are byte aligned,
// so the whole volume is one run of Width*Height*Depth pixels.
func plainRoutine(d, s format.Format) Routine {
	if d == s {
		return copyRoutine(d)
	}
	dc, _ := pixel.CodecFor(d)
	sc, _ := pixel.CodecFor(s)
	xfer := pixel.Transfer(dc, sc)
	dn, sn := dc.Layout().Size, sc.Layout().Size

	return func(dst, src []byte, size format.Size3D, _, _ *Palette) (int, error) {
		n := size.Pixels() * size.Depth
		for i := range n {
			xfer(dst[i*dn:], src[i*sn:])
		}
		return 0, nil
	}
}
