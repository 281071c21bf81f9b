package pixel

import "github.com/gogpu/bitmap/format"

const (
	formatRGB8  = format.RGB8
	formatBGRA8 = format.BGRA8
)
