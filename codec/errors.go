package codec

import (
	"fmt"

	"github.com/gogpu/bitmap"
)

// ErrCorrupt is returned when a stream is recognized but malformed. It wraps
// bitmap.ErrFailed.
var ErrCorrupt = fmt.Errorf("codec: corrupt stream: %w", bitmap.ErrFailed)
