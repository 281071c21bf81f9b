package bitmap

import (
	"fmt"

	"github.com/gogpu/bitmap/internal/errs"
)

// Error kinds. Every error returned by this module wraps exactly one of them.
var (
	// ErrInvalidArgs is returned for malformed or out-of-range input. It is
	// always detected before any allocation.
	ErrInvalidArgs = errs.ErrInvalidArgs

	// ErrNotSupported is returned when no routine exists for the requested
	// combination of formats, methods or operators.
	ErrNotSupported = errs.ErrNotSupported

	// ErrOutOfMemory is returned when a pixel buffer would exceed the
	// allocation limit.
	ErrOutOfMemory = errs.ErrOutOfMemory

	// ErrFailed is returned when a routine ran but could not produce a result.
	ErrFailed = errs.ErrFailed

	// ErrFeatureNotSupported is returned for a valid operation that does not
	// apply to the bitmap it was called on.
	ErrFeatureNotSupported = errs.ErrFeatureNotSupported

	// ErrLocked is returned by Lock while another lock is outstanding, and
	// by mutating operations on a locked bitmap. It wraps ErrInvalidArgs.
	ErrLocked = fmt.Errorf("bitmap: already locked: %w", errs.ErrInvalidArgs)

	// ErrReleased is returned by operations on a bitmap whose last reference
	// has been released. It wraps ErrInvalidArgs.
	ErrReleased = fmt.Errorf("bitmap: released: %w", errs.ErrInvalidArgs)
)
