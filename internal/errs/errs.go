// Package errs holds the error kinds shared by the bitmap engines.
//
// The root package re-exports these values; internal engines wrap them with
// context using fmt.Errorf and %w so callers can match with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidArgs is returned for malformed or out-of-range input.
	ErrInvalidArgs = errors.New("bitmap: invalid arguments")

	// ErrNotSupported is returned when no routine is registered for the
	// requested combination.
	ErrNotSupported = errors.New("bitmap: not supported")

	// ErrOutOfMemory is returned when an allocation would exceed the limit.
	ErrOutOfMemory = errors.New("bitmap: out of memory")

	// ErrFailed is returned when a registered routine ran but reported failure.
	ErrFailed = errors.New("bitmap: operation failed")

	// ErrFeatureNotSupported is returned for a valid operation that does not
	// apply to the bitmap, such as asking a non-indexed bitmap for its palette.
	ErrFeatureNotSupported = errors.New("bitmap: feature not supported")
)
