// Package cache provides a small generic LRU cache.
//
// The resampling engine keeps its precomputed Lanczos tap tables here, keyed
// by source extent, destination extent and window. Tables are immutable once
// built, so a cached value may be shared by any number of concurrent resizes.
//
//	taps := cache.New[tapKey, []tap](64)
//	t := taps.GetOrCreate(key, func() []tap { return buildTaps(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
