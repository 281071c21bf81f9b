// Package pool recycles pixel storage between bitmaps.
//
// Buffers are grouped in power-of-two size classes from 4KB to 64MB. A
// request is served from the smallest class that fits and sliced to the
// requested length; requests above the largest class are allocated directly
// and never pooled.
package pool

import (
	"math/bits"
	"sync"
)

const (
	minClassShift = 12 // 4KB
	maxClassShift = 26 // 64MB
	classCount    = maxClassShift - minClassShift + 1
)

var classes [classCount]sync.Pool

// Get returns a zeroed byte slice of length size.
func Get(size int) []byte {
	if size <= 0 {
		return nil
	}
	c, ok := classOf(size)
	if !ok {
		return make([]byte, size)
	}
	if p, _ := classes[c].Get().(*[]byte); p != nil {
		buf := (*p)[:size]
		clear(buf)
		return buf
	}
	return make([]byte, size, 1<<(c+minClassShift))
}

// Put returns buf to its size class. Slices whose capacity is not exactly a
// class size are dropped. buf must not be used after Put.
func Put(buf []byte) {
	n := cap(buf)
	if n == 0 || n&(n-1) != 0 {
		return
	}
	shift := bits.TrailingZeros(uint(n))
	if shift < minClassShift || shift > maxClassShift {
		return
	}
	buf = buf[:n]
	classes[shift-minClassShift].Put(&buf)
}

// classOf returns the index of the smallest class holding size bytes.
func classOf(size int) (int, bool) {
	shift := bits.Len(uint(size - 1))
	if shift < minClassShift {
		shift = minClassShift
	}
	if shift > maxClassShift {
		return 0, false
	}
	return shift - minClassShift, true
}
