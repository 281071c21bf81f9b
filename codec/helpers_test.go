package codec

import (
	"testing"
	"unsafe"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/format"
)

func newBitmap(t *testing.T, w, h int, f format.Format, pix []byte, opts ...bitmap.Option) *bitmap.Bitmap {
	t.Helper()
	b, err := bitmap.New(bitmap.Type2D, format.Size2D(w, h), f, append(opts, bitmap.WithPixels(pix))...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

func newArray(t *testing.T, kind bitmap.ArrayKind, bitmaps ...*bitmap.Bitmap) *bitmap.Array {
	t.Helper()
	a, err := bitmap.NewArray(kind, bitmaps...)
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	t.Cleanup(a.Release)
	return a
}

func pixels(t *testing.T, b *bitmap.Bitmap) []byte {
	t.Helper()
	px, err := b.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer px.Unlock()
	return append([]byte(nil), px.Bytes()...)
}

// redBlue is a 2-entry BGRA palette: opaque red then opaque blue.
func redBlue(t *testing.T) *bitmap.Palette {
	t.Helper()
	p, err := bitmap.NewPalette(32, []byte{0, 0, 255, 255, 255, 0, 0, 255})
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	t.Cleanup(p.Release)
	return p
}

func unsafeSize[T any](v T) uintptr { return unsafe.Sizeof(v) }
