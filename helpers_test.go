package bitmap

import (
	"bytes"
	"testing"

	"github.com/gogpu/bitmap/format"
)

// filled creates a bitmap whose every pixel holds px.
func filled(t *testing.T, typ Type, size format.Size3D, f format.Format, px []byte) *Bitmap {
	t.Helper()
	if len(px) != f.BytesPerPixel() {
		t.Fatalf("pixel of %d bytes for %v", len(px), f)
	}
	data := bytes.Repeat(px, size.Pixels()*size.Depth)
	b, err := New(typ, size, f, WithPixels(data))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

// fromBytes creates a 2D bitmap with the given contents.
func fromBytes(t *testing.T, w, h int, f format.Format, data []byte, opts ...Option) *Bitmap {
	t.Helper()
	b, err := New(Type2D, format.Size2D(w, h), f, append(opts, WithPixels(data))...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(b.Release)
	return b
}

func mustPalette(t *testing.T, bpp int, entries ...byte) *Palette {
	t.Helper()
	p, err := NewPalette(bpp, entries)
	if err != nil {
		t.Fatalf("NewPalette: %v", err)
	}
	return p
}

// snapshot returns a copy of the whole pixel buffer.
func snapshot(t *testing.T, b *Bitmap) []byte {
	t.Helper()
	px, err := b.Lock()
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	defer px.Unlock()
	return append([]byte(nil), px.Bytes()...)
}
