package bitmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/bitmap/format"
)

func TestNewArray(t *testing.T) {
	gray := []byte{0}
	l0 := filled(t, Type2D, format.Size2D(4, 4), format.Gray8, gray)
	l1 := filled(t, Type2D, format.Size2D(2, 2), format.Gray8, gray)
	l2 := filled(t, Type2D, format.Size2D(1, 1), format.Gray8, gray)
	odd := filled(t, Type2D, format.Size2D(3, 2), format.Gray8, gray)
	rgb := filled(t, Type2D, format.Size2D(2, 2), format.RGB8, []byte{0, 0, 0})

	tests := []struct {
		name  string
		kind  ArrayKind
		items []*Bitmap
		want  error
	}{
		{"chain", ArrayMipChain, []*Bitmap{l0, l1, l2}, nil},
		{"partial chain", ArrayMipChain, []*Bitmap{l0, l1}, nil},
		{"wrong level size", ArrayMipChain, []*Bitmap{l0, odd}, ErrInvalidArgs},
		{"format mismatch", ArrayMipChain, []*Bitmap{l0, rgb}, ErrInvalidArgs},
		{"too many levels", ArrayMipChain, []*Bitmap{l0, l1, l2, l2}, ErrInvalidArgs},
		{"frames of any size", ArrayFrames, []*Bitmap{l0, odd, rgb}, nil},
		{"empty", ArrayFrames, nil, ErrInvalidArgs},
		{"nil element", ArrayFrames, []*Bitmap{l0, nil}, ErrInvalidArgs},
		{"bad kind", ArrayKind(7), []*Bitmap{l0}, ErrInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewArray(tt.kind, tt.items...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if err != nil {
				return
			}
			if a.Len() != len(tt.items) || a.Kind() != tt.kind {
				t.Errorf("array = %d %v", a.Len(), a.Kind())
			}
			if tt.items[0].Refs() != 2 {
				t.Errorf("element refs = %d, want 2", tt.items[0].Refs())
			}
			a.Release()
			if tt.items[0].Refs() != 1 {
				t.Errorf("element refs after release = %d", tt.items[0].Refs())
			}
		})
	}
}

func TestGenerateMipChain(t *testing.T) {
	px := []byte{40, 80, 120, 255}
	b := filled(t, Type2D, format.Size2D(8, 4), format.RGBA8, px)
	chain, err := GenerateMipChain(b, Bilinear)
	if err != nil {
		t.Fatal(err)
	}
	defer chain.Release()

	wantSizes := []format.Size3D{
		format.Size2D(8, 4), format.Size2D(4, 2), format.Size2D(2, 1), format.Size2D(1, 1),
	}
	if chain.Len() != len(wantSizes) || chain.Kind() != ArrayMipChain {
		t.Fatalf("chain of %d %v", chain.Len(), chain.Kind())
	}
	if chain.At(0) != b {
		t.Error("level 0 is not the source")
	}
	for i, want := range wantSizes {
		l := chain.At(i)
		if l.Size() != want {
			t.Errorf("level %d size %v, want %v", i, l.Size(), want)
		}
		if got := snapshot(t, l); !bytes.Equal(got, bytes.Repeat(px, want.Pixels())) {
			t.Errorf("level %d pixels %v", i, got)
		}
	}
}

func TestGenerateMipChain_Cube(t *testing.T) {
	b := filled(t, TypeCube, format.Size3D{Width: 4, Height: 4, Depth: 6}, format.Gray8, []byte{1})
	chain, err := GenerateMipChain(b, Nearest)
	if err != nil {
		t.Fatal(err)
	}
	defer chain.Release()
	if chain.Len() != 3 {
		t.Fatalf("levels = %d", chain.Len())
	}
	for i := range chain.Len() {
		if d := chain.At(i).Depth(); d != CubeFaces {
			t.Errorf("level %d depth %d", i, d)
		}
	}
}

func TestGenerateMipChain_IndexedSharesPalette(t *testing.T) {
	pal := mustPalette(t, 32, 10, 20, 30, 255, 200, 210, 220, 255)
	defer pal.Release()
	b := fromBytes(t, 4, 4, format.Index8, make([]byte, 16), WithPalette(pal))

	chain, err := GenerateMipChain(b, Bilinear)
	if err != nil {
		t.Fatal(err)
	}
	if chain.Len() != 3 {
		t.Fatalf("levels = %d", chain.Len())
	}
	for i := range chain.Len() {
		l := chain.At(i)
		if l.palette != pal {
			t.Errorf("level %d has its own palette", i)
		}
		if got := snapshot(t, l); !bytes.Equal(got, make([]byte, l.Size().Pixels())) {
			t.Errorf("level %d indexes %v", i, got)
		}
	}
	if pal.Refs() != 4 {
		t.Errorf("palette refs = %d, want 4", pal.Refs())
	}
	chain.Release()
	if pal.Refs() != 2 {
		t.Errorf("palette refs after release = %d, want 2", pal.Refs())
	}
}

func TestGenerateMipChain_NotSupported(t *testing.T) {
	b, err := New(Type2D, format.Size2D(8, 8), format.BC7)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()
	if _, err := GenerateMipChain(b, Bilinear); !errors.Is(err, ErrNotSupported) {
		t.Errorf("err = %v", err)
	}
	if b.Refs() != 1 {
		t.Errorf("source refs = %d after failure", b.Refs())
	}
}
