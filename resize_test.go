package bitmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/bitmap/format"
)

func TestResize_NearestScenario(t *testing.T) {
	px := []byte{10, 20, 30, 255}
	b := filled(t, Type2D, format.Size2D(4, 4), format.RGBA8, px)
	out, err := Resize(b, Nearest, format.Size2D(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Release()
	want := filled(t, Type2D, format.Size2D(2, 2), format.RGBA8, px)
	if !Equal(out, want) {
		t.Errorf("got %v", snapshot(t, out))
	}
}

func TestResize_NearestIdempotent(t *testing.T) {
	src := make([]byte, 5*3*3)
	for i := range src {
		src[i] = byte(i * 7)
	}
	b := fromBytes(t, 5, 3, format.RGB8, src)
	size := format.Size2D(3, 2)

	once, err := Resize(b, Nearest, size)
	if err != nil {
		t.Fatal(err)
	}
	defer once.Release()
	twice, err := Resize(once, Nearest, size)
	if err != nil {
		t.Fatal(err)
	}
	defer twice.Release()
	if !Equal(once, twice) {
		t.Error("nearest resize is not idempotent")
	}
}

func TestResize_ConstantColor(t *testing.T) {
	px := []byte{200, 100, 50, 180}
	b := filled(t, Type2D, format.Size2D(3, 3), format.RGBA8, px)
	for m := Nearest; m <= Lanczos5; m++ {
		t.Run(m.String(), func(t *testing.T) {
			out, err := Resize(b, m, format.Size2D(7, 5))
			if err != nil {
				t.Fatal(err)
			}
			defer out.Release()
			if got := snapshot(t, out); !bytes.Equal(got, bytes.Repeat(px, 35)) {
				t.Errorf("constant not preserved: %v", got[:8])
			}
		})
	}
}

func TestResize_Errors(t *testing.T) {
	rgba := filled(t, Type2D, format.Size2D(4, 4), format.RGBA8, []byte{0, 0, 0, 0})
	cube := filled(t, TypeCube, format.Size3D{Width: 4, Height: 4, Depth: 6}, format.RGBA8, []byte{0, 0, 0, 0})
	pal := mustPalette(t, 24, 0, 0, 0, 1, 1, 1)
	defer pal.Release()
	idx4 := fromBytes(t, 2, 2, format.Index4, []byte{0x01, 0x10}, WithPalette(pal))

	tests := []struct {
		name string
		b    *Bitmap
		m    Method
		size format.Size3D
		want error
	}{
		{"zero width", rgba, Nearest, format.Size2D(0, 2), ErrInvalidArgs},
		{"zero height", rgba, Bilinear, format.Size2D(2, 0), ErrInvalidArgs},
		{"2D to depth 2", rgba, Nearest, format.Size3D{Width: 2, Height: 2, Depth: 2}, ErrInvalidArgs},
		{"cube to depth 1", cube, Nearest, format.Size2D(2, 2), ErrInvalidArgs},
		{"bad method", rgba, Method(99), format.Size2D(2, 2), ErrInvalidArgs},
		{"index4", idx4, Nearest, format.Size2D(1, 1), ErrNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resize(tt.b, tt.m, tt.size); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResize_Cube(t *testing.T) {
	cube := filled(t, TypeCube, format.Size3D{Width: 4, Height: 4, Depth: 6}, format.Gray8, []byte{5})
	out, err := Resize(cube, Bilinear, format.Size3D{Width: 2, Height: 2, Depth: 6})
	if err != nil {
		t.Fatal(err)
	}
	defer out.Release()
	if out.Type() != TypeCube || out.Depth() != 6 {
		t.Errorf("result %v depth %d", out.Type(), out.Depth())
	}
}

func TestResize_Index8SharesPalette(t *testing.T) {
	pal := mustPalette(t, 32, 1, 2, 3, 4, 5, 6, 7, 8)
	defer pal.Release()
	b := fromBytes(t, 2, 2, format.Index8, []byte{0, 1, 1, 0}, WithPalette(pal))

	out, err := Resize(b, Nearest, format.Size2D(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Release()
	got, _ := out.Palette()
	defer got.Release()
	if got != pal {
		t.Error("palette not shared")
	}
	want := []byte{0, 0, 1, 1, 0, 0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0}
	if px := snapshot(t, out); !bytes.Equal(px, want) {
		t.Errorf("indexes = %v", px)
	}
	if _, err := Resize(b, Bilinear, format.Size2D(4, 4)); !errors.Is(err, ErrNotSupported) {
		t.Errorf("bilinear on Index8: %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	m, ok := ParseMethod("lanczos3")
	if !ok || m != Lanczos3 {
		t.Errorf("ParseMethod = %v, %v", m, ok)
	}
}
