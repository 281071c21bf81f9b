package resample

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/errs"
	"github.com/gogpu/bitmap/internal/pixel"
)

var allMethods = []Method{Nearest, Bilinear, Bicubic, Lanczos1, Lanczos2, Lanczos3, Lanczos4, Lanczos5}

func TestResize_PreservesConstantColor(t *testing.T) {
	px := []byte{10, 20, 30, 255}
	from := format.Size2D(4, 4)
	targets := []format.Size3D{format.Size2D(2, 2), format.Size2D(7, 5), format.Size2D(1, 1), format.Size2D(4, 4)}

	for _, m := range allMethods {
		for _, to := range targets {
			src := bytes.Repeat(px, from.Pixels())
			dst := make([]byte, format.TotalSize(format.RGBA8, to))
			if err := Resize(m, format.RGBA8, dst, src, from, to); err != nil {
				t.Fatalf("%v: %v", m, err)
			}
			if want := bytes.Repeat(px, to.Pixels()); !bytes.Equal(dst, want) {
				t.Errorf("%v to %dx%d: got %v", m, to.Width, to.Height, dst)
			}
		}
	}
}

func TestResize_ConstantFloat(t *testing.T) {
	tests := []struct {
		name     string
		from, to format.Size3D
		value    float32
	}{
		{"shrink x grow y", format.Size2D(7, 5), format.Size2D(3, 11), 0.3},
		{"grow x shrink y", format.Size2D(4, 9), format.Size2D(13, 2), 0.7},
		{"grow both", format.Size2D(3, 3), format.Size2D(10, 17), 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := make([]byte, format.TotalSize(format.GrayF32, tt.from))
			for i := range tt.from.Pixels() {
				pixel.GrayF32{Y: tt.value}.Encode(src[i*4:])
			}
			for _, m := range allMethods {
				dst := make([]byte, format.TotalSize(format.GrayF32, tt.to))
				if err := Resize(m, format.GrayF32, dst, src, tt.from, tt.to); err != nil {
					t.Fatal(err)
				}
				for i := range tt.to.Pixels() {
					if got := (pixel.GrayF32{}).Decode(dst[i*4:]).Y; got != tt.value {
						t.Fatalf("%v: pixel %d = %v, want %v", m, i, got, tt.value)
					}
				}
			}
		})
	}
}

func TestResize_BandsMatchSequential(t *testing.T) {
	from, to := format.Size2D(300, 200), format.Size2D(250, 260)
	src := make([]byte, format.TotalSize(format.GrayF32, from))
	for i := range from.Pixels() {
		pixel.GrayF32{Y: float32(i%97) / 97}.Encode(src[i*4:])
	}
	for _, m := range []Method{Bilinear, Bicubic, Lanczos3} {
		t.Run(m.String(), func(t *testing.T) {
			dst := make([]byte, format.TotalSize(format.GrayF32, to))
			if err := Resize(m, format.GrayF32, dst, src, from, to); err != nil {
				t.Fatal(err)
			}
			if want := resizeSequential(m, src, from, to); !bytes.Equal(dst, want) {
				t.Error("banded result differs from a sequential pass")
			}
		})
	}
}

// resizeSequential applies the separable taps to a GrayF32 plane in a
// single goroutine.
func resizeSequential(m Method, src []byte, from, to format.Size3D) []byte {
	xt, yt := taps(m, from.Width, to.Width), taps(m, from.Height, to.Height)
	plane := make([]wide, from.Pixels())
	for i := range plane {
		plane[i] = widen(pixel.GrayF32{}.Decode(src[i*4:]).Channels())
	}
	rows := make([]wide, to.Width*from.Height)
	for y := range from.Height {
		for x, ts := range xt {
			rows[y*to.Width+x] = apply(plane[y*from.Width:(y+1)*from.Width], 1, ts)
		}
	}
	layout := pixel.GrayF32{}.Layout()
	out := make([]byte, to.Pixels()*4)
	for y := range to.Height {
		for x := range to.Width {
			v := apply(rows[x:], to.Width, yt[y]).narrow()
			pixel.GrayF32{}.FromChannels(pixel.Quantize(layout, v)).Encode(out[(y*to.Width+x)*4:])
		}
	}
	return out
}

func TestResize_NearestIdempotent(t *testing.T) {
	size := format.Size3D{Width: 3, Height: 3, Depth: 2}
	src := make([]byte, format.TotalSize(format.RGB8, size))
	for i := range src {
		src[i] = byte(i * 7)
	}
	dst := make([]byte, len(src))
	if err := Resize(Nearest, format.RGB8, dst, src, size, size); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, src) {
		t.Error("nearest resize to the same size changed pixels")
	}
}

func TestResize_NearestMapping(t *testing.T) {
	tests := []struct {
		name     string
		src      []byte
		from, to format.Size3D
		want     []byte
	}{
		{"downscale", []byte{0, 1, 2, 3}, format.Size2D(4, 1), format.Size2D(2, 1), []byte{0, 2}},
		{"upscale", []byte{5, 9}, format.Size2D(2, 1), format.Size2D(4, 1), []byte{5, 5, 9, 9}},
		{"rows", []byte{1, 2, 3}, format.Size2D(1, 3), format.Size2D(1, 2), []byte{1, 2}},
		{"depth", []byte{0, 1, 2, 3}, format.Size3D{Width: 1, Height: 1, Depth: 4}, format.Size3D{Width: 1, Height: 1, Depth: 2}, []byte{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, len(tt.want))
			if err := Resize(Nearest, format.Gray8, dst, tt.src, tt.from, tt.to); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(dst, tt.want) {
				t.Errorf("got %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestResize_Bilinear(t *testing.T) {
	dst := make([]byte, 4)
	if err := Resize(Bilinear, format.Gray8, dst, []byte{0, 100}, format.Size2D(2, 1), format.Size2D(4, 1)); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0, 25, 50, 75}; !bytes.Equal(dst, want) {
		t.Errorf("got %v, want %v", dst, want)
	}
}

func TestResize_BicubicSaturates(t *testing.T) {
	from, to := format.Size2D(4, 1), format.Size2D(16, 1)
	src := make([]byte, 16)
	for i, v := range []float32{0, 0, 1, 1} {
		pixel.GrayF32{Y: v}.Encode(src[i*4:])
	}
	dst := make([]byte, 64)
	if err := Resize(Bicubic, format.GrayF32, dst, src, from, to); err != nil {
		t.Fatal(err)
	}
	for i := range 16 {
		v := pixel.GrayF32{}.Decode(dst[i*4:]).Y
		if v < 0 || v > 1 {
			t.Errorf("sample %d = %v outside [0, 1]", i, v)
		}
	}
}

func TestResize_Errors(t *testing.T) {
	buf := make([]byte, 64)
	if err := Resize(Nearest, format.RGBA8, buf, buf, format.Size2D(2, 2), format.Size2D(0, 2)); !errors.Is(err, errs.ErrInvalidArgs) {
		t.Errorf("zero dimension: %v", err)
	}
	if err := Resize(Bilinear, format.Index8, buf, buf, format.Size2D(2, 2), format.Size2D(4, 4)); !errors.Is(err, errs.ErrNotSupported) {
		t.Errorf("bilinear Index8: %v", err)
	}
	if err := Resize(Nearest, format.Index4, buf, buf, format.Size2D(2, 2), format.Size2D(4, 4)); !errors.Is(err, errs.ErrNotSupported) {
		t.Errorf("nearest Index4: %v", err)
	}
	if err := Resize(Nearest, format.Index8, buf, buf, format.Size2D(2, 2), format.Size2D(4, 4)); err != nil {
		t.Errorf("nearest Index8: %v", err)
	}
	if err := Resize(Nearest, format.RGBA8, buf[:4], buf, format.Size2D(2, 2), format.Size2D(4, 4)); !errors.Is(err, errs.ErrInvalidArgs) {
		t.Errorf("short dst: %v", err)
	}
}

func TestLanczosTaps_NormalizedAtEdges(t *testing.T) {
	for w := 1; w <= 5; w++ {
		for _, ts := range lanczosTaps(6, 9, w) {
			var sum float64
			for _, tp := range ts {
				if tp.index < 0 || tp.index >= 6 {
					t.Fatalf("window %d: tap index %d out of range", w, tp.index)
				}
				sum += tp.weight
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("window %d: weights sum to %v", w, sum)
			}
		}
	}
}

func TestTaps_Cached(t *testing.T) {
	a := taps(Lanczos3, 10, 5)
	b := taps(Lanczos3, 10, 5)
	if &a[0] != &b[0] {
		t.Error("tap table rebuilt for identical parameters")
	}
}

func TestMethod_Names(t *testing.T) {
	for _, m := range allMethods {
		got, ok := ParseMethod(m.String())
		if !ok || got != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseMethod("box"); ok {
		t.Error("ParseMethod accepted an unknown name")
	}
	if Method(200).IsValid() || Method(200).String() != "Unknown" {
		t.Error("out of range method reported valid")
	}
}
