package bitmap

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/bitmap/format"
)

func TestFilter_MaskValidation(t *testing.T) {
	b := filled(t, Type2D, format.Size2D(4, 4), format.RGBA8, []byte{1, 2, 3, 4})
	tests := []struct {
		name string
		m    Mask
	}{
		{"even width", Mask{Width: 2, Height: 3, Values: make([]float32, 6)}},
		{"even height", Mask{Width: 3, Height: 4, Values: make([]float32, 12)}},
		{"too large", Mask{Width: 15, Height: 15, Values: make([]float32, 225)}},
		{"value count", Mask{Width: 3, Height: 3, Values: make([]float32, 8)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Filter(b, tt.m); !errors.Is(err, ErrInvalidArgs) {
				t.Errorf("err = %v", err)
			}
		})
	}
	if _, err := NewMask(4, 1, make([]float32, 4)); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("NewMask even: %v", err)
	}
}

func TestFilter_ConstantImage(t *testing.T) {
	px := []byte{90, 120, 150, 77}
	b := filled(t, Type2D, format.Size2D(5, 4), format.RGBA8, px)
	blur5, _ := IdentityMask(5)
	masks := map[string]Mask{
		"gauss3":   GaussianBlur3x3Mask(),
		"gauss5":   GaussianBlur5x5Mask(),
		"identity": blur5,
	}
	for name, m := range masks {
		t.Run(name, func(t *testing.T) {
			out, err := Filter(b, m)
			if err != nil {
				t.Fatal(err)
			}
			defer out.Release()
			if got := snapshot(t, out); !bytes.Equal(got, bytes.Repeat(px, 20)) {
				t.Errorf("constant changed: %v", got[:4])
			}
		})
	}
}

func TestFilter_KeepsAlpha(t *testing.T) {
	b := fromBytes(t, 2, 1, format.GrayAlpha8, []byte{100, 10, 200, 20})
	m, err := NewMask(3, 1, []float32{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	out, err := Filter(b, m)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Release()
	if got := snapshot(t, out); !bytes.Equal(got, []byte{0, 10, 0, 20}) {
		t.Errorf("got %v", got)
	}
}

func TestFilter_NotSupported(t *testing.T) {
	b, err := New(Type2D, format.Size2D(4, 2), format.YUYV)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()
	if _, err := Filter(b, SharpenMask()); !errors.Is(err, ErrNotSupported) {
		t.Errorf("err = %v", err)
	}
}

func TestMask_ScaleDivide(t *testing.T) {
	m := EdgeDetectMask().Scale(2)
	if m.Sum() != 0 {
		t.Errorf("edge sum = %v", m.Sum())
	}
	if _, err := UnsharpMask().Divide(0); !errors.Is(err, ErrInvalidArgs) {
		t.Errorf("divide by zero: %v", err)
	}
	g, err := GaussianMask(1)
	if err != nil {
		t.Fatal(err)
	}
	if s := g.Sum(); s < 0.999 || s > 1.001 {
		t.Errorf("gaussian sum = %v", s)
	}
}
