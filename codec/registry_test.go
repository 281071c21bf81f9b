package codec

import (
	"bytes"
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/format"
)

func TestDefault_DecoderOrder(t *testing.T) {
	want := []string{"bmpz", "png", "jpeg", "gif", "bmp", "tiff", "webp"}
	if got := Default().Decoders(); !slices.Equal(got, want) {
		t.Errorf("Decoders() = %v, want %v", got, want)
	}
	if Default() != Default() {
		t.Error("Default() is not shared")
	}
}

func TestRegistry_DetectRewinds(t *testing.T) {
	r := NewRegistry()
	var calls []string
	r.AddDecoder("greedy", func(s Stream) (*bitmap.Array, error) {
		calls = append(calls, "greedy")
		_, _ = io.ReadAll(s)
		return nil, errors.New("not mine")
	})
	r.AddDecoder("first-byte", func(s Stream) (*bitmap.Array, error) {
		calls = append(calls, "first-byte")
		var b [1]byte
		if _, err := s.Read(b[:]); err != nil {
			return nil, err
		}
		gray, err := bitmap.New(bitmap.Type2D, format.Size2D(1, 1), format.Gray8, bitmap.WithPixels(b[:]))
		if err != nil {
			return nil, err
		}
		defer gray.Release()
		return bitmap.NewArray(bitmap.ArrayFrames, gray)
	})
	r.AddDecoder("never", func(Stream) (*bitmap.Array, error) {
		calls = append(calls, "never")
		return nil, errors.New("unreachable")
	})

	a, err := r.Detect(bytes.NewReader([]byte{42, 7}))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	defer a.Release()
	if got := pixels(t, a.At(0)); got[0] != 42 {
		t.Errorf("second probe read %d, want 42", got[0])
	}
	if want := []string{"greedy", "first-byte"}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestRegistry_DetectNoMatch(t *testing.T) {
	tests := []struct {
		name string
		r    *Registry
	}{
		{"empty registry", NewRegistry()},
		{"builtins", Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.r.Detect(bytes.NewReader([]byte("definitely not an image")))
			if !errors.Is(err, bitmap.ErrNotSupported) {
				t.Errorf("err = %v, want ErrNotSupported", err)
			}
		})
	}
}

func TestRegistry_Encode(t *testing.T) {
	b := newBitmap(t, 1, 1, format.RGBA8, []byte{1, 2, 3, 4})
	a := newArray(t, bitmap.ArrayFrames, b)

	short := NewPNGOptions()
	short.Size--
	wrongType := NewRawOptions()
	wrongType.Kind = KindPNG
	wrongType.Size = uint32(Default().encoders[KindPNG].size)
	unknown := &RawOptions{OptionsHeader: OptionsHeader{Size: 1, Kind: KindUser}}
	badQuality := NewJPEGOptions()
	badQuality.Quality = 0

	tests := []struct {
		name string
		a    *bitmap.Array
		opts Options
		want error
	}{
		{"nil options", a, nil, bitmap.ErrInvalidArgs},
		{"nil array", nil, NewPNGOptions(), bitmap.ErrInvalidArgs},
		{"size mismatch", a, short, bitmap.ErrInvalidArgs},
		{"options type mismatch", a, wrongType, bitmap.ErrInvalidArgs},
		{"unknown kind", a, unknown, bitmap.ErrNotSupported},
		{"jpeg quality", a, badQuality, bitmap.ErrInvalidArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Default().Encode(io.Discard, tt.a, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

type userOptions struct {
	OptionsHeader
	Marker byte
}

func TestRegistry_UserEncoder(t *testing.T) {
	r := NewRegistry()
	r.AddEncoder(KindUser, unsafeSize(userOptions{}), func(w io.Writer, a *bitmap.Array, opts Options) error {
		o := opts.(*userOptions)
		_, err := w.Write([]byte{o.Marker, byte(a.Len())})
		return err
	})

	b := newBitmap(t, 1, 1, format.Gray8, []byte{0})
	opts := &userOptions{OptionsHeader: OptionsHeader{Size: uint32(unsafeSize(userOptions{})), Kind: KindUser}, Marker: 9}
	var buf bytes.Buffer
	if err := r.EncodeBitmap(&buf, b, opts); err != nil {
		t.Fatalf("EncodeBitmap: %v", err)
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte{9, 1}) {
		t.Errorf("output = %v, want [9 1]", got)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
		ok   bool
	}{
		{"png", KindPNG, true},
		{"jpg", KindJPEG, true},
		{"jpeg", KindJPEG, true},
		{"tif", KindTIFF, true},
		{"raw", KindRaw, true},
		{"bmpz", KindRaw, true},
		{"webp", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKind(tt.name)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseKind(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestNewOptions(t *testing.T) {
	for _, k := range []Kind{KindRaw, KindPNG, KindJPEG, KindGIF, KindBMP, KindTIFF} {
		t.Run(k.String(), func(t *testing.T) {
			o, ok := NewOptions(k)
			if !ok {
				t.Fatal("no default options")
			}
			h := o.Header()
			if h.Kind != k {
				t.Errorf("Kind = %v", h.Kind)
			}
			if h.Size != Default().encoders[k].size {
				t.Errorf("Size = %d, registered %d", h.Size, Default().encoders[k].size)
			}
		})
	}
	if _, ok := NewOptions(KindUser); ok {
		t.Error("NewOptions(KindUser) succeeded")
	}
}
