package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/format"
)

func encodeRaw(t *testing.T, a *bitmap.Array, c Compression, level int) []byte {
	t.Helper()
	o := NewRawOptions()
	o.Compression = c
	o.Level = level
	var buf bytes.Buffer
	if err := Default().Encode(&buf, a, o); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return buf.Bytes()
}

func TestBMPZ_RoundTrip(t *testing.T) {
	indexed := newBitmap(t, 4, 1, format.Index8, []byte{0, 1, 1, 0}, bitmap.WithPalette(redBlue(t)))
	nv12 := newBitmap(t, 4, 2, format.NV12, []byte{1, 2, 3, 4, 5, 6, 7, 8, 100, 150, 110, 160})
	etc1 := newBitmap(t, 4, 4, format.ETC1, []byte{0x80, 0x40, 0x20, 0x02, 0, 0, 0, 0})
	animated := newBitmap(t, 2, 1, format.RGBA8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	animated.SetAttribute(bitmap.AttrFrameDuration, 40*time.Millisecond)

	tests := []struct {
		name  string
		b     *bitmap.Bitmap
		c     Compression
		level int
	}{
		{"indexed zstd", indexed, CompressZstd, 2},
		{"nv12 zstd fastest", nv12, CompressZstd, 1},
		{"etc1 zstd best", etc1, CompressZstd, 4},
		{"frame duration brotli", animated, CompressBrotli, 5},
		{"indexed brotli", indexed, CompressBrotli, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeRaw(t, newArray(t, bitmap.ArrayFrames, tt.b), tt.c, tt.level)
			if string(data[:4]) != "BMPZ" {
				t.Fatalf("magic = %q", data[:4])
			}
			got, err := Default().Detect(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			defer got.Release()
			if got.Len() != 1 || got.Kind() != bitmap.ArrayFrames {
				t.Fatalf("got %d bitmaps of kind %v", got.Len(), got.Kind())
			}
			if !bitmap.Equal(got.At(0), tt.b) {
				t.Error("decoded bitmap differs")
			}
			wantD, _ := bitmap.AttributeAs[time.Duration](tt.b, bitmap.AttrFrameDuration)
			gotD, _ := bitmap.AttributeAs[time.Duration](got.At(0), bitmap.AttrFrameDuration)
			if gotD != wantD {
				t.Errorf("duration = %v, want %v", gotD, wantD)
			}
		})
	}
}

func TestBMPZ_MipChainAndCube(t *testing.T) {
	base := newBitmap(t, 4, 4, format.RGBA8, bytes.Repeat([]byte{10, 20, 30, 255}, 16))
	chain, err := bitmap.GenerateMipChain(base, bitmap.Nearest)
	if err != nil {
		t.Fatalf("GenerateMipChain: %v", err)
	}
	defer chain.Release()

	cube, err := bitmap.New(bitmap.TypeCube, format.Size3D{Width: 2, Height: 2, Depth: bitmap.CubeFaces}, format.Gray8,
		bitmap.WithPixels(bytes.Repeat([]byte{1, 2, 3, 4}, bitmap.CubeFaces)))
	if err != nil {
		t.Fatalf("New cube: %v", err)
	}
	defer cube.Release()

	for _, a := range []*bitmap.Array{chain, newArray(t, bitmap.ArrayFrames, cube)} {
		got, err := decodeBMPZ(bytes.NewReader(encodeRaw(t, a, CompressZstd, 2)))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Kind() != a.Kind() || got.Len() != a.Len() {
			t.Fatalf("got %v x%d, want %v x%d", got.Kind(), got.Len(), a.Kind(), a.Len())
		}
		for i := range a.Len() {
			if !bitmap.Equal(got.At(i), a.At(i)) {
				t.Errorf("%v bitmap %d differs", a.Kind(), i)
			}
		}
		got.Release()
	}
}

func TestBMPZ_Errors(t *testing.T) {
	b := newBitmap(t, 2, 2, format.Gray8, []byte{1, 2, 3, 4})
	data := encodeRaw(t, newArray(t, bitmap.ArrayFrames, b), CompressZstd, 2)

	badVersion := append([]byte(nil), data...)
	badVersion[4] = 9
	badFormat := append([]byte(nil), data...)
	badFormat[bmpzHeaderLen+1] = 0xff

	// The payload length sits at the end of the first record's tail.
	lenAt := bmpzHeaderLen + recordHeadLen + 4
	hugeLen := append([]byte(nil), data[:lenAt+4]...)
	binary.BigEndian.PutUint32(hugeLen[lenAt:], 0xffffffff)
	hugeLen = append(hugeLen, 1, 2, 3)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	bomb := enc.EncodeAll(make([]byte, 1<<20), nil)
	enc.Close()
	oversized := append([]byte(nil), data[:lenAt]...)
	oversized = binary.BigEndian.AppendUint32(oversized, uint32(len(bomb)))
	oversized = append(oversized, bomb...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not bmpz", []byte("\x89PNG\r\n\x1a\n...."), bitmap.ErrNotSupported},
		{"short header", data[:5], bitmap.ErrNotSupported},
		{"version", badVersion, bitmap.ErrNotSupported},
		{"truncated payload", data[:len(data)-2], ErrCorrupt},
		{"truncated record", data[:bmpzHeaderLen+4], ErrCorrupt},
		{"unknown format", badFormat, ErrCorrupt},
		{"declared payload past end", hugeLen, ErrCorrupt},
		{"payload inflates past size", oversized, ErrCorrupt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeBMPZ(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBMPZ_InvalidLevel(t *testing.T) {
	b := newBitmap(t, 1, 1, format.Gray8, []byte{0})
	a := newArray(t, bitmap.ArrayFrames, b)
	tests := []struct {
		name  string
		c     Compression
		level int
	}{
		{"zstd zero", CompressZstd, 0},
		{"zstd five", CompressZstd, 5},
		{"brotli twelve", CompressBrotli, 12},
		{"unknown compression", Compression(7), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewRawOptions()
			o.Compression = tt.c
			o.Level = tt.level
			if err := Default().Encode(&bytes.Buffer{}, a, o); !errors.Is(err, bitmap.ErrInvalidArgs) {
				t.Errorf("err = %v, want ErrInvalidArgs", err)
			}
		})
	}
}
