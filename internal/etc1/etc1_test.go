package etc1

import "testing"

func TestDecodeBlock_IndividualMode(t *testing.T) {
	// Left half red base 0x88, right half black, table 0, every index 0 (+2).
	code := uint64(8) << 60
	var blk Block
	DecodeBlock(code, &blk)

	for y := range 4 {
		for x := range 4 {
			want := [3]uint8{2, 2, 2}
			if x < 2 {
				want = [3]uint8{0x8a, 2, 2}
			}
			if got := blk[y*4+x]; got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDecodeBlock_FlipAndIndexes(t *testing.T) {
	// Differential mode, bases 0 and delta +3 on red, flipped, table 7.
	// Pixel (0,0) has index 1 (+183); every other pixel has index 0 (+47).
	code := uint64(3)<<56 | 7<<37 | 7<<34 | 1<<33 | 1<<32 | 1
	var blk Block
	DecodeBlock(code, &blk)

	if got := blk[0]; got != [3]uint8{183, 183, 183} {
		t.Errorf("pixel (0,0) = %v, want 183s", got)
	}
	if got := blk[1]; got != [3]uint8{47, 47, 47} {
		t.Errorf("pixel (1,0) = %v, want 47s", got)
	}
	// Bottom half base red = expand5(3) = 24.
	if got := blk[2*4]; got != [3]uint8{24 + 47, 47, 47} {
		t.Errorf("pixel (0,2) = %v, want [71 47 47]", got)
	}
}

func TestEncodeBlock_SolidColor(t *testing.T) {
	colors := [][3]uint8{{0, 0, 0}, {255, 255, 255}, {128, 64, 200}, {17, 240, 99}}
	for _, c := range colors {
		var blk, out Block
		for i := range blk {
			blk[i] = c
		}
		DecodeBlock(EncodeBlock(&blk), &out)
		for i := range out {
			for ch := range 3 {
				if d := absDiff(out[i][ch], c[ch]); d > 8 {
					t.Fatalf("color %v: pixel %d channel %d = %d", c, i, ch, out[i][ch])
				}
			}
		}
	}
}

func TestEncodeDecode_Image(t *testing.T) {
	const w, h = 7, 5
	src := make([]byte, w*h*3)
	for y := range h {
		for x := range w {
			i := (y*w + x) * 3
			v := uint8(x*8 + y*4)
			src[i] = v + 40
			src[i+1] = v + 60
			src[i+2] = v + 20
		}
	}
	enc := make([]byte, EncodedSize(w, h))
	if len(enc) != 2*2*BlockBytes {
		t.Fatalf("EncodedSize = %d", len(enc))
	}
	if err := Encode(enc, src, w, h); err != nil {
		t.Fatal(err)
	}
	dst := make([]byte, len(src))
	if err := Decode(dst, enc, w, h); err != nil {
		t.Fatal(err)
	}
	var total int
	for i := range src {
		total += int(absDiff(src[i], dst[i]))
	}
	if mean := total / len(src); mean > 8 {
		t.Errorf("mean absolute error = %d", mean)
	}
}

func TestShortBuffer(t *testing.T) {
	if err := Encode(make([]byte, 7), make([]byte, 48), 4, 4); err != ErrShortBuffer {
		t.Errorf("Encode short dst: %v", err)
	}
	if err := Decode(make([]byte, 48), make([]byte, 4), 4, 4); err != ErrShortBuffer {
		t.Errorf("Decode short src: %v", err)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
