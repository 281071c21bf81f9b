package codec

import (
	"image/png"
	"unsafe"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/tiff"
)

// Kind identifies an encoder.
type Kind uint32

// Built-in encoder kinds. Custom encoders use values from KindUser up.
const (
	KindRaw Kind = iota + 1
	KindPNG
	KindJPEG
	KindGIF
	KindBMP
	KindTIFF

	KindUser Kind = 1 << 16
)

var kindNames = map[Kind]string{
	KindRaw:  "bmpz",
	KindPNG:  "png",
	KindJPEG: "jpeg",
	KindGIF:  "gif",
	KindBMP:  "bmp",
	KindTIFF: "tiff",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKind returns the built-in kind with the given name. "jpg" and "tif"
// are accepted as aliases.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "jpg":
		return KindJPEG, true
	case "tif":
		return KindTIFF, true
	case "raw":
		return KindRaw, true
	}
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// OptionsHeader is the first field of every options struct. Size is the
// byte size of the concrete struct and Kind selects the encoder.
type OptionsHeader struct {
	Size uint32
	Kind Kind
}

// Header returns the header itself; embedding promotes it to every options
// struct.
func (h *OptionsHeader) Header() *OptionsHeader { return h }

// Options is implemented by every options struct through its embedded
// OptionsHeader.
type Options interface {
	Header() *OptionsHeader
}

// Compression selects the payload compression of a BMPZ container.
type Compression uint8

const (
	CompressZstd Compression = iota
	CompressBrotli
)

// RawOptions configures the native BMPZ encoder.
type RawOptions struct {
	OptionsHeader
	Compression Compression
	// Level is the zstd encoder level, or the brotli quality 0..11.
	Level int
}

// NewRawOptions returns zstd compression at the default level.
func NewRawOptions() *RawOptions {
	return &RawOptions{
		OptionsHeader: OptionsHeader{Size: uint32(unsafe.Sizeof(RawOptions{})), Kind: KindRaw},
		Level:         int(zstd.SpeedDefault),
	}
}

// PNGOptions configures the PNG encoder.
type PNGOptions struct {
	OptionsHeader
	Compression png.CompressionLevel
}

// NewPNGOptions returns default PNG compression.
func NewPNGOptions() *PNGOptions {
	return &PNGOptions{
		OptionsHeader: OptionsHeader{Size: uint32(unsafe.Sizeof(PNGOptions{})), Kind: KindPNG},
		Compression:   png.DefaultCompression,
	}
}

// JPEGOptions configures the JPEG encoder.
type JPEGOptions struct {
	OptionsHeader
	// Quality ranges from 1 to 100.
	Quality int
}

// NewJPEGOptions returns quality 90.
func NewJPEGOptions() *JPEGOptions {
	return &JPEGOptions{
		OptionsHeader: OptionsHeader{Size: uint32(unsafe.Sizeof(JPEGOptions{})), Kind: KindJPEG},
		Quality:       90,
	}
}

// GIFOptions configures the GIF encoder. Every bitmap of the array becomes a
// frame; AttrFrameDuration sets its delay.
type GIFOptions struct {
	OptionsHeader
	// LoopCount follows image/gif: 0 loops forever, -1 plays once.
	LoopCount int
}

// NewGIFOptions returns options for an endlessly looping animation.
func NewGIFOptions() *GIFOptions {
	return &GIFOptions{
		OptionsHeader: OptionsHeader{Size: uint32(unsafe.Sizeof(GIFOptions{})), Kind: KindGIF},
	}
}

// BMPOptions configures the BMP encoder.
type BMPOptions struct {
	OptionsHeader
}

// NewBMPOptions returns BMP options.
func NewBMPOptions() *BMPOptions {
	return &BMPOptions{
		OptionsHeader: OptionsHeader{Size: uint32(unsafe.Sizeof(BMPOptions{})), Kind: KindBMP},
	}
}

// TIFFOptions configures the TIFF encoder.
type TIFFOptions struct {
	OptionsHeader
	Compression tiff.CompressionType
	Predictor   bool
}

// NewTIFFOptions returns Deflate compression with a predictor.
func NewTIFFOptions() *TIFFOptions {
	return &TIFFOptions{
		OptionsHeader: OptionsHeader{Size: uint32(unsafe.Sizeof(TIFFOptions{})), Kind: KindTIFF},
		Compression:   tiff.Deflate,
		Predictor:     true,
	}
}

// NewOptions returns the default options of a built-in kind.
func NewOptions(k Kind) (Options, bool) {
	switch k {
	case KindRaw:
		return NewRawOptions(), true
	case KindPNG:
		return NewPNGOptions(), true
	case KindJPEG:
		return NewJPEGOptions(), true
	case KindGIF:
		return NewGIFOptions(), true
	case KindBMP:
		return NewBMPOptions(), true
	case KindTIFF:
		return NewTIFFOptions(), true
	}
	return nil, false
}
