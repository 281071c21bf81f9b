// Package format describes the pixel encodings understood by the bitmap engine.
//
// A Format identifies a color model, channel count, bits per channel and alpha
// presence. Every format has a deterministic byte layout: the stride, plane size
// and total size of a bitmap are pure functions of (format, size). Those
// functions are a compatibility contract with on-disk texture containers and are
// reproduced bit-for-bit; see [Stride] and [PlaneSize].
package format

import "strings"

// Format represents a pixel storage format.
type Format uint8

const (
	// Unknown is the zero value and is never a valid format.
	Unknown Format = iota

	// Gray8 is 8-bit luminance (1 byte per pixel).
	Gray8
	// Gray16 is 16-bit luminance, little-endian (2 bytes per pixel).
	Gray16
	// GrayF32 is 32-bit float luminance (4 bytes per pixel).
	GrayF32
	// GrayAlpha8 is 8-bit luminance followed by 8-bit alpha.
	GrayAlpha8

	// RGB8 is 24-bit R, G, B.
	RGB8
	// BGR8 is 24-bit B, G, R.
	BGR8
	// RGBA8 is 32-bit R, G, B, A (non-premultiplied).
	RGBA8
	// BGRA8 is 32-bit B, G, R, A (non-premultiplied).
	BGRA8
	// ARGB8 is 32-bit A, R, G, B (non-premultiplied).
	ARGB8
	// RGB16 is 48-bit R, G, B with little-endian 16-bit channels.
	RGB16
	// RGBA16 is 64-bit R, G, B, A with little-endian 16-bit channels.
	RGBA16
	// RGBF32 is three 32-bit floats.
	RGBF32
	// RGBAF32 is four 32-bit floats.
	RGBAF32

	// BGR565 is a little-endian 16-bit word: B in bits 0-4, G in 5-10, R in 11-15.
	BGR565
	// BGRA4444 is a little-endian 16-bit word: B in bits 0-3, G 4-7, R 8-11, A 12-15.
	BGRA4444
	// BGRA5551 is a little-endian 16-bit word: B in bits 0-4, G 5-9, R 10-14, A bit 15.
	BGRA5551

	// YUV8 is full-resolution 8-bit Y, U, V (4:4:4, BT.601 full range).
	YUV8
	// HSV8 is 8-bit hue (0..255 over 0..360 degrees), saturation and value.
	HSV8

	// Index1 is a 1-bit palette index, MSB first.
	Index1
	// Index4 is a 4-bit palette index, high nibble first.
	Index4
	// Index8 is an 8-bit palette index.
	Index8

	// YUYV is 4:2:2 packed as Y0 U Y1 V per two pixels.
	YUYV
	// UYVY is 4:2:2 packed as U Y0 V Y1 per two pixels.
	UYVY
	// NV12 is 4:2:0: a full-resolution Y plane then interleaved U, V at half resolution.
	NV12
	// NV21 is 4:2:0 like NV12 with V before U.
	NV21

	// ETC1 is Ericsson Texture Compression v1, 8 bytes per 4x4 block.
	ETC1
	// BC6H is BPTC float, 16 bytes per 4x4 block.
	BC6H
	// BC7 is BPTC unorm, 16 bytes per 4x4 block.
	BC7
	// ASTC4x4 is ASTC with a 4x4 footprint, 16 bytes per block.
	ASTC4x4
	// PVRTC4 is PowerVR texture compression at 4 bits per pixel.
	PVRTC4
	// PVRTC2 is PowerVR texture compression at 2 bits per pixel.
	PVRTC2

	// formatCount is the number of formats (for internal use).
	formatCount
)

// Model is the color model family of a format.
type Model uint8

// Color models.
const (
	ModelUnknown Model = iota
	ModelGray
	ModelRGB
	ModelBGR
	ModelYUV
	ModelHSV
	ModelIndexed
	ModelCompressed
)

// Info contains metadata about a pixel format.
type Info struct {
	// Name is the canonical format name.
	Name string

	// Model is the color model family.
	Model Model

	// Channels is the number of logical channels (an index counts as one).
	Channels int

	// BitsPerPixel is the storage size of one pixel. Zero for block formats.
	BitsPerPixel int

	// BitsPerChannel is the size of the widest channel.
	BitsPerChannel int

	// HasAlpha indicates the format carries an alpha channel.
	HasAlpha bool

	// Float indicates channels are IEEE-754 floats.
	Float bool

	// Indexed indicates pixels are palette indices.
	Indexed bool

	// Subsampled indicates chroma is stored at reduced resolution.
	Subsampled bool

	// Compressed indicates a block-compressed format.
	Compressed bool

	// BlockWidth, BlockHeight and BlockBytes describe the block footprint of
	// compressed formats.
	BlockWidth, BlockHeight, BlockBytes int
}

var infoTable = [formatCount]Info{
	Gray8:      {Name: "Gray8", Model: ModelGray, Channels: 1, BitsPerPixel: 8, BitsPerChannel: 8},
	Gray16:     {Name: "Gray16", Model: ModelGray, Channels: 1, BitsPerPixel: 16, BitsPerChannel: 16},
	GrayF32:    {Name: "GrayF32", Model: ModelGray, Channels: 1, BitsPerPixel: 32, BitsPerChannel: 32, Float: true},
	GrayAlpha8: {Name: "GrayAlpha8", Model: ModelGray, Channels: 2, BitsPerPixel: 16, BitsPerChannel: 8, HasAlpha: true},

	RGB8:    {Name: "RGB8", Model: ModelRGB, Channels: 3, BitsPerPixel: 24, BitsPerChannel: 8},
	BGR8:    {Name: "BGR8", Model: ModelBGR, Channels: 3, BitsPerPixel: 24, BitsPerChannel: 8},
	RGBA8:   {Name: "RGBA8", Model: ModelRGB, Channels: 4, BitsPerPixel: 32, BitsPerChannel: 8, HasAlpha: true},
	BGRA8:   {Name: "BGRA8", Model: ModelBGR, Channels: 4, BitsPerPixel: 32, BitsPerChannel: 8, HasAlpha: true},
	ARGB8:   {Name: "ARGB8", Model: ModelRGB, Channels: 4, BitsPerPixel: 32, BitsPerChannel: 8, HasAlpha: true},
	RGB16:   {Name: "RGB16", Model: ModelRGB, Channels: 3, BitsPerPixel: 48, BitsPerChannel: 16},
	RGBA16:  {Name: "RGBA16", Model: ModelRGB, Channels: 4, BitsPerPixel: 64, BitsPerChannel: 16, HasAlpha: true},
	RGBF32:  {Name: "RGBF32", Model: ModelRGB, Channels: 3, BitsPerPixel: 96, BitsPerChannel: 32, Float: true},
	RGBAF32: {Name: "RGBAF32", Model: ModelRGB, Channels: 4, BitsPerPixel: 128, BitsPerChannel: 32, Float: true, HasAlpha: true},

	BGR565:   {Name: "BGR565", Model: ModelBGR, Channels: 3, BitsPerPixel: 16, BitsPerChannel: 6},
	BGRA4444: {Name: "BGRA4444", Model: ModelBGR, Channels: 4, BitsPerPixel: 16, BitsPerChannel: 4, HasAlpha: true},
	BGRA5551: {Name: "BGRA5551", Model: ModelBGR, Channels: 4, BitsPerPixel: 16, BitsPerChannel: 5, HasAlpha: true},

	YUV8: {Name: "YUV8", Model: ModelYUV, Channels: 3, BitsPerPixel: 24, BitsPerChannel: 8},
	HSV8: {Name: "HSV8", Model: ModelHSV, Channels: 3, BitsPerPixel: 24, BitsPerChannel: 8},

	Index1: {Name: "Index1", Model: ModelIndexed, Channels: 1, BitsPerPixel: 1, BitsPerChannel: 1, Indexed: true},
	Index4: {Name: "Index4", Model: ModelIndexed, Channels: 1, BitsPerPixel: 4, BitsPerChannel: 4, Indexed: true},
	Index8: {Name: "Index8", Model: ModelIndexed, Channels: 1, BitsPerPixel: 8, BitsPerChannel: 8, Indexed: true},

	YUYV: {Name: "YUYV", Model: ModelYUV, Channels: 3, BitsPerPixel: 16, BitsPerChannel: 8, Subsampled: true},
	UYVY: {Name: "UYVY", Model: ModelYUV, Channels: 3, BitsPerPixel: 16, BitsPerChannel: 8, Subsampled: true},
	NV12: {Name: "NV12", Model: ModelYUV, Channels: 3, BitsPerPixel: 12, BitsPerChannel: 8, Subsampled: true},
	NV21: {Name: "NV21", Model: ModelYUV, Channels: 3, BitsPerPixel: 12, BitsPerChannel: 8, Subsampled: true},

	ETC1:    {Name: "ETC1", Model: ModelCompressed, Channels: 3, BitsPerChannel: 8, Compressed: true, BlockWidth: 4, BlockHeight: 4, BlockBytes: 8},
	BC6H:    {Name: "BC6H", Model: ModelCompressed, Channels: 3, BitsPerChannel: 16, Float: true, Compressed: true, BlockWidth: 4, BlockHeight: 4, BlockBytes: 16},
	BC7:     {Name: "BC7", Model: ModelCompressed, Channels: 4, BitsPerChannel: 8, HasAlpha: true, Compressed: true, BlockWidth: 4, BlockHeight: 4, BlockBytes: 16},
	ASTC4x4: {Name: "ASTC4x4", Model: ModelCompressed, Channels: 4, BitsPerChannel: 8, HasAlpha: true, Compressed: true, BlockWidth: 4, BlockHeight: 4, BlockBytes: 16},
	PVRTC4:  {Name: "PVRTC4", Model: ModelCompressed, Channels: 4, BitsPerPixel: 4, BitsPerChannel: 8, HasAlpha: true, Compressed: true},
	PVRTC2:  {Name: "PVRTC2", Model: ModelCompressed, Channels: 4, BitsPerPixel: 2, BitsPerChannel: 8, HasAlpha: true, Compressed: true},
}

// Info returns the Info for this format. Unknown formats yield the zero Info.
func (f Format) Info() Info {
	if !f.IsValid() {
		return Info{}
	}
	return infoTable[f]
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f > Unknown && f < formatCount
}

// Channels returns the number of logical channels.
func (f Format) Channels() int {
	return f.Info().Channels
}

// BitsPerPixel returns the storage bits of one pixel (zero for block formats).
func (f Format) BitsPerPixel() int {
	return f.Info().BitsPerPixel
}

// HasAlpha returns true if this format has an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// IsIndexed returns true for palette formats.
func (f Format) IsIndexed() bool {
	return f.Info().Indexed
}

// IsSubsampled returns true for chroma-subsampled formats.
func (f Format) IsSubsampled() bool {
	return f.Info().Subsampled
}

// IsCompressed returns true for block-compressed formats.
func (f Format) IsCompressed() bool {
	return f.Info().Compressed
}

// IsPlain reports whether the format has a per-pixel color value type:
// not indexed, not subsampled and not compressed.
func (f Format) IsPlain() bool {
	info := f.Info()
	return f.IsValid() && !info.Indexed && !info.Subsampled && !info.Compressed
}

// BytesPerPixel returns the whole number of bytes one pixel occupies, or zero
// when pixels are not byte aligned (sub-byte indices, subsampled and block formats).
func (f Format) BytesPerPixel() int {
	info := f.Info()
	if info.Subsampled || info.Compressed || info.BitsPerPixel%8 != 0 {
		return 0
	}
	return info.BitsPerPixel / 8
}

// PaletteEntries returns the number of palette entries an indexed format can
// address, or zero for non-indexed formats.
func (f Format) PaletteEntries() int {
	if !f.IsIndexed() {
		return 0
	}
	return 1 << f.BitsPerPixel()
}

// String returns the canonical format name.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return infoTable[f].Name
}

// Parse returns the format with the given case-insensitive name, or Unknown.
func Parse(name string) Format {
	for f := Gray8; f < formatCount; f++ {
		if strings.EqualFold(infoTable[f].Name, name) {
			return f
		}
	}
	return Unknown
}

// All returns every valid format in declaration order.
func All() []Format {
	out := make([]Format, 0, formatCount-1)
	for f := Gray8; f < formatCount; f++ {
		out = append(out, f)
	}
	return out
}
