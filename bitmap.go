package bitmap

import (
	"fmt"
	"image"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/gogpu/bitmap/format"
	"github.com/gogpu/bitmap/internal/pool"
)

// Type is the shape of a bitmap.
type Type uint8

const (
	// Type2D is a plain image with a depth of 1.
	Type2D Type = iota
	// TypeCube is a cube map with exactly six faces stored as depth slices.
	TypeCube
	// Type3D is a volume of one or more depth slices.
	Type3D

	typeCount
)

// CubeFaces is the depth of every cube map.
const CubeFaces = 6

func (t Type) String() string {
	switch t {
	case Type2D:
		return "2D"
	case TypeCube:
		return "Cube"
	case Type3D:
		return "3D"
	}
	return "Unknown"
}

// AttrFrameDuration is the attribute key holding the display time of an
// animation frame as a time.Duration.
const AttrFrameDuration = "frame-duration"

// DefaultAllocationLimit is the initial value of the allocation limit.
const DefaultAllocationLimit = 1 << 32

var allocationLimit atomic.Int64

func init() {
	allocationLimit.Store(DefaultAllocationLimit)
}

// SetAllocationLimit sets the largest pixel buffer, in bytes, that New and
// the engines will allocate. Requests above it fail with ErrOutOfMemory.
// A non-positive value restores DefaultAllocationLimit.
func SetAllocationLimit(n int64) {
	if n <= 0 {
		n = DefaultAllocationLimit
	}
	allocationLimit.Store(n)
}

// AllocationLimit returns the current allocation limit.
func AllocationLimit() int64 {
	return allocationLimit.Load()
}

// Bitmap is a pixel buffer with a fixed type, size and format.
//
// The buffer is zero-filled on creation unless initial pixels are supplied.
// A Bitmap is not safe for concurrent mutation; callers that share one
// across goroutines must serialize Lock and the in-place operations.
type Bitmap struct {
	typ     Type
	size    format.Size3D
	format  format.Format
	palette *Palette
	pix     []byte
	attrs   map[string]any

	refs   atomic.Int32
	locked bool
	// orphaned is set when the last reference goes while a lock is
	// outstanding; Unlock then frees the buffer.
	orphaned bool
}

// New creates a bitmap.
//
// It fails with ErrInvalidArgs when a dimension is not positive, t is not a
// known Type, the depth does not fit t (Type2D needs 1, TypeCube needs 6),
// the format is unknown, an indexed format lacks a palette that fits it, a
// non-indexed format is given one, or WithPixels data is too short. A buffer
// larger than AllocationLimit fails with ErrOutOfMemory.
func New(t Type, size format.Size3D, f format.Format, opts ...Option) (*Bitmap, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(t, size, f); err != nil {
		return nil, err
	}
	if err := checkPaletteFor(f, o.palette); err != nil {
		return nil, err
	}
	total := format.TotalSize(f, size)
	if o.pixels != nil && len(o.pixels) < total {
		return nil, fmt.Errorf("bitmap: %d initial bytes, need %d: %w", len(o.pixels), total, ErrInvalidArgs)
	}

	pix, err := allocate(total)
	if err != nil {
		return nil, err
	}
	copy(pix, o.pixels)
	if o.palette != nil {
		o.palette.Retain()
	}
	b := newBitmap(t, size, f, o.palette, pix)
	if len(o.attrs) > 0 {
		b.attrs = o.attrs
	}
	return b, nil
}

// newBitmap wraps an already allocated buffer. The palette reference is
// transferred to the bitmap.
func newBitmap(t Type, size format.Size3D, f format.Format, p *Palette, pix []byte) *Bitmap {
	b := &Bitmap{typ: t, size: size, format: f, palette: p, pix: pix}
	b.refs.Store(1)
	return b
}

func validate(t Type, size format.Size3D, f format.Format) error {
	if !size.Valid() {
		return fmt.Errorf("bitmap: size %dx%dx%d: %w", size.Width, size.Height, size.Depth, ErrInvalidArgs)
	}
	switch t {
	case Type2D:
		if size.Depth != 1 {
			return fmt.Errorf("bitmap: 2D bitmap with depth %d: %w", size.Depth, ErrInvalidArgs)
		}
	case TypeCube:
		if size.Depth != CubeFaces {
			return fmt.Errorf("bitmap: cube map with %d faces: %w", size.Depth, ErrInvalidArgs)
		}
	case Type3D:
	default:
		return fmt.Errorf("bitmap: type %d: %w", t, ErrInvalidArgs)
	}
	if !f.IsValid() {
		return fmt.Errorf("bitmap: format %d: %w", f, ErrInvalidArgs)
	}
	return checkTotal(size, f)
}

// checkTotal rejects extents whose buffer size overflows.
func checkTotal(size format.Size3D, f format.Format) error {
	if format.TotalSize(f, size) == 0 {
		return fmt.Errorf("bitmap: %v buffer of %dx%dx%d overflows: %w", f, size.Width, size.Height, size.Depth, ErrInvalidArgs)
	}
	return nil
}

func checkPaletteFor(f format.Format, p *Palette) error {
	if !f.IsIndexed() {
		if p != nil {
			return fmt.Errorf("bitmap: palette given for %v: %w", f, ErrInvalidArgs)
		}
		return nil
	}
	if p == nil {
		return fmt.Errorf("bitmap: %v needs a palette: %w", f, ErrInvalidArgs)
	}
	if p.Len() > f.PaletteEntries() {
		return fmt.Errorf("bitmap: %d palette entries for %v: %w", p.Len(), f, ErrInvalidArgs)
	}
	return nil
}

// allocate returns a zeroed pooled buffer of n bytes.
func allocate(n int) ([]byte, error) {
	if int64(n) > AllocationLimit() {
		return nil, fmt.Errorf("bitmap: %d byte buffer exceeds limit %d: %w", n, AllocationLimit(), ErrOutOfMemory)
	}
	return pool.Get(n), nil
}

// Retain adds a reference and returns b.
func (b *Bitmap) Retain() *Bitmap {
	b.refs.Add(1)
	return b
}

// Release drops a reference. The last release returns the pixel buffer to
// the pool and releases the palette. Extra releases are ignored.
func (b *Bitmap) Release() {
	for {
		n := b.refs.Load()
		if n <= 0 {
			return
		}
		if b.refs.CompareAndSwap(n, n-1) {
			if n == 1 {
				if b.locked {
					b.orphaned = true
				} else {
					b.free()
				}
			}
			return
		}
	}
}

func (b *Bitmap) free() {
	pool.Put(b.pix)
	b.pix = nil
	if b.palette != nil {
		b.palette.Release()
		b.palette = nil
	}
	b.attrs = nil
}

// Refs returns the current reference count.
func (b *Bitmap) Refs() int {
	return int(b.refs.Load())
}

// Type returns the bitmap shape.
func (b *Bitmap) Type() Type { return b.typ }

// Size returns the bitmap extent.
func (b *Bitmap) Size() format.Size3D { return b.size }

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.size.Width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.size.Height }

// Depth returns the number of depth slices or cube faces.
func (b *Bitmap) Depth() int { return b.size.Depth }

// Format returns the pixel format.
func (b *Bitmap) Format() format.Format { return b.format }

// Bounds returns the rectangle of one depth slice.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.size.Width, b.size.Height)
}

// Stride returns the bytes per scanline.
func (b *Bitmap) Stride() int {
	return format.Stride(b.format, b.size.Width)
}

// PlaneSize returns the bytes per depth slice.
func (b *Bitmap) PlaneSize() int {
	return format.PlaneSize(b.format, b.size.Width, b.size.Height)
}

// Len returns the size of the pixel buffer in bytes.
func (b *Bitmap) Len() int {
	return format.TotalSize(b.format, b.size)
}

// Palette returns a new reference to the palette of an indexed bitmap, or
// ErrFeatureNotSupported for any other format. The caller must release it.
func (b *Bitmap) Palette() (*Palette, error) {
	if b.palette == nil {
		return nil, fmt.Errorf("bitmap: %v has no palette: %w", b.format, ErrFeatureNotSupported)
	}
	return b.palette.Retain(), nil
}

// Pixels is the scoped access granted by Lock.
type Pixels struct {
	b    *Bitmap
	done bool
}

// Lock grants direct access to the pixel buffer until Unlock. Only one lock
// may be outstanding; a second call fails with ErrLocked.
func (b *Bitmap) Lock() (*Pixels, error) {
	if b.released() {
		return nil, ErrReleased
	}
	if b.locked {
		return nil, ErrLocked
	}
	b.locked = true
	return &Pixels{b: b}, nil
}

// Locked reports whether a lock is outstanding.
func (b *Bitmap) Locked() bool { return b.locked }

// Bytes returns the whole buffer. It returns nil after Unlock.
func (p *Pixels) Bytes() []byte {
	if p.done || p.b.pix == nil {
		return nil
	}
	return p.b.pix[:p.b.Len()]
}

// Plane returns the bytes of depth slice z, or nil when z is out of range or
// the lock has been released.
func (p *Pixels) Plane(z int) []byte {
	if p.done || p.b.pix == nil || z < 0 || z >= p.b.size.Depth {
		return nil
	}
	n := p.b.PlaneSize()
	return p.b.pix[z*n : (z+1)*n]
}

// Unlock ends the access. Calling it more than once is harmless. When the
// last reference was released during the lock, Unlock frees the buffer.
func (p *Pixels) Unlock() {
	if p.done {
		return
	}
	p.done = true
	p.b.locked = false
	if p.b.orphaned {
		p.b.orphaned = false
		p.b.free()
	}
}

func (b *Bitmap) released() bool {
	return b.pix == nil || b.refs.Load() <= 0
}

func (b *Bitmap) checkAccess(mutating bool) error {
	if b.released() {
		return ErrReleased
	}
	if mutating && b.locked {
		return ErrLocked
	}
	return nil
}

func (b *Bitmap) checkDepth(depth int) error {
	if depth < 0 || depth >= b.size.Depth {
		return fmt.Errorf("bitmap: depth %d of %d: %w", depth, b.size.Depth, ErrInvalidArgs)
	}
	return nil
}

// plane returns slice z without lock bookkeeping, for engines in this package.
func (b *Bitmap) plane(z int) []byte {
	n := b.PlaneSize()
	return b.pix[z*n : (z+1)*n]
}

// data returns the whole buffer without lock bookkeeping.
func (b *Bitmap) data() []byte {
	return b.pix[:b.Len()]
}

// CopyPixels copies depth slice depth into dst, which must hold PlaneSize
// bytes. It returns the number of bytes copied.
func (b *Bitmap) CopyPixels(dst []byte, depth int) (int, error) {
	if err := b.checkAccess(false); err != nil {
		return 0, err
	}
	if err := b.checkDepth(depth); err != nil {
		return 0, err
	}
	if len(dst) < b.PlaneSize() {
		return 0, fmt.Errorf("bitmap: destination of %d bytes, need %d: %w", len(dst), b.PlaneSize(), ErrInvalidArgs)
	}
	return copy(dst, b.plane(depth)), nil
}

// ReadPixels returns a tightly packed copy of area from depth slice depth.
// The format must be byte aligned (see format.Format.BytesPerPixel).
func (b *Bitmap) ReadPixels(area image.Rectangle, depth int) ([]byte, error) {
	bpp, err := b.checkArea(area, depth, false)
	if err != nil {
		return nil, err
	}
	row := area.Dx() * bpp
	out := make([]byte, row*area.Dy())
	src, stride := b.plane(depth), b.Stride()
	for y := range area.Dy() {
		o := (area.Min.Y+y)*stride + area.Min.X*bpp
		copy(out[y*row:(y+1)*row], src[o:o+row])
	}
	return out, nil
}

// WritePixels stores tightly packed data into area of depth slice depth.
func (b *Bitmap) WritePixels(area image.Rectangle, depth int, data []byte) error {
	bpp, err := b.checkArea(area, depth, true)
	if err != nil {
		return err
	}
	row := area.Dx() * bpp
	if len(data) < row*area.Dy() {
		return fmt.Errorf("bitmap: %d bytes for a %v area: %w", len(data), area, ErrInvalidArgs)
	}
	dst, stride := b.plane(depth), b.Stride()
	for y := range area.Dy() {
		o := (area.Min.Y+y)*stride + area.Min.X*bpp
		copy(dst[o:o+row], data[y*row:(y+1)*row])
	}
	return nil
}

func (b *Bitmap) checkArea(area image.Rectangle, depth int, mutating bool) (int, error) {
	if err := b.checkAccess(mutating); err != nil {
		return 0, err
	}
	if err := b.checkDepth(depth); err != nil {
		return 0, err
	}
	bpp := b.format.BytesPerPixel()
	if bpp == 0 {
		return 0, fmt.Errorf("bitmap: area access on %v: %w", b.format, ErrNotSupported)
	}
	if area.Empty() || !area.In(b.Bounds()) {
		return 0, fmt.Errorf("bitmap: area %v outside %v: %w", area, b.Bounds(), ErrInvalidArgs)
	}
	return bpp, nil
}

// SetAttribute stores a value in the attribute bag. A nil value deletes key.
func (b *Bitmap) SetAttribute(key string, value any) {
	if value == nil {
		delete(b.attrs, key)
		return
	}
	if b.attrs == nil {
		b.attrs = make(map[string]any)
	}
	b.attrs[key] = value
}

// Attribute returns the value stored under key.
func (b *Bitmap) Attribute(key string) (any, bool) {
	v, ok := b.attrs[key]
	return v, ok
}

// AttributeKeys returns the attribute keys in sorted order.
func (b *Bitmap) AttributeKeys() []string {
	return slices.Sorted(maps.Keys(b.attrs))
}

// AttributeAs returns the value stored under key when it has type T.
func AttributeAs[T any](b *Bitmap, key string) (T, bool) {
	v, ok := b.attrs[key].(T)
	return v, ok
}

// derive creates a bitmap of b's type in format f with a fresh buffer.
// The palette reference is transferred, or released on failure; attributes
// are copied.
func (b *Bitmap) derive(size format.Size3D, f format.Format, p *Palette) (*Bitmap, error) {
	err := checkTotal(size, f)
	var pix []byte
	if err == nil {
		pix, err = allocate(format.TotalSize(f, size))
	}
	if err != nil {
		if p != nil {
			p.Release()
		}
		return nil, err
	}
	out := newBitmap(b.typ, size, f, p, pix)
	if len(b.attrs) > 0 {
		out.attrs = maps.Clone(b.attrs)
	}
	return out, nil
}
