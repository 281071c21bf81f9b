package codec

import (
	"fmt"
	"io"
	"sync"

	"github.com/gogpu/bitmap"
)

// Stream is the input of a decoder probe.
type Stream = io.ReadSeeker

// Decoder tries to decode s. It should fail fast when the stream is not its
// format.
type Decoder func(s Stream) (*bitmap.Array, error)

// Encoder writes a to w. opts has already passed size validation.
type Encoder func(w io.Writer, a *bitmap.Array, opts Options) error

type namedDecoder struct {
	name string
	fn   Decoder
}

type registeredEncoder struct {
	size uint32
	fn   Encoder
}

// Registry holds decoder probes and encoders. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	decoders []namedDecoder
	encoders map[Kind]registeredEncoder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{encoders: make(map[Kind]registeredEncoder)}
}

// AddDecoder appends a probe. Probes run in registration order.
func (r *Registry) AddDecoder(name string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders = append(r.decoders, namedDecoder{name: name, fn: d})
}

// Decoders returns the probe names in order.
func (r *Registry) Decoders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.decoders))
	for i, d := range r.decoders {
		names[i] = d.name
	}
	return names
}

// AddEncoder registers the encoder of kind k. size is the byte size of the
// options struct it accepts, as reported by unsafe.Sizeof.
func (r *Registry) AddEncoder(k Kind, size uintptr, e Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[k] = registeredEncoder{size: uint32(size), fn: e}
}

// Detect decodes s with the first probe that succeeds. The stream is
// rewound to its start before each probe. When every probe fails the error
// wraps bitmap.ErrNotSupported.
func (r *Registry) Detect(s Stream) (*bitmap.Array, error) {
	r.mu.RLock()
	decoders := append([]namedDecoder(nil), r.decoders...)
	r.mu.RUnlock()

	log := bitmap.Logger()
	for _, d := range decoders {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("codec: rewind: %w", err)
		}
		a, err := d.fn(s)
		if err == nil {
			log.Debug("codec: decoded", "decoder", d.name, "bitmaps", a.Len())
			return a, nil
		}
		log.Debug("codec: probe declined", "decoder", d.name, "err", err)
	}
	return nil, fmt.Errorf("codec: no decoder recognized the stream: %w", bitmap.ErrNotSupported)
}

// Encode writes a with the encoder selected by opts. It fails with
// bitmap.ErrInvalidArgs when the header size does not match the registered
// options size, and with bitmap.ErrNotSupported for an unknown kind.
func (r *Registry) Encode(w io.Writer, a *bitmap.Array, opts Options) error {
	if opts == nil || a == nil || a.Len() == 0 {
		return fmt.Errorf("codec: encode: missing options or bitmaps: %w", bitmap.ErrInvalidArgs)
	}
	h := opts.Header()
	r.mu.RLock()
	e, ok := r.encoders[h.Kind]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("codec: encoder %v: %w", h.Kind, bitmap.ErrNotSupported)
	}
	if h.Size != e.size {
		return fmt.Errorf("codec: %v options of %d bytes, want %d: %w", h.Kind, h.Size, e.size, bitmap.ErrInvalidArgs)
	}
	if err := e.fn(w, a, opts); err != nil {
		return fmt.Errorf("codec: encode %v: %w", h.Kind, err)
	}
	return nil
}

// EncodeBitmap encodes a single bitmap.
func (r *Registry) EncodeBitmap(w io.Writer, b *bitmap.Bitmap, opts Options) error {
	a, err := bitmap.NewArray(bitmap.ArrayFrames, b)
	if err != nil {
		return err
	}
	defer a.Release()
	return r.Encode(w, a, opts)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry with the built-in codecs. Decoders
// are probed in the order BMPZ, PNG, JPEG, GIF, BMP, TIFF, WebP.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		registerBuiltins(defaultRegistry)
	})
	return defaultRegistry
}
