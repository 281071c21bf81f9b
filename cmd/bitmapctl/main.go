// Command bitmapctl decodes an image, runs it through a bitmap pipeline and
// encodes the result.
//
//	bitmapctl -in photo.png -out small.gif -width 64 -height 64 -method lanczos3
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/bitmap"
	"github.com/gogpu/bitmap/codec"
	"github.com/gogpu/bitmap/format"
)

type config struct {
	in, out  string
	kind     string
	format   string
	width    int
	height   int
	method   string
	filter   string
	equalize int
	mips     bool
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "in", "", "input file")
	flag.StringVar(&cfg.out, "out", "", "output file")
	flag.StringVar(&cfg.kind, "kind", "", "output encoder (bmpz, png, jpeg, gif, bmp, tiff); default from -out extension")
	flag.StringVar(&cfg.format, "format", "", "reformat to this pixel format, e.g. BGR565 or Index8")
	flag.IntVar(&cfg.width, "width", 0, "resize width")
	flag.IntVar(&cfg.height, "height", 0, "resize height")
	flag.StringVar(&cfg.method, "method", "bilinear", "resample method")
	flag.StringVar(&cfg.filter, "filter", "", "convolution filter: sharpen, edge, blur3, blur5, unsharp")
	flag.IntVar(&cfg.equalize, "equalize", -1, "equalize the histogram of this channel index")
	flag.BoolVar(&cfg.mips, "mips", false, "write a full mip chain (bmpz only)")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	bitmap.SetLogger(logger)

	if err := run(cfg); err != nil {
		logger.Error("bitmapctl failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	if cfg.in == "" || cfg.out == "" {
		return errors.New("both -in and -out are required")
	}
	kind, err := outputKind(cfg)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.in)
	if err != nil {
		return err
	}
	defer f.Close()
	a, err := codec.Default().Detect(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.in, err)
	}
	defer a.Release()

	frames := make([]*bitmap.Bitmap, 0, a.Len())
	defer func() {
		for _, b := range frames {
			b.Release()
		}
	}()
	for _, b := range a.Bitmaps() {
		out, err := process(cfg, b)
		if err != nil {
			return err
		}
		frames = append(frames, out)
	}

	var result *bitmap.Array
	if cfg.mips {
		result, err = bitmap.GenerateMipChain(frames[0], mustMethod(cfg.method))
	} else {
		result, err = bitmap.NewArray(bitmap.ArrayFrames, frames...)
	}
	if err != nil {
		return err
	}
	defer result.Release()

	opts, _ := codec.NewOptions(kind)
	w, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	if err := codec.Default().Encode(w, result, opts); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	b := result.At(0)
	bitmap.Logger().Info("wrote", "file", cfg.out, "kind", kind, "bitmaps", result.Len(),
		"format", b.Format(), "width", b.Width(), "height", b.Height())
	return nil
}

// process applies the configured steps to one bitmap and returns a new
// reference.
func process(cfg config, b *bitmap.Bitmap) (*bitmap.Bitmap, error) {
	cur := b.Retain()
	step := func(next *bitmap.Bitmap, err error) error {
		if err != nil {
			return err
		}
		cur.Release()
		cur = next
		return nil
	}

	if cfg.width > 0 || cfg.height > 0 {
		size := cur.Size()
		if cfg.width > 0 {
			size.Width = cfg.width
		}
		if cfg.height > 0 {
			size.Height = cfg.height
		}
		m, ok := bitmap.ParseMethod(cfg.method)
		if !ok {
			cur.Release()
			return nil, fmt.Errorf("unknown method %q", cfg.method)
		}
		if err := step(bitmap.Resize(cur, m, size)); err != nil {
			cur.Release()
			return nil, err
		}
	}
	if cfg.filter != "" {
		mask, ok := masks[cfg.filter]
		if !ok {
			cur.Release()
			return nil, fmt.Errorf("unknown filter %q", cfg.filter)
		}
		if err := step(bitmap.Filter(cur, mask())); err != nil {
			cur.Release()
			return nil, err
		}
	}
	if cfg.equalize >= 0 {
		if err := step(bitmap.AutoEqualize(cur, bitmap.Channel(cfg.equalize), 0)); err != nil {
			cur.Release()
			return nil, err
		}
	}
	if cfg.format != "" {
		target := format.Parse(cfg.format)
		if err := step(bitmap.Reformat(cur, target)); err != nil {
			cur.Release()
			return nil, err
		}
	}
	return cur, nil
}

var masks = map[string]func() bitmap.Mask{
	"sharpen": bitmap.SharpenMask,
	"edge":    bitmap.EdgeDetectMask,
	"blur3":   bitmap.GaussianBlur3x3Mask,
	"blur5":   bitmap.GaussianBlur5x5Mask,
	"unsharp": bitmap.UnsharpMask,
}

func outputKind(cfg config) (codec.Kind, error) {
	name := cfg.kind
	if name == "" {
		name = strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.out)), ".")
	}
	k, ok := codec.ParseKind(name)
	if !ok {
		return 0, fmt.Errorf("unknown output kind %q", name)
	}
	if cfg.mips && k != codec.KindRaw {
		return 0, errors.New("-mips needs bmpz output")
	}
	return k, nil
}

func mustMethod(name string) bitmap.Method {
	if m, ok := bitmap.ParseMethod(name); ok {
		return m
	}
	return bitmap.Bilinear
}
