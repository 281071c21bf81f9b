package bitmap

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/bitmap/format"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	b := fromBytes(t, 1, 1, format.RGBA8, []byte{1, 2, 3, 4})
	out, err := Reformat(b, format.BGRA8)
	if err != nil {
		t.Fatalf("Reformat: %v", err)
	}
	out.Release()
	if _, err := Reformat(b, format.BC7); err == nil {
		t.Fatal("Reformat to BC7 succeeded")
	}

	logs := buf.String()
	for _, want := range []string{"level=DEBUG", "bitmap: reformat", "level=WARN", "no conversion route"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log output lacks %q:\n%s", want, logs)
		}
	}
}

func TestSetLogger_NilSilences(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}
