package bitmap

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent())
}

func silent() *slog.Logger { return slog.New(slog.DiscardHandler) }

// SetLogger routes the records of this package and of codec to l. Nothing
// is logged until it is called; nil goes back to discarding.
//
// Dispatch decisions such as the chosen route or palette size are logged at
// [slog.LevelDebug]. Requests that no engine can serve are logged at
// [slog.LevelWarn] before the error is returned.
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent()
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}
