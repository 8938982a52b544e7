package pathfill

import (
	"log/slog"
	"sync/atomic"
)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(slog.DiscardHandler))
}

// SetLogger sets the logger for pathfill. By default nothing is logged;
// nil restores the silent default. SetLogger is safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: batch diagnostics (flushes, capacity flushes,
//     buffer acquisition)
//   - [slog.LevelWarn]: failed flushes and other non-fatal issues
//
// Graphic contexts passed to New afterwards receive the logger when they
// implement SetLogger(*slog.Logger).
//
// Example:
//
//	pathfill.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	loggerPtr.Store(l)
}

// Logger returns the logger used by pathfill.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// propagateLogger hands the current logger to v if it accepts one.
func propagateLogger(v any) {
	if ls, ok := v.(interface{ SetLogger(*slog.Logger) }); ok {
		ls.SetLogger(Logger())
	}
}
