package hoverfx

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr is read from decode goroutines as well as the update goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the diagnostic logger. By default hoverfx produces no
// log output. Pass nil to restore the silent default.
//
// Log levels used by hoverfx:
//   - [slog.LevelDebug]: load failures, per-draw stats in debug mode
//   - [slog.LevelInfo]: effect construction (including the attribution line)
//   - [slog.LevelWarn]: rejected configurations
//
// Example:
//
//	hoverfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current diagnostic logger. It is never nil.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
