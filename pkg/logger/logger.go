package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by every toybrowser package.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Levels:
//   - Debug: per-checkpoint tracing, font face creation
//   - Info: phase start/end timings
//   - Warn: recoverable host problems (font fallback, script console.warn)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Get returns the active logger. Never nil.
func Get() *slog.Logger {
	return loggerPtr.Load()
}

// Timed logs the start of a phase and returns a func that logs its end
// with the elapsed time:
//
//	defer logger.Timed("layout")()
func Timed(name string, attrs ...any) func() {
	l := Get()
	start := time.Now()
	l.Info(name+" started", append([]any{"at", start}, attrs...)...)
	return func() {
		end := time.Now()
		l.Info(name+" ended", append([]any{"at", end, "took", end.Sub(start)}, attrs...)...)
	}
}
