package common

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
)

// nopHandler is a slog.Handler that discards every record. Enabled reports false so
// callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger shared by the engine and all of its packages.
// The engine is silent until a logger is set. Passing nil restores the silent default.
//
// Levels used by the engine:
//   - slog.LevelDebug: per-frame diagnostics
//   - slog.LevelInfo: lifecycle events (adapter selected, surface configured, pipeline registered)
//   - slog.LevelWarn: skipped or recovered frames
//   - slog.LevelError: fatal conditions that stop the render loop
//
// Parameters:
//   - l: the logger to use, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current engine logger. Safe for concurrent use.
//
// Returns:
//   - *slog.Logger: the active logger, never nil
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// ParseLogLevel maps a level name (debug, info, warn, error) onto a slog.Level.
// Unknown names fall back to slog.LevelInfo and report false.
//
// Parameters:
//   - name: the case-insensitive level name
//
// Returns:
//   - slog.Level: the parsed level
//   - bool: true if the name was recognized
func ParseLogLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
