// Package logger holds the process-wide structured logger used by slabkit's
// containers and allocators.
package logger

import (
	"context"
	"io"
	"log/slog"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Enabled bool         // If false, all logging is discarded
	Handler slog.Handler // Destination handler. Default: text on Writer
	Writer  io.Writer    // Used when Handler is nil. Default: io.Discard
	Level   slog.Level   // Minimum level for the default handler. Default: LevelInfo
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	if opts.Handler != nil {
		L = slog.New(opts.Handler)
		return
	}
	w := opts.Writer
	if w == nil {
		w = io.Discard
	}
	level := opts.Level
	if level == 0 {
		level = slog.LevelInfo
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// DebugEnabled reports whether debug records would be emitted. Hot paths
// check it before building attributes.
func DebugEnabled() bool {
	return L.Enabled(context.Background(), slog.LevelDebug)
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
