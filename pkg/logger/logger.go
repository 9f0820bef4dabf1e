// Package logger provides structured logging setup using Go's slog package.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Options configures the logger setup.
type Options struct {
	Level   string // debug, info, warn, error
	Console bool   // colored human-readable output (LOG_FORMAT=console)
}

// Setup configures the global slog logger with correlation ID support.
func Setup(opts Options) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, opts)))
}

// NewHandler builds the handler used by Setup, writing to w.
func NewHandler(w io.Writer, opts Options) slog.Handler {
	level := parseLevel(opts.Level)

	var handler slog.Handler
	if opts.Console {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.TimeOnly,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})
	}

	return correlationHandler{inner: handler}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
