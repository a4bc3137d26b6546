// Package logging configures the ambient slog logger shared by the gdbmi
// command-line tools: a global default logger set up once from config,
// never threaded through call signatures.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the default slog logger.
type Options struct {
	// File, if non-empty, is a path to log to, rotated with lumberjack
	// instead of growing unbounded. Empty means stderr.
	File string
	// Level is one of debug, info, warn, error. Unknown/empty defaults to info.
	Level string
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init sets slog's default logger from opts. Call once at process startup.
func Init(opts Options) {
	var w io.Writer = os.Stderr
	if opts.File != "" {
		w = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(opts.Level)})
	slog.SetDefault(slog.New(handler))
}
