package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/kismet-analyzer/internal/config"
)

// NewLogger builds the process logger from config. Logs always go to stderr
// because stdout carries tool output (client lists, verbose device rows).
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stderr, cfg.LogFormat, ParseLevel(cfg.LogLevel))
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel reads a level name the way slog spells it ("debug", "info",
// "warn", "error", case-insensitive, with an optional offset like "info+2").
// Anything else falls back to LevelInfo.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
