// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/segyhp/pledge-engine/internal/config"
)

// ForProcess builds the logger of a binary. Development environments also
// record the source location of every entry.
func ForProcess(cfg *config.Config, w io.Writer) *slog.Logger {
	return newLogger(cfg.Logging, w, cfg.IsDevelopment())
}

// New returns a logger writing to w in the configured format and level.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	return newLogger(cfg, w, false)
}

func newLogger(cfg config.LoggingConfig, w io.Writer, addSource bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: addSource}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a config level name to a slog level; unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
