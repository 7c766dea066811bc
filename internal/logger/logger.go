// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/conorfennell/flashdeck/internal/config"
)

// ParseLevel maps a configured level name to a slog level. Unknown names
// map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// Setup builds a logger writing to w in the configured format and level and
// installs it as the slog default.
func Setup(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}
