// Package logging configures structured logging with tint.
//
// Usage:
//
//	logging.Setup(os.Stderr, "info", "text")   // colored output
//	logging.Setup(os.Stderr, "debug", "json")  // machine-readable output
//
// Level names: debug, info, warn, error. Unknown names fall back to info.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Setup installs a default slog logger writing to w.
func Setup(w io.Writer, level, format string) {
	slog.SetDefault(New(w, ParseLevel(level), format))
}

// New returns a logger writing to w. Format "json" selects slog's JSON
// handler; anything else selects the tint handler, colored only when w is a
// terminal.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(w),
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
