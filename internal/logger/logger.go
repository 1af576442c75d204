package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps LOG_LEVEL values to slog levels. Unknown values fall back to info.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}

	return slog.LevelInfo, false
}

// Init installs a JSON logger on w as the slog default.
func Init(w io.Writer, level string) *slog.Logger {
	return install(slog.NewJSONHandler(w, options(level)), level)
}

// InitText installs a plain text logger, for writing to a file beside a terminal UI.
func InitText(w io.Writer, level string) *slog.Logger {
	return install(slog.NewTextHandler(w, options(level)), level)
}

func options(level string) *slog.HandlerOptions {
	lvl, _ := ParseLevel(level)
	return &slog.HandlerOptions{Level: lvl}
}

func install(h slog.Handler, level string) *slog.Logger {
	l := slog.New(h)
	slog.SetDefault(l)

	if _, ok := ParseLevel(level); !ok {
		l.Warn("invalid LOG_LEVEL, defaulting to info", "configured", level)
	}

	return l
}
