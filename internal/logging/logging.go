// Package logging configures the process-wide slog logger. Interactive
// sessions get compact colored output; anything else (pipes, service
// managers) gets JSON lines.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// Format selects the log output format.
type Format string

const (
	// FormatAuto picks text on a terminal and JSON otherwise.
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a config value to a Format. Unknown values fall
// back to FormatAuto.
func ParseFormat(s string) Format {
	switch Format(strings.ToLower(s)) {
	case FormatText:
		return FormatText
	case FormatJSON:
		return FormatJSON
	}
	return FormatAuto
}

// ParseLevel converts a config value to a slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Setup installs the global logger. Call once, after the config is parsed
// and before any command runs. The browser owns stdout, so logs always go
// to stderr.
func Setup(format Format, level slog.Level) {
	out := os.Stderr

	var h slog.Handler
	if format == FormatText || (format == FormatAuto && IsTTY(out)) {
		h = tinter.NewHandler(out, &tinter.Options{
			Level:      level,
			TimeFormat: "15:04:05",
		})
	} else {
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(h))
}
