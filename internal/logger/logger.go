// Package logger builds the zerolog logger used across screenswap.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Options configures the logger.
type Options struct {
	Level string
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// NoColor disables ANSI colours in console output.
	NoColor bool
	// JSON switches from console output to one JSON object per line.
	JSON bool
}

// New builds a logger. Diagnostics go to stderr so stdout stays free for
// command output.
func New(opt Options) zerolog.Logger {
	var w io.Writer = os.Stderr
	if opt.Writer != nil {
		w = opt.Writer
	}
	if !opt.JSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			NoColor:    opt.NoColor,
		}
	}

	return zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp().Logger()
}

// ParseLevel maps a config level name to a zerolog level. Unknown names fall
// back to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
