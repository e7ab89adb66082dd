// Package logging configures the zerolog logger used across the fsd CLI.
//
// Console output goes through zerolog's ConsoleWriter; an optional log file
// is rotated with lumberjack. The migrator receives a child logger and tags
// every event with the phase it belongs to.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Level   string // trace, debug, info, warn, error (default info)
	File    string // optional log file path, rotated with lumberjack
	Verbose bool   // force debug level regardless of Level
	Quiet   bool   // discard everything
	JSON    bool   // raw JSON instead of console formatting
}

// New builds a logger from the given options.
func New(opts Options) zerolog.Logger {
	if opts.Quiet {
		return zerolog.New(io.Discard)
	}

	level := parseLevel(opts.Level)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	writers := []io.Writer{consoleWriter(opts.JSON)}
	if opts.File != "" {
		writers = append(writers, fileWriter(opts.File))
	}

	var out io.Writer
	if len(writers) == 1 {
		out = writers[0]
	} else {
		out = io.MultiWriter(writers...)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func consoleWriter(useJSON bool) io.Writer {
	if useJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
}

func fileWriter(path string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return os.Stderr
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
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
