// Package logging builds the process slog.Logger, optionally teeing output
// into a rotating log file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/claude/liftrank/internal/config"
)

// New returns a logger configured from cfg and a closer for the log file.
// The closer is a no-op when no file is configured.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg config.LogConfig, stdout io.Writer) (*slog.Logger, io.Closer) {
	var (
		out    io.Writer = stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    50, // megabytes
			MaxBackups: 10,
			Compress:   true,
		}
		out = NewCombinedWriter(stdout, file)
		closer = file
	}

	opts := &slog.HandlerOptions{Level: Level(cfg.Level)}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	return slog.New(h), closer
}

// Level parses a level name, defaulting to info.
func Level(level string) slog.Level {
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

// CombinedWriter writes to every writer, continuing past failures.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{writers: writers}
}

// Write reports the bytes written to the first writer and all write errors combined.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		n   int
		err error
	)
	for i, w := range cw.writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if i == 0 {
			n = written
		}
	}
	if err == nil {
		n = len(p)
	}
	return n, err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
