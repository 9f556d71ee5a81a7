// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/alexanderramin/portfolio/internal/config"
)

const (
	maxBackups = 3
	maxAgeDays = 28
)

// Options selects the level and destination of log output.
type Options struct {
	Level     string
	File      string
	MaxSizeMB int
}

// FromConfig copies the log section of cfg.
func FromConfig(cfg config.LogConfig) Options {
	return Options{Level: cfg.Level, File: cfg.File, MaxSizeMB: cfg.MaxSizeMB}
}

// New returns a text logger writing to stderr, or to a rotating file when
// opts.File is set. The returned closer releases the file and is never nil.
func New(opts Options, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   true,
		}
		out, closer = lj, lj
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
