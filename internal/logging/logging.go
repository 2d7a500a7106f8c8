// Package logging builds the slog logger. The terminal belongs to the UI, so
// logs only ever go to a file, and only when asked for.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultFileName is used when debug logging is on but no file is configured.
const DefaultFileName = "mdir.log"

// Options selects where and how much to log.
type Options struct {
	File  string
	Debug bool
}

// Enabled reports whether anything will be written.
func (o Options) Enabled() bool {
	return o.File != "" || o.Debug
}

// Path returns the log file path, defaulting to the temp directory.
func (o Options) Path() string {
	if o.File != "" {
		return o.File
	}
	return filepath.Join(os.TempDir(), DefaultFileName)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New opens the log file and returns a logger plus a closer for the file.
// When logging is disabled it returns a discard logger and a no-op closer.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if !opts.Enabled() {
		return Discard(), nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return Discard(), nopCloser{}, err
	}
	return NewWithWriter(f, opts.Debug), f, nil
}

// NewWithWriter builds a text logger over w.
func NewWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
