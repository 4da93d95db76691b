// Package logging sets up the debug log. The terminal belongs to the UI, so
// log output goes to a file or nowhere.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Open returns a logger writing to path at debug level, or a logger that
// discards everything when path is empty. The returned close func is never nil.
func Open(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return New(io.Discard, slog.LevelError), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, slog.LevelDebug), f.Close, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
