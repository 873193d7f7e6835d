// Package logger builds the structured slog logger shared by every
// component. All logs are written in JSON format, either to stderr or to a
// size-rotated file:
//
//	<logDir>/bankalerts.log
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the log file inside the log directory.
const FileName = "bankalerts.log"

// Rotation limits for the log file.
const (
	maxSizeMB  = 50
	maxBackups = 5
	maxAgeDays = 28
)

// NewSystemLogger creates a JSON slog.Logger. With an empty logDir it
// writes to stderr; otherwise to <logDir>/bankalerts.log with rotation.
// The returned closer releases the log file and is never nil.
func NewSystemLogger(logDir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if logDir == "" {
		return New(os.Stderr, level), io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	return New(w, level), w, nil
}

// New creates a JSON slog.Logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("service", "bankalerts")
}
