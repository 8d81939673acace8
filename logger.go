// Copyright (c) Facebook, Inc. and its affiliates. All Rights Reserved

package vect

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with the diagnostics emitted by vectors.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewTextLogger(io.Discard, slog.Level(1000))
}

// DefaultLogger is used by vectors whose Config names no logger.
var DefaultLogger = NewLogger(nil)

// LogAllocFailure reports an allocator refusal.  op names the vector
// operation, bytes the size of the failed request.
func (l *Logger) LogAllocFailure(op string, bytes int, stride uint, err error) {
	l.Error("allocation failed",
		"op", op,
		"bytes", bytes,
		"stride", stride,
		"error", err,
	)
}
