// Package mlog provides a narrow, low-volume logging interface for the
// codec's own diagnostics — cache rebuilds, skip-and-recover decisions —
// never the hot Read/Write path. Adapted from the teacher's
// logging.Logger/Classification/Noop/StandardLogger shape, renamed to
// this codec's own classifications.
package mlog

import (
	"context"
	"io"
	"log"
)

type Classification string

const (
	Trace Classification = "TRACE"
	Warn  Classification = "WARN"
)

// Logger logs entries at a given classification, supporting fmt verbs.
type Logger interface {
	Logf(level Classification, format string, v ...interface{})
}

// ContextLogger is an optional interface a Logger may implement to
// produce a context-aware logger.
type ContextLogger interface {
	WithContext(context.Context) Logger
}

// WithContext passes ctx to logger if it implements ContextLogger,
// returning logger unchanged otherwise.
func WithContext(ctx context.Context, logger Logger) Logger {
	cl, ok := logger.(ContextLogger)
	if !ok {
		return logger
	}
	return cl.WithContext(ctx)
}

// Noop discards every log entry; it is the default for a Serializer that
// was not configured with a logger.
type Noop struct{}

func (Noop) Logf(Classification, string, ...interface{}) {}

// StandardLogger delegates to the standard library's *log.Logger.
type StandardLogger struct {
	Logger *log.Logger
}

func (s StandardLogger) Logf(classification Classification, format string, v ...interface{}) {
	if len(classification) != 0 {
		format = string(classification) + " " + format
	}
	s.Logger.Printf(format, v...)
}

// NewStandardLogger returns a StandardLogger writing to w.
func NewStandardLogger(w io.Writer) *StandardLogger {
	return &StandardLogger{Logger: log.New(w, "mpack ", log.LstdFlags)}
}
