package mpack

import (
	"io"

	"github.com/mpackhq/mpack/internal/mlog"
)

// Logger, Classification and the bundled logger implementations are
// re-exported from the internal mlog package so callers configuring a
// Serializer via WithLogger never need an internal import.
type (
	Logger         = mlog.Logger
	Classification = mlog.Classification
)

const (
	Trace = mlog.Trace
	Warn  = mlog.Warn
)

// NewStandardLogger returns a Logger writing to w via the standard
// library's log package.
func NewStandardLogger(w io.Writer) Logger {
	return mlog.NewStandardLogger(w)
}
