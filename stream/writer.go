package stream

import (
	"context"
	"io"

	"github.com/mpackhq/mpack/msgpack"
)

// DefaultHighWaterMark is the output buffer size past which
// FlushIfAppropriate drains to the sink.
const DefaultHighWaterMark = 64 * 1024

// AsyncWriter owns a byte sink and an output buffer. Converters write
// into the embedded *msgpack.Writer via WriterRental the same way a
// synchronous call would, then call FlushIfAppropriate at quiescent
// points (after one complete top-level structure).
type AsyncWriter struct {
	sink          io.Writer
	w             *msgpack.Writer
	flushed       int // bytes already handed to sink from prior flushes
	highWaterMark int
	rented        bool
}

// NewAsyncWriter returns an AsyncWriter over sink with the default
// high-water mark.
func NewAsyncWriter(sink io.Writer) *AsyncWriter {
	return &AsyncWriter{sink: sink, w: msgpack.NewWriter(), highWaterMark: DefaultHighWaterMark}
}

// WithHighWaterMark overrides the default flush threshold.
func (a *AsyncWriter) WithHighWaterMark(n int) *AsyncWriter {
	a.highWaterMark = n
	return a
}

// WriterRental hands out the underlying *msgpack.Writer for exactly one
// synchronous pass of writes; it must be returned before any further
// await, mirroring BufferedReader on the read side.
type WriterRental struct {
	owner *AsyncWriter
	done  bool
}

// RentWriter begins a rental of the output writer.
func (a *AsyncWriter) RentWriter() (*WriterRental, error) {
	if a.rented {
		return nil, &RentalViolationError{Reason: "a writer rental is already outstanding"}
	}
	a.rented = true
	return &WriterRental{owner: a}, nil
}

// Writer returns the rented *msgpack.Writer.
func (r *WriterRental) Writer() *msgpack.Writer { return r.owner.w }

// Return closes the rental. It does not flush; call FlushIfAppropriate
// separately once the rental is returned, per spec.md §4.6 (a rental
// must be returned before any await, and flushing is itself an await
// point).
func (r *WriterRental) Return() error {
	if r.done {
		return &RentalViolationError{Reason: "writer rental already returned"}
	}
	r.done = true
	r.owner.rented = false
	return nil
}

// FlushIfAppropriate drains the output buffer to the sink if it exceeds
// the high-water mark; otherwise it is a no-op. This is the write side's
// sole suspension point.
func (a *AsyncWriter) FlushIfAppropriate(ctx context.Context) error {
	if a.w.Len()-a.flushed < a.highWaterMark {
		return nil
	}
	return a.Flush(ctx)
}

// Flush unconditionally drains the output buffer to the sink.
func (a *AsyncWriter) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pending := a.w.Bytes()[a.flushed:]
	if len(pending) == 0 {
		return nil
	}
	if _, err := a.sink.Write(pending); err != nil {
		return &IOError{Cause: err}
	}
	a.flushed = a.w.Len()
	return nil
}
