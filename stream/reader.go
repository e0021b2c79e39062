// Package stream implements the asynchronous streaming layer: a rolling
// read buffer and flush-on-high-water-mark write buffer over a byte
// pipe, plus the checkpoint-and-retry StreamingReader and the
// BufferedReader rental used to hand a caller a synchronous msgpack.Reader
// over one already-buffered structure.
//
// This package depends only on msgpack and the standard library context
// and io packages, not on package core: cancellation here is the plain
// context.Context a caller already has, and the rolling buffer is a
// transport-layer concern with no need of core's shape/cache machinery.
package stream

import (
	"context"
	"io"

	"github.com/mpackhq/mpack/msgpack"
)

const defaultFetchSize = 32 * 1024

// AsyncReader owns a byte source and a rolling window of the bytes
// already read from it. It is a single logical task's state: not safe
// for concurrent use, and a rental obtained from it must be returned
// before any further call (see CreateBufferedReader).
type AsyncReader struct {
	src       io.Reader
	buf       *msgpack.Buffer
	consumed  int64 // logical offset already handed out via a returned rental
	eof       bool
	fetchSize int
	rented    bool
}

// NewAsyncReader returns an AsyncReader over src, fetching in
// defaultFetchSize chunks.
func NewAsyncReader(src io.Reader) *AsyncReader {
	return &AsyncReader{src: src, buf: msgpack.NewBuffer(), fetchSize: defaultFetchSize}
}

// FetchMore reads one more chunk from the source into the rolling
// buffer. It is the read side's sole suspension point (spec.md §4.6/§5):
// cancellation is checked before issuing the read, never mid-read.
func (a *AsyncReader) FetchMore(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if a.eof {
		return io.EOF
	}
	chunk := make([]byte, a.fetchSize)
	n, err := a.src.Read(chunk)
	if n > 0 {
		a.buf.Append(chunk[:n])
	}
	if err != nil {
		if err == io.EOF {
			a.eof = true
			if n > 0 {
				return nil
			}
			return io.EOF
		}
		return &IOError{Cause: err}
	}
	return nil
}

// StreamingReader is a checkpoint-and-retry view over the rolling buffer:
// every TryRead* on its Reader returns either a value or msgpack.OutOfBuffer,
// instead of blocking internally. Callers drive the retry loop themselves (or use
// the Read* convenience methods below, which drive it with the supplied
// context).
type StreamingReader struct {
	async *AsyncReader
	r     *msgpack.Reader
}

// NewStreamingReader returns a StreamingReader positioned at async's
// current consumed offset.
func NewStreamingReader(async *AsyncReader) *StreamingReader {
	return &StreamingReader{async: async, r: msgpack.NewReaderRange(async.buf, async.consumed, async.buf.Len())}
}

// Reader returns the underlying synchronous Reader, for callers that want
// to call its TryRead* methods directly and manage retries themselves.
func (s *StreamingReader) Reader() *msgpack.Reader { return s.r }

// Sync widens the underlying Reader's bound to the rolling buffer's
// current length, called automatically by the Read* helpers after a
// successful FetchMore.
func (s *StreamingReader) Sync() { s.r.Resync() }

func retryUntilOk[T any](ctx context.Context, s *StreamingReader, try func() (T, msgpack.ReadOutcome, error)) (T, error) {
	for {
		v, outcome, err := try()
		if err != nil {
			var zero T
			return zero, err
		}
		if outcome == msgpack.Ok {
			s.async.consumed = s.r.Pos()
			return v, nil
		}
		if ferr := s.async.FetchMore(ctx); ferr != nil {
			var zero T
			return zero, ferr
		}
		s.Sync()
	}
}

func (s *StreamingReader) ReadNil(ctx context.Context) error {
	_, err := retryUntilOk(ctx, s, func() (struct{}, msgpack.ReadOutcome, error) {
		outcome, err := s.r.TryReadNil()
		return struct{}{}, outcome, err
	})
	return err
}

func (s *StreamingReader) ReadBool(ctx context.Context) (bool, error) {
	return retryUntilOk(ctx, s, s.r.TryReadBool)
}

func (s *StreamingReader) ReadInt64(ctx context.Context) (int64, error) {
	return retryUntilOk(ctx, s, s.r.TryReadInt64)
}

func (s *StreamingReader) ReadUint64(ctx context.Context) (uint64, error) {
	return retryUntilOk(ctx, s, s.r.TryReadUint64)
}

func (s *StreamingReader) ReadFloat32(ctx context.Context) (float32, error) {
	return retryUntilOk(ctx, s, s.r.TryReadFloat32)
}

func (s *StreamingReader) ReadFloat64(ctx context.Context) (float64, error) {
	return retryUntilOk(ctx, s, s.r.TryReadFloat64)
}

func (s *StreamingReader) ReadStringBytes(ctx context.Context) ([]byte, error) {
	return retryUntilOk(ctx, s, s.r.TryReadStringBytes)
}

func (s *StreamingReader) ReadBinary(ctx context.Context) ([]byte, error) {
	return retryUntilOk(ctx, s, s.r.TryReadBinary)
}

func (s *StreamingReader) ReadArrayHeader(ctx context.Context) (uint32, error) {
	return retryUntilOk(ctx, s, s.r.TryReadArrayHeader)
}

func (s *StreamingReader) ReadMapHeader(ctx context.Context) (uint32, error) {
	return retryUntilOk(ctx, s, s.r.TryReadMapHeader)
}

type extResult struct {
	typ     int8
	payload []byte
}

func (s *StreamingReader) ReadExtension(ctx context.Context) (int8, []byte, error) {
	res, err := retryUntilOk(ctx, s, func() (extResult, msgpack.ReadOutcome, error) {
		typ, payload, outcome, err := s.r.TryReadExtension()
		return extResult{typ, payload}, outcome, err
	})
	if err != nil {
		return 0, nil, err
	}
	return res.typ, res.payload, nil
}

// BufferNextStructure ensures the rolling buffer holds at least one
// complete msgpack structure starting at the reader's current position,
// fetching more bytes as needed. It does not consume anything; call
// CreateBufferedReader afterward to obtain a synchronous view over it.
func (a *AsyncReader) BufferNextStructure(ctx context.Context) error {
	if a.rented {
		return &RentalViolationError{Reason: "a rental is already outstanding"}
	}
	for {
		probe := msgpack.NewReaderRange(a.buf, a.consumed, a.buf.Len())
		outcome, err := probe.TrySkip()
		if err != nil {
			return err
		}
		if outcome == msgpack.Ok {
			return nil
		}
		if ferr := a.FetchMore(ctx); ferr != nil {
			return ferr
		}
	}
}

// BufferedReader is a synchronous msgpack.Reader rented from an
// AsyncReader, scoped to exactly one structure already guaranteed
// buffered by BufferNextStructure. It MUST be returned (Return) before
// any further await on the owning AsyncReader and before the renting
// method exits (spec.md §4.6's rental discipline).
type BufferedReader struct {
	owner *AsyncReader
	r     *msgpack.Reader
	done  bool
}

// CreateBufferedReader rents a Reader over the next structure, which
// BufferNextStructure must have already guaranteed is fully buffered.
func (a *AsyncReader) CreateBufferedReader() (*BufferedReader, error) {
	if a.rented {
		return nil, &RentalViolationError{Reason: "a rental is already outstanding"}
	}
	start := a.consumed
	probe := msgpack.NewReaderRange(a.buf, start, a.buf.Len())
	if err := probe.Skip(); err != nil {
		return nil, err
	}
	a.rented = true
	return &BufferedReader{owner: a, r: msgpack.NewReaderRange(a.buf, start, probe.Pos())}, nil
}

// Reader returns the rented synchronous Reader. Calling this after
// Return panics-by-contract is deliberately avoided; callers must not
// retain the returned *msgpack.Reader past Return.
func (b *BufferedReader) Reader() *msgpack.Reader { return b.r }

// Return flushes the rental's consumed position back to the owning
// AsyncReader and marks the rental closed, satisfying the discipline
// that a rental is returned before any further await.
func (b *BufferedReader) Return() error {
	if b.done {
		return &RentalViolationError{Reason: "rental already returned"}
	}
	b.done = true
	b.owner.consumed = b.r.Pos()
	b.owner.rented = false
	return nil
}
