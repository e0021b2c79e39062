// Package mpack is a shape-driven MessagePack codec: callers describe
// their types once as Shape values (generated, or hand-built as in
// internal/testshapes) and get Converters for them built and cached
// automatically, with standard-library-free hooks for reference
// preservation, string interning, default-value elision, and canonical
// key ordering.
//
// Package layout mirrors the teacher codec's client/middleware split:
// msgpack is the wire-format primitive layer (tokens, Buffer, Writer,
// Reader) with no dependency on anything else in this module; core holds
// the Shape/Converter/Context/Policies model that package convert's
// standard converters and package refpolicy's decorators both build on;
// this root package wires core.Cache to convert.Build, layers refpolicy's
// decorators in based on configured Policies, and exposes the public
// Serializer. Package stream is the asynchronous streaming layer, kept
// deliberately independent of core (see stream's package doc).
package mpack

import (
	"context"
	"fmt"
	"io"

	"github.com/mpackhq/mpack/convert"
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
	"github.com/mpackhq/mpack/refpolicy"
	"github.com/mpackhq/mpack/stream"
)

// Serializer is a configured codec instance: one converter Cache plus the
// Policies used to build it. Building a converter the first time a shape
// is encountered is the expensive step (reflection-free, but still a
// graph walk); a Serializer is meant to be constructed once per process
// (or per distinct configuration) and reused across many Serialize/
// Deserialize calls, the same way the teacher codec expects one client
// per service configuration rather than one per call.
type Serializer struct {
	cache    *core.Cache
	policies core.Policies
	logger   Logger
}

// NewSerializer builds a Serializer from the given options, defaulting to
// core.DefaultPolicies() and a no-op logger.
func NewSerializer(opts ...Option) *Serializer {
	cfg := &config{policies: core.DefaultPolicies(), logger: mpackNoopLogger{}}
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Serializer{cache: core.NewCache(), policies: cfg.policies, logger: cfg.logger}
	s.cache.SetBuilder(s.build)
	return s
}

type mpackNoopLogger struct{}

func (mpackNoopLogger) Logf(Classification, string, ...interface{}) {}

// build is the Cache's Builder: it delegates shape construction to
// convert.Build, then layers the reference-preservation and
// string-interning decorators on top when the corresponding Policies are
// set, per spec.md §4.5 ("decorators applied at cache-build time, never
// as branches inside a standard converter").
func (s *Serializer) build(shape *core.Shape, cache *core.Cache) (core.Converter, error) {
	conv, err := convert.Build(shape, cache)
	if err != nil {
		return nil, err
	}

	if s.policies.InternStrings && shape.Kind == core.KindPrimitive && shape.Primitive == core.PrimitiveString {
		conv = refpolicy.InternStrings(conv)
	}

	if s.policies.PreserveReferences && hasIdentity(shape) {
		conv = refpolicy.PreserveReferences(conv, s.policies.ObjectReferenceExtensionType)
	}

	s.logger.Logf(Trace, "built converter for shape %q (kind %s)", shape.Name, shape.Kind)
	return conv, nil
}

// hasIdentity reports whether shape's Go representation is expected to
// be a reference type worth tracking for back-reference purposes.
// Primitives, enums, and nullable wrappers are never tracked: tracking a
// nullable's wrapper would be meaningless since Nullable itself never
// reaches the wire as a distinct value (see convert.nullableConverter).
func hasIdentity(shape *core.Shape) bool {
	switch shape.Kind {
	case core.KindObject, core.KindEnumerable, core.KindDictionary, core.KindUnion:
		return true
	default:
		return false
	}
}

// RegisterConverter installs conv as the permanent converter for shape,
// overriding whatever convert.Build would otherwise produce. Must be
// called before shape is first used in a Serialize/Deserialize call.
func (s *Serializer) RegisterConverter(shape *core.Shape, conv core.Converter) {
	s.cache.Preset(shape, conv)
}

// RegisterUnionMapping replaces shape's registered sub-shapes wholesale,
// validating that no two entries share an alias and no two entries share
// a sub-shape — both would make a union read or write ambiguous. Must be
// called before shape is first used in a Serialize/Deserialize call.
func (s *Serializer) RegisterUnionMapping(shape *core.Shape, entries []core.UnionEntry) error {
	seenAlias := make(map[any]bool, len(entries))
	seenSub := make(map[*core.Shape]bool, len(entries))
	for _, e := range entries {
		if seenAlias[e.Alias] {
			return fmt.Errorf("mpack: duplicate union alias %v for shape %q", e.Alias, shape.Name)
		}
		seenAlias[e.Alias] = true
		if seenSub[e.Sub] {
			return fmt.Errorf("mpack: sub-shape %q registered twice for union %q", e.Sub.Name, shape.Name)
		}
		seenSub[e.Sub] = true
	}
	shape.UnionEntries = entries
	return nil
}

// Serialize encodes value, described by shape, into a freshly allocated
// byte slice holding exactly one msgpack structure.
func (s *Serializer) Serialize(shape *core.Shape, value any) ([]byte, error) {
	conv, err := s.cache.Get(shape)
	if err != nil {
		return nil, err
	}
	w := msgpack.NewWriter()
	ctx := core.NewContext(context.Background(), s.cache, s.policies)
	ctx.SetLogger(s.logger)
	if err := conv.WriteValue(w, value, ctx); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// SerializeTo is the streaming-sink form of Serialize: it writes the
// encoded structure directly to sink instead of returning a byte slice.
func (s *Serializer) SerializeTo(sink io.Writer, shape *core.Shape, value any) error {
	b, err := s.Serialize(shape, value)
	if err != nil {
		return err
	}
	if _, err := sink.Write(b); err != nil {
		return &core.IOError{Cause: err}
	}
	return nil
}

// Deserialize decodes exactly one msgpack structure from data into a
// value matching shape.
func (s *Serializer) Deserialize(shape *core.Shape, data []byte) (any, error) {
	conv, err := s.cache.Get(shape)
	if err != nil {
		return nil, err
	}
	r := msgpack.NewReader(msgpack.NewBuffer(data))
	ctx := core.NewContext(context.Background(), s.cache, s.policies)
	ctx.SetLogger(s.logger)
	return conv.ReadValue(r, ctx)
}

// DeserializeFrom is the streaming-source form of Deserialize: it reads
// src to completion first (a non-streaming convenience; use
// DeserializeAsync for a source that should be read incrementally).
func (s *Serializer) DeserializeFrom(shape *core.Shape, src io.Reader) (any, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &core.IOError{Cause: err}
	}
	return s.Deserialize(shape, data)
}

// SerializeAsync writes value to sink through an AsyncWriter, suspending
// only at sink.Write calls triggered by the writer's flush policy
// (spec.md §4.6). It is equivalent to Serialize followed by a write, but
// shares the async layer's flush-threshold behavior with a caller that is
// also using it for other structures over the same sink.
func (s *Serializer) SerializeAsync(ctx context.Context, async *stream.AsyncWriter, shape *core.Shape, value any) error {
	rental, err := async.RentWriter()
	if err != nil {
		return err
	}
	conv, err := s.cache.Get(shape)
	if err != nil {
		_ = rental.Return()
		return err
	}
	cctx := core.NewContext(ctx, s.cache, s.policies)
	cctx.SetLogger(s.logger)
	writeErr := conv.WriteValue(rental.Writer(), value, cctx)
	if err := rental.Return(); err != nil && writeErr == nil {
		writeErr = err
	}
	if writeErr != nil {
		return writeErr
	}
	return async.FlushIfAppropriate(ctx)
}

// DeserializeAsync reads one structure matching shape from async,
// fetching more bytes from its source as needed (spec.md §4.6). It calls
// async.BufferNextStructure itself, so the whole structure is buffered
// before decoding starts, then reads it through a CreateBufferedReader
// rental that it returns before exiting.
func (s *Serializer) DeserializeAsync(ctx context.Context, async *stream.AsyncReader, shape *core.Shape) (any, error) {
	if err := async.BufferNextStructure(ctx); err != nil {
		return nil, err
	}
	rental, err := async.CreateBufferedReader()
	if err != nil {
		return nil, err
	}
	conv, err := s.cache.Get(shape)
	if err != nil {
		_ = rental.Return()
		return nil, err
	}
	cctx := core.NewContext(ctx, s.cache, s.policies)
	cctx.SetLogger(s.logger)
	v, readErr := conv.ReadValue(rental.Reader(), cctx)
	if err := rental.Return(); err != nil && readErr == nil {
		readErr = err
	}
	if readErr != nil {
		return nil, readErr
	}
	return v, nil
}

// ConvertToJSON lossily renders a complete msgpack byte stream as JSON
// text, for logging and debugging. It does not consult any Shape: every
// value is decoded purely from its wire tokens.
func (s *Serializer) ConvertToJSON(data []byte) (string, error) {
	return msgpack.ConvertToJSON(msgpack.NewBuffer(data))
}
