package core

import (
	"fmt"
	"reflect"

	"github.com/mpackhq/mpack/msgpack"
)

// Converter is the type-erased Write/Read pair every shape resolves to.
// Standard and user-registered converters (package convert, package
// refpolicy) all implement this; the cache and the policy decorators only
// ever see this interface, never a concrete type.
type Converter interface {
	// WriteValue encodes v, which must be assignable to the Go type this
	// converter was built for.
	WriteValue(w *msgpack.Writer, v any, ctx *Context) error
	// ReadValue decodes and returns one value of the Go type this
	// converter was built for.
	ReadValue(r *msgpack.Reader, ctx *Context) (any, error)
}

// ConverterFunc adapts a pair of plain functions to the Converter
// interface, the same shape as http.HandlerFunc adapting a function to an
// interface.
type ConverterFunc struct {
	Write func(w *msgpack.Writer, v any, ctx *Context) error
	Read  func(r *msgpack.Reader, ctx *Context) (any, error)
}

func (f ConverterFunc) WriteValue(w *msgpack.Writer, v any, ctx *Context) error {
	return f.Write(w, v, ctx)
}

func (f ConverterFunc) ReadValue(r *msgpack.Reader, ctx *Context) (any, error) {
	return f.Read(r, ctx)
}

// TypedConverter narrows Converter to a concrete Go type T for callers
// that know T statically (generated accessors, tests). It is a thin
// generic wrapper over an erased Converter, not a second implementation.
type TypedConverter[T any] struct {
	Inner Converter
}

func (t TypedConverter[T]) Write(w *msgpack.Writer, v T, ctx *Context) error {
	return t.Inner.WriteValue(w, v, ctx)
}

func (t TypedConverter[T]) Read(r *msgpack.Reader, ctx *Context) (T, error) {
	v, err := t.Inner.ReadValue(r, ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("converter returned %s, want %s", reflect.TypeOf(v), reflect.TypeOf(zero))
	}
	return typed, nil
}

// delayedConverter is the placeholder installed in a Cache the instant a
// shape's build begins, before its own Converter exists. Recursive shapes
// (a Shape whose member graph reaches itself) close over this placeholder
// instead of the not-yet-built real converter; resolve fills it in once
// the real converter is ready, and every closure that captured the
// placeholder observes the update because they all deref the same pointer.
type delayedConverter struct {
	resolved Converter
}

func (d *delayedConverter) resolve(c Converter) { d.resolved = c }

func (d *delayedConverter) WriteValue(w *msgpack.Writer, v any, ctx *Context) error {
	if d.resolved == nil {
		return fmt.Errorf("mpack: converter used before its recursive build completed")
	}
	return d.resolved.WriteValue(w, v, ctx)
}

func (d *delayedConverter) ReadValue(r *msgpack.Reader, ctx *Context) (any, error) {
	if d.resolved == nil {
		return nil, fmt.Errorf("mpack: converter used before its recursive build completed")
	}
	return d.resolved.ReadValue(r, ctx)
}
