package convert

import (
	"reflect"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// nullableConverter wraps an inner converter so that an absent value
// serializes as nil and a nil token deserializes to an absent value. An
// "absent" Go value is either an untyped nil (v == nil) or a nil pointer,
// interface, map or slice of any type, so shape providers may use either a
// pointer field or a plain interface-typed field to represent optionality.
// A present value is handed to the inner converter unchanged (a pointer
// stays a pointer).
type nullableConverter struct {
	shape *core.Shape
	cache *core.Cache
}

func buildNullable(shape *core.Shape, cache *core.Cache) core.Converter {
	return &nullableConverter{shape: shape, cache: cache}
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func (c *nullableConverter) inner() (core.Converter, error) {
	return c.cache.Get(c.shape.Inner)
}

func (c *nullableConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	if isAbsent(v) {
		w.WriteNil()
		return nil
	}
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}
	inner, err := c.inner()
	if err != nil {
		return err
	}
	return inner.WriteValue(w, v, ctx)
}

func (c *nullableConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	kind, err := r.PeekKind()
	if err != nil {
		return nil, err
	}
	if kind == msgpack.KindNil {
		if err := r.ReadNil(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return nil, err
	}
	inner, err := c.inner()
	if err != nil {
		return nil, err
	}
	return inner.ReadValue(r, ctx)
}
