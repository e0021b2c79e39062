package convert

import (
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// enumerableConverter handles a homogeneous ordered sequence: array header
// of length N, then N elements via the element converter. Infinite/lazy
// sources are not supported, matching spec.
type enumerableConverter struct {
	shape *core.Shape
	cache *core.Cache
}

func buildEnumerable(shape *core.Shape, cache *core.Cache) core.Converter {
	return &enumerableConverter{shape: shape, cache: cache}
}

func (c *enumerableConverter) element() (core.Converter, error) {
	return c.cache.Get(c.shape.Element)
}

func (c *enumerableConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}
	if c.shape.Uint64Slice != nil && c.shape.Element != nil &&
		c.shape.Element.Kind == core.KindPrimitive && c.shape.Element.Primitive == core.PrimitiveUint64 {
		if vals, ok := c.shape.Uint64Slice(v); ok {
			w.WritePrimitiveUint64Array(vals, !ctx.Policies().DisableHardwareAcceleration)
			return nil
		}
	}

	elem, err := c.element()
	if err != nil {
		return err
	}

	// The header must announce the exact count up front, so the
	// elements are counted before any are written.
	var elems []any
	walkErr := c.shape.RangeSequence(v, func(e any) error {
		elems = append(elems, e)
		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	w.WriteArrayHeader(uint32(len(elems)))
	for _, e := range elems {
		if err := elem.WriteValue(w, e, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *enumerableConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return nil, err
	}
	elem, err := c.element()
	if err != nil {
		return nil, err
	}

	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	elems := make([]any, 0, n)
	for i := uint32(0); i < n; i++ {
		v, err := elem.ReadValue(r, ctx)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return c.shape.NewSequence(elems)
}
