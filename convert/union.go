package convert

import (
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// unionConverter handles a polymorphic base type with registered
// subtypes, wire-wrapped as the 2-element array [alias|nil, inner] per
// SPEC_FULL.md §4.4.
type unionConverter struct {
	shape *core.Shape
	cache *core.Cache
}

func buildUnion(shape *core.Shape, cache *core.Cache) core.Converter {
	return &unionConverter{shape: shape, cache: cache}
}

func (c *unionConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}

	for _, entry := range c.shape.UnionEntries {
		if !entry.IsType(v) {
			continue
		}
		conv, err := c.cache.Get(entry.Sub)
		if err != nil {
			return err
		}
		w.WriteArrayHeader(2)
		writeAlias(w, entry.Alias)
		return conv.WriteValue(w, v, ctx)
	}

	if c.shape.IsBase != nil && c.shape.IsBase(v) {
		conv, err := c.cache.Get(c.shape.UnionBase)
		if err != nil {
			return err
		}
		w.WriteArrayHeader(2)
		w.WriteNil()
		return conv.WriteValue(w, v, ctx)
	}

	return &core.UnknownSubtypeError{DeclaredType: c.shape.Name}
}

func writeAlias(w *msgpack.Writer, alias any) {
	switch a := alias.(type) {
	case int:
		w.WriteInt64(int64(a))
	case string:
		w.WriteString([]byte(a))
	default:
		w.WriteNil()
	}
}

func (c *unionConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return nil, err
	}

	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	if n != 2 {
		return nil, &msgpack.InvalidFormatError{ByteOffset: r.Pos(), Reason: "union wrapper must be a 2-element array"}
	}

	kind, err := r.PeekKind()
	if err != nil {
		return nil, err
	}

	var isBase bool
	var alias any
	switch kind {
	case msgpack.KindNil:
		if err := r.ReadNil(); err != nil {
			return nil, err
		}
		isBase = true
	case msgpack.KindBool:
		b, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		if !b {
			isBase = true
		} else {
			return nil, &core.UnknownAliasError{Alias: b}
		}
	case msgpack.KindInt:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		alias = int(v)
	case msgpack.KindString:
		v, err := r.ReadStringBytes()
		if err != nil {
			return nil, err
		}
		alias = string(v)
	default:
		return nil, &msgpack.InvalidFormatError{ByteOffset: r.Pos(), Reason: "union alias must be nil, bool, integer, or string"}
	}

	if isBase {
		conv, err := c.cache.Get(c.shape.UnionBase)
		if err != nil {
			return nil, err
		}
		return conv.ReadValue(r, ctx)
	}

	for _, entry := range c.shape.UnionEntries {
		if entry.Alias == alias {
			conv, err := c.cache.Get(entry.Sub)
			if err != nil {
				return nil, err
			}
			return conv.ReadValue(r, ctx)
		}
	}
	return nil, &core.UnknownAliasError{Alias: alias}
}
