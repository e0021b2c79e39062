// Package convert implements the shape visitor and the standard
// converters it builds: primitive, nullable, enum, enumerable, dictionary,
// object, and union. Build is the sole entry point; the Serializer's
// core.Builder delegates to it.
package convert

import (
	"fmt"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// primitiveConverter is the bundled converter for one scalar Go type,
// selected by core.PrimitiveKind. Build allocates one per Shape; it holds
// no state beyond its kind.
type primitiveConverter struct {
	kind core.PrimitiveKind
}

func buildPrimitive(shape *core.Shape) core.Converter {
	return &primitiveConverter{kind: shape.Primitive}
}

func (c *primitiveConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	if c.kind == core.PrimitiveNil {
		w.WriteNil()
		return nil
	}
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}

	switch c.kind {
	case core.PrimitiveBool:
		b, ok := v.(bool)
		if !ok {
			return fmt.Errorf("mpack: expected bool, got %T", v)
		}
		w.WriteBool(b)
	case core.PrimitiveInt8:
		n, ok := v.(int8)
		if !ok {
			return fmt.Errorf("mpack: expected int8, got %T", v)
		}
		w.WriteInt8(n)
	case core.PrimitiveInt16:
		n, ok := v.(int16)
		if !ok {
			return fmt.Errorf("mpack: expected int16, got %T", v)
		}
		w.WriteInt16(n)
	case core.PrimitiveInt32:
		n, ok := v.(int32)
		if !ok {
			return fmt.Errorf("mpack: expected int32, got %T", v)
		}
		w.WriteInt32(n)
	case core.PrimitiveInt64:
		n, ok := v.(int64)
		if !ok {
			return fmt.Errorf("mpack: expected int64, got %T", v)
		}
		w.WriteInt64(n)
	case core.PrimitiveUint8:
		n, ok := v.(uint8)
		if !ok {
			return fmt.Errorf("mpack: expected uint8, got %T", v)
		}
		w.WriteUint8(n)
	case core.PrimitiveUint16:
		n, ok := v.(uint16)
		if !ok {
			return fmt.Errorf("mpack: expected uint16, got %T", v)
		}
		w.WriteUint16(n)
	case core.PrimitiveUint32:
		n, ok := v.(uint32)
		if !ok {
			return fmt.Errorf("mpack: expected uint32, got %T", v)
		}
		w.WriteUint32(n)
	case core.PrimitiveUint64:
		n, ok := v.(uint64)
		if !ok {
			return fmt.Errorf("mpack: expected uint64, got %T", v)
		}
		w.WriteUint64(n)
	case core.PrimitiveFloat32:
		f, ok := v.(float32)
		if !ok {
			return fmt.Errorf("mpack: expected float32, got %T", v)
		}
		w.WriteFloat32(f)
	case core.PrimitiveFloat64:
		f, ok := v.(float64)
		if !ok {
			return fmt.Errorf("mpack: expected float64, got %T", v)
		}
		w.WriteFloat64(f)
	case core.PrimitiveString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("mpack: expected string, got %T", v)
		}
		w.WriteString([]byte(s))
	case core.PrimitiveBinary:
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("mpack: expected []byte, got %T", v)
		}
		w.WriteBinary(b)
	default:
		return fmt.Errorf("mpack: unknown primitive kind %d", c.kind)
	}
	return nil
}

func (c *primitiveConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	if c.kind == core.PrimitiveNil {
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

	switch c.kind {
	case core.PrimitiveBool:
		return r.ReadBool()
	case core.PrimitiveInt8:
		return r.ReadInt8()
	case core.PrimitiveInt16:
		return r.ReadInt16()
	case core.PrimitiveInt32:
		return r.ReadInt32()
	case core.PrimitiveInt64:
		return r.ReadInt64()
	case core.PrimitiveUint8:
		return r.ReadUint8()
	case core.PrimitiveUint16:
		return r.ReadUint16()
	case core.PrimitiveUint32:
		return r.ReadUint32()
	case core.PrimitiveUint64:
		return r.ReadUint64()
	case core.PrimitiveFloat32:
		return r.ReadFloat32()
	case core.PrimitiveFloat64:
		return r.ReadFloat64()
	case core.PrimitiveString:
		b, err := r.ReadStringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case core.PrimitiveBinary:
		b, err := r.ReadBinary()
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	default:
		return nil, fmt.Errorf("mpack: unknown primitive kind %d", c.kind)
	}
}
