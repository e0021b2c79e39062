package convert

import (
	"fmt"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// enumConverter serializes an enum's declared Go type as its underlying
// integer, at the width the shape declares. Reading an integer with no
// matching enum member is not an error: per spec, it is surfaced as-is via
// Shape.EnumFromInt, which must accept any value in range.
type enumConverter struct {
	shape *core.Shape
}

func buildEnum(shape *core.Shape) core.Converter {
	return &enumConverter{shape: shape}
}

func (c *enumConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}
	n := c.shape.EnumToInt(v)
	switch c.shape.EnumBits {
	case 8:
		w.WriteInt8(int8(n))
	case 16:
		w.WriteInt16(int16(n))
	case 32:
		w.WriteInt32(int32(n))
	case 64:
		w.WriteInt64(n)
	default:
		return fmt.Errorf("mpack: enum shape %q has unsupported bit width %d", c.shape.Name, c.shape.EnumBits)
	}
	return nil
}

func (c *enumConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return nil, err
	}
	var n int64
	switch c.shape.EnumBits {
	case 8:
		v, err := r.ReadInt8()
		if err != nil {
			return nil, err
		}
		n = int64(v)
	case 16:
		v, err := r.ReadInt16()
		if err != nil {
			return nil, err
		}
		n = int64(v)
	case 32:
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		n = int64(v)
	case 64:
		v, err := r.ReadInt64()
		if err != nil {
			return nil, err
		}
		n = v
	default:
		return nil, fmt.Errorf("mpack: enum shape %q has unsupported bit width %d", c.shape.Name, c.shape.EnumBits)
	}
	return c.shape.EnumFromInt(n)
}
