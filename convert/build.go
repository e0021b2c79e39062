package convert

import (
	"fmt"

	"github.com/mpackhq/mpack/core"
)

// Build is the shape visitor: a total function over core.Kind that
// produces the standard converter for shape. The Serializer's Builder,
// installed once via cache.SetBuilder at Serializer construction, calls
// it and then adds any policy decorators; RegisterConverter overrides from the root package
// intercept specific shapes before Build is ever consulted for them.
func Build(shape *core.Shape, cache *core.Cache) (core.Converter, error) {
	switch shape.Kind {
	case core.KindPrimitive:
		return buildPrimitive(shape), nil
	case core.KindNullable:
		return buildNullable(shape, cache), nil
	case core.KindEnum:
		return buildEnum(shape), nil
	case core.KindEnumerable:
		return buildEnumerable(shape, cache), nil
	case core.KindDictionary:
		return buildDictionary(shape, cache), nil
	case core.KindObject:
		return buildObject(shape, cache), nil
	case core.KindUnion:
		return buildUnion(shape, cache), nil
	default:
		return nil, fmt.Errorf("mpack: unrecognized shape kind %v for shape %q", shape.Kind, shape.Name)
	}
}
