// Package testshapes hand-builds the *core.Shape graph for a handful of
// small, concrete types, shared by the _test.go files across this module
// instead of each one reimplementing the same fixtures. A real caller
// would get these from a code generator; this package stands in for one.
package testshapes

import (
	"fmt"

	"github.com/mpackhq/mpack/core"
)

// Primitive building blocks, reused by every compound shape below.
var (
	StringShape  = &core.Shape{Name: "string", Kind: core.KindPrimitive, Primitive: core.PrimitiveString}
	Int64Shape   = &core.Shape{Name: "int64", Kind: core.KindPrimitive, Primitive: core.PrimitiveInt64}
	Uint64Shape  = &core.Shape{Name: "uint64", Kind: core.KindPrimitive, Primitive: core.PrimitiveUint64}
	BoolShape    = &core.Shape{Name: "bool", Kind: core.KindPrimitive, Primitive: core.PrimitiveBool}
	Float64Shape = &core.Shape{Name: "float64", Kind: core.KindPrimitive, Primitive: core.PrimitiveFloat64}
)

// Person is written with no explicit member keys, so it resolves to map
// layout regardless of policy (spec.md §8 scenario 1).
type Person struct {
	Name string
	Age  int64
}

var PersonShape = &core.Shape{
	Name: "Person",
	Kind: core.KindObject,
	Members: []core.Member{
		{
			Name: "Name", Index: 0, Shape: StringShape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Person).Name, nil },
		},
		{
			Name: "Age", Index: 1, Shape: Int64Shape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Person).Age, nil },
		},
	},
	NewObject: func(b *core.PartialBuilder) (any, error) {
		name, _ := b.Get(0)
		age, _ := b.Get(1)
		return Person{Name: name.(string), Age: age.(int64)}, nil
	},
}

// Record carries explicit member keys, so it always resolves to array
// layout (spec.md §8 scenario 2).
type Record struct {
	Name string
	Age  int64
}

var RecordShape = &core.Shape{
	Name: "Record",
	Kind: core.KindObject,
	Members: []core.Member{
		{
			Name: "Name", Index: 0, Shape: StringShape, Required: true,
			HasKey: true, ExplicitKey: 0,
			Get: func(obj any) (any, error) { return obj.(Record).Name, nil },
		},
		{
			Name: "Age", Index: 1, Shape: Int64Shape, Required: true,
			HasKey: true, ExplicitKey: 1,
			Get: func(obj any) (any, error) { return obj.(Record).Age, nil },
		},
	},
	NewObject: func(b *core.PartialBuilder) (any, error) {
		name, _ := b.Get(0)
		age, _ := b.Get(1)
		return Record{Name: name.(string), Age: age.(int64)}, nil
	},
}

// Cow is Animal's one registered subtype.
type Cow struct {
	Name string
}

var CowShape = &core.Shape{
	Name: "Cow",
	Kind: core.KindObject,
	Members: []core.Member{
		{
			Name: "Name", Index: 0, Shape: StringShape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Cow).Name, nil },
		},
	},
	NewObject: func(b *core.PartialBuilder) (any, error) {
		name, _ := b.Get(0)
		return Cow{Name: name.(string)}, nil
	},
}

// Animal is a union base type: a value carried directly as Animal writes
// as [nil, inner]; a registered Cow writes as [1, inner] (spec.md §8
// scenario 3).
type Animal struct {
	Species string
}

var AnimalShape = &core.Shape{
	Name: "Animal",
	Kind: core.KindObject,
	Members: []core.Member{
		{
			Name: "Species", Index: 0, Shape: StringShape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Animal).Species, nil },
		},
	},
	NewObject: func(b *core.PartialBuilder) (any, error) {
		species, _ := b.Get(0)
		return Animal{Species: species.(string)}, nil
	},
}

var AnimalUnionShape = &core.Shape{
	Name:      "AnimalUnion",
	Kind:      core.KindUnion,
	UnionBase: AnimalShape,
	IsBase: func(v any) bool {
		_, ok := v.(Animal)
		return ok
	},
	UnionEntries: []core.UnionEntry{
		{
			Alias: 1, Sub: CowShape,
			IsType: func(v any) bool {
				_, ok := v.(Cow)
				return ok
			},
		},
	},
}

// Root exercises reference preservation: Value1 and Value2 may be the
// same *Cow pointer (spec.md §8 scenario 4).
type Root struct {
	Value1 *Cow
	Value2 *Cow
	Value3 *Cow
}

var CowPtrShape = &core.Shape{
	Name: "CowPtr",
	Kind: core.KindNullable,
	Inner: &core.Shape{
		Name: "CowValue",
		Kind: core.KindObject,
		Members: []core.Member{
			{
				Name: "Name", Index: 0, Shape: StringShape, Required: true, ExplicitKey: -1,
				Get: func(obj any) (any, error) {
					c := obj.(*Cow)
					return c.Name, nil
				},
			},
		},
		NewObject: func(b *core.PartialBuilder) (any, error) {
			name, _ := b.Get(0)
			return &Cow{Name: name.(string)}, nil
		},
	},
}

var RootShape = &core.Shape{
	Name: "Root",
	Kind: core.KindObject,
	Members: []core.Member{
		{
			Name: "Value1", Index: 0, Shape: CowPtrShape, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Root).Value1, nil },
		},
		{
			Name: "Value2", Index: 1, Shape: CowPtrShape, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Root).Value2, nil },
		},
		{
			Name: "Value3", Index: 2, Shape: CowPtrShape, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Root).Value3, nil },
		},
	},
	NewObject: func(b *core.PartialBuilder) (any, error) {
		var root Root
		if v, ok := b.Get(0); ok && v != nil {
			root.Value1 = v.(*Cow)
		}
		if v, ok := b.Get(1); ok && v != nil {
			root.Value2 = v.(*Cow)
		}
		if v, ok := b.Get(2); ok && v != nil {
			root.Value3 = v.(*Cow)
		}
		return root, nil
	},
}

// PersonWithUnused is Person plus round-trip preservation of any member
// the shape doesn't recognize, exercising the unused-data-packet path.
type PersonWithUnused struct {
	Name   string
	Age    int64
	Unused []core.RawMember
}

var personUnusedMember = core.Member{
	Name:  "__unused__",
	Index: 2,
	Get:   func(obj any) (any, error) { return obj.(PersonWithUnused).Unused, nil },
}

var PersonWithUnusedShape = &core.Shape{
	Name: "PersonWithUnused",
	Kind: core.KindObject,
	Members: []core.Member{
		{
			Name: "Name", Index: 0, Shape: StringShape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(PersonWithUnused).Name, nil },
		},
		{
			Name: "Age", Index: 1, Shape: Int64Shape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(PersonWithUnused).Age, nil },
		},
	},
	UnusedDataPacket: &personUnusedMember,
	NewObject: func(b *core.PartialBuilder) (any, error) {
		name, _ := b.Get(0)
		age, _ := b.Get(1)
		return PersonWithUnused{Name: name.(string), Age: age.(int64), Unused: b.Unused}, nil
	},
}

// IntList is a plain []int64 enumerable, no bulk fast path.
var IntListShape = &core.Shape{
	Name:    "IntList",
	Kind:    core.KindEnumerable,
	Element: Int64Shape,
	NewSequence: func(elems []any) (any, error) {
		out := make([]int64, len(elems))
		for i, e := range elems {
			out[i] = e.(int64)
		}
		return out, nil
	},
	RangeSequence: func(v any, each func(elem any) error) error {
		for _, e := range v.([]int64) {
			if err := each(e); err != nil {
				return err
			}
		}
		return nil
	},
}

// Uint64List is a []uint64 enumerable wired to the bulk hardware-
// accelerated write path via Uint64Slice.
var Uint64ListShape = &core.Shape{
	Name:    "Uint64List",
	Kind:    core.KindEnumerable,
	Element: Uint64Shape,
	NewSequence: func(elems []any) (any, error) {
		out := make([]uint64, len(elems))
		for i, e := range elems {
			out[i] = e.(uint64)
		}
		return out, nil
	},
	RangeSequence: func(v any, each func(elem any) error) error {
		for _, e := range v.([]uint64) {
			if err := each(e); err != nil {
				return err
			}
		}
		return nil
	},
	Uint64Slice: func(v any) ([]uint64, bool) {
		vals, ok := v.([]uint64)
		return vals, ok
	},
}

// StringIntMap is a map[string]int64 dictionary.
var StringIntMapShape = &core.Shape{
	Name:  "StringIntMap",
	Kind:  core.KindDictionary,
	Key:   StringShape,
	Value: Int64Shape,
	NewDictionary: func(entries []core.DictEntry) (any, error) {
		out := make(map[string]int64, len(entries))
		for _, e := range entries {
			out[e.Key.(string)] = e.Value.(int64)
		}
		return out, nil
	},
	RangeDictionary: func(v any, each func(k, val any) error) error {
		for k, val := range v.(map[string]int64) {
			if err := each(k, val); err != nil {
				return err
			}
		}
		return nil
	},
}

// Nested is a recursive shape: Nested.Children is a []Nested, used to
// exercise the delayed-converter recursive-build path and the max-depth
// boundary (spec.md §8 scenario 5).
type Nested struct {
	Value    int64
	Children []Nested
}

var NestedShape = &core.Shape{Name: "Nested", Kind: core.KindObject}

var nestedListShape = &core.Shape{
	Name:    "NestedList",
	Kind:    core.KindEnumerable,
	Element: NestedShape,
	NewSequence: func(elems []any) (any, error) {
		out := make([]Nested, len(elems))
		for i, e := range elems {
			out[i] = e.(Nested)
		}
		return out, nil
	},
	RangeSequence: func(v any, each func(elem any) error) error {
		for _, e := range v.([]Nested) {
			if err := each(e); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	// Members are populated after NestedShape exists so
	// nestedListShape.Element can point back at it; buildObject (and
	// buildEnumerable) read shape.Members/Element lazily at cache-build
	// time, not at shape-construction time, so this is safe.
	NestedShape.Members = []core.Member{
		{
			Name: "Value", Index: 0, Shape: Int64Shape, Required: true, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Nested).Value, nil },
		},
		{
			Name: "Children", Index: 1, Shape: nestedListShape, ExplicitKey: -1,
			Get: func(obj any) (any, error) { return obj.(Nested).Children, nil },
		},
	}
	NestedShape.NewObject = func(b *core.PartialBuilder) (any, error) {
		value, _ := b.Get(0)
		var children []Nested
		if c, ok := b.Get(1); ok && c != nil {
			children = c.([]Nested)
		}
		return Nested{Value: value.(int64), Children: children}, nil
	}
}

// NestedChain builds a Nested object chain depth levels deep (depth 0 has
// no children), exercising the recursive-shape / delayed-converter build
// path.
func NestedChain(depth int) Nested {
	if depth <= 0 {
		return Nested{Value: 0}
	}
	return Nested{Value: int64(depth), Children: []Nested{NestedChain(depth - 1)}}
}

// NestedArrayShape is a pure self-referential array: [ [ [ ... [] ... ] ] ].
// Each level costs exactly one DepthStep, matching spec.md §8's "linear
// chain of nested [x] arrays of depth N" boundary case precisely (unlike
// NestedShape, which also pays a DepthStep for its enumerable Children
// wrapper at every level).
var NestedArrayShape = &core.Shape{
	Name: "NestedArray",
	NewSequence: func(elems []any) (any, error) {
		return elems, nil
	},
	RangeSequence: func(v any, each func(elem any) error) error {
		for _, e := range v.([]any) {
			if err := each(e); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	NestedArrayShape.Kind = core.KindEnumerable
	NestedArrayShape.Element = NestedArrayShape
}

// DeepArray builds a chain of depth+1 nested arrays, the innermost one
// empty: DeepArray(0) is [], DeepArray(1) is [[]], and so on.
func DeepArray(depth int) []any {
	if depth <= 0 {
		return []any{}
	}
	return []any{DeepArray(depth - 1)}
}

// MustBuild is a small helper for tests that want a descriptive panic
// instead of a silent zero value on an unexpected error.
func MustBuild(v any, err error) any {
	if err != nil {
		panic(fmt.Sprintf("testshapes: %v", err))
	}
	return v
}
