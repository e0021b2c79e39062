package core

// Kind enumerates the type-shape kinds the converter framework recognizes.
//
// A shape provider (an external collaborator, such as a code generator)
// produces one Shape per declared user type; Kind drives
// which standard converter the visitor in package convert builds for it.
type Kind int

const (
	KindPrimitive Kind = iota
	KindObject
	KindEnumerable
	KindDictionary
	KindNullable
	KindEnum
	KindUnion
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindObject:
		return "Object"
	case KindEnumerable:
		return "Enumerable"
	case KindDictionary:
		return "Dictionary"
	case KindNullable:
		return "Nullable"
	case KindEnum:
		return "Enum"
	case KindUnion:
		return "Union"
	default:
		return "Unknown"
	}
}

// PrimitiveKind selects which bundled scalar converter a KindPrimitive
// Shape resolves to.
type PrimitiveKind int

const (
	PrimitiveNil PrimitiveKind = iota
	PrimitiveBool
	PrimitiveInt8
	PrimitiveInt16
	PrimitiveInt32
	PrimitiveInt64
	PrimitiveUint8
	PrimitiveUint16
	PrimitiveUint32
	PrimitiveUint64
	PrimitiveFloat32
	PrimitiveFloat64
	PrimitiveString
	PrimitiveBinary
)

// Shape is a language-neutral description of a declared type, sufficient to
// drive (de)serialization. Shapes are supplied by a shape provider external
// to this module (generated code, or hand-written for tests); the core only
// consumes them.
//
// A Shape MUST be reference-comparable: the same declared type always
// produces the same *Shape pointer, since Shape identity is the converter
// cache's key (see Cache). This mirrors smithy.Schema's role in the teacher
// codec, where a *Schema is likewise the stable cache key for a generated
// client's runtime (de)serialization.
type Shape struct {
	// Name identifies the shape for diagnostics; it plays no role in cache
	// identity or wire encoding (object map-layout member names come from
	// Members[i].Name).
	Name string

	Kind Kind

	// Primitive: which bundled scalar converter to use.
	Primitive PrimitiveKind

	// Object: ordered member list, declaration order.
	Members []Member

	// Object: builds an instance from a completed partial builder.
	NewObject func(*PartialBuilder) (any, error)

	// Object: when non-nil, the unused-data-packet member that receives,
	// on read, any field not claimed by a Member, and whose captured
	// fields are written back out on write.
	UnusedDataPacket *Member

	// Enumerable: element shape and constructor from an ordered sequence.
	Element       *Shape
	NewSequence   func(elems []any) (any, error)
	RangeSequence func(v any, each func(elem any) error) error

	// Enumerable, optional: a zero-copy view of v as a []uint64, used by
	// the bulk hardware-accelerated write path when Element is a uint64
	// primitive. Returns ok=false to fall back to RangeSequence (e.g. the
	// concrete Go type isn't a plain []uint64).
	Uint64Slice func(v any) (vals []uint64, ok bool)

	// Dictionary: key/value shapes and constructors.
	Key             *Shape
	Value           *Shape
	NewDictionary   func(entries []DictEntry) (any, error)
	RangeDictionary func(v any, each func(k, v any) error) error

	// Nullable: inner value shape.
	Inner *Shape

	// Enum: underlying integer width in bits (8/16/32/64), plus accessors
	// translating between the shape's declared Go type and the
	// underlying integer. EnumFromInt must not fail on an unrecognized
	// value: per spec, an unrecognized integer is surfaced as-is.
	EnumBits    int
	EnumToInt   func(v any) int64
	EnumFromInt func(i int64) (any, error)

	// Union: base shape (nil alias) plus registered sub-shapes. IsBase
	// reports whether v is a direct instance of the base type rather
	// than any registered subtype; consulted only after every
	// UnionEntries[i].IsType has been tried and failed.
	UnionBase    *Shape
	UnionEntries []UnionEntry
	IsBase       func(v any) bool
}

// Member describes one object member.
type Member struct {
	Name        string
	Index       int
	Shape       *Shape
	Get         func(obj any) (any, error)
	Set         func(b *PartialBuilder, v any) error
	Required    bool
	Default     any
	ExplicitKey int // -1 when the member has no explicit key
	HasKey      bool
}

// DictEntry is one key/value pair supplied to Shape.NewDictionary.
type DictEntry struct {
	Key   any
	Value any
}

// UnionEntry maps an alias to the sub-shape it selects.
//
// Alias is either an int (small non-negative integer) or a string; Go's
// `any` stands in for the source language's tagged-union of the two, the
// same way smithy.Schema's Members map substitutes for a discriminator set
// in the teacher codec's ReadUnion.
type UnionEntry struct {
	Alias any
	Sub   *Shape

	// IsType reports whether v's runtime type is this entry's subtype,
	// used by the union converter's write path to classify v (the shape
	// provider knows the concrete Go type; the core does not).
	IsType func(v any) bool
}

// PartialBuilder accumulates object member values while an Object shape is
// being read, before Shape.NewObject assembles the final instance. It also
// tracks which required members have been set, and captures the raw bytes
// of any member not recognized by the shape when an UnusedDataPacket is
// declared.
type PartialBuilder struct {
	values  map[int]any
	present map[int]bool
	Unused  []RawMember
}

// RawMember is an unrecognized member captured verbatim for round-trip
// preservation (spec: "unused-data-packet").
type RawMember struct {
	Name  string // map layout
	Index int    // array layout, -1 if not applicable
	Raw   []byte // the raw encoded msgpack structure
}

// NewPartialBuilder creates an empty builder.
func NewPartialBuilder() *PartialBuilder {
	return &PartialBuilder{
		values:  map[int]any{},
		present: map[int]bool{},
	}
}

// Set records the value read for the member at the given index.
func (b *PartialBuilder) Set(index int, v any) {
	b.values[index] = v
	b.present[index] = true
}

// Get returns the value recorded for index, if any.
func (b *PartialBuilder) Get(index int) (any, bool) {
	v, ok := b.values[index]
	return v, ok
}

// Has reports whether a value was recorded for index.
func (b *PartialBuilder) Has(index int) bool {
	return b.present[index]
}
