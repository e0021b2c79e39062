// Package mpack is the public facade of the codec: the Shape model,
// Converter interface, Serializer, and configuration live here as
// re-exports of package core's definitions (core exists only to let
// package convert depend on the shared types without importing back into
// this package, avoiding an import cycle; see DESIGN.md).
package mpack

import (
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// Shape, Converter, Context, and the supporting types are aliases of
// their package core definitions; callers never need to import core
// directly.
type (
	Shape              = core.Shape
	Kind               = core.Kind
	Member             = core.Member
	DictEntry          = core.DictEntry
	UnionEntry         = core.UnionEntry
	PartialBuilder     = core.PartialBuilder
	RawMember          = core.RawMember
	PrimitiveKind      = core.PrimitiveKind
	Converter          = core.Converter
	ConverterFunc      = core.ConverterFunc
	Context            = core.Context
	Policies           = core.Policies
	DefaultValuePolicy = core.DefaultValuePolicy
	MapKeyOrder        = core.MapKeyOrder
)

const (
	KindPrimitive  = core.KindPrimitive
	KindObject     = core.KindObject
	KindEnumerable = core.KindEnumerable
	KindDictionary = core.KindDictionary
	KindNullable   = core.KindNullable
	KindEnum       = core.KindEnum
	KindUnion      = core.KindUnion
)

const (
	PrimitiveNil     = core.PrimitiveNil
	PrimitiveBool    = core.PrimitiveBool
	PrimitiveInt8    = core.PrimitiveInt8
	PrimitiveInt16   = core.PrimitiveInt16
	PrimitiveInt32   = core.PrimitiveInt32
	PrimitiveInt64   = core.PrimitiveInt64
	PrimitiveUint8   = core.PrimitiveUint8
	PrimitiveUint16  = core.PrimitiveUint16
	PrimitiveUint32  = core.PrimitiveUint32
	PrimitiveUint64  = core.PrimitiveUint64
	PrimitiveFloat32 = core.PrimitiveFloat32
	PrimitiveFloat64 = core.PrimitiveFloat64
	PrimitiveString  = core.PrimitiveString
	PrimitiveBinary  = core.PrimitiveBinary
)

const (
	NeverSerializeDefaults        = core.NeverSerializeDefaults
	AlwaysSerializeDefaults       = core.AlwaysSerializeDefaults
	SerializeRequiredOrNonDefault = core.SerializeRequiredOrNonDefault
)

const (
	DeclarationOrder = core.DeclarationOrder
	CanonicalOrder   = core.CanonicalOrder
)

// NewPartialBuilder returns an empty PartialBuilder, for a Shape's
// NewObject/Set implementations built outside this module.
func NewPartialBuilder() *PartialBuilder { return core.NewPartialBuilder() }

// Error types, re-exported so callers can errors.As(&mpack.InvalidFormatError{})
// without importing msgpack or core directly.
type (
	DepthExceededError         = core.DepthExceededError
	CancelledError             = core.CancelledError
	MissingRequiredMemberError = core.MissingRequiredMemberError
	UnknownSubtypeError        = core.UnknownSubtypeError
	UnknownAliasError          = core.UnknownAliasError
	IOError                    = core.IOError
	InvalidFormatError         = msgpack.InvalidFormatError
	OutOfRangeError            = msgpack.OutOfRangeError
)
