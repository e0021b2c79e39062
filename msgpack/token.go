// Package msgpack implements the byte-level MessagePack primitives: a
// segmented-buffer reader and an append-only writer, operating one token
// (and, via Skip/ReadRaw, one whole structure) at a time.
//
// This package has no knowledge of shapes or converters; it is the layer
// everything else in this module is built on (see package core for the
// shape-driven layer above it).
package msgpack

// Kind identifies a decoded msgpack token's type, independent of its wire
// width (e.g. Int covers fixint/int8/int16/int32/int64 uniformly).
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt    // signed or unsigned integer family
	KindFloat32
	KindFloat64
	KindString
	KindBinary
	KindArray
	KindMap
	KindExtension
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBinary:
		return "binary"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Format byte prefixes per the MessagePack specification
// (https://github.com/msgpack/msgpack/blob/master/spec.md).
const (
	fixintPosMax = 0x7f
	fixintNegMin = 0xe0 // bytes >= this, treated as signed, are negative fixint

	fixmapPrefix  = 0x80
	fixmapMax     = 0x8f
	fixarrPrefix  = 0x90
	fixarrMax     = 0x9f
	fixstrPrefix  = 0xa0
	fixstrMax     = 0xbf

	mpNil    = 0xc0
	mpFalse  = 0xc2
	mpTrue   = 0xc3

	mpBin8  = 0xc4
	mpBin16 = 0xc5
	mpBin32 = 0xc6

	mpExt8  = 0xc7
	mpExt16 = 0xc8
	mpExt32 = 0xc9

	mpFloat32 = 0xca
	mpFloat64 = 0xcb

	mpUint8  = 0xcc
	mpUint16 = 0xcd
	mpUint32 = 0xce
	mpUint64 = 0xcf

	mpInt8  = 0xd0
	mpInt16 = 0xd1
	mpInt32 = 0xd2
	mpInt64 = 0xd3

	mpFixExt1  = 0xd4
	mpFixExt2  = 0xd5
	mpFixExt4  = 0xd6
	mpFixExt8  = 0xd7
	mpFixExt16 = 0xd8

	mpStr8  = 0xd9
	mpStr16 = 0xda
	mpStr32 = 0xdb

	mpArray16 = 0xdc
	mpArray32 = 0xdd

	mpMap16 = 0xde
	mpMap32 = 0xdf
)

// ExtTimestamp is the msgpack-reserved extension type code for timestamps
// (RFC: type -1). This package does not implement timestamp encoding itself
// (spec.md §6 notes it is supported "if supported"); the code is exposed so
// callers constructing extension payloads avoid colliding with it.
const ExtTimestamp int8 = -1

// kindOf classifies the token whose first byte is b, without looking at
// any following bytes.
func kindOf(b byte) Kind {
	switch {
	case b <= fixintPosMax:
		return KindInt
	case b >= fixmapPrefix && b <= fixmapMax:
		return KindMap
	case b >= fixarrPrefix && b <= fixarrMax:
		return KindArray
	case b >= fixstrPrefix && b <= fixstrMax:
		return KindString
	case b >= fixintNegMin:
		return KindInt
	}

	switch b {
	case mpNil:
		return KindNil
	case mpFalse, mpTrue:
		return KindBool
	case mpBin8, mpBin16, mpBin32:
		return KindBinary
	case mpExt8, mpExt16, mpExt32, mpFixExt1, mpFixExt2, mpFixExt4, mpFixExt8, mpFixExt16:
		return KindExtension
	case mpFloat32:
		return KindFloat32
	case mpFloat64:
		return KindFloat64
	case mpUint8, mpUint16, mpUint32, mpUint64, mpInt8, mpInt16, mpInt32, mpInt64:
		return KindInt
	case mpStr8, mpStr16, mpStr32:
		return KindString
	case mpArray16, mpArray32:
		return KindArray
	case mpMap16, mpMap32:
		return KindMap
	default:
		return KindNil // 0xc1 is reserved/unused; surfaced as a format error by callers
	}
}
