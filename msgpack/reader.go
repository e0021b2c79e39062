package msgpack

import (
	"fmt"
	"math"
)

// ReadOutcome is the three-valued result every TryRead* method produces, so
// an async caller (package stream) can tell "not enough bytes yet" apart
// from "these bytes are not valid msgpack" without losing its place.
type ReadOutcome int

const (
	Ok ReadOutcome = iota
	OutOfBuffer
	FormatErr
)

// Reader is a cursor-like view over a Buffer: (start, end, consumed) as
// spec.md §3 describes. Reads advance Pos(); callers copy Pos() back into
// their own outer state to make progress visible ("return the reader").
type Reader struct {
	buf        *Buffer
	start, end int64
	pos        int64
}

// NewReader returns a Reader over the whole of buf.
func NewReader(buf *Buffer) *Reader {
	return &Reader{buf: buf, start: 0, end: buf.Len(), pos: 0}
}

// NewReaderRange returns a Reader scoped to [start, end) of buf, used by
// BufferedReader rentals (package stream) to hand out a view over exactly
// one already-buffered structure.
func NewReaderRange(buf *Buffer, start, end int64) *Reader {
	return &Reader{buf: buf, start: start, end: end, pos: start}
}

// Pos returns the current consumed position.
func (r *Reader) Pos() Position { return r.pos }

// SetPos overwrites the consumed position, e.g. to rewind after a Skip
// used only for validation.
func (r *Reader) SetPos(p Position) { r.pos = p }

// Remaining returns the number of unconsumed bytes in the reader's range.
func (r *Reader) Remaining() int64 { return r.end - r.pos }

// Resync widens the reader's end bound to the current length of its
// underlying Buffer. Package stream calls this after appending more bytes
// to a rolling buffer that this Reader is already positioned within,
// instead of constructing a fresh Reader around the grown buffer.
func (r *Reader) Resync() { r.end = r.buf.Len() }

func (r *Reader) truncatedErr() error {
	return &InvalidFormatError{ByteOffset: r.pos, Reason: "truncated: ran out of buffer mid-structure"}
}

func (r *Reader) peekByte() (byte, ReadOutcome) {
	if r.pos >= r.end {
		return 0, OutOfBuffer
	}
	b, ok := r.buf.ByteAt(r.pos)
	if !ok {
		return 0, OutOfBuffer
	}
	return b, Ok
}

func (r *Reader) takeByte() (byte, ReadOutcome) {
	b, outcome := r.peekByte()
	if outcome == Ok {
		r.pos++
	}
	return b, outcome
}

// takeN consumes and returns the next n bytes, contiguous-slice when
// possible (no allocation), copied across segments otherwise.
func (r *Reader) takeN(n int64) ([]byte, ReadOutcome) {
	if n < 0 || r.pos+n > r.end {
		return nil, OutOfBuffer
	}
	if s, ok := r.buf.ContiguousSlice(r.pos, n); ok {
		r.pos += n
		return s, Ok
	}
	s, ok := r.buf.Copy(r.pos, n)
	if !ok {
		return nil, OutOfBuffer
	}
	r.pos += n
	return s, Ok
}

func be16(b []byte) uint16 { return uint16(b[0])<<8 | uint16(b[1]) }
func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
func be64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

// TryPeekKind reports the kind of the next token without consuming it.
func (r *Reader) TryPeekKind() (Kind, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, outcome, nil
	}
	if b == 0xc1 {
		return 0, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: "byte 0xc1 is reserved and unused by the format"}
	}
	return kindOf(b), Ok, nil
}

// PeekKind blocks (in the sense of asserting the whole structure is already
// buffered) until a kind is available, surfacing a truncated buffer as a
// format error. Used by the synchronous top-level Deserialize path, which
// is handed a complete, non-streaming buffer.
func (r *Reader) PeekKind() (Kind, error) {
	k, outcome, err := r.TryPeekKind()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return k, nil
}

// TryReadNil consumes a nil token.
func (r *Reader) TryReadNil() (ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return outcome, nil
	}
	if b != mpNil {
		return FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected nil, got byte 0x%02x", b)}
	}
	r.pos++
	return Ok, nil
}

func (r *Reader) ReadNil() error {
	outcome, err := r.TryReadNil()
	if err != nil {
		return err
	}
	if outcome == OutOfBuffer {
		return r.truncatedErr()
	}
	return nil
}

// TryReadBool consumes a bool token.
func (r *Reader) TryReadBool() (bool, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return false, outcome, nil
	}
	switch b {
	case mpTrue:
		r.pos++
		return true, Ok, nil
	case mpFalse:
		r.pos++
		return false, Ok, nil
	default:
		return false, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected bool, got byte 0x%02x", b)}
	}
}

func (r *Reader) ReadBool() (bool, error) {
	v, outcome, err := r.TryReadBool()
	if err != nil {
		return false, err
	}
	if outcome == OutOfBuffer {
		return false, r.truncatedErr()
	}
	return v, nil
}

// TryReadInt64 consumes any integer-family token and returns it as int64;
// an unsigned value too large for int64 is an OutOfRangeError.
func (r *Reader) TryReadInt64() (int64, ReadOutcome, error) {
	u, signed, outcome, err := r.tryReadIntRaw()
	if outcome != Ok || err != nil {
		return 0, outcome, err
	}
	if signed {
		return int64(u), Ok, nil
	}
	if u > math.MaxInt64 {
		return 0, FormatErr, &OutOfRangeError{From: fmt.Sprintf("uint64(%d)", u), To: "int64"}
	}
	return int64(u), Ok, nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, outcome, err := r.TryReadInt64()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return v, nil
}

// TryReadUint64 consumes any integer-family token and returns it as uint64;
// a negative signed value is an OutOfRangeError.
func (r *Reader) TryReadUint64() (uint64, ReadOutcome, error) {
	u, signed, outcome, err := r.tryReadIntRaw()
	if outcome != Ok || err != nil {
		return 0, outcome, err
	}
	if signed && int64(u) < 0 {
		return 0, FormatErr, &OutOfRangeError{From: fmt.Sprintf("int64(%d)", int64(u)), To: "uint64"}
	}
	return u, Ok, nil
}

func (r *Reader) ReadUint64() (uint64, error) {
	v, outcome, err := r.TryReadUint64()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return v, nil
}

// tryReadIntRaw decodes any integer-family token, returning its bit
// pattern in u (sign-extended into the low bits when signed) and whether
// the source token was from the signed family. This is the one place that
// understands every int wire form; ReadInt64/ReadUint64/ReadIntN all
// narrow from here, which keeps the "readers MUST NOT cross a structure
// boundary" and range-check rules in a single spot (mirrors
// encoding/cbor/decode.go's decodeArgument, the single argument-decode
// choke point for every CBOR major type).
func (r *Reader) tryReadIntRaw() (u uint64, signed bool, outcome ReadOutcome, err error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, false, outcome, nil
	}

	switch {
	case b <= fixintPosMax:
		r.pos++
		return uint64(b), false, Ok, nil
	case b >= fixintNegMin:
		r.pos++
		return uint64(int64(int8(b))), true, Ok, nil
	}

	switch b {
	case mpUint8, mpUint16, mpUint32, mpUint64,
		mpInt8, mpInt16, mpInt32, mpInt64:
		width := map[byte]int{
			mpUint8: 1, mpUint16: 2, mpUint32: 4, mpUint64: 8,
			mpInt8: 1, mpInt16: 2, mpInt32: 4, mpInt64: 8,
		}[b]
		start := r.pos
		r.pos++
		body, outcome := r.takeN(int64(width))
		if outcome != Ok {
			r.pos = start
			return 0, false, outcome, nil
		}
		isSigned := b == mpInt8 || b == mpInt16 || b == mpInt32 || b == mpInt64
		switch width {
		case 1:
			if isSigned {
				return uint64(int64(int8(body[0]))), true, Ok, nil
			}
			return uint64(body[0]), false, Ok, nil
		case 2:
			v := be16(body)
			if isSigned {
				return uint64(int64(int16(v))), true, Ok, nil
			}
			return uint64(v), false, Ok, nil
		case 4:
			v := be32(body)
			if isSigned {
				return uint64(int64(int32(v))), true, Ok, nil
			}
			return uint64(v), false, Ok, nil
		default:
			v := be64(body)
			if isSigned {
				return v, true, Ok, nil
			}
			return v, false, Ok, nil
		}
	default:
		return 0, false, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected integer token, got byte 0x%02x", b)}
	}
}

// ranged integer readers: accept any integer token whose value fits,
// surfacing OutOfRangeError otherwise, per spec.md §4.1.

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt8 || v > math.MaxInt8 {
		return 0, &OutOfRangeError{From: fmt.Sprintf("%d", v), To: "int8"}
	}
	return int8(v), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt16 || v > math.MaxInt16 {
		return 0, &OutOfRangeError{From: fmt.Sprintf("%d", v), To: "int16"}
	}
	return int16(v), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, &OutOfRangeError{From: fmt.Sprintf("%d", v), To: "int32"}
	}
	return int32(v), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint8 {
		return 0, &OutOfRangeError{From: fmt.Sprintf("%d", v), To: "uint8"}
	}
	return uint8(v), nil
}

func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint16 {
		return 0, &OutOfRangeError{From: fmt.Sprintf("%d", v), To: "uint16"}
	}
	return uint16(v), nil
}

func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, &OutOfRangeError{From: fmt.Sprintf("%d", v), To: "uint32"}
	}
	return uint32(v), nil
}

// TryReadFloat32 consumes a float32 token.
func (r *Reader) TryReadFloat32() (float32, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, outcome, nil
	}
	if b != mpFloat32 {
		return 0, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected float32, got byte 0x%02x", b)}
	}
	start := r.pos
	r.pos++
	body, outcome := r.takeN(4)
	if outcome != Ok {
		r.pos = start
		return 0, outcome, nil
	}
	return math.Float32frombits(be32(body)), Ok, nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, outcome, err := r.TryReadFloat32()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return v, nil
}

// TryReadFloat64 consumes a float64 token, or a float32 token promoted to
// float64 (widening is lossless; narrowing float64->float32 is not offered
// to avoid silent precision loss).
func (r *Reader) TryReadFloat64() (float64, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, outcome, nil
	}
	switch b {
	case mpFloat32:
		v, outcome, err := r.TryReadFloat32()
		return float64(v), outcome, err
	case mpFloat64:
		start := r.pos
		r.pos++
		body, outcome := r.takeN(8)
		if outcome != Ok {
			r.pos = start
			return 0, outcome, nil
		}
		return math.Float64frombits(be64(body)), Ok, nil
	default:
		return 0, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected float, got byte 0x%02x", b)}
	}
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, outcome, err := r.TryReadFloat64()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return v, nil
}

// TryReadStringBytes consumes a str token and returns its UTF-8 payload,
// without copying when the bytes lie in a single segment (spec.md §4.1's
// primary path); crossing segments falls back to Buffer.Copy.
func (r *Reader) TryReadStringBytes() ([]byte, ReadOutcome, error) {
	start := r.pos
	n, outcome, err := r.tryReadStrLen()
	if outcome != Ok || err != nil {
		return nil, outcome, err
	}
	body, outcome := r.takeN(n)
	if outcome != Ok {
		r.pos = start
		return nil, outcome, nil
	}
	return body, Ok, nil
}

func (r *Reader) ReadStringBytes() ([]byte, error) {
	v, outcome, err := r.TryReadStringBytes()
	if err != nil {
		return nil, err
	}
	if outcome == OutOfBuffer {
		return nil, r.truncatedErr()
	}
	return v, nil
}

func (r *Reader) tryReadStrLen() (int64, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, outcome, nil
	}
	start := r.pos
	switch {
	case b >= fixstrPrefix && b <= fixstrMax:
		r.pos++
		return int64(b & 0x1f), Ok, nil
	case b == mpStr8:
		r.pos++
		body, outcome := r.takeN(1)
		if outcome != Ok {
			r.pos = start
			return 0, outcome, nil
		}
		return int64(body[0]), Ok, nil
	case b == mpStr16:
		r.pos++
		body, outcome := r.takeN(2)
		if outcome != Ok {
			r.pos = start
			return 0, outcome, nil
		}
		return int64(be16(body)), Ok, nil
	case b == mpStr32:
		r.pos++
		body, outcome := r.takeN(4)
		if outcome != Ok {
			r.pos = start
			return 0, outcome, nil
		}
		return int64(be32(body)), Ok, nil
	default:
		return 0, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected string, got byte 0x%02x", b)}
	}
}

// TryReadBinary consumes a bin token and returns its payload.
func (r *Reader) TryReadBinary() ([]byte, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return nil, outcome, nil
	}
	start := r.pos
	var width int64
	switch b {
	case mpBin8:
		width = 1
	case mpBin16:
		width = 2
	case mpBin32:
		width = 4
	default:
		return nil, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected binary, got byte 0x%02x", b)}
	}
	r.pos++
	lenBytes, outcome := r.takeN(width)
	if outcome != Ok {
		r.pos = start
		return nil, outcome, nil
	}
	var n int64
	switch width {
	case 1:
		n = int64(lenBytes[0])
	case 2:
		n = int64(be16(lenBytes))
	default:
		n = int64(be32(lenBytes))
	}
	body, outcome := r.takeN(n)
	if outcome != Ok {
		r.pos = start
		return nil, outcome, nil
	}
	return body, Ok, nil
}

func (r *Reader) ReadBinary() ([]byte, error) {
	v, outcome, err := r.TryReadBinary()
	if err != nil {
		return nil, err
	}
	if outcome == OutOfBuffer {
		return nil, r.truncatedErr()
	}
	return v, nil
}

// TryReadArrayHeader consumes an array header and returns its element
// count.
func (r *Reader) TryReadArrayHeader() (uint32, ReadOutcome, error) {
	return r.tryReadContainerHeader(fixarrPrefix, fixarrMax, mpArray16, mpArray32)
}

func (r *Reader) ReadArrayHeader() (uint32, error) {
	v, outcome, err := r.TryReadArrayHeader()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return v, nil
}

// TryReadMapHeader consumes a map header and returns its entry count.
func (r *Reader) TryReadMapHeader() (uint32, ReadOutcome, error) {
	return r.tryReadContainerHeader(fixmapPrefix, fixmapMax, mpMap16, mpMap32)
}

func (r *Reader) ReadMapHeader() (uint32, error) {
	v, outcome, err := r.TryReadMapHeader()
	if err != nil {
		return 0, err
	}
	if outcome == OutOfBuffer {
		return 0, r.truncatedErr()
	}
	return v, nil
}

func (r *Reader) tryReadContainerHeader(fixPrefix, fixMax, f16, f32 byte) (uint32, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, outcome, nil
	}
	start := r.pos
	switch {
	case b >= fixPrefix && b <= fixMax:
		r.pos++
		return uint32(b &^ fixPrefix), Ok, nil
	case b == f16:
		r.pos++
		body, outcome := r.takeN(2)
		if outcome != Ok {
			r.pos = start
			return 0, outcome, nil
		}
		return uint32(be16(body)), Ok, nil
	case b == f32:
		r.pos++
		body, outcome := r.takeN(4)
		if outcome != Ok {
			r.pos = start
			return 0, outcome, nil
		}
		return be32(body), Ok, nil
	default:
		return 0, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected container header, got byte 0x%02x", b)}
	}
}

// TryReadExtension consumes an extension token and returns its type code
// and payload.
func (r *Reader) TryReadExtension() (int8, []byte, ReadOutcome, error) {
	b, outcome := r.peekByte()
	if outcome != Ok {
		return 0, nil, outcome, nil
	}
	start := r.pos

	var n int64
	fixed := true
	switch b {
	case mpFixExt1:
		n = 1
	case mpFixExt2:
		n = 2
	case mpFixExt4:
		n = 4
	case mpFixExt8:
		n = 8
	case mpFixExt16:
		n = 16
	case mpExt8, mpExt16, mpExt32:
		fixed = false
	default:
		return 0, nil, FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: fmt.Sprintf("expected extension, got byte 0x%02x", b)}
	}

	r.pos++
	if !fixed {
		var width int64
		switch b {
		case mpExt8:
			width = 1
		case mpExt16:
			width = 2
		default:
			width = 4
		}
		lenBytes, outcome := r.takeN(width)
		if outcome != Ok {
			r.pos = start
			return 0, nil, outcome, nil
		}
		switch width {
		case 1:
			n = int64(lenBytes[0])
		case 2:
			n = int64(be16(lenBytes))
		default:
			n = int64(be32(lenBytes))
		}
	}

	typBytes, outcome := r.takeN(1)
	if outcome != Ok {
		r.pos = start
		return 0, nil, outcome, nil
	}
	payload, outcome := r.takeN(n)
	if outcome != Ok {
		r.pos = start
		return 0, nil, outcome, nil
	}
	return int8(typBytes[0]), payload, Ok, nil
}

func (r *Reader) ReadExtension() (int8, []byte, error) {
	typ, payload, outcome, err := r.TryReadExtension()
	if err != nil {
		return 0, nil, err
	}
	if outcome == OutOfBuffer {
		return 0, nil, r.truncatedErr()
	}
	return typ, payload, nil
}

// Skip walks exactly one msgpack structure of unknown shape, advancing Pos
// by exactly its encoded size, regardless of kind.
func (r *Reader) Skip() error {
	kind, err := r.PeekKind()
	if err != nil {
		return err
	}
	switch kind {
	case KindNil:
		return r.ReadNil()
	case KindBool:
		_, err := r.ReadBool()
		return err
	case KindInt:
		_, err := r.ReadInt64()
		return err
	case KindFloat32:
		_, err := r.ReadFloat32()
		return err
	case KindFloat64:
		_, err := r.ReadFloat64()
		return err
	case KindString:
		_, err := r.ReadStringBytes()
		return err
	case KindBinary:
		_, err := r.ReadBinary()
		return err
	case KindExtension:
		_, _, err := r.ReadExtension()
		return err
	case KindArray:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return err
		}
		for i := uint32(0); i < n; i++ {
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	case KindMap:
		n, err := r.ReadMapHeader()
		if err != nil {
			return err
		}
		for i := uint32(0); i < 2*n; i++ {
			if err := r.Skip(); err != nil {
				return err
			}
		}
		return nil
	default:
		return &InvalidFormatError{ByteOffset: r.pos, Reason: "unrecognized token"}
	}
}

// TrySkip is Skip's non-blocking counterpart: it never turns an
// out-of-buffer condition into a format error, so package stream can
// distinguish "fetch more bytes and retry from the start" from "this
// input is actually malformed" while probing whether a whole structure is
// buffered yet.
func (r *Reader) TrySkip() (ReadOutcome, error) {
	kind, outcome, err := r.TryPeekKind()
	if err != nil {
		return FormatErr, err
	}
	if outcome != Ok {
		return outcome, nil
	}
	switch kind {
	case KindNil:
		return r.TryReadNil()
	case KindBool:
		_, outcome, err := r.TryReadBool()
		return outcome, err
	case KindInt:
		_, outcome, err := r.TryReadInt64()
		return outcome, err
	case KindFloat32:
		_, outcome, err := r.TryReadFloat32()
		return outcome, err
	case KindFloat64:
		_, outcome, err := r.TryReadFloat64()
		return outcome, err
	case KindString:
		_, outcome, err := r.TryReadStringBytes()
		return outcome, err
	case KindBinary:
		_, outcome, err := r.TryReadBinary()
		return outcome, err
	case KindExtension:
		_, _, outcome, err := r.TryReadExtension()
		return outcome, err
	case KindArray:
		n, outcome, err := r.TryReadArrayHeader()
		if outcome != Ok || err != nil {
			return outcome, err
		}
		for i := uint32(0); i < n; i++ {
			if outcome, err := r.TrySkip(); outcome != Ok || err != nil {
				return outcome, err
			}
		}
		return Ok, nil
	case KindMap:
		n, outcome, err := r.TryReadMapHeader()
		if outcome != Ok || err != nil {
			return outcome, err
		}
		for i := uint32(0); i < 2*n; i++ {
			if outcome, err := r.TrySkip(); outcome != Ok || err != nil {
				return outcome, err
			}
		}
		return Ok, nil
	default:
		return FormatErr, &InvalidFormatError{ByteOffset: r.pos, Reason: "unrecognized token"}
	}
}

// ReadRaw returns a slice covering exactly the next structure, without
// parsing inside it.
func (r *Reader) ReadRaw() ([]byte, error) {
	start := r.pos
	if err := r.Skip(); err != nil {
		return nil, err
	}
	raw, ok := r.buf.Copy(start, r.pos-start)
	if !ok {
		return nil, r.truncatedErr()
	}
	return raw, nil
}
