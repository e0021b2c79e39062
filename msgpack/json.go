package msgpack

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// ConvertToJSON renders one top-level msgpack structure in buf as JSON
// text, purely for diagnostics (error messages, test fixtures, CLI
// inspection tools). It never round-trips: maps with non-string keys
// stringify the key, extension payloads are emitted as base64, and binary
// is emitted as base64 with a "!!binary:" marker, none of which JSON
// consumers should parse back into the original value.
func ConvertToJSON(buf *Buffer) (string, error) {
	r := NewReader(buf)
	var sb strings.Builder
	if err := writeJSONValue(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeJSONValue(sb *strings.Builder, r *Reader) error {
	kind, err := r.PeekKind()
	if err != nil {
		return err
	}
	switch kind {
	case KindNil:
		if err := r.ReadNil(); err != nil {
			return err
		}
		sb.WriteString("null")
	case KindBool:
		v, err := r.ReadBool()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatBool(v))
	case KindInt:
		v, err := r.ReadInt64()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	case KindFloat32:
		v, err := r.ReadFloat32()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	case KindFloat64:
		v, err := r.ReadFloat64()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case KindString:
		v, err := r.ReadStringBytes()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.Quote(string(v)))
	case KindBinary:
		v, err := r.ReadBinary()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.Quote("!!binary:" + base64.StdEncoding.EncodeToString(v)))
	case KindExtension:
		typ, payload, err := r.ReadExtension()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.Quote(fmt.Sprintf("!!ext(%d):%s", typ, base64.StdEncoding.EncodeToString(payload))))
	case KindArray:
		n, err := r.ReadArrayHeader()
		if err != nil {
			return err
		}
		sb.WriteByte('[')
		for i := uint32(0); i < n; i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONValue(sb, r); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case KindMap:
		n, err := r.ReadMapHeader()
		if err != nil {
			return err
		}
		sb.WriteByte('{')
		for i := uint32(0); i < n; i++ {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := writeJSONMapKey(sb, r); err != nil {
				return err
			}
			sb.WriteByte(':')
			if err := writeJSONValue(sb, r); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		return &InvalidFormatError{ByteOffset: r.Pos(), Reason: "unrecognized token kind"}
	}
	return nil
}

// writeJSONMapKey renders a map key as a JSON string, stringifying
// non-string keys (JSON object keys must be strings; msgpack map keys need
// not be).
func writeJSONMapKey(sb *strings.Builder, r *Reader) error {
	kind, err := r.PeekKind()
	if err != nil {
		return err
	}
	if kind == KindString {
		v, err := r.ReadStringBytes()
		if err != nil {
			return err
		}
		sb.WriteString(strconv.Quote(string(v)))
		return nil
	}
	var tmp strings.Builder
	if err := writeJSONValue(&tmp, r); err != nil {
		return err
	}
	sb.WriteString(strconv.Quote(tmp.String()))
	return nil
}
