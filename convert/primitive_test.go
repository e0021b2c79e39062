package convert_test

import (
	"math"
	"testing"

	"github.com/mpackhq/mpack/convert"
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

func buildPrimitiveConverter(t *testing.T, prim core.PrimitiveKind) core.Converter {
	t.Helper()
	shape := &core.Shape{Name: "prim", Kind: core.KindPrimitive, Primitive: prim}
	cache := core.NewCache()
	cache.SetBuilder(convert.Build)
	conv, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}
	return conv
}

func TestIntegerWidthBoundariesRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		prim core.PrimitiveKind
		v    any
	}{
		{"int8 min", core.PrimitiveInt8, int8(math.MinInt8)},
		{"int8 max", core.PrimitiveInt8, int8(math.MaxInt8)},
		{"int16 min", core.PrimitiveInt16, int16(math.MinInt16)},
		{"int16 max", core.PrimitiveInt16, int16(math.MaxInt16)},
		{"int32 min", core.PrimitiveInt32, int32(math.MinInt32)},
		{"int32 max", core.PrimitiveInt32, int32(math.MaxInt32)},
		{"uint8 min", core.PrimitiveUint8, uint8(0)},
		{"uint8 max", core.PrimitiveUint8, uint8(math.MaxUint8)},
		{"uint16 min", core.PrimitiveUint16, uint16(0)},
		{"uint16 max", core.PrimitiveUint16, uint16(math.MaxUint16)},
		{"uint32 min", core.PrimitiveUint32, uint32(0)},
		{"uint32 max", core.PrimitiveUint32, uint32(math.MaxUint32)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conv := buildPrimitiveConverter(t, c.prim)
			cache := core.NewCache()
			ctx := core.NewContext(nil, cache, core.DefaultPolicies())

			w := msgpack.NewWriter()
			if err := conv.WriteValue(w, c.v, ctx); err != nil {
				t.Fatalf("WriteValue(%v): %v", c.v, err)
			}
			r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
			got, err := conv.ReadValue(r, ctx)
			if err != nil {
				t.Fatalf("ReadValue: %v", err)
			}
			if got != c.v {
				t.Fatalf("got %v (%T), want %v (%T)", got, got, c.v, c.v)
			}
		})
	}
}

func TestIntegerJustOutOfRangeFailsWithOutOfRangeError(t *testing.T) {
	cases := []struct {
		name string
		prim core.PrimitiveKind
		wire func(w *msgpack.Writer)
	}{
		{"int8 overflow", core.PrimitiveInt8, func(w *msgpack.Writer) { w.WriteInt64(math.MaxInt8 + 1) }},
		{"int8 underflow", core.PrimitiveInt8, func(w *msgpack.Writer) { w.WriteInt64(math.MinInt8 - 1) }},
		{"int16 overflow", core.PrimitiveInt16, func(w *msgpack.Writer) { w.WriteInt64(math.MaxInt16 + 1) }},
		{"int32 overflow", core.PrimitiveInt32, func(w *msgpack.Writer) { w.WriteInt64(math.MaxInt32 + 1) }},
		{"uint8 overflow", core.PrimitiveUint8, func(w *msgpack.Writer) { w.WriteUint64(math.MaxUint8 + 1) }},
		{"uint16 overflow", core.PrimitiveUint16, func(w *msgpack.Writer) { w.WriteUint64(math.MaxUint16 + 1) }},
		{"uint32 overflow", core.PrimitiveUint32, func(w *msgpack.Writer) { w.WriteUint64(math.MaxUint32 + 1) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			conv := buildPrimitiveConverter(t, c.prim)
			cache := core.NewCache()
			ctx := core.NewContext(nil, cache, core.DefaultPolicies())

			w := msgpack.NewWriter()
			c.wire(w)
			r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
			_, err := conv.ReadValue(r, ctx)
			if err == nil {
				t.Fatalf("expected an OutOfRangeError")
			}
			if _, ok := err.(*msgpack.OutOfRangeError); !ok {
				t.Fatalf("expected *msgpack.OutOfRangeError, got %T: %v", err, err)
			}
		})
	}
}

func TestPrimitiveTypeMismatchFails(t *testing.T) {
	conv := buildPrimitiveConverter(t, core.PrimitiveString)
	cache := core.NewCache()
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())
	w := msgpack.NewWriter()
	if err := conv.WriteValue(w, 123, ctx); err == nil {
		t.Fatalf("expected an error when writing an int through a string converter")
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	conv := buildPrimitiveConverter(t, core.PrimitiveBinary)
	cache := core.NewCache()
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())

	want := []byte{0x00, 0x01, 0xff, 0x10}
	w := msgpack.NewWriter()
	if err := conv.WriteValue(w, want, ctx); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	got, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	gotBytes, ok := got.([]byte)
	if !ok {
		t.Fatalf("got %T, want []byte", got)
	}
	if len(gotBytes) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(gotBytes), len(want))
	}
	for i := range want {
		if gotBytes[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, gotBytes[i], want[i])
		}
	}
}
