package convert_test

import (
	"testing"

	"github.com/mpackhq/mpack/convert"
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

type color int

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

func colorShape(bits int) *core.Shape {
	return &core.Shape{
		Name:        "Color",
		Kind:        core.KindEnum,
		EnumBits:    bits,
		EnumToInt:   func(v any) int64 { return int64(v.(color)) },
		EnumFromInt: func(i int64) (any, error) { return color(i), nil },
	}
}

func roundTripEnum(t *testing.T, bits int, v color) color {
	t.Helper()
	shape := colorShape(bits)
	cache := core.NewCache()
	cache.SetBuilder(convert.Build)
	conv, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}

	w := msgpack.NewWriter()
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())
	if err := conv.WriteValue(w, v, ctx); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	got, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	return got.(color)
}

func TestEnumRoundTripsAtEachWidth(t *testing.T) {
	for _, bits := range []int{8, 16, 32, 64} {
		got := roundTripEnum(t, bits, colorGreen)
		if got != colorGreen {
			t.Fatalf("bits=%d: got %v, want %v", bits, got, colorGreen)
		}
	}
}

func TestEnumUnrecognizedIntegerPassesThroughWithoutError(t *testing.T) {
	// Per the registration-time-only validation policy, a wire integer
	// with no matching enum member is not a format error: EnumFromInt must
	// accept it and hand back whatever Shape.EnumFromInt chooses to
	// construct.
	shape := colorShape(32)
	cache := core.NewCache()
	cache.SetBuilder(convert.Build)
	conv, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}

	w := msgpack.NewWriter()
	w.WriteInt32(999)
	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())

	got, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue: unexpected error for an unrecognized enum integer: %v", err)
	}
	if got.(color) != color(999) {
		t.Fatalf("got %v, want color(999)", got)
	}
}

func TestEnumUnsupportedBitWidthErrors(t *testing.T) {
	shape := colorShape(24)
	cache := core.NewCache()
	cache.SetBuilder(convert.Build)
	conv, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}

	w := msgpack.NewWriter()
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())
	if err := conv.WriteValue(w, colorRed, ctx); err == nil {
		t.Fatalf("expected an error for an unsupported enum bit width")
	}
}
