package convert_test

import (
	"testing"

	"github.com/mpackhq/mpack/convert"
	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

func stringIntDictShape() *core.Shape {
	return &core.Shape{
		Name: "StringIntMap",
		Kind: core.KindDictionary,
		Key:  &core.Shape{Name: "string", Kind: core.KindPrimitive, Primitive: core.PrimitiveString},
		Value: &core.Shape{
			Name: "int64", Kind: core.KindPrimitive, Primitive: core.PrimitiveInt64,
		},
		NewDictionary: func(entries []core.DictEntry) (any, error) {
			m := make(map[string]int64, len(entries))
			for _, e := range entries {
				m[e.Key.(string)] = e.Value.(int64)
			}
			return m, nil
		},
		RangeDictionary: func(v any, each func(k, val any) error) error {
			m := v.(map[string]int64)
			for k, val := range m {
				if err := each(k, val); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func TestDictionaryRoundTripsUnordered(t *testing.T) {
	shape := stringIntDictShape()
	cache := core.NewCache()
	cache.SetBuilder(convert.Build)
	conv, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}

	want := map[string]int64{"a": 1, "b": 2, "c": 3}
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())
	w := msgpack.NewWriter()
	if err := conv.WriteValue(w, want, ctx); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	got, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	gotMap := got.(map[string]int64)
	if len(gotMap) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(gotMap), len(want))
	}
	for k, v := range want {
		if gotMap[k] != v {
			t.Fatalf("key %q: got %d, want %d", k, gotMap[k], v)
		}
	}
}

func TestDictionaryCanonicalOrderSortsByEncodedKeyBytes(t *testing.T) {
	shape := stringIntDictShape()
	cache := core.NewCache()
	cache.SetBuilder(convert.Build)
	conv, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("cache.Get: %v", err)
	}

	policies := core.DefaultPolicies()
	policies.CanonicalMapOrder = core.CanonicalOrder
	ctx := core.NewContext(nil, cache, policies)

	input := map[string]int64{"zebra": 1, "apple": 2, "mango": 3}
	w := msgpack.NewWriter()
	if err := conv.WriteValue(w, input, ctx); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	n, err := r.ReadMapHeader()
	if err != nil {
		t.Fatalf("ReadMapHeader: %v", err)
	}
	if n != 3 {
		t.Fatalf("map header = %d, want 3", n)
	}

	want := []string{"apple", "mango", "zebra"} // lexical order of the fixstr-encoded key bytes
	for i, wantKey := range want {
		k, err := r.ReadStringBytes()
		if err != nil {
			t.Fatalf("entry %d: ReadStringBytes: %v", i, err)
		}
		if string(k) != wantKey {
			t.Fatalf("entry %d: key = %q, want %q (canonical order not applied)", i, k, wantKey)
		}
		if _, err := r.ReadInt64(); err != nil {
			t.Fatalf("entry %d: ReadInt64: %v", i, err)
		}
	}
}

func TestDictionaryWithoutCanonicalOrderIsNotSortedByPolicyDefault(t *testing.T) {
	policies := core.DefaultPolicies()
	if policies.CanonicalMapOrder == core.CanonicalOrder {
		t.Fatalf("expected canonical map order to be opt-in, not the default")
	}
}
