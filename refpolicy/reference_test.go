package refpolicy_test

import (
	"testing"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
	"github.com/mpackhq/mpack/refpolicy"
)

type payload struct{ N int64 }

// payloadConverter stands in for an object converter: write emits N as a
// plain int, read allocates a fresh *payload each time it actually runs
// (never when a back-reference token short-circuits it).
type payloadConverter struct{ reads int }

func (c *payloadConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	p, _ := v.(*payload)
	if p == nil {
		w.WriteNil()
		return nil
	}
	w.WriteInt64(p.N)
	return nil
}

func (c *payloadConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	n, err := r.ReadInt64()
	if err != nil {
		return nil, err
	}
	c.reads++
	return &payload{N: n}, nil
}

const refExtType int8 = -2

func TestPreserveReferencesCollapsesRepeatedIdentity(t *testing.T) {
	inner := &payloadConverter{}
	conv := refpolicy.PreserveReferences(inner, refExtType)

	shared := &payload{N: 42}
	distinct := &payload{N: 7}

	w := msgpack.NewWriter()
	ctx := core.NewContext(nil, core.NewCache(), core.DefaultPolicies())
	for _, v := range []*payload{shared, distinct, shared} {
		if err := conv.WriteValue(w, v, ctx); err != nil {
			t.Fatalf("WriteValue: %v", err)
		}
	}

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	readCtx := core.NewContext(nil, core.NewCache(), core.DefaultPolicies())

	first, err := conv.ReadValue(r, readCtx)
	if err != nil {
		t.Fatalf("ReadValue(1): %v", err)
	}
	second, err := conv.ReadValue(r, readCtx)
	if err != nil {
		t.Fatalf("ReadValue(2): %v", err)
	}
	third, err := conv.ReadValue(r, readCtx)
	if err != nil {
		t.Fatalf("ReadValue(3): %v", err)
	}

	if inner.reads != 2 {
		t.Fatalf("inner converter ran %d times, want exactly 2 (shared value written once)", inner.reads)
	}
	if first.(*payload) != third.(*payload) {
		t.Fatalf("expected the third read to return the exact same *payload as the first")
	}
	if first.(*payload) == second.(*payload) {
		t.Fatalf("distinct values must not collapse onto the same pointer")
	}
	if second.(*payload).N != 7 {
		t.Fatalf("second value = %d, want 7", second.(*payload).N)
	}
}

func TestPreserveReferencesNilNeverTracked(t *testing.T) {
	inner := &payloadConverter{}
	conv := refpolicy.PreserveReferences(inner, refExtType)

	w := msgpack.NewWriter()
	ctx := core.NewContext(nil, core.NewCache(), core.DefaultPolicies())
	// A nil value has no identity; WriteValue must hand it straight to
	// inner without recording it in the reference table (identityOf
	// reports no identity for an untyped nil and, since reflect reports it
	// as IsNil, for a typed nil pointer too).
	var nilPayload *payload
	if err := conv.WriteValue(w, nilPayload, ctx); err != nil {
		t.Fatalf("WriteValue(nil *payload): %v", err)
	}
	if inner.reads != 0 {
		t.Fatalf("unexpected read count %d", inner.reads)
	}
}

func TestPreserveReferencesUnknownAliasFails(t *testing.T) {
	inner := &payloadConverter{}
	conv := refpolicy.PreserveReferences(inner, refExtType)

	// A back-reference extension token pointing at an id never assigned
	// on this call must fail, not silently return nil or a stale value.
	idBytes := msgpack.NewWriter()
	idBytes.WriteInt64(5)
	w := msgpack.NewWriter()
	w.WriteExtension(refExtType, idBytes.Bytes())

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	ctx := core.NewContext(nil, core.NewCache(), core.DefaultPolicies())
	_, err := conv.ReadValue(r, ctx)
	if err == nil {
		t.Fatalf("expected an error for an out-of-range back-reference id")
	}
	if _, ok := err.(*core.UnknownAliasError); !ok {
		t.Fatalf("expected *core.UnknownAliasError, got %T: %v", err, err)
	}
}
