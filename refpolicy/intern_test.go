package refpolicy_test

import (
	"testing"
	"unsafe"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
	"github.com/mpackhq/mpack/refpolicy"
)

type stringConverter struct{}

func (stringConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	w.WriteString([]byte(v.(string)))
	return nil
}

func (stringConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	b, err := r.ReadStringBytes()
	if err != nil {
		return nil, err
	}
	// A fresh []byte->string conversion each call, matching how the real
	// string primitive converter materializes a new string per read: two
	// reads of identical bytes are equal by value but distinct allocations
	// absent interning.
	return string(append([]byte(nil), b...)), nil
}

func TestInternStringsDeduplicatesEqualByteContent(t *testing.T) {
	conv := refpolicy.InternStrings(stringConverter{})

	w := msgpack.NewWriter()
	w.WriteString([]byte("hello"))
	w.WriteString([]byte("hello"))
	w.WriteString([]byte("world"))

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	ctx := core.NewContext(nil, core.NewCache(), core.DefaultPolicies())

	a, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue(1): %v", err)
	}
	b, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue(2): %v", err)
	}
	c, err := conv.ReadValue(r, ctx)
	if err != nil {
		t.Fatalf("ReadValue(3): %v", err)
	}

	if a.(string) != "hello" || b.(string) != "hello" || c.(string) != "world" {
		t.Fatalf("unexpected values: %v %v %v", a, b, c)
	}

	// The interning table is process-lifetime and keyed by content, so the
	// second "hello" must come back as the exact same backing array as the
	// first even though stringConverter allocated a fresh one each call.
	if unsafe.StringData(a.(string)) != unsafe.StringData(b.(string)) {
		t.Fatalf("expected the second equal-content read to reuse the first string's backing data")
	}
	if unsafe.StringData(a.(string)) == unsafe.StringData(c.(string)) {
		t.Fatalf("distinct content must not share backing data")
	}
}

func TestInternStringsWritePassesThroughUnchanged(t *testing.T) {
	conv := refpolicy.InternStrings(stringConverter{})
	w := msgpack.NewWriter()
	ctx := core.NewContext(nil, core.NewCache(), core.DefaultPolicies())
	if err := conv.WriteValue(w, "passthrough", ctx); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
	got, err := r.ReadStringBytes()
	if err != nil {
		t.Fatalf("ReadStringBytes: %v", err)
	}
	if string(got) != "passthrough" {
		t.Fatalf("got %q, want %q", got, "passthrough")
	}
}
