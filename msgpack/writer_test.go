package msgpack_test

import (
	"bytes"
	"testing"

	"github.com/mpackhq/mpack/msgpack"
)

func TestWriteIntShortestForm(t *testing.T) {
	cases := []struct {
		name string
		v    int64
		want []byte
	}{
		{"positive fixint", 42, []byte{0x2a}},
		{"negative fixint", -5, []byte{0xfb}},
		{"uint8 boundary", 128, []byte{0xcc, 0x80}},
		{"uint16 boundary", 256, []byte{0xcd, 0x01, 0x00}},
		{"uint32 boundary", 65536, []byte{0xce, 0x00, 0x01, 0x00, 0x00}},
		{"uint64 boundary", 4294967296, []byte{0xcf, 0, 0, 0, 1, 0, 0, 0, 0}},
		{"int8 boundary", -33, []byte{0xd0, 0xdf}},
		{"int16 boundary", -129, []byte{0xd1, 0xff, 0x7f}},
		{"int32 boundary", -32769, []byte{0xd2, 0xff, 0xff, 0x7f, 0xff}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := msgpack.NewWriter()
			w.WriteInt64(c.v)
			if !bytes.Equal(w.Bytes(), c.want) {
				t.Fatalf("WriteInt64(%d) = %x, want %x", c.v, w.Bytes(), c.want)
			}
		})
	}
}

func TestWriteIntPositiveAlwaysPrefersUnsignedFamily(t *testing.T) {
	// A non-negative value must never take the signed int8/16/32/64
	// encoding even though both would fit, per spec.md's shortest-form
	// rule.
	w := msgpack.NewWriter()
	w.WriteInt64(200)
	got := w.Bytes()
	if got[0] != 0xcc {
		t.Fatalf("expected uint8 prefix 0xcc for 200, got %#x", got[0])
	}
}

func TestWriteStringLengthBoundaries(t *testing.T) {
	lengths := []int{0, 31, 32, 255, 256, 65535, 65536}
	for _, n := range lengths {
		s := make([]byte, n)
		for i := range s {
			s[i] = byte('a' + i%26)
		}
		w := msgpack.NewWriter()
		w.WriteString(s)

		r := msgpack.NewReader(msgpack.NewBuffer(w.Bytes()))
		got, err := r.ReadStringBytes()
		if err != nil {
			t.Fatalf("length %d: ReadStringBytes: %v", n, err)
		}
		if !bytes.Equal(got, s) {
			t.Fatalf("length %d: round trip mismatch", n)
		}
		if r.Pos() != int64(len(w.Bytes())) {
			t.Fatalf("length %d: reader left at %d, want %d (exactly one structure consumed)", n, r.Pos(), len(w.Bytes()))
		}
	}
}

func TestWritePrimitiveUint64ArrayMatchesPlainLoop(t *testing.T) {
	vals := []uint64{0, 1, 127, 128, 70000, 1 << 40}

	accelerated := msgpack.NewWriter()
	accelerated.WritePrimitiveUint64Array(vals, true)

	plain := msgpack.NewWriter()
	plain.WritePrimitiveUint64Array(vals, false)

	if !bytes.Equal(accelerated.Bytes(), plain.Bytes()) {
		t.Fatalf("accelerated and plain paths must produce identical bytes:\n got %x\nwant %x", accelerated.Bytes(), plain.Bytes())
	}

	r := msgpack.NewReader(msgpack.NewBuffer(accelerated.Bytes()))
	n, err := r.ReadArrayHeader()
	if err != nil {
		t.Fatalf("ReadArrayHeader: %v", err)
	}
	if int(n) != len(vals) {
		t.Fatalf("array header = %d, want %d", n, len(vals))
	}
	for i, want := range vals {
		got, err := r.ReadUint64()
		if err != nil {
			t.Fatalf("element %d: ReadUint64: %v", i, err)
		}
		if got != want {
			t.Fatalf("element %d = %d, want %d", i, got, want)
		}
	}
}
