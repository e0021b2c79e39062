package convert_test

import (
	"testing"

	"github.com/mpackhq/mpack"
	"github.com/mpackhq/mpack/internal/testshapes"
)

// uint64ListShapeWithoutFastPath is structurally identical to
// testshapes.Uint64ListShape except its Uint64Slice hook always reports
// ok=false, forcing every write through the ordinary RangeSequence/
// per-element path.
func uint64ListShapeWithoutFastPath() *mpack.Shape {
	return &mpack.Shape{
		Name:    "Uint64ListWithoutFastPath",
		Kind:    mpack.KindEnumerable,
		Element: testshapes.Uint64Shape,
		NewSequence: func(elems []any) (any, error) {
			out := make([]uint64, len(elems))
			for i, e := range elems {
				out[i] = e.(uint64)
			}
			return out, nil
		},
		RangeSequence: func(v any, each func(elem any) error) error {
			for _, e := range v.([]uint64) {
				if err := each(e); err != nil {
					return err
				}
			}
			return nil
		},
		Uint64Slice: func(v any) ([]uint64, bool) { return nil, false },
	}
}

// TestEnumerableRoundTripsPlainElementPath exercises the RangeSequence/
// NewSequence path for a shape with no Uint64Slice fast path.
func TestEnumerableRoundTripsPlainElementPath(t *testing.T) {
	s := mpack.NewSerializer()
	want := []int64{1, 2, 3, -7, 0}

	encoded, err := s.Serialize(testshapes.IntListShape, want)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := s.Deserialize(testshapes.IntListShape, encoded)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gotList := got.([]int64)
	if len(gotList) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(gotList), len(want))
	}
	for i, v := range want {
		if gotList[i] != v {
			t.Fatalf("element %d: got %d, want %d", i, gotList[i], v)
		}
	}
}

// TestEnumerableUint64SliceFastPathRoundTrips exercises the hardware-
// accelerated WritePrimitiveUint64Array path, wired via Shape.Uint64Slice.
func TestEnumerableUint64SliceFastPathRoundTrips(t *testing.T) {
	s := mpack.NewSerializer()
	want := []uint64{0, 1, 127, 128, 255, 256, 65535, 65536, 1 << 32, ^uint64(0)}

	encoded, err := s.Serialize(testshapes.Uint64ListShape, want)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	got, err := s.Deserialize(testshapes.Uint64ListShape, encoded)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gotList := got.([]uint64)
	if len(gotList) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(gotList), len(want))
	}
	for i, v := range want {
		if gotList[i] != v {
			t.Fatalf("element %d: got %d, want %d", i, gotList[i], v)
		}
	}
}

// TestEnumerableUint64SliceFastPathMatchesPlainEncoding confirms the bulk
// fast path produces byte-identical output to writing each element through
// the ordinary per-element uint64 primitive converter, so shortest-form
// width selection isn't silently different between the two paths.
func TestEnumerableUint64SliceFastPathMatchesPlainEncoding(t *testing.T) {
	s := mpack.NewSerializer()
	vals := []uint64{0, 1, 127, 128, 255, 256, 65535, 65536, 1 << 32, ^uint64(0)}

	fast, err := s.Serialize(testshapes.Uint64ListShape, vals)
	if err != nil {
		t.Fatalf("Serialize (fast path): %v", err)
	}

	plain, err := s.Serialize(uint64ListShapeWithoutFastPath(), vals)
	if err != nil {
		t.Fatalf("Serialize (plain path): %v", err)
	}

	if string(fast) != string(plain) {
		t.Fatalf("fast path and plain path diverge:\nfast:  % x\nplain: % x", fast, plain)
	}
}

// TestEnumerableUint64SliceFalseOkFallsBackToRangeSequence covers a shape
// whose Uint64Slice hook exists but reports ok=false for this particular
// value, which must fall back to RangeSequence rather than erroring.
func TestEnumerableUint64SliceFalseOkFallsBackToRangeSequence(t *testing.T) {
	declinedShape := uint64ListShapeWithoutFastPath()

	s := mpack.NewSerializer()
	want := []uint64{10, 20, 30}
	encoded, err := s.Serialize(declinedShape, want)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	got, err := s.Deserialize(declinedShape, encoded)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	gotList := got.([]uint64)
	if len(gotList) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(gotList), len(want))
	}
	for i, v := range want {
		if gotList[i] != v {
			t.Fatalf("element %d: got %d, want %d", i, gotList[i], v)
		}
	}
}
