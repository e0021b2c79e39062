package msgpack

import "sort"

// Buffer is an ordered sequence of immutable byte segments, addressed as one
// logical byte range. It is the "segmented, possibly-incomplete byte
// buffer" spec.md §3 calls for: a Reader walks it token by token without
// requiring the segments to have been copied into one contiguous slice,
// which lets the async layer (package stream) hand a Reader a rolling
// window of a pipe's bytes without copying the whole message.
//
// A Buffer never mutates an appended segment; appending grows the segment
// list and the prefix-sum index used to translate a logical offset into
// (segment, local offset).
type Buffer struct {
	segments [][]byte
	prefix   []int64 // prefix[i] = total length of segments[0:i]; nil until the first Append, then len(prefix) == len(segments)+1
}

// NewBuffer builds a Buffer over the given segments, in order.
func NewBuffer(segments ...[]byte) *Buffer {
	b := &Buffer{}
	for _, s := range segments {
		b.Append(s)
	}
	return b
}

// Append adds a new segment to the end of the buffer. The segment's
// contents must not be mutated afterward.
func (b *Buffer) Append(segment []byte) {
	if len(b.prefix) == 0 {
		b.prefix = []int64{0}
	}
	if len(segment) == 0 {
		return
	}
	b.segments = append(b.segments, segment)
	b.prefix = append(b.prefix, b.prefix[len(b.prefix)-1]+int64(len(segment)))
}

// Len returns the total number of bytes across all segments.
func (b *Buffer) Len() int64 {
	if len(b.prefix) == 0 {
		return 0
	}
	return b.prefix[len(b.prefix)-1]
}

// locate returns the index of the segment containing logical offset off,
// and the local offset within that segment. It returns ok=false if off is
// at or beyond the end of the buffer.
func (b *Buffer) locate(off int64) (seg int, local int, ok bool) {
	if off < 0 || off >= b.Len() {
		return 0, 0, false
	}
	// prefix is sorted ascending; find the last segment whose start <= off.
	i := sort.Search(len(b.prefix), func(i int) bool { return b.prefix[i] > off }) - 1
	if i < 0 || i >= len(b.segments) {
		return 0, 0, false
	}
	return i, int(off - b.prefix[i]), true
}

// ByteAt returns the byte at logical offset off.
func (b *Buffer) ByteAt(off int64) (byte, bool) {
	seg, local, ok := b.locate(off)
	if !ok {
		return 0, false
	}
	return b.segments[seg][local], true
}

// ContiguousSlice returns a slice of n bytes starting at off, WITHOUT
// copying, if and only if that range lies entirely within a single
// segment. It is the fast path §4.1 calls for ("returns a UTF-8 byte slice
// when the string lies within a single segment").
func (b *Buffer) ContiguousSlice(off, n int64) ([]byte, bool) {
	if n == 0 {
		return nil, true
	}
	seg, local, ok := b.locate(off)
	if !ok {
		return nil, false
	}
	s := b.segments[seg]
	if int64(local)+n > int64(len(s)) {
		return nil, false
	}
	return s[local : int64(local)+n], true
}

// Copy materializes n bytes starting at off into a freshly allocated slice,
// spanning segments as needed. Returns false if the range runs past the
// end of the buffer.
func (b *Buffer) Copy(off, n int64) ([]byte, bool) {
	if off < 0 || n < 0 || off+n > b.Len() {
		return nil, false
	}
	if n == 0 {
		return []byte{}, true
	}
	out := make([]byte, 0, n)
	for remaining := n; remaining > 0; {
		seg, local, ok := b.locate(off)
		if !ok {
			return nil, false
		}
		s := b.segments[seg][local:]
		take := int64(len(s))
		if take > remaining {
			take = remaining
		}
		out = append(out, s[:take]...)
		off += take
		remaining -= take
	}
	return out, true
}

// Position is a logical offset into a Buffer. Readers advance their
// consumed position; callers copy it back into their own outer state to
// "return the reader" and make progress externally visible, per spec.md §3.
type Position = int64
