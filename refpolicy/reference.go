// Package refpolicy implements the two policy wrappers that decorate a
// shape's standard converter at cache-build time rather than branching
// inside it: reference preservation (identity-based back-references) and
// string interning (read-side deduplication of byte-equal strings, with
// no change to the wire). Reference preservation stores its per-call
// state on core.Context.RefState, never on the converter itself, since a
// converter is shared across concurrent calls; string interning uses one
// process-lifetime table (see intern.go).
package refpolicy

import (
	"reflect"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// refTable is the per-call reference-preservation state: on write, object
// identity -> assigned id; on read, id -> already-materialized value. A
// single top-level call uses exactly one side, never both, and the table
// never outlives that call.
type refTable struct {
	writeIDs map[uintptr]int
	readVals []any
	next     int
}

func refTableFor(ctx *core.Context) *refTable {
	if t, ok := ctx.RefState.(*refTable); ok {
		return t
	}
	t := &refTable{writeIDs: make(map[uintptr]int)}
	ctx.RefState = t
	return t
}

// identityOf returns v's pointer identity and whether v is a kind that
// has one. Plain (non-pointer) struct and scalar values have no stable
// identity and are always written inline.
func identityOf(v any) (uintptr, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	default:
		return 0, false
	}
}

// referenceConverter wraps inner so that repeat encounters of the same
// object identity become a back-reference extension token instead of a
// second inline encoding.
type referenceConverter struct {
	inner   core.Converter
	extType int8
}

// PreserveReferences decorates inner with identity-based back-reference
// tracking, framed with the given extension type code.
func PreserveReferences(inner core.Converter, extType int8) core.Converter {
	return &referenceConverter{inner: inner, extType: extType}
}

func (c *referenceConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	table := refTableFor(ctx)
	id, hasIdentity := identityOf(v)
	if !hasIdentity {
		// Nil and identity-less values are never tracked, but ReadValue
		// assigns a slot to every inline value, so the id is consumed here
		// too to keep both sides numbering alike.
		table.next++
		return c.inner.WriteValue(w, v, ctx)
	}

	if existing, seen := table.writeIDs[id]; seen {
		idBytes := msgpack.NewWriter()
		idBytes.WriteInt64(int64(existing))
		w.WriteExtension(c.extType, idBytes.Bytes())
		return nil
	}

	table.writeIDs[id] = table.next
	table.next++
	return c.inner.WriteValue(w, v, ctx)
}

func (c *referenceConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	table := refTableFor(ctx)

	kind, err := r.PeekKind()
	if err != nil {
		return nil, err
	}
	if kind == msgpack.KindExtension {
		start := r.Pos()
		typ, payload, err := r.ReadExtension()
		if err != nil {
			return nil, err
		}
		if typ == c.extType {
			idReader := msgpack.NewReader(msgpack.NewBuffer(payload))
			id, err := idReader.ReadInt64()
			if err != nil {
				return nil, err
			}
			if int(id) < 0 || int(id) >= len(table.readVals) {
				return nil, &core.UnknownAliasError{Alias: id}
			}
			return table.readVals[id], nil
		}
		// Not our back-reference token: rewind and let inner interpret
		// this extension as an ordinary value of its own shape.
		r.SetPos(start)
	}

	slot := table.next
	table.next++
	table.readVals = append(table.readVals, nil)
	v, err := c.inner.ReadValue(r, ctx)
	if err != nil {
		return nil, err
	}
	table.readVals[slot] = v
	return v, nil
}
