package refpolicy

import (
	"sync"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// internTable is process-lifetime, per spec.md §4.1 ("readers consult a
// process-lifetime keyed table for repeated byte sequences"): it outlives
// any single call, unlike refTable.
var internTable sync.Map // string -> string

// internConverter wraps a string-producing converter so that repeated
// read values sharing byte content collapse onto one Go string, trading a
// map lookup for an allocation. It never changes wire output: write is a
// plain passthrough.
type internConverter struct {
	inner core.Converter
}

// InternStrings decorates inner (expected to be the string primitive
// converter) with read-side string deduplication.
func InternStrings(inner core.Converter) core.Converter {
	return &internConverter{inner: inner}
}

func (c *internConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	return c.inner.WriteValue(w, v, ctx)
}

func (c *internConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	v, err := c.inner.ReadValue(r, ctx)
	if err != nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return v, nil
	}
	if existing, ok := internTable.Load(s); ok {
		return existing, nil
	}
	internTable.Store(s, s)
	return s, nil
}
