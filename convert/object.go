package convert

import (
	"bytes"
	"reflect"
	"sort"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/internal/mlog"
	"github.com/mpackhq/mpack/msgpack"
)

// objectConverter handles struct-shaped values in either map layout
// (member name -> value) or array layout (explicit integer key -> value),
// per the layout-selection rule in SPEC_FULL.md §4.3. Layout is a
// function of policy, which is immutable for the life of a Serializer, so
// it is safe to recompute cheaply on every call rather than branch the
// cache on it.
type objectConverter struct {
	shape *core.Shape
	cache *core.Cache

	byName         map[string]*core.Member
	encodedNames   map[string][]byte // member name -> pre-encoded msgpack string
	hasAllExplicit bool
	maxExplicitKey int
}

func buildObject(shape *core.Shape, cache *core.Cache) core.Converter {
	c := &objectConverter{
		shape:        shape,
		cache:        cache,
		byName:       make(map[string]*core.Member, len(shape.Members)),
		encodedNames: make(map[string][]byte, len(shape.Members)),
	}
	c.hasAllExplicit = len(shape.Members) > 0
	for i := range shape.Members {
		m := &shape.Members[i]
		c.byName[m.Name] = m
		tmp := msgpack.NewWriter()
		tmp.WriteString([]byte(m.Name))
		encoded := make([]byte, tmp.Len())
		copy(encoded, tmp.Bytes())
		c.encodedNames[m.Name] = encoded
		if !m.HasKey {
			c.hasAllExplicit = false
		} else if m.ExplicitKey > c.maxExplicitKey {
			c.maxExplicitKey = m.ExplicitKey
		}
	}
	return c
}

// useArrayLayout decides the wire layout for one call, per §4.3's
// precedence: ignore_key_attributes forces map layout; otherwise explicit
// keys on every member force array layout; otherwise
// perf_over_schema_stability permits array layout keyed by declaration
// order.
func (c *objectConverter) useArrayLayout(p core.Policies) bool {
	if p.IgnoreKeyAttributes {
		return false
	}
	if c.hasAllExplicit {
		return true
	}
	return p.PerfOverSchemaStability
}

func (c *objectConverter) effectiveKey(p core.Policies, m *core.Member) int {
	if c.hasAllExplicit && !p.IgnoreKeyAttributes {
		return m.ExplicitKey
	}
	return m.Index
}

func (c *objectConverter) shouldEmit(p core.Policies, m *core.Member, v any) bool {
	switch p.DefaultValues {
	case core.AlwaysSerializeDefaults:
		return true
	case core.SerializeRequiredOrNonDefault:
		return m.Required || !reflect.DeepEqual(v, m.Default)
	default: // NeverSerializeDefaults
		return !reflect.DeepEqual(v, m.Default)
	}
}

func (c *objectConverter) unusedMembers(obj any) []core.RawMember {
	if c.shape.UnusedDataPacket == nil {
		return nil
	}
	v, err := c.shape.UnusedDataPacket.Get(obj)
	if err != nil || v == nil {
		return nil
	}
	raw, _ := v.([]core.RawMember)
	return raw
}

func (c *objectConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}
	p := ctx.Policies()
	if c.useArrayLayout(p) {
		return c.writeArray(w, v, ctx, p)
	}
	return c.writeMap(w, v, ctx, p)
}

func (c *objectConverter) writeMap(w *msgpack.Writer, v any, ctx *core.Context, p core.Policies) error {
	type emitted struct {
		member *core.Member
		value  any
	}
	var toEmit []emitted
	for i := range c.shape.Members {
		m := &c.shape.Members[i]
		val, err := m.Get(v)
		if err != nil {
			return err
		}
		if c.shouldEmit(p, m, val) {
			toEmit = append(toEmit, emitted{m, val})
		}
	}
	if p.CanonicalMapOrder == core.CanonicalOrder {
		sort.SliceStable(toEmit, func(i, j int) bool {
			return bytes.Compare(c.encodedNames[toEmit[i].member.Name], c.encodedNames[toEmit[j].member.Name]) < 0
		})
	}
	unused := c.unusedMembers(v)
	var unusedByName []core.RawMember
	for _, u := range unused {
		if u.Name != "" {
			unusedByName = append(unusedByName, u)
		}
	}

	w.WriteMapHeader(uint32(len(toEmit) + len(unusedByName)))
	for _, e := range toEmit {
		span := w.GetSpan(len(c.encodedNames[e.member.Name]))
		copy(span, c.encodedNames[e.member.Name])
		w.Advance(len(c.encodedNames[e.member.Name]))

		conv, err := c.cache.Get(e.member.Shape)
		if err != nil {
			return err
		}
		if err := conv.WriteValue(w, e.value, ctx); err != nil {
			return err
		}
	}
	for _, u := range unusedByName {
		w.WriteString([]byte(u.Name))
		span := w.GetSpan(len(u.Raw))
		copy(span, u.Raw)
		w.Advance(len(u.Raw))
	}
	return nil
}

func (c *objectConverter) writeArray(w *msgpack.Writer, v any, ctx *core.Context, p core.Policies) error {
	highest := c.maxExplicitKey
	if !c.hasAllExplicit {
		highest = len(c.shape.Members) - 1
	}
	unused := c.unusedMembers(v)
	for _, u := range unused {
		if u.Index > highest {
			highest = u.Index
		}
	}

	slots := make([]func(w *msgpack.Writer) error, highest+1)
	for i := range c.shape.Members {
		m := &c.shape.Members[i]
		key := c.effectiveKey(p, m)
		if key < 0 || key > highest {
			continue
		}
		slots[key] = func(w *msgpack.Writer) error {
			val, err := m.Get(v)
			if err != nil {
				return err
			}
			conv, err := c.cache.Get(m.Shape)
			if err != nil {
				return err
			}
			return conv.WriteValue(w, val, ctx)
		}
	}
	for _, u := range unused {
		if u.Index < 0 || u.Index > highest {
			continue
		}
		u := u
		slots[u.Index] = func(w *msgpack.Writer) error {
			span := w.GetSpan(len(u.Raw))
			copy(span, u.Raw)
			w.Advance(len(u.Raw))
			return nil
		}
	}

	w.WriteArrayHeader(uint32(len(slots)))
	for _, slot := range slots {
		if slot == nil {
			w.WriteNil()
			continue
		}
		if err := slot(w); err != nil {
			return err
		}
	}
	return nil
}

func (c *objectConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return nil, err
	}
	p := ctx.Policies()
	if c.useArrayLayout(p) {
		return c.readArray(r, ctx, p)
	}
	return c.readMap(r, ctx, p)
}

func (c *objectConverter) readMap(r *msgpack.Reader, ctx *core.Context, p core.Policies) (any, error) {
	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	builder := core.NewPartialBuilder()
	for i := uint32(0); i < n; i++ {
		nameBytes, err := r.ReadStringBytes()
		if err != nil {
			return nil, err
		}
		name := string(nameBytes)
		m, known := c.byName[name]
		if !known {
			if c.shape.UnusedDataPacket != nil {
				raw, err := r.ReadRaw()
				if err != nil {
					return nil, err
				}
				builder.Unused = append(builder.Unused, core.RawMember{Name: name, Index: -1, Raw: raw})
				continue
			}
			ctx.Logger().Logf(mlog.Warn, "object %q: unrecognized member %q dropped (no unused-data-packet configured)", c.shape.Name, name)
			if err := r.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		conv, err := c.cache.Get(m.Shape)
		if err != nil {
			return nil, err
		}
		val, err := conv.ReadValue(r, ctx)
		if err != nil {
			return nil, err
		}
		if err := c.assign(builder, m, val); err != nil {
			return nil, err
		}
	}
	return c.finish(builder)
}

func (c *objectConverter) readArray(r *msgpack.Reader, ctx *core.Context, p core.Policies) (any, error) {
	n, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	byKey := make(map[int]*core.Member, len(c.shape.Members))
	for i := range c.shape.Members {
		m := &c.shape.Members[i]
		byKey[c.effectiveKey(p, m)] = m
	}

	builder := core.NewPartialBuilder()
	for i := uint32(0); i < n; i++ {
		m, known := byKey[int(i)]
		if !known {
			if c.shape.UnusedDataPacket != nil {
				raw, err := r.ReadRaw()
				if err != nil {
					return nil, err
				}
				builder.Unused = append(builder.Unused, core.RawMember{Name: "", Index: int(i), Raw: raw})
				continue
			}
			ctx.Logger().Logf(mlog.Warn, "object %q: unrecognized member at index %d dropped (no unused-data-packet configured)", c.shape.Name, i)
			if err := r.Skip(); err != nil {
				return nil, err
			}
			continue
		}
		conv, err := c.cache.Get(m.Shape)
		if err != nil {
			return nil, err
		}
		val, err := conv.ReadValue(r, ctx)
		if err != nil {
			return nil, err
		}
		if err := c.assign(builder, m, val); err != nil {
			return nil, err
		}
	}
	return c.finish(builder)
}

// assign records val under m on builder, through the member's own Set
// hook when the shape provider supplied one (e.g. to coerce a wire type
// into a distinct Go field type), falling back to a plain index-keyed
// store.
func (c *objectConverter) assign(builder *core.PartialBuilder, m *core.Member, val any) error {
	if m.Set != nil {
		return m.Set(builder, val)
	}
	builder.Set(m.Index, val)
	return nil
}

func (c *objectConverter) finish(builder *core.PartialBuilder) (any, error) {
	for i := range c.shape.Members {
		m := &c.shape.Members[i]
		if m.Required && !builder.Has(m.Index) {
			return nil, &core.MissingRequiredMemberError{Name: m.Name}
		}
	}
	return c.shape.NewObject(builder)
}
