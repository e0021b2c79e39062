package convert

import (
	"bytes"
	"sort"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// dictionaryConverter handles a key/value map: a map header of length N
// followed by N (key, value) pairs. When the canonical_map_order policy is
// set, entries are sorted by their encoded key bytes first, trading
// throughput for a byte-stable encoding independent of the host map's
// iteration order (see SPEC_FULL.md §4.3 supplement).
type dictionaryConverter struct {
	shape *core.Shape
	cache *core.Cache
}

func buildDictionary(shape *core.Shape, cache *core.Cache) core.Converter {
	return &dictionaryConverter{shape: shape, cache: cache}
}

type dictEntryPair struct {
	key, value any
}

func (c *dictionaryConverter) WriteValue(w *msgpack.Writer, v any, ctx *core.Context) error {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return err
	}
	keyConv, err := c.cache.Get(c.shape.Key)
	if err != nil {
		return err
	}
	valConv, err := c.cache.Get(c.shape.Value)
	if err != nil {
		return err
	}

	var entries []dictEntryPair
	if err := c.shape.RangeDictionary(v, func(k, val any) error {
		entries = append(entries, dictEntryPair{k, val})
		return nil
	}); err != nil {
		return err
	}

	if ctx.Policies().CanonicalMapOrder == core.CanonicalOrder {
		return c.writeCanonical(w, entries, keyConv, valConv, ctx)
	}

	w.WriteMapHeader(uint32(len(entries)))
	for _, e := range entries {
		if err := keyConv.WriteValue(w, e.key, ctx); err != nil {
			return err
		}
		if err := valConv.WriteValue(w, e.value, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *dictionaryConverter) writeCanonical(w *msgpack.Writer, entries []dictEntryPair, keyConv, valConv core.Converter, ctx *core.Context) error {
	type encodedEntry struct {
		keyBytes []byte
		value    any
	}
	encoded := make([]encodedEntry, len(entries))
	for i, e := range entries {
		tmp := msgpack.NewWriter()
		if err := keyConv.WriteValue(tmp, e.key, ctx); err != nil {
			return err
		}
		keyBytes := make([]byte, tmp.Len())
		copy(keyBytes, tmp.Bytes())
		encoded[i] = encodedEntry{keyBytes: keyBytes, value: e.value}
	}
	sort.Slice(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i].keyBytes, encoded[j].keyBytes) < 0
	})

	w.WriteMapHeader(uint32(len(encoded)))
	for _, e := range encoded {
		span := w.GetSpan(len(e.keyBytes))
		copy(span, e.keyBytes)
		w.Advance(len(e.keyBytes))
		if err := valConv.WriteValue(w, e.value, ctx); err != nil {
			return err
		}
	}
	return nil
}

func (c *dictionaryConverter) ReadValue(r *msgpack.Reader, ctx *core.Context) (any, error) {
	done, err := ctx.DepthStep()
	defer done()
	if err != nil {
		return nil, err
	}
	keyConv, err := c.cache.Get(c.shape.Key)
	if err != nil {
		return nil, err
	}
	valConv, err := c.cache.Get(c.shape.Value)
	if err != nil {
		return nil, err
	}

	n, err := r.ReadMapHeader()
	if err != nil {
		return nil, err
	}
	out := make([]core.DictEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		k, err := keyConv.ReadValue(r, ctx)
		if err != nil {
			return nil, err
		}
		v, err := valConv.ReadValue(r, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, core.DictEntry{Key: k, Value: v})
	}
	return c.shape.NewDictionary(out)
}
