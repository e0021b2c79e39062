package core

import "sync"

// Builder produces the Converter for shape, consulting cache to resolve
// any nested shapes it depends on. It is injected into the Cache rather
// than imported directly so that package core never imports package
// convert (convert depends on core; a direct import the other way would
// cycle). The root facade package installs, via cache.SetBuilder, a
// Builder that delegates to convert.Build.
type Builder func(shape *Shape, cache *Cache) (Converter, error)

// Cache memoizes the Converter built for each distinct *Shape, keyed by
// pointer identity so that two Shape values describing the same logical
// type but constructed separately are never accidentally unified (and,
// conversely, so that one Shape reused in multiple places is only ever
// built once).
//
// A shape whose member graph reaches itself (directly, or through a cycle
// of several shapes) is handled by installing a delayedConverter
// placeholder the instant its build begins, before the Builder callback
// runs: any Get for that same shape observed while the build is still in
// flight — whether it is the SAME goroutine recursing back in, or a
// different goroutine racing to resolve the same shape concurrently —
// gets the placeholder instead of blocking. Get therefore never blocks
// waiting on another build to finish, which is what makes same-goroutine
// recursion safe: there is no lock held across the Builder call for a
// second Get on the same entry to deadlock against.
type Cache struct {
	mu      sync.Mutex
	entries map[*Shape]*cacheEntry
	builder Builder
}

type entryStatus int

const (
	entryUnbuilt entryStatus = iota
	entryBuilding
	entryDone
)

type cacheEntry struct {
	mu      sync.Mutex
	status  entryStatus
	delayed *delayedConverter
	built   Converter
	err     error
}

// NewCache returns an empty Cache. Call SetBuilder before first use.
func NewCache() *Cache {
	return &Cache{entries: make(map[*Shape]*cacheEntry)}
}

// SetBuilder installs the visitor callback used to build converters for
// shapes not yet in the cache.
func (c *Cache) SetBuilder(b Builder) { c.builder = b }

// Get returns the Converter for shape, building it at most once. If shape
// is currently being built — by this call stack recursing back into
// itself, or by a concurrent Get from another goroutine — Get returns the
// delayedConverter placeholder immediately rather than blocking; the
// placeholder resolves to the real converter once the in-flight build
// completes, which by construction happens before anything actually
// invokes WriteValue/ReadValue on it (building a converter graph is
// synchronous and fast; using one is a separate, later step).
func (c *Cache) Get(shape *Shape) (Converter, error) {
	entry := c.entryFor(shape)

	entry.mu.Lock()
	switch entry.status {
	case entryDone:
		built, err := entry.built, entry.err
		entry.mu.Unlock()
		return built, err
	case entryBuilding:
		d := entry.delayed
		entry.mu.Unlock()
		return d, nil
	}

	entry.status = entryBuilding
	entry.delayed = &delayedConverter{}
	entry.mu.Unlock()

	built, err := c.builder(shape, c)

	entry.mu.Lock()
	entry.status = entryDone
	entry.built = built
	entry.err = err
	entry.mu.Unlock()

	if err != nil {
		return nil, err
	}
	entry.delayed.resolve(built)
	return built, nil
}

// Preset installs conv as the permanent Converter for shape, bypassing
// Builder entirely. Used by RegisterConverter to override the standard
// converter the visitor in package convert would otherwise build, and
// must be called before the first Get(shape) from any goroutine.
func (c *Cache) Preset(shape *Shape, conv Converter) {
	entry := c.entryFor(shape)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.status == entryDone {
		return
	}
	entry.status = entryDone
	entry.built = conv
}

func (c *Cache) entryFor(shape *Shape) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[shape]
	if !ok {
		e = &cacheEntry{}
		c.entries[shape] = e
	}
	return e
}
