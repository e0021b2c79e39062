package core_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mpackhq/mpack/core"
	"github.com/mpackhq/mpack/msgpack"
)

// noopConverter returns a *ConverterFunc rather than a value, so two
// distinct calls are never interface-equal and a single call's result can
// be compared back against itself with == (func-valued structs are not
// comparable as values, but a pointer to one always is).
func noopConverter() core.Converter {
	return &core.ConverterFunc{
		Write: func(w *msgpack.Writer, v any, ctx *core.Context) error { return nil },
		Read:  func(r *msgpack.Reader, ctx *core.Context) (any, error) { return nil, nil },
	}
}

func TestCacheBuildsEachShapeExactlyOnce(t *testing.T) {
	shape := &core.Shape{Name: "Widget", Kind: core.KindPrimitive, Primitive: core.PrimitiveInt64}
	var builds int32
	cache := core.NewCache()
	cache.SetBuilder(func(s *core.Shape, c *core.Cache) (core.Converter, error) {
		atomic.AddInt32(&builds, 1)
		return noopConverter(), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(shape); err != nil {
				t.Errorf("Get: %v", err)
			}
		}()
	}
	wg.Wait()

	if builds != 1 {
		t.Fatalf("builder invoked %d times, want exactly 1", builds)
	}
}

func TestCachePresetOverridesBuilder(t *testing.T) {
	shape := &core.Shape{Name: "Widget", Kind: core.KindPrimitive, Primitive: core.PrimitiveInt64}
	cache := core.NewCache()
	called := false
	cache.SetBuilder(func(s *core.Shape, c *core.Cache) (core.Converter, error) {
		called = true
		return nil, nil
	})

	preset := noopConverter()
	cache.Preset(shape, preset)

	got, err := cache.Get(shape)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if called {
		t.Fatalf("builder should not run once a converter is preset")
	}
	if got != preset {
		t.Fatalf("expected the exact preset converter back")
	}
}

// TestRecursiveShapeResolvesThroughDelayedConverter builds a shape whose
// Builder recurses into the SAME shape before returning (simulating a
// self-referential Shape graph), and confirms the placeholder Converter
// handed back mid-build resolves to a working converter once the build
// completes.
func TestRecursiveShapeResolvesThroughDelayedConverter(t *testing.T) {
	shape := &core.Shape{Name: "Recursive", Kind: core.KindPrimitive, Primitive: core.PrimitiveInt64}
	cache := core.NewCache()

	var placeholder core.Converter
	cache.SetBuilder(func(s *core.Shape, c *core.Cache) (core.Converter, error) {
		// Recursing into the same shape mid-build must not deadlock or
		// infinitely recurse; it must hand back the delayed placeholder.
		inner, err := c.Get(s)
		if err != nil {
			return nil, err
		}
		placeholder = inner
		return noopConverter(), nil
	})

	if _, err := cache.Get(shape); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if placeholder == nil {
		t.Fatalf("expected the recursive Get call to return a placeholder converter")
	}
	ctx := core.NewContext(nil, cache, core.DefaultPolicies())
	if _, err := placeholder.ReadValue(nil, ctx); err != nil {
		t.Fatalf("placeholder should delegate to the resolved converter, got error: %v", err)
	}
}
