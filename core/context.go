package core

import (
	"context"

	"github.com/mpackhq/mpack/internal/mlog"
)

// Context threads the state one serialize or deserialize call shares
// across every converter it invokes: the recursion budget, cancellation,
// the converter Cache, the active Policies, and an extensible slot for
// policy wrappers (package refpolicy) to carry per-call state such as a
// reference table, without Context itself knowing what refpolicy is.
//
// This mirrors the context.Context-first-argument convention threaded
// through every operation call in the teacher's transport and middleware
// layers; Context wraps a plain context.Context for cancellation instead
// of reinventing it.
type Context struct {
	ctx      context.Context
	cache    *Cache
	policies Policies

	depth    uint32
	maxDepth uint32

	// RefState is set by refpolicy's decorators at the start of a
	// serialize/deserialize call and read back by the converters those
	// decorators wrap. It is `any` so core has no import-time knowledge
	// of refpolicy's reference-table type.
	RefState any

	values map[string]any
	logger mlog.Logger
}

// NewContext builds a Context for one top-level Serialize/Deserialize
// call. policies.StartingContext, if set, is shallow-copied into the new
// Context so a custom converter's ContextValue/SetContextValue calls
// never leak between calls sharing the same Serializer.
func NewContext(ctx context.Context, cache *Cache, policies Policies) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	var values map[string]any
	if len(policies.StartingContext) > 0 {
		values = make(map[string]any, len(policies.StartingContext))
		for k, v := range policies.StartingContext {
			values[k] = v
		}
	}
	return &Context{
		ctx:      ctx,
		cache:    cache,
		policies: policies,
		maxDepth: policies.EffectiveMaxDepth(),
		values:   values,
	}
}

// ContextValue looks up a value a caller pre-populated via
// Policies.StartingContext, or that an earlier converter set via
// SetContextValue.
func (c *Context) ContextValue(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// SetContextValue records an opaque value under key for the remainder of
// this top-level call; later converters invoked by the same call observe
// it via ContextValue.
func (c *Context) SetContextValue(key string, v any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = v
}

// SetLogger installs the diagnostic logger converters reach via Logger()
// for the remainder of this call. The root package calls this once, right
// after NewContext, with the Serializer's configured logger.
func (c *Context) SetLogger(l mlog.Logger) { c.logger = l }

// Logger returns the diagnostic logger for this call, or a no-op logger if
// none was installed. Converters use it for low-volume skip-and-recover
// diagnostics (e.g. an unrecognized object member dropped because the
// shape declared no unused-data-packet), never on the hot per-value path.
func (c *Context) Logger() mlog.Logger {
	if c.logger == nil {
		return mlog.Noop{}
	}
	return c.logger
}

// Cache returns the converter cache backing this call.
func (c *Context) Cache() *Cache { return c.cache }

// Policies returns the active policy set.
func (c *Context) Policies() Policies { return c.policies }

// Done returns the underlying context.Context's done channel, for
// selecting on cancellation in long-running bulk operations.
func (c *Context) Done() <-chan struct{} { return c.ctx.Done() }

// Err returns the underlying context.Context's error if cancelled.
func (c *Context) Err() error { return c.ctx.Err() }

// DepthStep increments the recursion counter for the duration of entering
// one nested structure (object member, array element, map entry, union
// payload) and returns a function that must be deferred to decrement it
// again. It returns a *DepthExceededError immediately if the budget is
// already exhausted, and a *CancelledError if the context was cancelled,
// so every converter that recurses gets both checks for free by calling
// this once per recursive step (spec.md's "depth_step called at least
// once" invariant).
func (c *Context) DepthStep() (func(), error) {
	select {
	case <-c.ctx.Done():
		return func() {}, &CancelledError{Cause: c.ctx.Err()}
	default:
	}
	if c.depth >= c.maxDepth {
		return func() {}, &DepthExceededError{Limit: c.maxDepth}
	}
	c.depth++
	return func() { c.depth-- }, nil
}

// Depth returns the current recursion depth.
func (c *Context) Depth() uint32 { return c.depth }
