package mpack

import "github.com/mpackhq/mpack/core"

// Option configures a Serializer at construction. Mirrors the
// functional-options-over-immutable-config shape the teacher codec uses
// for client construction: each Option mutates a private config struct,
// never the Serializer itself after NewSerializer returns.
type Option func(*config)

type config struct {
	policies core.Policies
	logger   Logger
}

// WithPreserveReferences turns on identity-based back-references for
// reference-type shapes (object, enumerable, dictionary, union).
func WithPreserveReferences() Option {
	return func(c *config) { c.policies.PreserveReferences = true }
}

// WithInternStrings turns on read-side string deduplication.
func WithInternStrings() Option {
	return func(c *config) { c.policies.InternStrings = true }
}

// WithDefaultValues selects which object members the write path omits
// when their runtime value equals the shape's declared default.
func WithDefaultValues(p DefaultValuePolicy) Option {
	return func(c *config) { c.policies.DefaultValues = p }
}

// WithPerfOverSchemaStability permits the object converter to choose
// array layout for shapes without explicit member keys.
func WithPerfOverSchemaStability() Option {
	return func(c *config) { c.policies.PerfOverSchemaStability = true }
}

// WithIgnoreKeyAttributes forces every object to map layout, regardless
// of explicit keys or WithPerfOverSchemaStability.
func WithIgnoreKeyAttributes() Option {
	return func(c *config) { c.policies.IgnoreKeyAttributes = true }
}

// WithMaxDepth overrides the recursion budget (default core.DefaultMaxDepth).
func WithMaxDepth(n uint32) Option {
	return func(c *config) { c.policies.MaxDepth = n }
}

// WithDisableHardwareAcceleration forces every bulk primitive path to its
// plain per-element loop.
func WithDisableHardwareAcceleration() Option {
	return func(c *config) { c.policies.DisableHardwareAcceleration = true }
}

// WithObjectReferenceExtensionType overrides the extension type code used
// to frame back-reference tokens when WithPreserveReferences is set.
func WithObjectReferenceExtensionType(t int8) Option {
	return func(c *config) { c.policies.ObjectReferenceExtensionType = t }
}

// WithCanonicalMapOrder sorts dictionary and map-layout object keys by
// their encoded byte order before writing, trading throughput for a
// byte-stable encoding.
func WithCanonicalMapOrder() Option {
	return func(c *config) { c.policies.CanonicalMapOrder = CanonicalOrder }
}

// WithStartingContext pre-populates the opaque, string-keyed context a
// custom converter can read and mutate via Context.ContextValue and
// Context.SetContextValue. values is copied, never retained, so later
// mutation of the map passed here has no effect.
func WithStartingContext(values map[string]any) Option {
	return func(c *config) {
		cp := make(map[string]any, len(values))
		for k, v := range values {
			cp[k] = v
		}
		c.policies.StartingContext = cp
	}
}

// WithLogger installs a diagnostic logger for cache rebuilds and other
// low-volume internal events. The default is a no-op logger.
func WithLogger(l Logger) Option {
	return func(c *config) { c.logger = l }
}
