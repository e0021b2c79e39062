package core

// DefaultValuePolicy controls whether an object member whose runtime value
// equals its declared default is still written to the wire.
type DefaultValuePolicy int

const (
	// NeverSerializeDefaults skips any member equal to its shape default.
	NeverSerializeDefaults DefaultValuePolicy = iota
	// AlwaysSerializeDefaults writes every member regardless of default.
	AlwaysSerializeDefaults
	// SerializeRequiredOrNonDefault writes every member marked required,
	// plus any member (required or not) whose value differs from its
	// default.
	SerializeRequiredOrNonDefault
)

// MapKeyOrder controls the order object/dictionary members are visited in
// during a write, independent of which order Go happens to range a map in.
type MapKeyOrder int

const (
	// DeclarationOrder writes members in the order the Shape lists them
	// (object layout) or arbitrary map iteration order (dictionary
	// layout) — whichever is cheaper, matching most codecs' default.
	DeclarationOrder MapKeyOrder = iota
	// CanonicalOrder sorts keys before writing, trading throughput for a
	// byte-stable encoding useful for content hashing or diffing.
	CanonicalOrder
)

// Policies is the immutable set of cross-cutting behaviors a Serializer is
// configured with, threaded down into every converter through Context. It
// mirrors the functional-options-over-an-immutable-struct shape used for
// smithy's auth.Option and httptransport client configuration: callers
// never mutate a Policies in place, they build a new one via With*
// constructors exposed by the root package.
type Policies struct {
	// PreserveReferences enables identity-based back-references for
	// reference types, keyed by ObjectReferenceExtensionType.
	PreserveReferences bool
	// InternStrings enables read-side deduplication of byte-equal strings
	// through a process-lifetime table; the wire output is unchanged.
	InternStrings bool
	// DefaultValues controls default-value omission on write.
	DefaultValues DefaultValuePolicy
	// PerfOverSchemaStability permits the object converter to use array
	// layout, keyed by declaration order, for shapes whose members lack
	// explicit keys; that layout is not stable if members are reordered.
	// The bulk primitive-array paths are governed by
	// DisableHardwareAcceleration instead.
	PerfOverSchemaStability bool
	// MaxDepth bounds recursive structure depth; zero means use the
	// package default.
	MaxDepth uint32
	// DisableHardwareAcceleration forces every bulk path to its plain
	// per-element loop, for deterministic benchmarking or to work around
	// a suspected acceleration bug.
	DisableHardwareAcceleration bool
	// IgnoreKeyAttributes, when true, ignores members' explicit keys, so
	// every object is written in map layout keyed by member name.
	IgnoreKeyAttributes bool
	// ObjectReferenceExtensionType is the extension type code used to
	// frame a back-reference token when PreserveReferences is set.
	ObjectReferenceExtensionType int8
	// CanonicalMapOrder controls key ordering on write; see MapKeyOrder.
	CanonicalMapOrder MapKeyOrder
	// StartingContext is copied into every call's Context, letting
	// a caller pre-populate opaque state a custom converter reads or
	// mutates via Context.ContextValue/SetContextValue. The template
	// itself is never mutated; each call gets its own shallow copy.
	StartingContext map[string]any
}

// DefaultMaxDepth is the recursion budget applied when Policies.MaxDepth
// is zero.
const DefaultMaxDepth uint32 = 64

// DefaultObjectReferenceExtensionType is the extension type code used for
// back-references unless the caller overrides it.
const DefaultObjectReferenceExtensionType int8 = -2

// DefaultPolicies returns the policy set new Serializers start from.
func DefaultPolicies() Policies {
	return Policies{
		MaxDepth:                     DefaultMaxDepth,
		ObjectReferenceExtensionType: DefaultObjectReferenceExtensionType,
	}
}

// EffectiveMaxDepth returns p.MaxDepth, or DefaultMaxDepth if unset.
func (p Policies) EffectiveMaxDepth() uint32 {
	if p.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return p.MaxDepth
}
