package codegen

// FallbackKind is an enumeration of behaviors applied when a value cannot
// be decoded.
type FallbackKind int

const (
	// FallbackThrow propagates every error.
	FallbackThrow FallbackKind = iota
	// FallbackIfMissing substitutes a value when the key is absent and
	// propagates other errors.
	FallbackIfMissing
	// FallbackIfMissingOrError substitutes a value when the key is absent
	// and another one when decoding fails.
	FallbackIfMissingOrError
)

// Fallback describes the decode fallback of a field or, after aggregation,
// of a nested container.
type Fallback struct {
	Kind FallbackKind
	// OnMissing is the expression assigned when the key is absent.
	OnMissing string
	// OnError is the expression assigned when decoding fails.
	OnError string
}

// aggregateFallback combines fallbacks of all fields sharing a container.
// The container may only be absent if every field tolerates absence, and
// errors may only be swallowed if every field swallows them. Substituted
// values are always taken from the fields themselves.
func aggregateFallback(fallbacks []Fallback) Fallback {
	if len(fallbacks) == 0 {
		return Fallback{Kind: FallbackThrow}
	}
	kind := FallbackIfMissingOrError
	for _, fb := range fallbacks {
		switch fb.Kind {
		case FallbackThrow:
			return Fallback{Kind: FallbackThrow}
		case FallbackIfMissing:
			kind = FallbackIfMissing
		}
	}
	return Fallback{Kind: kind}
}
