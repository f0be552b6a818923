package codegen

import (
	"encoding"
	"fmt"

	"go.pact.im/x/keyedgen/model"
)

var _ interface {
	fmt.Stringer
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = (*Tagging)(nil)

// Tagging is an enumeration of supported sum type tagging representations.
type Tagging int

// These representations determine how the case is embedded in JSON.
const (
	// TaggingExternal represents the case as a single-key object, where
	// the key is the case tag and the value is the associated content.
	//
	// Example:
	//
	//   {"circle": {"radius": 10}}
	//   {"square": {"side": 5}}
	TaggingExternal Tagging = iota

	// TaggingInternal represents the case as an object with a tag member,
	// where the tag member holds the case tag and the remaining members
	// hold the content.
	//
	// Example:
	//
	//   {"type": "circle", "radius": 10}
	//   {"type": "square", "side": 5}
	TaggingInternal

	// TaggingAdjacent represents the case as an object with separate
	// members for the case tag and its content.
	//
	// Example:
	//
	//   {"type": "circle", "content": {"radius": 10}}
	//   {"type": "square", "content": {"side": 5}}
	TaggingAdjacent

	// TaggingUntagged represents the case as its content without any
	// explicit tag; the case is the first one that decodes.
	//
	// Example:
	//
	//   {"radius": 10}
	//   {"side": 5}
	TaggingUntagged
)

// taggingOf selects the representation from sum type directives.
func taggingOf(ds []model.Directive) Tagging {
	switch {
	case model.Has(ds, model.DirectiveUntagged):
		return TaggingUntagged
	case model.Has(ds, model.DirectiveContentAt):
		return TaggingAdjacent
	case model.Has(ds, model.DirectiveTagAt):
		return TaggingInternal
	}
	return TaggingExternal
}

// String implements the [fmt.Stringer] interface.
func (r Tagging) String() string {
	switch r {
	case TaggingExternal:
		return "external"
	case TaggingInternal:
		return "internal"
	case TaggingAdjacent:
		return "adjacent"
	case TaggingUntagged:
		return "untagged"
	}
	return ""
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (r Tagging) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (r *Tagging) UnmarshalText(text []byte) error {
	switch string(text) {
	case "external":
		*r = TaggingExternal
	case "internal":
		*r = TaggingInternal
	case "adjacent":
		*r = TaggingAdjacent
	case "untagged":
		*r = TaggingUntagged
	default:
		return fmt.Errorf("unknown tagging %q", text)
	}
	return nil
}
