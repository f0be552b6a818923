package model

import (
	"encoding"
	"fmt"
)

var _ interface {
	fmt.Stringer
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = (*DirectiveKind)(nil)

// Directive is a parsed customization instruction attached to a
// declaration, a member or a case. Only the attributes relevant for its
// Kind are set.
type Directive struct {
	// Kind is the kind of the directive.
	Kind DirectiveKind `json:"kind" yaml:"kind"`
	// Path is the key path for KeyPath, ContainerPath, DecodeOnlyPath,
	// EncodeOnlyPath, TagAt and ContentAt.
	Path []string `json:"path,omitempty" yaml:"path,omitempty"`
	// Values holds alias keys for Alias and tag values for CaseValue.
	Values []Literal `json:"values,omitempty" yaml:"values,omitempty"`
	// Expr is a Go expression: the helper coder for HelperCoder, the value
	// used when the key is missing for DefaultValue, the predicate for
	// IgnoreEncodeIf.
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty"`
	// OnError is a Go expression used by DefaultValue when the value is
	// present but cannot be decoded. If empty, such errors are returned.
	OnError string `json:"onError,omitempty" yaml:"onError,omitempty"`
	// ValueType is the Go type of the discriminator for TagAt. If empty,
	// the type is inferred from case tags.
	ValueType string `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	// Strategy is the key strategy for KeyStrategy.
	Strategy KeyStrategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// DirectiveKind is an enumeration of directive kinds.
type DirectiveKind int

const (
	// DirectiveKeyPath sets the key path of a member. An empty path codes
	// the member from the enclosing container itself.
	DirectiveKeyPath DirectiveKind = iota + 1
	// DirectiveContainerPath sets the path of the container holding the
	// member; the member key is derived from its name.
	DirectiveContainerPath
	// DirectiveAlias adds alternative keys accepted on decoding.
	DirectiveAlias
	// DirectiveHelperCoder replaces the coding of a member with a helper
	// value implementing keyed.Coder.
	DirectiveHelperCoder
	// DirectiveDefaultValue sets the value used when a member cannot be
	// decoded.
	DirectiveDefaultValue
	// DirectiveIgnoreDecode excludes a member from decoding.
	DirectiveIgnoreDecode
	// DirectiveIgnoreEncode excludes a member from encoding.
	DirectiveIgnoreEncode
	// DirectiveIgnoreBoth excludes a member from coding.
	DirectiveIgnoreBoth
	// DirectiveTagAt sets the discriminator path of an internally or
	// adjacently tagged sum type.
	DirectiveTagAt
	// DirectiveContentAt sets the content path of an adjacently tagged sum
	// type.
	DirectiveContentAt
	// DirectiveDecodeOnlyPath sets the key path of a member used only for
	// decoding.
	DirectiveDecodeOnlyPath
	// DirectiveEncodeOnlyPath sets the key path of a member used only for
	// encoding.
	DirectiveEncodeOnlyPath
	// DirectiveCaseValue sets the tag values of a sum type case. The first
	// value is used for encoding.
	DirectiveCaseValue
	// DirectiveUntagged marks a sum type as untagged.
	DirectiveUntagged
	// DirectiveIgnoreInit excludes a member from the constructor.
	DirectiveIgnoreInit
	// DirectiveIgnoreEncodeIf skips encoding of a member when the
	// predicate returns true for its value.
	DirectiveIgnoreEncodeIf
	// DirectiveKeyStrategy sets the rule deriving keys from field names.
	DirectiveKeyStrategy
	// DirectiveIgnoreInitialized excludes members with an initializer
	// from coding.
	DirectiveIgnoreInitialized
)

var directiveNames = [...]string{
	DirectiveKeyPath:           "keyPath",
	DirectiveContainerPath:     "containerPath",
	DirectiveAlias:             "alias",
	DirectiveHelperCoder:       "helperCoder",
	DirectiveDefaultValue:      "default",
	DirectiveIgnoreDecode:      "ignoreDecode",
	DirectiveIgnoreEncode:      "ignoreEncode",
	DirectiveIgnoreBoth:        "ignoreCoding",
	DirectiveTagAt:             "tagAt",
	DirectiveContentAt:         "contentAt",
	DirectiveDecodeOnlyPath:    "decodeOnlyPath",
	DirectiveEncodeOnlyPath:    "encodeOnlyPath",
	DirectiveCaseValue:         "caseValue",
	DirectiveUntagged:          "untagged",
	DirectiveIgnoreInit:        "ignoreInit",
	DirectiveIgnoreEncodeIf:    "ignoreEncodeIf",
	DirectiveKeyStrategy:       "keyStrategy",
	DirectiveIgnoreInitialized: "ignoreInitialized",
}

// String implements the [fmt.Stringer] interface.
func (k DirectiveKind) String() string {
	if k <= 0 || int(k) >= len(directiveNames) {
		return ""
	}
	return directiveNames[k]
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (k DirectiveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (k *DirectiveKind) UnmarshalText(text []byte) error {
	for i, name := range directiveNames {
		if name != "" && name == string(text) {
			*k = DirectiveKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown directive %q", text)
}
