package model

import (
	"encoding"
	"fmt"
	"strings"
)

var (
	_ interface {
		fmt.Stringer
		encoding.TextMarshaler
		encoding.TextUnmarshaler
	} = (*Kind)(nil)
	_ interface {
		fmt.Stringer
		encoding.TextMarshaler
		encoding.TextUnmarshaler
	} = (*Accessor)(nil)
	_ interface {
		fmt.Stringer
		encoding.TextMarshaler
		encoding.TextUnmarshaler
	} = (*KeyStrategy)(nil)
	_ encoding.TextUnmarshaler = (*TypeRef)(nil)
)

// Kind is an enumeration of declaration kinds.
type Kind int

const (
	// KindStruct is a product type: a struct whose fields are coded as
	// members of an object.
	KindStruct Kind = iota

	// KindSum is a sum type: an interface implemented by a closed set of
	// case types.
	KindSum
)

// String implements the [fmt.Stringer] interface.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindSum:
		return "sum"
	}
	return ""
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "struct":
		*k = KindStruct
	case "sum":
		*k = KindSum
	default:
		return fmt.Errorf("unknown declaration kind %q", text)
	}
	return nil
}

// Accessor is an enumeration of member storage kinds.
type Accessor int

const (
	// AccessorStored is a member with storage.
	AccessorStored Accessor = iota
	// AccessorComputed is a member without storage, computed from others.
	AccessorComputed
	// AccessorBoth is a stored member with custom accessors.
	AccessorBoth
)

// String implements the [fmt.Stringer] interface.
func (a Accessor) String() string {
	switch a {
	case AccessorStored:
		return "stored"
	case AccessorComputed:
		return "computed"
	case AccessorBoth:
		return "both"
	}
	return ""
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (a Accessor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (a *Accessor) UnmarshalText(text []byte) error {
	switch string(text) {
	case "stored", "":
		*a = AccessorStored
	case "computed":
		*a = AccessorComputed
	case "both":
		*a = AccessorBoth
	default:
		return fmt.Errorf("unknown accessor %q", text)
	}
	return nil
}

// KeyStrategy is an enumeration of rules that derive keys from field names.
type KeyStrategy int

const (
	// KeyStrategyCamelCase lower-cases the leading word, e.g. "userID" for
	// UserID. It is the default.
	KeyStrategyCamelCase KeyStrategy = iota
	// KeyStrategyPascalCase uses the field name as is.
	KeyStrategyPascalCase
	// KeyStrategySnakeCase joins lower-cased words with underscores.
	KeyStrategySnakeCase
	// KeyStrategyKebabCase joins lower-cased words with dashes.
	KeyStrategyKebabCase
	// KeyStrategyScreamingSnakeCase joins upper-cased words with
	// underscores.
	KeyStrategyScreamingSnakeCase
)

// String implements the [fmt.Stringer] interface.
func (s KeyStrategy) String() string {
	switch s {
	case KeyStrategyCamelCase:
		return "camelCase"
	case KeyStrategyPascalCase:
		return "PascalCase"
	case KeyStrategySnakeCase:
		return "snake_case"
	case KeyStrategyKebabCase:
		return "kebab-case"
	case KeyStrategyScreamingSnakeCase:
		return "SCREAMING_SNAKE_CASE"
	}
	return ""
}

// MarshalText implements the [encoding.TextMarshaler] interface.
func (s KeyStrategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (s *KeyStrategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "camelCase", "":
		*s = KeyStrategyCamelCase
	case "PascalCase":
		*s = KeyStrategyPascalCase
	case "snake_case":
		*s = KeyStrategySnakeCase
	case "kebab-case":
		*s = KeyStrategyKebabCase
	case "SCREAMING_SNAKE_CASE":
		*s = KeyStrategyScreamingSnakeCase
	default:
		return fmt.Errorf("unknown key strategy %q", text)
	}
	return nil
}

// TypeRef is a Go type expression. Pointer types are optional: their
// absence in the input decodes to nil.
type TypeRef string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (t *TypeRef) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		return fmt.Errorf("empty type")
	}
	*t = TypeRef(s)
	return nil
}

// Optional reports whether the type is a pointer type.
func (t TypeRef) Optional() bool {
	return strings.HasPrefix(string(t), "*")
}

// Elem returns the pointer element type for optional types and the type
// itself otherwise.
func (t TypeRef) Elem() string {
	return strings.TrimPrefix(string(t), "*")
}

// String returns the type expression.
func (t TypeRef) String() string {
	return string(t)
}
