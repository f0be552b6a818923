package keyed

import (
	"fmt"
	"strings"
)

// KeyNotFoundError is returned when a required key is absent from a
// container.
type KeyNotFoundError struct {
	// Path is the coding path of the container.
	Path []string
	// Key is the missing key.
	Key string
}

// Error implements the error interface.
func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("keyed: key %q not found at %s", e.Key, formatPath(e.Path))
}

// TypeMismatchError is returned when a value cannot be decoded as the
// requested type, or when no case of a sum type matches the input.
type TypeMismatchError struct {
	// Path is the coding path of the value.
	Path []string
	// Type is the name of the requested type.
	Type string
	// Msg is an optional description.
	Msg string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	var b strings.Builder
	b.WriteString("keyed: cannot decode ")
	b.WriteString(e.Type)
	b.WriteString(" at ")
	b.WriteString(formatPath(e.Path))
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

// AmbiguousKeyError is returned when a value may be supplied by one of
// several aliased keys and the container holds either none or more than one
// of them.
type AmbiguousKeyError struct {
	// Path is the coding path of the container.
	Path []string
	// Keys is the list of candidate keys.
	Keys []string
	// Present is the subset of Keys found in the container.
	Present []string
}

// Error implements the error interface.
func (e *AmbiguousKeyError) Error() string {
	if len(e.Present) == 0 {
		return fmt.Sprintf("keyed: none of keys %q found at %s", e.Keys, formatPath(e.Path))
	}
	return fmt.Sprintf("keyed: expected exactly one of keys %q at %s, found %q",
		e.Keys, formatPath(e.Path), e.Present,
	)
}

// WrongKeyCountError is returned when an externally tagged container does
// not hold exactly one key.
type WrongKeyCountError struct {
	// Path is the coding path of the container.
	Path []string
	// Keys is the list of keys found in the container.
	Keys []string
}

// Error implements the error interface.
func (e *WrongKeyCountError) Error() string {
	return fmt.Sprintf("keyed: expected exactly one key at %s, found %d",
		formatPath(e.Path), len(e.Keys),
	)
}

// IsKeyNotFound reports whether err signals an absent key: either a
// [*KeyNotFoundError] or an [*AmbiguousKeyError] without any present
// candidate. Only err itself is inspected, so that an absent key deep
// inside a present value is not mistaken for the absence of the value.
func IsKeyNotFound(err error) bool {
	switch e := err.(type) {
	case *KeyNotFoundError:
		return true
	case *AmbiguousKeyError:
		return len(e.Present) == 0
	}
	return false
}

// NoMatchingCase returns the error reported when no case of the sum type
// typeName could be decoded from d.
func NoMatchingCase(d *Decoder, typeName string) error {
	return &TypeMismatchError{
		Path: d.Path(),
		Type: typeName,
		Msg:  "no matching case",
	}
}

// NoMatchingTag returns the error reported when the discriminator at key
// does not match any case of the sum type typeName.
func NoMatchingTag(d *Decoder, key, typeName string) error {
	return &TypeMismatchError{
		Path: appendPath(d.Path(), key),
		Type: typeName,
		Msg:  "no case matches the tag",
	}
}

// UnknownCase returns the error reported when a value that is not one of
// the cases of the sum type typeName is encoded.
func UnknownCase(e *Encoder, typeName string, v any) error {
	return &TypeMismatchError{
		Path: e.Path(),
		Type: typeName,
		Msg:  fmt.Sprintf("unexpected case %T", v),
	}
}

func formatPath(path []string) string {
	if len(path) == 0 {
		return "$"
	}
	return "$." + strings.Join(path, ".")
}

func appendPath(path []string, key string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, key)
}
