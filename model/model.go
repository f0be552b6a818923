// Package model defines the declaration model consumed by the code
// generator: declarations with their members, sum type cases and parsed
// directives.
package model

import (
	"strings"
)

// Declaration is a type declaration annotated for code generation.
type Declaration struct {
	// Name is the Go type name.
	Name string `json:"name" yaml:"name"`
	// Kind is the kind of declaration.
	Kind Kind `json:"kind" yaml:"kind"`
	// TypeParams is an optional Go type parameter list, e.g. "[T any]".
	TypeParams string `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`
	// Base is the embedded base type that may already implement coding.
	Base *Base `json:"base,omitempty" yaml:"base,omitempty"`
	// Fields is the ordered list of members of a struct declaration.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Cases is the ordered list of cases of a sum declaration.
	Cases []Case `json:"cases,omitempty" yaml:"cases,omitempty"`
	// Directives is the list of directives attached to the declaration.
	Directives []Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
	// Nested is the list of declarations nested in this one.
	Nested []Declaration `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// Base describes an embedded base struct.
type Base struct {
	// Type is the Go type of the embedded field.
	Type string `json:"type" yaml:"type"`
	// Decodable reports whether the base implements keyed.Decodable.
	Decodable bool `json:"decodable" yaml:"decodable"`
	// Encodable reports whether the base implements keyed.Encodable.
	Encodable bool `json:"encodable" yaml:"encodable"`
}

// FieldName returns the name of the embedded field, that is the type name
// without package qualifier, pointer or type arguments.
func (b *Base) FieldName() string {
	name := strings.TrimPrefix(b.Type, "*")
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Field is a member of a struct declaration or a case.
type Field struct {
	// Name is the Go field name.
	Name string `json:"name" yaml:"name"`
	// Type is the Go type of the field.
	Type TypeRef `json:"type" yaml:"type"`
	// Default is the initializer expression, if the member has one.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	// Immutable marks members that cannot be assigned after
	// initialization.
	Immutable bool `json:"immutable,omitempty" yaml:"immutable,omitempty"`
	// Accessor tells whether the member is stored or computed.
	Accessor Accessor `json:"accessor,omitempty" yaml:"accessor,omitempty"`
	// Static marks members that belong to the type rather than values.
	Static bool `json:"static,omitempty" yaml:"static,omitempty"`
	// Grouped marks members declared together with others in a single
	// declaration, e.g. "X, Y int".
	Grouped bool `json:"grouped,omitempty" yaml:"grouped,omitempty"`
	// Directives is the list of directives attached to the member.
	Directives []Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// Case is a case of a sum declaration.
type Case struct {
	// Name is the case name. It is the default tag.
	Name string `json:"name" yaml:"name"`
	// Type is the Go type implementing the sum type interface.
	Type string `json:"type" yaml:"type"`
	// Fields is the list of members of the case type that are coded. If it
	// is empty, the case type is coded as a whole.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	// Directives is the list of directives attached to the case.
	Directives []Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
}

// Find returns the first directive of the given kind.
func Find(ds []Directive, kind DirectiveKind) (Directive, bool) {
	for _, d := range ds {
		if d.Kind == kind {
			return d, true
		}
	}
	return Directive{}, false
}

// Has reports whether ds contains a directive of the given kind.
func Has(ds []Directive, kind DirectiveKind) bool {
	_, ok := Find(ds, kind)
	return ok
}
