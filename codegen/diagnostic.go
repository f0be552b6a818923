package codegen

import (
	"fmt"

	"go.uber.org/multierr"
)

// Severity is the severity of a diagnostic.
type Severity int

const (
	// SeverityWarning does not prevent code generation.
	SeverityWarning Severity = iota
	// SeverityError disqualifies the declaration from code generation.
	SeverityError
)

// String implements the [fmt.Stringer] interface.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return ""
}

// DiagnosticKind is an enumeration of validation failures.
type DiagnosticKind int

const (
	// MisuseOnWrongDeclarationKind is reported for a directive attached to
	// a declaration or member it cannot apply to.
	MisuseOnWrongDeclarationKind DiagnosticKind = iota
	// MisuseOnGroupedOrStaticMember is reported for a directive attached to
	// a grouped or static member.
	MisuseOnGroupedOrStaticMember
	// MisuseOnUninitializedImmutableMember is reported for a directive that
	// requires an initial value on an immutable member that has none.
	MisuseOnUninitializedImmutableMember
	// DuplicateDirective is reported when a directive is attached more
	// than once.
	DuplicateDirective
	// InvalidCombination is reported for mutually exclusive directives.
	InvalidCombination
	// MissingRequiredCombination is reported when a directive requires
	// another directive or argument that is absent.
	MissingRequiredCombination
	// UnreachableCase is reported when a case tag is already claimed by an
	// earlier case.
	UnreachableCase
	// InvalidTypeSyntax is reported when a Go type or type parameter list
	// referenced by a declaration does not parse.
	InvalidTypeSyntax
)

// String implements the [fmt.Stringer] interface.
func (k DiagnosticKind) String() string {
	switch k {
	case MisuseOnWrongDeclarationKind:
		return "misuse-on-wrong-declaration-kind"
	case MisuseOnGroupedOrStaticMember:
		return "misuse-on-grouped-or-static-member"
	case MisuseOnUninitializedImmutableMember:
		return "misuse-on-uninitialized-immutable-member"
	case DuplicateDirective:
		return "duplicate-directive"
	case InvalidCombination:
		return "invalid-combination"
	case MissingRequiredCombination:
		return "missing-required-combination"
	case UnreachableCase:
		return "unreachable-case"
	case InvalidTypeSyntax:
		return "invalid-type-syntax"
	}
	return ""
}

// Diagnostic is a validation failure reported during code generation.
type Diagnostic struct {
	// Severity is the severity of the diagnostic.
	Severity Severity
	// Kind is the kind of failure.
	Kind DiagnosticKind
	// Location is the dotted path of the offending declaration, member or
	// case, e.g. "Post.Title".
	Location string
	// Message describes the failure.
	Message string
	// Fix is an optional suggested fix.
	Fix string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Location, d.Severity, d.Message, d.Kind)
}

//go:generate mockgen -source=diagnostic.go -destination=mock_sink_test.go -package=codegen

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// Diagnostics is a list of diagnostics. It implements [Sink].
type Diagnostics []Diagnostic

// Report implements the [Sink] interface.
func (ds *Diagnostics) Report(d Diagnostic) {
	*ds = append(*ds, d)
}

// Err returns an error combining all error diagnostics, or nil if there
// are none.
func (ds Diagnostics) Err() error {
	var err error
	for _, d := range ds {
		if d.Severity == SeverityError {
			err = multierr.Append(err, d)
		}
	}
	return err
}
