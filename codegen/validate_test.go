package codegen

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
	"gotest.tools/v3/assert"

	"go.pact.im/x/keyedgen/model"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		decl     model.Declaration
		expected []DiagnosticKind
	}{{
		name: "Valid",
		decl: model.Declaration{
			Name: "T",
			Fields: []model.Field{
				{Name: "A", Type: "int", Directives: []model.Directive{keyPath("meta", "a"), defaultValue("1", "")}},
				{Name: "B", Type: "string", Default: `"b"`, Immutable: true},
			},
		},
	}, {
		name: "TagAtOnStruct",
		decl: model.Declaration{
			Name:       "T",
			Directives: []model.Directive{tagAt("", "type")},
		},
		expected: []DiagnosticKind{MisuseOnWrongDeclarationKind},
	}, {
		name: "StaticMember",
		decl: model.Declaration{
			Name: "T",
			Fields: []model.Field{
				{Name: "A", Type: "int", Static: true, Directives: []model.Directive{keyPath("a")}},
			},
		},
		expected: []DiagnosticKind{MisuseOnGroupedOrStaticMember},
	}, {
		name: "DuplicateDirective",
		decl: model.Declaration{
			Name: "T",
			Fields: []model.Field{
				{Name: "A", Type: "int", Directives: []model.Directive{
					{Kind: model.DirectiveAlias, Values: []model.Literal{model.String("x")}},
					{Kind: model.DirectiveAlias, Values: []model.Literal{model.String("y")}},
				}},
			},
		},
		expected: []DiagnosticKind{DuplicateDirective},
	}, {
		name: "KeyPathWithContainerPath",
		decl: model.Declaration{
			Name: "T",
			Fields: []model.Field{
				{Name: "A", Type: "int", Directives: []model.Directive{
					keyPath("a"),
					{Kind: model.DirectiveContainerPath, Path: []string{"meta"}},
				}},
			},
		},
		expected: []DiagnosticKind{InvalidCombination},
	}, {
		name: "UninitializedImmutable",
		decl: model.Declaration{
			Name: "T",
			Fields: []model.Field{
				{Name: "ID", Type: "string", Immutable: true, Directives: []model.Directive{
					{Kind: model.DirectiveIgnoreDecode},
				}},
			},
		},
		expected: []DiagnosticKind{MisuseOnUninitializedImmutableMember},
	}, {
		name: "UntaggedWithTagAt",
		decl: model.Declaration{
			Name: "S",
			Kind: model.KindSum,
			Directives: []model.Directive{
				{Kind: model.DirectiveUntagged},
				tagAt("", "type"),
			},
			Cases: []model.Case{{Name: "A", Type: "A"}},
		},
		expected: []DiagnosticKind{InvalidCombination},
	}, {
		name: "ContentAtWithoutTagAt",
		decl: model.Declaration{
			Name: "S",
			Kind: model.KindSum,
			Directives: []model.Directive{
				{Kind: model.DirectiveContentAt, Path: []string{"content"}},
			},
			Cases: []model.Case{{Name: "A", Type: "A"}},
		},
		expected: []DiagnosticKind{MissingRequiredCombination},
	}, {
		name: "ExternalNonStringTag",
		decl: model.Declaration{
			Name:  "S",
			Kind:  model.KindSum,
			Cases: []model.Case{{Name: "A", Type: "A", Directives: []model.Directive{caseValue(model.Int(1))}}},
		},
		expected: []DiagnosticKind{MissingRequiredCombination},
	}, {
		name: "IncompatibleValueType",
		decl: model.Declaration{
			Name:       "S",
			Kind:       model.KindSum,
			Directives: []model.Directive{tagAt("int", "type")},
			Cases:      []model.Case{{Name: "A", Type: "A", Directives: []model.Directive{caseValue(model.String("a"))}}},
		},
		expected: []DiagnosticKind{InvalidCombination},
	}, {
		name: "RangeOnly",
		decl: model.Declaration{
			Name:       "S",
			Kind:       model.KindSum,
			Directives: []model.Directive{tagAt("", "type")},
			Cases: []model.Case{{Name: "A", Type: "A", Directives: []model.Directive{
				caseValue(model.Range(intPtr(1), nil, false)),
			}}},
		},
		expected: []DiagnosticKind{MissingRequiredCombination},
	}, {
		name: "DuplicateCaseType",
		decl: model.Declaration{
			Name: "S",
			Kind: model.KindSum,
			Cases: []model.Case{
				{Name: "A", Type: "A"},
				{Name: "B", Type: "A"},
			},
		},
		expected: []DiagnosticKind{InvalidCombination},
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := NewContext(tc.decl.Name, zaptest.NewLogger(t))
			validate(ctx, tc.decl)

			var kinds []DiagnosticKind
			for _, d := range ctx.Diagnostics() {
				assert.Equal(t, d.Severity, SeverityError, d.Error())
				kinds = append(kinds, d.Kind)
			}
			assert.DeepEqual(t, kinds, tc.expected)
			assert.Equal(t, ctx.Failed(), len(tc.expected) > 0)
		})
	}
}

func TestValidateIgnoredDirectiveWarning(t *testing.T) {
	ctx := NewContext("T", zaptest.NewLogger(t))
	validate(ctx, model.Declaration{
		Name: "T",
		Fields: []model.Field{
			{Name: "A", Type: "int", Default: "1", Immutable: true, Directives: []model.Directive{
				defaultValue("2", ""),
			}},
		},
	})
	ds := ctx.Diagnostics()
	assert.Equal(t, len(ds), 1)
	assert.Equal(t, ds[0].Severity, SeverityWarning)
	assert.Equal(t, ds[0].Kind, InvalidCombination)
	assert.Equal(t, ds[0].Location, "T.A")
	assert.Assert(t, !ctx.Failed())
	assert.NilError(t, ctx.Diagnostics().Err())
}

func TestDiagnosticError(t *testing.T) {
	d := Diagnostic{
		Severity: SeverityError,
		Kind:     DuplicateDirective,
		Location: "Post.Title",
		Message:  "directive alias is attached more than once",
	}
	assert.Error(t, d, "Post.Title: error: directive alias is attached more than once [duplicate-directive]")

	ds := Diagnostics{d, {Severity: SeverityWarning, Kind: UnreachableCase}}
	assert.ErrorContains(t, ds.Err(), "duplicate-directive")
	assert.Assert(t, !strings.Contains(ds.Err().Error(), "unreachable-case"))
}
