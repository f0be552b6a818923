// Package codegen implements code generator for keyed encoding and decoding
// of Go types represented in JSON.
//
// Declarations describe struct types (product types) and interface types
// with a closed set of cases (sum types). Directives attached to
// declarations, fields and cases customize key paths, defaults, helper
// coders and sum type tagging. The generated code calls into the keyed
// package.
package codegen

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"go.pact.im/x/keyedgen/model"
)

// Config defines a configuration for code generation.
type Config struct {
	// Header contains settings for the file header.
	Header Header `json:"header" yaml:"header"`
	// Declarations is the list of declarations to generate code for.
	Declarations []model.Declaration `json:"declarations" yaml:"declarations"`
}

// Options are options for code generation.
type Options struct {
	// Logger is the logger for expansion events and diagnostics. Defaults
	// to no-op logger.
	Logger *zap.Logger
	// Sink receives diagnostics in declaration order. It may be nil.
	Sink Sink
}

// setDefaults sets default values for unspecified options.
func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// fileData is the input of the main template.
type fileData struct {
	Header    *Header
	Fragments []string
}

// expansion is the result of expanding a single declaration.
type expansion struct {
	source      string
	diagnostics Diagnostics
}

// Generate expands declarations of the configuration and writes formatted Go
// source to w.
//
// A declaration with error diagnostics is omitted from the output while the
// rest of the file is still generated. In that case the returned error
// combines all error diagnostics.
func Generate(w io.Writer, c Config, opts Options) error {
	opts.setDefaults()
	t := Template()

	decls := flatten(c.Declarations)
	results := make([]expansion, len(decls))
	packages := c.Header.PackageNames()

	var g errgroup.Group
	for i, decl := range decls {
		g.Go(func() error {
			ctx := NewContext(decl.Name, opts.Logger)
			source, err := expand(t, ctx, decl, packages)
			if err != nil {
				return fmt.Errorf("expand %s: %w", decl.Name, err)
			}
			results[i] = expansion{
				source:      source,
				diagnostics: ctx.Diagnostics(),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var diagnostics Diagnostics
	fragments := make([]string, 0, len(results))
	for _, r := range results {
		for _, d := range r.diagnostics {
			diagnostics.Report(d)
			if opts.Sink != nil {
				opts.Sink.Report(d)
			}
		}
		if r.source != "" {
			fragments = append(fragments, r.source)
		}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, &fileData{Header: &c.Header, Fragments: fragments}); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}
	source, err := imports.Process("", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return fmt.Errorf("format generated source: %w", err)
	}
	if _, err := w.Write(source); err != nil {
		return err
	}
	return diagnostics.Err()
}

// flatten returns declarations with nested declarations following their
// parent.
func flatten(decls []model.Declaration) []model.Declaration {
	var out []model.Declaration
	for _, d := range decls {
		out = append(out, d)
		out = append(out, flatten(d.Nested)...)
	}
	return out
}

// expand renders the fragment of a single declaration. It returns an empty
// fragment if validation reports errors. Names of imported packages are
// never used for generated identifiers.
func expand(t *template.Template, ctx *Context, decl model.Declaration, packages []string) (string, error) {
	var typeParams GoTypeParamList
	err := checkTypes(decl)
	if err == nil {
		err = typeParams.UnmarshalText([]byte(decl.TypeParams))
	}
	var typeArgs string
	if err == nil {
		typeArgs, err = typeParams.Args()
	}
	if err != nil {
		ctx.errorf(decl.Name, InvalidTypeSyntax, "use a valid Go type expression", "%v", err)
		return "", nil
	}

	ctx.log.Debug("expanding declaration", zap.Stringer("kind", decl.Kind))
	validate(ctx, decl)
	if ctx.Failed() {
		return "", nil
	}

	var name string
	var data any
	switch decl.Kind {
	case model.KindSum:
		name, data = "sum.go.tmpl", expandSum(ctx, decl, string(typeParams), typeArgs)
	default:
		name, data = "struct.go.tmpl", expandProduct(ctx, decl, string(typeParams), typeArgs, packages)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

// checkTypes validates syntax of Go types referenced by the declaration.
func checkTypes(decl model.Declaration) error {
	types := []string{}
	if decl.Base != nil {
		types = append(types, decl.Base.Type)
	}
	for _, f := range decl.Fields {
		types = append(types, f.Type.String())
	}
	for _, c := range decl.Cases {
		types = append(types, c.Type)
		for _, f := range c.Fields {
			types = append(types, f.Type.String())
		}
	}
	for _, typ := range types {
		var g GoType
		if err := g.UnmarshalText([]byte(typ)); err != nil {
			return err
		}
	}
	return nil
}
