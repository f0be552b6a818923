package codegen

import (
	"encoding"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
)

var (
	_ encoding.TextUnmarshaler = (*GoIdentifier)(nil)
	_ encoding.TextUnmarshaler = (*GoType)(nil)
	_ encoding.TextUnmarshaler = (*GoTypeParamList)(nil)
)

// GoIdentifier validates Go syntax for identifier.
//
// See https://go.dev/ref/spec#identifier
type GoIdentifier string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (g *GoIdentifier) UnmarshalText(text []byte) error {
	if !token.IsIdentifier(string(text)) {
		return fmt.Errorf("invalid identifier %q", text)
	}
	*g = GoIdentifier(text)
	return nil
}

// GoType validates Go syntax for Type.
//
// See https://go.dev/ref/spec#Type
type GoType string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (g *GoType) UnmarshalText(text []byte) error {
	if _, err := parser.ParseExpr(string(text)); err != nil {
		return fmt.Errorf("invalid type %q: %w", text, err)
	}
	*g = GoType(text)
	return nil
}

// GoTypeParamList validates Go syntax for TypeParamList.
//
// See https://go.dev/ref/spec#TypeParamList
type GoTypeParamList string

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (g *GoTypeParamList) UnmarshalText(text []byte) error {
	if _, err := GoTypeParamList(text).names(); err != nil {
		return err
	}
	*g = GoTypeParamList(text)
	return nil
}

// Args returns type arguments naming the parameters in order, e.g. "[K, V]"
// for "[K comparable, V any]". It returns an empty string for an empty
// list.
func (g GoTypeParamList) Args() (string, error) {
	names, err := g.names()
	if err != nil || len(names) == 0 {
		return "", err
	}
	return "[" + strings.Join(names, ", ") + "]", nil
}

func (g GoTypeParamList) names() ([]string, error) {
	if strings.TrimSpace(string(g)) == "" {
		return nil, nil
	}
	src := "package p\ntype _" + string(g) + " struct{}\n"
	f, err := parser.ParseFile(token.NewFileSet(), "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("invalid type parameter list %q: %w", string(g), err)
	}
	spec := f.Decls[0].(*ast.GenDecl).Specs[0].(*ast.TypeSpec)
	if spec.TypeParams == nil {
		return nil, fmt.Errorf("invalid type parameter list %q", string(g))
	}
	var names []string
	for _, field := range spec.TypeParams.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}
	return names, nil
}

// qualifiers returns package names referenced by qualified identifiers in
// the Go expression, e.g. "time" for "time.Unix(0, 0)". It returns nil if
// the expression does not parse.
func qualifiers(expr string) []string {
	e, err := parser.ParseExpr(expr)
	if err != nil {
		return nil
	}
	var names []string
	ast.Inspect(e, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				names = append(names, id.Name)
			}
		}
		return true
	})
	return names
}
