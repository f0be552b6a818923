package codegen

import (
	"strings"

	"go.pact.im/x/keyedgen/model"
)

// ctorData is the input of the constructor template.
type ctorData struct {
	Name       string
	TypeParams string
	Type       string
	Params     string
	Assigns    []ctorAssign
}

type ctorAssign struct {
	Field string
	Value string
}

// buildCtor returns the memberwise constructor of a struct declaration.
// Required fields become parameters in declaration order, preceded by the
// embedded base. Fields with a default value are assigned it and optional
// fields are left nil. Parameter names never shadow imported packages or
// packages referenced by default values.
func buildCtor(ctx *Context, decl model.Declaration, coders []fieldCoder, typeParams, typeArgs string, packages []string) *ctorData {
	used := map[string]struct{}{}
	for _, name := range packages {
		used[name] = struct{}{}
	}
	for _, name := range typeParamNames(typeArgs) {
		used[name] = struct{}{}
	}
	if b := decl.Base; b != nil {
		for _, name := range qualifiers(b.Type) {
			used[name] = struct{}{}
		}
	}
	for _, fc := range coders {
		names := qualifiers(fc.fieldType().String())
		if p := fc.param(); p.kind == paramDefault {
			names = append(names, qualifiers(p.value)...)
		}
		for _, name := range names {
			used[name] = struct{}{}
		}
	}

	c := &ctorData{
		Name:       funcName("New", decl.Name),
		TypeParams: typeParams,
		Type:       decl.Name + typeArgs,
	}
	var params []string
	addParam := func(field, typ string) {
		name := allocate(ctx, keyFromName(field, model.KeyStrategyCamelCase), "param", used)
		params = append(params, name+" "+typ)
		c.Assigns = append(c.Assigns, ctorAssign{Field: field, Value: name})
	}
	if b := decl.Base; b != nil {
		addParam(b.FieldName(), b.Type)
	}
	for _, fc := range coders {
		switch p := fc.param(); p.kind {
		case paramRequired:
			addParam(fc.fieldName(), fc.fieldType().String())
		case paramDefault:
			if p.value != "nil" {
				c.Assigns = append(c.Assigns, ctorAssign{Field: fc.fieldName(), Value: p.value})
			}
		}
	}
	c.Params = strings.Join(params, ", ")
	return c
}

// typeParamNames returns the names listed in type arguments, e.g. "K" and
// "V" for "[K, V]".
func typeParamNames(typeArgs string) []string {
	s := strings.TrimSuffix(strings.TrimPrefix(typeArgs, "["), "]")
	if s == "" {
		return nil
	}
	names := strings.Split(s, ",")
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return names
}
