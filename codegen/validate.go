package codegen

import (
	"go.pact.im/x/keyedgen/model"
)

// Directive kinds allowed on each kind of declaration element.
var (
	structDirectives = directiveSet(
		model.DirectiveKeyStrategy,
		model.DirectiveIgnoreInitialized,
	)
	sumDirectives = directiveSet(
		model.DirectiveTagAt,
		model.DirectiveContentAt,
		model.DirectiveUntagged,
		model.DirectiveKeyStrategy,
		model.DirectiveIgnoreInitialized,
	)
	caseDirectives = directiveSet(
		model.DirectiveCaseValue,
		model.DirectiveIgnoreDecode,
		model.DirectiveIgnoreEncode,
		model.DirectiveIgnoreBoth,
	)
	fieldDirectives = directiveSet(
		model.DirectiveKeyPath,
		model.DirectiveContainerPath,
		model.DirectiveAlias,
		model.DirectiveHelperCoder,
		model.DirectiveDefaultValue,
		model.DirectiveIgnoreDecode,
		model.DirectiveIgnoreEncode,
		model.DirectiveIgnoreBoth,
		model.DirectiveDecodeOnlyPath,
		model.DirectiveEncodeOnlyPath,
		model.DirectiveIgnoreInit,
		model.DirectiveIgnoreEncodeIf,
	)
)

func directiveSet(kinds ...model.DirectiveKind) map[model.DirectiveKind]struct{} {
	m := make(map[model.DirectiveKind]struct{}, len(kinds))
	for _, k := range kinds {
		m[k] = struct{}{}
	}
	return m
}

// exclusive lists pairs of directives that cannot be combined on a field.
var exclusive = [][2]model.DirectiveKind{
	{model.DirectiveKeyPath, model.DirectiveContainerPath},
	{model.DirectiveIgnoreBoth, model.DirectiveKeyPath},
	{model.DirectiveIgnoreBoth, model.DirectiveContainerPath},
	{model.DirectiveIgnoreBoth, model.DirectiveAlias},
	{model.DirectiveIgnoreBoth, model.DirectiveHelperCoder},
	{model.DirectiveIgnoreBoth, model.DirectiveDefaultValue},
	{model.DirectiveIgnoreBoth, model.DirectiveDecodeOnlyPath},
	{model.DirectiveIgnoreBoth, model.DirectiveEncodeOnlyPath},
	{model.DirectiveIgnoreBoth, model.DirectiveIgnoreEncodeIf},
	{model.DirectiveIgnoreBoth, model.DirectiveIgnoreDecode},
	{model.DirectiveIgnoreBoth, model.DirectiveIgnoreEncode},
	{model.DirectiveIgnoreDecode, model.DirectiveIgnoreEncode},
	{model.DirectiveIgnoreDecode, model.DirectiveAlias},
	{model.DirectiveIgnoreDecode, model.DirectiveDefaultValue},
	{model.DirectiveIgnoreDecode, model.DirectiveDecodeOnlyPath},
	{model.DirectiveIgnoreEncode, model.DirectiveEncodeOnlyPath},
	{model.DirectiveIgnoreEncode, model.DirectiveIgnoreEncodeIf},
}

// validate reports diagnostics for misused directives of the declaration.
func validate(ctx *Context, decl model.Declaration) {
	allowed := structDirectives
	if decl.Kind == model.KindSum {
		allowed = sumDirectives
	}
	checkDirectives(ctx, decl.Name, decl.Directives, allowed)

	switch decl.Kind {
	case model.KindSum:
		validateSum(ctx, decl)
	default:
		if len(decl.Cases) > 0 {
			ctx.errorf(decl.Name, MisuseOnWrongDeclarationKind, "declare the type as a sum type",
				"struct declaration cannot have cases")
		}
	}
	o := declFieldOptions(decl.Directives)
	for _, f := range decl.Fields {
		validateField(ctx, decl.Name+"."+f.Name, f, o)
	}
}

// checkDirectives reports directives not in the allowed set and directives
// attached more than once.
func checkDirectives(ctx *Context, loc string, ds []model.Directive, allowed map[model.DirectiveKind]struct{}) {
	seen := make(map[model.DirectiveKind]struct{}, len(ds))
	for _, d := range ds {
		if _, ok := allowed[d.Kind]; !ok {
			ctx.errorf(loc, MisuseOnWrongDeclarationKind, "remove the directive",
				"directive %s cannot be attached here", d.Kind)
		}
		if _, ok := seen[d.Kind]; ok {
			ctx.errorf(loc, DuplicateDirective, "remove the duplicate directive",
				"directive %s is attached more than once", d.Kind)
		}
		seen[d.Kind] = struct{}{}
	}
}

func validateSum(ctx *Context, decl model.Declaration) {
	ds := decl.Directives
	tagAt, hasTag := model.Find(ds, model.DirectiveTagAt)
	untagged := model.Has(ds, model.DirectiveUntagged)
	switch {
	case untagged && (hasTag || model.Has(ds, model.DirectiveContentAt)):
		ctx.errorf(decl.Name, InvalidCombination, "remove tagAt and contentAt",
			"untagged sum type cannot have tag or content paths")
	case model.Has(ds, model.DirectiveContentAt) && !hasTag:
		ctx.errorf(decl.Name, MissingRequiredCombination, "add tagAt",
			"contentAt requires tagAt")
	}
	if hasTag && len(tagAt.Path) == 0 {
		ctx.errorf(decl.Name, MissingRequiredCombination, "set the tag path",
			"tagAt requires a non-empty path")
	}
	if d, ok := model.Find(ds, model.DirectiveContentAt); ok && len(d.Path) == 0 {
		ctx.errorf(decl.Name, MissingRequiredCombination, "set the content path",
			"contentAt requires a non-empty path")
	}
	if decl.Base != nil {
		ctx.errorf(decl.Name, MisuseOnWrongDeclarationKind, "remove the base",
			"sum type cannot embed a base")
	}
	if len(decl.Fields) > 0 {
		ctx.errorf(decl.Name, MisuseOnWrongDeclarationKind, "move fields to cases",
			"sum type cannot have fields")
	}

	types := make(map[string]string, len(decl.Cases))
	o := declFieldOptions(ds)
	for _, c := range decl.Cases {
		loc := decl.Name + "." + c.Name
		checkDirectives(ctx, loc, c.Directives, caseDirectives)
		if other, ok := types[c.Type]; ok {
			ctx.errorf(loc, InvalidCombination, "use distinct case types",
				"case type %s is already used by case %s", c.Type, other)
		}
		types[c.Type] = c.Name
		validateCaseValue(ctx, loc, c, hasTag, untagged, tagAt.ValueType)
		for _, f := range c.Fields {
			validateField(ctx, loc+"."+f.Name, f, o)
		}
	}
}

func validateCaseValue(ctx *Context, loc string, c model.Case, tagged, untagged bool, valueType string) {
	d, ok := model.Find(c.Directives, model.DirectiveCaseValue)
	if !ok {
		if valueType != "" && bucketOf(valueType) != model.LiteralString && bucketOf(valueType) >= 0 {
			ctx.errorf(loc, MissingRequiredCombination, "add caseValue",
				"case of a sum type tagged with %s values requires caseValue", valueType)
		}
		return
	}
	if untagged {
		ctx.errorf(loc, InvalidCombination, "remove caseValue",
			"caseValue has no effect on untagged sum types")
		return
	}
	if len(d.Values) == 0 {
		ctx.errorf(loc, MissingRequiredCombination, "list tag values",
			"caseValue requires at least one value")
		return
	}
	encodable := false
	for _, v := range d.Values {
		if v.Kind != model.LiteralRange {
			encodable = true
		}
		if !tagged && v.Kind != model.LiteralString {
			ctx.errorf(loc, MissingRequiredCombination, "add tagAt or use string values",
				"tag %s requires tagAt since external tags are keys", v)
		}
		if valueType != "" && !compatible(valueType, v) {
			ctx.errorf(loc, InvalidCombination, "use values of the tag type",
				"tag %s cannot be decoded as %s", v, valueType)
		}
	}
	if !encodable {
		ctx.errorf(loc, MissingRequiredCombination, "add a non-range value",
			"caseValue requires a non-range value to encode the case")
	}
}

// bucketOf returns the literal kind decoded by a Go tag type, or -1 for
// types other than predeclared scalars.
func bucketOf(goType string) model.LiteralKind {
	switch goType {
	case "bool":
		return model.LiteralBool
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
		return model.LiteralInt
	case "float32", "float64":
		return model.LiteralFloat
	case "string":
		return model.LiteralString
	}
	return -1
}

// compatible reports whether the literal is a constant of the Go tag type.
func compatible(goType string, v model.Literal) bool {
	switch want, got := bucketOf(goType), v.Bucket(); want {
	case -1:
		return true
	case model.LiteralFloat:
		return got == model.LiteralFloat || got == model.LiteralInt
	default:
		return got == want
	}
}

func validateField(ctx *Context, loc string, f model.Field, o fieldOptions) {
	ds := f.Directives
	if len(ds) == 0 {
		return
	}
	if f.Static || f.Grouped {
		ctx.errorf(loc, MisuseOnGroupedOrStaticMember, "declare the member separately",
			"directives cannot be attached to grouped or static members")
		return
	}
	if f.Accessor == model.AccessorComputed {
		ctx.errorf(loc, MisuseOnWrongDeclarationKind, "remove directives",
			"computed members are never coded")
		return
	}
	checkDirectives(ctx, loc, ds, fieldDirectives)

	for _, pair := range exclusive {
		if model.Has(ds, pair[0]) && model.Has(ds, pair[1]) {
			ctx.errorf(loc, InvalidCombination, "remove one of the directives",
				"%s cannot be combined with %s", pair[0], pair[1])
		}
	}

	ignoresDecode := model.Has(ds, model.DirectiveIgnoreBoth) || model.Has(ds, model.DirectiveIgnoreDecode)
	if ignoresDecode && f.Immutable && f.Default == "" && !f.Type.Optional() {
		ctx.errorf(loc, MisuseOnUninitializedImmutableMember, "add an initial value",
			"immutable member that is not decoded requires an initial value")
	}
	if f.Immutable && f.Default != "" && !o.ignoreInitialized {
		for _, k := range []model.DirectiveKind{
			model.DirectiveDefaultValue,
			model.DirectiveAlias,
			model.DirectiveDecodeOnlyPath,
		} {
			if model.Has(ds, k) {
				ctx.warnf(loc, InvalidCombination, "remove the directive",
					"%s has no effect on initialized immutable member that is never decoded", k)
			}
		}
	}

	for _, d := range ds {
		switch d.Kind {
		case model.DirectiveAlias:
			if len(d.Values) == 0 {
				ctx.errorf(loc, MissingRequiredCombination, "list alias keys",
					"alias requires at least one key")
			}
			for _, v := range d.Values {
				if v.Kind != model.LiteralString {
					ctx.errorf(loc, InvalidCombination, "use string keys",
						"alias %s is not a string key", v)
				}
			}
			if p, ok := model.Find(ds, model.DirectiveKeyPath); ok && len(p.Path) == 0 {
				ctx.errorf(loc, InvalidCombination, "remove the alias",
					"alias cannot be used with an empty key path")
			}
		case model.DirectiveHelperCoder, model.DirectiveDefaultValue, model.DirectiveIgnoreEncodeIf:
			if d.Expr == "" {
				ctx.errorf(loc, MissingRequiredCombination, "set the expression",
					"%s requires an expression", d.Kind)
			}
		case model.DirectiveContainerPath:
			if len(d.Path) == 0 {
				ctx.errorf(loc, MissingRequiredCombination, "set the container path",
					"%s requires a non-empty path", d.Kind)
			}
		}
	}
}
