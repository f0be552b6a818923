package codegen

import (
	"slices"

	"go.pact.im/x/keyedgen/model"
)

// registration is a field coding strategy registered at a key path.
type registration struct {
	field fieldCoder
	path  []*Key
}

// fieldOptions are declaration-level settings affecting fields.
type fieldOptions struct {
	strategy          model.KeyStrategy
	ignoreInitialized bool
}

func declFieldOptions(ds []model.Directive) fieldOptions {
	var o fieldOptions
	if d, ok := model.Find(ds, model.DirectiveKeyStrategy); ok {
		o.strategy = d.Strategy
	}
	o.ignoreInitialized = model.Has(ds, model.DirectiveIgnoreInitialized)
	return o
}

// codedField reports whether the field takes part in coding or
// construction at all.
func codedField(f model.Field) bool {
	return !f.Static && f.Accessor != model.AccessorComputed
}

// buildField composes the strategy stack for the field and registers its
// key paths. The stack is applied in a fixed order: basic coding, helper,
// aliases, default value, conditions and constructor exclusion.
func buildField(keys *KeyEnum, f model.Field, o fieldOptions) (fieldCoder, []registration) {
	ds := f.Directives

	var fc fieldCoder = &basicField{field: f}
	if d, ok := model.Find(ds, model.DirectiveHelperCoder); ok {
		fc = &helperCodedField{fieldCoder: fc, helper: d.Expr}
	}
	if d, ok := model.Find(ds, model.DirectiveAlias); ok {
		aliases := make([]*Key, 0, len(d.Values))
		for _, v := range d.Values {
			aliases = append(aliases, keys.Register(v.Value, "", false))
		}
		fc = &aliasedField{fieldCoder: fc, aliases: aliases}
	}
	if d, ok := model.Find(ds, model.DirectiveDefaultValue); ok {
		fc = &defaultValueField{fieldCoder: fc, onMissing: d.Expr, onError: d.OnError}
	}

	explicitPath := model.Has(ds, model.DirectiveKeyPath) || model.Has(ds, model.DirectiveContainerPath)
	cond := &conditionalField{fieldCoder: fc}
	switch {
	case model.Has(ds, model.DirectiveIgnoreBoth):
		cond.skipDecode, cond.skipEncode = true, true
	case f.Default != "" && o.ignoreInitialized && !explicitPath:
		cond.skipDecode, cond.skipEncode = true, true
	case f.Default != "" && f.Immutable:
		cond.skipDecode = true
	}
	if model.Has(ds, model.DirectiveIgnoreDecode) {
		cond.skipDecode = true
	}
	if model.Has(ds, model.DirectiveIgnoreEncode) {
		cond.skipEncode = true
	}
	if d, ok := model.Find(ds, model.DirectiveIgnoreEncodeIf); ok {
		cond.encodeIf = d.Expr
	}
	if cond.skipDecode || cond.skipEncode || cond.encodeIf != "" {
		fc = cond
	}
	if model.Has(ds, model.DirectiveIgnoreInit) {
		fc = &initExcludedField{fieldCoder: fc}
	}

	path := []string{keyFromName(f.Name, o.strategy)}
	if d, ok := model.Find(ds, model.DirectiveContainerPath); ok {
		path = append(slices.Clone(d.Path), path[0])
	}
	if d, ok := model.Find(ds, model.DirectiveKeyPath); ok {
		path = d.Path
	}
	decodePath, encodePath := path, path
	if d, ok := model.Find(ds, model.DirectiveDecodeOnlyPath); ok {
		decodePath = d.Path
	}
	if d, ok := model.Find(ds, model.DirectiveEncodeOnlyPath); ok {
		encodePath = d.Path
	}
	if slices.Equal(decodePath, encodePath) {
		return fc, []registration{{fc, registerPath(keys, f.Name, path)}}
	}
	return fc, []registration{
		{&conditionalField{fieldCoder: fc, skipEncode: true}, registerPath(keys, f.Name, decodePath)},
		{&conditionalField{fieldCoder: fc, skipDecode: true, split: true}, registerPath(keys, f.Name, encodePath)},
	}
}

// registerPath registers every segment of the path. The last segment is
// owned by the field.
func registerPath(keys *KeyEnum, field string, path []string) []*Key {
	ks := make([]*Key, len(path))
	for i, raw := range path {
		owner := ""
		if i == len(path)-1 {
			owner = field
		}
		ks[i] = keys.Register(raw, owner, len(path) > 1)
	}
	return ks
}
