package codegen

import (
	"slices"
)

// KeySource tells where the identifier candidate of a key comes from. It
// also orders identifier resolution: field names claim identifiers before
// names synthesized from key text.
type KeySource int

const (
	// KeySourceField is a key that is the whole path of a field. The
	// field name is the candidate.
	KeySourceField KeySource = iota
	// KeySourceNestedField is a key that is the last segment of a longer
	// field path. The field name is the candidate.
	KeySourceNestedField
	// KeySourceText is a key without an owning field, e.g. a container
	// key, an alias or a tag. The candidate is folded from the key text.
	KeySourceText
)

// Key is a symbolic name for a raw key string. Its identifier is assigned
// when the owning [KeyEnum] is resolved.
type Key struct {
	// Raw is the key text as it appears in the serialized form.
	Raw string
	// Ident is the identifier allocated for the key.
	Ident string
	// Source is the origin of the identifier candidate.
	Source KeySource

	field string
	enum  *KeyEnum
}

// Const returns the name of the generated constant for the key.
func (k *Key) Const() string {
	return k.enum.prefix + k.Ident
}

// KeyEnum allocates identifiers for keys of a single declaration. Each raw
// string is registered at most once and keeps its first registration order
// for rendering.
type KeyEnum struct {
	ctx    *Context
	prefix string
	keys   []*Key
	byRaw  map[string]*Key
}

func newKeyEnum(ctx *Context, prefix string) *KeyEnum {
	return &KeyEnum{
		ctx:    ctx,
		prefix: prefix,
		byRaw:  make(map[string]*Key),
	}
}

// Register returns the key for raw, creating it on first use. The field
// argument is the name of the field whose path ends with raw, or an empty
// string. A key registered from text is upgraded to a field key when a
// field claims it later.
func (e *KeyEnum) Register(raw, field string, nested bool) *Key {
	k, ok := e.byRaw[raw]
	if !ok {
		k = &Key{Raw: raw, Source: KeySourceText, enum: e}
		e.keys = append(e.keys, k)
		e.byRaw[raw] = k
	}
	if field != "" && k.Source == KeySourceText {
		k.field = field
		k.Source = KeySourceField
		if nested {
			k.Source = KeySourceNestedField
		}
	}
	return k
}

// Keys returns registered keys in registration order.
func (e *KeyEnum) Keys() []*Key {
	return e.keys
}

// Resolve allocates identifiers for all registered keys. Keys are resolved
// in source priority order so that a key carrying a field name gets that
// name even if it was registered after a key whose folded text collides
// with it.
func (e *KeyEnum) Resolve() {
	ordered := slices.Clone(e.keys)
	slices.SortStableFunc(ordered, func(a, b *Key) int {
		return int(a.Source) - int(b.Source)
	})
	used := make(map[string]struct{}, len(ordered))
	for _, k := range ordered {
		candidate := k.field
		if k.Source == KeySourceText {
			candidate = foldKey(k.Raw)
		}
		k.Ident = allocate(e.ctx, candidate, "key", used)
	}
}

// allocate returns candidate when it is neither reserved nor used, the
// candidate with a trailing underscore if that is free, or a fresh name
// from the context otherwise. The returned name is marked as used.
func allocate(ctx *Context, candidate, hint string, used map[string]struct{}) string {
	name := candidate
	if !available(name, used) {
		name = candidate + "_"
	}
	for candidate == "" || !available(name, used) {
		name = ctx.FreshName(hint)
		candidate = name
	}
	used[name] = struct{}{}
	return name
}

func available(name string, used map[string]struct{}) bool {
	if name == "" || isReserved(name) {
		return false
	}
	_, ok := used[name]
	return !ok
}
