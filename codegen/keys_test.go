package codegen

import (
	"testing"

	"go.uber.org/zap/zaptest"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestKeyEnumResolve(t *testing.T) {
	ctx := NewContext("T", zaptest.NewLogger(t))
	e := newKeyEnum(ctx, "_TKey_")

	typ := e.Register("type", "", false)
	typ2 := e.Register("type_", "", false)
	digit := e.Register("2fa", "", false)
	title := e.Register("title", "Title", false)
	empty := e.Register("", "", false)
	e.Resolve()

	assert.Equal(t, title.Ident, "Title")
	assert.Equal(t, title.Source, KeySourceField)
	assert.Equal(t, typ.Ident, "type_")
	assert.Equal(t, typ2.Ident, "_key1")
	assert.Equal(t, digit.Ident, "key2fa")
	assert.Equal(t, empty.Ident, "_key2")
	assert.Equal(t, typ.Const(), "_TKey_type_")

	var raws []string
	for _, k := range e.Keys() {
		raws = append(raws, k.Raw)
	}
	assert.DeepEqual(t, raws, []string{"type", "type_", "2fa", "title", ""})
}

func TestKeyEnumFieldPriority(t *testing.T) {
	ctx := NewContext("T", zaptest.NewLogger(t))
	e := newKeyEnum(ctx, "_TKey_")

	text := e.Register("title", "", false)
	nested := e.Register("heading", "title", true)
	e.Resolve()

	assert.Equal(t, nested.Source, KeySourceNestedField)
	assert.Equal(t, nested.Ident, "title")
	assert.Equal(t, text.Ident, "title_")
}

func TestKeyEnumUpgrade(t *testing.T) {
	ctx := NewContext("T", zaptest.NewLogger(t))
	e := newKeyEnum(ctx, "_TKey_")

	container := e.Register("title", "", false)
	field := e.Register("title", "Title", false)
	e.Resolve()

	assert.Assert(t, container == field)
	assert.Equal(t, field.Source, KeySourceField)
	assert.Equal(t, field.Ident, "Title")
	assert.Assert(t, is.Len(e.Keys(), 1))
}

func TestKeyEnumUnique(t *testing.T) {
	ctx := NewContext("T", zaptest.NewLogger(t))
	e := newKeyEnum(ctx, "_TKey_")

	for _, raw := range []string{"a-b", "a_b", "a b", "aB", "a.b", "string", "string_"} {
		e.Register(raw, "", false)
	}
	e.Resolve()

	seen := make(map[string]string)
	for _, k := range e.Keys() {
		assert.Assert(t, !isReserved(k.Ident), "key %q: %s", k.Raw, k.Ident)
		other, ok := seen[k.Ident]
		assert.Assert(t, !ok, "keys %q and %q share identifier %s", k.Raw, other, k.Ident)
		seen[k.Ident] = k.Raw
	}
	assert.Equal(t, e.Keys()[0].Ident, "aB")
	assert.Equal(t, e.Keys()[1].Ident, "aB_")
}

func TestAllocateFreshNamesNeverReused(t *testing.T) {
	ctx := NewContext("T", zaptest.NewLogger(t))
	used := map[string]struct{}{}

	assert.Equal(t, allocate(ctx, "value", "value", used), "value")
	assert.Equal(t, allocate(ctx, "value", "value", used), "value_")
	assert.Equal(t, allocate(ctx, "value", "value", used), "_value1")
	assert.Equal(t, ctx.FreshName("value"), "_value2")
	assert.Equal(t, allocate(ctx, "func", "param", used), "func_")
	assert.Equal(t, allocate(ctx, "", "param", used), "_param3")
}
