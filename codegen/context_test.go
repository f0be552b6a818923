package codegen

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gotest.tools/v3/assert"
)

func TestContextReport(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := NewContext("Post", zap.New(core))

	ctx.warnf("Post.Title", UnreachableCase, "", "tag %q is claimed", "x")
	assert.Assert(t, !ctx.Failed())
	ctx.errorf("Post.Views", InvalidCombination, "remove one", "invalid")
	assert.Assert(t, ctx.Failed())

	entries := logs.AllUntimed()
	assert.Equal(t, len(entries), 2)
	assert.Equal(t, entries[0].Level, zapcore.WarnLevel)
	assert.Equal(t, entries[0].Message, `tag "x" is claimed`)
	assert.Equal(t, entries[1].Level, zapcore.ErrorLevel)

	fields := entries[1].ContextMap()
	assert.Equal(t, fields["declaration"], "Post")
	assert.Equal(t, fields["location"], "Post.Views")
	assert.Equal(t, fields["kind"], "invalid-combination")

	ds := ctx.Diagnostics()
	assert.Equal(t, len(ds), 2)
	assert.Equal(t, ds[1].Fix, "remove one")
}

func TestContextFreshName(t *testing.T) {
	ctx := NewContext("T", nil)
	assert.Equal(t, ctx.FreshName("value"), "_value1")
	assert.Equal(t, ctx.FreshName("key"), "_key2")

	other := NewContext("U", nil)
	assert.Equal(t, other.FreshName("value"), "_value1")
}
