package codegen

import (
	"testing"

	"gotest.tools/v3/assert"

	"go.pact.im/x/keyedgen/model"
)

func TestTaggingOf(t *testing.T) {
	testCases := []struct {
		directives []model.DirectiveKind
		expect     Tagging
	}{
		{nil, TaggingExternal},
		{[]model.DirectiveKind{model.DirectiveTagAt}, TaggingInternal},
		{[]model.DirectiveKind{model.DirectiveTagAt, model.DirectiveContentAt}, TaggingAdjacent},
		{[]model.DirectiveKind{model.DirectiveUntagged}, TaggingUntagged},
	}
	for _, tc := range testCases {
		var ds []model.Directive
		for _, k := range tc.directives {
			ds = append(ds, model.Directive{Kind: k})
		}
		assert.Equal(t, taggingOf(ds), tc.expect)
	}
}

func TestTaggingText(t *testing.T) {
	for _, r := range []Tagging{TaggingExternal, TaggingInternal, TaggingAdjacent, TaggingUntagged} {
		text, err := r.MarshalText()
		assert.NilError(t, err)
		var got Tagging
		assert.NilError(t, got.UnmarshalText(text))
		assert.Equal(t, got, r)
	}
	var r Tagging
	assert.ErrorContains(t, r.UnmarshalText([]byte("nested")), "unknown tagging")
}
