package codegen

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"go.pact.im/x/keyedgen/model"
)

func TestBlockLine(t *testing.T) {
	var b block
	b.line(`s := fmt.Sprintf("%d%%", n)`)
	b.printf("return %s", `"100%"`)
	assert.Equal(t, b.String(), lines(
		`s := fmt.Sprintf("%d%%", n)`,
		`return "100%"`,
	))
}

func TestFieldDecodingKeepsPercent(t *testing.T) {
	ctx, trie := buildTrie(t,
		model.Field{Name: "A", Type: "int", Directives: []model.Directive{defaultValue("10 % 4", `len("%d%%")`)}},
		model.Field{Name: "B", Type: "int", Directives: []model.Directive{keyPath("meta", "b"), defaultValue("7", "")}},
	)
	src := trie.decoding(0, decodeLoc{
		ctx:     ctx,
		decoder: "d",
		target:  "v",
		ret:     `return fmt.Errorf("%%w", %s)`,
	}).String()
	assert.Assert(t, is.Contains(src, "v.A = 10 % 4\n"))
	assert.Assert(t, is.Contains(src, "v.A = len(\"%d%%\")\n"))
	assert.Assert(t, is.Contains(src, "return fmt.Errorf(\"%w\", err)\n"))
}
