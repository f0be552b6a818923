package model

import (
	"testing"

	"gotest.tools/v3/assert"
)

const yamlDeclarations = `
- name: Command
  kind: sum
  directives:
    - kind: tagAt
      path: [type]
  cases:
    - name: load
      type: Load
      directives:
        - kind: caseValue
          values: [load, 12, true, {from: 20, to: 25}, 1.5]
      fields:
        - name: Key
          type: string
    - name: store
      type: Store
- name: Post
  fields:
    - name: Title
      type: string
      directives:
        - kind: alias
          values: [title, name]
    - name: Views
      type: "*int"
      directives:
        - kind: default
          expr: "new(int)"
`

const jsonDeclarations = `[
  {
    "name": "Command",
    "kind": "sum",
    "directives": [{"kind": "tagAt", "path": ["type"]}],
    "cases": [
      {
        "name": "load",
        "type": "Load",
        "directives": [
          {"kind": "caseValue", "values": ["load", 12, true, {"from": 20, "to": 25}, 1.5]}
        ],
        "fields": [{"name": "Key", "type": "string"}]
      },
      {"name": "store", "type": "Store"}
    ]
  },
  {
    "name": "Post",
    "fields": [
      {
        "name": "Title",
        "type": "string",
        "directives": [{"kind": "alias", "values": ["title", "name"]}]
      },
      {
        "name": "Views",
        "type": "*int",
        "directives": [{"kind": "default", "expr": "new(int)"}]
      }
    ]
  }
]`

func TestUnmarshal(t *testing.T) {
	testCases := []struct {
		name   string
		format Format
		input  string
	}{
		{"yaml", FormatYAML, yamlDeclarations},
		{"json", FormatJSON, jsonDeclarations},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var decls []Declaration
			assert.NilError(t, Unmarshal([]byte(tc.input), tc.format, &decls))
			assert.Equal(t, len(decls), 2)

			cmd := decls[0]
			assert.Equal(t, cmd.Kind, KindSum)
			tagAt, ok := Find(cmd.Directives, DirectiveTagAt)
			assert.Assert(t, ok)
			assert.DeepEqual(t, tagAt.Path, []string{"type"})

			values := cmd.Cases[0].Directives[0].Values
			assert.Equal(t, len(values), 5)
			assert.Equal(t, values[0].Kind, LiteralString)
			assert.Equal(t, values[0].GoExpr(), `"load"`)
			assert.Equal(t, values[1].Kind, LiteralInt)
			assert.Equal(t, values[1].GoExpr(), `12`)
			assert.Equal(t, values[2].Kind, LiteralBool)
			assert.Equal(t, values[2].GoExpr(), `true`)
			assert.Equal(t, values[3].Kind, LiteralRange)
			assert.Equal(t, values[3].Bucket(), LiteralInt)
			assert.Equal(t, values[3].GoCondition("t"), "t >= 20 && t < 25")
			assert.Equal(t, values[4].Kind, LiteralFloat)

			post := decls[1]
			assert.Equal(t, post.Kind, KindStruct)
			assert.Assert(t, post.Fields[1].Type.Optional())
			assert.Equal(t, post.Fields[1].Type.Elem(), "int")
		})
	}
}

func TestUnmarshalRejectsUnknownDirective(t *testing.T) {
	var decls []Declaration
	err := Unmarshal([]byte(`[{"name": "X", "directives": [{"kind": "bogus"}]}]`), FormatJSON, &decls)
	assert.ErrorContains(t, err, "bogus")
}

func TestLiteralCondition(t *testing.T) {
	one, five := Int(1), Int(5)
	testCases := []struct {
		lit  Literal
		want string
	}{
		{String("a"), `x == "a"`},
		{Float(2), `x == 2.0`},
		{Range(&one, &five, true), `x >= 1 && x <= 5`},
		{Range(nil, &five, false), `x < 5`},
		{Range(&one, nil, false), `x >= 1`},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.lit.GoCondition("x"), tc.want)
	}
}

func TestLiteralCanonical(t *testing.T) {
	low := Literal{Kind: LiteralFloat, Value: "0.50"}
	testCases := []struct {
		lit  Literal
		want string
	}{
		{Literal{Kind: LiteralFloat, Value: "1.00"}, "1"},
		{Literal{Kind: LiteralFloat, Value: "1.50"}, "1.5"},
		{Literal{Kind: LiteralInt, Value: "007"}, "7"},
		{Float(1), "1"},
		{String("1.0"), `"1.0"`},
		{Range(&low, nil, false), "0.5..<"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.lit.Canonical().String(), tc.want)
	}
	assert.Equal(t, low.Value, "0.50")
	assert.Assert(t, Float(1).Equal(Literal{Kind: LiteralFloat, Value: "1.000"}))
	assert.Assert(t, !Float(1).Equal(Int(1)))
}

func TestBaseFieldName(t *testing.T) {
	for input, want := range map[string]string{
		"Node":            "Node",
		"*Node":           "Node",
		"pkg.Node":        "Node",
		"*pkg.Node[T, U]": "Node",
	} {
		assert.Equal(t, (&Base{Type: input}).FieldName(), want, input)
	}
}
