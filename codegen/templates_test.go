package codegen

import "testing"

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, name := range []string{
		"main.go.tmpl",
		"keys.go.tmpl",
		"struct.go.tmpl",
		"sum.go.tmpl",
	} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("template %s is not defined", name)
		}
	}
}

func TestFuncName(t *testing.T) {
	testCases := []struct {
		verb, typeName, expected string
	}{
		{"Decode", "Shape", "DecodeShape"},
		{"Decode", "shape", "decodeShape"},
		{"Marshal", "shape", "marshalShape"},
		{"Encode", "HTTPRequest", "EncodeHTTPRequest"},
		{"New", "_private", "new_private"},
	}

	for _, tc := range testCases {
		t.Run(tc.verb+tc.typeName, func(t *testing.T) {
			got := funcName(tc.verb, tc.typeName)
			if got != tc.expected {
				t.Errorf("funcName(%s, %s) = %s; want %s",
					tc.verb, tc.typeName, got, tc.expected,
				)
			}
		})
	}
}
