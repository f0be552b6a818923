package codegen

import (
	"testing"

	"gotest.tools/v3/assert"

	"go.pact.im/x/keyedgen/model"
)

func TestSplitWords(t *testing.T) {
	testCases := []struct {
		input    string
		expected []string
	}{
		{"UserID", []string{"User", "ID"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"createdAt", []string{"created", "At"}},
		{"Version2Beta", []string{"Version2", "Beta"}},
		{"snake_case", []string{"snake", "case"}},
		{"X", []string{"X"}},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.DeepEqual(t, splitWords(tc.input), tc.expected)
		})
	}
}

func TestKeyFromName(t *testing.T) {
	testCases := []struct {
		name     string
		strategy model.KeyStrategy
		expected string
	}{
		{"UserID", model.KeyStrategyCamelCase, "userID"},
		{"HTTPServer", model.KeyStrategyCamelCase, "httpServer"},
		{"Title", model.KeyStrategyPascalCase, "Title"},
		{"HTTPServer", model.KeyStrategySnakeCase, "http_server"},
		{"Version2Beta", model.KeyStrategySnakeCase, "version2_beta"},
		{"HTTPServer", model.KeyStrategyKebabCase, "http-server"},
		{"createdAt", model.KeyStrategyScreamingSnakeCase, "CREATED_AT"},
	}
	for _, tc := range testCases {
		t.Run(tc.strategy.String()+"/"+tc.name, func(t *testing.T) {
			assert.Equal(t, keyFromName(tc.name, tc.strategy), tc.expected)
		})
	}
}

func TestFoldKey(t *testing.T) {
	testCases := []struct {
		raw, expected string
	}{
		{"title", "title"},
		{"Title", "title"},
		{"user_name", "userName"},
		{"content-type", "contentType"},
		{"API key", "apiKey"},
		{"$ref", "ref"},
		{"2fa", "key2fa"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, foldKey(tc.raw), tc.expected)
		})
	}
}
