package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.pact.im/x/keyedgen/model"
)

// splitWords splits a Go identifier into words at underscores, case
// transitions and acronym boundaries, e.g. "HTTPServerID" yields "HTTP",
// "Server" and "ID".
func splitWords(name string) []string {
	var words []string
	for _, part := range strings.FieldsFunc(name, isSeparator) {
		runes := []rune(part)
		start := 0
		for i := 1; i < len(runes); i++ {
			prev, cur := runes[i-1], runes[i]
			lowerToUpper := (unicode.IsLower(prev) || unicode.IsDigit(prev)) && unicode.IsUpper(cur)
			acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if lowerToUpper || acronymEnd {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// keyFromName derives the key of a field from its name.
func keyFromName(name string, s model.KeyStrategy) string {
	words := splitWords(name)
	switch s {
	case model.KeyStrategyPascalCase:
		return name
	case model.KeyStrategySnakeCase:
		return joinMapped(words, "_", strings.ToLower)
	case model.KeyStrategyKebabCase:
		return joinMapped(words, "-", strings.ToLower)
	case model.KeyStrategyScreamingSnakeCase:
		return joinMapped(words, "_", strings.ToUpper)
	}
	return lowerCamel(words)
}

func joinMapped(words []string, sep string, f func(string) string) string {
	mapped := make([]string, len(words))
	for i, w := range words {
		mapped[i] = f(w)
	}
	return strings.Join(mapped, sep)
}

// lowerCamel lower-cases the first word and joins the rest as is.
func lowerCamel(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0]) + strings.Join(words[1:], "")
}

// foldKey turns raw key text into an identifier candidate: segments split
// at non-alphanumeric characters are joined with the first one lower-cased
// and the first letter of each following one upper-cased. A candidate
// starting with a digit is prefixed with "key".
func foldKey(raw string) string {
	segments := strings.FieldsFunc(raw, isSeparator)
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(segments[0]))
	for _, s := range segments[1:] {
		b.WriteString(upperFirst(s))
	}
	ident := b.String()
	if r, _ := utf8.DecodeRuneInString(ident); unicode.IsDigit(r) {
		ident = "key" + ident
	}
	return ident
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// isExported reports whether the type name starts with an upper-case
// letter.
func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// funcName returns the name of a generated function for the type: verb
// followed by the type name when the type is exported and an unexported
// name otherwise.
func funcName(verb, typeName string) string {
	if isExported(typeName) {
		return verb + typeName
	}
	return lowerFirst(verb) + upperFirst(typeName)
}
