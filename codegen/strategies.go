package codegen

import (
	"fmt"
	"slices"
	"strings"
)

// helperCodedField delegates coding of the value to a helper implementing
// keyed.Coder for the field type.
type helperCodedField struct {
	fieldCoder
	helper string
}

func (f *helperCodedField) decodeCall(loc decodeLoc) string {
	t := f.fieldType()
	switch {
	case loc.key == nil:
		return fmt.Sprintf("keyed.DecodeSelfWith[%s](%s, %s)", t, loc.decoder, f.helper)
	case t.Optional():
		return fmt.Sprintf("keyed.DecodeWithIfPresent[%s](%s, %s, %s)", t.Elem(), loc.decoder, f.helper, loc.keyArgs())
	}
	return fmt.Sprintf("keyed.DecodeWith[%s](%s, %s, %s)", t, loc.decoder, f.helper, loc.keyArgs())
}

func (f *helperCodedField) encodeCall(loc encodeLoc, value string) string {
	t := f.fieldType()
	switch {
	case loc.key == nil:
		return fmt.Sprintf("keyed.EncodeSelfWith[%s](%s, %s, %s)", t, loc.encoder, f.helper, value)
	case t.Optional():
		return fmt.Sprintf("keyed.EncodeWithIfPresent[%s](%s, %s, %s, %s)", t.Elem(), loc.encoder, f.helper, loc.key.Const(), value)
	}
	return fmt.Sprintf("keyed.EncodeWith[%s](%s, %s, %s, %s)", t, loc.encoder, f.helper, loc.key.Const(), value)
}

// aliasedField accepts alternative keys on decoding.
type aliasedField struct {
	fieldCoder
	aliases []*Key
}

func (f *aliasedField) decodeCall(loc decodeLoc) string {
	if loc.key != nil {
		loc.aliases = append(slices.Clip(loc.aliases), f.aliases...)
	}
	return f.fieldCoder.decodeCall(loc)
}

// defaultValueField substitutes values when the key is missing or, if
// onError is set, when the value cannot be decoded.
type defaultValueField struct {
	fieldCoder
	onMissing string
	onError   string
}

func (f *defaultValueField) fallback() Fallback {
	if f.onError != "" {
		return Fallback{Kind: FallbackIfMissingOrError, OnMissing: f.onMissing, OnError: f.onError}
	}
	return Fallback{Kind: FallbackIfMissing, OnMissing: f.onMissing}
}

func (f *defaultValueField) param() initParam {
	if p := f.fieldCoder.param(); p.kind == paramDefault {
		return p
	}
	return initParam{kind: paramDefault, value: f.onMissing}
}

// conditionalField disables decoding or encoding of the field, or skips
// encoding when a predicate holds for the value.
type conditionalField struct {
	fieldCoder
	skipDecode bool
	skipEncode bool
	encodeIf   string
	// split marks one half of a field coded at distinct decode and encode
	// paths that must not assign the initial value owned by the decoding
	// half.
	split bool
}

func (f *conditionalField) initial() (string, bool) {
	if f.split {
		return "", false
	}
	return f.fieldCoder.initial()
}

func (f *conditionalField) decodes() bool {
	return !f.skipDecode && f.fieldCoder.decodes()
}

func (f *conditionalField) encodes() bool {
	return !f.skipEncode && f.fieldCoder.encodes()
}

func (f *conditionalField) encodeSkip(value string) string {
	inner := f.fieldCoder.encodeSkip(value)
	if f.encodeIf == "" {
		return inner
	}
	own := callExpr(f.encodeIf, value)
	if inner == "" {
		return own
	}
	return inner + " || " + own
}

// initExcludedField is never a constructor parameter. A default value is
// still assigned.
type initExcludedField struct {
	fieldCoder
}

func (f *initExcludedField) param() initParam {
	p := f.fieldCoder.param()
	if p.kind == paramRequired {
		p.kind = paramExcluded
	}
	return p
}

// callExpr returns a call of fn with a single argument. Function
// expressions other than qualified identifiers are parenthesized.
func callExpr(fn, arg string) string {
	simple := strings.IndexFunc(fn, func(r rune) bool {
		return r != '.' && isSeparator(r)
	}) < 0
	if !simple {
		fn = "(" + fn + ")"
	}
	return fn + "(" + arg + ")"
}
