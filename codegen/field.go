package codegen

import (
	"fmt"
	"strings"

	"go.pact.im/x/keyedgen/model"
)

// decodeLoc is the location a field is decoded at.
type decodeLoc struct {
	ctx *Context
	// decoder is the name of the decoder variable.
	decoder string
	// key is the key of the field in the decoder. Nil key decodes the
	// field from the decoder itself.
	key *Key
	// aliases are alternative keys accepted along with key.
	aliases []*Key
	// target is the expression holding decoded fields, e.g. "v".
	target string
	// ret is a return statement format with a single verb for the error.
	ret string
}

func (l decodeLoc) fail(err string) string {
	return fmt.Sprintf(l.ret, err)
}

func (l decodeLoc) keyArgs() string {
	args := []string{l.key.Const()}
	for _, k := range l.aliases {
		args = append(args, k.Const())
	}
	return strings.Join(args, ", ")
}

// encodeLoc is the location a field is encoded at.
type encodeLoc struct {
	ctx *Context
	// encoder is the name of the encoder variable.
	encoder string
	// key is the key of the field in the encoder. Nil key merges the
	// field into the encoder itself.
	key *Key
	// source is the expression holding encoded fields, e.g. "v".
	source string
}

type paramKind int

const (
	// paramRequired fields are constructor parameters.
	paramRequired paramKind = iota
	// paramDefault fields are assigned a default value by the constructor.
	paramDefault
	// paramExcluded fields are left unset by the constructor.
	paramExcluded
)

type initParam struct {
	kind  paramKind
	value string
}

// fieldCoder is a field coding strategy. Decorators embed the strategy
// they wrap and override only the behavior they change, so that stacking
// order does not matter for unrelated concerns.
type fieldCoder interface {
	fieldName() string
	fieldType() model.TypeRef
	// decodes reports whether the field is decoded.
	decodes() bool
	// encodes reports whether the field is encoded.
	encodes() bool
	// fallback returns the behavior on decoding failure.
	fallback() Fallback
	// initial returns the value assigned on decoding when the field is not
	// decoded.
	initial() (string, bool)
	// decodeCall returns an expression decoding the field value that
	// yields the value and an error.
	decodeCall(loc decodeLoc) string
	// encodeCall returns an expression encoding value that yields an
	// error.
	encodeCall(loc encodeLoc, value string) string
	// encodeSkip returns a boolean expression that is true when value must
	// not be encoded, or an empty string.
	encodeSkip(value string) string
	// param returns the constructor parameter of the field.
	param() initParam
}

// basicField decodes and encodes the field value with the JSON
// representation of its type.
type basicField struct {
	field model.Field
}

func (f *basicField) fieldName() string        { return f.field.Name }
func (f *basicField) fieldType() model.TypeRef { return f.field.Type }
func (f *basicField) decodes() bool            { return true }
func (f *basicField) encodes() bool            { return true }
func (f *basicField) encodeSkip(string) string { return "" }

func (f *basicField) fallback() Fallback {
	if f.field.Type.Optional() {
		return Fallback{Kind: FallbackIfMissing, OnMissing: "nil"}
	}
	return Fallback{Kind: FallbackThrow}
}

func (f *basicField) initial() (string, bool) {
	return f.field.Default, f.field.Default != ""
}

func (f *basicField) decodeCall(loc decodeLoc) string {
	t := f.field.Type
	switch {
	case loc.key == nil:
		return fmt.Sprintf("keyed.DecodeSelf[%s](%s)", t, loc.decoder)
	case t.Optional():
		return fmt.Sprintf("keyed.DecodeIfPresent[%s](%s, %s)", t.Elem(), loc.decoder, loc.keyArgs())
	}
	return fmt.Sprintf("keyed.Decode[%s](%s, %s)", t, loc.decoder, loc.keyArgs())
}

func (f *basicField) encodeCall(loc encodeLoc, value string) string {
	switch {
	case loc.key == nil:
		return fmt.Sprintf("keyed.EncodeSelf(%s, %s)", loc.encoder, value)
	case f.field.Type.Optional():
		return fmt.Sprintf("keyed.EncodeIfPresent(%s, %s, %s)", loc.encoder, loc.key.Const(), value)
	}
	return fmt.Sprintf("keyed.Encode(%s, %s, %s)", loc.encoder, loc.key.Const(), value)
}

func (f *basicField) param() initParam {
	switch {
	case f.field.Default != "":
		return initParam{kind: paramDefault, value: f.field.Default}
	case f.field.Type.Optional():
		return initParam{kind: paramExcluded}
	}
	return initParam{kind: paramRequired}
}

// fieldDecoding returns statements decoding the field at loc. It must be
// called with the outermost strategy of the stack.
func fieldDecoding(f fieldCoder, loc decodeLoc) block {
	var b block
	target := loc.target + "." + f.fieldName()
	if !f.decodes() {
		if v, ok := f.initial(); ok {
			b.printf("%s = %s", target, v)
		}
		return b
	}

	call := f.decodeCall(loc)
	fb := f.fallback()
	optional := f.fieldType().Optional()
	if fb.Kind == FallbackThrow || optional && fb.Kind == FallbackIfMissing && fb.OnMissing == "nil" {
		b.printf("if %s, err = %s; err != nil {", target, call)
		b.line(loc.fail("err"))
		b.printf("}")
		return b
	}

	x := loc.ctx.FreshName("value")
	onError := loc.fail("err")
	if fb.Kind == FallbackIfMissingOrError {
		onError = target + " = " + fb.OnError
	}
	b.printf("switch %s, err := %s; {", x, call)
	switch {
	case optional:
		b.printf("case err != nil:")
		b.line(onError)
		b.printf("case %s == nil:", x)
		b.printf("%s = %s", target, fb.OnMissing)
		b.printf("default:")
		b.printf("%s = %s", target, x)
	case fb.Kind == FallbackIfMissingOrError && fb.OnMissing == fb.OnError:
		b.printf("case err == nil:")
		b.printf("%s = %s", target, x)
		b.printf("default:")
		b.printf("%s = %s", target, fb.OnMissing)
	default:
		b.printf("case err == nil:")
		b.printf("%s = %s", target, x)
		b.printf("case keyed.IsKeyNotFound(err):")
		b.printf("%s = %s", target, fb.OnMissing)
		b.printf("default:")
		b.line(onError)
	}
	b.printf("}")
	return b
}

// fieldMissing returns statements assigning the fallback values of the
// field when its container is absent.
func fieldMissing(f fieldCoder, target string) block {
	var b block
	switch v, ok := f.initial(); {
	case f.decodes():
		b.printf("%s.%s = %s", target, f.fieldName(), f.fallback().OnMissing)
	case ok:
		b.printf("%s.%s = %s", target, f.fieldName(), v)
	}
	return b
}

// fieldFailed returns statements assigning the fallback values of the
// field when its container cannot be decoded.
func fieldFailed(f fieldCoder, target string) block {
	var b block
	switch v, ok := f.initial(); {
	case f.decodes():
		b.printf("%s.%s = %s", target, f.fieldName(), f.fallback().OnError)
	case ok:
		b.printf("%s.%s = %s", target, f.fieldName(), v)
	}
	return b
}

// fieldEncoding returns statements encoding the field at loc. It must be
// called with the outermost strategy of the stack.
func fieldEncoding(f fieldCoder, loc encodeLoc) block {
	var b block
	if !f.encodes() {
		return b
	}
	value := loc.source + "." + f.fieldName()
	skip := f.encodeSkip(value)
	if skip != "" {
		b.printf("if !(%s) {", skip)
	}
	b.printf("if err = %s; err != nil {", f.encodeCall(loc, value))
	b.printf("return err")
	b.printf("}")
	if skip != "" {
		b.printf("}")
	}
	return b
}
