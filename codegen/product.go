package codegen

import (
	"go.pact.im/x/keyedgen/model"
)

// productData is the input of the struct template.
type productData struct {
	Name      string
	Type      string
	Keys      []keyConst
	HasDecode bool
	Decode    string
	HasEncode bool
	Encode    string
	Assert    bool
	Ctor      *ctorData
}

// keyConst is a rendered key constant.
type keyConst struct {
	Name string
	Raw  string
}

func keyConsts(e *KeyEnum) []keyConst {
	keys := e.Keys()
	consts := make([]keyConst, len(keys))
	for i, k := range keys {
		consts[i] = keyConst{Name: k.Const(), Raw: k.Raw}
	}
	return consts
}

// expandProduct renders decoding, encoding and construction of a struct
// declaration.
func expandProduct(ctx *Context, decl model.Declaration, typeParams, typeArgs string, packages []string) productData {
	keys := newKeyEnum(ctx, "_"+decl.Name+"Key_")
	trie := newKeyTrie()
	o := declFieldOptions(decl.Directives)

	var coders []fieldCoder
	for _, f := range decl.Fields {
		if !codedField(f) {
			continue
		}
		fc, regs := buildField(keys, f, o)
		coders = append(coders, fc)
		for _, r := range regs {
			trie.register(r.field, r.path)
		}
	}
	keys.Resolve()

	var dec, enc block
	if b := decl.Base; b != nil && b.Decodable {
		dec.printf("if err = v.%s.DecodeKeyed(d); err != nil {", b.FieldName())
		dec.printf("return err")
		dec.printf("}")
	}
	dec.append(trie.decoding(0, decodeLoc{
		ctx:     ctx,
		decoder: "d",
		target:  "v",
		ret:     "return %s",
	}))
	if b := decl.Base; b != nil && b.Encodable {
		enc.printf("if err = v.%s.EncodeKeyed(e); err != nil {", b.FieldName())
		enc.printf("return err")
		enc.printf("}")
	}
	enc.append(trie.encoding(0, encodeLoc{
		ctx:     ctx,
		encoder: "e",
		source:  "v",
	}))

	return productData{
		Name:      decl.Name,
		Type:      decl.Name + typeArgs,
		Keys:      keyConsts(keys),
		HasDecode: len(dec) > 0,
		Decode:    dec.String(),
		HasEncode: len(enc) > 0,
		Encode:    enc.String(),
		Assert:    decl.Base == nil && typeParams == "",
		Ctor:      buildCtor(ctx, decl, coders, typeParams, typeArgs, packages),
	}
}
