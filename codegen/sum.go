package codegen

import (
	"strconv"

	"go.uber.org/zap"

	"go.pact.im/x/keyedgen/model"
)

// enumCase is a case of a sum type.
type enumCase struct {
	name string
	loc  string
	typ  string
	// whole cases are coded as a whole value of the case type. Otherwise
	// the listed fields are coded with trie.
	whole bool
	trie  *keyTrie
	// tags are the tag values accepted on decoding.
	tags []model.Literal
	// tag is the tag value written on encoding: the first tag that is not
	// a range.
	tag     model.Literal
	hasTag  bool
	decodes bool
	encodes bool
	// decodeFunc is the name of the generated function decoding the case.
	decodeFunc string
	// tagKey is the key of the encode tag and tagKeys are keys of the
	// decode tags for external tagging.
	tagKey  *Key
	tagKeys []*Key
}

// hasContent reports whether encoding the case writes any value.
func (c *enumCase) hasContent() bool {
	return c.whole || c.trie.encodes(0)
}

// sumType is a sum type being expanded.
type sumType struct {
	ctx  *Context
	name string
	// typ is the sum type with type arguments.
	typ        string
	typeParams string
	typeArgs   string
	tagging    Tagging
	switcher   tagSwitcher
	keys       *KeyEnum
	decodeKeys *KeyEnum
	tagPath    []*Key
	content    []*Key
	valueType  string
	cases      []*enumCase
}

func buildSum(ctx *Context, decl model.Declaration, typeParams, typeArgs string) *sumType {
	s := &sumType{
		ctx:        ctx,
		name:       decl.Name,
		typ:        decl.Name + typeArgs,
		typeParams: typeParams,
		typeArgs:   typeArgs,
		tagging:    taggingOf(decl.Directives),
		keys:       newKeyEnum(ctx, "_"+decl.Name+"Key_"),
		decodeKeys: newKeyEnum(ctx, "_"+decl.Name+"DecodeKey_"),
	}
	if d, ok := model.Find(decl.Directives, model.DirectiveTagAt); ok {
		s.tagPath = registerPath(s.keys, "", d.Path)
		s.valueType = d.ValueType
	}
	if d, ok := model.Find(decl.Directives, model.DirectiveContentAt); ok {
		s.content = registerPath(s.keys, "", d.Path)
	}
	ctx.log.Debug("selected tagging", zap.Stringer("tagging", s.tagging))
	switch s.tagging {
	case TaggingExternal:
		s.switcher = externalSwitcher{}
	case TaggingUntagged:
		s.switcher = untaggedSwitcher{}
	default:
		s.switcher = internalSwitcher{}
	}

	o := declFieldOptions(decl.Directives)
	funcs := make(map[string]struct{})
	for _, mc := range decl.Cases {
		c := &enumCase{
			name:    mc.Name,
			loc:     decl.Name + "." + mc.Name,
			typ:     mc.Type,
			whole:   len(mc.Fields) == 0,
			trie:    newKeyTrie(),
			decodes: !model.Has(mc.Directives, model.DirectiveIgnoreDecode) && !model.Has(mc.Directives, model.DirectiveIgnoreBoth),
			encodes: !model.Has(mc.Directives, model.DirectiveIgnoreEncode) && !model.Has(mc.Directives, model.DirectiveIgnoreBoth),
		}
		c.tags = []model.Literal{model.String(mc.Name)}
		if d, ok := model.Find(mc.Directives, model.DirectiveCaseValue); ok && len(d.Values) > 0 {
			c.tags = d.Values
		}
		for _, t := range c.tags {
			if t.Kind != model.LiteralRange {
				c.tag, c.hasTag = t, true
				break
			}
		}
		for _, f := range mc.Fields {
			if !codedField(f) {
				continue
			}
			_, regs := buildField(s.keys, f, o)
			for _, r := range regs {
				c.trie.register(r.field, r.path)
			}
		}
		c.decodeFunc = allocate(ctx, "_"+decl.Name+"_decode"+upperFirst(foldKey(mc.Name)), "decode", funcs)
		s.cases = append(s.cases, c)
	}
	s.dropUnreachable()
	if s.tagging == TaggingExternal {
		for _, c := range s.cases {
			c.tagKey = s.keys.Register(c.tag.Value, "", false)
			for _, t := range c.tags {
				k := c.tagKey
				if t.Value != c.tag.Value {
					k = s.decodeKeys.Register(t.Value, "", false)
				}
				c.tagKeys = append(c.tagKeys, k)
			}
		}
	}
	s.keys.Resolve()
	s.decodeKeys.Resolve()
	return s
}

// dropUnreachable removes decode tags already claimed by an earlier case.
// Tags are compared by value so that e.g. 1.0 and 1.00 collide. Integer and
// floating-point tags collide only under a declared value type since
// otherwise they are decoded separately. The encode tag of a case is kept
// even if decoding never selects it.
func (s *sumType) dropUnreachable() {
	if s.tagging == TaggingUntagged {
		return
	}
	claimed := make(map[string]string)
	for _, c := range s.cases {
		if !c.decodes {
			continue
		}
		kept := c.tags[:0:0]
		for _, t := range c.tags {
			id := t.Canonical().String()
			if s.valueType == "" {
				id = strconv.Itoa(int(t.Bucket())) + ":" + id
			}
			if owner, ok := claimed[id]; ok {
				s.ctx.warnf(c.loc, UnreachableCase, "remove the tag value",
					"tag %s is already claimed by case %s", t, owner)
				continue
			}
			claimed[id] = c.name
			kept = append(kept, t)
		}
		if len(kept) == 0 {
			// Keep tags for encoding; decoding skips the case.
			c.decodes = false
			continue
		}
		c.tags = kept
	}
}

// call returns the expression calling the decode function of the case on
// the decoder.
func (s *sumType) call(c *enumCase, decoder string) string {
	return c.decodeFunc + s.typeArgs + "(" + decoder + ")"
}

// caseDecoding returns the body of the function decoding the case.
func (s *sumType) caseDecoding(c *enumCase) block {
	var b block
	if c.whole {
		b.printf("c, err := keyed.DecodeSelf[%s](d)", c.typ)
		b.printf("if err != nil {")
		b.printf("return nil, err")
		b.printf("}")
		b.printf("return c, nil")
		return b
	}
	if t := model.TypeRef(c.typ); t.Optional() {
		b.printf("c := new(%s)", t.Elem())
	} else {
		b.printf("var c %s", c.typ)
	}
	b.append(c.trie.decoding(0, decodeLoc{
		ctx:     s.ctx,
		decoder: "d",
		target:  "c",
		ret:     "return nil, %s",
	}))
	b.printf("return c, nil")
	return b
}

// caseEncoding returns statements encoding the content of the case held by
// the variable source into the encoder.
func (s *sumType) caseEncoding(c *enumCase, encoder, source string) block {
	var b block
	if c.whole {
		b.printf("if err = keyed.EncodeSelf(%s, %s); err != nil {", encoder, source)
		b.printf("return err")
		b.printf("}")
		return b
	}
	b.append(c.trie.encoding(0, encodeLoc{
		ctx:     s.ctx,
		encoder: encoder,
		source:  source,
	}))
	return b
}

// decoding returns the body of the sum type decode function or nil if no
// case is decoded.
func (s *sumType) decoding() block {
	for _, c := range s.cases {
		if c.decodes {
			return s.switcher.decoding(s)
		}
	}
	return nil
}

// encoding returns the body of the sum type encode function or nil if no
// case is encoded.
func (s *sumType) encoding() block {
	var clauses block
	bind, encoded := false, false
	for _, c := range s.cases {
		clauses.printf("case %s:", c.typ)
		if !c.encodes {
			continue
		}
		encoded = true
		bind = bind || c.hasContent()
		clauses.append(s.switcher.encoding(s, c, "c"))
	}
	if !encoded {
		return nil
	}
	var b block
	if bind {
		b.printf("switch c := v.(type) {")
	} else {
		b.printf("switch v.(type) {")
	}
	b.append(clauses)
	b.printf("default:")
	b.printf("return keyed.UnknownCase(e, %s, v)", strconv.Quote(s.name))
	b.printf("}")
	return b
}

// tagEncoders returns statements opening the encoders of the path prefix
// and the name of the innermost one.
func tagEncoders(ctx *Context, encoder string, path []*Key) (block, string) {
	var b block
	for _, k := range path {
		next := ctx.FreshName(k.Ident + "Encoder")
		b.printf("%s := %s.Nested(%s)", next, encoder, k.Const())
		encoder = next
	}
	return b, encoder
}

// tagDecoders returns statements opening the decoders of the path prefix
// and the name of the innermost one. Errors are returned from the decode
// function.
func tagDecoders(ctx *Context, decoder string, path []*Key) (block, string) {
	var b block
	for _, k := range path {
		next := ctx.FreshName(k.Ident + "Decoder")
		b.printf("%s, err := %s.Nested(%s)", next, decoder, k.Const())
		b.printf("if err != nil {")
		b.printf("return nil, err")
		b.printf("}")
		decoder = next
	}
	return b, decoder
}

// sumData is the input of the sum template.
type sumData struct {
	Name          string
	Type          string
	TypeParams    string
	TypeArgs      string
	Keys          []keyConst
	DecodeKeys    []keyConst
	HasDecode     bool
	Decode        string
	DecodeFunc    string
	UnmarshalFunc string
	Cases         []caseFunc
	HasEncode     bool
	Encode        string
	EncodeFunc    string
	MarshalFunc   string
}

// caseFunc is a rendered function decoding a single case.
type caseFunc struct {
	Func string
	Body string
}

// expandSum renders decoding and encoding functions of a sum declaration.
func expandSum(ctx *Context, decl model.Declaration, typeParams, typeArgs string) sumData {
	s := buildSum(ctx, decl, typeParams, typeArgs)
	data := sumData{
		Name:          s.name,
		Type:          s.typ,
		TypeParams:    typeParams,
		TypeArgs:      typeArgs,
		DecodeFunc:    funcName("Decode", s.name),
		UnmarshalFunc: funcName("Unmarshal", s.name) + "From",
		EncodeFunc:    funcName("Encode", s.name),
		MarshalFunc:   funcName("Marshal", s.name) + "To",
	}
	if dec := s.decoding(); dec != nil {
		data.HasDecode = true
		data.Decode = dec.String()
		for _, c := range s.cases {
			if c.decodes {
				data.Cases = append(data.Cases, caseFunc{
					Func: c.decodeFunc,
					Body: s.caseDecoding(c).String(),
				})
			}
		}
	}
	if enc := s.encoding(); enc != nil {
		data.HasEncode = true
		data.Encode = enc.String()
	}
	data.Keys = keyConsts(s.keys)
	data.DecodeKeys = keyConsts(s.decodeKeys)
	return data
}
