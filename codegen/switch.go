package codegen

import (
	"strconv"
	"strings"
)

// tagSwitcher renders selection of the case of a sum type on decoding and
// the case representation on encoding.
type tagSwitcher interface {
	// decoding returns the body of the sum type decode function.
	decoding(s *sumType) block
	// encoding returns statements encoding the case held by the variable
	// source. It is rendered inside a type switch clause.
	encoding(s *sumType, c *enumCase, source string) block
}

// externalSwitcher selects the case by the single key of an object whose
// value is the case content.
type externalSwitcher struct{}

func (externalSwitcher) decoding(s *sumType) block {
	var b block
	key := s.ctx.FreshName("key")
	content := s.ctx.FreshName("content")
	b.printf("%s, err := d.SingleKey()", key)
	b.printf("if err != nil {")
	b.printf("return nil, err")
	b.printf("}")
	b.printf("%s, err := d.Super(%s)", content, key)
	b.printf("if err != nil {")
	b.printf("return nil, err")
	b.printf("}")
	b.printf("switch %s {", key)
	for _, c := range s.cases {
		if !c.decodes {
			continue
		}
		consts := make([]string, len(c.tagKeys))
		for i, k := range c.tagKeys {
			consts[i] = k.Const()
		}
		b.printf("case %s:", strings.Join(consts, ", "))
		b.printf("return %s", s.call(c, content))
	}
	b.printf("}")
	b.printf("return nil, keyed.NoMatchingCase(d, %s)", strconv.Quote(s.name))
	return b
}

func (externalSwitcher) encoding(s *sumType, c *enumCase, source string) block {
	var b block
	if !c.hasContent() {
		b.printf("e.Nested(%s)", c.tagKey.Const())
		return b
	}
	encoder := s.ctx.FreshName(c.tagKey.Ident + "Encoder")
	b.printf("%s := e.Nested(%s)", encoder, c.tagKey.Const())
	b.append(s.caseEncoding(c, encoder, source))
	return b
}

// untaggedSwitcher tries every case in declaration order. The first case
// that decodes wins.
type untaggedSwitcher struct{}

func (untaggedSwitcher) decoding(s *sumType) block {
	var b block
	mismatch := s.ctx.FreshName("mismatch")
	b.printf("%s := keyed.NoMatchingCase(d, %s)", mismatch, strconv.Quote(s.name))
	for _, c := range s.cases {
		if !c.decodes {
			continue
		}
		v := s.ctx.FreshName("case")
		b.printf("if %s, err := %s; err == nil {", v, s.call(c, "d"))
		b.printf("return %s, nil", v)
		b.printf("}")
	}
	b.printf("return nil, %s", mismatch)
	return b
}

func (untaggedSwitcher) encoding(s *sumType, c *enumCase, source string) block {
	return s.caseEncoding(c, "e", source)
}
