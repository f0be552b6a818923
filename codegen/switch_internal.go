package codegen

import (
	"strconv"
	"strings"

	"go.pact.im/x/keyedgen/model"
)

// internalSwitcher selects the case by a discriminator stored at the tag
// path. Without a content path the case fields share the object with the
// discriminator (internal tagging); with one they are stored at the content
// path (adjacent tagging).
type internalSwitcher struct{}

// bucket is the set of tags decoded as a single Go type.
type bucket struct {
	goType  string
	entries []bucketEntry
}

type bucketEntry struct {
	tag model.Literal
	c   *enumCase
}

// bucketOrder is the order buckets are tried in when the discriminator type
// is inferred from tags.
var bucketOrder = []struct {
	kind   model.LiteralKind
	goType string
}{
	{model.LiteralBool, "bool"},
	{model.LiteralInt, "int"},
	{model.LiteralFloat, "float64"},
	{model.LiteralString, "string"},
}

// buckets groups decode tags of all cases. A declared value type yields a
// single bucket.
func (internalSwitcher) buckets(s *sumType) []bucket {
	if s.valueType != "" {
		b := bucket{goType: s.valueType}
		for _, c := range s.cases {
			if !c.decodes {
				continue
			}
			for _, t := range c.tags {
				b.entries = append(b.entries, bucketEntry{t, c})
			}
		}
		return []bucket{b}
	}
	var bs []bucket
	for _, o := range bucketOrder {
		b := bucket{goType: o.goType}
		for _, c := range s.cases {
			if !c.decodes {
				continue
			}
			for _, t := range c.tags {
				if t.Bucket() == o.kind {
					b.entries = append(b.entries, bucketEntry{t, c})
				}
			}
		}
		if len(b.entries) > 0 {
			bs = append(bs, b)
		}
	}
	return bs
}

func (sw internalSwitcher) decoding(s *sumType) block {
	var b block
	prefix, last := s.tagPath[:len(s.tagPath)-1], s.tagPath[len(s.tagPath)-1]
	open, tagDecoder := tagDecoders(s.ctx, "d", prefix)
	b.append(open)

	caseDecoder := "d"
	if len(s.content) > 0 {
		open, parent := tagDecoders(s.ctx, "d", s.content[:len(s.content)-1])
		b.append(open)
		caseDecoder = s.ctx.FreshName("content")
		b.printf("%s, err := %s.Super(%s)", caseDecoder, parent, s.content[len(s.content)-1].Const())
		b.printf("if err != nil {")
		b.printf("return nil, err")
		b.printf("}")
	}

	buckets := sw.buckets(s)
	exhaustive := false
	for _, bk := range buckets {
		tag := s.ctx.FreshName("tag")
		decode := "keyed.Decode[" + bk.goType + "](" + tagDecoder + ", " + last.Const() + ")"
		if s.valueType != "" {
			b.printf("%s, err := %s", tag, decode)
			b.printf("if err != nil {")
			b.printf("return nil, err")
			b.printf("}")
			sel, all := sw.selection(s, bk, tag, caseDecoder)
			b.append(sel)
			exhaustive = all
			continue
		}
		b.printf("if %s, err := %s; err == nil {", tag, decode)
		sel, _ := sw.selection(s, bk, tag, caseDecoder)
		b.append(sel)
		b.printf("}")
	}
	if !exhaustive {
		b.printf("return nil, keyed.NoMatchingTag(%s, %s, %s)", tagDecoder, last.Const(), strconv.Quote(s.name))
	}
	return b
}

// selection returns statements returning the case matching the tag
// variable. Literal tags are tested before ranges so that a literal wins
// over an overlapping range. It also reports whether the statements return
// for every value of the tag, i.e. both booleans are claimed.
func (internalSwitcher) selection(s *sumType, bk bucket, tag, decoder string) (block, bool) {
	var b block
	if bk.goType == "bool" {
		var onTrue, onFalse *enumCase
		for _, e := range bk.entries {
			if e.tag.Value == "true" {
				onTrue = e.c
			} else {
				onFalse = e.c
			}
		}
		switch {
		case onTrue != nil && onFalse != nil:
			b.printf("if %s {", tag)
			b.printf("return %s", s.call(onTrue, decoder))
			b.printf("}")
			b.printf("return %s", s.call(onFalse, decoder))
			return b, true
		case onTrue != nil:
			b.printf("if %s {", tag)
			b.printf("return %s", s.call(onTrue, decoder))
			b.printf("}")
		case onFalse != nil:
			b.printf("if !%s {", tag)
			b.printf("return %s", s.call(onFalse, decoder))
			b.printf("}")
		}
		return b, false
	}

	var literals, ranges []bucketEntry
	for _, e := range bk.entries {
		if e.tag.Kind == model.LiteralRange {
			ranges = append(ranges, e)
		} else {
			literals = append(literals, e)
		}
	}
	// Literals of a case are grouped into a single clause in the order of
	// the first tag of each case.
	var order []*enumCase
	grouped := make(map[*enumCase][]model.Literal)
	for _, e := range literals {
		if _, ok := grouped[e.c]; !ok {
			order = append(order, e.c)
		}
		grouped[e.c] = append(grouped[e.c], e.tag)
	}

	if len(ranges) == 0 {
		b.printf("switch %s {", tag)
		for _, c := range order {
			exprs := make([]string, len(grouped[c]))
			for i, t := range grouped[c] {
				exprs[i] = t.GoExpr()
			}
			b.printf("case %s:", strings.Join(exprs, ", "))
			b.printf("return %s", s.call(c, decoder))
		}
		b.printf("}")
		return b, false
	}

	b.printf("switch {")
	for _, c := range order {
		conds := make([]string, len(grouped[c]))
		for i, t := range grouped[c] {
			conds[i] = t.GoCondition(tag)
		}
		b.printf("case %s:", strings.Join(conds, ", "))
		b.printf("return %s", s.call(c, decoder))
	}
	for _, e := range ranges {
		b.printf("case %s:", e.tag.GoCondition(tag))
		b.printf("return %s", s.call(e.c, decoder))
	}
	b.printf("}")
	return b, false
}

func (internalSwitcher) encoding(s *sumType, c *enumCase, source string) block {
	var b block
	prefix, last := s.tagPath[:len(s.tagPath)-1], s.tagPath[len(s.tagPath)-1]
	open, tagEncoder := tagEncoders(s.ctx, "e", prefix)
	b.append(open)
	encode := "keyed.Encode"
	if s.valueType != "" {
		encode += "[" + s.valueType + "]"
	}
	b.printf("if err = %s(%s, %s, %s); err != nil {", encode, tagEncoder, last.Const(), c.tag.GoExpr())
	b.printf("return err")
	b.printf("}")

	if len(s.content) == 0 {
		b.append(s.caseEncoding(c, "e", source))
		return b
	}
	open, parent := tagEncoders(s.ctx, "e", s.content[:len(s.content)-1])
	b.append(open)
	contentKey := s.content[len(s.content)-1]
	if !c.hasContent() {
		b.printf("%s.Nested(%s)", parent, contentKey.Const())
		return b
	}
	encoder := s.ctx.FreshName("content")
	b.printf("%s := %s.Nested(%s)", encoder, parent, contentKey.Const())
	b.append(s.caseEncoding(c, encoder, source))
	return b
}
