package codegen

// keyTrie groups fields by key path so that a container shared by several
// fields is opened once. Children keep first registration order.
type keyTrie struct {
	nodes []trieNode
}

type trieNode struct {
	// fields are fields whose path ends at this node.
	fields []trieField
	// keys and children are parallel: children[i] is the node at keys[i].
	keys     []*Key
	children []int
	index    map[*Key]int
}

type trieField struct {
	field fieldCoder
	// key is the last path segment, or nil for fields coded from the
	// container itself.
	key *Key
}

func newKeyTrie() *keyTrie {
	return &keyTrie{nodes: []trieNode{{}}}
}

// register adds the field at the path.
func (t *keyTrie) register(f fieldCoder, path []*Key) {
	if len(path) == 0 {
		t.nodes[0].fields = append(t.nodes[0].fields, trieField{field: f})
		return
	}
	n := 0
	for _, k := range path[:len(path)-1] {
		n = t.child(n, k)
	}
	last := path[len(path)-1]
	t.nodes[n].fields = append(t.nodes[n].fields, trieField{field: f, key: last})
}

func (t *keyTrie) child(n int, k *Key) int {
	if i, ok := t.nodes[n].index[k]; ok {
		return i
	}
	i := len(t.nodes)
	t.nodes = append(t.nodes, trieNode{})
	node := &t.nodes[n]
	if node.index == nil {
		node.index = make(map[*Key]int)
	}
	node.index[k] = i
	node.keys = append(node.keys, k)
	node.children = append(node.children, i)
	return i
}

// walk calls fn for every field in the subtree rooted at n in rendering
// order.
func (t *keyTrie) walk(n int, fn func(trieField)) {
	for _, f := range t.nodes[n].fields {
		fn(f)
	}
	for _, c := range t.nodes[n].children {
		t.walk(c, fn)
	}
}

func (t *keyTrie) decodes(n int) bool {
	ok := false
	t.walk(n, func(f trieField) { ok = ok || f.field.decodes() })
	return ok
}

func (t *keyTrie) encodes(n int) bool {
	ok := false
	t.walk(n, func(f trieField) { ok = ok || f.field.encodes() })
	return ok
}

// assigns reports whether decoding of the subtree produces any statement.
func (t *keyTrie) assigns(n int) bool {
	ok := false
	t.walk(n, func(f trieField) {
		_, initial := f.field.initial()
		ok = ok || f.field.decodes() || initial
	})
	return ok
}

// fallback aggregates fallbacks of decoded fields in the subtree.
func (t *keyTrie) fallback(n int) Fallback {
	var fbs []Fallback
	t.walk(n, func(f trieField) {
		if f.field.decodes() {
			fbs = append(fbs, f.field.fallback())
		}
	})
	return aggregateFallback(fbs)
}

// decoding returns statements decoding fields of the subtree rooted at n.
func (t *keyTrie) decoding(n int, loc decodeLoc) block {
	var b block
	node := t.nodes[n]
	for _, f := range node.fields {
		l := loc
		l.key = f.key
		b.append(fieldDecoding(f.field, l))
	}
	for i, k := range node.keys {
		c := node.children[i]
		if !t.assigns(c) {
			continue
		}
		if !t.decodes(c) {
			// Only fields assigned their initial value.
			b.append(t.decoding(c, loc))
			continue
		}
		inner := loc
		inner.decoder = loc.ctx.FreshName(k.Ident + "Decoder")
		nested := inner.decoder + ", err := " + loc.decoder + ".Nested(" + k.Const() + ")"

		switch fb := t.fallback(c); fb.Kind {
		case FallbackThrow:
			b.line(nested)
			b.printf("if err != nil {")
			b.line(loc.fail("err"))
			b.printf("}")
			b.append(t.decoding(c, inner))
		case FallbackIfMissing:
			b.printf("if err := %s.ExpectObject(); err != nil {", loc.decoder)
			b.line(loc.fail("err"))
			b.printf("}")
			b.printf("if %s.Contains(%s) {", loc.decoder, k.Const())
			b.line(nested)
			b.printf("if err != nil {")
			b.line(loc.fail("err"))
			b.printf("}")
			b.append(t.decoding(c, inner))
			b.printf("} else {")
			t.walk(c, func(f trieField) { b.append(fieldMissing(f.field, loc.target)) })
			b.printf("}")
		case FallbackIfMissingOrError:
			b.printf("switch %s; {", nested)
			b.printf("case err == nil:")
			b.append(t.decoding(c, inner))
			b.printf("case keyed.IsKeyNotFound(err):")
			t.walk(c, func(f trieField) { b.append(fieldMissing(f.field, loc.target)) })
			b.printf("default:")
			t.walk(c, func(f trieField) { b.append(fieldFailed(f.field, loc.target)) })
			b.printf("}")
		}
	}
	return b
}

// encoding returns statements encoding fields of the subtree rooted at n.
func (t *keyTrie) encoding(n int, loc encodeLoc) block {
	var b block
	node := t.nodes[n]
	for _, f := range node.fields {
		l := loc
		l.key = f.key
		b.append(fieldEncoding(f.field, l))
	}
	for i, k := range node.keys {
		c := node.children[i]
		if !t.encodes(c) {
			continue
		}
		inner := loc
		inner.encoder = loc.ctx.FreshName(k.Ident + "Encoder")
		b.printf("%s := %s.Nested(%s)", inner.encoder, loc.encoder, k.Const())
		b.append(t.encoding(c, inner))
	}
	return b
}
