package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gopkg.in/yaml.v3"
)

var (
	_ json.UnmarshalerFrom = (*Literal)(nil)
	_ json.MarshalerTo     = (*Literal)(nil)
	_ yaml.Unmarshaler     = (*Literal)(nil)
)

// LiteralKind is an enumeration of literal kinds.
type LiteralKind int

const (
	// LiteralString is a string literal.
	LiteralString LiteralKind = iota
	// LiteralInt is an integer literal.
	LiteralInt
	// LiteralFloat is a floating-point literal.
	LiteralFloat
	// LiteralBool is a boolean literal.
	LiteralBool
	// LiteralRange is a range of integer or floating-point values.
	LiteralRange
)

// Literal is a constant used as a tag value or an alias key.
type Literal struct {
	// Kind is the kind of the literal.
	Kind LiteralKind
	// Value is the literal value: the unquoted text for strings and the Go
	// source text otherwise. Unused for ranges.
	Value string
	// Low is the inclusive lower bound of a range. Nil means unbounded.
	Low *Literal
	// High is the upper bound of a range. Nil means unbounded.
	High *Literal
	// HighInclusive reports whether High is included in the range.
	HighInclusive bool
}

// String returns a string literal.
func String(s string) Literal {
	return Literal{Kind: LiteralString, Value: s}
}

// Int returns an integer literal.
func Int(n int64) Literal {
	return Literal{Kind: LiteralInt, Value: strconv.FormatInt(n, 10)}
}

// Float returns a floating-point literal.
func Float(f float64) Literal {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return Literal{Kind: LiteralFloat, Value: s}
}

// Bool returns a boolean literal.
func Bool(b bool) Literal {
	return Literal{Kind: LiteralBool, Value: strconv.FormatBool(b)}
}

// Range returns a range literal. Either bound may be nil.
func Range(low, high *Literal, highInclusive bool) Literal {
	return Literal{Kind: LiteralRange, Low: low, High: high, HighInclusive: highInclusive}
}

// Bucket returns the scalar kind of the literal: the kind of its bounds for
// ranges and the literal kind otherwise. Ranges mixing integer and
// floating-point bounds are floating-point.
func (l Literal) Bucket() LiteralKind {
	if l.Kind != LiteralRange {
		return l.Kind
	}
	for _, b := range []*Literal{l.Low, l.High} {
		if b != nil && b.Kind == LiteralFloat {
			return LiteralFloat
		}
	}
	return LiteralInt
}

// GoExpr returns Go source for the literal value. It is not defined for
// ranges.
func (l Literal) GoExpr() string {
	if l.Kind == LiteralString {
		return strconv.Quote(l.Value)
	}
	return l.Value
}

// GoCondition returns a Go boolean expression testing whether the variable
// named x matches the literal.
func (l Literal) GoCondition(x string) string {
	if l.Kind != LiteralRange {
		return x + " == " + l.GoExpr()
	}
	var conds []string
	if l.Low != nil {
		conds = append(conds, x+" >= "+l.Low.GoExpr())
	}
	if l.High != nil {
		op := " < "
		if l.HighInclusive {
			op = " <= "
		}
		conds = append(conds, x+op+l.High.GoExpr())
	}
	if len(conds) == 0 {
		return "true"
	}
	return strings.Join(conds, " && ")
}

// Canonical returns the literal with numbers spelled in the shortest form
// that denotes the same value, e.g. "1.5" for "1.50" and "1" for both "1.0"
// and "01". Range bounds are made canonical too.
func (l Literal) Canonical() Literal {
	switch l.Kind {
	case LiteralInt:
		if n, err := strconv.ParseInt(l.Value, 10, 64); err == nil {
			l.Value = strconv.FormatInt(n, 10)
		}
	case LiteralFloat:
		if f, err := strconv.ParseFloat(l.Value, 64); err == nil {
			l.Value = strconv.FormatFloat(f, 'g', -1, 64)
		}
	case LiteralRange:
		for _, b := range []**Literal{&l.Low, &l.High} {
			if *b != nil {
				c := (*b).Canonical()
				*b = &c
			}
		}
	}
	return l
}

// Equal reports whether two literals denote the same value.
func (l Literal) Equal(o Literal) bool {
	if l.Kind != o.Kind {
		return false
	}
	if l.Kind != LiteralRange {
		return l.Canonical().Value == o.Canonical().Value
	}
	return equalBound(l.Low, o.Low) && equalBound(l.High, o.High) &&
		l.HighInclusive == o.HighInclusive
}

func equalBound(a, b *Literal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// String implements the [fmt.Stringer] interface.
func (l Literal) String() string {
	if l.Kind != LiteralRange {
		return l.GoExpr()
	}
	var b strings.Builder
	if l.Low != nil {
		b.WriteString(l.Low.GoExpr())
	}
	if l.HighInclusive {
		b.WriteString("...")
	} else {
		b.WriteString("..<")
	}
	if l.High != nil {
		b.WriteString(l.High.GoExpr())
	}
	return b.String()
}

// literalRange is the object form of a range literal.
type literalRange struct {
	From    *Literal `json:"from,omitempty" yaml:"from,omitempty"`
	To      *Literal `json:"to,omitempty" yaml:"to,omitempty"`
	Through *Literal `json:"through,omitempty" yaml:"through,omitempty"`
}

func (r literalRange) literal() (Literal, error) {
	if r.To != nil && r.Through != nil {
		return Literal{}, fmt.Errorf("range cannot have both to and through bounds")
	}
	for _, b := range []*Literal{r.From, r.To, r.Through} {
		if b != nil && b.Kind != LiteralInt && b.Kind != LiteralFloat {
			return Literal{}, fmt.Errorf("range bound %s is not a number", b)
		}
	}
	if r.Through != nil {
		return Range(r.From, r.Through, true), nil
	}
	return Range(r.From, r.To, false), nil
}

func numberLiteral(s string) (Literal, error) {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Literal{Kind: LiteralInt, Value: s}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Literal{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}

// UnmarshalJSONFrom implements the [json.UnmarshalerFrom] interface.
func (l *Literal) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	switch dec.PeekKind() {
	case '{':
		var r literalRange
		if err := json.UnmarshalDecode(dec, &r); err != nil {
			return err
		}
		v, err := r.literal()
		if err != nil {
			return err
		}
		*l = v
		return nil
	}
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch tok.Kind() {
	case 't', 'f':
		*l = Bool(tok.Bool())
	case '"':
		*l = String(tok.String())
	case '0':
		v, err := numberLiteral(tok.String())
		if err != nil {
			return err
		}
		*l = v
	default:
		return fmt.Errorf("unexpected %s for literal", tok.Kind())
	}
	return nil
}

// MarshalJSONTo implements the [json.MarshalerTo] interface.
func (l *Literal) MarshalJSONTo(enc *jsontext.Encoder) error {
	switch l.Kind {
	case LiteralString:
		return enc.WriteToken(jsontext.String(l.Value))
	case LiteralBool:
		return enc.WriteToken(jsontext.Bool(l.Value == "true"))
	case LiteralInt, LiteralFloat:
		return enc.WriteValue(jsontext.Value(l.Value))
	}
	r := literalRange{From: l.Low}
	if l.HighInclusive {
		r.Through = l.High
	} else {
		r.To = l.High
	}
	return json.MarshalEncode(enc, &r)
}

// UnmarshalYAML implements the [yaml.Unmarshaler] interface.
func (l *Literal) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var r literalRange
		if err := node.Decode(&r); err != nil {
			return err
		}
		v, err := r.literal()
		if err != nil {
			return err
		}
		*l = v
		return nil
	case yaml.ScalarNode:
	default:
		return fmt.Errorf("line %d: literal must be a scalar or a range", node.Line)
	}
	switch node.ShortTag() {
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*l = Bool(b)
	case "!!int", "!!float":
		v, err := numberLiteral(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*l = v
	default:
		*l = String(node.Value)
	}
	return nil
}
