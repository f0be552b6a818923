package keyed

import (
	"bytes"
	"errors"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

var errNotObject = errors.New("keyed: encoder already holds a non-object value")

// Encoder accumulates a JSON value. It is either an object whose members
// are kept in insertion order, or a single value set by [EncodeSelf].
type Encoder struct {
	path    []string
	names   []string
	members map[string]*member
	value   jsontext.Value
}

type member struct {
	value  jsontext.Value
	nested *Encoder
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Path returns the coding path of the encoder.
func (e *Encoder) Path() []string {
	return e.path
}

func (e *Encoder) member(key string) (*member, error) {
	if e.value != nil {
		return nil, errNotObject
	}
	if m, ok := e.members[key]; ok {
		return m, nil
	}
	if e.members == nil {
		e.members = make(map[string]*member)
	}
	m := &member{}
	e.names = append(e.names, key)
	e.members[key] = m
	return m, nil
}

func (e *Encoder) set(key string, v jsontext.Value) error {
	m, err := e.member(key)
	if err != nil {
		return err
	}
	m.value, m.nested = v, nil
	return nil
}

// Nested returns the encoder for the value at key. Calling Nested again
// with the same key returns the same encoder.
func (e *Encoder) Nested(key string) *Encoder {
	m, err := e.member(key)
	if err != nil {
		// The encoder already holds a scalar. Return a detached encoder so
		// that the error surfaces when the value is set instead.
		return &Encoder{path: appendPath(e.path, key)}
	}
	if m.nested == nil {
		m.nested = &Encoder{path: appendPath(e.path, key)}
		m.value = nil
	}
	return m.nested
}

func (e *Encoder) merge(v jsontext.Value) error {
	if v.Kind() != '{' {
		if len(e.names) > 0 || e.value != nil {
			return errNotObject
		}
		e.value = v
		return nil
	}
	d := &Decoder{path: e.path, value: v}
	obj, err := d.object()
	if err != nil {
		return err
	}
	for _, name := range obj.names {
		if err := e.set(name, obj.values[name]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalTo writes the accumulated value to enc. An encoder without members
// is written as an empty object.
func (e *Encoder) MarshalTo(enc *jsontext.Encoder) error {
	if e.value != nil {
		return enc.WriteValue(e.value)
	}
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, name := range e.names {
		if err := enc.WriteToken(jsontext.String(name)); err != nil {
			return err
		}
		m := e.members[name]
		if m.nested != nil {
			if err := m.nested.MarshalTo(enc); err != nil {
				return err
			}
			continue
		}
		if err := enc.WriteValue(m.value); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// Bytes returns the accumulated value as JSON.
func (e *Encoder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.MarshalTo(jsontext.NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Encode encodes v at key.
func Encode[T any](e *Encoder, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return e.set(key, data)
}

// EncodeIfPresent encodes *v at key unless v is nil.
func EncodeIfPresent[T any](e *Encoder, key string, v *T) error {
	if v == nil {
		return nil
	}
	return Encode(e, key, *v)
}

// EncodeWith encodes v at key using the helper h.
func EncodeWith[T any](e *Encoder, h Encoding[T], key string, v T) error {
	return h.Encode(e.Nested(key), v)
}

// EncodeWithIfPresent encodes *v at key using the helper h unless v is nil.
func EncodeWithIfPresent[T any](e *Encoder, h Encoding[T], key string, v *T) error {
	if v == nil {
		return nil
	}
	return EncodeWith(e, h, key, *v)
}

// EncodeSelf encodes v into e itself. Object members of v are merged into e;
// any other value becomes the value of e.
func EncodeSelf[T any](e *Encoder, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return e.merge(data)
}

// EncodeSelfWith encodes v into e itself using the helper h.
func EncodeSelfWith[T any](e *Encoder, h Encoding[T], v T) error {
	return h.Encode(e, v)
}
