package keyed

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Decoder is a read-only view of a JSON value. Object members are parsed on
// first access; a Decoder for a non-object value can only be decoded as a
// whole.
type Decoder struct {
	path  []string
	value jsontext.Value
	obj   *object
}

type object struct {
	names  []string
	values map[string]jsontext.Value
}

// NewDecoder returns a decoder for the first JSON value in data.
func NewDecoder(data []byte) (*Decoder, error) {
	return ReadDecoder(jsontext.NewDecoder(bytes.NewReader(data)))
}

// ReadDecoder reads the next JSON value from dec and returns a decoder for
// it. It is used by generated [json.UnmarshalerFrom] implementations.
func ReadDecoder(dec *jsontext.Decoder) (*Decoder, error) {
	v, err := dec.ReadValue()
	if err != nil {
		return nil, err
	}
	return &Decoder{value: v.Clone()}, nil
}

// Path returns the coding path of the decoder.
func (d *Decoder) Path() []string {
	return d.path
}

// Value returns the raw JSON value.
func (d *Decoder) Value() jsontext.Value {
	return d.value
}

// IsNull reports whether the value is JSON null.
func (d *Decoder) IsNull() bool {
	return d.value.Kind() == 'n'
}

func (d *Decoder) object() (*object, error) {
	if d.obj != nil {
		return d.obj, nil
	}
	if d.value.Kind() != '{' {
		return nil, &TypeMismatchError{
			Path: d.path,
			Type: "object",
			Msg:  "found " + kindName(d.value.Kind()),
		}
	}
	dec := jsontext.NewDecoder(bytes.NewReader(d.value))
	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	obj := &object{values: make(map[string]jsontext.Value)}
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		name := tok.String()
		val, err := dec.ReadValue()
		if err != nil {
			return nil, err
		}
		obj.names = append(obj.names, name)
		obj.values[name] = val.Clone()
	}
	d.obj = obj
	return obj, nil
}

// ExpectObject returns a [TypeMismatchError] if the decoder is not an object.
func (d *Decoder) ExpectObject() error {
	_, err := d.object()
	return err
}

// Contains reports whether the decoder is an object with the given key. Use
// [Decoder.ExpectObject] to tell a missing key from a value that is not an
// object.
func (d *Decoder) Contains(key string) bool {
	obj, err := d.object()
	if err != nil {
		return false
	}
	_, ok := obj.values[key]
	return ok
}

// Keys returns object keys in document order.
func (d *Decoder) Keys() ([]string, error) {
	obj, err := d.object()
	if err != nil {
		return nil, err
	}
	return obj.names, nil
}

// SingleKey returns the only key of an object. It returns
// [*WrongKeyCountError] if the object is empty or has more than one key.
func (d *Decoder) SingleKey() (string, error) {
	keys, err := d.Keys()
	if err != nil {
		return "", err
	}
	if len(keys) != 1 {
		return "", &WrongKeyCountError{Path: d.path, Keys: keys}
	}
	return keys[0], nil
}

// Super returns a decoder for the value at key. The value may be of any
// kind.
func (d *Decoder) Super(key string) (*Decoder, error) {
	obj, err := d.object()
	if err != nil {
		return nil, err
	}
	v, ok := obj.values[key]
	if !ok {
		return nil, &KeyNotFoundError{Path: d.path, Key: key}
	}
	return &Decoder{path: appendPath(d.path, key), value: v}, nil
}

// Nested returns a decoder for the object at key.
func (d *Decoder) Nested(key string) (*Decoder, error) {
	sub, err := d.Super(key)
	if err != nil {
		return nil, err
	}
	if _, err := sub.object(); err != nil {
		return nil, err
	}
	return sub, nil
}

// lookup returns a decoder for the value at key or, if aliases are given,
// at the single present key among key and aliases.
func (d *Decoder) lookup(key string, aliases []string) (*Decoder, error) {
	if len(aliases) == 0 {
		return d.Super(key)
	}
	obj, err := d.object()
	if err != nil {
		return nil, err
	}
	keys := append([]string{key}, aliases...)
	var present []string
	for _, k := range keys {
		if _, ok := obj.values[k]; ok {
			present = append(present, k)
		}
	}
	if len(present) != 1 {
		return nil, &AmbiguousKeyError{Path: d.path, Keys: keys, Present: present}
	}
	return d.Super(present[0])
}

func (d *Decoder) unmarshal(v any) error {
	if err := json.Unmarshal(d.value, v); err != nil {
		return &TypeMismatchError{
			Path: d.path,
			Type: reflect.TypeOf(v).Elem().String(),
			Err:  err,
		}
	}
	return nil
}

// Decode decodes the value at key as T. If aliases are given, exactly one
// of key and aliases must be present.
func Decode[T any](d *Decoder, key string, aliases ...string) (T, error) {
	var v T
	sub, err := d.lookup(key, aliases)
	if err != nil {
		return v, err
	}
	if err := sub.unmarshal(&v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeIfPresent is like [Decode] but returns nil if no candidate key is
// present or the value is null.
func DecodeIfPresent[T any](d *Decoder, key string, aliases ...string) (*T, error) {
	sub, err := d.lookup(key, aliases)
	if err != nil {
		if IsKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if sub.IsNull() {
		return nil, nil
	}
	v := new(T)
	if err := sub.unmarshal(v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeWith decodes the value at key using the helper h.
func DecodeWith[T any](d *Decoder, h Decoding[T], key string, aliases ...string) (T, error) {
	sub, err := d.lookup(key, aliases)
	if err != nil {
		var zero T
		return zero, err
	}
	return h.Decode(sub)
}

// DecodeWithIfPresent is like [DecodeWith] but returns nil if no candidate
// key is present or the value is null.
func DecodeWithIfPresent[T any](d *Decoder, h Decoding[T], key string, aliases ...string) (*T, error) {
	sub, err := d.lookup(key, aliases)
	if err != nil {
		if IsKeyNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if sub.IsNull() {
		return nil, nil
	}
	v, err := h.Decode(sub)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeSelf decodes the whole value of d as T.
func DecodeSelf[T any](d *Decoder) (T, error) {
	var v T
	if err := d.unmarshal(&v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeSelfWith decodes the whole value of d using the helper h.
func DecodeSelfWith[T any](d *Decoder, h Decoding[T]) (T, error) {
	return h.Decode(d)
}

func kindName(k jsontext.Kind) string {
	switch k {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '"':
		return "string"
	case '0':
		return "number"
	case '{':
		return "object"
	case '[':
		return "array"
	}
	return fmt.Sprintf("invalid value %q", k)
}
