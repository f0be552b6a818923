package keyed

import (
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestEncoder(t *testing.T) {
	e := NewEncoder()
	assert.NilError(t, Encode(e, "b", 1))
	assert.NilError(t, Encode(e, "a", "x"))
	assert.NilError(t, EncodeIfPresent[int](e, "skip", nil))

	nested := e.Nested("n")
	assert.NilError(t, Encode(nested, "c", true))
	assert.Assert(t, e.Nested("n") == nested)
	assert.NilError(t, Encode(e.Nested("n"), "d", false))

	data, err := e.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"b":1,"a":"x","n":{"c":true,"d":false}}`)
}

func TestEncodeReplacesValue(t *testing.T) {
	e := NewEncoder()
	assert.NilError(t, Encode(e, "a", 1))
	assert.NilError(t, Encode(e, "a", 2))
	data, err := e.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"a":2}`)
}

func TestEncodeSelf(t *testing.T) {
	e := NewEncoder()
	assert.NilError(t, Encode(e, "kind", "point"))
	assert.NilError(t, EncodeSelf(e, map[string]int{"x": 1}))
	data, err := e.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"kind":"point","x":1}`)

	scalar := NewEncoder()
	assert.NilError(t, EncodeSelf(scalar, 42))
	data, err = scalar.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `42`)

	assert.ErrorContains(t, Encode(scalar, "a", 1), "non-object")
}

func TestEncodeWith(t *testing.T) {
	e := NewEncoder()
	assert.NilError(t, EncodeWith[time.Time](e, UnixTime{}, "at", time.Unix(60, 0)))
	assert.NilError(t, EncodeWith[int64](e, NumberString{}, "id", 7))
	assert.NilError(t, EncodeWithIfPresent[time.Time](e, UnixTime{}, "skip", nil))
	data, err := e.Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"at":60,"id":"7"}`)
}

func TestEmptyEncoder(t *testing.T) {
	data, err := NewEncoder().Bytes()
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{}`)
}
