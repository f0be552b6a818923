package keyed

import (
	"errors"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func mustDecoder(t *testing.T, s string) *Decoder {
	t.Helper()
	d, err := NewDecoder([]byte(s))
	assert.NilError(t, err)
	return d
}

func TestDecode(t *testing.T) {
	d := mustDecoder(t, `{"a": 1, "b": "x", "n": null}`)

	a, err := Decode[int](d, "a")
	assert.NilError(t, err)
	assert.Equal(t, a, 1)

	_, err = Decode[int](d, "missing")
	var notFound *KeyNotFoundError
	assert.Assert(t, errors.As(err, &notFound))
	assert.Equal(t, notFound.Key, "missing")
	assert.Assert(t, IsKeyNotFound(err))

	_, err = Decode[int](d, "b")
	var mismatch *TypeMismatchError
	assert.Assert(t, errors.As(err, &mismatch))
	assert.DeepEqual(t, mismatch.Path, []string{"b"})
	assert.Assert(t, !IsKeyNotFound(err))
}

func TestDecodeIfPresent(t *testing.T) {
	d := mustDecoder(t, `{"a": 1, "n": null}`)

	a, err := DecodeIfPresent[int](d, "a")
	assert.NilError(t, err)
	assert.Equal(t, *a, 1)

	n, err := DecodeIfPresent[int](d, "n")
	assert.NilError(t, err)
	assert.Assert(t, n == nil)

	m, err := DecodeIfPresent[int](d, "missing")
	assert.NilError(t, err)
	assert.Assert(t, m == nil)
}

func TestDecodeAliases(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		present []string
	}{
		{"primary", `{"name": "a"}`, "a", nil},
		{"alias", `{"title": "b"}`, "b", nil},
		{"second alias", `{"label": "c"}`, "c", nil},
		{"none", `{}`, "", []string{}},
		{"two", `{"name": "a", "title": "b"}`, "", []string{"name", "title"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := mustDecoder(t, tc.input)
			got, err := Decode[string](d, "name", "title", "label")
			if tc.present == nil {
				assert.NilError(t, err)
				assert.Equal(t, got, tc.want)
				return
			}
			var ambiguous *AmbiguousKeyError
			assert.Assert(t, errors.As(err, &ambiguous))
			assert.Equal(t, len(ambiguous.Present), len(tc.present))
			assert.Equal(t, IsKeyNotFound(err), len(tc.present) == 0)
		})
	}
}

func TestDecodeIfPresentAliases(t *testing.T) {
	d := mustDecoder(t, `{}`)
	v, err := DecodeIfPresent[string](d, "name", "title")
	assert.NilError(t, err)
	assert.Assert(t, v == nil)

	d = mustDecoder(t, `{"name": "a", "title": "b"}`)
	_, err = DecodeIfPresent[string](d, "name", "title")
	var ambiguous *AmbiguousKeyError
	assert.Assert(t, errors.As(err, &ambiguous))
}

func TestNested(t *testing.T) {
	d := mustDecoder(t, `{"a": {"b": {"c": 3}}, "s": 1}`)

	a, err := d.Nested("a")
	assert.NilError(t, err)
	b, err := a.Nested("b")
	assert.NilError(t, err)
	c, err := Decode[int](b, "c")
	assert.NilError(t, err)
	assert.Equal(t, c, 3)
	assert.DeepEqual(t, b.Path(), []string{"a", "b"})

	_, err = d.Nested("s")
	var mismatch *TypeMismatchError
	assert.Assert(t, errors.As(err, &mismatch))

	_, err = d.Nested("x")
	assert.Assert(t, IsKeyNotFound(err))
	assert.Assert(t, !d.Contains("x"))
	assert.Assert(t, d.Contains("a"))
}

func TestExpectObject(t *testing.T) {
	assert.NilError(t, mustDecoder(t, `{}`).ExpectObject())
	assert.NilError(t, mustDecoder(t, `{"meta": {}}`).ExpectObject())

	for _, input := range []string{`5`, `"meta"`, `[{"meta": {}}]`, `null`} {
		d := mustDecoder(t, input)
		var mismatch *TypeMismatchError
		assert.Assert(t, errors.As(d.ExpectObject(), &mismatch), input)
		assert.Equal(t, mismatch.Type, "object")
		assert.Assert(t, !d.Contains("meta"), input)
	}
}

func TestSingleKey(t *testing.T) {
	k, err := mustDecoder(t, `{"load": {}}`).SingleKey()
	assert.NilError(t, err)
	assert.Equal(t, k, "load")

	for _, input := range []string{`{}`, `{"a": 1, "b": 2}`} {
		_, err := mustDecoder(t, input).SingleKey()
		var wrong *WrongKeyCountError
		assert.Assert(t, errors.As(err, &wrong), input)
	}
}

func TestKeysOrder(t *testing.T) {
	keys, err := mustDecoder(t, `{"z": 1, "a": 2, "m": 3}`).Keys()
	assert.NilError(t, err)
	assert.DeepEqual(t, keys, []string{"z", "a", "m"})
}

func TestDecodeWith(t *testing.T) {
	d := mustDecoder(t, `{"at": 86400, "id": "9007199254740993"}`)

	at, err := DecodeWith[time.Time](d, UnixTime{}, "at")
	assert.NilError(t, err)
	assert.Assert(t, at.Equal(time.Unix(86400, 0)))

	id, err := DecodeWith[int64](d, NumberString{}, "id")
	assert.NilError(t, err)
	assert.Equal(t, id, int64(9007199254740993))

	missing, err := DecodeWithIfPresent[time.Time](d, UnixTime{}, "missing")
	assert.NilError(t, err)
	assert.Assert(t, missing == nil)
}

func TestNoMatchingCase(t *testing.T) {
	d := mustDecoder(t, `{"type": "unknown"}`)
	err := NoMatchingTag(d, "type", "Command")
	var mismatch *TypeMismatchError
	assert.Assert(t, errors.As(err, &mismatch))
	assert.Assert(t, is.Contains(err.Error(), "$.type"))
}
