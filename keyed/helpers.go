package keyed

import (
	"strconv"
	"time"
)

var (
	_ Coder[time.Time] = UnixTime{}
	_ Coder[int64]     = NumberString{}
)

// UnixTime codes [time.Time] as the number of seconds since the Unix epoch.
type UnixTime struct{}

// Decode implements the [Decoding] interface.
func (UnixTime) Decode(d *Decoder) (time.Time, error) {
	sec, err := DecodeSelf[int64](d)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}

// Encode implements the [Encoding] interface.
func (UnixTime) Encode(e *Encoder, v time.Time) error {
	return EncodeSelf(e, v.Unix())
}

// NumberString codes an int64 as a decimal string, for values that exceed
// the precision of JSON numbers in common consumers.
type NumberString struct{}

// Decode implements the [Decoding] interface.
func (NumberString) Decode(d *Decoder) (int64, error) {
	s, err := DecodeSelf[string](d)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &TypeMismatchError{Path: d.Path(), Type: "int64", Err: err}
	}
	return n, nil
}

// Encode implements the [Encoding] interface.
func (NumberString) Encode(e *Encoder, v int64) error {
	return EncodeSelf(e, strconv.FormatInt(v, 10))
}
