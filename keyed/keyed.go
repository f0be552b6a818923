// Package keyed is the runtime for code generated by keyedgen. It exposes
// JSON values as keyed containers so that generated code can decode a value
// of a given type at a key, open nested containers and resolve aliased keys
// without reflection on the caller side.
//
// Values are parsed and formatted with github.com/go-json-experiment/json.
package keyed

// Decodable is implemented by types with generated decoding.
type Decodable interface {
	DecodeKeyed(d *Decoder) error
}

// Encodable is implemented by types with generated encoding.
type Encodable interface {
	EncodeKeyed(e *Encoder) error
}

// Decoding decodes values of type T from a decoder. It is the contract for
// helper coders that replace the default decoding of a field.
type Decoding[T any] interface {
	Decode(d *Decoder) (T, error)
}

// Encoding encodes values of type T into an encoder. It is the contract for
// helper coders that replace the default encoding of a field.
type Encoding[T any] interface {
	Encode(e *Encoder, v T) error
}

// Coder is a helper coder that supports both directions.
type Coder[T any] interface {
	Decoding[T]
	Encoding[T]
}
