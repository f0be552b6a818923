package codegen

import (
	"go/token"
)

// predeclared is the set of identifiers predeclared in the universe block.
// Generated identifiers avoid them so that they never shadow builtins in
// generated bodies.
var predeclared = map[string]struct{}{
	"any": {}, "bool": {}, "byte": {}, "comparable": {}, "complex64": {},
	"complex128": {}, "error": {}, "float32": {}, "float64": {}, "int": {},
	"int8": {}, "int16": {}, "int32": {}, "int64": {}, "rune": {},
	"string": {}, "uint": {}, "uint8": {}, "uint16": {}, "uint32": {},
	"uint64": {}, "uintptr": {},

	"true": {}, "false": {}, "iota": {}, "nil": {},

	"append": {}, "cap": {}, "clear": {}, "close": {}, "complex": {},
	"copy": {}, "delete": {}, "imag": {}, "len": {}, "make": {}, "max": {},
	"min": {}, "new": {}, "panic": {}, "print": {}, "println": {},
	"real": {}, "recover": {},
}

// isReserved reports whether name is a Go keyword or a predeclared
// identifier.
func isReserved(name string) bool {
	if token.IsKeyword(name) {
		return true
	}
	_, ok := predeclared[name]
	return ok
}
