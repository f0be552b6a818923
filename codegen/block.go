package codegen

import (
	"fmt"
	"strings"
)

// block is a sequence of Go source lines. Indentation is left to the final
// formatting pass.
type block []string

func (b *block) printf(format string, args ...any) {
	*b = append(*b, sprintf(format, args...))
}

// line appends s as is.
func (b *block) line(s string) {
	*b = append(*b, s)
}

func (b *block) append(o block) {
	*b = append(*b, o...)
}

func (b block) String() string {
	return strings.Join(b, "\n")
}

// sprintf is like fmt.Sprintf but returns format as is without arguments so
// that expressions containing verbs are not mangled.
func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
