// Released under an MIT license. See LICENSE.

// Package str provides tern's string type.
package str

import (
	"strconv"

	"github.com/ternlang/tern/internal/interface/value"
)

const name = "string"

// T (str) wraps Go's string type.
type T string

type str = T

// New creates a str.
func New(v string) value.I {
	return str(v)
}

// Equal returns true if v is a str and wraps the same string.
func (s str) Equal(v value.I) bool {
	return Is(v) && s == To(v)
}

// Name returns the type name for the str s.
func (s str) Name() string {
	return name
}

// String returns the literal representation of the str s.
func (s str) String() string {
	return strconv.Quote(string(s))
}

// Text returns the text of the str s.
func (s str) Text() string {
	return string(s)
}

// Is returns true if v is a str.
func Is(v value.I) bool {
	_, ok := v.(str)

	return ok
}

// To returns a str if v is a str; Otherwise it panics.
func To(v value.I) str {
	if s, ok := v.(str); ok {
		return s
	}

	panic(v.Name() + " cannot be used in a string context")
}
