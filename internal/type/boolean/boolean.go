// Released under an MIT license. See LICENSE.

// Package boolean provides tern's boolean type.
package boolean

import (
	"github.com/ternlang/tern/internal/interface/value"
)

const name = "boolean"

// T (boolean) wraps Go's bool type.
type T bool

type boolean = T

// The two boolean values.
const (
	False = boolean(false)
	True  = boolean(true)
)

// Bool returns the boolean value corresponding to b.
func Bool(b bool) value.I {
	return boolean(b)
}

// Equal returns true if v is the same boolean as b.
func (b boolean) Equal(v value.I) bool {
	return Is(v) && b == To(v)
}

// Name returns the type name for the boolean b.
func (b boolean) Name() string {
	return name
}

// String returns the text of the boolean b.
func (b boolean) String() string {
	if b {
		return "true"
	}

	return "false"
}

// Is returns true if v is a boolean.
func Is(v value.I) bool {
	_, ok := v.(boolean)

	return ok
}

// To returns a boolean if v is a boolean; Otherwise it panics.
func To(v value.I) boolean {
	if b, ok := v.(boolean); ok {
		return b
	}

	panic(v.Name() + " cannot be used in a boolean context")
}
