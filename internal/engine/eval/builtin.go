// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/loc"
)

// Function is the Go implementation of a builtin. A builtin reports errors
// by panicking with an error or a string; the call site is added for it.
type Function func(f *Frame, args []value.I) value.I

// Builtin is a function value implemented in Go.
type Builtin struct {
	arity int
	fn    Function
	name  string
}

type builtin = Builtin

// Variadic is the arity of a builtin that accepts any number of arguments.
const Variadic = -1

// NewBuiltin creates a builtin called name that expects arity arguments.
func NewBuiltin(name string, arity int, fn Function) *Builtin {
	return &builtin{arity: arity, fn: fn, name: name}
}

// Arity returns the number of arguments b expects or Variadic.
func (b *builtin) Arity() int {
	return b.arity
}

// Equal returns true if v is the same builtin as b.
func (b *builtin) Equal(v value.I) bool {
	return b == v
}

// Name returns the name for the builtin type.
func (*builtin) Name() string {
	return "function"
}

func (b *builtin) String() string {
	return "<builtin " + b.name + ">"
}

func (b *builtin) call(f *Frame, args []value.I, at *loc.T) value.I {
	if b.arity != Variadic && len(args) != b.arity {
		exception.Raise(exception.Runtime, at,
			"%s: expected %d arguments, got %d", b.name, b.arity, len(args))
	}

	site := f.site
	f.site = at

	defer func() {
		f.site = site

		if r := recover(); r != nil {
			panic(exception.Locate(r, at))
		}
	}()

	return b.fn(f, args)
}

func implements() { //nolint:deadcode,unused
	var t builtin

	// The builtin type is a callable value.
	_ = value.Callable(&t)
}
