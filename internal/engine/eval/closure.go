// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/loc"
)

// Closure is a function value: a body and the frame it was created in.
type Closure struct {
	body   Op
	env    *Frame
	name   string
	nslots int
	params int
}

type closure = Closure

// Arity returns the number of arguments c expects.
func (c *closure) Arity() int {
	return c.params
}

// Equal returns true if v is the same closure as c.
func (c *closure) Equal(v value.I) bool {
	return c == v
}

// Name returns the name for the closure type.
func (*closure) Name() string {
	return "function"
}

func (c *closure) String() string {
	if c.name == "" {
		return "<function>"
	}

	return "<function " + c.name + ">"
}

// frame creates the activation record for a call to c from caller.
func (c *closure) frame(caller *Frame, args []value.I, at *loc.T) *Frame {
	if len(args) != c.params {
		exception.Raise(exception.Runtime, at,
			"%s: expected %d arguments, got %d", c, c.params, len(args))
	}

	nf := caller.child(c.nslots, c.env)
	copy(nf.slots, args)

	return nf
}

// Apply calls fn with args from f and returns the result.
func Apply(f *Frame, fn value.I, args []value.I, at *loc.T) value.I {
	switch c := fn.(type) {
	case *Closure:
		nf := c.frame(f, args, at)

		nf.depth++
		if max := f.system.MaxDepth(); max > 0 && nf.depth > max {
			exception.Raise(exception.Depth, at,
				"stack depth exceeded (%d nested calls)", max)
		}

		nf.next = c.body

		return Run(nf)
	case *Builtin:
		return c.call(f, args, at)
	}

	exception.Raise(exception.Runtime, at, "%s is not a function", fn.Name())

	return nil
}
