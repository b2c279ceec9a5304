// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/interface/value"
)

// Run evaluates the operation pending in f and returns its value.
//
// Operations in tail position replace the cursor rather than calling Eval,
// so a chain of tail calls runs in constant host stack space. A call in
// tail position to a closure replaces the frame itself. The system's
// interrupt flag is polled before every step.
func Run(f *Frame) value.I {
	for f.next != nil {
		if f.system.Interrupted() {
			exception.Raise(exception.Interrupted, f.next.Loc(), "interrupted")
		}

		op := f.next
		f.next = nil

		switch op := op.(type) {
		case *call:
			f = op.tail(f)
		case *conditional:
			f.next = op.branch(f)
		case *let:
			op.bind(f)
			f.next = op.body
		case *sequence:
			for _, i := range op.init {
				i.Eval(f)
			}

			f.next = op.last
		default:
			f.result = op.Eval(f)
		}
	}

	return f.result
}

// Executor receives the values produced by a generator.
type Executor interface {
	Push(v value.I)
}

// Exec runs each item of o in f, in order, and pushes the results to ex.
func (o *Generator) Exec(f *Frame, ex Executor) {
	for _, item := range o.items {
		f.next = item
		ex.Push(Run(f))
	}
}
