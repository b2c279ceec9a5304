// Released under an MIT license. See LICENSE.

package analyser

import (
	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/engine/namespace"
	"github.com/ternlang/tern/internal/reader/phrase"
)

// layout tracks the slots of one frame. Slots are never reused so that a
// closure holding a frame never sees a slot change underneath it.
type layout struct {
	nslots int
}

func (l *layout) alloc() int {
	n := l.nslots
	l.nslots++

	return n
}

// environ is one level of lexical scope. Scopes that share a layout live
// in the same frame at run time.
type environ struct {
	layout *layout
	names  map[string]int
	ns     *namespace.T
	parent *environ
}

// scope creates a nested scope in the same frame as e.
func (e *environ) scope() *environ {
	return &environ{layout: e.layout, names: map[string]int{}, parent: e}
}

// frame creates a nested scope in a new frame.
func (e *environ) frame() *environ {
	return &environ{layout: &layout{}, names: map[string]int{}, parent: e}
}

// bind allocates a slot for each name. A name bound twice is an error.
func (e *environ) bind(ids ...*phrase.Ident) []int {
	slots := make([]int, len(ids))

	for i, id := range ids {
		if _, ok := e.names[id.Name]; ok {
			exception.Raise(exception.Syntax, id.Loc(),
				"%s: multiply defined", id.Name)
		}

		slots[i] = e.layout.alloc()
		e.names[id.Name] = slots[i]
	}

	return slots
}

// lookup resolves id to a slot reference or a namespace constant.
func (e *environ) lookup(id *phrase.Ident) eval.Op {
	depth := 0

	for s := e; s != nil; s = s.parent {
		if s.ns != nil {
			if v, ok := s.ns.Lookup(id.Name); ok {
				return eval.Constant(v, id.Loc())
			}
		} else if slot, ok := s.names[id.Name]; ok {
			return eval.Local(depth, slot, id.Loc())
		}

		if s.parent != nil && s.parent.layout != s.layout {
			depth++
		}
	}

	exception.Raise(exception.Name, id.Loc(), "%s: not defined", id.Name)

	return nil
}
