// Released under an MIT license. See LICENSE.

package eval

import (
	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/type/loc"
	"github.com/ternlang/tern/internal/type/module"
)

// ModuleExpr is an analysed set of mutually recursive definitions. Forcing
// it evaluates every definition and produces a module value.
//
// The module frame holds one slot per name, in definition order, followed
// by scratch slots used by let expressions in the definitions.
type ModuleExpr struct {
	at     *loc.T
	defs   []Op
	names  []string
	nslots int
}

// NewModuleExpr creates a module expression binding names[i] to defs[i]
// in a frame of nslots slots.
func NewModuleExpr(names []string, defs []Op, nslots int, at *loc.T) *ModuleExpr {
	return &ModuleExpr{at: at, defs: defs, names: names, nslots: nslots}
}

// Loc returns the location of the definitions.
func (m *ModuleExpr) Loc() *loc.T {
	return m.at
}

// Names returns the bound names in definition order.
func (m *ModuleExpr) Names() []string {
	return m.names
}

// Force evaluates m in a new frame nested in f.
func (m *ModuleExpr) Force(f *Frame) *module.T {
	return m.instantiate(NewFrame(m.nslots, f.system, f.file, f))
}

// Instantiate evaluates m in a new top level frame.
func (m *ModuleExpr) Instantiate(s System, file *Frame) *module.T {
	return m.instantiate(NewFrame(m.nslots, s, file, nil))
}

// Definitions are evaluated in order but each one is forced on demand, so
// any definition may refer to any other as long as the reference is not
// needed to compute the definition itself.
func (m *ModuleExpr) instantiate(mf *Frame) *module.T {
	for i, d := range m.defs {
		mf.slots[i] = &thunk{name: m.names[i], op: d}
	}

	b := module.NewBuilder(len(m.names))

	for i, name := range m.names {
		if mf.system.Interrupted() {
			exception.Raise(exception.Interrupted, m.defs[i].Loc(), "interrupted")
		}

		b.Set(name, mf.get(i, m.defs[i].Loc()))
	}

	return b.Module()
}
