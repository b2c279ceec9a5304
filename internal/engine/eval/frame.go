// Released under an MIT license. See LICENSE.

// Package eval provides the machinery used to evaluate analysed tern code:
// frames, operations, closures, module forcing and the trampoline that
// runs them.
package eval

import (
	"io"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/loc"
)

// System is the set of shared services available to every frame.
type System interface {
	// Console is where diagnostic and print output goes.
	Console() io.Writer

	// Interrupted reports whether evaluation should stop.
	Interrupted() bool

	// Load compiles and evaluates the file at path on behalf of caller.
	Load(path string, caller *Frame) value.I

	// MaxDepth is the maximum nesting of non-tail calls. Zero is unlimited.
	MaxDepth() int
}

// Frame is an activation record.
type Frame struct {
	slots  []value.I
	parent *Frame // Lexically enclosing frame.
	file   *Frame // Frame of the program that loaded this program, if any.
	system System

	next   Op      // Trampoline cursor.
	result value.I // Last computed value.

	depth int    // Nesting of non-tail calls.
	site  *loc.T // Location of the builtin call in progress.
}

// NewFrame creates a frame with n slots. The frame file is the frame that
// triggered the current program, if any; parent is the lexically enclosing
// frame. A top level frame is nested one level deeper than its file frame.
func NewFrame(n int, s System, file, parent *Frame) *Frame {
	f := &Frame{
		file:   file,
		parent: parent,
		slots:  make([]value.I, n),
		system: s,
	}

	switch {
	case parent != nil:
		f.depth = parent.depth
	case file != nil:
		f.depth = file.depth + 1
	}

	return f
}

// Depth returns the number of non-tail calls f is nested in.
func (f *Frame) Depth() int {
	return f.depth
}

// File returns the frame of the program that loaded this frame's program.
func (f *Frame) File() *Frame {
	return f.file
}

// Len returns the number of slots in f.
func (f *Frame) Len() int {
	return len(f.slots)
}

// Next installs op as the frame's pending operation.
func (f *Frame) Next(op Op) {
	f.next = op
}

// Site returns the location of the call currently being made from f.
func (f *Frame) Site() *loc.T {
	return f.site
}

// System returns the frame's shared services.
func (f *Frame) System() System {
	return f.system
}

// child creates the frame for a call to a closure over env.
func (f *Frame) child(n int, env *Frame) *Frame {
	return &Frame{
		depth:  f.depth,
		file:   env.file,
		parent: env,
		slots:  make([]value.I, n),
		system: f.system,
	}
}

// get returns the value in slot i, forcing it if it is a pending
// recursive definition.
func (f *Frame) get(i int, at *loc.T) value.I {
	switch v := f.slots[i].(type) {
	case nil:
		exception.Fatal("read of unset slot %d at %s", i, at)
	case *thunk:
		return v.force(f, i, at)
	default:
		return v
	}

	return nil
}

// up returns the frame depth levels above f.
func (f *Frame) up(depth int) *Frame {
	for ; depth > 0; depth-- {
		f = f.parent
	}

	return f
}

// thunk is a recursive definition that has not been evaluated yet.
type thunk struct {
	name string
	op   Op
	busy bool
}

func (t *thunk) force(f *Frame, i int, at *loc.T) value.I {
	if t.busy {
		exception.Raise(exception.NotReady, at,
			"%s: recursive definition is not ready", t.name)
	}

	t.busy = true

	v := t.op.Eval(f)
	f.slots[i] = v

	return v
}

func (t *thunk) Equal(v value.I) bool {
	return t == v
}

func (*thunk) Name() string {
	return "thunk"
}

func (t *thunk) String() string {
	return "<pending " + t.name + ">"
}
