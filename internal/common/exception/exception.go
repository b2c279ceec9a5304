// Released under an MIT license. See LICENSE.

// Package exception provides the located errors raised while compiling and
// evaluating tern programs.
//
// Inside the reader and the engine, failures are raised by panicking with a
// *T. Public entry points recover them with Catch and hand them to callers as
// ordinary errors.
package exception

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/ternlang/tern/internal/type/loc"
)

// Kind classifies an exception.
type Kind int

// Exception kinds.
const (
	Runtime Kind = iota
	Syntax
	Name
	Usage
	NotReady
	Interrupted
	Depth
)

// Sentinel errors. An exception of a given kind matches the corresponding
// sentinel with errors.Is.
var (
	ErrRuntime     = errors.New("runtime error")
	ErrSyntax      = errors.New("syntax error")
	ErrName        = errors.New("name resolution error")
	ErrUsage       = errors.New("usage error")
	ErrNotReady    = errors.New("recursive definition not ready")
	ErrInterrupted = errors.New("interrupted")
	ErrDepth       = errors.New("stack depth exceeded")
)

var sentinels = map[Kind]error{ //nolint:gochecknoglobals
	Runtime:     ErrRuntime,
	Syntax:      ErrSyntax,
	Name:        ErrName,
	Usage:       ErrUsage,
	NotReady:    ErrNotReady,
	Interrupted: ErrInterrupted,
	Depth:       ErrDepth,
}

// T (exception) is a language-level error carrying a source location.
type T struct {
	Kind    Kind
	Loc     *loc.T
	Message string
	Trace   []*loc.T // Call sites of enclosing file loads, innermost first.
}

type exception = T

// New creates an exception of kind k at location l.
func New(k Kind, l *loc.T, format string, args ...interface{}) *exception {
	return &exception{
		Kind:    k,
		Loc:     l,
		Message: fmt.Sprintf(format, args...),
	}
}

// Raise panics with a new exception.
func Raise(k Kind, l *loc.T, format string, args ...interface{}) {
	panic(New(k, l, format, args...))
}

// Error renders the exception as text referencing its location.
func (e *exception) Error() string {
	var b strings.Builder

	if e.Loc != nil {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}

	b.WriteString(e.Message)

	for _, l := range e.Trace {
		b.WriteString("\nat ")
		b.WriteString(l.String())
	}

	return b.String()
}

// Is reports whether target is the sentinel for e's kind.
func (e *exception) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// Locate converts a recovered panic value r to an exception. Values that
// are already exceptions keep their original location. Runtime errors from
// Go itself are not language errors and are re-raised.
func Locate(r interface{}, l *loc.T) *exception {
	switch r := r.(type) {
	case *exception:
		if r.Loc == nil {
			r.Loc = l
		}

		return r
	case runtime.Error, fatal:
		panic(r)
	case error:
		return New(Runtime, l, "%s", r.Error())
	case string:
		return New(Runtime, l, "%s", r)
	case fmt.Stringer:
		return New(Runtime, l, "%s", r.String())
	}

	panic(r)
}

// Catch recovers an exception raised by a deferred call site and stores it
// in *err. It must be called directly by a deferred function.
//
//	defer exception.Catch(&err)
func Catch(err *error) {
	r := recover()
	if r == nil {
		return
	}

	*err = Locate(r, nil)
}

type fatal string

// Fatal reports a broken internal invariant. Locate and Catch re-raise it so
// that it aborts the process.
func Fatal(format string, args ...interface{}) {
	panic(fatal("fatal: " + fmt.Sprintf(format, args...)))
}
