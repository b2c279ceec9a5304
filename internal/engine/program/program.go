// Released under an MIT license. See LICENSE.

// Package program drives the compilation and evaluation of a tern source:
// scan, parse, analyse and then either force a module or run a sequence of
// expressions.
//
// A program is compiled at most once. A program whose top level phrase is a
// set of definitions is a definition block and evaluates to a module. Any
// other program is an expression program and evaluates to values.
package program

import (
	"errors"
	"log/slog"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/analyser"
	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/engine/namespace"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/reader/lexer"
	"github.com/ternlang/tern/internal/reader/parser"
	"github.com/ternlang/tern/internal/reader/phrase"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/type/loc"
	"github.com/ternlang/tern/internal/type/module"
)

// System is the set of services a program is compiled and run with.
type System interface {
	eval.System

	// Logger receives debug output about compilation.
	Logger() *slog.Logger

	// Namespace is the standard namespace used when Compile is given none.
	Namespace() *namespace.T
}

// T holds the state of a program.
type T struct {
	file   *eval.Frame
	lexer  *lexer.T
	rest   *loc.T
	system System

	phrase   phrase.I
	compiled bool

	// Exactly one of gen or expr is set once compiled.
	gen    *eval.Generator
	nslots int
	expr   *eval.ModuleExpr
	forced *module.T
}

type program = T

// Option configures a program.
type Option func(*program)

// FileFrame records the frame of the call that loaded this program. Errors
// raised by the program are attributed to that call as well.
func FileFrame(f *eval.Frame) Option {
	return func(p *program) {
		p.file = f
	}
}

// SkipPrefix causes the first n bytes of the source to be ignored.
func SkipPrefix(n int) Option {
	return func(p *program) {
		p.lexer.Skip(n)
	}
}

// New creates a program for the source s.
func New(s *source.T, sys System, opts ...Option) *program {
	p := &program{
		lexer:  lexer.New(s),
		system: sys,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.rest = p.lexer.Rest()

	return p
}

// Compile parses and analyses the program in the scope of ns or, if ns is
// nil, the system's standard namespace. On failure the program is left
// uncompiled.
func (p *program) Compile(ns *namespace.T) (err error) {
	if p.compiled {
		return exception.New(exception.Usage, p.Location(), "program already compiled")
	}

	defer p.attribute(&err)

	if ns == nil {
		ns = p.system.Namespace()
	}

	ph, err := parser.Program(p.lexer.Token)
	if err != nil {
		return err
	}

	log := p.system.Logger().With("program", p.rest.Label())

	if defs, ok := phrase.AsDefinition(ph); ok {
		m, err := analyser.AnalyseModule(ph, defs, ns)
		if err != nil {
			return err
		}

		p.expr = m

		log.Debug("compiled definitions", "names", len(defs))
	} else {
		g, n, err := analyser.Analyse(ph, ns)
		if err != nil {
			return err
		}

		p.gen, p.nslots = g, n

		log.Debug("compiled expressions", "items", g.Items(), "slots", n)
	}

	p.phrase = ph
	p.compiled = true

	return nil
}

// Denotes returns what the program denotes: the module of a definition
// block or the values of an expression program.
func (p *program) Denotes() (*module.T, []value.I, error) {
	if err := p.ready(); err != nil {
		return nil, nil, err
	}

	if p.expr != nil {
		m, err := p.Module()

		return m, nil, err
	}

	var c collector

	if _, err := p.Exec(&c); err != nil {
		return nil, nil, err
	}

	return nil, c.values, nil
}

// Eval returns the value of a program consisting of a single expression.
func (p *program) Eval() (v value.I, err error) {
	if err = p.ready(); err != nil {
		return nil, err
	}

	if p.expr != nil {
		return nil, exception.New(exception.Usage, p.Nub().Loc(),
			"definition found; expecting an expression")
	}

	defer p.attribute(&err)
	defer exception.Catch(&err)

	return p.gen.Eval(p.frame()), nil
}

// Exec runs the program. For a definition block it returns the module. For
// an expression program it pushes each value to ex and returns nil.
func (p *program) Exec(ex eval.Executor) (m *module.T, err error) {
	if err = p.ready(); err != nil {
		return nil, err
	}

	if p.expr != nil {
		return p.Module()
	}

	defer p.attribute(&err)
	defer exception.Catch(&err)

	p.gen.Exec(p.frame(), ex)

	return nil, nil
}

// FileFrame returns the frame of the call that loaded this program, if any.
func (p *program) FileFrame() *eval.Frame {
	return p.file
}

// IsDefinition returns true if the program compiled as a definition block.
func (p *program) IsDefinition() bool {
	return p.expr != nil
}

// Location returns the best available location for the program. Once
// compiled this is the location of its nub, otherwise the unread source.
// It is valid before and after compilation, whether or not it succeeded.
func (p *program) Location() *loc.T {
	if n := p.Nub(); n != nil {
		return n.Loc()
	}

	return p.rest
}

// Module returns the module a definition block evaluates to. The module is
// computed the first time it is needed. A failure publishes nothing.
func (p *program) Module() (m *module.T, err error) {
	if err = p.ready(); err != nil {
		return nil, err
	}

	if p.expr == nil {
		return nil, exception.New(exception.Usage, p.Nub().Loc(),
			"expression found; expecting a definition")
	}

	if p.forced != nil {
		return p.forced, nil
	}

	defer p.attribute(&err)
	defer exception.Catch(&err)

	p.forced = p.expr.Instantiate(p.system, p.file)

	return p.forced, nil
}

// Nub returns the phrase that best represents the program's one meaningful
// syntactic unit, or nil if the program has not been compiled.
func (p *program) Nub() phrase.I {
	if p.phrase == nil {
		return nil
	}

	return phrase.Nub(p.phrase)
}

// System returns the services the program runs with.
func (p *program) System() System {
	return p.system
}

// attribute adds the site of the call that loaded this program to err.
func (p *program) attribute(err *error) {
	if *err == nil || p.file == nil || p.file.Site() == nil {
		return
	}

	var e *exception.T
	if errors.As(*err, &e) {
		e.Trace = append(e.Trace, p.file.Site())
	}
}

// frame returns a new frame for one run. Runs never share let slots.
func (p *program) frame() *eval.Frame {
	return eval.NewFrame(p.nslots, p.system, p.file, nil)
}

func (p *program) ready() error {
	if !p.compiled {
		return exception.New(exception.Usage, p.Location(), "program not compiled")
	}

	return nil
}

type collector struct {
	values []value.I
}

func (c *collector) Push(v value.I) {
	c.values = append(c.values, v)
}
