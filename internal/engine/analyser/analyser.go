// Released under an MIT license. See LICENSE.

// Package analyser lowers phrases to directly executable operations.
//
// Identifiers are resolved once, at analysis time, either to a constant
// taken from the namespace or to a slot in a frame a known number of
// levels up the lexical chain.
package analyser

import (
	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/engine/namespace"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/reader/phrase"
	"github.com/ternlang/tern/internal/reader/token"
	"github.com/ternlang/tern/internal/type/loc"
	"github.com/ternlang/tern/internal/type/num"
	"github.com/ternlang/tern/internal/type/str"
)

// Analyse lowers p, read as a sequence of expressions, in the scope of ns.
// It returns the generator and the number of slots its frame needs.
func Analyse(p phrase.I, ns *namespace.T) (g *eval.Generator, maxslots int, err error) {
	defer exception.Catch(&err)

	e := root(ns)

	body := p
	if prog, ok := p.(*phrase.Program); ok {
		body = prog.Body
	}

	var items []phrase.I

	if c, ok := body.(*phrase.Comma); ok {
		items = c.Items
	} else {
		items = []phrase.I{body}
	}

	mixed(elements(items))

	ops := make([]eval.Op, len(items))
	for i, item := range items {
		ops[i] = e.expr(item)
	}

	return eval.NewGenerator(ops, p.Loc()), e.layout.nslots, nil
}

// AnalyseModule lowers defs, a block of mutually recursive definitions,
// in the scope of ns.
func AnalyseModule(p phrase.I, defs []*phrase.Definition, ns *namespace.T) (m *eval.ModuleExpr, err error) {
	defer exception.Catch(&err)

	return root(ns).module(p, defs), nil
}

func root(ns *namespace.T) *environ {
	return (&environ{ns: ns}).frame()
}

func (e *environ) module(p phrase.I, defs []*phrase.Definition) *eval.ModuleExpr {
	ids := make([]*phrase.Ident, len(defs))
	names := make([]string, len(defs))

	for i, d := range defs {
		ids[i] = d.Name
		names[i] = d.Name.Name
	}

	e.bind(ids...)

	ops := make([]eval.Op, len(defs))
	for i, d := range defs {
		ops[i] = e.definition(d)
	}

	return eval.NewModuleExpr(names, ops, e.layout.nslots, p.Loc())
}

func (e *environ) definition(d *phrase.Definition) eval.Op {
	if d.IsFunction() {
		return e.lambda(d.Name.Name, d.Params, d.Value, d.Loc())
	}

	return e.expr(d.Value)
}

//nolint:cyclop,funlen
func (e *environ) expr(p phrase.I) eval.Op {
	at := p.Loc()

	switch p := p.(type) {
	case *phrase.Num:
		return eval.Constant(number(p), at)
	case *phrase.Str:
		return eval.Constant(str.New(p.Text), at)
	case *phrase.Ident:
		return e.lookup(p)
	case *phrase.Unary:
		return eval.Unary(p.Op, e.expr(p.Arg), at)
	case *phrase.Binary:
		l, r := e.expr(p.Left), e.expr(p.Right)

		switch p.Op {
		case token.And:
			return eval.And(l, r, at)
		case token.Or:
			return eval.Or(l, r, at)
		}

		return eval.Binary(p.Op, l, r, at)
	case *phrase.Call:
		return eval.Call(e.expr(p.Func), e.exprs(p.Args), at)
	case *phrase.Index:
		return eval.Index(e.expr(p.List), e.expr(p.Index), at)
	case *phrase.Dot:
		return eval.Dot(e.expr(p.Record), p.Field.Name, at)
	case *phrase.If:
		return eval.If(e.expr(p.Cond), e.expr(p.Then), e.expr(p.Else), at)
	case *phrase.Let:
		return e.let(p)
	case *phrase.Lambda:
		return e.lambda("", p.Params, p.Body, at)
	case *phrase.Paren:
		if len(p.Items) == 1 {
			return e.expr(p.Items[0])
		}

		return eval.List(e.exprs(p.Items), at)
	case *phrase.List:
		return eval.List(e.exprs(p.Items), at)
	case *phrase.Record:
		return e.record(p)
	case *phrase.Sequence:
		return eval.Sequence(e.exprs(p.Items), at)
	case *phrase.Definition:
		exception.Raise(exception.Syntax, at, "%s: definition not allowed here", p.Name.Name)
	case *phrase.Comma:
		exception.Raise(exception.Syntax, at, "unexpected ','")
	case *phrase.Program:
		return e.expr(p.Body)
	}

	exception.Fatal("analyser: unexpected phrase %T", p)

	return nil
}

func (e *environ) exprs(ps []phrase.I) []eval.Op {
	ops := make([]eval.Op, len(ps))
	for i, p := range ps {
		ops[i] = e.expr(p)
	}

	return ops
}

func (e *environ) lambda(name string, params []*phrase.Ident, body phrase.I, at *loc.T) eval.Op {
	s := e.frame()
	s.bind(params...)

	b := s.expr(body)

	return eval.Lambda(name, len(params), s.layout.nslots, b, at)
}

func (e *environ) let(p *phrase.Let) eval.Op {
	s := e.scope()

	ids := make([]*phrase.Ident, len(p.Defs))
	names := make([]string, len(p.Defs))

	for i, d := range p.Defs {
		ids[i] = d.Name
		names[i] = d.Name.Name
	}

	slots := s.bind(ids...)

	defs := make([]eval.Op, len(p.Defs))
	for i, d := range p.Defs {
		defs[i] = s.definition(d)
	}

	return eval.Let(names, slots, defs, s.expr(p.Body), p.Loc())
}

func (e *environ) record(p *phrase.Record) eval.Op {
	items := elements(p.Items)
	defs := make([]*phrase.Definition, len(items))

	for i, item := range items {
		d, ok := item.(*phrase.Definition)
		if !ok {
			exception.Raise(exception.Syntax, item.Loc(),
				"record fields must be definitions")
		}

		defs[i] = d
	}

	return eval.Record(e.frame().module(p, defs), p.Loc())
}

// elements expands any semicolon-separated items in place.
func elements(items []phrase.I) []phrase.I {
	var flat []phrase.I

	for _, item := range items {
		if s, ok := item.(*phrase.Sequence); ok {
			flat = append(flat, elements(s.Items)...)
		} else {
			flat = append(flat, item)
		}
	}

	return flat
}

// mixed raises at the first expression in items if any item is a definition.
func mixed(items []phrase.I) {
	var expr phrase.I

	defs := false

	for _, item := range items {
		if _, ok := item.(*phrase.Definition); ok {
			defs = true
		} else if expr == nil {
			expr = item
		}
	}

	if defs && expr != nil {
		exception.Raise(exception.Syntax, expr.Loc(),
			"mixed definitions and expressions")
	}
}

func number(p *phrase.Num) (v value.I) {
	defer func() {
		if r := recover(); r != nil {
			exception.Raise(exception.Syntax, p.Loc(), "%s: malformed number", p.Text)
		}
	}()

	return num.New(p.Text)
}
