// Released under an MIT license. See LICENSE.

// Package phrase provides tern's concrete syntax tree.
//
// Phrases keep the source location of everything they cover. They are never
// modified once the parser has produced them; analysis results are kept in
// a separate tree.
package phrase

import (
	"github.com/ternlang/tern/internal/reader/token"
	"github.com/ternlang/tern/internal/type/loc"
)

// I (phrase) is implemented by every syntax node. The set of node types is
// closed: only types in this package implement it.
type I interface {
	Loc() *loc.T

	phrase()
}

// Node is embedded in every phrase type and records its location.
type Node struct {
	source *loc.T
}

// At creates the embedded node for a phrase spanning l.
func At(l *loc.T) Node {
	return Node{source: l}
}

// Loc returns the location covered by the phrase.
func (n *Node) Loc() *loc.T {
	return n.source
}

func (*Node) phrase() {}

type (
	// Num is a numeric literal.
	Num struct {
		Node
		Text string
	}

	// Str is a string literal with escapes already decoded.
	Str struct {
		Node
		Text string
	}

	// Ident is a reference to a name.
	Ident struct {
		Node
		Name string
	}

	// Unary is a prefix operator applied to an operand.
	Unary struct {
		Node
		Op  token.Class
		Arg I
	}

	// Binary is an infix operator applied to two operands.
	Binary struct {
		Node
		Op    token.Class
		Left  I
		Right I
	}

	// Call is a function applied to arguments.
	Call struct {
		Node
		Func I
		Args []I
	}

	// Index selects an element of a list.
	Index struct {
		Node
		List  I
		Index I
	}

	// Dot selects a field of a record.
	Dot struct {
		Node
		Record I
		Field  *Ident
	}

	// If is a two-way conditional.
	If struct {
		Node
		Cond I
		Then I
		Else I
	}

	// Let binds local, mutually recursive definitions around a body.
	Let struct {
		Node
		Defs []*Definition
		Body I
	}

	// Lambda is an anonymous function.
	Lambda struct {
		Node
		Params []*Ident
		Body   I
	}

	// Paren is a parenthesized comma separated list of items.
	Paren struct {
		Node
		Items []I
	}

	// List is a list literal.
	List struct {
		Node
		Items []I
	}

	// Record is a record literal. Its items must all be definitions.
	Record struct {
		Node
		Items []I
	}

	// Definition binds a name. Function definitions have Params != nil.
	Definition struct {
		Node
		Name   *Ident
		Params []*Ident
		Value  I
	}

	// Sequence evaluates its items in order; the last one is the result.
	// At the top level its items may instead all be definitions.
	Sequence struct {
		Node
		Items []I
	}

	// Comma is a comma separated list of items at the top level.
	Comma struct {
		Node
		Items    []I
		Trailing bool
	}

	// Program wraps the phrase covering an entire source.
	Program struct {
		Node
		Body I
	}
)

// IsFunction returns true if d is written in function definition form.
func (d *Definition) IsFunction() bool {
	return d.Params != nil
}

// AsDefinition returns the definition-block view of p. It returns false if
// p, read at the top level, is not a set of bindings. Bindings may be
// separated by commas or semicolons.
func AsDefinition(p I) ([]*Definition, bool) {
	switch p := p.(type) {
	case *Program:
		return AsDefinition(p.Body)
	case *Definition:
		return []*Definition{p}, true
	case *Comma:
		return definitions(p.Items)
	case *Sequence:
		return definitions(p.Items)
	}

	return nil, false
}

func definitions(items []I) ([]*Definition, bool) {
	if len(items) == 0 {
		return nil, false
	}

	defs := make([]*Definition, 0, len(items))

	for _, item := range items {
		switch item.(type) {
		case *Definition, *Sequence:
			ds, ok := AsDefinition(item)
			if !ok {
				return nil, false
			}

			defs = append(defs, ds...)
		default:
			return nil, false
		}
	}

	return defs, true
}

// Nub strips the optional wrapping around p to find the phrase that best
// represents the one meaningful syntactic unit.
func Nub(p I) I {
	for {
		switch q := p.(type) {
		case *Program:
			p = q.Body
		case *Comma:
			if len(q.Items) != 1 {
				return p
			}

			p = q.Items[0]
		case *Paren:
			if len(q.Items) != 1 {
				return p
			}

			p = q.Items[0]
		default:
			return p
		}
	}
}
