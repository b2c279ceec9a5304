// Released under an MIT license. See LICENSE.

// Package parser provides a recursive descent parser for the tern language.
package parser

import (
	"fmt"
	"strings"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/reader/phrase"
	"github.com/ternlang/tern/internal/reader/token"
	"github.com/ternlang/tern/internal/type/loc"
)

// T holds the state of the parser.
type T struct {
	fetch func() *token.T // Function to call to get another token.
	ahead []*token.T      // Lookahead.
	last  *token.T        // Most recently consumed token.
}

type parser = T

// New creates a new parser that reads tokens by calling fetch.
func New(fetch func() *token.T) *parser {
	return &parser{fetch: fetch}
}

// Parse consumes tokens until the end of input and returns a phrase
// covering all of them. Malformed input raises a syntax exception.
func (p *parser) Parse() phrase.I {
	first := p.peek()

	body := p.items(token.EOF)

	p.expect(token.EOF)

	return &phrase.Program{
		Node: phrase.At(p.span(first.Source())),
		Body: body,
	}
}

// Program parses all input, returning any syntax error.
func Program(fetch func() *token.T) (p phrase.I, err error) {
	defer exception.Catch(&err)

	return New(fetch).Parse(), nil
}

func (p *parser) consume() *token.T {
	if len(p.ahead) == 0 {
		exception.Fatal("parser: nothing to consume")
	}

	t := p.ahead[0]
	p.ahead = p.ahead[1:]
	p.last = t

	return t
}

func (p *parser) expect(cs ...token.Class) *token.T {
	if p.peek().Is(cs...) {
		return p.consume()
	}

	// Make a nice error message.
	n := len(cs)
	e := make([]string, n)

	for i, c := range cs {
		e[i] = c.String()
	}

	l := e[n-1]
	if n > 2 { //nolint:gomnd
		l = strings.Join(e[:n-1], ", ") + ", or " + l
	} else if n > 1 {
		l = e[0] + " or " + l
	}

	p.fail(p.peek(), "expected %s", l)

	return nil
}

func (p *parser) fail(t *token.T, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if t.Is(token.EOF) {
		exception.Raise(exception.Syntax, t.Source(), "%s, got end of input", msg)
	}

	exception.Raise(exception.Syntax, t.Source(), "%s, got '%s'", msg, t.Value())
}

func (p *parser) peek() *token.T {
	return p.peekN(0)
}

func (p *parser) peekN(n int) *token.T {
	for len(p.ahead) <= n {
		p.ahead = append(p.ahead, p.fetch())
	}

	return p.ahead[n]
}

// span returns a location from first through the last consumed token.
func (p *parser) span(first *loc.T) *loc.T {
	if p.last == nil {
		return first
	}

	return loc.Span(first, p.last.Source())
}

// T state functions.

// <items> ::= [<item> (',' <item>)* ','?] .
func (p *parser) items(end token.Class) phrase.I {
	first := p.peek().Source()
	c := &phrase.Comma{}

	for !p.peek().Is(end) {
		c.Items = append(c.Items, p.item())

		if !p.peek().Is(',') {
			break
		}

		p.consume()

		c.Trailing = true
	}

	if len(c.Items) == 1 && !c.Trailing {
		return c.Items[0]
	}

	c.Node = phrase.At(p.span(first))

	return c
}

// <item> ::= <element> (';' <element>)* .
func (p *parser) item() phrase.I {
	e := p.element()

	if !p.peek().Is(';') {
		return e
	}

	s := &phrase.Sequence{Items: []phrase.I{e}}

	for p.peek().Is(';') {
		p.consume()
		s.Items = append(s.Items, p.element())
	}

	s.Node = phrase.At(p.span(e.Loc()))

	return s
}

// <element> ::= <definition> | <expr> .
func (p *parser) element() phrase.I {
	e := p.expr()

	if p.peek().Is('=') {
		return p.definition(e)
	}

	return e
}

// <definition> ::= Identifier ('(' <params> ')')? '=' <expr> .
func (p *parser) definition(lhs phrase.I) *phrase.Definition {
	eq := p.expect('=')

	d := &phrase.Definition{}

	switch lhs := lhs.(type) {
	case *phrase.Ident:
		d.Name = lhs
	case *phrase.Call:
		name, ok := lhs.Func.(*phrase.Ident)
		if !ok {
			p.fail(eq, "invalid definition")
		}

		d.Name = name
		d.Params = p.params(lhs.Args, eq)
	default:
		p.fail(eq, "invalid definition")
	}

	d.Value = p.expr()
	d.Node = phrase.At(p.span(lhs.Loc()))

	return d
}

// <expr> ::= <lambda> | <if> | <let> | <or> .
func (p *parser) expr() phrase.I {
	t := p.peek()

	switch {
	case t.Is(token.If):
		return p.conditional()
	case t.Is(token.Let):
		return p.let()
	}

	e := p.or()

	if p.peek().Is(token.Arrow) {
		return p.lambda(e)
	}

	return e
}

// <lambda> ::= (Identifier | '(' <params> ')') '->' <expr> .
func (p *parser) lambda(lhs phrase.I) phrase.I {
	arrow := p.consume()

	var params []*phrase.Ident

	switch lhs := lhs.(type) {
	case *phrase.Ident:
		params = []*phrase.Ident{lhs}
	case *phrase.Paren:
		params = p.params(lhs.Items, arrow)
	default:
		p.fail(arrow, "invalid function parameters before %s", token.Arrow)
	}

	body := p.expr()

	return &phrase.Lambda{
		Node:   phrase.At(p.span(lhs.Loc())),
		Params: params,
		Body:   body,
	}
}

func (p *parser) params(items []phrase.I, at *token.T) []*phrase.Ident {
	params := make([]*phrase.Ident, 0, len(items))

	for _, item := range items {
		id, ok := item.(*phrase.Ident)
		if !ok {
			p.fail(at, "function parameters must be identifiers")
		}

		params = append(params, id)
	}

	return params
}

// <if> ::= 'if' <expr> 'then' <expr> 'else' <expr> .
func (p *parser) conditional() phrase.I {
	first := p.consume().Source()

	c := &phrase.If{}
	c.Cond = p.expr()

	p.expect(token.Then)
	c.Then = p.expr()

	p.expect(token.Else)
	c.Else = p.expr()

	c.Node = phrase.At(p.span(first))

	return c
}

// <let> ::= 'let' <definition> ((',' | ';') <definition>)* 'in' <expr> .
func (p *parser) let() phrase.I {
	first := p.consume().Source()

	l := &phrase.Let{}

	for {
		l.Defs = append(l.Defs, p.definition(p.expr()))

		if !p.peek().Is(',', ';') {
			break
		}

		p.consume()
	}

	p.expect(token.In)
	l.Body = p.expr()

	l.Node = phrase.At(p.span(first))

	return l
}

// <or> ::= <and> ('||' <and>)* .
func (p *parser) or() phrase.I {
	return p.binary(p.and, token.Or)
}

// <and> ::= <cmp> ('&&' <cmp>)* .
func (p *parser) and() phrase.I {
	return p.binary(p.cmp, token.And)
}

// <cmp> ::= <sum> (<relational> <sum>)? .
func (p *parser) cmp() phrase.I {
	left := p.sum()

	t := p.peek()
	if !t.Is(token.Equal, token.NotEqual, '<', token.LessEqual, '>', token.GreaterEqual) {
		return left
	}

	p.consume()

	right := p.sum()

	return &phrase.Binary{
		Node:  phrase.At(p.span(left.Loc())),
		Op:    t.Class(),
		Left:  left,
		Right: right,
	}
}

// <sum> ::= <term> (('+' | '-' | '++') <term>)* .
func (p *parser) sum() phrase.I {
	return p.binary(p.term, '+', '-', token.Concat)
}

// <term> ::= <unary> (('*' | '/') <unary>)* .
func (p *parser) term() phrase.I {
	return p.binary(p.unary, '*', '/')
}

func (p *parser) binary(operand func() phrase.I, ops ...token.Class) phrase.I {
	left := operand()

	for p.peek().Is(ops...) {
		op := p.consume().Class()
		right := operand()

		left = &phrase.Binary{
			Node:  phrase.At(p.span(left.Loc())),
			Op:    op,
			Left:  left,
			Right: right,
		}
	}

	return left
}

// <unary> ::= ('-' | '!') <unary> | <postfix> .
func (p *parser) unary() phrase.I {
	t := p.peek()
	if !t.Is('-', '!') {
		return p.postfix()
	}

	p.consume()

	arg := p.unary()

	return &phrase.Unary{
		Node: phrase.At(p.span(t.Source())),
		Op:   t.Class(),
		Arg:  arg,
	}
}

// <postfix> ::= <primary> ('(' <args> ')' | '[' <expr> ']' | '.' Identifier)* .
func (p *parser) postfix() phrase.I {
	e := p.primary()

	for {
		switch t := p.peek(); {
		case t.Is('('):
			p.consume()

			args := p.args(')')

			p.expect(')')

			e = &phrase.Call{
				Node: phrase.At(p.span(e.Loc())),
				Func: e,
				Args: args,
			}
		case t.Is('['):
			p.consume()

			i := p.expr()

			p.expect(']')

			e = &phrase.Index{
				Node:  phrase.At(p.span(e.Loc())),
				List:  e,
				Index: i,
			}
		case t.Is('.'):
			p.consume()

			f := p.identifier()

			e = &phrase.Dot{
				Node:   phrase.At(p.span(e.Loc())),
				Record: e,
				Field:  f,
			}
		default:
			return e
		}
	}
}

func (p *parser) args(end token.Class) []phrase.I {
	var args []phrase.I

	for !p.peek().Is(end) {
		args = append(args, p.expr())

		if !p.peek().Is(',') {
			break
		}

		p.consume()
	}

	return args
}

func (p *parser) identifier() *phrase.Ident {
	t := p.expect(token.Identifier)

	return &phrase.Ident{Node: phrase.At(t.Source()), Name: t.Value()}
}

// <primary> ::= Number | String | Identifier
//
//	| '(' <items> ')' | '[' <items> ']' | '{' <items> '}' .
func (p *parser) primary() phrase.I {
	t := p.peek()

	switch {
	case t.Is(token.Number):
		p.consume()

		return &phrase.Num{Node: phrase.At(t.Source()), Text: t.Value()}
	case t.Is(token.String):
		p.consume()

		return &phrase.Str{Node: phrase.At(t.Source()), Text: t.Value()}
	case t.Is(token.Identifier):
		return p.identifier()
	case t.Is('('):
		p.consume()

		items := p.bracketed(')')

		return &phrase.Paren{Node: phrase.At(p.span(t.Source())), Items: items}
	case t.Is('['):
		p.consume()

		items := p.bracketed(']')

		return &phrase.List{Node: phrase.At(p.span(t.Source())), Items: items}
	case t.Is('{'):
		p.consume()

		items := p.bracketed('}')

		return &phrase.Record{Node: phrase.At(p.span(t.Source())), Items: items}
	}

	p.fail(t, "expected an expression")

	return nil
}

func (p *parser) bracketed(end token.Class) []phrase.I {
	var items []phrase.I

	switch c := p.items(end).(type) {
	case *phrase.Comma:
		items = c.Items
	default:
		items = []phrase.I{c}
	}

	p.expect(end)

	return items
}
