// Released under an MIT license. See LICENSE.

// Package lexer provides a lexical scanner for the tern language.
//
// The tern lexer adapts the state function approach used by Go's
// text/template lexer and described in detail in Rob Pike's talk
// "Lexical Scanning in Go". See https://talks.golang.org/2011/lex.slide
// for more information.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/michaelmacinnis/adapted"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/reader/token"
	"github.com/ternlang/tern/internal/type/loc"
)

// T holds the state of the scanner.
type T struct {
	text  string // Buffer being scanned.
	first int    // Index of the current token's first byte.
	index int    // Index of the current byte.
	state action // Current action.

	char int // Column of the current byte.
	line int // Line of the current byte.

	fchar int // Column of the current token's first byte.
	fline int // Line of the current token's first byte.

	name   string
	tokens []*token.T
}

type lexer = T

// Option configures a lexer.
type Option func(*lexer)

// SkipPrefix causes the lexer to ignore the first n bytes of its source.
// Locations still count from the start of the source.
func SkipPrefix(n int) Option {
	return func(l *lexer) {
		l.Skip(n)
	}
}

// New creates a new lexer for the source s.
func New(s *source.T, opts ...Option) *lexer {
	l := &lexer{
		char:  1,
		line:  1,
		name:  s.Name(),
		state: skipWhitespace,
		text:  s.Text(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Offset returns the byte offset of the next unscanned byte.
func (l *lexer) Offset() int {
	return l.first
}

// Rest returns the location of the unscanned remainder of the source.
func (l *lexer) Rest() *loc.T {
	return &loc.T{
		Char:  l.fchar,
		Line:  l.fline,
		Name:  l.name,
		Start: l.first,
		End:   len(l.text),
	}
}

// Skip advances the lexer past the next n bytes without producing tokens.
func (l *lexer) Skip(n int) {
	for i := 0; i < n && l.index < len(l.text); i++ {
		l.next()
	}

	l.ignore()
}

// Token returns the next scanned token. At the end of input it returns a
// token of class token.EOF, repeatedly.
func (l *lexer) Token() *token.T {
	for len(l.tokens) == 0 {
		if l.state == nil {
			return token.New(token.EOF, "", l.here())
		}

		l.state = l.state(l)
	}

	t := l.tokens[0]
	l.tokens = l.tokens[1:]

	return t
}

type action func(*lexer) action

const eof = -1

func (l *lexer) emit(c token.Class, v string) {
	l.tokens = append(l.tokens, token.New(c, v, l.here()))
	l.ignore()
}

func (l *lexer) fail(format string, args ...interface{}) {
	exception.Raise(exception.Syntax, l.here(), format, args...)
}

func (l *lexer) here() *loc.T {
	return &loc.T{
		Char:  l.fchar,
		Line:  l.fline,
		Name:  l.name,
		Start: l.first,
		End:   l.index,
	}
}

func (l *lexer) ignore() {
	l.first = l.index
	l.fchar = l.char
	l.fline = l.line
}

func (l *lexer) next() rune {
	r, w := l.peek()
	if w == 0 {
		return eof
	}

	l.index += w

	if r == '\n' {
		l.line++
		l.char = 1
	} else {
		l.char++
	}

	return r
}

func (l *lexer) peek() (rune, int) {
	if l.index >= len(l.text) {
		return eof, 0
	}

	return utf8.DecodeRuneInString(l.text[l.index:])
}

func (l *lexer) text0() string {
	return l.text[l.first:l.index]
}

// T states.

func skipWhitespace(l *lexer) action {
	for {
		r, _ := l.peek()

		switch {
		case r == eof:
			l.ignore()
			return nil
		case r == '/' && l.index+1 < len(l.text) && l.text[l.index+1] == '/':
			return skipComment
		case unicode.IsSpace(r):
			l.next()
		default:
			l.ignore()
			return scanToken
		}
	}
}

func skipComment(l *lexer) action {
	for {
		r := l.next()
		if r == '\n' || r == eof {
			return skipWhitespace
		}
	}
}

func scanToken(l *lexer) action {
	r := l.next()

	switch {
	case r == '"':
		return scanString
	case r == '.' && isDigit(l.peekRune()):
		return scanFraction
	case isDigit(r):
		return scanNumber
	case r == '_' || unicode.IsLetter(r):
		return scanIdentifier
	}

	switch r {
	case '&':
		return l.pair('&', token.And)
	case '|':
		return l.pair('|', token.Or)
	case '+':
		return l.maybe('+', token.Concat, '+')
	case '-':
		return l.maybe('>', token.Arrow, '-')
	case '=':
		return l.maybe('=', token.Equal, '=')
	case '!':
		return l.maybe('=', token.NotEqual, '!')
	case '<':
		return l.maybe('=', token.LessEqual, '<')
	case '>':
		return l.maybe('=', token.GreaterEqual, '>')
	case '(', ')', '[', ']', '{', '}', ',', ';', '.', '*', '/', ':':
		l.emit(token.Class(r), l.text0())

		return skipWhitespace
	}

	l.fail("unexpected character %q", r)

	return nil
}

func scanFraction(l *lexer) action {
	l.digits()

	return scanExponent
}

func scanNumber(l *lexer) action {
	l.digits()

	if r, _ := l.peek(); r == '.' {
		l.next()
		l.digits()
	}

	return scanExponent
}

func scanExponent(l *lexer) action {
	if r, _ := l.peek(); r == 'e' || r == 'E' {
		l.next()

		if r, _ := l.peek(); r == '+' || r == '-' {
			l.next()
		}

		if !isDigit(l.peekRune()) {
			l.fail("malformed exponent in %q", l.text0())
		}

		l.digits()
	}

	if r := l.peekRune(); r == '_' || unicode.IsLetter(r) {
		l.fail("malformed number %q", l.text0()+string(r))
	}

	l.emit(token.Number, l.text0())

	return skipWhitespace
}

func scanIdentifier(l *lexer) action {
	for {
		r := l.peekRune()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		l.next()
	}

	s := l.text0()
	if c, ok := token.Keyword(s); ok {
		l.emit(c, s)
	} else {
		l.emit(token.Identifier, s)
	}

	return skipWhitespace
}

func scanString(l *lexer) action {
	for {
		switch l.next() {
		case eof, '\n':
			l.fail("unterminated string")
		case '\\':
			l.next()
		case '"':
			s := l.text0()

			v, err := adapted.ActualBytes(s[1 : len(s)-1])
			if err != nil {
				l.fail("bad string literal %s: %v", s, err)
			}

			l.emit(token.String, v)

			return skipWhitespace
		}
	}
}

func (l *lexer) digits() {
	for isDigit(l.peekRune()) {
		l.next()
	}
}

// maybe emits c if the next rune is r and otherwise the single rune class d.
func (l *lexer) maybe(r rune, c token.Class, d rune) action {
	if l.peekRune() == r {
		l.next()
		l.emit(c, l.text0())
	} else {
		l.emit(token.Class(d), l.text0())
	}

	return skipWhitespace
}

// pair emits c if the next rune is r and otherwise fails.
func (l *lexer) pair(r rune, c token.Class) action {
	if l.peekRune() != r {
		l.fail("unexpected character %q", l.text0())
	}

	l.next()
	l.emit(c, l.text0())

	return skipWhitespace
}

func (l *lexer) peekRune() rune {
	r, _ := l.peek()

	return r
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
