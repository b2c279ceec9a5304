// Released under an MIT license. See LICENSE.

// Package token is shared by the tern lexer and parser.
package token

import (
	"strconv"
	"unicode"

	"github.com/ternlang/tern/internal/type/loc"
)

// Class is a token's type. Single character punctuation uses the character
// itself as its class.
type Class rune

// T (token) is a lexical item returned by the scanner.
type T struct {
	class  Class
	source *loc.T
	value  string
}

type token = T

// Token classes.
const (
	Error Class = iota

	EOF Class = unicode.MaxRune + iota
	And
	Arrow
	Concat
	Else
	Equal
	GreaterEqual
	Identifier
	If
	In
	LessEqual
	Let
	NotEqual
	Number
	Or
	String
	Then
)

//nolint:gochecknoglobals
var keywords = map[string]Class{
	"else": Else,
	"if":   If,
	"in":   In,
	"let":  Let,
	"then": Then,
}

// Keyword returns the class for s if it is a reserved word.
func Keyword(s string) (Class, bool) {
	c, ok := keywords[s]

	return c, ok
}

// New creates a new token.
func New(class Class, value string, source *loc.T) *token {
	return &token{
		class:  class,
		source: source,
		value:  value,
	}
}

// String returns a string representation of Class. Useful for messages.
func (c Class) String() string {
	switch c {
	case Error:
		return "error"
	case EOF:
		return "end of input"
	case And:
		return "'&&'"
	case Arrow:
		return "'->'"
	case Concat:
		return "'++'"
	case Else:
		return "'else'"
	case Equal:
		return "'=='"
	case GreaterEqual:
		return "'>='"
	case Identifier:
		return "identifier"
	case If:
		return "'if'"
	case In:
		return "'in'"
	case LessEqual:
		return "'<='"
	case Let:
		return "'let'"
	case NotEqual:
		return "'!='"
	case Number:
		return "number"
	case Or:
		return "'||'"
	case String:
		return "string"
	case Then:
		return "'then'"
	}

	return strconv.QuoteRune(rune(c))
}

// Class returns the token's class.
func (t *token) Class() Class {
	return t.class
}

// Is returns true if the token t is any of the classes in cs.
func (t *token) Is(cs ...Class) bool {
	if t == nil {
		return false
	}

	for _, c := range cs {
		if t.class == c {
			return true
		}
	}

	return false
}

// Source returns the source location for this token.
func (t *token) Source() *loc.T {
	return t.source
}

// String returns the token's string representation. Useful for debugging.
func (t *token) String() string {
	return strconv.Quote(t.value) + "(" +
		t.class.String() + "," +
		t.source.String() + ")"
}

// Value returns the token's string value.
func (t *token) Value() string {
	return t.value
}
