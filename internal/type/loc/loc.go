// Released under an MIT license. See LICENSE.

// Package loc provides the type used to track the source of tokens and phrases.
// It is also used to keep track of the evaluator's current lexical location.
package loc

import (
	"strconv"
)

// T (loc) is a lexical location.
type T struct {
	Char  int    // Character position (column).
	Line  int    // Line number (row).
	Name  string // Label for the source of this token.
	Start int    // Byte offset of the first byte.
	End   int    // Byte offset one past the last byte.
}

type loc = T

// Span returns a location covering everything from a through b.
func Span(a, b *loc) *loc {
	if a == nil {
		return b
	}

	if b == nil {
		return a
	}

	s := *a
	if b.End > s.End {
		s.End = b.End
	}

	return &s
}

// Label returns the name of the source, or a pseudo-name for unnamed input.
func (l *loc) Label() string {
	if l.Name == "" {
		return "<input>"
	}

	return l.Name
}

func (l *loc) String() string {
	return l.Label() + ":" + strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Char)
}
