// Released under an MIT license. See LICENSE.

// Package reader accumulates interactive input until it forms a complete
// tern program.
package reader

import (
	"errors"
	"strings"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/reader/lexer"
	"github.com/ternlang/tern/internal/reader/parser"
	"github.com/ternlang/tern/internal/reader/source"
)

// T (reader) holds input that has been scanned but not yet returned.
type T struct {
	name    string
	pending strings.Builder
}

type reader = T

// New creates a new reader for input called name.
func New(name string) *T {
	return &reader{name: name}
}

// Pending returns true if lines have been scanned that do not yet form a
// complete program.
func (r *reader) Pending() bool {
	return r.pending.Len() > 0
}

// Reset discards any pending input.
func (r *reader) Reset() {
	r.pending.Reset()
}

// Scan adds line to the pending input. It returns the accumulated text and
// true on a complete parse, false if the input stops short of a complete
// program, or the syntax error if the input cannot be completed.
func (r *reader) Scan(line string) (string, bool, error) {
	r.pending.WriteString(line)
	r.pending.WriteByte('\n')

	text := r.pending.String()

	_, err := parser.Program(lexer.New(source.New(r.name, text)).Token)

	// Only running out of input can be fixed by more input.
	var e *exception.T
	if errors.As(err, &e) && e.Loc != nil && e.Loc.Start == len(text) {
		return "", false, nil
	}

	r.Reset()

	if err != nil {
		return "", false, err
	}

	return text, true, nil
}
