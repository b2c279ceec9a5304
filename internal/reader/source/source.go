// Released under an MIT license. See LICENSE.

// Package source provides tern's program text with an origin label.
package source

import (
	"fmt"
	"os"
)

// T (source) is an immutable named body of program text.
type T struct {
	name string
	text string
}

type source = T

// New creates a source with the label name.
func New(name, text string) *source {
	return &source{name: name, text: text}
}

// File reads the file at path into a new source labelled with path.
func File(path string) (*source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	return New(path, string(b)), nil
}

// Len returns the size of the text in bytes.
func (s *source) Len() int {
	return len(s.text)
}

// Name returns the origin label.
func (s *source) Name() string {
	return s.name
}

// Text returns the program text.
func (s *source) Text() string {
	return s.text
}
