// Released under an MIT license. See LICENSE.

// Package list provides tern's immutable list type.
package list

import (
	"strings"

	"github.com/ternlang/tern/internal/interface/value"
)

const name = "list"

// T (list) is an immutable sequence of values.
type T struct {
	items []value.I
}

type list = T

// Empty is the list with no elements.
var Empty = &list{} //nolint:gochecknoglobals

// New creates a list from vs. The list takes ownership of vs.
func New(vs ...value.I) *list {
	if len(vs) == 0 {
		return Empty
	}

	return &list{items: vs}
}

// Concat returns a new list holding the elements of a followed by those of b.
func Concat(a, b *list) *list {
	items := make([]value.I, 0, len(a.items)+len(b.items))
	items = append(items, a.items...)
	items = append(items, b.items...)

	return New(items...)
}

// Equal returns true if v is a list with equal elements.
func (l *list) Equal(v value.I) bool {
	o, ok := v.(*list)
	if !ok || len(o.items) != len(l.items) {
		return false
	}

	for i, e := range l.items {
		if !e.Equal(o.items[i]) {
			return false
		}
	}

	return true
}

// Index returns the i-th element of the list l.
func (l *list) Index(i int) value.I {
	if i < 0 || i >= len(l.items) {
		panic("index out of range")
	}

	return l.items[i]
}

// Items returns a copy of the elements of l.
func (l *list) Items() []value.I {
	return append([]value.I(nil), l.items...)
}

// Len returns the number of elements in l.
func (l *list) Len() int {
	return len(l.items)
}

// Name returns the type name for the list l.
func (l *list) Name() string {
	return name
}

// String returns the text of the list l.
func (l *list) String() string {
	ss := make([]string, len(l.items))
	for i, e := range l.items {
		ss[i] = e.String()
	}

	return "[" + strings.Join(ss, ",") + "]"
}

// Is returns true if v is a list.
func Is(v value.I) bool {
	_, ok := v.(*list)

	return ok
}

// To returns a list if v is a list; Otherwise it panics.
func To(v value.I) *list {
	if l, ok := v.(*list); ok {
		return l
	}

	panic(v.Name() + " cannot be used in a list context")
}
