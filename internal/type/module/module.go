// Released under an MIT license. See LICENSE.

// Package module provides tern's module type: an immutable mapping from
// bound names to fully evaluated values. Record literals evaluate to modules.
package module

import (
	"strings"

	"github.com/ternlang/tern/internal/interface/value"
)

const name = "record"

// T (module) maps names to values. Once built it never changes.
type T struct {
	names  []string
	values map[string]value.I
}

type module = T

// Builder accumulates bindings for a new module.
type Builder struct {
	m *module
}

// NewBuilder creates a builder with room for n bindings.
func NewBuilder(n int) *Builder {
	return &Builder{m: &module{
		names:  make([]string, 0, n),
		values: make(map[string]value.I, n),
	}}
}

// Set binds k to v. Later bindings of the same name replace earlier ones.
func (b *Builder) Set(k string, v value.I) {
	if _, ok := b.m.values[k]; !ok {
		b.m.names = append(b.m.names, k)
	}

	b.m.values[k] = v
}

// Module returns the finished module. The builder must not be used again.
func (b *Builder) Module() *module {
	m := b.m
	b.m = nil

	return m
}

// Equal returns true if v is a module with the same bindings.
func (m *module) Equal(v value.I) bool {
	o, ok := v.(*module)
	if !ok || len(o.names) != len(m.names) {
		return false
	}

	for k, e := range m.values {
		f, ok := o.values[k]
		if !ok || !e.Equal(f) {
			return false
		}
	}

	return true
}

// Get returns the value bound to k and whether it was found.
func (m *module) Get(k string) (value.I, bool) {
	v, ok := m.values[k]

	return v, ok
}

// Len returns the number of bindings in m.
func (m *module) Len() int {
	return len(m.names)
}

// Name returns the type name for the module m.
func (m *module) Name() string {
	return name
}

// Names returns the bound names in definition order.
func (m *module) Names() []string {
	return append([]string(nil), m.names...)
}

// String returns the text of the module m.
func (m *module) String() string {
	ss := make([]string, len(m.names))
	for i, k := range m.names {
		ss[i] = k + ":" + m.values[k].String()
	}

	return "{" + strings.Join(ss, ",") + "}"
}

// Is returns true if v is a module.
func Is(v value.I) bool {
	_, ok := v.(*module)

	return ok
}

// To returns a module if v is a module; Otherwise it panics.
func To(v value.I) *module {
	if m, ok := v.(*module); ok {
		return m
	}

	panic(v.Name() + " cannot be used in a record context")
}
