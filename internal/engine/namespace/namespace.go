// Released under an MIT license. See LICENSE.

// Package namespace provides tern's top-level name to value mapping.
package namespace

import (
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/module"
)

// T (namespace) maps identifiers to the values they denote. Insertion order
// is remembered. Defining a name again replaces its value for later lookups.
type T struct {
	names []string
	m     map[string]value.I
}

type namespace = T

// New creates a new, empty namespace.
func New() *namespace {
	return &namespace{m: map[string]value.I{}}
}

// Clone creates a new namespace with the same bindings as n.
func (n *namespace) Clone() *namespace {
	fresh := &namespace{
		names: append([]string(nil), n.names...),
		m:     make(map[string]value.I, len(n.m)),
	}

	for k, v := range n.m {
		fresh.m[k] = v
	}

	return fresh
}

// Define associates the name k with the value v.
func (n *namespace) Define(k string, v value.I) {
	if _, ok := n.m[k]; !ok {
		n.names = append(n.names, k)
	}

	n.m[k] = v
}

// Lookup retrieves the value associated with the name k.
func (n *namespace) Lookup(k string) (value.I, bool) {
	if n == nil {
		return nil, false
	}

	v, ok := n.m[k]

	return v, ok
}

// Merge defines every binding in the module m.
func (n *namespace) Merge(m *module.T) {
	for _, k := range m.Names() {
		v, _ := m.Get(k)
		n.Define(k, v)
	}
}

// Names returns the bound names in the order they were first defined.
func (n *namespace) Names() []string {
	return append([]string(nil), n.names...)
}

// Size returns the number of names in the namespace.
func (n *namespace) Size() int {
	return len(n.names)
}
