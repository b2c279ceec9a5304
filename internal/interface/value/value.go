// Released under an MIT license. See LICENSE.

// Package value defines the interface for all tern values.
package value

// I (value) is the result of evaluation and the unit passed between stages.
type I interface {
	Equal(v I) bool
	Name() string
	String() string
}

// Callable is implemented by values that can be applied to arguments.
type Callable interface {
	I

	Arity() int
}
