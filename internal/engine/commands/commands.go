// Released under an MIT license. See LICENSE.

// Package commands provides tern's builtin functions and constants.
package commands

import (
	"math"

	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/boolean"
	"github.com/ternlang/tern/internal/type/num"
)

type function struct {
	arity int
	fn    eval.Function
}

// Constants returns a mapping of names to builtin values.
func Constants() map[string]value.I {
	return map[string]value.I{
		"false": boolean.False,
		"inf":   num.Float(math.Inf(1)),
		"pi":    num.Float(math.Pi),
		"true":  boolean.True,
	}
}

// Functions returns a mapping of names to builtin functions.
func Functions() map[string]*eval.Builtin {
	fs := map[string]function{
		"abs":       {1, unary(math.Abs)},
		"ceil":      {1, unary(math.Ceil)},
		"concat":    {1, concat},
		"count":     {1, count},
		"error":     {1, raise},
		"fields":    {1, fields},
		"file":      {1, file},
		"floor":     {1, unary(math.Floor)},
		"is_bool":   {1, is(boolean.Is)},
		"is_fun":    {1, is(isFunction)},
		"is_list":   {1, is(isList)},
		"is_num":    {1, is(num.Is)},
		"is_record": {1, is(isRecord)},
		"is_str":    {1, is(isString)},
		"match":     {2, match},
		"print":     {1, display},
		"repr":      {1, repr},
		"sqrt":      {1, unary(math.Sqrt)},
		"str":       {1, makeString},
	}

	m := make(map[string]*eval.Builtin, len(fs))
	for name, f := range fs {
		m[name] = eval.NewBuiltin(name, f.arity, f.fn)
	}

	return m
}

func is(p func(value.I) bool) eval.Function {
	return func(_ *eval.Frame, args []value.I) value.I {
		return boolean.Bool(p(args[0]))
	}
}
