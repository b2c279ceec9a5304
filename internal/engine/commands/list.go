// Released under an MIT license. See LICENSE.

package commands

import (
	"unicode/utf8"

	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/list"
	"github.com/ternlang/tern/internal/type/module"
	"github.com/ternlang/tern/internal/type/num"
	"github.com/ternlang/tern/internal/type/str"
)

func isList(v value.I) bool {
	return list.Is(v)
}

func isRecord(v value.I) bool {
	return module.Is(v)
}

func concat(_ *eval.Frame, args []value.I) value.I {
	acc := list.Empty

	for _, l := range list.To(args[0]).Items() {
		acc = list.Concat(acc, list.To(l))
	}

	return acc
}

func count(_ *eval.Frame, args []value.I) value.I {
	switch v := args[0].(type) {
	case *list.T:
		return num.Int(v.Len())
	case *module.T:
		return num.Int(v.Len())
	case str.T:
		return num.Int(utf8.RuneCountInString(v.Text()))
	}

	panic(args[0].Name() + " cannot be counted")
}

func fields(_ *eval.Frame, args []value.I) value.I {
	names := module.To(args[0]).Names()

	vs := make([]value.I, len(names))
	for i, n := range names {
		vs[i] = str.New(n)
	}

	return list.New(vs...)
}
