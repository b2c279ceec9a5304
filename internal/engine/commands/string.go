// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/adapted"

	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/boolean"
	"github.com/ternlang/tern/internal/type/str"
)

func isString(v value.I) bool {
	return str.Is(v)
}

// text returns the contents of a string or the printed form of anything else.
func text(v value.I) string {
	if str.Is(v) {
		return str.To(v).Text()
	}

	return v.String()
}

func makeString(_ *eval.Frame, args []value.I) value.I {
	return str.New(text(args[0]))
}

func match(_ *eval.Frame, args []value.I) value.I {
	ok, err := adapted.Match(str.To(args[0]).Text(), str.To(args[1]).Text())
	if err != nil {
		panic(err.Error())
	}

	return boolean.Bool(ok)
}

func repr(_ *eval.Frame, args []value.I) value.I {
	return str.New(args[0].String())
}
