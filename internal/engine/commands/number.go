// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/num"
)

func unary(op func(float64) float64) eval.Function {
	return func(_ *eval.Frame, args []value.I) value.I {
		return num.Float(op(num.To(args[0]).Float()))
	}
}
