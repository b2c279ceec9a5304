// Released under an MIT license. See LICENSE.

package commands

import (
	"fmt"

	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/str"
)

func isFunction(v value.I) bool {
	_, ok := v.(value.Callable)

	return ok
}

func file(f *eval.Frame, args []value.I) value.I {
	return f.System().Load(str.To(args[0]).Text(), f)
}

func display(f *eval.Frame, args []value.I) value.I {
	fmt.Fprintln(f.System().Console(), text(args[0]))

	return args[0]
}

func raise(_ *eval.Frame, args []value.I) value.I {
	panic(text(args[0]))
}
