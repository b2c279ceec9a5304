// Released under an MIT license. See LICENSE.

// Package num provides tern's number type.
package num

import (
	"math"
	"strconv"

	"github.com/ternlang/tern/internal/interface/value"
)

const name = "number"

// T (num) wraps Go's float64 type.
type T float64

type num = T

// New creates a new num from a string.
func New(s string) value.I {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic("'" + s + "' is not a valid number")
	}

	return num(f)
}

// Float creates a num from the float64 f.
func Float(f float64) value.I {
	return num(f)
}

// Int creates a num from the integer i.
func Int(i int) value.I {
	return num(i)
}

// Equal returns true if v is the same number as the num n.
func (n num) Equal(v value.I) bool {
	return Is(v) && n == To(v)
}

// Float returns the value of the num n as a float64.
func (n num) Float() float64 {
	return float64(n)
}

// Name returns the type name for the num n.
func (n num) Name() string {
	return name
}

// String returns the text of the num n.
func (n num) String() string {
	f := float64(n)

	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		return "0"
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Is returns true if v is a num.
func Is(v value.I) bool {
	_, ok := v.(num)

	return ok
}

// To returns a num if v is a num; Otherwise it panics.
func To(v value.I) num {
	if n, ok := v.(num); ok {
		return n
	}

	panic(v.Name() + " cannot be used in a numeric context")
}

// A compiler-checked list of interfaces this type satisfies. Never called.
func implements() { //nolint:deadcode,unused
	var t num

	// The num type is a value.
	_ = value.I(t)
}
