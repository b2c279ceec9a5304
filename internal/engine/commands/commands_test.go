package commands

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternlang/tern/internal/engine/eval"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/type/boolean"
	"github.com/ternlang/tern/internal/type/list"
	"github.com/ternlang/tern/internal/type/module"
	"github.com/ternlang/tern/internal/type/num"
	"github.com/ternlang/tern/internal/type/str"
)

type system struct {
	console bytes.Buffer
	loaded  []string
}

func (s *system) Console() io.Writer {
	return &s.console
}

func (*system) Interrupted() bool {
	return false
}

func (s *system) Load(path string, _ *eval.Frame) value.I {
	s.loaded = append(s.loaded, path)

	return str.New(path)
}

func (*system) MaxDepth() int {
	return 0
}

func call(t *testing.T, s *system, name string, args ...value.I) value.I {
	t.Helper()

	b, ok := Functions()[name]
	require.True(t, ok, name)

	return eval.Apply(eval.NewFrame(0, s, nil, nil), b, args, nil)
}

func record(kv ...interface{}) value.I {
	b := module.NewBuilder(len(kv) / 2)
	for i := 0; i < len(kv); i += 2 {
		b.Set(kv[i].(string), kv[i+1].(value.I))
	}

	return b.Module()
}

func TestConstants(t *testing.T) {
	c := Constants()

	assert.Equal(t, boolean.True, c["true"])
	assert.Equal(t, boolean.False, c["false"])
	assert.Equal(t, "inf", c["inf"].String())
	assert.Equal(t, "3.141592653589793", c["pi"].String())
}

func TestFunctions(t *testing.T) {
	for name, b := range Functions() {
		assert.Equal(t, "<builtin "+name+">", b.String())
		assert.Equal(t, "function", b.Name())
	}
}

func TestNumbers(t *testing.T) {
	s := &system{}

	assert.Equal(t, "2.5", call(t, s, "abs", num.Float(-2.5)).String())
	assert.Equal(t, "3", call(t, s, "ceil", num.Float(2.1)).String())
	assert.Equal(t, "2", call(t, s, "floor", num.Float(2.9)).String())
	assert.Equal(t, "3", call(t, s, "sqrt", num.Int(9)).String())
	assert.Equal(t, "NaN", call(t, s, "sqrt", num.Int(-1)).String())

	assert.PanicsWithError(t, "string cannot be used in a numeric context", func() {
		call(t, s, "abs", str.New("1"))
	})
}

func TestPredicates(t *testing.T) {
	s := &system{}

	sqrt := Functions()["sqrt"]

	for name, args := range map[string][2]value.I{
		"is_bool":   {boolean.False, num.Int(0)},
		"is_fun":    {sqrt, record("f", sqrt)},
		"is_list":   {list.Empty, str.New("")},
		"is_num":    {num.Int(0), list.New(num.Int(0))},
		"is_record": {record(), list.Empty},
		"is_str":    {str.New(""), list.New(str.New(""))},
	} {
		assert.Equal(t, boolean.True, call(t, s, name, args[0]), name)
		assert.Equal(t, boolean.False, call(t, s, name, args[1]), name)
	}

	// A list of lists is still a list.
	assert.Equal(t, boolean.True, call(t, s, "is_list", list.New(list.Empty)))
}

func TestStrings(t *testing.T) {
	s := &system{}

	assert.Equal(t, `"abc"`, call(t, s, "str", str.New("abc")).String())
	assert.Equal(t, `"[1,\"a\"]"`, call(t, s, "str", list.New(num.Int(1), str.New("a"))).String())
	assert.Equal(t, `"\"abc\""`, call(t, s, "repr", str.New("abc")).String())

	assert.Equal(t, boolean.True, call(t, s, "match", str.New("a?c"), str.New("abc")))
	assert.Equal(t, boolean.False, call(t, s, "match", str.New("a*"), str.New("bc")))

	assert.Panics(t, func() {
		call(t, s, "match", str.New("[a"), str.New("a"))
	})
}

func TestCollections(t *testing.T) {
	s := &system{}

	l := list.New(list.New(num.Int(1)), list.Empty, list.New(num.Int(2), num.Int(3)))
	assert.Equal(t, "[1,2,3]", call(t, s, "concat", l).String())
	assert.Equal(t, "[]", call(t, s, "concat", list.Empty).String())

	assert.Equal(t, "3", call(t, s, "count", l).String())
	assert.Equal(t, "2", call(t, s, "count", str.New("日本")).String())
	assert.Equal(t, "1", call(t, s, "count", record("a", num.Int(1))).String())

	assert.PanicsWithError(t, "number cannot be counted", func() {
		call(t, s, "count", num.Int(1))
	})

	r := record("b", num.Int(1), "a", num.Int(2))
	assert.Equal(t, `["b","a"]`, call(t, s, "fields", r).String())
}

func TestCore(t *testing.T) {
	s := &system{}

	v := call(t, s, "print", str.New("hello"))
	assert.Equal(t, `"hello"`, v.String())

	call(t, s, "print", list.New(str.New("a")))
	assert.Equal(t, "hello\n[\"a\"]\n", s.console.String())

	assert.Equal(t, `"lib.tern"`, call(t, s, "file", str.New("lib.tern")).String())
	assert.Equal(t, []string{"lib.tern"}, s.loaded)

	assert.PanicsWithError(t, "boom", func() {
		call(t, s, "error", str.New("boom"))
	})

	assert.PanicsWithError(t, "sqrt: expected 1 arguments, got 0", func() {
		call(t, s, "sqrt")
	})
}
