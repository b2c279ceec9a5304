package namespace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternlang/tern/internal/type/module"
	"github.com/ternlang/tern/internal/type/num"
)

func TestDefine(t *testing.T) {
	n := New()

	_, ok := n.Lookup("a")
	assert.False(t, ok)

	n.Define("a", num.Int(1))
	n.Define("b", num.Int(2))
	n.Define("a", num.Int(3))

	v, ok := n.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "3", v.String())
	assert.Equal(t, []string{"a", "b"}, n.Names())
	assert.Equal(t, 2, n.Size())
}

func TestClone(t *testing.T) {
	n := New()
	n.Define("a", num.Int(1))

	c := n.Clone()
	c.Define("b", num.Int(2))
	c.Define("a", num.Int(3))

	v, _ := n.Lookup("a")
	assert.Equal(t, "1", v.String())
	assert.Equal(t, 1, n.Size())
	assert.Equal(t, []string{"a", "b"}, c.Names())
}

func TestMerge(t *testing.T) {
	b := module.NewBuilder(2)
	b.Set("y", num.Int(2))
	b.Set("x", num.Int(1))

	n := New()
	n.Define("x", num.Int(0))
	n.Merge(b.Module())

	v, _ := n.Lookup("x")
	assert.Equal(t, "1", v.String())
	assert.Equal(t, []string{"x", "y"}, n.Names())
}

func TestNil(t *testing.T) {
	var n *T

	_, ok := n.Lookup("a")
	assert.False(t, ok)
}
