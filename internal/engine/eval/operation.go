// Released under an MIT license. See LICENSE.

package eval

import (
	"cmp"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/interface/value"
	"github.com/ternlang/tern/internal/reader/token"
	"github.com/ternlang/tern/internal/type/boolean"
	"github.com/ternlang/tern/internal/type/list"
	"github.com/ternlang/tern/internal/type/loc"
	"github.com/ternlang/tern/internal/type/module"
	"github.com/ternlang/tern/internal/type/num"
	"github.com/ternlang/tern/internal/type/str"
)

// Op is a directly executable operation. The set of operations is closed:
// only types in this package implement it.
type Op interface {
	// Eval computes the value of the operation in a non-tail position.
	Eval(f *Frame) value.I

	// Loc is the source location the operation was analysed from.
	Loc() *loc.T

	op()
}

type base struct {
	at *loc.T
}

func (b *base) Loc() *loc.T {
	return b.at
}

func (*base) op() {}

type (
	constant struct {
		base
		v value.I
	}

	local struct {
		base
		depth int
		slot  int
	}

	conditional struct {
		base
		cond, then, otherwise Op
	}

	logical struct {
		base
		and         bool
		left, right Op
	}

	unary struct {
		base
		class token.Class
		arg   Op
	}

	binary struct {
		base
		class       token.Class
		left, right Op
	}

	call struct {
		base
		fn   Op
		args []Op
	}

	index struct {
		base
		list, index Op
	}

	dot struct {
		base
		record Op
		field  string
	}

	lambda struct {
		base
		name   string
		params int
		nslots int
		body   Op
	}

	let struct {
		base
		names []string
		slots []int
		defs  []Op
		body  Op
	}

	sequence struct {
		base
		init []Op
		last Op
	}

	listing struct {
		base
		items []Op
	}

	record struct {
		base
		m *ModuleExpr
	}

	// Generator produces a sequence of values rather than a single value.
	Generator struct {
		base
		items []Op
	}
)

// Constant creates an operation that yields v.
func Constant(v value.I, at *loc.T) Op {
	return &constant{base{at}, v}
}

// Local creates an operation that reads slot in the frame depth levels up.
func Local(depth, slot int, at *loc.T) Op {
	return &local{base{at}, depth, slot}
}

// If creates a two-way conditional.
func If(cond, then, otherwise Op, at *loc.T) Op {
	return &conditional{base{at}, cond, then, otherwise}
}

// And creates a short-circuit conjunction.
func And(left, right Op, at *loc.T) Op {
	return &logical{base{at}, true, left, right}
}

// Or creates a short-circuit disjunction.
func Or(left, right Op, at *loc.T) Op {
	return &logical{base{at}, false, left, right}
}

// Unary creates a prefix operation: '-' or '!'.
func Unary(class token.Class, arg Op, at *loc.T) Op {
	return &unary{base{at}, class, arg}
}

// Binary creates an infix operation.
func Binary(class token.Class, left, right Op, at *loc.T) Op {
	return &binary{base{at}, class, left, right}
}

// Call creates a function call.
func Call(fn Op, args []Op, at *loc.T) Op {
	return &call{base{at}, fn, args}
}

// Index creates a list element selection.
func Index(l, i Op, at *loc.T) Op {
	return &index{base{at}, l, i}
}

// Dot creates a record field selection.
func Dot(r Op, field string, at *loc.T) Op {
	return &dot{base{at}, r, field}
}

// Lambda creates a closure constructor. The closure's frame has nslots
// slots, the first params of which receive the arguments.
func Lambda(name string, params, nslots int, body Op, at *loc.T) Op {
	return &lambda{base{at}, name, params, nslots, body}
}

// Let creates local, mutually recursive bindings of defs to slots in the
// current frame around body.
func Let(names []string, slots []int, defs []Op, body Op, at *loc.T) Op {
	return &let{base{at}, names, slots, defs, body}
}

// Sequence evaluates items in order, yielding the value of the last.
func Sequence(items []Op, at *loc.T) Op {
	n := len(items) - 1

	return &sequence{base{at}, items[:n], items[n]}
}

// List creates a list constructor.
func List(items []Op, at *loc.T) Op {
	return &listing{base{at}, items}
}

// Record creates an operation that forces m in the current frame.
func Record(m *ModuleExpr, at *loc.T) Op {
	return &record{base{at}, m}
}

// NewGenerator creates an operation that produces one value per item.
func NewGenerator(items []Op, at *loc.T) *Generator {
	return &Generator{base{at}, items}
}

// Operations.

func (o *constant) Eval(*Frame) value.I {
	return o.v
}

func (o *local) Eval(f *Frame) value.I {
	return f.up(o.depth).get(o.slot, o.at)
}

func (o *conditional) Eval(f *Frame) value.I {
	return o.branch(f).Eval(f)
}

func (o *conditional) branch(f *Frame) Op {
	if truth(o.cond, f) {
		return o.then
	}

	return o.otherwise
}

func (o *logical) Eval(f *Frame) value.I {
	l := truth(o.left, f)
	if l != o.and {
		return boolean.Bool(l)
	}

	return boolean.Bool(truth(o.right, f))
}

func (o *unary) Eval(f *Frame) value.I {
	v := o.arg.Eval(f)

	switch o.class {
	case '-':
		return num.Float(-number(v, o.at))
	case '!':
		b, ok := v.(boolean.T)
		if !ok {
			typeError(o.at, "!", v)
		}

		return !b
	}

	exception.Fatal("unknown unary operator %s", o.class)

	return nil
}

func (o *binary) Eval(f *Frame) value.I {
	l := o.left.Eval(f)
	r := o.right.Eval(f)

	switch o.class {
	case token.Equal:
		return boolean.Bool(l.Equal(r))
	case token.NotEqual:
		return boolean.Bool(!l.Equal(r))
	case token.Concat:
		return o.concat(l, r)
	case '<', token.LessEqual, '>', token.GreaterEqual:
		return o.compare(l, r)
	}

	a, b := number(l, o.at), number(r, o.at)

	switch o.class {
	case '+':
		return num.Float(a + b)
	case '-':
		return num.Float(a - b)
	case '*':
		return num.Float(a * b)
	case '/':
		return num.Float(a / b)
	}

	exception.Fatal("unknown binary operator %s", o.class)

	return nil
}

func (o *binary) compare(l, r value.I) value.I {
	switch l := l.(type) {
	case num.T:
		return ordered(o.class, float64(l), number(r, o.at))
	case str.T:
		s, ok := r.(str.T)
		if !ok {
			typeError(o.at, o.class.String(), r)
		}

		return ordered(o.class, l, s)
	}

	typeError(o.at, o.class.String(), l)

	return nil
}

func (o *binary) concat(l, r value.I) value.I {
	switch l := l.(type) {
	case *list.T:
		m, ok := r.(*list.T)
		if !ok {
			typeError(o.at, "++", r)
		}

		return list.Concat(l, m)
	case str.T:
		s, ok := r.(str.T)
		if !ok {
			typeError(o.at, "++", r)
		}

		return l + s
	}

	typeError(o.at, "++", l)

	return nil
}

func (o *call) Eval(f *Frame) value.I {
	fn, args := o.operands(f)

	return Apply(f, fn, args, o.at)
}

// tail replaces f with the callee's frame instead of growing the host stack.
func (o *call) tail(f *Frame) *Frame {
	fn, args := o.operands(f)

	switch c := fn.(type) {
	case *Closure:
		nf := c.frame(f, args, o.at)
		nf.next = c.body

		return nf
	case *Builtin:
		f.result = c.call(f, args, o.at)

		return f
	}

	exception.Raise(exception.Runtime, o.at, "%s is not a function", fn.Name())

	return nil
}

func (o *call) operands(f *Frame) (value.I, []value.I) {
	fn := o.fn.Eval(f)

	args := make([]value.I, len(o.args))
	for i, a := range o.args {
		args[i] = a.Eval(f)
	}

	return fn, args
}

func (o *index) Eval(f *Frame) value.I {
	l, ok := o.list.Eval(f).(*list.T)
	if !ok {
		exception.Raise(exception.Runtime, o.list.Loc(), "not a list")
	}

	n := number(o.index.Eval(f), o.index.Loc())

	i := int(n)
	if float64(i) != n || i < 0 || i >= l.Len() {
		exception.Raise(exception.Runtime, o.index.Loc(),
			"index %v out of range for list of length %d", num.Float(n), l.Len())
	}

	return l.Index(i)
}

func (o *dot) Eval(f *Frame) value.I {
	v := o.record.Eval(f)

	m, ok := v.(*module.T)
	if !ok {
		exception.Raise(exception.Runtime, o.record.Loc(), "%s is not a record", v.Name())
	}

	e, ok := m.Get(o.field)
	if !ok {
		exception.Raise(exception.Runtime, o.at, "%s: no such field", o.field)
	}

	return e
}

func (o *lambda) Eval(f *Frame) value.I {
	return &Closure{
		body:   o.body,
		env:    f,
		name:   o.name,
		nslots: o.nslots,
		params: o.params,
	}
}

func (o *let) Eval(f *Frame) value.I {
	o.bind(f)

	return o.body.Eval(f)
}

// bind stores every definition as a pending slot, then forces each one.
func (o *let) bind(f *Frame) {
	for i, d := range o.defs {
		f.slots[o.slots[i]] = &thunk{name: o.names[i], op: d}
	}

	for i, d := range o.defs {
		f.get(o.slots[i], d.Loc())
	}
}

func (o *sequence) Eval(f *Frame) value.I {
	for _, op := range o.init {
		op.Eval(f)
	}

	return o.last.Eval(f)
}

func (o *listing) Eval(f *Frame) value.I {
	items := make([]value.I, len(o.items))
	for i, op := range o.items {
		items[i] = op.Eval(f)
	}

	return list.New(items...)
}

func (o *record) Eval(f *Frame) value.I {
	return o.m.Force(f)
}

// Eval yields the value of a single item generator.
func (o *Generator) Eval(f *Frame) value.I {
	if len(o.items) != 1 {
		exception.Raise(exception.Usage, o.at,
			"expected a single expression, found %d", len(o.items))
	}

	f.next = o.items[0]

	return Run(f)
}

// Items returns the number of values o produces.
func (o *Generator) Items() int {
	return len(o.items)
}

// ordered applies a relational operator. Comparisons involving NaN are false.
func ordered[V cmp.Ordered](class token.Class, a, b V) boolean.T {
	switch class {
	case '<':
		return a < b
	case token.LessEqual:
		return a <= b
	case '>':
		return a > b
	}

	return a >= b
}

func number(v value.I, at *loc.T) float64 {
	n, ok := v.(num.T)
	if !ok {
		exception.Raise(exception.Runtime, at, "%s is not a number", v.Name())
	}

	return float64(n)
}

func truth(op Op, f *Frame) bool {
	v := op.Eval(f)

	b, ok := v.(boolean.T)
	if !ok {
		exception.Raise(exception.Runtime, op.Loc(), "%s is not a boolean", v.Name())
	}

	return bool(b)
}

func typeError(at *loc.T, op string, v value.I) {
	exception.Raise(exception.Runtime, at, "%s: %s operand not supported", op, v.Name())
}
