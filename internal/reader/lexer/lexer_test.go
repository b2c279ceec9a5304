package lexer

import (
	"errors"
	"testing"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/reader/source"
	"github.com/ternlang/tern/internal/reader/token"
)

type expected struct {
	class token.Class
	value string
}

type harness struct {
	lexer *T
	t     *testing.T
}

func setup(t *testing.T, s string, opts ...Option) *harness {
	t.Helper()

	return &harness{
		lexer: New(source.New("test", s), opts...),
		t:     t,
	}
}

func (h *harness) expect(tokens ...expected) {
	h.t.Helper()

	for i, e := range tokens {
		a := h.lexer.Token()

		if a.Class() != e.class || a.Value() != e.value {
			h.t.Fatalf("token %d: expected %v %q, got %v %q",
				i, e.class, e.value, a.Class(), a.Value())
		}
	}

	if a := h.lexer.Token(); !a.Is(token.EOF) {
		h.t.Fatalf("expected end of input, got %v %q", a.Class(), a.Value())
	}
}

func lit(s string) expected {
	if len(s) == 1 {
		return expected{token.Class(s[0]), s}
	}

	c, ok := map[string]token.Class{
		"!=": token.NotEqual,
		"&&": token.And,
		"++": token.Concat,
		"->": token.Arrow,
		"<=": token.LessEqual,
		"==": token.Equal,
		">=": token.GreaterEqual,
		"||": token.Or,
	}[s]
	if !ok {
		c, _ = token.Keyword(s)
	}

	return expected{c, s}
}

func id(s string) expected {
	return expected{token.Identifier, s}
}

func number(s string) expected {
	return expected{token.Number, s}
}

func str(s string) expected {
	return expected{token.String, s}
}

func failure(t *testing.T, s string) {
	t.Helper()

	defer func() {
		t.Helper()

		r := recover()
		if r == nil {
			t.Fatalf("%q: expected a syntax error", s)
		}

		err, ok := r.(error)
		if !ok || !errors.Is(err, exception.ErrSyntax) {
			t.Fatalf("%q: expected a syntax error, got %v", s, r)
		}
	}()

	l := New(source.New("test", s))
	for tok := l.Token(); !tok.Is(token.EOF); tok = l.Token() {
		continue
	}
}

func TestComments(t *testing.T) {
	h := setup(t, "a // first\n// second\nb //")

	h.expect(id("a"), id("b"))
}

func TestDefinition(t *testing.T) {
	h := setup(t, "f(x, y) = x ++ y;")

	h.expect(
		id("f"), lit("("), id("x"), lit(","), id("y"), lit(")"),
		lit("="), id("x"), lit("++"), id("y"), lit(";"),
	)
}

func TestKeywords(t *testing.T) {
	h := setup(t, "let x = 1 in if x then y else z")

	h.expect(
		lit("let"), id("x"), lit("="), number("1"), lit("in"),
		lit("if"), id("x"), lit("then"), id("y"), lit("else"), id("z"),
	)
}

func TestLocations(t *testing.T) {
	h := setup(t, "a\n  bc")

	a := h.lexer.Token()
	if l := a.Source(); l.Line != 1 || l.Char != 1 || l.Start != 0 || l.End != 1 {
		t.Fatalf("a: unexpected location %+v", *l)
	}

	bc := h.lexer.Token()
	if l := bc.Source(); l.Line != 2 || l.Char != 3 || l.Start != 4 || l.End != 6 {
		t.Fatalf("bc: unexpected location %+v", *l)
	}

	if s := bc.Source().String(); s != "test:2:3" {
		t.Fatalf("expected test:2:3, got %s", s)
	}
}

func TestMalformed(t *testing.T) {
	for _, s := range []string{
		"\"open",
		"\"line\nbreak\"",
		"1e",
		"12abc",
		"a & b",
		"a | b",
		"#",
	} {
		failure(t, s)
	}
}

func TestNumbers(t *testing.T) {
	h := setup(t, "0 12 1.5 .25 2e3 6.02E+23 1e-9")

	h.expect(
		number("0"), number("12"), number("1.5"), number(".25"),
		number("2e3"), number("6.02E+23"), number("1e-9"),
	)
}

func TestOperators(t *testing.T) {
	for _, op := range []string{
		"!", "!=", "&&", "*", "+", "++", "-", "->", "/",
		"<", "<=", "=", "==", ">", ">=", "||",
	} {
		h := setup(t, "a "+op+" b")

		h.expect(id("a"), lit(op), id("b"))
	}
}

func TestPunctuation(t *testing.T) {
	h := setup(t, "([{a.b}]),;:")

	h.expect(
		lit("("), lit("["), lit("{"), id("a"), lit("."), id("b"),
		lit("}"), lit("]"), lit(")"), lit(","), lit(";"), lit(":"),
	)
}

func TestRest(t *testing.T) {
	h := setup(t, "x = 1\ny", SkipPrefix(6))

	r := h.lexer.Rest()
	if r.Start != 6 || r.End != 7 || r.Line != 2 || r.Char != 1 {
		t.Fatalf("unexpected rest %+v", *r)
	}

	h.expect(id("y"))
}

func TestSkipPrefix(t *testing.T) {
	h := setup(t, "ignored 1 + 2", SkipPrefix(8))

	t1 := h.lexer.Token()
	if t1.Value() != "1" || t1.Source().Char != 9 {
		t.Fatalf("expected 1 at column 9, got %q at %d", t1.Value(), t1.Source().Char)
	}

	h.expect(lit("+"), number("2"))
}

func TestStrings(t *testing.T) {
	h := setup(t, `"plain" "tab\there" "quote\"d" ""`)

	h.expect(str("plain"), str("tab\there"), str(`quote"d`), str(""))
}

func TestUnicodeIdentifiers(t *testing.T) {
	h := setup(t, "_x1 café λ")

	h.expect(id("_x1"), id("café"), id("λ"))
}
