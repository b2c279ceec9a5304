package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/ternlang/tern/internal/common/exception"
	"github.com/ternlang/tern/internal/engine/boot"
	"github.com/ternlang/tern/internal/reader/lexer"
	"github.com/ternlang/tern/internal/reader/phrase"
	"github.com/ternlang/tern/internal/reader/source"
)

func parse(t *testing.T, s string) phrase.I {
	t.Helper()

	p, err := Program(lexer.New(source.New("test", s)).Token)
	if err != nil {
		t.Fatalf("%q: %v", s, err)
	}

	return p
}

// show renders p fully parenthesized so that structure is visible.
//
//nolint:cyclop
func show(p phrase.I) string {
	switch p := p.(type) {
	case *phrase.Program:
		return show(p.Body)
	case *phrase.Num:
		return p.Text
	case *phrase.Str:
		return `"` + p.Text + `"`
	case *phrase.Ident:
		return p.Name
	case *phrase.Unary:
		return "(" + p.Op.String()[1:2] + show(p.Arg) + ")"
	case *phrase.Binary:
		return "(" + show(p.Left) + " " + strings.Trim(p.Op.String(), "'") + " " + show(p.Right) + ")"
	case *phrase.Call:
		return show(p.Func) + "(" + list(p.Args) + ")"
	case *phrase.Index:
		return show(p.List) + "[" + show(p.Index) + "]"
	case *phrase.Dot:
		return show(p.Record) + "." + p.Field.Name
	case *phrase.If:
		return "(if " + show(p.Cond) + " then " + show(p.Then) + " else " + show(p.Else) + ")"
	case *phrase.Let:
		defs := make([]phrase.I, len(p.Defs))
		for i, d := range p.Defs {
			defs[i] = d
		}

		return "(let " + list(defs) + " in " + show(p.Body) + ")"
	case *phrase.Lambda:
		return "(" + params(p.Params) + " -> " + show(p.Body) + ")"
	case *phrase.Paren:
		return "(" + list(p.Items) + ")"
	case *phrase.List:
		return "[" + list(p.Items) + "]"
	case *phrase.Record:
		return "{" + list(p.Items) + "}"
	case *phrase.Definition:
		if p.IsFunction() {
			return p.Name.Name + "(" + params(p.Params) + ") = " + show(p.Value)
		}

		return p.Name.Name + " = " + show(p.Value)
	case *phrase.Sequence:
		return "(" + strings.Join(strs(p.Items), "; ") + ")"
	case *phrase.Comma:
		return list(p.Items)
	}

	return "?"
}

func list(ps []phrase.I) string {
	return strings.Join(strs(ps), ", ")
}

func params(ids []*phrase.Ident) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.Name
	}

	return strings.Join(s, ", ")
}

func strs(ps []phrase.I) []string {
	s := make([]string, len(ps))
	for i, p := range ps {
		s[i] = show(p)
	}

	return s
}

func TestBoot(t *testing.T) {
	p := parse(t, boot.Library())

	defs, ok := phrase.AsDefinition(p)
	if !ok {
		t.Fatal("standard library is not a definition block")
	}

	if len(defs) < 8 { //nolint:gomnd
		t.Fatalf("expected at least 8 definitions, got %d", len(defs))
	}
}

func TestClassification(t *testing.T) {
	for s, want := range map[string]bool{
		"":                    false,
		"1 + 2":               false,
		"a = 1":               true,
		"a = 1, b = 2":        true,
		"a = 1, b = 2,":       true,
		"f(x) = x, g = f":     true,
		"a = 1, 2":            false,
		"(a = 1)":             false,
		"let a = 1 in a":      false,
		"x -> x":              false,
		"{a = 1}":             false,
		"print(1); print(2)":  false,
		"a = 1; b = 2":        true,
		"a = 1; b = 2, c = 3": true,
		"a = 1; 2":            false,
		"[a = 1; b = 2]":      false,
	} {
		_, ok := phrase.AsDefinition(parse(t, s))
		if ok != want {
			t.Errorf("%q: expected definition=%v", s, want)
		}
	}
}

func TestLocation(t *testing.T) {
	p := parse(t, "  x +\n y ")

	l := p.Loc()
	if l.Start != 2 || l.End != 9 || l.Line != 1 || l.Char != 3 {
		t.Fatalf("unexpected program location %+v", *l)
	}

	n := phrase.Nub(p)
	if _, ok := n.(*phrase.Binary); !ok {
		t.Fatalf("expected the nub to be the sum, got %T", n)
	}
}

func TestMalformed(t *testing.T) {
	for s, msg := range map[string]string{
		"1 +":         "expected an expression, got end of input",
		"(1, 2":       "expected ')', got end of input",
		"if a then b": "expected 'else', got end of input",
		"let a = 1 a": "expected 'in', got 'a'",
		"1 = 2":       "invalid definition",
		"f(1) = 2":    "function parameters must be identifiers",
		"(1) -> 2":    "function parameters must be identifiers",
		"a < b < c":   "expected end of input, got '<'",
		"x.(y)":       "expected identifier, got '('",
		"a b":         "expected end of input, got 'b'",
	} {
		_, err := Program(lexer.New(source.New("test", s)).Token)
		if err == nil {
			t.Errorf("%q: expected an error", s)

			continue
		}

		if !errors.Is(err, exception.ErrSyntax) {
			t.Errorf("%q: expected a syntax error, got %v", s, err)
		}

		if !strings.Contains(err.Error(), msg) {
			t.Errorf("%q: expected %q in %q", s, msg, err.Error())
		}
	}
}

func TestNub(t *testing.T) {
	for s, want := range map[string]string{
		"1 + 2":   "(1 + 2)",
		"(1 + 2)": "(1 + 2)",
		"((x))":   "x",
		"1,":      "1",
		"1, 2":    "1, 2",
		"(1, 2)":  "(1, 2)",
	} {
		if got := show(phrase.Nub(parse(t, s))); got != want {
			t.Errorf("%q: expected %s, got %s", s, want, got)
		}
	}
}

func TestStructure(t *testing.T) {
	for s, want := range map[string]string{
		"1 + 2 * 3":                      "(1 + (2 * 3))",
		"1 - 2 - 3":                      "((1 - 2) - 3)",
		"-a * b":                         "((-a) * b)",
		"!a && b || c":                   "(((!a) && b) || c)",
		"a ++ b == c":                    "((a ++ b) == c)",
		"a <= b && b != c":               "((a <= b) && (b != c))",
		"f(x)(y)[0].z":                   "f(x)(y)[0].z",
		"f()":                            "f()",
		"x -> y -> x + y":                "(x -> (y -> (x + y)))",
		"(a, b) -> a":                    "(a, b -> a)",
		"() -> 1":                        "( -> 1)",
		"if a then b else c + 1":         "(if a then b else (c + 1))",
		"let f(n) = n, m = 2 in f(m)":    "(let f(n) = n, m = 2 in f(m))",
		"a = 1; 2":                       "(a = 1; 2)",
		"a = 1; b = 2":                   "(a = 1; b = 2)",
		"let a = 1; b = 2 in a + b":      "(let a = 1, b = 2 in (a + b))",
		"(a; b)":                         "((a; b))",
		"print(1); 2":                    "(print(1); 2)",
		"[1, [2], []]":                   "[1, [2], []]",
		"{a = 1, b(x) = x}":              "{a = 1, b(x) = x}",
		"{}":                             "{}",
		"()":                             "()",
		"(1,)":                           "(1)",
		"\"s\" ++ \"t\"":                 "(\"s\" ++ \"t\")",
		"f(a, b) = g(b, a), g(a, b) = a": "f(a, b) = g(b, a), g(a, b) = a",
	} {
		if got := show(parse(t, s)); got != want {
			t.Errorf("%q: expected %s, got %s", s, want, got)
		}
	}
}
