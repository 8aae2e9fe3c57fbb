package printers

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/grammars"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/nodes"
)

func parse(t *testing.T, code string) *parsed {
	t.Helper()
	parser := grammars.New(lexers.DefaultOptions())
	stmts, err := parser.Parse([]byte(code), errs.Throwing{})
	if err != nil {
		t.Fatal(err)
	}
	return &parsed{
		stmts:  stmts,
		parser: parser,
	}
}

type parsed struct {
	stmts  []nodes.Stmt
	parser *grammars.Parser
}

func newPrinter(t *testing.T, options Options) *Printer {
	t.Helper()
	p, err := New(options)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func intLit(v int64) *nodes.Int {
	return &nodes.Int{Value: v}
}

func binary(op nodes.BinaryOpKind, left, right nodes.Expr) *nodes.BinaryOp {
	return &nodes.BinaryOp{Op: op, Left: left, Right: right}
}

func TestPrecedence(t *testing.T) {
	p := newPrinter(t, DefaultOptions())
	for _, c := range []struct {
		expr     nodes.Expr
		expected string
	}{
		{
			binary(nodes.OpMul, binary(nodes.OpPlus, intLit(1), intLit(2)), intLit(3)),
			"(1 + 2) * 3",
		},
		{
			binary(nodes.OpPlus, intLit(1), binary(nodes.OpMul, intLit(2), intLit(3))),
			"1 + 2 * 3",
		},
		{
			binary(nodes.OpMinus, intLit(1), binary(nodes.OpMinus, intLit(2), intLit(3))),
			"1 - (2 - 3)",
		},
		{
			binary(nodes.OpMinus, binary(nodes.OpMinus, intLit(1), intLit(2)), intLit(3)),
			"1 - 2 - 3",
		},
		{
			binary(nodes.OpPow, binary(nodes.OpPow, intLit(1), intLit(2)), intLit(3)),
			"(1 ** 2) ** 3",
		},
		{
			&nodes.UnaryMinus{Expr: &nodes.UnaryMinus{Expr: &nodes.Variable{Name: "a"}}},
			"-(-$a)",
		},
		{
			&nodes.BooleanNot{Expr: &nodes.Assign{Var: &nodes.Variable{Name: "a"}, Expr: intLit(1)}},
			"!$a = 1",
		},
		{
			binary(nodes.OpMul, intLit(2), &nodes.Assign{Var: &nodes.Variable{Name: "a"}, Expr: intLit(1)}),
			"2 * $a = 1",
		},
		{
			intLit(math.MinInt64),
			"(-9223372036854775807-1)",
		},
	} {
		got, err := p.PrettyPrintExpr(c.expr)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.expected {
			t.Fatalf("got %v, expected %v", got, c.expected)
		}
	}
}

func TestPrettyPrintFile(t *testing.T) {
	p := newPrinter(t, DefaultOptions())
	for _, c := range []struct {
		code     string
		expected string
	}{
		{"<?php $a = 1 + 2;", "<?php\n\n$a = 1 + 2;"},
		{"<?php $a=[1,2];", "<?php\n\n$a = [1, 2];"},
		{"<?php $a=array(1);", "<?php\n\n$a = array(1);"},
		{"<?php if($a){echo 1;}else{echo 2;}", "<?php\n\nif ($a) {\n    echo 1;\n} else {\n    echo 2;\n}"},
		{"<?php function f(int $a=1):?int{return $a;}", "<?php\n\nfunction f(int $a = 1): ?int\n{\n    return $a;\n}"},
		{"<?php $f=function()use($a){};", "<?php\n\n$f = function () use ($a) {\n};"},
		{"<?php $x = 0x1F;", "<?php\n\n$x = 0x1f;"},
		{"<?php $x = 'a\\'b';", "<?php\n\n$x = 'a\\'b';"},
		{"<?php $x = \"a\\tb\";", "<?php\n\n$x = \"a\\tb\";"},
		{"<?php $x = (float) $y;", "<?php\n\n$x = (float) $y;"},
		{"<?php $x = $a?->b;", "<?php\n\n$x = $a?->b;"},
		{"<?php $a = <<<EOT\nfoo\nEOT;\n", "<?php\n\n$a = <<<EOT\nfoo\nEOT;"},
	} {
		got, err := p.PrettyPrintFile(parse(t, c.code).stmts)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.expected {
			t.Fatalf("%s: got %q", c.code, got)
		}
	}
}

func TestPrettyPrintRoundTrip(t *testing.T) {
	p := newPrinter(t, DefaultOptions())
	for _, code := range []string{
		"<?php\nnamespace A;\nuse B\\C as D;\nclass E extends F implements G, H\n{\n    const X = 1;\n    private ?int $y = null;\n    public static function z(...$args): static\n    {\n        return new Foo(...$args);\n    }\n}\n",
		"<?php\nforeach ($a as $k => &$v) {\n    unset($v);\n}\nwhile (true) {\n    break 2;\n}\ndo {\n} while ($x--);\n",
		"<?php\ntry {\n    f();\n} catch (A|B $e) {\n} finally {\n    g();\n}\n",
		"<?php\nswitch ($a) {\n    case 1:\n        echo 'x';\n        break;\n    default:\n}\n",
		"<?php\n$s = \"a {$b} c\";\n$t = $a ?? $b ?: $c;\n$u = fn($x) => $x * 2;\n",
	} {
		first, err := p.PrettyPrintFile(parse(t, code).stmts)
		if err != nil {
			t.Fatal(err)
		}
		second, err := p.PrettyPrintFile(parse(t, first).stmts)
		if err != nil {
			t.Fatal(err)
		}
		if first != second {
			t.Fatalf("not stable:\n%s\n---\n%s", first, second)
		}
	}
}

func TestPrintFloat(t *testing.T) {
	for _, c := range []struct {
		f        float64
		expected string
	}{
		{1, "1.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{-2, "-2.0"},
		{math.Inf(1), `\INF`},
		{math.Inf(-1), `-\INF`},
		{math.NaN(), `\NAN`},
	} {
		if got := printFloat(c.f); got != c.expected {
			t.Fatalf("%v: got %v", c.f, got)
		}
	}
}

func TestEscapeString(t *testing.T) {
	for _, c := range []struct {
		s        string
		quote    byte
		expected string
	}{
		{"a\nb", '"', `a\nb`},
		{"a\nb", 0, "a\nb"},
		{`$x`, '"', `\$x`},
		{`"`, '"', `\"`},
		{`"`, 0, `"`},
		{"\x00", '"', `\x00`},
		{"\xff", '"', `\xff`},
		{"é", '"', "é"},
		{`\`, '"', `\\`},
	} {
		if got := escapeString(c.s, c.quote); got != c.expected {
			t.Fatalf("%q: got %q", c.s, got)
		}
	}
}

func TestContainsEndLabel(t *testing.T) {
	for _, c := range []struct {
		s        string
		atStart  bool
		atEnd    bool
		expected bool
	}{
		{"EOT", true, true, true},
		{"EOT", false, false, false},
		{"a\nEOT\nb", true, true, true},
		{"a\n  EOT;", true, true, true},
		{"a\nEOTX", true, true, false},
		{"aEOT", true, true, false},
		{"a\nEOT", true, false, false},
	} {
		if got := containsEndLabel(c.s, "EOT", c.atStart, c.atEnd); got != c.expected {
			t.Fatalf("%q: got %v", c.s, got)
		}
	}
}

func TestShortArraySyntax(t *testing.T) {
	array := &nodes.ArrayExpr{
		Items: []*nodes.ArrayItem{
			{Value: intLit(1)},
		},
	}
	options := DefaultOptions()
	options.ShortArraySyntax = false
	got, err := newPrinter(t, options).PrettyPrintExpr(array)
	if err != nil {
		t.Fatal(err)
	}
	if got != "array(1)" {
		t.Fatalf("got %v", got)
	}
	got, err = newPrinter(t, DefaultOptions()).PrettyPrintExpr(array)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[1]" {
		t.Fatalf("got %v", got)
	}
}

func TestVersionGates(t *testing.T) {
	options := DefaultOptions()
	options.Version = semver.MustParse("7.4.0")
	p := newPrinter(t, options)

	_, err := p.PrettyPrintExpr(&nodes.NullsafePropertyFetch{
		Var:  &nodes.Variable{Name: "a"},
		Name: &nodes.Identifier{Name: "b"},
	})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("got %v", err)
	}

	got, err := p.PrettyPrintExpr(&nodes.Cast{
		Kind: nodes.CastDouble,
		Expr: &nodes.Variable{Name: "a"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "(double) $a" {
		t.Fatalf("got %v", got)
	}

	// closing labels can not be indented before 7.3
	options.Version = semver.MustParse("7.2.0")
	p = newPrinter(t, options)
	code, err := p.PrettyPrint(parse(t, "<?php if ($a) { $b = <<<EOT\n  x\n  EOT;\n}").stmts)
	if err != nil {
		t.Fatal(err)
	}
	if code != "if ($a) {\n    $b = <<<EOT\nx\nEOT;\n}" {
		t.Fatalf("got %q", code)
	}
}

func TestErrorNode(t *testing.T) {
	p := newPrinter(t, DefaultOptions())
	_, err := p.PrettyPrintExpr(&nodes.Assign{
		Var:  &nodes.Variable{Name: "a"},
		Expr: &nodes.Error{},
	})
	if !errors.Is(err, ErrErrorNode) {
		t.Fatalf("got %v", err)
	}
}

func TestInvalidOptions(t *testing.T) {
	options := DefaultOptions()
	options.Newline = "\r"
	if _, err := New(options); err == nil {
		t.Fatal("should fail")
	}
	options = DefaultOptions()
	options.Indent = " \t"
	if _, err := New(options); err == nil {
		t.Fatal("should fail")
	}
}

func TestTabIndent(t *testing.T) {
	options := DefaultOptions()
	options.Indent = "\t"
	p := newPrinter(t, options)
	got, err := p.PrettyPrint(parse(t, "<?php if ($a) { if ($b) { echo 1; } }").stmts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "\n\t\techo 1;") {
		t.Fatalf("got %q", got)
	}
}
