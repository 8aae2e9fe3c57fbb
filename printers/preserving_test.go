package printers

import (
	"strings"
	"testing"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/traversers"
)

// reprint parses code, lets edit change a clone of the tree, and prints the
// clone preserving formatting.
func reprint(t *testing.T, code string, edit func(stmts []nodes.Stmt) []nodes.Stmt) string {
	t.Helper()
	parsed := parse(t, code)
	cloned, origins := traversers.CloneTree(parsed.stmts)
	if edit != nil {
		cloned = edit(cloned)
	}
	p := newPrinter(t, DefaultOptions())
	ret, err := p.PrintFormatPreserving(cloned, parsed.stmts, parsed.parser.Tokens(), origins)
	if err != nil {
		t.Fatal(err)
	}
	return ret
}

func assignment(name string, value int64) *nodes.Expression {
	return &nodes.Expression{
		Expr: &nodes.Assign{
			Var:  &nodes.Variable{Name: name},
			Expr: intLit(value),
		},
	}
}

func TestPreservingIdentity(t *testing.T) {
	for _, code := range []string{
		"<?php\n\n$a = 1 + 2;\n",
		"<?php\n$a   =    [ 1,2 ];   // comment\n",
		"<?php\nfunction   f( $x ) {\n\treturn $x;\n}\n",
	} {
		if got := reprint(t, code, nil); got != code {
			t.Fatalf("got %q, expected %q", got, code)
		}
	}
}

func TestPreservingReplaceOperand(t *testing.T) {
	code := "<?php\n\n$a = 1 + 2;\n"
	plus := func(stmts []nodes.Stmt) *nodes.BinaryOp {
		return stmts[0].(*nodes.Expression).Expr.(*nodes.Assign).Expr.(*nodes.BinaryOp)
	}

	got := reprint(t, code, func(stmts []nodes.Stmt) []nodes.Stmt {
		plus(stmts).Right = intLit(3)
		return stmts
	})
	if got != "<?php\n\n$a = 1 + 3;\n" {
		t.Fatalf("got %q", got)
	}

	// the new operand binds looser, so it gets parentheses
	got = reprint(t, code, func(stmts []nodes.Stmt) []nodes.Stmt {
		plus(stmts).Right = binary(nodes.OpPlus, intLit(2), intLit(3))
		return stmts
	})
	if got != "<?php\n\n$a = 1 + (2 + 3);\n" {
		t.Fatalf("got %q", got)
	}

	got = reprint(t, code, func(stmts []nodes.Stmt) []nodes.Stmt {
		plus(stmts).Right = binary(nodes.OpMul, intLit(2), intLit(3))
		return stmts
	})
	if got != "<?php\n\n$a = 1 + 2 * 3;\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingFallback(t *testing.T) {
	got := reprint(t, "<?php\n\n$a  =  1;\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		stmts[0].(*nodes.Expression).Expr.(*nodes.Assign).Var.(*nodes.Variable).Name = "c"
		return stmts
	})
	if got != "<?php\n\n$c  =  1;\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingAppend(t *testing.T) {
	got := reprint(t, "<?php\n\n$a = 1 + 2;\n$c = 3;\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		return append(stmts, assignment("b", 2))
	})
	if got != "<?php\n\n$a = 1 + 2;\n$c = 3;\n$b = 2;\n" {
		t.Fatalf("got %q", got)
	}

	got = reprint(t, "<?php\nfunction f()\n{\n    $a = 1;\n}\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		fn := stmts[0].(*nodes.Function)
		fn.Stmts = append(fn.Stmts, assignment("b", 2))
		return stmts
	})
	if got != "<?php\nfunction f()\n{\n    $a = 1;\n    $b = 2;\n}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingRemove(t *testing.T) {
	code := "<?php\n$a = 1;\n$b = 2;\n"
	got := reprint(t, code, func(stmts []nodes.Stmt) []nodes.Stmt {
		return stmts[:1]
	})
	if got != "<?php\n$a = 1;\n" {
		t.Fatalf("got %q", got)
	}

	got = reprint(t, code, func(stmts []nodes.Stmt) []nodes.Stmt {
		return stmts[1:]
	})
	if got != "<?php\n$b = 2;\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingModifiers(t *testing.T) {
	code := "<?php\nclass A\n{\n    public function f()\n    {\n    }\n}\n"
	got := reprint(t, code, func(stmts []nodes.Stmt) []nodes.Stmt {
		method := stmts[0].(*nodes.Class).Stmts[0].(*nodes.ClassMethod)
		method.Flags = nodes.ModifierPrivate | nodes.ModifierStatic
		return stmts
	})
	if got != "<?php\nclass A\n{\n    private static function f()\n    {\n    }\n}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingInsertion(t *testing.T) {
	got := reprint(t, "<?php\nfunction f()\n{\n}\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		stmts[0].(*nodes.Function).ReturnType = &nodes.Identifier{Name: "int"}
		return stmts
	})
	if got != "<?php\nfunction f(): int\n{\n}\n" {
		t.Fatalf("got %q", got)
	}

	got = reprint(t, "<?php\nf();\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		call := stmts[0].(*nodes.Expression).Expr.(*nodes.FuncCall)
		call.Args = append(call.Args, &nodes.Arg{Value: intLit(1)})
		return stmts
	})
	if got != "<?php\nf(1);\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingRemoveSubNode(t *testing.T) {
	got := reprint(t, "<?php\nfunction f(): int\n{\n    return 1;\n}\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		fn := stmts[0].(*nodes.Function)
		fn.ReturnType = nil
		fn.Stmts[0].(*nodes.Return).Expr = nil
		return stmts
	})
	if got != "<?php\nfunction f()\n{\n    return;\n}\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingSharedSubtree(t *testing.T) {
	parsed := parse(t, "<?php\n$a   =   1;\n$c = 3;\n")
	// statements reused without cloning keep their formatting
	stmts := append([]nodes.Stmt{}, parsed.stmts...)
	stmts = append(stmts, assignment("b", 2))
	p := newPrinter(t, DefaultOptions())
	got, err := p.PrintFormatPreserving(stmts, parsed.stmts, parsed.parser.Tokens(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "<?php\n$a   =   1;\n$c = 3;\n$b = 2;\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPreservingAppendAfterHTML(t *testing.T) {
	got := reprint(t, "<?php\n$a = 1;\n?>\n<p>html</p>\n", func(stmts []nodes.Stmt) []nodes.Stmt {
		return append(stmts, assignment("b", 2))
	})
	if !strings.Contains(got, "<p>html</p>\n<?php") {
		t.Fatalf("got %q", got)
	}
	stmts := parse(t, got).stmts
	last, ok := stmts[len(stmts)-1].(*nodes.Expression)
	if !ok {
		t.Fatalf("got %q", got)
	}
	if v := last.Expr.(*nodes.Assign).Var.(*nodes.Variable); v.Name != "b" {
		t.Fatalf("got %q", got)
	}
}
