package grammars

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/nodes"
)

func dump(v any) string {
	var sb strings.Builder
	dumpTo(&sb, v)
	return sb.String()
}

func dumpTo(sb *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		sb.WriteString("null")
	case nodes.Node:
		sb.WriteString(v.Type())
		sb.WriteString("(")
		for i, f := range nodes.Fields(v) {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			dumpTo(sb, f.Get())
		}
		sb.WriteString(")")
	case []nodes.Node:
		sb.WriteString("[")
		for i, n := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			dumpTo(sb, n)
		}
		sb.WriteString("]")
	case []nodes.Stmt:
		ns := make([]nodes.Node, len(v))
		for i, n := range v {
			ns[i] = n
		}
		dumpTo(sb, ns)
	case string:
		fmt.Fprintf(sb, "%q", v)
	default:
		fmt.Fprintf(sb, "%v", v)
	}
}

func parse(t *testing.T, code string) ([]nodes.Stmt, *errs.Collecting) {
	t.Helper()
	collecting := new(errs.Collecting)
	stmts, err := New(lexers.DefaultOptions()).Parse([]byte(code), collecting)
	if err != nil {
		t.Fatal(err)
	}
	return stmts, collecting
}

func parseOK(t *testing.T, code string) []nodes.Stmt {
	t.Helper()
	stmts, collecting := parse(t, code)
	if collecting.HasErrors() {
		t.Fatalf("%s: %v", code, collecting.Errors())
	}
	return stmts
}

func firstExpr(t *testing.T, code string) nodes.Expr {
	t.Helper()
	stmts := parseOK(t, code)
	if len(stmts) == 0 {
		t.Fatalf("%s: no statements", code)
	}
	stmt, ok := stmts[0].(*nodes.Expression)
	if !ok {
		t.Fatalf("%s: got %v", code, stmts[0].Type())
	}
	return stmt.Expr
}

func TestGrammarCompiles(t *testing.T) {
	c, err := compile()
	if err != nil {
		t.Fatal(err)
	}
	if err := c.engine.Tables.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.report.States == 0 {
		t.Fatal()
	}
}

func TestParseExpressions(t *testing.T) {
	for _, c := range []struct {
		code string
		want string
	}{
		{
			`<?php $a = 1 + 2 * 3;`,
			`Expr_Assign(var: Expr_Variable(name: "a"), expr: Expr_BinaryOp_Plus(left: Scalar_Int(value: 1), right: Expr_BinaryOp_Mul(left: Scalar_Int(value: 2), right: Scalar_Int(value: 3))))`,
		},
		{
			`<?php ($a + $b) * $c;`,
			`Expr_BinaryOp_Mul(left: Expr_BinaryOp_Plus(left: Expr_Variable(name: "a"), right: Expr_Variable(name: "b")), right: Expr_Variable(name: "c"))`,
		},
		{
			`<?php $a - $b - $c;`,
			`Expr_BinaryOp_Minus(left: Expr_BinaryOp_Minus(left: Expr_Variable(name: "a"), right: Expr_Variable(name: "b")), right: Expr_Variable(name: "c"))`,
		},
		{
			`<?php $a ** $b ** $c;`,
			`Expr_BinaryOp_Pow(left: Expr_Variable(name: "a"), right: Expr_BinaryOp_Pow(left: Expr_Variable(name: "b"), right: Expr_Variable(name: "c")))`,
		},
		{
			`<?php $a ?? $b ?? $c;`,
			`Expr_BinaryOp_Coalesce(left: Expr_Variable(name: "a"), right: Expr_BinaryOp_Coalesce(left: Expr_Variable(name: "b"), right: Expr_Variable(name: "c")))`,
		},
		{
			`<?php !$a instanceof B;`,
			`Expr_BooleanNot(expr: Expr_Instanceof(expr: Expr_Variable(name: "a"), class: Name(name: "B")))`,
		},
		{
			`<?php $a->b?->c($d);`,
			`Expr_NullsafeMethodCall(var: Expr_PropertyFetch(var: Expr_Variable(name: "a"), name: Identifier(name: "b")), name: Identifier(name: "c"), args: [Arg(name: null, value: Expr_Variable(name: "d"), byRef: false, unpack: false)])`,
		},
		{
			`<?php $$a;`,
			`Expr_Variable(name: Expr_Variable(name: "a"))`,
		},
	} {
		got := dump(firstExpr(t, c.code))
		if got != c.want {
			t.Fatalf("%s: got %v", c.code, got)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	for _, c := range []struct {
		code  string
		value any
		kind  int
	}{
		{"<?php 42;", int64(42), nodes.IntKindDec},
		{"<?php 0x1F;", int64(31), nodes.IntKindHex},
		{"<?php 0b101;", int64(5), nodes.IntKindBin},
		{"<?php 017;", int64(15), nodes.IntKindOct},
		{"<?php 0o17;", int64(15), nodes.IntKindOct},
		{"<?php 1_000;", int64(1000), nodes.IntKindDec},
		{"<?php 9223372036854775808;", 9223372036854775808.0, 0},
		{"<?php 1.5e3;", 1500.0, 0},
	} {
		expr := firstExpr(t, c.code)
		switch want := c.value.(type) {
		case int64:
			n, ok := expr.(*nodes.Int)
			if !ok || n.Value != want {
				t.Fatalf("%s: got %v", c.code, dump(expr))
			}
			if kind, _ := n.Attribute(nodes.KindKey); kind != c.kind {
				t.Fatalf("%s: got kind %v", c.code, kind)
			}
		case float64:
			n, ok := expr.(*nodes.Float)
			if !ok || n.Value != want {
				t.Fatalf("%s: got %v", c.code, dump(expr))
			}
		}
	}
}

func TestParseStrings(t *testing.T) {
	for _, c := range []struct {
		code  string
		value string
		kind  int
	}{
		{`<?php 'a\'b\n';`, `a'b\n`, nodes.StringKindSingleQuoted},
		{`<?php "a\tb\u{41}\x42\101";`, "a\tbABA", nodes.StringKindDoubleQuoted},
		{"<?php <<<'EOT'\n  raw $x\n  EOT;", "raw $x", nodes.StringKindNowdoc},
		{"<?php <<<EOT\n    a\n     b\n    EOT;", "a\n b", nodes.StringKindHeredoc},
	} {
		expr := firstExpr(t, c.code)
		s, ok := expr.(*nodes.String)
		if !ok {
			t.Fatalf("%s: got %v", c.code, dump(expr))
		}
		if s.Value != c.value {
			t.Fatalf("%s: got %q", c.code, s.Value)
		}
		if kind, _ := s.Attribute(nodes.KindKey); kind != c.kind {
			t.Fatalf("%s: got kind %v", c.code, kind)
		}
	}

	expr := firstExpr(t, "<?php <<<EOT\n    a\n    EOT;")
	if label := expr.Attributes().String(nodes.DocLabelKey); label != "EOT" {
		t.Fatalf("got %v", label)
	}
	if indent := expr.Attributes().String(nodes.DocIndentationKey); indent != "    " {
		t.Fatalf("got %q", indent)
	}

	expr = firstExpr(t, `<?php "x $a y";`)
	if got := dump(expr); got != `Scalar_InterpolatedString(parts: [InterpolatedStringPart(value: "x "), Expr_Variable(name: "a"), InterpolatedStringPart(value: " y")])` {
		t.Fatalf("got %v", got)
	}
}

func TestParseStatements(t *testing.T) {
	stmts := parseOK(t, `<?php
function f(int $a, ...$rest): ?string {
	if ($a) {
		return 'x';
	} elseif ($a > 1) {
		return null;
	} else {
		foreach ($rest as $k => &$v) {}
	}
}
class C extends B implements I {
	const X = 1;
	private static ?int $p = 2;
	abstract public function m();
}
`)
	if len(stmts) != 2 {
		t.Fatalf("got %v", dump(stmts))
	}
	fn, ok := stmts[0].(*nodes.Function)
	if !ok {
		t.Fatalf("got %v", stmts[0].Type())
	}
	if fn.Name.Name != "f" || len(fn.Params) != 2 || !fn.Params[1].Variadic {
		t.Fatalf("got %v", dump(fn))
	}
	if got := dump(fn.ReturnType); got != `NullableType(type: Identifier(name: "string"))` {
		t.Fatalf("got %v", got)
	}
	ifStmt := fn.Stmts[0].(*nodes.If)
	if len(ifStmt.ElseIfs) != 1 || ifStmt.Else == nil {
		t.Fatalf("got %v", dump(ifStmt))
	}
	foreach := ifStmt.Else.Stmts[0].(*nodes.Foreach)
	if !foreach.ByRef || foreach.KeyVar == nil {
		t.Fatalf("got %v", dump(foreach))
	}

	class := stmts[1].(*nodes.Class)
	if class.Name.Name != "C" || class.Extends.Name != "B" || len(class.Implements) != 1 {
		t.Fatalf("got %v", dump(class))
	}
	if len(class.Stmts) != 3 {
		t.Fatalf("got %v", dump(class.Stmts))
	}
	prop := class.Stmts[1].(*nodes.Property)
	if prop.Flags != nodes.ModifierPrivate|nodes.ModifierStatic {
		t.Fatalf("got %v", prop.Flags)
	}
	method := class.Stmts[2].(*nodes.ClassMethod)
	if method.Stmts != nil {
		t.Fatal("abstract method with body")
	}
}

func TestParsePositions(t *testing.T) {
	stmts := parseOK(t, "<?php\n\n$a =\n  1;\n")
	stmt := stmts[0]
	if stmt.StartLine() != 3 || stmt.EndLine() != 4 {
		t.Fatalf("got %v %v", stmt.StartLine(), stmt.EndLine())
	}
	assign := stmt.(*nodes.Expression).Expr.(*nodes.Assign)
	if assign.Expr.StartTokenPos() != assign.Expr.EndTokenPos() {
		t.Fatalf("got %v %v", assign.Expr.StartTokenPos(), assign.Expr.EndTokenPos())
	}
	if assign.Var.StartTokenPos() != stmt.StartTokenPos() {
		t.Fatal()
	}
}

func TestParseInlineHTMLAndHalt(t *testing.T) {
	stmts := parseOK(t, "head<?php $a; ?>\nmid<?php __halt_compiler();raw data")
	if len(stmts) != 4 {
		t.Fatalf("got %v", dump(stmts))
	}
	if html := stmts[0].(*nodes.InlineHTML); html.Value != "head" {
		t.Fatalf("got %v", html.Value)
	}
	if html := stmts[2].(*nodes.InlineHTML); html.Value != "mid" || !html.Attributes().Bool(nodes.HasLeadingNewlineKey) {
		t.Fatalf("got %v", dump(html))
	}
	if halt := stmts[3].(*nodes.HaltCompiler); halt.Remaining != "raw data" {
		t.Fatalf("got %q", halt.Remaining)
	}
}

func TestParseComments(t *testing.T) {
	stmts := parseOK(t, "<?php\n/** doc */\nfunction f() {\n\t$a; // after a\n}\n// trailing\n")
	fn := stmts[0].(*nodes.Function)
	if doc := fn.DocComment(); doc == nil || doc.Text != "/** doc */" {
		t.Fatalf("got %v", fn.Comments())
	}
	if len(fn.Stmts) != 2 {
		t.Fatalf("got %v", dump(fn.Stmts))
	}
	nop, ok := fn.Stmts[1].(*nodes.Nop)
	if !ok || len(nop.Comments()) != 1 || nop.Comments()[0].Text != "// after a" {
		t.Fatalf("got %v", dump(fn.Stmts[1]))
	}
	last, ok := stmts[len(stmts)-1].(*nodes.Nop)
	if !ok || last.Comments()[0].Text != "// trailing" {
		t.Fatalf("got %v", dump(stmts))
	}

	stmts = parseOK(t, "<?php /* keep */ ;")
	if len(stmts) != 1 {
		t.Fatalf("got %v", dump(stmts))
	}
	if _, ok := stmts[0].(*nodes.Nop); !ok {
		t.Fatalf("got %v", stmts[0].Type())
	}
	if len(parseOK(t, "<?php ;")) != 0 {
		t.Fatal("empty statement kept")
	}
}

func TestParseNamespaces(t *testing.T) {
	stmts := parseOK(t, "<?php namespace A; $x; namespace B\\C; $y; $z;")
	if len(stmts) != 2 {
		t.Fatalf("got %v", dump(stmts))
	}
	a := stmts[0].(*nodes.Namespace)
	b := stmts[1].(*nodes.Namespace)
	if a.Name.Name != "A" || len(a.Stmts) != 1 || b.Name.Name != `B\C` || len(b.Stmts) != 2 {
		t.Fatalf("got %v", dump(stmts))
	}
	if kind, _ := a.Attribute(nodes.KindKey); kind != nodes.NamespaceKindSemicolon {
		t.Fatalf("got %v", kind)
	}

	stmts = parseOK(t, "<?php namespace A { $x; } namespace { $y; }")
	if len(stmts) != 2 || stmts[1].(*nodes.Namespace).Name != nil {
		t.Fatalf("got %v", dump(stmts))
	}
}

func TestParseErrors(t *testing.T) {
	for _, c := range []struct {
		code    string
		message string
		line    int
	}{
		{"<?php\n$a = ;", "Syntax error, unexpected ';'", 2},
		{"<?php namespace A {} namespace B;", "Cannot mix bracketed namespace declarations with unbracketed namespace declarations", 1},
		{"<?php $x;\nnamespace A;", "Namespace declaration statement has to be the very first statement in the script", 2},
		{"<?php namespace A { } $x;", "No code may exist outside of namespace {}", 1},
		{"<?php try { }", "Cannot use try without catch or finally", 1},
		{"<?php class A { static function __construct() {} }", "Method __construct() cannot be static", 1},
		{"<?php class self {}", "Cannot use 'self' as class name as it is reserved", 1},
		{"<?php function f(...$a = 1) {}", "Variadic parameter cannot have a default value", 1},
		{"<?php class A { public public $a; }", "Multiple access type modifiers are not allowed", 1},
		{"<?php 0789;", "Invalid numeric literal", 1},
		{"<?php [1, , 2];", "Cannot use empty array elements in arrays", 1},
		{"<?php\n$a = <<<EOT\n  a\n b\n  EOT;", "Invalid body indentation level (expecting an indentation level of at least 2)", 2},
	} {
		_, collecting := parse(t, c.code)
		if !collecting.HasErrors() {
			t.Fatalf("%s: no error", c.code)
		}
		err := collecting.Errors()[0]
		if !strings.HasPrefix(err.Message, c.message) {
			t.Fatalf("%s: got %v", c.code, err.Message)
		}
		if err.StartLine() != c.line {
			t.Fatalf("%s: got line %v", c.code, err.StartLine())
		}
	}
}

func TestParseRecovery(t *testing.T) {
	stmts, collecting := parse(t, "<?php $a = 1 $b = 2; $c;")
	if errors := collecting.Errors(); len(errors) != 1 ||
		!strings.HasPrefix(errors[0].Message, "Syntax error, unexpected T_VARIABLE") {
		t.Fatalf("got %v", errors)
	}
	if stmts == nil {
		t.Fatal("no partial tree")
	}
	found := false
	for _, stmt := range stmts {
		if e, ok := stmt.(*nodes.Expression); ok {
			if v, ok := e.Expr.(*nodes.Variable); ok && v.Name == "c" {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("got %v", dump(stmts))
	}

	_, err := New(lexers.DefaultOptions()).Parse([]byte("<?php $a = ;"), errs.Throwing{})
	if err == nil {
		t.Fatal("should fail")
	}
}

func TestExpectedTokens(t *testing.T) {
	// too many candidates to list
	_, collecting := parse(t, "<?php $a = ;")
	if errors := collecting.Errors(); len(errors) != 1 || errors[0].Message != "Syntax error, unexpected ';'" {
		t.Fatalf("got %v", errors)
	}

	_, collecting = parse(t, "<?php [1, 2;")
	errors := collecting.Errors()
	if len(errors) == 0 {
		t.Fatal("no error")
	}
	_, expecting, ok := strings.Cut(errors[0].Message, ", expecting ")
	if !ok {
		t.Fatalf("got %v", errors[0].Message)
	}
	candidates := strings.Split(expecting, " or ")
	if len(candidates) > 4 || !slices.Contains(candidates, "']'") {
		t.Fatalf("got %v", errors[0].Message)
	}
}
