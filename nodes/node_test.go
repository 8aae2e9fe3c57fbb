package nodes

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestSubNodeNames(t *testing.T) {
	for _, c := range []struct {
		node  Node
		names string
	}{
		{new(Foreach), "[expr keyVar byRef valueVar stmts]"},
		{new(ClassMethod), "[flags byRef name params returnType stmts]"},
		{new(Param), "[flags type byRef variadic var default]"},
		{new(Nop), "[]"},
		{&BinaryOp{Op: OpPlus}, "[left right]"},
	} {
		if got := fmt.Sprintf("%v", SubNodeNames(c.node)); got != c.names {
			t.Fatalf("%s: got %v", c.node.Type(), got)
		}
	}
}

func TestGetSet(t *testing.T) {
	assign := &Assign{
		Var:  &Variable{Name: "a"},
		Expr: &Int{Value: 1},
	}
	if v, ok := Get(assign, "expr").(*Int); !ok || v.Value != 1 {
		t.Fatalf("got %v", v)
	}
	Set(assign, "expr", &Int{Value: 2})
	if assign.Expr.(*Int).Value != 2 {
		t.Fatal()
	}
	Set(assign, "expr", nil)
	if assign.Expr != nil {
		t.Fatal()
	}

	echo := &Echo{}
	Set(echo, "exprs", []Node{&Int{Value: 1}, &String{Value: "a"}})
	if len(echo.Exprs) != 2 {
		t.Fatalf("got %v", echo.Exprs)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("should panic")
			}
		}()
		Set(&Class{}, "name", &Name{Name: "Foo"})
	}()

	v := &Variable{Name: "x"}
	if s, ok := Get(v, "name").(string); !ok || s != "x" {
		t.Fatal()
	}
	Set(v, "name", &Variable{Name: "y"})
	if !IsNodeValue(v.Name) {
		t.Fatal()
	}
}

func TestTypedNilListElement(t *testing.T) {
	arr := &ArrayExpr{Items: []*ArrayItem{nil, {Value: &Int{Value: 1}}}}
	list := Get(arr, "items").([]Node)
	if list[0] != nil {
		t.Fatalf("got %v", list[0])
	}
	if list[1] == nil {
		t.Fatal()
	}
}

func TestPositionDefaults(t *testing.T) {
	n := &Nop{}
	if n.StartLine() != -1 || n.EndTokenPos() != -1 || n.StartFilePos() != -1 {
		t.Fatal()
	}
	n.SetAttribute(StartLine, 3)
	if n.StartLine() != 3 {
		t.Fatalf("got %v", n.StartLine())
	}
}

func TestDocComment(t *testing.T) {
	fn := &Function{Name: &Identifier{Name: "f"}}
	if fn.DocComment() != nil {
		t.Fatal()
	}
	plain := &Comment{Text: "// a"}
	fn.SetComments([]*Comment{plain})
	doc := &Comment{Text: "/** a */", Doc: true}
	fn.SetDocComment(doc)
	if len(fn.Comments()) != 2 || fn.DocComment() != doc {
		t.Fatalf("got %v", fn.Comments())
	}
	doc2 := &Comment{Text: "/** b */", Doc: true}
	fn.SetDocComment(doc2)
	if len(fn.Comments()) != 2 || fn.DocComment() != doc2 {
		t.Fatalf("got %v", fn.Comments())
	}
}

func TestClone(t *testing.T) {
	orig := &Assign{
		Var:  &Variable{Name: "a"},
		Expr: &Int{Value: 1},
	}
	orig.SetAttribute(StartLine, 1)
	clone := CloneNode(orig)
	if clone == orig || clone.Var != orig.Var {
		t.Fatal()
	}
	clone.SetAttribute(StartLine, 2)
	if orig.StartLine() != 1 {
		t.Fatal("attributes shared")
	}
	origins := Origins{clone: orig}
	if origins.Of(clone) != orig || !origins.Same(clone, orig) {
		t.Fatal()
	}
	if !origins.Same(nil, nil) || origins.Same(orig, nil) {
		t.Fatal()
	}
}

func TestNames(t *testing.T) {
	name := ParseName(`\Foo\Bar`)
	if !name.IsFullyQualified() || name.Name != `Foo\Bar` || name.Last() != "Bar" || name.First() != "Foo" {
		t.Fatalf("got %+v", name)
	}
	if name.Type() != "Name_FullyQualified" {
		t.Fatalf("got %v", name.Type())
	}
	rel := ParseName(`namespace\Foo`)
	if !rel.IsRelative() || rel.CodeString() != `namespace\Foo` {
		t.Fatalf("got %+v", rel)
	}
	if !ParseName("Self").IsSpecialClassName() {
		t.Fatal()
	}
}

func TestModifiers(t *testing.T) {
	if err := VerifyModifier(ModifierPublic, ModifierPrivate); err == nil ||
		err.Error() != "Multiple access type modifiers are not allowed" {
		t.Fatalf("got %v", err)
	}
	if err := VerifyModifier(ModifierPublic, ModifierStatic); err != nil {
		t.Fatal(err)
	}
	if err := VerifyClassModifier(ModifierAbstract, ModifierFinal); err == nil {
		t.Fatal()
	}
	if s := ModifierString(ModifierStatic | ModifierPublic | ModifierFinal); s != "final public static " {
		t.Fatalf("got %q", s)
	}
}

func TestReformattedText(t *testing.T) {
	for _, c := range []struct {
		text, expected string
	}{
		{"// foo", "// foo"},
		{"/*\n     * a\n     * b\n     */", "/*\n * a\n * b\n */"},
		{"/*\n        a\n        b\n    */", "/*\n    a\n    b\n*/"},
		{"/* a\n       b */", "/* a\n   b */"},
	} {
		got := (&Comment{Text: c.text}).ReformattedText()
		if got != c.expected {
			t.Fatalf("got %q", got)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	stmt := &Expression{
		Expr: &Assign{
			Var: &Variable{Name: "a"},
			Expr: &BinaryOp{
				Op:    OpPlus,
				Left:  &Int{Value: math.MaxInt64},
				Right: &Float{Value: math.Inf(1)},
			},
		},
	}
	stmt.SetAttribute(StartLine, 2)
	stmt.SetComments([]*Comment{{Text: "/** doc */", Doc: true, StartLine: 1}})
	stmt.Expr.(*Assign).Var.SetAttribute(KindKey, 1)

	data, err := EncodeJSON([]Node{stmt, &Echo{Exprs: []Expr{&String{Value: "x"}}}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `[{"nodeType":"Stmt_Expression","expr":{"nodeType":"Expr_Assign"`) {
		t.Fatalf("got %s", data)
	}

	decoded, err := DecodeJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("got %v", decoded)
	}
	got := decoded[0].(*Expression)
	if got.StartLine() != 2 || got.DocComment() == nil || got.DocComment().Text != "/** doc */" {
		t.Fatalf("got %+v", got.Attributes())
	}
	binary := got.Expr.(*Assign).Expr.(*BinaryOp)
	if binary.Op != OpPlus ||
		binary.Left.(*Int).Value != math.MaxInt64 ||
		!math.IsInf(binary.Right.(*Float).Value, 1) {
		t.Fatalf("got %+v", binary)
	}
	if k := got.Expr.(*Assign).Var.Attributes().Int(KindKey); k != 1 {
		t.Fatalf("got %v", k)
	}

	if _, err := DecodeJSON([]byte(`{"nodeType":"Nope"}`)); err == nil {
		t.Fatal()
	}
}
