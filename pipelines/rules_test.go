package pipelines

import (
	"testing"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/traversers"
)

func TestParseRename(t *testing.T) {
	rename, err := ParseRename("function:old_name:new_name")
	if err != nil {
		t.Fatal(err)
	}
	if rename.Kind != RenameFunction || rename.From != "old_name" || rename.To != "new_name" {
		t.Fatalf("got %+v", rename)
	}
	for _, spec := range []string{
		"function:a",
		"method:a:b",
		"variable:$a:b",
		"class::B",
	} {
		if _, err := ParseRename(spec); err == nil {
			t.Fatalf("%s: should fail", spec)
		}
	}
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("rules.star", []byte(`
rename_variable("a", "b")
if True:
    remove_calls("dd")
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 2 {
		t.Fatalf("got %v", rules)
	}
	if rules[0].Name != "rename variable a to b" || rules[1].Name != "remove calls to dd" {
		t.Fatalf("got %v %v", rules[0].Name, rules[1].Name)
	}

	if _, err := LoadRules("bad.star", []byte(`rename_variable("$a", "b")`)); err == nil {
		t.Fatal("should fail")
	}
	if _, err := LoadRules("bad.star", []byte(`unknown()`)); err == nil {
		t.Fatal("should fail")
	}
}

func TestRenameVisitor(t *testing.T) {
	name := func(s string) *nodes.Name {
		return &nodes.Name{Name: s}
	}
	stmts := []nodes.Stmt{
		&nodes.Class{
			Name:    &nodes.Identifier{Name: "Foo"},
			Extends: name(`Base\Foo`),
		},
		&nodes.Expression{
			Expr: &nodes.Instanceof{
				Expr:  &nodes.Variable{Name: "foo"},
				Class: &nodes.Name{Name: `App\FOO`, Kind: nodes.NameFullyQualified},
			},
		},
		&nodes.Expression{
			Expr: &nodes.ConstFetch{Name: name("FOO")},
		},
	}

	visitor := &RenameVisitor{Rename: Rename{Kind: RenameClass, From: "foo", To: "Bar"}}
	traversers.Traverse(stmts, visitor)
	if visitor.Renamed != 3 {
		t.Fatalf("got %v", visitor.Renamed)
	}
	class := stmts[0].(*nodes.Class)
	if class.Name.Name != "Bar" || class.Extends.Name != `Base\Bar` {
		t.Fatalf("got %v %v", class.Name.Name, class.Extends.Name)
	}
	instanceof := stmts[1].(*nodes.Expression).Expr.(*nodes.Instanceof)
	if instanceof.Class.(*nodes.Name).Name != `App\Bar` {
		t.Fatalf("got %v", instanceof.Class)
	}
	if instanceof.Expr.(*nodes.Variable).Name != "foo" {
		t.Fatal("variables are not classes")
	}

	// constants are case-sensitive
	visitor = &RenameVisitor{Rename: Rename{Kind: RenameConstant, From: "foo", To: "BAR"}}
	traversers.Traverse(stmts, visitor)
	if visitor.Renamed != 0 {
		t.Fatalf("got %v", visitor.Renamed)
	}
	visitor = &RenameVisitor{Rename: Rename{Kind: RenameConstant, From: "FOO", To: "BAR"}}
	traversers.Traverse(stmts, visitor)
	if visitor.Renamed != 1 {
		t.Fatalf("got %v", visitor.Renamed)
	}
}
