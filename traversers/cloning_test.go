package traversers

import (
	"testing"

	"github.com/reusee/phpedit/nodes"
)

func TestCloneTree(t *testing.T) {
	orig := sampleTree()
	orig[0].SetAttribute(nodes.StartLine, 1)
	cloned, origins := CloneTree(orig)

	if cloned[0] == orig[0] {
		t.Fatal("not cloned")
	}
	if origins.Of(cloned[0]) != orig[0] {
		t.Fatalf("got %v", origins.Of(cloned[0]))
	}
	if cloned[0].StartLine() != 1 {
		t.Fatalf("got %v", cloned[0].StartLine())
	}

	cloned[0].SetAttribute(nodes.StartLine, 5)
	if orig[0].StartLine() != 1 {
		t.Fatal("attributes shared")
	}

	// edits on the clone leave the original alone
	Traverse(cloned, Funcs{
		Enter: func(n nodes.Node) Action {
			if v, ok := n.(*nodes.Variable); ok && v.Name == "a" {
				v.Name = "renamed"
			}
			return Continue
		},
	})
	origVar := orig[0].(*nodes.Expression).Expr.(*nodes.Assign).Var.(*nodes.Variable)
	if origVar.Name != "a" {
		t.Fatalf("got %v", origVar.Name)
	}
	clonedVar := cloned[0].(*nodes.Expression).Expr.(*nodes.Assign).Var
	if !origins.Same(clonedVar, origVar) {
		t.Fatal("origin lost")
	}
}

func TestCloneListsNotAliased(t *testing.T) {
	echo := &nodes.Echo{
		Exprs: []nodes.Expr{variable("a"), variable("b")},
	}
	origExprs := echo.Exprs
	cloned, _ := CloneTree([]nodes.Stmt{echo})
	clonedEcho := cloned[0].(*nodes.Echo)
	clonedEcho.Exprs[0] = variable("z")
	if origExprs[0].(*nodes.Variable).Name != "a" {
		t.Fatal("list aliased")
	}
}
