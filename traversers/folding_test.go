package traversers

import (
	"errors"
	"testing"

	"github.com/reusee/phpedit/evaluators"
	"github.com/reusee/phpedit/nodes"
)

func TestConstantFolder(t *testing.T) {
	// $a = 1 + 2 * 3; $b = $c + 1; $d = 1 / 0; $e = 1 - 5;
	stmts := []nodes.Stmt{
		exprStmt(&nodes.Assign{
			Var: variable("a"),
			Expr: &nodes.BinaryOp{
				Op:   nodes.OpPlus,
				Left: &nodes.Int{Value: 1},
				Right: &nodes.BinaryOp{
					Op:    nodes.OpMul,
					Left:  &nodes.Int{Value: 2},
					Right: &nodes.Int{Value: 3},
				},
			},
		}),
		exprStmt(&nodes.Assign{
			Var: variable("b"),
			Expr: &nodes.BinaryOp{
				Op:    nodes.OpPlus,
				Left:  variable("c"),
				Right: &nodes.Int{Value: 1},
			},
		}),
		exprStmt(&nodes.Assign{
			Var: variable("d"),
			Expr: &nodes.BinaryOp{
				Op:    nodes.OpDiv,
				Left:  &nodes.Int{Value: 1},
				Right: &nodes.Int{Value: 0},
			},
		}),
		exprStmt(&nodes.Assign{
			Var: variable("e"),
			Expr: &nodes.BinaryOp{
				Op:    nodes.OpMinus,
				Left:  &nodes.Int{Value: 1},
				Right: &nodes.Int{Value: 5},
			},
		}),
	}
	folder := NewConstantFolder()
	stmts = Traverse(stmts, folder)

	value := func(i int) nodes.Expr {
		return stmts[i].(*nodes.Expression).Expr.(*nodes.Assign).Expr
	}
	if v, ok := value(0).(*nodes.Int); !ok || v.Value != 7 {
		t.Fatalf("got %v", value(0).Type())
	}
	if _, ok := value(1).(*nodes.BinaryOp); !ok {
		t.Fatalf("got %v", value(1).Type())
	}
	if _, ok := value(2).(*nodes.BinaryOp); !ok {
		t.Fatalf("got %v", value(2).Type())
	}
	if neg, ok := value(3).(*nodes.UnaryMinus); !ok || neg.Expr.(*nodes.Int).Value != 4 {
		t.Fatalf("got %v", value(3).Type())
	}
	if folder.Folded != 3 {
		t.Fatalf("got %v", folder.Folded)
	}
	if len(folder.Errors) != 1 || !errors.Is(folder.Errors[0], evaluators.ErrDivisionByZero) {
		t.Fatalf("got %v", folder.Errors)
	}
}
