package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/phpedit/nodes"
	"go.starlark.net/starlark"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func TestQuery(t *testing.T) {
	stmts := []nodes.Stmt{
		&nodes.Expression{
			Expr: &nodes.Assign{
				Var:  &nodes.Variable{Name: "a"},
				Expr: &nodes.Int{Value: 1},
			},
		},
	}
	stmts[0].SetAttribute(nodes.StartLine, 3)

	dscope.New(
		new(Module),
	).Call(func(
		query Query,
	) {
		for expr, expected := range map[string]starlark.Value{
			`stmts[0]["type"]`:                        starlark.String("Stmt_Expression"),
			`stmts[0]["expr"]["var"]["name"]`:         starlark.String("a"),
			`stmts[0]["expr"]["expr"]["value"] + 1`:   starlark.MakeInt(2),
			`stmts[0]["attributes"]["startLine"]`:     starlark.MakeInt(3),
			`len(stmts)`:                              starlark.MakeInt(1),
			`[s["type"] for s in stmts if s["expr"]]`: starlark.NewList([]starlark.Value{starlark.String("Stmt_Expression")}),
		} {
			got, err := query(expr, map[string]any{
				"stmts": stmts,
			})
			if err != nil {
				t.Fatalf("%s: %v", expr, err)
			}
			equal, err := starlark.Equal(got, expected)
			if err != nil {
				t.Fatal(err)
			}
			if !equal {
				t.Fatalf("%s: got %v", expr, got)
			}
		}

		if _, err := query("undefined_name", nil); err == nil {
			t.Fatal("should fail")
		}
	})
}
