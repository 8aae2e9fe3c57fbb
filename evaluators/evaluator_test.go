package evaluators

import (
	"errors"
	"math"
	"testing"

	"github.com/reusee/phpedit/nodes"
)

func i(v int64) nodes.Expr   { return &nodes.Int{Value: v} }
func f(v float64) nodes.Expr { return &nodes.Float{Value: v} }
func s(v string) nodes.Expr  { return &nodes.String{Value: v} }

func bin(op nodes.BinaryOpKind, l, r nodes.Expr) nodes.Expr {
	return &nodes.BinaryOp{Op: op, Left: l, Right: r}
}

func constant(name string) nodes.Expr {
	return &nodes.ConstFetch{Name: &nodes.Name{Name: name}}
}

func TestEvaluate(t *testing.T) {
	e := New(nil)
	for _, c := range []struct {
		expr nodes.Expr
		want any
	}{
		{i(42), int64(42)},
		{bin(nodes.OpPlus, i(1), i(2)), int64(3)},
		{bin(nodes.OpPlus, i(math.MaxInt64), i(1)), float64(math.MaxInt64) + 1},
		{bin(nodes.OpMinus, i(1), f(0.5)), 0.5},
		{bin(nodes.OpMul, i(6), s("7")), int64(42)},
		{bin(nodes.OpDiv, i(6), i(3)), int64(2)},
		{bin(nodes.OpDiv, i(7), i(2)), 3.5},
		{bin(nodes.OpMod, i(-7), i(3)), int64(-1)},
		{bin(nodes.OpPow, i(2), i(10)), int64(1024)},
		{bin(nodes.OpPow, i(2), i(-1)), 0.5},
		{bin(nodes.OpShiftLeft, i(1), i(3)), int64(8)},
		{bin(nodes.OpShiftRight, i(-8), i(70)), int64(-1)},
		{bin(nodes.OpBitwiseOr, i(5), i(2)), int64(7)},
		{bin(nodes.OpBitwiseAnd, s("ab"), s("a")), "a"},
		{bin(nodes.OpConcat, s("a"), i(1)), "a1"},
		{bin(nodes.OpConcat, s("x"), f(1.5)), "x1.5"},
		{bin(nodes.OpConcat, s(""), f(1e20)), "1.0E+20"},
		{bin(nodes.OpEqual, i(1), s("1.0")), true},
		{bin(nodes.OpEqual, i(0), s("a")), false},
		{bin(nodes.OpEqual, s("abc"), s("ABC")), false},
		{bin(nodes.OpIdentical, i(1), f(1)), false},
		{bin(nodes.OpNotIdentical, i(1), s("1")), true},
		{bin(nodes.OpSmaller, i(1), i(2)), true},
		{bin(nodes.OpGreaterOrEqual, s("10"), s("9")), true},
		{bin(nodes.OpSpaceship, s("a"), s("b")), int64(-1)},
		{bin(nodes.OpCoalesce, constant("null"), i(3)), int64(3)},
		{bin(nodes.OpBooleanAnd, constant("false"), &nodes.Variable{Name: "x"}), false},
		{bin(nodes.OpLogicalXor, constant("true"), constant("TRUE")), false},
		{&nodes.UnaryMinus{Expr: i(5)}, int64(-5)},
		{&nodes.UnaryMinus{Expr: i(math.MinInt64)}, -float64(math.MinInt64)},
		{&nodes.UnaryPlus{Expr: s("3.5")}, 3.5},
		{&nodes.BooleanNot{Expr: s("0")}, true},
		{&nodes.BitwiseNot{Expr: i(0)}, int64(-1)},
		{&nodes.Ternary{Cond: i(0), If: s("a"), Else: s("b")}, "b"},
		{&nodes.Ternary{Cond: s("x"), Else: s("b")}, "x"},
		{&nodes.ArrayDimFetch{Var: s("abc"), Dim: i(-1)}, "c"},
	} {
		got, err := e.Evaluate(c.expr)
		if err != nil {
			t.Fatalf("%s: got error %v", c.expr.Type(), err)
		}
		if !Identical(got, c.want) {
			t.Fatalf("%s: got %s, want %s", c.expr.Type(), Describe(got), Describe(c.want))
		}
	}
}

func TestEvaluateArray(t *testing.T) {
	arr := &nodes.ArrayExpr{
		Items: []*nodes.ArrayItem{
			{Value: s("a")},
			{Key: s("5"), Value: s("b")},
			{Value: s("c")},
			{Key: s("k"), Value: i(1)},
			{Value: &nodes.ArrayExpr{Items: []*nodes.ArrayItem{{Value: i(9)}}}, Unpack: true},
		},
	}
	v, err := New(nil).Evaluate(arr)
	if err != nil {
		t.Fatal(err)
	}
	if got := Describe(v); got != `[0 => "a", 5 => "b", 6 => "c", "k" => 1, 7 => 9]` {
		t.Fatalf("got %s", got)
	}

	v, err = New(nil).Evaluate(&nodes.BinaryOp{
		Op:    nodes.OpCoalesce,
		Left:  &nodes.ArrayDimFetch{Var: arr, Dim: s("missing")},
		Right: s("default"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if v != "default" {
		t.Fatalf("got %v", v)
	}
}

func TestEvaluateErrors(t *testing.T) {
	e := New(nil)
	for _, c := range []struct {
		expr nodes.Expr
		want error
	}{
		{&nodes.Variable{Name: "x"}, ErrCannotEvaluate},
		{constant("FOO"), ErrCannotEvaluate},
		{bin(nodes.OpDiv, i(1), i(0)), ErrDivisionByZero},
		{bin(nodes.OpMod, i(1), i(0)), ErrModuloByZero},
		{bin(nodes.OpShiftLeft, i(1), i(-1)), ErrNegativeShift},
		{bin(nodes.OpPlus, i(1), s("abc")), errUnsupportedOperand},
	} {
		_, err := e.Evaluate(c.expr)
		if !errors.Is(err, c.want) {
			t.Fatalf("%s: got %v", c.expr.Type(), err)
		}
	}
}

func TestFallback(t *testing.T) {
	e := New(func(expr nodes.Expr) (any, error) {
		if c, ok := expr.(*nodes.ConstFetch); ok && c.Name.Name == "FOO" {
			return int64(10), nil
		}
		return nil, ErrCannotEvaluate
	})
	v, err := e.Evaluate(bin(nodes.OpMul, constant("FOO"), i(2)))
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(20) {
		t.Fatalf("got %v", v)
	}
	if _, err := e.Evaluate(constant("BAR")); !errors.Is(err, ErrCannotEvaluate) {
		t.Fatalf("got %v", err)
	}
}

func TestFormatFloat(t *testing.T) {
	for _, c := range []struct {
		f    float64
		want string
	}{
		{1, "1"},
		{0.1, "0.1"},
		{-2.5, "-2.5"},
		{1e14, "100000000000000"},
		{1e15, "1.0E+15"},
		{0.0001, "0.0001"},
		{0.00001, "1.0E-5"},
		{1.5e-7, "1.5E-7"},
		{math.Inf(1), "INF"},
		{math.NaN(), "NAN"},
	} {
		if got := FormatFloat(c.f); got != c.want {
			t.Fatalf("%v: got %s", c.f, got)
		}
	}
}
