package printers

import "github.com/reusee/phpedit/nodes"

const maxPrecedence = 1000

// precedence of an operator node. lhs and rhs are the precedences its
// operands print at, one side bumped by one according to associativity.
// Unary operators leave them at -1.
type precedence struct {
	prec int
	lhs  int
	rhs  int
}

var binaryPrecedences = map[nodes.BinaryOpKind]precedence{
	nodes.OpPow:            {0, 0, 1},
	nodes.OpMul:            {40, 41, 40},
	nodes.OpDiv:            {40, 41, 40},
	nodes.OpMod:            {40, 41, 40},
	nodes.OpPlus:           {50, 51, 50},
	nodes.OpMinus:          {50, 51, 50},
	nodes.OpConcat:         {50, 51, 50},
	nodes.OpShiftLeft:      {60, 61, 60},
	nodes.OpShiftRight:     {60, 61, 60},
	nodes.OpSmaller:        {70, 70, 70},
	nodes.OpSmallerOrEqual: {70, 70, 70},
	nodes.OpGreater:        {70, 70, 70},
	nodes.OpGreaterOrEqual: {70, 70, 70},
	nodes.OpEqual:          {80, 80, 80},
	nodes.OpNotEqual:       {80, 80, 80},
	nodes.OpIdentical:      {80, 80, 80},
	nodes.OpNotIdentical:   {80, 80, 80},
	nodes.OpSpaceship:      {80, 80, 80},
	nodes.OpBitwiseAnd:     {90, 91, 90},
	nodes.OpBitwiseXor:     {100, 101, 100},
	nodes.OpBitwiseOr:      {110, 111, 110},
	nodes.OpBooleanAnd:     {120, 121, 120},
	nodes.OpBooleanOr:      {130, 131, 130},
	nodes.OpCoalesce:       {140, 140, 141},
	nodes.OpLogicalAnd:     {190, 191, 190},
	nodes.OpLogicalXor:     {200, 201, 200},
	nodes.OpLogicalOr:      {210, 211, 210},
}

// precedences is keyed by node type.
var precedences = func() map[string]precedence {
	unary := func(prec int) precedence {
		return precedence{prec, -1, -1}
	}
	ret := map[string]precedence{
		"Expr_Clone":         {-10, 0, 1},
		"Expr_BitwiseNot":    unary(10),
		"Expr_UnaryPlus":     unary(10),
		"Expr_UnaryMinus":    unary(10),
		"Expr_ErrorSuppress": unary(10),
		"Expr_Instanceof":    unary(20),
		"Expr_BooleanNot":    unary(30),
		"Expr_Ternary":       {150, 150, 150},
		"Expr_Assign":        unary(160),
		"Expr_AssignRef":     unary(160),
		"Expr_YieldFrom":     unary(170),
		"Expr_Yield":         unary(175),
		"Expr_Print":         unary(180),
		"Expr_Include":       unary(220),
		"Expr_ArrowFunction": unary(230),
		"Expr_Throw":         unary(240),
	}
	for _, kind := range nodes.CastKinds() {
		ret["Expr_Cast_"+kind.Name()] = unary(10)
	}
	for _, kind := range nodes.AssignOpKinds() {
		ret["Expr_AssignOp_"+kind.Name()] = unary(160)
	}
	for kind, prec := range binaryPrecedences {
		ret["Expr_BinaryOp_"+kind.Name()] = prec
	}
	return ret
}()

func precedenceOf(typ string) precedence {
	prec, ok := precedences[typ]
	if !ok {
		panic("no precedence for " + typ)
	}
	return prec
}

func callLhsRequiresParens(n nodes.Node) bool {
	switch n.(type) {
	case *nodes.Name, *nodes.Variable, *nodes.ArrayDimFetch, *nodes.FuncCall,
		*nodes.MethodCall, *nodes.NullsafeMethodCall, *nodes.StaticCall, *nodes.ArrayExpr:
		return false
	}
	return true
}

// constants may be array or object dereferenced, but not statically
func dereferenceLhsRequiresParens(n nodes.Node) bool {
	if _, ok := n.(*nodes.ConstFetch); ok {
		return false
	}
	return staticDereferenceLhsRequiresParens(n)
}

func staticDereferenceLhsRequiresParens(n nodes.Node) bool {
	switch n.(type) {
	case *nodes.Variable, *nodes.Name, *nodes.ArrayDimFetch, *nodes.PropertyFetch,
		*nodes.NullsafePropertyFetch, *nodes.StaticPropertyFetch, *nodes.FuncCall,
		*nodes.MethodCall, *nodes.NullsafeMethodCall, *nodes.StaticCall,
		*nodes.ArrayExpr, *nodes.String, *nodes.ClassConstFetch:
		return false
	}
	return true
}

func newOperandRequiresParens(n nodes.Node) bool {
	switch n := n.(type) {
	case *nodes.Name, *nodes.Variable:
		return false
	case *nodes.ArrayDimFetch:
		return newOperandRequiresParens(n.Var)
	case *nodes.PropertyFetch:
		return newOperandRequiresParens(n.Var)
	case *nodes.NullsafePropertyFetch:
		return newOperandRequiresParens(n.Var)
	case *nodes.StaticPropertyFetch:
		return newOperandRequiresParens(n.Class)
	}
	return true
}
