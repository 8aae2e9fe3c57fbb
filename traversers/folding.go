package traversers

import (
	"errors"
	"math"

	"github.com/reusee/phpedit/evaluators"
	"github.com/reusee/phpedit/nodes"
)

// ConstantFolder replaces operator expressions whose operands are all
// literals with the literal they evaluate to. Expressions that fail to
// evaluate are left alone.
type ConstantFolder struct {
	VisitorBase
	Evaluator *evaluators.Evaluator
	// Folded counts replaced expressions.
	Folded int
	// Errors collects evaluation failures other than ErrCannotEvaluate,
	// such as division by zero.
	Errors []error
}

func NewConstantFolder() *ConstantFolder {
	return &ConstantFolder{
		Evaluator: evaluators.New(nil),
	}
}

func (c *ConstantFolder) LeaveNode(n nodes.Node) Action {
	expr, ok := n.(nodes.Expr)
	if !ok || !foldable(expr) {
		return Continue
	}
	v, err := c.Evaluator.Evaluate(expr)
	if err != nil {
		if !errors.Is(err, evaluators.ErrCannotEvaluate) {
			c.Errors = append(c.Errors, err)
		}
		return Continue
	}
	literal := Literal(v)
	if literal == nil {
		return Continue
	}
	attrs := make(nodes.Attributes)
	for _, key := range []string{nodes.StartLine, nodes.EndLine, nodes.CommentsKey} {
		if v, ok := expr.Attribute(key); ok {
			attrs[key] = v
		}
	}
	literal.SetAttributes(attrs)
	c.Folded++
	return Replace(literal)
}

func foldable(expr nodes.Expr) bool {
	var operands []nodes.Expr
	switch expr := expr.(type) {
	case *nodes.BinaryOp:
		operands = []nodes.Expr{expr.Left, expr.Right}
	case *nodes.UnaryMinus:
		if isLiteral(expr) {
			// negative literal
			return false
		}
		operands = []nodes.Expr{expr.Expr}
	case *nodes.UnaryPlus:
		operands = []nodes.Expr{expr.Expr}
	case *nodes.BooleanNot:
		operands = []nodes.Expr{expr.Expr}
	case *nodes.BitwiseNot:
		operands = []nodes.Expr{expr.Expr}
	case *nodes.Ternary:
		operands = []nodes.Expr{expr.Cond, expr.If, expr.Else}
	default:
		return false
	}
	for _, operand := range operands {
		if operand == nil {
			continue
		}
		if !isLiteral(operand) {
			return false
		}
	}
	return true
}

func isLiteral(expr nodes.Expr) bool {
	switch expr := expr.(type) {
	case *nodes.Int, *nodes.Float, *nodes.String:
		return true
	case *nodes.UnaryMinus:
		switch expr.Expr.(type) {
		case *nodes.Int, *nodes.Float:
			return true
		}
	case *nodes.ConstFetch:
		switch expr.Name.Name {
		case "true", "false", "null", "TRUE", "FALSE", "NULL":
			return true
		}
	}
	return false
}

// Literal builds the literal node for an evaluated value, or nil if the
// value has no literal form.
func Literal(v any) nodes.Expr {
	switch v := v.(type) {
	case nil:
		return &nodes.ConstFetch{Name: &nodes.Name{Name: "null"}}
	case bool:
		if v {
			return &nodes.ConstFetch{Name: &nodes.Name{Name: "true"}}
		}
		return &nodes.ConstFetch{Name: &nodes.Name{Name: "false"}}
	case int64:
		if v < 0 {
			if v == math.MinInt64 {
				return nil
			}
			return &nodes.UnaryMinus{Expr: &nodes.Int{Value: -v}}
		}
		return &nodes.Int{Value: v}
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		if v < 0 || (v == 0 && math.Signbit(v)) {
			return &nodes.UnaryMinus{Expr: &nodes.Float{Value: -v}}
		}
		return &nodes.Float{Value: v}
	case string:
		return &nodes.String{Value: v}
	}
	return nil
}
