package evaluators

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/reusee/phpedit/nodes"
)

// ErrCannotEvaluate is returned for expressions that are not constant, or
// that the fallback declined.
var ErrCannotEvaluate = errors.New("expression cannot be evaluated")

var (
	errUnsupportedOperand = errors.New("unsupported operand types")
	errIllegalOffset      = errors.New("illegal offset type")
	errNextOccupied       = errors.New("cannot add element to the array as the next element is already occupied")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrModuloByZero       = errors.New("modulo by zero")
	ErrNegativeShift      = errors.New("bit shift by negative number")
)

// Fallback evaluates expressions the Evaluator does not handle itself,
// such as constant lookups.
type Fallback func(expr nodes.Expr) (any, error)

// Evaluator computes the value of constant expressions.
type Evaluator struct {
	fallback Fallback
}

func New(fallback Fallback) *Evaluator {
	return &Evaluator{
		fallback: fallback,
	}
}

func (e *Evaluator) Evaluate(expr nodes.Expr) (any, error) {
	switch expr := expr.(type) {
	case nil:
		return nil, fmt.Errorf("%w: missing expression", ErrCannotEvaluate)

	case *nodes.Int:
		return expr.Value, nil
	case *nodes.Float:
		return expr.Value, nil
	case *nodes.String:
		return expr.Value, nil

	case *nodes.ArrayExpr:
		return e.evaluateArray(expr)

	case *nodes.UnaryMinus:
		v, err := e.evaluateNumber(expr.Expr)
		if err != nil {
			return nil, err
		}
		if i, ok := v.(int64); ok {
			if i == math.MinInt64 {
				return -float64(i), nil
			}
			return -i, nil
		}
		return -v.(float64), nil

	case *nodes.UnaryPlus:
		return e.evaluateNumber(expr.Expr)

	case *nodes.BooleanNot:
		v, err := e.Evaluate(expr.Expr)
		if err != nil {
			return nil, err
		}
		return !toBool(v), nil

	case *nodes.BitwiseNot:
		v, err := e.Evaluate(expr.Expr)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(string); ok {
			b := []byte(s)
			for i := range b {
				b[i] = ^b[i]
			}
			return string(b), nil
		}
		switch v.(type) {
		case int64, float64:
			i, _ := toInt(v)
			return ^i, nil
		}
		return nil, fmt.Errorf("%w: ~%s", errUnsupportedOperand, typeName(v))

	case *nodes.BinaryOp:
		return e.evaluateBinaryOp(expr)

	case *nodes.Ternary:
		cond, err := e.Evaluate(expr.Cond)
		if err != nil {
			return nil, err
		}
		if toBool(cond) {
			if expr.If == nil {
				return cond, nil
			}
			return e.Evaluate(expr.If)
		}
		return e.Evaluate(expr.Else)

	case *nodes.ArrayDimFetch:
		container, err := e.Evaluate(expr.Var)
		if err != nil {
			return nil, err
		}
		if expr.Dim == nil {
			return nil, fmt.Errorf("%w: cannot use [] for reading", ErrCannotEvaluate)
		}
		dim, err := e.Evaluate(expr.Dim)
		if err != nil {
			return nil, err
		}
		v, _, err := fetch(container, dim)
		return v, err

	case *nodes.ConstFetch:
		switch strings.ToLower(expr.Name.Name) {
		case "null":
			return nil, nil
		case "false":
			return false, nil
		case "true":
			return true, nil
		}
	}

	if e.fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrCannotEvaluate, expr.Type())
	}
	return e.fallback(expr)
}

func (e *Evaluator) evaluateNumber(expr nodes.Expr) (any, error) {
	v, err := e.Evaluate(expr)
	if err != nil {
		return nil, err
	}
	n, err := toNumber(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, typeName(v))
	}
	return n, nil
}

func (e *Evaluator) evaluateArray(expr *nodes.ArrayExpr) (any, error) {
	ret := NewArray()
	for _, item := range expr.Items {
		if item == nil {
			return nil, fmt.Errorf("%w: empty array element", ErrCannotEvaluate)
		}
		if item.ByRef {
			return nil, fmt.Errorf("%w: by-reference array element", ErrCannotEvaluate)
		}
		value, err := e.Evaluate(item.Value)
		if err != nil {
			return nil, err
		}
		if item.Unpack {
			arr, ok := value.(*Array)
			if !ok {
				return nil, fmt.Errorf("%w: only arrays can be unpacked", errUnsupportedOperand)
			}
			for _, k := range arr.Keys() {
				v, _ := arr.Get(k)
				if _, isInt := k.(int64); isInt {
					err = ret.Append(v)
				} else {
					err = ret.Set(k, v)
				}
				if err != nil {
					return nil, err
				}
			}
			continue
		}
		if item.Key == nil {
			if err := ret.Append(value); err != nil {
				return nil, err
			}
			continue
		}
		key, err := e.Evaluate(item.Key)
		if err != nil {
			return nil, err
		}
		if err := ret.Set(key, value); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func fetch(container, dim any) (any, bool, error) {
	switch c := container.(type) {
	case *Array:
		v, ok := c.Get(dim)
		if !ok {
			if _, err := normalizeKey(dim); err != nil {
				return nil, false, err
			}
		}
		return v, ok, nil
	case string:
		i, err := toInt(dim)
		if err != nil {
			return nil, false, err
		}
		if i < 0 {
			i += int64(len(c))
		}
		if i < 0 || i >= int64(len(c)) {
			return "", false, nil
		}
		return c[i : i+1], true, nil
	case nil:
		return nil, false, nil
	}
	return nil, false, fmt.Errorf("%w: cannot use a scalar value as an array", ErrCannotEvaluate)
}

func (e *Evaluator) evaluateBinaryOp(expr *nodes.BinaryOp) (any, error) {
	switch expr.Op {
	case nodes.OpCoalesce:
		if dim, ok := expr.Left.(*nodes.ArrayDimFetch); ok && dim.Dim != nil {
			container, err := e.Evaluate(dim.Var)
			if err != nil {
				return nil, err
			}
			key, err := e.Evaluate(dim.Dim)
			if err != nil {
				return nil, err
			}
			if v, ok, err := fetch(container, key); err == nil && ok && v != nil {
				return v, nil
			}
			return e.Evaluate(expr.Right)
		}
		left, err := e.Evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		if left != nil {
			return left, nil
		}
		return e.Evaluate(expr.Right)

	case nodes.OpBooleanAnd, nodes.OpLogicalAnd:
		left, err := e.Evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		if !toBool(left) {
			return false, nil
		}
		right, err := e.Evaluate(expr.Right)
		if err != nil {
			return nil, err
		}
		return toBool(right), nil

	case nodes.OpBooleanOr, nodes.OpLogicalOr:
		left, err := e.Evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		if toBool(left) {
			return true, nil
		}
		right, err := e.Evaluate(expr.Right)
		if err != nil {
			return nil, err
		}
		return toBool(right), nil
	}

	left, err := e.Evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	ret, err := BinaryOp(expr.Op, left, right)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Op.Sigil(), err)
	}
	return ret, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case string:
		return "string"
	case *Array:
		return "array"
	}
	return fmt.Sprintf("%T", v)
}
