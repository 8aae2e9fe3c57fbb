package evaluators

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reusee/phpedit/nodes"
)

// BinaryOp applies a non short-circuiting binary operator to two values.
func BinaryOp(op nodes.BinaryOpKind, l, r any) (any, error) {
	switch op {
	case nodes.OpPlus:
		if la, ok := l.(*Array); ok {
			ra, ok := r.(*Array)
			if !ok {
				return nil, fmt.Errorf("%w: array + %s", errUnsupportedOperand, typeName(r))
			}
			return union(la, ra), nil
		}
		return arith(l, r, op)
	case nodes.OpMinus, nodes.OpMul, nodes.OpDiv, nodes.OpPow:
		return arith(l, r, op)

	case nodes.OpMod:
		a, b, err := intOperands(l, r)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, ErrModuloByZero
		}
		if b == -1 {
			return int64(0), nil
		}
		return a % b, nil

	case nodes.OpShiftLeft, nodes.OpShiftRight:
		a, b, err := intOperands(l, r)
		if err != nil {
			return nil, err
		}
		if b < 0 {
			return nil, ErrNegativeShift
		}
		if op == nodes.OpShiftLeft {
			if b >= 64 {
				return int64(0), nil
			}
			return a << uint(b), nil
		}
		if b >= 64 {
			if a < 0 {
				return int64(-1), nil
			}
			return int64(0), nil
		}
		return a >> uint(b), nil

	case nodes.OpBitwiseAnd, nodes.OpBitwiseOr, nodes.OpBitwiseXor:
		if ls, ok := l.(string); ok {
			if rs, ok := r.(string); ok {
				return bitwiseStrings(op, ls, rs), nil
			}
		}
		a, b, err := intOperands(l, r)
		if err != nil {
			return nil, err
		}
		switch op {
		case nodes.OpBitwiseAnd:
			return a & b, nil
		case nodes.OpBitwiseOr:
			return a | b, nil
		}
		return a ^ b, nil

	case nodes.OpConcat:
		return toString(l) + toString(r), nil

	case nodes.OpLogicalXor:
		return toBool(l) != toBool(r), nil
	case nodes.OpBooleanAnd, nodes.OpLogicalAnd:
		return toBool(l) && toBool(r), nil
	case nodes.OpBooleanOr, nodes.OpLogicalOr:
		return toBool(l) || toBool(r), nil
	case nodes.OpCoalesce:
		if l != nil {
			return l, nil
		}
		return r, nil

	case nodes.OpIdentical:
		return Identical(l, r), nil
	case nodes.OpNotIdentical:
		return !Identical(l, r), nil
	case nodes.OpEqual:
		return Compare(l, r) == 0, nil
	case nodes.OpNotEqual:
		return Compare(l, r) != 0, nil
	case nodes.OpSmaller:
		return Compare(l, r) < 0, nil
	case nodes.OpSmallerOrEqual:
		return Compare(l, r) <= 0, nil
	case nodes.OpGreater:
		return Compare(r, l) < 0, nil
	case nodes.OpGreaterOrEqual:
		return Compare(r, l) <= 0, nil
	case nodes.OpSpaceship:
		return int64(Compare(l, r)), nil
	}
	return nil, fmt.Errorf("%w: operator %s", ErrCannotEvaluate, op.Name())
}

func intOperands(l, r any) (int64, int64, error) {
	if err := checkArithOperand(l, r); err != nil {
		return 0, 0, err
	}
	a, err := toInt(l)
	if err != nil {
		return 0, 0, err
	}
	b, err := toInt(r)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func checkArithOperand(l, r any) error {
	_, la := l.(*Array)
	_, ra := r.(*Array)
	if la || ra {
		return fmt.Errorf("%w: %s and %s", errUnsupportedOperand, typeName(l), typeName(r))
	}
	return nil
}

func arith(l, r any, op nodes.BinaryOpKind) (any, error) {
	if err := checkArithOperand(l, r); err != nil {
		return nil, err
	}
	a, err := toNumber(l)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, typeName(l))
	}
	b, err := toNumber(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, typeName(r))
	}

	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	if aInt && bInt {
		switch op {
		case nodes.OpPlus:
			if s := ai + bi; (s > ai) == (bi > 0) {
				return s, nil
			}
		case nodes.OpMinus:
			if d := ai - bi; (d < ai) == (bi > 0) {
				return d, nil
			}
		case nodes.OpMul:
			if p, ok := mulInt(ai, bi); ok {
				return p, nil
			}
		case nodes.OpDiv:
			if bi == 0 {
				return nil, ErrDivisionByZero
			}
			if !(ai == math.MinInt64 && bi == -1) && ai%bi == 0 {
				return ai / bi, nil
			}
		case nodes.OpPow:
			if bi >= 0 {
				if p, ok := powInt(ai, bi); ok {
					return p, nil
				}
			}
		}
	}

	x, y := toFloat(a), toFloat(b)
	switch op {
	case nodes.OpPlus:
		return x + y, nil
	case nodes.OpMinus:
		return x - y, nil
	case nodes.OpMul:
		return x * y, nil
	case nodes.OpDiv:
		if y == 0 {
			return nil, ErrDivisionByZero
		}
		return x / y, nil
	}
	return math.Pow(x, y), nil
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return p, true
}

func powInt(base, exp int64) (int64, bool) {
	ret := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			var ok bool
			if ret, ok = mulInt(ret, base); !ok {
				return 0, false
			}
		}
		exp >>= 1
		if exp > 0 {
			var ok bool
			if base, ok = mulInt(base, base); !ok {
				return 0, false
			}
		}
	}
	return ret, true
}

func bitwiseStrings(op nodes.BinaryOpKind, a, b string) string {
	if op == nodes.OpBitwiseOr {
		if len(a) < len(b) {
			a, b = b, a
		}
		buf := []byte(a)
		for i := 0; i < len(b); i++ {
			buf[i] |= b[i]
		}
		return string(buf)
	}
	n := min(len(a), len(b))
	buf := make([]byte, n)
	for i := range buf {
		if op == nodes.OpBitwiseAnd {
			buf[i] = a[i] & b[i]
		} else {
			buf[i] = a[i] ^ b[i]
		}
	}
	return string(buf)
}

func union(a, b *Array) *Array {
	ret := NewArray()
	a.Each(func(k, v any) {
		ret.Set(k, v)
	})
	b.Each(func(k, v any) {
		if _, ok := ret.Get(k); !ok {
			ret.Set(k, v)
		}
	})
	return ret
}

// Identical is the === comparison.
func Identical(a, b any) bool {
	switch a := a.(type) {
	case *Array:
		b, ok := b.(*Array)
		if !ok || a.Len() != b.Len() {
			return false
		}
		for i, k := range a.keys {
			if b.keys[i] != k || !Identical(a.values[k], b.values[k]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	case bool, int64, float64, string:
		return a == b
	}
	return false
}

// Compare is the loose comparison underlying ==, < and <=>.
// Uncomparable values compare as 1.
func Compare(a, b any) int {
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	switch {
	case a == nil && b == nil:
		return 0
	case aBool || bBool:
		return compareBools(toBool(a), toBool(b))
	case a == nil:
		if s, ok := b.(string); ok {
			return strings.Compare("", s)
		}
		return compareBools(false, toBool(b))
	case b == nil:
		if s, ok := a.(string); ok {
			return strings.Compare(s, "")
		}
		return compareBools(toBool(a), false)
	}

	aArr, aIsArr := a.(*Array)
	bArr, bIsArr := b.(*Array)
	switch {
	case aIsArr && bIsArr:
		return compareArrays(aArr, bArr)
	case aIsArr:
		return 1
	case bIsArr:
		return -1
	}

	as, aStr := a.(string)
	bs, bStr := b.(string)
	switch {
	case aStr && bStr:
		if isNumericString(as) && isNumericString(bs) {
			x, _, _ := numericPrefix(as)
			y, _, _ := numericPrefix(bs)
			return compareNumbers(x, y)
		}
		return sign(strings.Compare(as, bs))
	case aStr:
		if isNumericString(as) {
			x, _, _ := numericPrefix(as)
			return compareNumbers(x, b)
		}
		return sign(strings.Compare(as, toString(b)))
	case bStr:
		if isNumericString(bs) {
			y, _, _ := numericPrefix(bs)
			return compareNumbers(a, y)
		}
		return sign(strings.Compare(toString(a), bs))
	}
	return compareNumbers(a, b)
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func compareNumbers(a, b any) int {
	ai, aInt := a.(int64)
	bi, bInt := b.(int64)
	if aInt && bInt {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	x, y := toFloat(a), toFloat(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	case x == y:
		return 0
	}
	return 1
}

func compareArrays(a, b *Array) int {
	if c := sign(a.Len() - b.Len()); c != 0 {
		return c
	}
	for _, k := range a.keys {
		bv, ok := b.values[k]
		if !ok {
			return 1
		}
		if c := Compare(a.values[k], bv); c != 0 {
			return c
		}
	}
	return 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Describe renders a value as a short literal-like string, for logs and
// diagnostics.
func Describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case *Array:
		var b strings.Builder
		b.WriteString("[")
		first := true
		v.Each(func(k, val any) {
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(Describe(k))
			b.WriteString(" => ")
			b.WriteString(Describe(val))
		})
		b.WriteString("]")
		return b.String()
	}
	return toString(v)
}
