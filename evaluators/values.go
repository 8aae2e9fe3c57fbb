package evaluators

import (
	"math"
	"strconv"
	"strings"
)

// Values produced by an Evaluator are nil, bool, int64, float64, string or
// *Array.

// Array is an ordered map with int64 or string keys.
type Array struct {
	keys   []any
	values map[any]any
	next   int64
}

func NewArray() *Array {
	return &Array{
		values: make(map[any]any),
	}
}

// Append stores v under the next integer key.
func (a *Array) Append(v any) error {
	if _, ok := a.values[a.next]; ok {
		return errNextOccupied
	}
	return a.Set(a.next, v)
}

// Set stores v under key after normalizing it the way array keys are.
func (a *Array) Set(key, v any) error {
	k, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if _, ok := a.values[k]; !ok {
		a.keys = append(a.keys, k)
	}
	a.values[k] = v
	if i, ok := k.(int64); ok && i >= a.next {
		if i == math.MaxInt64 {
			a.next = i
		} else {
			a.next = i + 1
		}
	}
	return nil
}

func (a *Array) Get(key any) (any, bool) {
	k, err := normalizeKey(key)
	if err != nil {
		return nil, false
	}
	v, ok := a.values[k]
	return v, ok
}

func (a *Array) Len() int {
	return len(a.keys)
}

func (a *Array) Keys() []any {
	return a.keys
}

func (a *Array) Each(fn func(key, value any)) {
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

func normalizeKey(key any) (any, error) {
	switch k := key.(type) {
	case nil:
		return "", nil
	case bool:
		if k {
			return int64(1), nil
		}
		return int64(0), nil
	case int64:
		return k, nil
	case float64:
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return int64(0), nil
		}
		return int64(k), nil
	case string:
		if isCanonicalInt(k) {
			if i, err := strconv.ParseInt(k, 10, 64); err == nil {
				return i, nil
			}
		}
		return k, nil
	}
	return nil, errIllegalOffset
}

func isCanonicalInt(s string) bool {
	if s == "0" {
		return true
	}
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || digits[0] == '0' {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

func toBool(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != "" && v != "0"
	case *Array:
		return v.Len() > 0
	}
	return true
}

// toString converts a scalar the way string interpolation does.
func toString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return "1"
		}
		return ""
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return FormatFloat(v)
	case string:
		return v
	case *Array:
		return "Array"
	}
	return ""
}

// FormatFloat renders f with the shortest round-trip digits, switching to
// exponent notation below 1e-4 and from 1e15 on.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NAN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == 0:
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}
	exp := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, e, _ := strings.Cut(exp, "e")
	n, _ := strconv.Atoi(e)
	if n < -4 || n >= 15 {
		if !strings.Contains(mantissa, ".") {
			mantissa += ".0"
		}
		sign := "+"
		if n < 0 {
			sign = "-"
			n = -n
		}
		return mantissa + "E" + sign + strconv.Itoa(n)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// numericPrefix parses the longest numeric prefix of s after leading
// whitespace. whole reports whether the number spans the entire string
// apart from trailing whitespace.
func numericPrefix(s string) (n any, whole bool, ok bool) {
	trimmed := strings.TrimLeft(s, " \t\n\r\v\f")
	end := 0
	if end < len(trimmed) && (trimmed[end] == '+' || trimmed[end] == '-') {
		end++
	}
	digits := 0
	for end < len(trimmed) && isDigit(trimmed[end]) {
		end++
		digits++
	}
	isFloat := false
	if end < len(trimmed) && trimmed[end] == '.' {
		j := end + 1
		frac := 0
		for j < len(trimmed) && isDigit(trimmed[j]) {
			j++
			frac++
		}
		if digits+frac > 0 {
			end = j
			digits += frac
			isFloat = true
		}
	}
	if digits == 0 {
		return nil, false, false
	}
	if end < len(trimmed) && (trimmed[end] == 'e' || trimmed[end] == 'E') {
		j := end + 1
		if j < len(trimmed) && (trimmed[j] == '+' || trimmed[j] == '-') {
			j++
		}
		if j < len(trimmed) && isDigit(trimmed[j]) {
			for j < len(trimmed) && isDigit(trimmed[j]) {
				j++
			}
			end = j
			isFloat = true
		}
	}
	whole = strings.TrimRight(trimmed[end:], " \t\n\r\v\f") == ""
	text := trimmed[:end]
	if !isFloat {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return i, whole, true
		}
	}
	f, _ := strconv.ParseFloat(text, 64)
	return f, whole, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// isNumericString reports whether s is entirely a number.
func isNumericString(s string) bool {
	_, whole, ok := numericPrefix(s)
	return ok && whole
}

// toNumber converts v for arithmetic, yielding int64 or float64.
func toNumber(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return int64(0), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case int64, float64:
		return v, nil
	case string:
		n, _, ok := numericPrefix(v)
		if !ok {
			return nil, errUnsupportedOperand
		}
		return n, nil
	}
	return nil, errUnsupportedOperand
}

func toInt(v any) (int64, error) {
	n, err := toNumber(v)
	if err != nil {
		return 0, err
	}
	switch n := n.(type) {
	case int64:
		return n, nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, nil
		}
		return int64(n), nil
	}
	return 0, nil
}

func toFloat(n any) float64 {
	switch n := n.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
