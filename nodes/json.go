package nodes

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/tidwall/gjson"
)

var factories = map[string]func() Node{}

func register(fn func() Node) {
	factories[fn().Type()] = fn
}

func init() {
	for _, fn := range []func() Node{
		func() Node { return new(Name) },
		func() Node { return &Name{Kind: NameFullyQualified} },
		func() Node { return &Name{Kind: NameRelative} },
		func() Node { return new(Identifier) },
		func() Node { return new(VarLikeIdentifier) },
		func() Node { return new(NullableType) },
		func() Node { return new(UnionType) },
		func() Node { return new(Param) },
		func() Node { return new(Arg) },
		func() Node { return new(Const) },
		func() Node { return new(ArrayItem) },
		func() Node { return new(ClosureUse) },
		func() Node { return new(PropertyItem) },
		func() Node { return new(StaticVar) },
		func() Node { return new(UseItem) },
		func() Node { return new(DeclareItem) },
		func() Node { return new(InterpolatedStringPart) },

		func() Node { return new(Variable) },
		func() Node { return new(Assign) },
		func() Node { return new(AssignRef) },
		func() Node { return new(BooleanNot) },
		func() Node { return new(BitwiseNot) },
		func() Node { return new(UnaryMinus) },
		func() Node { return new(UnaryPlus) },
		func() Node { return new(PreInc) },
		func() Node { return new(PreDec) },
		func() Node { return new(PostInc) },
		func() Node { return new(PostDec) },
		func() Node { return new(ErrorSuppress) },
		func() Node { return new(Clone) },
		func() Node { return new(Print) },
		func() Node { return new(Include) },
		func() Node { return new(Yield) },
		func() Node { return new(YieldFrom) },
		func() Node { return new(Throw) },
		func() Node { return new(Instanceof) },
		func() Node { return new(Ternary) },
		func() Node { return new(Isset) },
		func() Node { return new(Empty) },
		func() Node { return new(Exit) },
		func() Node { return new(ArrayExpr) },
		func() Node { return new(List) },
		func() Node { return new(FuncCall) },
		func() Node { return new(MethodCall) },
		func() Node { return new(NullsafeMethodCall) },
		func() Node { return new(StaticCall) },
		func() Node { return new(PropertyFetch) },
		func() Node { return new(NullsafePropertyFetch) },
		func() Node { return new(StaticPropertyFetch) },
		func() Node { return new(ClassConstFetch) },
		func() Node { return new(ConstFetch) },
		func() Node { return new(ArrayDimFetch) },
		func() Node { return new(New) },
		func() Node { return new(Closure) },
		func() Node { return new(ArrowFunction) },
		func() Node { return new(Error) },

		func() Node { return new(Int) },
		func() Node { return new(Float) },
		func() Node { return new(String) },
		func() Node { return new(InterpolatedString) },

		func() Node { return new(Echo) },
		func() Node { return new(Expression) },
		func() Node { return new(If) },
		func() Node { return new(ElseIf) },
		func() Node { return new(Else) },
		func() Node { return new(While) },
		func() Node { return new(Do) },
		func() Node { return new(For) },
		func() Node { return new(Foreach) },
		func() Node { return new(Switch) },
		func() Node { return new(Case) },
		func() Node { return new(Break) },
		func() Node { return new(Continue) },
		func() Node { return new(Return) },
		func() Node { return new(Function) },
		func() Node { return new(Class) },
		func() Node { return new(Interface) },
		func() Node { return new(ClassMethod) },
		func() Node { return new(Property) },
		func() Node { return new(ClassConst) },
		func() Node { return new(ConstStmt) },
		func() Node { return new(Namespace) },
		func() Node { return new(Use) },
		func() Node { return new(Global) },
		func() Node { return new(Static) },
		func() Node { return new(Unset) },
		func() Node { return new(InlineHTML) },
		func() Node { return new(Nop) },
		func() Node { return new(TryCatch) },
		func() Node { return new(Catch) },
		func() Node { return new(Finally) },
		func() Node { return new(Declare) },
		func() Node { return new(HaltCompiler) },
		func() Node { return new(Block) },
	} {
		register(fn)
	}
	for _, op := range BinaryOpKinds() {
		register(func() Node { return &BinaryOp{Op: op} })
	}
	for _, op := range AssignOpKinds() {
		register(func() Node { return &AssignOp{Op: op} })
	}
	for _, kind := range CastKinds() {
		register(func() Node { return &Cast{Kind: kind} })
	}
	for _, kind := range MagicConstKinds() {
		register(func() Node { return &MagicConst{Kind: kind} })
	}
}

// NewByType creates an empty node of the given type name.
func NewByType(typ string) (Node, bool) {
	fn, ok := factories[typ]
	if !ok {
		return nil, false
	}
	return fn(), true
}

// EncodeJSON serializes nodes into tagged objects:
// {"nodeType": ..., <sub-nodes>..., "attributes": {...}}.
func EncodeJSON(v any) ([]byte, error) {
	return json.Marshal(toJSONValue(v))
}

func toJSONValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case Node:
		return nodeToJSON(v)
	case []Node:
		ret := make([]any, len(v))
		for i, n := range v {
			ret[i] = toJSONValue(n)
		}
		return ret
	case []*Comment:
		ret := make([]any, len(v))
		for i, c := range v {
			ret[i] = commentToJSON(c)
		}
		return ret
	case float64:
		switch {
		case math.IsInf(v, 1):
			return "INF"
		case math.IsInf(v, -1):
			return "-INF"
		case math.IsNaN(v):
			return "NAN"
		}
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Implements(nodeType) {
		return toJSONValue(ListOf(rv))
	}
	return v
}

func nodeToJSON(n Node) any {
	obj := orderedObject{
		{"nodeType", n.Type()},
	}
	for _, f := range Fields(n) {
		value := f.Get()
		if f.Kind == FieldScalar {
			value = scalarToJSON(f.Value)
		}
		obj = append(obj, pair{f.Name, toJSONValue(value)})
	}
	attrs := n.Attributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrObj := orderedObject{}
	for _, k := range keys {
		attrObj = append(attrObj, pair{k, toJSONValue(attrs[k])})
	}
	obj = append(obj, pair{"attributes", attrObj})
	return obj
}

func scalarToJSON(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		return toJSONValue(v.Float())
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	}
	return v.Interface()
}

func commentToJSON(c *Comment) any {
	typ := "Comment"
	if c.Doc {
		typ = "Comment_Doc"
	}
	return orderedObject{
		{"nodeType", typ},
		{"text", c.Text},
		{"line", c.StartLine},
		{"filePos", c.StartFilePos},
		{"tokenPos", c.StartTokenPos},
		{"endLine", c.EndLine},
		{"endFilePos", c.EndFilePos},
		{"endTokenPos", c.EndTokenPos},
	}
}

type pair struct {
	key   string
	value any
}

// orderedObject keeps keys in insertion order when marshaled.
type orderedObject []pair

func (o orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, p := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		key, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		value, err := json.Marshal(p.value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, value...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// DecodeJSON is the inverse of EncodeJSON. The top level value must be a
// node or an array of nodes.
func DecodeJSON(data []byte) ([]Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid json")
	}
	root := gjson.ParseBytes(data)
	if root.IsArray() {
		var ret []Node
		for _, elem := range root.Array() {
			n, err := decodeNode(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, n)
		}
		return ret, nil
	}
	n, err := decodeNode(root)
	if err != nil {
		return nil, err
	}
	return []Node{n}, nil
}

func decodeNode(value gjson.Result) (Node, error) {
	if value.Type == gjson.Null {
		return nil, nil
	}
	if !value.IsObject() {
		return nil, fmt.Errorf("expecting node object, got %s", value.Raw)
	}
	typ := value.Get("nodeType").String()
	n, ok := NewByType(typ)
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", typ)
	}
	for _, f := range Fields(n) {
		sub := value.Get(gjson.Escape(f.Name))
		if !sub.Exists() || sub.Type == gjson.Null {
			continue
		}
		if err := decodeField(f, sub); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", typ, f.Name, err)
		}
	}
	if attrs := value.Get("attributes"); attrs.IsObject() {
		decoded, err := decodeAttributes(attrs)
		if err != nil {
			return nil, fmt.Errorf("%s attributes: %w", typ, err)
		}
		n.SetAttributes(decoded)
	}
	return n, nil
}

func decodeField(f Field, value gjson.Result) error {
	switch f.Kind {

	case FieldNode:
		n, err := decodeNode(value)
		if err != nil {
			return err
		}
		f.Set(n)

	case FieldList:
		list := []Node{}
		for _, elem := range value.Array() {
			n, err := decodeNode(elem)
			if err != nil {
				return err
			}
			list = append(list, n)
		}
		f.Set(list)

	case FieldDynamic:
		if value.IsObject() {
			n, err := decodeNode(value)
			if err != nil {
				return err
			}
			f.Set(n)
		} else {
			f.Set(value.String())
		}

	case FieldScalar:
		switch f.Value.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f.Value.SetInt(value.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f.Value.SetUint(value.Uint())
		case reflect.Float32, reflect.Float64:
			f.Value.SetFloat(decodeFloat(value))
		case reflect.Bool:
			f.Value.SetBool(value.Bool())
		case reflect.String:
			f.Value.SetString(value.String())
		default:
			return fmt.Errorf("unsupported scalar kind %v", f.Value.Kind())
		}
	}
	return nil
}

func decodeFloat(value gjson.Result) float64 {
	if value.Type == gjson.String {
		switch value.String() {
		case "INF":
			return math.Inf(1)
		case "-INF":
			return math.Inf(-1)
		case "NAN":
			return math.NaN()
		}
	}
	return value.Float()
}

func decodeAttributes(value gjson.Result) (Attributes, error) {
	attrs := make(Attributes)
	var err error
	value.ForEach(func(key, v gjson.Result) bool {
		if key.String() == CommentsKey && v.IsArray() {
			var comments []*Comment
			for _, c := range v.Array() {
				comments = append(comments, &Comment{
					Text:          c.Get("text").String(),
					Doc:           c.Get("nodeType").String() == "Comment_Doc",
					StartLine:     int(c.Get("line").Int()),
					StartFilePos:  int(c.Get("filePos").Int()),
					StartTokenPos: int(c.Get("tokenPos").Int()),
					EndLine:       int(c.Get("endLine").Int()),
					EndFilePos:    int(c.Get("endFilePos").Int()),
					EndTokenPos:   int(c.Get("endTokenPos").Int()),
				})
			}
			attrs[CommentsKey] = comments
			return true
		}
		decoded, e := decodeAttributeValue(v)
		if e != nil {
			err = e
			return false
		}
		attrs[key.String()] = decoded
		return true
	})
	return attrs, err
}

func decodeAttributeValue(v gjson.Result) (any, error) {
	switch v.Type {
	case gjson.Null:
		return nil, nil
	case gjson.True, gjson.False:
		return v.Bool(), nil
	case gjson.String:
		return v.String(), nil
	case gjson.Number:
		if f := v.Float(); f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(v.Int()), nil
		}
		return v.Float(), nil
	}
	if v.IsObject() && v.Get("nodeType").Exists() {
		return decodeNode(v)
	}
	if v.IsArray() {
		var ret []any
		for _, elem := range v.Array() {
			decoded, err := decodeAttributeValue(elem)
			if err != nil {
				return nil, err
			}
			ret = append(ret, decoded)
		}
		return ret, nil
	}
	return v.Value(), nil
}
