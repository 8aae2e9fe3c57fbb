package debugs

import (
	"fmt"
	"reflect"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

// toStarlarkValue converts Go values, syntax trees and token lists into
// starlark values. Nodes become dicts keyed by sub-node name plus "type" and
// "attributes".
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case nodes.Node:
		if isNilNode(v) {
			return starlark.None
		}
		return nodeToStarlark(v)

	case tokens.Token:
		d := starlark.NewDict(4)
		d.SetKey(starlark.String("kind"), starlark.String(v.Kind.Name()))
		d.SetKey(starlark.String("text"), starlark.String(v.Text))
		d.SetKey(starlark.String("line"), starlark.MakeInt(v.Line))
		d.SetKey(starlark.String("pos"), starlark.MakeInt(v.Pos))
		return d

	case *nodes.Comment:
		if v == nil {
			return starlark.None
		}
		return starlark.String(v.Text)

	case bool:
		return starlark.Bool(v)

	case []byte:
		return starlark.Bytes(v)
	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int8:
		return starlark.MakeInt(int(v))
	case int16:
		return starlark.MakeInt(int(v))
	case int32:
		return starlark.MakeInt(int(v))
	case int64:
		return starlark.MakeInt64(v)

	case uint:
		return starlark.MakeUint(v)
	case uint8:
		return starlark.MakeUint(uint(v))
	case uint16:
		return starlark.MakeUint(uint(v))
	case uint32:
		return starlark.MakeUint(uint(v))
	case uint64:
		return starlark.MakeUint64(v)

	case float32:
		return starlark.Float(v)
	case float64:
		return starlark.Float(v)

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toStarlarkValue(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toStarlarkValue(val))
		}
		return d

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int:
		return starlark.MakeInt(int(value.Int()))
	case reflect.Int8:
		return starlark.MakeInt(int(value.Int()))
	case reflect.Int16:
		return starlark.MakeInt(int(value.Int()))
	case reflect.Int32:
		return starlark.MakeInt(int(value.Int()))
	case reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint:
		return starlark.MakeUint(uint(value.Uint()))
	case reflect.Uint8:
		return starlark.MakeUint(uint(value.Uint()))
	case reflect.Uint16:
		return starlark.MakeUint(uint(value.Uint()))
	case reflect.Uint32:
		return starlark.MakeUint(uint(value.Uint()))
	case reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32:
		return starlark.Float(value.Float())
	case reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elem := value.Index(i)
			elems[i] = toStarlarkValue(elem.Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Struct:
		n := value.NumField()
		d := starlark.NewDict(n)
		typ := value.Type()
		for i := range n {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

func nodeToStarlark(n nodes.Node) starlark.Value {
	fields := nodes.Fields(n)
	d := starlark.NewDict(len(fields) + 2)
	d.SetKey(starlark.String("type"), starlark.String(n.Type()))
	attrs := starlark.NewDict(len(n.Attributes()))
	for key, value := range n.Attributes() {
		attrs.SetKey(starlark.String(key), toStarlarkValue(value))
	}
	d.SetKey(starlark.String("attributes"), attrs)
	for _, field := range fields {
		value := field.Get()
		if list, ok := value.([]nodes.Node); ok {
			elems := make([]starlark.Value, len(list))
			for i, elem := range list {
				elems[i] = toStarlarkValue(elem)
			}
			d.SetKey(starlark.String(field.Name), starlark.NewList(elems))
			continue
		}
		d.SetKey(starlark.String(field.Name), toStarlarkValue(value))
	}
	return d
}

func isNilNode(n nodes.Node) bool {
	value := reflect.ValueOf(n)
	return value.Kind() == reflect.Pointer && value.IsNil()
}
