package nodes

import (
	"fmt"
	"reflect"
	"sync"
)

type FieldKind uint8

const (
	// FieldScalar holds a string, number, bool or enum.
	FieldScalar FieldKind = iota
	// FieldNode holds a single node or nil.
	FieldNode
	// FieldList holds a slice of nodes, elements may be nil.
	FieldList
	// FieldDynamic holds either a scalar or a node, decided by its value.
	FieldDynamic
)

type fieldInfo struct {
	Name  string
	Index int
	Kind  FieldKind
}

var (
	nodeType    = reflect.TypeFor[Node]()
	anyType     = reflect.TypeFor[any]()
	fieldsCache sync.Map
)

func fieldsOf(t reflect.Type) []fieldInfo {
	if v, ok := fieldsCache.Load(t); ok {
		return v.([]fieldInfo)
	}
	var infos []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, ok := field.Tag.Lookup("node")
		if !ok {
			continue
		}
		infos = append(infos, fieldInfo{
			Name:  name,
			Index: i,
			Kind:  kindOfType(field.Type),
		})
	}
	v, _ := fieldsCache.LoadOrStore(t, infos)
	return v.([]fieldInfo)
}

func kindOfType(t reflect.Type) FieldKind {
	switch {
	case t == anyType:
		return FieldDynamic
	case t.Implements(nodeType):
		return FieldNode
	case t.Kind() == reflect.Slice && t.Elem().Implements(nodeType):
		return FieldList
	}
	return FieldScalar
}

// Field is one named sub-node slot of a node.
type Field struct {
	Name  string
	Kind  FieldKind
	Value reflect.Value
}

// Get returns the field content: a Node, a []Node, a scalar, or nil.
func (f Field) Get() any {
	return valueOf(f.Kind, f.Value)
}

// Set stores v into the field. It panics if v does not fit.
func (f Field) Set(v any) {
	setValue(f.Name, f.Value, v)
}

// Fields lists the sub-node slots of n in source order.
func Fields(n Node) []Field {
	v := reflect.ValueOf(n).Elem()
	infos := fieldsOf(v.Type())
	ret := make([]Field, 0, len(infos))
	for _, info := range infos {
		ret = append(ret, Field{
			Name:  info.Name,
			Kind:  info.Kind,
			Value: v.Field(info.Index),
		})
	}
	return ret
}

// SubNodeNames lists the sub-node names of n in source order.
func SubNodeNames(n Node) []string {
	infos := fieldsOf(reflect.TypeOf(n).Elem())
	ret := make([]string, 0, len(infos))
	for _, info := range infos {
		ret = append(ret, info.Name)
	}
	return ret
}

func field(n Node, name string) (Field, bool) {
	v := reflect.ValueOf(n).Elem()
	for _, info := range fieldsOf(v.Type()) {
		if info.Name == name {
			return Field{
				Name:  info.Name,
				Kind:  info.Kind,
				Value: v.Field(info.Index),
			}, true
		}
	}
	return Field{}, false
}

// Get returns the named sub-node of n.
func Get(n Node, name string) any {
	f, ok := field(n, name)
	if !ok {
		panic(fmt.Errorf("%s has no sub-node %s", n.Type(), name))
	}
	return f.Get()
}

// Set assigns the named sub-node of n.
func Set(n Node, name string, value any) {
	f, ok := field(n, name)
	if !ok {
		panic(fmt.Errorf("%s has no sub-node %s", n.Type(), name))
	}
	f.Set(value)
}

func valueOf(kind FieldKind, v reflect.Value) any {
	switch kind {
	case FieldNode:
		return NodeOf(v)
	case FieldList:
		return ListOf(v)
	case FieldDynamic:
		if v.IsNil() {
			return nil
		}
		return v.Interface()
	}
	return v.Interface()
}

// NodeOf converts a reflected pointer or interface to a Node, mapping typed
// nil pointers to nil.
func NodeOf(v reflect.Value) Node {
	if !v.IsValid() {
		return nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	n, _ := v.Interface().(Node)
	return n
}

// ListOf converts a reflected slice of nodes to []Node.
func ListOf(v reflect.Value) []Node {
	if v.IsNil() {
		return nil
	}
	ret := make([]Node, v.Len())
	for i := range ret {
		ret[i] = NodeOf(v.Index(i))
	}
	return ret
}

// MakeList builds a slice of type t from nodes.
func MakeList(t reflect.Type, ns []Node) reflect.Value {
	if ns == nil {
		return reflect.Zero(t)
	}
	ret := reflect.MakeSlice(t, len(ns), len(ns))
	elemType := t.Elem()
	for i, n := range ns {
		if n == nil {
			continue
		}
		v := reflect.ValueOf(n)
		if !v.Type().AssignableTo(elemType) {
			panic(fmt.Errorf("cannot put %s into a list of %v", n.Type(), elemType))
		}
		ret.Index(i).Set(v)
	}
	return ret
}

func setValue(name string, field reflect.Value, value any) {
	t := field.Type()
	if value == nil {
		field.Set(reflect.Zero(t))
		return
	}
	if ns, ok := value.([]Node); ok && t.Kind() == reflect.Slice && t != reflect.TypeOf(ns) {
		field.Set(MakeList(t, ns))
		return
	}
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		field.Set(v)
		return
	}
	if v.Type().ConvertibleTo(t) && v.Kind() != reflect.Pointer && v.Kind() != reflect.Slice {
		field.Set(v.Convert(t))
		return
	}
	if n, ok := value.(Node); ok {
		panic(fmt.Errorf("cannot assign %s to sub-node %s of type %v", n.Type(), name, t))
	}
	panic(fmt.Errorf("cannot assign %T to sub-node %s of type %v", value, name, t))
}

// IsNodeValue reports whether a sub-node value is a node rather than a scalar.
func IsNodeValue(v any) bool {
	_, ok := v.(Node)
	return ok
}
