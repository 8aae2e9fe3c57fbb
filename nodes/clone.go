package nodes

import "reflect"

// CloneNode returns a shallow copy of n with its own attribute map.
// Sub-nodes and lists are shared with n.
func CloneNode[T Node](n T) T {
	v := reflect.ValueOf(n)
	c := reflect.New(v.Elem().Type())
	c.Elem().Set(v.Elem())
	ret := c.Interface().(T)
	ret.base().attrs = n.base().attrs.Clone()
	return ret
}

// Origins maps nodes of an edited tree to the nodes of the original tree
// they were cloned from.
type Origins map[Node]Node

// Of returns the original of n, or nil.
func (o Origins) Of(n Node) Node {
	if o == nil || n == nil {
		return nil
	}
	return o[n]
}

// Same reports whether edited node n stands for original node orig.
func (o Origins) Same(n, orig Node) bool {
	if n == nil || orig == nil {
		return n == nil && orig == nil
	}
	return o.Of(n) == orig
}
