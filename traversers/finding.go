package traversers

import "github.com/reusee/phpedit/nodes"

// FindingVisitor collects the nodes accepted by Filter, in pre-order.
type FindingVisitor struct {
	VisitorBase
	Filter func(nodes.Node) bool
	Found  []nodes.Node
}

func (f *FindingVisitor) BeforeTraverse([]nodes.Node) []nodes.Node {
	f.Found = nil
	return nil
}

func (f *FindingVisitor) EnterNode(n nodes.Node) Action {
	if f.Filter(n) {
		f.Found = append(f.Found, n)
	}
	return Continue
}

// FirstFindingVisitor stops at the first node accepted by Filter.
type FirstFindingVisitor struct {
	VisitorBase
	Filter func(nodes.Node) bool
	Found  nodes.Node
}

func (f *FirstFindingVisitor) BeforeTraverse([]nodes.Node) []nodes.Node {
	f.Found = nil
	return nil
}

func (f *FirstFindingVisitor) EnterNode(n nodes.Node) Action {
	if f.Filter(n) {
		f.Found = n
		return Stop
	}
	return Continue
}

func Find[T nodes.Node](ns []T, filter func(nodes.Node) bool) []nodes.Node {
	v := &FindingVisitor{Filter: filter}
	Traverse(ns, v)
	return v.Found
}

func FindFirst[T nodes.Node](ns []T, filter func(nodes.Node) bool) nodes.Node {
	v := &FirstFindingVisitor{Filter: filter}
	Traverse(ns, v)
	return v.Found
}

// FindType returns all nodes of type N.
func FindType[N nodes.Node, T nodes.Node](ns []T) []N {
	var ret []N
	Traverse(ns, Funcs{
		Enter: func(n nodes.Node) Action {
			if m, ok := n.(N); ok {
				ret = append(ret, m)
			}
			return Continue
		},
	})
	return ret
}
