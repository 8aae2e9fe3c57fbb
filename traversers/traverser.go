package traversers

import (
	"fmt"

	"github.com/reusee/phpedit/nodes"
)

// Traverser walks node lists depth first, giving every visitor a chance to
// inspect or rewrite each node. Visitors run in order on enter and in
// reverse order on leave.
//
// Lists are copy-on-write: an edited list is always a fresh slice, so a
// cloned tree never shares an edited list with the tree it came from.
type Traverser struct {
	visitors []Visitor
	stopped  bool
}

func New(visitors ...Visitor) *Traverser {
	return &Traverser{
		visitors: visitors,
	}
}

func (t *Traverser) AddVisitor(v Visitor) {
	t.visitors = append(t.visitors, v)
}

// Traverse runs the visitors over ns and returns the possibly rewritten list.
func (t *Traverser) Traverse(ns []nodes.Node) []nodes.Node {
	t.stopped = false
	for _, v := range t.visitors {
		if ret := v.BeforeTraverse(ns); ret != nil {
			ns = ret
		}
	}
	ns = t.traverseList(ns)
	for i := len(t.visitors) - 1; i >= 0; i-- {
		if ret := t.visitors[i].AfterTraverse(ns); ret != nil {
			ns = ret
		}
	}
	return ns
}

// Traverse is a typed convenience over Traverser.Traverse.
// It panics if a visitor puts a node that is not a T into the top level list.
func Traverse[T nodes.Node](ns []T, visitors ...Visitor) []T {
	in := make([]nodes.Node, len(ns))
	for i, n := range ns {
		in[i] = n
	}
	out := New(visitors...).Traverse(in)
	ret := make([]T, 0, len(out))
	for _, n := range out {
		if n == nil {
			var zero T
			ret = append(ret, zero)
			continue
		}
		t, ok := n.(T)
		if !ok {
			panic(fmt.Errorf("traversal produced %s in a list of %T", n.Type(), *new(T)))
		}
		ret = append(ret, t)
	}
	return ret
}

type splice struct {
	index int
	nodes []nodes.Node
}

func (t *Traverser) traverseList(ns []nodes.Node) []nodes.Node {
	var splices []splice
	copied := false
	replace := func(i int, n nodes.Node) {
		if !copied {
			ns = append([]nodes.Node(nil), ns...)
			copied = true
		}
		ns[i] = n
	}

loop:
	for i := 0; i < len(ns); i++ {
		node := ns[i]
		if node == nil {
			continue
		}

		traverseChildren := true
		visitorIndex := -1
	enter:
		for idx, v := range t.visitors {
			visitorIndex = idx
			action := v.EnterNode(node)
			switch action.kind {
			case actionContinue:
			case actionReplace:
				ensureReasonable(node, action.node)
				node = action.node
				replace(i, node)
			case actionSplice:
				splices = append(splices, splice{i, action.nodes})
				continue loop
			case actionRemove:
				splices = append(splices, splice{i, []nodes.Node{}})
				continue loop
			case actionSkipChildren:
				traverseChildren = false
			case actionSkipSubtree:
				traverseChildren = false
				break enter
			case actionStop:
				t.stopped = true
				break loop
			case actionReplaceWithNull:
				panic("ReplaceWithNull can not be used if the parent structure is a list")
			}
		}

		if traverseChildren {
			t.traverseNode(node)
			if t.stopped {
				break
			}
		}

	leave:
		for ; visitorIndex >= 0; visitorIndex-- {
			action := t.visitors[visitorIndex].LeaveNode(node)
			switch action.kind {
			case actionContinue:
			case actionReplace:
				ensureReasonable(node, action.node)
				node = action.node
				replace(i, node)
			case actionSplice:
				splices = append(splices, splice{i, action.nodes})
				break leave
			case actionRemove:
				splices = append(splices, splice{i, []nodes.Node{}})
				break leave
			case actionStop:
				t.stopped = true
				break loop
			case actionReplaceWithNull:
				panic("ReplaceWithNull can not be used if the parent structure is a list")
			default:
				panic(fmt.Errorf("LeaveNode returned %v, which only EnterNode may return", action))
			}
		}
	}

	if len(splices) == 0 {
		return ns
	}
	ret := make([]nodes.Node, 0, len(ns))
	last := 0
	for _, s := range splices {
		ret = append(ret, ns[last:s.index]...)
		ret = append(ret, s.nodes...)
		last = s.index + 1
	}
	ret = append(ret, ns[last:]...)
	return ret
}

func (t *Traverser) traverseNode(node nodes.Node) {
	for _, field := range nodes.Fields(node) {
		switch field.Kind {
		case nodes.FieldScalar:
			continue

		case nodes.FieldList:
			list := nodes.ListOf(field.Value)
			edited := t.traverseList(list)
			if !sameList(list, edited) {
				field.Set(edited)
			}
			if t.stopped {
				return
			}
			continue

		case nodes.FieldDynamic:
			if _, ok := field.Get().(nodes.Node); !ok {
				continue
			}
		}

		sub, _ := field.Get().(nodes.Node)
		if sub == nil {
			continue
		}

		traverseChildren := true
		visitorIndex := -1
		removed := false
	enter:
		for idx, v := range t.visitors {
			visitorIndex = idx
			action := v.EnterNode(sub)
			switch action.kind {
			case actionContinue:
			case actionReplace:
				ensureReasonable(sub, action.node)
				sub = action.node
				field.Set(sub)
			case actionSkipChildren:
				traverseChildren = false
			case actionSkipSubtree:
				traverseChildren = false
				break enter
			case actionStop:
				t.stopped = true
				return
			case actionReplaceWithNull:
				field.Set(nil)
				removed = true
				break enter
			case actionRemove, actionSplice:
				panic(fmt.Errorf("%v can only be used if the parent structure is a list", action))
			}
		}
		if removed {
			continue
		}

		if traverseChildren {
			t.traverseNode(sub)
			if t.stopped {
				return
			}
		}

	leave:
		for ; visitorIndex >= 0; visitorIndex-- {
			action := t.visitors[visitorIndex].LeaveNode(sub)
			switch action.kind {
			case actionContinue:
			case actionReplace:
				ensureReasonable(sub, action.node)
				sub = action.node
				field.Set(sub)
			case actionStop:
				t.stopped = true
				return
			case actionReplaceWithNull:
				field.Set(nil)
				break leave
			case actionRemove, actionSplice:
				panic(fmt.Errorf("%v can only be used if the parent structure is a list", action))
			default:
				panic(fmt.Errorf("LeaveNode returned %v, which only EnterNode may return", action))
			}
		}
	}
}

func sameList(a, b []nodes.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ensureReasonable(old, replacement nodes.Node) {
	if replacement == nil {
		panic(fmt.Errorf("replacement for %s is nil, use ReplaceWithNull or Remove", old.Type()))
	}
	switch old.(type) {
	case nodes.Stmt:
		if _, ok := replacement.(nodes.Expr); ok {
			panic(fmt.Errorf(
				"trying to replace statement (%s) with expression (%s), are you missing a Stmt_Expression wrapper?",
				old.Type(), replacement.Type(),
			))
		}
	case nodes.Expr:
		if _, ok := replacement.(nodes.Stmt); ok {
			panic(fmt.Errorf(
				"trying to replace expression (%s) with statement (%s)",
				old.Type(), replacement.Type(),
			))
		}
	}
}
