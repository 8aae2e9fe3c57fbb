package traversers

import "github.com/reusee/phpedit/nodes"

// Visitor observes and rewrites a tree during traversal.
//
// BeforeTraverse and AfterTraverse may return a replacement for the top
// level list, or nil to keep it.
type Visitor interface {
	BeforeTraverse(ns []nodes.Node) []nodes.Node
	EnterNode(n nodes.Node) Action
	LeaveNode(n nodes.Node) Action
	AfterTraverse(ns []nodes.Node) []nodes.Node
}

// VisitorBase implements every Visitor method as a no-op. Embed it to
// implement only the needed methods.
type VisitorBase struct{}

var _ Visitor = VisitorBase{}

func (VisitorBase) BeforeTraverse([]nodes.Node) []nodes.Node {
	return nil
}

func (VisitorBase) EnterNode(nodes.Node) Action {
	return Continue
}

func (VisitorBase) LeaveNode(nodes.Node) Action {
	return Continue
}

func (VisitorBase) AfterTraverse([]nodes.Node) []nodes.Node {
	return nil
}

// Funcs adapts functions to a Visitor. Nil fields are no-ops.
type Funcs struct {
	Before func([]nodes.Node) []nodes.Node
	Enter  func(nodes.Node) Action
	Leave  func(nodes.Node) Action
	After  func([]nodes.Node) []nodes.Node
}

var _ Visitor = Funcs{}

func (f Funcs) BeforeTraverse(ns []nodes.Node) []nodes.Node {
	if f.Before == nil {
		return nil
	}
	return f.Before(ns)
}

func (f Funcs) EnterNode(n nodes.Node) Action {
	if f.Enter == nil {
		return Continue
	}
	return f.Enter(n)
}

func (f Funcs) LeaveNode(n nodes.Node) Action {
	if f.Leave == nil {
		return Continue
	}
	return f.Leave(n)
}

func (f Funcs) AfterTraverse(ns []nodes.Node) []nodes.Node {
	if f.After == nil {
		return nil
	}
	return f.After(ns)
}
