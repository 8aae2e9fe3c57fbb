package traversers

import "github.com/reusee/phpedit/nodes"

type actionKind uint8

const (
	actionContinue actionKind = iota
	actionReplace
	actionSkipChildren
	actionSkipSubtree
	actionStop
	actionRemove
	actionReplaceWithNull
	actionSplice
)

var actionNames = [...]string{
	actionContinue:        "Continue",
	actionReplace:         "Replace",
	actionSkipChildren:    "SkipChildren",
	actionSkipSubtree:     "SkipSubtree",
	actionStop:            "Stop",
	actionRemove:          "Remove",
	actionReplaceWithNull: "ReplaceWithNull",
	actionSplice:          "Splice",
}

// Action tells the traverser what to do after a visitor saw a node.
// The zero Action is Continue.
type Action struct {
	kind  actionKind
	node  nodes.Node
	nodes []nodes.Node
}

var (
	// Continue leaves the node in place and descends into it.
	Continue = Action{}
	// SkipChildren does not descend into the node. Later visitors still
	// see it.
	SkipChildren = Action{kind: actionSkipChildren}
	// SkipSubtree hides the node and its children from all later visitors.
	SkipSubtree = Action{kind: actionSkipSubtree}
	// Stop ends the traversal. LeaveNode is not called for pending nodes.
	Stop = Action{kind: actionStop}
	// Remove drops the node from the enclosing list.
	Remove = Action{kind: actionRemove}
	// ReplaceWithNull clears a single-node slot.
	ReplaceWithNull = Action{kind: actionReplaceWithNull}
)

func Replace(n nodes.Node) Action {
	return Action{
		kind: actionReplace,
		node: n,
	}
}

// Splice replaces the node with ns in the enclosing list.
func Splice(ns ...nodes.Node) Action {
	if ns == nil {
		ns = []nodes.Node{}
	}
	return Action{
		kind:  actionSplice,
		nodes: ns,
	}
}

func (a Action) String() string {
	return actionNames[a.kind]
}

func (a Action) IsContinue() bool {
	return a.kind == actionContinue
}

// Node returns the replacement of a Replace action.
func (a Action) Node() nodes.Node {
	return a.node
}

// Nodes returns the replacement list of a Splice action.
func (a Action) Nodes() []nodes.Node {
	return a.nodes
}
