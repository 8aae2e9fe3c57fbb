package pipelines

import (
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/traversers"
)

// RemoveCallsVisitor drops statements that only call the named function,
// like leftover var_dump calls.
type RemoveCallsVisitor struct {
	traversers.VisitorBase
	Function string
	Removed  int
}

func (r *RemoveCallsVisitor) LeaveNode(n nodes.Node) traversers.Action {
	stmt, ok := n.(*nodes.Expression)
	if !ok {
		return traversers.Continue
	}
	call, ok := stmt.Expr.(*nodes.FuncCall)
	if !ok {
		return traversers.Continue
	}
	name, ok := call.Name.(*nodes.Name)
	if !ok || !strings.EqualFold(name.Last(), r.Function) {
		return traversers.Continue
	}
	r.Removed++
	return traversers.Remove
}
