package pipelines

import (
	"fmt"
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/traversers"
)

type RenameKind string

const (
	RenameVariable RenameKind = "variable"
	RenameFunction RenameKind = "function"
	RenameClass    RenameKind = "class"
	RenameConstant RenameKind = "constant"
)

// Rename is a rename rule as written in config files.
type Rename struct {
	Kind RenameKind `json:"kind"`
	From string     `json:"from"`
	To   string     `json:"to"`
}

func (r Rename) validate() error {
	switch r.Kind {
	case RenameVariable, RenameFunction, RenameClass, RenameConstant:
	default:
		return fmt.Errorf("unknown rename kind %q", r.Kind)
	}
	if r.From == "" || r.To == "" {
		return fmt.Errorf("empty name in %s rename", r.Kind)
	}
	if r.Kind == RenameVariable && (strings.HasPrefix(r.From, "$") || strings.HasPrefix(r.To, "$")) {
		return fmt.Errorf("variable names are given without $: %s -> %s", r.From, r.To)
	}
	return nil
}

func (r Rename) Rule() Rule {
	return Rule{
		Name: fmt.Sprintf("rename %s %s to %s", r.Kind, r.From, r.To),
		New: func() traversers.Visitor {
			return &RenameVisitor{Rename: r}
		},
	}
}

// RenameVisitor renames variables, functions, classes or constants in
// place. Function and class names match case-insensitively, as in PHP.
// Qualified names match on their last segment.
type RenameVisitor struct {
	traversers.VisitorBase
	Rename  Rename
	Renamed int
}

func (r *RenameVisitor) EnterNode(n nodes.Node) traversers.Action {
	switch n := n.(type) {

	case *nodes.Variable:
		if r.Rename.Kind == RenameVariable {
			if name, ok := n.Name.(string); ok && name == r.Rename.From {
				n.Name = r.Rename.To
				r.Renamed++
			}
		}

	case *nodes.Function:
		if r.Rename.Kind == RenameFunction {
			r.identifier(n.Name, false)
		}
		r.className(n.ReturnType)
	case *nodes.ClassMethod:
		r.className(n.ReturnType)
	case *nodes.FuncCall:
		if r.Rename.Kind == RenameFunction {
			r.name(n.Name, false)
		}

	case *nodes.Class:
		if r.Rename.Kind == RenameClass {
			r.identifier(n.Name, false)
			r.name(n.Extends, false)
			for _, name := range n.Implements {
				r.name(name, false)
			}
		}
	case *nodes.New:
		r.className(n.Class)
	case *nodes.StaticCall:
		r.className(n.Class)
	case *nodes.StaticPropertyFetch:
		r.className(n.Class)
	case *nodes.ClassConstFetch:
		r.className(n.Class)
	case *nodes.Instanceof:
		r.className(n.Class)
	case *nodes.Param:
		r.className(n.TypeNode)
	case *nodes.Property:
		r.className(n.TypeNode)
	case *nodes.Catch:
		for _, name := range n.Types {
			r.className(name)
		}

	case *nodes.ConstFetch:
		if r.Rename.Kind == RenameConstant {
			r.name(n.Name, true)
		}
	case *nodes.ConstStmt:
		if r.Rename.Kind == RenameConstant {
			for _, c := range n.Consts {
				r.identifier(c.Name, true)
			}
		}

	}
	return traversers.Continue
}

func (r *RenameVisitor) className(n nodes.Node) {
	if r.Rename.Kind != RenameClass {
		return
	}
	switch n := n.(type) {
	case *nodes.Name:
		r.name(n, false)
	case *nodes.NullableType:
		r.className(n.TypeNode)
	case *nodes.UnionType:
		for _, t := range n.Types {
			r.className(t)
		}
	}
}

func (r *RenameVisitor) matches(name string, caseSensitive bool) bool {
	if caseSensitive {
		return name == r.Rename.From
	}
	return strings.EqualFold(name, r.Rename.From)
}

func (r *RenameVisitor) identifier(id *nodes.Identifier, caseSensitive bool) {
	if id != nil && r.matches(id.Name, caseSensitive) {
		id.Name = r.Rename.To
		r.Renamed++
	}
}

func (r *RenameVisitor) name(n nodes.Node, caseSensitive bool) {
	name, ok := n.(*nodes.Name)
	if !ok || name == nil || !r.matches(name.Last(), caseSensitive) {
		return
	}
	if i := strings.LastIndexByte(name.Name, '\\'); i >= 0 {
		name.Name = name.Name[:i+1] + r.Rename.To
	} else {
		name.Name = r.Rename.To
	}
	r.Renamed++
}
