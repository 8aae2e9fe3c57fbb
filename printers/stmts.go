package printers

import (
	"strings"

	"github.com/reusee/phpedit/nodes"
)

func (p *Printer) block(stmts []nodes.Stmt) string {
	return p.pStmts(stmts, true) + p.nl + "}"
}

func (p *Printer) printStmt(n nodes.Stmt) string {
	switch n := n.(type) {

	case *nodes.Expression:
		return p.p(n.Expr) + ";"
	case *nodes.Echo:
		return "echo " + p.pCommaSeparated(list(n.Exprs)) + ";"
	case *nodes.Nop:
		return ""
	case *nodes.InlineHTML:
		newline := p.options.Newline
		if v, ok := n.Attribute(nodes.HasLeadingNewlineKey); ok && v == false {
			newline = ""
		}
		return "?>" + newline + n.Value + "<?php "
	case *nodes.HaltCompiler:
		return "__halt_compiler();" + n.Remaining
	case *nodes.Block:
		return "{" + p.block(n.Stmts)

	case *nodes.If:
		ret := "if (" + p.p(n.Cond) + ") {" + p.block(n.Stmts)
		if len(n.ElseIfs) > 0 {
			ret += " " + p.pImplode(list(n.ElseIfs), " ")
		}
		if n.Else != nil {
			ret += " " + p.p(n.Else)
		}
		return ret
	case *nodes.ElseIf:
		return "elseif (" + p.p(n.Cond) + ") {" + p.block(n.Stmts)
	case *nodes.Else:
		return "else {" + p.block(n.Stmts)

	case *nodes.While:
		return "while (" + p.p(n.Cond) + ") {" + p.block(n.Stmts)
	case *nodes.Do:
		return "do {" + p.block(n.Stmts) + " while (" + p.p(n.Cond) + ");"
	case *nodes.For:
		ret := "for (" + p.pCommaSeparated(list(n.Init)) + ";"
		if len(n.Cond) > 0 {
			ret += " "
		}
		ret += p.pCommaSeparated(list(n.Cond)) + ";"
		if len(n.Loop) > 0 {
			ret += " "
		}
		return ret + p.pCommaSeparated(list(n.Loop)) + ") {" + p.block(n.Stmts)
	case *nodes.Foreach:
		ret := "foreach (" + p.p(n.Expr) + " as "
		if n.KeyVar != nil {
			ret += p.p(n.KeyVar) + " => "
		}
		return ret + byRef(n.ByRef) + p.p(n.ValueVar) + ") {" + p.block(n.Stmts)
	case *nodes.Switch:
		return "switch (" + p.p(n.Cond) + ") {" + p.pStmts(stmtList(n.Cases), true) + p.nl + "}"
	case *nodes.Case:
		ret := "default"
		if n.Cond != nil {
			ret = "case " + p.p(n.Cond)
		}
		return ret + ":" + p.pStmts(n.Stmts, true)
	case *nodes.Break:
		return "break" + p.optionalExpr(n.Num) + ";"
	case *nodes.Continue:
		return "continue" + p.optionalExpr(n.Num) + ";"
	case *nodes.Return:
		return "return" + p.optionalExpr(n.Expr) + ";"

	case *nodes.TryCatch:
		ret := "try {" + p.block(n.Stmts)
		if len(n.Catches) > 0 {
			ret += " " + p.pImplode(list(n.Catches), " ")
		}
		if n.Finally != nil {
			ret += " " + p.p(n.Finally)
		}
		return ret
	case *nodes.Catch:
		ret := "catch (" + p.pImplode(list(n.Types), "|")
		if n.Var != nil {
			ret += " " + p.p(n.Var)
		}
		return ret + ") {" + p.block(n.Stmts)
	case *nodes.Finally:
		return "finally {" + p.block(n.Stmts)

	case *nodes.Function:
		return "function " + byRef(n.ByRef) + n.Name.Name +
			"(" + p.pMaybeMultiline(list(n.Params), p.options.supportsTrailingCommaInParamList()) + ")" +
			p.returnType(n.ReturnType) +
			p.nl + "{" + p.block(n.Stmts)

	case *nodes.Class:
		ret := p.pModifiers(n.Flags) + "class"
		if n.Name != nil {
			ret += " " + n.Name.Name
		}
		if n.Extends != nil {
			ret += " extends " + p.p(n.Extends)
		}
		if len(n.Implements) > 0 {
			ret += " implements " + p.pCommaSeparated(list(n.Implements))
		}
		return ret + p.nl + "{" + p.block(n.Stmts)

	case *nodes.Interface:
		ret := "interface " + n.Name.Name
		if len(n.Extends) > 0 {
			ret += " extends " + p.pCommaSeparated(list(n.Extends))
		}
		return ret + p.nl + "{" + p.block(n.Stmts)

	case *nodes.ClassMethod:
		ret := p.pModifiers(n.Flags) + "function " + byRef(n.ByRef) + n.Name.Name +
			"(" + p.pMaybeMultiline(list(n.Params), p.options.supportsTrailingCommaInParamList()) + ")" +
			p.returnType(n.ReturnType)
		if n.Stmts == nil {
			return ret + ";"
		}
		return ret + p.nl + "{" + p.block(n.Stmts)

	case *nodes.Property:
		ret := "var "
		if n.Flags != 0 {
			ret = p.pModifiers(n.Flags)
		}
		if n.TypeNode != nil {
			ret += p.p(n.TypeNode) + " "
		}
		return ret + p.pCommaSeparated(list(n.Props)) + ";"

	case *nodes.ClassConst:
		return p.pModifiers(n.Flags) + "const " + p.pCommaSeparated(list(n.Consts)) + ";"
	case *nodes.ConstStmt:
		return "const " + p.pCommaSeparated(list(n.Consts)) + ";"

	case *nodes.Namespace:
		if p.canUseSemicolonNamespaces {
			return "namespace " + p.p(n.Name) + ";" + p.nl + p.pStmts(n.Stmts, false)
		}
		ret := "namespace"
		if n.Name != nil {
			ret += " " + p.p(n.Name)
		}
		return ret + " {" + p.block(n.Stmts)

	case *nodes.Use:
		return "use " + useType(n.UseType) + p.pCommaSeparated(list(n.Uses)) + ";"
	case *nodes.Global:
		return "global " + p.pCommaSeparated(list(n.Vars)) + ";"
	case *nodes.Static:
		return "static " + p.pCommaSeparated(list(n.Vars)) + ";"
	case *nodes.Unset:
		return "unset(" + p.pCommaSeparated(list(n.Vars)) + ");"

	case *nodes.Declare:
		ret := "declare (" + p.pCommaSeparated(list(n.Declares)) + ")"
		if n.Stmts == nil {
			return ret + ";"
		}
		return ret + " {" + p.block(n.Stmts)
	}

	p.fail("unknown statement type %s", n.Type())
	return ""
}

func (p *Printer) optionalExpr(n nodes.Expr) string {
	if n == nil {
		return ""
	}
	return " " + p.p(n)
}

func (p *Printer) returnType(n nodes.Node) string {
	if n == nil {
		return ""
	}
	return ": " + p.p(n)
}

func stmtList[T nodes.Stmt](xs []T) []nodes.Stmt {
	ret := make([]nodes.Stmt, len(xs))
	for i, x := range xs {
		ret[i] = x
	}
	return ret
}

// containsEndLabel reports whether s has a line that a doc string reader
// would take as the closing label. atStart and atEnd tell whether s begins
// or ends the doc string body.
func containsEndLabel(s string, label string, atStart, atEnd bool) bool {
	for i := 0; ; {
		idx := strings.Index(s[i:], label)
		if idx < 0 {
			return false
		}
		idx += i
		i = idx + 1

		// only spaces and tabs between line start and label
		j := idx
		for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t') {
			j--
		}
		if j == 0 {
			if !atStart {
				continue
			}
		} else if s[j-1] != '\n' && s[j-1] != '\r' {
			continue
		}

		end := idx + len(label)
		if end == len(s) {
			if atEnd {
				return true
			}
			continue
		}
		if !isLabelChar(s[end]) && s[end] != '_' {
			return true
		}
	}
}
