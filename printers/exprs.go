package printers

import (
	"github.com/reusee/phpedit/nodes"
)

// print renders n from scratch. Sub-nodes still go through pPrec, so the
// children of a re-rendered node may keep their original formatting.
func (p *Printer) print(n nodes.Node, precedence, lhsPrecedence int) string {
	switch n := n.(type) {

	case nodes.Stmt:
		return p.printStmt(n)

	case *nodes.Variable:
		if name, ok := n.Name.(nodes.Node); ok {
			return "${" + p.p(name) + "}"
		}
		name, _ := n.Name.(string)
		return "$" + name

	case *nodes.Assign:
		return p.pPrefixOp(n.Type(), p.p(n.Var)+" = ", n.Expr, precedence, lhsPrecedence)
	case *nodes.AssignRef:
		return p.pPrefixOp(n.Type(), p.p(n.Var)+" =& ", n.Expr, precedence, lhsPrecedence)
	case *nodes.AssignOp:
		return p.pPrefixOp(n.Type(), p.p(n.Var)+" "+n.Op.Sigil()+" ", n.Expr, precedence, lhsPrecedence)

	case *nodes.BinaryOp:
		return p.pInfixOp(n.Type(), n.Left, " "+n.Op.Sigil()+" ", n.Right, precedence, lhsPrecedence)

	case *nodes.BooleanNot:
		return p.pPrefixOp(n.Type(), "!", n.Expr, precedence, lhsPrecedence)
	case *nodes.BitwiseNot:
		return p.pPrefixOp(n.Type(), "~", n.Expr, precedence, lhsPrecedence)
	case *nodes.UnaryMinus:
		return p.pPrefixOp(n.Type(), "-", n.Expr, precedence, lhsPrecedence)
	case *nodes.UnaryPlus:
		return p.pPrefixOp(n.Type(), "+", n.Expr, precedence, lhsPrecedence)
	case *nodes.ErrorSuppress:
		return p.pPrefixOp(n.Type(), "@", n.Expr, precedence, lhsPrecedence)
	case *nodes.Clone:
		return p.pPrefixOp(n.Type(), "clone ", n.Expr, precedence, lhsPrecedence)
	case *nodes.Print:
		return p.pPrefixOp(n.Type(), "print ", n.Expr, precedence, lhsPrecedence)
	case *nodes.Include:
		return p.pPrefixOp(n.Type(), n.IncludeType.Sigil()+" ", n.Expr, precedence, lhsPrecedence)
	case *nodes.YieldFrom:
		return p.pPrefixOp(n.Type(), "yield from ", n.Expr, precedence, lhsPrecedence)
	case *nodes.Throw:
		return p.pPrefixOp(n.Type(), "throw ", n.Expr, precedence, lhsPrecedence)
	case *nodes.Cast:
		return p.pPrefixOp(n.Type(), p.castString(n)+" ", n.Expr, precedence, lhsPrecedence)

	case *nodes.PreInc:
		return "++" + p.p(n.Var)
	case *nodes.PreDec:
		return "--" + p.p(n.Var)
	case *nodes.PostInc:
		return p.p(n.Var) + "++"
	case *nodes.PostDec:
		return p.p(n.Var) + "--"

	case *nodes.Yield:
		if n.Value == nil {
			if precedenceOf(n.Type()).prec >= lhsPrecedence {
				return "(yield)"
			}
			return "yield"
		}
		op := "yield "
		if n.Key != nil {
			op += p.p(n.Key) + " => "
		}
		return p.pPrefixOp(n.Type(), op, n.Value, precedence, lhsPrecedence)

	case *nodes.Instanceof:
		return p.pPostfixOp(n.Type(), n.Expr, " instanceof "+p.pNewOperand(n.Class), precedence, lhsPrecedence)

	case *nodes.Ternary:
		// the part between ? and : never needs parentheses
		op := " ?"
		if n.If != nil {
			op += " " + p.p(n.If) + " "
		}
		return p.pInfixOp(n.Type(), n.Cond, op+": ", n.Else, precedence, lhsPrecedence)

	case *nodes.Isset:
		return "isset(" + p.pCommaSeparated(list(n.Vars)) + ")"
	case *nodes.Empty:
		return "empty(" + p.p(n.Expr) + ")"
	case *nodes.Exit:
		ret := "die"
		if n.Attributes().Int(nodes.KindKey) == nodes.ExitKindExit {
			ret = "exit"
		}
		if n.Expr != nil {
			ret += "(" + p.p(n.Expr) + ")"
		}
		return ret

	case *nodes.ArrayExpr:
		kind := n.Attributes().Int(nodes.KindKey)
		if kind < 0 {
			kind = nodes.ArrayKindLong
			if p.options.ShortArraySyntax {
				kind = nodes.ArrayKindShort
			}
		}
		if kind == nodes.ArrayKindShort {
			return "[" + p.pMaybeMultiline(list(n.Items), true) + "]"
		}
		return "array(" + p.pMaybeMultiline(list(n.Items), true) + ")"

	case *nodes.List:
		kind := n.Attributes().Int(nodes.KindKey)
		if kind < 0 {
			kind = nodes.ListKindList
			if p.options.supportsShortArrayDestructuring() {
				kind = nodes.ListKindArray
			}
		}
		if kind == nodes.ListKindArray {
			return "[" + p.pMaybeMultiline(list(n.Items), true) + "]"
		}
		return "list(" + p.pMaybeMultiline(list(n.Items), true) + ")"

	case *nodes.FuncCall:
		return p.pCallLhs(n.Name) + "(" + p.pMaybeMultiline(list(n.Args), false) + ")"
	case *nodes.MethodCall:
		return p.pDereferenceLhs(n.Var) + "->" + p.pObjectProperty(n.Name) +
			"(" + p.pMaybeMultiline(list(n.Args), false) + ")"
	case *nodes.NullsafeMethodCall:
		p.requireNullsafe()
		return p.pDereferenceLhs(n.Var) + "?->" + p.pObjectProperty(n.Name) +
			"(" + p.pMaybeMultiline(list(n.Args), false) + ")"
	case *nodes.StaticCall:
		var name string
		switch nameNode := n.Name.(type) {
		case *nodes.Variable:
			name = p.p(nameNode)
		case nodes.Expr:
			name = "{" + p.p(nameNode) + "}"
		default:
			name = p.p(nameNode)
		}
		return p.pStaticDereferenceLhs(n.Class) + "::" + name +
			"(" + p.pMaybeMultiline(list(n.Args), false) + ")"

	case *nodes.PropertyFetch:
		return p.pDereferenceLhs(n.Var) + "->" + p.pObjectProperty(n.Name)
	case *nodes.NullsafePropertyFetch:
		p.requireNullsafe()
		return p.pDereferenceLhs(n.Var) + "?->" + p.pObjectProperty(n.Name)
	case *nodes.StaticPropertyFetch:
		if ident, ok := n.Name.(*nodes.VarLikeIdentifier); ok {
			return p.pStaticDereferenceLhs(n.Class) + "::$" + ident.Name
		}
		return p.pStaticDereferenceLhs(n.Class) + "::$" + p.pObjectProperty(n.Name)
	case *nodes.ClassConstFetch:
		return p.pStaticDereferenceLhs(n.Class) + "::" + p.p(n.Name)
	case *nodes.ConstFetch:
		return p.p(n.Name)
	case *nodes.ArrayDimFetch:
		dim := ""
		if n.Dim != nil {
			dim = p.p(n.Dim)
		}
		return p.pDereferenceLhs(n.Var) + "[" + dim + "]"

	case *nodes.New:
		return "new " + p.pNewOperand(n.Class) + "(" + p.pMaybeMultiline(list(n.Args), false) + ")"

	case *nodes.Closure:
		ret := p.pStatic(n.Static) + "function " + byRef(n.ByRef) +
			"(" + p.pMaybeMultiline(list(n.Params), p.options.supportsTrailingCommaInParamList()) + ")"
		if len(n.Uses) > 0 {
			ret += " use (" + p.pCommaSeparated(list(n.Uses)) + ")"
		}
		if n.ReturnType != nil {
			ret += ": " + p.p(n.ReturnType)
		}
		return ret + " {" + p.pStmts(n.Stmts, true) + p.nl + "}"

	case *nodes.ArrowFunction:
		op := p.pStatic(n.Static) + "fn" + byRef(n.ByRef) +
			"(" + p.pMaybeMultiline(list(n.Params), p.options.supportsTrailingCommaInParamList()) + ")"
		if n.ReturnType != nil {
			op += ": " + p.p(n.ReturnType)
		}
		return p.pPrefixOp(n.Type(), op+" => ", n.Expr, precedence, lhsPrecedence)

	case *nodes.Error:
		panic(printError{ErrErrorNode})

	case *nodes.Int:
		return p.printInt(n)
	case *nodes.Float:
		return printFloat(n.Value)
	case *nodes.String:
		return p.printString(n)
	case *nodes.InterpolatedString:
		return p.printInterpolatedString(n)
	case *nodes.MagicConst:
		return n.Kind.Sigil()

	case *nodes.Param:
		ret := p.pModifiers(n.Flags)
		if n.TypeNode != nil {
			ret += p.p(n.TypeNode) + " "
		}
		ret += byRef(n.ByRef)
		if n.Variadic {
			ret += "..."
		}
		ret += p.p(n.Var)
		if n.Default != nil {
			ret += " = " + p.p(n.Default)
		}
		return ret

	case *nodes.Arg:
		ret := ""
		if n.Name != nil {
			ret = n.Name.Name + ": "
		}
		ret += byRef(n.ByRef)
		if n.Unpack {
			ret += "..."
		}
		return ret + p.p(n.Value)

	case *nodes.ArrayItem:
		ret := ""
		if n.Key != nil {
			ret = p.p(n.Key) + " => "
		}
		ret += byRef(n.ByRef)
		if n.Unpack {
			ret += "..."
		}
		return ret + p.p(n.Value)

	case *nodes.Const:
		return n.Name.Name + " = " + p.p(n.Value)
	case *nodes.ClosureUse:
		return byRef(n.ByRef) + p.p(n.Var)
	case *nodes.PropertyItem:
		ret := p.p(n.Name)
		if n.Default != nil {
			ret += " = " + p.p(n.Default)
		}
		return ret
	case *nodes.StaticVar:
		ret := p.p(n.Var)
		if n.Default != nil {
			ret += " = " + p.p(n.Default)
		}
		return ret
	case *nodes.UseItem:
		ret := useType(n.UseType) + p.p(n.Name)
		if n.Alias != nil {
			ret += " as " + n.Alias.Name
		}
		return ret
	case *nodes.DeclareItem:
		return n.Key.Name + "=" + p.p(n.Value)

	case *nodes.Name:
		return n.CodeString()
	case *nodes.Identifier:
		return n.Name
	case *nodes.VarLikeIdentifier:
		return "$" + n.Name
	case *nodes.NullableType:
		return "?" + p.p(n.TypeNode)
	case *nodes.UnionType:
		return p.pImplode(n.Types, "|")

	case *nodes.InterpolatedStringPart:
		p.fail("interpolated string parts can not be printed on their own")
	}

	p.fail("unknown node type %s", n.Type())
	return ""
}

func byRef(b bool) string {
	if b {
		return "&"
	}
	return ""
}

func useType(kind nodes.UseKind) string {
	switch kind {
	case nodes.UseFunction:
		return "function "
	case nodes.UseConstant:
		return "const "
	}
	return ""
}

func (p *Printer) requireNullsafe() {
	if !p.options.supportsNullsafe() {
		p.fail("nullsafe operator for PHP %s: %w", p.options.version(), ErrUnsupported)
	}
}

func (p *Printer) castString(n *nodes.Cast) string {
	switch n.Kind {
	case nodes.CastInt:
		return "(int)"
	case nodes.CastDouble:
		switch n.Attributes().Int(nodes.KindKey) {
		case nodes.DoubleKindDouble:
			return "(double)"
		case nodes.DoubleKindFloat:
			return "(float)"
		case nodes.DoubleKindReal:
			return "(real)"
		}
		if p.options.prefersFloatCast() {
			return "(float)"
		}
		return "(double)"
	case nodes.CastString:
		return "(string)"
	case nodes.CastArray:
		return "(array)"
	case nodes.CastObject:
		return "(object)"
	case nodes.CastBool:
		return "(bool)"
	case nodes.CastUnset:
		return "(unset)"
	}
	p.fail("unknown cast %s", n.Type())
	return ""
}

func (p *Printer) pObjectProperty(n nodes.Node) string {
	if _, ok := n.(nodes.Expr); ok {
		return "{" + p.p(n) + "}"
	}
	return p.p(n)
}

func (p *Printer) pCallLhs(n nodes.Node) string {
	if callLhsRequiresParens(n) {
		return "(" + p.p(n) + ")"
	}
	return p.p(n)
}

func (p *Printer) pDereferenceLhs(n nodes.Node) string {
	if dereferenceLhsRequiresParens(n) {
		return "(" + p.p(n) + ")"
	}
	return p.p(n)
}

func (p *Printer) pStaticDereferenceLhs(n nodes.Node) string {
	if staticDereferenceLhsRequiresParens(n) {
		return "(" + p.p(n) + ")"
	}
	return p.p(n)
}

func (p *Printer) pNewOperand(n nodes.Node) string {
	if newOperandRequiresParens(n) {
		return "(" + p.p(n) + ")"
	}
	return p.p(n)
}
