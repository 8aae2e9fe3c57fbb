package printers

import (
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// fixup says how a reprinted sub-node must be wrapped to keep the meaning
// of the surrounding original code.
type fixup uint8

const (
	noFixup fixup = iota
	fixupPrecLeft
	fixupPrecRight
	fixupPrecUnary
	fixupCallLhs
	fixupDerefLhs
	fixupStaticDerefLhs
	fixupNew
	fixupBracedName
	fixupVarBracedName
	fixupEncapsed
)

// fixupMap is keyed by node type, then sub-node name.
var fixupMap = func() map[string]map[string]fixup {
	ret := map[string]map[string]fixup{
		"Expr_Instanceof": {
			"expr":  fixupPrecUnary,
			"class": fixupNew,
		},
		"Expr_Ternary": {
			"cond": fixupPrecLeft,
			"else": fixupPrecRight,
		},
		"Expr_Yield": {
			"value": fixupPrecUnary,
		},
		"Expr_FuncCall": {
			"name": fixupCallLhs,
		},
		"Expr_StaticCall": {
			"class": fixupStaticDerefLhs,
		},
		"Expr_ArrayDimFetch": {
			"var": fixupDerefLhs,
		},
		"Expr_ClassConstFetch": {
			"class": fixupStaticDerefLhs,
			"name":  fixupBracedName,
		},
		"Expr_New": {
			"class": fixupNew,
		},
		"Expr_MethodCall": {
			"var":  fixupDerefLhs,
			"name": fixupBracedName,
		},
		"Expr_NullsafeMethodCall": {
			"var":  fixupDerefLhs,
			"name": fixupBracedName,
		},
		"Expr_StaticPropertyFetch": {
			"class": fixupStaticDerefLhs,
			"name":  fixupVarBracedName,
		},
		"Expr_PropertyFetch": {
			"var":  fixupDerefLhs,
			"name": fixupBracedName,
		},
		"Expr_NullsafePropertyFetch": {
			"var":  fixupDerefLhs,
			"name": fixupBracedName,
		},
		"Scalar_InterpolatedString": {
			"parts": fixupEncapsed,
		},
	}

	for _, kind := range nodes.BinaryOpKinds() {
		ret["Expr_BinaryOp_"+kind.Name()] = map[string]fixup{
			"left":  fixupPrecLeft,
			"right": fixupPrecRight,
		}
	}

	prefixOps := []string{
		"Expr_Clone",
		"Expr_BitwiseNot",
		"Expr_BooleanNot",
		"Expr_UnaryPlus",
		"Expr_UnaryMinus",
		"Expr_ErrorSuppress",
		"Expr_YieldFrom",
		"Expr_Print",
		"Expr_Include",
		"Expr_Assign",
		"Expr_AssignRef",
		"Expr_ArrowFunction",
		"Expr_Throw",
	}
	for _, kind := range nodes.CastKinds() {
		prefixOps = append(prefixOps, "Expr_Cast_"+kind.Name())
	}
	for _, kind := range nodes.AssignOpKinds() {
		prefixOps = append(prefixOps, "Expr_AssignOp_"+kind.Name())
	}
	for _, typ := range prefixOps {
		ret[typ] = map[string]fixup{
			"expr": fixupPrecUnary,
		}
	}

	return ret
}()

// removal describes the tokens dropped along with a removed sub-node.
// Whitespace as a kind strips only the adjacent whitespace.
type removal struct {
	left, right       tokens.Kind
	hasLeft, hasRight bool
}

var (
	stripBoth        = removal{left: tokens.Whitespace, right: tokens.Whitespace, hasLeft: true, hasRight: true}
	stripLeft        = removal{left: tokens.Whitespace, hasLeft: true}
	stripRight       = removal{right: tokens.Whitespace, hasRight: true}
	stripDoubleArrow = removal{right: tokens.DoubleArrow, hasRight: true}
	stripColon       = removal{left: ':', hasLeft: true}
	stripEquals      = removal{left: '=', hasLeft: true}
)

// keyed by "<type>-><sub-node>"
var removalMap = map[string]removal{
	"Expr_ArrayDimFetch->dim":        stripBoth,
	"ArrayItem->key":                 stripDoubleArrow,
	"Expr_ArrowFunction->returnType": stripColon,
	"Expr_Closure->returnType":       stripColon,
	"Expr_Exit->expr":                stripBoth,
	"Expr_Ternary->if":               stripBoth,
	"Expr_Yield->key":                stripDoubleArrow,
	"Expr_Yield->value":              stripBoth,
	"Param->default":                 stripEquals,
	"Param->type":                    stripRight,
	"Stmt_Break->num":                stripBoth,
	"Stmt_Catch->var":                stripLeft,
	"Stmt_ClassMethod->returnType":   stripColon,
	"Stmt_Class->extends":            {left: tokens.Extends, hasLeft: true},
	"Stmt_Continue->num":             stripBoth,
	"Stmt_Foreach->keyVar":           stripDoubleArrow,
	"Stmt_Function->returnType":      stripColon,
	"Stmt_If->else":                  stripLeft,
	"Stmt_Namespace->name":           stripLeft,
	"Stmt_Property->type":            stripRight,
	"PropertyItem->default":          stripEquals,
	"Stmt_Return->expr":              stripBoth,
	"StaticVar->default":             stripEquals,
	"Stmt_TryCatch->finally":         stripLeft,
}

// insertion describes where an added sub-node goes. With find set, the
// node is placed right after the next token of that kind, or right before
// it when before is true. Otherwise it goes at the current position.
type insertion struct {
	find        tokens.Kind
	hasFind     bool
	before      bool
	left, right string
}

var insertionMap = map[string]insertion{
	"Expr_ArrayDimFetch->dim":        {find: '[', hasFind: true},
	"ArrayItem->key":                 {right: " => "},
	"Expr_ArrowFunction->returnType": {find: ')', hasFind: true, left: ": "},
	"Expr_Closure->returnType":       {find: ')', hasFind: true, left: ": "},
	"Expr_Ternary->if":               {find: '?', hasFind: true, left: " ", right: " "},
	"Expr_Yield->key":                {find: tokens.Yield, hasFind: true, right: " => "},
	"Expr_Yield->value":              {find: tokens.Yield, hasFind: true, left: " "},
	"Param->type":                    {right: " "},
	"Param->default":                 {left: " = "},
	"Stmt_Break->num":                {find: tokens.Break, hasFind: true, left: " "},
	"Stmt_Catch->var":                {left: " "},
	"Stmt_ClassMethod->returnType":   {find: ')', hasFind: true, left: ": "},
	"Stmt_Class->extends":            {left: " extends "},
	"Stmt_Continue->num":             {find: tokens.Continue, hasFind: true, left: " "},
	"Stmt_Foreach->keyVar":           {find: tokens.As, hasFind: true, right: " => "},
	"Stmt_Function->returnType":      {find: ')', hasFind: true, left: ": "},
	"Stmt_If->else":                  {left: " "},
	"Stmt_Namespace->name":           {find: tokens.Namespace, hasFind: true, left: " "},
	"Stmt_Property->type":            {find: tokens.Variable, hasFind: true, before: true, right: " "},
	"PropertyItem->default":          {left: " = "},
	"Stmt_Return->expr":              {find: tokens.Return, hasFind: true, left: " "},
	"StaticVar->default":             {left: " = "},
	"Stmt_TryCatch->finally":         {left: " "},
}

// separators used when adding elements to a list
var listInsertionMap = map[string]string{
	"Stmt_Catch->types":      "|",
	"UnionType->types":       "|",
	"Stmt_If->elseifs":       " ",
	"Stmt_TryCatch->catches": " ",

	"Expr_Array->items":             ", ",
	"Expr_ArrowFunction->params":    ", ",
	"Expr_Closure->params":          ", ",
	"Expr_Closure->uses":            ", ",
	"Expr_FuncCall->args":           ", ",
	"Expr_Isset->vars":              ", ",
	"Expr_List->items":              ", ",
	"Expr_MethodCall->args":         ", ",
	"Expr_NullsafeMethodCall->args": ", ",
	"Expr_New->args":                ", ",
	"Expr_StaticCall->args":         ", ",
	"Stmt_ClassConst->consts":       ", ",
	"Stmt_ClassMethod->params":      ", ",
	"Stmt_Class->implements":        ", ",
	"Stmt_Const->consts":            ", ",
	"Stmt_Declare->declares":        ", ",
	"Stmt_Echo->exprs":              ", ",
	"Stmt_For->init":                ", ",
	"Stmt_For->cond":                ", ",
	"Stmt_For->loop":                ", ",
	"Stmt_Function->params":         ", ",
	"Stmt_Global->vars":             ", ",
	"Stmt_Interface->extends":       ", ",
	"Stmt_Property->props":          ", ",
	"Stmt_Static->vars":             ", ",
	"Stmt_Unset->vars":              ", ",
	"Stmt_Use->uses":                ", ",

	"Expr_Closure->stmts":     "\n",
	"Stmt_Block->stmts":       "\n",
	"Stmt_Case->stmts":        "\n",
	"Stmt_Catch->stmts":       "\n",
	"Stmt_Class->stmts":       "\n",
	"Stmt_ClassMethod->stmts": "\n",
	"Stmt_Declare->stmts":     "\n",
	"Stmt_Do->stmts":          "\n",
	"Stmt_ElseIf->stmts":      "\n",
	"Stmt_Else->stmts":        "\n",
	"Stmt_Finally->stmts":     "\n",
	"Stmt_Foreach->stmts":     "\n",
	"Stmt_For->stmts":         "\n",
	"Stmt_Function->stmts":    "\n",
	"Stmt_If->stmts":          "\n",
	"Stmt_Interface->stmts":   "\n",
	"Stmt_Namespace->stmts":   "\n",
	"Stmt_Switch->cases":      "\n",
	"Stmt_TryCatch->stmts":    "\n",
	"Stmt_While->stmts":       "\n",
	"File->stmts":             "\n",
}

// emptyListInsertion describes how the first elements go into a list that
// was empty in the original code.
type emptyListInsertion struct {
	find        tokens.Kind
	hasFind     bool
	left, right string
}

var emptyListInsertionMap = map[string]emptyListInsertion{
	"Expr_ArrowFunction->params":    {find: '(', hasFind: true},
	"Expr_Closure->uses":            {find: ')', hasFind: true, left: " use (", right: ")"},
	"Expr_Closure->params":          {find: '(', hasFind: true},
	"Expr_FuncCall->args":           {find: '(', hasFind: true},
	"Expr_MethodCall->args":         {find: '(', hasFind: true},
	"Expr_NullsafeMethodCall->args": {find: '(', hasFind: true},
	"Expr_New->args":                {find: '(', hasFind: true},
	"Expr_StaticCall->args":         {find: '(', hasFind: true},
	"Stmt_Class->implements":        {left: " implements "},
	"Stmt_ClassMethod->params":      {find: '(', hasFind: true},
	"Stmt_Interface->extends":       {left: " extends "},
	"Stmt_Function->params":         {find: '(', hasFind: true},
}

// modifierChange reprints a changed scalar sub-node and resumes copying
// the original code at the next token of kind find.
type modifierChange struct {
	print func(p *Printer, value any) string
	find  tokens.Kind
}

func printModifiers(p *Printer, value any) string {
	flags, _ := value.(int)
	return p.pModifiers(flags)
}

func printStatic(p *Printer, value any) string {
	static, _ := value.(bool)
	return p.pStatic(static)
}

var modifierChangeMap = map[string]modifierChange{
	"Stmt_ClassConst->flags":     {printModifiers, tokens.Const},
	"Stmt_ClassMethod->flags":    {printModifiers, tokens.Function},
	"Stmt_Class->flags":          {printModifiers, tokens.Class},
	"Stmt_Property->flags":       {printModifiers, tokens.Variable},
	"Param->flags":               {printModifiers, tokens.Variable},
	"Expr_Closure->static":       {printStatic, tokens.Function},
	"Expr_ArrowFunction->static": {printStatic, tokens.Fn},
}
