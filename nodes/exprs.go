package nodes

type Variable struct {
	expr
	// string for $name, Expr for ${expr} and $$name
	Name any `node:"name"`
}

func (*Variable) Type() string { return "Expr_Variable" }

// Ident returns the variable name when it is a plain string.
func (v *Variable) Ident() (string, bool) {
	s, ok := v.Name.(string)
	return s, ok
}

type Assign struct {
	expr
	Var  Expr `node:"var"`
	Expr Expr `node:"expr"`
}

func (*Assign) Type() string { return "Expr_Assign" }

type AssignRef struct {
	expr
	Var  Expr `node:"var"`
	Expr Expr `node:"expr"`
}

func (*AssignRef) Type() string { return "Expr_AssignRef" }

type AssignOp struct {
	expr
	Op   AssignOpKind
	Var  Expr `node:"var"`
	Expr Expr `node:"expr"`
}

func (a *AssignOp) Type() string { return "Expr_AssignOp_" + a.Op.Name() }

type BinaryOp struct {
	expr
	Op    BinaryOpKind
	Left  Expr `node:"left"`
	Right Expr `node:"right"`
}

func (b *BinaryOp) Type() string { return "Expr_BinaryOp_" + b.Op.Name() }

type BooleanNot struct {
	expr
	Expr Expr `node:"expr"`
}

func (*BooleanNot) Type() string { return "Expr_BooleanNot" }

type BitwiseNot struct {
	expr
	Expr Expr `node:"expr"`
}

func (*BitwiseNot) Type() string { return "Expr_BitwiseNot" }

type UnaryMinus struct {
	expr
	Expr Expr `node:"expr"`
}

func (*UnaryMinus) Type() string { return "Expr_UnaryMinus" }

type UnaryPlus struct {
	expr
	Expr Expr `node:"expr"`
}

func (*UnaryPlus) Type() string { return "Expr_UnaryPlus" }

type PreInc struct {
	expr
	Var Expr `node:"var"`
}

func (*PreInc) Type() string { return "Expr_PreInc" }

type PreDec struct {
	expr
	Var Expr `node:"var"`
}

func (*PreDec) Type() string { return "Expr_PreDec" }

type PostInc struct {
	expr
	Var Expr `node:"var"`
}

func (*PostInc) Type() string { return "Expr_PostInc" }

type PostDec struct {
	expr
	Var Expr `node:"var"`
}

func (*PostDec) Type() string { return "Expr_PostDec" }

type ErrorSuppress struct {
	expr
	Expr Expr `node:"expr"`
}

func (*ErrorSuppress) Type() string { return "Expr_ErrorSuppress" }

// kind attribute values of double casts
const (
	DoubleKindDouble = 1
	DoubleKindFloat  = 2
	DoubleKindReal   = 3
)

type Cast struct {
	expr
	Kind CastKind
	Expr Expr `node:"expr"`
}

func (c *Cast) Type() string { return "Expr_Cast_" + c.Kind.Name() }

type Clone struct {
	expr
	Expr Expr `node:"expr"`
}

func (*Clone) Type() string { return "Expr_Clone" }

type Print struct {
	expr
	Expr Expr `node:"expr"`
}

func (*Print) Type() string { return "Expr_Print" }

type Include struct {
	expr
	Expr        Expr        `node:"expr"`
	IncludeType IncludeKind `node:"type"`
}

func (*Include) Type() string { return "Expr_Include" }

type Yield struct {
	expr
	Key   Expr `node:"key"`
	Value Expr `node:"value"`
}

func (*Yield) Type() string { return "Expr_Yield" }

type YieldFrom struct {
	expr
	Expr Expr `node:"expr"`
}

func (*YieldFrom) Type() string { return "Expr_YieldFrom" }

type Throw struct {
	expr
	Expr Expr `node:"expr"`
}

func (*Throw) Type() string { return "Expr_Throw" }

type Instanceof struct {
	expr
	Expr  Expr `node:"expr"`
	Class Node `node:"class"`
}

func (*Instanceof) Type() string { return "Expr_Instanceof" }

// Ternary with a nil If is the short form a ?: b.
type Ternary struct {
	expr
	Cond Expr `node:"cond"`
	If   Expr `node:"if"`
	Else Expr `node:"else"`
}

func (*Ternary) Type() string { return "Expr_Ternary" }

type Isset struct {
	expr
	Vars []Expr `node:"vars"`
}

func (*Isset) Type() string { return "Expr_Isset" }

type Empty struct {
	expr
	Expr Expr `node:"expr"`
}

func (*Empty) Type() string { return "Expr_Empty" }

const (
	ExitKindExit = 1
	ExitKindDie  = 2
)

type Exit struct {
	expr
	Expr Expr `node:"expr"`
}

func (*Exit) Type() string { return "Expr_Exit" }

const (
	ArrayKindLong  = 1
	ArrayKindShort = 2
)

// ArrayExpr is an array literal. Empty elements are nil items.
type ArrayExpr struct {
	expr
	Items []*ArrayItem `node:"items"`
}

func (*ArrayExpr) Type() string { return "Expr_Array" }

const (
	ListKindList  = 1
	ListKindArray = 2
)

type List struct {
	expr
	Items []*ArrayItem `node:"items"`
}

func (*List) Type() string { return "Expr_List" }

type FuncCall struct {
	expr
	// *Name or Expr
	Name Node   `node:"name"`
	Args []*Arg `node:"args"`
}

func (*FuncCall) Type() string { return "Expr_FuncCall" }

type MethodCall struct {
	expr
	Var Expr `node:"var"`
	// *Identifier or Expr
	Name Node   `node:"name"`
	Args []*Arg `node:"args"`
}

func (*MethodCall) Type() string { return "Expr_MethodCall" }

type NullsafeMethodCall struct {
	expr
	Var  Expr   `node:"var"`
	Name Node   `node:"name"`
	Args []*Arg `node:"args"`
}

func (*NullsafeMethodCall) Type() string { return "Expr_NullsafeMethodCall" }

type StaticCall struct {
	expr
	// *Name or Expr
	Class Node   `node:"class"`
	Name  Node   `node:"name"`
	Args  []*Arg `node:"args"`
}

func (*StaticCall) Type() string { return "Expr_StaticCall" }

type PropertyFetch struct {
	expr
	Var  Expr `node:"var"`
	Name Node `node:"name"`
}

func (*PropertyFetch) Type() string { return "Expr_PropertyFetch" }

type NullsafePropertyFetch struct {
	expr
	Var  Expr `node:"var"`
	Name Node `node:"name"`
}

func (*NullsafePropertyFetch) Type() string { return "Expr_NullsafePropertyFetch" }

type StaticPropertyFetch struct {
	expr
	Class Node `node:"class"`
	// *VarLikeIdentifier or Expr
	Name Node `node:"name"`
}

func (*StaticPropertyFetch) Type() string { return "Expr_StaticPropertyFetch" }

type ClassConstFetch struct {
	expr
	Class Node `node:"class"`
	Name  Node `node:"name"`
}

func (*ClassConstFetch) Type() string { return "Expr_ClassConstFetch" }

type ConstFetch struct {
	expr
	Name *Name `node:"name"`
}

func (*ConstFetch) Type() string { return "Expr_ConstFetch" }

// ArrayDimFetch with a nil Dim is the append form $a[].
type ArrayDimFetch struct {
	expr
	Var Expr `node:"var"`
	Dim Expr `node:"dim"`
}

func (*ArrayDimFetch) Type() string { return "Expr_ArrayDimFetch" }

type New struct {
	expr
	// *Name or Expr
	Class Node   `node:"class"`
	Args  []*Arg `node:"args"`
}

func (*New) Type() string { return "Expr_New" }

type Closure struct {
	expr
	Static     bool          `node:"static"`
	ByRef      bool          `node:"byRef"`
	Params     []*Param      `node:"params"`
	Uses       []*ClosureUse `node:"uses"`
	ReturnType Node          `node:"returnType"`
	Stmts      []Stmt        `node:"stmts"`
}

func (*Closure) Type() string { return "Expr_Closure" }

type ArrowFunction struct {
	expr
	Static     bool     `node:"static"`
	ByRef      bool     `node:"byRef"`
	Params     []*Param `node:"params"`
	ReturnType Node     `node:"returnType"`
	Expr       Expr     `node:"expr"`
}

func (*ArrowFunction) Type() string { return "Expr_ArrowFunction" }

// Error is a placeholder for an expression that failed to parse.
type Error struct {
	expr
}

func (*Error) Type() string { return "Expr_Error" }
