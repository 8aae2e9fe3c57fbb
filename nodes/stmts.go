package nodes

type Echo struct {
	stmt
	Exprs []Expr `node:"exprs"`
}

func (*Echo) Type() string { return "Stmt_Echo" }

// Expression is an expression used as a statement.
type Expression struct {
	stmt
	Expr Expr `node:"expr"`
}

func (*Expression) Type() string { return "Stmt_Expression" }

type If struct {
	stmt
	Cond    Expr      `node:"cond"`
	Stmts   []Stmt    `node:"stmts"`
	ElseIfs []*ElseIf `node:"elseifs"`
	Else    *Else     `node:"else"`
}

func (*If) Type() string { return "Stmt_If" }

type ElseIf struct {
	stmt
	Cond  Expr   `node:"cond"`
	Stmts []Stmt `node:"stmts"`
}

func (*ElseIf) Type() string { return "Stmt_ElseIf" }

type Else struct {
	stmt
	Stmts []Stmt `node:"stmts"`
}

func (*Else) Type() string { return "Stmt_Else" }

type While struct {
	stmt
	Cond  Expr   `node:"cond"`
	Stmts []Stmt `node:"stmts"`
}

func (*While) Type() string { return "Stmt_While" }

type Do struct {
	stmt
	Stmts []Stmt `node:"stmts"`
	Cond  Expr   `node:"cond"`
}

func (*Do) Type() string { return "Stmt_Do" }

type For struct {
	stmt
	Init  []Expr `node:"init"`
	Cond  []Expr `node:"cond"`
	Loop  []Expr `node:"loop"`
	Stmts []Stmt `node:"stmts"`
}

func (*For) Type() string { return "Stmt_For" }

type Foreach struct {
	stmt
	Expr     Expr   `node:"expr"`
	KeyVar   Expr   `node:"keyVar"`
	ByRef    bool   `node:"byRef"`
	ValueVar Expr   `node:"valueVar"`
	Stmts    []Stmt `node:"stmts"`
}

func (*Foreach) Type() string { return "Stmt_Foreach" }

type Switch struct {
	stmt
	Cond  Expr    `node:"cond"`
	Cases []*Case `node:"cases"`
}

func (*Switch) Type() string { return "Stmt_Switch" }

// Case with a nil Cond is the default case.
type Case struct {
	stmt
	Cond  Expr   `node:"cond"`
	Stmts []Stmt `node:"stmts"`
}

func (*Case) Type() string { return "Stmt_Case" }

type Break struct {
	stmt
	Num Expr `node:"num"`
}

func (*Break) Type() string { return "Stmt_Break" }

type Continue struct {
	stmt
	Num Expr `node:"num"`
}

func (*Continue) Type() string { return "Stmt_Continue" }

type Return struct {
	stmt
	Expr Expr `node:"expr"`
}

func (*Return) Type() string { return "Stmt_Return" }

type Function struct {
	stmt
	ByRef      bool        `node:"byRef"`
	Name       *Identifier `node:"name"`
	Params     []*Param    `node:"params"`
	ReturnType Node        `node:"returnType"`
	Stmts      []Stmt      `node:"stmts"`
}

func (*Function) Type() string { return "Stmt_Function" }

type Class struct {
	stmt
	Flags      int         `node:"flags"`
	Name       *Identifier `node:"name"`
	Extends    *Name       `node:"extends"`
	Implements []*Name     `node:"implements"`
	Stmts      []Stmt      `node:"stmts"`
}

func (*Class) Type() string { return "Stmt_Class" }

func (c *Class) IsAbstract() bool {
	return c.Flags&ModifierAbstract != 0
}

func (c *Class) IsFinal() bool {
	return c.Flags&ModifierFinal != 0
}

func (c *Class) Methods() []*ClassMethod {
	var ret []*ClassMethod
	for _, stmt := range c.Stmts {
		if m, ok := stmt.(*ClassMethod); ok {
			ret = append(ret, m)
		}
	}
	return ret
}

type Interface struct {
	stmt
	Name    *Identifier `node:"name"`
	Extends []*Name     `node:"extends"`
	Stmts   []Stmt      `node:"stmts"`
}

func (*Interface) Type() string { return "Stmt_Interface" }

// ClassMethod with nil Stmts has no body.
type ClassMethod struct {
	stmt
	Flags      int         `node:"flags"`
	ByRef      bool        `node:"byRef"`
	Name       *Identifier `node:"name"`
	Params     []*Param    `node:"params"`
	ReturnType Node        `node:"returnType"`
	Stmts      []Stmt      `node:"stmts"`
}

func (*ClassMethod) Type() string { return "Stmt_ClassMethod" }

func (m *ClassMethod) IsStatic() bool {
	return m.Flags&ModifierStatic != 0
}

func (m *ClassMethod) IsMagic() bool {
	switch m.Name.LowerString() {
	case "__construct", "__destruct", "__call", "__callstatic", "__get", "__set",
		"__isset", "__unset", "__sleep", "__wakeup", "__tostring", "__set_state",
		"__clone", "__invoke", "__debuginfo", "__serialize", "__unserialize":
		return true
	}
	return false
}

type Property struct {
	stmt
	Flags    int             `node:"flags"`
	TypeNode Node            `node:"type"`
	Props    []*PropertyItem `node:"props"`
}

func (*Property) Type() string { return "Stmt_Property" }

type ClassConst struct {
	stmt
	Flags  int      `node:"flags"`
	Consts []*Const `node:"consts"`
}

func (*ClassConst) Type() string { return "Stmt_ClassConst" }

type ConstStmt struct {
	stmt
	Consts []*Const `node:"consts"`
}

func (*ConstStmt) Type() string { return "Stmt_Const" }

const (
	NamespaceKindSemicolon = 1
	NamespaceKindBraced    = 2
)

type Namespace struct {
	stmt
	Name  *Name  `node:"name"`
	Stmts []Stmt `node:"stmts"`
}

func (*Namespace) Type() string { return "Stmt_Namespace" }

type Use struct {
	stmt
	UseType UseKind    `node:"type"`
	Uses    []*UseItem `node:"uses"`
}

func (*Use) Type() string { return "Stmt_Use" }

type Global struct {
	stmt
	Vars []Expr `node:"vars"`
}

func (*Global) Type() string { return "Stmt_Global" }

type Static struct {
	stmt
	Vars []*StaticVar `node:"vars"`
}

func (*Static) Type() string { return "Stmt_Static" }

type Unset struct {
	stmt
	Vars []Expr `node:"vars"`
}

func (*Unset) Type() string { return "Stmt_Unset" }

type InlineHTML struct {
	stmt
	Value string `node:"value"`
}

func (*InlineHTML) Type() string { return "Stmt_InlineHTML" }

// Nop anchors comments that precede no statement.
type Nop struct {
	stmt
}

func (*Nop) Type() string { return "Stmt_Nop" }

type TryCatch struct {
	stmt
	Stmts   []Stmt   `node:"stmts"`
	Catches []*Catch `node:"catches"`
	Finally *Finally `node:"finally"`
}

func (*TryCatch) Type() string { return "Stmt_TryCatch" }

type Catch struct {
	stmt
	Types []*Name   `node:"types"`
	Var   *Variable `node:"var"`
	Stmts []Stmt    `node:"stmts"`
}

func (*Catch) Type() string { return "Stmt_Catch" }

type Finally struct {
	stmt
	Stmts []Stmt `node:"stmts"`
}

func (*Finally) Type() string { return "Stmt_Finally" }

// Declare with nil Stmts is the statement form declare(...);
type Declare struct {
	stmt
	Declares []*DeclareItem `node:"declares"`
	Stmts    []Stmt         `node:"stmts"`
}

func (*Declare) Type() string { return "Stmt_Declare" }

type HaltCompiler struct {
	stmt
	Remaining string `node:"remaining"`
}

func (*HaltCompiler) Type() string { return "Stmt_HaltCompiler" }

type Block struct {
	stmt
	Stmts []Stmt `node:"stmts"`
}

func (*Block) Type() string { return "Stmt_Block" }
