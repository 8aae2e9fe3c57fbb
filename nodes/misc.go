package nodes

type Param struct {
	Base
	Flags    int  `node:"flags"`
	TypeNode Node `node:"type"`
	ByRef    bool `node:"byRef"`
	Variadic bool `node:"variadic"`
	Var      Expr `node:"var"`
	Default  Expr `node:"default"`
}

func (*Param) Type() string {
	return "Param"
}

// IsPromoted reports whether the parameter declares a promoted property.
func (p *Param) IsPromoted() bool {
	return p.Flags != 0
}

type Arg struct {
	Base
	Name   *Identifier `node:"name"`
	Value  Expr        `node:"value"`
	ByRef  bool        `node:"byRef"`
	Unpack bool        `node:"unpack"`
}

func (*Arg) Type() string {
	return "Arg"
}

// Const is a name/value pair of a const statement or class constant.
type Const struct {
	Base
	Name  *Identifier `node:"name"`
	Value Expr        `node:"value"`
}

func (*Const) Type() string {
	return "Const"
}

type ArrayItem struct {
	Base
	Key    Expr `node:"key"`
	Value  Expr `node:"value"`
	ByRef  bool `node:"byRef"`
	Unpack bool `node:"unpack"`
}

func (*ArrayItem) Type() string {
	return "ArrayItem"
}

type ClosureUse struct {
	Base
	Var   *Variable `node:"var"`
	ByRef bool      `node:"byRef"`
}

func (*ClosureUse) Type() string {
	return "ClosureUse"
}

type PropertyItem struct {
	Base
	Name    *VarLikeIdentifier `node:"name"`
	Default Expr               `node:"default"`
}

func (*PropertyItem) Type() string {
	return "PropertyItem"
}

type StaticVar struct {
	Base
	Var     *Variable `node:"var"`
	Default Expr      `node:"default"`
}

func (*StaticVar) Type() string {
	return "StaticVar"
}

type UseKind int

const (
	UseUnknown  UseKind = 0
	UseNormal   UseKind = 1
	UseFunction UseKind = 2
	UseConstant UseKind = 3
)

type UseItem struct {
	Base
	UseType UseKind     `node:"type"`
	Name    *Name       `node:"name"`
	Alias   *Identifier `node:"alias"`
}

func (*UseItem) Type() string {
	return "UseItem"
}

// EffectiveAlias is the explicit alias or the last name part.
func (u *UseItem) EffectiveAlias() string {
	if u.Alias != nil {
		return u.Alias.Name
	}
	return u.Name.Last()
}

type DeclareItem struct {
	Base
	Key   *Identifier `node:"key"`
	Value Expr        `node:"value"`
}

func (*DeclareItem) Type() string {
	return "DeclareItem"
}

// InterpolatedStringPart is a literal run inside an interpolated string.
type InterpolatedStringPart struct {
	Base
	Value string `node:"value"`
}

func (*InterpolatedStringPart) Type() string {
	return "InterpolatedStringPart"
}
