package nodes

type BinaryOpKind uint8

const (
	OpBitwiseAnd BinaryOpKind = iota
	OpBitwiseOr
	OpBitwiseXor
	OpBooleanAnd
	OpBooleanOr
	OpCoalesce
	OpConcat
	OpDiv
	OpEqual
	OpGreater
	OpGreaterOrEqual
	OpIdentical
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpMinus
	OpMod
	OpMul
	OpNotEqual
	OpNotIdentical
	OpPlus
	OpPow
	OpShiftLeft
	OpShiftRight
	OpSmaller
	OpSmallerOrEqual
	OpSpaceship
	numBinaryOps
)

var binaryOps = [numBinaryOps]struct {
	name  string
	sigil string
}{
	OpBitwiseAnd:     {"BitwiseAnd", "&"},
	OpBitwiseOr:      {"BitwiseOr", "|"},
	OpBitwiseXor:     {"BitwiseXor", "^"},
	OpBooleanAnd:     {"BooleanAnd", "&&"},
	OpBooleanOr:      {"BooleanOr", "||"},
	OpCoalesce:       {"Coalesce", "??"},
	OpConcat:         {"Concat", "."},
	OpDiv:            {"Div", "/"},
	OpEqual:          {"Equal", "=="},
	OpGreater:        {"Greater", ">"},
	OpGreaterOrEqual: {"GreaterOrEqual", ">="},
	OpIdentical:      {"Identical", "==="},
	OpLogicalAnd:     {"LogicalAnd", "and"},
	OpLogicalOr:      {"LogicalOr", "or"},
	OpLogicalXor:     {"LogicalXor", "xor"},
	OpMinus:          {"Minus", "-"},
	OpMod:            {"Mod", "%"},
	OpMul:            {"Mul", "*"},
	OpNotEqual:       {"NotEqual", "!="},
	OpNotIdentical:   {"NotIdentical", "!=="},
	OpPlus:           {"Plus", "+"},
	OpPow:            {"Pow", "**"},
	OpShiftLeft:      {"ShiftLeft", "<<"},
	OpShiftRight:     {"ShiftRight", ">>"},
	OpSmaller:        {"Smaller", "<"},
	OpSmallerOrEqual: {"SmallerOrEqual", "<="},
	OpSpaceship:      {"Spaceship", "<=>"},
}

func (k BinaryOpKind) Name() string {
	return binaryOps[k].name
}

// Sigil is the operator as written in source.
func (k BinaryOpKind) Sigil() string {
	return binaryOps[k].sigil
}

func BinaryOpKinds() []BinaryOpKind {
	ret := make([]BinaryOpKind, 0, numBinaryOps)
	for k := BinaryOpKind(0); k < numBinaryOps; k++ {
		ret = append(ret, k)
	}
	return ret
}

type AssignOpKind uint8

const (
	AssignBitwiseAnd AssignOpKind = iota
	AssignBitwiseOr
	AssignBitwiseXor
	AssignCoalesce
	AssignConcat
	AssignDiv
	AssignMinus
	AssignMod
	AssignMul
	AssignPlus
	AssignPow
	AssignShiftLeft
	AssignShiftRight
	numAssignOps
)

var assignOps = [numAssignOps]struct {
	name  string
	sigil string
	op    BinaryOpKind
}{
	AssignBitwiseAnd: {"BitwiseAnd", "&=", OpBitwiseAnd},
	AssignBitwiseOr:  {"BitwiseOr", "|=", OpBitwiseOr},
	AssignBitwiseXor: {"BitwiseXor", "^=", OpBitwiseXor},
	AssignCoalesce:   {"Coalesce", "??=", OpCoalesce},
	AssignConcat:     {"Concat", ".=", OpConcat},
	AssignDiv:        {"Div", "/=", OpDiv},
	AssignMinus:      {"Minus", "-=", OpMinus},
	AssignMod:        {"Mod", "%=", OpMod},
	AssignMul:        {"Mul", "*=", OpMul},
	AssignPlus:       {"Plus", "+=", OpPlus},
	AssignPow:        {"Pow", "**=", OpPow},
	AssignShiftLeft:  {"ShiftLeft", "<<=", OpShiftLeft},
	AssignShiftRight: {"ShiftRight", ">>=", OpShiftRight},
}

func (k AssignOpKind) Name() string {
	return assignOps[k].name
}

func (k AssignOpKind) Sigil() string {
	return assignOps[k].sigil
}

// BinaryOp is the binary operator the compound assignment applies.
func (k AssignOpKind) BinaryOp() BinaryOpKind {
	return assignOps[k].op
}

func AssignOpKinds() []AssignOpKind {
	ret := make([]AssignOpKind, 0, numAssignOps)
	for k := AssignOpKind(0); k < numAssignOps; k++ {
		ret = append(ret, k)
	}
	return ret
}

type CastKind uint8

const (
	CastInt CastKind = iota
	CastDouble
	CastString
	CastArray
	CastObject
	CastBool
	CastUnset
	numCasts
)

var castNames = [numCasts]string{
	CastInt:    "Int",
	CastDouble: "Double",
	CastString: "String",
	CastArray:  "Array",
	CastObject: "Object",
	CastBool:   "Bool",
	CastUnset:  "Unset",
}

func (k CastKind) Name() string {
	return castNames[k]
}

func CastKinds() []CastKind {
	ret := make([]CastKind, 0, numCasts)
	for k := CastKind(0); k < numCasts; k++ {
		ret = append(ret, k)
	}
	return ret
}

type MagicConstKind uint8

const (
	MagicClass MagicConstKind = iota
	MagicDir
	MagicFile
	MagicFunction
	MagicLine
	MagicMethod
	MagicNamespace
	MagicTrait
	numMagicConsts
)

var magicConsts = [numMagicConsts]struct {
	name  string
	sigil string
}{
	MagicClass:     {"Class", "__CLASS__"},
	MagicDir:       {"Dir", "__DIR__"},
	MagicFile:      {"File", "__FILE__"},
	MagicFunction:  {"Function", "__FUNCTION__"},
	MagicLine:      {"Line", "__LINE__"},
	MagicMethod:    {"Method", "__METHOD__"},
	MagicNamespace: {"Namespace", "__NAMESPACE__"},
	MagicTrait:     {"Trait", "__TRAIT__"},
}

func (k MagicConstKind) Name() string {
	return magicConsts[k].name
}

func (k MagicConstKind) Sigil() string {
	return magicConsts[k].sigil
}

func MagicConstKinds() []MagicConstKind {
	ret := make([]MagicConstKind, 0, numMagicConsts)
	for k := MagicConstKind(0); k < numMagicConsts; k++ {
		ret = append(ret, k)
	}
	return ret
}

type IncludeKind int

const (
	IncludeInclude     IncludeKind = 1
	IncludeIncludeOnce IncludeKind = 2
	IncludeRequire     IncludeKind = 3
	IncludeRequireOnce IncludeKind = 4
)

func (k IncludeKind) Sigil() string {
	switch k {
	case IncludeIncludeOnce:
		return "include_once"
	case IncludeRequire:
		return "require"
	case IncludeRequireOnce:
		return "require_once"
	}
	return "include"
}
