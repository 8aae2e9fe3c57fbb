package tokens

import "strconv"

// Kind identifies a token. Single character tokens use their byte value,
// named tokens start at 256. The zero Kind marks end of input.
type Kind int

const EOF Kind = 0

const (
	InlineHTML Kind = iota + 256
	OpenTag
	OpenTagWithEcho
	CloseTag
	Whitespace
	Comment
	DocComment
	BadCharacter

	Variable
	String
	NameQualified
	NameFullyQualified
	NameRelative
	LNumber
	DNumber
	NumString
	ConstantEncapsedString
	EncapsedAndWhitespace
	StartHeredoc
	EndHeredoc
	CurlyOpen
	DollarOpenCurlyBraces

	Abstract
	Array
	As
	Break
	Case
	Catch
	Class
	Clone
	Const
	Continue
	Declare
	Default
	Do
	Echo
	Else
	ElseIf
	Empty
	Exit
	Extends
	Final
	Finally
	Fn
	For
	Foreach
	Function
	Global
	HaltCompiler
	If
	Implements
	Include
	IncludeOnce
	Instanceof
	Interface
	Isset
	List
	LogicalAnd
	LogicalOr
	LogicalXor
	Namespace
	New
	Print
	Private
	Protected
	Public
	Readonly
	Require
	RequireOnce
	Return
	Static
	Switch
	Throw
	Try
	Unset
	Use
	Var
	While
	Yield
	YieldFrom

	Line
	File
	Dir
	ClassC
	TraitC
	MethodC
	FuncC
	NsC

	IntCast
	DoubleCast
	StringCast
	ArrayCast
	ObjectCast
	BoolCast
	UnsetCast

	Inc
	Dec
	IsIdentical
	IsNotIdentical
	IsEqual
	IsNotEqual
	IsSmallerOrEqual
	IsGreaterOrEqual
	Spaceship
	BooleanAnd
	BooleanOr
	Coalesce
	CoalesceEqual
	PlusEqual
	MinusEqual
	MulEqual
	DivEqual
	ConcatEqual
	ModEqual
	AndEqual
	OrEqual
	XorEqual
	SlEqual
	SrEqual
	Pow
	PowEqual
	Sl
	Sr
	DoubleArrow
	ObjectOperator
	NullsafeObjectOperator
	DoubleColon
	Ellipsis
	NsSeparator

	numKinds
)

var names = map[Kind]string{
	EOF: "EOF",

	InlineHTML:      "T_INLINE_HTML",
	OpenTag:         "T_OPEN_TAG",
	OpenTagWithEcho: "T_OPEN_TAG_WITH_ECHO",
	CloseTag:        "T_CLOSE_TAG",
	Whitespace:      "T_WHITESPACE",
	Comment:         "T_COMMENT",
	DocComment:      "T_DOC_COMMENT",
	BadCharacter:    "T_BAD_CHARACTER",

	Variable:               "T_VARIABLE",
	String:                 "T_STRING",
	NameQualified:          "T_NAME_QUALIFIED",
	NameFullyQualified:     "T_NAME_FULLY_QUALIFIED",
	NameRelative:           "T_NAME_RELATIVE",
	LNumber:                "T_LNUMBER",
	DNumber:                "T_DNUMBER",
	NumString:              "T_NUM_STRING",
	ConstantEncapsedString: "T_CONSTANT_ENCAPSED_STRING",
	EncapsedAndWhitespace:  "T_ENCAPSED_AND_WHITESPACE",
	StartHeredoc:           "T_START_HEREDOC",
	EndHeredoc:             "T_END_HEREDOC",
	CurlyOpen:              "T_CURLY_OPEN",
	DollarOpenCurlyBraces:  "T_DOLLAR_OPEN_CURLY_BRACES",

	Abstract:     "T_ABSTRACT",
	Array:        "T_ARRAY",
	As:           "T_AS",
	Break:        "T_BREAK",
	Case:         "T_CASE",
	Catch:        "T_CATCH",
	Class:        "T_CLASS",
	Clone:        "T_CLONE",
	Const:        "T_CONST",
	Continue:     "T_CONTINUE",
	Declare:      "T_DECLARE",
	Default:      "T_DEFAULT",
	Do:           "T_DO",
	Echo:         "T_ECHO",
	Else:         "T_ELSE",
	ElseIf:       "T_ELSEIF",
	Empty:        "T_EMPTY",
	Exit:         "T_EXIT",
	Extends:      "T_EXTENDS",
	Final:        "T_FINAL",
	Finally:      "T_FINALLY",
	Fn:           "T_FN",
	For:          "T_FOR",
	Foreach:      "T_FOREACH",
	Function:     "T_FUNCTION",
	Global:       "T_GLOBAL",
	HaltCompiler: "T_HALT_COMPILER",
	If:           "T_IF",
	Implements:   "T_IMPLEMENTS",
	Include:      "T_INCLUDE",
	IncludeOnce:  "T_INCLUDE_ONCE",
	Instanceof:   "T_INSTANCEOF",
	Interface:    "T_INTERFACE",
	Isset:        "T_ISSET",
	List:         "T_LIST",
	LogicalAnd:   "T_LOGICAL_AND",
	LogicalOr:    "T_LOGICAL_OR",
	LogicalXor:   "T_LOGICAL_XOR",
	Namespace:    "T_NAMESPACE",
	New:          "T_NEW",
	Print:        "T_PRINT",
	Private:      "T_PRIVATE",
	Protected:    "T_PROTECTED",
	Public:       "T_PUBLIC",
	Readonly:     "T_READONLY",
	Require:      "T_REQUIRE",
	RequireOnce:  "T_REQUIRE_ONCE",
	Return:       "T_RETURN",
	Static:       "T_STATIC",
	Switch:       "T_SWITCH",
	Throw:        "T_THROW",
	Try:          "T_TRY",
	Unset:        "T_UNSET",
	Use:          "T_USE",
	Var:          "T_VAR",
	While:        "T_WHILE",
	Yield:        "T_YIELD",
	YieldFrom:    "T_YIELD_FROM",

	Line:    "T_LINE",
	File:    "T_FILE",
	Dir:     "T_DIR",
	ClassC:  "T_CLASS_C",
	TraitC:  "T_TRAIT_C",
	MethodC: "T_METHOD_C",
	FuncC:   "T_FUNC_C",
	NsC:     "T_NS_C",

	IntCast:    "T_INT_CAST",
	DoubleCast: "T_DOUBLE_CAST",
	StringCast: "T_STRING_CAST",
	ArrayCast:  "T_ARRAY_CAST",
	ObjectCast: "T_OBJECT_CAST",
	BoolCast:   "T_BOOL_CAST",
	UnsetCast:  "T_UNSET_CAST",

	Inc:                    "T_INC",
	Dec:                    "T_DEC",
	IsIdentical:            "T_IS_IDENTICAL",
	IsNotIdentical:         "T_IS_NOT_IDENTICAL",
	IsEqual:                "T_IS_EQUAL",
	IsNotEqual:             "T_IS_NOT_EQUAL",
	IsSmallerOrEqual:       "T_IS_SMALLER_OR_EQUAL",
	IsGreaterOrEqual:       "T_IS_GREATER_OR_EQUAL",
	Spaceship:              "T_SPACESHIP",
	BooleanAnd:             "T_BOOLEAN_AND",
	BooleanOr:              "T_BOOLEAN_OR",
	Coalesce:               "T_COALESCE",
	CoalesceEqual:          "T_COALESCE_EQUAL",
	PlusEqual:              "T_PLUS_EQUAL",
	MinusEqual:             "T_MINUS_EQUAL",
	MulEqual:               "T_MUL_EQUAL",
	DivEqual:               "T_DIV_EQUAL",
	ConcatEqual:            "T_CONCAT_EQUAL",
	ModEqual:               "T_MOD_EQUAL",
	AndEqual:               "T_AND_EQUAL",
	OrEqual:                "T_OR_EQUAL",
	XorEqual:               "T_XOR_EQUAL",
	SlEqual:                "T_SL_EQUAL",
	SrEqual:                "T_SR_EQUAL",
	Pow:                    "T_POW",
	PowEqual:               "T_POW_EQUAL",
	Sl:                     "T_SL",
	Sr:                     "T_SR",
	DoubleArrow:            "T_DOUBLE_ARROW",
	ObjectOperator:         "T_OBJECT_OPERATOR",
	NullsafeObjectOperator: "T_NULLSAFE_OBJECT_OPERATOR",
	DoubleColon:            "T_PAAMAYIM_NEKUDOTAYIM",
	Ellipsis:               "T_ELLIPSIS",
	NsSeparator:            "T_NS_SEPARATOR",
}

var byName = func() map[string]Kind {
	ret := make(map[string]Kind, len(names))
	for kind, name := range names {
		ret[name] = kind
	}
	return ret
}()

// Name returns the grammar spelling of the kind: T_* names for named tokens
// and the quoted character for single character tokens.
func (k Kind) Name() string {
	if name, ok := names[k]; ok {
		return name
	}
	if k > 0 && k < 256 {
		return "'" + string(rune(k)) + "'"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) String() string {
	return k.Name()
}

// KindByName is the inverse of Name.
func KindByName(name string) (Kind, bool) {
	if kind, ok := byName[name]; ok {
		return kind, true
	}
	if len(name) == 3 && name[0] == '\'' && name[2] == '\'' {
		return Kind(name[1]), true
	}
	return 0, false
}

// NumKinds is one past the largest kind.
const NumKinds = int(numKinds)

// AllNamed lists every named kind in declaration order.
func AllNamed() []Kind {
	ret := make([]Kind, 0, int(numKinds)-256)
	for k := InlineHTML; k < numKinds; k++ {
		ret = append(ret, k)
	}
	return ret
}
