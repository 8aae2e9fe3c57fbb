package tokens

import "strings"

var keywords = map[string]Kind{
	"abstract":        Abstract,
	"and":             LogicalAnd,
	"array":           Array,
	"as":              As,
	"break":           Break,
	"case":            Case,
	"catch":           Catch,
	"class":           Class,
	"clone":           Clone,
	"const":           Const,
	"continue":        Continue,
	"declare":         Declare,
	"default":         Default,
	"die":             Exit,
	"do":              Do,
	"echo":            Echo,
	"else":            Else,
	"elseif":          ElseIf,
	"empty":           Empty,
	"exit":            Exit,
	"extends":         Extends,
	"final":           Final,
	"finally":         Finally,
	"fn":              Fn,
	"for":             For,
	"foreach":         Foreach,
	"function":        Function,
	"global":          Global,
	"if":              If,
	"implements":      Implements,
	"include":         Include,
	"include_once":    IncludeOnce,
	"instanceof":      Instanceof,
	"interface":       Interface,
	"isset":           Isset,
	"list":            List,
	"namespace":       Namespace,
	"new":             New,
	"or":              LogicalOr,
	"print":           Print,
	"private":         Private,
	"protected":       Protected,
	"public":          Public,
	"readonly":        Readonly,
	"require":         Require,
	"require_once":    RequireOnce,
	"return":          Return,
	"static":          Static,
	"switch":          Switch,
	"throw":           Throw,
	"try":             Try,
	"unset":           Unset,
	"use":             Use,
	"var":             Var,
	"while":           While,
	"xor":             LogicalXor,
	"yield":           Yield,
	"__halt_compiler": HaltCompiler,
	"__line__":        Line,
	"__file__":        File,
	"__dir__":         Dir,
	"__class__":       ClassC,
	"__trait__":       TraitC,
	"__method__":      MethodC,
	"__function__":    FuncC,
	"__namespace__":   NsC,
}

// Keyword looks up a case-insensitive keyword.
func Keyword(label string) (Kind, bool) {
	kind, ok := keywords[strings.ToLower(label)]
	return kind, ok
}

// IsKeyword reports whether the kind is produced from a keyword label.
func IsKeyword(kind Kind) bool {
	for _, k := range keywords {
		if k == kind {
			return true
		}
	}
	return false
}

var casts = map[string]Kind{
	"int":     IntCast,
	"integer": IntCast,
	"bool":    BoolCast,
	"boolean": BoolCast,
	"float":   DoubleCast,
	"double":  DoubleCast,
	"real":    DoubleCast,
	"string":  StringCast,
	"binary":  StringCast,
	"array":   ArrayCast,
	"object":  ObjectCast,
	"unset":   UnsetCast,
}

// Cast looks up a cast type name as written between parentheses.
func Cast(name string) (Kind, bool) {
	kind, ok := casts[strings.ToLower(name)]
	return kind, ok
}

// operators ordered longest first
var operators = []struct {
	Text string
	Kind Kind
}{
	{"<<=", SlEqual},
	{">>=", SrEqual},
	{"**=", PowEqual},
	{"...", Ellipsis},
	{"??=", CoalesceEqual},
	{"===", IsIdentical},
	{"!==", IsNotIdentical},
	{"<=>", Spaceship},
	{"?->", NullsafeObjectOperator},
	{"++", Inc},
	{"--", Dec},
	{"==", IsEqual},
	{"!=", IsNotEqual},
	{"<>", IsNotEqual},
	{"<=", IsSmallerOrEqual},
	{">=", IsGreaterOrEqual},
	{"&&", BooleanAnd},
	{"||", BooleanOr},
	{"??", Coalesce},
	{"+=", PlusEqual},
	{"-=", MinusEqual},
	{"*=", MulEqual},
	{"/=", DivEqual},
	{".=", ConcatEqual},
	{"%=", ModEqual},
	{"&=", AndEqual},
	{"|=", OrEqual},
	{"^=", XorEqual},
	{"**", Pow},
	{"<<", Sl},
	{">>", Sr},
	{"=>", DoubleArrow},
	{"->", ObjectOperator},
	{"::", DoubleColon},
}

// Operator matches the longest multi-character operator at the start of src.
// The accept callback can veto a candidate, in which case shorter ones are tried.
func Operator(src []byte, accept func(Kind) bool) (Kind, int, bool) {
	for _, op := range operators {
		if len(src) >= len(op.Text) && string(src[:len(op.Text)]) == op.Text {
			if accept != nil && !accept(op.Kind) {
				continue
			}
			return op.Kind, len(op.Text), true
		}
	}
	return 0, 0, false
}

// single character tokens
const Punctuation = ";:,.[]()|^&+-/*=%!~$<>?@{}\""
