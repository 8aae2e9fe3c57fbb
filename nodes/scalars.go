package nodes

const (
	IntKindBin = 2
	IntKindOct = 8
	IntKindDec = 10
	IntKindHex = 16
)

type Int struct {
	expr
	Value int64 `node:"value"`
}

func (*Int) Type() string { return "Scalar_Int" }

type Float struct {
	expr
	Value float64 `node:"value"`
}

func (*Float) Type() string { return "Scalar_Float" }

const (
	StringKindSingleQuoted = 1
	StringKindDoubleQuoted = 2
	StringKindHeredoc      = 3
	StringKindNowdoc       = 4
)

type String struct {
	expr
	Value string `node:"value"`
}

func (*String) Type() string { return "Scalar_String" }

// InterpolatedString parts are Expr or *InterpolatedStringPart.
type InterpolatedString struct {
	expr
	Parts []Node `node:"parts"`
}

func (*InterpolatedString) Type() string { return "Scalar_InterpolatedString" }

type MagicConst struct {
	expr
	Kind MagicConstKind
}

func (m *MagicConst) Type() string { return "Scalar_MagicConst_" + m.Kind.Name() }
