package grammars

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/reusee/phpedit/lalr"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
	"github.com/reusee/phpedit/tokens"
)

type reducer = parsers.Reducer[*parseState]

// builder pairs grammar rules with their reducers.
type builder struct {
	g        *lalr.Grammar
	reducers []reducer
}

func (b *builder) rule(lhs string, rhs string, fn reducer) {
	n := b.g.Rule(lhs, rhs)
	for len(b.reducers) <= n {
		b.reducers = append(b.reducers, nil)
	}
	b.reducers[n] = fn
}

// alternatives adds one rule per right-hand side, sharing a reducer.
func (b *builder) alternatives(lhs string, fn reducer, rhss ...string) {
	for _, rhs := range rhss {
		b.rule(lhs, rhs, fn)
	}
}

func declareTerminals(g *lalr.Grammar) {
	for _, kind := range tokens.AllNamed() {
		g.Terminal(kind.Name())
	}
	for _, c := range []byte(tokens.Punctuation) {
		g.Terminal(tokens.Kind(c).Name())
	}
}

func declarePrecedence(g *lalr.Grammar) {
	g.Precedence("T_THROW")
	g.Precedence("PREC_ARROW_FUNCTION")
	g.Precedence("T_INCLUDE", "T_INCLUDE_ONCE", "T_REQUIRE", "T_REQUIRE_ONCE")
	g.Left("T_LOGICAL_OR")
	g.Left("T_LOGICAL_XOR")
	g.Left("T_LOGICAL_AND")
	g.Precedence("T_PRINT")
	g.Precedence("T_YIELD")
	g.Precedence("T_DOUBLE_ARROW")
	g.Precedence("T_YIELD_FROM")
	g.Precedence("'='", "T_PLUS_EQUAL", "T_MINUS_EQUAL", "T_MUL_EQUAL", "T_DIV_EQUAL",
		"T_CONCAT_EQUAL", "T_MOD_EQUAL", "T_AND_EQUAL", "T_OR_EQUAL", "T_XOR_EQUAL",
		"T_SL_EQUAL", "T_SR_EQUAL", "T_POW_EQUAL", "T_COALESCE_EQUAL")
	g.Left("'?'", "':'")
	g.Right("T_COALESCE")
	g.Left("T_BOOLEAN_OR")
	g.Left("T_BOOLEAN_AND")
	g.Left("'|'")
	g.Left("'^'")
	g.Left("'&'")
	g.Nonassoc("T_IS_EQUAL", "T_IS_NOT_EQUAL", "T_IS_IDENTICAL", "T_IS_NOT_IDENTICAL", "T_SPACESHIP")
	g.Nonassoc("'<'", "T_IS_SMALLER_OR_EQUAL", "'>'", "T_IS_GREATER_OR_EQUAL")
	g.Left("'.'")
	g.Left("T_SL", "T_SR")
	g.Left("'+'", "'-'")
	g.Left("'*'", "'/'", "'%'")
	g.Precedence("'!'")
	g.Precedence("T_INSTANCEOF")
	g.Precedence("'~'", "T_INC", "T_DEC", "T_INT_CAST", "T_DOUBLE_CAST", "T_STRING_CAST",
		"T_ARRAY_CAST", "T_OBJECT_CAST", "T_BOOL_CAST", "T_UNSET_CAST", "'@'")
	g.Right("T_POW")
	g.Precedence("T_CLONE")
	g.Precedence("T_NOELSE")
	g.Precedence("T_ELSEIF")
	g.Precedence("T_ELSE")
}

type compiled struct {
	engine *parsers.Engine[*parseState]
	report *lalr.Report
}

// compile builds the PHP tables. The result is shared by every Parser.
var compile = sync.OnceValues(func() (*compiled, error) {
	b := &builder{
		g: lalr.New(),
	}
	declareTerminals(b.g)
	declarePrecedence(b.g)
	b.topStatements()
	b.statements()
	b.declarations()
	b.expressions()
	b.variables()
	b.scalars()

	tables, report, err := b.g.Compile("start")
	if err != nil {
		return nil, err
	}
	// <?= behaves like echo and ?> like a statement terminator
	tables.TokenToSymbol[tokens.OpenTagWithEcho] = tables.TokenToSymbol[tokens.Echo]
	tables.TokenToSymbol[tokens.CloseTag] = tables.TokenToSymbol[';']

	slog.Debug("php grammar compiled",
		"states", report.States,
		"non-leaf states", report.NonLeafStates,
		"rules", report.Rules,
		"shift/reduce", report.ShiftReduce,
		"reduce/reduce", report.ReduceReduce,
	)
	for _, conflict := range report.Conflicts {
		slog.Debug("php grammar conflict", "conflict", conflict)
	}

	return &compiled{
		engine: &parsers.Engine[*parseState]{
			Tables:   tables,
			Reducers: b.reducers,
		},
		report: report,
	}, nil
})

// Report returns the statistics of the PHP grammar compilation.
func Report() (*lalr.Report, error) {
	c, err := compile()
	if err != nil {
		return nil, err
	}
	return c.report, nil
}

// sem returns semantic value i as a T, or the zero T.
func sem[T any](r *parsers.Reduction, i int) T {
	v, _ := r.Sem(i).(T)
	return v
}

func list[T any](r *parsers.Reduction, i int) []T {
	v, _ := r.Sem(i).([]T)
	if v == nil {
		return []T{}
	}
	return v
}

func with[T nodes.Node](n T, attrs nodes.Attributes) T {
	n.SetAttributes(attrs)
	return n
}

// push is the reducer of left recursive lists: list ',' item.
func push[T any](listPos, itemPos int) reducer {
	return func(_ *parseState, r *parsers.Reduction) any {
		return append(list[T](r, listPos), sem[T](r, itemPos))
	}
}

// one starts a list from a single item.
func one[T any](pos int) reducer {
	return func(_ *parseState, r *parsers.Reduction) any {
		return []T{sem[T](r, pos)}
	}
}

func empty[T any]() reducer {
	return func(*parseState, *parsers.Reduction) any {
		return []T{}
	}
}

func pick(pos int) reducer {
	return func(_ *parseState, r *parsers.Reduction) any {
		return r.Sem(pos)
	}
}

func constant(v any) reducer {
	return func(*parseState, *parsers.Reduction) any {
		return v
	}
}

func nothing(*parseState, *parsers.Reduction) any {
	return nil
}

func identifierAt(r *parsers.Reduction, pos int) *nodes.Identifier {
	return with(&nodes.Identifier{
		Name: r.Str(pos),
	}, r.AttrsAt(pos))
}

func variableAt(r *parsers.Reduction, pos int) *nodes.Variable {
	return with(&nodes.Variable{
		Name: strings.TrimPrefix(r.Str(pos), "$"),
	}, r.AttrsAt(pos))
}

func nameAt(r *parsers.Reduction, pos int) *nodes.Name {
	return with(nodes.ParseName(r.Str(pos)), r.AttrsAt(pos))
}
