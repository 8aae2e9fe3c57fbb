package parsers

import (
	"fmt"
	"strings"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// Reducer builds the semantic value of a rule from its right-hand side.
type Reducer[C any] func(ctx C, r *Reduction) any

// Engine runs the shift-reduce automaton described by Tables.
// An Engine is immutable and may be shared; each Parse call keeps its own
// stacks.
type Engine[C any] struct {
	Tables *Tables
	// indexed by rule; a nil reducer yields the value of the first symbol
	Reducers []Reducer[C]
	// token kinds the parser never sees
	Drop []tokens.Kind
}

// DefaultDrop lists the trivia kinds.
var DefaultDrop = []tokens.Kind{
	tokens.Whitespace,
	tokens.OpenTag,
	tokens.Comment,
	tokens.DocComment,
	tokens.BadCharacter,
}

const (
	symbolNone = -1
	// errors reported at most once per three shifted tokens
	errorStateRecovering = 3
	maxExpected          = 4
)

// Parse consumes toks, which must end with the tokens.EOF sentinel. It
// returns the semantic value of the start rule, or nil when the input could
// not be recovered from. The error is non-nil only when handler aborts.
func (e *Engine[C]) Parse(ctx C, toks []tokens.Token, attributes nodes.AttributeSet, handler errs.Handler) (any, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != tokens.EOF {
		return nil, fmt.Errorf("token stream without sentinel")
	}
	drop := e.Drop
	if drop == nil {
		drop = DefaultDrop
	}
	p := &machine{
		tables:     e.Tables,
		tokens:     toks,
		attributes: attributes,
		handler:    errs.Or(handler),
		drop:       make([]bool, tokens.NumKinds),
	}
	for _, kind := range drop {
		p.drop[kind] = true
	}
	return run(p, e.Reducers, ctx)
}

// machine holds the state of one parse.
type machine struct {
	tables     *Tables
	tokens     []tokens.Token
	attributes nodes.AttributeSet
	handler    errs.Handler
	drop       []bool

	tokenPos   int
	semStack   []any
	startStack []int
	endStack   []int
	semValue   any
	errorState int

	abort error
	fatal *errs.Error
}

func put[T any](s *[]T, i int, v T) {
	for len(*s) <= i {
		var zero T
		*s = append(*s, zero)
	}
	(*s)[i] = v
}

func (p *machine) emit(err *errs.Error) {
	if p.abort != nil {
		return
	}
	if e := p.handler.HandleError(err); e != nil {
		p.abort = e
	}
}

func (p *machine) nextSymbol() (int, string, error) {
	for {
		p.tokenPos++
		if p.tokenPos >= len(p.tokens) {
			// only reachable after reading past the sentinel
			p.tokenPos = len(p.tokens) - 1
		}
		kind := p.tokens[p.tokenPos].Kind
		if int(kind) < len(p.drop) && p.drop[kind] {
			continue
		}
		tok := p.tokens[p.tokenPos]
		if int(kind) >= len(p.tables.TokenToSymbol) || p.tables.TokenToSymbol[kind] == p.tables.InvalidSymbol {
			return 0, "", fmt.Errorf("the lexer returned an invalid token (%s, %q)", kind.Name(), tok.Text)
		}
		return p.tables.TokenToSymbol[kind], tok.Text, nil
	}
}

func run[C any](p *machine, reducers []Reducer[C], ctx C) (any, error) {
	t := p.tables
	symbol := symbolNone
	var tokenValue any
	p.tokenPos = -1
	p.endStack = []int{0}
	p.startStack = []int{0}
	p.semStack = []any{nil}

	state := 0
	stateStack := []int{state}
	stackPos := 0

	for {
		var rule int
		if t.ActionBase[state] == 0 {
			rule = t.ActionDefault[state]
		} else {
			if symbol == symbolNone {
				sym, text, err := p.nextSymbol()
				if err != nil {
					return nil, err
				}
				symbol = sym
				tokenValue = text
			}

			action, ok := t.lookupAction(state, symbol)
			if ok && action != t.DefaultAction {
				if action > 0 {
					// shift
					stackPos++
					state = action
					put(&stateStack, stackPos, state)
					put(&p.semStack, stackPos, tokenValue)
					put(&p.startStack, stackPos, p.tokenPos)
					put(&p.endStack, stackPos, p.tokenPos)
					symbol = symbolNone
					if p.errorState > 0 {
						p.errorState--
					}
					if action < t.NumNonLeafStates {
						continue
					}
					rule = action - t.NumNonLeafStates
				} else {
					rule = -action
				}
			} else {
				rule = t.ActionDefault[state]
			}
		}

	reduce:
		for {
			if rule == 0 {
				return p.semValue, p.abort
			}

			if rule != t.UnexpectedTokenRule {
				// reduce
				length := t.RuleToLength[rule]
				var reducer Reducer[C]
				if rule < len(reducers) {
					reducer = reducers[rule]
				}
				if reducer != nil {
					p.semValue = reducer(ctx, &Reduction{
						m:        p,
						rule:     rule,
						length:   length,
						stackPos: stackPos,
					})
				} else if length > 0 {
					p.semValue = p.semStack[stackPos-length+1]
				} else {
					p.semValue = nil
				}
				if p.fatal != nil {
					if p.fatal.StartLine() == -1 {
						if p.fatal.Attributes == nil {
							p.fatal.Attributes = nodes.Attributes{}
						}
						p.fatal.Attributes[nodes.StartLine] = p.tokens[max(p.tokenPos, 0)].Line
					}
					p.emit(p.fatal)
					return nil, p.abort
				}
				if p.abort != nil {
					return nil, p.abort
				}

				lastTokenEnd := p.endStack[stackPos]
				stackPos -= length
				nonTerminal := t.RuleToNonTerminal[rule]
				state = t.lookupGoto(nonTerminal, stateStack[stackPos])
				stackPos++
				put(&stateStack, stackPos, state)
				put(&p.semStack, stackPos, p.semValue)
				put(&p.endStack, stackPos, lastTokenEnd)
				if length == 0 {
					// empty rules start at the lookahead
					put(&p.startStack, stackPos, p.tokenPos)
				}

			} else {
				// error
				switch p.errorState {
				case 0:
					if symbol == symbolNone {
						sym, text, err := p.nextSymbol()
						if err != nil {
							return nil, err
						}
						symbol = sym
						tokenValue = text
					}
					p.emit(errs.New(p.errorMessage(symbol, state), p.attributesForToken(p.tokenPos)))
					if p.abort != nil {
						return nil, p.abort
					}
					fallthrough
				case 1, 2:
					p.errorState = errorStateRecovering
					var action int
					for {
						a, ok := t.lookupAction(state, t.ErrorSymbol)
						if ok && a != t.DefaultAction {
							action = a
							break
						}
						if stackPos <= 0 {
							return nil, p.abort
						}
						stackPos--
						state = stateStack[stackPos]
					}
					stackPos++
					state = action
					put(&stateStack, stackPos, state)
					put(&p.semStack, stackPos, nil)
					// the error symbol is zero width
					put(&p.startStack, stackPos, p.tokenPos)
					put(&p.endStack, stackPos, p.endStack[stackPos-1])

				case errorStateRecovering:
					if symbol == 0 {
						return nil, p.abort
					}
					// discard the lookahead
					symbol = symbolNone
					break reduce
				}
			}

			if state < t.NumNonLeafStates {
				break
			}
			rule = state - t.NumNonLeafStates
		}
	}
}

func (p *machine) errorMessage(symbol, state int) string {
	var sb strings.Builder
	sb.WriteString("Syntax error, unexpected ")
	sb.WriteString(p.tables.SymbolToName[symbol])
	if expected := p.tables.ExpectedSymbols(state, maxExpected); len(expected) > 0 {
		sb.WriteString(", expecting ")
		sb.WriteString(strings.Join(expected, " or "))
	}
	return sb.String()
}

// attributesFor returns the attributes of a node spanning token positions
// start through end, restricted to the selected attribute set.
func (p *machine) attributesFor(start, end int) nodes.Attributes {
	if start < 0 {
		start = 0
	}
	if end+1 >= len(p.tokens) {
		return p.attributesForToken(len(p.tokens) - 1)
	}
	startToken := p.tokens[start]
	afterEnd := p.tokens[end+1]
	return p.materialize(
		startToken.Line, start, startToken.Pos,
		afterEnd.Line, end, afterEnd.Pos-1,
	)
}

func (p *machine) attributesForToken(pos int) nodes.Attributes {
	if pos < 0 {
		pos = 0
	}
	if pos < len(p.tokens)-1 {
		return p.attributesFor(pos, pos)
	}
	tok := p.tokens[len(p.tokens)-1]
	return p.materialize(
		tok.Line, pos, tok.Pos,
		tok.Line, pos, tok.Pos,
	)
}

func (p *machine) materialize(startLine, startTokenPos, startFilePos, endLine, endTokenPos, endFilePos int) nodes.Attributes {
	attrs := make(nodes.Attributes, 6)
	set := p.attributes
	if set.Has(nodes.CaptureStartLine) {
		attrs[nodes.StartLine] = startLine
	}
	if set.Has(nodes.CaptureStartTokenPos) {
		attrs[nodes.StartTokenPos] = startTokenPos
	}
	if set.Has(nodes.CaptureStartFilePos) {
		attrs[nodes.StartFilePos] = startFilePos
	}
	if set.Has(nodes.CaptureEndLine) {
		attrs[nodes.EndLine] = endLine
	}
	if set.Has(nodes.CaptureEndTokenPos) {
		attrs[nodes.EndTokenPos] = endTokenPos
	}
	if set.Has(nodes.CaptureEndFilePos) {
		attrs[nodes.EndFilePos] = endFilePos
	}
	return attrs
}
