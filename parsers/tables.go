package parsers

import (
	"errors"
	"fmt"
)

// Tables is the compiled form of an LALR grammar. The layout follows the
// classic yacc row-displacement scheme: the action for state s and symbol
// x is Action[ActionBase[s]+x] when ActionCheck at that index equals x,
// otherwise ActionDefault[s]. States at or above NumNonLeafStates never
// appear in the state stack; they encode a shift followed by a reduction
// of rule state-NumNonLeafStates.
type Tables struct {
	ActionBase    []int
	ActionCheck   []int
	Action        []int
	ActionDefault []int

	GotoBase    []int
	GotoCheck   []int
	Goto        []int
	GotoDefault []int

	RuleToNonTerminal []int
	RuleToLength      []int

	SymbolToName []string
	// indexed by tokens.Kind
	TokenToSymbol []int

	NumNonLeafStates    int
	YY2TBLSTATE         int
	ErrorSymbol         int
	InvalidSymbol       int
	DefaultAction       int
	UnexpectedTokenRule int

	// rule texts, for diagnostics
	Productions []string
}

var ErrBadTables = errors.New("bad parser tables")

func (t *Tables) Validate() error {
	if len(t.ActionCheck) != len(t.Action) {
		return fmt.Errorf("%w: action check size %d, action size %d", ErrBadTables, len(t.ActionCheck), len(t.Action))
	}
	if len(t.GotoCheck) != len(t.Goto) {
		return fmt.Errorf("%w: goto check size %d, goto size %d", ErrBadTables, len(t.GotoCheck), len(t.Goto))
	}
	if len(t.RuleToLength) != len(t.RuleToNonTerminal) {
		return fmt.Errorf("%w: %d rule lengths for %d rules", ErrBadTables, len(t.RuleToLength), len(t.RuleToNonTerminal))
	}
	if len(t.ActionBase) < t.NumNonLeafStates || len(t.ActionDefault) < t.NumNonLeafStates {
		return fmt.Errorf("%w: %d non-leaf states with %d bases", ErrBadTables, t.NumNonLeafStates, len(t.ActionBase))
	}
	if len(t.GotoBase) != len(t.GotoDefault) {
		return fmt.Errorf("%w: goto base and default sizes differ", ErrBadTables)
	}
	if t.ErrorSymbol < 0 || t.ErrorSymbol >= len(t.SymbolToName) {
		return fmt.Errorf("%w: error symbol %d out of range", ErrBadTables, t.ErrorSymbol)
	}
	return nil
}

// lookupAction returns the explicit table entry for state and symbol.
func (t *Tables) lookupAction(state, symbol int) (int, bool) {
	idx := t.ActionBase[state] + symbol
	if idx >= 0 && idx < len(t.Action) && t.ActionCheck[idx] == symbol {
		return t.Action[idx], true
	}
	if state < t.YY2TBLSTATE {
		idx = t.ActionBase[state+t.NumNonLeafStates] + symbol
		if idx >= 0 && idx < len(t.Action) && t.ActionCheck[idx] == symbol {
			return t.Action[idx], true
		}
	}
	return 0, false
}

func (t *Tables) lookupGoto(nonTerminal, state int) int {
	idx := t.GotoBase[nonTerminal] + state
	if idx >= 0 && idx < len(t.Goto) && t.GotoCheck[idx] == nonTerminal {
		return t.Goto[idx]
	}
	return t.GotoDefault[nonTerminal]
}

// ExpectedSymbols lists the names of symbols with an explicit action in
// state, or nil when there are more than max of them.
func (t *Tables) ExpectedSymbols(state int, max int) []string {
	var expected []string
	for symbol, name := range t.SymbolToName {
		action, ok := t.lookupAction(state, symbol)
		if !ok {
			continue
		}
		if action == t.UnexpectedTokenRule ||
			action == -t.UnexpectedTokenRule ||
			action == t.DefaultAction ||
			symbol == t.ErrorSymbol {
			continue
		}
		if len(expected) == max {
			return nil
		}
		expected = append(expected, name)
	}
	return expected
}
