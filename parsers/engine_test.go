package parsers

import (
	"errors"
	"slices"
	"testing"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// listTables encodes
//
//	0: $accept -> list EOF
//	1: list -> ε
//	2: list -> list stmt
//	3: stmt -> T_VARIABLE ';'
//	4: stmt -> error ';'
//
// with states
//
//	0: list -> .                      (reduce 1)
//	1: $accept -> list . EOF, list -> list . stmt
//	2: stmt -> T_VARIABLE . ';'
//	3: stmt -> T_VARIABLE ';' .       (reduce 3)
//	4: stmt -> error . ';'
//	5: list -> list stmt .            (reduce 2)
//	6: stmt -> error ';' .            (reduce 4)
func listTables() *Tables {
	const (
		symEOF = iota
		symError
		symSemicolon
		symVariable
		numSymbols
	)
	const (
		unexpected = 99
		numStates  = 7
	)

	action := make([]int, numSymbols*(numStates+1))
	check := make([]int, len(action))
	for i := range check {
		check[i] = -1
	}
	base := make([]int, numStates)
	set := func(state, symbol, a int) {
		base[state] = numSymbols * (state + 1)
		action[base[state]+symbol] = a
		check[base[state]+symbol] = symbol
	}
	set(1, symEOF, 0)
	set(1, symError, 4)
	set(1, symVariable, 2)
	set(2, symSemicolon, 3)
	set(4, symSemicolon, 6)

	tokenToSymbol := make([]int, tokens.NumKinds)
	for i := range tokenToSymbol {
		tokenToSymbol[i] = numSymbols
	}
	tokenToSymbol[tokens.EOF] = symEOF
	tokenToSymbol[';'] = symSemicolon
	tokenToSymbol[tokens.Variable] = symVariable

	return &Tables{
		ActionBase:    base,
		ActionCheck:   check,
		Action:        action,
		ActionDefault: []int{1, unexpected, unexpected, 3, unexpected, 2, 4},

		GotoBase:    []int{0, 0, 0},
		GotoDefault: []int{0, 1, 5},

		RuleToNonTerminal: []int{0, 1, 1, 2, 2},
		RuleToLength:      []int{2, 0, 2, 2, 2},

		SymbolToName:  []string{"EOF", "error", "';'", "T_VARIABLE"},
		TokenToSymbol: tokenToSymbol,

		NumNonLeafStates:    numStates,
		ErrorSymbol:         symError,
		InvalidSymbol:       numSymbols,
		DefaultAction:       -9999,
		UnexpectedTokenRule: unexpected,
	}
}

func listEngine() *Engine[struct{}] {
	return &Engine[struct{}]{
		Tables: listTables(),
		Reducers: []Reducer[struct{}]{
			1: func(_ struct{}, r *Reduction) any {
				return []string{}
			},
			2: func(_ struct{}, r *Reduction) any {
				return append(r.Sem(1).([]string), r.Sem(2).(string))
			},
			3: func(_ struct{}, r *Reduction) any {
				return r.Str(1)
			},
			4: func(_ struct{}, r *Reduction) any {
				return "<error>"
			},
		},
	}
}

// lex splits texts into variable and semicolon tokens, separated by
// whitespace, on line 1.
func lex(texts ...string) []tokens.Token {
	var ret []tokens.Token
	pos := 0
	add := func(kind tokens.Kind, text string) {
		ret = append(ret, tokens.Token{Kind: kind, Text: text, Line: 1, Pos: pos})
		pos += len(text)
	}
	add(tokens.OpenTag, "<?php ")
	for _, text := range texts {
		if text == ";" {
			add(';', text)
		} else {
			add(tokens.Variable, text)
		}
		add(tokens.Whitespace, " ")
	}
	add(tokens.EOF, "\x00")
	return ret
}

func TestTablesValidate(t *testing.T) {
	tables := listTables()
	if err := tables.Validate(); err != nil {
		t.Fatal(err)
	}
	tables.RuleToLength = tables.RuleToLength[:2]
	if err := tables.Validate(); !errors.Is(err, ErrBadTables) {
		t.Fatalf("got %v", err)
	}
}

func TestEngineParse(t *testing.T) {
	collecting := new(errs.Collecting)
	ret, err := listEngine().Parse(struct{}{}, lex("$a", ";", "$b", ";"), nodes.CaptureStartLine, collecting)
	if err != nil {
		t.Fatal(err)
	}
	if collecting.HasErrors() {
		t.Fatalf("got %v", collecting.Errors())
	}
	if !slices.Equal(ret.([]string), []string{"$a", "$b"}) {
		t.Fatalf("got %v", ret)
	}
}

func TestEngineRecovery(t *testing.T) {
	collecting := new(errs.Collecting)
	ret, err := listEngine().Parse(struct{}{}, lex("$a", ";", ";", "$b", ";"), nodes.CaptureStartLine, collecting)
	if err != nil {
		t.Fatal(err)
	}
	errList := collecting.Errors()
	if len(errList) != 1 {
		t.Fatalf("got %v", errList)
	}
	if errList[0].Message != "Syntax error, unexpected ';', expecting EOF or T_VARIABLE" {
		t.Fatalf("got %v", errList[0].Message)
	}
	if errList[0].StartLine() != 1 {
		t.Fatalf("got %v", errList[0].StartLine())
	}
	if !slices.Equal(ret.([]string), []string{"$a", "<error>", "$b"}) {
		t.Fatalf("got %v", ret)
	}
}

func TestEngineUnrecoverable(t *testing.T) {
	collecting := new(errs.Collecting)
	ret, err := listEngine().Parse(struct{}{}, lex("$a"), nodes.CaptureStartLine, collecting)
	if err != nil {
		t.Fatal(err)
	}
	if ret != nil {
		t.Fatalf("got %v", ret)
	}
	errList := collecting.Errors()
	if len(errList) != 1 || errList[0].Message != "Syntax error, unexpected EOF, expecting ';'" {
		t.Fatalf("got %v", errList)
	}
}

func TestEngineThrowing(t *testing.T) {
	ret, err := listEngine().Parse(struct{}{}, lex(";"), nodes.CaptureStartLine, errs.Throwing{})
	var parseErr *errs.Error
	if !errors.As(err, &parseErr) || ret != nil {
		t.Fatalf("got %v %v", ret, err)
	}
	if parseErr.Message != "Syntax error, unexpected ';', expecting EOF or T_VARIABLE" {
		t.Fatalf("got %v", parseErr.Message)
	}
}

func TestEngineInvalidToken(t *testing.T) {
	toks := []tokens.Token{
		{Kind: tokens.String, Text: "foo", Line: 1},
		{Kind: tokens.EOF, Text: "\x00", Line: 1, Pos: 3},
	}
	if _, err := listEngine().Parse(struct{}{}, toks, 0, nil); err == nil {
		t.Fatal("should fail")
	}
	if _, err := listEngine().Parse(struct{}{}, toks[:1], 0, nil); err == nil {
		t.Fatal("should fail")
	}
}
