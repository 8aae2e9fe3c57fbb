package lalr

import (
	"strings"
)

type Assoc uint8

const (
	AssocNone Assoc = iota
	AssocLeft
	AssocRight
	AssocNonassoc
)

const (
	EOFName   = "EOF"
	ErrorName = "error"
)

type precedence struct {
	level int
	assoc Assoc
}

// Grammar collects terminals, precedence declarations and rules.
// Rule 0 is reserved for the augmented start rule created by Compile.
type Grammar struct {
	terminals     []string
	terminalIndex map[string]int
	prec          map[string]precedence
	level         int
	rules         []ruleDef
}

type ruleDef struct {
	lhs  string
	rhs  []string
	prec string
}

func New() *Grammar {
	g := &Grammar{
		terminalIndex: make(map[string]int),
		prec:          make(map[string]precedence),
	}
	g.Terminal(EOFName, ErrorName)
	g.rules = append(g.rules, ruleDef{})
	return g
}

func (g *Grammar) Terminal(names ...string) {
	for _, name := range names {
		if _, ok := g.terminalIndex[name]; ok {
			continue
		}
		g.terminalIndex[name] = len(g.terminals)
		g.terminals = append(g.terminals, name)
	}
}

func (g *Grammar) IsTerminal(name string) bool {
	_, ok := g.terminalIndex[name]
	return ok
}

// Left, Right, Nonassoc and Precedence each declare one precedence level,
// higher than all earlier levels. Names need not be terminals; such names
// are only usable with %prec.
func (g *Grammar) Left(names ...string) {
	g.declare(AssocLeft, names)
}

func (g *Grammar) Right(names ...string) {
	g.declare(AssocRight, names)
}

func (g *Grammar) Nonassoc(names ...string) {
	g.declare(AssocNonassoc, names)
}

func (g *Grammar) Precedence(names ...string) {
	g.declare(AssocNone, names)
}

func (g *Grammar) declare(assoc Assoc, names []string) {
	g.level++
	for _, name := range names {
		g.prec[name] = precedence{
			level: g.level,
			assoc: assoc,
		}
	}
}

// Rule adds lhs → rhs, where rhs is a space separated symbol list
// optionally ending with "%prec NAME". It returns the rule number.
func (g *Grammar) Rule(lhs string, rhs string) int {
	fields := strings.Fields(rhs)
	var prec string
	if n := len(fields); n >= 2 && fields[n-2] == "%prec" {
		prec = fields[n-1]
		fields = fields[:n-2]
	}
	g.rules = append(g.rules, ruleDef{
		lhs:  lhs,
		rhs:  fields,
		prec: prec,
	})
	return len(g.rules) - 1
}

func (g *Grammar) NumRules() int {
	return len(g.rules)
}
