package lalr

import (
	"strconv"
	"strings"
	"testing"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

type calc struct {
	reducers []parsers.Reducer[*calc]
}

func (c *calc) rule(g *Grammar, lhs, rhs string, fn parsers.Reducer[*calc]) {
	n := g.Rule(lhs, rhs)
	for len(c.reducers) <= n {
		c.reducers = append(c.reducers, nil)
	}
	c.reducers[n] = fn
}

func calcGrammar(t *testing.T, withPrec bool) (*parsers.Engine[*calc], *Report) {
	t.Helper()
	g := New()
	g.Terminal("T_LNUMBER", "'+'", "'*'", "'('", "')'", "';'", "T_IS_EQUAL")
	if withPrec {
		g.Nonassoc("T_IS_EQUAL")
		g.Left("'+'")
		g.Left("'*'")
	}
	c := new(calc)
	c.rule(g, "start", "stmts", nil)
	c.rule(g, "stmts", "", func(_ *calc, r *parsers.Reduction) any {
		return []any{}
	})
	c.rule(g, "stmts", "stmts stmt", func(_ *calc, r *parsers.Reduction) any {
		return append(r.Sem(1).([]any), r.Sem(2))
	})
	c.rule(g, "stmt", "expr ';'", nil)
	c.rule(g, "stmt", "error ';'", func(_ *calc, r *parsers.Reduction) any {
		return "error"
	})
	c.rule(g, "expr", "expr '+' expr", func(_ *calc, r *parsers.Reduction) any {
		return r.Sem(1).(int) + r.Sem(3).(int)
	})
	c.rule(g, "expr", "expr '*' expr", func(_ *calc, r *parsers.Reduction) any {
		return r.Sem(1).(int) * r.Sem(3).(int)
	})
	c.rule(g, "expr", "expr T_IS_EQUAL expr", func(_ *calc, r *parsers.Reduction) any {
		if r.Sem(1).(int) == r.Sem(3).(int) {
			return 1
		}
		return 0
	})
	c.rule(g, "expr", "'(' expr ')'", func(_ *calc, r *parsers.Reduction) any {
		return r.Sem(2)
	})
	c.rule(g, "expr", "T_LNUMBER", func(_ *calc, r *parsers.Reduction) any {
		n, _ := strconv.Atoi(r.Str(1))
		return n
	})
	tables, report, err := g.Compile("start")
	if err != nil {
		t.Fatal(err)
	}
	return &parsers.Engine[*calc]{
		Tables:   tables,
		Reducers: c.reducers,
	}, report
}

func parse(t *testing.T, engine *parsers.Engine[*calc], code string) (any, *errs.Collecting) {
	t.Helper()
	toks, err := lexers.New(lexers.DefaultOptions()).Tokenize([]byte(code), errs.Throwing{})
	if err != nil {
		t.Fatal(err)
	}
	collecting := new(errs.Collecting)
	ret, err := engine.Parse(new(calc), toks, nodes.CaptureAll, collecting)
	if err != nil {
		t.Fatal(err)
	}
	return ret, collecting
}

func TestPrecedence(t *testing.T) {
	engine, report := calcGrammar(t, true)
	if report.ShiftReduce != 0 || report.ReduceReduce != 0 {
		t.Fatalf("got %v", report.Conflicts)
	}
	if report.NonLeafStates >= report.States {
		t.Fatalf("no leaf states: %+v", report)
	}
	ret, collecting := parse(t, engine, "<?php 1 + 2 * 3; (1 + 2) * 3; 2 * 3 + 1;")
	if collecting.HasErrors() {
		t.Fatal(collecting.Errors())
	}
	got := ret.([]any)
	if len(got) != 3 || got[0] != 7 || got[1] != 9 || got[2] != 7 {
		t.Fatalf("got %v", got)
	}
}

func TestConflicts(t *testing.T) {
	engine, report := calcGrammar(t, false)
	// '+' '*' and '==' each conflict with the three binary rules
	if report.ShiftReduce != 9 {
		t.Fatalf("got %d: %s", report.ShiftReduce, strings.Join(report.Conflicts, "\n"))
	}
	// shifting makes everything right associative
	ret, _ := parse(t, engine, "<?php 2 * 3 + 1;")
	if got := ret.([]any); got[0] != 8 {
		t.Fatalf("got %v", got)
	}
}

func TestNonassoc(t *testing.T) {
	engine, _ := calcGrammar(t, true)
	ret, collecting := parse(t, engine, "<?php 1 == 1; 1 == 1 == 1; 2;")
	if len(collecting.Errors()) != 1 {
		t.Fatalf("got %v", collecting.Errors())
	}
	msg := collecting.Errors()[0].Message
	if !strings.HasPrefix(msg, "Syntax error, unexpected T_IS_EQUAL") {
		t.Fatalf("got %v", msg)
	}
	got := ret.([]any)
	if len(got) != 3 || got[0] != 1 || got[1] != "error" || got[2] != 2 {
		t.Fatalf("got %v", got)
	}
}

func TestRecovery(t *testing.T) {
	engine, _ := calcGrammar(t, true)
	ret, collecting := parse(t, engine, "<?php 1 +;\n2 * * 3;\n4;")
	errors := collecting.Errors()
	if len(errors) != 2 {
		t.Fatalf("got %v", errors)
	}
	if errors[0].Message != "Syntax error, unexpected ';', expecting T_LNUMBER or '('" {
		t.Fatalf("got %v", errors[0].Message)
	}
	if errors[1].StartLine() != 2 {
		t.Fatalf("got %v", errors[1])
	}
	got := ret.([]any)
	if len(got) != 3 || got[0] != "error" || got[1] != "error" || got[2] != 4 {
		t.Fatalf("got %v", got)
	}
}

func TestUnrecoverable(t *testing.T) {
	engine, _ := calcGrammar(t, true)
	ret, collecting := parse(t, engine, "<?php 1 + 2")
	if ret != nil {
		t.Fatalf("got %v", ret)
	}
	errors := collecting.Errors()
	if len(errors) != 1 || !strings.HasPrefix(errors[0].Message, "Syntax error, unexpected EOF") {
		t.Fatalf("got %v", errors)
	}
}

func TestCompileErrors(t *testing.T) {
	g := New()
	g.Terminal("T_LNUMBER")
	g.Rule("start", "expr")
	if _, _, err := g.Compile("start"); err == nil || !strings.Contains(err.Error(), "undefined symbol expr") {
		t.Fatalf("got %v", err)
	}

	g = New()
	g.Terminal("T_LNUMBER")
	g.Rule("start", "T_LNUMBER %prec NOPE")
	if _, _, err := g.Compile("start"); err == nil || !strings.Contains(err.Error(), "NOPE") {
		t.Fatalf("got %v", err)
	}

	if _, _, err := g.Compile("missing"); err == nil {
		t.Fatal("should fail")
	}
}

func TestReduceReduce(t *testing.T) {
	g := New()
	g.Terminal("T_LNUMBER")
	g.Rule("start", "a")
	g.Rule("start", "b")
	g.Rule("a", "T_LNUMBER")
	g.Rule("b", "T_LNUMBER")
	_, report, err := g.Compile("start")
	if err != nil {
		t.Fatal(err)
	}
	if report.ReduceReduce != 1 {
		t.Fatalf("got %+v", report)
	}
}
