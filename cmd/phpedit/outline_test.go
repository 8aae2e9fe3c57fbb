package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/grammars"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/pipelines"
	"github.com/reusee/phpedit/tokens"
)

func TestOutline(t *testing.T) {
	stmts, err := grammars.New(lexers.DefaultOptions()).Parse(
		[]byte("<?php\n$a = 1;\nf();\n"),
		errs.Throwing{},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := outline(stmts)
	expected := `0: Stmt_Expression @2
  expr: Expr_Assign @2
    var: Expr_Variable @2
      name: "a"
    expr: Scalar_Int @2
      value: 1
1: Stmt_Expression @3
`
	if !strings.HasPrefix(got, expected) {
		t.Fatalf("got %s", got)
	}
	if !strings.Contains(got, "    args: []\n") {
		t.Fatalf("got %s", got)
	}
}

func TestTokenList(t *testing.T) {
	got := tokenList([]tokens.Token{
		{Kind: tokens.OpenTag, Text: "<?php\n", Line: 1, Pos: 0},
		{Kind: tokens.Variable, Text: "$a", Line: 2, Pos: 6},
		{Kind: ';', Text: ";", Line: 2, Pos: 8},
	})
	expected := "1:0\tT_OPEN_TAG\t\"<?php\\n\"\n" +
		"2:6\tT_VARIABLE\t\"$a\"\n" +
		"2:8\t';'\t\";\"\n"
	if got != expected {
		t.Fatalf("got %q", got)
	}
}

func TestReport(t *testing.T) {
	color.NoColor = true

	buf := new(bytes.Buffer)
	report(buf, errors.New("foo"))
	if buf.String() != "foo\n" {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	report(buf, &pipelines.SyntaxError{
		Path: "a.php",
		Code: []byte("<?php\n$a = ;\n"),
		Errors: []*errs.Error{
			errs.New("Syntax error, unexpected ';'", nodes.Attributes{
				"startLine":    2,
				"startFilePos": 11,
				"endFilePos":   11,
			}),
		},
	})
	expected := "Syntax error, unexpected ';' at a.php:2:6\n$a = ;\n     ^\n"
	if buf.String() != expected {
		t.Fatalf("got %q", buf.String())
	}
}
