package printers

import (
	"testing"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/tokens"
)

func tokenize(t *testing.T, code string) []tokens.Token {
	t.Helper()
	toks, err := lexers.New(lexers.DefaultOptions()).Tokenize([]byte(code), errs.Throwing{})
	if err != nil {
		t.Fatal(err)
	}
	return toks
}

func indexOf(t *testing.T, toks []tokens.Token, text string) int {
	t.Helper()
	for i, tok := range toks {
		if tok.Text == text {
			return i
		}
	}
	t.Fatalf("no token %q", text)
	return -1
}

func TestTokenStream(t *testing.T) {
	toks := tokenize(t, "<?php\nif ($a) {\n    $b;\n\t$c;\n}\n")
	stream := NewTokenStream(toks, 4)

	a := indexOf(t, toks, "$a")
	b := indexOf(t, toks, "$b")
	c := indexOf(t, toks, "$c")

	if !stream.HaveParens(a, a) {
		t.Fatal("expected parens")
	}
	if stream.HaveParens(b, b) {
		t.Fatal("unexpected parens")
	}
	if stream.HaveBraces(a, a) {
		t.Fatal("unexpected braces")
	}

	if got := stream.IndentationBefore(a); got != 0 {
		t.Fatalf("got %v", got)
	}
	if got := stream.IndentationBefore(b); got != 4 {
		t.Fatalf("got %v", got)
	}
	if got := stream.IndentationBefore(c); got != 4 {
		t.Fatalf("got %v", got)
	}

	semicolon := stream.FindRight(b, ';')
	if semicolon != b+1 {
		t.Fatalf("got %v", semicolon)
	}
	if got := stream.FindRight(c, tokens.Class); got != -1 {
		t.Fatalf("got %v", got)
	}

	if got := stream.TokenCode(b, c+1, 0); got != "$b;\n\t$c" {
		t.Fatalf("got %q", got)
	}
	if got := stream.TokenCode(b, c+1, 2); got != "$b;\n  \t$c" {
		t.Fatalf("got %q", got)
	}

	// skipping over the parenthesis around $a
	left, ok := stream.SkipLeft(a-1, '(')
	if !ok || toks[left].Kind != tokens.If {
		t.Fatalf("got %v %v", left, ok)
	}
	if _, ok := stream.SkipLeft(a-1, ';'); ok {
		t.Fatal("should fail")
	}
	right, ok := stream.SkipRight(a+1, ')')
	if !ok || toks[right].Kind != '{' {
		t.Fatalf("got %v %v", right, ok)
	}

	if !stream.HaveTagInRange(0, a) {
		t.Fatal("expected open tag")
	}
	if stream.HaveTagInRange(a, c) {
		t.Fatal("unexpected tag")
	}
}

func TestTokenCodeKeepsStrings(t *testing.T) {
	toks := tokenize(t, "<?php\n$a = 'x\ny';\n")
	stream := NewTokenStream(toks, 4)
	s := indexOf(t, toks, "'x\ny'")
	if got := stream.TokenCode(s, s+1, 4); got != "'x\ny'" {
		t.Fatalf("got %q", got)
	}
}
