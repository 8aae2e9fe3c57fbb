package traversers

import (
	"testing"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

func withPos[T nodes.Node](n T, start, end int) T {
	n.SetAttribute(nodes.StartTokenPos, start)
	n.SetAttribute(nodes.EndTokenPos, end)
	return n
}

func TestCommentAnnotating(t *testing.T) {
	// <?php /** doc */ // line \n $x; $y /* inner */ ;
	toks := []tokens.Token{
		{Kind: tokens.OpenTag, Text: "<?php ", Line: 1, Pos: 0},
		{Kind: tokens.DocComment, Text: "/** doc */", Line: 1, Pos: 6},
		{Kind: tokens.Whitespace, Text: " ", Line: 1, Pos: 16},
		{Kind: tokens.Comment, Text: "// line\n", Line: 1, Pos: 17},
		{Kind: tokens.Variable, Text: "$x", Line: 2, Pos: 25},
		{Kind: tokens.Kind(';'), Text: ";", Line: 2, Pos: 27},
		{Kind: tokens.Whitespace, Text: " ", Line: 2, Pos: 28},
		{Kind: tokens.Variable, Text: "$y", Line: 2, Pos: 29},
		{Kind: tokens.Whitespace, Text: " ", Line: 2, Pos: 31},
		{Kind: tokens.Comment, Text: "/* inner */", Line: 2, Pos: 32},
		{Kind: tokens.Kind(';'), Text: ";", Line: 2, Pos: 43},
		{Kind: tokens.EOF, Pos: 44, Line: 2},
	}
	x := withPos(variable("x"), 4, 4)
	first := withPos(exprStmt(x), 4, 5)
	y := withPos(variable("y"), 7, 7)
	second := withPos(exprStmt(y), 7, 10)

	Traverse([]nodes.Stmt{first, second}, NewCommentAnnotatingVisitor(toks))

	comments := first.Comments()
	if len(comments) != 2 {
		t.Fatalf("got %v", len(comments))
	}
	if !comments[0].Doc || comments[0].Text != "/** doc */" || comments[0].StartTokenPos != 1 {
		t.Fatalf("got %+v", comments[0])
	}
	if comments[1].Text != "// line\n" || comments[1].EndLine != 2 {
		t.Fatalf("got %+v", comments[1])
	}
	if first.DocComment() != comments[0] {
		t.Fatal()
	}
	if len(x.Comments()) != 0 {
		t.Fatalf("got %v", x.Comments())
	}
	// trailing comments inside a statement are not attached to the next node
	if len(second.Comments()) != 0 || len(y.Comments()) != 0 {
		t.Fatal()
	}
}

func TestCommentFromToken(t *testing.T) {
	c := CommentFromToken(tokens.Token{
		Kind: tokens.Comment,
		Text: "/* open\n",
		Line: 3,
		Pos:  10,
	}, 7)
	if c.Text != "/* open\n*/" {
		t.Fatalf("got %q", c.Text)
	}
	if c.EndFilePos != 17 || c.EndLine != 4 || c.StartTokenPos != 7 || c.EndTokenPos != 7 {
		t.Fatalf("got %+v", c)
	}
}
