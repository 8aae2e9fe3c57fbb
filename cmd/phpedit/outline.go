package main

import (
	"fmt"
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// outline renders a tree one node or scalar per line:
//
//	0: Stmt_Expression @1
//	  expr: Expr_Assign @1
//	    var: Expr_Variable @1
//	      name: "a"
func outline(stmts []nodes.Stmt) string {
	var b strings.Builder
	for i, stmt := range stmts {
		outlineValue(&b, fmt.Sprint(i), stmt, 0)
	}
	return b.String()
}

func outlineValue(b *strings.Builder, label string, value any, depth int) {
	indent := strings.Repeat("  ", depth)
	switch value := value.(type) {
	case nil:
		fmt.Fprintf(b, "%s%s: null\n", indent, label)
	case nodes.Node:
		fmt.Fprintf(b, "%s%s: %s", indent, label, value.Type())
		if line := value.StartLine(); line > 0 {
			fmt.Fprintf(b, " @%d", line)
		}
		b.WriteString("\n")
		for _, field := range nodes.Fields(value) {
			outlineValue(b, field.Name, field.Get(), depth+1)
		}
	case []nodes.Node:
		if len(value) == 0 {
			fmt.Fprintf(b, "%s%s: []\n", indent, label)
			return
		}
		fmt.Fprintf(b, "%s%s:\n", indent, label)
		for i, elem := range value {
			outlineValue(b, fmt.Sprint(i), elem, depth+1)
		}
	case string:
		fmt.Fprintf(b, "%s%s: %q\n", indent, label, value)
	default:
		fmt.Fprintf(b, "%s%s: %v\n", indent, label, value)
	}
}

func tokenList(toks []tokens.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		fmt.Fprintf(&b, "%d:%d\t%s\t%q\n", tok.Line, tok.Pos, tok.Kind.Name(), tok.Text)
	}
	return b.String()
}
