package main

import (
	"github.com/reusee/phpedit/cmds"
)

type action struct {
	kind string
	path string
	expr string
}

var actions []action

var (
	writeBack = cmds.Switch("-w", "write reprinted code back to the files instead of stdout")
	devMode   = cmds.Switch("-dev", "parse printed code again to verify it")
)

func init() {
	for _, def := range []struct {
		kind string
		desc string
	}{
		{"tokens", "list the tokens of files"},
		{"parse", "print an outline of the syntax trees of files"},
		{"dump", "print the syntax trees of files as JSON"},
		{"undump", "print PHP code from JSON syntax trees"},
		{"print", "print files in the standard style"},
		{"reprint", "apply rewrite rules, keeping the original formatting"},
		{"fold", "fold constant expressions, keeping the original formatting"},
		{"check", "report syntax errors"},
		{"watch", "report syntax errors whenever a file changes"},
		{"tap", "explore the syntax tree of a file in a starlark REPL"},
	} {
		cmds.Define(def.kind, cmds.Func(func(path string) {
			actions = append(actions, action{
				kind: def.kind,
				path: path,
			})
		}).Args("path").Desc(def.desc))
	}

	cmds.Define("query", cmds.Func(func(path string, expr string) {
		actions = append(actions, action{
			kind: "query",
			path: path,
			expr: expr,
		})
	}).Args("path", "expr").Desc("evaluate a starlark expression over stmts, tokens and code of files"))
}
