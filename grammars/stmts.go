package grammars

import (
	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

// toStmts unwraps the statements of a block, so that bodies written with or
// without braces look the same.
func toStmts(v any) []nodes.Stmt {
	switch v := v.(type) {
	case *nodes.Block:
		if v.Stmts == nil {
			return []nodes.Stmt{}
		}
		return v.Stmts
	case nodes.Stmt:
		if v == nil {
			return []nodes.Stmt{}
		}
		return []nodes.Stmt{v}
	}
	return []nodes.Stmt{}
}

func pushStmt(_ *parseState, r *parsers.Reduction) any {
	stmts := list[nodes.Stmt](r, 1)
	if stmt := sem[nodes.Stmt](r, 2); stmt != nil {
		stmts = append(stmts, stmt)
	}
	return stmts
}

// withTrailingNop anchors comments between the last statement of a list
// and the closing token.
func withTrailingNop(st *parseState, r *parsers.Reduction) any {
	stmts := list[nodes.Stmt](r, 1)
	if nop := st.maybeCreateZeroLengthNop(r, r.Lookahead()); nop != nil {
		stmts = append(stmts, nop)
	}
	return stmts
}

func (b *builder) topStatements() {
	b.rule("start", "top_statement_list", func(st *parseState, r *parsers.Reduction) any {
		return st.handleNamespaces(r, list[nodes.Stmt](r, 1))
	})
	b.rule("top_statement_list_ex", "top_statement_list_ex top_statement", pushStmt)
	b.rule("top_statement_list_ex", "", empty[nodes.Stmt]())
	b.rule("top_statement_list", "top_statement_list_ex", withTrailingNop)

	b.rule("top_statement", "statement", nil)
	b.rule("top_statement", "function_declaration_statement", nil)
	b.rule("top_statement", "class_declaration_statement", nil)
	b.rule("top_statement", "interface_declaration_statement", nil)

	b.rule("top_statement", "T_HALT_COMPILER '(' ')' ';'", func(_ *parseState, r *parsers.Reduction) any {
		attrs := r.Attrs()
		return with(&nodes.HaltCompiler{
			Remaining: r.ConsumeRest(),
		}, attrs)
	})

	b.rule("top_statement", "T_NAMESPACE namespace_declaration_name ';'", func(_ *parseState, r *parsers.Reduction) any {
		ns := with(&nodes.Namespace{
			Name: sem[*nodes.Name](r, 2),
		}, r.Attrs())
		ns.SetAttribute(nodes.KindKey, nodes.NamespaceKindSemicolon)
		return ns
	})
	b.rule("top_statement", "T_NAMESPACE namespace_declaration_name '{' top_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		ns := with(&nodes.Namespace{
			Name:  sem[*nodes.Name](r, 2),
			Stmts: list[nodes.Stmt](r, 4),
		}, r.Attrs())
		ns.SetAttribute(nodes.KindKey, nodes.NamespaceKindBraced)
		checkNamespace(r, ns)
		return ns
	})
	b.rule("top_statement", "T_NAMESPACE '{' top_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		ns := with(&nodes.Namespace{
			Stmts: list[nodes.Stmt](r, 3),
		}, r.Attrs())
		ns.SetAttribute(nodes.KindKey, nodes.NamespaceKindBraced)
		checkNamespace(r, ns)
		return ns
	})
	b.alternatives("namespace_declaration_name", func(_ *parseState, r *parsers.Reduction) any {
		return nameAt(r, 1)
	}, "T_STRING", "T_NAME_QUALIFIED")

	b.rule("top_statement", "T_USE use_declarations ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Use{
			UseType: nodes.UseNormal,
			Uses:    list[*nodes.UseItem](r, 2),
		}, r.Attrs())
	})
	b.rule("top_statement", "T_USE use_type use_declarations ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Use{
			UseType: sem[nodes.UseKind](r, 2),
			Uses:    list[*nodes.UseItem](r, 3),
		}, r.Attrs())
	})
	b.rule("use_type", "T_FUNCTION", constant(nodes.UseFunction))
	b.rule("use_type", "T_CONST", constant(nodes.UseConstant))
	b.rule("use_declarations", "use_declarations ',' use_declaration", push[*nodes.UseItem](1, 3))
	b.rule("use_declarations", "use_declaration", one[*nodes.UseItem](1))
	b.rule("use_declaration", "legacy_namespace_name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.UseItem{
			UseType: nodes.UseUnknown,
			Name:    sem[*nodes.Name](r, 1),
		}, r.Attrs())
	})
	b.rule("use_declaration", "legacy_namespace_name T_AS identifier_not_reserved", func(_ *parseState, r *parsers.Reduction) any {
		item := with(&nodes.UseItem{
			UseType: nodes.UseUnknown,
			Name:    sem[*nodes.Name](r, 1),
			Alias:   sem[*nodes.Identifier](r, 3),
		}, r.Attrs())
		checkUseItem(r, item, 3)
		return item
	})
	b.alternatives("legacy_namespace_name", func(_ *parseState, r *parsers.Reduction) any {
		name := nameAt(r, 1)
		// a leading separator is allowed and meaningless in use declarations
		name.Kind = nodes.NameNormal
		return name
	}, "T_STRING", "T_NAME_QUALIFIED", "T_NAME_FULLY_QUALIFIED")

	b.rule("top_statement", "T_CONST constant_declaration_list ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ConstStmt{
			Consts: list[*nodes.Const](r, 2),
		}, r.Attrs())
	})
	b.rule("constant_declaration_list", "constant_declaration_list ',' constant_declaration", push[*nodes.Const](1, 3))
	b.rule("constant_declaration_list", "constant_declaration", one[*nodes.Const](1))
	b.rule("constant_declaration", "identifier_not_reserved '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Const{
			Name:  sem[*nodes.Identifier](r, 1),
			Value: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})

	b.rule("identifier_not_reserved", "T_STRING", func(_ *parseState, r *parsers.Reduction) any {
		return identifierAt(r, 1)
	})
	b.rule("identifier_maybe_reserved", "T_STRING", func(_ *parseState, r *parsers.Reduction) any {
		return identifierAt(r, 1)
	})
	b.rule("identifier_maybe_reserved", "semi_reserved", func(_ *parseState, r *parsers.Reduction) any {
		return identifierAt(r, 1)
	})
	for _, kw := range semiReserved {
		b.rule("semi_reserved", kw, nil)
	}
}

// keywords usable as method, class constant and argument names
var semiReserved = []string{
	"T_INCLUDE", "T_INCLUDE_ONCE", "T_REQUIRE", "T_REQUIRE_ONCE",
	"T_LOGICAL_OR", "T_LOGICAL_XOR", "T_LOGICAL_AND", "T_INSTANCEOF",
	"T_NEW", "T_CLONE", "T_EXIT", "T_IF", "T_ELSEIF", "T_ELSE", "T_ECHO",
	"T_DO", "T_WHILE", "T_FOR", "T_FOREACH", "T_DECLARE", "T_AS", "T_TRY",
	"T_CATCH", "T_FINALLY", "T_THROW", "T_USE", "T_GLOBAL", "T_VAR",
	"T_UNSET", "T_ISSET", "T_EMPTY", "T_CONTINUE", "T_FUNCTION", "T_CONST",
	"T_RETURN", "T_PRINT", "T_YIELD", "T_LIST", "T_SWITCH", "T_CASE",
	"T_DEFAULT", "T_BREAK", "T_ARRAY", "T_EXTENDS", "T_IMPLEMENTS",
	"T_NAMESPACE", "T_INTERFACE", "T_CLASS", "T_CLASS_C", "T_TRAIT_C",
	"T_FUNC_C", "T_METHOD_C", "T_LINE", "T_FILE", "T_DIR", "T_NS_C",
	"T_HALT_COMPILER", "T_FN",
	"T_STATIC", "T_ABSTRACT", "T_FINAL", "T_PRIVATE", "T_PROTECTED",
	"T_PUBLIC", "T_READONLY",
}

func (b *builder) statements() {
	b.rule("inner_statement_list_ex", "inner_statement_list_ex inner_statement", pushStmt)
	b.rule("inner_statement_list_ex", "", empty[nodes.Stmt]())
	b.rule("inner_statement_list", "inner_statement_list_ex", withTrailingNop)

	b.rule("inner_statement", "statement", nil)
	b.rule("inner_statement", "function_declaration_statement", nil)
	b.rule("inner_statement", "class_declaration_statement", nil)
	b.rule("inner_statement", "interface_declaration_statement", nil)
	b.rule("inner_statement", "T_HALT_COMPILER", func(_ *parseState, r *parsers.Reduction) any {
		r.Fail(errs.New("__HALT_COMPILER() can only be used from the outermost scope", r.Attrs()))
		return nil
	})

	b.rule("statement", "non_empty_statement", nil)
	b.rule("statement", "';'", func(st *parseState, r *parsers.Reduction) any {
		return st.maybeCreateNop(r, r.StartTokenPos(1), r.EndTokenPos(1))
	})
	// recovery point; the statement is dropped
	b.rule("statement", "error", nothing)

	b.rule("non_empty_statement", "'{' inner_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Block{
			Stmts: list[nodes.Stmt](r, 2),
		}, r.Attrs())
	})

	b.rule("non_empty_statement", "T_IF '(' expr ')' statement elseif_list else_single", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.If{
			Cond:    sem[nodes.Expr](r, 3),
			Stmts:   toStmts(r.Sem(5)),
			ElseIfs: list[*nodes.ElseIf](r, 6),
			Else:    sem[*nodes.Else](r, 7),
		}, r.Attrs())
	})
	b.rule("elseif_list", "", empty[*nodes.ElseIf]())
	b.rule("elseif_list", "elseif_list T_ELSEIF '(' expr ')' statement", func(_ *parseState, r *parsers.Reduction) any {
		return append(list[*nodes.ElseIf](r, 1), with(&nodes.ElseIf{
			Cond:  sem[nodes.Expr](r, 4),
			Stmts: toStmts(r.Sem(6)),
		}, r.AttrsRange(2, 6)))
	})
	b.rule("else_single", "%prec T_NOELSE", nothing)
	b.rule("else_single", "T_ELSE statement", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Else{
			Stmts: toStmts(r.Sem(2)),
		}, r.Attrs())
	})

	b.rule("non_empty_statement", "T_WHILE '(' expr ')' statement", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.While{
			Cond:  sem[nodes.Expr](r, 3),
			Stmts: toStmts(r.Sem(5)),
		}, r.Attrs())
	})
	b.rule("non_empty_statement", "T_DO statement T_WHILE '(' expr ')' ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Do{
			Stmts: toStmts(r.Sem(2)),
			Cond:  sem[nodes.Expr](r, 5),
		}, r.Attrs())
	})
	b.rule("non_empty_statement", "T_FOR '(' for_exprs ';' for_exprs ';' for_exprs ')' statement", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.For{
			Init:  list[nodes.Expr](r, 3),
			Cond:  list[nodes.Expr](r, 5),
			Loop:  list[nodes.Expr](r, 7),
			Stmts: toStmts(r.Sem(9)),
		}, r.Attrs())
	})
	b.rule("for_exprs", "", empty[nodes.Expr]())
	b.rule("for_exprs", "non_empty_for_exprs", nil)
	b.rule("non_empty_for_exprs", "non_empty_for_exprs ',' expr", push[nodes.Expr](1, 3))
	b.rule("non_empty_for_exprs", "expr", one[nodes.Expr](1))

	b.rule("non_empty_statement", "T_SWITCH '(' expr ')' '{' case_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Switch{
			Cond:  sem[nodes.Expr](r, 3),
			Cases: list[*nodes.Case](r, 6),
		}, r.Attrs())
	})
	b.rule("case_list", "", empty[*nodes.Case]())
	b.rule("case_list", "case_list T_CASE expr case_separator inner_statement_list", func(_ *parseState, r *parsers.Reduction) any {
		return append(list[*nodes.Case](r, 1), with(&nodes.Case{
			Cond:  sem[nodes.Expr](r, 3),
			Stmts: list[nodes.Stmt](r, 5),
		}, r.AttrsRange(2, 5)))
	})
	b.rule("case_list", "case_list T_DEFAULT case_separator inner_statement_list", func(_ *parseState, r *parsers.Reduction) any {
		return append(list[*nodes.Case](r, 1), with(&nodes.Case{
			Stmts: list[nodes.Stmt](r, 4),
		}, r.AttrsRange(2, 4)))
	})
	b.rule("case_separator", "':'", nil)
	b.rule("case_separator", "';'", nil)

	b.rule("non_empty_statement", "T_BREAK optional_expr ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Break{
			Num: sem[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("non_empty_statement", "T_CONTINUE optional_expr ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Continue{
			Num: sem[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("non_empty_statement", "T_RETURN optional_expr ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Return{
			Expr: sem[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("optional_expr", "", nothing)
	b.rule("optional_expr", "expr", nil)

	b.rule("non_empty_statement", "T_GLOBAL global_var_list ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Global{
			Vars: list[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("global_var_list", "global_var_list ',' simple_variable", push[nodes.Expr](1, 3))
	b.rule("global_var_list", "simple_variable", one[nodes.Expr](1))

	b.rule("non_empty_statement", "T_STATIC static_var_list ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Static{
			Vars: list[*nodes.StaticVar](r, 2),
		}, r.Attrs())
	})
	b.rule("static_var_list", "static_var_list ',' static_var", push[*nodes.StaticVar](1, 3))
	b.rule("static_var_list", "static_var", one[*nodes.StaticVar](1))
	b.rule("static_var", "plain_variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.StaticVar{
			Var: sem[*nodes.Variable](r, 1),
		}, r.Attrs())
	})
	b.rule("static_var", "plain_variable '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.StaticVar{
			Var:     sem[*nodes.Variable](r, 1),
			Default: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})

	b.rule("non_empty_statement", "T_ECHO echo_expr_list ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Echo{
			Exprs: list[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("echo_expr_list", "echo_expr_list ',' expr", push[nodes.Expr](1, 3))
	b.rule("echo_expr_list", "expr", one[nodes.Expr](1))

	b.rule("non_empty_statement", "T_INLINE_HTML", func(st *parseState, r *parsers.Reduction) any {
		html := with(&nodes.InlineHTML{
			Value: r.Str(1),
		}, r.Attrs())
		html.SetAttribute(nodes.HasLeadingNewlineKey, st.inlineHTMLHasLeadingNewline(r.StartTokenPos(1)))
		return html
	})

	b.rule("non_empty_statement", "expr ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Expression{
			Expr: sem[nodes.Expr](r, 1),
		}, r.Attrs())
	})

	b.rule("non_empty_statement", "T_UNSET '(' variables_list possible_comma ')' ';'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Unset{
			Vars: list[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("variables_list", "variables_list ',' variable", push[nodes.Expr](1, 3))
	b.rule("variables_list", "variable", one[nodes.Expr](1))
	b.rule("possible_comma", "", nothing)
	b.rule("possible_comma", "','", nothing)

	b.rule("non_empty_statement", "T_FOREACH '(' expr T_AS foreach_variable ')' statement", func(_ *parseState, r *parsers.Reduction) any {
		value := sem[foreachVariable](r, 5)
		return with(&nodes.Foreach{
			Expr:     sem[nodes.Expr](r, 3),
			ByRef:    value.byRef,
			ValueVar: value.expr,
			Stmts:    toStmts(r.Sem(7)),
		}, r.Attrs())
	})
	b.rule("non_empty_statement", "T_FOREACH '(' expr T_AS foreach_variable T_DOUBLE_ARROW foreach_variable ')' statement", func(_ *parseState, r *parsers.Reduction) any {
		key := sem[foreachVariable](r, 5)
		value := sem[foreachVariable](r, 7)
		return with(&nodes.Foreach{
			Expr:     sem[nodes.Expr](r, 3),
			KeyVar:   key.expr,
			ByRef:    value.byRef,
			ValueVar: value.expr,
			Stmts:    toStmts(r.Sem(9)),
		}, r.Attrs())
	})
	b.rule("foreach_variable", "variable", func(_ *parseState, r *parsers.Reduction) any {
		return foreachVariable{
			expr: sem[nodes.Expr](r, 1),
		}
	})
	b.rule("foreach_variable", "'&' variable", func(_ *parseState, r *parsers.Reduction) any {
		return foreachVariable{
			expr:  sem[nodes.Expr](r, 2),
			byRef: true,
		}
	})
	b.rule("foreach_variable", "list_expr", func(_ *parseState, r *parsers.Reduction) any {
		return foreachVariable{
			expr: sem[nodes.Expr](r, 1),
		}
	})
	b.rule("foreach_variable", "array_short_syntax", func(st *parseState, r *parsers.Reduction) any {
		return foreachVariable{
			expr: st.fixupArrayDestructuring(sem[*nodes.ArrayExpr](r, 1)),
		}
	})

	b.rule("non_empty_statement", "T_DECLARE '(' declare_list ')' declare_statement", func(_ *parseState, r *parsers.Reduction) any {
		stmts, _ := r.Sem(5).([]nodes.Stmt)
		return with(&nodes.Declare{
			Declares: list[*nodes.DeclareItem](r, 3),
			Stmts:    stmts,
		}, r.Attrs())
	})
	b.rule("declare_statement", "non_empty_statement", func(_ *parseState, r *parsers.Reduction) any {
		return toStmts(r.Sem(1))
	})
	b.rule("declare_statement", "';'", nothing)
	b.rule("declare_list", "declare_list ',' declare_item", push[*nodes.DeclareItem](1, 3))
	b.rule("declare_list", "declare_item", one[*nodes.DeclareItem](1))
	b.rule("declare_item", "identifier_not_reserved '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.DeclareItem{
			Key:   sem[*nodes.Identifier](r, 1),
			Value: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})

	b.rule("non_empty_statement", "T_TRY '{' inner_statement_list '}' catches optional_finally", func(_ *parseState, r *parsers.Reduction) any {
		try := with(&nodes.TryCatch{
			Stmts:   list[nodes.Stmt](r, 3),
			Catches: list[*nodes.Catch](r, 5),
			Finally: sem[*nodes.Finally](r, 6),
		}, r.Attrs())
		checkTryCatch(r, try)
		return try
	})
	b.rule("catches", "", empty[*nodes.Catch]())
	b.rule("catches", "catches catch", push[*nodes.Catch](1, 2))
	b.rule("catch", "T_CATCH '(' catch_name_list optional_plain_variable ')' '{' inner_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Catch{
			Types: list[*nodes.Name](r, 3),
			Var:   sem[*nodes.Variable](r, 4),
			Stmts: list[nodes.Stmt](r, 7),
		}, r.Attrs())
	})
	b.rule("catch_name_list", "catch_name_list '|' class_name", push[*nodes.Name](1, 3))
	b.rule("catch_name_list", "class_name", one[*nodes.Name](1))
	b.rule("optional_plain_variable", "", nothing)
	b.rule("optional_plain_variable", "plain_variable", nil)
	b.rule("optional_finally", "", nothing)
	b.rule("optional_finally", "T_FINALLY '{' inner_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Finally{
			Stmts: list[nodes.Stmt](r, 3),
		}, r.Attrs())
	})
}

type foreachVariable struct {
	expr  nodes.Expr
	byRef bool
}
