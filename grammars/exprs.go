package grammars

import (
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

var binaryOperators = []struct {
	token string
	op    nodes.BinaryOpKind
}{
	{"T_BOOLEAN_OR", nodes.OpBooleanOr},
	{"T_BOOLEAN_AND", nodes.OpBooleanAnd},
	{"T_LOGICAL_OR", nodes.OpLogicalOr},
	{"T_LOGICAL_AND", nodes.OpLogicalAnd},
	{"T_LOGICAL_XOR", nodes.OpLogicalXor},
	{"'|'", nodes.OpBitwiseOr},
	{"'&'", nodes.OpBitwiseAnd},
	{"'^'", nodes.OpBitwiseXor},
	{"'.'", nodes.OpConcat},
	{"'+'", nodes.OpPlus},
	{"'-'", nodes.OpMinus},
	{"'*'", nodes.OpMul},
	{"'/'", nodes.OpDiv},
	{"'%'", nodes.OpMod},
	{"T_SL", nodes.OpShiftLeft},
	{"T_SR", nodes.OpShiftRight},
	{"T_POW", nodes.OpPow},
	{"T_IS_IDENTICAL", nodes.OpIdentical},
	{"T_IS_NOT_IDENTICAL", nodes.OpNotIdentical},
	{"T_IS_EQUAL", nodes.OpEqual},
	{"T_IS_NOT_EQUAL", nodes.OpNotEqual},
	{"T_SPACESHIP", nodes.OpSpaceship},
	{"'<'", nodes.OpSmaller},
	{"T_IS_SMALLER_OR_EQUAL", nodes.OpSmallerOrEqual},
	{"'>'", nodes.OpGreater},
	{"T_IS_GREATER_OR_EQUAL", nodes.OpGreaterOrEqual},
	{"T_COALESCE", nodes.OpCoalesce},
}

var assignOperators = []struct {
	token string
	op    nodes.AssignOpKind
}{
	{"T_PLUS_EQUAL", nodes.AssignPlus},
	{"T_MINUS_EQUAL", nodes.AssignMinus},
	{"T_MUL_EQUAL", nodes.AssignMul},
	{"T_DIV_EQUAL", nodes.AssignDiv},
	{"T_CONCAT_EQUAL", nodes.AssignConcat},
	{"T_MOD_EQUAL", nodes.AssignMod},
	{"T_AND_EQUAL", nodes.AssignBitwiseAnd},
	{"T_OR_EQUAL", nodes.AssignBitwiseOr},
	{"T_XOR_EQUAL", nodes.AssignBitwiseXor},
	{"T_SL_EQUAL", nodes.AssignShiftLeft},
	{"T_SR_EQUAL", nodes.AssignShiftRight},
	{"T_POW_EQUAL", nodes.AssignPow},
	{"T_COALESCE_EQUAL", nodes.AssignCoalesce},
}

var casts = []struct {
	token string
	kind  nodes.CastKind
}{
	{"T_INT_CAST", nodes.CastInt},
	{"T_DOUBLE_CAST", nodes.CastDouble},
	{"T_STRING_CAST", nodes.CastString},
	{"T_ARRAY_CAST", nodes.CastArray},
	{"T_OBJECT_CAST", nodes.CastObject},
	{"T_BOOL_CAST", nodes.CastBool},
	{"T_UNSET_CAST", nodes.CastUnset},
}

var includes = []struct {
	token string
	kind  nodes.IncludeKind
}{
	{"T_INCLUDE", nodes.IncludeInclude},
	{"T_INCLUDE_ONCE", nodes.IncludeIncludeOnce},
	{"T_REQUIRE", nodes.IncludeRequire},
	{"T_REQUIRE_ONCE", nodes.IncludeRequireOnce},
}

func unary(fn func(nodes.Expr) nodes.Expr) reducer {
	return func(_ *parseState, r *parsers.Reduction) any {
		return with(fn(sem[nodes.Expr](r, 2)), r.Attrs())
	}
}

func (b *builder) expressions() {
	b.rule("expr", "variable", nil)
	b.rule("expr", "list_expr '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Assign{
			Var:  sem[nodes.Expr](r, 1),
			Expr: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("expr", "array_short_syntax '=' expr", func(st *parseState, r *parsers.Reduction) any {
		return with(&nodes.Assign{
			Var:  st.fixupArrayDestructuring(sem[*nodes.ArrayExpr](r, 1)),
			Expr: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("expr", "variable '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Assign{
			Var:  sem[nodes.Expr](r, 1),
			Expr: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("expr", "variable '=' '&' variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.AssignRef{
			Var:  sem[nodes.Expr](r, 1),
			Expr: sem[nodes.Expr](r, 4),
		}, r.Attrs())
	})
	b.rule("expr", "new_expr", nil)
	b.rule("expr", "T_CLONE expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.Clone{Expr: e}
	}))

	for _, op := range assignOperators {
		op := op
		b.rule("expr", "variable "+op.token+" expr", func(_ *parseState, r *parsers.Reduction) any {
			return with(&nodes.AssignOp{
				Op:   op.op,
				Var:  sem[nodes.Expr](r, 1),
				Expr: sem[nodes.Expr](r, 3),
			}, r.Attrs())
		})
	}

	b.rule("expr", "variable T_INC", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PostInc{Var: sem[nodes.Expr](r, 1)}, r.Attrs())
	})
	b.rule("expr", "T_INC variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PreInc{Var: sem[nodes.Expr](r, 2)}, r.Attrs())
	})
	b.rule("expr", "variable T_DEC", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PostDec{Var: sem[nodes.Expr](r, 1)}, r.Attrs())
	})
	b.rule("expr", "T_DEC variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PreDec{Var: sem[nodes.Expr](r, 2)}, r.Attrs())
	})

	for _, op := range binaryOperators {
		op := op
		b.rule("expr", "expr "+op.token+" expr", func(_ *parseState, r *parsers.Reduction) any {
			return with(&nodes.BinaryOp{
				Op:    op.op,
				Left:  sem[nodes.Expr](r, 1),
				Right: sem[nodes.Expr](r, 3),
			}, r.Attrs())
		})
	}

	b.rule("expr", "'+' expr %prec T_INC", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.UnaryPlus{Expr: e}
	}))
	b.rule("expr", "'-' expr %prec T_INC", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.UnaryMinus{Expr: e}
	}))
	b.rule("expr", "'!' expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.BooleanNot{Expr: e}
	}))
	b.rule("expr", "'~' expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.BitwiseNot{Expr: e}
	}))
	b.rule("expr", "'(' expr ')'", pick(2))
	b.rule("expr", "expr T_INSTANCEOF class_name_reference", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Instanceof{
			Expr:  sem[nodes.Expr](r, 1),
			Class: sem[nodes.Node](r, 3),
		}, r.Attrs())
	})
	b.rule("expr", "expr '?' expr ':' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Ternary{
			Cond: sem[nodes.Expr](r, 1),
			If:   sem[nodes.Expr](r, 3),
			Else: sem[nodes.Expr](r, 5),
		}, r.Attrs())
	})
	b.rule("expr", "expr '?' ':' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Ternary{
			Cond: sem[nodes.Expr](r, 1),
			Else: sem[nodes.Expr](r, 4),
		}, r.Attrs())
	})
	b.rule("expr", "T_ISSET '(' isset_variables possible_comma ')'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Isset{
			Vars: list[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("isset_variables", "expr", one[nodes.Expr](1))
	b.rule("isset_variables", "isset_variables ',' expr", push[nodes.Expr](1, 3))
	b.rule("expr", "T_EMPTY '(' expr ')'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Empty{
			Expr: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})

	for _, inc := range includes {
		inc := inc
		b.rule("expr", inc.token+" expr", func(_ *parseState, r *parsers.Reduction) any {
			return with(&nodes.Include{
				Expr:        sem[nodes.Expr](r, 2),
				IncludeType: inc.kind,
			}, r.Attrs())
		})
	}

	for _, c := range casts {
		c := c
		b.rule("expr", c.token+" expr", func(_ *parseState, r *parsers.Reduction) any {
			cast := with(&nodes.Cast{
				Kind: c.kind,
				Expr: sem[nodes.Expr](r, 2),
			}, r.Attrs())
			if c.kind == nodes.CastDouble {
				cast.SetAttribute(nodes.KindKey, floatCastKind(r.Str(1)))
			}
			return cast
		})
	}

	b.rule("expr", "T_EXIT ctor_arguments", func(_ *parseState, r *parsers.Reduction) any {
		return createExitExpr(r, r.Str(1), list[*nodes.Arg](r, 2))
	})
	b.rule("expr", "'@' expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.ErrorSuppress{Expr: e}
	}))
	b.rule("expr", "scalar", nil)
	b.rule("expr", "T_PRINT expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.Print{Expr: e}
	}))
	b.rule("expr", "T_YIELD", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Yield{}, r.Attrs())
	})
	b.rule("expr", "T_YIELD expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Yield{
			Value: sem[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("expr", "T_YIELD expr T_DOUBLE_ARROW expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Yield{
			Key:   sem[nodes.Expr](r, 2),
			Value: sem[nodes.Expr](r, 4),
		}, r.Attrs())
	})
	b.rule("expr", "T_YIELD_FROM expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.YieldFrom{Expr: e}
	}))
	b.rule("expr", "T_THROW expr", unary(func(e nodes.Expr) nodes.Expr {
		return &nodes.Throw{Expr: e}
	}))

	b.rule("expr", "inline_function", nil)
	b.rule("expr", "T_STATIC inline_function", func(_ *parseState, r *parsers.Reduction) any {
		fn := sem[nodes.Expr](r, 2)
		switch fn := fn.(type) {
		case *nodes.Closure:
			fn.Static = true
		case *nodes.ArrowFunction:
			fn.Static = true
		}
		fn.SetAttributes(r.Attrs())
		return fn
	})
	b.rule("inline_function", "T_FUNCTION optional_ref '(' parameter_list ')' lexical_vars optional_return_type block_or_error", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Closure{
			ByRef:      sem[bool](r, 2),
			Params:     list[*nodes.Param](r, 4),
			Uses:       list[*nodes.ClosureUse](r, 6),
			ReturnType: sem[nodes.Node](r, 7),
			Stmts:      list[nodes.Stmt](r, 8),
		}, r.Attrs())
	})
	b.rule("inline_function", "T_FN optional_ref '(' parameter_list ')' optional_return_type T_DOUBLE_ARROW expr %prec PREC_ARROW_FUNCTION", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrowFunction{
			ByRef:      sem[bool](r, 2),
			Params:     list[*nodes.Param](r, 4),
			ReturnType: sem[nodes.Node](r, 6),
			Expr:       sem[nodes.Expr](r, 8),
		}, r.Attrs())
	})
	b.rule("lexical_vars", "", empty[*nodes.ClosureUse]())
	b.rule("lexical_vars", "T_USE '(' lexical_var_list possible_comma ')'", pick(3))
	b.rule("lexical_var_list", "lexical_var", one[*nodes.ClosureUse](1))
	b.rule("lexical_var_list", "lexical_var_list ',' lexical_var", push[*nodes.ClosureUse](1, 3))
	b.rule("lexical_var", "optional_ref plain_variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ClosureUse{
			Var:   sem[*nodes.Variable](r, 2),
			ByRef: sem[bool](r, 1),
		}, r.Attrs())
	})

	b.rule("new_expr", "T_NEW class_name_reference ctor_arguments", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.New{
			Class: sem[nodes.Node](r, 2),
			Args:  list[*nodes.Arg](r, 3),
		}, r.Attrs())
	})
	b.rule("ctor_arguments", "", empty[*nodes.Arg]())
	b.rule("ctor_arguments", "argument_list", pick(1))

	b.rule("argument_list", "'(' ')'", empty[*nodes.Arg]())
	b.rule("argument_list", "'(' non_empty_argument_list possible_comma ')'", pick(2))
	b.rule("non_empty_argument_list", "argument", one[*nodes.Arg](1))
	b.rule("non_empty_argument_list", "non_empty_argument_list ',' argument", push[*nodes.Arg](1, 3))
	b.rule("argument", "expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Arg{
			Value: sem[nodes.Expr](r, 1),
		}, r.Attrs())
	})
	b.rule("argument", "'&' variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Arg{
			Value: sem[nodes.Expr](r, 2),
			ByRef: true,
		}, r.Attrs())
	})
	b.rule("argument", "T_ELLIPSIS expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Arg{
			Value:  sem[nodes.Expr](r, 2),
			Unpack: true,
		}, r.Attrs())
	})
	b.rule("argument", "identifier_maybe_reserved ':' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Arg{
			Name:  sem[*nodes.Identifier](r, 1),
			Value: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
}

func floatCastKind(cast string) int {
	cast = strings.ToLower(cast)
	switch {
	case strings.Contains(cast, "float"):
		return nodes.DoubleKindFloat
	case strings.Contains(cast, "real"):
		return nodes.DoubleKindReal
	}
	return nodes.DoubleKindDouble
}

// createExitExpr keeps exit and die with at most one plain argument as Exit
// nodes and turns every other form into a call.
func createExitExpr(r *parsers.Reduction, name string, args []*nodes.Arg) nodes.Expr {
	attrs := r.Attrs()
	if isSimpleExit(args) {
		exit := with(&nodes.Exit{}, attrs)
		if len(args) == 1 {
			exit.Expr = args[0].Value
		}
		if strings.EqualFold(name, "exit") {
			exit.SetAttribute(nodes.KindKey, nodes.ExitKindExit)
		} else {
			exit.SetAttribute(nodes.KindKey, nodes.ExitKindDie)
		}
		return exit
	}
	return with(&nodes.FuncCall{
		Name: with(&nodes.Name{Name: name}, r.AttrsAt(1)),
		Args: args,
	}, attrs)
}

func isSimpleExit(args []*nodes.Arg) bool {
	switch len(args) {
	case 0:
		return true
	case 1:
		arg := args[0]
		return arg.Name == nil && !arg.ByRef && !arg.Unpack
	}
	return false
}
