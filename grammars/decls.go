package grammars

import (
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

func (b *builder) declarations() {
	b.rule("function_declaration_statement", "T_FUNCTION optional_ref identifier_not_reserved '(' parameter_list ')' optional_return_type block_or_error", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Function{
			ByRef:      sem[bool](r, 2),
			Name:       sem[*nodes.Identifier](r, 3),
			Params:     list[*nodes.Param](r, 5),
			ReturnType: sem[nodes.Node](r, 7),
			Stmts:      list[nodes.Stmt](r, 8),
		}, r.Attrs())
	})
	b.rule("block_or_error", "'{' inner_statement_list '}'", pick(2))
	b.rule("block_or_error", "error", empty[nodes.Stmt]())
	b.rule("optional_ref", "", constant(false))
	b.rule("optional_ref", "'&'", constant(true))
	b.rule("optional_ellipsis", "", constant(false))
	b.rule("optional_ellipsis", "T_ELLIPSIS", constant(true))

	// classes
	b.rule("class_declaration_statement", "class_entry_type identifier_not_reserved extends_from implements_list '{' class_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		class := with(&nodes.Class{
			Flags:      sem[int](r, 1),
			Name:       sem[*nodes.Identifier](r, 2),
			Extends:    sem[*nodes.Name](r, 3),
			Implements: list[*nodes.Name](r, 4),
			Stmts:      list[nodes.Stmt](r, 6),
		}, r.Attrs())
		checkClass(r, class, 2)
		return class
	})
	b.rule("class_entry_type", "T_CLASS", constant(0))
	b.rule("class_entry_type", "class_modifiers T_CLASS", pick(1))
	b.rule("class_modifiers", "class_modifier", pick(1))
	b.rule("class_modifiers", "class_modifiers class_modifier", func(_ *parseState, r *parsers.Reduction) any {
		a, m := sem[int](r, 1), sem[int](r, 2)
		checkClassModifier(r, a, m, 2)
		return a | m
	})
	b.rule("class_modifier", "T_ABSTRACT", constant(nodes.ModifierAbstract))
	b.rule("class_modifier", "T_FINAL", constant(nodes.ModifierFinal))
	b.rule("extends_from", "", nothing)
	b.rule("extends_from", "T_EXTENDS class_name", pick(2))
	b.rule("implements_list", "", empty[*nodes.Name]())
	b.rule("implements_list", "T_IMPLEMENTS class_name_list", pick(2))
	b.rule("class_name_list", "class_name", one[*nodes.Name](1))
	b.rule("class_name_list", "class_name_list ',' class_name", push[*nodes.Name](1, 3))

	b.rule("interface_declaration_statement", "T_INTERFACE identifier_not_reserved interface_extends_list '{' class_statement_list '}'", func(_ *parseState, r *parsers.Reduction) any {
		iface := with(&nodes.Interface{
			Name:    sem[*nodes.Identifier](r, 2),
			Extends: list[*nodes.Name](r, 3),
			Stmts:   list[nodes.Stmt](r, 5),
		}, r.Attrs())
		checkInterface(r, iface, 2)
		return iface
	})
	b.rule("interface_extends_list", "", empty[*nodes.Name]())
	b.rule("interface_extends_list", "T_EXTENDS class_name_list", pick(2))

	// members
	b.rule("class_statement_list_ex", "class_statement_list_ex class_statement", pushStmt)
	b.rule("class_statement_list_ex", "", empty[nodes.Stmt]())
	b.rule("class_statement_list", "class_statement_list_ex", withTrailingNop)

	b.rule("class_statement", "variable_modifiers optional_type_without_static property_declaration_list ';'", func(_ *parseState, r *parsers.Reduction) any {
		prop := with(&nodes.Property{
			Flags:    sem[int](r, 1),
			TypeNode: sem[nodes.Node](r, 2),
			Props:    list[*nodes.PropertyItem](r, 3),
		}, r.Attrs())
		checkProperty(r, prop, 1)
		return prop
	})
	b.rule("class_statement", "method_modifiers T_CONST class_const_list ';'", func(_ *parseState, r *parsers.Reduction) any {
		c := with(&nodes.ClassConst{
			Flags:  sem[int](r, 1),
			Consts: list[*nodes.Const](r, 3),
		}, r.Attrs())
		checkClassConst(r, c, 1)
		return c
	})
	b.rule("class_statement", "method_modifiers T_FUNCTION optional_ref identifier_maybe_reserved '(' parameter_list ')' optional_return_type method_body", func(_ *parseState, r *parsers.Reduction) any {
		method := with(&nodes.ClassMethod{
			Flags:      sem[int](r, 1),
			ByRef:      sem[bool](r, 3),
			Name:       sem[*nodes.Identifier](r, 4),
			Params:     list[*nodes.Param](r, 6),
			ReturnType: sem[nodes.Node](r, 8),
			Stmts:      sem[[]nodes.Stmt](r, 9),
		}, r.Attrs())
		checkClassMethod(r, method, 1)
		return method
	})
	b.rule("class_statement", "error", nothing)

	b.rule("method_body", "';'", nothing)
	b.rule("method_body", "block_or_error", pick(1))

	b.rule("class_const_list", "class_const_list ',' class_const", push[*nodes.Const](1, 3))
	b.rule("class_const_list", "class_const", one[*nodes.Const](1))
	b.rule("class_const", "identifier_maybe_reserved '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Const{
			Name:  sem[*nodes.Identifier](r, 1),
			Value: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})

	b.rule("property_declaration_list", "property_declaration", one[*nodes.PropertyItem](1))
	b.rule("property_declaration_list", "property_declaration_list ',' property_declaration", push[*nodes.PropertyItem](1, 3))
	b.rule("property_declaration", "property_decl_name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PropertyItem{
			Name: sem[*nodes.VarLikeIdentifier](r, 1),
		}, r.Attrs())
	})
	b.rule("property_declaration", "property_decl_name '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PropertyItem{
			Name:    sem[*nodes.VarLikeIdentifier](r, 1),
			Default: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("property_decl_name", "T_VARIABLE", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.VarLikeIdentifier{
			Name: strings.TrimPrefix(r.Str(1), "$"),
		}, r.Attrs())
	})

	b.rule("method_modifiers", "", constant(0))
	b.rule("method_modifiers", "non_empty_member_modifiers", pick(1))
	b.rule("variable_modifiers", "non_empty_member_modifiers", pick(1))
	b.rule("variable_modifiers", "T_VAR", constant(0))
	b.rule("non_empty_member_modifiers", "member_modifier", pick(1))
	b.rule("non_empty_member_modifiers", "non_empty_member_modifiers member_modifier", func(_ *parseState, r *parsers.Reduction) any {
		a, m := sem[int](r, 1), sem[int](r, 2)
		checkModifier(r, a, m, 2)
		return a | m
	})
	b.rule("member_modifier", "T_PUBLIC", constant(nodes.ModifierPublic))
	b.rule("member_modifier", "T_PROTECTED", constant(nodes.ModifierProtected))
	b.rule("member_modifier", "T_PRIVATE", constant(nodes.ModifierPrivate))
	b.rule("member_modifier", "T_STATIC", constant(nodes.ModifierStatic))
	b.rule("member_modifier", "T_ABSTRACT", constant(nodes.ModifierAbstract))
	b.rule("member_modifier", "T_FINAL", constant(nodes.ModifierFinal))
	b.rule("member_modifier", "T_READONLY", constant(nodes.ModifierReadonly))

	// parameters
	b.rule("parameter_list", "", empty[*nodes.Param]())
	b.rule("parameter_list", "non_empty_parameter_list possible_comma", pick(1))
	b.rule("non_empty_parameter_list", "parameter", one[*nodes.Param](1))
	b.rule("non_empty_parameter_list", "non_empty_parameter_list ',' parameter", push[*nodes.Param](1, 3))
	b.rule("parameter", "optional_property_modifiers optional_type_without_static optional_ref optional_ellipsis plain_variable", func(_ *parseState, r *parsers.Reduction) any {
		param := with(&nodes.Param{
			Flags:    sem[int](r, 1),
			TypeNode: sem[nodes.Node](r, 2),
			ByRef:    sem[bool](r, 3),
			Variadic: sem[bool](r, 4),
			Var:      sem[nodes.Expr](r, 5),
		}, r.Attrs())
		return param
	})
	b.rule("parameter", "optional_property_modifiers optional_type_without_static optional_ref optional_ellipsis plain_variable '=' expr", func(_ *parseState, r *parsers.Reduction) any {
		param := with(&nodes.Param{
			Flags:    sem[int](r, 1),
			TypeNode: sem[nodes.Node](r, 2),
			ByRef:    sem[bool](r, 3),
			Variadic: sem[bool](r, 4),
			Var:      sem[nodes.Expr](r, 5),
			Default:  sem[nodes.Expr](r, 7),
		}, r.Attrs())
		checkParam(r, param)
		return param
	})
	b.rule("parameter", "optional_property_modifiers optional_type_without_static optional_ref optional_ellipsis error", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Param{
			Flags:    sem[int](r, 1),
			TypeNode: sem[nodes.Node](r, 2),
			ByRef:    sem[bool](r, 3),
			Variadic: sem[bool](r, 4),
			Var:      with(&nodes.Error{}, r.AttrsAt(5)),
		}, r.Attrs())
	})
	b.rule("optional_property_modifiers", "", constant(0))
	b.rule("optional_property_modifiers", "optional_property_modifiers property_modifier", func(_ *parseState, r *parsers.Reduction) any {
		a, m := sem[int](r, 1), sem[int](r, 2)
		checkModifier(r, a, m, 2)
		return a | m
	})
	b.rule("property_modifier", "T_PUBLIC", constant(nodes.ModifierPublic))
	b.rule("property_modifier", "T_PROTECTED", constant(nodes.ModifierProtected))
	b.rule("property_modifier", "T_PRIVATE", constant(nodes.ModifierPrivate))
	b.rule("property_modifier", "T_READONLY", constant(nodes.ModifierReadonly))

	// types
	b.rule("type_expr", "type", pick(1))
	b.rule("type_expr", "'?' type", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.NullableType{
			TypeNode: sem[nodes.Node](r, 2),
		}, r.Attrs())
	})
	b.rule("type_expr", "union_type", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.UnionType{
			Types: list[nodes.Node](r, 1),
		}, r.Attrs())
	})
	b.rule("type", "type_without_static", pick(1))
	b.rule("type", "T_STATIC", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Identifier{
			Name: "static",
		}, r.Attrs())
	})
	b.rule("union_type", "type '|' type", func(_ *parseState, r *parsers.Reduction) any {
		return []nodes.Node{sem[nodes.Node](r, 1), sem[nodes.Node](r, 3)}
	})
	b.rule("union_type", "union_type '|' type", push[nodes.Node](1, 3))

	b.rule("type_expr_without_static", "type_without_static", pick(1))
	b.rule("type_expr_without_static", "'?' type_without_static", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.NullableType{
			TypeNode: sem[nodes.Node](r, 2),
		}, r.Attrs())
	})
	b.rule("type_expr_without_static", "union_type_without_static", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.UnionType{
			Types: list[nodes.Node](r, 1),
		}, r.Attrs())
	})
	b.rule("union_type_without_static", "type_without_static '|' type_without_static", func(_ *parseState, r *parsers.Reduction) any {
		return []nodes.Node{sem[nodes.Node](r, 1), sem[nodes.Node](r, 3)}
	})
	b.rule("union_type_without_static", "union_type_without_static '|' type_without_static", push[nodes.Node](1, 3))
	b.rule("type_without_static", "name", func(_ *parseState, r *parsers.Reduction) any {
		return handleBuiltinTypes(sem[*nodes.Name](r, 1))
	})
	b.rule("type_without_static", "T_ARRAY", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Identifier{
			Name: "array",
		}, r.Attrs())
	})

	b.rule("optional_type_without_static", "", nothing)
	b.rule("optional_type_without_static", "type_expr_without_static", pick(1))
	b.rule("optional_return_type", "", nothing)
	b.rule("optional_return_type", "':' type_expr", pick(2))
}

// handleBuiltinTypes turns unqualified builtin type names into lowercase
// identifiers.
func handleBuiltinTypes(name *nodes.Name) nodes.Node {
	if !name.IsUnqualified() || !nodes.IsBuiltinType(name.Name) {
		return name
	}
	return with(&nodes.Identifier{
		Name: strings.ToLower(name.Name),
	}, name.Attributes())
}
