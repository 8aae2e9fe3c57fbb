package grammars

import (
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

var magicConstants = []struct {
	token string
	kind  nodes.MagicConstKind
}{
	{"T_LINE", nodes.MagicLine},
	{"T_FILE", nodes.MagicFile},
	{"T_DIR", nodes.MagicDir},
	{"T_CLASS_C", nodes.MagicClass},
	{"T_TRAIT_C", nodes.MagicTrait},
	{"T_METHOD_C", nodes.MagicMethod},
	{"T_FUNC_C", nodes.MagicFunction},
	{"T_NS_C", nodes.MagicNamespace},
}

// recovered yields an error placeholder and resumes error reporting early.
func recovered(r *parsers.Reduction, pos int) *nodes.Error {
	r.SetErrorState(2)
	return with(&nodes.Error{}, r.AttrsAt(pos))
}

func (b *builder) variables() {
	b.rule("name", "T_STRING", func(_ *parseState, r *parsers.Reduction) any {
		return nameAt(r, 1)
	})
	b.rule("name", "T_NAME_QUALIFIED", func(_ *parseState, r *parsers.Reduction) any {
		return nameAt(r, 1)
	})
	b.rule("name", "T_NAME_FULLY_QUALIFIED", func(_ *parseState, r *parsers.Reduction) any {
		return nameAt(r, 1)
	})
	b.rule("name", "T_NAME_RELATIVE", func(_ *parseState, r *parsers.Reduction) any {
		return nameAt(r, 1)
	})
	b.rule("class_name", "T_STATIC", func(_ *parseState, r *parsers.Reduction) any {
		return nameAt(r, 1)
	})
	b.rule("class_name", "name", nil)
	b.rule("class_name_reference", "class_name", nil)
	b.rule("class_name_reference", "new_variable", nil)
	b.rule("class_name_reference", "'(' expr ')'", pick(2))
	b.rule("class_name_reference", "error", func(_ *parseState, r *parsers.Reduction) any {
		return recovered(r, 1)
	})
	b.rule("class_name_or_var", "class_name", nil)
	b.rule("class_name_or_var", "fully_dereferenceable", nil)

	b.rule("fully_dereferenceable", "variable", nil)
	b.rule("fully_dereferenceable", "'(' expr ')'", pick(2))
	b.rule("fully_dereferenceable", "dereferenceable_scalar", nil)
	b.rule("fully_dereferenceable", "class_constant", nil)
	b.rule("array_object_dereferenceable", "fully_dereferenceable", nil)
	b.rule("array_object_dereferenceable", "constant", nil)
	b.rule("callable_expr", "callable_variable", nil)
	b.rule("callable_expr", "'(' expr ')'", pick(2))
	b.rule("callable_expr", "dereferenceable_scalar", nil)

	b.rule("callable_variable", "simple_variable", nil)
	b.rule("callable_variable", "array_object_dereferenceable '[' optional_expr ']'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayDimFetch{
			Var: sem[nodes.Expr](r, 1),
			Dim: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("callable_variable", "function_call", nil)
	b.rule("callable_variable", "array_object_dereferenceable T_OBJECT_OPERATOR property_name argument_list", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.MethodCall{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[nodes.Node](r, 3),
			Args: list[*nodes.Arg](r, 4),
		}, r.Attrs())
	})
	b.rule("callable_variable", "array_object_dereferenceable T_NULLSAFE_OBJECT_OPERATOR property_name argument_list", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.NullsafeMethodCall{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[nodes.Node](r, 3),
			Args: list[*nodes.Arg](r, 4),
		}, r.Attrs())
	})

	b.rule("variable", "callable_variable", nil)
	b.rule("variable", "static_member", nil)
	b.rule("variable", "array_object_dereferenceable T_OBJECT_OPERATOR property_name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PropertyFetch{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[nodes.Node](r, 3),
		}, r.Attrs())
	})
	b.rule("variable", "array_object_dereferenceable T_NULLSAFE_OBJECT_OPERATOR property_name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.NullsafePropertyFetch{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[nodes.Node](r, 3),
		}, r.Attrs())
	})

	b.rule("plain_variable", "T_VARIABLE", func(_ *parseState, r *parsers.Reduction) any {
		return variableAt(r, 1)
	})
	b.rule("simple_variable", "plain_variable", nil)
	b.rule("simple_variable", "'$' '{' expr '}'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Variable{
			Name: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("simple_variable", "'$' simple_variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Variable{
			Name: sem[nodes.Expr](r, 2),
		}, r.Attrs())
	})
	b.rule("simple_variable", "'$' error", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.Variable{
			Name: recovered(r, 2),
		}, r.Attrs())
	})

	b.rule("static_member_prop_name", "simple_variable", func(_ *parseState, r *parsers.Reduction) any {
		v := sem[*nodes.Variable](r, 1)
		if name, ok := v.Ident(); ok {
			return with(&nodes.VarLikeIdentifier{
				Name: name,
			}, r.Attrs())
		}
		return v.Name
	})
	b.rule("static_member", "class_name_or_var T_PAAMAYIM_NEKUDOTAYIM static_member_prop_name", staticPropertyFetch)

	b.rule("new_variable", "simple_variable", nil)
	b.rule("new_variable", "new_variable '[' optional_expr ']'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayDimFetch{
			Var: sem[nodes.Expr](r, 1),
			Dim: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("new_variable", "new_variable T_OBJECT_OPERATOR property_name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PropertyFetch{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[nodes.Node](r, 3),
		}, r.Attrs())
	})
	b.rule("new_variable", "new_variable T_NULLSAFE_OBJECT_OPERATOR property_name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.NullsafePropertyFetch{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[nodes.Node](r, 3),
		}, r.Attrs())
	})
	b.rule("new_variable", "class_name T_PAAMAYIM_NEKUDOTAYIM static_member_prop_name", staticPropertyFetch)
	b.rule("new_variable", "new_variable T_PAAMAYIM_NEKUDOTAYIM static_member_prop_name", staticPropertyFetch)

	b.rule("member_name", "identifier_maybe_reserved", nil)
	b.rule("member_name", "'{' expr '}'", pick(2))
	b.rule("member_name", "simple_variable", nil)
	b.rule("property_name", "identifier_not_reserved", nil)
	b.rule("property_name", "'{' expr '}'", pick(2))
	b.rule("property_name", "simple_variable", nil)
	b.rule("property_name", "error", func(_ *parseState, r *parsers.Reduction) any {
		return recovered(r, 1)
	})

	b.rule("function_call", "name argument_list", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.FuncCall{
			Name: sem[*nodes.Name](r, 1),
			Args: list[*nodes.Arg](r, 2),
		}, r.Attrs())
	})
	b.rule("function_call", "callable_expr argument_list", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.FuncCall{
			Name: sem[nodes.Expr](r, 1),
			Args: list[*nodes.Arg](r, 2),
		}, r.Attrs())
	})
	b.rule("function_call", "class_name_or_var T_PAAMAYIM_NEKUDOTAYIM member_name argument_list", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.StaticCall{
			Class: sem[nodes.Node](r, 1),
			Name:  sem[nodes.Node](r, 3),
			Args:  list[*nodes.Arg](r, 4),
		}, r.Attrs())
	})

	b.rule("class_constant", "class_name_or_var T_PAAMAYIM_NEKUDOTAYIM identifier_maybe_reserved", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ClassConstFetch{
			Class: sem[nodes.Node](r, 1),
			Name:  sem[*nodes.Identifier](r, 3),
		}, r.Attrs())
	})
	b.rule("class_constant", "class_name_or_var T_PAAMAYIM_NEKUDOTAYIM error", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ClassConstFetch{
			Class: sem[nodes.Node](r, 1),
			Name:  recovered(r, 3),
		}, r.Attrs())
	})

	b.rule("constant", "name", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ConstFetch{
			Name: sem[*nodes.Name](r, 1),
		}, r.Attrs())
	})
	for _, m := range magicConstants {
		m := m
		b.rule("constant", m.token, func(_ *parseState, r *parsers.Reduction) any {
			return with(&nodes.MagicConst{
				Kind: m.kind,
			}, r.Attrs())
		})
	}

	// arrays and lists
	b.rule("array_short_syntax", "'[' array_pair_list ']'", func(st *parseState, r *parsers.Reduction) any {
		return st.createArray(r, list[*nodes.ArrayItem](r, 2), nodes.ArrayKindShort)
	})
	b.rule("list_expr", "T_LIST '(' inner_array_pair_list ')'", func(_ *parseState, r *parsers.Reduction) any {
		items := list[*nodes.ArrayItem](r, 3)
		for i, item := range items {
			if isEmptyElement(item) {
				// empty elements are legal when destructuring
				items[i] = nil
			}
		}
		l := with(&nodes.List{
			Items: items,
		}, r.Attrs())
		l.SetAttribute(nodes.KindKey, nodes.ListKindList)
		return l
	})
	b.rule("array_pair_list", "inner_array_pair_list", func(_ *parseState, r *parsers.Reduction) any {
		items := list[*nodes.ArrayItem](r, 1)
		if n := len(items); n > 0 && isEmptyElement(items[n-1]) {
			items = items[:n-1]
		}
		return items
	})
	b.rule("comma_or_error", "','", nothing)
	b.rule("comma_or_error", "error", nothing)
	b.rule("inner_array_pair_list", "inner_array_pair_list comma_or_error array_pair", push[*nodes.ArrayItem](1, 3))
	b.rule("inner_array_pair_list", "array_pair", one[*nodes.ArrayItem](1))
	b.rule("array_pair", "expr T_DOUBLE_ARROW expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Key:   sem[nodes.Expr](r, 1),
			Value: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("array_pair", "expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Value: sem[nodes.Expr](r, 1),
		}, r.Attrs())
	})
	b.rule("array_pair", "expr T_DOUBLE_ARROW '&' variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Key:   sem[nodes.Expr](r, 1),
			Value: sem[nodes.Expr](r, 4),
			ByRef: true,
		}, r.Attrs())
	})
	b.rule("array_pair", "'&' variable", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Value: sem[nodes.Expr](r, 2),
			ByRef: true,
		}, r.Attrs())
	})
	b.rule("array_pair", "T_ELLIPSIS expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Value:  sem[nodes.Expr](r, 2),
			Unpack: true,
		}, r.Attrs())
	})
	b.rule("array_pair", "expr T_DOUBLE_ARROW list_expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Key:   sem[nodes.Expr](r, 1),
			Value: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("array_pair", "list_expr", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayItem{
			Value: sem[nodes.Expr](r, 1),
		}, r.Attrs())
	})
	b.rule("array_pair", "", func(_ *parseState, r *parsers.Reduction) any {
		// an error placeholder keeps the position; destructuring turns it
		// into a nil item, array creation reports it
		attrs := r.AttrsForToken(r.Lookahead())
		return with(&nodes.ArrayItem{
			Value: with(&nodes.Error{}, attrs),
		}, attrs.Clone())
	})
}

func staticPropertyFetch(_ *parseState, r *parsers.Reduction) any {
	return with(&nodes.StaticPropertyFetch{
		Class: sem[nodes.Node](r, 1),
		Name:  sem[nodes.Node](r, 3),
	}, r.Attrs())
}

func isEmptyElement(item *nodes.ArrayItem) bool {
	if item == nil {
		return false
	}
	_, ok := item.Value.(*nodes.Error)
	return ok
}

func (b *builder) scalars() {
	b.rule("scalar", "T_LNUMBER", func(st *parseState, r *parsers.Reduction) any {
		return st.parseLNumber(r, r.Str(1), r.Attrs())
	})
	b.rule("scalar", "T_DNUMBER", func(_ *parseState, r *parsers.Reduction) any {
		return floatFromString(r.Str(1), r.Attrs())
	})
	b.rule("scalar", "dereferenceable_scalar", nil)
	b.rule("scalar", "constant", nil)
	b.rule("scalar", "class_constant", nil)
	b.rule("scalar", "T_START_HEREDOC T_ENCAPSED_AND_WHITESPACE T_END_HEREDOC", func(st *parseState, r *parsers.Reduction) any {
		return st.parseDocString(r, r.Str(1), r.Str(2), r.Str(3), r.Attrs(), r.AttrsAt(3))
	})
	b.rule("scalar", "T_START_HEREDOC T_END_HEREDOC", func(st *parseState, r *parsers.Reduction) any {
		return st.parseDocString(r, r.Str(1), "", r.Str(2), r.Attrs(), r.AttrsAt(2))
	})
	b.rule("scalar", "T_START_HEREDOC encaps_list T_END_HEREDOC", func(st *parseState, r *parsers.Reduction) any {
		return st.parseDocString(r, r.Str(1), list[nodes.Node](r, 2), r.Str(3), r.Attrs(), r.AttrsAt(3))
	})

	b.rule("dereferenceable_scalar", "T_ARRAY '(' array_pair_list ')'", func(st *parseState, r *parsers.Reduction) any {
		return st.createArray(r, list[*nodes.ArrayItem](r, 3), nodes.ArrayKindLong)
	})
	b.rule("dereferenceable_scalar", "array_short_syntax", nil)
	b.rule("dereferenceable_scalar", "T_CONSTANT_ENCAPSED_STRING", func(st *parseState, r *parsers.Reduction) any {
		return stringFromString(r, r.Str(1), r.Attrs())
	})
	b.rule("dereferenceable_scalar", "'\"' encaps_list '\"'", func(st *parseState, r *parsers.Reduction) any {
		parts := list[nodes.Node](r, 2)
		for _, part := range parts {
			if p, ok := part.(*nodes.InterpolatedStringPart); ok {
				p.Value = parseEscapeSequences(r, p.Value, `"`)
			}
		}
		s := with(&nodes.InterpolatedString{
			Parts: parts,
		}, r.Attrs())
		s.SetAttribute(nodes.KindKey, nodes.StringKindDoubleQuoted)
		return s
	})

	b.rule("encaps_list", "encaps_list encaps_var", push[nodes.Node](1, 2))
	b.rule("encaps_list", "encaps_list encaps_string_part", push[nodes.Node](1, 2))
	b.rule("encaps_list", "encaps_var", one[nodes.Node](1))
	b.rule("encaps_list", "encaps_string_part encaps_var", func(_ *parseState, r *parsers.Reduction) any {
		return []nodes.Node{sem[nodes.Node](r, 1), sem[nodes.Node](r, 2)}
	})
	b.rule("encaps_string_part", "T_ENCAPSED_AND_WHITESPACE", func(_ *parseState, r *parsers.Reduction) any {
		part := with(&nodes.InterpolatedStringPart{
			Value: r.Str(1),
		}, r.Attrs())
		part.SetAttribute(nodes.RawValueKey, r.Str(1))
		return part
	})
	b.rule("encaps_var", "plain_variable", nil)
	b.rule("encaps_var", "plain_variable '[' encaps_var_offset ']'", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.ArrayDimFetch{
			Var: sem[nodes.Expr](r, 1),
			Dim: sem[nodes.Expr](r, 3),
		}, r.Attrs())
	})
	b.rule("encaps_var", "plain_variable T_OBJECT_OPERATOR identifier_not_reserved", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.PropertyFetch{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[*nodes.Identifier](r, 3),
		}, r.Attrs())
	})
	b.rule("encaps_var", "plain_variable T_NULLSAFE_OBJECT_OPERATOR identifier_not_reserved", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.NullsafePropertyFetch{
			Var:  sem[nodes.Expr](r, 1),
			Name: sem[*nodes.Identifier](r, 3),
		}, r.Attrs())
	})
	b.rule("encaps_var", "T_CURLY_OPEN variable '}'", pick(2))
	b.rule("encaps_var_offset", "T_STRING", func(_ *parseState, r *parsers.Reduction) any {
		return with(&nodes.String{
			Value: r.Str(1),
		}, r.Attrs())
	})
	b.rule("encaps_var_offset", "T_NUM_STRING", func(_ *parseState, r *parsers.Reduction) any {
		return parseNumString(r.Str(1), r.Attrs())
	})
	b.rule("encaps_var_offset", "'-' T_NUM_STRING", func(_ *parseState, r *parsers.Reduction) any {
		return parseNumString("-"+r.Str(2), r.Attrs())
	})
	b.rule("encaps_var_offset", "plain_variable", nil)
}
