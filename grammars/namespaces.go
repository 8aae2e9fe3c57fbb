package grammars

import (
	"regexp"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
)

type namespacingStyle uint8

const (
	notNamespaced namespacingStyle = iota
	semicolonStyle
	braceStyle
)

var hashbangPattern = regexp.MustCompile(`\A#!.*\r?\n\z`)

// handleNamespaces moves the statements following a semicolon namespace
// declaration into it, and checks the placement of namespace declarations.
func (st *parseState) handleNamespaces(r *parsers.Reduction, stmts []nodes.Stmt) []nodes.Stmt {
	switch getNamespacingStyle(r, stmts) {

	case notNamespaced:
		return stmts

	case braceStyle:
		afterFirst := false
		for _, stmt := range stmts {
			switch stmt.(type) {
			case *nodes.Namespace:
				afterFirst = true
			case *nodes.HaltCompiler, *nodes.Nop:
			default:
				if afterFirst {
					// reported once
					r.Emit(errs.New("No code may exist outside of namespace {}", stmt.Attributes()))
					return stmts
				}
			}
		}
		return stmts
	}

	var result []nodes.Stmt
	var current *nodes.Namespace
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *nodes.Namespace:
			if current != nil {
				fixupNamespaceAttributes(current)
				current = nil
			}
			result = append(result, stmt)
			if stmt.Stmts == nil {
				stmt.Stmts = []nodes.Stmt{}
				current = stmt
			}
		case *nodes.HaltCompiler:
			result = append(result, stmt)
		default:
			if current != nil {
				current.Stmts = append(current.Stmts, stmt)
			} else {
				result = append(result, stmt)
			}
		}
	}
	if current != nil {
		fixupNamespaceAttributes(current)
	}
	if result == nil {
		result = []nodes.Stmt{}
	}
	return result
}

// fixupNamespaceAttributes extends the end of a namespace to its last
// statement.
func fixupNamespaceAttributes(ns *nodes.Namespace) {
	if len(ns.Stmts) == 0 {
		return
	}
	last := ns.Stmts[len(ns.Stmts)-1]
	for _, key := range []string{nodes.EndLine, nodes.EndFilePos, nodes.EndTokenPos} {
		if v, ok := last.Attribute(key); ok {
			ns.SetAttribute(key, v)
		}
	}
}

// namespaceErrorAttributes narrows a namespace span to its keyword.
func namespaceErrorAttributes(ns *nodes.Namespace) nodes.Attributes {
	attrs := ns.Attributes().Clone()
	if attrs == nil {
		attrs = nodes.Attributes{}
	}
	if v, ok := attrs[nodes.StartLine]; ok {
		attrs[nodes.EndLine] = v
	}
	if v, ok := attrs[nodes.StartTokenPos]; ok {
		attrs[nodes.EndTokenPos] = v
	}
	if _, ok := attrs[nodes.StartFilePos]; ok {
		attrs[nodes.EndFilePos] = attrs.Int(nodes.StartFilePos) + len("namespace") - 1
	}
	return attrs
}

func getNamespacingStyle(r *parsers.Reduction, stmts []nodes.Stmt) namespacingStyle {
	style := notNamespaced
	hasNotAllowedStmts := false
	for i, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *nodes.Namespace:
			current := braceStyle
			if stmt.Stmts == nil {
				current = semicolonStyle
			}
			if style == notNamespaced {
				style = current
				if hasNotAllowedStmts {
					r.Emit(errs.New("Namespace declaration statement has to be the very first statement in the script", namespaceErrorAttributes(stmt)))
				}
			} else if style != current {
				r.Emit(errs.New("Cannot mix bracketed namespace declarations with unbracketed namespace declarations", namespaceErrorAttributes(stmt)))
				return semicolonStyle
			}
			continue
		case *nodes.Declare, *nodes.HaltCompiler, *nodes.Nop:
			continue
		case *nodes.InlineHTML:
			if i == 0 && hashbangPattern.MatchString(stmt.Value) {
				continue
			}
		}
		hasNotAllowedStmts = true
	}
	return style
}
