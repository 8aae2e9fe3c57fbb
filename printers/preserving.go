package printers

import (
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// PrintFormatPreserving prints an edited tree, reusing the original code
// for every part that did not change. stmts is usually a deep clone of
// origStmts, with origins mapping the cloned nodes back. Nodes shared by
// both trees count as unchanged. Where the original formatting can not be
// kept, the affected node is printed fresh.
func (p *Printer) PrintFormatPreserving(
	stmts []nodes.Stmt,
	origStmts []nodes.Stmt,
	origTokens []tokens.Token,
	origins nodes.Origins,
) (ret string, err error) {
	defer catchPrintError(&err)
	p.resetState()
	defer func() {
		p.origTokens = nil
		p.origins = nil
	}()

	p.origTokens = NewTokenStream(origTokens, tabWidth)
	p.origins = withIdentity(origins, origStmts)
	p.preprocess(stmts)

	pos := 0
	result, ok := p.pArray(list(stmts), list(origStmts), &pos, 0, "File", "stmts", noFixup)
	if ok {
		// the end of input sentinel is not code
		result += p.origTokens.TokenCode(pos, p.origTokens.Len()-1, 0)
	} else {
		result = "<?php" + p.options.Newline + p.pStmts(stmts, false)
	}

	return p.handleMagicTokens(result), nil
}

// withIdentity maps every original node to itself, so that subtrees moved
// into the edited tree without cloning are recognized.
func withIdentity(origins nodes.Origins, origStmts []nodes.Stmt) nodes.Origins {
	ret := make(nodes.Origins, len(origins))
	for k, v := range origins {
		ret[k] = v
	}
	var walk func(n nodes.Node)
	walk = func(n nodes.Node) {
		if isNil(n) {
			return
		}
		if _, ok := ret[n]; !ok {
			ret[n] = n
		}
		for _, field := range nodes.Fields(n) {
			switch v := field.Get().(type) {
			case nodes.Node:
				walk(v)
			case []nodes.Node:
				for _, sub := range v {
					walk(sub)
				}
			}
		}
	}
	for _, stmt := range origStmts {
		walk(stmt)
	}
	return ret
}

func (p *Printer) pPreserving(n nodes.Node, precedence, lhsPrecedence int, parentFormatPreserved bool) string {
	orig := p.origins.Of(n)
	if orig == nil || orig.Type() != n.Type() ||
		orig.StartTokenPos() < 0 || orig.EndTokenPos() < 0 {
		return p.print(n, precedence, lhsPrecedence)
	}
	if _, ok := n.(*nodes.InlineHTML); ok && !parentFormatPreserved {
		return p.print(n, precedence, lhsPrecedence)
	}

	indentLevel := p.indentLevel
	ret, ok := p.preserve(n, orig)
	if !ok {
		p.setIndentLevel(indentLevel)
		return p.print(n, precedence, lhsPrecedence)
	}
	return ret
}

// preserve reports false when n has to be printed fresh.
func (p *Printer) preserve(n, orig nodes.Node) (string, bool) {
	startPos := orig.StartTokenPos()
	endPos := orig.EndTokenPos()
	indentAdjustment := p.indentLevel - p.origTokens.IndentationBefore(startPos)
	typ := n.Type()
	fixups := fixupMap[typ]

	origFields := nodes.Fields(orig)
	result := ""
	pos := startPos
	for i, field := range nodes.Fields(n) {
		sub := field.Get()
		origSub := origFields[i].Get()
		key := typ + "->" + field.Name

		if field.Kind == nodes.FieldList {
			subList, _ := sub.([]nodes.Node)
			origList, _ := origSub.([]nodes.Node)
			if (subList == nil) != (origList == nil) && optionalBodies[key] {
				return "", false
			}
			if sameNodes(subList, origList) {
				continue
			}
			listResult, ok := p.pArray(subList, origList, &pos, indentAdjustment, typ, field.Name, fixups[field.Name])
			if !ok {
				return "", false
			}
			result += listResult
			continue
		}

		subNode, subIsNode := sub.(nodes.Node)
		origSubNode, origIsNode := origSub.(nodes.Node)
		if (!subIsNode && sub != nil) || (!origIsNode && origSub != nil) {
			if sub == origSub {
				continue
			}
			change, ok := modifierChangeMap[key]
			if !ok {
				return "", false
			}
			result += change.print(p, sub)
			pos = p.origTokens.FindRight(pos, change.find)
			if pos < 0 {
				return "", false
			}
			continue
		}

		var extraLeft, extraRight string
		var subStartPos, subEndPos int
		if origSubNode != nil {
			subStartPos = origSubNode.StartTokenPos()
			subEndPos = origSubNode.EndTokenPos()
			if subStartPos < 0 || subEndPos < 0 {
				return "", false
			}
		} else {
			if subNode == nil {
				continue
			}
			info, ok := insertionMap[key]
			if !ok {
				return "", false
			}
			subStartPos = pos
			if info.hasFind {
				found := p.origTokens.FindRight(pos, info.find)
				if found < 0 {
					return "", false
				}
				subStartPos = found
				if !info.before {
					subStartPos++
				}
			}
			if info.left == "" && info.right != "" {
				subStartPos = p.origTokens.SkipRightWhitespace(subStartPos)
			}
			subEndPos = subStartPos - 1
			extraLeft, extraRight = info.left, info.right
		}

		if subNode == nil {
			info, ok := removalMap[key]
			if !ok {
				return "", false
			}
			if info.hasLeft {
				left, ok := p.origTokens.SkipLeft(subStartPos-1, info.left)
				if !ok {
					return "", false
				}
				subStartPos = left + 1
			}
			if info.hasRight {
				right, ok := p.origTokens.SkipRight(subEndPos+1, info.right)
				if !ok {
					return "", false
				}
				subEndPos = right - 1
			}
		}

		result += p.origTokens.TokenCode(pos, subStartPos, indentAdjustment)

		if subNode != nil {
			result += extraLeft
			origIndentLevel := p.indentLevel
			p.setIndentLevel(max(p.origTokens.IndentationBefore(subStartPos)+indentAdjustment, 0))

			// the node that was there before needs no fixup
			var res string
			if f, ok := fixups[field.Name]; ok && p.origins.Of(subNode) != origSubNode {
				res = p.pFixup(f, subNode, typ, subStartPos, subEndPos)
			} else {
				res = p.pPrec(subNode, maxPrecedence, maxPrecedence, true)
			}
			safeAppend(&result, res)

			p.setIndentLevel(origIndentLevel)
			result += extraRight
		}

		pos = subEndPos + 1
	}

	result += p.origTokens.TokenCode(pos, endPos+1, indentAdjustment)
	return result, true
}

// lists where nil means the construct has no body at all
var optionalBodies = map[string]bool{
	"Stmt_ClassMethod->stmts": true,
	"Stmt_Declare->stmts":     true,
}

func sameNodes(a, b []nodes.Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameComments(a, b []*nodes.Comment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// pArray prints a changed node list against the original one, keeping the
// code of retained elements and the separators between them. pos advances
// past the consumed original tokens.
func (p *Printer) pArray(
	items []nodes.Node,
	origList []nodes.Node,
	pos *int,
	indentAdjustment int,
	parentType string,
	subNodeName string,
	fix fixup,
) (string, bool) {
	differ := NewDiffer(func(old, new nodes.Node) bool {
		if old == nil || new == nil {
			return old == nil && new == nil
		}
		return p.origins.Of(new) == old
	})
	diff := differ.DiffWithReplacements(origList, items)

	if fix == fixupEncapsed {
		// string parts only print as part of their string
		for _, elem := range diff {
			if elem.Type == DiffKeep {
				continue
			}
			_, oldPart := elem.Old.(*nodes.InterpolatedStringPart)
			_, newPart := elem.New.(*nodes.InterpolatedStringPart)
			if oldPart || newPart {
				return "", false
			}
		}
	}

	mapKey := parentType + "->" + subNodeName
	insertStr, hasInsertStr := listInsertionMap[mapKey]
	isStmtList := subNodeName == "stmts"

	beforeFirstKeepOrReplace := true
	skipRemovedNode := false
	var delayedAdd []nodes.Node
	lastElemIndentLevel := p.indentLevel

	insertNewline := false
	if insertStr == "\n" {
		insertStr = ""
		insertNewline = true
	}

	if isStmtList && len(origList) == 1 && len(items) != 1 && origList[0] != nil {
		// a single statement without braces can not take siblings
		if !p.origTokens.HaveBraces(origList[0].StartTokenPos(), origList[0].EndTokenPos()) {
			return "", false
		}
	}

	result := ""
	var lastKept nodes.Node
	for i, elem := range diff {
		item := elem.New
		origItem := elem.Old
		var itemStartPos, itemEndPos int
		origIndentLevel := p.indentLevel

		switch elem.Type {

		case DiffKeep, DiffReplace:
			beforeFirstKeepOrReplace = false
			if origItem == nil || item == nil {
				if origItem == nil && item == nil {
					continue
				}
				return "", false
			}

			itemStartPos = origItem.StartTokenPos()
			itemEndPos = origItem.EndTokenPos()
			if itemStartPos < 0 || itemEndPos < 0 || itemStartPos < *pos {
				return "", false
			}

			lastElemIndentLevel = max(p.origTokens.IndentationBefore(itemStartPos)+indentAdjustment, 0)
			p.setIndentLevel(lastElemIndentLevel)

			comments := item.Comments()
			origComments := origItem.Comments()
			commentStartPos := itemStartPos
			if len(origComments) > 0 && origComments[0].StartTokenPos >= 0 {
				commentStartPos = origComments[0].StartTokenPos
			}
			if commentStartPos < *pos {
				// a comment shared with the previous element is printed once
				commentStartPos = itemStartPos
			}

			if skipRemovedNode {
				if isStmtList && p.origTokens.HaveTagInRange(*pos, itemStartPos) {
					p.setIndentLevel(origIndentLevel)
					return "", false
				}
			} else {
				result += p.origTokens.TokenCode(*pos, commentStartPos, indentAdjustment)
			}

			for _, added := range delayedAdd {
				if insertNewline {
					if comments := added.Comments(); len(comments) > 0 {
						result += p.pComments(comments) + p.nl
					}
				}
				safeAppend(&result, p.pPrec(added, maxPrecedence, maxPrecedence, true))
				if insertNewline {
					result += insertStr + p.nl
				} else {
					result += insertStr
				}
			}
			delayedAdd = nil

			if !sameComments(comments, origComments) {
				if len(comments) > 0 {
					result += p.pComments(comments) + p.nl
				}
			} else {
				result += p.origTokens.TokenCode(commentStartPos, itemStartPos, indentAdjustment)
			}

			skipRemovedNode = false
			lastKept = origItem

		case DiffAdd:
			if !hasInsertStr || item == nil {
				return "", false
			}
			if _, ok := lastKept.(*nodes.InlineHTML); ok && isStmtList {
				// code after HTML needs an open tag
				return "", false
			}

			// follow the layout of a multiline original, or make room for
			// the comments of the new element
			if insertStr == ", " && (p.isMultiline(origList) || len(item.Comments()) > 0) {
				insertStr = ","
				insertNewline = true
			}

			if beforeFirstKeepOrReplace {
				delayedAdd = append(delayedAdd, item)
				continue
			}

			itemStartPos = *pos
			itemEndPos = *pos - 1
			p.setIndentLevel(lastElemIndentLevel)

			if insertNewline {
				result += insertStr + p.nl
				if comments := item.Comments(); len(comments) > 0 {
					result += p.pComments(comments) + p.nl
				}
			} else {
				result += insertStr
			}

		case DiffRemove:
			if origItem == nil {
				return "", false
			}
			itemStartPos = origItem.StartTokenPos()
			itemEndPos = origItem.EndTokenPos()
			if itemStartPos < 0 || itemEndPos < 0 {
				return "", false
			}
			if comments := origItem.Comments(); len(comments) > 0 && comments[0].StartTokenPos >= 0 {
				itemStartPos = comments[0].StartTokenPos
			}

			if i == 0 {
				// removing from the start keeps the code before the element
				// and drops the separator after it
				result += p.origTokens.TokenCode(*pos, itemStartPos, indentAdjustment)
				skipRemovedNode = true
			} else if isStmtList && p.origTokens.HaveTagInRange(*pos, itemStartPos) {
				return "", false
			}

			*pos = itemEndPos + 1
			continue
		}

		var res string
		if fix != noFixup && p.origins.Of(item) != origItem {
			res = p.pFixup(fix, item, "", itemStartPos, itemEndPos)
		} else {
			res = p.pPrec(item, maxPrecedence, maxPrecedence, true)
		}
		safeAppend(&result, res)

		p.setIndentLevel(origIndentLevel)
		*pos = itemEndPos + 1
	}

	if skipRemovedNode {
		// every element was removed
		return "", false
	}

	if len(delayedAdd) > 0 {
		info, ok := emptyListInsertionMap[mapKey]
		if !ok {
			return "", false
		}
		if info.hasFind {
			found := p.origTokens.FindRight(*pos, info.find)
			if found < 0 {
				return "", false
			}
			insertPos := found + 1
			result += p.origTokens.TokenCode(*pos, insertPos, indentAdjustment)
			*pos = insertPos
		}

		result += info.left
		for i, added := range delayedAdd {
			if i > 0 {
				result += insertStr
				if insertNewline {
					result += p.nl
				}
			}
			result += p.pPrec(added, maxPrecedence, maxPrecedence, true)
		}
		if info.right == "\n" {
			result += p.nl
		} else {
			result += info.right
		}
	}

	return result, true
}

// pFixup prints a replaced sub-node, adding the parentheses or braces its
// new content needs unless the original code already has them.
func (p *Printer) pFixup(f fixup, n nodes.Node, parentType string, startPos, endPos int) string {
	switch f {

	case fixupPrecLeft, fixupPrecRight, fixupPrecUnary:
		if !p.origTokens.HaveParens(startPos, endPos) {
			prec := precedenceOf(parentType)
			bound := prec.prec
			switch f {
			case fixupPrecLeft:
				bound = prec.lhs
			case fixupPrecRight:
				bound = prec.rhs
			}
			return p.pPrec(n, bound, bound, false)
		}

	case fixupCallLhs:
		if callLhsRequiresParens(n) && !p.origTokens.HaveParens(startPos, endPos) {
			return "(" + p.p(n) + ")"
		}

	case fixupDerefLhs:
		if dereferenceLhsRequiresParens(n) && !p.origTokens.HaveParens(startPos, endPos) {
			return "(" + p.p(n) + ")"
		}

	case fixupStaticDerefLhs:
		if staticDereferenceLhsRequiresParens(n) && !p.origTokens.HaveParens(startPos, endPos) {
			return "(" + p.p(n) + ")"
		}

	case fixupNew:
		if newOperandRequiresParens(n) && !p.origTokens.HaveParens(startPos, endPos) {
			return "(" + p.p(n) + ")"
		}

	case fixupBracedName, fixupVarBracedName:
		if _, ok := n.(nodes.Expr); ok && !p.origTokens.HaveBraces(startPos, endPos) {
			prefix := ""
			if f == fixupVarBracedName {
				prefix = "$"
			}
			return prefix + "{" + p.p(n) + "}"
		}

	case fixupEncapsed:
		if _, ok := n.(*nodes.InterpolatedStringPart); !ok && !p.origTokens.HaveBraces(startPos, endPos) {
			return "{" + p.p(n) + "}"
		}

	default:
		p.fail("unknown fixup %d", f)
	}

	return p.p(n)
}

// isMultiline reports whether a newline separates every pair of adjacent
// elements in the original code.
func (p *Printer) isMultiline(items []nodes.Node) bool {
	if len(items) < 2 {
		return false
	}
	pos := -1
	for _, n := range items {
		if n == nil {
			continue
		}
		endPos := n.EndTokenPos() + 1
		if pos >= 0 {
			if !strings.Contains(p.origTokens.TokenCode(pos, endPos, 0), "\n") {
				return false
			}
		}
		pos = endPos
	}
	return true
}
