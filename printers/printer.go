package printers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"regexp"
	"strings"

	"github.com/reusee/phpedit/nodes"
)

var (
	ErrErrorNode   = errors.New("cannot print a tree containing error nodes")
	ErrUnsupported = errors.New("construct not supported by the target version")
)

const tabWidth = 4

// Printer renders syntax trees as PHP code. A Printer keeps per call state
// and must not be used by several goroutines at once.
type Printer struct {
	options     Options
	indentWidth int
	useTabs     bool
	// marks the end of a doc string when heredoc closing labels can not be
	// indented; empty otherwise
	docStringEnd string

	indentLevel               int
	nl                        string
	canUseSemicolonNamespaces bool

	// set while printing format preserving
	origTokens *TokenStream
	origins    nodes.Origins
}

func New(options Options) (*Printer, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	p := &Printer{
		options: options,
	}
	if options.Indent == "\t" {
		p.useTabs = true
		p.indentWidth = tabWidth
	} else {
		p.indentWidth = len(options.Indent)
	}
	if !options.supportsFlexibleHeredoc() {
		p.docStringEnd = fmt.Sprintf("_DOC_STRING_END_%d", rand.Uint32())
	}
	return p, nil
}

// printError carries failures out of the recursive printer.
type printError struct {
	err error
}

func (p *Printer) fail(format string, args ...any) {
	panic(printError{fmt.Errorf(format, args...)})
}

func catchPrintError(err *error) {
	if p := recover(); p != nil {
		if e, ok := p.(printError); ok {
			*err = e.err
			return
		}
		panic(p)
	}
}

func (p *Printer) resetState() {
	p.indentLevel = 0
	p.nl = p.options.Newline
	p.origTokens = nil
	p.origins = nil
}

func (p *Printer) setIndentLevel(level int) {
	p.indentLevel = level
	if p.useTabs {
		p.nl = p.options.Newline + strings.Repeat("\t", level/tabWidth) + strings.Repeat(" ", level%tabWidth)
	} else {
		p.nl = p.options.Newline + strings.Repeat(" ", level)
	}
}

func (p *Printer) indent() {
	p.indentLevel += p.indentWidth
	p.nl += p.options.Indent
}

func (p *Printer) outdent() {
	p.setIndentLevel(p.indentLevel - p.indentWidth)
}

// PrettyPrint renders statements without an opening tag.
func (p *Printer) PrettyPrint(stmts []nodes.Stmt) (ret string, err error) {
	defer catchPrintError(&err)
	p.resetState()
	p.preprocess(stmts)
	return strings.TrimLeft(p.handleMagicTokens(p.pStmts(stmts, false)), " \t\n\r\x00\x0b"), nil
}

func (p *Printer) PrettyPrintExpr(expr nodes.Expr) (ret string, err error) {
	defer catchPrintError(&err)
	p.resetState()
	return p.handleMagicTokens(p.p(expr)), nil
}

var (
	leadingCloseTag = regexp.MustCompile(`^<\?php\s+\?>\r?\n?`)
	trailingOpenTag = regexp.MustCompile(`<\?php$`)
)

// PrettyPrintFile renders a complete file, starting with an opening tag.
func (p *Printer) PrettyPrintFile(stmts []nodes.Stmt) (string, error) {
	if len(stmts) == 0 {
		return "<?php" + p.options.Newline + p.options.Newline, nil
	}
	code, err := p.PrettyPrint(stmts)
	if err != nil {
		return "", err
	}
	ret := "<?php" + p.options.Newline + p.options.Newline + code
	if _, ok := stmts[0].(*nodes.InlineHTML); ok {
		ret = leadingCloseTag.ReplaceAllString(ret, "")
	}
	if _, ok := stmts[len(stmts)-1].(*nodes.InlineHTML); ok {
		ret = trailingOpenTag.ReplaceAllString(strings.TrimRight(ret, " \t\n\r\x00\x0b"), "")
	}
	return ret, nil
}

// semicolon namespaces are only usable without a global namespace block
func (p *Printer) preprocess(stmts []nodes.Stmt) {
	p.canUseSemicolonNamespaces = true
	for _, stmt := range stmts {
		if ns, ok := stmt.(*nodes.Namespace); ok && ns.Name == nil {
			p.canUseSemicolonNamespaces = false
			break
		}
	}
}

func (p *Printer) handleMagicTokens(s string) string {
	if p.docStringEnd == "" {
		return s
	}
	s = strings.ReplaceAll(s, p.docStringEnd+";"+p.options.Newline, ";"+p.options.Newline)
	return strings.ReplaceAll(s, p.docStringEnd, p.options.Newline)
}

// p prints a node at the loosest precedence.
func (p *Printer) p(n nodes.Node) string {
	return p.pPrec(n, maxPrecedence, maxPrecedence, false)
}

// pPrec prints a node, preserving formatting when original tokens are
// available. precedence and lhsPrecedence bound the operators n may use
// without parentheses.
func (p *Printer) pPrec(n nodes.Node, precedence, lhsPrecedence int, parentFormatPreserved bool) string {
	if p.origTokens == nil {
		return p.print(n, precedence, lhsPrecedence)
	}
	return p.pPreserving(n, precedence, lhsPrecedence, parentFormatPreserved)
}

func (p *Printer) pStmts(stmts []nodes.Stmt, indent bool) string {
	if indent {
		p.indent()
	}
	var b strings.Builder
	for _, stmt := range stmts {
		if comments := stmt.Comments(); len(comments) > 0 {
			b.WriteString(p.nl)
			b.WriteString(p.pComments(comments))
			if _, ok := stmt.(*nodes.Nop); ok {
				continue
			}
		}
		b.WriteString(p.nl)
		b.WriteString(p.p(stmt))
	}
	if indent {
		p.outdent()
	}
	return b.String()
}

func (p *Printer) pInfixOp(typ string, left nodes.Node, op string, right nodes.Node, precedence, lhsPrecedence int) string {
	prec := precedenceOf(typ)
	var prefix, suffix string
	if prec.prec >= precedence {
		prefix, suffix = "(", ")"
		lhsPrecedence = maxPrecedence
	}
	return prefix +
		p.pPrec(left, prec.lhs, prec.lhs, false) +
		op +
		p.pPrec(right, prec.rhs, lhsPrecedence, false) +
		suffix
}

func (p *Printer) pPrefixOp(typ string, op string, n nodes.Node, precedence, lhsPrecedence int) string {
	prec := precedenceOf(typ).prec
	var prefix, suffix string
	if prec >= lhsPrecedence {
		prefix, suffix = "(", ")"
		lhsPrecedence = maxPrecedence
	}
	arg := p.pPrec(n, prec, lhsPrecedence, false)
	// +(+$a) must not become ++$a
	if (op == "+" && strings.HasPrefix(arg, "+")) || (op == "-" && strings.HasPrefix(arg, "-")) {
		arg = "(" + arg + ")"
	}
	return prefix + op + arg + suffix
}

func (p *Printer) pPostfixOp(typ string, n nodes.Node, op string, precedence, lhsPrecedence int) string {
	prec := precedenceOf(typ).prec
	var prefix, suffix string
	if prec >= precedence {
		prefix, suffix = "(", ")"
		lhsPrecedence = maxPrecedence
	}
	if prec < lhsPrecedence {
		lhsPrecedence = prec
	}
	return prefix + p.pPrec(n, prec, lhsPrecedence, false) + op + suffix
}

// nil elements print as nothing
func (p *Printer) pImplode(list []nodes.Node, glue string) string {
	parts := make([]string, len(list))
	for i, n := range list {
		if n != nil {
			parts[i] = p.p(n)
		}
	}
	return strings.Join(parts, glue)
}

func (p *Printer) pCommaSeparated(list []nodes.Node) string {
	return p.pImplode(list, ", ")
}

func (p *Printer) pCommaSeparatedMultiline(list []nodes.Node, trailingComma bool) string {
	p.indent()
	var b strings.Builder
	for i, n := range list {
		if n != nil {
			if comments := n.Comments(); len(comments) > 0 {
				b.WriteString(p.nl)
				b.WriteString(p.pComments(comments))
			}
			b.WriteString(p.nl)
			b.WriteString(p.p(n))
		} else {
			b.WriteString(p.nl)
		}
		if trailingComma || i != len(list)-1 {
			b.WriteByte(',')
		}
	}
	p.outdent()
	return b.String()
}

// pMaybeMultiline goes multiline when an element carries comments.
func (p *Printer) pMaybeMultiline(list []nodes.Node, trailingComma bool) string {
	for _, n := range list {
		if n != nil && len(n.Comments()) > 0 {
			return p.pCommaSeparatedMultiline(list, trailingComma) + p.nl
		}
	}
	return p.pCommaSeparated(list)
}

func (p *Printer) pComments(comments []*nodes.Comment) string {
	formatted := make([]string, 0, len(comments))
	for _, comment := range comments {
		formatted = append(formatted, strings.ReplaceAll(comment.ReformattedText(), "\n", p.nl))
	}
	return strings.Join(formatted, p.nl)
}

func (p *Printer) pModifiers(flags int) string {
	return nodes.ModifierString(flags)
}

func (p *Printer) pStatic(static bool) string {
	if static {
		return "static "
	}
	return ""
}

func isLabelChar(c byte) bool {
	return c >= 0x80 ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// safeAppend joins code, separating two label characters by a space.
func safeAppend(s *string, code string) {
	switch {
	case *s == "":
		*s = code
	case code == "":
	case isLabelChar(code[0]) && isLabelChar((*s)[len(*s)-1]):
		*s += " " + code
	default:
		*s += code
	}
}

// list converts a typed node slice, mapping nil pointers to nil nodes.
func list[T nodes.Node](xs []T) []nodes.Node {
	return nodes.ListOf(reflect.ValueOf(xs))
}

// isNil reports a nil interface or a typed nil pointer.
func isNil(n nodes.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
