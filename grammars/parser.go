package grammars

import (
	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/parsers"
	"github.com/reusee/phpedit/tokens"
	"github.com/reusee/phpedit/traversers"
)

// Parser turns PHP source into a statement list.
type Parser struct {
	lexer  *lexers.Lexer
	tokens []tokens.Token
}

func New(options lexers.Options) *Parser {
	return &Parser{
		lexer: lexers.New(options),
	}
}

// Parse returns the statements of code. Recoverable errors go to handler;
// with a collecting handler a partial tree is returned, or nil when the
// input could not be recovered from. The error is non-nil when the handler
// aborts or the grammar tables are unusable.
func (p *Parser) Parse(code []byte, handler errs.Handler) ([]nodes.Stmt, error) {
	handler = errs.Or(handler)
	c, err := compile()
	if err != nil {
		return nil, err
	}

	toks, err := p.lexer.Tokenize(code, handler)
	if err != nil {
		return nil, err
	}
	p.tokens = toks

	attributes := p.lexer.Options().Attributes
	if attributes.Has(nodes.CaptureComments) {
		// comments are attached by token position
		attributes |= nodes.CaptureStartTokenPos | nodes.CaptureEndTokenPos
	}

	st := &parseState{
		tokens:     toks,
		attributes: attributes,
	}
	result, err := c.engine.Parse(st, toks, attributes, handler)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	stmts, _ := result.([]nodes.Stmt)

	for _, array := range st.createdArrays {
		if st.detached[array] {
			continue
		}
		for _, item := range array.Items {
			if !isEmptyElement(item) {
				continue
			}
			if err := handler.HandleError(errs.New("Cannot use empty array elements in arrays", item.Attributes())); err != nil {
				return nil, err
			}
		}
	}

	if attributes.Has(nodes.CaptureComments) {
		stmts = traversers.Traverse(stmts, traversers.NewCommentAnnotatingVisitor(toks))
	}

	return stmts, nil
}

// Tokens returns the tokens of the last Parse call.
func (p *Parser) Tokens() []tokens.Token {
	return p.tokens
}

// parseState is the per-parse context shared by the reducers.
type parseState struct {
	tokens        []tokens.Token
	attributes    nodes.AttributeSet
	createdArrays []*nodes.ArrayExpr
	detached      map[*nodes.ArrayExpr]bool
}

func (st *parseState) createArray(r *parsers.Reduction, items []*nodes.ArrayItem, kind int) *nodes.ArrayExpr {
	array := with(&nodes.ArrayExpr{
		Items: items,
	}, r.Attrs())
	array.SetAttribute(nodes.KindKey, kind)
	st.createdArrays = append(st.createdArrays, array)
	return array
}

// fixupArrayDestructuring converts an array literal on the left of an
// assignment into a list, recursively.
func (st *parseState) fixupArrayDestructuring(array *nodes.ArrayExpr) *nodes.List {
	if st.detached == nil {
		st.detached = make(map[*nodes.ArrayExpr]bool)
	}
	st.detached[array] = true
	items := make([]*nodes.ArrayItem, len(array.Items))
	for i, item := range array.Items {
		switch {
		case item == nil, isEmptyElement(item):
			items[i] = nil
		default:
			if inner, ok := item.Value.(*nodes.ArrayExpr); ok {
				items[i] = with(&nodes.ArrayItem{
					Key:   item.Key,
					Value: st.fixupArrayDestructuring(inner),
					ByRef: item.ByRef,
				}, item.Attributes())
			} else {
				items[i] = item
			}
		}
	}
	attrs := array.Attributes().Clone()
	attrs[nodes.KindKey] = nodes.ListKindArray
	return with(&nodes.List{
		Items: items,
	}, attrs)
}

func (st *parseState) inlineHTMLHasLeadingNewline(tokenPos int) bool {
	if tokenPos <= 0 {
		return true
	}
	prev := st.tokens[tokenPos-1].Text
	for i := 0; i < len(prev); i++ {
		if prev[i] == '\n' || prev[i] == '\r' {
			return true
		}
	}
	return false
}

func isDropped(kind tokens.Kind) bool {
	for _, k := range parsers.DefaultDrop {
		if k == kind {
			return true
		}
	}
	return false
}

// commentBefore returns the last comment between the previous significant
// token and the token at pos.
func (st *parseState) commentBefore(pos int) *nodes.Comment {
	for pos--; pos >= 0; pos-- {
		tok := st.tokens[pos]
		if !isDropped(tok.Kind) {
			break
		}
		if tok.Is(tokens.Comment, tokens.DocComment) {
			return traversers.CommentFromToken(tok, pos)
		}
	}
	return nil
}

// maybeCreateNop keeps an empty statement only when it carries comments.
func (st *parseState) maybeCreateNop(r *parsers.Reduction, start, end int) nodes.Stmt {
	if st.commentBefore(start) == nil {
		return nil
	}
	return with(&nodes.Nop{}, r.AttrsFor(start, end))
}

// maybeCreateZeroLengthNop anchors a comment right before the token at pos
// with an empty node located just after the comment.
func (st *parseState) maybeCreateZeroLengthNop(r *parsers.Reduction, pos int) *nodes.Nop {
	comment := st.commentBefore(pos)
	if comment == nil {
		return nil
	}
	attrs := make(nodes.Attributes)
	set := r.AttributeSet()
	if set.Has(nodes.CaptureStartLine) {
		attrs[nodes.StartLine] = comment.EndLine
	}
	if set.Has(nodes.CaptureEndLine) {
		attrs[nodes.EndLine] = comment.EndLine
	}
	if set.Has(nodes.CaptureStartFilePos) {
		attrs[nodes.StartFilePos] = comment.EndFilePos + 1
	}
	if set.Has(nodes.CaptureEndFilePos) {
		attrs[nodes.EndFilePos] = comment.EndFilePos
	}
	if set.Has(nodes.CaptureStartTokenPos) {
		attrs[nodes.StartTokenPos] = comment.EndTokenPos + 1
	}
	if set.Has(nodes.CaptureEndTokenPos) {
		attrs[nodes.EndTokenPos] = comment.EndTokenPos
	}
	return with(&nodes.Nop{}, attrs)
}
