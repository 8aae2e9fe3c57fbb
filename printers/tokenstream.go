package printers

import (
	"strings"

	"github.com/reusee/phpedit/tokens"
)

// TokenStream answers questions about the original token array during
// format preserving printing. The last token is the end of input sentinel.
type TokenStream struct {
	tokens []tokens.Token
	// indentation of the line each token is on, one extra entry for the
	// position past the end
	indentMap []int
}

func NewTokenStream(toks []tokens.Token, tabWidth int) *TokenStream {
	return &TokenStream{
		tokens:    toks,
		indentMap: calcIndentMap(toks, tabWidth),
	}
}

func calcIndentMap(toks []tokens.Token, tabWidth int) []int {
	ret := make([]int, 0, len(toks)+1)
	indent := 0
	for i, tok := range toks {
		ret = append(ret, indent)
		if tok.Kind != tokens.Whitespace {
			continue
		}
		if nl := strings.LastIndexByte(tok.Text, '\n'); nl >= 0 {
			indent = indentWidth(tok.Text[nl+1:], tabWidth)
		} else if i == 1 && toks[0].Kind == tokens.OpenTag && strings.HasSuffix(toks[0].Text, "\n") {
			// whitespace after the newline that ends an opening tag
			indent = indentWidth(tok.Text, tabWidth)
		}
	}
	return append(ret, indent)
}

func indentWidth(ws string, tabWidth int) int {
	n := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			n += tabWidth
		} else {
			n++
		}
	}
	return n
}

func (t *TokenStream) Len() int {
	return len(t.tokens)
}

// HaveParens reports whether the range is directly wrapped in parentheses.
func (t *TokenStream) HaveParens(startPos, endPos int) bool {
	return t.haveTokenImmediatelyBefore(startPos, '(') &&
		t.haveTokenImmediatelyAfter(endPos, ')')
}

func (t *TokenStream) HaveBraces(startPos, endPos int) bool {
	return (t.haveTokenImmediatelyBefore(startPos, '{') ||
		t.haveTokenImmediatelyBefore(startPos, tokens.CurlyOpen)) &&
		t.haveTokenImmediatelyAfter(endPos, '}')
}

func (t *TokenStream) haveTokenImmediatelyBefore(pos int, kind tokens.Kind) bool {
	for pos--; pos >= 0; pos-- {
		tok := t.tokens[pos]
		if tok.Kind == kind {
			return true
		}
		if !tok.IsIgnorable() {
			break
		}
	}
	return false
}

func (t *TokenStream) haveTokenImmediatelyAfter(pos int, kind tokens.Kind) bool {
	for pos++; pos < len(t.tokens); pos++ {
		tok := t.tokens[pos]
		if tok.Kind == kind {
			return true
		}
		if !tok.IsIgnorable() {
			break
		}
	}
	return false
}

// SkipLeft moves left over ignorable tokens, then over one token of the
// given kind and the ignorable tokens before it. Whitespace skips only the
// ignorable run. It reports false if the expected token is not there.
func (t *TokenStream) SkipLeft(pos int, kind tokens.Kind) (int, bool) {
	pos = t.SkipLeftWhitespace(pos)
	if kind == tokens.Whitespace {
		return pos, true
	}
	if pos < 0 || t.tokens[pos].Kind != kind {
		return pos, false
	}
	return t.SkipLeftWhitespace(pos - 1), true
}

func (t *TokenStream) SkipRight(pos int, kind tokens.Kind) (int, bool) {
	pos = t.SkipRightWhitespace(pos)
	if kind == tokens.Whitespace {
		return pos, true
	}
	if pos >= len(t.tokens) || t.tokens[pos].Kind != kind {
		return pos, false
	}
	return t.SkipRightWhitespace(pos + 1), true
}

func (t *TokenStream) SkipLeftWhitespace(pos int) int {
	for ; pos >= 0; pos-- {
		if !t.tokens[pos].IsIgnorable() {
			break
		}
	}
	return pos
}

func (t *TokenStream) SkipRightWhitespace(pos int) int {
	for ; pos < len(t.tokens); pos++ {
		if !t.tokens[pos].IsIgnorable() {
			break
		}
	}
	return pos
}

// FindRight returns the position of the first token of kind at or after
// pos, or -1.
func (t *TokenStream) FindRight(pos int, kind tokens.Kind) int {
	for ; pos < len(t.tokens); pos++ {
		if t.tokens[pos].Kind == kind {
			return pos
		}
	}
	return -1
}

// HaveTagInRange reports an opening or closing tag in [startPos, endPos).
func (t *TokenStream) HaveTagInRange(startPos, endPos int) bool {
	for pos := max(startPos, 0); pos < endPos && pos < len(t.tokens); pos++ {
		switch t.tokens[pos].Kind {
		case tokens.OpenTag, tokens.OpenTagWithEcho, tokens.CloseTag:
			return true
		}
	}
	return false
}

func (t *TokenStream) IndentationBefore(pos int) int {
	return t.indentMap[pos]
}

// TokenCode concatenates tokens [from, to), shifting the indentation of
// every line by indent columns. String contents are never reindented.
func (t *TokenStream) TokenCode(from, to, indent int) string {
	var b strings.Builder
	for pos := max(from, 0); pos < to && pos < len(t.tokens); pos++ {
		tok := t.tokens[pos]
		if tok.Kind == tokens.ConstantEncapsedString || tok.Kind == tokens.EncapsedAndWhitespace {
			b.WriteString(tok.Text)
			continue
		}
		switch {
		case indent < 0:
			b.WriteString(strings.ReplaceAll(tok.Text, "\n"+strings.Repeat(" ", -indent), "\n"))
		case indent > 0:
			b.WriteString(strings.ReplaceAll(tok.Text, "\n", "\n"+strings.Repeat(" ", indent)))
		default:
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}
