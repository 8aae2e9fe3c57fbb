package lexers

import (
	"fmt"
	"strings"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// Lexer turns PHP source into tokens. A Lexer is stateless between calls.
type Lexer struct {
	options Options
}

func New(options Options) *Lexer {
	return &Lexer{
		options: options,
	}
}

func (l *Lexer) Options() Options {
	return l.options
}

// Tokenize returns the token stream of source, terminated by a sentinel
// token of kind tokens.EOF. Lexical errors go to handler; the returned error
// is non-nil only when the handler aborts.
func (l *Lexer) Tokenize(source []byte, handler errs.Handler) ([]tokens.Token, error) {
	handler = errs.Or(handler)

	sc := newScanner(source, l.options)
	toks := sc.scan()

	toks, err := fillGaps(source, toks, handler)
	if err != nil {
		return nil, err
	}
	for _, pos := range sc.dollarBraces {
		line := lineAt(source, pos)
		if err := handler.HandleError(errs.New(`Unsupported string interpolation "${"`, nodes.Attributes{
			nodes.StartLine:    line,
			nodes.EndLine:      line,
			nodes.StartFilePos: pos,
			nodes.EndFilePos:   pos + 1,
		})); err != nil {
			return nil, err
		}
	}
	toks = mergeNames(toks)
	toks, err = fixComments(toks, handler)
	if err != nil {
		return nil, err
	}

	line := 1
	pos := 0
	for i := range toks {
		toks[i].Line = line
		toks[i].Pos = pos
		line += strings.Count(toks[i].Text, "\n")
		pos += len(toks[i].Text)
	}
	toks = append(toks, tokens.Token{
		Kind: tokens.EOF,
		Text: "\x00",
		Line: line,
		Pos:  pos,
	})

	return toks, nil
}

func lineAt(source []byte, pos int) int {
	return 1 + strings.Count(string(source[:pos]), "\n")
}

// fillGaps turns every byte not covered by a token into a bad character
// token and reports it.
func fillGaps(source []byte, toks []tokens.Token, handler errs.Handler) ([]tokens.Token, error) {
	ret := make([]tokens.Token, 0, len(toks))
	pos := 0
	fill := func(end int) error {
		for ; pos < end; pos++ {
			c := source[pos]
			var msg string
			if c == 0 {
				msg = "Unexpected null byte"
			} else {
				msg = fmt.Sprintf("Unexpected character \"%c\" (ASCII %d)", c, c)
			}
			line := lineAt(source, pos)
			if err := handler.HandleError(errs.New(msg, nodes.Attributes{
				nodes.StartLine:    line,
				nodes.EndLine:      line,
				nodes.StartFilePos: pos,
				nodes.EndFilePos:   pos,
			})); err != nil {
				return err
			}
			ret = append(ret, tokens.Token{
				Kind: tokens.BadCharacter,
				Text: string(source[pos : pos+1]),
				Pos:  pos,
			})
		}
		return nil
	}
	for _, tok := range toks {
		if tok.Pos > pos {
			if err := fill(tok.Pos); err != nil {
				return nil, err
			}
		}
		ret = append(ret, tok)
		pos = tok.Pos + len(tok.Text)
	}
	if err := fill(len(source)); err != nil {
		return nil, err
	}
	return ret, nil
}

func isLabelToken(tok tokens.Token) bool {
	return tok.Text != "" && labelLength([]byte(tok.Text)) == len(tok.Text) &&
		(tok.Kind == tokens.String || tokens.IsKeyword(tok.Kind))
}

// mergeNames joins adjacent separator and label tokens into name tokens.
func mergeNames(toks []tokens.Token) []tokens.Token {
	ret := make([]tokens.Token, 0, len(toks))
	adjacent := func(a, b tokens.Token) bool {
		return a.Pos+len(a.Text) == b.Pos
	}
	for i := 0; i < len(toks); i++ {
		tok := toks[i]

		var kind tokens.Kind
		j := i
		switch {
		case tok.Kind == tokens.NsSeparator:
			kind = tokens.NameFullyQualified
		case tok.Kind == tokens.Namespace:
			kind = tokens.NameRelative
			j++
		case isLabelToken(tok):
			kind = tokens.NameQualified
			j++
		default:
			ret = append(ret, tok)
			continue
		}

		// j points at the expected separator
		end := j
		for end+1 < len(toks) &&
			toks[end].Kind == tokens.NsSeparator &&
			isLabelToken(toks[end+1]) &&
			(end == i || adjacent(toks[end-1], toks[end])) &&
			adjacent(toks[end], toks[end+1]) {
			end += 2
		}
		if end == j {
			ret = append(ret, tok)
			continue
		}

		var sb strings.Builder
		for _, t := range toks[i:end] {
			sb.WriteString(t.Text)
		}
		ret = append(ret, tokens.Token{
			Kind: kind,
			Text: sb.String(),
			Pos:  tok.Pos,
		})
		i = end - 1
	}
	return ret
}

// fixComments reports unterminated block comments and moves the newline
// ending a single line comment into the following whitespace.
func fixComments(toks []tokens.Token, handler errs.Handler) ([]tokens.Token, error) {
	ret := make([]tokens.Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if !tok.Is(tokens.Comment, tokens.DocComment) {
			ret = append(ret, tok)
			continue
		}

		if strings.HasPrefix(tok.Text, "/*") {
			if len(tok.Text) < 4 || !strings.HasSuffix(tok.Text, "*/") {
				line := lineOfToken(toks, i)
				if err := handler.HandleError(errs.New("Unterminated comment", nodes.Attributes{
					nodes.StartLine:    line,
					nodes.EndLine:      line + strings.Count(tok.Text, "\n"),
					nodes.StartFilePos: tok.Pos,
					nodes.EndFilePos:   tok.Pos + len(tok.Text) - 1,
				})); err != nil {
					return nil, err
				}
			}
			ret = append(ret, tok)
			continue
		}

		newline := ""
		switch {
		case strings.HasSuffix(tok.Text, "\r\n"):
			newline = "\r\n"
		case strings.HasSuffix(tok.Text, "\n"):
			newline = "\n"
		case strings.HasSuffix(tok.Text, "\r"):
			newline = "\r"
		}
		if newline == "" {
			ret = append(ret, tok)
			continue
		}
		tok.Text = strings.TrimSuffix(tok.Text, newline)
		ret = append(ret, tok)
		wsPos := tok.Pos + len(tok.Text)
		if i+1 < len(toks) && toks[i+1].Kind == tokens.Whitespace {
			toks[i+1].Text = newline + toks[i+1].Text
			toks[i+1].Pos = wsPos
		} else {
			ret = append(ret, tokens.Token{
				Kind: tokens.Whitespace,
				Text: newline,
				Pos:  wsPos,
			})
		}
	}
	return ret, nil
}

func lineOfToken(toks []tokens.Token, i int) int {
	line := 1
	for _, tok := range toks[:i] {
		line += strings.Count(tok.Text, "\n")
	}
	return line
}
