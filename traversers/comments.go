package traversers

import (
	"strings"

	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// CommentFromToken builds a comment from the token at position pos.
// An unterminated block comment gets its closing "*/" restored so it can
// be printed back as valid code.
func CommentFromToken(tok tokens.Token, pos int) *nodes.Comment {
	text := tok.Text
	endFilePos := tok.Pos + len(text) - 1
	if strings.HasPrefix(text, "/*") && (len(text) < 4 || !strings.HasSuffix(text, "*/")) {
		text += "*/"
	}
	return &nodes.Comment{
		Text:          text,
		Doc:           tok.Kind == tokens.DocComment,
		StartLine:     tok.Line,
		StartFilePos:  tok.Pos,
		StartTokenPos: pos,
		EndLine:       tok.EndLine(),
		EndFilePos:    endFilePos,
		EndTokenPos:   pos,
	}
}

// CommentAnnotatingVisitor attaches to each node the comments directly
// preceding its first token. Only whitespace may separate the comments
// from the node, and a comment goes to the outermost node starting after
// it.
type CommentAnnotatingVisitor struct {
	VisitorBase
	tokens    []tokens.Token
	positions []int
	next      int
	pos       int
}

func NewCommentAnnotatingVisitor(toks []tokens.Token) *CommentAnnotatingVisitor {
	v := &CommentAnnotatingVisitor{
		tokens: toks,
	}
	for i, tok := range toks {
		if tok.Is(tokens.Comment, tokens.DocComment) {
			v.positions = append(v.positions, i)
		}
	}
	return v
}

func (v *CommentAnnotatingVisitor) EnterNode(node nodes.Node) Action {
	if v.next >= len(v.positions) {
		return Stop
	}
	nextComment := v.positions[v.next]

	oldPos := v.pos
	pos := node.StartTokenPos()
	if pos < 0 {
		return Continue
	}
	v.pos = pos

	if nextComment > oldPos && nextComment < pos {
		var comments []*nodes.Comment
		for i := pos - 1; i >= oldPos; i-- {
			tok := v.tokens[i]
			if tok.Is(tokens.Comment, tokens.DocComment) {
				comments = append(comments, CommentFromToken(tok, i))
				continue
			}
			if tok.Kind != tokens.Whitespace {
				break
			}
		}
		if len(comments) > 0 {
			for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
				comments[i], comments[j] = comments[j], comments[i]
			}
			node.SetComments(comments)
		}
		for v.next < len(v.positions) && v.positions[v.next] < v.pos {
			v.next++
		}
		if v.next >= len(v.positions) {
			return SkipChildren
		}
		nextComment = v.positions[v.next]
	}

	if end := node.EndTokenPos(); nextComment > end {
		// nothing inside
		v.pos = end
		return SkipChildren
	}
	return Continue
}
