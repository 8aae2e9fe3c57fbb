package tokens

import (
	"fmt"
	"strings"
)

type Token struct {
	Kind Kind
	Text string
	Line int
	// byte offset of the first byte
	Pos int
}

func (t Token) Is(kinds ...Kind) bool {
	for _, kind := range kinds {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// IsIgnorable reports whether the parser skips the token.
func (t Token) IsIgnorable() bool {
	switch t.Kind {
	case Whitespace, Comment, DocComment, OpenTag:
		return true
	}
	return false
}

// EndPos is the byte offset after the last byte.
func (t Token) EndPos() int {
	return t.Pos + len(t.Text)
}

func (t Token) EndLine() int {
	return t.Line + strings.Count(t.Text, "\n")
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d:%d", t.Kind.Name(), t.Text, t.Line, t.Pos)
}
