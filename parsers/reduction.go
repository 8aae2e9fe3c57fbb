package parsers

import (
	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/tokens"
)

// Reduction is the view a Reducer gets of the symbols being reduced.
// Symbol indexes are 1-based, left to right.
type Reduction struct {
	m        *machine
	rule     int
	length   int
	stackPos int
}

func (r *Reduction) Rule() int {
	return r.rule
}

func (r *Reduction) Len() int {
	return r.length
}

func (r *Reduction) slot(i int) int {
	if i < 1 || i > r.length {
		panic("symbol index out of range")
	}
	return r.stackPos - r.length + i
}

// Sem returns the semantic value of symbol i. Terminals carry their text.
func (r *Reduction) Sem(i int) any {
	return r.m.semStack[r.slot(i)]
}

// Str returns the text of terminal i.
func (r *Reduction) Str(i int) string {
	s, _ := r.Sem(i).(string)
	return s
}

func (r *Reduction) StartTokenPos(i int) int {
	return r.m.startStack[r.slot(i)]
}

func (r *Reduction) EndTokenPos(i int) int {
	return r.m.endStack[r.slot(i)]
}

// Token returns the first token of symbol i.
func (r *Reduction) Token(i int) tokens.Token {
	return r.m.tokens[r.m.startStack[r.slot(i)]]
}

// Attrs spans the whole rule. Empty rules start at the lookahead.
func (r *Reduction) Attrs() nodes.Attributes {
	if r.length == 0 {
		return r.m.attributesFor(r.m.tokenPos, r.m.endStack[r.stackPos])
	}
	return r.m.attributesFor(r.m.startStack[r.slot(1)], r.m.endStack[r.stackPos])
}

// AttrsAt spans symbol i.
func (r *Reduction) AttrsAt(i int) nodes.Attributes {
	slot := r.slot(i)
	return r.m.attributesFor(r.m.startStack[slot], r.m.endStack[slot])
}

// AttrsRange spans symbols from through to.
func (r *Reduction) AttrsRange(from, to int) nodes.Attributes {
	return r.m.attributesFor(r.m.startStack[r.slot(from)], r.m.endStack[r.slot(to)])
}

func (r *Reduction) AttrsFor(startTokenPos, endTokenPos int) nodes.Attributes {
	return r.m.attributesFor(startTokenPos, endTokenPos)
}

func (r *Reduction) AttrsForToken(pos int) nodes.Attributes {
	return r.m.attributesForToken(pos)
}

func (r *Reduction) Tokens() []tokens.Token {
	return r.m.tokens
}

// Lookahead is the position of the last token read.
func (r *Reduction) Lookahead() int {
	return r.m.tokenPos
}

func (r *Reduction) AttributeSet() nodes.AttributeSet {
	return r.m.attributes
}

// Emit reports a recoverable error. The parse aborts after the reduction if
// the handler refuses the error.
func (r *Reduction) Emit(err *errs.Error) {
	r.m.emit(err)
}

// Fail reports an unrecoverable error; the parse yields no result.
func (r *Reduction) Fail(err *errs.Error) {
	r.m.fatal = err
}

// ConsumeRest stops the parser from reading further tokens and returns the
// text of the inline HTML token following the current position, if any.
func (r *Reduction) ConsumeRest() string {
	next := r.m.tokens[r.m.tokenPos+1]
	r.m.tokenPos = len(r.m.tokens) - 2
	if next.Kind == tokens.InlineHTML {
		return next.Text
	}
	return ""
}

// SetErrorState overrides the recovery counter, as rules matching the error
// symbol do to resume reporting sooner.
func (r *Reduction) SetErrorState(n int) {
	r.m.errorState = n
}
