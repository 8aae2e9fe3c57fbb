package nodes

// Node is an element of the syntax tree.
//
// Sub-nodes are the struct fields tagged with `node:"<name>"`, listed in
// source order. Everything else about a node lives in its attribute map.
type Node interface {
	Type() string

	Attributes() Attributes
	SetAttributes(Attributes)
	Attribute(key string) (any, bool)
	HasAttribute(key string) bool
	SetAttribute(key string, value any)

	StartLine() int
	EndLine() int
	StartTokenPos() int
	EndTokenPos() int
	StartFilePos() int
	EndFilePos() int

	Comments() []*Comment
	SetComments([]*Comment)
	DocComment() *Comment
	SetDocComment(*Comment)

	base() *Base
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

// Base carries the attribute map. Every node type embeds it.
type Base struct {
	attrs Attributes
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) Attributes() Attributes {
	return b.attrs
}

func (b *Base) SetAttributes(attrs Attributes) {
	b.attrs = attrs
}

func (b *Base) Attribute(key string) (any, bool) {
	v, ok := b.attrs[key]
	return v, ok
}

func (b *Base) HasAttribute(key string) bool {
	_, ok := b.attrs[key]
	return ok
}

func (b *Base) SetAttribute(key string, value any) {
	if b.attrs == nil {
		b.attrs = make(Attributes)
	}
	b.attrs[key] = value
}

func (b *Base) StartLine() int {
	return b.attrs.Int(StartLine)
}

func (b *Base) EndLine() int {
	return b.attrs.Int(EndLine)
}

func (b *Base) StartTokenPos() int {
	return b.attrs.Int(StartTokenPos)
}

func (b *Base) EndTokenPos() int {
	return b.attrs.Int(EndTokenPos)
}

func (b *Base) StartFilePos() int {
	return b.attrs.Int(StartFilePos)
}

func (b *Base) EndFilePos() int {
	return b.attrs.Int(EndFilePos)
}

func (b *Base) Comments() []*Comment {
	comments, _ := b.attrs[CommentsKey].([]*Comment)
	return comments
}

func (b *Base) SetComments(comments []*Comment) {
	b.SetAttribute(CommentsKey, comments)
}

// DocComment returns the last doc comment attached to the node.
func (b *Base) DocComment() *Comment {
	comments := b.Comments()
	for i := len(comments) - 1; i >= 0; i-- {
		if comments[i].Doc {
			return comments[i]
		}
	}
	return nil
}

// SetDocComment replaces the trailing doc comment, or appends one.
func (b *Base) SetDocComment(doc *Comment) {
	comments := b.Comments()
	for i := len(comments) - 1; i >= 0; i-- {
		if comments[i].Doc {
			updated := make([]*Comment, len(comments))
			copy(updated, comments)
			updated[i] = doc
			b.SetComments(updated)
			return
		}
	}
	updated := make([]*Comment, 0, len(comments)+1)
	updated = append(updated, comments...)
	updated = append(updated, doc)
	b.SetComments(updated)
}

type expr struct {
	Base
}

func (*expr) exprNode() {}

type stmt struct {
	Base
}

func (*stmt) stmtNode() {}
