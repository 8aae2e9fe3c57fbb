package errs

import (
	"fmt"
	"strings"

	"github.com/reusee/phpedit/nodes"
)

// Error is a lexing, parsing or validation diagnostic.
type Error struct {
	Message    string
	Attributes nodes.Attributes
}

var _ error = new(Error)

func New(message string, attrs nodes.Attributes) *Error {
	return &Error{
		Message:    message,
		Attributes: attrs,
	}
}

func Newf(attrs nodes.Attributes, format string, args ...any) *Error {
	return New(fmt.Sprintf(format, args...), attrs)
}

func (e *Error) StartLine() int {
	return e.Attributes.Int(nodes.StartLine)
}

func (e *Error) EndLine() int {
	return e.Attributes.Int(nodes.EndLine)
}

func (e *Error) Error() string {
	line := e.StartLine()
	if line == -1 {
		return e.Message + " on unknown line"
	}
	return fmt.Sprintf("%s on line %d", e.Message, line)
}

func (e *Error) HasColumnInfo() bool {
	_, ok1 := e.Attributes[nodes.StartFilePos]
	_, ok2 := e.Attributes[nodes.EndFilePos]
	return ok1 && ok2
}

// StartColumn is the 1-based column of the first byte.
func (e *Error) StartColumn(code string) int {
	return columnOf(code, e.Attributes.Int(nodes.StartFilePos))
}

// EndColumn is the 1-based column of the last byte.
func (e *Error) EndColumn(code string) int {
	return columnOf(code, e.Attributes.Int(nodes.EndFilePos))
}

func columnOf(code string, pos int) int {
	if pos > len(code) {
		pos = len(code)
	}
	if pos < 0 {
		return 1
	}
	lineStart := strings.LastIndexByte(code[:pos], '\n')
	return pos - lineStart
}

// MessageWithColumnInfo renders the message with line and column ranges.
func (e *Error) MessageWithColumnInfo(code string) string {
	if !e.HasColumnInfo() {
		return e.Error()
	}
	return fmt.Sprintf("%s from %d:%d to %d:%d",
		e.Message,
		e.StartLine(), e.StartColumn(code),
		e.EndLine(), e.EndColumn(code),
	)
}
