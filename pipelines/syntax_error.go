package pipelines

import (
	"strings"

	"github.com/reusee/phpedit/errs"
)

// SyntaxError carries the diagnostics of one file.
type SyntaxError struct {
	Path   string
	Code   []byte
	Errors []*errs.Error
}

func (s *SyntaxError) Error() string {
	var b strings.Builder
	for i, err := range s.Errors {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s.Path)
		b.WriteString(": ")
		b.WriteString(err.MessageWithColumnInfo(string(s.Code)))
	}
	return b.String()
}

func (s *SyntaxError) Unwrap() []error {
	ret := make([]error, len(s.Errors))
	for i, err := range s.Errors {
		ret[i] = err
	}
	return ret
}

// Render formats every diagnostic with its source line and a caret.
func (s *SyntaxError) Render() string {
	var b strings.Builder
	for _, err := range s.Errors {
		b.WriteString(errs.Render(err, s.Path, string(s.Code)))
		if !strings.HasSuffix(b.String(), "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}
