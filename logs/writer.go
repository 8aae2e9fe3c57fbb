package logs

import (
	"io"
	"os"
)

// Writer receives terminal log output. Standard output is reserved for
// printed PHP code.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
