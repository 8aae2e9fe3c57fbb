package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/reusee/phpedit/pipelines"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	caretColor  = color.New(color.FgYellow)
	headerColor = color.New(color.FgCyan)
)

func init() {
	fd := os.Stderr.Fd()
	color.NoColor = os.Getenv("NO_COLOR") != "" ||
		!(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// report writes err to w. Syntax errors are shown with their source line
// and a caret, messages in red.
func report(w io.Writer, err error) {
	var syntaxErr *pipelines.SyntaxError
	if !errors.As(err, &syntaxErr) {
		errorColor.Fprintln(w, err.Error())
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(syntaxErr.Render(), "\n"), "\n") {
		switch {
		case strings.TrimSpace(line) == "^":
			caretColor.Fprintln(w, line)
		case strings.HasPrefix(line, syntaxErr.Path+": ") || strings.Contains(line, " at "+syntaxErr.Path+":"):
			errorColor.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}

func header(w io.Writer, path string) {
	headerColor.Fprintf(w, "==> %s <==\n", path)
}
