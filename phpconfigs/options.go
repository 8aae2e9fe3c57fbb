package phpconfigs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/printers"
)

type GetLexerOptions func() (lexers.Options, error)

func (Module) GetLexerOptions(
	version PHPVersion,
	attributes Attributes,
) GetLexerOptions {
	return sync.OnceValues(func() (ret lexers.Options, err error) {
		ret = lexers.DefaultOptions()
		if version != "" {
			ret.Version, err = lexers.ParseVersion(string(version))
			if err != nil {
				return ret, fmt.Errorf("php version %q: %w", version, err)
			}
		}
		if len(attributes) > 0 {
			set, unknown := nodes.ParseAttributeSet(attributes)
			if len(unknown) > 0 {
				return ret, fmt.Errorf("unknown attributes: %s", strings.Join(unknown, ", "))
			}
			ret.Attributes = set
		}
		return
	})
}

type GetPrinterOptions func() (printers.Options, error)

func (Module) GetPrinterOptions(
	getLexerOptions GetLexerOptions,
	shortArrays ShortArraySyntax,
	indent Indent,
	newline Newline,
) GetPrinterOptions {
	return sync.OnceValues(func() (ret printers.Options, err error) {
		lexerOptions, err := getLexerOptions()
		if err != nil {
			return ret, err
		}
		ret = printers.DefaultOptions()
		ret.Version = lexerOptions.Version
		ret.ShortArraySyntax = bool(shortArrays)
		ret.Indent = string(indent)
		ret.Newline = string(newline)
		// reject bad indent or newline settings before any file is read
		if _, err := printers.New(ret); err != nil {
			return ret, err
		}
		return ret, nil
	})
}

// NewPrinter returns a fresh printer for each use, printers keep per-run
// state.
type NewPrinter func() (*printers.Printer, error)

func (Module) NewPrinter(
	getOptions GetPrinterOptions,
) NewPrinter {
	return func() (*printers.Printer, error) {
		options, err := getOptions()
		if err != nil {
			return nil, err
		}
		return printers.New(options)
	}
}
