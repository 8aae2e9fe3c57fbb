package pipelines

import (
	"context"
	"fmt"
	"testing"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/grammars"
	"github.com/reusee/phpedit/modes"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/phpconfigs"
	"github.com/reusee/phpedit/sources"
)

// PrintFresh parses a source and prints it in the standard style, dropping
// the original formatting.
type PrintFresh func(ctx context.Context, src *sources.Source) (string, error)

func (Module) PrintFresh(
	parse Parse,
	newPrinter phpconfigs.NewPrinter,
	verify Verify,
) PrintFresh {
	return func(ctx context.Context, src *sources.Source) (string, error) {
		parsed, err := parse(ctx, src)
		if err != nil {
			return "", err
		}
		p, err := newPrinter()
		if err != nil {
			return "", err
		}
		code, err := p.PrettyPrintFile(parsed.Stmts)
		if err != nil {
			return "", err
		}
		code += "\n"
		if err := verify(ctx, code); err != nil {
			return "", err
		}
		return code, nil
	}
}

// Verify parses printed code again in development mode.
type Verify func(ctx context.Context, code string) error

func (Module) Verify(
	mode modes.Mode,
	getOptions phpconfigs.GetLexerOptions,
	t *testing.T,
) Verify {
	return func(ctx context.Context, code string) error {
		if !mode.VerifyOutput() {
			return nil
		}
		options, err := getOptions()
		if err != nil {
			return err
		}
		if _, err := grammars.New(options).Parse([]byte(code), errs.Throwing{}); err != nil {
			if t != nil {
				t.Logf("printed code does not parse:\n%s", code)
			}
			return fmt.Errorf("printed code does not parse: %w", err)
		}
		return nil
	}
}

// Dump serializes the syntax tree of a source to JSON.
type Dump func(ctx context.Context, src *sources.Source) (string, error)

func (Module) Dump(
	parse Parse,
) Dump {
	return func(ctx context.Context, src *sources.Source) (string, error) {
		parsed, err := parse(ctx, src)
		if err != nil {
			return "", err
		}
		data, err := nodes.EncodeJSON(parsed.Stmts)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
}

// Undump prints PHP code from a JSON syntax tree made by Dump.
type Undump func(ctx context.Context, src *sources.Source) (string, error)

func (Module) Undump(
	newPrinter phpconfigs.NewPrinter,
	verify Verify,
) Undump {
	return func(ctx context.Context, src *sources.Source) (string, error) {
		decoded, err := nodes.DecodeJSON(src.Content)
		if err != nil {
			return "", fmt.Errorf("%s: %w", src.Path, err)
		}
		stmts := make([]nodes.Stmt, 0, len(decoded))
		for _, n := range decoded {
			stmt, ok := n.(nodes.Stmt)
			if !ok {
				return "", fmt.Errorf("%s: top level %T is not a statement", src.Path, n)
			}
			stmts = append(stmts, stmt)
		}
		p, err := newPrinter()
		if err != nil {
			return "", err
		}
		code, err := p.PrettyPrintFile(stmts)
		if err != nil {
			return "", err
		}
		code += "\n"
		if err := verify(ctx, code); err != nil {
			return "", err
		}
		return code, nil
	}
}
