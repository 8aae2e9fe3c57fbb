package pipelines

import (
	"context"
	"errors"

	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/grammars"
	"github.com/reusee/phpedit/lexers"
	"github.com/reusee/phpedit/logs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/phpconfigs"
	"github.com/reusee/phpedit/sources"
	"github.com/reusee/phpedit/tokens"
)

type Parsed struct {
	Source *sources.Source
	Stmts  []nodes.Stmt
	// tokens of the source, ending with the EOF sentinel
	Tokens []tokens.Token
	// recovered from, only when errors are collected
	Errors []*errs.Error
}

// Lex returns the tokens of a source.
type Lex func(ctx context.Context, src *sources.Source) ([]tokens.Token, error)

func (Module) Lex(
	getOptions phpconfigs.GetLexerOptions,
) Lex {
	return func(ctx context.Context, src *sources.Source) ([]tokens.Token, error) {
		options, err := getOptions()
		if err != nil {
			return nil, err
		}
		collecting := new(errs.Collecting)
		toks, err := lexers.New(options).Tokenize(src.Content, collecting)
		if err != nil {
			return nil, err
		}
		if collecting.HasErrors() {
			return toks, &SyntaxError{
				Path:   src.Path,
				Code:   src.Content,
				Errors: collecting.Errors(),
			}
		}
		return toks, nil
	}
}

// Parse parses a source with the configured options. Syntax errors are
// returned as *SyntaxError; when errors are collected, a recovered tree is
// returned along with it.
type Parse func(ctx context.Context, src *sources.Source) (*Parsed, error)

func (Module) Parse(
	getOptions phpconfigs.GetLexerOptions,
	collect phpconfigs.CollectErrors,
	logger logs.Logger,
) Parse {
	return func(ctx context.Context, src *sources.Source) (*Parsed, error) {
		options, err := getOptions()
		if err != nil {
			return nil, err
		}
		return parse(ctx, logger, options, bool(collect), src)
	}
}

func parse(ctx context.Context, logger logs.Logger, options lexers.Options, collect bool, src *sources.Source) (*Parsed, error) {
	// positions for diagnostics with columns
	options.Attributes |= nodes.CaptureStartLine | nodes.CaptureEndLine |
		nodes.CaptureStartFilePos | nodes.CaptureEndFilePos

	var handler errs.Handler = errs.Throwing{}
	collecting := new(errs.Collecting)
	if collect {
		handler = collecting
	}

	parser := grammars.New(options)
	stmts, err := parser.Parse(src.Content, handler)
	if err != nil {
		var syntaxErr *errs.Error
		if errors.As(err, &syntaxErr) {
			return nil, &SyntaxError{
				Path:   src.Path,
				Code:   src.Content,
				Errors: []*errs.Error{syntaxErr},
			}
		}
		return nil, err
	}

	parsed := &Parsed{
		Source: src,
		Stmts:  stmts,
		Tokens: parser.Tokens(),
		Errors: collecting.Errors(),
	}
	logger.DebugContext(ctx, "parsed",
		"stmts", len(stmts),
		"tokens", len(parsed.Tokens),
		"errors", len(parsed.Errors),
	)
	if len(parsed.Errors) > 0 {
		return parsed, &SyntaxError{
			Path:   src.Path,
			Code:   src.Content,
			Errors: parsed.Errors,
		}
	}
	return parsed, nil
}

// Check reports every syntax error of a source, regardless of the
// configured error mode.
type Check func(ctx context.Context, src *sources.Source) ([]*errs.Error, error)

func (Module) Check(
	getOptions phpconfigs.GetLexerOptions,
	logger logs.Logger,
) Check {
	return func(ctx context.Context, src *sources.Source) ([]*errs.Error, error) {
		options, err := getOptions()
		if err != nil {
			return nil, err
		}
		_, err = parse(ctx, logger, options, true, src)
		var syntaxErr *SyntaxError
		if errors.As(err, &syntaxErr) {
			return syntaxErr.Errors, nil
		}
		return nil, err
	}
}
