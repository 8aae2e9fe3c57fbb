package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/reusee/phpedit/debugs"
	"github.com/reusee/phpedit/logs"
	"github.com/reusee/phpedit/pipelines"
	"github.com/reusee/phpedit/sources"
)

// Run performs one command line action, reporting whether every file
// succeeded.
type Run func(ctx context.Context, a action, stdout, stderr io.Writer) bool

func (Module) Run(
	lex pipelines.Lex,
	parse pipelines.Parse,
	dump pipelines.Dump,
	undump pipelines.Undump,
	printFresh pipelines.PrintFresh,
	reprint pipelines.Reprint,
	fold pipelines.Fold,
	check pipelines.Check,
	forEach sources.ForEach,
	expand sources.Expand,
	read sources.Read,
	watch sources.Watch,
	write sources.Write,
	tap debugs.Tap,
	query debugs.Query,
	logger logs.Logger,
) Run {

	// rewriters may write back in place
	rewriter := func(rewrite func(context.Context, *sources.Source) (string, error)) sources.Process {
		return func(ctx context.Context, src *sources.Source) (string, error) {
			code, err := rewrite(ctx, src)
			if err != nil {
				return "", err
			}
			if !*writeBack || src.Path == "-" {
				return code, nil
			}
			if code == string(src.Content) {
				return "", nil
			}
			if err := write(src.Path, []byte(code)); err != nil {
				return "", err
			}
			logger.InfoContext(ctx, "rewrote")
			return "", nil
		}
	}

	checker := func(ctx context.Context, src *sources.Source) (string, error) {
		diagnostics, err := check(ctx, src)
		if err != nil {
			return "", err
		}
		if len(diagnostics) > 0 {
			return "", &pipelines.SyntaxError{
				Path:   src.Path,
				Code:   src.Content,
				Errors: diagnostics,
			}
		}
		return "", nil
	}

	globals := func(parsed *pipelines.Parsed) map[string]any {
		return map[string]any{
			"stmts":  parsed.Stmts,
			"tokens": parsed.Tokens,
			"code":   string(parsed.Source.Content),
			"path":   parsed.Source.Path,
		}
	}

	processors := map[string]func(a action) sources.Process{
		"tokens": func(action) sources.Process {
			return func(ctx context.Context, src *sources.Source) (string, error) {
				toks, err := lex(ctx, src)
				if err != nil {
					return "", err
				}
				return tokenList(toks), nil
			}
		},
		"parse": func(action) sources.Process {
			return func(ctx context.Context, src *sources.Source) (string, error) {
				parsed, err := parse(ctx, src)
				if err != nil {
					return "", err
				}
				return outline(parsed.Stmts), nil
			}
		},
		"dump": func(action) sources.Process {
			return sources.Process(dump)
		},
		"undump": func(action) sources.Process {
			return sources.Process(undump)
		},
		"print": func(action) sources.Process {
			return rewriter(printFresh)
		},
		"reprint": func(action) sources.Process {
			return rewriter(reprint)
		},
		"fold": func(action) sources.Process {
			return rewriter(fold)
		},
		"check": func(action) sources.Process {
			return checker
		},
		"watch": func(action) sources.Process {
			return checker
		},
		"query": func(a action) sources.Process {
			return func(ctx context.Context, src *sources.Source) (string, error) {
				parsed, err := parse(ctx, src)
				if err != nil {
					return "", err
				}
				value, err := query(a.expr, globals(parsed))
				if err != nil {
					return "", err
				}
				return value.String() + "\n", nil
			}
		},
		"tap": func(action) sources.Process {
			return func(ctx context.Context, src *sources.Source) (string, error) {
				parsed, err := parse(ctx, src)
				if err != nil {
					return "", err
				}
				tap(ctx, src.Path, globals(parsed))
				return "", nil
			}
		},
	}

	return func(ctx context.Context, a action, stdout, stderr io.Writer) bool {
		makeProcess, ok := processors[a.kind]
		if !ok {
			report(stderr, fmt.Errorf("unknown action %s", a.kind))
			return false
		}
		process := makeProcess(a)

		ok = true
		emit := func(result sources.Result, withHeader bool) {
			if result.Err != nil {
				ok = false
				report(stderr, result.Err)
				return
			}
			if result.Output == "" {
				return
			}
			if withHeader {
				header(stdout, result.Path)
			}
			io.WriteString(stdout, result.Output)
		}

		if a.path == "-" {
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				report(stderr, err)
				return false
			}
			output, err := process(ctx, &sources.Source{
				Path:    "-",
				Content: content,
			})
			emit(sources.Result{Path: "-", Output: output, Err: err}, false)
			return ok
		}

		if a.kind == "watch" {
			if err := watch(ctx, []string{a.path}, process, func(result sources.Result) {
				emit(result, false)
			}); err != nil {
				report(stderr, err)
				return false
			}
			return ok
		}

		if a.kind == "tap" {
			// one REPL at a time
			paths, err := expand([]string{a.path})
			if err != nil {
				report(stderr, err)
				return false
			}
			for _, path := range paths {
				src, err := read(path)
				if err == nil {
					_, err = process(ctx, src)
				}
				emit(sources.Result{Path: path, Err: err}, false)
			}
			return ok
		}

		results, err := forEach(ctx, []string{a.path}, process)
		if err != nil {
			report(stderr, err)
			return false
		}
		for _, result := range results {
			emit(result, len(results) > 1)
		}
		return ok
	}
}
