package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/phpedit/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Tap opens a starlark REPL on stdin with globals predeclared, for poking
// at parsed trees and tokens.
type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		names := slices.Sorted(maps.Keys(globals))
		logger.InfoContext(ctx, "tap: "+what,
			"globals", names,
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(fileOptions, thread, predeclared(globals))
	}
}

// Query evaluates a starlark expression with globals predeclared.
type Query func(expr string, globals map[string]any) (starlark.Value, error)

func (Module) Query() Query {
	return func(expr string, globals map[string]any) (starlark.Value, error) {
		thread := &starlark.Thread{
			Name: "query",
		}
		return starlark.EvalOptions(fileOptions, thread, "<query>", expr, predeclared(globals))
	}
}

func predeclared(globals map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(globals))
	for name, value := range globals {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}
