package sources

import (
	"context"
	"time"

	"github.com/reusee/phpedit/logs"
	"github.com/reusee/phpedit/phpconfigs"
	"golang.org/x/sync/errgroup"
)

// Process handles one source, returning the text to emit for it.
type Process func(ctx context.Context, src *Source) (string, error)

type Result struct {
	Path   string
	Output string
	Err    error
}

// ForEach expands paths and runs process on every file, at most Jobs at a
// time. Results are in path order. A failing file does not stop the others;
// the error return is for path expansion only.
type ForEach func(ctx context.Context, paths []string, process Process) ([]Result, error)

func (Module) ForEach(
	expand Expand,
	read Read,
	jobs phpconfigs.Jobs,
	newSpan logs.NewSpan,
	logger logs.Logger,
) ForEach {
	return func(ctx context.Context, paths []string, process Process) ([]Result, error) {
		files, err := expand(paths)
		if err != nil {
			return nil, err
		}

		results := make([]Result, len(files))
		group, ctx := errgroup.WithContext(ctx)
		group.SetLimit(max(int(jobs), 1))
		for i, path := range files {
			group.Go(func() error {
				if err := ctx.Err(); err != nil {
					results[i] = Result{Path: path, Err: err}
					return nil
				}
				fileCtx, _ := newSpan(ctx, path, "")
				t0 := time.Now()
				results[i] = run(fileCtx, read, process, path)
				logger.DebugContext(fileCtx, "processed",
					"duration", time.Since(t0),
					"ok", results[i].Err == nil,
				)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
		return results, nil
	}
}

func run(ctx context.Context, read Read, process Process, path string) (ret Result) {
	ret.Path = path
	src, err := read(path)
	if err != nil {
		ret.Err = err
		return
	}
	ret.Output, err = process(ctx, src)
	ret.Err = logs.WrapSpan(ctx, err)
	return
}
