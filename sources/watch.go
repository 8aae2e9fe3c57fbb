package sources

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reusee/phpedit/logs"
)

// DebounceInterval merges bursts of writes to one file, editors often save in
// several steps.
var DebounceInterval = 100 * time.Millisecond

// Watch processes the files under paths once, then again whenever one of
// them is written, until ctx is done. Every result goes to emit.
type Watch func(ctx context.Context, paths []string, process Process, emit func(Result)) error

func (Module) Watch(
	expand Expand,
	read Read,
	forEach ForEach,
	newSpan logs.NewSpan,
	logger logs.Logger,
) Watch {
	return func(ctx context.Context, paths []string, process Process, emit func(Result)) error {
		files, err := expand(paths)
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// absolute path to the path as given
		watched := make(map[string]string)
		dirs := make(map[string]bool)
		for _, file := range files {
			abs, err := filepath.Abs(file)
			if err != nil {
				return err
			}
			watched[abs] = file
			dirs[filepath.Dir(abs)] = true
		}
		// directories survive editors that replace files by renaming
		for dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return err
			}
		}

		results, err := forEach(ctx, files, process)
		if err != nil {
			return err
		}
		for _, result := range results {
			emit(result)
		}

		var mu sync.Mutex
		timers := make(map[string]*time.Timer)
		changed := make(chan string)
		defer func() {
			mu.Lock()
			for _, timer := range timers {
				timer.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {

			case <-ctx.Done():
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				path, ok := watched[filepath.Clean(event.Name)]
				if !ok {
					continue
				}
				mu.Lock()
				if timer, ok := timers[path]; ok {
					timer.Reset(DebounceInterval)
				} else {
					timers[path] = time.AfterFunc(DebounceInterval, func() {
						mu.Lock()
						delete(timers, path)
						mu.Unlock()
						select {
						case changed <- path:
						case <-ctx.Done():
						}
					})
				}
				mu.Unlock()

			case path := <-changed:
				fileCtx, _ := newSpan(ctx, path, "")
				logger.InfoContext(fileCtx, "changed")
				emit(run(fileCtx, read, process, path))

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.WarnContext(ctx, "watch", "error", err)

			}
		}
	}
}
