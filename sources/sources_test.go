package sources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/spf13/afero"
)

func memScope(t *testing.T, files map[string]string) (dscope.Scope, afero.Fs) {
	fs := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dscope.New(new(Module)).Fork(
		func() afero.Fs {
			return fs
		},
	), fs
}

var testFiles = map[string]string{
	"/src/a.php":             "<?php $a = 1;",
	"/src/b.PHP":             "<?php $b = 2;",
	"/src/lib/c.inc":         "<?php $c = 3;",
	"/src/lib/readme.md":     "# readme",
	"/src/.cache/d.php":      "<?php $d = 4;",
	"/src/templates/e.phtml": "<p><?= $e ?></p>",
}

func TestExpand(t *testing.T) {
	scope, _ := memScope(t, testFiles)
	scope.Call(func(
		expand Expand,
	) {
		got, err := expand([]string{"/src"})
		if err != nil {
			t.Fatal(err)
		}
		if str := fmt.Sprintf("%v", got); str != "[/src/a.php /src/b.PHP /src/lib/c.inc /src/templates/e.phtml]" {
			t.Fatalf("got %s", str)
		}

		got, err = expand([]string{"/src/lib/readme.md", "/src/*.php", "/src/a.php"})
		if err != nil {
			t.Fatal(err)
		}
		if str := fmt.Sprintf("%v", got); str != "[/src/a.php /src/lib/readme.md]" {
			t.Fatalf("got %s", str)
		}

		if _, err := expand([]string{"/nope.php"}); err == nil {
			t.Fatal("should fail")
		}
		if _, err := expand([]string{"/src/*.js"}); err == nil {
			t.Fatal("should fail")
		}
	})
}

func TestReadWrite(t *testing.T) {
	scope, fs := memScope(t, testFiles)
	scope.Call(func(
		read Read,
		write Write,
	) {
		src, err := read("/src/a.php")
		if err != nil {
			t.Fatal(err)
		}
		if string(src.Content) != "<?php $a = 1;" {
			t.Fatalf("got %q", src.Content)
		}
		if err := write("/src/a.php", []byte("<?php $a = 2;")); err != nil {
			t.Fatal(err)
		}
		content, err := afero.ReadFile(fs, "/src/a.php")
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "<?php $a = 2;" {
			t.Fatalf("got %q", content)
		}
	})
}

func TestForEach(t *testing.T) {
	scope, _ := memScope(t, testFiles)
	scope.Call(func(
		forEach ForEach,
	) {
		errOdd := errors.New("odd")
		var running, maxRunning atomic.Int32
		results, err := forEach(t.Context(), []string{"/src"}, func(ctx context.Context, src *Source) (string, error) {
			n := running.Add(1)
			defer running.Add(-1)
			for {
				m := maxRunning.Load()
				if n <= m || maxRunning.CompareAndSwap(m, n) {
					break
				}
			}
			if strings.Contains(src.Path, "b.PHP") {
				return "", errOdd
			}
			return strings.ToUpper(string(src.Content)), nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 4 {
			t.Fatalf("got %v", results)
		}
		if results[0].Path != "/src/a.php" || results[0].Output != "<?PHP $A = 1;" {
			t.Fatalf("got %+v", results[0])
		}
		if !errors.Is(results[1].Err, errOdd) {
			t.Fatalf("got %v", results[1].Err)
		}
		if !strings.HasPrefix(results[1].Err.Error(), "/src/b.PHP: odd") {
			t.Fatalf("got %v", results[1].Err)
		}
		if results[2].Err != nil || results[3].Err != nil {
			t.Fatalf("got %+v", results)
		}
		if maxRunning.Load() < 1 {
			t.Fatal()
		}
	})
}

func TestForEachCanceled(t *testing.T) {
	scope, _ := memScope(t, testFiles)
	scope.Call(func(
		forEach ForEach,
	) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		results, err := forEach(ctx, []string{"/src/a.php"}, func(ctx context.Context, src *Source) (string, error) {
			return "", nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if !errors.Is(results[0].Err, context.Canceled) {
			t.Fatalf("got %v", results[0].Err)
		}
	})
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.php")
	if err := os.WriteFile(path, []byte("<?php 1;"), 0644); err != nil {
		t.Fatal(err)
	}

	dscope.New(new(Module)).Call(func(
		watch Watch,
	) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		var mu sync.Mutex
		var outputs []string
		seen := make(chan struct{}, 16)
		done := make(chan error, 1)
		go func() {
			done <- watch(ctx, []string{dir}, func(ctx context.Context, src *Source) (string, error) {
				return string(src.Content), nil
			}, func(result Result) {
				mu.Lock()
				outputs = append(outputs, result.Output)
				mu.Unlock()
				seen <- struct{}{}
			})
		}()

		wait := func() {
			select {
			case <-seen:
			case <-time.After(5 * time.Second):
				t.Fatal("timeout")
			}
		}

		// initial pass
		wait()
		for _, content := range []string{"<?php 2;", "<?php 3;"} {
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
		}
		wait()

		cancel()
		if err := <-done; err != nil {
			t.Fatal(err)
		}
		mu.Lock()
		defer mu.Unlock()
		if outputs[0] != "<?php 1;" || outputs[len(outputs)-1] != "<?php 3;" {
			t.Fatalf("got %q", outputs)
		}
	})
}
