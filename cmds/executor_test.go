package cmds

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestExecutor(t *testing.T) {
	executor := NewExecutor()

	var indent int
	executor.Define("-tabs", Func(func() {
		indent = -1
	}))
	executor.Define("-indent", Func(func(i int) {
		indent = i
	}))

	if err := executor.Execute([]string{
		"-tabs",
	}); err != nil {
		t.Fatal(err)
	}
	if indent != -1 {
		t.Fatalf("got %v", indent)
	}

	if err := executor.Execute([]string{
		"-indent", "2",
	}); err != nil {
		t.Fatal(err)
	}
	if indent != 2 {
		t.Fatalf("got %v", indent)
	}

	err := executor.Execute([]string{
		"foo",
	})
	if err == nil || !strings.Contains(err.Error(), "unknown command: foo") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{
		"-indent", "two",
	})
	if err == nil || !strings.Contains(err.Error(), "-indent: convert two to int") {
		t.Fatalf("got %v", err)
	}

	err = executor.Execute([]string{
		"-indent",
	})
	if err == nil || !strings.Contains(err.Error(), "expecting argument") {
		t.Fatalf("got %v", err)
	}

}

func TestSubCommands(t *testing.T) {
	executor := NewExecutor()
	var rename, fold int
	executor.Define("rewrite", Sub(map[string]*Command{
		"rename": Func(func() {
			rename = 1
		}),
		"fold": Func(func(i int) {
			fold = i
		}),
	}))

	if err := executor.Execute([]string{
		"rewrite",
		"rename",
		"fold", "42",
	}); err != nil {
		t.Fatal(err)
	}

	if rename != 1 {
		t.Fatalf("got %v", rename)
	}
	if fold != 42 {
		t.Fatalf("got %v", fold)
	}

	// sub commands are not visible before their parent
	if err := executor.Execute([]string{"rename"}); err == nil {
		t.Fatal("should fail")
	}

}

func TestDuplicatedSubCommand(t *testing.T) {
	executor := NewExecutor()
	executor.Define("foo", Sub(map[string]*Command{
		"a": nil,
	}))
	executor.Define("bar", Sub(map[string]*Command{
		"a": nil,
	}))
	err := executor.Execute([]string{"foo", "bar"})
	if err == nil || !strings.Contains(err.Error(), "duplicated sub command: bar a") {
		t.Fatalf("got %v", err)
	}
}

func TestDuplicatedCommand(t *testing.T) {
	executor := NewExecutor()
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("should panic")
			}
		}()
		executor.Define("help", Func(func() {}))
	}()
}

func TestOptionalArgument(t *testing.T) {
	executor := NewExecutor()
	var n int
	var s string
	executor.Define("foo", Func(func(arg *int, arg2 *string) {
		n = *arg
		s = *arg2
	}))

	err := executor.Execute([]string{"foo", "42", "foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Fatalf("got %v", n)
	}
	if s != "foo" {
		t.Fatalf("got %v", s)
	}

	err = executor.Execute([]string{"foo", "99"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 99 {
		t.Fatalf("got %v", n)
	}
	if s != "" {
		t.Fatalf("got %v", s)
	}

	err = executor.Execute([]string{"foo"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("got %v", n)
	}
	if s != "" {
		t.Fatalf("got %v", s)
	}

}

func TestTextArgument(t *testing.T) {
	executor := NewExecutor()
	var level slog.Level
	executor.Define("-level", Func(func(l slog.Level) {
		level = l
	}))
	if err := executor.Execute([]string{"-level", "warn"}); err != nil {
		t.Fatal(err)
	}
	if level != slog.LevelWarn {
		t.Fatalf("got %v", level)
	}
	if err := executor.Execute([]string{"-level", "loud"}); err == nil {
		t.Fatal("should fail")
	}
}

func TestCommandError(t *testing.T) {
	executor := NewExecutor()
	executor.Define("check", Func(func(path string) error {
		if path == "" {
			return nil
		}
		return errBadFile
	}))
	err := executor.Execute([]string{"check", "a.php"})
	if err == nil || err.Error() != "check: bad file" {
		t.Fatalf("got %v", err)
	}
	if err := executor.Execute([]string{"check", ""}); err != nil {
		t.Fatal(err)
	}
}

var errBadFile = errors.New("bad file")
