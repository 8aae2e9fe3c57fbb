package errs

import (
	"errors"
	"strings"
	"testing"

	"github.com/reusee/phpedit/nodes"
)

func TestError(t *testing.T) {
	code := "<?php\n$a = 1 +;\n"
	err := New("Syntax error, unexpected ';'", nodes.Attributes{
		nodes.StartLine:    2,
		nodes.EndLine:      2,
		nodes.StartFilePos: 14,
		nodes.EndFilePos:   14,
	})
	if err.Error() != "Syntax error, unexpected ';' on line 2" {
		t.Fatalf("got %v", err.Error())
	}
	if c := err.StartColumn(code); c != 9 {
		t.Fatalf("got %v", c)
	}
	if msg := err.MessageWithColumnInfo(code); msg != "Syntax error, unexpected ';' from 2:9 to 2:9" {
		t.Fatalf("got %v", msg)
	}

	rendered := Render(err, "foo.php", code)
	lines := strings.Split(rendered, "\n")
	if lines[0] != "Syntax error, unexpected ';' at foo.php:2:9" {
		t.Fatalf("got %v", lines[0])
	}
	if lines[2] != "        ^" {
		t.Fatalf("got %q", lines[2])
	}

	noLine := New("foo", nil)
	if noLine.Error() != "foo on unknown line" {
		t.Fatalf("got %v", noLine.Error())
	}
	if noLine.HasColumnInfo() {
		t.Fatal()
	}
}

func TestHandlers(t *testing.T) {
	e := New("foo", nil)

	var h Handler = Or(nil)
	if err := h.HandleError(e); !errors.Is(err, e) {
		t.Fatalf("got %v", err)
	}

	collecting := new(Collecting)
	h = Or(collecting)
	if err := h.HandleError(e); err != nil {
		t.Fatal(err)
	}
	if !collecting.HasErrors() || len(collecting.Errors()) != 1 {
		t.Fatal()
	}
	collecting.Clear()
	if collecting.HasErrors() {
		t.Fatal()
	}
}
