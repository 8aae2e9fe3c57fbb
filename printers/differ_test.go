package printers

import (
	"strings"
	"testing"
)

func formatDiff(diff []DiffElem[byte]) string {
	var b strings.Builder
	for _, elem := range diff {
		switch elem.Type {
		case DiffKeep:
			b.WriteByte(elem.Old)
		case DiffRemove:
			b.WriteString("-" + string(elem.Old))
		case DiffAdd:
			b.WriteString("+" + string(elem.New))
		case DiffReplace:
			b.WriteString("/" + string(elem.Old) + string(elem.New))
		}
	}
	return b.String()
}

func TestDiffer(t *testing.T) {
	differ := NewDiffer(func(a, b byte) bool {
		return a == b
	})
	for _, c := range []struct {
		old, new  string
		diff      string
		coalesced string
	}{
		{"abc", "abc", "abc", "abc"},
		{"", "a", "+a", "+a"},
		{"a", "", "-a", "-a"},
		{"abc", "abd", "ab-c+d", "ab/cd"},
		{"abc", "bc", "-abc", "-abc"},
		{"abc", "xbc", "-a+xbc", "/axbc"},
		{"ab", "axyb", "a+x+yb", "a+x+yb"},
		{"abcd", "axd", "a-b-c+xd", "a-b-c+xd"},
	} {
		got := formatDiff(differ.Diff([]byte(c.old), []byte(c.new)))
		if got != c.diff {
			t.Fatalf("%s -> %s: got %v", c.old, c.new, got)
		}
		got = formatDiff(differ.DiffWithReplacements([]byte(c.old), []byte(c.new)))
		if got != c.coalesced {
			t.Fatalf("%s -> %s: got %v", c.old, c.new, got)
		}
	}
}

func TestDiffReplays(t *testing.T) {
	differ := NewDiffer(func(a, b byte) bool {
		return a == b
	})
	for _, c := range [][2]string{
		{"kitten", "sitting"},
		{"abcabba", "cbabac"},
		{"", ""},
		{"xyz", "zyx"},
	} {
		// applying the script to old yields new
		var old, new []byte
		for _, elem := range differ.DiffWithReplacements([]byte(c[0]), []byte(c[1])) {
			switch elem.Type {
			case DiffKeep:
				old = append(old, elem.Old)
				new = append(new, elem.New)
			case DiffRemove:
				old = append(old, elem.Old)
			case DiffAdd:
				new = append(new, elem.New)
			case DiffReplace:
				old = append(old, elem.Old)
				new = append(new, elem.New)
			}
		}
		if string(old) != c[0] || string(new) != c[1] {
			t.Fatalf("got %s %s", old, new)
		}
	}
}
