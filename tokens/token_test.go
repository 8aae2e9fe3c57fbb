package tokens

import "testing"

func TestKindName(t *testing.T) {
	for _, c := range []struct {
		kind Kind
		name string
	}{
		{EOF, "EOF"},
		{Variable, "T_VARIABLE"},
		{Kind(';'), "';'"},
		{DoubleColon, "T_PAAMAYIM_NEKUDOTAYIM"},
	} {
		if got := c.kind.Name(); got != c.name {
			t.Fatalf("got %v", got)
		}
		kind, ok := KindByName(c.name)
		if !ok || kind != c.kind {
			t.Fatalf("got %v", kind)
		}
	}
}

func TestAllNamedHaveNames(t *testing.T) {
	for _, kind := range AllNamed() {
		if _, ok := names[kind]; !ok {
			t.Fatalf("no name for %d", kind)
		}
	}
}

func TestOperator(t *testing.T) {
	kind, n, ok := Operator([]byte("??= 1"), nil)
	if !ok || kind != CoalesceEqual || n != 3 {
		t.Fatalf("got %v %v", kind, n)
	}
	kind, n, ok = Operator([]byte("??= 1"), func(k Kind) bool {
		return k != CoalesceEqual
	})
	if !ok || kind != Coalesce || n != 2 {
		t.Fatalf("got %v %v", kind, n)
	}
	if _, _, ok := Operator([]byte("+ 1"), nil); ok {
		t.Fatal()
	}
}

func TestToken(t *testing.T) {
	tok := Token{Kind: Comment, Text: "/* a\nb */", Line: 3, Pos: 10}
	if tok.EndLine() != 4 {
		t.Fatalf("got %v", tok.EndLine())
	}
	if tok.EndPos() != 19 {
		t.Fatalf("got %v", tok.EndPos())
	}
	if !tok.IsIgnorable() {
		t.Fatal()
	}
	if !tok.Is(Whitespace, Comment) {
		t.Fatal()
	}
	if _, ok := Keyword("ReadOnly"); !ok {
		t.Fatal()
	}
	if kind, ok := Cast("Integer"); !ok || kind != IntCast {
		t.Fatalf("got %v", kind)
	}
}
