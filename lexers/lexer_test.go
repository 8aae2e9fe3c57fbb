package lexers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/reusee/phpedit/errs"
	"github.com/reusee/phpedit/tokens"
)

func tokenize(t *testing.T, options Options, code string) ([]tokens.Token, *errs.Collecting) {
	t.Helper()
	collecting := new(errs.Collecting)
	toks, err := New(options).Tokenize([]byte(code), collecting)
	if err != nil {
		t.Fatal(err)
	}
	var sb strings.Builder
	for _, tok := range toks[:len(toks)-1] {
		sb.WriteString(tok.Text)
	}
	if sb.String() != code {
		t.Fatalf("tokens do not reconstruct source: %q", sb.String())
	}
	if toks[len(toks)-1].Kind != tokens.EOF {
		t.Fatal("no sentinel")
	}
	return toks, collecting
}

func significant(toks []tokens.Token) string {
	var parts []string
	for _, tok := range toks {
		if tok.Kind == tokens.Whitespace || tok.Kind == tokens.EOF {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s:%s", tok.Kind.Name(), tok.Text))
	}
	return strings.Join(parts, " ")
}

func TestBasic(t *testing.T) {
	toks, collecting := tokenize(t, DefaultOptions(), "<?php\n$a = 1 +\n  2;\n")
	if collecting.HasErrors() {
		t.Fatal(collecting.Errors())
	}
	if toks[0].Kind != tokens.OpenTag || toks[0].Text != "<?php\n" {
		t.Fatalf("got %v", toks[0])
	}
	if got := significant(toks); got != "T_OPEN_TAG:<?php\n T_VARIABLE:$a '=':= T_LNUMBER:1 '+':+ T_LNUMBER:2 ';':;" {
		t.Fatalf("got %v", got)
	}
	for _, tok := range toks {
		if tok.Text == "2" {
			if tok.Line != 3 || tok.Pos != 17 {
				t.Fatalf("got %v", tok)
			}
		}
	}
	last := toks[len(toks)-1]
	if last.Line != 4 || last.Pos != 20 || last.Text != "\x00" {
		t.Fatalf("got %v", last)
	}
}

func TestInlineHTML(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), "foo<?= $a ?>\nbar<?php")
	if got := significant(toks); got != "T_INLINE_HTML:foo T_OPEN_TAG_WITH_ECHO:<?= T_VARIABLE:$a T_CLOSE_TAG:?>\n T_INLINE_HTML:bar T_OPEN_TAG:<?php" {
		t.Fatalf("got %v", got)
	}
}

func TestGaps(t *testing.T) {
	toks, collecting := tokenize(t, DefaultOptions(), "<?php\n$a\x00;\x01")
	errors := collecting.Errors()
	if len(errors) != 2 {
		t.Fatalf("got %v", errors)
	}
	if errors[0].Message != "Unexpected null byte" || errors[0].StartLine() != 2 {
		t.Fatalf("got %v", errors[0])
	}
	if errors[1].Message != "Unexpected character \"\x01\" (ASCII 1)" {
		t.Fatalf("got %v", errors[1])
	}
	n := 0
	for _, tok := range toks {
		if tok.Kind == tokens.BadCharacter {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("got %v", n)
	}

	_, err := New(DefaultOptions()).Tokenize([]byte("<?php \x00"), nil)
	if err == nil {
		t.Fatal("should abort")
	}
}

func TestUnterminatedComment(t *testing.T) {
	toks, collecting := tokenize(t, DefaultOptions(), "<?php\n$a;\n/* foo\nbar")
	errors := collecting.Errors()
	if len(errors) != 1 {
		t.Fatalf("got %v", errors)
	}
	if errors[0].Message != "Unterminated comment" || errors[0].StartLine() != 3 || errors[0].EndLine() != 4 {
		t.Fatalf("got %v", errors[0])
	}
	last := toks[len(toks)-2]
	if last.Kind != tokens.Comment || last.Text != "/* foo\nbar" {
		t.Fatalf("got %v", last)
	}
}

func TestNames(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), `<?php \Foo\Bar; Foo\list; namespace\Foo; \Foo; new \Foo;`)
	if got := significant(toks); got != `T_OPEN_TAG:<?php  T_NAME_FULLY_QUALIFIED:\Foo\Bar ';':; T_NAME_QUALIFIED:Foo\list ';':; T_NAME_RELATIVE:namespace\Foo ';':; T_NAME_FULLY_QUALIFIED:\Foo ';':; T_NEW:new T_NAME_FULLY_QUALIFIED:\Foo ';':;` {
		t.Fatalf("got %v", got)
	}
}

func TestCommentNewline(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), "<?php\n// foo\n$a; # bar\n  $b; // baz ?>x")
	var comments []tokens.Token
	for i, tok := range toks {
		if tok.Kind == tokens.Comment {
			comments = append(comments, tok)
			if strings.HasSuffix(tok.Text, "\n") {
				t.Fatalf("got %q", tok.Text)
			}
			if i+1 < len(toks) && tok.Text != "// baz " && toks[i+1].Kind != tokens.Whitespace {
				t.Fatalf("got %v", toks[i+1])
			}
		}
	}
	if len(comments) != 3 {
		t.Fatalf("got %v", comments)
	}
	for i, tok := range toks {
		if tok.Text == "# bar" && toks[i+1].Text != "\n  " {
			t.Fatalf("got %q", toks[i+1].Text)
		}
	}
	if comments[1].Line != 3 {
		t.Fatalf("got %v", comments[1].Line)
	}
}

func TestVersions(t *testing.T) {
	old := DefaultOptions()
	old.Version = mustVersion(t, "7.3")
	toks, _ := tokenize(t, old, `<?php fn; $a?->b; $a ??= 1; 1_000; readonly;`)
	if got := significant(toks); got != `T_OPEN_TAG:<?php  T_STRING:fn ';':; T_VARIABLE:$a '?':? T_OBJECT_OPERATOR:-> T_STRING:b ';':; T_VARIABLE:$a T_COALESCE:?? '=':= T_LNUMBER:1 ';':; T_LNUMBER:1 T_STRING:_000 ';':; T_STRING:readonly ';':;` {
		t.Fatalf("got %v", got)
	}

	toks, _ = tokenize(t, DefaultOptions(), `<?php fn; $a?->b; $a ??= 1; 1_000; readonly; 0o17;`)
	if got := significant(toks); got != `T_OPEN_TAG:<?php  T_FN:fn ';':; T_VARIABLE:$a T_NULLSAFE_OBJECT_OPERATOR:?-> T_STRING:b ';':; T_VARIABLE:$a T_COALESCE_EQUAL:??= T_LNUMBER:1 ';':; T_LNUMBER:1_000 ';':; T_READONLY:readonly ';':; T_LNUMBER:0o17 ';':;` {
		t.Fatalf("got %v", got)
	}
}

func mustVersion(t *testing.T, s string) *semver.Version {
	v, err := ParseVersion(s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHeredoc(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), "<?php\n$a = <<<EOT\n  foo $b\n  EOT;\n$c = <<<'X'\n  $d\nX;\n")
	if got := significant(toks); got != "T_OPEN_TAG:<?php\n T_VARIABLE:$a '=':= T_START_HEREDOC:<<<EOT\n T_ENCAPSED_AND_WHITESPACE:  foo  T_VARIABLE:$b T_ENCAPSED_AND_WHITESPACE:\n T_END_HEREDOC:  EOT ';':; T_VARIABLE:$c '=':= T_START_HEREDOC:<<<'X'\n T_ENCAPSED_AND_WHITESPACE:  $d\n T_END_HEREDOC:X ';':;" {
		t.Fatalf("got %v", got)
	}

	toks, _ = tokenize(t, DefaultOptions(), "<?php <<<EOT\nEOT;")
	if got := significant(toks); got != "T_OPEN_TAG:<?php  T_START_HEREDOC:<<<EOT\n T_END_HEREDOC:EOT ';':;" {
		t.Fatalf("got %v", got)
	}
}

func TestInterpolation(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), `<?php "a{$b['c']}d$e[0]$f->g\$h"; "plain $";`)
	if got := significant(toks); got != `T_OPEN_TAG:<?php  '"':" T_ENCAPSED_AND_WHITESPACE:a T_CURLY_OPEN:{ T_VARIABLE:$b '[':[ T_CONSTANT_ENCAPSED_STRING:'c' ']':] '}':} T_ENCAPSED_AND_WHITESPACE:d T_VARIABLE:$e '[':[ T_NUM_STRING:0 ']':] T_VARIABLE:$f T_OBJECT_OPERATOR:-> T_STRING:g T_ENCAPSED_AND_WHITESPACE:\$h '"':" ';':; T_CONSTANT_ENCAPSED_STRING:"plain $" ';':;` {
		t.Fatalf("got %v", got)
	}
}

func TestHaltCompiler(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), "<?php __halt_compiler(); foo\n$bar")
	last := toks[len(toks)-2]
	if last.Kind != tokens.InlineHTML || last.Text != " foo\n$bar" {
		t.Fatalf("got %v", last)
	}
}

func TestCastsAndNumbers(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), `<?php (int)$a; ( String )$b; (foo); 9223372036854775807; 9223372036854775808; 0x1F; 1.5e3; .5; 0b11;`)
	if got := significant(toks); got != `T_OPEN_TAG:<?php  T_INT_CAST:(int) T_VARIABLE:$a ';':; T_STRING_CAST:( String ) T_VARIABLE:$b ';':; '(':( T_STRING:foo ')':) ';':; T_LNUMBER:9223372036854775807 ';':; T_DNUMBER:9223372036854775808 ';':; T_LNUMBER:0x1F ';':; T_DNUMBER:1.5e3 ';':; T_DNUMBER:.5 ';':; T_LNUMBER:0b11 ';':;` {
		t.Fatalf("got %v", got)
	}
}

func TestMemberNames(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), `<?php $a->list; Foo::class; $a->b();`)
	if got := significant(toks); got != `T_OPEN_TAG:<?php  T_VARIABLE:$a T_OBJECT_OPERATOR:-> T_STRING:list ';':; T_STRING:Foo T_PAAMAYIM_NEKUDOTAYIM::: T_STRING:class ';':; T_VARIABLE:$a T_OBJECT_OPERATOR:-> T_STRING:b '(':( ')':) ';':;` {
		t.Fatalf("got %v", got)
	}
}

func TestYieldFrom(t *testing.T) {
	toks, _ := tokenize(t, DefaultOptions(), "<?php yield from $a; yield $b; yield\n  FROM $c; yield fromage;")
	if got := significant(toks); got != "T_OPEN_TAG:<?php  T_YIELD_FROM:yield from T_VARIABLE:$a ';':; T_YIELD:yield T_VARIABLE:$b ';':; T_YIELD_FROM:yield\n  FROM T_VARIABLE:$c ';':; T_YIELD:yield T_STRING:fromage ';':;" {
		t.Fatalf("got %v", got)
	}
}

func TestDollarBraceInterpolation(t *testing.T) {
	_, collecting := tokenize(t, DefaultOptions(), "<?php\n\"a${'x'}\";")
	errors := collecting.Errors()
	if len(errors) != 1 {
		t.Fatalf("got %v", errors)
	}
	if errors[0].Message != `Unsupported string interpolation "${"` || errors[0].StartLine() != 2 {
		t.Fatalf("got %v", errors[0])
	}

	// escaped, single quoted and nowdoc text is literal
	for _, code := range []string{
		"<?php \"a\\${b}\";",
		"<?php 'a${b}';",
		"<?php <<<'EOT'\na${b}\nEOT;\n",
	} {
		if _, collecting := tokenize(t, DefaultOptions(), code); collecting.HasErrors() {
			t.Fatalf("%s: got %v", code, collecting.Errors())
		}
	}
}
