package vars

import "testing"

func TestStrToBool(t *testing.T) {
	for str, expected := range map[string]bool{
		"true":  true,
		"Yes":   true,
		" on ":  true,
		"1":     true,
		"false": false,
		"off":   false,
		"0":     false,
		"":      false,
		"maybe": false,
	} {
		if got := StrToBool(str); got != expected {
			t.Fatalf("%q: got %v", str, got)
		}
	}
}

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero("", "    ", "\t"); got != "    " {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonZero(0, 0); got != 0 {
		t.Fatalf("got %v", got)
	}
}
