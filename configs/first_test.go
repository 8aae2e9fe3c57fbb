package configs

import (
	"testing"
)

type testIndent string

var _ Configurable = testIndent("")

func (testIndent) ConfigKey() string {
	return "indent"
}

type testJobs int

func (testJobs) ConfigKey() string {
	return "jobs"
}

func TestFirst(t *testing.T) {
	loader := NewLoader(testFs(t), []string{"/project/phpedit.cue"}, testSchema)

	indent := First[string](loader, "indent")
	if indent != "\t" {
		t.Fatalf("got %q", indent)
	}

	jobs := First[int](loader, "jobs")
	if jobs != 0 {
		t.Fatalf("got %v", jobs)
	}
}

func TestLookup(t *testing.T) {
	loader := NewLoader(testFs(t), []string{"/project/phpedit.cue"}, testSchema)

	indent, ok, err := Lookup[testIndent](loader)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || indent != "\t" {
		t.Fatalf("got %q %v", indent, ok)
	}

	_, ok, err = Lookup[testJobs](loader)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("should not be set")
	}
}

func TestFirstPanics(t *testing.T) {
	loader := NewLoader(testFs(t), []string{"/project/phpedit.cue"}, testSchema)
	defer func() {
		if recover() == nil {
			t.Fatal("should panic")
		}
	}()
	First[int](loader, "indent")
}
