package target

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSanitizesName(t *testing.T) {
	cases := map[string]string{
		"my-lib":     "my_lib",
		"a--b-c":     "a__b_c",
		"plain":      "plain",
		"under_kept": "under_kept",
	}

	for raw, want := range cases {
		if got := New(raw).Name; got != want {
			t.Errorf("New(%q).Name expected %q but got %q", raw, want, got)
		}
	}
}

func TestNewHasIndependentContainers(t *testing.T) {
	// arrange
	first := New("first")
	second := New("second")
	// act
	first.SetIncludeDirs([]string{"/repo/include"}, "/repo")
	first.LinkLibs = append(first.LinkLibs, "m")
	// assert
	if len(second.IncludeDirs) != 0 || len(second.LinkLibs) != 0 {
		t.Errorf("descriptors share state: %#v", second)
	}
}

func TestSettersReplace(t *testing.T) {
	descriptor := New("lib")
	descriptor.SetSources([]string{"/repo/a.cc"}, "/repo")
	descriptor.SetSources([]string{"/repo/a.cc"}, "/repo")
	if diff := cmp.Diff([]string{"a.cc"}, descriptor.Sources); diff != "" {
		t.Errorf("unexpected sources (-want +got):\n%s", diff)
	}
}

func TestSetters(t *testing.T) {
	// arrange
	options := []string{`"-Wall"`}
	descriptor := New("lib")
	// act
	descriptor.SetSources([]string{"/repo/src/a.cc", "/elsewhere/b.cc", "gen/c.cc"}, "/repo")
	descriptor.SetIncludeDirs([]string{"/repo", "/repo/include"}, "/repo")
	descriptor.SetCompileDefinitions([]string{"FOO=1", "", `NAME="x"`})
	descriptor.SetCompileOptions(options)
	options[0] = "mutated"
	// assert
	want := &Descriptor{
		Name:               "lib",
		Sources:            []string{"src/a.cc", "../elsewhere/b.cc", "gen/c.cc"},
		IncludeDirs:        []string{".", "include"},
		CompileDefinitions: []string{"FOO=1", "", `NAME=\"x\"`},
		CompileOptions:     []string{`"-Wall"`},
		LinkLibs:           []string{},
	}
	if diff := cmp.Diff(want, descriptor); diff != "" {
		t.Errorf("unexpected descriptor (-want +got):\n%s", diff)
	}
}
