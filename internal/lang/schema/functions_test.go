package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"
)

func TestGlob(t *testing.T) {
	// arrange
	dir := t.TempDir()
	for _, name := range []string{"src/b.cc", "src/a.cc", "src/nested/c.cc", "src/d.h"} {
		filename := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(filename, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	root := filepath.ToSlash(dir)
	// act
	relative, err := Glob(dir, "src/**/*.cc")
	if err != nil {
		t.Fatal(err)
	}

	absolute, err := Glob("/nowhere", root+"/src/*.h")
	if err != nil {
		t.Fatal(err)
	}
	// assert
	want := []string{root + "/src/a.cc", root + "/src/b.cc", root + "/src/nested/c.cc"}
	if diff := cmp.Diff(want, relative); diff != "" {
		t.Errorf("unexpected matches (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{root + "/src/d.h"}, absolute); diff != "" {
		t.Errorf("unexpected matches (-want +got):\n%s", diff)
	}
}

func TestGlobFuncEmpty(t *testing.T) {
	value, err := GlobFunc(t.TempDir()).Call([]cty.Value{cty.StringVal("*.cc")})
	if err != nil {
		t.Fatal(err)
	}

	if !value.Type().Equals(cty.List(cty.String)) || value.LengthInt() != 0 {
		t.Errorf("expected an empty list of strings but got %#v", value)
	}
}
