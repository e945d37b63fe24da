package lang

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gngen/internal/lang/config"
	"gngen/internal/platform"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2/hclparse"
)

func readManifest(t *testing.T, content string) ([]TargetConfig, string, error) {
	t.Helper()
	cwd := t.TempDir()
	filename := filepath.Join(cwd, "gngen.hcl")
	err := os.WriteFile(filename, []byte(content), 0644)
	if err != nil {
		t.Fatal(err)
	}

	state := config.NewState(cwd, config.StateFlags{}, platform.Linux)
	targets, diags := ReadManifest(hclparse.NewParser(), filename, state.Context(filename))
	if diags.HasErrors() {
		return nil, cwd, diags
	}

	return targets, cwd, nil
}

func TestReadManifest(t *testing.T) {
	// arrange
	content := `
target "my-lib" {
  gn_file             = "out/my_lib.gni"
  strip_root          = path.root
  sources             = ["${path.root}/src/a.cc"]
  include_dirs        = [path.root, "${path.root}/include"]
  compile_definitions = ["FOO=1", ""]
  link_libs           = ["-lm"]
  target_os           = "windows"
}

target "other" {
  gn_file    = "other.gni"
  strip_root = "/repo"
  sources    = ["a.cc"]
}
`
	// act
	targets, cwd, err := readManifest(t, content)
	// assert
	if err != nil {
		t.Fatal(err)
	}

	if len(targets) != 2 {
		t.Fatalf("expected 2 targets but got %d", len(targets))
	}

	root := filepath.ToSlash(cwd)
	lib := targets[0]
	if lib.Name != "my-lib" || lib.StripRoot != root || lib.GNFile != "out/my_lib.gni" {
		t.Errorf("unexpected target %#v", lib)
	}

	if diff := cmp.Diff([]string{root, root + "/include"}, lib.IncludeDirs); diff != "" {
		t.Errorf("unexpected include dirs (-want +got):\n%s", diff)
	}

	if lib.TargetOS == nil || *lib.TargetOS != "windows" || lib.RebasePath != nil {
		t.Errorf("unexpected optional attributes %#v", lib)
	}

	if other := targets[1]; other.Name != "other" || len(other.LinkLibs) != 0 {
		t.Errorf("unexpected target %#v", other)
	}
}

func TestReadManifestErrors(t *testing.T) {
	cases := map[string]string{
		"duplicate": `
target "a" {
  gn_file = "a.gni"
  strip_root = "/repo"
  sources = ["a.cc"]
}
target "a" {
  gn_file = "b.gni"
  strip_root = "/repo"
  sources = ["b.cc"]
}`,
		"cannot be empty": `
target "a" {
  gn_file = "a.gni"
  strip_root = "/repo"
  sources = glob("src/*.cc")
}`,
		"Unsupported argument": `
target "a" {
  gn_file = "a.gni"
  strip_root = "/repo"
  sources = ["a.cc"]
  source_dirs = ["a"]
}`,
		"Missing required argument": `
target "a" {
  gn_file = "a.gni"
  sources = ["a.cc"]
}`,
	}

	for summary, content := range cases {
		_, _, err := readManifest(t, content)
		if err == nil {
			t.Errorf("expected an error containing %q", summary)
			continue
		}

		if !strings.Contains(err.Error(), summary) {
			t.Errorf("expected an error containing %q but got %q", summary, err.Error())
		}
	}
}

func TestSelect(t *testing.T) {
	targets := []TargetConfig{{Name: "skity"}, {Name: "skity-test"}}
	selected, diags := Select(targets, "skity-test")
	if diags.HasErrors() || len(selected) != 1 || selected[0].Name != "skity-test" {
		t.Errorf("unexpected selection %#v %s", selected, diags.Error())
	}

	_, diags = Select(targets, "skty")
	if !diags.HasErrors() || !strings.Contains(diags[0].Detail, `"skity"`) {
		t.Errorf("expected a suggestion for skity but got %#v", diags)
	}
}
