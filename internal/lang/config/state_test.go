package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gngen/internal/platform"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

func TestNewStateFlags(t *testing.T) {
	_, err := NewStateFlags(true, true, false)
	if err == nil {
		t.Error("expected dry-run and check to be contradictory")
	}

	flags, err := NewStateFlags(false, true, true)
	if err != nil {
		t.Fatal(err)
	}

	if !flags.Check || flags.Dry || !flags.NoColor {
		t.Errorf("unexpected flags %#v", flags)
	}
}

func TestContext(t *testing.T) {
	// arrange
	cwd := t.TempDir()
	err := os.MkdirAll(filepath.Join(cwd, "sub", "src"), 0755)
	if err != nil {
		t.Fatal(err)
	}

	err = os.WriteFile(filepath.Join(cwd, "sub", "src", "a.cc"), nil, 0644)
	if err != nil {
		t.Fatal(err)
	}

	state := NewState(cwd, StateFlags{}, platform.Linux)
	ctx := state.Context(filepath.Join("sub", "gngen.hcl"))
	expr, diags := hclsyntax.ParseExpression([]byte(`format("%s,%s", path.module, join(",", glob("src/*.cc")))`), "test.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		t.Fatal(diags.Error())
	}
	// act
	value, diags := expr.Value(ctx)
	// assert
	if diags.HasErrors() {
		t.Fatal(diags.Error())
	}

	module := filepath.ToSlash(filepath.Join(cwd, "sub"))
	want := module + "," + module + "/src/a.cc"
	if value.AsString() != want {
		t.Errorf("expected %q but got %q", want, value.AsString())
	}
}

func TestColorize(t *testing.T) {
	state := NewState(t.TempDir(), StateFlags{NoColor: true}, platform.Linux)
	if got := state.Colorize("[green]wrote"); got != "wrote" {
		t.Errorf("expected colors to be stripped but got %q", got)
	}
}

func TestIsTerminal(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if IsTerminal(&bytes.Buffer{}) || IsTerminal(file) {
		t.Error("expected buffers and regular files not to be terminals")
	}
}
