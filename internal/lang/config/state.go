package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gngen/internal/lang/schema"
	"gngen/internal/platform"
	"gngen/internal/worker"

	"github.com/hashicorp/hcl/v2"
	"github.com/mitchellh/colorstring"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/term"
)

type State struct {
	CWD         string
	Flags       StateFlags
	Parallelism uint8
	// Platform is used for targets that don't specify one
	Platform platform.Platform
	Stdout   io.Writer
	Stderr   io.Writer
	// logs serializes the loggers of concurrent jobs
	logs *syncWriter
}

type syncWriter struct {
	mutex  sync.Mutex
	writer io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.writer.Write(p)
}

type StateFlags struct {
	// Dry prints the generated files instead of writing them
	Dry bool
	// Check compares the generated files with the ones on disk
	Check   bool
	NoColor bool
}

func NewStateFlags(dry, check, noColor bool) (StateFlags, error) {
	if dry && check {
		return StateFlags{}, fmt.Errorf(`"dry-run" and "check" are contradictory flags`)
	}

	return StateFlags{
		Dry:     dry,
		Check:   check,
		NoColor: noColor,
	}, nil
}

const DefaultParallelism = worker.Parallelism

func NewState(cwd string, flags StateFlags, p platform.Platform) *State {
	state := &State{
		CWD:         cwd,
		Flags:       flags,
		Parallelism: DefaultParallelism,
		Platform:    p,
	}
	state.SetOutput(os.Stdout, os.Stderr)
	return state
}

// SetOutput redirects generated content to stdout and logs to stderr
func (state *State) SetOutput(stdout, stderr io.Writer) {
	state.Stdout = stdout
	state.Stderr = stderr
	state.logs = &syncWriter{writer: stderr}
}

func Env() map[string]string {
	// organize out env vars
	env := map[string]string{}
	for _, keyVal := range os.Environ() {
		parts := strings.SplitN(keyVal, "=", 2)
		key, val := parts[0], parts[1]
		env[key] = val
	}

	return env
}

// Context is the evaluation context of the manifest stored at filename
func (state State) Context(filename string) *hcl.EvalContext {
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(state.CWD, filename)
	}

	dir := filepath.Dir(filename)
	env := map[string]cty.Value{}
	for key, val := range Env() {
		env[key] = cty.StringVal(val)
	}

	variables := map[string]cty.Value{
		schema.PathScope: cty.ObjectVal(map[string]cty.Value{
			"root":    cty.StringVal(filepath.ToSlash(state.CWD)),
			"module":  cty.StringVal(filepath.ToSlash(dir)),
			"current": cty.StringVal(filepath.ToSlash(filename)),
		}),
		schema.EnvScope: cty.MapValEmpty(cty.String),
	}

	if len(env) > 0 {
		variables[schema.EnvScope] = cty.MapVal(env)
	}

	return &hcl.EvalContext{
		Variables: variables,
		Functions: schema.Functions(dir),
	}
}

func (state State) NewLogger(name string) *log.Logger {
	return log.New(state.logs, name+": ", 0)
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}

// Colorize expands colorstring tags such as "[green]" unless colors are disabled
func (state State) Colorize(text string) string {
	colorize := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: state.Flags.NoColor,
		Reset:   true,
	}

	return colorize.Color(text)
}
