package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gngen/internal"
	"gngen/internal/args"
	"gngen/internal/lang/config"
	"gngen/internal/lang/schema"
	"gngen/internal/platform"

	"github.com/hashicorp/hcl/v2"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const (
	exitFailure     = 1
	exitDiagnostics = 2
	exitDrift       = 3
)

func main() {
	// where are we?
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	// defaults for flags bound to env vars
	_ = godotenv.Load()
	os.Exit(run(cwd, os.Args, os.Stdout, os.Stderr))
}

// run executes gngen and returns its exit code
func run(cwd string, argv []string, stdout, stderr io.Writer) int {
	app := App(cwd, stdout, stderr)
	expanded, err := args.Expand(argv)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	err = app.Run(args.Normalize(expanded, multiValueFlags(app), flagNames(app)))
	// success, stop early
	if err == nil {
		return 0
	}

	var diagnosed *diagnosedError
	if errors.As(err, &diagnosed) {
		diagnosed.log.WriteDiagnostics(diagnosed.diags)
		return exitDiagnostics
	}

	if diags, ok := err.(hcl.Diagnostics); ok {
		hcl.NewDiagnosticTextWriter(stderr, nil, 78, false).WriteDiagnostics(diags)
		return exitDiagnostics
	}

	if errors.Is(err, internal.ErrDrift) {
		fmt.Fprintln(stderr, err)
		return exitDrift
	}

	// random err
	fmt.Fprintln(stderr, err)
	return exitFailure
}

// diagnosedError keeps the writer that knows the sources of the diagnostics
type diagnosedError struct {
	log   hcl.DiagnosticWriter
	diags hcl.Diagnostics
}

func (err *diagnosedError) Error() string {
	return err.diags.Error()
}

const (
	TargetName         = "target_name"
	GNFile             = schema.GNFileAttr
	Sources            = schema.SourcesAttr
	IncludeDirs        = schema.IncludeDirsAttr
	CompileDefinitions = schema.CompileDefinitionsAttr
	CompileOptions     = schema.CompileOptionsAttr
	LinkLibs           = schema.LinkLibsAttr
	StripRoot          = schema.StripRootAttr
	GNRebasePath       = schema.RebasePathAttr
	TargetOS           = schema.TargetOSAttr
	DryRun             = "dry-run"
	Check              = "check"
	NoColor            = "no-color"
	Only               = "only"
)

// stateFlags are shared by every command
func stateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    TargetOS,
			Usage:   "Platform to generate for; Windows link libraries get a .lib suffix",
			Value:   platform.Host().String(),
			EnvVars: []string{"GNGEN_TARGET_OS"},
		},
		&cli.BoolFlag{
			Name:  DryRun,
			Usage: "Don't write any file; print the generated content instead",
		},
		&cli.BoolFlag{
			Name:  Check,
			Usage: "Don't write any file; fail if a generated file differs from the one on disk",
		},
		&cli.BoolFlag{
			Name:  NoColor,
			Usage: "Disable colored output; also disabled by a non empty NO_COLOR or when stderr is not a terminal",
		},
	}
}

func targetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: TargetName, Usage: "Name of the target; '-' is replaced with '_'"},
		&cli.StringFlag{Name: GNFile, Usage: "Generated .gni file; its directory must exist"},
		&cli.StringSliceFlag{Name: Sources, Usage: "Source files of the target", KeepSpace: true},
		&cli.StringSliceFlag{Name: IncludeDirs, Usage: "Include directories of the target", KeepSpace: true},
		&cli.StringSliceFlag{Name: CompileDefinitions, Usage: "Preprocessor definitions", KeepSpace: true},
		&cli.StringSliceFlag{Name: CompileOptions, Usage: "Compiler flags, written verbatim", KeepSpace: true},
		&cli.StringSliceFlag{Name: LinkLibs, Usage: "Link libraries", KeepSpace: true},
		&cli.StringFlag{Name: StripRoot, Usage: "Root every source and include directory is made relative to"},
		&cli.StringFlag{Name: GNRebasePath, Usage: "Path of the generated root variable", Value: internal.DefaultRebasePath},
	}
}

func App(cwd string, stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:                      "gngen",
		Usage:                     "Generate GN target files from CMake targets",
		UsageText:                 "gngen --target_name NAME --gn_file FILE --sources FILE... --strip_root DIR [options]",
		Writer:                    stdout,
		ErrWriter:                 stderr,
		DisableSliceFlagSeparator: true,
		HideVersion:               true,
		Flags:                     append(targetFlags(), stateFlags()...),
		Action: func(c *cli.Context) error {
			state, err := newState(cwd, c, stdout, stderr)
			if err != nil {
				return err
			}

			request := internal.Request{
				TargetName:         c.String(TargetName),
				Output:             c.String(GNFile),
				Sources:            c.StringSlice(Sources),
				IncludeDirs:        c.StringSlice(IncludeDirs),
				CompileDefinitions: c.StringSlice(CompileDefinitions),
				CompileOptions:     c.StringSlice(CompileOptions),
				LinkLibs:           c.StringSlice(LinkLibs),
				StripRoot:          c.String(StripRoot),
				RebasePath:         c.String(GNRebasePath),
				Platform:           state.Platform,
			}

			sys := internal.NewSystem(state)
			jobs, diags := sys.Plan([]internal.Request{request})
			if diags.HasErrors() {
				return &diagnosedError{sys.NewLogger(), diags}
			}

			return sys.Apply(c.Context, jobs)
		},
	}

	app.Commands = []*cli.Command{{
		Name:      "apply",
		Usage:     "Generate every target declared in an HCL manifest",
		ArgsUsage: "[" + schema.DefaultManifest + "]",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: Only, Usage: "Only generate the target with this name"},
		}, stateFlags()...),
		Action: func(c *cli.Context) error {
			state, err := newState(cwd, c, stdout, stderr)
			if err != nil {
				return err
			}

			filename := schema.DefaultManifest
			if c.Args().Present() {
				filename = c.Args().First()
			}

			sys := internal.NewSystem(state)
			requests, diags := sys.ReadManifest(filename, c.String(Only))
			if diags.HasErrors() {
				return &diagnosedError{sys.NewLogger(), diags}
			}

			jobs, diags := sys.Plan(requests)
			if diags.HasErrors() {
				return &diagnosedError{sys.NewLogger(), diags}
			}

			return sys.Apply(c.Context, jobs)
		},
	}}

	return app
}

func newState(cwd string, c *cli.Context, stdout, stderr io.Writer) (*config.State, error) {
	// any value of NO_COLOR disables colors, see https://no-color.org
	noColor := c.Bool(NoColor) || os.Getenv("NO_COLOR") != "" || !config.IsTerminal(stderr)
	flags, err := config.NewStateFlags(c.Bool(DryRun), c.Bool(Check), noColor)
	if err != nil {
		return nil, err
	}

	p, diags := platform.Parse(c.String(TargetOS))
	if diags.HasErrors() {
		return nil, diags
	}

	state := config.NewState(cwd, flags, p)
	state.SetOutput(stdout, stderr)
	return state, nil
}

func flagNames(app *cli.App) []string {
	names := []string{"help", "h"}
	flags := append([]cli.Flag{}, app.Flags...)
	for _, cmd := range app.Commands {
		flags = append(flags, cmd.Flags...)
	}

	for _, flag := range flags {
		names = append(names, flag.Names()...)
	}

	return names
}

func multiValueFlags(app *cli.App) []string {
	names := make([]string, 0)
	for _, flag := range app.Flags {
		if _, ok := flag.(*cli.StringSliceFlag); ok {
			names = append(names, flag.Names()...)
		}
	}

	return names
}
