package internal

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gngen/internal/emit"
	"gngen/internal/lang"
	"gngen/internal/lang/config"
	"gngen/internal/lang/schema"
	"gngen/internal/worker"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ErrDrift is returned by Apply in check mode when a generated file differs
// from the one on disk
var ErrDrift = errors.New("generated files are out of date")

type System struct {
	state  *config.State
	parser *hclparse.Parser
}

func NewSystem(state *config.State) *System {
	return &System{
		state:  state,
		parser: hclparse.NewParser(),
	}
}

// NewLogger writes diagnostics with snippets of the manifests read so far
func (sys System) NewLogger() hcl.DiagnosticWriter {
	return hcl.NewDiagnosticTextWriter(sys.state.Stderr, sys.parser.Files(), 78, !sys.state.Flags.NoColor)
}

// ReadManifest converts the targets of a manifest into requests. If only is not
// empty just that target is returned
func (sys System) ReadManifest(filename, only string) ([]Request, hcl.Diagnostics) {
	if !filepath.IsAbs(filename) {
		filename = filepath.Join(sys.state.CWD, filename)
	}

	targets, diags := lang.ReadManifest(sys.parser, filename, sys.state.Context(filename))
	if diags.HasErrors() {
		return nil, diags
	}

	if only != "" {
		targets, diags = lang.Select(targets, only)
		if diags.HasErrors() {
			return nil, diags
		}
	}

	diagnostics := make(hcl.Diagnostics, 0)
	requests := make([]Request, 0, len(targets))
	for _, target := range targets {
		request, diags := NewRequest(target, filepath.Dir(filename), sys.state.Platform)
		if diags.HasErrors() {
			diagnostics = append(diagnostics, diags...)
			continue
		}

		requests = append(requests, *request)
	}

	if diagnostics.HasErrors() {
		return nil, diagnostics
	}

	return requests, nil
}

// Plan validates the requests and normalizes them into jobs. Two jobs cannot
// write the same file
func (sys System) Plan(requests []Request) ([]Job, hcl.Diagnostics) {
	writing := !sys.state.Flags.Dry && !sys.state.Flags.Check
	diagnostics := make(hcl.Diagnostics, 0)
	outputs := map[string]Request{}
	jobs := make([]Job, 0, len(requests))
	for _, request := range requests {
		diags := request.Validate(writing)
		if diags.HasErrors() {
			diagnostics = append(diagnostics, diags...)
			continue
		}

		key := request.Output
		if !filepath.IsAbs(key) {
			key = filepath.Join(sys.state.CWD, key)
		}

		key = filepath.Clean(key)
		if previous, ok := outputs[key]; ok {
			diagnostics = append(diagnostics, request.diagnostic(
				fmt.Sprintf("%q and %q write the same file", previous.TargetName, request.TargetName),
				fmt.Sprintf("%q can only be generated by one target", request.Output),
				schema.GNFileAttr,
			))
			continue
		}

		outputs[key] = request
		jobs = append(jobs, request.Job())
	}

	if diagnostics.HasErrors() {
		return nil, diagnostics
	}

	return jobs, nil
}

// Apply writes, prints or checks every job depending on the state flags.
// Printed content keeps the order of jobs
func (sys System) Apply(ctx context.Context, jobs []Job) error {
	outputs := make([]string, len(jobs))
	drifted := make([]bool, len(jobs))
	err := worker.Do(ctx, int(sys.state.Parallelism), jobs, func(ctx context.Context, index int, job Job) error {
		log := sys.state.NewLogger(job.Descriptor.Name)
		switch {
		case sys.state.Flags.Dry:
			var out strings.Builder
			err := emit.Render(&out, job.Descriptor, job.RebasePath, job.Platform)
			if err != nil {
				return err
			}

			outputs[index] = out.String()
			log.Println(sys.state.Colorize("[yellow]dry run[reset] " + job.Output))
		case sys.state.Flags.Check:
			diff, err := emit.Diff(job.Descriptor, job.Output, job.RebasePath, job.Platform)
			if err != nil {
				return err
			}

			if diff == "" {
				log.Println(sys.state.Colorize("[green]up to date[reset] " + job.Output))
				return nil
			}

			outputs[index] = diff
			drifted[index] = true
			log.Println(sys.state.Colorize("[red]out of date[reset] " + job.Output))
		default:
			err := emit.Emit(job.Descriptor, job.Output, job.RebasePath, job.Platform)
			if err != nil {
				return err
			}

			log.Println(sys.state.Colorize("[green]wrote[reset] " + job.Output))
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, output := range outputs {
		fmt.Fprint(sys.state.Stdout, output)
	}

	for _, drift := range drifted {
		if drift {
			return ErrDrift
		}
	}

	return nil
}
