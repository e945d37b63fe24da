package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"gngen/internal/lang"
	"gngen/internal/lang/schema"
	"gngen/internal/platform"
	"gngen/internal/target"

	"github.com/hashicorp/hcl/v2"
)

// DefaultRebasePath is the location of the generated root variable when none
// is given
const DefaultRebasePath = "."

// Request is the raw description of one target, as given on the command line
// or by a manifest block
type Request struct {
	TargetName         string
	Output             string
	Sources            []string
	IncludeDirs        []string
	CompileDefinitions []string
	CompileOptions     []string
	LinkLibs           []string
	StripRoot          string
	RebasePath         string
	Platform           platform.Platform
	// Block is the manifest block declaring the request, nil on the command line
	Block *hcl.Block
}

// Job binds a normalized descriptor to the file it is written to
type Job struct {
	Descriptor *target.Descriptor
	Output     string
	RebasePath string
	Platform   platform.Platform
}

func (request Request) Job() Job {
	descriptor := target.New(request.TargetName)
	descriptor.SetSources(request.Sources, request.StripRoot)
	descriptor.SetIncludeDirs(request.IncludeDirs, request.StripRoot)
	descriptor.SetCompileDefinitions(request.CompileDefinitions)
	descriptor.SetCompileOptions(request.CompileOptions)
	descriptor.SetLinkLibs(request.LinkLibs)

	rebasePath := request.RebasePath
	if rebasePath == "" {
		rebasePath = DefaultRebasePath
	}

	return Job{
		Descriptor: descriptor,
		Output:     request.Output,
		RebasePath: rebasePath,
		Platform:   request.Platform,
	}
}

// Validate checks the required inputs. The output directory is only required
// to exist when the file is going to be written
func (request Request) Validate(writing bool) hcl.Diagnostics {
	diagnostics := make(hcl.Diagnostics, 0)
	required := []struct {
		name    string
		missing bool
	}{
		{"target_name", request.TargetName == ""},
		{schema.GNFileAttr, request.Output == ""},
		{schema.SourcesAttr, len(request.Sources) == 0},
		{schema.StripRootAttr, request.StripRoot == ""},
	}

	for _, attr := range required {
		if attr.missing {
			diagnostics = append(diagnostics, request.diagnostic(
				fmt.Sprintf("missing required argument %q", attr.name), "", attr.name))
		}
	}

	if !writing || request.Output == "" {
		return diagnostics
	}

	dir := filepath.Dir(request.Output)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		diagnostics = append(diagnostics, request.diagnostic(
			fmt.Sprintf("output directory %q does not exist", dir),
			"the parent directory of the generated file must be created beforehand",
			schema.GNFileAttr,
		))
	}

	return diagnostics
}

func (request Request) diagnostic(summary, detail, attr string) *hcl.Diagnostic {
	diagnostic := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
	}

	if request.Block != nil {
		diagnostic.Subject = schema.AttributeRange(request.Block, attr)
		diagnostic.Context = request.Block.DefRange.Ptr()
		if diagnostic.Subject == nil {
			diagnostic.Subject = request.Block.DefRange.Ptr()
		}
	}

	return diagnostic
}

// NewRequest converts a manifest target. Relative output files are resolved
// against dir
func NewRequest(config lang.TargetConfig, dir string, fallback platform.Platform) (*Request, hcl.Diagnostics) {
	output := filepath.FromSlash(config.GNFile)
	if output != "" && !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}

	request := &Request{
		TargetName:         config.Name,
		Output:             output,
		Sources:            config.Sources,
		IncludeDirs:        config.IncludeDirs,
		CompileDefinitions: config.CompileDefinitions,
		CompileOptions:     config.CompileOptions,
		LinkLibs:           config.LinkLibs,
		StripRoot:          config.StripRoot,
		RebasePath:         DefaultRebasePath,
		Platform:           fallback,
		Block:              config.Block,
	}

	if config.RebasePath != nil {
		request.RebasePath = *config.RebasePath
	}

	if config.TargetOS != nil {
		p, diags := platform.Parse(*config.TargetOS)
		if diags.HasErrors() && config.Block != nil {
			for _, diag := range diags {
				diag.Subject = schema.AttributeRange(config.Block, schema.TargetOSAttr)
				diag.Context = config.Block.DefRange.Ptr()
			}
		}

		if diags.HasErrors() {
			return nil, diags
		}

		request.Platform = p
	}

	return request, nil
}
