package lang

import (
	"fmt"

	"gngen/internal/functional"
	"gngen/internal/lang/schema"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// TargetConfig is a "target" block of a manifest. Attribute names match the
// command line flags
type TargetConfig struct {
	Name               string
	Block              *hcl.Block
	GNFile             string   `hcl:"gn_file"`
	StripRoot          string   `hcl:"strip_root"`
	Sources            []string `hcl:"sources"`
	IncludeDirs        []string `hcl:"include_dirs,optional"`
	CompileDefinitions []string `hcl:"compile_definitions,optional"`
	CompileOptions     []string `hcl:"compile_options,optional"`
	LinkLibs           []string `hcl:"link_libs,optional"`
	RebasePath         *string  `hcl:"gn_rebase_path,optional"`
	TargetOS           *string  `hcl:"target_os,optional"`
}

// ReadManifest decodes every target declared in filename. Targets are returned
// in declaration order
func ReadManifest(parser *hclparse.Parser, filename string, ctx *hcl.EvalContext) ([]TargetConfig, hcl.Diagnostics) {
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, diags
	}

	content, diags := file.Body.Content(schema.FileSchema())
	if diags.HasErrors() {
		return nil, diags
	}

	diagnostics := make(hcl.Diagnostics, 0)
	seen := map[string]*hcl.Block{}
	targets := make([]TargetConfig, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		name := block.Labels[0]
		if previous, ok := seen[name]; ok {
			diagnostics = append(diagnostics, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("duplicate target %q", name),
				Detail:   fmt.Sprintf("%q was already declared at %s", name, previous.DefRange),
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}

		seen[name] = block
		config, diags := decodeTarget(block, ctx)
		if diags.HasErrors() {
			diagnostics = append(diagnostics, diags...)
			continue
		}

		targets = append(targets, *config)
	}

	if diagnostics.HasErrors() {
		return nil, diagnostics
	}

	return targets, nil
}

func decodeTarget(block *hcl.Block, ctx *hcl.EvalContext) (*TargetConfig, hcl.Diagnostics) {
	config := &TargetConfig{Name: block.Labels[0], Block: block}
	diags := gohcl.DecodeBody(block.Body, ctx, config)
	if diags.HasErrors() {
		return nil, diags
	}

	if len(config.Sources) == 0 {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  fmt.Sprintf(`"%s" cannot be empty`, schema.SourcesAttr),
			Detail:   "at least one source file is required; check that glob patterns match something",
			Subject:  schema.AttributeRange(block, schema.SourcesAttr),
			Context:  block.DefRange.Ptr(),
		}}
	}

	return config, nil
}

// Select returns the target called name or a diagnostic suggesting the closest
// declared name
func Select(targets []TargetConfig, name string) ([]TargetConfig, hcl.Diagnostics) {
	for _, config := range targets {
		if config.Name == name {
			return []TargetConfig{config}, nil
		}
	}

	names := functional.Map(targets, func(config TargetConfig) string { return config.Name })
	detail := ""
	if suggestion := functional.Suggest(name, names); suggestion != "" {
		detail = fmt.Sprintf("Did you mean %q?", suggestion)
	}

	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("no target named %q", name),
		Detail:   detail,
	}}
}
