package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// DefaultManifest is read by "gngen apply" when no file is given
const DefaultManifest = "gngen.hcl"

// labels
const (
	TargetLabel = "target"
	NameLabel   = "name"
)

const (
	// PathScope is automatically injected
	PathScope = "path"
	// EnvScope exposes the process environment
	EnvScope = "env"
)

// attributes of a target block; they are named after the command line flags
const (
	GNFileAttr             = "gn_file"
	StripRootAttr          = "strip_root"
	SourcesAttr            = "sources"
	IncludeDirsAttr        = "include_dirs"
	CompileDefinitionsAttr = "compile_definitions"
	CompileOptionsAttr     = "compile_options"
	LinkLibsAttr           = "link_libs"
	RebasePathAttr         = "gn_rebase_path"
	TargetOSAttr           = "target_os"
)

func FileSchema() *hcl.BodySchema {
	return &hcl.BodySchema{
		Attributes: nil,
		Blocks: []hcl.BlockHeaderSchema{{
			Type:       TargetLabel,
			LabelNames: []string{NameLabel},
		}},
	}
}

// AttributeRange returns the range of the expression assigned to name inside
// block or nil if the attribute is not set
func AttributeRange(block *hcl.Block, name string) *hcl.Range {
	attributes, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil
	}

	attribute, ok := attributes[name]
	if !ok {
		return nil
	}

	return attribute.Expr.Range().Ptr()
}
