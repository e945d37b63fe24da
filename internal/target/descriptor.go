package target

import (
	"strings"

	"gngen/internal/functional"
	"gngen/internal/paths"
)

// Descriptor is one compilation target expressed relative to its strip root
type Descriptor struct {
	Name               string
	Sources            []string
	IncludeDirs        []string
	CompileDefinitions []string
	CompileOptions     []string
	LinkLibs           []string
}

// New creates an empty Descriptor. GN identifiers cannot contain '-' so they
// are replaced with '_'
func New(name string) *Descriptor {
	return &Descriptor{
		Name:               SanitizeName(name),
		Sources:            make([]string, 0),
		IncludeDirs:        make([]string, 0),
		CompileDefinitions: make([]string, 0),
		CompileOptions:     make([]string, 0),
		LinkLibs:           make([]string, 0),
	}
}

func SanitizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func (d *Descriptor) SetSources(sources []string, stripRoot string) {
	d.Sources = functional.Map(sources, func(source string) string {
		return paths.Rebase(source, stripRoot)
	})
}

func (d *Descriptor) SetIncludeDirs(dirs []string, stripRoot string) {
	d.IncludeDirs = functional.Map(dirs, func(dir string) string {
		return paths.RebaseDir(dir, stripRoot)
	})
}

// SetCompileDefinitions escapes double quotes so that every definition can be
// embedded in a GN string literal. Empty definitions are kept here and dropped
// on emission
func (d *Descriptor) SetCompileDefinitions(definitions []string) {
	d.CompileDefinitions = functional.Map(definitions, func(definition string) string {
		return strings.ReplaceAll(definition, `"`, `\"`)
	})
}

func (d *Descriptor) SetCompileOptions(options []string) {
	d.CompileOptions = functional.Map(options, functional.Identity[string])
}

func (d *Descriptor) SetLinkLibs(libs []string) {
	d.LinkLibs = functional.Map(libs, functional.Identity[string])
}
