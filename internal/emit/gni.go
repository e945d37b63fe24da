package emit

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gngen/internal/functional"
	"gngen/internal/paths"
	"gngen/internal/platform"
	"gngen/internal/target"
)

// ExternalTargetMarker identifies link libraries that reference a target of
// another build system (ex: CMake's "foo::@<dir>"). GN cannot represent them
const ExternalTargetMarker = "::@"

// Emit replaces the file at filename with the GN rendition of the descriptor.
// The old file is removed before the new one is written; this is not atomic
func Emit(descriptor *target.Descriptor, filename, rebasePath string, p platform.Platform) error {
	err := remove(filename)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = Render(file, descriptor, rebasePath, p)
	if err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func remove(filename string) error {
	_, err := os.Stat(filename)
	if err != nil {
		return nil
	}

	return os.Remove(filename)
}

// Render writes the GN rendition of the descriptor to w. Variables are named
// after the descriptor; consumers depend on these names
func Render(w io.Writer, descriptor *target.Descriptor, rebasePath string, p platform.Platform) error {
	out := bufio.NewWriter(w)
	name := descriptor.Name
	root := RootVariable(name)

	fmt.Fprintf(out, "%s = get_path_info(%s, \"abspath\")\n", root, quote(rebasePath))

	rooted := func(filename string) string {
		return quote("$" + root + "/" + paths.TrimSeparator(filename))
	}
	writeList(out, name+"_sources", functional.Map(descriptor.Sources, rooted))
	writeList(out, name+"_include_dirs", functional.Map(descriptor.IncludeDirs, rooted))

	definitions := functional.Filter(descriptor.CompileDefinitions, notEmpty)
	writeList(out, name+"_compile_definitions", functional.Map(definitions, quote))

	// options are expected to be valid GN tokens already
	writeList(out, name+"_compile_options", descriptor.CompileOptions)

	libs := make([]string, 0, len(descriptor.LinkLibs))
	for _, lib := range descriptor.LinkLibs {
		decorated, ok := LinkLib(lib, p)
		if ok {
			libs = append(libs, quote(decorated))
		}
	}
	writeList(out, name+"_link_libs", libs)

	return out.Flush()
}

// RootVariable is the name of the GN variable holding the rebase path
func RootVariable(name string) string {
	return "_" + name + "_root"
}

// LinkLib converts a CMake link library into a GN lib entry. It returns false
// for libraries that must be skipped
func LinkLib(lib string, p platform.Platform) (string, bool) {
	if strings.Contains(lib, ExternalTargetMarker) {
		return "", false
	}

	if strings.HasPrefix(lib, `"`) {
		lib = strings.TrimSuffix(strings.TrimPrefix(lib, `"`), `"`)
	}

	lib = strings.TrimPrefix(lib, "-l")
	return lib + p.LibrarySuffix(), true
}

func writeList(out *bufio.Writer, name string, entries []string) {
	fmt.Fprintf(out, "%s = [\n", name)
	for _, entry := range entries {
		fmt.Fprintf(out, "  %s,\n", entry)
	}
	out.WriteString("]\n")
}

// quote wraps text in a GN string literal. Escaping is the caller's concern
func quote(text string) string {
	return `"` + text + `"`
}

func notEmpty(text string) bool {
	return text != ""
}
