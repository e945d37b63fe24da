package paths

import (
	"path"
	"strings"
)

// Separator is the only separator understood by the rebaser; both CMake and GN
// use forward slashes on every host
const Separator = "/"

// Case names the rule used to rebase a path onto a strip root
type Case int

const (
	// Root is a directory equal to the strip root
	Root Case = iota
	// Descendant is an absolute path nested under the strip root
	Descendant
	// Outside is an absolute path that is not nested under the strip root
	Outside
	// Unrelated is an absolute path that has no computable relation to the
	// strip root (ex: the strip root is relative). The path is kept as is
	Unrelated
	// Relative is a path that is already relative to the strip root
	Relative
)

func (c Case) String() string {
	switch c {
	case Root:
		return "root"
	case Descendant:
		return "descendant"
	case Outside:
		return "outside"
	case Unrelated:
		return "unrelated"
	case Relative:
		return "relative"
	}

	// this implies a 🐞 in the code
	panic("unknown rebase case")
}

// Rebased is the result of rebasing a single path
type Rebased struct {
	Case Case
	// Raw is the path after the textual strips, it might start with a separator
	Raw string
}

// Path returns the rebased path without its leading separator
func (r Rebased) Path() string {
	return TrimSeparator(r.Raw)
}

// Explain rebases filename onto root and reports which rule was applied
func Explain(filename, root string) Rebased {
	if !IsAbs(filename) {
		return Rebased{Case: Relative, Raw: strip(filename, root)}
	}

	common, ok := CommonPath(filename, root)
	if ok && common == root {
		// TODO: drop the second strip once no generated .gni depends on it for
		// roots ending in a separator
		return Rebased{Case: Descendant, Raw: strip(strip(filename, root), root)}
	}

	relative, ok := Rel(root, filename)
	if !ok {
		return Rebased{Case: Unrelated, Raw: strip(filename, root)}
	}

	return Rebased{Case: Outside, Raw: strip(relative, root)}
}

// ExplainDir is like Explain but a directory equal to root becomes "."
func ExplainDir(dir, root string) Rebased {
	if dir == root {
		return Rebased{Case: Root, Raw: "."}
	}

	return Explain(dir, root)
}

// Rebase rewrites filename relative to root
func Rebase(filename, root string) string {
	return Explain(filename, root).Path()
}

// RebaseDir rewrites dir relative to root
func RebaseDir(dir, root string) string {
	return ExplainDir(dir, root).Path()
}

// TrimSeparator removes a single leading separator
func TrimSeparator(filename string) string {
	return strings.TrimPrefix(filename, Separator)
}

func IsAbs(filename string) bool {
	return path.IsAbs(filename)
}

// CommonPath returns the longest common sub-path of a and b. Empty and "."
// segments are ignored but ".." is not collapsed. It is not possible to compare
// an absolute with a relative path
func CommonPath(a, b string) (string, bool) {
	if IsAbs(a) != IsAbs(b) {
		return "", false
	}

	left, right := Segments(a), Segments(b)
	count := 0
	for count < len(left) && count < len(right) && left[count] == right[count] {
		count++
	}

	prefix := ""
	if IsAbs(a) {
		prefix = Separator
	}

	return prefix + strings.Join(left[:count], Separator), true
}

// Rel returns the minimal relative path to reach target from base. Both paths
// must be absolute, otherwise there is no relation between them
func Rel(base, target string) (string, bool) {
	if !IsAbs(base) || !IsAbs(target) {
		return "", false
	}

	from, to := Segments(path.Clean(base)), Segments(path.Clean(target))
	count := 0
	for count < len(from) && count < len(to) && from[count] == to[count] {
		count++
	}

	steps := make([]string, 0, len(from)-count+len(to)-count)
	for range from[count:] {
		steps = append(steps, "..")
	}

	steps = append(steps, to[count:]...)
	if len(steps) == 0 {
		return ".", true
	}

	return strings.Join(steps, Separator), true
}

// Segments splits filename into its non-empty segments
func Segments(filename string) []string {
	result := make([]string, 0)
	for _, segment := range strings.Split(filename, Separator) {
		if segment == "" || segment == "." {
			continue
		}

		result = append(result, segment)
	}

	return result
}

// strip textually removes every occurrence of root
func strip(filename, root string) string {
	if root == "" {
		return filename
	}

	return strings.ReplaceAll(filename, root, "")
}
