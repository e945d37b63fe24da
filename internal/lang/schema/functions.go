package schema

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"golang.org/x/exp/slices"
)

// Functions available inside a manifest. Relative glob patterns are resolved
// against dir
func Functions(dir string) map[string]function.Function {
	return map[string]function.Function{
		"glob":     GlobFunc(dir),
		"concat":   stdlib.ConcatFunc,
		"distinct": stdlib.DistinctFunc,
		"flatten":  stdlib.FlattenFunc,
		"format":   stdlib.FormatFunc,
		"join":     stdlib.JoinFunc,
		"lower":    stdlib.LowerFunc,
		"sort":     stdlib.SortFunc,
		"split":    stdlib.SplitFunc,
		"upper":    stdlib.UpperFunc,
	}
}

// GlobFunc returns the sorted, absolute, slash separated paths of every file
// matching a doublestar pattern (ex: "src/**/*.cc")
func GlobFunc(dir string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{
			Name: "pattern",
			Type: cty.String,
		}},
		Type: function.StaticReturnType(cty.List(cty.String)),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			matches, err := Glob(dir, args[0].AsString())
			if err != nil {
				return cty.UnknownVal(retType), function.NewArgError(0, err)
			}

			if len(matches) == 0 {
				return cty.ListValEmpty(cty.String), nil
			}

			values := make([]cty.Value, len(matches))
			for index, match := range matches {
				values[index] = cty.StringVal(match)
			}

			return cty.ListVal(values), nil
		},
	})
}

// Glob expands pattern relative to dir, absolute patterns ignore dir
func Glob(dir, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	base := dir
	if filepath.IsAbs(pattern) {
		base, pattern = doublestar.SplitPattern(pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(base), pattern)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(matches))
	for _, match := range matches {
		result = append(result, filepath.ToSlash(filepath.Join(base, match)))
	}

	slices.Sort(result)
	return result, nil
}
