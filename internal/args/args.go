package args

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slices"
)

// FilePrefix marks an argument as a response file whose lines are arguments
const FilePrefix = "@"

// maxDepth bounds nested response files
const maxDepth = 16

// Expand replaces every "@file" argument with the lines of file. Every line is
// one argument, even an empty one. Response files can reference other response
// files
func Expand(args []string) ([]string, error) {
	return expand(args, 0)
}

func expand(args []string, depth int) ([]string, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("response files nested more than %d levels", maxDepth)
	}

	result := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, FilePrefix) || arg == FilePrefix {
			result = append(result, arg)
			continue
		}

		lines, err := readLines(strings.TrimPrefix(arg, FilePrefix))
		if err != nil {
			return nil, err
		}

		expanded, err := expand(lines, depth+1)
		if err != nil {
			return nil, err
		}

		result = append(result, expanded...)
	}

	return result, nil
}

func readLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

// Normalize rewrites multi-value flags into repeated single-value flags:
//
//	--sources a.cc b.cc --strip_root /repo
//	--sources=a.cc --sources=b.cc --strip_root /repo
//
// A token is a value of the last multi-value flag unless it names one of the
// known flags, so values such as "-lfoo" or "-Wall" are accepted. Everything
// after "--" is left untouched
func Normalize(args []string, multi, known []string) []string {
	result := make([]string, 0, len(args))
	current := ""
	for index, arg := range args {
		if arg == "--" {
			return append(result, args[index:]...)
		}

		name, hasValue := flagName(arg)
		switch {
		case name != "" && slices.Contains(known, name):
			current = ""
			if slices.Contains(multi, name) && !hasValue {
				current = name
				continue
			}

			result = append(result, arg)
		case current != "":
			result = append(result, "--"+current+"="+arg)
		default:
			result = append(result, arg)
		}
	}

	return result
}

// flagName returns the name of a flag like token (ex: "--name=value") and
// whether the token carries its own value
func flagName(arg string) (string, bool) {
	if !strings.HasPrefix(arg, "-") {
		return "", false
	}

	name := strings.TrimLeft(arg, "-")
	if before, _, found := strings.Cut(name, "="); found {
		return before, true
	}

	return name, false
}
