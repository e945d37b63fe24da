package functional

import (
	"github.com/agext/levenshtein"
	"golang.org/x/exp/slices"
)

// Map always returns a new slice, even for a nil input
func Map[T any, U any](slice []T, f func(T) U) []U {
	result := make([]U, len(slice))
	for i, t := range slice {
		result[i] = f(t)
	}
	return result
}

func Filter[T any](slice []T, keep func(T) bool) []T {
	result := make([]T, 0, len(slice))
	for _, t := range slice {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

func Identity[T any](t T) T {
	return t
}

// Suggest returns the option closest to text or an empty string if none of them
// is close enough to be a typo
func Suggest(text string, options []string) string {
	// sort to make ties deterministic
	sorted := slices.Clone(options)
	slices.Sort(sorted)

	suggestion := ""
	bestDistance := len(text)
	for _, option := range sorted {
		dist := levenshtein.Distance(text, option, nil)
		if dist < bestDistance {
			suggestion = option
			bestDistance = dist
		}
	}

	return suggestion
}
