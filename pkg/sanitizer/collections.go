package sanitizer

import "strings"

// FilterEmpty drops blank entries.
func FilterEmpty(slice []string) []string {
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if strings.TrimSpace(item) != "" {
			result = append(result, item)
		}
	}
	return result
}

// Deduplicate keeps the first occurrence of each item.
func Deduplicate[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, item := range slice {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// MapStrings applies fn to every element and returns a new slice.
func MapStrings(slice []string, fn func(string) string) []string {
	result := make([]string, len(slice))
	for i, item := range slice {
		result[i] = fn(item)
	}
	return result
}

// CleanStringSlice applies the standard multi-value pipeline:
// text sanitisation, empty filtering, then deduplication.
func CleanStringSlice(slice []string) []string {
	return Apply(slice,
		func(s []string) []string { return MapStrings(s, Text) },
		FilterEmpty,
		Deduplicate[string],
	)
}
