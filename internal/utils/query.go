// Package utils provides small, generic helpers shared across layers. Nothing
// here knows about leads, agents, or HTTP.
package utils

import "strconv"

// AtoiDefault parses s as a base-10 int, falling back to def when s is empty
// or not a valid integer. Leading or trailing whitespace counts as invalid;
// callers decide whether to trim first.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ClampNonNegative floors n at zero. Query parameters like "limit" use zero
// as the "use the default" sentinel, so negatives collapse into it.
func ClampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
