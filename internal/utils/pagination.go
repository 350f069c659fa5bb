// Package utils provides small parsing helpers shared by the HTTP layer.
package utils

import "strconv"

// AtoiDefault parses s as a base-10 integer, returning def when s is empty or
// not a valid integer.
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
