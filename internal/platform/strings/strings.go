// Package strings holds small string helpers the services share
package strings

import std "strings"

// FirstNonEmpty returns the first argument with non whitespace content
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if std.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalizes a mount path like "assistant/" to "/assistant".
// Panics when nothing is left after trimming
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// ContainsFold reports whether sub occurs in s ignoring case
func ContainsFold(s, sub string) bool {
	return std.Contains(std.ToLower(s), std.ToLower(sub))
}

// Clip shortens s to at most n runes, marking the cut with "..."
func Clip(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SQLNull returns nil for blank strings so the column stores NULL
func SQLNull(s string) any {
	if std.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// Deref returns "" for a nil pointer
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
