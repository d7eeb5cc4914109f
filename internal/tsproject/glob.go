package tsproject

import (
	"path/filepath"
	"strings"
)

// MatchGlob reports whether relPath (slash-separated, relative to the
// workspace root) matches pattern. Patterns support `**` (any number of
// path components, matched component-wise) and brace groups like
// `route.{ts,js}`.
func MatchGlob(pattern, relPath string) bool {
	for _, alt := range expandBraces(pattern) {
		if matchParts(splitPath(alt), splitPath(relPath)) {
			return true
		}
	}
	return false
}

// expandBraces expands the first brace group in pattern into one pattern
// per alternative. Patterns in this codebase carry at most one group.
func expandBraces(pattern string) []string {
	start := strings.IndexByte(pattern, '{')
	if start < 0 {
		return []string{pattern}
	}
	end := strings.IndexByte(pattern[start:], '}')
	if end < 0 {
		return []string{pattern}
	}
	end += start
	prefix := pattern[:start]
	suffix := pattern[end+1:]
	alts := strings.Split(pattern[start+1:end], ",")
	out := make([]string, 0, len(alts))
	for _, a := range alts {
		out = append(out, prefix+a+suffix)
	}
	return out
}

func matchParts(patternParts, pathParts []string) bool {
	if len(patternParts) == 0 {
		return len(pathParts) == 0
	}

	if patternParts[0] == "**" {
		rest := patternParts[1:]
		for i := 0; i <= len(pathParts); i++ {
			if matchParts(rest, pathParts[i:]) {
				return true
			}
		}
		return false
	}

	if len(pathParts) == 0 {
		return false
	}

	matched, _ := filepath.Match(patternParts[0], pathParts[0])
	if !matched {
		return false
	}
	return matchParts(patternParts[1:], pathParts[1:])
}

func splitPath(p string) []string {
	p = filepath.ToSlash(p)
	var parts []string
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
