package patterns

import "strings"

// DynamicSegment describes one bracketed directory component of a Next.js
// file-routed path.
type DynamicSegment struct {
	Name       string
	IsCatchAll bool
	IsOptional bool
}

// ExtractDynamicSegments scans a slash-separated relative URL pattern for
// bracketed directory names and returns them in source (left-to-right)
// order. `[x]` is a required parameter, `[...x]` a catch-all, `[[...x]]`
// an optional catch-all.
func ExtractDynamicSegments(relPath string) []DynamicSegment {
	var segs []DynamicSegment
	for _, part := range strings.Split(relPath, "/") {
		if part == "" {
			continue
		}
		if seg, ok := parseSegment(part); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

func parseSegment(part string) (DynamicSegment, bool) {
	switch {
	case strings.HasPrefix(part, "[[...") && strings.HasSuffix(part, "]]"):
		return DynamicSegment{Name: part[5 : len(part)-2], IsCatchAll: true, IsOptional: true}, true
	case strings.HasPrefix(part, "[...") && strings.HasSuffix(part, "]"):
		return DynamicSegment{Name: part[4 : len(part)-1], IsCatchAll: true}, true
	case strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]"):
		return DynamicSegment{Name: part[1 : len(part)-1]}, true
	default:
		return DynamicSegment{}, false
	}
}

// ConvertSegment converts one bracketed directory component to its colon
// form: `[x]`->`:x`, `[...x]`->`:x*`, `[[...x]]`->`:x?`. Non-dynamic
// components are returned unchanged.
func ConvertSegment(part string) string {
	seg, ok := parseSegment(part)
	if !ok {
		return part
	}
	switch {
	case seg.IsCatchAll && seg.IsOptional:
		return ":" + seg.Name + "?"
	case seg.IsCatchAll:
		return ":" + seg.Name + "*"
	default:
		return ":" + seg.Name
	}
}

// ConvertPath applies ConvertSegment to every component of a slash-separated
// relative path, left to right, once per segment.
func ConvertPath(relPath string) string {
	parts := strings.Split(relPath, "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = ConvertSegment(p)
	}
	return strings.Join(parts, "/")
}

// NormalizePath collapses duplicate slashes, strips a trailing slash (except
// for the bare root), and ensures a single leading slash. The empty string
// normalizes to "/".
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		p = "/"
	}
	return p
}
