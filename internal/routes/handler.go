package routes

import (
	"path/filepath"

	"github.com/routecat/routecat/internal/patterns"
)

// NextHandlerRecord is the shared internal shape produced by both Next.js
// parsers before normalization. Diagnostic-only fields (UsesDB,
// HasErrorHandling, HasValidation) are intentionally not surfaced on the
// public Route: they are internal fields only, never part of the emitted
// contract, and neither Next.js parser sets them.
type NextHandlerRecord struct {
	Method          string
	Path            string // already converted to colon form and normalized
	FilePath        string
	StartLine       int
	DynamicSegments []patterns.DynamicSegment
	IsDynamic       bool
	HasMiddleware   bool
	IsServerAction  bool

	HandlerLines     int
	UsesDB           bool
	HasErrorHandling bool
	HasValidation    bool

	Headers     map[string]string
	QueryParams map[string]string
	BodyExample string
	HasBody     bool
}

// Normalizer projects internal per-parser records into the public Route
// shape: normalize the path once more, drop empty headers/query/body,
// format the display name, and materialize an absolute file path.
type Normalizer struct {
	// WorkspaceRoot is prepended to relative file paths to materialize the
	// absolute FilePath on the emitted Route.
	WorkspaceRoot string
}

// NormalizeNextHandler converts one NextHandlerRecord into a Route.
func (n Normalizer) NormalizeNextHandler(h NextHandlerRecord, routeType Type) Route {
	path := patterns.NormalizePath(h.Path)
	r := Route{
		Method:   h.Method,
		Path:     path,
		FilePath: n.AbsPath(h.FilePath),
		Type:     routeType,
	}
	r.Name = r.Method + " " + r.Path
	if len(h.Headers) > 0 {
		r.Headers = h.Headers
	}
	if len(h.QueryParams) > 0 {
		r.Query = h.QueryParams
	}
	if h.HasBody && !patterns.IsBodyless(h.Method) {
		r.Body = h.BodyExample
	}
	return r
}

// AbsPath materializes rel as an absolute path under WorkspaceRoot, used by
// every parser's normalization step to fill Route.FilePath.
func (n Normalizer) AbsPath(rel string) string {
	if n.WorkspaceRoot == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(n.WorkspaceRoot, rel)
}
