// Package routes defines the shared public Route record and the internal
// per-parser records that feed it, plus the Normalizer that projects any
// parser's internal record into the stable public shape.
package routes

// Type tags a route's origin parser.
type Type string

const (
	TypeNextApp  Type = "nextjs-app"
	TypeNextPage Type = "nextjs-page"
	TypeTRPC     Type = "trpc"
)

// Route is the public output record: method, URL path, originating file,
// and shape hints for body and query.
type Route struct {
	Name     string            `json:"name"`
	Method   string            `json:"method"`
	Path     string            `json:"path"`
	FilePath string            `json:"filePath"`
	Type     Type              `json:"type"`
	Headers  map[string]string `json:"headers,omitempty"`
	Query    map[string]string `json:"query,omitempty"`
	Body     string            `json:"body,omitempty"`
}

// DynamicSegment mirrors patterns.DynamicSegment with JSON tags, for callers
// that do not depend on the pattern-library package. The public Route
// record itself carries no segment list.
type DynamicSegment struct {
	Name       string `json:"name"`
	IsCatchAll bool   `json:"isCatchAll,omitempty"`
	IsOptional bool   `json:"isOptional,omitempty"`
}
