// Package patterns holds the stateless helpers shared by both Next.js
// parsers: verb tables, dynamic-segment extraction, path normalization,
// and the middleware/server-action/tRPC-adapter marker detectors. None of
// this package holds per-parse state.
package patterns

import "strings"

// HTTPVerbs is the set of recognized HTTP method names, upper-cased.
var HTTPVerbs = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"HEAD":    true,
	"OPTIONS": true,
}

// bodylessMethods never carry a request/response body example by convention.
var bodylessMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"OPTIONS": true,
	"DELETE":  true,
}

// IsBodyless reports whether method conventionally carries no body.
func IsBodyless(method string) bool {
	return bodylessMethods[strings.ToUpper(method)]
}

// NormalizeVerb upper-cases s and reports whether it names a recognized verb.
func NormalizeVerb(s string) (string, bool) {
	up := strings.ToUpper(strings.TrimSpace(s))
	return up, HTTPVerbs[up]
}
