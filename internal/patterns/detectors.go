package patterns

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routecat/routecat/internal/tsfile"
)

// HasMiddlewareExport reports whether the file exports a symbol named
// "middleware" (as a function declaration or a variable binding). Used only
// as a metadata flag; it never gates route detection.
func HasMiddlewareExport(f *tsfile.File) bool {
	for _, exp := range f.NamedExports() {
		if exp.Name == "middleware" {
			return true
		}
	}
	return false
}

// IsServerAction reports whether the file's first directive prologue
// statement is the literal "use server".
func IsServerAction(f *tsfile.File) bool {
	return f.FirstDirective() == "use server"
}

// trpcAdapterSymbols are import bindings that mark a file as a tRPC
// HTTP-adapter shim rather than a user endpoint. Files that reference one
// of these are excluded from Next.js App/Pages parsing.
var trpcAdapterSymbols = []string{
	"fetchRequestHandler",
	"createNextApiHandler",
	"@trpc/server/adapters",
}

// IsTRPCAdapterFile reports whether the file imports or references a known
// tRPC HTTP-adapter symbol.
func IsTRPCAdapterFile(f *tsfile.File) bool {
	for _, imp := range f.Imports() {
		for _, sym := range trpcAdapterSymbols {
			if strings.Contains(imp, sym) {
				return true
			}
		}
	}
	src := f.SourceText()
	for _, sym := range trpcAdapterSymbols {
		if strings.Contains(src, sym) {
			return true
		}
	}
	return false
}

// IsRouteGroupSegment reports whether part is a parenthesized
// layout-grouping directory `(group)`, which never contributes to a URL.
// The CMS admin catch-all is detected separately by IsAdminCatchAll.
func IsRouteGroupSegment(part string) bool {
	if strings.HasPrefix(part, "(") && strings.HasSuffix(part, ")") {
		return true
	}
	return false
}

// IsAdminCatchAll flags the well-known runtime-computed CMS admin route,
// which the extractor must omit rather than guess a path for.
func IsAdminCatchAll(relPath string) bool {
	return strings.Contains(relPath, "admin/[[...index]]")
}

// MethodLiteral returns the upper-cased HTTP method name if node is a
// string literal or no-substitution template whose value names a
// recognized verb.
func MethodLiteral(f *tsfile.File, node *sitter.Node) (string, bool) {
	if node == nil {
		return "", false
	}
	switch node.Type() {
	case "string", "template_string":
		return NormalizeVerb(tsfile.StripQuotes(f.Text(node)))
	default:
		return "", false
	}
}
