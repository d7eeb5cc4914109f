// Package nextapp implements the Next.js App-Router parser: for each
// `.../app/**/route.{ts,js}` file, it maps the on-disk path to a URL
// pattern and enumerates exported verb-named handlers.
package nextapp

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routecat/routecat/internal/patterns"
	"github.com/routecat/routecat/internal/routes"
	"github.com/routecat/routecat/internal/schema"
	"github.com/routecat/routecat/internal/tsfile"
)

// LogFunc is a minimal leveled logger; nil suppresses output.
type LogFunc func(level, format string, args ...any)

func (f LogFunc) log(level, format string, args ...any) {
	if f != nil {
		f(level, format, args...)
	}
}

// Parser extracts routes.Route records from Next.js app-router files.
type Parser struct {
	Logger LogFunc
}

// New creates an App-Router parser.
func New(logger LogFunc) *Parser {
	return &Parser{Logger: logger}
}

// ParseFile parses one route.{ts,js} file and returns zero or more
// NextHandlerRecord values. relPath is workspace-root-relative and uses
// forward slashes. A file that yields zero handlers is silently dropped by
// the caller; a per-file parse error is returned for the caller to log and
// skip, never aborting the overall run.
func (p *Parser) ParseFile(relPath string, content []byte) ([]routes.NextHandlerRecord, error) {
	p.Logger.log("debug", "Scanning file %s", relPath)

	f, err := tsfile.Parse(relPath, content)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if patterns.IsTRPCAdapterFile(f) {
		return nil, nil
	}

	urlPath, segments, ok := derivePath(relPath)
	if !ok {
		return nil, nil
	}

	hasMiddleware := patterns.HasMiddlewareExport(f)
	isServerAction := patterns.IsServerAction(f)
	interp := schema.New(f)

	var out []routes.NextHandlerRecord
	seen := map[string]bool{}

	addHandler := func(method string, node *sitter.Node) {
		method, ok := patterns.NormalizeVerb(method)
		if !ok || seen[method] {
			return
		}
		seen[method] = true

		rec := routes.NextHandlerRecord{
			Method:          method,
			Path:            urlPath,
			FilePath:        relPath,
			DynamicSegments: segments,
			IsDynamic:       len(segments) > 0,
			HasMiddleware:   hasMiddleware,
			IsServerAction:  isServerAction,
		}
		if node != nil {
			rec.StartLine = f.StartLine(node)
		}

		if !patterns.IsBodyless(method) {
			if bodyExample, ok := extractBodyExample(f, interp, node); ok {
				rec.BodyExample = bodyExample
				rec.HasBody = true
			}
		}

		p.Logger.log("debug", "Found %s handler at %s (line %d)", method, urlPath, rec.StartLine)
		out = append(out, rec)
	}

	for _, exp := range f.NamedExports() {
		if exp.Name == "methods" {
			for _, m := range methodsArrayLiterals(f, exp.Decl) {
				addHandler(m, f.Root)
			}
			continue
		}
		if _, ok := patterns.NormalizeVerb(exp.Name); ok {
			addHandler(exp.Name, decisionNode(exp))
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func decisionNode(exp tsfile.ExportedDecl) *sitter.Node {
	if exp.Decl != nil {
		return exp.Decl
	}
	return exp.Node
}

// methodsArrayLiterals reads string literals out of a `methods` array
// export (implicit multi-method handler; the handler node is the file
// itself, so no per-method line number is meaningful).
func methodsArrayLiterals(f *tsfile.File, decl *sitter.Node) []string {
	if decl != nil && decl.Type() == "variable_declarator" {
		decl = tsfile.FindChildByFieldName(decl, "value")
	}
	if decl == nil || decl.Type() != "array" {
		return nil
	}
	var out []string
	for _, item := range tsfile.NamedChildren(decl) {
		if item.Type() == "string" || item.Type() == "template_string" {
			out = append(out, tsfile.StripQuotes(f.Text(item)))
		}
	}
	return out
}

// extractBodyExample looks in handler for a call of the form
// `<schema>.parse(<expr>)` or `<schema>.safeParse(<expr>)` and interprets
// the resolved schema expression.
func extractBodyExample(f *tsfile.File, interp *schema.Interpreter, handler *sitter.Node) (string, bool) {
	if handler == nil {
		return "", false
	}
	var schemaExpr *sitter.Node
	tsfile.Walk(handler, func(n *sitter.Node) {
		if schemaExpr != nil || n.Type() != "call_expression" {
			return
		}
		fn := tsfile.FindChildByFieldName(n, "function")
		if fn == nil || fn.Type() != "member_expression" {
			return
		}
		property := tsfile.FindChildByFieldName(fn, "property")
		if property == nil {
			return
		}
		switch f.Text(property) {
		case "parse", "safeParse":
		default:
			return
		}
		object := tsfile.FindChildByFieldName(fn, "object")
		if object == nil || object.Type() != "identifier" {
			return
		}
		schemaExpr = f.FindDeclaration(f.Text(object))
	})
	if schemaExpr == nil {
		return "", false
	}
	return interp.ExtractBody(schemaExpr)
}

// derivePath maps an app-router file path to a URL pattern and its dynamic
// segments. Parenthesized route-group directories are dropped from the URL.
// Returns ok=false for files that must be skipped entirely: paths outside
// app/, files not named route.{ts,js}, and the runtime-computed CMS admin
// catch-all.
func derivePath(relPath string) (string, []patterns.DynamicSegment, bool) {
	rel := filepath.ToSlash(relPath)
	rel = strings.TrimPrefix(rel, "src/")
	if !strings.HasPrefix(rel, "app/") && rel != "app" {
		return "", nil, false
	}
	rel = strings.TrimPrefix(rel, "app/")

	base := filepath.Base(rel)
	if base != "route.ts" && base != "route.js" {
		return "", nil, false
	}
	dir := strings.TrimSuffix(rel, "/"+base)
	if dir == rel {
		dir = "" // route.ts directly under app/
	}

	if patterns.IsAdminCatchAll(dir) {
		return "", nil, false
	}

	var urlParts []string
	var segments []patterns.DynamicSegment
	for _, part := range strings.Split(dir, "/") {
		if part == "" || patterns.IsRouteGroupSegment(part) {
			continue
		}
		if seg, ok := dynamicSegmentOf(part); ok {
			segments = append(segments, seg)
		}
		urlParts = append(urlParts, patterns.ConvertSegment(part))
	}

	return patterns.NormalizePath(strings.Join(urlParts, "/")), segments, true
}

func dynamicSegmentOf(part string) (patterns.DynamicSegment, bool) {
	segs := patterns.ExtractDynamicSegments(part)
	if len(segs) == 0 {
		return patterns.DynamicSegment{}, false
	}
	return segs[0], true
}
