// Package nextpages implements the Next.js Pages-Router parser: for each
// `.../pages/api/**/*.{ts,js}` file, it locates the single dispatcher and
// infers the set of accepted HTTP methods from its body.
package nextpages

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

// Parser extracts routes.Route records from Next.js pages/api handlers.
type Parser struct {
	Logger LogFunc
}

// New creates a Pages-Router parser.
func New(logger LogFunc) *Parser {
	return &Parser{Logger: logger}
}

// ParseFile parses one pages/api file and returns zero or more
// NextHandlerRecord values.
func (p *Parser) ParseFile(relPath string, content []byte) ([]routes.NextHandlerRecord, error) {
	if filepath.Base(relPath) == "route.ts" || filepath.Base(relPath) == "route.js" {
		return nil, nil
	}

	p.Logger.log("debug", "Scanning file %s", relPath)

	f, err := tsfile.Parse(relPath, content)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if patterns.IsTRPCAdapterFile(f) {
		return nil, nil
	}

	urlPath, segments := derivePath(relPath)

	handler, paramName := locateHandler(f)
	if handler == nil {
		return nil, nil
	}

	methods := detectMethods(f, handler, paramName)
	if len(methods) == 0 {
		return nil, nil
	}

	hasMiddleware := patterns.HasMiddlewareExport(f)
	isServerAction := patterns.IsServerAction(f)
	interp := schema.New(f)

	var out []routes.NextHandlerRecord
	for _, method := range methods {
		rec := routes.NextHandlerRecord{
			Method:          method,
			Path:            urlPath,
			FilePath:        relPath,
			StartLine:       f.StartLine(handler),
			DynamicSegments: segments,
			IsDynamic:       len(segments) > 0,
			HasMiddleware:   hasMiddleware,
			IsServerAction:  isServerAction,
		}
		if !patterns.IsBodyless(method) {
			if bodyExample, ok := extractBodyExample(f, interp, handler); ok {
				rec.BodyExample = bodyExample
				rec.HasBody = true
			}
		}
		p.Logger.log("debug", "Found %s handler at %s (line %d)", method, urlPath, rec.StartLine)
		out = append(out, rec)
	}
	return out, nil
}

// locateHandler finds the dispatcher: the default export's declaration, or
// failing that the named export "handler". Also returns the handler's
// first parameter name (typically "req"), when statically determinable.
func locateHandler(f *tsfile.File) (*sitter.Node, string) {
	if def := f.DefaultExport(); def != nil {
		fn := def
		if def.Type() == "identifier" {
			if resolved := f.FindDeclaration(f.Text(def)); resolved != nil {
				fn = resolved
			}
		}
		return fn, firstParamName(f, fn)
	}
	for _, exp := range f.NamedExports() {
		if exp.Name == "handler" && exp.Decl != nil {
			return exp.Decl, firstParamName(f, exp.Decl)
		}
	}
	return nil, ""
}

func firstParamName(f *tsfile.File, fn *sitter.Node) string {
	if fn == nil {
		return ""
	}
	params := tsfile.FindChildByFieldName(fn, "parameters")
	if params == nil {
		return ""
	}
	first := tsfile.NamedChildren(params)
	if len(first) == 0 {
		return ""
	}
	p := first[0]
	if p.Type() == "identifier" {
		return f.Text(p)
	}
	if name := tsfile.FindChildByFieldName(p, "pattern"); name != nil {
		return f.Text(name)
	}
	return ""
}

// reqIdentifiers is the base set of identifiers that plausibly bind the
// request object, extended with the handler's own first parameter name.
func reqIdentifiers(paramName string) map[string]bool {
	set := map[string]bool{"req": true, "request": true}
	if paramName != "" {
		set[paramName] = true
	}
	return set
}

func detectMethods(f *tsfile.File, handler *sitter.Node, paramName string) []string {
	reqNames := reqIdentifiers(paramName)
	found := map[string]bool{}
	var order []string
	add := func(m string) {
		method, ok := patterns.NormalizeVerb(m)
		if !ok || found[method] {
			return
		}
		found[method] = true
		order = append(order, method)
	}

	tsfile.Walk(handler, func(n *sitter.Node) {
		switch n.Type() {
		case "binary_expression":
			handleBinaryExpression(f, n, reqNames, add)
		case "switch_statement":
			handleSwitchStatement(f, n, reqNames, add)
		}
	})

	for _, exp := range f.NamedExports() {
		if exp.Name != "methods" {
			continue
		}
		arr := exp.Decl
		if arr != nil && arr.Type() == "variable_declarator" {
			arr = tsfile.FindChildByFieldName(arr, "value")
		}
		if arr == nil || arr.Type() != "array" {
			continue
		}
		for _, item := range tsfile.NamedChildren(arr) {
			if item.Type() == "string" || item.Type() == "template_string" {
				add(tsfile.StripQuotes(f.Text(item)))
			}
		}
	}

	return order
}

func handleBinaryExpression(f *tsfile.File, n *sitter.Node, reqNames map[string]bool, add func(string)) {
	op := binaryOperator(f, n)
	if op != "===" && op != "==" {
		return
	}
	left := tsfile.FindChildByFieldName(n, "left")
	right := tsfile.FindChildByFieldName(n, "right")
	if left == nil || right == nil {
		return
	}
	if isReqMethodAccess(f, left, reqNames) {
		if m, ok := patterns.MethodLiteral(f, right); ok {
			add(m)
		}
	} else if isReqMethodAccess(f, right, reqNames) {
		if m, ok := patterns.MethodLiteral(f, left); ok {
			add(m)
		}
	}
}

func binaryOperator(f *tsfile.File, n *sitter.Node) string {
	left := tsfile.FindChildByFieldName(n, "left")
	right := tsfile.FindChildByFieldName(n, "right")
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if sameSpan(c, left) || sameSpan(c, right) {
			continue
		}
		return f.Text(c)
	}
	return ""
}

func sameSpan(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

func isReqMethodAccess(f *tsfile.File, n *sitter.Node, reqNames map[string]bool) bool {
	if n.Type() != "member_expression" {
		return false
	}
	object := tsfile.FindChildByFieldName(n, "object")
	property := tsfile.FindChildByFieldName(n, "property")
	if object == nil || property == nil {
		return false
	}
	return object.Type() == "identifier" && reqNames[f.Text(object)] && f.Text(property) == "method"
}

func handleSwitchStatement(f *tsfile.File, n *sitter.Node, reqNames map[string]bool, add func(string)) {
	value := tsfile.FindChildByFieldName(n, "value")
	if value != nil && value.Type() == "parenthesized_expression" {
		if inner := tsfile.NamedChildren(value); len(inner) == 1 {
			value = inner[0]
		}
	}
	if value == nil || !isReqMethodAccess(f, value, reqNames) {
		return
	}
	body := tsfile.FindChildByType(n, "switch_body")
	if body == nil {
		body = n
	}
	for _, c := range tsfile.ChildrenOfType(body, "switch_case") {
		label := tsfile.FindChildByFieldName(c, "value")
		if label == nil {
			continue
		}
		if m, ok := patterns.MethodLiteral(f, label); ok {
			add(m)
		}
	}
}

// extractBodyExample mirrors nextapp's schema-call detection.
func extractBodyExample(f *tsfile.File, interp *schema.Interpreter, handler *sitter.Node) (string, bool) {
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

// derivePath maps a pages/api file path to a URL pattern. Unlike the app
// router, pages/api/index.ts maps to /api, not stripped further.
func derivePath(relPath string) (string, []patterns.DynamicSegment) {
	rel := filepath.ToSlash(relPath)
	rel = strings.TrimPrefix(rel, "src/")
	rel = strings.TrimPrefix(rel, "pages/")
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	rel = strings.TrimSuffix(rel, "/index")
	if rel == "index" {
		rel = ""
	}

	var urlParts []string
	var segments []patterns.DynamicSegment
	for _, part := range strings.Split(rel, "/") {
		if part == "" {
			continue
		}
		if segs := patterns.ExtractDynamicSegments(part); len(segs) > 0 {
			segments = append(segments, segs[0])
		}
		urlParts = append(urlParts, patterns.ConvertSegment(part))
	}
	return patterns.NormalizePath(strings.Join(urlParts, "/")), segments
}
