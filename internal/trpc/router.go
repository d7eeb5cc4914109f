package trpc

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routecat/routecat/internal/routes"
	"github.com/routecat/routecat/internal/schema"
	"github.com/routecat/routecat/internal/tsfile"
)

// walker accumulates everything found while walking a project's tRPC files,
// keyed in normalized-router-name space throughout.
type walker struct {
	opts    Options
	f       *tsfile.File
	relPath string
	interp  *schema.Interpreter

	procs   []routes.TrpcProcedure
	routers []routes.TrpcRouter
	edges   []routes.RouterMountEdge
}

// normalizeIdentifier strips a trailing "Router" and lowercases the first
// remaining rune. Returns "" when the input was exactly "Router" (or
// empty), signalling the caller to fall through to the next fallback tier.
func normalizeIdentifier(name string) string {
	trimmed := strings.TrimSuffix(name, "Router")
	if trimmed == "" {
		return ""
	}
	return strings.ToLower(trimmed[:1]) + trimmed[1:]
}

// normalizeRouterName derives a router's presentational name: normalize the
// declared identifier, else the file basename, else the containing
// directory name, else the raw declared identifier verbatim.
func normalizeRouterName(declared, filePath string) string {
	if declared != "" {
		if n := normalizeIdentifier(declared); n != "" {
			return n
		}
	}
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if n := normalizeIdentifier(base); n != "" {
		return n
	}
	dir := filepath.Base(filepath.Dir(filePath))
	if n := normalizeIdentifier(dir); n != "" {
		return n
	}
	return declared
}

// walkTopLevel scans a file's top-level statements for router-factory calls
// assigned to an identifier (`const x = router({...})`) or exported as
// default (`export default router({...})`), then walks each one's object
// argument. Inline nested router-factory calls are handled entirely inside
// walkObject and are never visited here.
func (w *walker) walkTopLevel() {
	for _, stmt := range w.f.TopLevelStatements() {
		switch stmt.Type() {
		case "lexical_declaration", "variable_declaration":
			w.walkDeclarators(stmt)
		case "export_statement":
			w.walkExportStatement(stmt)
		}
	}
}

func (w *walker) walkDeclarators(decl *sitter.Node) {
	for _, declarator := range tsfile.ChildrenOfType(decl, "variable_declarator") {
		name := tsfile.FindChildByFieldName(declarator, "name")
		value := tsfile.FindChildByFieldName(declarator, "value")
		if name == nil || value == nil || value.Type() != "call_expression" {
			continue
		}
		if !w.opts.isRouterFactoryCall(w.f, value) {
			continue
		}
		w.registerRouter(w.f.Text(name), value)
	}
}

func (w *walker) walkExportStatement(stmt *sitter.Node) {
	if decl := tsfile.FindChildByFieldName(stmt, "declaration"); decl != nil {
		switch decl.Type() {
		case "lexical_declaration", "variable_declaration":
			w.walkDeclarators(decl)
		}
		return
	}
	if value := tsfile.FindChildByFieldName(stmt, "value"); value != nil && value.Type() == "call_expression" {
		if w.opts.isRouterFactoryCall(w.f, value) {
			w.registerRouter("", value)
		}
	}
}

// registerRouter records one router-factory call site and walks its object
// argument. declared is the source identifier it was assigned to, or "" for
// an anonymous (inline or bare default-export) router.
func (w *walker) registerRouter(declared string, call *sitter.Node) string {
	name := normalizeRouterName(declared, w.relPath)
	object := firstObjectArg(call)

	loc := 1
	if object != nil {
		loc = w.f.EndLine(object) - w.f.StartLine(object) + 1
	}

	w.routers = append(w.routers, routes.TrpcRouter{
		Name:        name,
		Declared:    declared,
		File:        w.relPath,
		Line:        w.f.StartLine(call),
		LinesOfCode: loc,
	})

	if object != nil {
		w.walkObject(name, object)
	}
	return name
}

// walkObject classifies each property of a router's object-literal argument
// as a nested router mount, a procedure definition, or "other".
func (w *walker) walkObject(routerName string, object *sitter.Node) {
	for _, pair := range tsfile.ChildrenOfType(object, "pair") {
		key := tsfile.FindChildByFieldName(pair, "key")
		value := tsfile.FindChildByFieldName(pair, "value")
		if key == nil || value == nil {
			continue
		}
		property := propertyName(w.f, key)
		if property == "" {
			continue
		}

		if w.tryMount(routerName, property, value) {
			continue
		}
		if proc, ok := buildProcedure(w.f, w.interp, value); ok {
			proc.Router = routerName
			proc.Procedure = property
			proc.File = w.relPath
			proc.Line = w.f.StartLine(value)
			w.procs = append(w.procs, proc)
			continue
		}
		w.opts.Logger.log("debug", "%s: unrecognized router property %q, skipping", w.relPath, property)
	}
}

// tryMount records a mount edge and, for an inline nested router, walks it
// immediately; returns false when value isn't a router mount at all.
func (w *walker) tryMount(routerName, property string, value *sitter.Node) bool {
	switch value.Type() {
	case "call_expression":
		if !w.opts.isRouterFactoryCall(w.f, value) {
			return false
		}
		childName := w.registerRouter("", value)
		w.edges = append(w.edges, routes.RouterMountEdge{Parent: routerName, Property: property, Target: childName})
		return true

	case "identifier":
		name := w.f.Text(value)
		isMount := w.opts.isRouterReferenceName(name)
		if !isMount {
			if decl := w.f.FindDeclaration(name); decl != nil && decl.Type() == "call_expression" && w.opts.isRouterFactoryCall(w.f, decl) {
				isMount = true
			}
		}
		if !isMount {
			return false
		}
		target := normalizeRouterName(name, w.relPath)
		w.edges = append(w.edges, routes.RouterMountEdge{Parent: routerName, Property: property, Target: target})
		return true

	default:
		return false
	}
}

func propertyName(f *tsfile.File, key *sitter.Node) string {
	switch key.Type() {
	case "property_identifier", "identifier":
		return f.Text(key)
	case "string":
		return tsfile.StripQuotes(f.Text(key))
	default:
		return ""
	}
}
