package trpc

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routecat/routecat/internal/routes"
	"github.com/routecat/routecat/internal/schema"
	"github.com/routecat/routecat/internal/tsfile"
)

// visibilityByBase maps a procedure builder's base identifier to its
// declared visibility tag.
var visibilityByBase = map[string]routes.Visibility{
	"publicProcedure":    routes.VisibilityPublic,
	"privateProcedure":   routes.VisibilityPrivate,
	"protectedProcedure": routes.VisibilityProtected,
	"adminProcedure":     routes.VisibilityAdmin,
}

// buildProcedure walks a builder-chain expression from outermost call
// inward, recording .input/.output/.query/.mutation links. Returns
// ok=false when no query/mutation link is found — the property is then not
// a procedure and the caller skips it.
func buildProcedure(f *tsfile.File, interp *schema.Interpreter, expr *sitter.Node) (routes.TrpcProcedure, bool) {
	var proc routes.TrpcProcedure
	var schemaExpr *sitter.Node
	var methodSet bool
	baseText := ""

	node := expr
	for node != nil {
		if node.Type() != "call_expression" {
			baseText = f.Text(node)
			break
		}
		fn := tsfile.FindChildByFieldName(node, "function")
		if fn == nil || fn.Type() != "member_expression" {
			baseText = f.Text(node)
			break
		}
		object := tsfile.FindChildByFieldName(fn, "object")
		property := tsfile.FindChildByFieldName(fn, "property")
		if object == nil || property == nil {
			baseText = f.Text(node)
			break
		}
		args := tsfile.NamedChildren(tsfile.FindChildByFieldName(node, "arguments"))

		switch f.Text(property) {
		case "input":
			proc.HasInput = true
			if len(args) > 0 {
				schemaExpr = args[0]
			}
		case "output":
			proc.HasOutput = true
		case "query":
			proc.Method = routes.ProcQuery
			methodSet = true
		case "mutation":
			proc.Method = routes.ProcMutation
			methodSet = true
		}
		node = object
	}

	if !methodSet {
		return routes.TrpcProcedure{}, false
	}

	proc.Visibility = routes.VisibilityUnknown
	if v, ok := visibilityByBase[baseText]; ok {
		proc.Visibility = v
	}

	if proc.HasInput && schemaExpr != nil {
		if body, ok := interp.ExtractBody(schemaExpr); ok {
			proc.InputJSON = body
			proc.HasBody = true
		}
	}

	return proc, true
}
