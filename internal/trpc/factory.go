package trpc

import (
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routecat/routecat/internal/tsfile"
)

// DefaultRouterFactories is the built-in factory identifier list: bare
// calls to these names, or a `<x>.router` property access, mark a call
// site as a tRPC router.
var DefaultRouterFactories = []string{"router", "createTRPCRouter"}

// Options configures router-factory and router-reference detection.
type Options struct {
	// RouterFactories replaces DefaultRouterFactories when non-empty.
	RouterFactories []string
	// RouterIdentifierPattern additionally flags identifiers (typically by
	// naming convention, e.g. `.*Router$`) as router references even when
	// their declaration isn't visible in this file.
	RouterIdentifierPattern *regexp.Regexp
	Logger                  LogFunc
}

// LogFunc is a minimal leveled logger; nil suppresses output.
type LogFunc func(level, format string, args ...any)

func (f LogFunc) log(level, format string, args ...any) {
	if f != nil {
		f(level, format, args...)
	}
}

func (o Options) factories() []string {
	if len(o.RouterFactories) > 0 {
		return o.RouterFactories
	}
	return DefaultRouterFactories
}

// isRouterFactoryCall reports whether call's callee matches a configured
// factory identifier (bare call) or a `<anything>.router(...)` property
// access.
func (o Options) isRouterFactoryCall(f *tsfile.File, call *sitter.Node) bool {
	fn := tsfile.FindChildByFieldName(call, "function")
	if fn == nil {
		return false
	}
	switch fn.Type() {
	case "identifier":
		name := f.Text(fn)
		for _, factory := range o.factories() {
			if name == factory {
				return true
			}
		}
		return false
	case "member_expression":
		property := tsfile.FindChildByFieldName(fn, "property")
		return property != nil && f.Text(property) == "router"
	default:
		return false
	}
}

// isRouterReferenceName reports whether name matches the configured
// router-identifier naming convention (e.g. variables ending in "Router").
func (o Options) isRouterReferenceName(name string) bool {
	if o.RouterIdentifierPattern == nil {
		return strings.HasSuffix(name, "Router")
	}
	return o.RouterIdentifierPattern.MatchString(name)
}

// firstObjectArg returns the object-literal first argument of a call, or
// nil if the call has no arguments or the first argument isn't an object.
func firstObjectArg(call *sitter.Node) *sitter.Node {
	args := tsfile.FindChildByFieldName(call, "arguments")
	if args == nil {
		return nil
	}
	items := tsfile.NamedChildren(args)
	if len(items) == 0 || items[0].Type() != "object" {
		return nil
	}
	return items[0]
}
