// Package schema interprets a validator-schema expression (the fluent
// builder style shared by zod and compatible libraries: `z.object({...})`,
// `z.string()`, modifiers like `.optional()`) and synthesizes an example
// JSON value tree. Unrecognized constructs yield "omit" rather than a
// guessed placeholder: a missing field is acceptable, a wrong one is a bug.
package schema

import (
	"encoding/json"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/routecat/routecat/internal/tsfile"
)

// orderedMap preserves object-literal key order through json.Marshal.
type orderedMap struct {
	keys   []string
	values map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{values: map[string]any{}}
}

func (m *orderedMap) set(k string, v any) {
	if _, exists := m.values[k]; !exists {
		m.keys = append(m.keys, k)
	}
	m.values[k] = v
}

func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	for i, k := range m.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// Interpreter walks schema expression trees within one source file.
type Interpreter struct {
	f *tsfile.File
}

// New creates an Interpreter bound to the given file for text/quote access.
func New(f *tsfile.File) *Interpreter {
	return &Interpreter{f: f}
}

// ExtractBody walks expr and returns its JSON-serialized example value, or
// "", false if the shape could not be determined.
func (in *Interpreter) ExtractBody(expr *sitter.Node) (string, bool) {
	v, ok := in.eval(expr)
	if !ok {
		return "", false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// eval returns the synthesized example value for a schema expression node.
// The boolean is false when the sub-tree is unrecognized and must be
// omitted by the caller rather than replaced with a placeholder.
func (in *Interpreter) eval(expr *sitter.Node) (any, bool) {
	if expr == nil {
		return nil, false
	}
	switch expr.Type() {
	case "call_expression":
		return in.evalCall(expr)
	case "parenthesized_expression":
		inner := tsfile.NamedChildren(expr)
		if len(inner) == 1 {
			return in.eval(inner[0])
		}
		return nil, false
	default:
		return nil, false
	}
}

// evalCall handles one link of the builder chain: either a leaf
// constructor (`z.string()`) or a modifier/leaf applied to a receiver
// (`inner.optional()`).
func (in *Interpreter) evalCall(call *sitter.Node) (any, bool) {
	fn := tsfile.FindChildByFieldName(call, "function")
	if fn == nil || fn.Type() != "member_expression" {
		return nil, false
	}
	object := tsfile.FindChildByFieldName(fn, "object")
	property := tsfile.FindChildByFieldName(fn, "property")
	if object == nil || property == nil {
		return nil, false
	}
	method := in.f.Text(property)
	args := namedArgs(tsfile.FindChildByFieldName(call, "arguments"))

	switch method {
	case "object":
		if len(args) != 1 || args[0].Type() != "object" {
			return nil, false
		}
		return in.evalObject(args[0])
	case "string":
		return "string", true
	case "number":
		return float64(0), true
	case "boolean":
		return false, true
	case "literal":
		if len(args) != 1 {
			return nil, false
		}
		return in.evalLiteralArg(args[0])
	case "enum":
		if len(args) != 1 || args[0].Type() != "array" {
			return nil, false
		}
		items := tsfile.NamedChildren(args[0])
		if len(items) == 0 {
			return nil, false
		}
		return in.evalLiteralArg(items[0])
	case "array":
		if len(args) != 1 {
			return nil, false
		}
		inner, ok := in.eval(args[0])
		if !ok {
			return nil, false
		}
		return []any{inner}, true
	case "default":
		if len(args) != 1 {
			return in.eval(object)
		}
		return in.evalLiteralArg(args[0])
	case "optional", "nullable":
		v, ok := in.eval(object)
		if ok {
			return v, true
		}
		return nil, false
	case "describe", "min", "max", "length", "email", "url", "regex", "trim", "int", "positive", "nonnegative", "nonempty":
		// Non-shape-affecting modifiers: pass through to the receiver's value.
		return in.eval(object)
	default:
		return nil, false
	}
}

func (in *Interpreter) evalObject(obj *sitter.Node) (any, bool) {
	out := newOrderedMap()
	for _, pair := range tsfile.ChildrenOfType(obj, "pair") {
		keyNode := tsfile.FindChildByFieldName(pair, "key")
		valueNode := tsfile.FindChildByFieldName(pair, "value")
		if keyNode == nil || valueNode == nil {
			continue
		}
		key := tsfile.StripQuotes(in.f.Text(keyNode))
		v, ok := in.eval(valueNode)
		if !ok {
			continue // omit the key rather than fabricate a value
		}
		out.set(key, v)
	}
	// json.Marshal on a nil-keys orderedMap still emits "{}", which is valid.
	return out, true
}

func (in *Interpreter) evalLiteralArg(node *sitter.Node) (any, bool) {
	switch node.Type() {
	case "string", "template_string":
		return tsfile.StripQuotes(in.f.Text(node)), true
	case "number":
		var f float64
		if _, err := jsonNumber(in.f.Text(node), &f); err != nil {
			return nil, false
		}
		return f, true
	case "true":
		return true, true
	case "false":
		return false, true
	case "null":
		return nil, true
	case "object":
		return in.evalObject(node)
	case "array":
		items := tsfile.NamedChildren(node)
		out := make([]any, 0, len(items))
		for _, it := range items {
			v, ok := in.evalLiteralArg(it)
			if !ok {
				return nil, false
			}
			out = append(out, v)
		}
		return out, true
	default:
		return nil, false
	}
}

func jsonNumber(text string, out *float64) (int, error) {
	return -1, json.Unmarshal([]byte(text), out)
}

func namedArgs(argsNode *sitter.Node) []*sitter.Node {
	if argsNode == nil {
		return nil
	}
	return tsfile.NamedChildren(argsNode)
}
