package routes

import "encoding/json"

// Visibility tags a tRPC procedure's declared access-control builder.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
	VisibilityAdmin     Visibility = "admin"
	VisibilityUnknown   Visibility = "unknown"
)

// ProcMethod is a tRPC procedure's builder-chain method.
type ProcMethod string

const (
	ProcQuery    ProcMethod = "query"
	ProcMutation ProcMethod = "mutation"
)

// TrpcProcedure is one leaf of a tRPC router's object literal. Router holds
// the router's normalized name (the declared identifier with a trailing
// "Router" stripped and the first letter lowercased, or a file/directory
// fallback) until the composition resolver rewrites it to the router's
// fully-qualified dotted path.
type TrpcProcedure struct {
	Router     string
	Procedure  string
	Method     ProcMethod
	Visibility Visibility
	File       string
	Line       int
	HasInput   bool
	HasOutput  bool
	InputJSON  string
	HasBody    bool
}

// TrpcRouter is one router-factory call site. Name follows the same
// rewrite rule as TrpcProcedure.Router.
type TrpcRouter struct {
	Name        string
	Declared    string // the source identifier the router was assigned to, pre-rewrite
	File        string
	Line        int
	LinesOfCode int
}

// RouterMountEdge is a named reference from a parent router to a child
// router or sub-router identifier, recorded during the object-literal walk
// but not descended into until the composition resolver runs.
type RouterMountEdge struct {
	Parent   string
	Property string
	Target   string
}

// NormalizeTrpcProcedure emits the Route for one resolved procedure,
// applying the GET/POST body-vs-query projection rule.
func NormalizeTrpcProcedure(p TrpcProcedure) Route {
	var path string
	if p.Router != "" {
		path = "/api/trpc/" + p.Router + "." + p.Procedure
	} else {
		path = "/api/trpc/" + p.Procedure
	}

	method := "POST"
	if p.Method == ProcQuery {
		method = "GET"
	}

	r := Route{
		Method:   method,
		Path:     path,
		FilePath: p.File,
		Type:     TypeTRPC,
		Headers:  map[string]string{"Content-Type": "application/json"},
	}
	r.Name = r.Method + " " + r.Path

	if !p.HasBody || p.InputJSON == "" {
		return r
	}

	if method == "GET" {
		if q := projectToQuery(p.InputJSON); len(q) > 0 {
			r.Query = q
		}
		return r
	}

	r.Body = p.InputJSON
	return r
}

// projectToQuery flattens a JSON object's primitive-valued top-level keys
// into string-valued query parameters; object-valued keys are dropped.
func projectToQuery(bodyJSON string) map[string]string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(bodyJSON), &obj); err != nil {
		return nil
	}
	out := map[string]string{}
	for k, raw := range obj {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		switch vv := v.(type) {
		case string:
			out[k] = vv
		case float64:
			out[k] = formatNumber(vv)
		case bool:
			out[k] = formatBool(vv)
		default:
			// object/array/null: dropped, not projected.
		}
	}
	return out
}

func formatNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
