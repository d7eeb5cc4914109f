package trpc

import "github.com/routecat/routecat/internal/routes"

// Resolve runs the composition resolver over every router and procedure
// collected across the whole project, rewriting each router's Name
// and each procedure's Router field from a normalized router name into its
// fully-qualified dotted mount path. Call once, after every tRPC file has
// been parsed with ParseFile.
func Resolve(routers []routes.TrpcRouter, procs []routes.TrpcProcedure, edges []routes.RouterMountEdge) ([]routes.TrpcRouter, []routes.TrpcProcedure) {
	incoming := map[string][]routes.RouterMountEdge{}
	add := func(key string, e routes.RouterMountEdge) {
		if key == "" {
			return
		}
		incoming[key] = append(incoming[key], e)
	}
	for _, e := range edges {
		add(e.Target, e)
		add(normalizeIdentifier(e.Property), e)
	}

	cache := map[string]string{}
	resolving := map[string]bool{}

	var resolve func(name string) string
	resolve = func(name string) string {
		if v, ok := cache[name]; ok {
			return v
		}
		if resolving[name] {
			return name
		}
		resolving[name] = true
		defer delete(resolving, name)

		es := incoming[name]
		if len(es) == 0 {
			cache[name] = ""
			return ""
		}
		e := es[0]
		parentPath := resolve(e.Parent)
		path := e.Property
		if parentPath != "" {
			path = parentPath + "." + e.Property
		}
		cache[name] = path
		return path
	}

	outRouters := make([]routes.TrpcRouter, len(routers))
	for i, r := range routers {
		r.Name = resolve(r.Name)
		outRouters[i] = r
	}
	outProcs := make([]routes.TrpcProcedure, len(procs))
	for i, p := range procs {
		p.Router = resolve(p.Router)
		outProcs[i] = p
	}
	return outRouters, outProcs
}
