package trpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routecat/routecat/internal/routes"
)

func TestResolveRootRouterHasEmptyPath(t *testing.T) {
	routers := []routes.TrpcRouter{{Name: "app"}}
	procs := []routes.TrpcProcedure{{Router: "app", Procedure: "health"}}

	outRouters, outProcs := Resolve(routers, procs, nil)
	require.Len(t, outRouters, 1)
	assert.Equal(t, "", outRouters[0].Name)
	assert.Equal(t, "", outProcs[0].Router)
}

func TestResolveNestedDottedPath(t *testing.T) {
	routers := []routes.TrpcRouter{{Name: "app"}, {Name: "post"}}
	procs := []routes.TrpcProcedure{{Router: "post", Procedure: "create"}}
	edges := []routes.RouterMountEdge{{Parent: "app", Property: "post", Target: "post"}}

	_, outProcs := Resolve(routers, procs, edges)
	assert.Equal(t, "post", outProcs[0].Router)
}

func TestResolveDeeplyNestedPath(t *testing.T) {
	routers := []routes.TrpcRouter{{Name: "app"}, {Name: "post"}, {Name: "comment"}}
	procs := []routes.TrpcProcedure{{Router: "comment", Procedure: "list"}}
	edges := []routes.RouterMountEdge{
		{Parent: "app", Property: "post", Target: "post"},
		{Parent: "post", Property: "comment", Target: "comment"},
	}

	_, outProcs := Resolve(routers, procs, edges)
	assert.Equal(t, "post.comment", outProcs[0].Router)
}

func TestResolveIsCycleTolerant(t *testing.T) {
	procs := []routes.TrpcProcedure{{Router: "a", Procedure: "x"}}
	edges := []routes.RouterMountEdge{
		{Parent: "b", Property: "a", Target: "a"},
		{Parent: "a", Property: "b", Target: "b"},
	}

	assert.NotPanics(t, func() {
		Resolve(nil, procs, edges)
	})
}

func TestResolveUnmountedRouterResolvesToEmptyPath(t *testing.T) {
	procs := []routes.TrpcProcedure{{Router: "orphan", Procedure: "list"}}
	_, outProcs := Resolve(nil, procs, nil)
	assert.Equal(t, "", outProcs[0].Router)
}
