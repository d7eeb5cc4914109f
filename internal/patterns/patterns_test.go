package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routecat/routecat/internal/tsfile"
)

func TestExtractDynamicSegments(t *testing.T) {
	segs := ExtractDynamicSegments("users/[id]/posts/[...slug]")
	require.Len(t, segs, 2)
	assert.Equal(t, DynamicSegment{Name: "id"}, segs[0])
	assert.Equal(t, DynamicSegment{Name: "slug", IsCatchAll: true}, segs[1])
}

func TestExtractDynamicSegmentsOptionalCatchAll(t *testing.T) {
	segs := ExtractDynamicSegments("docs/[[...path]]")
	require.Len(t, segs, 1)
	assert.Equal(t, DynamicSegment{Name: "path", IsCatchAll: true, IsOptional: true}, segs[0])
}

func TestConvertSegment(t *testing.T) {
	assert.Equal(t, ":id", ConvertSegment("[id]"))
	assert.Equal(t, ":slug*", ConvertSegment("[...slug]"))
	assert.Equal(t, ":path?", ConvertSegment("[[...path]]"))
	assert.Equal(t, "users", ConvertSegment("users"))
}

func TestConvertPath(t *testing.T) {
	assert.Equal(t, "/api/users/:id/posts/:slug*", ConvertPath("/api/users/[id]/posts/[...slug]"))
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"":              "/",
		"api/users":     "/api/users",
		"/api//users//": "/api/users",
		"/":             "/",
		"/api/users/":   "/api/users",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), "input %q", in)
	}
}

func TestIsBodyless(t *testing.T) {
	assert.True(t, IsBodyless("get"))
	assert.True(t, IsBodyless("HEAD"))
	assert.True(t, IsBodyless("DELETE"))
	assert.False(t, IsBodyless("POST"))
	assert.False(t, IsBodyless("PATCH"))
}

func TestNormalizeVerb(t *testing.T) {
	verb, ok := NormalizeVerb(" get ")
	assert.True(t, ok)
	assert.Equal(t, "GET", verb)

	_, ok = NormalizeVerb("TRACE")
	assert.False(t, ok)
}

func TestIsRouteGroupSegment(t *testing.T) {
	assert.True(t, IsRouteGroupSegment("(marketing)"))
	assert.False(t, IsRouteGroupSegment("marketing"))
	assert.False(t, IsRouteGroupSegment("[id]"))
}

func TestIsAdminCatchAll(t *testing.T) {
	assert.True(t, IsAdminCatchAll("app/admin/[[...index]]/route.ts"))
	assert.False(t, IsAdminCatchAll("app/admin/settings/route.ts"))
}

func TestHasMiddlewareExport(t *testing.T) {
	f, err := tsfile.Parse("middleware.ts", []byte(`export function middleware(req) { return NextResponse.next() }
`))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, HasMiddlewareExport(f))
}

func TestIsServerAction(t *testing.T) {
	f, err := tsfile.Parse("actions.ts", []byte(`"use server";
export async function createPost() {}
`))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, IsServerAction(f))
}

func TestIsTRPCAdapterFile(t *testing.T) {
	f, err := tsfile.Parse("route.ts", []byte(`import { fetchRequestHandler } from "@trpc/server/adapters/fetch";

export const GET = (req) => fetchRequestHandler({ req });
`))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, IsTRPCAdapterFile(f))
}

func TestIsTRPCAdapterFileFalseForOrdinaryHandler(t *testing.T) {
	f, err := tsfile.Parse("route.ts", []byte(`export function GET() { return Response.json({}) }
`))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTRPCAdapterFile(f))
}

func TestMethodLiteral(t *testing.T) {
	f, err := tsfile.Parse("router.ts", []byte(`const m = "get";
`))
	require.NoError(t, err)
	defer f.Close()

	decl := f.FindDeclaration("m")
	require.NotNil(t, decl)
	verb, ok := MethodLiteral(f, decl)
	assert.True(t, ok)
	assert.Equal(t, "GET", verb)
}
