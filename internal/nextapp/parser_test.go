package nextapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileSimpleGet(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/health/route.ts", []byte(`
export function GET() {
  return Response.json({ ok: true })
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "GET", recs[0].Method)
	assert.Equal(t, "/api/health", recs[0].Path)
	assert.False(t, recs[0].IsDynamic)
}

func TestParseFileMultipleVerbs(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/users/route.ts", []byte(`
export async function GET() { return Response.json([]) }
export async function POST(req) {
  const body = userSchema.parse(await req.json())
  return Response.json(body)
}

const userSchema = z.object({ name: z.string() })
`))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	byMethod := map[string]int{}
	for i, r := range recs {
		byMethod[r.Method] = i
	}
	post := recs[byMethod["POST"]]
	assert.True(t, post.HasBody)
	assert.JSONEq(t, `{"name":"string"}`, post.BodyExample)

	get := recs[byMethod["GET"]]
	assert.False(t, get.HasBody)
}

func TestParseFileDynamicSegment(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/users/[id]/route.ts", []byte(`
export function GET(req, { params }) {
  return Response.json({ id: params.id })
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "/api/users/:id", recs[0].Path)
	assert.True(t, recs[0].IsDynamic)
	require.Len(t, recs[0].DynamicSegments, 1)
	assert.Equal(t, "id", recs[0].DynamicSegments[0].Name)
}

func TestParseFileCatchAllSegment(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/files/[...path]/route.ts", []byte(`
export function GET() { return new Response() }
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "/api/files/:path*", recs[0].Path)
}

func TestParseFileRouteGroupsIgnored(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/(marketing)/api/newsletter/route.ts", []byte(`
export function POST() { return new Response() }
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "/api/newsletter", recs[0].Path)
}

func TestParseFileMethodsArrayExport(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/widgets/route.ts", []byte(`
export const methods = ["GET", "POST"]
`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestParseFileNonRouteFileIgnored(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/users/utils.ts", []byte(`
export function helper() {}
`))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestParseFileTRPCAdapterFileSkipped(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/trpc/[trpc]/route.ts", []byte(`
import { fetchRequestHandler } from "@trpc/server/adapters/fetch";

export const GET = (req) => fetchRequestHandler({ req });
`))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestParseFileAdminCatchAllSkipped(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/admin/[[...index]]/route.ts", []byte(`
export function GET() { return new Response() }
`))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestParseFileGetNeverCarriesBody(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/search/route.ts", []byte(`
export function GET(req) {
  const q = querySchema.parse(req.nextUrl.searchParams)
  return Response.json({})
}

const querySchema = z.object({ q: z.string() })
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.False(t, recs[0].HasBody)
	assert.Empty(t, recs[0].BodyExample)
}
