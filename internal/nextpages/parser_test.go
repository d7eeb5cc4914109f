package nextpages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileSwitchStatementDispatch(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/users/index.ts", []byte(`
export default function handler(req, res) {
  switch (req.method) {
    case "GET":
      return res.json([])
    case "POST":
      return res.json({})
    default:
      return res.status(405).end()
  }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "GET", recs[0].Method)
	assert.Equal(t, "POST", recs[1].Method)
	assert.Equal(t, "/api/users", recs[0].Path)
}

func TestParseFileBinaryExpressionDispatch(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/ping.ts", []byte(`
export default function handler(req, res) {
  if (req.method === "GET") {
    res.status(200).end()
  }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "GET", recs[0].Method)
	assert.Equal(t, "/api/ping", recs[0].Path)
}

func TestParseFileIndexMapsToApiRoot(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/index.ts", []byte(`
export default function handler(req, res) {
  if (req.method === "GET") {
    res.status(200).json({ ok: true })
  }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "/api", recs[0].Path)
}

func TestParseFileDynamicSegment(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/users/[id].ts", []byte(`
export default function handler(req, res) {
  if (req.method === "GET") {
    res.json({ id: req.query.id })
  }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "/api/users/:id", recs[0].Path)
	assert.True(t, recs[0].IsDynamic)
}

func TestParseFileMethodsArrayExport(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/widgets.ts", []byte(`
export const methods = ["GET", "DELETE"]

export default function handler(req, res) {
  res.status(200).end()
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 2)
}

func TestParseFileNoDispatchYieldsNothing(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/noop.ts", []byte(`
export default function handler(req, res) {
  res.status(200).end()
}
`))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestParseFileNamedHandlerExport(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/legacy.ts", []byte(`
export function handler(req, res) {
  if (req.method === "GET") {
    res.status(200).end()
  }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestParseFileRouteTsIsNotAPagesFile(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("app/api/users/route.ts", []byte(`
export function GET() { return new Response() }
`))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestParseFileTRPCAdapterSkipped(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/trpc/[trpc].ts", []byte(`
import { createNextApiHandler } from "@trpc/server/adapters/next";

export default createNextApiHandler({ router: appRouter });
`))
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestParseFilePostBodyExtractedFromParse(t *testing.T) {
	p := New(nil)
	recs, err := p.ParseFile("pages/api/users/index.ts", []byte(`
const userSchema = z.object({ name: z.string() })

export default function handler(req, res) {
  if (req.method === "POST") {
    const body = userSchema.parse(req.body)
    res.status(201).json(body)
  }
}
`))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].HasBody)
	assert.JSONEq(t, `{"name":"string"}`, recs[0].BodyExample)
}
