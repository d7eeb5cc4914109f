package tsfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse("handler.py", []byte("def f(): pass"))
	assert.Error(t, err)
}

func TestParseAndClose(t *testing.T) {
	f, err := Parse("route.ts", []byte(`export function GET() { return new Response("ok") }`))
	require.NoError(t, err)
	defer f.Close()

	assert.NotNil(t, f.Root)
	assert.Equal(t, "route.ts", f.Path)
}

func TestStripQuotes(t *testing.T) {
	tests := map[string]string{
		`"use client"`: "use client",
		`'use server'`: "use server",
		"`raw`":        "raw",
		"bare":         "bare",
		`"`:            `"`,
	}
	for in, want := range tests {
		assert.Equal(t, want, StripQuotes(in), "input %q", in)
	}
}

func TestFirstDirective(t *testing.T) {
	f, err := Parse("action.ts", []byte(`"use server";

export async function create() {}
`))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "use server", f.FirstDirective())
}

func TestFirstDirectiveAbsentWhenNotFirstStatement(t *testing.T) {
	f, err := Parse("route.ts", []byte(`export function GET() {}
"use server";
`))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "", f.FirstDirective())
}

func TestImports(t *testing.T) {
	f, err := Parse("route.ts", []byte(`import { z } from "zod";
import db from "../db";

export function GET() {}
`))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"zod", "../db"}, f.Imports())
}

func TestNamedExportsFunctionDeclaration(t *testing.T) {
	f, err := Parse("route.ts", []byte(`export function GET(req) { return Response.json({}) }
export async function POST(req) {}
`))
	require.NoError(t, err)
	defer f.Close()

	names := make([]string, 0)
	for _, e := range f.NamedExports() {
		names = append(names, e.Name)
		assert.NotNil(t, e.Decl)
	}
	assert.Equal(t, []string{"GET", "POST"}, names)
}

func TestNamedExportsVariableArrowFunction(t *testing.T) {
	f, err := Parse("route.ts", []byte(`export const GET = async (req) => {
  return Response.json({})
}
`))
	require.NoError(t, err)
	defer f.Close()

	exports := f.NamedExports()
	require.Len(t, exports, 1)
	assert.Equal(t, "GET", exports[0].Name)
	assert.Equal(t, "arrow_function", exports[0].Decl.Type())
}

func TestDefaultExport(t *testing.T) {
	f, err := Parse("route.ts", []byte(`export default function handler(req, res) {}
`))
	require.NoError(t, err)
	defer f.Close()

	def := f.DefaultExport()
	require.NotNil(t, def)
	assert.Equal(t, "function_declaration", def.Type())
}

func TestFindDeclarationResolvesTopLevelConst(t *testing.T) {
	f, err := Parse("router.ts", []byte(`const appRouter = router({});
export default appRouter;
`))
	require.NoError(t, err)
	defer f.Close()

	decl := f.FindDeclaration("appRouter")
	require.NotNil(t, decl)
	assert.Equal(t, "call_expression", decl.Type())
}

func TestFindDeclarationMissingReturnsNil(t *testing.T) {
	f, err := Parse("router.ts", []byte(`const appRouter = router({});
`))
	require.NoError(t, err)
	defer f.Close()

	assert.Nil(t, f.FindDeclaration("nonExistent"))
}
