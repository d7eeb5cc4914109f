package tsproject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadCollectsMatchingFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{"include":["**/*.ts"]}`)
	writeFile(t, root, "app/api/route.ts", "export function GET() {}")
	writeFile(t, root, "app/api/route.md", "# not a source file")

	proj, err := Load(root, []string{"**/*.ts"}, Options{})
	require.NoError(t, err)
	require.Len(t, proj.Files, 1)
	assert.Equal(t, filepath.Join(root, "app/api/route.ts"), proj.Files[0])
}

func TestLoadMissingTSConfigNotRequiredStillScans(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/api/route.ts", "export function GET() {}")

	proj, err := Load(root, []string{"**/*.ts"}, Options{})
	require.NoError(t, err)
	assert.Len(t, proj.Files, 1)
}

func TestLoadMissingTSConfigRequiredReturnsEmptyProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/api/route.ts", "export function GET() {}")

	proj, err := Load(root, []string{"**/*.ts"}, Options{Required: true})
	require.NoError(t, err)
	assert.Empty(t, proj.Files)
	assert.Equal(t, root, proj.RootDir)
}

func TestLoadIncludeOverridesCallerPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/api/route.ts", "export function GET() {}")
	writeFile(t, root, "app/api/route.test.ts", "// test file")

	proj, err := Load(root, []string{"**/*.ts"}, Options{Include: []string{"**/*.test.ts"}})
	require.NoError(t, err)
	require.Len(t, proj.Files, 1)
	assert.Equal(t, filepath.Join(root, "app/api/route.test.ts"), proj.Files[0])
}

func TestLoadDeduplicatesAcrossOverlappingPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/api/route.ts", "export function GET() {}")

	proj, err := Load(root, []string{"**/*.ts", "app/**/*.ts"}, Options{})
	require.NoError(t, err)
	assert.Len(t, proj.Files, 1)
}

func TestLoadMalformedTSConfigDoesNotBlockScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tsconfig.json", `{ not valid json`)
	writeFile(t, root, "app/api/route.ts", "export function GET() {}")

	proj, err := Load(root, []string{"**/*.ts"}, Options{})
	require.NoError(t, err)
	assert.Len(t, proj.Files, 1)
}
