package tsproject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTSConfigStripsCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsconfig.json")
	content := `{
  // line comment
  "include": ["src/**/*.ts",], /* block comment */
  "exclude": ["node_modules",],
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := readTSConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**/*.ts"}, cfg.Include)
	assert.Equal(t, []string{"node_modules"}, cfg.Exclude)
}

func TestReadTSConfigMalformedIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tsconfig.json")
	require.NoError(t, os.WriteFile(path, []byte(`{ not valid json `), 0644))

	_, err := readTSConfig(path)
	assert.Error(t, err)
}

func TestReadTSConfigMissingFileIsError(t *testing.T) {
	_, err := readTSConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
