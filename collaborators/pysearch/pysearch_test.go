package pysearch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/collaborators/pysearch"
)

func TestDetectRootFindsMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(""), 0o644))

	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := pysearch.DetectRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestDetectRootFallsBackWhenNoMarker(t *testing.T) {
	start := t.TempDir()

	got, err := pysearch.DetectRoot(start)
	require.NoError(t, err)
	assert.Equal(t, start, got)
}

func TestDetectRootResolvesFileToParentDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "setup.py"), []byte(""), 0o644))

	file := filepath.Join(root, "module.py")
	require.NoError(t, os.WriteFile(file, []byte(""), 0o644))

	got, err := pysearch.DetectRoot(file)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestSearchPathsOrderingAndDedup(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte(""), 0o644))

	t.Setenv("PYAPI_PATH", "")

	paths, err := pysearch.SearchPaths(root, []string{root, "/extra/one", "/extra/two"})
	require.NoError(t, err)
	assert.Equal(t, []string{root, "/extra/one", "/extra/two"}, paths)
}

func TestSearchPathsIncludesEnvVar(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git"), []byte(""), 0o644))

	t.Setenv("PYAPI_PATH", "/from/env")

	paths, err := pysearch.SearchPaths(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{root, "/from/env"}, paths)
}
