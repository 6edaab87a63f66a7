package finder_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/finder"
)

func TestFindRegularPackage(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "__init__.py"), nil, 0o644))

	pkg, err := finder.Find("pkg", []string{root})
	require.NoError(t, err)
	assert.Equal(t, finder.Regular, pkg.Kind)
	assert.Equal(t, pkgDir, pkg.Path)
}

func TestFindNamespacePackage(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))

	pkg, err := finder.Find("pkg", []string{root})
	require.NoError(t, err)
	assert.Equal(t, finder.Namespace, pkg.Kind)
}

func TestFindSingleFileModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "mod.py"), nil, 0o644))

	pkg, err := finder.Find("mod", []string{root})
	require.NoError(t, err)
	assert.Equal(t, finder.Module, pkg.Kind)
	assert.Equal(t, filepath.Join(root, "mod.py"), pkg.Path)
}

func TestFindDottedSubmodule(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(pkgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "__init__.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "sub.py"), nil, 0o644))

	pkg, err := finder.Find("pkg.sub", []string{root})
	require.NoError(t, err)
	assert.Equal(t, finder.Module, pkg.Kind)
}

func TestFindNotFoundReturnsTypedError(t *testing.T) {
	root := t.TempDir()

	_, err := finder.Find("missing", []string{root})
	require.Error(t, err)
	var notFound *finder.ModuleNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestFindSearchesPathsInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "mod.py"), nil, 0o644))

	pkg, err := finder.Find("mod", []string{first, second})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(second, "mod.py"), pkg.Path)
}
