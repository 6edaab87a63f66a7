package gitsrc_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/collaborators/gitsrc"
)

// newLocalRepo creates a plain (non-bare) repository under a temp directory
// with a single commit on whatever HEAD's default branch is, returning the
// repo's filesystem path (go-git's local transport accepts a bare
// filesystem path as a clone URL, no scheme required) and that branch's
// short name.
func newLocalRepo(t *testing.T, fileName, content string) (repoDir, branch string) {
	t.Helper()
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(content), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(fileName)
	require.NoError(t, err)

	sig := &object.Signature{Name: "test", Email: "test@example.com", When: time.Unix(0, 0)}
	_, err = wt.Commit("initial commit", &git.CommitOptions{Author: sig})
	require.NoError(t, err)

	head, err := repo.Head()
	require.NoError(t, err)

	return dir, head.Name().Short()
}

func TestCheckoutResolvesBranch(t *testing.T) {
	repoDir, branch := newLocalRepo(t, "marker.py", "VALUE = 1\n")

	path, cleanup, err := gitsrc.Checkout(repoDir, branch)
	require.NoError(t, err)
	defer cleanup()

	data, err := os.ReadFile(filepath.Join(path, "marker.py"))
	require.NoError(t, err)
	require.Equal(t, "VALUE = 1\n", string(data))
}

func TestCheckoutCleanupRemovesTempDir(t *testing.T) {
	repoDir, branch := newLocalRepo(t, "marker.py", "VALUE = 2\n")

	path, cleanup, err := gitsrc.Checkout(repoDir, branch)
	require.NoError(t, err)

	require.NoError(t, cleanup())
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestCheckoutEmptyRefUsesDefaultBranch(t *testing.T) {
	repoDir, _ := newLocalRepo(t, "marker.py", "VALUE = 3\n")

	path, cleanup, err := gitsrc.Checkout(repoDir, "")
	require.NoError(t, err)
	defer cleanup()

	data, err := os.ReadFile(filepath.Join(path, "marker.py"))
	require.NoError(t, err)
	require.Equal(t, "VALUE = 3\n", string(data))
}
