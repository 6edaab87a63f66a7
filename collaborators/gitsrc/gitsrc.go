// Package gitsrc implements the git collaborator named in spec.md §6: given
// a package (a clone URL) and a revision, it returns a filesystem path
// rooted at a checkout of that revision, scoped so cleanup happens when the
// caller is done (spec: "scoped so cleanup occurs on context exit").
//
// New package (no direct teacher analogue: inspector/repository/detector.go
// only ever reads an already-checked-out working tree's .git/config with a
// hand-rolled scanner). This reimplements that collaborator role on top of
// go-git instead, the way cue-lang-cue/internal/cuegit/cuegit.go drives a
// repository (PlainOpen/Worktree/CommitObject) — generalized here from
// "open an existing local repo" to "clone a remote one and check out a
// ref", which is what the git collaborator needs to do.
package gitsrc

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Checkout clones repoURL into a fresh temporary directory and checks out
// ref (a branch name, tag name, or commit hash, tried in that order),
// returning the checkout's root path and a cleanup func that removes the
// temporary directory. The caller must call cleanup once done with the
// checkout (spec.md §6 "Git collaborator").
func Checkout(repoURL, ref string) (path string, cleanup func() error, err error) {
	dir, err := os.MkdirTemp("", "pyapi-gitsrc-*")
	if err != nil {
		return "", nil, fmt.Errorf("gitsrc: create temp dir: %w", err)
	}
	cleanup = func() error { return os.RemoveAll(dir) }

	repo, err := git.PlainClone(dir, false, &git.CloneOptions{URL: repoURL})
	if err != nil {
		_ = cleanup()
		return "", nil, fmt.Errorf("gitsrc: clone %q: %w", repoURL, err)
	}

	if ref != "" {
		if err := checkoutRef(repo, ref); err != nil {
			_ = cleanup()
			return "", nil, err
		}
	}

	return dir, cleanup, nil
}

func checkoutRef(repo *git.Repository, ref string) error {
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("gitsrc: worktree: %w", err)
	}

	hash, err := resolveRevision(repo, ref)
	if err != nil {
		return fmt.Errorf("gitsrc: resolve ref %q: %w", ref, err)
	}

	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return fmt.Errorf("gitsrc: checkout %q: %w", ref, err)
	}
	return nil
}

// resolveRevision tries ref as a branch, then a tag, then a bare revision
// (commit hash or other rev-parse-style spec go-git understands), mirroring
// how a CLI user would name a ref without knowing its exact kind.
func resolveRevision(repo *git.Repository, ref string) (*plumbing.Hash, error) {
	for _, candidate := range []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewTagReferenceName(ref),
	} {
		if r, err := repo.Reference(candidate, true); err == nil {
			h := r.Hash()
			return &h, nil
		}
	}
	return repo.ResolveRevision(plumbing.Revision(ref))
}
