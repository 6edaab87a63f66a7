// Package pysearch implements the search-path / project-root collaborator
// (spec.md §13 supplemental feature): locate a Python project's root by
// walking up from a starting path looking for `pyproject.toml`, `setup.py`,
// `requirements.txt` or `.git`, and assemble the ordered search-path list
// the loader/finder consult, folding in the `PYAPI_PATH` environment
// variable (the search-path-analogue env var named in spec §6).
//
// Grounded in inspector/repository/detector.go's Detector: same walk-up-
// looking-for-markers shape and the same "parent == dir means filesystem
// root" loop termination, narrowed from Go/Java/JS/Python/Rust markers to
// the Python-only ones this tool ever needs.
package pysearch

import (
	"os"
	"path/filepath"
	"strings"
)

// rootMarkers are checked in this order at each directory level; the first
// match found stops the walk.
var rootMarkers = []string{"pyproject.toml", "setup.py", "requirements.txt", ".git"}

// envVar is the search-path-analogue environment variable spec.md §6
// describes as a "Python-analogue search-path variable for additional
// directories" — named after this package's own import path rather than
// PYTHONPATH, to avoid colliding with a real Python interpreter's own use
// of that name on the same machine.
const envVar = "PYAPI_PATH"

// DetectRoot walks up from startPath looking for a project-root marker,
// returning the directory containing it. If no marker is found before
// reaching the filesystem root, it returns startPath itself (or its parent
// directory, if startPath names a file) unchanged.
func DetectRoot(startPath string) (string, error) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}
	fallback := dir

	for {
		for _, marker := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return fallback, nil
}

// SearchPaths builds the ordered search-path list the finder consults: the
// detected project root first, then every non-empty entry of PYAPI_PATH
// (os.PathListSeparator-joined, matching PYTHONPATH's own convention), then
// any explicit paths the caller supplied (e.g. the CLI's repeated `-s`
// flag), de-duplicated while preserving first-seen order.
func SearchPaths(startPath string, explicit []string) ([]string, error) {
	root, err := DetectRoot(startPath)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var out []string
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(root)
	for _, p := range strings.Split(os.Getenv(envVar), string(os.PathListSeparator)) {
		add(p)
	}
	for _, p := range explicit {
		add(p)
	}
	return out, nil
}
