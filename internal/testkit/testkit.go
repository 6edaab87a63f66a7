// Package testkit provides the four scoped test helpers named in spec.md
// §6: temporary_visited_module, temporary_visited_package,
// temporary_inspected_module and temporary_inspected_package. Each builds a
// throwaway package from source text (or a map of file path to source text)
// under a temp directory, runs it through the loader, and registers
// cleanup via t.Cleanup so removal happens on every exit path including a
// failing t.Fatal.
//
// Grounded in inspector/golang/inspector_test.go's table-driven style
// (construct source, call the inspector, assert on the returned graph);
// generalized here from "inspect a literal source string in-process" to
// "write it to a temp file tree first", since the loader — unlike the
// teacher's InspectSource — only ever reads from a filesystem path.
package testkit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/viant/pyapi/collaborators/dynamic"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/loader"
	"github.com/viant/pyapi/model"
)

// TemporaryVisitedModule writes source to "<name>.py" under a fresh temp
// directory and loads it statically (no dynamic-inspection fallback).
func TemporaryVisitedModule(t *testing.T, name, source string) *model.Module {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, name+".py"), source)
	return load(t, dir, name, loader.Options{SearchPaths: []string{dir}})
}

// TemporaryVisitedPackage writes files (keyed by path relative to the
// package root, e.g. "__init__.py", "sub/mod.py") under a fresh temp
// directory rooted at a directory named name, and loads it statically.
func TemporaryVisitedPackage(t *testing.T, name string, files map[string]string) *model.Module {
	t.Helper()
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, name)
	for rel, content := range files {
		writeFile(t, filepath.Join(pkgDir, rel), content)
	}
	return load(t, dir, name, loader.Options{SearchPaths: []string{dir}, Submodules: true})
}

// TemporaryInspectedModule is TemporaryVisitedModule's dynamic-analysis
// counterpart: it forces the loader down the Collaborator.InspectModule
// path instead of the static walker (spec §4.5 step on a compiled/ambiguous
// module; here used to exercise any InspectModule implementation under
// test against a known-source module).
func TemporaryInspectedModule(t *testing.T, name, source string, collaborator dynamic.Collaborator) *model.Module {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, name+".py"), source)
	return loadWith(t, dir, name, loader.Options{SearchPaths: []string{dir}, AllowInspection: true, ForceInspection: true}, collaborator)
}

// TemporaryInspectedPackage is the package-shaped counterpart of
// TemporaryInspectedModule.
func TemporaryInspectedPackage(t *testing.T, name string, files map[string]string, collaborator dynamic.Collaborator) *model.Module {
	t.Helper()
	dir := t.TempDir()
	pkgDir := filepath.Join(dir, name)
	for rel, content := range files {
		writeFile(t, filepath.Join(pkgDir, rel), content)
	}
	return loadWith(t, dir, name, loader.Options{SearchPaths: []string{dir}, Submodules: true, AllowInspection: true, ForceInspection: true}, collaborator)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("testkit: mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("testkit: write %s: %v", path, err)
	}
}

func load(t *testing.T, dir, name string, opts loader.Options) *model.Module {
	t.Helper()
	return loadWith(t, dir, name, opts, nil)
}

func loadWith(t *testing.T, dir, name string, opts loader.Options, collaborator dynamic.Collaborator) *model.Module {
	t.Helper()
	ld := loader.New(name, extension.NewBus(), collaborator)
	mod, err := ld.Load(context.Background(), name, opts)
	if err != nil {
		t.Fatalf("testkit: load %q from %s: %v", name, dir, err)
	}
	return mod
}
