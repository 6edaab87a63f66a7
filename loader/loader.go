// Package loader implements spec component C5: turns a Finder package
// descriptor into a populated model.Project by walking submodules
// depth-first, handing each source file to the pyast walker.
//
// Grounded in inspector.InspectPackages' directory-walk shape
// (filepath.Walk collecting one *graph.Package per directory with source
// files), generalized here to a depth-first *module* walk across a single
// shared model.Project, since Python packages nest modules as members of
// their parent package rather than as sibling top-level packages the way
// inspector.InspectPackages treats Go directories. Source reads go through
// afs.Service, the same collaborator inspector/info/document.go already
// uses for asset content, rather than raw os.ReadFile.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"

	"github.com/viant/pyapi/collaborators/dynamic"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/finder"
	"github.com/viant/pyapi/model"
	"github.com/viant/pyapi/pyast"
	"github.com/viant/pyapi/resolver"
)

// Loader owns the shared Project (modules + lines collections) and the
// collaborators needed to populate it.
type Loader struct {
	Project    *model.Project
	Bus        *extension.Bus
	Dynamic    dynamic.Collaborator
	fs         afsService
}

// afsService narrows afs.Service to the one method the loader uses, so
// tests can substitute a fake without pulling in the real filesystem
// abstraction.
type afsService interface {
	DownloadWithURL(ctx context.Context, URL string, options ...any) ([]byte, error)
}

// realAFS adapts *afs.Service (whose DownloadWithURL takes ...storage.Option)
// to afsService's narrower, option-free signature used internally.
type realAFS struct{}

func (realAFS) DownloadWithURL(ctx context.Context, URL string, _ ...any) ([]byte, error) {
	return afs.New().DownloadWithURL(ctx, URL)
}

// New creates a Loader backed by a fresh Project.
func New(projectName string, bus *extension.Bus, dyn dynamic.Collaborator) *Loader {
	return &Loader{
		Project: model.NewProject(projectName),
		Bus:     bus,
		Dynamic: dyn,
		fs:      realAFS{},
	}
}

// Load implements spec §4.5's seven-step loading sequence for one requested
// package name.
func (l *Loader) Load(ctx context.Context, name string, opts Options) (*model.Module, error) {
	pkg, err := finder.Find(name, opts.SearchPaths)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}

	root, err := l.loadPackage(ctx, pkg, nil, opts)
	if err != nil {
		return nil, err
	}

	if l.Bus != nil {
		l.Bus.Fire(extension.HookOnPackageLoaded, extension.Event{Entity: root})
	}

	if opts.ResolveAliases {
		cap := opts.ResolverCap
		if cap <= 0 {
			cap = resolver.DefaultIterationCap
		}
		r := resolver.New(l.Project, l.Bus, cap, opts.ResolveExternal)
		if err := r.Resolve(); err != nil {
			return root, err
		}
	}

	return root, nil
}

// loadPackage loads one Finder-resolved package (or single module) as
// `parent`'s child, recursing into submodules per opts.Submodules.
func (l *Loader) loadPackage(ctx context.Context, pkg finder.Package, parent *model.Module, opts Options) (*model.Module, error) {
	if existing, ok := l.Project.GetModule(canonicalFor(pkg, parent)); ok && existing.FilePath == filePathFor(pkg) {
		return existing, nil
	}

	switch pkg.Kind {
	case finder.Compiled:
		return l.loadDynamic(ctx, pkg, parent, opts)
	case finder.Namespace:
		return l.loadNamespace(ctx, pkg, parent, opts)
	default:
		return l.loadFile(ctx, pkg.ImportName, pkg.Path, parent, opts, pkg.Kind == finder.Regular)
	}
}

func (l *Loader) loadDynamic(ctx context.Context, pkg finder.Package, parent *model.Module, opts Options) (*model.Module, error) {
	if l.Dynamic == nil || !opts.AllowInspection {
		return nil, fmt.Errorf("loader: %s is a compiled extension and dynamic inspection is disabled", pkg.ImportName)
	}
	mod, err := l.Dynamic.InspectModule(pkg.ImportName, pkg.Path, opts.SearchPaths)
	if err != nil {
		return nil, fmt.Errorf("loader: dynamic inspection of %s: %w", pkg.ImportName, err)
	}
	if parent != nil {
		parent.AddMember(mod)
	}
	l.Project.AddModule(mod)
	return mod, nil
}

// loadNamespace creates a filepath-less Module (spec §4.5 step 3) and
// recurses into its directory entries without requiring an __init__.py.
func (l *Loader) loadNamespace(ctx context.Context, pkg finder.Package, parent *model.Module, opts Options) (*model.Module, error) {
	mod := model.NewModule(pkg.ImportName)
	mod.AnalysisFrom = model.OriginStatic
	if parent != nil {
		parent.AddMember(mod)
	}
	l.Project.AddModule(mod)

	if opts.Submodules {
		if err := l.walkChildren(ctx, pkg.Path, mod, opts); err != nil {
			return mod, err
		}
	}
	return mod, nil
}

func (l *Loader) loadFile(ctx context.Context, name, path string, parent *model.Module, opts Options, isPackage bool) (*model.Module, error) {
	if opts.ForceInspection && l.Dynamic != nil {
		return l.loadDynamic(ctx, finder.Package{ImportName: name, Path: path, Kind: finder.Compiled}, parent, opts)
	}

	source, err := l.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	lines := strings.Split(string(source), "\n")
	l.Project.SetLines(path, lines)

	w := pyast.NewWalker(l.Project, l.Bus, string(opts.DocstringStyle))
	mod, err := w.Walk(ctx, name, path, source, lines, parent)
	if err != nil {
		return nil, err
	}
	l.Project.AddModule(mod)

	if isPackage && opts.Submodules {
		if err := l.walkChildren(ctx, filepath.Dir(path), mod, opts); err != nil {
			return mod, err
		}
	}
	return mod, nil
}

// walkChildren implements spec §4.5 step 5: recursion across submodules,
// sorted for deterministic member-insertion order. The recursion is
// depth-first: a subpackage is loaded in full, its own submodules included,
// before the next sibling entry; siblings are not loaded level by level.
func (l *Loader) walkChildren(ctx context.Context, dir string, parent *model.Module, opts Options) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("loader: cannot list directory", "dir", dir, "err", err)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, e := range entries {
		name := e.Name()
		switch {
		case e.IsDir():
			childPath := filepath.Join(dir, name)
			childKind := finder.Namespace
			if hasInitFile(childPath) {
				childKind = finder.Regular
			} else if !hasPythonSource(childPath) {
				continue
			}
			childPkg := finder.Package{ImportName: name, Path: childPath, Kind: childKind}
			if _, err := l.loadPackage(ctx, childPkg, parent, opts); err != nil {
				return err
			}
		case strings.HasSuffix(name, ".py") && name != "__init__.py":
			modName := strings.TrimSuffix(name, ".py")
			childPkg := finder.Package{ImportName: modName, Path: filepath.Join(dir, name), Kind: finder.Module}
			if _, err := l.loadPackage(ctx, childPkg, parent, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasInitFile(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "__init__.py"))
	return err == nil
}

func hasPythonSource(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".py") {
			return true
		}
	}
	return false
}

func canonicalFor(pkg finder.Package, parent *model.Module) string {
	if parent == nil {
		return pkg.ImportName
	}
	return parent.CanonicalPath() + "." + pkg.ImportName
}

func filePathFor(pkg finder.Package) string { return pkg.Path }
