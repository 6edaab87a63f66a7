// Package finder implements spec component C4: locating a Python package or
// module by import name across an ordered list of search directories.
//
// Grounded in inspector/golang/package.go's directory-vs-single-file
// branching (InspectPackage checks for a directory first, falls back to a
// single-file module) and inspector/golang/imports.go's FindPackageDir
// (ordered-search-path walk, first hit wins).
package finder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies what was found at the resolved path.
type Kind string

const (
	Regular  Kind = "regular"  // directory with __init__.py
	Namespace Kind = "namespace" // directory without __init__.py
	Module   Kind = "module"   // single .py file
	Compiled Kind = "compiled" // .so/.pyd extension module
)

// Package is the descriptor the loader consumes.
type Package struct {
	ImportName string
	Path       string
	Kind       Kind
}

// ModuleNotFoundError is returned when name cannot be located in any of the
// given search paths.
type ModuleNotFoundError struct {
	ImportName  string
	SearchPaths []string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("no module named %q found in search paths %v", e.ImportName, e.SearchPaths)
}

// UnhandledEditableModuleError is returned when a redirection file (a
// `__editable___*.py` shim or a `.pth` line) exists but its content does not
// match any recognized format.
type UnhandledEditableModuleError struct {
	Path   string
	Format string
}

func (e *UnhandledEditableModuleError) Error() string {
	return fmt.Sprintf("unhandled editable-install redirect at %q: unrecognized format %q", e.Path, e.Format)
}

// Find locates name (dotted import form, e.g. "pkg.sub") across
// searchPaths, in order, returning the first match. Editable-install
// redirects are resolved transparently before classification.
func Find(name string, searchPaths []string) (Package, error) {
	rel := filepath.Join(strings.Split(name, ".")...)
	for _, root := range searchPaths {
		candidate := filepath.Join(root, rel)

		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return classifyDir(name, candidate)
		}

		if pkg, ok, err := tryEditableRedirect(name, root, rel); err != nil {
			return Package{}, err
		} else if ok {
			return pkg, nil
		}

		if pkg, ok := tryFile(name, candidate); ok {
			return pkg, nil
		}
	}
	return Package{}, &ModuleNotFoundError{ImportName: name, SearchPaths: searchPaths}
}

func classifyDir(name, dir string) (Package, error) {
	if hasInitFile(dir) {
		return Package{ImportName: name, Path: dir, Kind: Regular}, nil
	}
	return Package{ImportName: name, Path: dir, Kind: Namespace}, nil
}

func hasInitFile(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "__init__.py"))
	return err == nil
}

func tryFile(name, candidateDir string) (Package, bool) {
	for _, ext := range []string{".py"} {
		p := candidateDir + ext
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return Package{ImportName: name, Path: p, Kind: Module}, true
		}
	}
	for _, ext := range []string{".so", ".pyd"} {
		if p, ok := globCompiled(candidateDir, ext); ok {
			return Package{ImportName: name, Path: p, Kind: Compiled}, true
		}
	}
	return Package{}, false
}

func globCompiled(candidateDir, ext string) (string, bool) {
	matches, err := filepath.Glob(candidateDir + "*" + ext)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// tryEditableRedirect looks for an `__editable__`-prefixed file (a `.py`
// shim or a `.pth` file) whose name contains the module's last segment and,
// when found, resolves and classifies the real path instead. Its content
// must hold a `MAPPING = {...}` line or a `sys.path` line naming the real
// directory; any other content, including a `.pth` file that holds only a
// bare directory path, is reported as UnhandledEditableModuleError. `.pth`
// files without the `__editable__` prefix are not read. Matched structurally the
// same way detector.go's extractGoModuleName falls back to a line-oriented
// regex scan of a small marker file rather than a full parser.
func tryEditableRedirect(name, root, rel string) (Package, bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Package{}, false, nil
	}
	last := filepath.Base(rel)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		fname := e.Name()
		if !strings.HasPrefix(fname, "__editable__") || !strings.Contains(fname, last) {
			continue
		}
		path := filepath.Join(root, fname)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if real, ok := parseEditableShim(string(data)); ok {
			return classifyRedirectTarget(name, real)
		}
		return Package{}, false, &UnhandledEditableModuleError{Path: path, Format: "unrecognized __editable__ shim"}
	}
	return Package{}, false, nil
}

func classifyRedirectTarget(name, realPath string) (Package, bool, error) {
	info, err := os.Stat(realPath)
	if err != nil {
		return Package{}, false, &UnhandledEditableModuleError{Path: realPath, Format: "redirect target does not exist"}
	}
	if info.IsDir() {
		pkg, err := classifyDir(name, realPath)
		return pkg, err == nil, err
	}
	return Package{ImportName: name, Path: realPath, Kind: Module}, true, nil
}

// parseEditableShim extracts a single directory path from the simplest,
// most common editable-install shim shapes: a MAPPING dict with one entry,
// or a bare `sys.path.insert(0, "<path>")` line.
func parseEditableShim(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "MAPPING") || strings.Contains(line, "sys.path") {
			if brace := strings.Index(line, "{"); strings.HasPrefix(line, "MAPPING") && brace >= 0 {
				// Skip the entry's key: the path is the value after ':'.
				if colon := strings.Index(line[brace:], ":"); colon >= 0 {
					line = line[brace+colon+1:]
				}
			}
			if start := strings.IndexAny(line, `"'`); start >= 0 {
				quote := line[start]
				rest := line[start+1:]
				if end := strings.IndexByte(rest, quote); end >= 0 {
					return rest[:end], true
				}
			}
		}
	}
	return "", false
}
