package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/minio/highwayhash"
)

var digestKey = []byte("pyapi-snapshot-digest-key-v1!!!!")

// Project is the top-level container the rest of the system builds around:
// the "two roots" of spec.md §3 — a modules collection keyed by absolute
// canonical path, and a lines collection used for Location.Raw lookups
// across file boundaries (aliases can point into a module other than the
// one currently being rendered). Generalizes the teacher's graph.Project
// (package list + name index) plus graph.Package.FileSet's per-file source
// stash, flattened to project scope since alias chains cross files.
type Project struct {
	Name     string
	RootPath string

	mu      sync.RWMutex
	Modules map[string]*Module
	Lines   map[string][]string
}

func NewProject(name string) *Project {
	return &Project{
		Name:    name,
		Modules: map[string]*Module{},
		Lines:   map[string][]string{},
	}
}

// AddModule registers a module under its canonical path, replacing any
// previously loaded module at that path (spec §4.5 "Re-loading": a fresh
// load at the same path discards the old module wholesale rather than
// merging members).
func (p *Project) AddModule(m *Module) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Modules[m.CanonicalPath()] = m
}

func (p *Project) GetModule(path string) (*Module, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	m, ok := p.Modules[path]
	return m, ok
}

// SetLines stashes a module's source as a line slice for Location.Raw
// lookups against entities that live in other modules (e.g. a resolved
// alias rendering its target's location).
func (p *Project) SetLines(path string, lines []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Lines[path] = lines
}

// Lookup resolves a dotted absolute path against the loaded module set,
// descending member-by-member; it never triggers inherited-member
// computation (uses Container.GetMember at each step, consistent with
// GetMemberPath), matching spec §4.1's "by dotted path" access form. The
// alias resolver and Class.ResolveBases are the two callers.
func (p *Project) Lookup(path string) (Entity, error) {
	if path == "" {
		return nil, fmt.Errorf("pyapi: empty path")
	}
	parts := SplitPath(path)

	p.mu.RLock()
	defer p.mu.RUnlock()

	// Longest-prefix module match: "pkg.sub.Class.method" must resolve
	// against module "pkg.sub", not "pkg".
	for i := len(parts); i > 0; i-- {
		modPath := JoinPath(parts[:i])
		mod, ok := p.Modules[modPath]
		if !ok {
			continue
		}
		if i == len(parts) {
			return mod, nil
		}
		entity, ok := GetMemberPath(mod, parts[i:])
		if !ok {
			return nil, fmt.Errorf("pyapi: %q not found under module %q", path, modPath)
		}
		return entity, nil
	}
	return nil, fmt.Errorf("pyapi: no loaded module matches %q", path)
}

// ModulePaths returns every loaded module's canonical path, sorted, for
// deterministic iteration (digests, serialization order).
func (p *Project) ModulePaths() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.Modules))
	for k := range p.Modules {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// digestEncodable is implemented by the encoding package's base-mode
// encoder; kept as a narrow local interface so model does not import
// encoding (which imports model), avoiding a cycle.
type digestEncodable interface {
	EncodeBase(p *Project) (interface{}, error)
}

// Digest returns a deterministic highwayhash-64 of the project's base-mode
// JSON encoding, serving spec.md §8's determinism property and the CLI's
// `dump --digest` flag. Grounded on the teacher's graph.Hash (same
// highwayhash.New64 shape); the key is fixed so digests are comparable
// across runs and machines, matching "deterministic" rather than
// "tamper-evident".
func (p *Project) Digest(enc digestEncodable) (uint64, error) {
	base, err := enc.EncodeBase(p)
	if err != nil {
		return 0, err
	}
	data, err := json.Marshal(base)
	if err != nil {
		return 0, err
	}
	h, err := highwayhash.New64(digestKey)
	if err != nil {
		return 0, err
	}
	if _, err := h.Write(data); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
