// Package resolver implements spec component C6: a two-pass, iterative
// fixed-point alias resolver running over a model.Project's modules
// collection.
//
// New package (no direct teacher analogue); grounded structurally in the
// walker's own alias-placeholder pattern (pyast.bindImport creates the
// model.Alias nodes this package consumes) and in spec.md §4.6's
// pass-A/pass-B algorithm description, which this file follows step for
// step.
package resolver

import (
	"errors"
	"log/slog"

	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
)

// errExternalSkip marks a target deliberately left unresolved because it
// falls outside the requested package set and external resolution is
// disabled (spec §4.6 step 4: "leave unresolved silently"). It is never
// recorded on the Alias itself.
var errExternalSkip = errors.New("pyapi: external target, resolution skipped")

// DefaultIterationCap bounds the wildcard-expansion fixed-point loop (spec
// §5 "Cancellation and timeouts": "a small fixed integer, e.g., 5").
const DefaultIterationCap = 5

// Resolver drives both passes to a fixed point.
type Resolver struct {
	project         *model.Project
	bus             *extension.Bus
	iterationCap    int
	resolveExternal bool
}

func New(project *model.Project, bus *extension.Bus, iterationCap int, resolveExternal bool) *Resolver {
	if iterationCap <= 0 {
		iterationCap = DefaultIterationCap
	}
	return &Resolver{project: project, bus: bus, iterationCap: iterationCap, resolveExternal: resolveExternal}
}

// Resolve runs Pass A then Pass B to a fixed point, per spec §4.6: each full
// pass re-collects outstanding aliases so discoveries made by one pass
// (e.g. a wildcard expansion creating new direct aliases) are visible to
// the next.
func (r *Resolver) Resolve() error {
	for i := 0; i < r.iterationCap; i++ {
		resolvedAny := r.passA()
		expandedAny := r.passB()
		if !resolvedAny && !expandedAny {
			return nil
		}
	}
	remaining := r.collectWildcards()
	if len(remaining) > 0 {
		slog.Warn("resolver: iteration cap reached with wildcards still unresolved", "count", len(remaining), "cap", r.iterationCap)
	}
	return nil
}

// passA implements spec §4.6 Pass A: direct aliases. Returns whether any
// alias newly resolved this pass.
func (r *Resolver) passA() bool {
	any := false
	for _, alias := range r.collectDirectAliases() {
		if alias.Resolved() {
			continue
		}
		target, err := r.resolveChain(alias, nil)
		if errors.Is(err, errExternalSkip) {
			continue
		}
		alias.SetResolution(target, err)
		if err == nil {
			any = true
		}
	}
	return any
}

// resolveChain follows alias.TargetPath to its concrete end, recursing
// through further Aliases, with cycle detection via an ordered list of
// visited paths (spec §4.6 step 2: "leave *all* links in the chain
// unresolved" on a cycle). The list is kept in traversal order, rather than
// a map, so CyclicAliasError.Chain is deterministic (spec §5) instead of
// depending on map iteration order.
func (r *Resolver) resolveChain(alias *model.Alias, visited []string) (model.Entity, error) {
	path := alias.CanonicalPath()
	for _, p := range visited {
		if p == path {
			return nil, &model.CyclicAliasError{Chain: append(append([]string{}, visited...), path)}
		}
	}
	visited = append(visited, path)

	entity, err := r.project.Lookup(alias.TargetPath)
	if err != nil {
		if !r.resolveExternal && looksExternal(alias.TargetPath, r.project) {
			return nil, errExternalSkip
		}
		return nil, &model.AliasResolutionError{AliasPath: path, TargetPath: alias.TargetPath, Reason: err.Error()}
	}

	if next, ok := entity.(*model.Alias); ok {
		return r.resolveChain(next, visited)
	}
	return entity, nil
}

func looksExternal(targetPath string, p *model.Project) bool {
	parts := model.SplitPath(targetPath)
	for i := len(parts); i > 0; i-- {
		if _, ok := p.GetModule(model.JoinPath(parts[:i])); ok {
			return false
		}
	}
	return true
}

// passB implements spec §4.6 Pass B: wildcard expansion. Returns whether
// any wildcard was expanded this pass.
func (r *Resolver) passB() bool {
	any := false
	for _, w := range r.collectWildcards() {
		if r.expandWildcard(w) {
			any = true
		}
	}
	return any
}

// expandWildcard resolves one `from M import *` placeholder, returning
// whether it made progress (expanded or determined there is nothing to
// expand). A source module whose own wildcards are still outstanding is
// left for a later pass (spec §4.6 step 3).
func (r *Resolver) expandWildcard(w *model.Alias) bool {
	owner, ok := w.Parent().(*model.Module)
	if !ok {
		return false
	}
	source, err := r.project.Lookup(w.TargetPath)
	if err != nil {
		return false
	}
	srcMod, ok := source.(*model.Module)
	if !ok {
		return false
	}
	if hasOutstandingWildcard(srcMod) {
		return false
	}

	names := exportedNames(srcMod)
	for _, n := range names {
		concrete := &model.Alias{
			Base:        model.Base{EntityName: n, LabelSet: model.Labels{}},
			TargetPath:  srcMod.CanonicalPath() + "." + n,
			AliasLineno: w.AliasLineno,
		}
		concrete.Loc = w.Location()
		owner.AddMember(concrete)
		if r.bus != nil {
			r.bus.Fire(extension.HookOnWildcardExpanded, extension.Event{Entity: concrete, Owner: owner})
		}
	}
	owner.Members().Delete(w.Name())
	return true
}

func hasOutstandingWildcard(mod *model.Module) bool {
	for _, m := range mod.Members().Values() {
		if a, ok := m.(*model.Alias); ok && a.Wildcard {
			return true
		}
	}
	return false
}

// exportedNames implements spec §4.6 step 1: the module's __all__ list if
// present, else every non-underscore-prefixed member not itself an import.
func exportedNames(mod *model.Module) []string {
	if mod.HasExplicitExports() {
		return mod.Exports
	}
	var out []string
	for _, name := range mod.Members().Keys() {
		if len(name) > 0 && name[0] == '_' {
			continue
		}
		m, _ := mod.GetMember(name)
		if _, isAlias := m.(*model.Alias); isAlias {
			continue
		}
		out = append(out, name)
	}
	return out
}

// collectDirectAliases gathers every non-wildcard Alias reachable from the
// project's modules, recursing into class bodies (imports are rare inside a
// class but not disallowed by the grammar).
func (r *Resolver) collectDirectAliases() []*model.Alias {
	var out []*model.Alias
	for _, path := range r.project.ModulePaths() {
		mod, _ := r.project.GetModule(path)
		collectAliases(mod, false, &out)
	}
	return out
}

func (r *Resolver) collectWildcards() []*model.Alias {
	var out []*model.Alias
	for _, path := range r.project.ModulePaths() {
		mod, _ := r.project.GetModule(path)
		collectAliases(mod, true, &out)
	}
	return out
}

func collectAliases(c model.Container, wildcard bool, out *[]*model.Alias) {
	for _, m := range c.Members().Values() {
		if a, ok := m.(*model.Alias); ok && a.Wildcard == wildcard {
			*out = append(*out, a)
			continue
		}
		if nested, ok := m.(model.Container); ok {
			collectAliases(nested, wildcard, out)
		}
	}
}
