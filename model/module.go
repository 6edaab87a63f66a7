package model

import (
	"strings"

	"github.com/viant/pyapi/expr"
)

// Module is a single source file or a directory with an __init__.py; it may
// contain any other entity kind (spec §3).
type Module struct {
	Base

	// FilePath is the absolute path to the source file, or empty for a
	// namespace package (spec §3).
	FilePath string

	// ImportsMap maps a local name bound inside this module to the absolute
	// canonical path it refers to (import statements populate this; it also
	// drives the alias resolver's intra-project redirection lookups, §4.6).
	ImportsMap map[string]string

	// Exports, if non-nil, is the module's explicit `__all__` list (spec
	// invariant I6). A nil slice means no `__all__` was found; an empty,
	// non-nil slice means `__all__ = []`.
	Exports []string

	members *OrderedMembers
}

func NewModule(name string) *Module {
	return &Module{
		Base:       Base{EntityName: name, LabelSet: Labels{}},
		ImportsMap: map[string]string{},
		members:    NewOrderedMembers(),
	}
}

func (m *Module) Kind() EntityKind { return KindModule }

func (m *Module) Members() *OrderedMembers { return m.members }

func (m *Module) GetMember(name string) (Entity, bool) { return m.members.Get(name) }

func (m *Module) AddMember(e Entity) {
	e.setParent(m)
	m.members.Set(e.Name(), e)
}

// HasExplicitExports reports whether this module declared `__all__`.
func (m *Module) HasExplicitExports() bool { return m.Exports != nil }

// ScopeCanonicalPath / ScopeParent / ResolveImport let *Module satisfy
// expr.Scope, so Name expressions built while walking this module's body
// can resolve local import bindings without the expr package depending on
// model (spec §4.2, §9 design note on keeping the dependency one-way).
func (m *Module) ScopeCanonicalPath() string { return m.CanonicalPath() }

func (m *Module) ScopeParent() expr.Scope {
	if p, ok := m.Parent().(expr.Scope); ok {
		return p
	}
	return nil
}

// ResolveImport looks up a locally bound import name in this module's
// imports map (spec §4.2 Name.canonical_path: "looking up that scope's
// import map, then walking parents").
func (m *Module) ResolveImport(name string) (string, bool) {
	target, ok := m.ImportsMap[name]
	return target, ok
}

func (m *Module) isExported(name string) bool {
	if !m.HasExplicitExports() {
		return false
	}
	for _, n := range m.Exports {
		if n == name {
			return true
		}
	}
	return false
}

// IsPublic implements the module-scope visibility rule of spec §4.1: public
// if listed in `__all__`; else if not imported from elsewhere and the name
// does not start with a single underscore.
func (m *Module) IsPublic() bool {
	if m.ForcePublic != nil {
		return *m.ForcePublic
	}
	parent, ok := m.Parent().(Container)
	if !ok {
		// Root module: public unless underscore-prefixed.
		return !strings.HasPrefix(m.Name(), "_")
	}
	return entityIsPublicInContainer(m, parent)
}

func (m *Module) IsExported() bool {
	parent, ok := m.Parent().(*Module)
	if !ok {
		return false
	}
	return parent.isExported(m.Name())
}

func entityIsPublicInContainer(e Entity, parent Container) bool {
	if mod, ok := parent.(*Module); ok {
		if mod.HasExplicitExports() {
			return mod.isExported(e.Name())
		}
		if _, isAlias := e.(*Alias); isAlias {
			// Imported (an Alias at module scope means "imported from
			// elsewhere") and not listed in __all__: not public.
			return false
		}
		return !strings.HasPrefix(e.Name(), "_")
	}
	if _, isAlias := e.(*Alias); isAlias {
		return false
	}
	if e.IsSpecial() {
		return true
	}
	return !strings.HasPrefix(e.Name(), "_")
}
