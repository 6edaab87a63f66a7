package model

import "github.com/viant/pyapi/expr"

// Class holds bases, keyword arguments to the base list, decorators, type
// parameters, an optional constructor parameter list and overloads by method
// name (spec §3).
type Class struct {
	Base

	Bases       []expr.Expression
	BaseKeywords []*expr.Keyword
	Decorators  []expr.Expression
	TypeParams  []*expr.TypeParameter
	ConstructorParams []*expr.Parameter

	// Overloads maps a method name to its sibling declarations decorated
	// with @overload/@typing.overload (spec §4.3 "Overload").
	Overloads map[string][]*Function

	members *OrderedMembers

	// resolvedBases is filled lazily by the inheritance cache; nil until
	// computed. Invalidated on any base/member mutation (spec §4.1).
	resolvedBases   []*Class
	inheritedCache  *OrderedMembers
	inheritedValid  bool
	walkInProgress  bool
}

func NewClass(name string) *Class {
	return &Class{
		Base:      Base{EntityName: name, LabelSet: Labels{}},
		Overloads: map[string][]*Function{},
		members:   NewOrderedMembers(),
	}
}

func (c *Class) Kind() EntityKind { return KindClass }

func (c *Class) Members() *OrderedMembers { return c.members }

func (c *Class) GetMember(name string) (Entity, bool) { return c.members.Get(name) }

func (c *Class) AddMember(e Entity) {
	e.setParent(c)
	c.members.Set(e.Name(), e)
	c.invalidateInheritance()
}

// SetWalkInProgress marks/unmarks this class as still being populated by the
// walker; AllMembers refuses to run while true (spec §4.1).
func (c *Class) SetWalkInProgress(v bool) { c.walkInProgress = v }

func (c *Class) invalidateInheritance() {
	c.inheritedValid = false
	c.inheritedCache = nil
	c.resolvedBases = nil
}

// ScopeCanonicalPath / ScopeParent / ResolveImport let *Class satisfy
// expr.Scope so Name expressions created while walking a class body can
// resolve through to the enclosing module's import map.
func (c *Class) ScopeCanonicalPath() string { return c.CanonicalPath() }

func (c *Class) ScopeParent() expr.Scope {
	if p, ok := c.Parent().(expr.Scope); ok {
		return p
	}
	return nil
}

func (c *Class) ResolveImport(name string) (string, bool) {
	if p, ok := c.Parent().(interface {
		ResolveImport(string) (string, bool)
	}); ok {
		return p.ResolveImport(name)
	}
	return "", false
}

// IsPublic implements the class-scope visibility rule of spec §4.1.
func (c *Class) IsPublic() bool {
	if c.ForcePublic != nil {
		return *c.ForcePublic
	}
	parent, ok := c.Parent().(Container)
	if !ok {
		return true
	}
	return entityIsPublicInContainer(c, parent)
}

func (c *Class) IsExported() bool {
	parent, ok := c.Parent().(*Module)
	if !ok {
		return false
	}
	return parent.isExported(c.Name())
}
