package model

import "github.com/viant/pyapi/expr"

// TypeAlias holds a value expression and type parameters for an explicit
// `type X = ...` statement (spec §3, §4.3).
type TypeAlias struct {
	Base

	Value      expr.Expression
	TypeParams []*expr.TypeParameter
}

func NewTypeAlias(name string) *TypeAlias {
	return &TypeAlias{Base: Base{EntityName: name, LabelSet: Labels{}}}
}

func (t *TypeAlias) Kind() EntityKind { return KindTypeAlias }

func (t *TypeAlias) ScopeCanonicalPath() string { return t.CanonicalPath() }

func (t *TypeAlias) ScopeParent() expr.Scope {
	if p, ok := t.Parent().(expr.Scope); ok {
		return p
	}
	return nil
}

func (t *TypeAlias) ResolveImport(name string) (string, bool) {
	if p, ok := t.Parent().(interface {
		ResolveImport(string) (string, bool)
	}); ok {
		return p.ResolveImport(name)
	}
	return "", false
}

func (t *TypeAlias) IsPublic() bool {
	if t.ForcePublic != nil {
		return *t.ForcePublic
	}
	parent, ok := t.Parent().(Container)
	if !ok {
		return true
	}
	return entityIsPublicInContainer(t, parent)
}

func (t *TypeAlias) IsExported() bool {
	parent, ok := t.Parent().(*Module)
	if !ok {
		return false
	}
	return parent.isExported(t.Name())
}
