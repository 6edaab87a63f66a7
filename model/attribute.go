package model

import "github.com/viant/pyapi/expr"

// Attribute is a name-bound value at module/class/instance scope (spec §3).
type Attribute struct {
	Base

	Annotation expr.Expression
	Value      expr.Expression

	// Setter/Deleter hold property accessor functions when this attribute
	// represents a @property (spec §4.3).
	Setter  *Function
	Deleter *Function
}

func NewAttribute(name string) *Attribute {
	return &Attribute{Base: Base{EntityName: name, LabelSet: Labels{}}}
}

func (a *Attribute) Kind() EntityKind { return KindAttribute }

func (a *Attribute) ScopeCanonicalPath() string { return a.CanonicalPath() }

func (a *Attribute) ScopeParent() expr.Scope {
	if p, ok := a.Parent().(expr.Scope); ok {
		return p
	}
	return nil
}

func (a *Attribute) ResolveImport(name string) (string, bool) {
	if p, ok := a.Parent().(interface {
		ResolveImport(string) (string, bool)
	}); ok {
		return p.ResolveImport(name)
	}
	return "", false
}

// RenderedValue returns the value expression's source text, or "" when
// there is none; used by the differ's attribute-value-changed rule.
func (a *Attribute) RenderedValue() string {
	if a.Value == nil {
		return ""
	}
	return a.Value.String()
}

func (a *Attribute) IsPublic() bool {
	if a.ForcePublic != nil {
		return *a.ForcePublic
	}
	parent, ok := a.Parent().(Container)
	if !ok {
		return true
	}
	return entityIsPublicInContainer(a, parent)
}

func (a *Attribute) IsExported() bool {
	parent, ok := a.Parent().(*Module)
	if !ok {
		return false
	}
	return parent.isExported(a.Name())
}
