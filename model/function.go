package model

import "github.com/viant/pyapi/expr"

// Function holds parameters (ordered), a return-annotation expression,
// decorators, type parameters and an optional overload list (spec §3).
type Function struct {
	Base

	Parameters       []*expr.Parameter
	ReturnAnnotation expr.Expression
	Decorators       []expr.Expression
	TypeParams       []*expr.TypeParameter

	// Setter/Deleter hold the property accessor pair recognized from
	// `@<name>.setter` / `@<name>.deleter` decorators (spec §4.3).
	Setter  *Function
	Deleter *Function
}

func NewFunction(name string) *Function {
	return &Function{Base: Base{EntityName: name, LabelSet: Labels{}}}
}

func (f *Function) Kind() EntityKind { return KindFunction }

func (f *Function) ScopeCanonicalPath() string { return f.CanonicalPath() }

func (f *Function) ScopeParent() expr.Scope {
	if p, ok := f.Parent().(expr.Scope); ok {
		return p
	}
	return nil
}

func (f *Function) ResolveImport(name string) (string, bool) {
	if p, ok := f.Parent().(interface {
		ResolveImport(string) (string, bool)
	}); ok {
		return p.ResolveImport(name)
	}
	return "", false
}

// ParameterByName returns the parameter with the given name, if any.
func (f *Function) ParameterByName(name string) (*expr.Parameter, int) {
	for i, p := range f.Parameters {
		if p.Name == name {
			return p, i
		}
	}
	return nil, -1
}

// PositionalIndex returns the index of `name` among only the
// positional-only and positional-or-keyword parameters, used by the differ's
// parameter-moved rule (spec §4.7), which only concerns positional indices.
func (f *Function) PositionalIndex(name string) int {
	idx := 0
	for _, p := range f.Parameters {
		if p.ParamKind != expr.ParamPositionalOnly && p.ParamKind != expr.ParamPositionalOrKeyword {
			continue
		}
		if p.Name == name {
			return idx
		}
		idx++
	}
	return -1
}

func (f *Function) HasVarPositional() bool {
	for _, p := range f.Parameters {
		if p.ParamKind == expr.ParamVarPositional {
			return true
		}
	}
	return false
}

func (f *Function) HasVarKeyword() bool {
	for _, p := range f.Parameters {
		if p.ParamKind == expr.ParamVarKeyword {
			return true
		}
	}
	return false
}

func (f *Function) IsPublic() bool {
	if f.ForcePublic != nil {
		return *f.ForcePublic
	}
	parent, ok := f.Parent().(Container)
	if !ok {
		return true
	}
	return entityIsPublicInContainer(f, parent)
}

func (f *Function) IsExported() bool {
	parent, ok := f.Parent().(*Module)
	if !ok {
		return false
	}
	return parent.isExported(f.Name())
}
