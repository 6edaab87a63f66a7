package model

import "github.com/viant/pyapi/expr"

// Alias is a symbolic indirection: an entity that points to another entity
// by absolute path (spec §3). IsPublic, IsExported, IsDeprecated and
// DelegatedDocstring delegate to the final target once resolved; every other
// accessor (Name, Kind, Location, Labels, Docstring, ...) reports the alias's
// own values and does not delegate.
type Alias struct {
	Base

	TargetPath string
	AliasLineno int

	// Wildcard marks an alias created by `from p import *`, expanded by the
	// resolver's Pass B into one concrete Alias per exported name (spec
	// §4.6).
	Wildcard bool

	// Inherited marks an alias synthesized by Class.AllMembers to represent
	// a base class's member (spec §4.1).
	Inherited bool

	resolved       bool
	finalTarget    Entity
	resolutionErr  error
}

func (a *Alias) Kind() EntityKind { return KindAlias }

// Resolved reports whether resolution has completed (successfully or not).
func (a *Alias) Resolved() bool { return a.resolved }

// IsAlias is always true; present for parity with a dynamically-typed
// `is_alias` property some extensions may probe for.
func (a *Alias) IsAlias() bool { return true }

// SetResolution is called by the resolver once a chain reaches its concrete
// end (or fails); it is the only mutator of resolution state (spec §4.6
// "Chain semantics": resolved Aliases cache only their final target).
func (a *Alias) SetResolution(target Entity, err error) {
	a.resolved = true
	a.finalTarget = target
	a.resolutionErr = err
	if target != nil {
		if withAliases, ok := target.(interface{ addAliasOf(*Alias) }); ok {
			withAliases.addAliasOf(a)
		}
	}
}

// FinalTarget returns the concrete entity at the end of the alias chain, or
// the resolution error if resolution failed or has not happened yet.
func (a *Alias) FinalTarget() (Entity, error) {
	if !a.resolved {
		return nil, &AliasResolutionError{AliasPath: a.CanonicalPath(), TargetPath: a.TargetPath, Reason: "not yet resolved"}
	}
	return a.finalTarget, a.resolutionErr
}

// Target returns the same cached entity and error as FinalTarget: the
// intermediate links of a chain are not kept, so the next link is not
// available.
func (a *Alias) Target() (Entity, error) {
	return a.FinalTarget()
}

// delegate resolves and returns the final non-Alias entity, panicking-free:
// callers that need a field from the proxied entity should use this, which
// mirrors spec §4.1 "Aliases as proxies".
func (a *Alias) delegate() (Entity, error) {
	target, err := a.FinalTarget()
	if err != nil {
		return nil, err
	}
	if chained, ok := target.(*Alias); ok {
		return chained.delegate()
	}
	return target, nil
}

func (a *Alias) IsPublic() bool {
	target, err := a.delegate()
	if err != nil {
		return false
	}
	return target.IsPublic()
}

func (a *Alias) IsExported() bool {
	target, err := a.delegate()
	if err != nil {
		return false
	}
	return target.IsExported()
}

func (a *Alias) IsDeprecated() bool {
	target, err := a.delegate()
	if err != nil {
		return a.Base.IsDeprecated()
	}
	return target.IsDeprecated()
}

// DelegatedDocstring proxies to the resolved target's docstring, matching
// spec §4.1's "Aliases as proxies" rule for any field beyond the
// alias-intrinsic ones.
func (a *Alias) DelegatedDocstring() *Docstring {
	target, err := a.delegate()
	if err != nil {
		return nil
	}
	return target.Docstring()
}

// AsExpression renders the alias target path as a scope-less Name
// expression, so an alias's textual target can be handled like any other
// expression.
func (a *Alias) AsExpression() expr.Expression {
	return &expr.Name{Value: a.TargetPath}
}
