package model

import "strings"

// EntityKind discriminates the concrete type behind an Entity, used both for
// dynamic dispatch in this package and as the `kind` discriminator on the
// wire (see the encoding package).
type EntityKind string

const (
	KindModule    EntityKind = "module"
	KindClass     EntityKind = "class"
	KindFunction  EntityKind = "function"
	KindAttribute EntityKind = "attribute"
	KindTypeAlias EntityKind = "type_alias"
	KindAlias     EntityKind = "alias"
)

// AnalysisOrigin records whether an entity was produced by the static AST
// walker or by the dynamic-inspection collaborator (spec §6).
type AnalysisOrigin string

const (
	OriginStatic  AnalysisOrigin = "static"
	OriginDynamic AnalysisOrigin = "dynamic"
)

// Docstring is the raw handle stored on every entity (spec §4.10). Parsing
// into sections is delegated to the docstring package's façade, whose
// wrapper holds this pointer and caches the parsed sections itself.
type Docstring struct {
	Value     string
	LineStart int
	LineEnd   int
	Style     string
}

// Entity is the common surface every object-model node implements. Concrete
// kinds are Module, Class, Function, Attribute, TypeAlias and Alias.
type Entity interface {
	Kind() EntityKind
	Name() string
	Parent() Entity
	setParent(Entity)
	CanonicalPath() string
	Location() Location
	Labels() Labels
	Docstring() *Docstring
	Origin() AnalysisOrigin
	Runtime() bool

	IsPublic() bool
	IsPrivate() bool
	IsSpecial() bool
	IsClassPrivate() bool
	IsDeprecated() bool
	IsExported() bool
	IsWildcardExposed() bool

	// Extra is a free-form map scoped by extension namespace.
	Extra() map[string]any
}

// Base is embedded by every concrete entity type and implements the parts of
// Entity that do not vary by kind.
type Base struct {
	EntityName   string
	ParentEntity Entity
	Loc          Location
	Doc          *Docstring
	LabelSet     Labels
	AnalysisFrom AnalysisOrigin
	IsRuntime    bool
	ExtraData    map[string]any

	// Overrides: explicitly forced visibility/deprecation, taking
	// precedence over the name-convention rule (spec §4.1).
	ForcePublic     *bool
	ForceDeprecated *bool

	// AliasesOf holds back-references to Aliases whose target resolves to
	// this entity, for reverse lookup. Non-owning.
	AliasesOfList []*Alias

	// WildcardExposedFlag is set by the resolver when this entity was
	// surfaced into another module via a wildcard-import expansion.
	WildcardExposedFlag bool
}

func (b *Base) Name() string       { return b.EntityName }
func (b *Base) Parent() Entity     { return b.ParentEntity }
func (b *Base) setParent(p Entity) { b.ParentEntity = p }
func (b *Base) Location() Location { return b.Loc }
func (b *Base) Labels() Labels     { return b.LabelSet }
func (b *Base) Docstring() *Docstring {
	return b.Doc
}
func (b *Base) Origin() AnalysisOrigin { return b.AnalysisFrom }
func (b *Base) Runtime() bool          { return b.IsRuntime }

func (b *Base) Extra() map[string]any {
	if b.ExtraData == nil {
		b.ExtraData = map[string]any{}
	}
	return b.ExtraData
}

func (b *Base) AliasesOf() []*Alias { return b.AliasesOfList }

func (b *Base) addAliasOf(a *Alias) {
	b.AliasesOfList = append(b.AliasesOfList, a)
}

func (b *Base) IsWildcardExposed() bool { return b.WildcardExposedFlag }

// IsSpecial reports "dunder" names, e.g. __init__, __call__.
func (b *Base) IsSpecial() bool {
	n := b.EntityName
	return strings.HasPrefix(n, "__") && strings.HasSuffix(n, "__") && len(n) > 4
}

// IsClassPrivate reports Python's name-mangled convention: leading double
// underscore, not dunder.
func (b *Base) IsClassPrivate() bool {
	n := b.EntityName
	if b.IsSpecial() {
		return false
	}
	return strings.HasPrefix(n, "__")
}

// IsPrivate reports a single leading underscore (and not class-private).
func (b *Base) IsPrivate() bool {
	n := b.EntityName
	if b.IsSpecial() || b.IsClassPrivate() {
		return false
	}
	return strings.HasPrefix(n, "_")
}

func (b *Base) IsDeprecated() bool {
	if b.ForceDeprecated != nil {
		return *b.ForceDeprecated
	}
	return false
}

// CanonicalPath walks the parent chain and joins names with '.', per spec
// invariant I3 and the Glossary definition of "canonical path".
func (b *Base) CanonicalPath() string {
	var parts []string
	var cur Entity = b.ParentEntity
	parts = append(parts, b.EntityName)
	for cur != nil {
		parts = append(parts, cur.Name())
		cur = cur.Parent()
	}
	// parts were collected leaf-to-root; reverse.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// SplitPath splits a canonical or target path on '.', the form required by
// dotted-path member lookup (spec §4.1).
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// JoinPath is the inverse of SplitPath.
func JoinPath(parts []string) string {
	return strings.Join(parts, ".")
}
