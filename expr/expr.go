// Package expr implements the expression model (spec component C2): a
// tagged-variant tree mirroring source-level expressions — annotations,
// decorators, default values — with Name nodes carrying a back-reference to
// their enclosing scope so canonical paths can be resolved later by the
// alias resolver.
//
// This package intentionally has no dependency on the model package. A Name
// node's "enclosing scope" is the Scope interface below, which model.Module
// and model.Class satisfy structurally; that keeps the dependency one-way
// (model imports expr, not the reverse), matching spec §9's note that the
// object and expression models are related but structurally we want the
// smaller, leaf package to stay dependency-free.
package expr

import "fmt"

// Scope is the minimal surface a Name expression needs from its enclosing
// entity: looking up a locally-bound import and walking up to the root to
// build a canonical path.
type Scope interface {
	ResolveImport(localName string) (targetPath string, ok bool)
	ScopeCanonicalPath() string
	ScopeParent() Scope
}

// Kind discriminates the concrete expression variant; it doubles as the
// `cls` discriminator on the wire (see the encoding package).
type Kind string

const (
	KindName           Kind = "Name"
	KindAttribute      Kind = "Attribute"
	KindCall           Kind = "Call"
	KindKeyword        Kind = "Keyword"
	KindVarPositional  Kind = "VarPositional"
	KindVarKeyword     Kind = "VarKeyword"
	KindConstant       Kind = "Constant"
	KindFString        Kind = "FString"
	KindJoinedStr      Kind = "JoinedStr"
	KindLambda         Kind = "Lambda"
	KindList           Kind = "List"
	KindTuple          Kind = "Tuple"
	KindSet            Kind = "Set"
	KindDict           Kind = "Dict"
	KindListComp       Kind = "ListComp"
	KindSetComp        Kind = "SetComp"
	KindDictComp       Kind = "DictComp"
	KindGeneratorExp   Kind = "GeneratorExp"
	KindSubscript      Kind = "Subscript"
	KindSlice          Kind = "Slice"
	KindExtSlice       Kind = "ExtSlice"
	KindIfExp          Kind = "IfExp"
	KindBinOp          Kind = "BinOp"
	KindBoolOp         Kind = "BoolOp"
	KindCompare        Kind = "Compare"
	KindUnaryOp        Kind = "UnaryOp"
	KindYield          Kind = "Yield"
	KindYieldFrom      Kind = "YieldFrom"
	KindNamedExpr      Kind = "NamedExpr"
	KindParameter      Kind = "Parameter"
	KindTypeParameter  Kind = "TypeParameter"
)

// Expression is implemented by every variant in this package.
type Expression interface {
	Kind() Kind
	// String renders source-equivalent text (aside from the Attribute
	// flattening rule, spec §4.2).
	String() string
	// Equal reports structural equality, ignoring any Name.Scope back
	// references (two expressions built in different modules can still be
	// structurally equal).
	Equal(other Expression) bool
}

// SafeGet evaluates fn and, if fn panics, returns a nil expression and an
// error carrying the recovered value instead of panicking, mirroring the
// `safe_get_*` wrappers of spec §4.2. Callers are expected to log that error
// themselves since this package does not depend on a logger.
func SafeGet(fn func() (Expression, error)) (result Expression, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("expr: recovered panic: %v", r)
		}
	}()
	return fn()
}
