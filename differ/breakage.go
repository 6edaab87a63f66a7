// Package differ implements spec component C7: walks two Module snapshots
// in parallel, matching members by name, and yields an ordered list of
// Breakage records for every API-breaking change spec.md §4.7 enumerates.
//
// New package (no direct teacher analogue for a structural differ); its
// parallel-tree-walk shape mirrors inspector/graph/project.go's own
// recursive descent over a *graph.Package's nested Types/Fields/Functions,
// generalized here to walk two trees side by side instead of one.
package differ

import "github.com/viant/pyapi/model"

// Kind discriminates the breakage rule that fired (spec §4.7's table).
type Kind string

const (
	ParameterMoved          Kind = "parameter-moved"
	ParameterRemoved        Kind = "parameter-removed"
	ParameterKindChanged    Kind = "parameter-kind-changed"
	ParameterDefaultChanged Kind = "parameter-default-changed"
	ParameterNowRequired    Kind = "parameter-now-required"
	ParameterAddedRequired  Kind = "parameter-added-required"
	ReturnTypeIncompatible  Kind = "return-type-incompatible" // reserved, never emitted
	ObjectRemoved           Kind = "object-removed"
	ObjectKindChanged       Kind = "object-kind-changed"
	AttributeTypeIncompatible Kind = "attribute-type-incompatible" // reserved, never emitted
	AttributeValueChanged   Kind = "attribute-value-changed"
	ClassBaseRemoved        Kind = "class-base-removed"
)

// Breakage is one detected API-breaking change.
type Breakage struct {
	Kind        Kind
	OldPath     string
	NewPath     string
	Explanation string

	// Location-of-the-new-object fields, populated when the new object
	// still exists (e.g. parameter-moved); zero for object-removed.
	File string
	Line int

	// Fields specific to parameter-kind breakages; zero value when not
	// applicable.
	ParameterName string
	OldIndex      int
	NewIndex      int
	OldValue      string
	NewValue      string
}

func locationOf(e model.Entity) (string, int) {
	loc := e.Location()
	return loc.Path, loc.LineStart
}
