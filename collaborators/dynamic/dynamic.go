// Package dynamic specifies the dynamic-analysis collaborator interface
// (spec §6): "given a module import name, a filepath, and a list of import
// roots, returns a Module whose shape is indistinguishable from one
// produced by C3." The loader composes statically- and dynamically-
// analyzed modules without distinction aside from the Origin field.
//
// Grounded in inspector.Inspector (InspectSource/File/Package/Project):
// that interface is the teacher's "pluggable analysis strategy selected by
// a factory" shape, generalized here from "one interface per source
// language" to "one interface, implemented by whatever can introspect a
// running Python process" (e.g. importing the module and reflecting on
// its live attributes) — no concrete implementation ships, matching
// spec.md §1's Non-goal on source execution beyond introspection.
package dynamic

import "github.com/viant/pyapi/model"

// Collaborator inspects a module that the static walker cannot or should
// not handle (a compiled extension, or one explicitly flagged
// inspection-only).
type Collaborator interface {
	// InspectModule returns a populated *model.Module for importName,
	// located at filePath (which may be empty for built-in/compiled
	// modules with no on-disk source), using importRoots to resolve any
	// further imports the dynamic inspection needs to chase.
	InspectModule(importName, filePath string, importRoots []string) (*model.Module, error)
}
