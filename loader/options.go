package loader

import "github.com/viant/pyapi/docstring"

// Options controls one Load call (spec §4.5).
type Options struct {
	SearchPaths []string

	// Submodules, when true (the default), recurses depth-first into
	// submodules of a regular/namespace package.
	Submodules bool

	DocstringStyle docstring.Style

	// AllowInspection permits falling back to the dynamic-analysis
	// collaborator for modules the static walker cannot handle (compiled
	// extensions, or files flagged inspection-only).
	AllowInspection bool

	// ForceInspection always uses the dynamic collaborator, even for
	// modules the static walker could handle.
	ForceInspection bool

	ResolveAliases  bool
	ResolveExternal bool

	// ResolverCap bounds the wildcard fixed-point loop (spec §5
	// "Cancellation and timeouts"); zero selects the resolver's own
	// default.
	ResolverCap int
}

// DefaultOptions mirrors spec §6's documented defaults.
func DefaultOptions() Options {
	return Options{Submodules: true}
}
