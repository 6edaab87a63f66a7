package extension

// HookName identifies one of the fixed lifecycle points the walker (C3) and
// loader/resolver (C5/C6) fire at (spec §4.8). Generalizes the teacher's
// two fixed extension points (AnalyzerPlugin.BeforeWalk/AfterResolveIdent)
// into the full named hook set the spec requires — a flat interface with
// this many methods would force every extension to implement no-ops, which
// the teacher's own per-concern `With...` option pattern argues against.
type HookName string

const (
	HookOnNode HookName = "on_node"

	HookOnModuleNode    HookName = "on_module_node"
	HookOnClassNode     HookName = "on_class_node"
	HookOnFunctionNode  HookName = "on_function_node"
	HookOnAttributeNode HookName = "on_attribute_node"
	HookOnTypeAliasNode HookName = "on_type_alias_node"

	HookOnInstance HookName = "on_instance"

	HookOnModuleInstance    HookName = "on_module_instance"
	HookOnClassInstance     HookName = "on_class_instance"
	HookOnFunctionInstance  HookName = "on_function_instance"
	HookOnAttributeInstance HookName = "on_attribute_instance"
	HookOnTypeAliasInstance HookName = "on_type_alias_instance"

	HookOnMembers       HookName = "on_members"
	HookOnModuleMembers HookName = "on_module_members"
	HookOnClassMembers  HookName = "on_class_members"

	HookOnAliasInstance    HookName = "on_alias_instance"
	HookOnWildcardExpanded HookName = "on_wildcard_expansion"

	HookOnPackageLoaded HookName = "on_package_loaded"
)

// Event carries everything a hook callback needs: the entity the event
// concerns, its owning container (nil at on_node time, since the entity
// does not exist yet), and free-form extra data (e.g. the raw tree-sitter
// node for on_node hooks, kept as `any` so this package stays independent
// of pyast).
type Event struct {
	Entity Entity
	Owner  Entity
	Node   any
	Extra  map[string]any
}

// Entity is the minimal surface a hook needs from an object-model node;
// kept narrow (rather than importing model.Entity directly) so extension
// has no dependency on model, matching the layering already established
// between expr and model.
type Entity interface {
	Name() string
	CanonicalPath() string
}

// Handler is a hook callback. It may mutate whatever Event.Entity points to
// (hooks receive "the node (or object), the owning entity, and the agent",
// spec §4.8); the agent itself is implicit — callers close over it when
// registering.
type Handler func(Event)
