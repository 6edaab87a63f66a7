package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
)

// handleImport implements `import a.b[.c]`, `import a.b as c`, and
// comma-joined `import a, b as c` (spec §4.3 "Imports"). Each binds a local
// name to an absolute target path via both the module's ImportsMap (so Name
// expressions resolve through it) and an Alias placeholder (so the target
// shows up as a member, per the object model's I1/I4 invariants).
func (s *state) handleImport(node *sitter.Node) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			dotted := dottedText(child, s.src)
			s.bindImport(dotted, firstSegment(dotted), node)
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil || alias == nil {
				continue
			}
			dotted := dottedText(name, s.src)
			s.bindImport(dotted, alias.Content(s.src), node)
		}
	}
}

// handleImportFrom implements `from p import x [as y]`, `from p import *`,
// and relative imports (`from . import x`, `from ..pkg import x`).
func (s *state) handleImportFrom(node *sitter.Node) {
	moduleNode := node.ChildByFieldName("module_name")
	var basePath string
	relative := false
	if moduleNode != nil {
		switch moduleNode.Type() {
		case "relative_import":
			relative = true
			basePath = s.resolveRelative(moduleNode)
		default:
			basePath = dottedText(moduleNode, s.src)
		}
	} else {
		// Bare `from . import x`: a relative_import node may appear directly
		// as a named child instead of under the module_name field depending
		// on grammar version; scan for it.
		for i := 0; i < int(node.NamedChildCount()); i++ {
			if node.NamedChild(i).Type() == "relative_import" {
				relative = true
				basePath = s.resolveRelative(node.NamedChild(i))
				break
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if moduleNode != nil && child.StartByte() == moduleNode.StartByte() {
			// The `from <module>` part names the source, not an imported name.
			continue
		}
		switch child.Type() {
		case "wildcard_import":
			s.bindWildcard(basePath, node)
		case "dotted_name":
			name := dottedText(child, s.src)
			localName := lastSegment(name)
			if relative && s.isInitModule() && basePath == s.module.CanonicalPath() && localName == s.siblingShadowName(name) {
				// `from . import b` inside a/__init__.py: member b would
				// shadow the submodule b; spec §4.3 skip rule.
				continue
			}
			target := joinDotted(basePath, name)
			if s.isSelfImport(target) {
				continue
			}
			s.bindImport(target, localName, node)
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			name := dottedText(nameNode, s.src)
			local := name
			if aliasNode != nil {
				local = aliasNode.Content(s.src)
			} else {
				local = lastSegment(name)
			}
			target := joinDotted(basePath, name)
			if s.isSelfImport(target) {
				continue
			}
			s.bindImport(target, local, node)
		}
	}
}

func (s *state) bindImport(targetPath, localName string, node *sitter.Node) {
	if localName == "" || targetPath == "" {
		return
	}
	mod, isModule := s.container.(*model.Module)
	if isModule {
		mod.ImportsMap[localName] = targetPath
	}
	alias := &model.Alias{
		Base:        model.Base{EntityName: localName, LabelSet: model.Labels{}},
		TargetPath:  targetPath,
		AliasLineno: int(node.StartPoint().Row) + 1,
	}
	alias.Loc = model.Location{
		Path:      s.path,
		LineStart: int(node.StartPoint().Row) + 1,
		LineEnd:   int(node.EndPoint().Row) + 1,
		ByteStart: int(node.StartByte()),
		ByteEnd:   int(node.EndByte()),
	}
	s.container.AddMember(alias)
	if s.w.Bus != nil {
		s.w.Bus.Fire(extension.HookOnAliasInstance, extension.Event{Entity: alias})
	}
}

func (s *state) bindWildcard(sourceModule string, node *sitter.Node) {
	if sourceModule == "" {
		return
	}
	alias := &model.Alias{
		Base:        model.Base{EntityName: "*" + sourceModule, LabelSet: model.Labels{}},
		TargetPath:  sourceModule,
		Wildcard:    true,
		AliasLineno: int(node.StartPoint().Row) + 1,
	}
	s.container.AddMember(alias)
}

// resolveRelative implements the level-hop rule: each leading '.' climbs one
// package level from the current module's canonical parent chain, accounting
// for package (has submodules) vs. regular-module semantics — a regular
// module's own parent is the first hop, whereas an __init__ module's own
// path already is the package.
func (s *state) resolveRelative(node *sitter.Node) string {
	level := 0
	var dotted string
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c.Type() == "import_prefix" {
			level = strings.Count(c.Content(s.src), ".")
		}
		if c.Type() == "dotted_name" {
			dotted = dottedText(c, s.src)
		}
	}
	base := s.module.CanonicalPath()
	parts := model.SplitPath(base)
	if !s.isInitModule() {
		// A regular module's own name is not a package level; the first dot
		// climbs to its enclosing package.
		if len(parts) > 0 {
			parts = parts[:len(parts)-1]
		}
	}
	hops := level - 1
	if hops < 0 {
		hops = 0
	}
	for i := 0; i < hops && len(parts) > 0; i++ {
		parts = parts[:len(parts)-1]
	}
	result := model.JoinPath(parts)
	if dotted != "" {
		result = joinDotted(result, dotted)
	}
	return result
}

func (s *state) isInitModule() bool {
	return strings.HasSuffix(s.module.FilePath, "__init__.py")
}

func (s *state) siblingShadowName(name string) string {
	return firstSegment(name)
}

func (s *state) isSelfImport(targetPath string) bool {
	return targetPath == s.module.CanonicalPath()
}

func dottedText(node *sitter.Node, src []byte) string {
	return node.Content(src)
}

func firstSegment(dotted string) string {
	if idx := strings.IndexByte(dotted, '.'); idx >= 0 {
		return dotted[:idx]
	}
	return dotted
}

func lastSegment(dotted string) string {
	if idx := strings.LastIndexByte(dotted, '.'); idx >= 0 {
		return dotted[idx+1:]
	}
	return dotted
}

func joinDotted(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "." + b
}
