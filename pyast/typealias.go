package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
)

// handleTypeAlias implements the explicit `type X[T] = <expr>` statement
// (spec §4.3 "Type aliases").
func (s *state) handleTypeAlias(node *sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	valueNode := node.ChildByFieldName("value")
	if nameNode == nil {
		return
	}
	s.fireNodeHooks(extension.HookOnTypeAliasNode, node)

	ta := model.NewTypeAlias(nameNode.Content(s.src))
	ta.IsRuntime = !s.typeGuarded
	ta.Loc = model.Location{
		Path:      s.path,
		LineStart: int(node.StartPoint().Row) + 1,
		LineEnd:   int(node.EndPoint().Row) + 1,
		ByteStart: int(node.StartByte()),
		ByteEnd:   int(node.EndByte()),
	}
	if valueNode != nil {
		ta.Value = s.buildExpr(valueNode)
	}
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		ta.TypeParams = s.buildTypeParameters(typeParams)
	}
	s.container.AddMember(ta)

	s.fireInstanceHooks(extension.HookOnTypeAliasInstance, ta, s.container)

	if s.w.Bus != nil {
		s.w.Bus.Fire(extension.HookOnMembers, extension.Event{Entity: ta})
	}
}
