package pyast

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
)

// handleClass implements spec §4.3 "Class definitions": bases and
// base-keyword-arguments as expressions, decorator-derived labels, type
// parameters (PEP 695).
func (s *state) handleClass(node *sitter.Node, decorators []expr.Expression) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(s.src)

	s.fireNodeHooks(extension.HookOnClassNode, node)

	class := model.NewClass(name)
	class.IsRuntime = !s.typeGuarded
	class.Loc = model.Location{
		Path:      s.path,
		LineStart: int(node.StartPoint().Row) + 1,
		LineEnd:   int(node.EndPoint().Row) + 1,
		ByteStart: int(node.StartByte()),
		ByteEnd:   int(node.EndByte()),
	}
	class.Decorators = decorators
	for _, d := range decorators {
		path, kwargs := decoratorCallable(d)
		if labels, ok := wellKnownDecorators[path]; ok {
			for _, l := range labels {
				class.LabelSet.Add(l)
			}
		}
		if path == "dataclasses.dataclass" || path == "dataclass" {
			applyDataclassKeywords(class.LabelSet, kwargs)
		}
	}

	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		for i := 0; i < int(superclasses.NamedChildCount()); i++ {
			arg := superclasses.NamedChild(i)
			if arg.Type() == "keyword_argument" {
				name := arg.ChildByFieldName("name")
				value := arg.ChildByFieldName("value")
				class.BaseKeywords = append(class.BaseKeywords, &expr.Keyword{Name: s.text(name), Value: s.buildExpr(value)})
				continue
			}
			class.Bases = append(class.Bases, s.buildExpr(arg))
		}
	}
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		class.TypeParams = s.buildTypeParameters(typeParams)
	}

	s.container.AddMember(class)

	s.fireInstanceHooks(extension.HookOnClassInstance, class, s.container)

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.NamedChildCount() > 0 {
		if doc := trailingDocstring(body.NamedChild(0), s.src); doc != nil {
			class.Doc = doc
		}
	}

	class.SetWalkInProgress(true)
	prevContainer := s.container
	s.container = class
	s.walkBody(body)
	s.container = prevContainer
	class.SetWalkInProgress(false)

	if init, ok := class.GetMember("__init__"); ok {
		if fn, ok := init.(*model.Function); ok && len(fn.Parameters) > 0 {
			class.ConstructorParams = fn.Parameters[1:] // drop `self`
		}
	}

	if s.w.Bus != nil {
		s.w.Bus.Fire(extension.HookOnClassMembers, extension.Event{Entity: class})
		s.w.Bus.Fire(extension.HookOnMembers, extension.Event{Entity: class})
	}
}
