// Package pyast implements the AST walker (spec component C3): it turns one
// module's parsed Python syntax tree into a populated model.Module subtree,
// leaving unresolved cross-module references as model.Alias placeholders for
// the resolver to chase later.
//
// Grounded directly in inspector/golang/inspector_tree_sitter.go's
// processFile node-switch shape, generalized from Go's flat declaration list
// to Python's nested, scope-sensitive grammar using the node vocabulary
// (class_definition, function_definition, decorated_definition,
// typed_parameter, ChildByFieldName) established by the retrieved Python
// tree-sitter parser.
package pyast

import (
	"context"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
)

// scopeContainer is what the walker needs from its "current container": a
// place to add members (model.Container) that is also a valid enclosing
// scope for Name expressions (expr.Scope). *model.Module and *model.Class
// both satisfy this structurally.
type scopeContainer interface {
	model.Container
	expr.Scope
}

// Walker drives one module's walk (spec §4.3 input: "module name, absolute
// filepath, source text, parent module, extension bus, docstring style, and
// the collections").
type Walker struct {
	Project        *model.Project
	Bus            *extension.Bus
	DocstringStyle string
}

func NewWalker(project *model.Project, bus *extension.Bus, docstringStyle string) *Walker {
	return &Walker{Project: project, Bus: bus, DocstringStyle: docstringStyle}
}

// state is the per-module walk context threaded through every statement
// handler.
type state struct {
	w           *Walker
	path        string
	src         []byte
	lines       []string
	container   scopeContainer
	module      *model.Module
	typeGuarded bool

	// inMethodBody/methodClass track walking a method body so `self.x = ...`
	// assignments (spec §4.3) can attach an instance attribute to the
	// enclosing class even though the function body is not itself a member
	// container.
	inMethodBody bool
	methodClass  *model.Class
}

func (s *state) scope() expr.Scope { return s.container }

// fireNodeHooks implements spec §4.8's pre-creation hook point: fired before
// the entity behind node exists, so Entity/Owner are left unset (hooks.go's
// Event doc) and Node carries the raw syntax node instead.
func (s *state) fireNodeHooks(kind extension.HookName, node *sitter.Node) {
	if s.w.Bus == nil {
		return
	}
	ev := extension.Event{Node: node}
	s.w.Bus.Fire(extension.HookOnNode, ev)
	s.w.Bus.Fire(kind, ev)
}

// fireInstanceHooks fires the generic on_instance hook alongside the
// kind-specific one (spec §4.8), once an entity has been constructed and
// added to its owner.
func (s *state) fireInstanceHooks(kind extension.HookName, entity, owner extension.Entity) {
	if s.w.Bus == nil {
		return
	}
	ev := extension.Event{Entity: entity, Owner: owner}
	s.w.Bus.Fire(extension.HookOnInstance, ev)
	s.w.Bus.Fire(kind, ev)
}

func (s *state) enclosingClass() (*model.Class, bool) {
	if s.methodClass == nil {
		return nil, false
	}
	return s.methodClass, true
}

// Walk parses source and builds a Module entity. Parse failures on the file
// as a whole are fatal to this module only (spec §7 "Load-time errors");
// failures on individual statements are caught inside walkBody and do not
// abort the module.
func (w *Walker) Walk(ctx context.Context, name, filePath string, source []byte, lines []string, parent *model.Module) (*model.Module, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("pyast: parse %s: %w", filePath, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if w.Bus != nil {
		ev := extension.Event{Node: root}
		w.Bus.Fire(extension.HookOnNode, ev)
		w.Bus.Fire(extension.HookOnModuleNode, ev)
	}

	mod := model.NewModule(name)
	mod.FilePath = filePath
	mod.AnalysisFrom = model.OriginStatic
	mod.Loc = model.Location{Path: filePath, LineStart: 1, LineEnd: len(lines), ByteStart: 0, ByteEnd: len(source)}

	if parent != nil {
		parent.AddMember(mod)
	}

	st := &state{w: w, path: filePath, src: source, lines: lines, container: mod, module: mod}

	if w.Bus != nil {
		ev := extension.Event{Entity: mod}
		w.Bus.Fire(extension.HookOnInstance, ev)
		w.Bus.Fire(extension.HookOnModuleInstance, ev)
	}

	if root.NamedChildCount() > 0 {
		if doc := trailingDocstring(root.NamedChild(0), source); doc != nil {
			mod.Doc = doc
		}
	}
	st.walkBody(root)

	if w.Bus != nil {
		w.Bus.Fire(extension.HookOnModuleMembers, extension.Event{Entity: mod})
		w.Bus.Fire(extension.HookOnMembers, extension.Event{Entity: mod})
	}

	return mod, nil
}

// walkBody iterates the named children of a module/class body in
// declaration order, dispatching each to its statement handler, and attaches
// a trailing bare-string statement as the docstring of the attribute the
// preceding statement just created (spec §4.3 "the docstring for an
// attribute is the immediately following string-expression-only
// statement"). Errors at statement granularity are logged and the
// statement dropped (spec §4.3 "Failure semantics").
func (s *state) walkBody(body *sitter.Node) {
	n := int(body.NamedChildCount())
	for i := 0; i < n; i++ {
		node := body.NamedChild(i)
		created := s.walkStatement(node)
		if created != nil && i+1 < n {
			if doc := trailingDocstring(body.NamedChild(i+1), s.src); doc != nil {
				created.Doc = doc
			}
		}
	}
}

// walkStatement dispatches one statement and returns the Attribute it
// created, if any, so walkBody can attach a trailing docstring.
func (s *state) walkStatement(node *sitter.Node) (created *model.Attribute) {
	defer func() {
		if r := recover(); r != nil {
			err := &StatementError{Path: s.path, Line: int(node.StartPoint().Row) + 1, Reason: fmt.Sprint(r)}
			slog.Warn("pyast: statement dropped", "err", err)
			created = nil
		}
	}()

	switch node.Type() {
	case "import_statement":
		s.handleImport(node)
	case "import_from_statement":
		s.handleImportFrom(node)
	case "future_import_statement":
		// `from __future__ import ...` carries no API-relevant bindings.
	case "expression_statement":
		return s.handleExpressionStatement(node)
	case "assignment":
		return s.handleAssignmentNode(node)
	case "augmented_assignment":
		s.handleAugmentedAssignment(node)
	case "function_definition":
		s.handleFunction(node, nil)
	case "class_definition":
		s.handleClass(node, nil)
	case "decorated_definition":
		s.handleDecorated(node)
	case "if_statement":
		s.handleIf(node)
	case "type_alias_statement":
		s.handleTypeAlias(node)
	case "comment", "pass_statement":
		// no-op
	default:
		// Unsupported node shapes (match statements used as top-level
		// declarations, etc.) are skipped silently per spec §4.3.
	}
	return nil
}

// handleIf implements the `if TYPE_CHECKING:` guard rule (spec §4.3): when
// the test resolves to `typing.TYPE_CHECKING` or bare `TYPE_CHECKING`, every
// declaration in the body is marked non-runtime.
func (s *state) handleIf(node *sitter.Node) {
	test := node.ChildByFieldName("condition")
	consequence := node.ChildByFieldName("consequence")
	if test != nil && s.isTypeCheckingGuard(test) && consequence != nil {
		prev := s.typeGuarded
		s.typeGuarded = true
		s.walkBody(consequence)
		s.typeGuarded = prev
		return
	}
	if consequence != nil {
		s.walkBody(consequence)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "elif_clause":
			if cons := child.ChildByFieldName("consequence"); cons != nil {
				s.walkBody(cons)
			}
		case "else_clause":
			if cons := child.ChildByFieldName("body"); cons != nil {
				s.walkBody(cons)
			}
		}
	}
}

// isTypeCheckingGuard recognizes `if TYPE_CHECKING:` and
// `if typing.TYPE_CHECKING:` (spec §4.3 "if guards"); it matches on the
// textual name rather than resolving the import, since the guard must apply
// even before imports are resolved.
func (s *state) isTypeCheckingGuard(test *sitter.Node) bool {
	switch test.Type() {
	case "identifier":
		return test.Content(s.src) == "TYPE_CHECKING"
	case "attribute":
		attr := test.ChildByFieldName("attribute")
		return attr != nil && attr.Content(s.src) == "TYPE_CHECKING"
	}
	return false
}

// handleExpressionStatement covers bare string docstrings (handled by
// callers inspecting the previous sibling) and `__all__`/attribute-free
// expressions that carry no declaration, which are otherwise ignored.
func (s *state) handleExpressionStatement(node *sitter.Node) *model.Attribute {
	if node.NamedChildCount() == 0 {
		return nil
	}
	inner := node.NamedChild(0)
	switch inner.Type() {
	case "assignment":
		return s.handleAssignmentNode(inner)
	case "augmented_assignment":
		s.handleAugmentedAssignment(inner)
	case "string":
		// Standalone docstring statements are consumed when attached to the
		// preceding declaration (see trailingDocstring); a leading one at
		// module/class start is module/class docstring (handled by callers
		// that inspect body.NamedChild(0) directly).
	}
	return nil
}

// trailingDocstring reports the Docstring a bare string-expression statement
// represents, or nil if node isn't one.
func trailingDocstring(node *sitter.Node, src []byte) *model.Docstring {
	if node.Type() != "expression_statement" || node.NamedChildCount() == 0 {
		return nil
	}
	str := node.NamedChild(0)
	if str.Type() != "string" {
		return nil
	}
	return &model.Docstring{
		Value:     stringLiteralValue(str.Content(src)),
		LineStart: int(str.StartPoint().Row) + 1,
		LineEnd:   int(str.EndPoint().Row) + 1,
	}
}

// stringLiteralValue strips the simplest quote/prefix forms; it is a
// best-effort unescape, not a full Python string-literal parser (quadruple
// quoting, byte strings, and escape sequences are left verbatim), matching
// this walker's "degrade, don't drop" failure philosophy.
func stringLiteralValue(raw string) string {
	trimmed := raw
	for _, prefix := range []string{"r", "R", "u", "U", "b", "B", "f", "F", "rb", "Rb", "rB", "RB", "br", "Br", "bR", "BR"} {
		if len(trimmed) > len(prefix) && trimmed[:len(prefix)] == prefix {
			trimmed = trimmed[len(prefix):]
			break
		}
	}
	for _, q := range []string{`"""`, "'''", `"`, "'"} {
		if len(trimmed) >= 2*len(q) && trimmed[:len(q)] == q && trimmed[len(trimmed)-len(q):] == q {
			return trimmed[len(q) : len(trimmed)-len(q)]
		}
	}
	return trimmed
}
