package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/pyapi/expr"
)

type fakeScope struct {
	path    string
	imports map[string]string
	parent  expr.Scope
}

func (s *fakeScope) ScopeCanonicalPath() string { return s.path }
func (s *fakeScope) ScopeParent() expr.Scope     { return s.parent }
func (s *fakeScope) ResolveImport(name string) (string, bool) {
	target, ok := s.imports[name]
	return target, ok
}

func TestNameCanonicalPathFallsBackToScopePath(t *testing.T) {
	n := &expr.Name{Value: "Widget", Scope: &fakeScope{path: "pkg.mod", imports: map[string]string{}}}
	assert.Equal(t, "pkg.mod.Widget", n.CanonicalPath())
}

func TestNameCanonicalPathResolvesThroughImportsMap(t *testing.T) {
	n := &expr.Name{Value: "Thing", Scope: &fakeScope{path: "pkg.mod", imports: map[string]string{"Thing": "pkg.impl.Thing"}}}
	assert.Equal(t, "pkg.impl.Thing", n.CanonicalPath())
}

func TestNameCanonicalPathWithoutScopeReturnsBareValue(t *testing.T) {
	n := &expr.Name{Value: "x"}
	assert.Equal(t, "x", n.CanonicalPath())
}

func TestAttributeStringFlattened(t *testing.T) {
	a := &expr.Attribute{Parts: []string{"a", "b", "c"}}
	assert.Equal(t, "a.b.c", a.String())
	assert.True(t, a.IsFlattened())
}

func TestAttributeStringWithNonNameBase(t *testing.T) {
	a := &expr.Attribute{Base: &expr.Call{Func: &expr.Name{Value: "f"}}, Parts: []string{"x"}}
	assert.Equal(t, "f().x", a.String())
	assert.False(t, a.IsFlattened())
}

func TestAttributeEqual(t *testing.T) {
	a := &expr.Attribute{Parts: []string{"a", "b"}}
	b := &expr.Attribute{Parts: []string{"a", "b"}}
	c := &expr.Attribute{Parts: []string{"a", "c"}}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestSequenceConstructors(t *testing.T) {
	list := expr.NewList([]expr.Expression{&expr.Constant{Raw: "1"}, &expr.Constant{Raw: "2"}})
	assert.Equal(t, "[1, 2]", list.String())

	tuple := expr.NewTuple([]expr.Expression{&expr.Constant{Raw: "1"}})
	assert.Equal(t, "(1)", tuple.String())

	set := expr.NewSet([]expr.Expression{&expr.Constant{Raw: "1"}})
	assert.Equal(t, "{1}", set.String())
}

func TestParameterRenderedDefault(t *testing.T) {
	required := &expr.Parameter{Name: "x"}
	assert.Equal(t, "", required.RenderedDefault())

	withDefault := &expr.Parameter{Name: "x", Default: &expr.Constant{Raw: "0"}}
	assert.Equal(t, "0", withDefault.RenderedDefault())
}

func TestModernizeRewritesTypingDict(t *testing.T) {
	in := &expr.Subscript{
		Value: &expr.Attribute{Parts: []string{"typing", "Dict"}},
		Slice: &expr.Tuple{},
	}
	out := expr.Modernize(in)
	sub, ok := out.(*expr.Subscript)
	if assert.True(t, ok) {
		name, ok := sub.Value.(*expr.Name)
		assert.True(t, ok)
		assert.Equal(t, "dict", name.Value)
	}
}

func TestModernizeRewritesOptional(t *testing.T) {
	in := &expr.Subscript{
		Value: &expr.Name{Value: "Optional"},
		Slice: &expr.Name{Value: "str"},
	}
	out := expr.Modernize(in)
	bin, ok := out.(*expr.BinOp)
	if assert.True(t, ok) {
		assert.Equal(t, "|", bin.Op)
		assert.Equal(t, "None", bin.Right.(*expr.Constant).Raw)
	}
}

func TestModernizeRewritesUnion(t *testing.T) {
	in := &expr.Subscript{
		Value: &expr.Attribute{Parts: []string{"typing", "Union"}},
		Slice: expr.NewTuple([]expr.Expression{&expr.Name{Value: "int"}, &expr.Name{Value: "str"}}),
	}
	out := expr.Modernize(in)
	bin, ok := out.(*expr.BinOp)
	if assert.True(t, ok) {
		assert.Equal(t, "|", bin.Op)
	}
}

func TestModernizeLeavesUnrelatedExpressionUnchanged(t *testing.T) {
	in := &expr.Subscript{Value: &expr.Name{Value: "list"}, Slice: &expr.Name{Value: "int"}}
	out := expr.Modernize(in)
	assert.Equal(t, "list[int]", out.String())
}

func TestModernizeIsIdempotent(t *testing.T) {
	in := &expr.Subscript{
		Value: &expr.Attribute{Parts: []string{"typing", "List"}},
		Slice: &expr.Name{Value: "int"},
	}
	once := expr.Modernize(in)
	twice := expr.Modernize(once)
	assert.Equal(t, once.String(), twice.String())
}
