package pyast_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/extension"
	"github.com/viant/pyapi/model"
	"github.com/viant/pyapi/pyast"
)

func walk(t *testing.T, source string) *model.Module {
	t.Helper()
	project := model.NewProject("pkg")
	w := pyast.NewWalker(project, extension.NewBus(), "")
	lines := strings.Split(source, "\n")
	mod, err := w.Walk(context.Background(), "pkg.mod", "pkg/mod.py", []byte(source), lines, nil)
	require.NoError(t, err)
	return mod
}

func TestWalkFunctionParametersAllFiveKinds(t *testing.T) {
	mod := walk(t, "def f(a, b=1, /, c=2, *args, d, **kwargs):\n    pass\n")

	member, ok := mod.GetMember("f")
	require.True(t, ok)
	fn := member.(*model.Function)
	require.Len(t, fn.Parameters, 6)

	byName := map[string]*expr.Parameter{}
	for _, p := range fn.Parameters {
		byName[p.Name] = p
	}
	assert.Equal(t, expr.ParamPositionalOnly, byName["a"].ParamKind)
	assert.Equal(t, expr.ParamPositionalOnly, byName["b"].ParamKind)
	assert.Equal(t, expr.ParamPositionalOrKeyword, byName["c"].ParamKind)
	assert.Equal(t, expr.ParamVarPositional, byName["args"].ParamKind)
	assert.Equal(t, expr.ParamKeywordOnly, byName["d"].ParamKind)
	assert.Equal(t, expr.ParamVarKeyword, byName["kwargs"].ParamKind)
}

func TestWalkClassWithBasesAndMethod(t *testing.T) {
	mod := walk(t, "class Widget(Base):\n    def render(self):\n        pass\n")

	member, ok := mod.GetMember("Widget")
	require.True(t, ok)
	class := member.(*model.Class)
	require.Len(t, class.Bases, 1)

	_, ok = class.GetMember("render")
	assert.True(t, ok)
}

func TestWalkPropertyDecoratorAddsLabel(t *testing.T) {
	mod := walk(t, "class Widget:\n    @property\n    def name(self):\n        return self._name\n")

	member, _ := mod.GetMember("Widget")
	class := member.(*model.Class)
	prop, ok := class.GetMember("name")
	require.True(t, ok)
	assert.True(t, prop.(*model.Function).LabelSet.Has("property"))
}

func TestWalkPropertySetterBindsToProperty(t *testing.T) {
	mod := walk(t, strings.Join([]string{
		"class Widget:",
		"    @property",
		"    def name(self):",
		"        return self._name",
		"",
		"    @name.setter",
		"    def name(self, value):",
		"        self._name = value",
		"",
	}, "\n"))

	member, _ := mod.GetMember("Widget")
	class := member.(*model.Class)
	prop, ok := class.GetMember("name")
	require.True(t, ok)
	fn, ok := prop.(*model.Function)
	require.True(t, ok)
	assert.NotNil(t, fn.Setter)
	assert.True(t, fn.LabelSet.Has("writable"))
}

func TestWalkSelfAssignmentCreatesInstanceAttribute(t *testing.T) {
	mod := walk(t, strings.Join([]string{
		"class Widget:",
		"    def __init__(self):",
		"        self.count = 0",
		"",
	}, "\n"))

	member, _ := mod.GetMember("Widget")
	class := member.(*model.Class)
	_, ok := class.GetMember("count")
	assert.True(t, ok)
}

func TestWalkTypeCheckingGuardMarksNonRuntime(t *testing.T) {
	mod := walk(t, strings.Join([]string{
		"from typing import TYPE_CHECKING",
		"if TYPE_CHECKING:",
		"    def shim():",
		"        pass",
		"",
	}, "\n"))

	member, ok := mod.GetMember("shim")
	require.True(t, ok)
	fn := member.(*model.Function)
	assert.False(t, fn.IsRuntime)
}

func TestWalkOverloadsGroupUnderClass(t *testing.T) {
	mod := walk(t, strings.Join([]string{
		"class Widget:",
		"    @typing.overload",
		"    def render(self, x: int) -> None: ...",
		"    @typing.overload",
		"    def render(self, x: str) -> None: ...",
		"    def render(self, x):",
		"        pass",
		"",
	}, "\n"))

	member, _ := mod.GetMember("Widget")
	class := member.(*model.Class)
	assert.Len(t, class.Overloads["render"], 2)
	_, ok := class.GetMember("render")
	assert.True(t, ok)
}

func TestWalkImportCreatesAliasAndImportsMapEntry(t *testing.T) {
	mod := walk(t, "from pkg.impl import Thing\n")

	member, ok := mod.GetMember("Thing")
	require.True(t, ok)
	alias, ok := member.(*model.Alias)
	require.True(t, ok)
	assert.Equal(t, "pkg.impl.Thing", alias.TargetPath)
	assert.Equal(t, "pkg.impl.Thing", mod.ImportsMap["Thing"])
}
