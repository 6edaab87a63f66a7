package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

func baseRef(path string) expr.Expression {
	return &expr.Attribute{Parts: model.SplitPath(path)}
}

func TestResolveBasesSkipsUnresolvableBase(t *testing.T) {
	p := model.NewProject("pkg")
	mod := model.NewModule("pkg")
	class := model.NewClass("Widget")
	class.Bases = []expr.Expression{baseRef("pkg.Missing")}
	mod.AddMember(class)
	p.AddModule(mod)

	bases := class.ResolveBases(p)
	assert.Empty(t, bases)
}

func TestAllMembersMergesSingleInheritance(t *testing.T) {
	p := model.NewProject("pkg")
	mod := model.NewModule("pkg")

	base := model.NewClass("Base")
	base.AddMember(model.NewFunction("greet"))
	mod.AddMember(base)

	derived := model.NewClass("Derived")
	derived.Bases = []expr.Expression{baseRef("pkg.Base")}
	derived.AddMember(model.NewFunction("run"))
	mod.AddMember(derived)

	p.AddModule(mod)

	merged, err := derived.AllMembers(p)
	require.NoError(t, err)

	_, ok := merged.Get("run")
	assert.True(t, ok)

	inherited, ok := merged.Get("greet")
	require.True(t, ok)
	alias, ok := inherited.(*model.Alias)
	require.True(t, ok)
	assert.True(t, alias.Inherited)
	assert.Equal(t, "pkg.Base.greet", alias.TargetPath)
}

func TestAllMembersFailsWhileWalkInProgress(t *testing.T) {
	p := model.NewProject("pkg")
	mod := model.NewModule("pkg")
	class := model.NewClass("Widget")
	mod.AddMember(class)
	p.AddModule(mod)

	class.SetWalkInProgress(true)
	_, err := class.AllMembers(p)
	require.Error(t, err)
	var walkErr *model.WalkInProgressError
	assert.ErrorAs(t, err, &walkErr)
}

func TestAllMembersDiamondPrefersNearestAncestor(t *testing.T) {
	p := model.NewProject("pkg")
	mod := model.NewModule("pkg")

	root := model.NewClass("Root")
	root.AddMember(model.NewFunction("shared"))
	mod.AddMember(root)

	left := model.NewClass("Left")
	left.Bases = []expr.Expression{baseRef("pkg.Root")}
	mod.AddMember(left)

	right := model.NewClass("Right")
	right.Bases = []expr.Expression{baseRef("pkg.Root")}
	rightShared := model.NewFunction("shared")
	right.AddMember(rightShared)
	mod.AddMember(right)

	bottom := model.NewClass("Bottom")
	bottom.Bases = []expr.Expression{baseRef("pkg.Left"), baseRef("pkg.Right")}
	mod.AddMember(bottom)

	p.AddModule(mod)

	merged, err := bottom.AllMembers(p)
	require.NoError(t, err)

	shared, ok := merged.Get("shared")
	require.True(t, ok)
	alias, ok := shared.(*model.Alias)
	require.True(t, ok)
	assert.Equal(t, "pkg.Right.shared", alias.TargetPath)
}
