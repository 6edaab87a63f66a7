package differ_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/differ"
	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

func moduleWithFunction(params ...*expr.Parameter) (*model.Project, *model.Module) {
	p := model.NewProject("pkg")
	mod := model.NewModule("pkg")
	fn := model.NewFunction("render")
	fn.Parameters = params
	mod.AddMember(fn)
	p.AddModule(mod)
	return p, mod
}

func TestDiffParameterRemoved(t *testing.T) {
	oldProject, oldMod := moduleWithFunction(
		&expr.Parameter{Name: "self", ParamKind: expr.ParamPositionalOrKeyword},
		&expr.Parameter{Name: "count", ParamKind: expr.ParamPositionalOrKeyword},
	)
	newProject, newMod := moduleWithFunction(
		&expr.Parameter{Name: "self", ParamKind: expr.ParamPositionalOrKeyword},
	)

	d := differ.New(oldProject, newProject)
	breakages := d.Check(oldMod, newMod)

	require.Len(t, breakages, 1)
	assert.Equal(t, differ.ParameterRemoved, breakages[0].Kind)
	assert.Equal(t, "count", breakages[0].ParameterName)
}

func TestDiffParameterMoved(t *testing.T) {
	oldProject, oldMod := moduleWithFunction(
		&expr.Parameter{Name: "self", ParamKind: expr.ParamPositionalOrKeyword},
		&expr.Parameter{Name: "a", ParamKind: expr.ParamPositionalOrKeyword},
		&expr.Parameter{Name: "b", ParamKind: expr.ParamPositionalOrKeyword},
	)
	newProject, newMod := moduleWithFunction(
		&expr.Parameter{Name: "self", ParamKind: expr.ParamPositionalOrKeyword},
		&expr.Parameter{Name: "b", ParamKind: expr.ParamPositionalOrKeyword},
		&expr.Parameter{Name: "a", ParamKind: expr.ParamPositionalOrKeyword},
	)

	d := differ.New(oldProject, newProject)
	breakages := d.Check(oldMod, newMod)

	require.Len(t, breakages, 2)
	for _, b := range breakages {
		assert.Equal(t, differ.ParameterMoved, b.Kind)
	}
}

func TestDiffObjectRemoved(t *testing.T) {
	oldProject := model.NewProject("pkg")
	oldMod := model.NewModule("pkg")
	oldMod.AddMember(model.NewFunction("render"))
	oldProject.AddModule(oldMod)

	newProject := model.NewProject("pkg")
	newMod := model.NewModule("pkg")
	newProject.AddModule(newMod)

	d := differ.New(oldProject, newProject)
	breakages := d.Check(oldMod, newMod)

	require.Len(t, breakages, 1)
	assert.Equal(t, differ.ObjectRemoved, breakages[0].Kind)
	assert.Equal(t, "pkg.render", breakages[0].OldPath)
}

func TestDiffNoBreakageWhenIdentical(t *testing.T) {
	oldProject, oldMod := moduleWithFunction(&expr.Parameter{Name: "self", ParamKind: expr.ParamPositionalOrKeyword})
	newProject, newMod := moduleWithFunction(&expr.Parameter{Name: "self", ParamKind: expr.ParamPositionalOrKeyword})

	d := differ.New(oldProject, newProject)
	breakages := d.Check(oldMod, newMod)

	assert.Empty(t, breakages)
}

func TestDiffPrivateMemberIgnored(t *testing.T) {
	oldProject := model.NewProject("pkg")
	oldMod := model.NewModule("pkg")
	oldMod.AddMember(model.NewFunction("_internal"))
	oldProject.AddModule(oldMod)

	newProject := model.NewProject("pkg")
	newMod := model.NewModule("pkg")
	newProject.AddModule(newMod)

	d := differ.New(oldProject, newProject)
	breakages := d.Check(oldMod, newMod)

	assert.Empty(t, breakages)
}
