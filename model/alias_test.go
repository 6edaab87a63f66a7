package model_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/model"
)

func TestAliasFinalTargetBeforeResolutionErrors(t *testing.T) {
	a := &model.Alias{Base: model.Base{EntityName: "Thing"}, TargetPath: "pkg.Thing"}
	assert.False(t, a.Resolved())

	_, err := a.FinalTarget()
	require.Error(t, err)
	var resErr *model.AliasResolutionError
	assert.ErrorAs(t, err, &resErr)
}

func TestAliasSetResolutionSuccess(t *testing.T) {
	target := model.NewClass("Thing")
	a := &model.Alias{Base: model.Base{EntityName: "Thing"}, TargetPath: "pkg.Thing"}
	a.SetResolution(target, nil)

	assert.True(t, a.Resolved())
	got, err := a.FinalTarget()
	require.NoError(t, err)
	assert.Same(t, model.Entity(target), got)
}

func TestAliasSetResolutionFailure(t *testing.T) {
	a := &model.Alias{Base: model.Base{EntityName: "Thing"}, TargetPath: "pkg.Missing"}
	resErr := errors.New("not found")
	a.SetResolution(nil, resErr)

	_, err := a.FinalTarget()
	assert.Equal(t, resErr, err)
}

func TestAliasDelegatesIsPublicToResolvedTarget(t *testing.T) {
	target := model.NewClass("Thing")
	forced := false
	target.ForcePublic = &forced

	a := &model.Alias{Base: model.Base{EntityName: "Thing"}, TargetPath: "pkg.Thing"}
	a.SetResolution(target, nil)

	assert.False(t, a.IsPublic())
}

func TestAliasIsPublicFalseWhenUnresolved(t *testing.T) {
	a := &model.Alias{Base: model.Base{EntityName: "Thing"}, TargetPath: "pkg.Thing"}
	assert.False(t, a.IsPublic())
}

func TestAliasAsExpressionRendersTargetPath(t *testing.T) {
	a := &model.Alias{Base: model.Base{EntityName: "Thing"}, TargetPath: "pkg.impl.Thing"}
	assert.Equal(t, "pkg.impl.Thing", a.AsExpression().String())
}

func TestAliasChainDelegatesThroughAnotherAlias(t *testing.T) {
	target := model.NewClass("Thing")
	inner := &model.Alias{Base: model.Base{EntityName: "Inner"}, TargetPath: "pkg.Thing"}
	inner.SetResolution(target, nil)

	outer := &model.Alias{Base: model.Base{EntityName: "Outer"}, TargetPath: "pkg.Inner"}
	outer.SetResolution(inner, nil)

	assert.True(t, outer.IsPublic())
}
