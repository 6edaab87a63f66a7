package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

func TestAttributeRenderedValue(t *testing.T) {
	a := model.NewAttribute("count")
	assert.Equal(t, "", a.RenderedValue())

	a.Value = &expr.Constant{Raw: "0"}
	assert.Equal(t, "0", a.RenderedValue())
}

func TestAttributeVisibilityUnderscorePrefix(t *testing.T) {
	mod := model.NewModule("pkg")
	pub := model.NewAttribute("count")
	priv := model.NewAttribute("_count")
	mod.AddMember(pub)
	mod.AddMember(priv)

	assert.True(t, pub.IsPublic())
	assert.False(t, priv.IsPublic())
}

func TestAttributeForcePublicOverridesConvention(t *testing.T) {
	mod := model.NewModule("pkg")
	attr := model.NewAttribute("_hidden")
	forced := true
	attr.ForcePublic = &forced
	mod.AddMember(attr)

	assert.True(t, attr.IsPublic())
}

func TestTypeAliasIsExportedReflectsAllExports(t *testing.T) {
	mod := model.NewModule("pkg")
	mod.Exports = []string{"Exported"}

	exported := model.NewTypeAlias("Exported")
	other := model.NewTypeAlias("Other")
	mod.AddMember(exported)
	mod.AddMember(other)

	assert.True(t, exported.IsExported())
	assert.False(t, other.IsExported())
}

func TestTypeAliasPublicWithoutExplicitExports(t *testing.T) {
	mod := model.NewModule("pkg")
	ta := model.NewTypeAlias("Vector")
	mod.AddMember(ta)

	assert.True(t, ta.IsPublic())
}
