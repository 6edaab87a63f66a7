package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/pyapi/model"
)

func TestCanonicalPath(t *testing.T) {
	pkg := model.NewModule("pkg")
	sub := model.NewModule("sub")
	cls := model.NewClass("Widget")
	fn := model.NewFunction("render")

	pkg.AddMember(sub)
	sub.AddMember(cls)
	cls.AddMember(fn)

	tests := []struct {
		name   string
		entity model.Entity
		want   string
	}{
		{name: "root module", entity: pkg, want: "pkg"},
		{name: "nested module", entity: sub, want: "pkg.sub"},
		{name: "class", entity: cls, want: "pkg.sub.Widget"},
		{name: "method", entity: fn, want: "pkg.sub.Widget.render"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.entity.CanonicalPath())
		})
	}
}

func TestVisibilityConventions(t *testing.T) {
	tests := []struct {
		name          string
		entityName    string
		wantPrivate   bool
		wantClassPriv bool
		wantSpecial   bool
	}{
		{name: "plain", entityName: "render", wantPrivate: false, wantClassPriv: false, wantSpecial: false},
		{name: "single underscore", entityName: "_helper", wantPrivate: true, wantClassPriv: false, wantSpecial: false},
		{name: "double underscore", entityName: "__mangled", wantPrivate: false, wantClassPriv: true, wantSpecial: false},
		{name: "dunder", entityName: "__init__", wantPrivate: false, wantClassPriv: false, wantSpecial: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn := model.NewFunction(tc.entityName)
			assert.Equal(t, tc.wantPrivate, fn.IsPrivate())
			assert.Equal(t, tc.wantClassPriv, fn.IsClassPrivate())
			assert.Equal(t, tc.wantSpecial, fn.IsSpecial())
		})
	}
}

func TestModuleExportsGating(t *testing.T) {
	mod := model.NewModule("pkg")
	mod.Exports = []string{"Public"}
	mod.AddMember(model.NewFunction("Public"))
	mod.AddMember(model.NewFunction("other"))

	assert.True(t, mod.HasExplicitExports())

	pub, ok := mod.GetMember("Public")
	assert.True(t, ok)
	assert.True(t, pub.(*model.Function).IsExported())

	other, ok := mod.GetMember("other")
	assert.True(t, ok)
	assert.False(t, other.(*model.Function).IsExported())
}

func TestSplitAndJoinPath(t *testing.T) {
	parts := model.SplitPath("pkg.sub.Widget")
	assert.Equal(t, []string{"pkg", "sub", "Widget"}, parts)
	assert.Equal(t, "pkg.sub.Widget", model.JoinPath(parts))
	assert.Nil(t, model.SplitPath(""))
}
