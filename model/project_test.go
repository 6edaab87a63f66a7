package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/model"
)

func TestProjectLookup(t *testing.T) {
	project := model.NewProject("pkg")

	pkg := model.NewModule("pkg")
	sub := model.NewModule("pkg.sub")
	cls := model.NewClass("Widget")
	fn := model.NewFunction("render")
	cls.AddMember(fn)
	sub.AddMember(cls)

	project.AddModule(pkg)
	project.AddModule(sub)

	t.Run("module itself", func(t *testing.T) {
		entity, err := project.Lookup("pkg.sub")
		require.NoError(t, err)
		assert.Equal(t, sub, entity)
	})

	t.Run("longest prefix module match", func(t *testing.T) {
		entity, err := project.Lookup("pkg.sub.Widget.render")
		require.NoError(t, err)
		assert.Equal(t, fn, entity)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := project.Lookup("pkg.sub.Missing")
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := project.Lookup("")
		assert.Error(t, err)
	})
}

func TestProjectModulePathsSorted(t *testing.T) {
	project := model.NewProject("pkg")
	project.AddModule(model.NewModule("pkg.z"))
	project.AddModule(model.NewModule("pkg.a"))
	project.AddModule(model.NewModule("pkg.m"))

	assert.Equal(t, []string{"pkg.a", "pkg.m", "pkg.z"}, project.ModulePaths())
}
