package testkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/internal/testkit"
	"github.com/viant/pyapi/model"
)

type fakeCollaborator struct {
	module *model.Module
}

func (f *fakeCollaborator) InspectModule(importName, filePath string, importRoots []string) (*model.Module, error) {
	return f.module, nil
}

func TestTemporaryVisitedModule(t *testing.T) {
	mod := testkit.TemporaryVisitedModule(t, "solo", "def run():\n    pass\n")
	require.NotNil(t, mod)
	_, ok := mod.GetMember("run")
	assert.True(t, ok)
}

func TestTemporaryVisitedPackage(t *testing.T) {
	mod := testkit.TemporaryVisitedPackage(t, "pkg", map[string]string{
		"__init__.py": "",
		"sub.py":      "class Widget:\n    pass\n",
	})
	require.NotNil(t, mod)
	sub, ok := mod.GetMember("sub")
	require.True(t, ok)
	subMod, ok := sub.(*model.Module)
	require.True(t, ok)
	_, ok = subMod.GetMember("Widget")
	assert.True(t, ok)
}

func TestTemporaryInspectedModuleUsesCollaborator(t *testing.T) {
	fake := &fakeCollaborator{module: model.NewModule("solo")}
	mod := testkit.TemporaryInspectedModule(t, "solo", "ignored", fake)
	assert.Equal(t, "solo", mod.Name())
}
