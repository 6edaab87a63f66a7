package encoding_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/encoding"
	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

func buildSampleModule() *model.Module {
	mod := model.NewModule("pkg")
	mod.FilePath = "/src/pkg/__init__.py"
	mod.Exports = []string{"Widget"}

	cls := model.NewClass("Widget")
	cls.Bases = []expr.Expression{&expr.Name{Value: "object"}}

	fn := model.NewFunction("render")
	fn.Parameters = []*expr.Parameter{
		{Name: "self", ParamKind: expr.ParamPositionalOrKeyword},
		{Name: "count", ParamKind: expr.ParamPositionalOrKeyword, Annotation: &expr.Name{Value: "int"}},
	}
	fn.ReturnAnnotation = &expr.Name{Value: "str"}
	cls.AddMember(fn)

	attr := model.NewAttribute("count")
	attr.Annotation = &expr.Name{Value: "int"}
	cls.AddMember(attr)

	mod.AddMember(cls)
	return mod
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	mod := buildSampleModule()
	enc := encoding.NewEncoder(encoding.ModeBase)

	rendered, err := enc.EncodeModule(mod)
	require.NoError(t, err)

	data, err := json.Marshal(rendered)
	require.NoError(t, err)

	dec := encoding.NewDecoder()
	decoded, err := dec.DecodeModule(data)
	require.NoError(t, err)

	assert.Equal(t, mod.Name(), decoded.Name())
	assert.Equal(t, mod.FilePath, decoded.FilePath)
	assert.Equal(t, mod.Exports, decoded.Exports)

	widget, ok := decoded.GetMember("Widget")
	require.True(t, ok)
	cls, ok := widget.(*model.Class)
	require.True(t, ok)
	require.Len(t, cls.Bases, 1)
	name, ok := cls.Bases[0].(*expr.Name)
	require.True(t, ok)
	assert.Equal(t, "object", name.Value)

	render, ok := cls.GetMember("render")
	require.True(t, ok)
	fn, ok := render.(*model.Function)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "count", fn.Parameters[1].Name)
}

func TestEncodeFullModeAddsComputedFields(t *testing.T) {
	mod := buildSampleModule()
	enc := encoding.NewEncoder(encoding.ModeFull)

	rendered, err := enc.EncodeModule(mod)
	require.NoError(t, err)

	assert.Contains(t, rendered, "is_public")
	assert.Contains(t, rendered, "labels")
	assert.Contains(t, rendered, "origin")
}

func TestEncodePackagesEnvelope(t *testing.T) {
	mod := buildSampleModule()
	enc := encoding.NewEncoder(encoding.ModeBase)

	envelope, err := enc.EncodePackages(map[string]*model.Module{"pkg": mod})
	require.NoError(t, err)
	assert.Equal(t, encoding.SchemaVersion, envelope["schema_version"])

	data, err := json.Marshal(envelope)
	require.NoError(t, err)

	dec := encoding.NewDecoder()
	mods, err := dec.DecodePackages(data)
	require.NoError(t, err)
	require.Contains(t, mods, "pkg")
	assert.Equal(t, "pkg", mods["pkg"].Name())
}

func TestDigestIsDeterministicAcrossEncodingModes(t *testing.T) {
	project := model.NewProject("pkg")
	project.AddModule(buildSampleModule())

	base := encoding.NewEncoder(encoding.ModeBase)
	full := encoding.NewEncoder(encoding.ModeFull)

	d1, err := project.Digest(base)
	require.NoError(t, err)
	d2, err := project.Digest(full)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)

	d3, err := project.Digest(base)
	require.NoError(t, err)
	assert.Equal(t, d1, d3)
}
