package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/model"
	"github.com/viant/pyapi/resolver"
)

func newProjectWithModules(mods ...*model.Module) *model.Project {
	p := model.NewProject("pkg")
	for _, m := range mods {
		p.AddModule(m)
	}
	return p
}

func TestResolveDirectAlias(t *testing.T) {
	source := model.NewModule("pkg.source")
	source.AddMember(model.NewFunction("render"))

	consumer := model.NewModule("pkg.consumer")
	alias := &model.Alias{
		Base:       model.Base{EntityName: "render", LabelSet: model.Labels{}},
		TargetPath: "pkg.source.render",
	}
	consumer.AddMember(alias)

	p := newProjectWithModules(source, consumer)
	r := resolver.New(p, nil, 0, false)
	require.NoError(t, r.Resolve())

	assert.True(t, alias.Resolved())
	target, err := alias.FinalTarget()
	require.NoError(t, err)
	assert.Equal(t, "pkg.source.render", target.CanonicalPath())
}

func TestResolveChainedAlias(t *testing.T) {
	source := model.NewModule("pkg.source")
	source.AddMember(model.NewFunction("render"))

	middle := model.NewModule("pkg.middle")
	middle.AddMember(&model.Alias{
		Base:       model.Base{EntityName: "render", LabelSet: model.Labels{}},
		TargetPath: "pkg.source.render",
	})

	consumer := model.NewModule("pkg.consumer")
	alias := &model.Alias{
		Base:       model.Base{EntityName: "render", LabelSet: model.Labels{}},
		TargetPath: "pkg.middle.render",
	}
	consumer.AddMember(alias)

	p := newProjectWithModules(source, middle, consumer)
	r := resolver.New(p, nil, 0, false)
	require.NoError(t, r.Resolve())

	target, err := alias.FinalTarget()
	require.NoError(t, err)
	assert.Equal(t, "pkg.source.render", target.CanonicalPath())
}

func TestResolveCyclicAliasLeavesUnresolved(t *testing.T) {
	a := model.NewModule("pkg.a")
	b := model.NewModule("pkg.b")

	a.AddMember(&model.Alias{
		Base:       model.Base{EntityName: "value", LabelSet: model.Labels{}},
		TargetPath: "pkg.b.value",
	})
	b.AddMember(&model.Alias{
		Base:       model.Base{EntityName: "value", LabelSet: model.Labels{}},
		TargetPath: "pkg.a.value",
	})

	p := newProjectWithModules(a, b)
	r := resolver.New(p, nil, 0, false)
	require.NoError(t, r.Resolve())

	aliasA, ok := a.GetMember("value")
	require.True(t, ok)
	_, err := aliasA.(*model.Alias).FinalTarget()
	assert.Error(t, err)
	var cyclic *model.CyclicAliasError
	assert.ErrorAs(t, err, &cyclic)
}

func TestExternalTargetLeftUnresolvedWhenNotRequested(t *testing.T) {
	consumer := model.NewModule("pkg.consumer")
	alias := &model.Alias{
		Base:       model.Base{EntityName: "helper", LabelSet: model.Labels{}},
		TargetPath: "otherpkg.helper",
	}
	consumer.AddMember(alias)

	p := newProjectWithModules(consumer)
	r := resolver.New(p, nil, 0, false)
	require.NoError(t, r.Resolve())

	assert.False(t, alias.Resolved())
}

func TestWildcardExpansionCreatesConcreteAliases(t *testing.T) {
	source := model.NewModule("pkg.source")
	source.Exports = []string{"Widget"}
	source.AddMember(model.NewClass("Widget"))

	consumer := model.NewModule("pkg.consumer")
	consumer.AddMember(&model.Alias{
		Base:       model.Base{EntityName: "*", LabelSet: model.Labels{}},
		TargetPath: "pkg.source",
		Wildcard:   true,
	})

	p := newProjectWithModules(source, consumer)
	r := resolver.New(p, nil, 0, false)
	require.NoError(t, r.Resolve())

	widget, ok := consumer.GetMember("Widget")
	require.True(t, ok)
	alias, ok := widget.(*model.Alias)
	require.True(t, ok)
	assert.Equal(t, "pkg.source.Widget", alias.TargetPath)

	_, stillWildcard := consumer.GetMember("*")
	assert.False(t, stillWildcard)
}
