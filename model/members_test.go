package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/pyapi/model"
)

func TestOrderedMembersPreservesInsertionOrder(t *testing.T) {
	m := model.NewOrderedMembers()
	m.Set("b", model.NewFunction("b"))
	m.Set("a", model.NewFunction("a"))
	m.Set("c", model.NewFunction("c"))

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMembersOverwritePreservesPosition(t *testing.T) {
	m := model.NewOrderedMembers()
	m.Set("a", model.NewFunction("a"))
	m.Set("b", model.NewFunction("b"))
	replacement := model.NewFunction("a")
	m.Set("a", replacement)

	assert.Equal(t, []string{"a", "b"}, m.Keys())
	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestOrderedMembersDelete(t *testing.T) {
	m := model.NewOrderedMembers()
	m.Set("a", model.NewFunction("a"))
	m.Set("b", model.NewFunction("b"))
	m.Delete("a")

	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, m.Keys())
}

func TestGetMemberPathDescendsNestedContainers(t *testing.T) {
	mod := model.NewModule("pkg")
	class := model.NewClass("Widget")
	method := model.NewFunction("render")
	class.AddMember(method)
	mod.AddMember(class)

	got, ok := model.GetMemberPath(mod, []string{"Widget", "render"})
	require.True(t, ok)
	assert.Same(t, model.Entity(method), got)
}

func TestGetMemberPathMissingSegmentFails(t *testing.T) {
	mod := model.NewModule("pkg")
	_, ok := model.GetMemberPath(mod, []string{"Missing"})
	assert.False(t, ok)
}
