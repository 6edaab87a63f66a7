package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/pyapi/model"
)

func TestLabelsAddAndHas(t *testing.T) {
	var l model.Labels
	l = l.Add("property")
	assert.True(t, l.Has("property"))
	assert.False(t, l.Has("staticmethod"))
}

func TestLabelsHasOnNilSet(t *testing.T) {
	var l model.Labels
	assert.False(t, l.Has("anything"))
}

func TestLabelsUnion(t *testing.T) {
	a := model.NewLabels("x", "y")
	b := model.NewLabels("y", "z")
	u := a.Union(b)

	assert.True(t, u.Has("x"))
	assert.True(t, u.Has("y"))
	assert.True(t, u.Has("z"))
	assert.Len(t, u.Slice(), 3)
}
