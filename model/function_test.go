package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/pyapi/expr"
	"github.com/viant/pyapi/model"
)

func sampleFunctionParams() []*expr.Parameter {
	return []*expr.Parameter{
		{Name: "self", ParamKind: expr.ParamPositionalOrKeyword},
		{Name: "a", ParamKind: expr.ParamPositionalOrKeyword},
		{Name: "args", ParamKind: expr.ParamVarPositional},
		{Name: "b", ParamKind: expr.ParamKeywordOnly},
		{Name: "kwargs", ParamKind: expr.ParamVarKeyword},
	}
}

func TestFunctionParameterByName(t *testing.T) {
	fn := model.NewFunction("run")
	fn.Parameters = sampleFunctionParams()

	p, idx := fn.ParameterByName("a")
	assert.Equal(t, 1, idx)
	assert.Equal(t, "a", p.Name)

	_, idx = fn.ParameterByName("missing")
	assert.Equal(t, -1, idx)
}

func TestFunctionPositionalIndexSkipsNonPositional(t *testing.T) {
	fn := model.NewFunction("run")
	fn.Parameters = sampleFunctionParams()

	assert.Equal(t, 0, fn.PositionalIndex("self"))
	assert.Equal(t, 1, fn.PositionalIndex("a"))
	assert.Equal(t, -1, fn.PositionalIndex("b"))
}

func TestFunctionHasVarPositionalAndKeyword(t *testing.T) {
	fn := model.NewFunction("run")
	fn.Parameters = sampleFunctionParams()

	assert.True(t, fn.HasVarPositional())
	assert.True(t, fn.HasVarKeyword())

	plain := model.NewFunction("plain")
	plain.Parameters = []*expr.Parameter{{Name: "x", ParamKind: expr.ParamPositionalOrKeyword}}
	assert.False(t, plain.HasVarPositional())
	assert.False(t, plain.HasVarKeyword())
}
