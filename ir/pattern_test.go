package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintVariables(t *testing.T) {
	c := NewConstraint(0, ConstraintHas, 1, 2)
	assert.Equal(t, []VariableID{1, 2}, c.Variables())
	assert.Equal(t, "has($1, $2)", c.String())
}

func TestLinksConstraintHasThreeEndpoints(t *testing.T) {
	c := NewLinksConstraint(0, 1, 2, 3)
	require.True(t, c.HasRole)
	assert.Equal(t, []VariableID{1, 2, 3}, c.Variables())
	assert.True(t, c.Kind.IsLinks())
	assert.True(t, c.Kind.IsBinary())
}

func TestTypeListConstraintIsUnary(t *testing.T) {
	c := NewTypeListConstraint(0, ConstraintLabel, 5)
	assert.Equal(t, []VariableID{5}, c.Variables())
	assert.False(t, c.Kind.IsBinary())
}

func TestIsPattern(t *testing.T) {
	is := NewIs(0, 1, 2)
	assert.ElementsMatch(t, []VariableID{1, 2}, is.Variables())
}

func TestComparisonVariablesSkipsConstants(t *testing.T) {
	cmp := NewComparison(0, OpGT, VarOperand(1), ConstOperand(int64(10)))
	assert.Equal(t, []VariableID{1}, cmp.Variables())
}

func TestCompareOpUnsupported(t *testing.T) {
	assert.True(t, OpLike.IsUnsupported())
	assert.True(t, OpContains.IsUnsupported())
	assert.False(t, OpEQ.IsUnsupported())
}

func TestExpressionVariablesIncludeOutput(t *testing.T) {
	e := NewExpression(0, []VariableID{1, 2}, 3, "add")
	assert.Equal(t, []VariableID{1, 2, 3}, e.Variables())
}

func TestFunctionCallVariables(t *testing.T) {
	f := NewFunctionCall(0, "len", []VariableID{1}, []VariableID{2, 3})
	assert.Equal(t, []VariableID{1, 2, 3}, f.Variables())
}

func TestNegationVariablesAreCaptured(t *testing.T) {
	body := NewConjunction(nil)
	n := NewNegation(0, []VariableID{1, 2}, body)
	assert.Equal(t, []VariableID{1, 2}, n.Variables())
}

func TestDisjunctionVariablesAreCaptured(t *testing.T) {
	d := NewDisjunction(0, []VariableID{4}, []*Conjunction{NewConjunction(nil), NewConjunction(nil)})
	assert.Equal(t, []VariableID{4}, d.Variables())
	assert.Len(t, d.Branches, 2)
}

func TestNewConjunctionSplitsNested(t *testing.T) {
	c1 := NewConstraint(0, ConstraintHas, 1, 2)
	neg := NewNegation(1, []VariableID{1}, NewConjunction(nil))
	conj := NewConjunction([]Pattern{c1, neg})
	assert.Len(t, conj.Patterns, 2)
	assert.Equal(t, []Pattern{neg}, conj.Nested)
}
