package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
)

func TestLowerProducesIntersectThenCheck(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(0, ir.ConstraintHas, vPerson, vAge),
		ir.NewComparison(1, ir.OpGT, ir.VarOperand(vAge), ir.ConstOperand(int64(25))),
	})

	plan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.NoError(t, err)

	tree, err := Lower(plan)
	require.NoError(t, err)
	require.Len(t, tree.Steps, 2)

	assert.Equal(t, StepIntersect, tree.Steps[0].Kind)
	assert.True(t, tree.Steps[0].HasSortVariable)
	assert.Equal(t, vAge, tree.Steps[0].SortVariable)

	assert.Equal(t, StepCheck, tree.Steps[1].Kind)
}

func TestLowerNegationProducesSubPlan(t *testing.T) {
	body := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(1, ir.ConstraintHas, vPerson, vAge),
	})
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewNegation(0, []ir.VariableID{vPerson}, body),
	})

	plan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.NoError(t, err)

	tree, err := Lower(plan)
	require.NoError(t, err)
	require.Len(t, tree.Steps, 1)
	assert.Equal(t, StepNegation, tree.Steps[0].Kind)
	require.Len(t, tree.Steps[0].Sub, 1)
	assert.Equal(t, []ir.PatternID{1}, tree.Steps[0].Sub[0].Patterns())
}

func TestLowerDisjunctionProducesOneSubPlanPerBranch(t *testing.T) {
	branchA := ir.NewConjunction([]ir.Pattern{ir.NewConstraint(1, ir.ConstraintHas, vPerson, vAge)})
	branchB := ir.NewConjunction([]ir.Pattern{ir.NewConstraint(2, ir.ConstraintHas, vPerson, vFriend)})
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewDisjunction(0, []ir.VariableID{vPerson}, []*ir.Conjunction{branchA, branchB}),
	})

	plan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.NoError(t, err)

	tree, err := Lower(plan)
	require.NoError(t, err)
	require.Len(t, tree.Steps, 1)
	assert.Equal(t, StepDisjunction, tree.Steps[0].Kind)
	assert.Len(t, tree.Steps[0].Sub, 2)
}

func TestStepKindString(t *testing.T) {
	assert.Equal(t, "intersect", StepIntersect.String())
	assert.Equal(t, "check", StepCheck.String())
	assert.Equal(t, "produce", StepProduce.String())
	assert.Equal(t, "negation", StepNegation.String())
	assert.Equal(t, "disjunction", StepDisjunction.String())
}
