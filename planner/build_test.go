package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
)

const (
	vPerson ir.VariableID = iota
	vAge
	vFriend
)

func twoHopRegistry() *schema.MapRegistry {
	reg := schema.NewMapRegistry()
	reg.Set(vPerson, ir.CategoryThing)
	reg.Set(vAge, ir.CategoryAttribute)
	reg.Set(vFriend, ir.CategoryThing)
	return reg
}

func TestPlanConjunctionOrdersByValidity(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(0, ir.ConstraintHas, vPerson, vAge),
		ir.NewComparison(1, ir.OpGT, ir.VarOperand(vAge), ir.ConstOperand(int64(25))),
	})

	plan, graph, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.NoError(t, err)
	require.True(t, graph.Sealed())

	patterns := plan.Patterns()
	require.Equal(t, []ir.PatternID{0, 1}, patterns)

	meta, ok := plan.MetadataFor(0)
	require.True(t, ok)
	assert.True(t, meta.HasSortVariable)
	assert.Equal(t, vAge, meta.SortVariable)
}

func TestPlanConjunctionGreedyMatchesBeamOrdering(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(0, ir.ConstraintHas, vPerson, vAge),
		ir.NewComparison(1, ir.OpGT, ir.VarOperand(vAge), ir.ConstOperand(int64(25))),
	})

	opts := DefaultOptions()
	opts.Strategy = StrategyGreedy
	greedyPlan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), opts)
	require.NoError(t, err)

	opts.Strategy = StrategyBeam
	beamPlan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), opts)
	require.NoError(t, err)

	assert.Equal(t, greedyPlan.Patterns(), beamPlan.Patterns())
}

func TestPlanConjunctionRejectsUnsupportedComparator(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewComparison(0, ir.OpLike, ir.VarOperand(vPerson), ir.ConstOperand("a%")),
	})

	_, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.Error(t, err)
	var unsupported *UnsupportedFeatureError
	assert.ErrorAs(t, err, &unsupported)
}

func TestPlanConjunctionEmptyPlanSpace(t *testing.T) {
	// vFriend is never an input and nothing produces it: the constraint
	// can never become valid.
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewComparison(0, ir.OpGT, ir.VarOperand(vFriend), ir.ConstOperand(int64(1))),
		ir.NewConstraint(1, ir.ConstraintHas, vFriend, vAge),
	})
	reg := schema.NewMapRegistry()
	reg.Set(vFriend, ir.CategoryThing)
	reg.Set(vAge, ir.CategoryAttribute)

	_, _, err := PlanConjunction(conj, nil, reg, schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.Error(t, err)
}

func TestPlanConjunctionNegation(t *testing.T) {
	body := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(1, ir.ConstraintHas, vPerson, vAge),
	})
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewNegation(0, []ir.VariableID{vPerson}, body),
	})

	plan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.NoError(t, err)

	meta, ok := plan.MetadataFor(0)
	require.True(t, ok)
	require.NotNil(t, meta.NegationPlan)
	assert.Equal(t, []ir.PatternID{1}, meta.NegationPlan.Patterns())
}

func TestPlanConjunctionDisjunction(t *testing.T) {
	branchA := ir.NewConjunction([]ir.Pattern{ir.NewConstraint(1, ir.ConstraintHas, vPerson, vAge)})
	branchB := ir.NewConjunction([]ir.Pattern{ir.NewConstraint(2, ir.ConstraintHas, vPerson, vFriend)})
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewDisjunction(0, []ir.VariableID{vPerson}, []*ir.Conjunction{branchA, branchB}),
	})

	plan, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), DefaultOptions())
	require.NoError(t, err)

	meta, ok := plan.MetadataFor(0)
	require.True(t, ok)
	require.Len(t, meta.DisjunctionBranches, 2)
}
