package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mereth/vertexdb/internal/schema"
	"github.com/mereth/vertexdb/internal/stats"
	"github.com/mereth/vertexdb/ir"
)

func TestCacheKeyStableForSameShapeAndInputs(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(0, ir.ConstraintHas, vPerson, vAge),
	})
	a := CacheKey(conjunctionSignature(conj), []ir.VariableID{vPerson})
	b := CacheKey(conjunctionSignature(conj), []ir.VariableID{vPerson})
	assert.Equal(t, a, b)

	c := CacheKey(conjunctionSignature(conj), []ir.VariableID{vAge})
	assert.NotEqual(t, a, c, "differing input bindings must not collide")
}

func TestPlanConjunctionReusesCachedPlan(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(0, ir.ConstraintHas, vPerson, vAge),
		ir.NewComparison(1, ir.OpGT, ir.VarOperand(vAge), ir.ConstOperand(int64(25))),
	})

	opts := DefaultOptions()
	opts.Cache = NewPlanCache()

	first, firstGraph, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), opts)
	require.NoError(t, err)

	second, secondGraph, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), opts)
	require.NoError(t, err)

	assert.Same(t, first, second, "a cache hit should return the exact cached plan")
	assert.Same(t, firstGraph, secondGraph)
}

func TestPlanConjunctionDisabledCacheReplans(t *testing.T) {
	conj := ir.NewConjunction([]ir.Pattern{
		ir.NewConstraint(0, ir.ConstraintHas, vPerson, vAge),
	})

	opts := DefaultOptions()
	opts.Cache = NewPlanCache()
	opts.EnableCache = false

	first, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), opts)
	require.NoError(t, err)

	second, _, err := PlanConjunction(conj, []ir.VariableID{vPerson}, twoHopRegistry(), schema.NewMapTypeAnnotations(), stats.NewStaticOracle(), opts)
	require.NoError(t, err)

	assert.NotSame(t, first, second, "EnableCache=false must bypass both read and write")
}
