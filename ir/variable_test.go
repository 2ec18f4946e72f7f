package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVariableDefaults(t *testing.T) {
	v := NewVariable(1, CategoryThing, OriginDeclared)
	assert.False(t, v.IsInput)
	assert.False(t, v.HasProducer)
	assert.Empty(t, v.Equalities)
}

func TestNewVariableInputOrigin(t *testing.T) {
	v := NewVariable(1, CategoryThing, OriginInput)
	assert.True(t, v.IsInput)
}

func TestSetProducerRecordsProducer(t *testing.T) {
	v := NewVariable(1, CategoryAttribute, OriginDeclared)
	v.SetProducer(7)
	assert.True(t, v.HasProducer)
	assert.Equal(t, PatternID(7), v.Producer)
}

func TestAddEqualityIsIdempotent(t *testing.T) {
	v := NewVariable(1, CategoryThing, OriginDeclared)
	v.AddEquality(2)
	v.AddEquality(2)
	assert.Len(t, v.Equalities, 1)
	assert.True(t, v.Equalities[2])
}

func TestBoundCount(t *testing.T) {
	v := NewVariable(1, CategoryAttribute, OriginDeclared)
	assert.Equal(t, 0, v.BoundCount())
	v.AddUpperBound(Bound{Operand: ConstOperand(int64(10))})
	v.AddLowerBound(Bound{Operand: ConstOperand(int64(0))})
	assert.Equal(t, 2, v.BoundCount())
}

func TestIsListCategory(t *testing.T) {
	assert.True(t, CategoryThingList.IsListCategory())
	assert.True(t, CategoryValueList.IsListCategory())
	assert.True(t, CategoryTypeList.IsListCategory())
	assert.False(t, CategoryThing.IsListCategory())
}
