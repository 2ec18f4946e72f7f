package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mereth/vertexdb/ir"
)

func TestMapRegistryCategoryLookup(t *testing.T) {
	reg := NewMapRegistry()
	reg.Set(1, ir.CategoryThing)

	cat, ok := reg.Category(1)
	assert.True(t, ok)
	assert.Equal(t, ir.CategoryThing, cat)

	_, ok = reg.Category(2)
	assert.False(t, ok)
}

func TestMapTypeAnnotationsLookup(t *testing.T) {
	ann := NewMapTypeAnnotations()
	ann.Set(1, []TypeLabel{"person"})

	assert.Equal(t, []TypeLabel{"person"}, ann.VariableTypes(1))
	assert.Nil(t, ann.VariableTypes(2))
}

func TestErrUnresolvedAttributeOrValueMessage(t *testing.T) {
	err := &ErrUnresolvedAttributeOrValue{Variable: 3}
	assert.Contains(t, err.Error(), "$3")
}
