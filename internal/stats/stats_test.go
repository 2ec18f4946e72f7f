package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mereth/vertexdb/internal/kv"
	"github.com/mereth/vertexdb/internal/schema"
)

func TestStaticOracleReadsZeroForUnknown(t *testing.T) {
	o := NewStaticOracle()
	assert.Equal(t, int64(0), o.EntityCount("person"))
	assert.Equal(t, int64(0), o.EdgeCount("person", EdgeHas))
	assert.Equal(t, int64(0), o.AttributeCardinality("age"))
	assert.Equal(t, int64(0), o.RoleCount("friend"))
}

func TestStaticOracleSetEdgeCount(t *testing.T) {
	o := NewStaticOracle()
	o.Entities["person"] = 10
	o.SetEdgeCount("person", EdgeHas, 25)
	o.Attributes["age"] = 40
	o.Roles["friend"] = 2

	assert.Equal(t, int64(10), o.EntityCount("person"))
	assert.Equal(t, int64(25), o.EdgeCount("person", EdgeHas))
	assert.Equal(t, int64(40), o.AttributeCardinality("age"))
	assert.Equal(t, int64(2), o.RoleCount("friend"))
}

type memCounterStore struct {
	counts map[kv.CounterKey]int64
}

func newMemCounterStore() *memCounterStore {
	return &memCounterStore{counts: make(map[kv.CounterKey]int64)}
}

func (m *memCounterStore) GetCounter(key kv.CounterKey) int64 { return m.counts[key] }

func (m *memCounterStore) IncrCounter(key kv.CounterKey, delta int64) error {
	m.counts[key] += delta
	return nil
}

func TestKVOracleReadsBackIncrementedCounters(t *testing.T) {
	store := newMemCounterStore()
	oracle := NewKVOracle(store)

	require.NoError(t, store.IncrCounter(kv.CounterKey{Namespace: "entity", Type: "person"}, 5))
	require.NoError(t, store.IncrCounter(kv.CounterKey{Namespace: "edge:has", Type: "person"}, 12))
	require.NoError(t, store.IncrCounter(kv.CounterKey{Namespace: "attr-card", Type: "age"}, 30))
	require.NoError(t, store.IncrCounter(kv.CounterKey{Namespace: "role", Type: "friend"}, 2))

	assert.Equal(t, int64(5), oracle.EntityCount(schema.TypeLabel("person")))
	assert.Equal(t, int64(12), oracle.EdgeCount(schema.TypeLabel("person"), EdgeHas))
	assert.Equal(t, int64(30), oracle.AttributeCardinality(schema.TypeLabel("age")))
	assert.Equal(t, int64(2), oracle.RoleCount(schema.TypeLabel("friend")))
}

func TestKVOracleMissingReadsZero(t *testing.T) {
	oracle := NewKVOracle(newMemCounterStore())
	assert.Equal(t, int64(0), oracle.EntityCount(schema.TypeLabel("unknown")))
}
