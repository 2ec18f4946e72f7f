// Package stats implements the StatisticsOracle the planner's cost model
// consumes: per-type instance counts, per-edge-kind counts, and attribute
// cardinality estimates. Grounded on the teacher's planner.Statistics
// (datalog/planner/types.go), widened from a single AttributeCardinality
// map into the richer counters spec.md section 4.1 names, and backed by
// internal/kv so the counts can be persisted and updated incrementally
// rather than recomputed from a full scan on every query.
package stats

import (
	"github.com/mereth/vertexdb/internal/kv"
	"github.com/mereth/vertexdb/internal/schema"
)

// EdgeKind names a countable schema edge kind for statistics purposes.
type EdgeKind string

const (
	EdgeHas     EdgeKind = "has"
	EdgePlays   EdgeKind = "plays"
	EdgeRelates EdgeKind = "relates"
	EdgeOwns    EdgeKind = "owns"
	EdgeIndex   EdgeKind = "index" // relation-index cross-product distribution
)

// Oracle is the read-only statistics collaborator (spec 4.1, spec 6).
// Missing entries read as zero per spec; implementations must not error
// on an unknown type or edge kind.
type Oracle interface {
	// EntityCount returns the number of instances of a thing type
	// (entity, relation, or attribute type).
	EntityCount(t schema.TypeLabel) int64
	// EdgeCount returns the number of edges of the given kind attached to
	// a type (e.g. EdgeHas for a `has name` edge count on a person type).
	EdgeCount(t schema.TypeLabel, kind EdgeKind) int64
	// AttributeCardinality returns the estimated distinct-value count for
	// an attribute type, used to estimate `has` reverse-direction
	// selectivity and join-size for attribute-sharing joins.
	AttributeCardinality(t schema.TypeLabel) int64
	// RoleCount returns the number of role-player instances for a role
	// type, used when costing `plays`/`relates`/`links`.
	RoleCount(t schema.TypeLabel) int64
}

// KVOracle is a kv-backed Oracle: counters are maintained as small keyed
// records in the MVCC store (internal/kv) rather than recomputed by
// scanning, mirroring how the teacher's Database keeps a Statistics value
// alongside the store (datalog/storage/database.go).
type KVOracle struct {
	store kv.CounterStore
}

// NewKVOracle wraps a kv.CounterStore as a statistics oracle.
func NewKVOracle(store kv.CounterStore) *KVOracle {
	return &KVOracle{store: store}
}

func (o *KVOracle) EntityCount(t schema.TypeLabel) int64 {
	return o.store.GetCounter(kv.CounterKey{Namespace: "entity", Type: string(t)})
}

func (o *KVOracle) EdgeCount(t schema.TypeLabel, kind EdgeKind) int64 {
	return o.store.GetCounter(kv.CounterKey{Namespace: "edge:" + string(kind), Type: string(t)})
}

func (o *KVOracle) AttributeCardinality(t schema.TypeLabel) int64 {
	return o.store.GetCounter(kv.CounterKey{Namespace: "attr-card", Type: string(t)})
}

func (o *KVOracle) RoleCount(t schema.TypeLabel) int64 {
	return o.store.GetCounter(kv.CounterKey{Namespace: "role", Type: string(t)})
}

// StaticOracle is an in-memory Oracle for tests and planning without a
// backing store — the direct analogue of the teacher's zero-value
// Statistics{} used in unit tests throughout datalog/planner.
type StaticOracle struct {
	Entities   map[schema.TypeLabel]int64
	Edges      map[EdgeKind]map[schema.TypeLabel]int64
	Attributes map[schema.TypeLabel]int64
	Roles      map[schema.TypeLabel]int64
}

// NewStaticOracle creates an empty static oracle (all counts read as 0).
func NewStaticOracle() *StaticOracle {
	return &StaticOracle{
		Entities:   make(map[schema.TypeLabel]int64),
		Edges:      make(map[EdgeKind]map[schema.TypeLabel]int64),
		Attributes: make(map[schema.TypeLabel]int64),
		Roles:      make(map[schema.TypeLabel]int64),
	}
}

func (o *StaticOracle) EntityCount(t schema.TypeLabel) int64 { return o.Entities[t] }

func (o *StaticOracle) EdgeCount(t schema.TypeLabel, kind EdgeKind) int64 {
	m, ok := o.Edges[kind]
	if !ok {
		return 0
	}
	return m[t]
}

func (o *StaticOracle) AttributeCardinality(t schema.TypeLabel) int64 { return o.Attributes[t] }
func (o *StaticOracle) RoleCount(t schema.TypeLabel) int64            { return o.Roles[t] }

// SetEdgeCount is a test/setup helper for StaticOracle.
func (o *StaticOracle) SetEdgeCount(t schema.TypeLabel, kind EdgeKind, count int64) {
	if o.Edges[kind] == nil {
		o.Edges[kind] = make(map[schema.TypeLabel]int64)
	}
	o.Edges[kind][t] = count
}
