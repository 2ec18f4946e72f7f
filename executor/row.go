// Package executor consumes a lowered planner.StepTree and evaluates it
// against a kv.Snapshot, the minimal stand-in for the real storage/type
// engine a full vertexdb would drive (spec.md section 1: the planner's
// output is a contract for "the actual query execution engine", which is
// out of this repo's scope; this package exists only so the planner has a
// runnable consumer to be tested against end-to-end).
package executor

import "github.com/mereth/vertexdb/ir"

// Row is one partial or complete variable binding, the executor's
// equivalent of the teacher's Tuple (datalog/executor/relation.go) keyed
// by VariableID instead of a positional column index, since the planner's
// IR identifies variables by id rather than by query-text symbol.
type Row map[ir.VariableID]interface{}

// Clone returns an independent copy of r.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a new row combining r with extra, extra's bindings
// winning on conflict (callers only ever pass disjoint or consistent
// bindings; conflicting merges would be a matcher bug).
func (r Row) Merge(extra Row) Row {
	out := r.Clone()
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Get returns a variable's bound value, if any.
func (r Row) Get(id ir.VariableID) (interface{}, bool) {
	v, ok := r[id]
	return v, ok
}
